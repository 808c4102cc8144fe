// Package views turns a ViewState into the page the user should see.
package views

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"complaint-portal/models"

	"github.com/gin-gonic/gin"
)

const pageTitle = "College Complaint System"

//go:embed templates/*.html static/*
var files embed.FS

var funcs = template.FuncMap{
	"statusLabel":   models.StatusLabel,
	"priorityLabel": models.PriorityLabel,
}

// Templates parses every page template, ready for gin's SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(files, "templates/*.html"))
}

// Static serves the embedded stylesheet.
func Static() http.FileSystem {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Render picks the template for state and the data to execute it with.
// Logged-out users get the auth form, admins the triage board, and everyone
// else the student dashboard.
func Render(state models.ViewState) (string, gin.H) {
	data := gin.H{
		"Title":  pageTitle,
		"Alert":  state.Alert,
		"Notice": state.Notice,
	}

	auth, ok := models.CurrentUser(state.Session)
	if !ok {
		data["IsLogin"] = state.Page != models.ModeRegister
		data["Form"] = state.AuthForm
		return "auth.html", data
	}

	data["User"] = auth.User
	data["Ready"] = state.Ready
	data["Complaints"] = state.Complaints

	if auth.User.IsAdmin() {
		data["Statuses"] = models.Statuses
		return "admin.html", data
	}

	data["Departments"] = state.Departments
	data["Priorities"] = models.Priorities
	data["Form"] = state.ComplaintForm
	data["AnonymousID"] = state.AnonymousID
	return "student.html", data
}
