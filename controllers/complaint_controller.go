package controllers

import (
	"strconv"

	"complaint-portal/config"
	"complaint-portal/models"

	"github.com/gin-gonic/gin"
)

// SubmitComplaint files a complaint from the student form.
func SubmitComplaint(c *gin.Context) {
	client, ctx := newClient(c)
	client.RestoreSession()

	form := models.NewComplaintForm()
	if err := c.ShouldBind(&form); err != nil {
		config.Log.WithError(err).Debug("complaint form did not bind")
		client.RejectComplaintForm(form, unreadableComplaintForm(c))
	} else if err := client.SubmitComplaint(ctx, form); err != nil {
		config.Log.WithError(err).Debug("complaint not submitted")
	}
	client.Hydrate(ctx)
	render(c, client)
}

// CheckAnonymous shows the status of an anonymous complaint by its id.
func CheckAnonymous(c *gin.Context) {
	client, ctx := newClient(c)
	client.RestoreSession()

	if err := client.CheckAnonymous(ctx, c.PostForm("id")); err != nil {
		config.Log.WithError(err).Debug("anonymous lookup failed")
	}
	client.Hydrate(ctx)
	render(c, client)
}

// unreadableComplaintForm names the field that failed to bind.
func unreadableComplaintForm(c *gin.Context) string {
	if raw := c.PostForm("department_id"); raw != "" {
		if _, err := strconv.Atoi(raw); err != nil {
			return "department id must be selected"
		}
	}
	return "The complaint form could not be read, please try again."
}
