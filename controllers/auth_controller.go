package controllers

import (
	"context"
	"net/http"

	"complaint-portal/config"
	"complaint-portal/models"
	"complaint-portal/services"
	"complaint-portal/views"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// newClient builds the per-request complaint client over the browser's
// session cookie. The returned context outlives a client disconnect so an
// API call that already started is not cut short.
func newClient(c *gin.Context) (*services.ComplaintClient, context.Context) {
	store := services.NewCookieSessionStore(sessions.Default(c))
	return services.NewComplaintClient(services.API(), store), context.WithoutCancel(c.Request.Context())
}

func render(c *gin.Context, client *services.ComplaintClient) {
	name, data := views.Render(client.State())
	c.HTML(http.StatusOK, name, data)
}

// Home shows the login/register form, or the dashboard of the stored session.
func Home(c *gin.Context) {
	client, ctx := newClient(c)
	client.SetPage(models.AuthMode(c.Query("mode")))
	client.Restore(ctx)
	render(c, client)
}

// Login handles the login form.
func Login(c *gin.Context) {
	authenticate(c, models.ModeLogin)
}

// Register handles the registration form and signs the new user in.
func Register(c *gin.Context) {
	authenticate(c, models.ModeRegister)
}

func authenticate(c *gin.Context, mode models.AuthMode) {
	client, ctx := newClient(c)

	form := models.NewAuthForm()
	if err := c.ShouldBind(&form); err != nil {
		config.Log.WithError(err).Debug("auth form did not bind cleanly")
	}

	if err := client.Authenticate(ctx, mode, form); err != nil {
		config.Log.WithError(err).WithField("mode", mode).Debug("authentication rejected")
	}
	render(c, client)
}

// Logout forgets the session and returns to the login form.
func Logout(c *gin.Context) {
	client, _ := newClient(c)
	if err := client.Logout(); err != nil {
		config.Log.WithError(err).Error("failed to clear session")
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Health reports that the portal is up. It does not probe the complaint API.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
