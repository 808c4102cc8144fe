package controllers

import (
	"complaint-portal/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UpdateStatus moves a complaint to the status picked on the admin board.
// Whether the user may do so is the API's call.
func UpdateStatus(c *gin.Context) {
	client, ctx := newClient(c)
	client.RestoreSession()

	id, status := c.Param("id"), c.PostForm("status")
	if err := client.UpdateStatus(ctx, id, status); err != nil {
		config.Log.WithError(err).WithFields(logrus.Fields{
			"complaint_id": id,
			"status":       status,
		}).Debug("status not updated")
	}
	client.Hydrate(ctx)
	render(c, client)
}
