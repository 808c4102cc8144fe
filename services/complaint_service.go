package services

import (
	"context"
	"errors"
	"strings"

	"complaint-portal/config"
	"complaint-portal/models"

	"github.com/sirupsen/logrus"
)

const alertComplaintNotFound = "Complaint not found"

// SubmitComplaint posts the form and, on success, resets it and refetches
// the list. Anonymous submissions get their lookup id in the notice, since
// they will not show up in the student's own list.
func (c *ComplaintClient) SubmitComplaint(ctx context.Context, form models.ComplaintForm) error {
	auth, ok := models.CurrentUser(c.state.Session)
	if !ok {
		return models.ErrNoSession
	}
	c.state.ComplaintForm = form

	req := form.Request()
	if err := validatePayload(req); err != nil {
		c.state.Alert = err.Error()
		return err
	}

	resp, err := c.api.CreateComplaint(ctx, auth.Token, req)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			c.expireSession(ctx)
			return err
		}
		config.Log.WithError(err).WithFields(logrus.Fields{
			"user_id":    auth.User.ID,
			"request_id": RequestIDFromContext(ctx),
		}).Warn("complaint submission failed")
		c.state.Alert = "Complaint was not submitted: " + alertFor(err)
		return err
	}

	notice := "Complaint submitted!"
	if req.Anonymous && resp.ComplaintID != "" {
		notice += " Keep this ID to check its status: " + resp.ComplaintID
	}
	c.state.Notice = notice
	c.state.ComplaintForm = models.NewComplaintForm()

	c.LoadComplaints(ctx)
	return nil
}

// RejectComplaintForm reports a submission whose fields could not be read.
// The typed input is kept and nothing is sent.
func (c *ComplaintClient) RejectComplaintForm(form models.ComplaintForm, message string) error {
	if _, ok := models.CurrentUser(c.state.Session); !ok {
		return models.ErrNoSession
	}
	c.state.ComplaintForm = form
	c.state.Alert = message
	return &ValidationError{Message: message}
}

// CheckAnonymous looks up an anonymous complaint by id. The list is replaced
// by the result: the single complaint, or nothing when it does not exist.
func (c *ComplaintClient) CheckAnonymous(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	c.state.AnonymousID = id
	if id == "" {
		c.state.Alert = "Enter a complaint ID to check."
		return &ValidationError{Message: c.state.Alert}
	}

	c.complaintsLoaded = true
	complaint, err := c.api.GetAnonymousComplaint(ctx, id)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			config.Log.WithError(err).
				WithField("request_id", RequestIDFromContext(ctx)).
				Warn("anonymous complaint lookup failed")
		}
		c.state.Complaints = []models.Complaint{}
		c.state.Alert = alertComplaintNotFound
		return err
	}

	c.state.Complaints = []models.Complaint{*complaint}
	return nil
}

// UpdateStatus asks the API to move a complaint to status, then refetches
// the list whatever the outcome.
func (c *ComplaintClient) UpdateStatus(ctx context.Context, id, status string) error {
	auth, ok := models.CurrentUser(c.state.Session)
	if !ok {
		return models.ErrNoSession
	}

	req := models.UpdateStatusRequest{Status: status}
	if err := validatePayload(req); err != nil {
		c.state.Alert = err.Error()
		return err
	}

	err := c.api.UpdateComplaintStatus(ctx, auth.Token, id, req)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			c.expireSession(ctx)
			return err
		}
		config.Log.WithError(err).WithFields(logrus.Fields{
			"complaint_id": id,
			"status":       status,
			"request_id":   RequestIDFromContext(ctx),
		}).Warn("status update failed")
		c.state.Alert = "Status was not updated: " + alertFor(err)
	}

	c.LoadComplaints(ctx)
	return err
}
