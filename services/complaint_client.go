package services

import (
	"context"
	"errors"
	"time"

	"complaint-portal/config"
	"complaint-portal/models"
)

const (
	alertSessionExpired = "Your session has expired, please log in again."
	alertUnreachable    = "The complaint service could not be reached, please try again."
)

// ComplaintClient holds the view state of one browser session for the
// duration of a request and reconciles it with the complaint API. It carries
// no business rules; the API decides what is allowed.
type ComplaintClient struct {
	api   ComplaintAPI
	store SessionStore
	state models.ViewState
	now   func() time.Time

	complaintsLoaded  bool
	departmentsLoaded bool
}

func NewComplaintClient(api ComplaintAPI, store SessionStore) *ComplaintClient {
	return &ComplaintClient{
		api:   api,
		store: store,
		state: models.NewViewState(),
		now:   time.Now,
	}
}

// State returns a snapshot of the current view state.
func (c *ComplaintClient) State() models.ViewState {
	s := c.state
	s.Complaints = append([]models.Complaint(nil), c.state.Complaints...)
	s.Departments = append([]models.Department(nil), c.state.Departments...)
	return s
}

// SetPage switches the auth sub-form between login and register.
func (c *ComplaintClient) SetPage(mode models.AuthMode) {
	if mode == models.ModeRegister {
		c.state.Page = models.ModeRegister
		return
	}
	c.state.Page = models.ModeLogin
}

// Hydrate loads whatever the dashboard still misses for this request. It runs
// automatically once a session exists, and leaves the client page-ready.
func (c *ComplaintClient) Hydrate(ctx context.Context) {
	if _, ok := models.CurrentUser(c.state.Session); !ok {
		return
	}
	if !c.complaintsLoaded {
		c.LoadComplaints(ctx)
	}
	if _, ok := models.CurrentUser(c.state.Session); !ok {
		return
	}
	if !c.departmentsLoaded {
		c.LoadDepartments(ctx)
	}
	c.state.Ready = true
}

// LoadComplaints replaces the complaint list with the API's. Failures leave
// the current list in place; a 401 ends the session.
func (c *ComplaintClient) LoadComplaints(ctx context.Context) error {
	auth, ok := models.CurrentUser(c.state.Session)
	if !ok {
		return models.ErrNoSession
	}

	complaints, err := c.api.ListComplaints(ctx, auth.Token)
	c.complaintsLoaded = true
	if err != nil {
		return c.fetchFailed(ctx, "list complaints", err)
	}
	c.state.Complaints = complaints
	return nil
}

// LoadDepartments replaces the department list with the API's.
func (c *ComplaintClient) LoadDepartments(ctx context.Context) error {
	departments, err := c.api.ListDepartments(ctx)
	c.departmentsLoaded = true
	if err != nil {
		return c.fetchFailed(ctx, "list departments", err)
	}
	c.state.Departments = departments
	return nil
}

func (c *ComplaintClient) fetchFailed(ctx context.Context, op string, err error) error {
	if errors.Is(err, models.ErrUnauthorized) {
		c.expireSession(ctx)
		return err
	}
	config.Log.WithError(err).
		WithField("request_id", RequestIDFromContext(ctx)).
		Warnf("%s failed, keeping current data", op)
	return err
}

// expireSession tears the session down after the API rejected the token.
func (c *ComplaintClient) expireSession(ctx context.Context) {
	if err := c.store.Clear(); err != nil {
		config.Log.WithError(err).Error("failed to clear expired session")
	}
	config.Log.WithField("request_id", RequestIDFromContext(ctx)).Info("session rejected by api, logged out")
	c.reset()
	c.state.Alert = alertSessionExpired
}

func (c *ComplaintClient) reset() {
	c.state = models.NewViewState()
	c.complaintsLoaded = false
	c.departmentsLoaded = false
}

// alertFor is the user-facing text for a failed call.
func alertFor(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	if apiErr, ok := IsAPIError(err); ok {
		return apiErr.Detail
	}
	return alertUnreachable
}
