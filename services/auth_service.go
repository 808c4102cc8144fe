package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"complaint-portal/config"
	"complaint-portal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

var errIncompleteAuth = errors.New("complaint api returned no token or user")

// Restore picks the session up from the store and, when there is one,
// loads the dashboard data.
func (c *ComplaintClient) Restore(ctx context.Context) {
	c.RestoreSession()
	c.Hydrate(ctx)
}

// RestoreSession loads the persisted session without calling the API.
// Sessions whose token has expired are discarded.
func (c *ComplaintClient) RestoreSession() {
	state := c.store.Load()
	auth, ok := models.CurrentUser(state)
	if ok && TokenExpired(auth.Token, c.now()) {
		if err := c.store.Clear(); err != nil {
			config.Log.WithError(err).Error("failed to clear expired session")
		}
		config.Log.WithField("user_id", auth.User.ID).Info("persisted session expired")
		c.reset()
		c.state.Alert = alertSessionExpired
		return
	}
	c.state.Session = state
}

// Authenticate logs in or registers with the given form. On success the
// session is persisted and the dashboard loaded; on failure the alert holds
// the API's detail message and the client stays logged out.
func (c *ComplaintClient) Authenticate(ctx context.Context, mode models.AuthMode, form models.AuthForm) error {
	c.SetPage(mode)
	c.state.Alert = ""
	c.state.AuthForm = form
	c.state.AuthForm.Password = ""

	var (
		resp *models.AuthResponse
		err  error
	)
	switch mode {
	case models.ModeLogin:
		req := form.LoginRequest()
		if err = validatePayload(req); err == nil {
			resp, err = c.api.Login(ctx, req)
		}
	case models.ModeRegister:
		req := form.RegisterRequest()
		if err = validatePayload(req); err == nil {
			resp, err = c.api.Register(ctx, req)
		}
		if err == nil && resp.Token == "" {
			// the API created the account but did not sign it in
			resp, err = c.api.Login(ctx, models.LoginRequest{Email: req.Email, Password: req.Password})
		}
	default:
		err = fmt.Errorf("unknown auth mode %q", mode)
	}
	if err == nil && (resp.Token == "" || resp.User == nil) {
		err = errIncompleteAuth
	}

	entry := config.Log.WithFields(logrus.Fields{
		"mode":       mode,
		"email":      form.LoginRequest().Email,
		"request_id": RequestIDFromContext(ctx),
	})
	if err != nil {
		entry.WithError(err).Info("authentication failed")
		c.state.Alert = alertFor(err)
		if errors.Is(err, errIncompleteAuth) {
			c.state.Alert = "Error: " + err.Error()
		}
		return err
	}

	auth := models.Authenticated{Token: resp.Token, User: *resp.User}
	if err := c.store.Save(auth); err != nil {
		entry.WithError(err).Error("failed to persist session")
		c.state.Alert = "Could not start a session, please try again."
		return fmt.Errorf("save session: %w", err)
	}
	entry.WithField("user_id", auth.User.ID).Info("authenticated")

	c.state.Session = auth
	c.state.AuthForm = models.NewAuthForm()
	c.complaintsLoaded = false
	c.departmentsLoaded = false
	c.Hydrate(ctx)
	return nil
}

// Logout drops the session and every piece of cached data.
func (c *ComplaintClient) Logout() error {
	c.reset()
	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// TokenExpired reads the exp claim of a JWT without verifying it. Tokens
// that are not JWTs are left for the API to judge.
func TokenExpired(token string, now time.Time) bool {
	var claims models.Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.Expired(now)
}
