package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"complaint-portal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func sessionRouter(loaded *models.SessionState) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("complaint_session", cookie.NewStore([]byte("test-secret"))))
	r.GET("/save", func(c *gin.Context) {
		store := NewCookieSessionStore(sessions.Default(c))
		err := store.Save(models.Authenticated{
			Token: "tok",
			User:  models.User{ID: 7, Name: "Ann", Email: "ann@college.edu", Role: models.RoleStudent},
		})
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/load", func(c *gin.Context) {
		*loaded = NewCookieSessionStore(sessions.Default(c)).Load()
		c.Status(http.StatusNoContent)
	})
	r.GET("/has", func(c *gin.Context) {
		if HasSession(sessions.Default(c)) {
			c.Status(http.StatusOK)
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/clear", func(c *gin.Context) {
		NewCookieSessionStore(sessions.Default(c)).Clear()
		c.Status(http.StatusNoContent)
	})
	return r
}

func doWithCookie(r http.Handler, path, cookieHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookieHeader != "" {
		req.Header.Set("Cookie", cookieHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) string {
	return strings.SplitN(w.Header().Get("Set-Cookie"), ";", 2)[0]
}

func TestCookieSessionStoreRoundTrip(t *testing.T) {
	var loaded models.SessionState
	r := sessionRouter(&loaded)

	doWithCookie(r, "/load", "")
	if _, ok := models.CurrentUser(loaded); ok {
		t.Fatal("empty cookie should load as unauthenticated")
	}

	saved := doWithCookie(r, "/save", "")
	cookie := sessionCookie(saved)
	if cookie == "" {
		t.Fatal("expected a session cookie")
	}

	doWithCookie(r, "/load", cookie)
	auth, ok := models.CurrentUser(loaded)
	if !ok {
		t.Fatal("expected authenticated session from cookie")
	}
	if auth.Token != "tok" || auth.User.ID != 7 || auth.User.Email != "ann@college.edu" {
		t.Fatalf("unexpected session %+v", auth)
	}

	if w := doWithCookie(r, "/has", cookie); w.Code != http.StatusOK {
		t.Fatalf("HasSession false for a saved session, status %d", w.Code)
	}

	cleared := doWithCookie(r, "/clear", cookie)
	if w := doWithCookie(r, "/has", sessionCookie(cleared)); w.Code != http.StatusNoContent {
		t.Fatalf("HasSession true after clear, status %d", w.Code)
	}
	doWithCookie(r, "/load", sessionCookie(cleared))
	if _, ok := models.CurrentUser(loaded); ok {
		t.Fatal("cleared session still authenticated")
	}
}
