package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"complaint-portal/models"
	"complaint-portal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.Use(sessions.Sessions("complaint_session", cookie.NewStore([]byte("test-secret"))))
	r.GET("/login", func(c *gin.Context) {
		store := services.NewCookieSessionStore(sessions.Default(c))
		if err := store.Save(models.Authenticated{Token: "tok", User: models.User{ID: 1, Role: models.RoleStudent}}); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, services.RequestIDFromContext(c.Request.Context()))
	})
	r.GET("/private", RequireSession(), func(c *gin.Context) {
		c.String(http.StatusOK, "inside")
	})
	return r
}

func TestRequireSessionRedirectsWithoutToken(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Fatalf("expected 303 to /, got %d %q", w.Code, w.Header().Get("Location"))
	}
	if strings.Contains(w.Body.String(), "inside") {
		t.Fatal("handler ran without a session")
	}
}

func TestRequireSessionPassesWithToken(t *testing.T) {
	r := newRouter()

	login := httptest.NewRecorder()
	r.ServeHTTP(login, httptest.NewRequest(http.MethodGet, "/login", nil))
	cookie := strings.SplitN(login.Header().Get("Set-Cookie"), ";", 2)[0]

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Cookie", cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "inside" {
		t.Fatalf("expected handler to run, got %d %q", w.Code, w.Body.String())
	}
}

func TestRequestIDGeneratedAndForwarded(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))
	id := w.Header().Get(services.RequestIDHeader)
	if len(id) != 36 {
		t.Fatalf("expected a uuid request id, got %q", id)
	}
	if w.Body.String() != id {
		t.Fatalf("context id %q does not match header %q", w.Body.String(), id)
	}

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(services.RequestIDHeader, "given")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "given" {
		t.Fatalf("caller id not reused, got %q", w.Body.String())
	}
}

func TestRequestIDRejectsUnsafeCallerID(t *testing.T) {
	r := newRouter()

	for _, given := range []string{strings.Repeat("a", 65), "bad id", "line\x01break", "café"} {
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set(services.RequestIDHeader, given)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		got := w.Body.String()
		if got == given || len(got) != 36 {
			t.Errorf("caller id %q should be replaced by a uuid, got %q", given, got)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(services.RequestIDHeader, strings.Repeat("a", 64))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != strings.Repeat("a", 64) {
		t.Fatalf("64 character id should be kept, got %q", w.Body.String())
	}
}
