package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestComplaintAnonymousFlag(t *testing.T) {
	cases := map[string]bool{
		`{"anonymous": true}`:  true,
		`{"anonymous": false}`: false,
		`{"anonymous": 1}`:     true,
		`{"anonymous": 0}`:     false,
		`{"anonymous": null}`:  false,
		`{"anonymous": "1"}`:   true,
		`{}`:                   false,
	}
	for payload, expect := range cases {
		var c Complaint
		if err := json.Unmarshal([]byte(payload), &c); err != nil {
			t.Fatalf("unmarshal %s: %v", payload, err)
		}
		if bool(c.Anonymous) != expect {
			t.Errorf("%s: anonymous = %v, want %v", payload, c.Anonymous, expect)
		}
	}

	var c Complaint
	if err := json.Unmarshal([]byte(`{"anonymous": "maybe"}`), &c); err == nil {
		t.Error("expected error for non-boolean anonymous value")
	}
}

func TestUserDropsPassword(t *testing.T) {
	payload := `{"id": 3, "email": "a@college.edu", "name": "A", "role": "student", "password": "$2b$12$hash"}`
	var u User
	if err := json.Unmarshal([]byte(payload), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, _ := json.Marshal(u)
	if string(out) != `{"id":3,"name":"A","email":"a@college.edu","role":"student"}` {
		t.Fatalf("unexpected user encoding: %s", out)
	}
}

func TestStatusLabel(t *testing.T) {
	cases := map[string]string{
		StatusOpen:       "Open",
		StatusInProgress: "In Progress",
		StatusClosed:     "Closed",
		"escalated":      "escalated",
	}
	for status, expect := range cases {
		if got := StatusLabel(status); got != expect {
			t.Errorf("StatusLabel(%q) = %q, want %q", status, got, expect)
		}
	}
}

func TestClaimsExpired(t *testing.T) {
	now := time.Now()

	c := Claims{}
	if c.Expired(now) {
		t.Error("claims without exp should not expire")
	}

	c.ExpiresAt = jwt.NewNumericDate(now.Add(time.Hour))
	if c.Expired(now) {
		t.Error("future exp reported as expired")
	}

	c.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
	if !c.Expired(now) {
		t.Error("past exp reported as valid")
	}
}

func TestCurrentUser(t *testing.T) {
	if _, ok := CurrentUser(Unauthenticated{}); ok {
		t.Fatal("unauthenticated state returned a user")
	}
	auth, ok := CurrentUser(Authenticated{Token: "t", User: User{Role: RoleAdmin}})
	if !ok || auth.Token != "t" || !auth.User.IsAdmin() {
		t.Fatalf("unexpected session: %+v", auth)
	}
}
