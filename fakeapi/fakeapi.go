// Package fakeapi is an in-memory complaint API for tests. It follows the
// production API's contract closely, including its quirks: /register does not
// sign the user in, /login echoes the stored user row, anonymous is a 0/1
// integer, and tokens are HS256 JWTs carrying the email.
package fakeapi

import (
	"net/http"
	"sync"
	"time"

	"complaint-portal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminEmail    = "admin@college.edu"
	AdminPassword = "admin123"
)

// DefaultDepartments are seeded on New, ids starting at 1.
var DefaultDepartments = []string{"Hostel", "IT", "Classroom", "Mess", "Library"}

type account struct {
	ID           int
	Email        string
	Name         string
	Role         string
	PasswordHash string
}

type complaint struct {
	ID           string
	Title        string
	Description  string
	DepartmentID int
	Priority     string
	Status       string
	Anonymous    bool
	UserID       *int
	SubmittedAt  time.Time
}

// Server holds the fake's data. The zero value is not usable; call New.
type Server struct {
	// RegisterIssuesToken makes /register answer like /login.
	RegisterIssuesToken bool
	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration

	mu          sync.Mutex
	secret      []byte
	accounts    map[string]*account
	nextID      int
	departments []models.Department
	complaints  []*complaint
	calls       map[string]int
}

func New() *Server {
	s := &Server{
		TokenTTL: 24 * time.Hour,
		secret:   []byte("fakeapi-secret"),
		accounts: make(map[string]*account),
		calls:    make(map[string]int),
	}
	for i, name := range DefaultDepartments {
		s.departments = append(s.departments, models.Department{ID: i + 1, Name: name})
	}
	s.addAccount(AdminEmail, "Admin", models.RoleAdmin, AdminPassword)
	return s
}

// Handler returns the API's routes.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.countCalls)

	r.POST("/register", s.register)
	r.POST("/login", s.login)
	r.GET("/departments", s.listDepartments)
	r.GET("/complaints/anonymous/:id", s.anonymousComplaint)

	authed := r.Group("/", s.requireToken)
	{
		authed.GET("/complaints", s.listComplaints)
		authed.POST("/complaints", s.createComplaint)
		authed.PUT("/complaints/:id", s.updateStatus)
	}
	return r
}

// Calls reports how many requests hit a route, e.g. Calls("GET", "/complaints").
func (s *Server) Calls(method, route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method+" "+route]
}

func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = make(map[string]int)
}

// IssueToken signs a token for email valid for ttl; a negative ttl gives an
// already expired token.
func (s *Server) IssueToken(email string, ttl time.Duration) string {
	claims := models.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

// AddUser creates an account directly and returns its id.
func (s *Server) AddUser(email, name, role, password string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addAccount(email, name, role, password).ID
}

func (s *Server) addAccount(email, name, role, password string) *account {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.nextID++
	acc := &account{ID: s.nextID, Email: email, Name: name, Role: role, PasswordHash: string(hash)}
	s.accounts[email] = acc
	return acc
}

func (s *Server) countCalls(c *gin.Context) {
	c.Next()
	s.mu.Lock()
	s.calls[c.Request.Method+" "+c.FullPath()]++
	s.mu.Unlock()
}

func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

type credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (s *Server) register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"detail": []gin.H{{"loc": []string{"body"}, "msg": "field required", "type": "value_error.missing"}},
		})
		return
	}
	if req.Role == "" {
		req.Role = models.RoleStudent
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		detail(c, http.StatusBadRequest, "Email already exists")
		return
	}
	acc := s.addAccount(req.Email, req.Name, req.Role, req.Password)

	if s.RegisterIssuesToken {
		c.JSON(http.StatusOK, gin.H{"token": s.IssueToken(acc.Email, s.TokenTTL), "user": userRow(acc)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User created successfully"})
}

func (s *Server) login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "field required")
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[req.Email]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)) != nil {
		detail(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": s.IssueToken(acc.Email, s.TokenTTL), "user": userRow(acc)})
}

// userRow is the whole stored row, the way the API leaks it.
func userRow(acc *account) gin.H {
	return gin.H{
		"id":       acc.ID,
		"email":    acc.Email,
		"name":     acc.Name,
		"role":     acc.Role,
		"password": acc.PasswordHash,
	}
}

func (s *Server) requireToken(c *gin.Context) {
	var claims models.Claims
	_, err := jwt.ParseWithClaims(c.GetHeader("Authorization"), &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		detail(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[claims.Email]
	s.mu.Unlock()
	if !ok {
		detail(c, http.StatusUnauthorized, "Invalid token")
		return
	}
	c.Set("account", acc)
	c.Next()
}

func (s *Server) listDepartments(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gin.H, 0, len(s.departments))
	for _, d := range s.departments {
		out = append(out, gin.H{"id": d.ID, "name": d.Name})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listComplaints(c *gin.Context) {
	acc := c.MustGet("account").(*account)

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gin.H, 0, len(s.complaints))
	for _, cp := range s.complaints {
		if acc.Role != models.RoleAdmin && (cp.UserID == nil || *cp.UserID != acc.ID) {
			continue
		}
		if row, ok := s.complaintRow(cp); ok {
			out = append(out, row)
		}
	}
	c.JSON(http.StatusOK, out)
}

type complaintInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	DepartmentID int    `json:"department_id" binding:"required"`
	Priority     string `json:"priority"`
	Anonymous    bool   `json:"anonymous"`
}

func (s *Server) createComplaint(c *gin.Context) {
	acc := c.MustGet("account").(*account)

	var req complaintInput
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "field required")
		return
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}

	cp := &complaint{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		DepartmentID: req.DepartmentID,
		Priority:     req.Priority,
		Status:       models.StatusOpen,
		Anonymous:    req.Anonymous,
		SubmittedAt:  time.Now().UTC(),
	}
	if !req.Anonymous {
		id := acc.ID
		cp.UserID = &id
	}

	s.mu.Lock()
	s.complaints = append(s.complaints, cp)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "Complaint submitted", "complaint_id": cp.ID})
}

func (s *Server) anonymousComplaint(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cp := range s.complaints {
		if cp.ID != id || !cp.Anonymous {
			continue
		}
		if row, ok := s.complaintRow(cp); ok {
			c.JSON(http.StatusOK, row)
			return
		}
	}
	detail(c, http.StatusNotFound, "Complaint not found")
}

func (s *Server) updateStatus(c *gin.Context) {
	acc := c.MustGet("account").(*account)
	if acc.Role != models.RoleAdmin {
		detail(c, http.StatusForbidden, "Only admin can update status")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "field required")
		return
	}

	s.mu.Lock()
	for _, cp := range s.complaints {
		if cp.ID == c.Param("id") {
			cp.Status = req.Status
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

// complaintRow renders a complaint joined with its department; complaints
// pointing at an unknown department drop out, as an inner join would.
func (s *Server) complaintRow(cp *complaint) (gin.H, bool) {
	for _, d := range s.departments {
		if d.ID != cp.DepartmentID {
			continue
		}
		anonymous := 0
		if cp.Anonymous {
			anonymous = 1
		}
		return gin.H{
			"id":              cp.ID,
			"title":           cp.Title,
			"description":     cp.Description,
			"department_id":   cp.DepartmentID,
			"department_name": d.Name,
			"priority":        cp.Priority,
			"status":          cp.Status,
			"anonymous":       anonymous,
			"user_id":         cp.UserID,
			"submission_date": cp.SubmittedAt.Format("2006-01-02 15:04:05"),
		}, true
	}
	return nil, false
}
