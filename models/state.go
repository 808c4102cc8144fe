package models

// ViewState is everything a page render depends on.
type ViewState struct {
	Session       SessionState
	Page          AuthMode
	Ready         bool
	Complaints    []Complaint
	Departments   []Department
	AuthForm      AuthForm
	ComplaintForm ComplaintForm
	AnonymousID   string
	Alert         string
	Notice        string
}

// NewViewState is the state of a fresh, logged-out client.
func NewViewState() ViewState {
	return ViewState{
		Session:       Unauthenticated{},
		Page:          ModeLogin,
		AuthForm:      NewAuthForm(),
		ComplaintForm: NewComplaintForm(),
	}
}
