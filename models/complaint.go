package models

import (
	"bytes"
	"fmt"
	"strconv"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	StatusOpen       = "open"
	StatusInProgress = "in-progress"
	StatusClosed     = "closed"
)

// Priorities and Statuses list the accepted values in display order.
var (
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}
	Statuses   = []string{StatusOpen, StatusInProgress, StatusClosed}
)

// Complaint is a complaint as listed by the API. Department name is joined in
// by the server.
type Complaint struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	DepartmentID   int    `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Priority       string `json:"priority"`
	Status         string `json:"status"`
	Anonymous      Flag   `json:"anonymous"`
	UserID         *int   `json:"user_id"`
	SubmissionDate string `json:"submission_date,omitempty"`
}

// Flag is a boolean that also accepts the 0/1 integers SQLite-backed APIs
// emit for BOOLEAN columns.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	switch string(data) {
	case "null", "":
		*f = false
		return nil
	case "true":
		*f = true
		return nil
	case "false":
		*f = false
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("models: invalid flag value %s", data)
	}
	*f = n != 0
	return nil
}

// StatusLabel is the human label for a status value.
func StatusLabel(status string) string {
	switch status {
	case StatusOpen:
		return "Open"
	case StatusInProgress:
		return "In Progress"
	case StatusClosed:
		return "Closed"
	default:
		return status
	}
}

func PriorityLabel(priority string) string {
	switch priority {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return priority
	}
}
