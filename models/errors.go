package models

import "errors"

var (
	ErrNotFound     = errors.New("models: no matching record found")
	ErrUnauthorized = errors.New("models: session is not authorized")
	ErrNoSession    = errors.New("models: no active session")
)
