package database

import "fmt"

// Custom errors shared by the postgres repositories.
var (
	ErrUserNotFound    = fmt.Errorf("user not found")
	ErrSessionNotFound = fmt.Errorf("agent session not found")
)
