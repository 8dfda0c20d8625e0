package user

import (
	"context"
	"database/sql"
	"time"
)

// Role determines how the escalation router treats a user.
type Role string

const (
	RoleMember      Role = "member"
	RoleCaseManager Role = "case_manager"
	RoleAdmin       Role = "admin"
)

// User is a platform account. The engine only ever reads users: to find
// an appointment's owner, a member's assigned case manager, or the admin
// pool for fan-out.
type User struct {
	ID            int64
	FirstName     string
	Role          Role
	CaseManagerID sql.NullInt64
	PushToken     sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Repository defines read-only access to users.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)

	// ListAdmins returns up to limit admin-role users, bounding every
	// admin fan-out.
	ListAdmins(ctx context.Context, limit int) ([]*User, error)
}
