package domain

import "time"

// User is the sole persisted entity. Username, Email and Handle are each
// globally unique; the database indexes are the only arbiter of that.
// PasswordHash never leaves the service boundary.
type User struct {
	ID           int64
	Username     string
	Email        string
	Handle       string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Field names one of the unique columns an availability check can target.
type Field string

const (
	FieldUsername Field = "username"
	FieldEmail    Field = "email"
	FieldHandle   Field = "handle"
)
