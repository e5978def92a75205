package dto

import "time"

// User is the outward representation of a user. There is intentionally no
// password hash field here, so it cannot leak by serialization.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Handle    string    `json:"handle"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Availability echoes the checked value verbatim together with both views of
// the answer; Available is always the negation of Exists.
type Availability struct {
	Value     string
	Exists    bool
	Available bool
}
