package entity

import "time"

// User is an administrator account. PasswordHash never leaves the service
// layer; UserOut is the only shape handlers serialize.
type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// UserOut is the external projection of an admin account.
type UserOut struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Out converts the row to its external projection.
func (u *User) Out() UserOut {
	return UserOut{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}
