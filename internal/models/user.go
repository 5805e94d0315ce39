package models

import "time"

// User represents an operator row, including the credentials used for login.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Name         string `db:"name"`
	Role         string `db:"role"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
