package model

import (
	"time"

	"hotel/shared/constant"
	"hotel/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID          = "id"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldRole        = "role"
	FieldFullName    = "full_name"
	FieldLastLoginAt = "last_login_at"
	FieldActive      = "active"
)

// User is a member of hotel staff. Guests never hold accounts.
type User struct {
	ID          string     `db:"id"`
	Email       string     `db:"email"`
	Password    string     `db:"password"`
	Role        string     `db:"role"`
	FullName    string     `db:"full_name"`
	LastLoginAt *time.Time `db:"last_login_at"`
	Active      bool       `db:"active"`
	model.Metadata
}

func (u User) IsAdmin() bool {
	return u.Role == constant.RoleAdmin
}
