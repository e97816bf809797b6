package dto

import (
	"hotel/internal/domains/user/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"
)

type UserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	FullName    string  `json:"full_name"`
	LastLoginAt *string `json:"last_login_at,omitempty"`
	Active      bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(m model.User) {
	r.ID = m.ID
	r.Email = m.Email
	r.Role = m.Role
	r.FullName = m.FullName
	r.Active = m.Active
	r.Metadata.FromModel(m.Metadata)

	if m.LastLoginAt != nil {
		lastLogin := timezone.Format(*m.LastLoginAt, constant.DateFormat)
		r.LastLoginAt = &lastLogin
	}
}
