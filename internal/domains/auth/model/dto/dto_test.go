package dto_test

import (
	"testing"

	"hotel/infras/jwt"
	"hotel/internal/domains/auth/model/dto"
	"hotel/shared/constant"
	"hotel/shared/validator"

	"github.com/stretchr/testify/assert"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    "Front.Desk@Hotel.Test",
		Password: "password123",
		FullName: "Front Desk",
		Role:     constant.RoleStaff,
	}

	user := req.ToUserModel("admin-id", "hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "front.desk@hotel.test", user.Email)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, constant.RoleStaff, user.Role)
	assert.True(t, user.Active)
	assert.Equal(t, "admin-id", user.CreatedBy)
	assert.False(t, user.IsAdmin())
}

func TestRegisterRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.RegisterRequest
		wantErr bool
	}{
		{
			name:    "valid",
			req:     dto.RegisterRequest{Email: "a@hotel.test", Password: "password123", FullName: "A", Role: constant.RoleAdmin},
			wantErr: false,
		},
		{
			name:    "unknown role",
			req:     dto.RegisterRequest{Email: "a@hotel.test", Password: "password123", FullName: "A", Role: "guest"},
			wantErr: true,
		},
		{
			name:    "short password",
			req:     dto.RegisterRequest{Email: "a@hotel.test", Password: "short", FullName: "A", Role: constant.RoleStaff},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestChangePasswordRequest_Validation(t *testing.T) {
	same := dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password123"}
	assert.Error(t, validator.ValidateStruct(&same))

	changed := dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password456"}
	assert.NoError(t, validator.ValidateStruct(&changed))
}
