package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/password"
	"hotel/shared/timezone"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func staffUser(t *testing.T) userModel.User {
	t.Helper()

	hashed, err := password.Hash("password")
	require.NoError(t, err)

	return userModel.User{
		ID:       "user-id-123",
		Email:    "desk@hotel.test",
		Password: hashed,
		Role:     constant.RoleStaff,
		FullName: "Front Desk",
		Active:   true,
		Metadata: gModel.NewMetadata(timezone.Now(), constant.ContextAdmin),
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, mocks.NewOtel(), mockJWT)

	validUser := staffUser(t)

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "Desk@hotel.test", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(validUser.ID, validUser.Email, validUser.Role).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login failure does not block login",
			req:  dto.LoginRequest{Email: "desk@hotel.test", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(validUser.ID, validUser.Email, validUser.Role).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
		},
		{
			name: "user not found",
			req:  dto.LoginRequest{Email: "nobody@hotel.test", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "repository error",
			req:  dto.LoginRequest{Email: "desk@hotel.test", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "desk@hotel.test", Password: "wrongpassword"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "desk@hotel.test", Password: "password"},
			setupMock: func() {
				inactiveUser := validUser
				inactiveUser.Active = false

				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactiveUser, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "desk@hotel.test", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(validUser.ID, validUser.Email, validUser.Role).
					Return(nil, errors.New("token generation failed"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "refresh-token", res.RefreshToken)
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *userMocks.MockUser)
		wantCode  int
	}{
		{
			name: "successful register",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user userModel.User) error {
					if user.Email != "new@hotel.test" || user.Role != constant.RoleStaff || user.CreatedBy != "admin-id" {
						return errors.New("unexpected user")
					}

					return password.Verify("password123", user.Password)
				})
			},
		},
		{
			name: "email already registered",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "concurrent insert of same email",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "exist check fails",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := userMocks.NewMockUser(ctrl)
			svc := service.New(repo, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

			tt.setupMock(repo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")

			res, err := svc.Register(ctx, dto.RegisterRequest{
				Email:    "New@hotel.test",
				Password: "password123",
				FullName: "New Staff",
				Role:     constant.RoleStaff,
			})

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "new@hotel.test", res.Email)
			assert.True(t, res.Active)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(userMocks.NewMockUser(ctrl), mocks.NewOtel(), mockJWT)

	mockJWT.EXPECT().RefreshTokens("good").Return(&jwt.TokenPair{AccessToken: "new-access"}, nil)
	mockJWT.EXPECT().RefreshTokens("bad").Return(nil, jwt.ErrExpiredToken)

	res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "good"})
	require.NoError(t, err)
	assert.Equal(t, "new-access", res.AccessToken)

	_, err = svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestAuthService_ChangePassword(t *testing.T) {
	user := staffUser(t)

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(repo *userMocks.MockUser)
		wantCode  int
	}{
		{
			name: "success",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "password456"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ any) error {
						hashed, _ := fields[userModel.FieldPassword].(string)

						return password.Verify("password456", hashed)
					})
			},
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "password456"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "user missing",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "password456"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := userMocks.NewMockUser(ctrl)
			svc := service.New(repo, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

			tt.setupMock(repo)

			err := svc.ChangePassword(context.Background(), tt.req, user.ID)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestAuthService_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := userMocks.NewMockUser(ctrl)
	svc := service.New(repo, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	user := staffUser(t)
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

	res, err := svc.Me(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, user.Email, res.Email)
	assert.Equal(t, constant.RoleStaff, res.Role)
	assert.Nil(t, res.LastLoginAt)
}
