package validator_test

import (
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"hotel/shared/failure"
	"hotel/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guestRequest struct {
	Name     string `json:"guest_name"  validate:"required,max=100"`
	Email    string `json:"guest_email" validate:"required,email"`
	Phone    string `json:"guest_phone" validate:"required,mobile"`
	Rooms    int    `json:"rooms"       validate:"gte=1,lte=10"`
	Category string `json:"category"    validate:"oneof=standard suite"`
}

func validGuest() guestRequest {
	return guestRequest{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Rooms:    1,
		Category: "suite",
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{phone: "9876543210", valid: true},
		{phone: "6000000000", valid: true},
		{phone: "7123456789", valid: true},
		{phone: "8999999999", valid: true},
		{phone: "5876543210", valid: false},
		{phone: "0876543210", valid: false},
		{phone: "987654321", valid: false},
		{phone: "98765432101", valid: false},
		{phone: "98765a3210", valid: false},
		{phone: "+919876543", valid: false},
		{phone: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.valid, validator.IsValidPhoneNumber(tt.phone))
		})
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*guestRequest)
		message string
	}{
		{name: "valid", mutate: func(*guestRequest) {}},
		{name: "missing name", mutate: func(g *guestRequest) { g.Name = "" }, message: "guest_name is required"},
		{name: "invalid email", mutate: func(g *guestRequest) { g.Email = "asha" }, message: "guest_email must be a valid email address"},
		{
			name:    "invalid phone",
			mutate:  func(g *guestRequest) { g.Phone = "5876543210" },
			message: "guest_phone must be a 10 digit mobile number starting with 6, 7, 8 or 9",
		},
		{name: "rooms out of range", mutate: func(g *guestRequest) { g.Rooms = 0 }, message: "rooms must be greater than or equal to 1"},
		{name: "unknown category", mutate: func(g *guestRequest) { g.Category = "villa" }, message: "category must be one of standard suite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validGuest()
			tt.mutate(&data)

			err := validator.ValidateStruct(&data)
			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name: "valid body",
			body: `{"guest_name":"Asha","guest_email":"asha@example.com","guest_phone":"9876543210","rooms":2,"category":"standard"}`,
		},
		{
			name:        "invalid phone",
			body:        `{"guest_name":"Asha","guest_email":"asha@example.com","guest_phone":"12345","rooms":2,"category":"standard"}`,
			expectError: true,
		},
		{name: "malformed body", body: `{"guest_name":`, expectError: true},
		{name: "empty body", body: `{}`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data guestRequest

			err := validator.Validate(strings.NewReader(tt.body), &data)
			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("9876543210", "mobile"))
	assert.Error(t, validator.ValidateVar("1234567890", "mobile"))
	assert.NoError(t, validator.ValidateVar("2025-05-14", "datetime=2006-01-02"))
	assert.Error(t, validator.ValidateVar("14-05-2025", "datetime=2006-01-02"))
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, validator.ValidateID("room_type_id", "5b0f3c8e-8f3a-4d7e-9c61-2f1b7f0a9d11"))

	err := validator.ValidateID("room_type_id", "deluxe")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, "room_type_id must be a valid id", err.Error())
}

func TestFileValidation(t *testing.T) {
	type upload struct {
		Image *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/jpeg image/png,maxfilesize=1"`
	}

	header := func(contentType string, size int64) *multipart.FileHeader {
		return &multipart.FileHeader{
			Filename: "suite.jpg",
			Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
			Size:     size,
		}
	}

	assert.NoError(t, validator.ValidateStruct(&upload{Image: header("image/jpeg", 512*1024)}))

	err := validator.ValidateStruct(&upload{Image: header("application/pdf", 512)})
	require.Error(t, err)
	assert.Equal(t, "image must be one of image/jpeg image/png", err.Error())

	err = validator.ValidateStruct(&upload{Image: header("image/png", 2*1024*1024)})
	require.Error(t, err)
	assert.Equal(t, "image must not exceed 1 MB", err.Error())
}
