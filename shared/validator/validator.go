package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"hotel/shared/constant"
	"hotel/shared/failure"

	val "github.com/go-playground/validator/v10"
)

const (
	mobileNumberLength = 10
	bytesPerMegabyte   = 1024 * 1024
)

var validate *val.Validate

// IsValidPhoneNumber reports whether s is a 10 digit mobile number whose
// first digit is 6, 7, 8 or 9.
func IsValidPhoneNumber(s string) bool {
	if len(s) != mobileNumberLength {
		return false
	}

	if s[0] < '6' || s[0] > '9' {
		return false
	}

	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func fileHeader(field val.FieldLevel) (*multipart.FileHeader, bool) {
	switch file := field.Field().Interface().(type) {
	case multipart.FileHeader:
		return &file, true
	case *multipart.FileHeader:
		return file, file != nil
	default:
		return nil, false
	}
}

func validateMimetype(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	contentType := file.Header.Get(constant.RequestHeaderContentType)

	return slices.Contains(strings.Fields(field.Param()), contentType)
}

func validateFileSize(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(file.Size) <= maxSizeMB*bytesPerMegabyte
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	validations := map[string]val.Func{
		"mobile": func(fl val.FieldLevel) bool {
			return IsValidPhoneNumber(fl.Field().String())
		},
		"mimetypes":   validateMimetype,
		"maxfilesize": validateFileSize,
	}

	for tag, fn := range validations {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate decodes JSON from r into data and validates the result.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

// ValidateID rejects a value that cannot be a uuid primary key, naming it
// in the message.
func ValidateID(name, id string) error {
	if err := validate.Var(id, "uuid"); err != nil {
		return failure.BadRequestFromString(strings.ReplaceAll(messages["uuid"], "{field}", name))
	}

	return nil
}
