package repository

import (
	"errors"

	"hotel/shared/constant"

	"github.com/lib/pq"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation, optionally on the named constraint.
func IsUniqueViolation(err error, constraint ...string) bool {
	if pqCode(err) != constant.PqErrorCodeUniqueViolation {
		return false
	}

	if len(constraint) == 0 {
		return true
	}

	var pqErr *pq.Error
	errors.As(err, &pqErr)

	for _, name := range constraint {
		if pqErr.Constraint == name {
			return true
		}
	}

	return false
}

// IsForeignKeyViolation reports whether err is a postgres foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeFkViolation
}

// IsInvalidTextRepresentation reports whether postgres could not parse a
// parameter for its column type, such as a malformed uuid.
func IsInvalidTextRepresentation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeInvalidTextRepresentation
}
