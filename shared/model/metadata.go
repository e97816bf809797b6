package model

import "time"

type Metadata struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	CreatedBy string    `db:"created_by"`
	UpdatedBy string    `db:"updated_by"`
}

// NewMetadata stamps a freshly created row.
func NewMetadata(at time.Time, user string) Metadata {
	return Metadata{
		CreatedAt: at,
		UpdatedAt: at,
		CreatedBy: user,
		UpdatedBy: user,
	}
}
