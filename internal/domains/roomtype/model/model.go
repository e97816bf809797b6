package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "room_types"
	EntityName = "room_type"

	FieldID        = "id"
	FieldName      = "name"
	FieldSlug      = "slug"
	FieldPrice     = "price"
	FieldImageURLs = "image_urls"
)

// Feature is one highlighted perk on the room type page.
type Feature struct {
	Icon        string `json:"icon"        validate:"required,max=50"`
	Text        string `json:"text"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// Features is stored as a JSONB array.
type Features []Feature

func (f Features) Value() (driver.Value, error) {
	if f == nil {
		return []byte("[]"), nil
	}

	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal features: %w", err)
	}

	return b, nil
}

func (f *Features) Scan(src any) error {
	var raw []byte

	switch v := src.(type) {
	case nil:
		*f = Features{}

		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("features: unsupported source type")
	}

	if err := json.Unmarshal(raw, f); err != nil {
		return fmt.Errorf("failed to unmarshal features: %w", err)
	}

	return nil
}

type RoomType struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Slug         string         `db:"slug"`
	Price        float64        `db:"price"`
	MaxOccupancy int            `db:"max_occupancy"`
	RoomSize     string         `db:"room_size"`
	Amenities    pq.StringArray `db:"amenities"`
	Features     Features       `db:"features"`
	ImageURLs    pq.StringArray `db:"image_urls"`
	model.Metadata
}

// Slugify turns a display name into a URL segment: "A/C Room" -> "a-c-room".
func Slugify(name string) string {
	var b strings.Builder

	dash := false

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)

			dash = false

			continue
		}

		if !dash && b.Len() > 0 {
			b.WriteByte('-')

			dash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
