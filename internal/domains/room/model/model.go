package model

import (
	"slices"

	"hotel/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldRoomNumber = "room_number"
	FieldFloor      = "floor"
	FieldRoomTypeID = "room_type_id"
	FieldStatus     = "status"
)

// Cache prefixes, shared with the booking service which changes room status.
const (
	CacheGet   = "room:get"
	CacheGets  = "room:gets"
	CacheCount = "room:count"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusPrebooked   Status = "prebooked"
	StatusBooked      Status = "booked"
	StatusMaintenance Status = "maintenance"
)

var statusLabels = map[Status]string{
	StatusAvailable:   "Available",
	StatusPrebooked:   "Pre-booked",
	StatusBooked:      "Booked",
	StatusMaintenance: "Under Maintenance",
}

// AllStatuses lists the statuses in display order.
var AllStatuses = []Status{StatusAvailable, StatusPrebooked, StatusBooked, StatusMaintenance}

func (s Status) IsValid() bool {
	return slices.Contains(AllStatuses, s)
}

// Label is the human readable name shown in the admin panel.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}

	return string(s)
}

type Room struct {
	ID           string `db:"id"`
	RoomNumber   string `db:"room_number"`
	Floor        int    `db:"floor"`
	RoomTypeID   string `db:"room_type_id"`
	Status       Status `db:"status"`
	RoomTypeName string `db:"room_type_name" table:"room_types" column:"name"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "LEFT JOIN room_types ON room_types.id = rooms.room_type_id"
}
