package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	RoomNumber string `json:"room_number"  validate:"required,max=20"`
	Floor      int    `json:"floor"        validate:"gte=0"`
	RoomTypeID string `json:"room_type_id" validate:"required,uuid"`
	Status     string `json:"status"       validate:"omitempty,oneof=available maintenance"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := model.StatusAvailable
	if c.Status != "" {
		status = model.Status(c.Status)
	}

	return model.Room{
		ID:         uuid.NewString(),
		RoomNumber: c.RoomNumber,
		Floor:      c.Floor,
		RoomTypeID: c.RoomTypeID,
		Status:     status,
		Metadata:   gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateRoomRequest struct {
	RoomNumber string `db:"room_number"  json:"room_number"  validate:"omitempty,max=20"`
	Floor      *int   `db:"floor"        json:"floor"        validate:"omitempty,gte=0"`
	RoomTypeID string `db:"room_type_id" json:"room_type_id" validate:"omitempty,uuid"`
}

// UpdateRoomStatusRequest is the manual override from the admin panel.
type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available prebooked booked maintenance"`
}

type RoomResponse struct {
	ID           string `json:"id"`
	RoomNumber   string `json:"room_number"`
	Floor        int    `json:"floor"`
	RoomTypeID   string `json:"room_type_id"`
	RoomTypeName string `json:"room_type_name"`
	Status       string `json:"status"`
	StatusLabel  string `json:"status_label"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(m model.Room) {
	r.ID = m.ID
	r.RoomNumber = m.RoomNumber
	r.Floor = m.Floor
	r.RoomTypeID = m.RoomTypeID
	r.RoomTypeName = m.RoomTypeName
	r.Status = string(m.Status)
	r.StatusLabel = m.Status.Label()
	r.Metadata.FromModel(m.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

// RoomFilter holds the optional listing filters.
type RoomFilter struct {
	RoomTypeID string
	Status     string
	Floor      *int
}

func (f RoomFilter) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	if f.RoomTypeID != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldRoomTypeID, Value: f.RoomTypeID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Status != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldStatus, Value: f.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Floor != nil {
		filters = append(filters, gDto.Filter{Field: model.FieldFloor, Value: *f.Floor, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return gDto.FilterGroup{Filters: filters}
}
