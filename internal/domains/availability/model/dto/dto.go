package dto

import roomModel "hotel/internal/domains/room/model"

type RoomStatusResponse struct {
	ID           string `json:"id"`
	RoomNumber   string `json:"room_number"`
	Floor        int    `json:"floor"`
	RoomTypeID   string `json:"room_type_id"`
	RoomTypeName string `json:"room_type_name"`
	StoredStatus string `json:"stored_status"`
	Status       string `json:"status"`
	StatusLabel  string `json:"status_label"`
}

func (r *RoomStatusResponse) FromModel(room roomModel.Room, effective roomModel.Status) {
	r.ID = room.ID
	r.RoomNumber = room.RoomNumber
	r.Floor = room.Floor
	r.RoomTypeID = room.RoomTypeID
	r.RoomTypeName = room.RoomTypeName
	r.StoredStatus = string(room.Status)
	r.Status = string(effective)
	r.StatusLabel = effective.Label()
}

// RoomStatusesResponse is the availability board for one window.
type RoomStatusesResponse struct {
	From    string                   `json:"from"`
	To      string                   `json:"to"`
	Rooms   []RoomStatusResponse     `json:"rooms"`
	Summary map[roomModel.Status]int `json:"summary"`
}

func NewRoomStatusesResponse(from, to string) RoomStatusesResponse {
	summary := make(map[roomModel.Status]int, len(roomModel.AllStatuses))
	for _, status := range roomModel.AllStatuses {
		summary[status] = 0
	}

	return RoomStatusesResponse{
		From:    from,
		To:      to,
		Rooms:   []RoomStatusResponse{},
		Summary: summary,
	}
}

func (r *RoomStatusesResponse) Add(room roomModel.Room, effective roomModel.Status) {
	res := RoomStatusResponse{}
	res.FromModel(room, effective)

	r.Rooms = append(r.Rooms, res)
	r.Summary[effective]++
}
