package dto

import "fmt"

// RoomTypeReport aggregates one room type over the report window.
type RoomTypeReport struct {
	RoomTypeID    string  `json:"room_type_id"`
	RoomType      string  `json:"room_type"`
	TotalRevenue  float64 `json:"total_revenue"`
	BookingCount  int     `json:"booking_count"`
	AverageRate   float64 `json:"average_rate"`
	TotalRooms    int     `json:"total_rooms"`
	BookedRooms   int     `json:"booked_rooms"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

type Totals struct {
	TotalRevenue  float64 `json:"total_revenue"`
	BookingCount  int     `json:"booking_count"`
	AverageRate   float64 `json:"average_rate"`
	TotalRooms    int     `json:"total_rooms"`
	BookedRooms   int     `json:"booked_rooms"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

type ReportResponse struct {
	From      string           `json:"from,omitempty"`
	To        string           `json:"to,omitempty"`
	RoomTypes []RoomTypeReport `json:"room_types"`
	Totals    Totals           `json:"totals"`
}

// FileName names the export after its window, or "all" when unbounded.
func (r ReportResponse) FileName() string {
	switch {
	case r.From == "":
		return "report-all.xlsx"
	case r.From == r.To:
		return fmt.Sprintf("report-%s.xlsx", r.From)
	default:
		return fmt.Sprintf("report-%s-to-%s.xlsx", r.From, r.To)
	}
}

type ExportResponse struct {
	FileName    string
	ContentType string
	Content     []byte
}
