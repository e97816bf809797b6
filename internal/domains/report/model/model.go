package model

import (
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/report/model/dto"
	roomModel "hotel/internal/domains/room/model"
	roomTypeModel "hotel/internal/domains/roomtype/model"
)

// ReportableStatuses are the booking statuses that count as revenue.
var ReportableStatuses = []bookingModel.Status{bookingModel.StatusConfirmed, bookingModel.StatusCompleted}

// Summarize builds the per room type report. bookings must already be
// narrowed to the report window and to ReportableStatuses.
func Summarize(roomTypes []roomTypeModel.RoomType, rooms []roomModel.Room, bookings []bookingModel.Booking) (res dto.ReportResponse) {
	roomsByType := map[string]map[string]struct{}{}
	for _, room := range rooms {
		if roomsByType[room.RoomTypeID] == nil {
			roomsByType[room.RoomTypeID] = map[string]struct{}{}
		}

		roomsByType[room.RoomTypeID][room.ID] = struct{}{}
	}

	bookingsByType := map[string][]bookingModel.Booking{}
	for _, booking := range bookings {
		bookingsByType[booking.RoomTypeID] = append(bookingsByType[booking.RoomTypeID], booking)
	}

	res.RoomTypes = make([]dto.RoomTypeReport, 0, len(roomTypes))

	for _, roomType := range roomTypes {
		typeRooms := roomsByType[roomType.ID]
		booked := map[string]struct{}{}

		report := dto.RoomTypeReport{
			RoomTypeID: roomType.ID,
			RoomType:   roomType.Name,
			TotalRooms: len(typeRooms),
		}

		for _, booking := range bookingsByType[roomType.ID] {
			report.TotalRevenue += booking.TotalAmount
			report.BookingCount++

			for _, roomID := range booking.AllocatedRoomIDs() {
				if _, ok := typeRooms[roomID]; ok {
					booked[roomID] = struct{}{}
				}
			}
		}

		report.BookedRooms = len(booked)
		report.AverageRate = ratio(report.TotalRevenue, report.BookingCount)
		report.OccupancyRate = percentage(report.BookedRooms, report.TotalRooms)

		res.RoomTypes = append(res.RoomTypes, report)

		res.Totals.TotalRevenue += report.TotalRevenue
		res.Totals.BookingCount += report.BookingCount
		res.Totals.TotalRooms += report.TotalRooms
		res.Totals.BookedRooms += report.BookedRooms
	}

	res.Totals.AverageRate = ratio(res.Totals.TotalRevenue, res.Totals.BookingCount)
	res.Totals.OccupancyRate = percentage(res.Totals.BookedRooms, res.Totals.TotalRooms)

	return res
}

func ratio(total float64, count int) float64 {
	if count == 0 {
		return 0
	}

	return total / float64(count)
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}

	return float64(part) / float64(whole) * 100
}
