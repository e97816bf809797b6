package model

import (
	bookingModel "hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/dto"
)

// Project computes the status a room shows for the window of filter. The
// stored status is only honoured for maintenance; everything else is derived
// from confirmed bookings that reference the room. room is never modified.
func Project(room roomModel.Room, bookings []bookingModel.Booking, filter dto.DateFilter) roomModel.Status {
	if room.Status == roomModel.StatusMaintenance {
		return roomModel.StatusMaintenance
	}

	from, to := filter.Window()
	upcoming := false

	for _, booking := range bookings {
		if booking.BookingStatus != bookingModel.StatusConfirmed || !references(booking, room.ID) {
			continue
		}

		if booking.Overlaps(from, to) {
			return roomModel.StatusBooked
		}

		if filter.IsSingleDate() && booking.CheckInDate.After(from) {
			upcoming = true
		}
	}

	if upcoming {
		return roomModel.StatusPrebooked
	}

	return roomModel.StatusAvailable
}

func references(booking bookingModel.Booking, roomID string) bool {
	for _, id := range booking.AllocatedRoomIDs() {
		if id == roomID {
			return true
		}
	}

	return false
}
