package dto

import (
	"time"

	"hotel/internal/domains/booking/model"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/google/uuid"
)

const defaultNumberOfRooms = 1

type CreateBookingRequest struct {
	GuestName       string `json:"guest_name"       validate:"required,max=100"`
	GuestEmail      string `json:"guest_email"      validate:"required,email,max=100"`
	GuestPhone      string `json:"guest_phone"      validate:"required,mobile"`
	CheckInDate     string `json:"check_in_date"    validate:"required,datetime=2006-01-02"`
	CheckOutDate    string `json:"check_out_date"   validate:"required,datetime=2006-01-02"`
	NumberOfRooms   *int   `json:"number_of_rooms"  validate:"omitempty,min=1"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
	RoomTypeID      string `json:"room_type_id"     validate:"required,uuid"`
}

// Stay parses the requested dates. Check-out on the check-in day is accepted.
func (c *CreateBookingRequest) Stay() (checkIn, checkOut time.Time, err error) {
	if checkIn, err = timezone.ParseDate(c.CheckInDate); err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_in_date must be a date in YYYY-MM-DD format")
	}

	if checkOut, err = timezone.ParseDate(c.CheckOutDate); err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_out_date must be a date in YYYY-MM-DD format")
	}

	if checkOut.Before(checkIn) {
		return checkIn, checkOut, failure.BadRequestFromString("check_out_date must not be before check_in_date")
	}

	return checkIn, checkOut, nil
}

func (c *CreateBookingRequest) Rooms() int {
	if c.NumberOfRooms == nil {
		return defaultNumberOfRooms
	}

	return *c.NumberOfRooms
}

// ToModel builds a pending booking priced from its room type. The
// confirmation code and QR data are filled in by the caller.
func (c *CreateBookingRequest) ToModel(user, roomTypeName string, unitPrice float64) (model.Booking, error) {
	checkIn, checkOut, err := c.Stay()
	if err != nil {
		return model.Booking{}, err
	}

	rooms := c.Rooms()

	return model.Booking{
		ID:               uuid.NewString(),
		GuestName:        c.GuestName,
		GuestEmail:       c.GuestEmail,
		GuestPhone:       c.GuestPhone,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		SpecialRequests:  c.SpecialRequests,
		TotalAmount:      unitPrice * float64(rooms),
		NumberOfRooms:    rooms,
		RoomTypeID:       c.RoomTypeID,
		RoomType:         roomTypeName,
		BookingStatus:    model.StatusPending,
		PaymentConfirmed: true,
		Metadata:         gModel.NewMetadata(timezone.Now(), user),
	}, nil
}

type UpdateBookingRequest struct {
	GuestName       string `db:"guest_name"       json:"guest_name"       validate:"omitempty,max=100"`
	GuestEmail      string `db:"guest_email"      json:"guest_email"      validate:"omitempty,email,max=100"`
	GuestPhone      string `db:"guest_phone"      json:"guest_phone"      validate:"omitempty,mobile"`
	SpecialRequests string `db:"special_requests" json:"special_requests" validate:"omitempty,max=1000"`
}

type AllocateRequest struct {
	RoomIDs []string `json:"room_ids" validate:"required,min=1,unique,dive,required,uuid"`
}

type ScanRequest struct {
	Data string `json:"data" validate:"required,max=2000"`
}

type BookingResponse struct {
	ID               string   `json:"id"`
	GuestName        string   `json:"guest_name"`
	GuestEmail       string   `json:"guest_email"`
	GuestPhone       string   `json:"guest_phone"`
	CheckInDate      string   `json:"check_in_date"`
	CheckOutDate     string   `json:"check_out_date"`
	SpecialRequests  string   `json:"special_requests"`
	TotalAmount      float64  `json:"total_amount"`
	NumberOfRooms    int      `json:"number_of_rooms"`
	RoomTypeID       string   `json:"room_type_id"`
	RoomType         string   `json:"room_type"`
	RoomID           *string  `json:"room_id"`
	RoomIDs          []string `json:"room_ids"`
	BookingStatus    string   `json:"booking_status"`
	StatusLabel      string   `json:"status_label"`
	PaymentConfirmed bool     `json:"payment_confirmed"`
	ConfirmationCode string   `json:"confirmation_code"`
	QRData           string   `json:"qr_data"`
	CheckedInAt      string   `json:"checked_in_at,omitempty"`
	CheckedOutAt     string   `json:"checked_out_at,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.GuestName = m.GuestName
	r.GuestEmail = m.GuestEmail
	r.GuestPhone = m.GuestPhone
	r.CheckInDate = m.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = m.CheckOutDate.Format(constant.DateOnlyFormat)
	r.SpecialRequests = m.SpecialRequests
	r.TotalAmount = m.TotalAmount
	r.NumberOfRooms = m.NumberOfRooms
	r.RoomTypeID = m.RoomTypeID
	r.RoomType = m.RoomType
	r.RoomID = m.RoomID
	r.RoomIDs = m.AllocatedRoomIDs()
	r.BookingStatus = string(m.BookingStatus)
	r.StatusLabel = m.BookingStatus.Label()
	r.PaymentConfirmed = m.PaymentConfirmed
	r.ConfirmationCode = m.ConfirmationCode
	r.QRData = m.QRData
	r.Metadata.FromModel(m.Metadata)

	if m.CheckedInAt != nil {
		r.CheckedInAt = timezone.Format(*m.CheckedInAt, constant.DateFormat)
	}

	if m.CheckedOutAt != nil {
		r.CheckedOutAt = timezone.Format(*m.CheckedOutAt, constant.DateFormat)
	}
}

// CreateBookingResponse is what the guest sees after submitting the form.
type CreateBookingResponse struct {
	ConfirmationCode string          `json:"confirmation_code"`
	QRData           string          `json:"qr_data"`
	Booking          BookingResponse `json:"booking"`
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// CandidatesResponse lists the rooms a pending booking can be allocated to.
type CandidatesResponse struct {
	BookingID     string                 `json:"booking_id"`
	RoomTypeID    string                 `json:"room_type_id"`
	NumberOfRooms int                    `json:"number_of_rooms"`
	Rooms         []roomDto.RoomResponse `json:"rooms"`
	CanAllocate   bool                   `json:"can_allocate"`
}

type BookingFilter struct {
	Status           string
	RoomTypeID       string
	GuestName        string
	ConfirmationCode string
	Dates            gDto.DateFilter
}

func (f BookingFilter) Validate() error {
	if f.Status != constant.Empty && !model.Status(f.Status).IsValid() {
		return failure.BadRequestFromString("booking_status must be one of pending confirmed completed cancelled")
	}

	if f.RoomTypeID != constant.Empty {
		return validator.ValidateID(model.FieldRoomTypeID, f.RoomTypeID) //nolint:wrapcheck
	}

	return nil
}

func (f BookingFilter) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	if f.Status != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldBookingStatus, Value: f.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.RoomTypeID != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldRoomTypeID, Value: f.RoomTypeID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.GuestName != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldGuestName, Value: f.GuestName, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	if f.ConfirmationCode != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldConfirmationCode, Value: f.ConfirmationCode, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	filters = append(filters, f.Dates.OverlapFilter(model.TableName, model.FieldCheckInDate, model.FieldCheckOutDate))

	return gDto.FilterGroup{Filters: filters}
}
