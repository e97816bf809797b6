package model

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"
	"time"

	"hotel/shared/constant"
	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldGuestName        = "guest_name"
	FieldGuestEmail       = "guest_email"
	FieldGuestPhone       = "guest_phone"
	FieldCheckInDate      = "check_in_date"
	FieldCheckOutDate     = "check_out_date"
	FieldRoomTypeID       = "room_type_id"
	FieldRoomID           = "room_id"
	FieldRoomIDs          = "room_ids"
	FieldBookingStatus    = "booking_status"
	FieldConfirmationCode = "confirmation_code"
	FieldCheckedInAt      = "checked_in_at"
	FieldCheckedOutAt     = "checked_out_at"

	// ConstraintConfirmationCode is the unique index on confirmation_code.
	ConstraintConfirmationCode = "bookings_confirmation_code_key"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Action names a lifecycle transition.
type Action string

const (
	ActionAllocate Action = "allocate"
	ActionCheckout Action = "checkout"
	ActionCancel   Action = "cancel"
)

var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionAllocate: StatusConfirmed,
		ActionCancel:   StatusCancelled,
	},
	StatusConfirmed: {
		ActionCheckout: StatusCompleted,
	},
}

var statusLabels = map[Status]string{
	StatusPending:   "Pending",
	StatusConfirmed: "Confirmed",
	StatusCompleted: "Completed",
	StatusCancelled: "Cancelled",
}

var AllStatuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// Next returns the status reached by applying action, or false when the
// action is not allowed from s.
func (s Status) Next(action Action) (Status, bool) {
	next, ok := transitions[s][action]

	return next, ok
}

func (s Status) CanTransition(action Action) bool {
	_, ok := s.Next(action)

	return ok
}

func (s Status) IsValid() bool {
	return slices.Contains(AllStatuses, s)
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}

	return string(s)
}

type Booking struct {
	ID               string         `db:"id"`
	GuestName        string         `db:"guest_name"`
	GuestEmail       string         `db:"guest_email"`
	GuestPhone       string         `db:"guest_phone"`
	CheckInDate      time.Time      `db:"check_in_date"`
	CheckOutDate     time.Time      `db:"check_out_date"`
	SpecialRequests  string         `db:"special_requests"`
	TotalAmount      float64        `db:"total_amount"`
	NumberOfRooms    int            `db:"number_of_rooms"`
	RoomTypeID       string         `db:"room_type_id"`
	RoomType         string         `db:"room_type"`
	RoomID           *string        `db:"room_id"`
	RoomIDs          pq.StringArray `db:"room_ids"`
	BookingStatus    Status         `db:"booking_status"`
	PaymentConfirmed bool           `db:"payment_confirmed"`
	ConfirmationCode string         `db:"confirmation_code"`
	QRData           string         `db:"qr_data"`
	CheckedInAt      *time.Time     `db:"checked_in_at"`
	CheckedOutAt     *time.Time     `db:"checked_out_at"`
	model.Metadata
}

// AllocatedRoomIDs returns room_ids, falling back to the single room_id kept
// by older records.
func (b Booking) AllocatedRoomIDs() []string {
	if len(b.RoomIDs) > 0 {
		return b.RoomIDs
	}

	if b.RoomID != nil && *b.RoomID != constant.Empty {
		return []string{*b.RoomID}
	}

	return []string{}
}

// Occupies reports whether the stay covers the night of day.
func (b Booking) Occupies(day time.Time) bool {
	return !b.CheckInDate.After(day) && b.CheckOutDate.After(day)
}

// Overlaps reports whether the stay intersects the closed range [from, to].
func (b Booking) Overlaps(from, to time.Time) bool {
	return !b.CheckInDate.After(to) && b.CheckOutDate.After(from)
}

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var ErrInvalidCodeLength = errors.New("invalid confirmation code length")

// GenerateConfirmationCode returns prefix followed by n random A-Z0-9 characters.
func GenerateConfirmationCode(prefix string, n int) (string, error) {
	if n <= 0 {
		return constant.Empty, ErrInvalidCodeLength
	}

	var sb strings.Builder

	sb.WriteString(prefix)

	alphaLen := big.NewInt(int64(len(codeCharset)))

	for range n {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return constant.Empty, fmt.Errorf("failed to generate confirmation code: %w", err)
		}

		sb.WriteByte(codeCharset[num.Int64()])
	}

	return sb.String(), nil
}

// QRPayload is encoded into the QR image handed to the guest.
type QRPayload struct {
	Code      string `json:"code"`
	BookingID string `json:"booking_id"`
	Guest     string `json:"guest"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
}

func (b Booking) QRPayload() QRPayload {
	return QRPayload{
		Code:      b.ConfirmationCode,
		BookingID: b.ID,
		Guest:     b.GuestName,
		CheckIn:   b.CheckInDate.Format(constant.DateOnlyFormat),
		CheckOut:  b.CheckOutDate.Format(constant.DateOnlyFormat),
	}
}

func (b Booking) EncodeQRData() (string, error) {
	data, err := json.Marshal(b.QRPayload())
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to encode qr data: %w", err)
	}

	return string(data), nil
}

var ErrEmptyScan = errors.New("empty scan")

// ParseScan extracts the confirmation code from a scanned QR string. Plain
// codes typed by staff are accepted as well.
func ParseScan(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == constant.Empty {
		return constant.Empty, ErrEmptyScan
	}

	if strings.HasPrefix(raw, "{") {
		var payload QRPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return constant.Empty, fmt.Errorf("failed to decode qr data: %w", err)
		}

		if payload.Code == constant.Empty {
			return constant.Empty, ErrEmptyScan
		}

		return strings.ToUpper(payload.Code), nil
	}

	return strings.ToUpper(raw), nil
}
