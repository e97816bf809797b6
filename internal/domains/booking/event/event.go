package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"hotel/shared/timezone"
)

type Type string

const (
	TypeCreated   Type = "booking.created"
	TypeConfirmed Type = "booking.confirmed"
	TypeCheckedIn Type = "booking.checked_in"
	TypeCompleted Type = "booking.completed"
	TypeCancelled Type = "booking.cancelled"
)

const headerEventKey = "event_type"

// Payload is the JSON body of every booking event.
type Payload struct {
	Type             Type      `json:"type"`
	BookingID        string    `json:"booking_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	BookingStatus    string    `json:"booking_status"`
	RoomTypeID       string    `json:"room_type_id"`
	RoomIDs          []string  `json:"room_ids"`
	CheckInDate      string    `json:"check_in_date"`
	CheckOutDate     string    `json:"check_out_date"`
	OccurredAt       time.Time `json:"occurred_at"`
}

func NewPayload(eventType Type, booking model.Booking, at time.Time) Payload {
	return Payload{
		Type:             eventType,
		BookingID:        booking.ID,
		ConfirmationCode: booking.ConfirmationCode,
		BookingStatus:    string(booking.BookingStatus),
		RoomTypeID:       booking.RoomTypeID,
		RoomIDs:          booking.AllocatedRoomIDs(),
		CheckInDate:      booking.CheckInDate.Format(constant.DateOnlyFormat),
		CheckOutDate:     booking.CheckOutDate.Format(constant.DateOnlyFormat),
		OccurredAt:       at,
	}
}

type Publisher interface {
	Publish(ctx context.Context, eventType Type, booking model.Booking) error
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Type, model.Booking) error {
	return nil
}

// New returns a Kafka backed publisher, or one that drops events when Kafka
// is disabled.
func New(cfg *config.Config, client kafka.Client, otel otel.Otel) Publisher {
	if !cfg.Kafka.Enable || client == nil {
		return noopPublisher{}
	}

	return &kafkaPublisher{
		client: client,
		topic:  cfg.Kafka.Topics.Booking,
		otel:   otel,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType Type, booking model.Booking) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("event.type", string(eventType))

	err = p.client.SendMessages(ctx, p.topic, kafka.Message{
		Key:     booking.ID,
		Value:   NewPayload(eventType, booking, timezone.Now()),
		Headers: map[string]string{headerEventKey: string(eventType)},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	return nil
}
