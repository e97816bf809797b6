package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	roomRepo "hotel/internal/domains/room/repository"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	roomTypeRepo "hotel/internal/domains/roomtype/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	defaultCodeLength = 8

	errBookingNotFound = "booking not found"
)

var errCodeExhausted = errors.New("could not generate a unique confirmation code")

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByCode(ctx context.Context, code string) (dto.BookingResponse, error)
	Scan(ctx context.Context, req dto.ScanRequest) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Candidates(ctx context.Context, id string) (dto.CandidatesResponse, error)
	Allocate(ctx context.Context, req dto.AllocateRequest, id string) (dto.BookingResponse, error)
	CheckIn(ctx context.Context, id string) (dto.BookingResponse, error)
	Checkout(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	roomTypeRepo roomTypeRepo.RoomType
	transactor   gRepo.Transactor
	publisher    event.Publisher
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	roomTypeRepo roomTypeRepo.RoomType,
	transactor gRepo.Transactor,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		roomTypeRepo: roomTypeRepo,
		transactor:   transactor,
		publisher:    publisher,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Create records a pending booking priced from its room type.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, _, err = req.Stay(); err != nil {
		return res, err
	}

	roomType, err := s.roomTypeRepo.Get(ctx, shared.FilterByID(req.RoomTypeID, roomTypeModel.FieldID, roomTypeModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return res, failure.BadRequestFromString("room_type_id does not match any room type")
	}

	user, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok {
		user = constant.ContextGuest
	}

	booking, err := req.ToModel(user, roomType.Name, roomType.Price)
	if err != nil {
		return res, err
	}

	if booking, err = s.insertWithCode(ctx, booking); err != nil {
		return res, err
	}

	log.Info().Str("code", booking.ConfirmationCode).Str("roomType", booking.RoomType).Msg("booking created")

	s.invalidate(ctx, constant.Empty)
	s.publish(ctx, event.TypeCreated, booking)

	res.ConfirmationCode = booking.ConfirmationCode
	res.QRData = booking.QRData
	res.Booking.FromModel(booking)

	return res, nil
}

// insertWithCode assigns a confirmation code and retries on collision.
func (s *serviceImpl) insertWithCode(ctx context.Context, booking model.Booking) (model.Booking, error) {
	length := s.cfg.Booking.CodeLength
	if length <= 0 {
		length = defaultCodeLength
	}

	attempts := max(s.cfg.Booking.CodeMaxRetries, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		code, err := model.GenerateConfirmationCode(s.cfg.Booking.CodePrefix, length)
		if err != nil {
			return booking, err
		}

		booking.ConfirmationCode = code

		if booking.QRData, err = booking.EncodeQRData(); err != nil {
			return booking, err
		}

		err = s.repo.Insert(ctx, booking)
		if err == nil {
			return booking, nil
		}

		if !gRepo.IsUniqueViolation(err, model.ConstraintConfirmationCode) {
			log.Error().Err(err).Msg("failed to insert booking")

			return booking, fmt.Errorf("failed to insert booking: %w", err)
		}

		log.Warn().Int("attempt", attempt).Msg("confirmation code collision, retrying")
	}

	return booking, errCodeExhausted
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = filter.Validate(); err != nil {
		return res, err
	}

	group := filter.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, group)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	if req.SortBy == constant.Empty {
		req.SortBy = constant.FieldCreatedAt
	}

	bookings, err := s.repo.GetAll(ctx, req, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	group := filter.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, group)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	if res, err = s.repo.Count(ctx, group); err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	s.save(ctx, cacheKey, res)

	return res, nil
}

// GetByCode always reads the database; it backs the check-in desk.
func (s *serviceImpl) GetByCode(ctx context.Context, code string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByCode")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	code = strings.ToUpper(strings.TrimSpace(code))

	booking, err := s.find(ctx, shared.FilterByID(code, model.FieldConfirmationCode, model.TableName))
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Scan(ctx context.Context, req dto.ScanRequest) (dto.BookingResponse, error) {
	code, err := model.ParseScan(req.Data)
	if err != nil {
		return dto.BookingResponse{}, failure.BadRequestFromString("unreadable QR code")
	}

	return s.GetByCode(ctx, code)
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if current.BookingStatus.IsTerminal() {
		return failure.Conflict(fmt.Sprintf("booking is %s and can no longer be edited", current.BookingStatus))
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Candidates lists available rooms of the booking's type.
func (s *serviceImpl) Candidates(ctx context.Context, id string) (res dto.CandidatesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Candidates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if !booking.BookingStatus.CanTransition(model.ActionAllocate) {
		return res, failure.Conflict(fmt.Sprintf("booking is %s, only pending bookings can be allocated", booking.BookingStatus))
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{SortBy: roomModel.FieldRoomNumber, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: roomModel.FieldRoomTypeID, Value: booking.RoomTypeID, Operator: gDto.FilterOperatorEq, Table: roomModel.TableName},
			gDto.Filter{Field: roomModel.FieldStatus, Value: roomModel.StatusAvailable, Operator: gDto.FilterOperatorEq, Table: roomModel.TableName},
		},
	})
	if err != nil {
		return res, fmt.Errorf("failed to get candidate rooms: %w", err)
	}

	res.BookingID = booking.ID
	res.RoomTypeID = booking.RoomTypeID
	res.NumberOfRooms = booking.NumberOfRooms
	res.CanAllocate = len(rooms) >= booking.NumberOfRooms

	res.Rooms = make([]roomDto.RoomResponse, len(rooms))
	for i, room := range rooms {
		res.Rooms[i].FromModel(room)
	}

	return res, nil
}

// Allocate assigns physical rooms to a pending booking. The booking and room
// updates commit together; each is guarded by the state it expects.
func (s *serviceImpl) Allocate(ctx context.Context, req dto.AllocateRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Allocate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	next, ok := booking.BookingStatus.Next(model.ActionAllocate)
	if !ok {
		return res, failure.Conflict(fmt.Sprintf("booking is %s, only pending bookings can be allocated", booking.BookingStatus))
	}

	roomIDs := req.RoomIDs
	if len(roomIDs) != booking.NumberOfRooms {
		return res, failure.BadRequestFromString(fmt.Sprintf("booking needs %d room(s), %d selected", booking.NumberOfRooms, len(roomIDs)))
	}

	if len(slices.Compact(slices.Sorted(slices.Values(roomIDs)))) != len(roomIDs) {
		return res, failure.BadRequestFromString("room_ids must be distinct")
	}

	if err = s.checkRooms(ctx, booking, roomIDs); err != nil {
		return res, err
	}

	now := timezone.Now()

	bookingUpdate := shared.TransformFields(struct{}{}, user)
	bookingUpdate[model.FieldRoomID] = roomIDs[0]
	bookingUpdate[model.FieldRoomIDs] = pq.StringArray(roomIDs)
	bookingUpdate[model.FieldBookingStatus] = next

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.updateBookingTx(ctx, tx, bookingUpdate, id, booking.BookingStatus); err != nil {
			return err
		}

		roomUpdate := shared.TransformFields(struct{}{}, user)
		roomUpdate[roomModel.FieldStatus] = roomModel.StatusBooked

		affected, err := s.roomRepo.UpdateTx(ctx, tx, roomUpdate, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: roomModel.FieldID, Value: roomIDs, Operator: gDto.FilterOperatorIn, Table: roomModel.TableName},
				gDto.Filter{Field: roomModel.FieldStatus, Value: roomModel.StatusAvailable, Operator: gDto.FilterOperatorEq, Table: roomModel.TableName},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to mark rooms booked: %w", err)
		}

		if affected != int64(len(roomIDs)) {
			return failure.Conflict("one or more rooms were taken by another allocation, refresh and try again")
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	booking.RoomID = &roomIDs[0]
	booking.RoomIDs = pq.StringArray(roomIDs)
	booking.BookingStatus = next
	booking.UpdatedAt, booking.UpdatedBy = now, user

	log.Info().Str("code", booking.ConfirmationCode).Strs("rooms", roomIDs).Msg("booking allocated")

	s.invalidate(ctx, id)
	s.invalidateRooms(ctx, roomIDs)
	s.publish(ctx, event.TypeConfirmed, booking)

	res.FromModel(booking)

	return res, nil
}

// checkRooms verifies every room exists, has the booking's type and is free.
func (s *serviceImpl) checkRooms(ctx context.Context, booking model.Booking, roomIDs []string) error {
	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: roomModel.FieldID, Value: roomIDs, Operator: gDto.FilterOperatorIn, Table: roomModel.TableName},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to get rooms: %w", err)
	}

	byID := make(map[string]roomModel.Room, len(rooms))
	for _, room := range rooms {
		byID[room.ID] = room
	}

	for _, roomID := range roomIDs {
		room, ok := byID[roomID]
		if !ok {
			return failure.NotFound(fmt.Sprintf("room %s not found", roomID))
		}

		if room.RoomTypeID != booking.RoomTypeID {
			return failure.BadRequestFromString(fmt.Sprintf("room %s is not a %s", room.RoomNumber, booking.RoomType))
		}

		if room.Status != roomModel.StatusAvailable {
			return failure.Conflict(fmt.Sprintf("room %s is %s", room.RoomNumber, room.Status.Label()))
		}
	}

	return nil
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.BookingStatus != model.StatusConfirmed {
		return res, failure.Conflict(fmt.Sprintf("booking is %s, only confirmed bookings can check in", booking.BookingStatus))
	}

	if booking.CheckedInAt != nil {
		return res, failure.Conflict("guest has already checked in")
	}

	now := timezone.Now()

	update := shared.TransformFields(struct{}{}, user)
	update[model.FieldCheckedInAt] = now

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		affected, err := s.repo.UpdateTx(ctx, tx, update, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
				gDto.Filter{Field: model.FieldBookingStatus, Value: model.StatusConfirmed, Operator: gDto.FilterOperatorEq, Table: model.TableName},
				gDto.Filter{Field: model.FieldCheckedInAt, Operator: gDto.FilterIsNull, Table: model.TableName},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to check in booking: %w", err)
		}

		if affected != 1 {
			return failure.Conflict("booking changed while checking in, refresh and try again")
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	booking.CheckedInAt = &now

	s.invalidate(ctx, id)
	s.publish(ctx, event.TypeCheckedIn, booking)

	res.FromModel(booking)

	return res, nil
}

// Checkout completes the stay and frees every allocated room.
func (s *serviceImpl) Checkout(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Checkout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	next, ok := booking.BookingStatus.Next(model.ActionCheckout)
	if !ok {
		return res, failure.Conflict(fmt.Sprintf("booking is %s, only confirmed bookings can check out", booking.BookingStatus))
	}

	now := timezone.Now()
	roomIDs := booking.AllocatedRoomIDs()

	bookingUpdate := shared.TransformFields(struct{}{}, user)
	bookingUpdate[model.FieldBookingStatus] = next
	bookingUpdate[model.FieldCheckedOutAt] = now

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.updateBookingTx(ctx, tx, bookingUpdate, id, booking.BookingStatus); err != nil {
			return err
		}

		if len(roomIDs) == 0 {
			return nil
		}

		roomUpdate := shared.TransformFields(struct{}{}, user)
		roomUpdate[roomModel.FieldStatus] = roomModel.StatusAvailable

		_, err := s.roomRepo.UpdateTx(ctx, tx, roomUpdate, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: roomModel.FieldID, Value: roomIDs, Operator: gDto.FilterOperatorIn, Table: roomModel.TableName},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to release rooms: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	booking.BookingStatus = next
	booking.CheckedOutAt = &now

	log.Info().Str("code", booking.ConfirmationCode).Strs("rooms", roomIDs).Msg("booking checked out")

	s.invalidate(ctx, id)
	s.invalidateRooms(ctx, roomIDs)
	s.publish(ctx, event.TypeCompleted, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	next, ok := booking.BookingStatus.Next(model.ActionCancel)
	if !ok {
		return res, failure.Conflict(fmt.Sprintf("booking is %s, only pending bookings can be cancelled", booking.BookingStatus))
	}

	update := shared.TransformFields(struct{}{}, user)
	update[model.FieldBookingStatus] = next

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		return s.updateBookingTx(ctx, tx, update, id, booking.BookingStatus)
	})
	if err != nil {
		return res, err
	}

	booking.BookingStatus = next

	s.invalidate(ctx, id)
	s.publish(ctx, event.TypeCancelled, booking)

	res.FromModel(booking)

	return res, nil
}

// updateBookingTx applies update only while the booking is still in from.
func (s *serviceImpl) updateBookingTx(ctx context.Context, tx *sqlx.Tx, update map[string]any, id string, from model.Status) error {
	affected, err := s.repo.UpdateTx(ctx, tx, update, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: "expected_status", Field: model.FieldBookingStatus, Value: from, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	if affected != 1 {
		return failure.Conflict(fmt.Sprintf("booking is no longer %s, refresh and try again", from))
	}

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	return s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, filter)
	if gRepo.IsInvalidTextRepresentation(err) {
		return booking, failure.NotFound(errBookingNotFound)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(errBookingNotFound)
	}

	return booking, nil
}

func (s *serviceImpl) publish(ctx context.Context, eventType event.Type, booking model.Booking) {
	go func() {
		if err := s.publisher.Publish(context.WithoutCancel(ctx), eventType, booking); err != nil {
			log.Error().Err(err).Str("event", string(eventType)).Str("booking", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save booking cache")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
				log.Error().Err(err).Str("id", id).Msg("failed to delete booking cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking, cacheCountBooking)
	}()
}

func (s *serviceImpl) invalidateRooms(ctx context.Context, roomIDs []string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, roomID := range roomIDs {
			if err := s.cache.Delete(c, shared.BuildCacheKey(roomModel.CacheGet, roomID)); err != nil {
				log.Error().Err(err).Str("room", roomID).Msg("failed to delete room cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, roomModel.CacheGets, roomModel.CacheCount)
	}()
}
