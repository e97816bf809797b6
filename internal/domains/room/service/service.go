package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	roomTypeRepo "hotel/internal/domains/roomtype/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

const errRoomNotFound = "room not found"

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.RoomFilter) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter dto.RoomFilter) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateRoomStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Room
	roomTypeRepo roomTypeRepo.RoomType
	bookingRepo  bookingRepo.Booking
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Room,
	roomTypeRepo roomTypeRepo.RoomType,
	bookingRepo bookingRepo.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Room {
	return &serviceImpl{
		repo:         repo,
		roomTypeRepo: roomTypeRepo,
		bookingRepo:  bookingRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	roomTypeName, err := s.roomTypeName(ctx, req.RoomTypeID)
	if err != nil {
		return res, err
	}

	room := req.ToModel(user)
	room.RoomTypeName = roomTypeName

	if err = s.repo.Insert(ctx, room); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict(fmt.Sprintf("room %s already exists", room.RoomNumber))
		}

		log.Error().Err(err).Msg("failed to insert room")

		return res, fmt.Errorf("failed to insert room: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(room)

	return res, nil
}

// roomTypeName checks that the room type exists and returns its name.
func (s *serviceImpl) roomTypeName(ctx context.Context, id string) (string, error) {
	roomType, err := s.roomTypeRepo.Get(ctx, shared.FilterByID(id, roomTypeModel.FieldID, roomTypeModel.TableName))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return constant.Empty, failure.BadRequestFromString("room_type_id does not match any room type")
	}

	return roomType.Name, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.RoomFilter) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if filter.Status != constant.Empty && !model.Status(filter.Status).IsValid() {
		return res, failure.BadRequestFromString("status must be one of available prebooked booked maintenance")
	}

	if filter.RoomTypeID != constant.Empty {
		if err = validator.ValidateID(model.FieldRoomTypeID, filter.RoomTypeID); err != nil {
			return res, err
		}
	}

	group := filter.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGets, req, group)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	if req.SortBy == constant.Empty {
		req.SortBy, req.SortDir = model.FieldRoomNumber, gDto.SortDirAsc
	}

	rooms, err := s.repo.GetAll(ctx, req, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(rooms, total, req.Limit)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter dto.RoomFilter) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	group := filter.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, group)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	if res, err = s.repo.Count(ctx, group); err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	room, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if gRepo.IsInvalidTextRepresentation(err) {
		return room, failure.NotFound(errRoomNotFound)
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound(errRoomNotFound)
	}

	return room, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if req.RoomTypeID != constant.Empty && req.RoomTypeID != current.RoomTypeID {
		if _, err = s.roomTypeName(ctx, req.RoomTypeID); err != nil {
			return err
		}

		allocated, err := s.allocated(ctx, id)
		if err != nil {
			return err
		}

		if allocated {
			return failure.Conflict("room type cannot change while the room is allocated to a confirmed booking")
		}
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return failure.Conflict(fmt.Sprintf("room %s already exists", req.RoomNumber))
		}

		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidate(ctx, current.ID)

	return nil
}

// UpdateStatus is the manual override used by the front desk.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateRoomStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	status := model.Status(req.Status)
	if !status.IsValid() {
		return failure.BadRequestFromString("status must be one of available prebooked booked maintenance")
	}

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if current.Status == status {
		return nil
	}

	update := shared.TransformFields(struct{}{}, user)
	update[model.FieldStatus] = status

	if err = s.repo.Update(ctx, update, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room status")

		return fmt.Errorf("failed to update room status: %w", err)
	}

	log.Info().Str("room", current.RoomNumber).Str("from", string(current.Status)).Str("to", string(status)).Msg("room status changed")

	s.invalidate(ctx, current.ID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	allocated, err := s.allocated(ctx, id)
	if err != nil {
		return err
	}

	if allocated {
		return failure.Conflict("room is allocated to a confirmed booking")
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return failure.Conflict("room is referenced by past bookings")
		}

		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.invalidate(ctx, current.ID)

	return nil
}

// allocated reports whether a confirmed booking holds the room.
func (s *serviceImpl) allocated(ctx context.Context, id string) (bool, error) {
	exist, err := s.bookingRepo.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldBookingStatus, Value: bookingModel.StatusConfirmed, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{Field: bookingModel.FieldRoomID, Value: id, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
					gDto.Filter{ArgName: "room_ids_member", Field: bookingModel.FieldRoomIDs, Value: id, Operator: gDto.FilterOperatorAny, Table: bookingModel.TableName},
				},
			},
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to check room allocation: %w", err)
	}

	return exist, nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save room cache")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
				log.Error().Err(err).Str("id", id).Msg("failed to delete room cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGets, model.CacheCount)
	}()
}
