package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/roomtype/model"
	"hotel/internal/domains/roomtype/model/dto"
	"hotel/internal/domains/roomtype/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoomType       = "room_type:get"
	cacheGetRoomTypeBySlug = "room_type:slug"
	cacheGetAllRoomType    = "room_type:gets"
	cacheCountRoomType     = "room_type:count"

	errRoomTypeNotFound = "room type not found"
)

type RoomType interface {
	Create(ctx context.Context, req dto.CreateRoomTypeRequest) (dto.RoomTypeResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomTypesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomTypeResponse, error)
	GetBySlug(ctx context.Context, slug string) (dto.RoomTypeResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomTypeRequest, id string) error
	UploadImage(ctx context.Context, req dto.UploadImageRequest, id string) (dto.RoomTypeResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.RoomType
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.RoomType, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) RoomType {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomTypeRequest) (res dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".roomtype.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	roomType := req.ToModel(user)

	if roomType.Slug == constant.Empty {
		return res, failure.BadRequestFromString("slug must contain letters or digits")
	}

	if err = s.repo.Insert(ctx, roomType); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict(fmt.Sprintf("room type %q already exists", roomType.Slug))
		}

		log.Error().Err(err).Msg("failed to insert room type")

		return res, fmt.Errorf("failed to insert room type: %w", err)
	}

	s.invalidateLists(ctx)

	res.FromModel(roomType)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomTypesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".roomtype.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoomType, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room types")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".roomtype.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoomType, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room types")

		return res, fmt.Errorf("failed to count room types: %w", err)
	}

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (dto.RoomTypeResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".roomtype.Get")
	defer scope.End()

	return s.getCached(ctx, shared.BuildCacheKey(cacheGetRoomType, id), shared.FilterByID(id, model.FieldID, model.TableName))
}

func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (dto.RoomTypeResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".roomtype.GetBySlug")
	defer scope.End()

	return s.getCached(ctx, shared.BuildCacheKey(cacheGetRoomTypeBySlug, slug), shared.FilterByID(slug, model.FieldSlug, model.TableName))
}

func (s *serviceImpl) getCached(ctx context.Context, cacheKey string, filter gDto.FilterGroup) (res dto.RoomTypeResponse, err error) {
	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room type")

		return res, nil
	}

	roomType, err := s.repo.Get(ctx, filter)
	if gRepo.IsInvalidTextRepresentation(err) {
		return res, failure.NotFound(errRoomTypeNotFound) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return res, failure.NotFound(errRoomTypeNotFound) // nolint:wrapcheck
	}

	res.FromModel(roomType)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomTypeRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".roomtype.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.get(ctx, filter)
	if err != nil {
		return err
	}

	if req.Slug != constant.Empty {
		req.Slug = model.Slugify(req.Slug)
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return failure.Conflict(fmt.Sprintf("room type %q already exists", req.Slug))
		}

		log.Error().Err(err).Msg("failed to update room type")

		return fmt.Errorf("failed to update room type: %w", err)
	}

	s.invalidate(ctx, current)

	return nil
}

// UploadImage stores the photo in S3 and appends its public URL.
func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest, id string) (res dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".roomtype.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.get(ctx, filter)
	if err != nil {
		return res, err
	}

	fileName := uuid.NewString() + strings.ToLower(path.Ext(req.Image.Filename))

	url, err := s.s3.UploadFile(ctx, path.Join(model.EntityName, current.Slug), fileName, req.Image)
	if err != nil {
		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	imageURLs := append(pq.StringArray{}, current.ImageURLs...)
	imageURLs = append(imageURLs, url)

	update := shared.TransformFields(struct{}{}, user)
	update[model.FieldImageURLs] = imageURLs

	if err = s.repo.Update(ctx, update, filter); err != nil {
		if objectKey := s.s3.ObjectKeyFromURL(url); objectKey != constant.Empty {
			if delErr := s.s3.DeleteFile(context.WithoutCancel(ctx), objectKey); delErr != nil {
				log.Error().Err(delErr).Str("key", objectKey).Msg("failed to remove orphaned room type image")
			}
		}

		return res, fmt.Errorf("failed to save room type image: %w", err)
	}

	s.invalidate(ctx, current)

	current.ImageURLs = imageURLs
	res.FromModel(current)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".roomtype.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.get(ctx, filter)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return failure.Conflict("room type still has rooms or bookings")
		}

		log.Error().Err(err).Msg("failed to delete room type")

		return fmt.Errorf("failed to delete room type: %w", err)
	}

	s.invalidate(ctx, current)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, filter gDto.FilterGroup) (model.RoomType, error) {
	roomType, err := s.repo.Get(ctx, filter)
	if gRepo.IsInvalidTextRepresentation(err) {
		return roomType, failure.NotFound(errRoomTypeNotFound)
	}

	if err != nil {
		return roomType, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return roomType, failure.NotFound(errRoomTypeNotFound)
	}

	return roomType, nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save room type cache")
		}
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllRoomType, cacheCountRoomType)
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, current model.RoomType) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, key := range []string{
			shared.BuildCacheKey(cacheGetRoomType, current.ID),
			shared.BuildCacheKey(cacheGetRoomTypeBySlug, current.Slug),
		} {
			if err := s.cache.Delete(c, key); err != nil {
				log.Error().Err(err).Str("cacheKey", key).Msg("failed to delete room type cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoomType, cacheCountRoomType, cacheGetRoomTypeBySlug)
	}()
}
