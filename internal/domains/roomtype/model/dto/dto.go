package dto

import (
	"mime/multipart"

	"hotel/internal/domains/roomtype/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateRoomTypeRequest struct {
	Name         string          `json:"name"          validate:"required,max=100"`
	Slug         string          `json:"slug"          validate:"omitempty,max=120"`
	Price        float64         `json:"price"         validate:"required,gt=0"`
	MaxOccupancy int             `json:"max_occupancy" validate:"required,min=1"`
	RoomSize     string          `json:"room_size"     validate:"omitempty,max=50"`
	Amenities    []string        `json:"amenities"     validate:"omitempty,dive,required,max=100"`
	Features     []model.Feature `json:"features"      validate:"omitempty,dive"`
}

func (c *CreateRoomTypeRequest) ToModel(user string) model.RoomType {
	now := timezone.Now()

	slug := c.Slug
	if slug == "" {
		slug = model.Slugify(c.Name)
	}

	return model.RoomType{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Slug:         model.Slugify(slug),
		Price:        c.Price,
		MaxOccupancy: c.MaxOccupancy,
		RoomSize:     c.RoomSize,
		Amenities:    pq.StringArray(nonNil(c.Amenities)),
		Features:     model.Features(c.Features),
		ImageURLs:    pq.StringArray{},
		Metadata:     gModel.NewMetadata(now, user),
	}
}

// UpdateRoomTypeRequest only touches the fields that are present.
type UpdateRoomTypeRequest struct {
	Name         string         `db:"name"          json:"name"          validate:"omitempty,max=100"`
	Slug         string         `db:"slug"          json:"slug"          validate:"omitempty,max=120"`
	Price        *float64       `db:"price"         json:"price"         validate:"omitempty,gt=0"`
	MaxOccupancy *int           `db:"max_occupancy" json:"max_occupancy" validate:"omitempty,min=1"`
	RoomSize     string         `db:"room_size"     json:"room_size"     validate:"omitempty,max=50"`
	Amenities    pq.StringArray `db:"amenities"     json:"amenities"     validate:"omitempty,dive,required,max=100"`
	Features     model.Features `db:"features"      json:"features"      validate:"omitempty,dive"`
}

type UploadImageRequest struct {
	Image *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

type RoomTypeResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Price        float64         `json:"price"`
	MaxOccupancy int             `json:"max_occupancy"`
	RoomSize     string          `json:"room_size"`
	Amenities    []string        `json:"amenities"`
	Features     []model.Feature `json:"features"`
	ImageURLs    []string        `json:"image_urls"`
	gDto.Metadata
}

func (r *RoomTypeResponse) FromModel(m model.RoomType) {
	r.ID = m.ID
	r.Name = m.Name
	r.Slug = m.Slug
	r.Price = m.Price
	r.MaxOccupancy = m.MaxOccupancy
	r.RoomSize = m.RoomSize
	r.Amenities = nonNil(m.Amenities)
	r.Features = m.Features
	r.ImageURLs = nonNil(m.ImageURLs)
	r.Metadata.FromModel(m.Metadata)

	if r.Features == nil {
		r.Features = []model.Feature{}
	}
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetRoomTypesResponse) FromModels(models []model.RoomType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
