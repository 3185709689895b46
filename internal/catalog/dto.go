package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/relistlabs/relist-backend/pkg/db/models"
	"github.com/relistlabs/relist-backend/pkg/enums"
	"github.com/relistlabs/relist-backend/pkg/pagination"
)

// CreateProductRequest is the payload for publishing a new listing.
type CreateProductRequest struct {
	Title                string                 `json:"title" validate:"required,min=3,max=200"`
	Description          string                 `json:"description" validate:"required"`
	Price                decimal.Decimal        `json:"price" validate:"required"`
	Quantity             int                    `json:"quantity" validate:"omitempty,min=1"`
	Condition            enums.ProductCondition `json:"condition" validate:"required"`
	CategoryID           uuid.UUID              `json:"categoryId" validate:"required"`
	Brand                *string                `json:"brand,omitempty"`
	Model                *string                `json:"model,omitempty"`
	Material             *string                `json:"material,omitempty"`
	Color                *string                `json:"color,omitempty"`
	Length               *float64               `json:"length,omitempty"`
	Width                *float64               `json:"width,omitempty"`
	Height               *float64               `json:"height,omitempty"`
	Weight               *float64               `json:"weight,omitempty"`
	YearOfManufacture    *int                   `json:"yearOfManufacture,omitempty"`
	OriginalPackaging    bool                   `json:"originalPackaging"`
	ManualIncluded       bool                   `json:"manualIncluded"`
	WorkingConditionDesc *string                `json:"workingConditionDesc,omitempty"`
	Images               []string               `json:"images,omitempty"`
}

// UpdateProductRequest carries optional listing changes. Absent fields stay
// untouched.
type UpdateProductRequest struct {
	Title                *string                 `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description          *string                 `json:"description,omitempty"`
	Price                *decimal.Decimal        `json:"price,omitempty"`
	Quantity             *int                    `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Condition            *enums.ProductCondition `json:"condition,omitempty"`
	CategoryID           *uuid.UUID              `json:"categoryId,omitempty"`
	Brand                *string                 `json:"brand,omitempty"`
	Model                *string                 `json:"model,omitempty"`
	Material             *string                 `json:"material,omitempty"`
	Color                *string                 `json:"color,omitempty"`
	Length               *float64                `json:"length,omitempty"`
	Width                *float64                `json:"width,omitempty"`
	Height               *float64                `json:"height,omitempty"`
	Weight               *float64                `json:"weight,omitempty"`
	YearOfManufacture    *int                    `json:"yearOfManufacture,omitempty"`
	OriginalPackaging    *bool                   `json:"originalPackaging,omitempty"`
	ManualIncluded       *bool                   `json:"manualIncluded,omitempty"`
	WorkingConditionDesc *string                 `json:"workingConditionDesc,omitempty"`
	Images               []string                `json:"images,omitempty"`
}

// ListFilters describe the supported filter knobs for the browse endpoint.
type ListFilters struct {
	CategoryID *uuid.UUID
	Search     string
	Condition  *enums.ProductCondition
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// ListProductsInput captures the inputs needed to paginate/filter the catalog.
type ListProductsInput struct {
	Filters    ListFilters
	Pagination pagination.Params
}

// ProductList is one page of listings plus the cursor for the next page.
type ProductList struct {
	Products   []models.Product `json:"products"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

func (r CreateProductRequest) toModel(userID uuid.UUID) *models.Product {
	quantity := r.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return &models.Product{
		ID:                   uuid.New(),
		Title:                r.Title,
		Description:          r.Description,
		Price:                r.Price,
		Quantity:             quantity,
		Condition:            r.Condition,
		IsActive:             true,
		Brand:                r.Brand,
		Model:                r.Model,
		Material:             r.Material,
		Color:                r.Color,
		Length:               r.Length,
		Width:                r.Width,
		Height:               r.Height,
		Weight:               r.Weight,
		YearOfManufacture:    r.YearOfManufacture,
		OriginalPackaging:    r.OriginalPackaging,
		ManualIncluded:       r.ManualIncluded,
		WorkingConditionDesc: r.WorkingConditionDesc,
		Images:               images,
		CategoryID:           r.CategoryID,
		UserID:               userID,
	}
}

func (r UpdateProductRequest) apply(product *models.Product) {
	if r.Title != nil {
		product.Title = *r.Title
	}
	if r.Description != nil {
		product.Description = *r.Description
	}
	if r.Price != nil {
		product.Price = *r.Price
	}
	if r.Quantity != nil {
		product.Quantity = *r.Quantity
	}
	if r.Condition != nil {
		product.Condition = *r.Condition
	}
	if r.CategoryID != nil {
		product.CategoryID = *r.CategoryID
	}
	if r.Brand != nil {
		product.Brand = r.Brand
	}
	if r.Model != nil {
		product.Model = r.Model
	}
	if r.Material != nil {
		product.Material = r.Material
	}
	if r.Color != nil {
		product.Color = r.Color
	}
	if r.Length != nil {
		product.Length = r.Length
	}
	if r.Width != nil {
		product.Width = r.Width
	}
	if r.Height != nil {
		product.Height = r.Height
	}
	if r.Weight != nil {
		product.Weight = r.Weight
	}
	if r.YearOfManufacture != nil {
		product.YearOfManufacture = r.YearOfManufacture
	}
	if r.OriginalPackaging != nil {
		product.OriginalPackaging = *r.OriginalPackaging
	}
	if r.ManualIncluded != nil {
		product.ManualIncluded = *r.ManualIncluded
	}
	if r.WorkingConditionDesc != nil {
		product.WorkingConditionDesc = r.WorkingConditionDesc
	}
	if r.Images != nil {
		product.Images = r.Images
	}
}
