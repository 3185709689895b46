package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/relistlabs/relist-backend/pkg/enums"
)

// Product represents a second-hand listing. Rows are never physically
// deleted; IsActive=false hides them from the catalog while historical
// order items stay resolvable.
type Product struct {
	ID                   uuid.UUID              `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title                string                 `gorm:"column:title;not null" json:"title"`
	Description          string                 `gorm:"column:description;not null" json:"description"`
	Price                decimal.Decimal        `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Quantity             int                    `gorm:"column:quantity;not null;default:1" json:"quantity"`
	Condition            enums.ProductCondition `gorm:"column:condition;type:text;not null" json:"condition"`
	IsActive             bool                   `gorm:"column:is_active;not null;default:true" json:"isActive"`
	Brand                *string                `gorm:"column:brand" json:"brand,omitempty"`
	Model                *string                `gorm:"column:model" json:"model,omitempty"`
	Material             *string                `gorm:"column:material" json:"material,omitempty"`
	Color                *string                `gorm:"column:color" json:"color,omitempty"`
	Length               *float64               `gorm:"column:length;type:numeric(8,2)" json:"length,omitempty"`
	Width                *float64               `gorm:"column:width;type:numeric(8,2)" json:"width,omitempty"`
	Height               *float64               `gorm:"column:height;type:numeric(8,2)" json:"height,omitempty"`
	Weight               *float64               `gorm:"column:weight;type:numeric(8,2)" json:"weight,omitempty"`
	YearOfManufacture    *int                   `gorm:"column:year_of_manufacture" json:"yearOfManufacture,omitempty"`
	OriginalPackaging    bool                   `gorm:"column:original_packaging;not null;default:false" json:"originalPackaging"`
	ManualIncluded       bool                   `gorm:"column:manual_included;not null;default:false" json:"manualIncluded"`
	WorkingConditionDesc *string                `gorm:"column:working_condition_desc" json:"workingConditionDesc,omitempty"`
	Images               []string               `gorm:"column:images;serializer:json" json:"images"`
	CategoryID           uuid.UUID              `gorm:"column:category_id;type:uuid;not null" json:"categoryId"`
	UserID               uuid.UUID              `gorm:"column:user_id;type:uuid;not null" json:"userId"`
	Category             *Category              `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Seller               *SellerSummary         `gorm:"foreignKey:UserID;references:ID" json:"seller,omitempty"`
	CreatedAt            time.Time              `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt            time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
