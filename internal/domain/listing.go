package domain

import (
	"time"

	"gorm.io/datatypes"
)

type MarketplaceItem struct {
	ID          int64                       `gorm:"column:id;primaryKey" json:"id"`
	SellerID    int64                       `gorm:"column:seller_id;not null;index" json:"seller_id"`
	Title       string                      `gorm:"column:title;not null" json:"title"`
	Description string                      `gorm:"column:description" json:"description"`
	Price       float64                     `gorm:"column:price;not null" json:"price"`
	Category    string                      `gorm:"column:category" json:"category"`
	Condition   string                      `gorm:"column:condition" json:"condition"`
	Images      datatypes.JSONSlice[string] `gorm:"column:images" json:"images"`
	Sold        bool                        `gorm:"column:sold;not null;default:false" json:"sold"`
	BuyerID     *int64                      `gorm:"column:buyer_id" json:"buyer_id,omitempty"`
	CreatedAt   time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (MarketplaceItem) TableName() string { return "marketplace_items" }

type Service struct {
	ID          int64                       `gorm:"column:id;primaryKey" json:"id"`
	ProviderID  int64                       `gorm:"column:provider_id;not null;index" json:"provider_id"`
	Title       string                      `gorm:"column:title;not null" json:"title"`
	Description string                      `gorm:"column:description" json:"description"`
	Price       float64                     `gorm:"column:price;not null" json:"price"`
	Category    string                      `gorm:"column:category" json:"category"`
	Images      datatypes.JSONSlice[string] `gorm:"column:images" json:"images"`
	CreatedAt   time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Service) TableName() string { return "services_table" }

type Booking struct {
	ID           int64      `gorm:"column:id;primaryKey" json:"id"`
	ServiceID    int64      `gorm:"column:service_id;not null;index" json:"service_id"`
	BookerID     int64      `gorm:"column:booker_id;not null;index" json:"booker_id"`
	ProviderID   int64      `gorm:"column:provider_id;not null;index" json:"provider_id"`
	ScheduledFor *time.Time `gorm:"column:scheduled_for" json:"scheduled_for,omitempty"`
	Note         string     `gorm:"column:note" json:"note,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Booking) TableName() string { return "bookings" }
