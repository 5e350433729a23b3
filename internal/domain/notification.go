package domain

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotifMessage      NotificationType = "message"
	NotifListing      NotificationType = "listing"
	NotifService      NotificationType = "service"
	NotifPurchase     NotificationType = "purchase"
	NotifSale         NotificationType = "sale"
	NotifBooking      NotificationType = "booking"
	NotifOrganization NotificationType = "organization"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotifMessage, NotifListing, NotifService, NotifPurchase, NotifSale, NotifBooking, NotifOrganization:
		return true
	}
	return false
}

// Notification is only ever created as a side effect of another operation.
// Read moves from false to true and never back.
type Notification struct {
	ID        int64             `gorm:"column:id;primaryKey" json:"id"`
	UserID    int64             `gorm:"column:user_id;not null;index:idx_notifications_user_read" json:"user_id"`
	Type      NotificationType  `gorm:"column:type;not null" json:"type"`
	Title     string            `gorm:"column:title;not null" json:"title"`
	Message   string            `gorm:"column:message" json:"message"`
	RelatedID *int64            `gorm:"column:related_id" json:"related_id,omitempty"`
	Read      bool              `gorm:"column:read;not null;default:false;index:idx_notifications_user_read" json:"read"`
	Data      datatypes.JSONMap `gorm:"column:data" json:"data,omitempty"`
	CreatedAt time.Time         `gorm:"column:created_at;not null;index" json:"created_at"`
}

func (Notification) TableName() string { return "Notifications" }
