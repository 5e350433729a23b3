package domain

import "time"

type Event struct {
	ID             int64     `gorm:"column:id;primaryKey" json:"id"`
	Title          string    `gorm:"column:title;not null" json:"title"`
	Description    string    `gorm:"column:description" json:"description"`
	Date           time.Time `gorm:"column:date;not null;index" json:"date"`
	Location       string    `gorm:"column:location" json:"location"`
	OrganizationID int64     `gorm:"column:organization_id;not null;index" json:"organization_id"`
	CreatorID      int64     `gorm:"column:creator_id;not null" json:"creator_id"`
	ImageURL       *string   `gorm:"column:image_url" json:"image_url"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Event) TableName() string { return "events" }
