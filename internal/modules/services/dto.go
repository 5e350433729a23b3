package services

import "time"

const maxImages = 8

type ListServiceRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Price       float64  `json:"price" validate:"gte=0"`
	Category    string   `json:"category" validate:"max=100"`
	Images      []string `json:"images"`
}

type BookServiceRequest struct {
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
	Note         string     `json:"note" validate:"max=1000"`
}
