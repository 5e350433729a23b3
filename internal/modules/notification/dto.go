package notification

import "tigerlife/internal/domain"

type MarkReadRequest struct {
	IsRead *bool `json:"is_read"`
}

type ListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}
