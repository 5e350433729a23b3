package event

import "time"

type CreateEventRequest struct {
	Title          string    `json:"title" validate:"required,max=200"`
	Description    string    `json:"description" validate:"max=5000"`
	Date           time.Time `json:"date"`
	Location       string    `json:"location" validate:"max=300"`
	OrganizationID int64     `json:"organization_id" validate:"required,gt=0"`
	// Image is an optional data-URL uploaded as part of the create.
	Image string `json:"image,omitempty"`
	// ImageURL is an already uploaded image, see UploadEventImage.
	ImageURL string `json:"image_url,omitempty"`
}

type UploadImageRequest struct {
	Image string `json:"image" validate:"required"`
}
