package user

import "tigerlife/internal/domain"

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Bio       *string `json:"bio" validate:"omitempty,max=1000"`
	Avatar    string  `json:"avatar"`
}

type UpdateEmailRequest struct {
	Email string `json:"email" binding:"required"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type UpdateSettingsRequest struct {
	Settings map[string]any `json:"settings" binding:"required"`
}

type VerifyIDRequest struct {
	Image string `json:"image" binding:"required"`
}

type MFASetup struct {
	Secret string `json:"secret"`
}

type VerifyIDResult struct {
	User     *domain.User `json:"user"`
	ImageURL string       `json:"image_url"`
}

type extractIDTextPayload struct {
	Bucket   string `json:"bucket"`
	Key      string `json:"key"`
	ImageURL string `json:"image_url"`
}

type extractIDTextResult struct {
	Text string `json:"text"`
}
