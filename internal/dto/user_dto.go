package dto

type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
}

type UpdatePreferencesRequest struct {
	Language string `json:"language" validate:"omitempty,oneof=en bn"`
	Theme    string `json:"theme" validate:"omitempty,oneof=light dark system"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}
