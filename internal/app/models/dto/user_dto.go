package dto

import "time"

// UserResponse represents public user information
type UserResponse struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName,omitempty"`
	LastName   string    `json:"lastName,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	AvatarURL  *string   `json:"avatarUrl,omitempty"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ProfileResponse is the caller's own profile plus account statistics
type ProfileResponse struct {
	UserResponse
	RegistrationsCount int64 `json:"registrationsCount"`
}

// UpdateProfileRequest updates the caller's profile fields
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"omitempty,max=50"`
	LastName  string `json:"lastName" binding:"omitempty,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"omitempty,max=15"`
	Bio       string `json:"bio" binding:"omitempty,max=2000"`
}
