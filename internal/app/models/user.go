package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                          // Unique identifier for the user
	Username    string     `json:"username" db:"username" example:"mkisinia"`                       // Unique username chosen at signup
	Email       string     `json:"email" db:"email" example:"user@example.com"`                     // User's email address
	Password    string     `json:"-" db:"password"`                                                 // User's hashed password (excluded from JSON)
	FirstName   string     `json:"firstName" db:"first_name" example:"John"`                        // User's first name
	LastName    string     `json:"lastName" db:"last_name" example:"Doe"`                           // User's last name
	Phone       string     `json:"phone,omitempty" db:"phone" example:"+254700000000"`              // Optional phone number
	Bio         string     `json:"bio,omitempty" db:"bio"`                                          // Optional free-form bio
	AvatarURL   *string    `json:"avatarUrl,omitempty" db:"avatar_url" example:"uploads/a.jpg"`     // URL of the user's avatar (nullable)
	Role        Role       `json:"role" db:"role" example:"USER"`                                   // User's role (USER or STAFF)
	IsVerified  bool       `json:"isVerified" db:"is_verified" example:"false"`                     // Whether the account has been verified by staff
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`        // Timestamp when the user was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`        // Timestamp when the user was last updated
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                        // Timestamp of the last login (nullable)
}

// IsStaff reports whether the user can access administrative routes
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}
