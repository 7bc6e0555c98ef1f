package models

import "time"

// AdminUser represents a staff account allowed into the dashboard.
type AdminUser struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // '-' means don't send in JSON response
}

// Credentials for login request
type Credentials struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Session describes an authenticated dashboard session.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}
