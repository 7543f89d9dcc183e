package models

import "gorm.io/gorm"

// UserID is nullable so feedback survives deletion of its author.
type Feedback struct {
	gorm.Model
	UserID      *uint  `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
