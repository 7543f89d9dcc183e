package models

import "gorm.io/gorm"

type SocialMedia struct {
	gorm.Model
	Name    string `json:"name"`
	Photo   string `json:"photo"`
	LinkURL string `json:"link_url"`
}

func (SocialMedia) TableName() string {
	return "social_media"
}
