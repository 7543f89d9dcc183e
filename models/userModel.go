package models

import "gorm.io/gorm"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"uniqueIndex;size:255"`
	Email    string `json:"email" gorm:"uniqueIndex;size:255"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"type:varchar(10);default:'user'"`
	Address  string `json:"address"`
	Dob      string `json:"dob"`
	Profile  string `json:"profile"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
