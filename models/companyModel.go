package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Company struct {
	gorm.Model
	Name           string         `json:"name"`
	Email          string         `json:"email" gorm:"uniqueIndex;size:255"`
	Phone          datatypes.JSON `json:"phone"`
	Address        string         `json:"address"`
	Website        string         `json:"website"`
	Description    string         `json:"description"`
	Photo          string         `json:"photo"`
	StoreLocations string         `json:"store_locations" gorm:"type:text"`
}

func (c *Company) PhoneList() []string {
	var phones []string
	if len(c.Phone) > 0 {
		json.Unmarshal(c.Phone, &phones)
	}
	return phones
}

func (c *Company) SetPhoneList(phones []string) error {
	encoded, err := json.Marshal(phones)
	if err != nil {
		return err
	}
	c.Phone = datatypes.JSON(encoded)
	return nil
}
