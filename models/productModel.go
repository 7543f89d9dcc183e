package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ProductTypeMen   = "men"
	ProductTypeWomen = "women"
	ProductTypeKids  = "kids"
)

type Product struct {
	gorm.Model
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int             `json:"stock"`
	Sizes       datatypes.JSON  `json:"sizes"`
	Color       string          `json:"color"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Images      datatypes.JSON  `json:"images"`
	Rating      float64         `json:"rating"`
	ProductType string          `json:"product_type" gorm:"type:varchar(20)"`
}

func ValidProductType(t string) bool {
	return t == ProductTypeMen || t == ProductTypeWomen || t == ProductTypeKids
}

// ImageList decodes the JSON images column into filenames. A missing or
// malformed column yields an empty list.
func (p *Product) ImageList() []string {
	var names []string
	if len(p.Images) > 0 {
		json.Unmarshal(p.Images, &names)
	}
	return names
}

func (p *Product) SetImageList(names []string) error {
	encoded, err := json.Marshal(names)
	if err != nil {
		return err
	}
	p.Images = datatypes.JSON(encoded)
	return nil
}

func (p *Product) SizeList() []string {
	var sizes []string
	if len(p.Sizes) > 0 {
		json.Unmarshal(p.Sizes, &sizes)
	}
	return sizes
}
