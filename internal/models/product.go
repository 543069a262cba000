package models

import (
	"strings"

	"gorm.io/gorm"
)

// ProductCategories is the closed set of categories a product may belong to.
var ProductCategories = []string{
	"Electrónicos", "Ropa", "Hogar", "Deportes", "Libros", "Juguetes", "Salud", "Otros",
}

// Product represents a product in the catalog.
type Product struct {
	Base
	Name           string  `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=2,max=100"`
	NameKey        string  `json:"-" gorm:"type:varchar(400);not null;uniqueIndex"`
	Description    string  `json:"description" gorm:"type:varchar(500);not null" validate:"required,max=500"`
	DescriptionKey string  `json:"-" gorm:"type:text"`
	Price          float64 `json:"price" gorm:"not null;index" validate:"gte=0"`
	Category       string  `json:"category" gorm:"type:varchar(40);not null;index" validate:"required,product_category"`
	Stock          int     `json:"stock" gorm:"not null;default:0" validate:"gte=0"`
	Available      bool    `json:"available" gorm:"not null;index"`
	ImageURL       *string `json:"imageUrl,omitempty" gorm:"type:varchar(1024)"`
}

// NaturalKey is the folded name: product names are unique regardless of case.
func (p *Product) NaturalKey() (string, string) { return "name_key", Fold(p.Name) }

func (p *Product) ApplyDefaults() {
	p.Available = true
}

// BeforeSave keeps the folded shadow columns in sync with name and description.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.NameKey = Fold(p.Name)
	p.DescriptionKey = Fold(p.Description)
	return nil
}

// ProductPayload is the body of a product create or partial update.
type ProductPayload struct {
	Name        *string  `json:"name" yaml:"name" validate:"required"`
	Description *string  `json:"description" yaml:"description" validate:"required"`
	Price       *float64 `json:"price" yaml:"price" validate:"required"`
	Category    *string  `json:"category" yaml:"category" validate:"required"`
	Stock       *int     `json:"stock" yaml:"stock"`
	Available   *bool    `json:"available" yaml:"available"`
	ImageURL    *string  `json:"imageUrl" yaml:"imageUrl"`
}

// Apply copies the fields present in the payload onto dst.
func (in ProductPayload) Apply(dst *Product) {
	if in.Name != nil {
		dst.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		dst.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		dst.Price = *in.Price
	}
	if in.Category != nil {
		dst.Category = strings.TrimSpace(*in.Category)
	}
	if in.Stock != nil {
		dst.Stock = *in.Stock
	}
	if in.Available != nil {
		dst.Available = *in.Available
	}
	if in.ImageURL != nil {
		url := strings.TrimSpace(*in.ImageURL)
		dst.ImageURL = &url
	}
}
