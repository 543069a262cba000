package models

import (
	"time"

	"golang.org/x/text/cases"
)

// Record is implemented by every stored entity kind.
type Record interface {
	GetID() string
	SetID(id string)
	// NaturalKey returns the column and value used for application-level uniqueness.
	NaturalKey() (column string, value string)
	ApplyDefaults()
}

// Base carries the identifier and the store-managed timestamps shared by all records.
type Base struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) GetID() string   { return b.ID }
func (b *Base) SetID(id string) { b.ID = id }

// Fold returns the Unicode case-folded form of s, used for case-insensitive keys and search.
func Fold(s string) string {
	return cases.Fold().String(s)
}
