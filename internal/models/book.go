package models

import "strings"

// Book represents a book in the library collection.
type Book struct {
	Base
	Title         string  `json:"title" gorm:"type:varchar(255);not null;uniqueIndex" validate:"required"`
	Author        string  `json:"author" gorm:"type:varchar(255);not null" validate:"required"`
	PublishedYear *int    `json:"publishedYear,omitempty" validate:"omitempty,past_year"`
	Genre         *string `json:"genre,omitempty" gorm:"type:varchar(100)"`
	Available     bool    `json:"available" gorm:"not null"`
}

func (b *Book) NaturalKey() (string, string) { return "title", b.Title }

func (b *Book) ApplyDefaults() {
	b.Available = true
}

// BookPayload is the body of a book create or partial update.
type BookPayload struct {
	Title         *string `json:"title" yaml:"title" validate:"required"`
	Author        *string `json:"author" yaml:"author" validate:"required"`
	PublishedYear *int    `json:"publishedYear" yaml:"publishedYear"`
	Genre         *string `json:"genre" yaml:"genre"`
	Available     *bool   `json:"available" yaml:"available"`
}

func (in BookPayload) Apply(dst *Book) {
	if in.Title != nil {
		dst.Title = strings.TrimSpace(*in.Title)
	}
	if in.Author != nil {
		dst.Author = strings.TrimSpace(*in.Author)
	}
	if in.PublishedYear != nil {
		year := *in.PublishedYear
		dst.PublishedYear = &year
	}
	if in.Genre != nil {
		genre := strings.TrimSpace(*in.Genre)
		dst.Genre = &genre
	}
	if in.Available != nil {
		dst.Available = *in.Available
	}
}
