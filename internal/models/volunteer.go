package models

import "strings"

// VolunteerActivities is the closed set of activities a volunteer can sign up for.
var VolunteerActivities = []string{
	"Educación", "Salud", "Medio Ambiente", "Asistencia Social",
	"Deportes", "Cultura", "Tecnología", "Otros",
}

// Volunteer represents a registered volunteer.
type Volunteer struct {
	Base
	Name     string `json:"name" gorm:"type:varchar(50);not null" validate:"required,min=2,max=50"`
	Email    string `json:"email" gorm:"type:varchar(255);not null;uniqueIndex" validate:"required,volunteer_email"`
	Activity string `json:"activity" gorm:"type:varchar(40);not null" validate:"required,volunteer_activity"`
}

func (v *Volunteer) NaturalKey() (string, string) { return "email", v.Email }

func (v *Volunteer) ApplyDefaults() {}

// VolunteerPayload is the body of a volunteer registration or partial update.
type VolunteerPayload struct {
	Name     *string `json:"name" yaml:"name" validate:"required"`
	Email    *string `json:"email" yaml:"email" validate:"required"`
	Activity *string `json:"activity" yaml:"activity" validate:"required"`
}

// Apply copies the present fields onto dst; emails are stored lowercased.
func (in VolunteerPayload) Apply(dst *Volunteer) {
	if in.Name != nil {
		dst.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		dst.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Activity != nil {
		dst.Activity = strings.TrimSpace(*in.Activity)
	}
}
