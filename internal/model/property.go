package model

import (
	"errors"
	"time"

	"github.com/gosimple/slug"
)

// Property types in the portfolio. The field is free text; these are the
// values the site knows how to group.
const (
	PropertyTypeCommercial  = "commercial"
	PropertyTypeOffice      = "office"
	PropertyTypeRetail      = "retail"
	PropertyTypeMixedUse    = "mixed-use"
	PropertyTypeResidential = "residential"
	PropertyTypeIndustrial  = "industrial"
)

const DefaultPropertyType = PropertyTypeCommercial

var ErrOccupancyExceedsTotal = errors.New("vacantSF plus occupiedSF exceeds totalSF")

// Property is a managed building or parcel. Square footage is whole square feet.
type Property struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null;index"`
	Slug         string    `json:"slug" gorm:"not null;index"`
	Address      string    `json:"address" gorm:"not null"`
	TotalSF      int       `json:"totalSF" gorm:"column:total_sf;not null"`
	VacantSF     int       `json:"vacantSF" gorm:"column:vacant_sf;not null;default:0"`
	OccupiedSF   int       `json:"occupiedSF" gorm:"column:occupied_sf;not null;default:0"`
	PropertyType string    `json:"propertyType" gorm:"size:100;not null;default:'commercial'"`
	Description  *string   `json:"description" gorm:"type:text"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

// PropertyInput is a validated create request. Nil pointers take the defaults.
type PropertyInput struct {
	Name         string
	Address      string
	TotalSF      int
	VacantSF     *int
	OccupiedSF   *int
	PropertyType *string
	Description  *string
}

// PropertyUpdate is a validated partial update. A nil field is left alone;
// Description is only touched when DescriptionSet is true, and may then be nil.
type PropertyUpdate struct {
	Name           *string
	Address        *string
	TotalSF        *int
	VacantSF       *int
	OccupiedSF     *int
	PropertyType   *string
	Description    *string
	DescriptionSet bool
}

// IsEmpty reports whether the update carries no fields.
func (u PropertyUpdate) IsEmpty() bool {
	return u.Name == nil && u.Address == nil && u.TotalSF == nil && u.VacantSF == nil &&
		u.OccupiedSF == nil && u.PropertyType == nil && !u.DescriptionSet
}

// NewProperty builds a record from input with defaults applied.
func NewProperty(id string, in PropertyInput, now time.Time) Property {
	p := Property{
		ID:           id,
		Name:         in.Name,
		Slug:         Slugify(in.Name),
		Address:      in.Address,
		TotalSF:      in.TotalSF,
		PropertyType: DefaultPropertyType,
		Description:  in.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.VacantSF != nil {
		p.VacantSF = *in.VacantSF
	}
	if in.OccupiedSF != nil {
		p.OccupiedSF = *in.OccupiedSF
	}
	if in.PropertyType != nil {
		p.PropertyType = *in.PropertyType
	}
	return p
}

// Apply returns a copy of p with the supplied fields overwritten and
// UpdatedAt set to now. Explicit zeroes are values, not absence.
func (p Property) Apply(u PropertyUpdate, now time.Time) Property {
	if u.Name != nil {
		p.Name = *u.Name
		p.Slug = Slugify(p.Name)
	}
	if u.Address != nil {
		p.Address = *u.Address
	}
	if u.TotalSF != nil {
		p.TotalSF = *u.TotalSF
	}
	if u.VacantSF != nil {
		p.VacantSF = *u.VacantSF
	}
	if u.OccupiedSF != nil {
		p.OccupiedSF = *u.OccupiedSF
	}
	if u.PropertyType != nil {
		p.PropertyType = *u.PropertyType
	}
	if u.DescriptionSet {
		p.Description = u.Description
	}
	p.UpdatedAt = now
	return p
}

// CheckOccupancy enforces vacantSF + occupiedSF <= totalSF.
func (p Property) CheckOccupancy() error {
	return CheckOccupancy(p.TotalSF, p.VacantSF, p.OccupiedSF)
}

func CheckOccupancy(total, vacant, occupied int) error {
	if vacant+occupied > total {
		return ErrOccupancyExceedsTotal
	}
	return nil
}

func Slugify(name string) string {
	return slug.Make(name)
}
