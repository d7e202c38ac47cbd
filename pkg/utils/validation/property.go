package validation

import (
	"propertymasters_backend/internal/model"
)

const occupancyMessage = "vacantSF plus occupiedSF must not exceed totalSF"

type propertyForm struct {
	Name         *string `json:"name" validate:"required,min=1"`
	Address      *string `json:"address" validate:"required,min=1"`
	TotalSF      *int    `json:"totalSF" validate:"required,min=0"`
	VacantSF     *int    `json:"vacantSF" validate:"omitempty,min=0"`
	OccupiedSF   *int    `json:"occupiedSF" validate:"omitempty,min=0"`
	PropertyType *string `json:"propertyType" validate:"omitempty,min=1"`
}

type propertyPatchForm struct {
	Name         *string `json:"name" validate:"omitempty,min=1"`
	Address      *string `json:"address" validate:"omitempty,min=1"`
	TotalSF      *int    `json:"totalSF" validate:"omitempty,min=0"`
	VacantSF     *int    `json:"vacantSF" validate:"omitempty,min=0"`
	OccupiedSF   *int    `json:"occupiedSF" validate:"omitempty,min=0"`
	PropertyType *string `json:"propertyType" validate:"omitempty,min=1"`
}

// ParsePropertyCreate validates a create body. Unknown fields, id, slug and
// timestamps are ignored.
func ParsePropertyCreate(obj Object) (model.PropertyInput, error) {
	r := newReader(obj)
	form := propertyForm{
		Name:         r.String("name"),
		Address:      r.String("address"),
		TotalSF:      r.Int("totalSF"),
		VacantSF:     r.Int("vacantSF"),
		OccupiedSF:   r.Int("occupiedSF"),
		PropertyType: r.String("propertyType"),
	}
	description, _ := r.NullableString("description")
	r.check(&form)

	if len(r.errs) == 0 {
		if err := model.CheckOccupancy(*form.TotalSF, deref(form.VacantSF), deref(form.OccupiedSF)); err != nil {
			r.errs.Add("vacantSF", occupancyMessage)
		}
	}
	if err := r.errs.Err(); err != nil {
		return model.PropertyInput{}, err
	}

	return model.PropertyInput{
		Name:         *form.Name,
		Address:      *form.Address,
		TotalSF:      *form.TotalSF,
		VacantSF:     form.VacantSF,
		OccupiedSF:   form.OccupiedSF,
		PropertyType: form.PropertyType,
		Description:  description,
	}, nil
}

// ParsePropertyUpdate validates a partial update. An empty object is valid.
func ParsePropertyUpdate(obj Object) (model.PropertyUpdate, error) {
	r := newReader(obj)
	form := propertyPatchForm{
		Name:         r.String("name"),
		Address:      r.String("address"),
		TotalSF:      r.Int("totalSF"),
		VacantSF:     r.Int("vacantSF"),
		OccupiedSF:   r.Int("occupiedSF"),
		PropertyType: r.String("propertyType"),
	}
	description, descriptionSet := r.NullableString("description")
	r.check(&form)

	if err := r.errs.Err(); err != nil {
		return model.PropertyUpdate{}, err
	}

	return model.PropertyUpdate{
		Name:           form.Name,
		Address:        form.Address,
		TotalSF:        form.TotalSF,
		VacantSF:       form.VacantSF,
		OccupiedSF:     form.OccupiedSF,
		PropertyType:   form.PropertyType,
		Description:    description,
		DescriptionSet: descriptionSet,
	}, nil
}

// OccupancyError is the field error reported when a merged update breaks
// the square footage invariant.
func OccupancyError() *ValidationError {
	errs := FieldErrors{}
	errs.Add("vacantSF", occupancyMessage)
	return &ValidationError{Fields: errs}
}

func deref(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
