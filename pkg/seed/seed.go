package seed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"propertymasters_backend/internal/model"
	"propertymasters_backend/pkg/store"
)

type managedProperty struct {
	name, address      string
	total, vacant, occ int
	propertyType       string
}

var managedProperties = []managedProperty{
	{"Argyll Shopping Centre", "Edmonton, AB", 24508, 2993, 21515, model.PropertyTypeRetail},
	{"Brentwood Building", "Edmonton, AB", 21706, 5285, 16421, model.PropertyTypeOffice},
	{"Normed Professional Centre", "Edmonton, AB", 13160, 4766, 8394, model.PropertyTypeOffice},
	{"Broadmoor Baseline Crossing", "Sherwood Park, AB", 55358, 4832, 50526, model.PropertyTypeMixedUse},
	{"Castledowns Shopping Centre", "Edmonton, AB", 60173, 0, 60173, model.PropertyTypeRetail},
	{"Centre 34", "Edmonton, AB", 20165, 0, 20165, model.PropertyTypeOffice},
	{"Hans Professional Centre", "Edmonton, AB", 28715, 0, 28715, model.PropertyTypeOffice},
	{"Hinton Land", "Hinton, AB", 5481, 0, 5481, model.PropertyTypeCommercial},
	{"AHS Project", "Alberta", 11690, 0, 11690, model.PropertyTypeOffice},
	{"No Frills", "Edmonton, AB", 37562, 0, 37562, model.PropertyTypeRetail},
	{"Millwoods Mainstreet", "Edmonton, AB", 39194, 0, 39194, model.PropertyTypeRetail},
	{"Natasha Manor", "Edmonton, AB", 3517, 1200, 2317, model.PropertyTypeResidential},
}

// SeedProperties loads the managed portfolio. Properties whose slug already
// exists are skipped, so calling it twice is harmless.
func SeedProperties(ctx context.Context, st store.Store) error {
	created := 0
	for _, mp := range managedProperties {
		_, err := st.GetPropertyBySlug(ctx, model.Slugify(mp.name))
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("lookup %s: %w", mp.name, err)
		}

		vacant, occupied, propertyType := mp.vacant, mp.occ, mp.propertyType
		_, err = st.CreateProperty(ctx, model.PropertyInput{
			Name:         mp.name,
			Address:      mp.address,
			TotalSF:      mp.total,
			VacantSF:     &vacant,
			OccupiedSF:   &occupied,
			PropertyType: &propertyType,
		})
		if err != nil {
			log.Printf("Error creating property %s: %v", mp.name, err)
			return fmt.Errorf("create %s: %w", mp.name, err)
		}
		created++
	}

	log.Printf("Properties seeded successfully! (%d created, %d total)", created, len(managedProperties))
	return nil
}
