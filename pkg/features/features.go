package features

import "propertymasters_backend/pkg/config"

type Feature string

const (
	// AdminInquiries exposes the inquiry list, detail and status routes.
	// They have no authentication, so the default is off.
	AdminInquiries Feature = "admin_inquiries"
	// ContactCompat exposes POST /api/contact for external form builders.
	ContactCompat Feature = "contact_compat"
)

type Flags map[Feature]bool

func FromConfig(cfg config.FeatureConfig) Flags {
	return Flags{
		AdminInquiries: cfg.AdminInquiries,
		ContactCompat:  cfg.ContactCompat,
	}
}

// Enabled reports whether feature is on. Unknown features are off.
func (f Flags) Enabled(feature Feature) bool {
	return f[feature]
}
