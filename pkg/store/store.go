// Package store owns the property and contact-inquiry collections. All state
// is process memory and is lost on restart.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"propertymasters_backend/internal/model"
	"propertymasters_backend/pkg/config"
)

// ErrNotFound is returned by lookups on an id or slug with no record.
var ErrNotFound = errors.New("record not found")

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Store is the storage contract handlers depend on. A durable replacement
// must keep these semantics, not the implementation.
type Store interface {
	// ListProperties returns every property ordered by name, byte-wise ascending.
	ListProperties(ctx context.Context) ([]model.Property, error)
	GetProperty(ctx context.Context, id string) (*model.Property, error)
	GetPropertyBySlug(ctx context.Context, slug string) (*model.Property, error)
	CreateProperty(ctx context.Context, in model.PropertyInput) (*model.Property, error)
	// UpdateProperty merges only the supplied fields and refreshes updatedAt.
	// It returns model.ErrOccupancyExceedsTotal, without writing, when the
	// merged record breaks the square footage invariant.
	UpdateProperty(ctx context.Context, id string, upd model.PropertyUpdate) (*model.Property, error)
	// DeleteProperty reports whether a record existed and was removed.
	DeleteProperty(ctx context.Context, id string) (bool, error)

	// ListInquiries returns every inquiry newest first.
	ListInquiries(ctx context.Context) ([]model.ContactInquiry, error)
	GetInquiry(ctx context.Context, id string) (*model.ContactInquiry, error)
	CreateInquiry(ctx context.Context, in model.InquiryInput) (*model.ContactInquiry, error)
	UpdateInquiryStatus(ctx context.Context, id string, status model.InquiryStatus) (*model.ContactInquiry, error)
	CountInquiries(ctx context.Context) (int, error)

	Driver() string
	Close() error
}

// Options carries the clock and id source. Zero values use time.Now and
// random UUIDs.
type Options struct {
	Now   func() time.Time
	NewID func() string
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return o
}

// maxIDAttempts bounds the retry loop when a generated id is already taken.
const maxIDAttempts = 8

func freshID(opts Options, taken func(id string) (bool, error)) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := opts.NewID()
		exists, err := taken(id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique id after %d attempts", maxIDAttempts)
}

// mergeProperty applies upd to existing. The occupancy invariant is only
// checked when the update touches square footage, so records that predate
// the check stay editable.
func mergeProperty(existing model.Property, upd model.PropertyUpdate, now time.Time) (model.Property, error) {
	merged := existing.Apply(upd, now)
	if upd.TotalSF != nil || upd.VacantSF != nil || upd.OccupiedSF != nil {
		if err := merged.CheckOccupancy(); err != nil {
			return model.Property{}, err
		}
	}
	return merged, nil
}

// Open builds the store named by cfg.Driver.
func Open(cfg config.StoreConfig, opts Options) (Store, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		log.Println("[store] using go-memdb in-memory store")
		return NewMemDB(opts)
	case DriverSQLite:
		log.Println("[store] using gorm sqlite in-memory store")
		return NewGorm(opts)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
