package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"propertymasters_backend/internal/model"
	"propertymasters_backend/pkg/database"
)

// Gorm keeps both collections in a private in-memory sqlite database. It is
// as volatile as MemDB; it exists so the SQL path is exercised by the same
// contract.
type Gorm struct {
	db   *gorm.DB
	opts Options
}

func NewGorm(opts Options) (*Gorm, error) {
	opts = opts.withDefaults()

	db, err := database.Open(database.MemoryDSN(), opts.Now)
	if err != nil {
		return nil, err
	}
	if err := database.MigrateDatabase(db, &model.Property{}, &model.ContactInquiry{}); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Gorm{db: db, opts: opts}, nil
}

func (g *Gorm) Driver() string { return DriverSQLite }

func (g *Gorm) Close() error { return database.Close(g.db) }

func (g *Gorm) ListProperties(ctx context.Context) ([]model.Property, error) {
	properties := []model.Property{}
	if err := g.db.WithContext(ctx).Order("name asc").Order("id asc").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return properties, nil
}

func (g *Gorm) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	return g.firstProperty(g.db.WithContext(ctx), "id = ?", id)
}

func (g *Gorm) GetPropertyBySlug(ctx context.Context, slug string) (*model.Property, error) {
	return g.firstProperty(g.db.WithContext(ctx).Order("id asc"), "slug = ?", slug)
}

func (g *Gorm) firstProperty(tx *gorm.DB, query string, arg string) (*model.Property, error) {
	var property model.Property
	if err := tx.Where(query, arg).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return &property, nil
}

func (g *Gorm) CreateProperty(ctx context.Context, in model.PropertyInput) (*model.Property, error) {
	var property model.Property
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := freshID(g.opts, func(id string) (bool, error) {
			var n int64
			err := tx.Model(&model.Property{}).Where("id = ?", id).Count(&n).Error
			return n > 0, err
		})
		if err != nil {
			return err
		}

		property = model.NewProperty(id, in, g.opts.Now())
		return tx.Create(&property).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	return &property, nil
}

func (g *Gorm) UpdateProperty(ctx context.Context, id string, upd model.PropertyUpdate) (*model.Property, error) {
	var merged model.Property
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := g.firstProperty(tx, "id = ?", id)
		if err != nil {
			return err
		}

		merged, err = mergeProperty(*existing, upd, g.opts.Now())
		if err != nil {
			return err
		}
		return tx.Save(&merged).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, model.ErrOccupancyExceedsTotal) {
			return nil, err
		}
		return nil, fmt.Errorf("update property: %w", err)
	}
	return &merged, nil
}

func (g *Gorm) DeleteProperty(ctx context.Context, id string) (bool, error) {
	result := g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Property{})
	if result.Error != nil {
		return false, fmt.Errorf("delete property: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (g *Gorm) ListInquiries(ctx context.Context) ([]model.ContactInquiry, error) {
	inquiries := []model.ContactInquiry{}
	err := g.db.WithContext(ctx).
		Order("created_at desc").
		Order("rowid desc").
		Find(&inquiries).Error
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return inquiries, nil
}

func (g *Gorm) GetInquiry(ctx context.Context, id string) (*model.ContactInquiry, error) {
	return g.firstInquiry(g.db.WithContext(ctx), id)
}

func (g *Gorm) firstInquiry(tx *gorm.DB, id string) (*model.ContactInquiry, error) {
	var inquiry model.ContactInquiry
	if err := tx.Where("id = ?", id).First(&inquiry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get inquiry: %w", err)
	}
	return &inquiry, nil
}

func (g *Gorm) CreateInquiry(ctx context.Context, in model.InquiryInput) (*model.ContactInquiry, error) {
	var inquiry model.ContactInquiry
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := freshID(g.opts, func(id string) (bool, error) {
			var n int64
			err := tx.Model(&model.ContactInquiry{}).Where("id = ?", id).Count(&n).Error
			return n > 0, err
		})
		if err != nil {
			return err
		}

		inquiry = model.NewContactInquiry(id, in, g.opts.Now())
		return tx.Create(&inquiry).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}
	return &inquiry, nil
}

func (g *Gorm) UpdateInquiryStatus(ctx context.Context, id string, status model.InquiryStatus) (*model.ContactInquiry, error) {
	var inquiry *model.ContactInquiry
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		inquiry, err = g.firstInquiry(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Model(&model.ContactInquiry{}).Where("id = ?", id).Update("status", status).Error; err != nil {
			return err
		}
		inquiry.Status = status
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update inquiry: %w", err)
	}
	return inquiry, nil
}

func (g *Gorm) CountInquiries(ctx context.Context) (int, error) {
	var n int64
	if err := g.db.WithContext(ctx).Model(&model.ContactInquiry{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count inquiries: %w", err)
	}
	return int(n), nil
}
