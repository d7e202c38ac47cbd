package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/go-memdb"

	"propertymasters_backend/internal/model"
)

const (
	tableProperty = "property"
	tableInquiry  = "inquiry"

	indexID   = "id"
	indexName = "name"
	indexSlug = "slug"
	indexSeq  = "seq"
)

// inquiryRecord carries an insertion sequence so equal createdAt values
// still list newest first.
type inquiryRecord struct {
	model.ContactInquiry
	Seq uint64
}

func memSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableProperty: {
				Name: tableProperty,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					indexName: {
						Name:    indexName,
						Indexer: &memdb.StringFieldIndex{Field: "Name"},
					},
					indexSlug: {
						Name:         indexSlug,
						AllowMissing: true,
						Indexer:      &memdb.StringFieldIndex{Field: "Slug"},
					},
				},
			},
			tableInquiry: {
				Name: tableInquiry,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					indexSeq: {
						Name:    indexSeq,
						Unique:  true,
						Indexer: &memdb.UintFieldIndex{Field: "Seq"},
					},
				},
			},
		},
	}
}

// MemDB is the default store, backed by go-memdb. Every operation runs in a
// single transaction; memdb allows one writer at a time.
type MemDB struct {
	db   *memdb.MemDB
	opts Options
	seq  uint64 // guarded by the memdb writer lock
}

func NewMemDB(opts Options) (*MemDB, error) {
	db, err := memdb.NewMemDB(memSchema())
	if err != nil {
		return nil, fmt.Errorf("could not create memdb: %w", err)
	}
	return &MemDB{db: db, opts: opts.withDefaults()}, nil
}

func (m *MemDB) Driver() string { return DriverMemory }

func (m *MemDB) Close() error { return nil }

func (m *MemDB) ListProperties(ctx context.Context) ([]model.Property, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableProperty, indexName)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	properties := []model.Property{}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		properties = append(properties, *raw.(*model.Property))
	}
	return properties, nil
}

func (m *MemDB) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	return m.firstProperty(indexID, id)
}

func (m *MemDB) GetPropertyBySlug(ctx context.Context, slug string) (*model.Property, error) {
	return m.firstProperty(indexSlug, slug)
}

func (m *MemDB) firstProperty(index, value string) (*model.Property, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tableProperty, index, value)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	if raw == nil {
		return nil, ErrNotFound
	}
	property := *raw.(*model.Property)
	return &property, nil
}

func (m *MemDB) CreateProperty(ctx context.Context, in model.PropertyInput) (*model.Property, error) {
	txn := m.db.Txn(true)
	defer txn.Abort()

	id, err := freshID(m.opts, func(id string) (bool, error) {
		raw, err := txn.First(tableProperty, indexID, id)
		return raw != nil, err
	})
	if err != nil {
		return nil, err
	}

	property := model.NewProperty(id, in, m.opts.Now())
	stored := property
	if err := txn.Insert(tableProperty, &stored); err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}
	txn.Commit()

	return &property, nil
}

func (m *MemDB) UpdateProperty(ctx context.Context, id string, upd model.PropertyUpdate) (*model.Property, error) {
	txn := m.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tableProperty, indexID, id)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	if raw == nil {
		return nil, ErrNotFound
	}

	merged, err := mergeProperty(*raw.(*model.Property), upd, m.opts.Now())
	if err != nil {
		return nil, err
	}
	stored := merged
	if err := txn.Insert(tableProperty, &stored); err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}
	txn.Commit()

	return &merged, nil
}

func (m *MemDB) DeleteProperty(ctx context.Context, id string) (bool, error) {
	txn := m.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tableProperty, indexID, id)
	if err != nil {
		return false, fmt.Errorf("get property: %w", err)
	}
	if raw == nil {
		return false, nil
	}
	if err := txn.Delete(tableProperty, raw); err != nil {
		return false, fmt.Errorf("delete property: %w", err)
	}
	txn.Commit()

	return true, nil
}

func (m *MemDB) ListInquiries(ctx context.Context) ([]model.ContactInquiry, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	it, err := txn.GetReverse(tableInquiry, indexSeq)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}

	inquiries := []model.ContactInquiry{}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		inquiries = append(inquiries, raw.(*inquiryRecord).ContactInquiry)
	}
	// sequence order already matches unless the clock stepped backwards
	sort.SliceStable(inquiries, func(i, j int) bool {
		return inquiries[i].CreatedAt.After(inquiries[j].CreatedAt)
	})
	return inquiries, nil
}

func (m *MemDB) GetInquiry(ctx context.Context, id string) (*model.ContactInquiry, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tableInquiry, indexID, id)
	if err != nil {
		return nil, fmt.Errorf("get inquiry: %w", err)
	}
	if raw == nil {
		return nil, ErrNotFound
	}
	inquiry := raw.(*inquiryRecord).ContactInquiry
	return &inquiry, nil
}

func (m *MemDB) CreateInquiry(ctx context.Context, in model.InquiryInput) (*model.ContactInquiry, error) {
	txn := m.db.Txn(true)
	defer txn.Abort()

	id, err := freshID(m.opts, func(id string) (bool, error) {
		raw, err := txn.First(tableInquiry, indexID, id)
		return raw != nil, err
	})
	if err != nil {
		return nil, err
	}

	m.seq++
	record := &inquiryRecord{
		ContactInquiry: model.NewContactInquiry(id, in, m.opts.Now()),
		Seq:            m.seq,
	}
	if err := txn.Insert(tableInquiry, record); err != nil {
		return nil, fmt.Errorf("insert inquiry: %w", err)
	}
	txn.Commit()

	inquiry := record.ContactInquiry
	return &inquiry, nil
}

func (m *MemDB) UpdateInquiryStatus(ctx context.Context, id string, status model.InquiryStatus) (*model.ContactInquiry, error) {
	txn := m.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tableInquiry, indexID, id)
	if err != nil {
		return nil, fmt.Errorf("get inquiry: %w", err)
	}
	if raw == nil {
		return nil, ErrNotFound
	}

	record := *raw.(*inquiryRecord)
	record.Status = status
	if err := txn.Insert(tableInquiry, &record); err != nil {
		return nil, fmt.Errorf("update inquiry: %w", err)
	}
	txn.Commit()

	inquiry := record.ContactInquiry
	return &inquiry, nil
}

func (m *MemDB) CountInquiries(ctx context.Context) (int, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableInquiry, indexID)
	if err != nil {
		return 0, fmt.Errorf("count inquiries: %w", err)
	}
	n := 0
	for raw := it.Next(); raw != nil; raw = it.Next() {
		n++
	}
	return n, nil
}
