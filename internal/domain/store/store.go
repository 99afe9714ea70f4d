package store

import "context"

// Well-known scope IDs installed with every storefront
const (
	AdminWebsiteID   uint = 0
	AdminStoreID     uint = 0
	DefaultWebsiteID uint = 1
	DefaultStoreID   uint = 1
)

// Website is the top-level sales scope products are assigned to
type Website struct {
	ID        uint
	Code      string
	Name      string
	IsDefault bool
}

// Store is a store view belonging to a website
type Store struct {
	ID        uint
	Code      string
	Name      string
	WebsiteID uint
	IsActive  bool
	IsDefault bool
}

// IsAdmin returns true for the admin store view
func (s *Store) IsAdmin() bool {
	return s.ID == AdminStoreID && s.Code == "admin"
}

// Manager resolves websites and store views
type Manager interface {
	// CurrentStore returns the store view operations should run against: the
	// default store view of the default website.
	CurrentStore(ctx context.Context) (*Store, error)

	// StoreByCode finds a store view by code
	StoreByCode(ctx context.Context, code string) (*Store, error)
}

// Repository installs websites and store views
type Repository interface {
	// EnsureWebsite inserts the website unless its ID exists; reports whether a row was created
	EnsureWebsite(ctx context.Context, website *Website) (bool, error)

	// EnsureStore inserts the store unless its ID exists; reports whether a row was created
	EnsureStore(ctx context.Context, store *Store) (bool, error)
}
