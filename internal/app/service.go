package app

import (
	"context"

	"vendor-storage/internal/core"
)

// ApplicationService is the single interface the web adapter calls. It
// decouples presentation from the persistence engine; implementations carry
// no HTTP or display logic.
type ApplicationService interface {
	// CreateVendor persists a new vendor aggregate for the tenant.
	CreateVendor(ctx context.Context, tenant string, vendor *core.Vendor) (*VendorResult, error)

	// GetVendor assembles a vendor aggregate, reporting degraded child fetches.
	GetVendor(ctx context.Context, tenant string, id int64) (*VendorResult, error)

	// UpdateVendor rewrites the stored aggregate to match the payload.
	UpdateVendor(ctx context.Context, tenant string, id int64, vendor *core.Vendor) (*VendorResult, error)

	// DeleteVendor cascades deletion and returns the deleted snapshot.
	DeleteVendor(ctx context.Context, tenant string, id int64) (*VendorResult, error)

	// ListVendors returns vendor summaries for the tenant.
	ListVendors(ctx context.Context, tenant string) (*VendorListResult, error)

	// CreateCategory adds a category reference value.
	CreateCategory(ctx context.Context, tenant, value string) (*CategoryResult, error)

	// GetCategory returns one category by ID.
	GetCategory(ctx context.Context, tenant string, id int64) (*CategoryResult, error)

	// ListCategories returns all categories for the tenant.
	ListCategories(ctx context.Context, tenant string) (*CategoryListResult, error)

	// UpdateCategory renames a category.
	UpdateCategory(ctx context.Context, tenant string, id int64, value string) (*CategoryResult, error)

	// DeleteCategory removes a category; existing junction rows are left behind.
	DeleteCategory(ctx context.Context, tenant string, id int64) error
}

// VendorResult is returned by the vendor aggregate operations. Degraded is
// only populated by reads and names child tables whose fetch failed.
type VendorResult struct {
	Vendor   *core.Vendor
	Degraded []string
}

// VendorListResult is returned by ListVendors.
type VendorListResult struct {
	Vendors []core.VendorSummary
	Tenant  string
}

// CategoryResult is returned by single-category operations.
type CategoryResult struct {
	Category *core.Category
}

// CategoryListResult is returned by ListCategories.
type CategoryListResult struct {
	Categories []core.Category
	Tenant     string
}
