package app

import (
	"context"
	"fmt"

	"vendor-storage/internal/core"
)

type appService struct {
	vendors    core.VendorService
	categories core.CategoryService
}

// NewAppService wires the application service over the domain services.
func NewAppService(vendors core.VendorService, categories core.CategoryService) ApplicationService {
	return &appService{vendors: vendors, categories: categories}
}

func (s *appService) CreateVendor(ctx context.Context, tenant string, vendor *core.Vendor) (*VendorResult, error) {
	if vendor.Name == "" {
		return nil, fmt.Errorf("vendor name is required")
	}
	if vendor.Code == "" {
		return nil, fmt.Errorf("vendor code is required")
	}
	created, err := s.vendors.CreateVendor(ctx, tenant, vendor)
	if err != nil {
		return nil, err
	}
	return &VendorResult{Vendor: created}, nil
}

func (s *appService) GetVendor(ctx context.Context, tenant string, id int64) (*VendorResult, error) {
	rec, err := s.vendors.GetVendor(ctx, tenant, id)
	if err != nil {
		return nil, err
	}
	return &VendorResult{Vendor: rec.Vendor, Degraded: rec.Degraded}, nil
}

func (s *appService) UpdateVendor(ctx context.Context, tenant string, id int64, vendor *core.Vendor) (*VendorResult, error) {
	if vendor.Name == "" {
		return nil, fmt.Errorf("vendor name is required")
	}
	if vendor.Code == "" {
		return nil, fmt.Errorf("vendor code is required")
	}
	updated, err := s.vendors.UpdateVendor(ctx, tenant, id, vendor)
	if err != nil {
		return nil, err
	}
	return &VendorResult{Vendor: updated}, nil
}

func (s *appService) DeleteVendor(ctx context.Context, tenant string, id int64) (*VendorResult, error) {
	snapshot, err := s.vendors.DeleteVendor(ctx, tenant, id)
	if err != nil {
		return nil, err
	}
	return &VendorResult{Vendor: snapshot}, nil
}

func (s *appService) ListVendors(ctx context.Context, tenant string) (*VendorListResult, error) {
	vendors, err := s.vendors.ListVendors(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return &VendorListResult{Vendors: vendors, Tenant: tenant}, nil
}

func (s *appService) CreateCategory(ctx context.Context, tenant, value string) (*CategoryResult, error) {
	if value == "" {
		return nil, fmt.Errorf("category value is required")
	}
	c, err := s.categories.CreateCategory(ctx, tenant, value)
	if err != nil {
		return nil, err
	}
	return &CategoryResult{Category: c}, nil
}

func (s *appService) GetCategory(ctx context.Context, tenant string, id int64) (*CategoryResult, error) {
	c, err := s.categories.GetCategory(ctx, tenant, id)
	if err != nil {
		return nil, err
	}
	return &CategoryResult{Category: c}, nil
}

func (s *appService) ListCategories(ctx context.Context, tenant string) (*CategoryListResult, error) {
	categories, err := s.categories.ListCategories(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return &CategoryListResult{Categories: categories, Tenant: tenant}, nil
}

func (s *appService) UpdateCategory(ctx context.Context, tenant string, id int64, value string) (*CategoryResult, error) {
	if value == "" {
		return nil, fmt.Errorf("category value is required")
	}
	c, err := s.categories.UpdateCategory(ctx, tenant, id, value)
	if err != nil {
		return nil, err
	}
	return &CategoryResult{Category: c}, nil
}

func (s *appService) DeleteCategory(ctx context.Context, tenant string, id int64) error {
	return s.categories.DeleteCategory(ctx, tenant, id)
}
