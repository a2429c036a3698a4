package core_test

import (
	"context"
	"errors"
	"testing"

	"vendor-storage/internal/core"
)

func TestCategory_CRUD(t *testing.T) {
	pool, tenant := setupTestDB(t)
	ctx := context.Background()
	svc := core.NewCategoryService(pool)

	claim, err := svc.CreateCategory(ctx, tenant, "claim")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if claim.ID == 0 {
		t.Fatal("expected category ID to be set")
	}

	got, err := svc.GetCategory(ctx, tenant, claim.ID)
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if got.Value != "claim" {
		t.Errorf("expected value claim, got %s", got.Value)
	}

	if _, err := svc.CreateCategory(ctx, tenant, "order"); err != nil {
		t.Fatalf("CreateCategory order: %v", err)
	}
	all, err := svc.ListCategories(ctx, tenant)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(all))
	}
	if all[0].Value != "claim" || all[1].Value != "order" {
		t.Errorf("expected insertion order claim, order; got %+v", all)
	}

	renamed, err := svc.UpdateCategory(ctx, tenant, claim.ID, "claiming")
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if renamed.Value != "claiming" {
		t.Errorf("expected value claiming, got %s", renamed.Value)
	}
	got, err = svc.GetCategory(ctx, tenant, claim.ID)
	if err != nil {
		t.Fatalf("GetCategory after rename: %v", err)
	}
	if got.Value != "claiming" {
		t.Errorf("expected stored value claiming, got %s", got.Value)
	}

	if err := svc.DeleteCategory(ctx, tenant, claim.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if _, err := svc.GetCategory(ctx, tenant, claim.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCategory_DuplicateValueFails(t *testing.T) {
	pool, tenant := setupTestDB(t)
	ctx := context.Background()
	svc := core.NewCategoryService(pool)

	if _, err := svc.CreateCategory(ctx, tenant, "claim"); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if _, err := svc.CreateCategory(ctx, tenant, "claim"); err == nil {
		t.Error("expected error for duplicate category value, got nil")
	}
}

func TestCategory_NotFound(t *testing.T) {
	pool, tenant := setupTestDB(t)
	ctx := context.Background()
	svc := core.NewCategoryService(pool)

	if _, err := svc.GetCategory(ctx, tenant, 999999); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("get: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.UpdateCategory(ctx, tenant, 999999, "x"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("update: expected ErrNotFound, got %v", err)
	}
	if err := svc.DeleteCategory(ctx, tenant, 999999); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("delete: expected ErrNotFound, got %v", err)
	}
}

// Deleting a category leaves junction rows behind; tagged children keep the
// now-dangling ID in their category list.
func TestCategory_DeleteLeavesDanglingTags(t *testing.T) {
	pool, tenant := setupTestDB(t)
	ctx := context.Background()
	vendors := core.NewVendorService(pool)
	categories := core.NewCategoryService(pool)

	claim, err := categories.CreateCategory(ctx, tenant, "claim")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	input := sampleVendor()
	input.Addresses[0].Categories = []int64{claim.ID}
	created, err := vendors.CreateVendor(ctx, tenant, input)
	if err != nil {
		t.Fatalf("CreateVendor: %v", err)
	}

	if err := categories.DeleteCategory(ctx, tenant, claim.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	rec, err := vendors.GetVendor(ctx, tenant, created.ID)
	if err != nil {
		t.Fatalf("GetVendor: %v", err)
	}
	if got := rec.Vendor.Addresses[0].Categories; len(got) != 1 || got[0] != claim.ID {
		t.Errorf("expected dangling category tag [%d], got %v", claim.ID, got)
	}
}

// Tagging with an ID that never existed is accepted; the junction row is
// written through unvalidated.
func TestCategory_DanglingTagAcceptedOnWrite(t *testing.T) {
	pool, tenant := setupTestDB(t)
	ctx := context.Background()
	vendors := core.NewVendorService(pool)

	input := sampleVendor()
	input.Emails[0].Categories = []int64{424242}
	created, err := vendors.CreateVendor(ctx, tenant, input)
	if err != nil {
		t.Fatalf("CreateVendor: %v", err)
	}

	rec, err := vendors.GetVendor(ctx, tenant, created.ID)
	if err != nil {
		t.Fatalf("GetVendor: %v", err)
	}
	if got := rec.Vendor.Emails[0].Categories; len(got) != 1 || got[0] != 424242 {
		t.Errorf("expected category tag [424242], got %v", got)
	}
}
