package core_test

import (
	"context"
	"errors"
	"testing"

	"vendor-storage/internal/core"
)

func TestVendor_CreateAndGet(t *testing.T) {
	pool, tenant := setupTestDB(t)
	ctx := context.Background()
	svc := core.NewVendorService(pool)

	created, err := svc.CreateVendor(ctx, tenant, sampleVendor())
	if err != nil {
		t.Fatalf("CreateVendor: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected vendor ID to be set")
	}
	if created.EdiInfo == nil || created.EdiInfo.ID == 0 {
		t.Error("expected edi_info ID to be set")
	}
	if created.Job == nil || created.Job.ID == 0 {
		t.Error("expected job ID to be set")
	}
	for i, n := range created.Names {
		if n.ID == 0 {
			t.Errorf("name %d: expected ID to be set", i)
		}
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	rec, err := svc.GetVendor(ctx, tenant, created.ID)
	if err != nil {
		t.Fatalf("GetVendor: %v", err)
	}
	if len(rec.Degraded) != 0 {
		t.Errorf("expected no degraded fetches, got %v", rec.Degraded)
	}
	v := rec.Vendor

	if v.Name != "GOBI Library Solutions" {
		t.Errorf("expected name 'GOBI Library Solutions', got %s", v.Name)
	}
	if v.Code != "GOBI" {
		t.Errorf("expected code GOBI, got %s", v.Code)
	}
	if !v.DiscountPercent.Equal(created.DiscountPercent) {
		t.Errorf("expected discount 12.50, got %s", v.DiscountPercent)
	}
	if !v.TaxPercentage.Equal(created.TaxPercentage) {
		t.Errorf("expected tax 8.25, got %s", v.TaxPercentage)
	}
	if !v.AccessProvider || !v.MaterialSupplier {
		t.Error("expected access_provider and material_supplier flags")
	}

	if v.EdiInfo == nil {
		t.Fatal("expected edi_info on assembled vendor")
	}
	if v.EdiInfo.ServerAddress != "ftp.gobi.example.com" {
		t.Errorf("expected edi server address, got %s", v.EdiInfo.ServerAddress)
	}
	if v.EdiInfo.FTPPort != 21 {
		t.Errorf("expected ftp port 21, got %d", v.EdiInfo.FTPPort)
	}

	if v.Job == nil {
		t.Fatal("expected job on assembled vendor")
	}
	if v.Job.RunTime != "02:30" {
		t.Errorf("expected run time 02:30, got %s", v.Job.RunTime)
	}

	if len(v.Names) != 2 {
		t.Fatalf("expected 2 vendor names, got %d", len(v.Names))
	}
	if v.Names[0].Value != "YBP Library Services" {
		t.Errorf("expected first name in insertion order, got %s", v.Names[0].Value)
	}
	if len(v.Currencies) != 2 {
		t.Errorf("expected 2 currencies, got %d", len(v.Currencies))
	}
	if len(v.Interfaces) != 1 {
		t.Errorf("expected 1 interface, got %d", len(v.Interfaces))
	}
	if len(v.Agreements) != 1 {
		t.Errorf("expected 1 agreement, got %d", len(v.Agreements))
	}
	if len(v.Agreements) == 1 && !v.Agreements[0].Discount.Equal(created.Agreements[0].Discount) {
		t.Errorf("expected agreement discount 5.00, got %s", v.Agreements[0].Discount)
	}
	if len(v.Accounts) != 2 {
		t.Errorf("expected 2 accounts, got %d", len(v.Accounts))
	}
	if len(v.Notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(v.Notes))
	}
	if v.Notes[0].CreatedAt.IsZero() {
		t.Error("expected note created_at to be set")
	}

	if len(v.Addresses) != 1 {
		t.Fatalf("expected 1 address, got %d", len(v.Addresses))
	}
	addr := v.Addresses[0]
	if addr.ID == 0 || addr.AddressID == 0 {
		t.Error("expected both association and value IDs on address")
	}
	if addr.City != "Contoocook" || addr.SanCode != "7654321" {
		t.Errorf("unexpected address: %+v", addr)
	}

	if len(v.PhoneNumbers) != 2 {
		t.Fatalf("expected 2 phone numbers, got %d", len(v.PhoneNumbers))
	}
	if v.PhoneNumbers[1].Type != "fax" {
		t.Errorf("expected second phone to be fax, got %s", v.PhoneNumbers[1].Type)
	}
	if len(v.Emails) != 1 {
		t.Fatalf("expected 1 email, got %d", len(v.Emails))
	}

	if len(v.Contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(v.Contacts))
	}
	c := v.Contacts[0]
	if c.PersonID == 0 {
		t.Error("expected person ID on contact")
	}
	if c.FirstName != "Dana" || c.LastName != "Whittaker" {
		t.Errorf("unexpected contact person: %+v", c)
	}
	if c.Phone == nil || c.Phone.Number != "+1-603-555-0150" {
		t.Errorf("expected contact phone, got %+v", c.Phone)
	}
	if c.Email == nil || c.Email.Value != "dana@gobi.example.com" {
		t.Errorf("expected contact email, got %+v", c.Email)
	}
	if c.Address == nil || c.Address.City != "Boston" {
		t.Errorf("expected contact address, got %+v", c.Address)
	}
}

func TestVendor_CategoryTagsRoundTrip(t *testing.T) {
	pool, tenant := setupTestDB(t)
	ctx := context.Background()
	vendors := core.NewVendorService(pool)
	categories := core.NewCategoryService(pool)

	claim, err := categories.CreateCategory(ctx, tenant, "claim")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	order, err := categories.CreateCategory(ctx, tenant, "order")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	input := sampleVendor()
	input.Addresses[0].Categories = []int64{claim.ID, order.ID}
	input.PhoneNumbers[0].Categories = []int64{order.ID}
	input.Emails[0].Categories = []int64{claim.ID}
	input.Contacts[0].Categories = []int64{claim.ID, order.ID}

	created, err := vendors.CreateVendor(ctx, tenant, input)
	if err != nil {
		t.Fatalf("CreateVendor: %v", err)
	}

	rec, err := vendors.GetVendor(ctx, tenant, created.ID)
	if err != nil {
		t.Fatalf("GetVendor: %v", err)
	}
	v := rec.Vendor

	if got := v.Addresses[0].Categories; len(got) != 2 {
		t.Errorf("expected 2 address categories, got %v", got)
	}
	if got := v.PhoneNumbers[0].Categories; len(got) != 1 || got[0] != order.ID {
		t.Errorf("expected phone categories [%d], got %v", order.ID, got)
	}
	if got := v.PhoneNumbers[1].Categories; len(got) != 0 {
		t.Errorf("expected untagged phone, got %v", got)
	}
	if got := v.Emails[0].Categories; len(got) != 1 || got[0] != claim.ID {
		t.Errorf("expected email categories [%d], got %v", claim.ID, got)
	}
	if got := v.Contacts[0].Categories; len(got) != 2 {
		t.Errorf("expected 2 contact categories, got %v", got)
	}
}

func TestVendor_List(t *testing.T) {
	pool, tenant := setupTestDB(t)
	ctx := context.Background()
	svc := core.NewVendorService(pool)

	first := sampleVendor()
	if _, err := svc.CreateVendor(ctx, tenant, first); err != nil {
		t.Fatalf("CreateVendor: %v", err)
	}
	second := sampleVendor()
	second.Name = "Harrassowitz"
	second.Code = "HARR"
	if _, err := svc.CreateVendor(ctx, tenant, second); err != nil {
		t.Fatalf("CreateVendor: %v", err)
	}

	summaries, err := svc.ListVendors(ctx, tenant)
	if err != nil {
		t.Fatalf("ListVendors: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 vendors, got %d", len(summaries))
	}
	if summaries[0].Code != "GOBI" || summaries[1].Code != "HARR" {
		t.Errorf("expected insertion order GOBI, HARR; got %s, %s",
			summaries[0].Code, summaries[1].Code)
	}
	if summaries[0].VendorStatus != "Active" {
		t.Errorf("expected status Active, got %s", summaries[0].VendorStatus)
	}
}

func TestVendor_Create_FailureRollsBack(t *testing.T) {
	pool, tenant := setupTestDB(t)
	ctx := context.Background()
	svc := core.NewVendorService(pool)

	// A duplicate category ID violates the junction's composite primary key
	// partway through the child inserts; nothing may survive, root included.
	input := sampleVendor()
	input.Addresses[0].Categories = []int64{5, 5}
	if _, err := svc.CreateVendor(ctx, tenant, input); err == nil {
		t.Fatal("expected constraint violation, got nil")
	}

	for _, table := range []string{"vendor", "edi_info", "vendor_name", "address", "vendor_address"} {
		if n := countRows(t, pool, tenant, table); n != 0 {
			t.Errorf("expected %s empty after failed create, got %d rows", table, n)
		}
	}
}

func TestVendor_GetNotFound(t *testing.T) {
	pool, tenant := setupTestDB(t)
	svc := core.NewVendorService(pool)

	_, err := svc.GetVendor(context.Background(), tenant, 999999)
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVendor_BadTenant(t *testing.T) {
	pool, _ := setupTestDB(t)
	svc := core.NewVendorService(pool)

	for _, tenant := range []string{"", "Tenant", "bad-name", `x"; DROP SCHEMA public;--`} {
		if _, err := svc.ListVendors(context.Background(), tenant); !errors.Is(err, core.ErrBadTenant) {
			t.Errorf("tenant %q: expected ErrBadTenant, got %v", tenant, err)
		}
	}
}

func TestVendor_TenantIsolation(t *testing.T) {
	pool, tenant := setupTestDB(t)
	ctx := context.Background()
	svc := core.NewVendorService(pool)

	created, err := svc.CreateVendor(ctx, tenant, sampleVendor())
	if err != nil {
		t.Fatalf("CreateVendor: %v", err)
	}

	// Provision a second schema and verify the vendor is invisible there.
	other := provisionTenant(t, pool)
	if _, err := svc.GetVendor(ctx, other, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound in other tenant, got %v", err)
	}
	summaries, err := svc.ListVendors(ctx, other)
	if err != nil {
		t.Fatalf("ListVendors in other tenant: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("expected empty listing in other tenant, got %d", len(summaries))
	}
}
