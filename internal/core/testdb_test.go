package core_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"vendor-storage/internal/core"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// setupTestDB connects to the test database and provisions a throwaway tenant
// schema with the full vendor DDL. The schema is dropped when the test ends.
//
// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
func setupTestDB(t *testing.T) (*pgxpool.Pool, string) {
	_ = godotenv.Load("../../.env")

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	t.Cleanup(pool.Close)
	tenant := provisionTenant(t, pool)

	return pool, tenant
}

// provisionTenant creates a fresh tenant schema with the full vendor DDL and
// drops it when the test ends.
func provisionTenant(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	ctx := context.Background()
	tenant := "t" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

	ddl, err := os.ReadFile("../../migrations/001_vendor_schema.sql")
	if err != nil {
		t.Fatalf("Failed to read schema DDL: %v", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin provisioning tx: %v", err)
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf(`CREATE SCHEMA "%s"`, tenant)); err != nil {
		t.Fatalf("Failed to create tenant schema: %v", err)
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf(`SET LOCAL search_path = "%s"`, tenant)); err != nil {
		t.Fatalf("Failed to set search_path: %v", err)
	}
	if _, err := tx.Exec(ctx, string(ddl)); err != nil {
		t.Fatalf("Failed to apply schema DDL: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("Failed to commit provisioning tx: %v", err)
	}

	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, fmt.Sprintf(`DROP SCHEMA "%s" CASCADE`, tenant))
	})

	return tenant
}

// countRows counts rows in one of the tenant's tables.
func countRows(t *testing.T, pool *pgxpool.Pool, tenant, table string) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(),
		fmt.Sprintf(`SELECT count(*) FROM "%s".%s`, tenant, table)).Scan(&n)
	if err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

// sampleVendor builds a fully loaded aggregate: every collection populated,
// every optional child present.
func sampleVendor() *core.Vendor {
	return &core.Vendor{
		Name:                       "GOBI Library Solutions",
		Code:                       "GOBI",
		VendorStatus:               "Active",
		Language:                   "eng",
		ERPCode:                    "ERP-100",
		PaymentMethod:              "EDI",
		AccessProvider:             true,
		MaterialSupplier:           true,
		ClaimingInterval:           60,
		DiscountPercent:            decimal.RequireFromString("12.50"),
		ExpectedActivationInterval: 7,
		ExpectedInvoiceInterval:    30,
		RenewalActivationInterval:  14,
		SubscriptionInterval:       365,
		TaxID:                      "TAX-42",
		LiableForVAT:               true,
		TaxPercentage:              decimal.RequireFromString("8.25"),
		SanCode:                    "1234567",
		EdiInfo: &core.EdiInfo{
			VendorEdiCode:       "GOBI-EDI",
			VendorEdiType:       "31B",
			LibEdiCode:          "LIB-EDI",
			LibEdiType:          "014",
			ProrateTax:          true,
			EdiNamingConvention: "order-{count}",
			SupportOrder:        true,
			SupportInvoice:      true,
			FTPFormat:           "EDIFACT",
			FTPMode:             "passive",
			FTPConnMode:         "FTP",
			FTPPort:             21,
			ServerAddress:       "ftp.gobi.example.com",
			Username:            "libftp",
			Password:            "secret",
			OrderDirectory:      "/orders",
			InvoiceDirectory:    "/invoices",
			NotifyErrorOnly:     true,
		},
		Job: &core.Job{
			IsScheduled:     true,
			RunTime:         "02:30",
			SchedulingNotes: "nightly invoice pull",
		},
		Names: []core.VendorName{
			{Value: "YBP Library Services", Description: "former name"},
			{Value: "GOBI", Description: "short name"},
		},
		Currencies: []core.VendorCurrency{
			{Currency: "USD"},
			{Currency: "EUR"},
		},
		Interfaces: []core.VendorInterface{
			{
				Name:             "GOBI admin portal",
				URI:              "https://admin.gobi.example.com",
				Username:         "admin",
				Password:         "hunter2",
				Available:        true,
				DeliveryMethod:   "online",
				StatisticsFormat: "COUNTER",
			},
		},
		Agreements: []core.Agreement{
			{
				Name:         "Consortium deal",
				Discount:     decimal.RequireFromString("5.00"),
				ReferenceURL: "https://example.com/agreement",
				Notes:        "renews annually",
			},
		},
		Accounts: []core.Account{
			{
				Name:          "Main approval plan",
				AccountNo:     "ACCT-001",
				AccountStatus: "Active",
				PaymentMethod: "invoice",
				LibraryCode:   "MAIN",
			},
			{
				Name:          "Rush orders",
				AccountNo:     "ACCT-002",
				AccountStatus: "Active",
			},
		},
		Addresses: []core.Address{
			{
				AddressLine1: "999 Maple Street",
				City:         "Contoocook",
				StateRegion:  "NH",
				ZipCode:      "03229",
				Country:      "USA",
				Language:     "eng",
				SanCode:      "7654321",
			},
		},
		PhoneNumbers: []core.PhoneNumber{
			{Number: "+1-603-555-0100", Type: "office", Language: "eng"},
			{Number: "+1-603-555-0199", Type: "fax", Language: "eng"},
		},
		Emails: []core.Email{
			{Value: "orders@gobi.example.com", Description: "ordering", Language: "eng"},
		},
		Contacts: []core.Contact{
			{
				Prefix:    "Ms",
				FirstName: "Dana",
				LastName:  "Whittaker",
				Language:  "eng",
				Notes:     "primary rep",
				Phone:     &core.ContactPhone{Number: "+1-603-555-0150", Type: "mobile"},
				Email:     &core.ContactEmail{Value: "dana@gobi.example.com", Description: "direct"},
				Address: &core.ContactAddress{
					AddressLine1: "12 Rep Lane",
					City:         "Boston",
					StateRegion:  "MA",
					ZipCode:      "02110",
					Country:      "USA",
				},
			},
		},
		Notes: []core.Note{
			{Value: "prefers consolidated invoicing"},
			{Value: "migrated from legacy system"},
		},
	}
}
