package core

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound marks an absent root vendor or category. It is a result, not a
// storage failure: get/update/delete return it untouched and with no side
// effects, and the web adapter maps it to 404.
var ErrNotFound = errors.New("not found")

// ErrBadTenant is returned for tenant names that cannot name a schema.
var ErrBadTenant = errors.New("invalid tenant name")

// tenantPattern bounds what may be interpolated into SET search_path.
var tenantPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

// VendorService reads and writes the vendor aggregate. Each operation runs in
// one transaction against the tenant's schema; a failure anywhere rolls the
// whole operation back.
type VendorService interface {
	// CreateVendor persists a new aggregate and returns it with all
	// storage-assigned IDs filled in.
	CreateVendor(ctx context.Context, tenant string, input *Vendor) (*Vendor, error)

	// GetVendor assembles the full aggregate. Child fetches that fail are
	// reported in VendorRecord.Degraded and leave their collection empty.
	GetVendor(ctx context.Context, tenant string, id int64) (*VendorRecord, error)

	// UpdateVendor rewrites the aggregate to match input, reconciling every
	// child collection against the stored rows.
	UpdateVendor(ctx context.Context, tenant string, id int64, input *Vendor) (*Vendor, error)

	// DeleteVendor cascades deletion of the vendor and every dependent row,
	// returning the pre-delete snapshot.
	DeleteVendor(ctx context.Context, tenant string, id int64) (*Vendor, error)

	// ListVendors returns vendor summaries in insertion order.
	ListVendors(ctx context.Context, tenant string) ([]VendorSummary, error)
}

// querier is satisfied by pgx.Tx (and *pgxpool.Pool), enabling shared
// fetch/write helpers.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type vendorService struct {
	pool       *pgxpool.Pool
	reconciler Reconciler
}

// NewVendorService constructs a VendorService backed by PostgreSQL, using the
// positional reconciliation strategy for child collections.
func NewVendorService(pool *pgxpool.Pool) VendorService {
	return &vendorService{pool: pool, reconciler: PositionalReconciler{}}
}

// NewVendorServiceWithReconciler substitutes the collection correlation
// strategy without touching any caller.
func NewVendorServiceWithReconciler(pool *pgxpool.Pool, r Reconciler) VendorService {
	return &vendorService{pool: pool, reconciler: r}
}

// inTenantTx runs fn inside a transaction whose search_path is pinned to the
// tenant's schema. SET LOCAL scopes the switch to this transaction only, so
// pooled connections never leak a tenant.
func inTenantTx(ctx context.Context, pool *pgxpool.Pool, tenant string, fn func(pgx.Tx) error) error {
	if !tenantPattern.MatchString(tenant) {
		return fmt.Errorf("%w: %q", ErrBadTenant, tenant)
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tenant tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf(`SET LOCAL search_path = "%s"`, tenant)); err != nil {
		return fmt.Errorf("select tenant schema %s: %w", tenant, err)
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetVendor assembles the aggregate in a read-only pass.
func (s *vendorService) GetVendor(ctx context.Context, tenant string, id int64) (*VendorRecord, error) {
	var rec *VendorRecord
	err := inTenantTx(ctx, s.pool, tenant, func(tx pgx.Tx) error {
		var err error
		rec, err = s.assemble(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListVendors returns summaries only; the full aggregate is per-ID reads.
func (s *vendorService) ListVendors(ctx context.Context, tenant string) ([]VendorSummary, error) {
	var vendors []VendorSummary
	err := inTenantTx(ctx, s.pool, tenant, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT id, name, code, vendor_status, created_at
			FROM vendor
			ORDER BY id`)
		if err != nil {
			return fmt.Errorf("query vendors: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var v VendorSummary
			if err := rows.Scan(&v.ID, &v.Name, &v.Code, &v.VendorStatus, &v.CreatedAt); err != nil {
				return fmt.Errorf("scan vendor summary: %w", err)
			}
			vendors = append(vendors, v)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return vendors, nil
}
