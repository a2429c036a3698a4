package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// DeleteVendor cascades deletion of the vendor and every dependent row in
// FK-safe child-before-parent order, in one transaction. The full aggregate
// is assembled first and returned as the deleted snapshot; an absent vendor
// returns ErrNotFound without deleting anything.
func (s *vendorService) DeleteVendor(ctx context.Context, tenant string, id int64) (*Vendor, error) {
	var snapshot *Vendor
	err := inTenantTx(ctx, s.pool, tenant, func(tx pgx.Tx) error {
		rec, err := s.assemble(ctx, tx, id)
		if err != nil {
			return err
		}
		snapshot = rec.Vendor
		return deleteAggregate(ctx, tx, snapshot)
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func deleteAggregate(ctx context.Context, q querier, v *Vendor) error {
	// Junction rows first, collecting owner IDs via the vendor FK.
	for _, at := range assocTables {
		_, err := q.Exec(ctx, fmt.Sprintf(`
			DELETE FROM %s
			WHERE %s IN (SELECT id FROM %s WHERE %s = $1)`,
			at.Junction, at.OwnerFK, at.Name, at.VendorFK), v.ID)
		if err != nil {
			return fmt.Errorf("delete %s for vendor %d: %w", at.Junction, v.ID, err)
		}
	}

	// Address/phone/email association rows, then their now-unreferenced
	// value records.
	for _, at := range []assocTable{addressAssoc, phoneAssoc, emailAssoc} {
		valueIDs, err := fetchAssocValueIDs(ctx, q, at, v.ID)
		if err != nil {
			return err
		}
		if _, err := q.Exec(ctx, fmt.Sprintf(
			`DELETE FROM %s WHERE %s = $1`, at.Name, at.VendorFK), v.ID); err != nil {
			return fmt.Errorf("delete %s for vendor %d: %w", at.Name, v.ID, err)
		}
		for _, valueID := range valueIDs {
			if _, err := q.Exec(ctx, fmt.Sprintf(
				`DELETE FROM %s WHERE id = $1`, at.ValueName), valueID); err != nil {
				return fmt.Errorf("delete %s %d: %w", at.ValueName, valueID, err)
			}
		}
	}

	// Contacts: association rows, persons, then person-owned value records.
	contactRows, err := fetchContactRows(ctx, q, v.ID)
	if err != nil {
		return err
	}
	if _, err := q.Exec(ctx, `DELETE FROM vendor_contact WHERE vendor_id = $1`, v.ID); err != nil {
		return fmt.Errorf("delete vendor_contact for vendor %d: %w", v.ID, err)
	}
	for _, cr := range contactRows {
		if _, err := q.Exec(ctx, `DELETE FROM person WHERE id = $1`, cr.PersonID); err != nil {
			return fmt.Errorf("delete person %d: %w", cr.PersonID, err)
		}
		if cr.PhoneID != nil {
			if _, err := q.Exec(ctx, `DELETE FROM phone_number WHERE id = $1`, *cr.PhoneID); err != nil {
				return fmt.Errorf("delete person phone %d: %w", *cr.PhoneID, err)
			}
		}
		if cr.EmailID != nil {
			if _, err := q.Exec(ctx, `DELETE FROM email WHERE id = $1`, *cr.EmailID); err != nil {
				return fmt.Errorf("delete person email %d: %w", *cr.EmailID, err)
			}
		}
		if cr.AddrID != nil {
			if _, err := q.Exec(ctx, `DELETE FROM address WHERE id = $1`, *cr.AddrID); err != nil {
				return fmt.Errorf("delete person address %d: %w", *cr.AddrID, err)
			}
		}
	}

	// Simple children, then the root and its edi_info row.
	for _, ct := range simpleChildTables {
		if _, err := q.Exec(ctx, fmt.Sprintf(
			`DELETE FROM %s WHERE %s = $1`, ct.Name, ct.VendorFK), v.ID); err != nil {
			return fmt.Errorf("delete %s for vendor %d: %w", ct.Name, v.ID, err)
		}
	}
	if _, err := q.Exec(ctx, `DELETE FROM vendor WHERE id = $1`, v.ID); err != nil {
		return fmt.Errorf("delete vendor %d: %w", v.ID, err)
	}
	if _, err := q.Exec(ctx, `DELETE FROM edi_info WHERE id = $1`, v.ediInfoID); err != nil {
		return fmt.Errorf("delete edi_info %d: %w", v.ediInfoID, err)
	}
	return nil
}

func fetchAssocValueIDs(ctx context.Context, q querier, at assocTable, vendorID int64) ([]int64, error) {
	rows, err := q.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1`, at.ValueFK, at.Name, at.VendorFK), vendorID)
	if err != nil {
		return nil, fmt.Errorf("query %s value ids: %w", at.Name, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s value id: %w", at.Name, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
