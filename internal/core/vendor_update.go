package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// UpdateVendor rewrites storage to match the supplied aggregate. The root row
// is locked and re-fetched first; if absent the update returns ErrNotFound
// with no side effects. Root and EdiInfo scalars are overwritten, then every
// child collection is reconciled against the stored rows through the
// configured Reconciler. The whole sequence is one transaction.
func (s *vendorService) UpdateVendor(ctx context.Context, tenant string, id int64, input *Vendor) (*Vendor, error) {
	now := time.Now()
	var out *Vendor
	err := inTenantTx(ctx, s.pool, tenant, func(tx pgx.Tx) error {
		var ediID int64
		err := tx.QueryRow(ctx,
			`SELECT edi_info_id FROM vendor WHERE id = $1 FOR UPDATE`, id,
		).Scan(&ediID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock vendor %d: %w", id, err)
		}
		input.ID = id
		input.ediInfoID = ediID

		if err := updateVendorRow(ctx, tx, input); err != nil {
			return err
		}
		if input.EdiInfo != nil {
			input.EdiInfo.ID = ediID
			if err := updateEdiInfo(ctx, tx, input.EdiInfo); err != nil {
				return err
			}
		}
		if err := reconcileJob(ctx, tx, id, input.Job); err != nil {
			return err
		}
		if err := s.reconcileNames(ctx, tx, id, input.Names); err != nil {
			return err
		}
		if err := s.reconcileCurrencies(ctx, tx, id, input.Currencies); err != nil {
			return err
		}
		if err := s.reconcileInterfaces(ctx, tx, id, input.Interfaces); err != nil {
			return err
		}
		if err := s.reconcileAgreements(ctx, tx, id, input.Agreements); err != nil {
			return err
		}
		if err := s.reconcileAccounts(ctx, tx, id, input.Accounts); err != nil {
			return err
		}
		if err := s.reconcileAddresses(ctx, tx, id, input.Addresses); err != nil {
			return err
		}
		if err := s.reconcilePhones(ctx, tx, id, input.PhoneNumbers); err != nil {
			return err
		}
		if err := s.reconcileEmails(ctx, tx, id, input.Emails); err != nil {
			return err
		}
		if err := s.reconcileContacts(ctx, tx, id, input.Contacts); err != nil {
			return err
		}
		if err := s.reconcileNotes(ctx, tx, id, input.Notes, now); err != nil {
			return err
		}

		rec, err := s.assemble(ctx, tx, id)
		if err != nil {
			return err
		}
		out = rec.Vendor
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func updateVendorRow(ctx context.Context, q querier, v *Vendor) error {
	_, err := q.Exec(ctx, `
		UPDATE vendor
		SET name = $1, code = $2, vendor_status = $3, language = $4,
		    erp_code = $5, payment_method = $6, access_provider = $7,
		    governmental = $8, licensor = $9, material_supplier = $10,
		    claiming_interval = $11, discount_percent = $12,
		    expected_activation_interval = $13, expected_invoice_interval = $14,
		    renewal_activation_interval = $15, subscription_interval = $16,
		    tax_id = $17, liable_for_vat = $18, tax_percentage = $19, san_code = $20
		WHERE id = $21`,
		v.Name, v.Code, v.VendorStatus, v.Language,
		v.ERPCode, v.PaymentMethod, v.AccessProvider,
		v.Governmental, v.Licensor, v.MaterialSupplier,
		v.ClaimingInterval, v.DiscountPercent,
		v.ExpectedActivationInterval, v.ExpectedInvoiceInterval,
		v.RenewalActivationInterval, v.SubscriptionInterval,
		v.TaxID, v.LiableForVAT, v.TaxPercentage, v.SanCode,
		v.ID)
	if err != nil {
		return fmt.Errorf("update vendor %d: %w", v.ID, err)
	}
	return nil
}

func updateEdiInfo(ctx context.Context, q querier, e *EdiInfo) error {
	_, err := q.Exec(ctx, `
		UPDATE edi_info
		SET vendor_edi_code = $1, vendor_edi_type = $2, lib_edi_code = $3,
		    lib_edi_type = $4, prorate_tax = $5, prorate_fees = $6,
		    edi_naming_convention = $7, send_acct_num = $8, support_order = $9,
		    support_invoice = $10, notes = $11, ftp_format = $12, ftp_mode = $13,
		    ftp_conn_mode = $14, ftp_port = $15, server_address = $16,
		    username = $17, password = $18, order_directory = $19,
		    invoice_directory = $20, notify_all_edi = $21,
		    notify_invoice_only = $22, notify_error_only = $23
		WHERE id = $24`,
		e.VendorEdiCode, e.VendorEdiType, e.LibEdiCode,
		e.LibEdiType, e.ProrateTax, e.ProrateFees,
		e.EdiNamingConvention, e.SendAcctNum, e.SupportOrder,
		e.SupportInvoice, e.Notes, e.FTPFormat, e.FTPMode,
		e.FTPConnMode, e.FTPPort, e.ServerAddress,
		e.Username, e.Password, e.OrderDirectory,
		e.InvoiceDirectory, e.NotifyAllEdi,
		e.NotifyInvoiceOnly, e.NotifyErrorOnly,
		e.ID)
	if err != nil {
		return fmt.Errorf("update edi_info %d: %w", e.ID, err)
	}
	return nil
}

// reconcileJob treats the job as a 0..1 collection: update in place, insert
// when newly supplied, delete when dropped from the payload.
func reconcileJob(ctx context.Context, q querier, vendorID int64, j *Job) error {
	var storedID int64
	err := q.QueryRow(ctx,
		`SELECT id FROM job WHERE vendor_id = $1`, vendorID,
	).Scan(&storedID)
	stored := true
	if errors.Is(err, pgx.ErrNoRows) {
		stored = false
	} else if err != nil {
		return fmt.Errorf("fetch job for vendor %d: %w", vendorID, err)
	}

	switch {
	case j != nil && stored:
		j.ID = storedID
		_, err := q.Exec(ctx, `
			UPDATE job
			SET is_scheduled = $1, start_date = $2, run_time = $3, scheduling_notes = $4
			WHERE id = $5`,
			j.IsScheduled, j.StartDate, j.RunTime, j.SchedulingNotes, j.ID)
		if err != nil {
			return fmt.Errorf("update job %d: %w", j.ID, err)
		}
	case j != nil:
		return insertJob(ctx, q, vendorID, j)
	case stored:
		if _, err := q.Exec(ctx, `DELETE FROM job WHERE id = $1`, storedID); err != nil {
			return fmt.Errorf("delete job %d: %w", storedID, err)
		}
	}
	return nil
}

// fetchChildIDs returns the stored row IDs for one simple child table, in
// stored order. table comes from the schema dictionary, never from input.
func fetchChildIDs(ctx context.Context, q querier, table string, vendorID int64) ([]int64, error) {
	rows, err := q.Query(ctx, fmt.Sprintf(
		`SELECT id FROM %s WHERE vendor_id = $1 ORDER BY id`, table), vendorID)
	if err != nil {
		return nil, fmt.Errorf("query %s ids: %w", table, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s id: %w", table, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// inputIDs extracts the (possibly zero) IDs carried on the input items.
func inputIDs(n int, id func(int) int64) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = id(i)
	}
	return ids
}

func (s *vendorService) reconcileNames(ctx context.Context, q querier, vendorID int64, items []VendorName) error {
	oldIDs, err := fetchChildIDs(ctx, q, "vendor_name", vendorID)
	if err != nil {
		return err
	}
	plan := s.reconciler.Plan(inputIDs(len(items), func(i int) int64 { return items[i].ID }), oldIDs)
	for _, p := range plan.Pairs {
		n := &items[p.New]
		n.ID = oldIDs[p.Old]
		_, err := q.Exec(ctx,
			`UPDATE vendor_name SET value = $1, description = $2 WHERE id = $3`,
			n.Value, n.Description, n.ID)
		if err != nil {
			return fmt.Errorf("update vendor_name %d: %w", n.ID, err)
		}
	}
	for _, i := range plan.Deletes {
		if _, err := q.Exec(ctx, `DELETE FROM vendor_name WHERE id = $1`, oldIDs[i]); err != nil {
			return fmt.Errorf("delete vendor_name %d: %w", oldIDs[i], err)
		}
	}
	for _, i := range plan.Inserts {
		if err := insertName(ctx, q, vendorID, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *vendorService) reconcileCurrencies(ctx context.Context, q querier, vendorID int64, items []VendorCurrency) error {
	oldIDs, err := fetchChildIDs(ctx, q, "vendor_currency", vendorID)
	if err != nil {
		return err
	}
	plan := s.reconciler.Plan(inputIDs(len(items), func(i int) int64 { return items[i].ID }), oldIDs)
	for _, p := range plan.Pairs {
		c := &items[p.New]
		c.ID = oldIDs[p.Old]
		_, err := q.Exec(ctx,
			`UPDATE vendor_currency SET currency = $1 WHERE id = $2`, c.Currency, c.ID)
		if err != nil {
			return fmt.Errorf("update vendor_currency %d: %w", c.ID, err)
		}
	}
	for _, i := range plan.Deletes {
		if _, err := q.Exec(ctx, `DELETE FROM vendor_currency WHERE id = $1`, oldIDs[i]); err != nil {
			return fmt.Errorf("delete vendor_currency %d: %w", oldIDs[i], err)
		}
	}
	for _, i := range plan.Inserts {
		if err := insertCurrency(ctx, q, vendorID, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *vendorService) reconcileInterfaces(ctx context.Context, q querier, vendorID int64, items []VendorInterface) error {
	oldIDs, err := fetchChildIDs(ctx, q, "vendor_interface", vendorID)
	if err != nil {
		return err
	}
	plan := s.reconciler.Plan(inputIDs(len(items), func(i int) int64 { return items[i].ID }), oldIDs)
	for _, p := range plan.Pairs {
		it := &items[p.New]
		it.ID = oldIDs[p.Old]
		_, err := q.Exec(ctx, `
			UPDATE vendor_interface
			SET name = $1, uri = $2, username = $3, password = $4, notes = $5,
			    available = $6, delivery_method = $7, statistics_format = $8,
			    locally_stored = $9, online_location = $10, statistics_notes = $11
			WHERE id = $12`,
			it.Name, it.URI, it.Username, it.Password, it.Notes,
			it.Available, it.DeliveryMethod, it.StatisticsFormat,
			it.LocallyStored, it.OnlineLocation, it.StatisticsNotes, it.ID)
		if err != nil {
			return fmt.Errorf("update vendor_interface %d: %w", it.ID, err)
		}
	}
	for _, i := range plan.Deletes {
		if _, err := q.Exec(ctx, `DELETE FROM vendor_interface WHERE id = $1`, oldIDs[i]); err != nil {
			return fmt.Errorf("delete vendor_interface %d: %w", oldIDs[i], err)
		}
	}
	for _, i := range plan.Inserts {
		if err := insertInterface(ctx, q, vendorID, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *vendorService) reconcileAgreements(ctx context.Context, q querier, vendorID int64, items []Agreement) error {
	oldIDs, err := fetchChildIDs(ctx, q, "agreement", vendorID)
	if err != nil {
		return err
	}
	plan := s.reconciler.Plan(inputIDs(len(items), func(i int) int64 { return items[i].ID }), oldIDs)
	for _, p := range plan.Pairs {
		a := &items[p.New]
		a.ID = oldIDs[p.Old]
		_, err := q.Exec(ctx, `
			UPDATE agreement
			SET name = $1, discount = $2, reference_url = $3, notes = $4
			WHERE id = $5`,
			a.Name, a.Discount, a.ReferenceURL, a.Notes, a.ID)
		if err != nil {
			return fmt.Errorf("update agreement %d: %w", a.ID, err)
		}
	}
	for _, i := range plan.Deletes {
		if _, err := q.Exec(ctx, `DELETE FROM agreement WHERE id = $1`, oldIDs[i]); err != nil {
			return fmt.Errorf("delete agreement %d: %w", oldIDs[i], err)
		}
	}
	for _, i := range plan.Inserts {
		if err := insertAgreement(ctx, q, vendorID, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *vendorService) reconcileAccounts(ctx context.Context, q querier, vendorID int64, items []Account) error {
	oldIDs, err := fetchChildIDs(ctx, q, "library_vendor_acct", vendorID)
	if err != nil {
		return err
	}
	plan := s.reconciler.Plan(inputIDs(len(items), func(i int) int64 { return items[i].ID }), oldIDs)
	for _, p := range plan.Pairs {
		a := &items[p.New]
		a.ID = oldIDs[p.Old]
		_, err := q.Exec(ctx, `
			UPDATE library_vendor_acct
			SET name = $1, account_no = $2, account_status = $3, description = $4,
			    app_system_no = $5, payment_method = $6, contact_info = $7,
			    library_code = $8, library_edi_code = $9, notes = $10
			WHERE id = $11`,
			a.Name, a.AccountNo, a.AccountStatus, a.Description,
			a.AppSystemNo, a.PaymentMethod, a.ContactInfo,
			a.LibraryCode, a.LibraryEdiCode, a.Notes, a.ID)
		if err != nil {
			return fmt.Errorf("update library_vendor_acct %d: %w", a.ID, err)
		}
	}
	for _, i := range plan.Deletes {
		if _, err := q.Exec(ctx, `DELETE FROM library_vendor_acct WHERE id = $1`, oldIDs[i]); err != nil {
			return fmt.Errorf("delete library_vendor_acct %d: %w", oldIDs[i], err)
		}
	}
	for _, i := range plan.Inserts {
		if err := insertAccount(ctx, q, vendorID, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

// reconcileNotes keeps the stored creation timestamp on updated notes; only
// newly inserted notes are stamped with the request time.
func (s *vendorService) reconcileNotes(ctx context.Context, q querier, vendorID int64, items []Note, now time.Time) error {
	oldIDs, err := fetchChildIDs(ctx, q, "note", vendorID)
	if err != nil {
		return err
	}
	plan := s.reconciler.Plan(inputIDs(len(items), func(i int) int64 { return items[i].ID }), oldIDs)
	for _, p := range plan.Pairs {
		n := &items[p.New]
		n.ID = oldIDs[p.Old]
		_, err := q.Exec(ctx, `UPDATE note SET value = $1 WHERE id = $2`, n.Value, n.ID)
		if err != nil {
			return fmt.Errorf("update note %d: %w", n.ID, err)
		}
	}
	for _, i := range plan.Deletes {
		if _, err := q.Exec(ctx, `DELETE FROM note WHERE id = $1`, oldIDs[i]); err != nil {
			return fmt.Errorf("delete note %d: %w", oldIDs[i], err)
		}
	}
	for _, i := range plan.Inserts {
		if err := insertNote(ctx, q, vendorID, &items[i], now); err != nil {
			return err
		}
	}
	return nil
}

// assocRow is a stored association row: the association ID plus the value
// record it references.
type assocRow struct {
	ID      int64
	ValueID int64
}

func fetchAssocRows(ctx context.Context, q querier, at assocTable, vendorID int64) ([]assocRow, error) {
	rows, err := q.Query(ctx, fmt.Sprintf(
		`SELECT id, %s FROM %s WHERE %s = $1 ORDER BY id`,
		at.ValueFK, at.Name, at.VendorFK), vendorID)
	if err != nil {
		return nil, fmt.Errorf("query %s rows: %w", at.Name, err)
	}
	defer rows.Close()

	var out []assocRow
	for rows.Next() {
		var r assocRow
		if err := rows.Scan(&r.ID, &r.ValueID); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", at.Name, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// deleteAssocRow removes an association row, its category junctions, and its
// value record, in FK-safe order.
func deleteAssocRow(ctx context.Context, q querier, at assocTable, row assocRow) error {
	if _, err := q.Exec(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE %s = $1`, at.Junction, at.OwnerFK), row.ID); err != nil {
		return fmt.Errorf("delete %s for %d: %w", at.Junction, row.ID, err)
	}
	if _, err := q.Exec(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE id = $1`, at.Name), row.ID); err != nil {
		return fmt.Errorf("delete %s %d: %w", at.Name, row.ID, err)
	}
	if _, err := q.Exec(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE id = $1`, at.ValueName), row.ValueID); err != nil {
		return fmt.Errorf("delete %s %d: %w", at.ValueName, row.ValueID, err)
	}
	return nil
}

func (s *vendorService) reconcileAddresses(ctx context.Context, q querier, vendorID int64, items []Address) error {
	oldRows, err := fetchAssocRows(ctx, q, addressAssoc, vendorID)
	if err != nil {
		return err
	}
	oldIDs := inputIDs(len(oldRows), func(i int) int64 { return oldRows[i].ID })
	plan := s.reconciler.Plan(inputIDs(len(items), func(i int) int64 { return items[i].ID }), oldIDs)
	for _, p := range plan.Pairs {
		a := &items[p.New]
		a.ID = oldRows[p.Old].ID
		a.AddressID = oldRows[p.Old].ValueID
		_, err := q.Exec(ctx, `
			UPDATE address
			SET address_line1 = $1, address_line2 = $2, city = $3,
			    state_region = $4, zip_code = $5, country = $6
			WHERE id = $7`,
			a.AddressLine1, a.AddressLine2, a.City,
			a.StateRegion, a.ZipCode, a.Country, a.AddressID)
		if err != nil {
			return fmt.Errorf("update address %d: %w", a.AddressID, err)
		}
		_, err = q.Exec(ctx,
			`UPDATE vendor_address SET language = $1, san_code = $2 WHERE id = $3`,
			a.Language, a.SanCode, a.ID)
		if err != nil {
			return fmt.Errorf("update vendor_address %d: %w", a.ID, err)
		}
		if err := replaceCategories(ctx, q, addressAssoc, a.ID, a.Categories); err != nil {
			return err
		}
	}
	for _, i := range plan.Deletes {
		if err := deleteAssocRow(ctx, q, addressAssoc, oldRows[i]); err != nil {
			return err
		}
	}
	for _, i := range plan.Inserts {
		if err := insertAddress(ctx, q, vendorID, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *vendorService) reconcilePhones(ctx context.Context, q querier, vendorID int64, items []PhoneNumber) error {
	oldRows, err := fetchAssocRows(ctx, q, phoneAssoc, vendorID)
	if err != nil {
		return err
	}
	oldIDs := inputIDs(len(oldRows), func(i int) int64 { return oldRows[i].ID })
	plan := s.reconciler.Plan(inputIDs(len(items), func(i int) int64 { return items[i].ID }), oldIDs)
	for _, p := range plan.Pairs {
		ph := &items[p.New]
		ph.ID = oldRows[p.Old].ID
		ph.PhoneNumberID = oldRows[p.Old].ValueID
		_, err := q.Exec(ctx,
			`UPDATE phone_number SET number = $1, type = $2 WHERE id = $3`,
			ph.Number, ph.Type, ph.PhoneNumberID)
		if err != nil {
			return fmt.Errorf("update phone_number %d: %w", ph.PhoneNumberID, err)
		}
		_, err = q.Exec(ctx,
			`UPDATE vendor_phone SET language = $1 WHERE id = $2`, ph.Language, ph.ID)
		if err != nil {
			return fmt.Errorf("update vendor_phone %d: %w", ph.ID, err)
		}
		if err := replaceCategories(ctx, q, phoneAssoc, ph.ID, ph.Categories); err != nil {
			return err
		}
	}
	for _, i := range plan.Deletes {
		if err := deleteAssocRow(ctx, q, phoneAssoc, oldRows[i]); err != nil {
			return err
		}
	}
	for _, i := range plan.Inserts {
		if err := insertPhone(ctx, q, vendorID, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *vendorService) reconcileEmails(ctx context.Context, q querier, vendorID int64, items []Email) error {
	oldRows, err := fetchAssocRows(ctx, q, emailAssoc, vendorID)
	if err != nil {
		return err
	}
	oldIDs := inputIDs(len(oldRows), func(i int) int64 { return oldRows[i].ID })
	plan := s.reconciler.Plan(inputIDs(len(items), func(i int) int64 { return items[i].ID }), oldIDs)
	for _, p := range plan.Pairs {
		e := &items[p.New]
		e.ID = oldRows[p.Old].ID
		e.EmailID = oldRows[p.Old].ValueID
		_, err := q.Exec(ctx,
			`UPDATE email SET value = $1, description = $2 WHERE id = $3`,
			e.Value, e.Description, e.EmailID)
		if err != nil {
			return fmt.Errorf("update email %d: %w", e.EmailID, err)
		}
		_, err = q.Exec(ctx,
			`UPDATE vendor_email SET language = $1 WHERE id = $2`, e.Language, e.ID)
		if err != nil {
			return fmt.Errorf("update vendor_email %d: %w", e.ID, err)
		}
		if err := replaceCategories(ctx, q, emailAssoc, e.ID, e.Categories); err != nil {
			return err
		}
	}
	for _, i := range plan.Deletes {
		if err := deleteAssocRow(ctx, q, emailAssoc, oldRows[i]); err != nil {
			return err
		}
	}
	for _, i := range plan.Inserts {
		if err := insertEmail(ctx, q, vendorID, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

// contactRow is the stored shape of one contact: association row, person row,
// and the person's optional owned value records.
type contactRow struct {
	ID       int64
	PersonID int64
	PhoneID  *int64
	EmailID  *int64
	AddrID   *int64
}

func fetchContactRows(ctx context.Context, q querier, vendorID int64) ([]contactRow, error) {
	rows, err := q.Query(ctx, `
		SELECT vc.id, p.id, p.phone_number_id, p.email_id, p.address_id
		FROM vendor_contact vc
		JOIN person p ON p.id = vc.person_id
		WHERE vc.vendor_id = $1
		ORDER BY vc.id`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("query contact rows: %w", err)
	}
	defer rows.Close()

	var out []contactRow
	for rows.Next() {
		var r contactRow
		if err := rows.Scan(&r.ID, &r.PersonID, &r.PhoneID, &r.EmailID, &r.AddrID); err != nil {
			return nil, fmt.Errorf("scan contact row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *vendorService) reconcileContacts(ctx context.Context, q querier, vendorID int64, items []Contact) error {
	oldRows, err := fetchContactRows(ctx, q, vendorID)
	if err != nil {
		return err
	}
	oldIDs := inputIDs(len(oldRows), func(i int) int64 { return oldRows[i].ID })
	plan := s.reconciler.Plan(inputIDs(len(items), func(i int) int64 { return items[i].ID }), oldIDs)
	for _, p := range plan.Pairs {
		if err := updateContact(ctx, q, &items[p.New], oldRows[p.Old]); err != nil {
			return err
		}
	}
	for _, i := range plan.Deletes {
		if err := deleteContactRow(ctx, q, oldRows[i]); err != nil {
			return err
		}
	}
	for _, i := range plan.Inserts {
		if err := insertContact(ctx, q, vendorID, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

// updateContact overwrites the person and reconciles its owned value records:
// present on both sides updates in place, newly supplied inserts and links,
// dropped from the payload unlinks and deletes the value row.
func updateContact(ctx context.Context, q querier, c *Contact, old contactRow) error {
	c.ID = old.ID
	c.PersonID = old.PersonID

	switch {
	case c.Phone != nil && old.PhoneID != nil:
		c.Phone.ID = *old.PhoneID
		_, err := q.Exec(ctx,
			`UPDATE phone_number SET number = $1, type = $2 WHERE id = $3`,
			c.Phone.Number, c.Phone.Type, c.Phone.ID)
		if err != nil {
			return fmt.Errorf("update contact phone %d: %w", c.Phone.ID, err)
		}
	case c.Phone != nil:
		if err := insertContactPhone(ctx, q, c.Phone); err != nil {
			return err
		}
		_, err := q.Exec(ctx,
			`UPDATE person SET phone_number_id = $1 WHERE id = $2`, c.Phone.ID, c.PersonID)
		if err != nil {
			return fmt.Errorf("link contact phone %d: %w", c.Phone.ID, err)
		}
	case old.PhoneID != nil:
		_, err := q.Exec(ctx,
			`UPDATE person SET phone_number_id = NULL WHERE id = $1`, c.PersonID)
		if err != nil {
			return fmt.Errorf("unlink contact phone: %w", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM phone_number WHERE id = $1`, *old.PhoneID); err != nil {
			return fmt.Errorf("delete contact phone %d: %w", *old.PhoneID, err)
		}
	}

	switch {
	case c.Email != nil && old.EmailID != nil:
		c.Email.ID = *old.EmailID
		_, err := q.Exec(ctx,
			`UPDATE email SET value = $1, description = $2 WHERE id = $3`,
			c.Email.Value, c.Email.Description, c.Email.ID)
		if err != nil {
			return fmt.Errorf("update contact email %d: %w", c.Email.ID, err)
		}
	case c.Email != nil:
		if err := insertContactEmail(ctx, q, c.Email); err != nil {
			return err
		}
		_, err := q.Exec(ctx,
			`UPDATE person SET email_id = $1 WHERE id = $2`, c.Email.ID, c.PersonID)
		if err != nil {
			return fmt.Errorf("link contact email %d: %w", c.Email.ID, err)
		}
	case old.EmailID != nil:
		_, err := q.Exec(ctx,
			`UPDATE person SET email_id = NULL WHERE id = $1`, c.PersonID)
		if err != nil {
			return fmt.Errorf("unlink contact email: %w", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM email WHERE id = $1`, *old.EmailID); err != nil {
			return fmt.Errorf("delete contact email %d: %w", *old.EmailID, err)
		}
	}

	switch {
	case c.Address != nil && old.AddrID != nil:
		c.Address.ID = *old.AddrID
		_, err := q.Exec(ctx, `
			UPDATE address
			SET address_line1 = $1, address_line2 = $2, city = $3,
			    state_region = $4, zip_code = $5, country = $6
			WHERE id = $7`,
			c.Address.AddressLine1, c.Address.AddressLine2, c.Address.City,
			c.Address.StateRegion, c.Address.ZipCode, c.Address.Country, c.Address.ID)
		if err != nil {
			return fmt.Errorf("update contact address %d: %w", c.Address.ID, err)
		}
	case c.Address != nil:
		if err := insertContactAddress(ctx, q, c.Address); err != nil {
			return err
		}
		_, err := q.Exec(ctx,
			`UPDATE person SET address_id = $1 WHERE id = $2`, c.Address.ID, c.PersonID)
		if err != nil {
			return fmt.Errorf("link contact address %d: %w", c.Address.ID, err)
		}
	case old.AddrID != nil:
		_, err := q.Exec(ctx,
			`UPDATE person SET address_id = NULL WHERE id = $1`, c.PersonID)
		if err != nil {
			return fmt.Errorf("unlink contact address: %w", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM address WHERE id = $1`, *old.AddrID); err != nil {
			return fmt.Errorf("delete contact address %d: %w", *old.AddrID, err)
		}
	}

	_, err := q.Exec(ctx, `
		UPDATE person
		SET prefix = $1, first_name = $2, last_name = $3, language = $4, notes = $5
		WHERE id = $6`,
		c.Prefix, c.FirstName, c.LastName, c.Language, c.Notes, c.PersonID)
	if err != nil {
		return fmt.Errorf("update person %d: %w", c.PersonID, err)
	}
	_, err = q.Exec(ctx,
		`UPDATE vendor_contact SET language = $1 WHERE id = $2`, c.Language, c.ID)
	if err != nil {
		return fmt.Errorf("update vendor_contact %d: %w", c.ID, err)
	}
	return replaceCategories(ctx, q, contactAssoc, c.ID, c.Categories)
}

// deleteContactRow removes the association, person, and any person-owned
// value records, junctions first.
func deleteContactRow(ctx context.Context, q querier, old contactRow) error {
	if _, err := q.Exec(ctx,
		`DELETE FROM vendor_contact_category WHERE vendor_contact_id = $1`, old.ID); err != nil {
		return fmt.Errorf("delete vendor_contact_category for %d: %w", old.ID, err)
	}
	if _, err := q.Exec(ctx, `DELETE FROM vendor_contact WHERE id = $1`, old.ID); err != nil {
		return fmt.Errorf("delete vendor_contact %d: %w", old.ID, err)
	}
	if _, err := q.Exec(ctx, `DELETE FROM person WHERE id = $1`, old.PersonID); err != nil {
		return fmt.Errorf("delete person %d: %w", old.PersonID, err)
	}
	if old.PhoneID != nil {
		if _, err := q.Exec(ctx, `DELETE FROM phone_number WHERE id = $1`, *old.PhoneID); err != nil {
			return fmt.Errorf("delete person phone %d: %w", *old.PhoneID, err)
		}
	}
	if old.EmailID != nil {
		if _, err := q.Exec(ctx, `DELETE FROM email WHERE id = $1`, *old.EmailID); err != nil {
			return fmt.Errorf("delete person email %d: %w", *old.EmailID, err)
		}
	}
	if old.AddrID != nil {
		if _, err := q.Exec(ctx, `DELETE FROM address WHERE id = $1`, *old.AddrID); err != nil {
			return fmt.Errorf("delete person address %d: %w", *old.AddrID, err)
		}
	}
	return nil
}
