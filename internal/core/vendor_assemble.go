package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// assemble loads the root vendor row and every related child table, producing
// one fully populated aggregate. The root row is mandatory (ErrNotFound when
// absent); each child fetch runs in its own savepoint so a failing child
// table degrades that collection to empty instead of failing the read or
// poisoning the surrounding transaction.
func (s *vendorService) assemble(ctx context.Context, tx pgx.Tx, id int64) (*VendorRecord, error) {
	v, err := fetchVendorRow(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	rec := &VendorRecord{Vendor: v}

	part := func(table string, fn func(q querier) error) {
		sp, err := tx.Begin(ctx)
		if err != nil {
			rec.Degraded = append(rec.Degraded, table)
			return
		}
		if err := fn(sp); err != nil {
			_ = sp.Rollback(ctx)
			rec.Degraded = append(rec.Degraded, table)
			return
		}
		_ = sp.Commit(ctx)
	}

	part("edi_info", func(q querier) error {
		e, err := fetchEdiInfo(ctx, q, v.ediInfoID)
		v.EdiInfo = e
		return err
	})
	part("job", func(q querier) error {
		j, err := fetchJob(ctx, q, id)
		v.Job = j
		return err
	})
	part("vendor_name", func(q querier) error {
		var err error
		v.Names, err = fetchNames(ctx, q, id)
		return err
	})
	part("vendor_currency", func(q querier) error {
		var err error
		v.Currencies, err = fetchCurrencies(ctx, q, id)
		return err
	})
	part("vendor_interface", func(q querier) error {
		var err error
		v.Interfaces, err = fetchInterfaces(ctx, q, id)
		return err
	})
	part("agreement", func(q querier) error {
		var err error
		v.Agreements, err = fetchAgreements(ctx, q, id)
		return err
	})
	part("library_vendor_acct", func(q querier) error {
		var err error
		v.Accounts, err = fetchAccounts(ctx, q, id)
		return err
	})
	part("vendor_address", func(q querier) error {
		var err error
		v.Addresses, err = fetchAddresses(ctx, q, id)
		return err
	})
	part("vendor_phone", func(q querier) error {
		var err error
		v.PhoneNumbers, err = fetchPhones(ctx, q, id)
		return err
	})
	part("vendor_email", func(q querier) error {
		var err error
		v.Emails, err = fetchEmails(ctx, q, id)
		return err
	})
	part("vendor_contact", func(q querier) error {
		var err error
		v.Contacts, err = fetchContacts(ctx, q, id)
		return err
	})
	part("note", func(q querier) error {
		var err error
		v.Notes, err = fetchNotes(ctx, q, id)
		return err
	})

	return rec, nil
}

func fetchVendorRow(ctx context.Context, q querier, id int64) (*Vendor, error) {
	v := &Vendor{}
	err := q.QueryRow(ctx, `
		SELECT id, name, code, vendor_status, language, erp_code, payment_method,
		       access_provider, governmental, licensor, material_supplier,
		       claiming_interval, discount_percent, expected_activation_interval,
		       expected_invoice_interval, renewal_activation_interval,
		       subscription_interval, tax_id, liable_for_vat, tax_percentage,
		       san_code, edi_info_id, created_at
		FROM vendor
		WHERE id = $1`, id,
	).Scan(
		&v.ID, &v.Name, &v.Code, &v.VendorStatus, &v.Language, &v.ERPCode, &v.PaymentMethod,
		&v.AccessProvider, &v.Governmental, &v.Licensor, &v.MaterialSupplier,
		&v.ClaimingInterval, &v.DiscountPercent, &v.ExpectedActivationInterval,
		&v.ExpectedInvoiceInterval, &v.RenewalActivationInterval,
		&v.SubscriptionInterval, &v.TaxID, &v.LiableForVAT, &v.TaxPercentage,
		&v.SanCode, &v.ediInfoID, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch vendor %d: %w", id, err)
	}
	return v, nil
}

func fetchEdiInfo(ctx context.Context, q querier, id int64) (*EdiInfo, error) {
	e := &EdiInfo{}
	err := q.QueryRow(ctx, `
		SELECT id, vendor_edi_code, vendor_edi_type, lib_edi_code, lib_edi_type,
		       prorate_tax, prorate_fees, edi_naming_convention, send_acct_num,
		       support_order, support_invoice, notes, ftp_format, ftp_mode,
		       ftp_conn_mode, ftp_port, server_address, username, password,
		       order_directory, invoice_directory, notify_all_edi,
		       notify_invoice_only, notify_error_only
		FROM edi_info
		WHERE id = $1`, id,
	).Scan(
		&e.ID, &e.VendorEdiCode, &e.VendorEdiType, &e.LibEdiCode, &e.LibEdiType,
		&e.ProrateTax, &e.ProrateFees, &e.EdiNamingConvention, &e.SendAcctNum,
		&e.SupportOrder, &e.SupportInvoice, &e.Notes, &e.FTPFormat, &e.FTPMode,
		&e.FTPConnMode, &e.FTPPort, &e.ServerAddress, &e.Username, &e.Password,
		&e.OrderDirectory, &e.InvoiceDirectory, &e.NotifyAllEdi,
		&e.NotifyInvoiceOnly, &e.NotifyErrorOnly,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch edi_info %d: %w", id, err)
	}
	return e, nil
}

func fetchJob(ctx context.Context, q querier, vendorID int64) (*Job, error) {
	j := &Job{}
	err := q.QueryRow(ctx, `
		SELECT id, is_scheduled, start_date, run_time, scheduling_notes
		FROM job
		WHERE vendor_id = $1`, vendorID,
	).Scan(&j.ID, &j.IsScheduled, &j.StartDate, &j.RunTime, &j.SchedulingNotes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch job for vendor %d: %w", vendorID, err)
	}
	return j, nil
}

func fetchNames(ctx context.Context, q querier, vendorID int64) ([]VendorName, error) {
	rows, err := q.Query(ctx, `
		SELECT id, value, description
		FROM vendor_name
		WHERE vendor_id = $1
		ORDER BY id`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("query vendor names: %w", err)
	}
	defer rows.Close()

	var names []VendorName
	for rows.Next() {
		var n VendorName
		if err := rows.Scan(&n.ID, &n.Value, &n.Description); err != nil {
			return nil, fmt.Errorf("scan vendor name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func fetchCurrencies(ctx context.Context, q querier, vendorID int64) ([]VendorCurrency, error) {
	rows, err := q.Query(ctx, `
		SELECT id, currency
		FROM vendor_currency
		WHERE vendor_id = $1
		ORDER BY id`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("query vendor currencies: %w", err)
	}
	defer rows.Close()

	var currencies []VendorCurrency
	for rows.Next() {
		var c VendorCurrency
		if err := rows.Scan(&c.ID, &c.Currency); err != nil {
			return nil, fmt.Errorf("scan vendor currency: %w", err)
		}
		currencies = append(currencies, c)
	}
	return currencies, rows.Err()
}

func fetchInterfaces(ctx context.Context, q querier, vendorID int64) ([]VendorInterface, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, uri, username, password, notes, available,
		       delivery_method, statistics_format, locally_stored,
		       online_location, statistics_notes
		FROM vendor_interface
		WHERE vendor_id = $1
		ORDER BY id`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("query vendor interfaces: %w", err)
	}
	defer rows.Close()

	var interfaces []VendorInterface
	for rows.Next() {
		var i VendorInterface
		if err := rows.Scan(
			&i.ID, &i.Name, &i.URI, &i.Username, &i.Password, &i.Notes, &i.Available,
			&i.DeliveryMethod, &i.StatisticsFormat, &i.LocallyStored,
			&i.OnlineLocation, &i.StatisticsNotes,
		); err != nil {
			return nil, fmt.Errorf("scan vendor interface: %w", err)
		}
		interfaces = append(interfaces, i)
	}
	return interfaces, rows.Err()
}

func fetchAgreements(ctx context.Context, q querier, vendorID int64) ([]Agreement, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, discount, reference_url, notes
		FROM agreement
		WHERE vendor_id = $1
		ORDER BY id`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("query agreements: %w", err)
	}
	defer rows.Close()

	var agreements []Agreement
	for rows.Next() {
		var a Agreement
		if err := rows.Scan(&a.ID, &a.Name, &a.Discount, &a.ReferenceURL, &a.Notes); err != nil {
			return nil, fmt.Errorf("scan agreement: %w", err)
		}
		agreements = append(agreements, a)
	}
	return agreements, rows.Err()
}

func fetchAccounts(ctx context.Context, q querier, vendorID int64) ([]Account, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, account_no, account_status, description, app_system_no,
		       payment_method, contact_info, library_code, library_edi_code, notes
		FROM library_vendor_acct
		WHERE vendor_id = $1
		ORDER BY id`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(
			&a.ID, &a.Name, &a.AccountNo, &a.AccountStatus, &a.Description, &a.AppSystemNo,
			&a.PaymentMethod, &a.ContactInfo, &a.LibraryCode, &a.LibraryEdiCode, &a.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func fetchNotes(ctx context.Context, q querier, vendorID int64) ([]Note, error) {
	rows, err := q.Query(ctx, `
		SELECT id, value, created_at
		FROM note
		WHERE vendor_id = $1
		ORDER BY id`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Value, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func fetchAddresses(ctx context.Context, q querier, vendorID int64) ([]Address, error) {
	rows, err := q.Query(ctx, `
		SELECT va.id, a.id, a.address_line1, a.address_line2, a.city,
		       a.state_region, a.zip_code, a.country, va.language, va.san_code
		FROM vendor_address va
		JOIN address a ON a.id = va.address_id
		WHERE va.vendor_id = $1
		ORDER BY va.id`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("query vendor addresses: %w", err)
	}
	defer rows.Close()

	var addresses []Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(
			&a.ID, &a.AddressID, &a.AddressLine1, &a.AddressLine2, &a.City,
			&a.StateRegion, &a.ZipCode, &a.Country, &a.Language, &a.SanCode,
		); err != nil {
			return nil, fmt.Errorf("scan vendor address: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range addresses {
		cats, err := fetchCategoryIDs(ctx, q, addressAssoc, addresses[i].ID)
		if err != nil {
			return nil, err
		}
		addresses[i].Categories = cats
	}
	return addresses, nil
}

func fetchPhones(ctx context.Context, q querier, vendorID int64) ([]PhoneNumber, error) {
	rows, err := q.Query(ctx, `
		SELECT vp.id, pn.id, pn.number, pn.type, vp.language
		FROM vendor_phone vp
		JOIN phone_number pn ON pn.id = vp.phone_number_id
		WHERE vp.vendor_id = $1
		ORDER BY vp.id`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("query vendor phones: %w", err)
	}
	defer rows.Close()

	var phones []PhoneNumber
	for rows.Next() {
		var p PhoneNumber
		if err := rows.Scan(&p.ID, &p.PhoneNumberID, &p.Number, &p.Type, &p.Language); err != nil {
			return nil, fmt.Errorf("scan vendor phone: %w", err)
		}
		phones = append(phones, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range phones {
		cats, err := fetchCategoryIDs(ctx, q, phoneAssoc, phones[i].ID)
		if err != nil {
			return nil, err
		}
		phones[i].Categories = cats
	}
	return phones, nil
}

func fetchEmails(ctx context.Context, q querier, vendorID int64) ([]Email, error) {
	rows, err := q.Query(ctx, `
		SELECT ve.id, e.id, e.value, e.description, ve.language
		FROM vendor_email ve
		JOIN email e ON e.id = ve.email_id
		WHERE ve.vendor_id = $1
		ORDER BY ve.id`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("query vendor emails: %w", err)
	}
	defer rows.Close()

	var emails []Email
	for rows.Next() {
		var e Email
		if err := rows.Scan(&e.ID, &e.EmailID, &e.Value, &e.Description, &e.Language); err != nil {
			return nil, fmt.Errorf("scan vendor email: %w", err)
		}
		emails = append(emails, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range emails {
		cats, err := fetchCategoryIDs(ctx, q, emailAssoc, emails[i].ID)
		if err != nil {
			return nil, err
		}
		emails[i].Categories = cats
	}
	return emails, nil
}

func fetchContacts(ctx context.Context, q querier, vendorID int64) ([]Contact, error) {
	rows, err := q.Query(ctx, `
		SELECT vc.id, p.id, p.prefix, p.first_name, p.last_name, p.language, p.notes,
		       pn.id, pn.number, pn.type,
		       e.id, e.value, e.description,
		       a.id, a.address_line1, a.address_line2, a.city, a.state_region,
		       a.zip_code, a.country
		FROM vendor_contact vc
		JOIN person p ON p.id = vc.person_id
		LEFT JOIN phone_number pn ON pn.id = p.phone_number_id
		LEFT JOIN email e ON e.id = p.email_id
		LEFT JOIN address a ON a.id = p.address_id
		WHERE vc.vendor_id = $1
		ORDER BY vc.id`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("query vendor contacts: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		var (
			phoneID                   *int64
			phoneNumber, phoneType    *string
			emailID                   *int64
			emailValue, emailDesc     *string
			addrID                    *int64
			line1, line2, city        *string
			stateRegion, zip, country *string
		)
		if err := rows.Scan(
			&c.ID, &c.PersonID, &c.Prefix, &c.FirstName, &c.LastName, &c.Language, &c.Notes,
			&phoneID, &phoneNumber, &phoneType,
			&emailID, &emailValue, &emailDesc,
			&addrID, &line1, &line2, &city, &stateRegion, &zip, &country,
		); err != nil {
			return nil, fmt.Errorf("scan vendor contact: %w", err)
		}
		if phoneID != nil {
			c.Phone = &ContactPhone{ID: *phoneID, Number: *phoneNumber, Type: *phoneType}
		}
		if emailID != nil {
			c.Email = &ContactEmail{ID: *emailID, Value: *emailValue, Description: *emailDesc}
		}
		if addrID != nil {
			c.Address = &ContactAddress{
				ID: *addrID, AddressLine1: *line1, AddressLine2: *line2,
				City: *city, StateRegion: *stateRegion, ZipCode: *zip, Country: *country,
			}
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range contacts {
		cats, err := fetchCategoryIDs(ctx, q, contactAssoc, contacts[i].ID)
		if err != nil {
			return nil, err
		}
		contacts[i].Categories = cats
	}
	return contacts, nil
}

// fetchCategoryIDs reads the category tag set for one association row.
func fetchCategoryIDs(ctx context.Context, q querier, at assocTable, ownerID int64) ([]int64, error) {
	rows, err := q.Query(ctx, fmt.Sprintf(`
		SELECT category_id FROM %s WHERE %s = $1 ORDER BY category_id`,
		at.Junction, at.OwnerFK), ownerID)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", at.Junction, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s: %w", at.Junction, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
