package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// CreateVendor persists a new aggregate in one transaction, in strict
// parent-before-child order: edi_info, vendor, simple collections, job,
// address/phone/email/contact composites with their category tags, notes.
// Every generated ID is written back onto the input so the returned aggregate
// reflects persisted identity.
func (s *vendorService) CreateVendor(ctx context.Context, tenant string, input *Vendor) (*Vendor, error) {
	now := time.Now()
	err := inTenantTx(ctx, s.pool, tenant, func(tx pgx.Tx) error {
		return insertAggregate(ctx, tx, input, now)
	})
	if err != nil {
		return nil, err
	}
	return input, nil
}

func insertAggregate(ctx context.Context, q querier, v *Vendor, now time.Time) error {
	// EdiInfo is 1:1 and mandatory; an absent payload still creates the row.
	if v.EdiInfo == nil {
		v.EdiInfo = &EdiInfo{}
	}
	if err := insertEdiInfo(ctx, q, v.EdiInfo); err != nil {
		return err
	}
	v.ediInfoID = v.EdiInfo.ID

	err := q.QueryRow(ctx, `
		INSERT INTO vendor (name, code, vendor_status, language, erp_code,
		                    payment_method, access_provider, governmental, licensor,
		                    material_supplier, claiming_interval, discount_percent,
		                    expected_activation_interval, expected_invoice_interval,
		                    renewal_activation_interval, subscription_interval,
		                    tax_id, liable_for_vat, tax_percentage, san_code, edi_info_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21)
		RETURNING id, created_at`,
		v.Name, v.Code, v.VendorStatus, v.Language, v.ERPCode,
		v.PaymentMethod, v.AccessProvider, v.Governmental, v.Licensor,
		v.MaterialSupplier, v.ClaimingInterval, v.DiscountPercent,
		v.ExpectedActivationInterval, v.ExpectedInvoiceInterval,
		v.RenewalActivationInterval, v.SubscriptionInterval,
		v.TaxID, v.LiableForVAT, v.TaxPercentage, v.SanCode, v.EdiInfo.ID,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert vendor %q: %w", v.Code, err)
	}

	for i := range v.Names {
		if err := insertName(ctx, q, v.ID, &v.Names[i]); err != nil {
			return err
		}
	}
	for i := range v.Currencies {
		if err := insertCurrency(ctx, q, v.ID, &v.Currencies[i]); err != nil {
			return err
		}
	}
	for i := range v.Interfaces {
		if err := insertInterface(ctx, q, v.ID, &v.Interfaces[i]); err != nil {
			return err
		}
	}
	for i := range v.Agreements {
		if err := insertAgreement(ctx, q, v.ID, &v.Agreements[i]); err != nil {
			return err
		}
	}
	for i := range v.Accounts {
		if err := insertAccount(ctx, q, v.ID, &v.Accounts[i]); err != nil {
			return err
		}
	}
	if v.Job != nil {
		if err := insertJob(ctx, q, v.ID, v.Job); err != nil {
			return err
		}
	}
	for i := range v.Addresses {
		if err := insertAddress(ctx, q, v.ID, &v.Addresses[i]); err != nil {
			return err
		}
	}
	for i := range v.PhoneNumbers {
		if err := insertPhone(ctx, q, v.ID, &v.PhoneNumbers[i]); err != nil {
			return err
		}
	}
	for i := range v.Emails {
		if err := insertEmail(ctx, q, v.ID, &v.Emails[i]); err != nil {
			return err
		}
	}
	for i := range v.Contacts {
		if err := insertContact(ctx, q, v.ID, &v.Contacts[i]); err != nil {
			return err
		}
	}
	for i := range v.Notes {
		if err := insertNote(ctx, q, v.ID, &v.Notes[i], now); err != nil {
			return err
		}
	}
	return nil
}

func insertEdiInfo(ctx context.Context, q querier, e *EdiInfo) error {
	err := q.QueryRow(ctx, `
		INSERT INTO edi_info (vendor_edi_code, vendor_edi_type, lib_edi_code,
		                      lib_edi_type, prorate_tax, prorate_fees,
		                      edi_naming_convention, send_acct_num, support_order,
		                      support_invoice, notes, ftp_format, ftp_mode,
		                      ftp_conn_mode, ftp_port, server_address, username,
		                      password, order_directory, invoice_directory,
		                      notify_all_edi, notify_invoice_only, notify_error_only)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING id`,
		e.VendorEdiCode, e.VendorEdiType, e.LibEdiCode,
		e.LibEdiType, e.ProrateTax, e.ProrateFees,
		e.EdiNamingConvention, e.SendAcctNum, e.SupportOrder,
		e.SupportInvoice, e.Notes, e.FTPFormat, e.FTPMode,
		e.FTPConnMode, e.FTPPort, e.ServerAddress, e.Username,
		e.Password, e.OrderDirectory, e.InvoiceDirectory,
		e.NotifyAllEdi, e.NotifyInvoiceOnly, e.NotifyErrorOnly,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert edi_info: %w", err)
	}
	return nil
}

func insertName(ctx context.Context, q querier, vendorID int64, n *VendorName) error {
	err := q.QueryRow(ctx, `
		INSERT INTO vendor_name (vendor_id, value, description)
		VALUES ($1, $2, $3)
		RETURNING id`,
		vendorID, n.Value, n.Description,
	).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("insert vendor_name: %w", err)
	}
	return nil
}

func insertCurrency(ctx context.Context, q querier, vendorID int64, c *VendorCurrency) error {
	err := q.QueryRow(ctx, `
		INSERT INTO vendor_currency (vendor_id, currency)
		VALUES ($1, $2)
		RETURNING id`,
		vendorID, c.Currency,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert vendor_currency: %w", err)
	}
	return nil
}

func insertInterface(ctx context.Context, q querier, vendorID int64, i *VendorInterface) error {
	err := q.QueryRow(ctx, `
		INSERT INTO vendor_interface (vendor_id, name, uri, username, password,
		                              notes, available, delivery_method,
		                              statistics_format, locally_stored,
		                              online_location, statistics_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		vendorID, i.Name, i.URI, i.Username, i.Password,
		i.Notes, i.Available, i.DeliveryMethod,
		i.StatisticsFormat, i.LocallyStored,
		i.OnlineLocation, i.StatisticsNotes,
	).Scan(&i.ID)
	if err != nil {
		return fmt.Errorf("insert vendor_interface: %w", err)
	}
	return nil
}

func insertAgreement(ctx context.Context, q querier, vendorID int64, a *Agreement) error {
	err := q.QueryRow(ctx, `
		INSERT INTO agreement (vendor_id, name, discount, reference_url, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		vendorID, a.Name, a.Discount, a.ReferenceURL, a.Notes,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert agreement: %w", err)
	}
	return nil
}

func insertAccount(ctx context.Context, q querier, vendorID int64, a *Account) error {
	err := q.QueryRow(ctx, `
		INSERT INTO library_vendor_acct (vendor_id, name, account_no, account_status,
		                                 description, app_system_no, payment_method,
		                                 contact_info, library_code, library_edi_code, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		vendorID, a.Name, a.AccountNo, a.AccountStatus,
		a.Description, a.AppSystemNo, a.PaymentMethod,
		a.ContactInfo, a.LibraryCode, a.LibraryEdiCode, a.Notes,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert library_vendor_acct: %w", err)
	}
	return nil
}

func insertJob(ctx context.Context, q querier, vendorID int64, j *Job) error {
	err := q.QueryRow(ctx, `
		INSERT INTO job (vendor_id, is_scheduled, start_date, run_time, scheduling_notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		vendorID, j.IsScheduled, j.StartDate, j.RunTime, j.SchedulingNotes,
	).Scan(&j.ID)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func insertNote(ctx context.Context, q querier, vendorID int64, n *Note, at time.Time) error {
	n.CreatedAt = at
	err := q.QueryRow(ctx, `
		INSERT INTO note (vendor_id, value, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`,
		vendorID, n.Value, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// insertAddress writes the value record first, then the association row
// referencing both it and the vendor, then the category tag set.
func insertAddress(ctx context.Context, q querier, vendorID int64, a *Address) error {
	err := q.QueryRow(ctx, `
		INSERT INTO address (address_line1, address_line2, city, state_region,
		                     zip_code, country)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		a.AddressLine1, a.AddressLine2, a.City, a.StateRegion, a.ZipCode, a.Country,
	).Scan(&a.AddressID)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	err = q.QueryRow(ctx, `
		INSERT INTO vendor_address (vendor_id, address_id, language, san_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		vendorID, a.AddressID, a.Language, a.SanCode,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert vendor_address: %w", err)
	}
	return replaceCategories(ctx, q, addressAssoc, a.ID, a.Categories)
}

func insertPhone(ctx context.Context, q querier, vendorID int64, p *PhoneNumber) error {
	err := q.QueryRow(ctx, `
		INSERT INTO phone_number (number, type)
		VALUES ($1, $2)
		RETURNING id`,
		p.Number, p.Type,
	).Scan(&p.PhoneNumberID)
	if err != nil {
		return fmt.Errorf("insert phone_number: %w", err)
	}
	err = q.QueryRow(ctx, `
		INSERT INTO vendor_phone (vendor_id, phone_number_id, language)
		VALUES ($1, $2, $3)
		RETURNING id`,
		vendorID, p.PhoneNumberID, p.Language,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert vendor_phone: %w", err)
	}
	return replaceCategories(ctx, q, phoneAssoc, p.ID, p.Categories)
}

func insertEmail(ctx context.Context, q querier, vendorID int64, e *Email) error {
	err := q.QueryRow(ctx, `
		INSERT INTO email (value, description)
		VALUES ($1, $2)
		RETURNING id`,
		e.Value, e.Description,
	).Scan(&e.EmailID)
	if err != nil {
		return fmt.Errorf("insert email: %w", err)
	}
	err = q.QueryRow(ctx, `
		INSERT INTO vendor_email (vendor_id, email_id, language)
		VALUES ($1, $2, $3)
		RETURNING id`,
		vendorID, e.EmailID, e.Language,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert vendor_email: %w", err)
	}
	return replaceCategories(ctx, q, emailAssoc, e.ID, e.Categories)
}

// insertContact writes the person's owned value records, the person, the
// association row, and the category tags, in that order.
func insertContact(ctx context.Context, q querier, vendorID int64, c *Contact) error {
	var phoneID, emailID, addrID *int64
	if c.Phone != nil {
		if err := insertContactPhone(ctx, q, c.Phone); err != nil {
			return err
		}
		phoneID = &c.Phone.ID
	}
	if c.Email != nil {
		if err := insertContactEmail(ctx, q, c.Email); err != nil {
			return err
		}
		emailID = &c.Email.ID
	}
	if c.Address != nil {
		if err := insertContactAddress(ctx, q, c.Address); err != nil {
			return err
		}
		addrID = &c.Address.ID
	}

	err := q.QueryRow(ctx, `
		INSERT INTO person (prefix, first_name, last_name, language, notes,
		                    phone_number_id, email_id, address_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		c.Prefix, c.FirstName, c.LastName, c.Language, c.Notes,
		phoneID, emailID, addrID,
	).Scan(&c.PersonID)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	err = q.QueryRow(ctx, `
		INSERT INTO vendor_contact (vendor_id, person_id, language)
		VALUES ($1, $2, $3)
		RETURNING id`,
		vendorID, c.PersonID, c.Language,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert vendor_contact: %w", err)
	}
	return replaceCategories(ctx, q, contactAssoc, c.ID, c.Categories)
}

func insertContactPhone(ctx context.Context, q querier, p *ContactPhone) error {
	err := q.QueryRow(ctx, `
		INSERT INTO phone_number (number, type) VALUES ($1, $2) RETURNING id`,
		p.Number, p.Type,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert contact phone_number: %w", err)
	}
	return nil
}

func insertContactEmail(ctx context.Context, q querier, e *ContactEmail) error {
	err := q.QueryRow(ctx, `
		INSERT INTO email (value, description) VALUES ($1, $2) RETURNING id`,
		e.Value, e.Description,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert contact email: %w", err)
	}
	return nil
}

func insertContactAddress(ctx context.Context, q querier, a *ContactAddress) error {
	err := q.QueryRow(ctx, `
		INSERT INTO address (address_line1, address_line2, city, state_region,
		                     zip_code, country)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		a.AddressLine1, a.AddressLine2, a.City, a.StateRegion, a.ZipCode, a.Country,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert contact address: %w", err)
	}
	return nil
}
