package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vendor is the root aggregate: the vendor row plus everything it owns across
// the child tables. It is always read and written as a whole.
type Vendor struct {
	ID                         int64           `json:"id"`
	Name                       string          `json:"name"`
	Code                       string          `json:"code"`
	VendorStatus               string          `json:"vendor_status"`
	Language                   string          `json:"language"`
	ERPCode                    string          `json:"erp_code"`
	PaymentMethod              string          `json:"payment_method"`
	AccessProvider             bool            `json:"access_provider"`
	Governmental               bool            `json:"governmental"`
	Licensor                   bool            `json:"licensor"`
	MaterialSupplier           bool            `json:"material_supplier"`
	ClaimingInterval           int             `json:"claiming_interval"`
	DiscountPercent            decimal.Decimal `json:"discount_percent"`
	ExpectedActivationInterval int             `json:"expected_activation_interval"`
	ExpectedInvoiceInterval    int             `json:"expected_invoice_interval"`
	RenewalActivationInterval  int             `json:"renewal_activation_interval"`
	SubscriptionInterval       int             `json:"subscription_interval"`
	TaxID                      string          `json:"tax_id"`
	LiableForVAT               bool            `json:"liable_for_vat"`
	TaxPercentage              decimal.Decimal `json:"tax_percentage"`
	SanCode                    string          `json:"san_code"`
	CreatedAt                  time.Time       `json:"created_at"`

	// ediInfoID is the FK to the 1:1 edi_info row; internal to persistence.
	ediInfoID int64

	EdiInfo *EdiInfo `json:"edi_info,omitempty"`
	Job     *Job     `json:"job,omitempty"`

	Names        []VendorName      `json:"vendor_names"`
	Currencies   []VendorCurrency  `json:"vendor_currencies"`
	Interfaces   []VendorInterface `json:"interfaces"`
	Agreements   []Agreement       `json:"agreements"`
	Accounts     []Account         `json:"accounts"`
	Addresses    []Address         `json:"addresses"`
	PhoneNumbers []PhoneNumber     `json:"phone_numbers"`
	Emails       []Email           `json:"emails"`
	Contacts     []Contact         `json:"contacts"`
	Notes        []Note            `json:"notes"`
}

// VendorSummary is the shape returned by vendor listings.
type VendorSummary struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	VendorStatus string    `json:"vendor_status"`
	CreatedAt    time.Time `json:"created_at"`
}

// VendorRecord is an assembled vendor plus the names of any child fetches
// that failed during assembly. A degraded fetch leaves its collection empty
// instead of failing the whole read; callers decide whether to surface it.
type VendorRecord struct {
	Vendor   *Vendor  `json:"vendor"`
	Degraded []string `json:"degraded,omitempty"`
}

// EdiInfo holds the vendor's EDI transmission settings (1:1 with vendor,
// created in the same transaction).
type EdiInfo struct {
	ID                  int64  `json:"id"`
	VendorEdiCode       string `json:"vendor_edi_code"`
	VendorEdiType       string `json:"vendor_edi_type"`
	LibEdiCode          string `json:"lib_edi_code"`
	LibEdiType          string `json:"lib_edi_type"`
	ProrateTax          bool   `json:"prorate_tax"`
	ProrateFees         bool   `json:"prorate_fees"`
	EdiNamingConvention string `json:"edi_naming_convention"`
	SendAcctNum         bool   `json:"send_acct_num"`
	SupportOrder        bool   `json:"support_order"`
	SupportInvoice      bool   `json:"support_invoice"`
	Notes               string `json:"notes"`
	FTPFormat           string `json:"ftp_format"`
	FTPMode             string `json:"ftp_mode"`
	FTPConnMode         string `json:"ftp_conn_mode"`
	FTPPort             int    `json:"ftp_port"`
	ServerAddress       string `json:"server_address"`
	Username            string `json:"username"`
	Password            string `json:"password"`
	OrderDirectory      string `json:"order_directory"`
	InvoiceDirectory    string `json:"invoice_directory"`
	NotifyAllEdi        bool   `json:"notify_all_edi"`
	NotifyInvoiceOnly   bool   `json:"notify_invoice_only"`
	NotifyErrorOnly     bool   `json:"notify_error_only"`
}

// Job holds the vendor's EDI job scheduling settings (0..1 per vendor).
type Job struct {
	ID              int64      `json:"id"`
	IsScheduled     bool       `json:"is_scheduled"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	RunTime         string     `json:"run_time"`
	SchedulingNotes string     `json:"scheduling_notes"`
}

type VendorName struct {
	ID          int64  `json:"id"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

type VendorCurrency struct {
	ID       int64  `json:"id"`
	Currency string `json:"currency"`
}

type VendorInterface struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	URI              string `json:"uri"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	Notes            string `json:"notes"`
	Available        bool   `json:"available"`
	DeliveryMethod   string `json:"delivery_method"`
	StatisticsFormat string `json:"statistics_format"`
	LocallyStored    string `json:"locally_stored"`
	OnlineLocation   string `json:"online_location"`
	StatisticsNotes  string `json:"statistics_notes"`
}

type Agreement struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Discount     decimal.Decimal `json:"discount"`
	ReferenceURL string          `json:"reference_url"`
	Notes        string          `json:"notes"`
}

// Account is a library-vendor account (library_vendor_acct row).
type Account struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	AccountNo      string `json:"account_no"`
	AccountStatus  string `json:"account_status"`
	Description    string `json:"description"`
	AppSystemNo    string `json:"app_system_no"`
	PaymentMethod  string `json:"payment_method"`
	ContactInfo    string `json:"contact_info"`
	LibraryCode    string `json:"library_code"`
	LibraryEdiCode string `json:"library_edi_code"`
	Notes          string `json:"notes"`
}

// Address is a vendor_address association row joined with its reusable
// address value record. ID is the association row; AddressID the value row.
type Address struct {
	ID           int64   `json:"id"`
	AddressID    int64   `json:"address_id"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 string  `json:"address_line2"`
	City         string  `json:"city"`
	StateRegion  string  `json:"state_region"`
	ZipCode      string  `json:"zip_code"`
	Country      string  `json:"country"`
	Language     string  `json:"language"`
	SanCode      string  `json:"san_code"`
	Categories   []int64 `json:"categories"`
}

// PhoneNumber is a vendor_phone association row joined with its value record.
type PhoneNumber struct {
	ID            int64   `json:"id"`
	PhoneNumberID int64   `json:"phone_number_id"`
	Number        string  `json:"number"`
	Type          string  `json:"type"`
	Language      string  `json:"language"`
	Categories    []int64 `json:"categories"`
}

// Email is a vendor_email association row joined with its value record.
type Email struct {
	ID          int64   `json:"id"`
	EmailID     int64   `json:"email_id"`
	Value       string  `json:"value"`
	Description string  `json:"description"`
	Language    string  `json:"language"`
	Categories  []int64 `json:"categories"`
}

// Contact is a vendor_contact association row joined with its person record.
// The person may own one phone, email, and address value record of its own.
type Contact struct {
	ID         int64           `json:"id"`
	PersonID   int64           `json:"person_id"`
	Prefix     string          `json:"prefix"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Language   string          `json:"language"`
	Notes      string          `json:"notes"`
	Phone      *ContactPhone   `json:"phone_number,omitempty"`
	Email      *ContactEmail   `json:"email,omitempty"`
	Address    *ContactAddress `json:"address,omitempty"`
	Categories []int64         `json:"categories"`
}

type ContactPhone struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
	Type   string `json:"type"`
}

type ContactEmail struct {
	ID          int64  `json:"id"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

type ContactAddress struct {
	ID           int64  `json:"id"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	StateRegion  string `json:"state_region"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
}

type Note struct {
	ID        int64     `json:"id"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// Category is an independent reference entity; child rows point at it through
// replace-all junction tables.
type Category struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}
