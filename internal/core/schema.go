package core

// Static description of the vendor aggregate's tables and foreign-key edges.
// The deleter walks these lists for FK-safe cascade order, the category
// tagger resolves junction tables here, and the assembler uses the table
// names as degraded-fetch labels.

// childTable is a table holding simple one-to-many children of a vendor.
type childTable struct {
	Name     string
	VendorFK string
}

// assocTable is a vendor association table that links the vendor to a
// reusable value record and may carry category tags via a junction table.
type assocTable struct {
	Name      string // association table (vendor_address, ...)
	VendorFK  string
	ValueFK   string // column referencing the value record
	ValueName string // value record table (address, ...)
	Junction  string // category junction table
	OwnerFK   string // junction column referencing the association row
}

// simpleChildTables in FK-safe delete order (no inter-dependencies, so the
// order only needs to precede the vendor row itself).
var simpleChildTables = []childTable{
	{Name: "vendor_name", VendorFK: "vendor_id"},
	{Name: "vendor_currency", VendorFK: "vendor_id"},
	{Name: "vendor_interface", VendorFK: "vendor_id"},
	{Name: "agreement", VendorFK: "vendor_id"},
	{Name: "library_vendor_acct", VendorFK: "vendor_id"},
	{Name: "job", VendorFK: "vendor_id"},
	{Name: "note", VendorFK: "vendor_id"},
}

var (
	addressAssoc = assocTable{
		Name:      "vendor_address",
		VendorFK:  "vendor_id",
		ValueFK:   "address_id",
		ValueName: "address",
		Junction:  "vendor_address_category",
		OwnerFK:   "vendor_address_id",
	}
	phoneAssoc = assocTable{
		Name:      "vendor_phone",
		VendorFK:  "vendor_id",
		ValueFK:   "phone_number_id",
		ValueName: "phone_number",
		Junction:  "vendor_phone_category",
		OwnerFK:   "vendor_phone_id",
	}
	emailAssoc = assocTable{
		Name:      "vendor_email",
		VendorFK:  "vendor_id",
		ValueFK:   "email_id",
		ValueName: "email",
		Junction:  "vendor_email_category",
		OwnerFK:   "vendor_email_id",
	}
	contactAssoc = assocTable{
		Name:      "vendor_contact",
		VendorFK:  "vendor_id",
		ValueFK:   "person_id",
		ValueName: "person",
		Junction:  "vendor_contact_category",
		OwnerFK:   "vendor_contact_id",
	}
)

// assocTables groups the four association families for cascade deletion.
var assocTables = []assocTable{addressAssoc, phoneAssoc, emailAssoc, contactAssoc}
