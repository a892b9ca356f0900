package constants

// Dialect is the canonical invoice layout variant.
type Dialect string

// Stable values (these exact strings appear in the debug JSON side-channel).
const (
	WebStore   Dialect = "WEB_STORE"   // web shop order invoices
	BackOffice Dialect = "BACK_OFFICE" // back-office / ERP invoices
)

// Network labels used in the report's sale-network column.
const (
	NetworkWebStore   = "Internet"
	NetworkBackOffice = "ERP"
)

// PaymentCheque is the canonical token any check/cheque payment method
// normalizes to.
const PaymentCheque = "cheque"

// WebStore header defaults: these fields are never printed on web-store
// invoices, payment happened online before the invoice existed.
const (
	DefaultWebStorePayment = "carte bancaire"
	DefaultWebStoreStatus  = "payé"
)
