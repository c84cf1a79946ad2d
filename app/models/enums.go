package models

// PaymentStatus defines the status of a ledger entry.
type PaymentStatus string

const (
	PaymentPaid      PaymentStatus = "paid"
	PaymentCondoned  PaymentStatus = "condoned"
	PaymentCancelled PaymentStatus = "cancelled"
)

// PropertyType defines the kind of billable unit.
type PropertyType string

const (
	PropertyHouse PropertyType = "house"
	PropertyLot   PropertyType = "lot"
)
