package models

type LedgerKind string

const (
	LedgerSale   LedgerKind = "sale"
	LedgerReturn LedgerKind = "return"
)

// LedgerEntry is one immutable stock-adjustment record, written only as a
// side effect of a successful sale or return. Entries are append-only and
// survive soft deletion of the part they reference.
type LedgerEntry struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Kind     LedgerKind `gorm:"size:10;not null;index" json:"kind"`
	PartID   string     `gorm:"size:64;not null;index" json:"part_id"`
	Quantity int        `gorm:"not null" json:"quantity"`
	Date     string     `gorm:"size:32" json:"date"`
}
