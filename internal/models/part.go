package models

// TimeLayout is the UTC wire format for every timestamp the server stores
// or emits. Lexical order equals chronological order.
const TimeLayout = "2006-01-02 15:04:05"

// Part is one inventory line item, priced in both USD and bolívares.
// Rows are soft deleted: the Deleted flag hides a part from reads and
// stock adjustments while the row and its ledger history stay in place,
// and an upsert with the same id brings it back.
type Part struct {
	ID          string  `gorm:"primaryKey;size:64" json:"id"`
	Name        string  `gorm:"size:200;not null" json:"name"`
	Description string  `gorm:"size:500" json:"description"`
	Quantity    int     `gorm:"not null;default:0" json:"quantity"`
	PriceUSD    float64 `gorm:"column:price_usd;not null;default:0" json:"price_usd"`
	PriceBS     float64 `gorm:"column:price_bs;not null;default:0" json:"price_bs"`
	LastUpdate  string  `gorm:"size:32" json:"last_update"`
	Deleted     bool    `gorm:"not null;default:false;index" json:"-"`
}
