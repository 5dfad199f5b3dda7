package domain

import (
	"time" // Creation timestamps

	"github.com/shopspring/decimal" // Exact amounts
)

// LedgerEntry Model, one row of the relational transactions table served by
// the read endpoint. It is independent of the dashboard's Transaction record.
type LedgerEntry struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                       // Primary key
	TxRef     string          `gorm:"uniqueIndex;size:32;not null" json:"tx_ref"` // External reference, e.g. TX1002
	UserName  string          `gorm:"size:128;not null" json:"user_name"`         // Entity involved
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`  // Amount of the transaction
	Status    string          `gorm:"size:16;default:Pending" json:"status"`      // Pending, Verified or Flagged
	Risk      string          `gorm:"size:16;default:Medium" json:"risk"`         // High, Medium or Low
	Method    string          `gorm:"size:64" json:"method"`                      // Channel
	Location  string          `gorm:"size:128" json:"location"`                   // Origin
	CreatedAt time.Time       `gorm:"autoCreateTime;index" json:"created_at"`     // Creation time
}

// TableName pins the table name used by the read endpoint.
func (LedgerEntry) TableName() string { return "transactions" }
