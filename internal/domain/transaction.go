package domain

import (
	"strings" // Field trimming
	"time"    // Creation timestamps
)

// Risk tiers
const (
	RiskHigh   = "High"
	RiskMedium = "Medium"
	RiskLow    = "Low"
	RiskAll    = "All" // Filter value matching every tier
)

// Review statuses
const (
	StatusPending  = "Pending"
	StatusVerified = "Verified"
	StatusFlagged  = "Flagged"
)

// Fallback values applied when a field is absent or blank
const (
	DefaultUser         = "Imported Entity"
	DefaultAmount       = "$0.00"
	DefaultStatus       = StatusPending
	DefaultRisk         = RiskMedium
	DefaultImportMethod = "CSV Import"
	DefaultManualMethod = "Manual Entry"
	DefaultLocation     = "Remote Server"
)

// DateLayout renders creation timestamps the way the dashboard displays them.
const DateLayout = "1/2/2006, 3:04:05 PM"

// Transaction is one record on the risk dashboard. All fields are plain strings;
// amount and date are display text and are never parsed.
type Transaction struct {
	ID       string `json:"id"`       // TX + 4 digits when generated
	User     string `json:"user"`     // Entity involved
	Amount   string `json:"amount"`   // Free-form display amount
	Status   string `json:"status"`   // Pending, Verified or Flagged
	Risk     string `json:"risk"`     // High, Medium or Low
	Method   string `json:"method"`   // Channel, e.g. Wire Transfer
	Date     string `json:"date"`     // Locale formatted creation time
	Location string `json:"location"` // Free-form location
}

// NewImported builds a record from an imported partial, keeping every non-blank
// supplied value and defaulting the rest.
func NewImported(partial Transaction, now time.Time, ids IDSource) (Transaction, error) {
	return build(partial, DefaultImportMethod, now, ids, true)
}

// NewManual builds a record from manual entry. The id and date are always
// generated, whatever the input carries.
func NewManual(input Transaction, now time.Time, ids IDSource) (Transaction, error) {
	input.ID = ""
	input.Date = ""
	return build(input, DefaultManualMethod, now, ids, false)
}

// WithDefaults fills blank fields of an already stored record. It never
// generates an id; blank ids are left for the caller to re-key.
func WithDefaults(t Transaction, now time.Time) Transaction {
	out := Transaction{
		ID:       strings.TrimSpace(t.ID),
		User:     orDefault(t.User, DefaultUser),
		Amount:   orDefault(t.Amount, DefaultAmount),
		Status:   orDefault(t.Status, DefaultStatus),
		Risk:     orDefault(t.Risk, DefaultRisk),
		Method:   orDefault(t.Method, DefaultImportMethod),
		Date:     orDefault(t.Date, FormatDate(now)),
		Location: orDefault(t.Location, DefaultLocation),
	}
	return out
}

// FormatDate renders t with DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func build(in Transaction, method string, now time.Time, ids IDSource, keepID bool) (Transaction, error) {
	id := ""
	if keepID {
		id = strings.TrimSpace(in.ID)
	}
	if id == "" {
		generated, err := ids.Next()
		if err != nil {
			return Transaction{}, err
		}
		id = generated
	}

	return Transaction{
		ID:       id,
		User:     orDefault(in.User, DefaultUser),
		Amount:   orDefault(in.Amount, DefaultAmount),
		Status:   orDefault(in.Status, DefaultStatus),
		Risk:     orDefault(in.Risk, DefaultRisk),
		Method:   orDefault(in.Method, method),
		Date:     orDefault(in.Date, FormatDate(now)),
		Location: orDefault(in.Location, DefaultLocation),
	}, nil
}

// orDefault trims v and folds CRLF line breaks to LF, the form a CSV reader
// hands back for quoted multi-line cells.
func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(strings.ReplaceAll(v, "\r\n", "\n")); v != "" {
		return v
	}
	return fallback
}
