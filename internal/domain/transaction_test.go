package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 4, 15, 7, 9, 0, time.UTC)

// seqSource hands out ids from a fixed list.
type seqSource struct {
	ids []string
}

func (s *seqSource) Next() (string, error) {
	id := s.ids[0]
	s.ids = s.ids[1:]
	return id, nil
}

func TestNewImported_Defaults(t *testing.T) {
	got, err := NewImported(Transaction{User: "Bob", Amount: "$50"}, testNow, &seqSource{ids: []string{"TX4242"}})
	require.NoError(t, err)

	assert.Equal(t, Transaction{
		ID:       "TX4242",
		User:     "Bob",
		Amount:   "$50",
		Status:   "Pending",
		Risk:     "Medium",
		Method:   "CSV Import",
		Date:     "3/4/2026, 3:07:09 PM",
		Location: "Remote Server",
	}, got)
}

func TestNewImported_KeepsSuppliedValues(t *testing.T) {
	in := Transaction{
		ID:       "custom-7",
		User:     "Alice Smith",
		Amount:   "$12,400",
		Status:   StatusFlagged,
		Risk:     RiskHigh,
		Method:   "Wire Transfer",
		Date:     "yesterday",
		Location: "Lagos, NG",
	}
	got, err := NewImported(in, testNow, &seqSource{})
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestNewImported_BlankIsDefaulted(t *testing.T) {
	got, err := NewImported(Transaction{ID: "  ", User: " \t", Risk: " High "}, testNow, &seqSource{ids: []string{"TX1001"}})
	require.NoError(t, err)
	assert.Equal(t, "TX1001", got.ID)
	assert.Equal(t, DefaultUser, got.User)
	assert.Equal(t, RiskHigh, got.Risk)
}

func TestNewManual_IgnoresIDAndDate(t *testing.T) {
	got, err := NewManual(Transaction{ID: "TX0000", Date: "never", User: "Carol"}, testNow, &seqSource{ids: []string{"TX5555"}})
	require.NoError(t, err)
	assert.Equal(t, "TX5555", got.ID)
	assert.Equal(t, "3/4/2026, 3:07:09 PM", got.Date)
	assert.Equal(t, "Manual Entry", got.Method)
	assert.Equal(t, "Carol", got.User)
}

func TestNewManual_KeepsMethod(t *testing.T) {
	got, err := NewManual(Transaction{Method: "ACH"}, testNow, &seqSource{ids: []string{"TX5556"}})
	require.NoError(t, err)
	assert.Equal(t, "ACH", got.Method)
}

func TestWithDefaults(t *testing.T) {
	got := WithDefaults(Transaction{ID: "TX1", Risk: "Low"}, testNow)
	assert.Equal(t, "TX1", got.ID)
	assert.Equal(t, "Low", got.Risk)
	assert.Equal(t, DefaultAmount, got.Amount)
	assert.Equal(t, DefaultImportMethod, got.Method)
	assert.NotEmpty(t, got.Date)
}

func TestNewManual_FoldsCRLF(t *testing.T) {
	got, err := NewManual(Transaction{Location: "Line1\r\nLine2", User: "A\r\nB\r\n"}, testNow, &seqSource{ids: []string{"TX1"}})
	require.NoError(t, err)
	assert.Equal(t, "Line1\nLine2", got.Location)
	assert.Equal(t, "A\nB", got.User)
}
