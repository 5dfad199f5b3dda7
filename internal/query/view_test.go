package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sentinel_engine/internal/domain"
)

var sample = []domain.Transaction{
	{ID: "TX1002", User: "Alice Smith", Risk: "High"},
	{ID: "TX1003", User: "Bob Jones", Risk: "Low"},
	{ID: "TX1004", User: "Charlie Day", Risk: "Medium"},
	{ID: "TX1005", User: "Diane Prince", Risk: "High"},
}

func idsOf(list []domain.Transaction) []string {
	return SelectAll(list)
}

func TestMatchesSearch(t *testing.T) {
	tests := []struct {
		term string
		want bool
	}{
		{"", true},
		{"alice", true},
		{"SMITH", true},
		{"tx1002", true},
		{"1002", true},
		{"bob", false},
		{"High", false}, // risk is not searched
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesSearch(sample[0], tt.term))
		})
	}
}

func TestMatchesRisk(t *testing.T) {
	assert.True(t, MatchesRisk(sample[0], "All"))
	assert.True(t, MatchesRisk(sample[0], ""))
	assert.True(t, MatchesRisk(sample[0], "High"))
	assert.False(t, MatchesRisk(sample[0], "Low"))
	assert.False(t, MatchesRisk(sample[0], "high"), "risk filter is exact")
}

func TestFilter(t *testing.T) {
	assert.Equal(t, []string{"TX1002", "TX1005"}, idsOf(Filter(sample, "", "High")))
	assert.Equal(t, []string{"TX1002"}, idsOf(Filter(sample, "smith", "High")))
	assert.Empty(t, Filter(sample, "smith", "Low"))
	assert.Equal(t, idsOf(sample), idsOf(Filter(sample, "", "All")))
	assert.Equal(t, []string{"TX1002", "TX1004"}, idsOf(Filter(sample, "LI", "All")))
}

func TestCount_IgnoresFilters(t *testing.T) {
	assert.Equal(t, Counts{High: 2, Medium: 1, Low: 1}, Count(sample))

	withUnknown := append([]domain.Transaction{{ID: "TX1", Risk: "Critical"}}, sample...)
	assert.Equal(t, Counts{High: 2, Medium: 1, Low: 1}, Count(withUnknown))
	assert.Equal(t, Counts{}, Count(nil))
}

func TestRiskScore(t *testing.T) {
	assert.Equal(t, 99, RiskScore("High"))
	assert.Equal(t, 65, RiskScore("Medium"))
	assert.Equal(t, 18, RiskScore("Low"))
	assert.Equal(t, 0, RiskScore("Critical"))
	assert.Equal(t, 0, RiskScore(""))
}

func TestSelect(t *testing.T) {
	got := Select(sample, []string{"TX1005", "TX1002", "TX9999"})
	assert.Equal(t, []string{"TX1002", "TX1005"}, idsOf(got))
	assert.Empty(t, Select(sample, nil))
}

func TestSelectAll_IsFilteredSet(t *testing.T) {
	filtered := Filter(sample, "", "High")
	assert.Equal(t, []string{"TX1002", "TX1005"}, SelectAll(filtered))
	assert.Empty(t, SelectAll(nil))
}

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"TX1002", "TX1003"}, SplitIDs(" TX1002 , ,TX1003,"))
	assert.Empty(t, SplitIDs(""))
}
