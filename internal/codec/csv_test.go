package codec

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel_engine/internal/domain"
)

var testNow = time.Date(2026, 3, 4, 15, 7, 9, 0, time.UTC)

type fixedIDs struct {
	ids []string
}

func (f *fixedIDs) Next() (string, error) {
	id := f.ids[0]
	f.ids = f.ids[1:]
	return id, nil
}

func TestParse_DefaultsMissingFields(t *testing.T) {
	rows, err := Parse(strings.NewReader("id,user,amount\n,Bob,$50\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rec, err := Normalize(rows[0], testNow, &fixedIDs{ids: []string{"TX4242"}})
	require.NoError(t, err)
	assert.Equal(t, domain.Transaction{
		ID:       "TX4242",
		User:     "Bob",
		Amount:   "$50",
		Status:   "Pending",
		Risk:     "Medium",
		Method:   "CSV Import",
		Date:     "3/4/2026, 3:07:09 PM",
		Location: "Remote Server",
	}, rec)
}

func TestParse_HeaderOnly(t *testing.T) {
	rows, err := Parse(strings.NewReader("id,user,amount\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParse_EmptyInput(t *testing.T) {
	rows, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParse_SkipsBlankRowsAndTrims(t *testing.T) {
	in := " id , user ,risk\n\n ,  ,\nTX1, Ann ,High\n"
	rows, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{"id": "TX1", "user": "Ann", "risk": "High"}, rows[0])
}

func TestParse_ShortAndLongRows(t *testing.T) {
	rows, err := Parse(strings.NewReader("id,user,risk\nTX1\nTX2,Ann,Low,extra,cells\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{"id": "TX1"}, rows[0])
	assert.Equal(t, Row{"id": "TX2", "user": "Ann", "risk": "Low"}, rows[1])
}

func TestParse_QuotedFields(t *testing.T) {
	in := "id,user,location\nTX1,\"Smith, Alice\",\"Line one\nLine \"\"two\"\"\"\n"
	rows, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Smith, Alice", rows[0]["user"])
	assert.Equal(t, "Line one\nLine \"two\"", rows[0]["location"])
}

func TestParse_UnbalancedQuote(t *testing.T) {
	_, err := Parse(strings.NewReader("id,user\nTX1,\"Alice\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedCSV)
}

func TestParse_StripsByteOrderMark(t *testing.T) {
	rows, err := Parse(strings.NewReader("\ufeffid,user\nTX7,Ann\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "TX7", rows[0]["id"])
}

func TestNormalize_IgnoresUnknownColumns(t *testing.T) {
	rec, err := Normalize(Row{"id": "TX5", "colour": "red"}, testNow, &fixedIDs{})
	require.NoError(t, err)
	assert.Equal(t, "TX5", rec.ID)
	assert.Equal(t, domain.DefaultUser, rec.User)
}

func TestRowWithout(t *testing.T) {
	row := Row{"id": "TX1", "user": "Ann"}
	got := row.Without(ColID)
	assert.Equal(t, Row{"user": "Ann"}, got)
	assert.Equal(t, "TX1", row["id"], "original row is not modified")
}

func TestSerialize_Quoting(t *testing.T) {
	var buf bytes.Buffer
	err := Serialize(&buf, []domain.Transaction{{
		ID: "TX1", User: "Smith, Alice", Amount: "$1", Status: "Flagged",
		Risk: "High", Method: "Wire", Date: "1/2/2026, 1:00:00 AM", Location: `Say "hi"`,
	}})
	require.NoError(t, err)
	assert.Equal(t,
		"id,user,amount,status,risk,method,date,location\n"+
			`TX1,"Smith, Alice",$1,Flagged,High,Wire,"1/2/2026, 1:00:00 AM","Say ""hi"""`+"\n",
		buf.String())
}

func TestSerialize_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Serialize(&buf, nil))
	assert.Equal(t, "id,user,amount,status,risk,method,date,location\n", buf.String())
}

func TestRoundTrip(t *testing.T) {
	records := []domain.Transaction{
		{ID: "TX1002", User: "Alice Smith", Amount: "$12,400.00", Status: "Flagged", Risk: "High",
			Method: "Wire Transfer", Date: "3/1/2026, 9:15:00 AM", Location: "Zurich, CH"},
		{ID: "TX1003", User: "Bob \"BJ\" Jones", Amount: "$45.00", Status: "Verified", Risk: "Low",
			Method: "Card", Date: "3/2/2026, 4:30:12 PM", Location: "Line 1\nLine 2"},
	}

	var buf bytes.Buffer
	require.NoError(t, Serialize(&buf, records))

	rows, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, rows, len(records))
	for i, row := range rows {
		got, err := Normalize(row, testNow, &fixedIDs{})
		require.NoError(t, err)
		assert.Equal(t, records[i], got)
	}
}

func TestRoundTrip_CRLFInsideQuotedCell(t *testing.T) {
	rec, err := domain.NewImported(domain.Transaction{ID: "TX1", Location: "Line1\r\nLine2"}, testNow, &fixedIDs{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Serialize(&buf, []domain.Transaction{rec}))

	rows, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	got, err := Normalize(rows[0], testNow, &fixedIDs{})
	require.NoError(t, err)
	assert.Equal(t, rec, got)
	assert.Equal(t, "Line1\nLine2", got.Location)
}
