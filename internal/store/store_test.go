package store

import (
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Jane Doe", displayName("Jane", "Doe"))
	assert.Equal(t, "Unknown", displayName("", "Doe"))
	assert.Equal(t, "Unknown", displayName("Jane", ""))
	assert.Equal(t, "Unknown", displayName("", ""))
	// Surrounding whitespace trims; inner whitespace survives.
	assert.Equal(t, "Jane  Doe", displayName("Jane ", "Doe"))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("a", "b"))
	assert.Equal(t, "b", firstNonEmpty("", "b"))
	assert.Equal(t, "", firstNonEmpty("", ""))
	assert.Equal(t, "", firstNonEmpty())
}

func TestTruncateMessage(t *testing.T) {
	assert.Equal(t, "short", truncateMessage("short", 100))

	exact := strings.Repeat("a", 100)
	assert.Equal(t, exact, truncateMessage(exact, 100))

	long := strings.Repeat("a", 101)
	assert.Equal(t, exact+"...", truncateMessage(long, 100))

	// Truncation counts runes, not bytes.
	multibyte := strings.Repeat("š", 150)
	got := truncateMessage(multibyte, 100)
	assert.Equal(t, strings.Repeat("š", 100)+"...", got)
	assert.Len(t, []rune(got), 103)
}

func TestNumericToDecimal(t *testing.T) {
	assert.Equal(t, "12.5", numericToDecimal(numeric(125, -1)).String())
	assert.Equal(t, "0", numericToDecimal(numeric(0, 0)).String())
	assert.True(t, numericToDecimal(pgtype.Numeric{}).IsZero())
	assert.True(t, numericToDecimal(pgtype.Numeric{NaN: true, Valid: true}).IsZero())
}

func TestDatePtr(t *testing.T) {
	assert.Nil(t, datePtr(pgtype.Date{}))

	d := pgtype.Date{Time: time.Date(2024, 4, 12, 0, 0, 0, 0, time.UTC), Valid: true}
	got := datePtr(d)
	assert.NotNil(t, got)
	assert.Equal(t, "2024-04-12", *got)
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, "", textValue(pgtype.Text{}))
	assert.Equal(t, "x", textValue(pgtype.Text{String: "x", Valid: true}))

	assert.Nil(t, textPtr(pgtype.Text{}))
	p := textPtr(pgtype.Text{String: "x", Valid: true})
	assert.NotNil(t, p)
	assert.Equal(t, "x", *p)
}
