package eventtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestParseFindsDateInFreeText(t *testing.T) {
	parsed := Parse("futsal tomorrow at 15:00", base)
	require.NotNil(t, parsed)
	assert.Equal(t, 11, parsed.Day())
	assert.Equal(t, 15, parsed.Hour())
}

func TestParseReturnsNilWithoutDate(t *testing.T) {
	assert.Nil(t, Parse("regular friendly game, bring water", base))
	assert.Nil(t, Parse("", base))
}

func TestParseRejectsPastDates(t *testing.T) {
	assert.Nil(t, Parse("yesterday at 15:00", base))
}

func TestParseRejectsFarFuture(t *testing.T) {
	assert.Nil(t, Parse("in 2 months", base))
}
