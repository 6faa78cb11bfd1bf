package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnknownTimezone(t *testing.T) {
	_, err := New("Not/AZone")
	assert.Error(t, err)
}

func TestStampLayout(t *testing.T) {
	c, err := New("UTC")
	require.NoError(t, err)

	stamp := c.Stamp()
	parsed, err := time.Parse(TimeLayout, stamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), parsed, 5*time.Second)
}

func TestTodayMatchesStampPrefix(t *testing.T) {
	c, err := New("UTC")
	require.NoError(t, err)

	assert.Equal(t, c.Today(), c.Stamp()[:len(DateLayout)])
}
