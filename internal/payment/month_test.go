package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthKey(t *testing.T) {
	key, err := MonthKey(2025, 9)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-01", key)

	key, err = MonthKey(2025, 0)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", key)

	_, err = MonthKey(2025, 12)
	assert.Error(t, err)
	_, err = MonthKey(2025, -1)
	assert.Error(t, err)
	_, err = MonthKey(0, 3)
	assert.Error(t, err)
}

func TestMonthIndex(t *testing.T) {
	idx, err := MonthIndex("2025-10-01")
	require.NoError(t, err)
	assert.Equal(t, 9, idx)

	idx, err = MonthIndex("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = MonthIndex("2024-12-01")
	require.NoError(t, err)
	assert.Equal(t, 11, idx)

	for _, bad := range []string{"", "2025-13-01", "2025-00-01", "2025/10/01", "october", "2025-1-01"} {
		_, err = MonthIndex(bad)
		assert.Error(t, err, bad)
	}
}

func TestMonthIndex_RoundTrip(t *testing.T) {
	for i := 0; i < 12; i++ {
		key, err := MonthKey(2025, i)
		require.NoError(t, err)
		idx, err := MonthIndex(key)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
}

func TestMonthYear(t *testing.T) {
	year, err := MonthYear("2025-10-01")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)

	_, err = MonthYear("25-10-01")
	assert.Error(t, err)
}
