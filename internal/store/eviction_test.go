package store

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for store eviction:
//
// 1. Snapshots older than MaxAgeDays are evicted; fresh ones survive
// 2. When the store exceeds MaxSizeMB, the oldest snapshots go first
//    until the store fits
// 3. Zero limits disable the corresponding criterion
// 4. The result reports counts and sizes

// writeAged writes a snapshot and backdates its modification time.
func writeAged(t *testing.T, s *Store, identifier string, size int, age time.Duration) {
	t.Helper()
	require.NoError(t, s.Write(identifier, make([]byte, size)))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(s.Path(identifier), stamp, stamp))
}

func TestEvictStaleByAge(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	writeAged(t, s, `Acme\Old`, 100, 40*24*time.Hour)
	writeAged(t, s, `Acme\Older`, 100, 90*24*time.Hour)
	writeAged(t, s, `Acme\Fresh`, 100, time.Hour)

	result, err := s.EvictStale(EvictionPolicy{MaxAgeDays: 30})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Evicted)

	_, found, err := s.Read(`Acme\Fresh`)
	require.NoError(t, err)
	assert.True(t, found, "fresh snapshot must survive")

	_, found, err = s.Read(`Acme\Old`)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = s.Read(`Acme\Older`)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEvictStaleBySize(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	const fileSize = 1024
	writeAged(t, s, `Acme\Oldest`, fileSize, 3*time.Hour)
	writeAged(t, s, `Acme\Middle`, fileSize, 2*time.Hour)
	writeAged(t, s, `Acme\Newest`, fileSize, 1*time.Hour)

	// Room for two files: the oldest one must go.
	policy := EvictionPolicy{MaxSizeMB: float64(2*fileSize) / bytesPerMB}
	result, err := s.EvictStale(policy)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Evicted)
	assert.InDelta(t, float64(fileSize)/bytesPerMB, result.FreedMB, 1e-9)
	assert.InDelta(t, float64(2*fileSize)/bytesPerMB, result.RemainingMB, 1e-9)

	_, found, err := s.Read(`Acme\Oldest`)
	require.NoError(t, err)
	assert.False(t, found, "oldest snapshot goes first")

	_, found, err = s.Read(`Acme\Middle`)
	require.NoError(t, err)
	assert.True(t, found)

	_, found, err = s.Read(`Acme\Newest`)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestEvictStaleDisabled(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	writeAged(t, s, `Acme\Ancient`, 4096, 365*24*time.Hour)

	result, err := s.EvictStale(EvictionPolicy{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Evicted)

	_, found, err := s.Read(`Acme\Ancient`)
	require.NoError(t, err)
	assert.True(t, found, "zero limits evict nothing")
}

func TestEvictStaleEmptyStore(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	result, err := s.EvictStale(DefaultEvictionPolicy())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Evicted)
	assert.Zero(t, result.FreedMB)
	assert.Zero(t, result.RemainingMB)
	assert.GreaterOrEqual(t, result.Duration, time.Duration(0))
}
