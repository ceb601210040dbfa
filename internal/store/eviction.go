package store

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const bytesPerMB = 1024 * 1024

// EvictionPolicy controls what EvictStale removes. A zero limit disables
// that criterion.
type EvictionPolicy struct {
	MaxAgeDays int     // Delete snapshots older than this (default: 30)
	MaxSizeMB  float64 // Delete oldest until under this (default: 500)
}

// DefaultEvictionPolicy returns the default eviction policy.
func DefaultEvictionPolicy() EvictionPolicy {
	return EvictionPolicy{
		MaxAgeDays: 30,
		MaxSizeMB:  500,
	}
}

// EvictionResult contains statistics about an eviction run.
type EvictionResult struct {
	Evicted     int     // Number of snapshot files removed
	FreedMB     float64 // Total size freed in MB
	RemainingMB float64 // Total size after eviction
	Duration    time.Duration
}

// EvictStale removes old snapshots from the store.
//
// Eviction criteria (in order):
//  1. Snapshots not written for more than MaxAgeDays
//  2. Oldest snapshots while the store exceeds MaxSizeMB (LRU)
//
// A snapshot removed here is simply recomputed on its next resolve, so a
// failure to remove one file is logged and skipped rather than aborting
// the run.
func (s *Store) EvictStale(policy EvictionPolicy) (*EvictionResult, error) {
	startTime := time.Now()

	candidates, totalBytes, err := s.buildEvictionCandidates()
	if err != nil {
		return nil, err
	}

	// Oldest first.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime.Before(candidates[j].modTime)
	})

	result := &EvictionResult{}
	remainingBytes := totalBytes
	maxBytes := int64(policy.MaxSizeMB * bytesPerMB)

	for _, candidate := range candidates {
		shouldEvict := false

		// Reason 1: snapshot too old
		if policy.MaxAgeDays > 0 {
			age := time.Since(candidate.modTime)
			if age > time.Duration(policy.MaxAgeDays)*24*time.Hour {
				shouldEvict = true
			}
		}

		// Reason 2: store too large (evict oldest)
		if !shouldEvict && maxBytes > 0 && remainingBytes > maxBytes {
			shouldEvict = true
		}

		if !shouldEvict {
			continue
		}

		if err := os.Remove(candidate.path); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: failed to evict snapshot %s: %v", candidate.path, err)
			continue
		}
		result.Evicted++
		result.FreedMB += float64(candidate.size) / bytesPerMB
		remainingBytes -= candidate.size
	}

	result.RemainingMB = float64(remainingBytes) / bytesPerMB
	result.Duration = time.Since(startTime)

	return result, nil
}

// evictionCandidate is one snapshot file that might be evicted.
type evictionCandidate struct {
	path    string
	modTime time.Time
	size    int64
}

func (s *Store) buildEvictionCandidates() ([]evictionCandidate, int64, error) {
	entries, err := s.snapshotEntries()
	if err != nil {
		return nil, 0, err
	}

	candidates := make([]evictionCandidate, 0, len(entries))
	var totalBytes int64
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			log.Printf("Warning: failed to stat snapshot %s: %v", entry.Name(), err)
			continue
		}
		candidates = append(candidates, evictionCandidate{
			path:    filepath.Join(s.dir, entry.Name()),
			modTime: info.ModTime(),
			size:    info.Size(),
		})
		totalBytes += info.Size()
	}
	return candidates, totalBytes, nil
}
