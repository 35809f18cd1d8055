package search

import (
	"bytes"
	"context"
	"regexp"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/binfiddle/binfiddle/debug"
)

// Match is a single pattern occurrence.
type Match struct {
	Offset int
	Data   []byte
}

// Config controls a search.
type Config struct {
	// All finds every occurrence instead of stopping at the first.
	All bool
	// NoOverlap skips occurrences overlapping an earlier match.
	NoOverlap bool
	// ChunkSize is the scan chunk size for parallel exact and mask
	// searches.
	ChunkSize int
}

// Opt configures a search.
type Opt func(*Config)

// All finds every occurrence.
func All() Opt {
	return func(c *Config) { c.All = true }
}

// NoOverlap skips occurrences overlapping an earlier match.
func NoOverlap() Opt {
	return func(c *Config) { c.NoOverlap = true }
}

// ChunkSize sets the scan chunk size for parallel searches.
func ChunkSize(n int) Opt {
	return func(c *Config) { c.ChunkSize = n }
}

const defaultChunkSize = 1 << 20

// Find searches data for p and returns matches in offset order.
func Find(data []byte, p *Pattern, opts ...Opt) ([]Match, error) {
	cfg := &Config{ChunkSize: defaultChunkSize}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = defaultChunkSize
	}
	var (
		matches []Match
		err     error
	)
	switch {
	case p.Regex != nil:
		matches = findRegex(data, p.Regex, cfg)
	case p.Exact != nil:
		matches, err = findScan(data, p.Len(), cfg, func(chunk []byte) []int {
			return scanExact(chunk, p.Exact)
		})
	case p.Mask != nil:
		matches, err = findScan(data, p.Len(), cfg, func(chunk []byte) []int {
			return scanMask(chunk, p.Mask)
		})
	default:
		return nil, ErrEmptyPattern
	}
	if err != nil {
		return nil, err
	}
	if debug.Search() {
		debug.Logf("search: %d bytes, %d matches", len(data), len(matches))
	}
	return matches, nil
}

// findScan runs scan over overlapping chunks of data in parallel and
// merges the per-chunk offsets.  Each chunk is extended by patLen-1
// bytes so matches spanning a boundary are found, and only matches
// starting inside the chunk's own region are kept.
func findScan(data []byte, patLen int, cfg *Config, scan func([]byte) []int) ([]Match, error) {
	if patLen == 0 {
		return nil, ErrEmptyPattern
	}
	if len(data) < patLen {
		return nil, nil
	}
	nchunks := (len(data) + cfg.ChunkSize - 1) / cfg.ChunkSize
	if nchunks == 1 {
		return filter(data, scan(data), patLen, cfg), nil
	}

	perChunk := make([][]int, nchunks)
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < nchunks; i++ {
		g.Go(func() error {
			start := i * cfg.ChunkSize
			end := min(start+cfg.ChunkSize, len(data))
			ext := min(end+patLen-1, len(data))
			var offs []int
			for _, rel := range scan(data[start:ext]) {
				abs := start + rel
				if abs < end {
					offs = append(offs, abs)
				}
			}
			perChunk[i] = offs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var all []int
	for _, offs := range perChunk {
		all = append(all, offs...)
	}
	sort.Ints(all)
	return filter(data, all, patLen, cfg), nil
}

// filter applies first-only and overlap rules to raw scan offsets.
func filter(data []byte, offs []int, patLen int, cfg *Config) []Match {
	var matches []Match
	lastEnd := -1
	for _, off := range offs {
		if cfg.NoOverlap && off < lastEnd {
			continue
		}
		matches = append(matches, Match{Offset: off, Data: data[off : off+patLen]})
		if !cfg.All {
			break
		}
		lastEnd = off + patLen
	}
	return matches
}

func findRegex(data []byte, re *regexp.Regexp, cfg *Config) []Match {
	if !cfg.All {
		loc := re.FindIndex(data)
		if loc == nil {
			return nil
		}
		return []Match{{Offset: loc[0], Data: data[loc[0]:loc[1]]}}
	}
	var matches []Match
	for _, loc := range re.FindAllIndex(data, -1) {
		matches = append(matches, Match{Offset: loc[0], Data: data[loc[0]:loc[1]]})
	}
	return matches
}

func scanExact(chunk, needle []byte) []int {
	var offs []int
	pos := 0
	for pos <= len(chunk)-len(needle) {
		rel := bytes.Index(chunk[pos:], needle)
		if rel < 0 {
			break
		}
		offs = append(offs, pos+rel)
		pos += rel + 1
	}
	return offs
}

func scanMask(chunk []byte, mask []MaskByte) []int {
	var offs []int
	for pos := 0; pos+len(mask) <= len(chunk); pos++ {
		if matchesMask(chunk[pos:pos+len(mask)], mask) {
			offs = append(offs, pos)
		}
	}
	return offs
}

func matchesMask(data []byte, mask []MaskByte) bool {
	for i, m := range mask {
		if !m.Wild && data[i] != m.Value {
			return false
		}
	}
	return true
}
