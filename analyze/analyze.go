// Package analyze computes statistics over binary data.
//
// Three analyses are available.  Entropy measures Shannon entropy in
// bits per byte, from 0 for uniform data up to 8 for uniformly random
// bytes.  Histogram counts byte value frequencies.  IC computes the
// index of coincidence, which is near 1/256 for random data and near
// 0.0667 for English text.
//
// Entropy and IC can be computed per block to locate compressed or
// encrypted regions inside a file.
//
// # Usage
//
//	results := analyze.BlockEntropy(data, 256)
//	s, err := analyze.FormatEntropy(results, 256, analyze.OutputHuman)
package analyze

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Kind selects the analysis to perform.
type Kind int

const (
	KindEntropy Kind = iota
	KindHistogram
	KindIC
)

// ParseKind parses an analysis kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "entropy":
		return KindEntropy, nil
	case "histogram", "hist":
		return KindHistogram, nil
	case "ic", "ioc", "index-of-coincidence":
		return KindIC, nil
	default:
		return 0, fmt.Errorf("unknown analysis type %q, valid: entropy, histogram, ic", s)
	}
}

func (k Kind) String() string {
	switch k {
	case KindEntropy:
		return "entropy"
	case KindHistogram:
		return "histogram"
	case KindIC:
		return "ic"
	}
	return fmt.Sprintf("<err: %d is not an analysis kind>", int(k))
}

// BlockStat is the statistic value for one block of data.
type BlockStat struct {
	Offset int
	Size   int
	Value  float64
}

// Frequency is one byte value's occurrence count.
type Frequency struct {
	Byte       byte
	Count      int
	Percentage float64
}

// Entropy returns the Shannon entropy of data in bits per byte.
func Entropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	var freq [256]int
	for _, b := range data {
		freq[b]++
	}
	n := float64(len(data))
	var h float64
	for _, c := range freq {
		if c > 0 {
			p := float64(c) / n
			h -= p * math.Log2(p)
		}
	}
	return h
}

// IC returns the index of coincidence of data.
func IC(data []byte) float64 {
	if len(data) < 2 {
		return 0
	}
	var freq [256]int
	for _, b := range data {
		freq[b]++
	}
	n := float64(len(data))
	var num float64
	for _, c := range freq {
		if c > 1 {
			num += float64(c) * float64(c-1)
		}
	}
	return num / (n * (n - 1))
}

// Histogram returns frequencies of the byte values occurring in data,
// most frequent first.
func Histogram(data []byte) []Frequency {
	if len(data) == 0 {
		return nil
	}
	var freq [256]int
	for _, b := range data {
		freq[b]++
	}
	n := float64(len(data))
	var hist []Frequency
	for v, c := range freq {
		if c > 0 {
			hist = append(hist, Frequency{
				Byte:       byte(v),
				Count:      c,
				Percentage: float64(c) / n * 100,
			})
		}
	}
	sort.SliceStable(hist, func(i, j int) bool { return hist[i].Count > hist[j].Count })
	return hist
}

// BlockEntropy computes entropy per block.  A blockSize of 0 analyzes
// the whole input as one block.
func BlockEntropy(data []byte, blockSize int) []BlockStat {
	return blocks(data, blockSize, Entropy)
}

// BlockIC computes the index of coincidence per block.  A blockSize of 0
// analyzes the whole input as one block.
func BlockIC(data []byte, blockSize int) []BlockStat {
	return blocks(data, blockSize, IC)
}

func blocks(data []byte, blockSize int, fn func([]byte) float64) []BlockStat {
	if blockSize <= 0 {
		blockSize = len(data)
	}
	if len(data) == 0 {
		return []BlockStat{{}}
	}
	var stats []BlockStat
	for off := 0; off < len(data); off += blockSize {
		end := min(off+blockSize, len(data))
		stats = append(stats, BlockStat{
			Offset: off,
			Size:   end - off,
			Value:  fn(data[off:end]),
		})
	}
	return stats
}

// InterpretEntropy describes an entropy value.
func InterpretEntropy(h float64) string {
	switch {
	case h < 1:
		return "highly repetitive/uniform"
	case h < 4:
		return "structured data/text/code"
	case h < 6:
		return "mixed content"
	case h < 7.5:
		return "likely compressed"
	default:
		return "encrypted or random"
	}
}

// InterpretIC describes an index of coincidence value.
func InterpretIC(ic float64) string {
	switch {
	case ic < 0.006:
		return "random/encrypted"
	case ic < 0.02:
		return "possibly compressed"
	case ic < 0.05:
		return "structured binary"
	default:
		return "text-like patterns"
	}
}
