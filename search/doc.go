// Package search finds byte patterns in binary data.
//
// Patterns come in three flavors.  Exact patterns match a literal byte
// sequence, regex patterns use [regexp] syntax applied to raw bytes, and
// mask patterns are hex sequences with "??" wildcard bytes.
//
// Exact and mask scans over large inputs are split into overlapping
// chunks and run in parallel.
//
// # Usage
//
//	p, err := search.ParsePattern("de ?? be ef", "mask")
//	if err != nil { ... }
//	matches, err := search.Find(data, p, search.All())
//
// # Related Packages
//
//   - [github.com/binfiddle/binfiddle/parseutil] parses the textual
//     byte forms exact patterns are written in.
//   - [github.com/binfiddle/binfiddle/display] formats matches for
//     output.
package search
