// Package parseutil parses the textual inputs the toolkit accepts on the
// command line: byte ranges, numbers in several bases, and raw data in
// hex, decimal, octal, binary or ascii form.
//
// # Usage
//
//	start, end, err := parseutil.ParseRange("0x100..0x200", buf.Len())
//	data, err := parseutil.ParseInput("DE AD BE EF", "hex")
//	mask, err := parseutil.ParseIgnoreRanges("0x0..0x10,0x100..0x200")
package parseutil
