package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Diff   bool
	Patch  bool
	Search bool
}

var d *debug

func init() {
	d = &debug{}
	d.Diff = boolEnv("BINFIDDLE_DEBUG_DIFF")
	d.Patch = boolEnv("BINFIDDLE_DEBUG_PATCH")
	d.Search = boolEnv("BINFIDDLE_DEBUG_SEARCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Diff() bool {
	return d.Diff
}
func Patch() bool {
	return d.Patch
}
func Search() bool {
	return d.Search
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
