package render

import (
	"strings"

	"github.com/fatih/color"
)

// ColorAttr identifies a colorable element of diff output.
type ColorAttr int

const (
	OffsetColor ColorAttr = iota
	OldColor
	NewColor
	EOFColor
	HunkColor
	MarkerColor
)

// Colors maps diff output elements to sprintf-style color functions.  A
// nil *Colors renders plain text.
type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[ColorAttr]func(string, ...any) string{},
	}
	colors.Map[OffsetColor] = color.CyanString
	colors.Map[OldColor] = color.New(color.FgRed, color.Bold).SprintfFunc()
	colors.Map[NewColor] = color.New(color.FgGreen, color.Bold).SprintfFunc()
	colors.Map[EOFColor] = color.New(color.Faint).SprintfFunc()
	colors.Map[HunkColor] = color.MagentaString
	colors.Map[MarkerColor] = color.New(color.FgYellow, color.Bold).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(a ColorAttr, s string) string {
	if c == nil {
		return s
	}
	return c.Get(a)(s)
}

func (c *Colors) Get(a ColorAttr) func(string, ...any) string {
	f := c.Map[a]
	if f == nil {
		return c.Default
	}
	return f
}
