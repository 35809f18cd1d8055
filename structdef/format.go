package structdef

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// OutputFormat selects how decoded structures are rendered.
type OutputFormat int

const (
	OutputHuman OutputFormat = iota
	OutputJSON
	OutputYAML
)

// ParseOutputFormat parses an output format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "human", "table", "text", "":
		return OutputHuman, nil
	case "json":
		return OutputJSON, nil
	case "yaml", "yml":
		return OutputYAML, nil
	default:
		return 0, fmt.Errorf("invalid output format %q, expected human, json, or yaml", s)
	}
}

// Format renders a decoded structure.
func Format(res *Result, out OutputFormat) (string, error) {
	switch out {
	case OutputHuman:
		return formatHuman(res), nil
	case OutputJSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case OutputYAML:
		data, err := yaml.Marshal(res)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("unknown output format %d", int(out))
}

func formatHuman(res *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Structure: %s\n", res.Name)
	if res.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", res.Description)
	}
	if res.AllPassed {
		b.WriteString("Assertions: all passed\n\n")
	} else {
		b.WriteString("Assertions: SOME FAILED\n\n")
	}

	nameW, valueW := 4, 5
	for _, f := range res.Fields {
		nameW = max(nameW, len(f.Name))
		valueW = max(valueW, len(f.Value))
	}
	fmt.Fprintf(&b, "%-*s  %10s  %4s  %-*s  Status\n", nameW, "Name", "Offset", "Size", valueW, "Value")
	fmt.Fprintf(&b, "%s  %s  %s  %s  ------\n",
		strings.Repeat("-", nameW), strings.Repeat("-", 10),
		strings.Repeat("-", 4), strings.Repeat("-", valueW))
	for _, f := range res.Fields {
		status := ""
		switch {
		case f.AssertOK != nil && !*f.AssertOK, f.CheckOK != nil && !*f.CheckOK:
			status = "FAIL"
		case f.AssertOK != nil || f.CheckOK != nil:
			status = "ok"
		}
		fmt.Fprintf(&b, "%-*s  0x%08x  %4d  %-*s  %s\n", nameW, f.Name, f.Offset, f.Size, valueW, f.Value, status)
	}
	return b.String()
}

// ListFields describes a template without decoding any data.
func ListFields(tpl *Template) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Template: %s\n", tpl.Name)
	if tpl.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", tpl.Description)
	}
	fmt.Fprintf(&b, "Endianness: %s\n", tpl.Endian)
	fmt.Fprintf(&b, "Total size: %d bytes\n", tpl.TotalSize())
	fmt.Fprintf(&b, "Fields: %d\n\n", len(tpl.Fields))

	nameW := 4
	for _, f := range tpl.Fields {
		nameW = max(nameW, len(f.Name))
	}
	fmt.Fprintf(&b, "%-*s  %10s  %4s  %s\n", nameW, "Name", "Offset", "Size", "Type")
	for _, f := range tpl.Fields {
		fmt.Fprintf(&b, "%-*s  0x%08x  %4d  %s\n", nameW, f.Name, int(f.Offset), f.Size, f.Type)
	}
	return b.String()
}
