// Package structdef parses binary data according to YAML structure
// templates.
//
// A template names a structure, fixes its byte order, and lists fields
// with an offset, size, and type.  Fields may carry an assert (expected
// raw bytes as hex), a check (a boolean expression over the decoded
// value), an enum mapping for integer values, and a description.
//
//	name: elf_header
//	endian: little
//	fields:
//	  - name: magic
//	    offset: 0x00
//	    size: 4
//	    type: hex_string
//	    assert: "7f454c46"
//	  - name: version
//	    offset: 0x04
//	    size: 2
//	    type: u16
//	    check: "value > 0"
//	    enum:
//	      1: v1.0
//	      2: v2.0
//
// # Usage
//
//	tpl, err := structdef.ParseTemplate(yamlBytes)
//	if err != nil { ... }
//	res, err := structdef.Apply(data, tpl)
//
// # Related Packages
//
//   - [github.com/binfiddle/binfiddle/parseutil] parses numeric offsets.
package structdef

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/binfiddle/binfiddle/parseutil"
)

var ErrTemplate = errors.New("invalid template")

// Endian is the byte order for multi-byte fields.
type Endian string

const (
	Little Endian = "little"
	Big    Endian = "big"
)

// ParseEndian parses an endianness name.
func ParseEndian(s string) (Endian, error) {
	switch strings.ToLower(s) {
	case "", "little", "le", "little-endian", "littleendian":
		return Little, nil
	case "big", "be", "big-endian", "bigendian":
		return Big, nil
	default:
		return "", fmt.Errorf("%w: endianness %q, expected little or big", ErrTemplate, s)
	}
}

// FieldType is the interpretation of a field's bytes.
type FieldType string

const (
	U8        FieldType = "u8"
	U16       FieldType = "u16"
	U32       FieldType = "u32"
	U64       FieldType = "u64"
	I8        FieldType = "i8"
	I16       FieldType = "i16"
	I32       FieldType = "i32"
	I64       FieldType = "i64"
	HexString FieldType = "hex_string"
	String    FieldType = "string"
	Bytes     FieldType = "bytes"
)

// ParseFieldType parses a field type name.
func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToLower(s) {
	case "u8", "uint8", "byte":
		return U8, nil
	case "u16", "uint16", "word", "ushort":
		return U16, nil
	case "u32", "uint32", "dword", "uint":
		return U32, nil
	case "u64", "uint64", "qword", "ulong":
		return U64, nil
	case "i8", "int8", "sbyte":
		return I8, nil
	case "i16", "int16", "short":
		return I16, nil
	case "i32", "int32", "int":
		return I32, nil
	case "i64", "int64", "long":
		return I64, nil
	case "hex_string", "hexstring", "hex":
		return HexString, nil
	case "string", "str", "ascii", "utf8":
		return String, nil
	case "bytes", "raw", "data", "":
		return Bytes, nil
	default:
		return "", fmt.Errorf("%w: field type %q", ErrTemplate, s)
	}
}

// FixedSize returns the required byte size for the type, or 0 for
// variable size types.
func (t FieldType) FixedSize() int {
	switch t {
	case U8, I8:
		return 1
	case U16, I16:
		return 2
	case U32, I32:
		return 4
	case U64, I64:
		return 8
	}
	return 0
}

// Offset is a byte offset that unmarshals from either a YAML integer or
// a numeric string such as "0x40".
type Offset int

func (o *Offset) UnmarshalYAML(b []byte) error {
	var n int
	if err := yaml.Unmarshal(b, &n); err == nil {
		*o = Offset(n)
		return nil
	}
	var s string
	if err := yaml.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: offset %s", ErrTemplate, string(b))
	}
	v, err := parseutil.ParseNumber(s)
	if err != nil {
		return fmt.Errorf("%w: offset %q", ErrTemplate, s)
	}
	*o = Offset(v)
	return nil
}

// Field is one field definition of a template.
type Field struct {
	Name        string           `yaml:"name"`
	Offset      Offset           `yaml:"offset"`
	Size        int              `yaml:"size"`
	Type        FieldType        `yaml:"type"`
	Assert      string           `yaml:"assert"`
	Check       string           `yaml:"check"`
	Enum        map[int64]string `yaml:"enum"`
	Description string           `yaml:"description"`
}

// Template is a complete structure definition.
type Template struct {
	Name        string  `yaml:"name"`
	Endian      Endian  `yaml:"endian"`
	Description string  `yaml:"description"`
	Fields      []Field `yaml:"fields"`
}

// ParseTemplate unmarshals and validates a YAML template.
func ParseTemplate(data []byte) (*Template, error) {
	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Validate checks the template for consistency and normalizes the
// endianness and field types.
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: missing name", ErrTemplate)
	}
	endian, err := ParseEndian(string(t.Endian))
	if err != nil {
		return err
	}
	t.Endian = endian
	seen := map[string]bool{}
	for i := range t.Fields {
		f := &t.Fields[i]
		if f.Name == "" {
			return fmt.Errorf("%w: field %d has no name", ErrTemplate, i)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: duplicate field name %q", ErrTemplate, f.Name)
		}
		seen[f.Name] = true
		typ, err := ParseFieldType(string(f.Type))
		if err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		f.Type = typ
		if f.Size <= 0 {
			return fmt.Errorf("%w: field %q has size %d", ErrTemplate, f.Name, f.Size)
		}
		if fixed := typ.FixedSize(); fixed != 0 && f.Size != fixed {
			return fmt.Errorf("%w: field %q has type %s which requires %d bytes, but size is %d",
				ErrTemplate, f.Name, typ, fixed, f.Size)
		}
	}
	return nil
}

// TotalSize returns the number of bytes the template covers.
func (t *Template) TotalSize() int {
	size := 0
	for _, f := range t.Fields {
		size = max(size, int(f.Offset)+f.Size)
	}
	return size
}

// FieldByName returns the named field definition, or nil.
func (t *Template) FieldByName(name string) *Field {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}
