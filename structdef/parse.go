package structdef

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
)

var ErrBounds = errors.New("field out of bounds")

// FieldValue is one decoded field.
type FieldValue struct {
	Name        string `json:"name" yaml:"name"`
	Offset      int    `json:"offset" yaml:"offset"`
	Size        int    `json:"size" yaml:"size"`
	Raw         []byte `json:"-" yaml:"-"`
	Value       string `json:"value" yaml:"value"`
	Numeric     *int64 `json:"numeric_value,omitempty" yaml:"numeric_value,omitempty"`
	EnumName    string `json:"enum_name,omitempty" yaml:"enum_name,omitempty"`
	AssertOK    *bool  `json:"assertion_passed,omitempty" yaml:"assertion_passed,omitempty"`
	CheckOK     *bool  `json:"check_passed,omitempty" yaml:"check_passed,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Result is a fully decoded structure.
type Result struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []FieldValue `json:"fields" yaml:"fields"`
	AllPassed   bool         `json:"all_assertions_passed" yaml:"all_assertions_passed"`
}

// ApplyConfig controls structure decoding.
type ApplyConfig struct {
	// Only decode the named fields.  Empty means all fields.
	Get []string
}

// ApplyOpt configures Apply.
type ApplyOpt func(*ApplyConfig)

// Get restricts decoding to the named fields.
func Get(names ...string) ApplyOpt {
	return func(c *ApplyConfig) { c.Get = append(c.Get, names...) }
}

// Apply decodes data according to the template.
func Apply(data []byte, tpl *Template, opts ...ApplyOpt) (*Result, error) {
	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	cfg := &ApplyConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	res := &Result{
		Name:        tpl.Name,
		Description: tpl.Description,
		AllPassed:   true,
	}
	for i := range tpl.Fields {
		f := &tpl.Fields[i]
		if len(cfg.Get) > 0 && !contains(cfg.Get, f.Name) {
			continue
		}
		fv, err := decodeField(data, f, tpl.Endian)
		if err != nil {
			return nil, err
		}
		if (fv.AssertOK != nil && !*fv.AssertOK) || (fv.CheckOK != nil && !*fv.CheckOK) {
			res.AllPassed = false
		}
		res.Fields = append(res.Fields, *fv)
	}
	return res, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func decodeField(data []byte, f *Field, endian Endian) (*FieldValue, error) {
	off := int(f.Offset)
	if off+f.Size > len(data) {
		return nil, fmt.Errorf("%w: field %q at offset 0x%x with size %d exceeds data length %d",
			ErrBounds, f.Name, off, f.Size, len(data))
	}
	raw := bytes.Clone(data[off : off+f.Size])

	value, numeric := interpret(raw, f.Type, endian)

	fv := &FieldValue{
		Name:        f.Name,
		Offset:      off,
		Size:        f.Size,
		Raw:         raw,
		Value:       value,
		Numeric:     numeric,
		Description: f.Description,
	}

	if len(f.Enum) > 0 && numeric != nil {
		if name, ok := f.Enum[*numeric]; ok {
			fv.EnumName = name
			fv.Value = fmt.Sprintf("%s (%s)", value, name)
		}
	}

	if f.Assert != "" {
		ok := assertMatches(f.Assert, raw)
		fv.AssertOK = &ok
	}

	if f.Check != "" {
		ok, err := runCheck(f.Check, fv)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		fv.CheckOK = &ok
	}
	return fv, nil
}

func interpret(raw []byte, typ FieldType, endian Endian) (string, *int64) {
	var order binary.ByteOrder = binary.LittleEndian
	if endian == Big {
		order = binary.BigEndian
	}
	num := func(v int64) (string, *int64) {
		return strconv.FormatInt(v, 10), &v
	}
	switch typ {
	case U8:
		return num(int64(raw[0]))
	case I8:
		return num(int64(int8(raw[0])))
	case U16:
		return num(int64(order.Uint16(raw)))
	case I16:
		return num(int64(int16(order.Uint16(raw))))
	case U32:
		return num(int64(order.Uint32(raw)))
	case I32:
		return num(int64(int32(order.Uint32(raw))))
	case U64:
		v := order.Uint64(raw)
		s := strconv.FormatUint(v, 10)
		if v <= 1<<63-1 {
			n := int64(v)
			return s, &n
		}
		return s, nil
	case I64:
		return num(int64(order.Uint64(raw)))
	case String:
		end := bytes.IndexByte(raw, 0)
		if end < 0 {
			end = len(raw)
		}
		return strconv.Quote(string(raw[:end])), nil
	}
	// hex_string and bytes
	parts := make([]string, len(raw))
	for i, b := range raw {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " "), nil
}

func assertMatches(assert string, raw []byte) bool {
	s := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(assert), "0x"), "0X")
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
	expected, err := hex.DecodeString(s)
	if err != nil {
		return false
	}
	return bytes.Equal(expected, raw)
}

// runCheck evaluates a boolean expression with the decoded value in
// scope.  Numeric fields expose value as an integer, other fields as
// their string form.
func runCheck(src string, fv *FieldValue) (bool, error) {
	env := map[string]any{
		"offset": fv.Offset,
		"size":   fv.Size,
	}
	if fv.Numeric != nil {
		env["value"] = *fv.Numeric
	} else {
		env["value"] = fv.Value
	}
	prog, err := expr.Compile(src, expr.Env(env), expr.AsBool())
	if err != nil {
		return false, fmt.Errorf("check %q: %v", src, err)
	}
	out, err := expr.Run(prog, env)
	if err != nil {
		return false, fmt.Errorf("check %q: %v", src, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("check %q: result is not a boolean", src)
	}
	return ok, nil
}
