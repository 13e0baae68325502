package model

import (
	"fmt"
	"strconv"
	"strings"
)

type SpecKind uint8

const (
	SpecKindString SpecKind = iota + 1
	SpecKindNumber
	SpecKindBool
)

func (k SpecKind) String() string {
	switch k {
	case SpecKindString:
		return "string"
	case SpecKindNumber:
		return "number"
	case SpecKindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// SpecValue is one scalar of a part's spec bag.
type SpecValue struct {
	kind SpecKind
	str  string
	num  float64
	b    bool
}

func StringSpec(v string) SpecValue  { return SpecValue{kind: SpecKindString, str: v} }
func NumberSpec(v float64) SpecValue { return SpecValue{kind: SpecKindNumber, num: v} }
func BoolSpec(v bool) SpecValue      { return SpecValue{kind: SpecKindBool, b: v} }

// SpecFromAny converts a decoded scalar (YAML, JSON, BSON) into a SpecValue.
func SpecFromAny(v any) (SpecValue, error) {
	switch vv := v.(type) {
	case string:
		return StringSpec(vv), nil
	case bool:
		return BoolSpec(vv), nil
	case float64:
		return NumberSpec(vv), nil
	case float32:
		return NumberSpec(float64(vv)), nil
	case int:
		return NumberSpec(float64(vv)), nil
	case int32:
		return NumberSpec(float64(vv)), nil
	case int64:
		return NumberSpec(float64(vv)), nil
	case uint64:
		return NumberSpec(float64(vv)), nil
	default:
		return SpecValue{}, fmt.Errorf("%w: unsupported value type %T", ErrInvalidSpec, v)
	}
}

func (v SpecValue) Kind() SpecKind { return v.kind }

func (v SpecValue) IsZero() bool { return v.kind == 0 }

func (v SpecValue) AsString() (string, bool) {
	return v.str, v.kind == SpecKindString
}

// AsNumber returns numbers as-is and strings that parse as a float.
func (v SpecValue) AsNumber() (float64, bool) {
	switch v.kind {
	case SpecKindNumber:
		return v.num, true
	case SpecKindString:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func (v SpecValue) AsBool() (bool, bool) {
	return v.b, v.kind == SpecKindBool
}

// Text is the canonical string form, used for checkbox membership and messages.
func (v SpecValue) Text() string {
	switch v.kind {
	case SpecKindString:
		return v.str
	case SpecKindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case SpecKindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Value unwraps the scalar for encoders.
func (v SpecValue) Value() any {
	switch v.kind {
	case SpecKindString:
		return v.str
	case SpecKindNumber:
		return v.num
	case SpecKindBool:
		return v.b
	default:
		return nil
	}
}

func (v SpecValue) Equal(o SpecValue) bool {
	return v == o
}

// Specs is a category-scoped spec bag. A missing key is a legal state.
type Specs map[string]SpecValue

func (s Specs) Get(key string) (SpecValue, bool) {
	v, ok := s[key]
	return v, ok && !v.IsZero()
}

// String returns the value under key when it is a string.
func (s Specs) String(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Number returns the numeric value under key, see SpecValue.AsNumber.
func (s Specs) Number(key string) (float64, bool) {
	v, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	return v.AsNumber()
}

func (s Specs) Clone() Specs {
	if s == nil {
		return nil
	}
	out := make(Specs, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
