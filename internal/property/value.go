package property

import (
	"math"
	"slices"
)

// Kind identifies which editing control a value gets.
type Kind int

const (
	KindUnsupported Kind = iota
	KindNumber
	KindText
	KindBoolean
	KindOptionList
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBoolean:
		return "boolean"
	case KindOptionList:
		return "options"
	default:
		return "unsupported"
	}
}

// Value is a classified dynamic value. Only the field matching Kind is set.
type Value struct {
	Kind    Kind
	Number  float64
	Text    string
	Bool    bool
	Options []string
}

// Classify maps a dynamic value onto a Value.
func Classify(v any) Value {
	switch x := v.(type) {
	case float64:
		return Value{Kind: KindNumber, Number: x}
	case float32:
		return Value{Kind: KindNumber, Number: float64(x)}
	case int:
		return Value{Kind: KindNumber, Number: float64(x)}
	case int8:
		return Value{Kind: KindNumber, Number: float64(x)}
	case int16:
		return Value{Kind: KindNumber, Number: float64(x)}
	case int32:
		return Value{Kind: KindNumber, Number: float64(x)}
	case int64:
		return Value{Kind: KindNumber, Number: float64(x)}
	case uint:
		return Value{Kind: KindNumber, Number: float64(x)}
	case uint8:
		return Value{Kind: KindNumber, Number: float64(x)}
	case uint16:
		return Value{Kind: KindNumber, Number: float64(x)}
	case uint32:
		return Value{Kind: KindNumber, Number: float64(x)}
	case uint64:
		return Value{Kind: KindNumber, Number: float64(x)}
	case string:
		return Value{Kind: KindText, Text: x}
	case bool:
		return Value{Kind: KindBoolean, Bool: x}
	case []string:
		opts := make([]string, len(x))
		copy(opts, x)
		return Value{Kind: KindOptionList, Options: opts}
	case []any:
		opts := make([]string, 0, len(x))
		for _, e := range x {
			s, ok := e.(string)
			if !ok {
				return Value{Kind: KindUnsupported}
			}
			opts = append(opts, s)
		}
		return Value{Kind: KindOptionList, Options: opts}
	}
	return Value{Kind: KindUnsupported}
}

// Raw returns the host-facing form of the value, or nil if unsupported.
func (v Value) Raw() any {
	switch v.Kind {
	case KindNumber:
		return v.Number
	case KindText:
		return v.Text
	case KindBoolean:
		return v.Bool
	case KindOptionList:
		opts := make([]string, len(v.Options))
		copy(opts, v.Options)
		return opts
	}
	return nil
}

// Equal reports whether v and o would build the same control. NaN equals
// NaN so an invalid number re-supplied by a host is not a change.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.Number == o.Number || (math.IsNaN(v.Number) && math.IsNaN(o.Number))
	case KindText:
		return v.Text == o.Text
	case KindBoolean:
		return v.Bool == o.Bool
	case KindOptionList:
		return slices.Equal(v.Options, o.Options)
	}
	return true
}
