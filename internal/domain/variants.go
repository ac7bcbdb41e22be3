package domain

import (
	"encoding/json"
	"strings"
)

// Variant is the structured form of a single variant dimension,
// e.g. {Name: "Size", Options: ["S", "M", "L"]}.
type Variant struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// VariantsKind identifies which representation a Variants value holds.
type VariantsKind int

const (
	VariantsAbsent VariantsKind = iota
	VariantsStructured
	VariantsRaw
)

// Variants models the product variants field, which arrives in three shapes:
// absent, a structured list, or opaque serialized text. The store persists
// the canonical serialized form; callers resolve to the structured form via
// List so no other code branches on representation.
type Variants struct {
	kind VariantsKind
	list []Variant
	raw  string
}

// NoVariants returns the absent value. It is also the zero value.
func NoVariants() Variants {
	return Variants{}
}

// StructuredVariants builds a Variants value from an explicit list.
// An empty or nil list is treated as absent.
func StructuredVariants(list []Variant) Variants {
	if len(list) == 0 {
		return Variants{}
	}
	return Variants{kind: VariantsStructured, list: list}
}

// RawVariants builds a Variants value from opaque serialized text.
// Text that parses as a variant list is promoted to the structured form.
func RawVariants(text string) Variants {
	text = strings.TrimSpace(text)
	if text == "" || text == "null" {
		return Variants{}
	}
	if list, ok := parseVariantList([]byte(text)); ok {
		return StructuredVariants(list)
	}
	return Variants{kind: VariantsRaw, raw: text}
}

// Kind returns which representation this value holds.
func (v Variants) Kind() VariantsKind {
	return v.kind
}

// IsZero reports whether the field is absent.
func (v Variants) IsZero() bool {
	return v.kind == VariantsAbsent
}

// List resolves the value to its structured form. Raw text that does not
// parse as a variant list resolves to nil, same as absent.
func (v Variants) List() []Variant {
	switch v.kind {
	case VariantsStructured:
		return v.list
	case VariantsRaw:
		list, _ := parseVariantList([]byte(v.raw))
		return list
	default:
		return nil
	}
}

// StoreValue returns the canonical serialized form for persistence.
// Absent maps to nil so the column stays NULL.
func (v Variants) StoreValue() (*string, error) {
	switch v.kind {
	case VariantsStructured:
		b, err := json.Marshal(v.list)
		if err != nil {
			return nil, err
		}
		s := string(b)
		return &s, nil
	case VariantsRaw:
		s := v.raw
		return &s, nil
	default:
		return nil, nil
	}
}

// VariantsFromStore rebuilds a Variants value from a persisted column.
func VariantsFromStore(s *string) Variants {
	if s == nil {
		return Variants{}
	}
	return RawVariants(*s)
}

// MarshalJSON emits the resolved structured list when one is available,
// the original JSON for opaque-but-valid payloads, and a JSON string for
// anything else. Absent emits null.
func (v Variants) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case VariantsStructured:
		return json.Marshal(v.list)
	case VariantsRaw:
		if json.Valid([]byte(v.raw)) {
			return []byte(v.raw), nil
		}
		return json.Marshal(v.raw)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, a variant list, a serialized string, or any
// other JSON value (kept opaque).
func (v *Variants) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*v = Variants{}
		return nil
	}

	if list, ok := parseVariantList(data); ok {
		*v = StructuredVariants(list)
		return nil
	}

	// A JSON string holds serialized text, everything else is kept as-is.
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*v = RawVariants(text)
		return nil
	}

	*v = Variants{kind: VariantsRaw, raw: trimmed}
	return nil
}

// parseVariantList reports whether data is a non-empty JSON array where
// every element carries a name.
func parseVariantList(data []byte) ([]Variant, bool) {
	var list []Variant
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, false
	}
	if len(list) == 0 {
		return nil, false
	}
	for _, item := range list {
		if item.Name == "" {
			return nil, false
		}
	}
	return list, true
}
