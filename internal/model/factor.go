// Package model defines the core data shapes of the explanation engine:
// context factors, reasoning steps, the immutable Explanation record, and
// the typed error taxonomy shared by all components.
package model

import (
	"encoding/json"
	"fmt"
)

// CategoryGeneral is the category assigned to factors without an explicit one.
const CategoryGeneral = "general"

// maxTextLen bounds string factor values. Longer strings are documents,
// not signals, and would make serialized records unwieldy.
const maxTextLen = 1024

// Factor is one named, categorized input signal with a scalar value.
// Immutable once part of a Context.
type Factor struct {
	// Name identifies the factor. Unique within a Context.
	Name string `json:"name"`
	// Category groups factors for priors and distribution analytics.
	Category string `json:"category"`
	// Value is a scalar: numeric, boolean, or short text.
	Value interface{} `json:"value"`
	// WeightHint, when set, overrides the influence heuristic for this factor.
	WeightHint *float64 `json:"weight_hint,omitempty"`
}

// Context is an ordered set of factors considered for one decision.
// Factor order is preserved as supplied; names are unique.
type Context struct {
	factors []Factor
	index   map[string]int
}

// NewContext constructs a Context from the given factors. Supplied order is
// preserved. Factors without a category are assigned CategoryGeneral.
//
// Returns DuplicateFactorError if a name repeats and InvalidFactorError if
// a value is outside the supported scalar union.
func NewContext(factors []Factor) (*Context, error) {
	c := &Context{
		factors: make([]Factor, 0, len(factors)),
		index:   make(map[string]int, len(factors)),
	}

	for _, f := range factors {
		if f.Name == "" {
			return nil, NewInvalidFactorError(f.Name, "name must not be empty")
		}
		if _, exists := c.index[f.Name]; exists {
			return nil, &DuplicateFactorError{Name: f.Name}
		}
		if err := ValidateScalar(f.Value); err != nil {
			return nil, NewInvalidFactorError(f.Name, "%v", err)
		}
		if f.Category == "" {
			f.Category = CategoryGeneral
		}
		if f.WeightHint != nil {
			hint := *f.WeightHint
			f.WeightHint = &hint
		}
		c.index[f.Name] = len(c.factors)
		c.factors = append(c.factors, f)
	}

	return c, nil
}

// EmptyContext returns a Context with no factors.
func EmptyContext() *Context {
	return &Context{index: make(map[string]int)}
}

// Len returns the number of factors.
func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return len(c.factors)
}

// Factors returns a copy of the factors in their original order.
func (c *Context) Factors() []Factor {
	if c == nil {
		return nil
	}
	out := make([]Factor, len(c.factors))
	copy(out, c.factors)
	return out
}

// Factor returns the named factor and whether it is present.
func (c *Context) Factor(name string) (Factor, bool) {
	if c == nil {
		return Factor{}, false
	}
	i, ok := c.index[name]
	if !ok {
		return Factor{}, false
	}
	return c.factors[i], true
}

// Contains reports whether the named factor is present.
func (c *Context) Contains(name string) bool {
	_, ok := c.Factor(name)
	return ok
}

// Names returns the factor names in their original order.
func (c *Context) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.factors))
	for i, f := range c.factors {
		names[i] = f.Name
	}
	return names
}

// MarshalJSON serializes the Context as an ordered list of factors.
func (c *Context) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.factors)
}

// UnmarshalJSON rebuilds the Context from an ordered factor list,
// re-running construction validation.
func (c *Context) UnmarshalJSON(data []byte) error {
	var factors []Factor
	if err := json.Unmarshal(data, &factors); err != nil {
		return err
	}
	rebuilt, err := NewContext(factors)
	if err != nil {
		return err
	}
	*c = *rebuilt
	return nil
}

// ValidateScalar checks that v is within the supported scalar union:
// numeric, boolean, or short text. Nested structures are rejected.
func ValidateScalar(v interface{}) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("value must not be nil")
	case bool, int, int32, int64, uint, uint32, uint64, float32, float64:
		return nil
	case string:
		if len(val) > maxTextLen {
			return fmt.Errorf("string value exceeds %d bytes (got %d)", maxTextLen, len(val))
		}
		return nil
	default:
		return fmt.Errorf("unsupported value type %T (must be numeric, boolean, or short text)", v)
	}
}

// ValidateMetadata checks that every metadata value is within the scalar
// union. Returns InvalidMetadataError on the first violation.
func ValidateMetadata(metadata map[string]interface{}) error {
	for key, value := range metadata {
		if err := ValidateScalar(value); err != nil {
			return NewInvalidMetadataError(key, "%v", err)
		}
	}
	return nil
}
