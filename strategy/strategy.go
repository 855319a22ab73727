// Package strategy defines the strategy value objects consumed by the
// trading engine: a strategy is an ordered list of selection factors, each
// tagged with a category and an enabled flag. The engine reads strategies,
// it never mutates them.
package strategy

import "time"

// FactorCategory classifies a selection factor for scoring purposes.
type FactorCategory string

const (
	CategoryTechnical   FactorCategory = "technical"
	CategoryFundamental FactorCategory = "fundamental"
	CategorySentiment   FactorCategory = "sentiment"
	CategoryCustom      FactorCategory = "custom"
)

// ValueKind discriminates the typed payload carried by a FactorValue.
type ValueKind string

const (
	ValueCheckbox ValueKind = "checkbox"
	ValueRange    ValueKind = "range"
	ValueSelect   ValueKind = "select"
	ValueText     ValueKind = "text"
)

// FactorValue is a tagged union over the parameter types a selection factor
// can carry. Kind selects which field is meaningful; the others stay zero.
type FactorValue struct {
	Kind    ValueKind `json:"kind"`
	Checked bool      `json:"checked,omitempty"`
	Min     float64   `json:"min,omitempty"`
	Max     float64   `json:"max,omitempty"`
	Choice  string    `json:"choice,omitempty"`
	Text    string    `json:"text,omitempty"`
}

// CheckboxValue builds a boolean factor value.
func CheckboxValue(checked bool) FactorValue {
	return FactorValue{Kind: ValueCheckbox, Checked: checked}
}

// RangeValue builds a numeric interval factor value.
func RangeValue(min, max float64) FactorValue {
	return FactorValue{Kind: ValueRange, Min: min, Max: max}
}

// SelectValue builds a single-choice factor value.
func SelectValue(choice string) FactorValue {
	return FactorValue{Kind: ValueSelect, Choice: choice}
}

// TextValue builds a free-text factor value.
func TextValue(text string) FactorValue {
	return FactorValue{Kind: ValueText, Text: text}
}

// SelectionFactor is one screening rule of a strategy.
type SelectionFactor struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category FactorCategory `json:"category"`
	Enabled  bool           `json:"enabled"`
	Value    FactorValue    `json:"value"`
}

// Strategy is a read-only description of a trading strategy. Factor order is
// preserved as authored; scoring walks the list front to back.
type Strategy struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Factors   []SelectionFactor `json:"factors"`
	CreatedAt time.Time         `json:"created_at"`
}

// EnabledCount returns how many enabled factors of the given category the
// strategy carries.
func (s Strategy) EnabledCount(category FactorCategory) int {
	n := 0
	for _, f := range s.Factors {
		if f.Enabled && f.Category == category {
			n++
		}
	}
	return n
}
