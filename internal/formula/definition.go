package formula

import "context"

// Category groups endpoints on the dashboard.
type Category string

const (
	Mechanics     Category = "Mechanics"
	Waves         Category = "Electricity & Waves"
	Thermodynamic Category = "Thermodynamics"
	Conversion    Category = "Conversions"
	Finance       Category = "Finance"
)

// DefaultMessage is shown to the user when an endpoint declares no message
// of its own.
const DefaultMessage = "Invalid input"

// ParamKind says how a raw input is coerced.
type ParamKind int

const (
	NumberParam ParamKind = iota
	TextParam
)

// Param declares one named input of a formula.
type Param struct {
	Name     string
	Label    string
	Unit     string
	Kind     ParamKind
	Optional bool
	Default  float64 // used when an optional number is absent or blank
	Pattern  string  // text params only; regexp the trimmed value must match
}

// Number declares a required numeric input.
func Number(name, label, unit string) Param {
	return Param{Name: name, Label: label, Unit: unit, Kind: NumberParam}
}

// OptionalNumber declares a numeric input that falls back to def when absent.
func OptionalNumber(name, label, unit string, def float64) Param {
	return Param{Name: name, Label: label, Unit: unit, Kind: NumberParam, Optional: true, Default: def}
}

// Text declares a required text input matching pattern.
func Text(name, label, pattern string) Param {
	return Param{Name: name, Label: label, Kind: TextParam, Pattern: pattern}
}

// Precondition is a boolean expression over the inputs. Evaluation stops with
// a validation error carrying Reason when it is false.
type Precondition struct {
	Expr   string
	Reason string
}

// Require is shorthand for a Precondition.
func Require(expr, reason string) Precondition {
	return Precondition{Expr: expr, Reason: reason}
}

// RoundWhole as a Decimals value rounds to an integer. Zero leaves a value
// unrounded and a positive count rounds to that many places.
const RoundWhole = -1

// Output is one named scalar result. Expr may reference inputs, constants,
// lookup values and outputs declared before it. Decimals is a rounding rule,
// see RoundWhole.
type Output struct {
	Name     string
	Label    string
	Unit     string
	Expr     string
	Decimals int
}

// Series samples Expr at Points evenly spaced values of Var between From and
// To (both expressions), producing an ordered sequence for plotting.
type Series struct {
	Name     string
	Label    string
	Var      string
	From     string
	To       string
	Expr     string
	Points   int
	Decimals int
}

// Inputs are the parsed values handed to a Lookup.
type Inputs struct {
	Numbers map[string]float64
	Texts   map[string]string
}

// Lookup fetches extra variables from an external collaborator before the
// preconditions run. Provides lists the variable names Fetch returns.
type Lookup struct {
	Collaborator string
	Provides     []string
	Fetch        func(ctx context.Context, in Inputs) (map[string]float64, error)
}

// Definition is one closed-form formula.
type Definition struct {
	Params        []Param
	Preconditions []Precondition
	Lookup        *Lookup
	Outputs       []Output
	Series        []Series
}

// Variant binds a selector value to a Definition.
type Variant struct {
	Key   string
	Label string
	Definition
}

// Endpoint is a named calculator. Single-formula endpoints have exactly one
// variant with an empty key and no SelectorField.
type Endpoint struct {
	Name           string
	Title          string
	Category       Category
	Description    string // Markdown
	SelectorField  string
	SelectorLabel  string
	DefaultVariant string
	Variants       []Variant
	Message        string
}

// Single wraps a lone Definition as the variant list of a selector-less endpoint.
func Single(def Definition) []Variant {
	return []Variant{{Definition: def}}
}

// HasSelector reports whether the endpoint is selector-driven.
func (e Endpoint) HasSelector() bool {
	return e.SelectorField != ""
}

// FailureMessage is the fixed user-facing message for any failure.
func (e Endpoint) FailureMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return DefaultMessage
}
