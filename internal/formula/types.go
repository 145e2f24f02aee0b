package formula

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Request is one evaluation request: raw form values keyed by parameter name,
// plus the selector for multi-formula endpoints.
type Request struct {
	Selector string    `json:"selector,omitempty"`
	Inputs   RawInputs `json:"inputs"`
}

// RawInputs holds unparsed input values. In JSON each value may be a string
// or a number; numbers keep their literal text.
type RawInputs map[string]string

func (in *RawInputs) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(RawInputs, len(raw))
	for k, v := range raw {
		v = bytes.TrimSpace(v)
		switch {
		case len(v) > 0 && v[0] == '"':
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return fmt.Errorf("input %s: %w", k, err)
			}
			out[k] = s
		case bytes.Equal(v, []byte("null")):
			// treated as absent
		default:
			var n json.Number
			if err := json.Unmarshal(v, &n); err != nil {
				return fmt.Errorf("input %s: must be a string or number", k)
			}
			out[k] = n.String()
		}
	}

	*in = out
	return nil
}

// Result is either a full set of outputs or a single error. It is never both.
type Result struct {
	Endpoint string
	Selector string
	Inputs   map[string]string // echo of the submitted values for declared params

	Values map[string]float64
	Series map[string][]float64

	Err     error
	Message string // fixed user-facing failure message

	order  []string
	labels map[string]label
}

type label struct {
	text string
	unit string
}

// NamedValue is an output prepared for presentation.
type NamedValue struct {
	Name  string
	Label string
	Unit  string
	Value float64
}

// NamedSeries is a series prepared for presentation.
type NamedSeries struct {
	Name   string
	Label  string
	Values []float64
}

// OK reports whether evaluation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Value returns the named output.
func (r Result) Value(name string) (float64, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// Ordered returns the scalar outputs in declaration order.
func (r Result) Ordered() []NamedValue {
	if !r.OK() {
		return nil
	}
	out := make([]NamedValue, 0, len(r.Values))
	for _, name := range r.order {
		v, ok := r.Values[name]
		if !ok {
			continue
		}
		l := r.labels[name]
		out = append(out, NamedValue{Name: name, Label: l.text, Unit: l.unit, Value: v})
	}
	return out
}

// OrderedSeries returns the series in declaration order.
func (r Result) OrderedSeries() []NamedSeries {
	if !r.OK() {
		return nil
	}
	var out []NamedSeries
	for _, name := range r.order {
		s, ok := r.Series[name]
		if !ok {
			continue
		}
		out = append(out, NamedSeries{Name: name, Label: r.labels[name].text, Values: s})
	}
	return out
}

// ResultResponse is the JSON body for a successful evaluation.
type ResultResponse struct {
	Endpoint  string               `json:"endpoint"`
	Selector  string               `json:"selector,omitempty"`
	Inputs    map[string]string    `json:"inputs"`
	Values    map[string]float64   `json:"values"`
	Series    map[string][]float64 `json:"series,omitempty"`
	RequestID string               `json:"request_id,omitempty"`
}

// ErrorResponse is the JSON body for a failed evaluation.
type ErrorResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// EndpointInfo describes an endpoint for GET /api/v1/formulas.
type EndpointInfo struct {
	Name          string        `json:"name"`
	Title         string        `json:"title"`
	Category      Category      `json:"category"`
	SelectorField string        `json:"selector_field,omitempty"`
	Default       string        `json:"default_variant,omitempty"`
	Variants      []VariantInfo `json:"variants"`
}

// VariantInfo lists the inputs and outputs of one variant.
type VariantInfo struct {
	Key     string      `json:"key,omitempty"`
	Label   string      `json:"label,omitempty"`
	Params  []ParamInfo `json:"params"`
	Outputs []string    `json:"outputs"`
	Series  []string    `json:"series,omitempty"`
}

// ParamInfo describes one input.
type ParamInfo struct {
	Name     string   `json:"name"`
	Unit     string   `json:"unit,omitempty"`
	Text     bool     `json:"text,omitempty"`
	Optional bool     `json:"optional,omitempty"`
	Default  *float64 `json:"default,omitempty"`
}
