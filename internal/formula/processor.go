package formula

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"physcalc/internal/observability"

	"github.com/Knetic/govaluate"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("formula")

// Processor evaluates requests against a fixed catalogue of endpoints. It
// holds no per-request state and is safe for concurrent use.
type Processor struct {
	endpoints map[string]*compiledEndpoint
	order     []string
	metrics   *metrics
}

type compiledEndpoint struct {
	Endpoint
	variants map[string]*compiledDefinition
}

type compiledDefinition struct {
	def     Definition
	params  []compiledParam
	checks  []compiledCheck
	outputs []compiledOutput
	series  []compiledSeries
	order   []string
	labels  map[string]label
}

type compiledParam struct {
	Param
	pattern *regexp.Regexp
}

type compiledCheck struct {
	expr   *govaluate.EvaluableExpression
	reason string

	// needsLookup marks checks reading a lookup-provided name; all others
	// run before the collaborator is called.
	needsLookup bool
}

type compiledOutput struct {
	Output
	expr *govaluate.EvaluableExpression
}

type compiledSeries struct {
	Series
	from, to, expr *govaluate.EvaluableExpression
}

// NewProcessor compiles every expression of every endpoint. Any malformed
// definition is reported here rather than at request time.
func NewProcessor(endpoints []Endpoint) (*Processor, error) {
	m, err := newMetrics()
	if err != nil {
		return nil, err
	}

	p := &Processor{
		endpoints: make(map[string]*compiledEndpoint, len(endpoints)),
		metrics:   m,
	}

	for _, ep := range endpoints {
		if ep.Name == "" {
			return nil, errors.New("endpoint with empty name")
		}
		if _, dup := p.endpoints[ep.Name]; dup {
			return nil, fmt.Errorf("duplicate endpoint %q", ep.Name)
		}
		ce, err := compileEndpoint(ep)
		if err != nil {
			return nil, fmt.Errorf("endpoint %s: %w", ep.Name, err)
		}
		p.endpoints[ep.Name] = ce
		p.order = append(p.order, ep.Name)
	}

	return p, nil
}

func compileEndpoint(ep Endpoint) (*compiledEndpoint, error) {
	if len(ep.Variants) == 0 {
		return nil, errors.New("no variants")
	}
	if !ep.HasSelector() && (len(ep.Variants) != 1 || ep.Variants[0].Key != "") {
		return nil, errors.New("endpoint without selector must have a single unnamed variant")
	}

	ce := &compiledEndpoint{Endpoint: ep, variants: make(map[string]*compiledDefinition, len(ep.Variants))}
	for _, v := range ep.Variants {
		if ep.HasSelector() && v.Key == "" {
			return nil, errors.New("selector variant with empty key")
		}
		if _, dup := ce.variants[v.Key]; dup {
			return nil, fmt.Errorf("duplicate variant %q", v.Key)
		}
		cd, err := compileDefinition(v.Definition)
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", v.Key, err)
		}
		ce.variants[v.Key] = cd
	}

	if ep.HasSelector() && ep.DefaultVariant != "" {
		if _, ok := ce.variants[ep.DefaultVariant]; !ok {
			return nil, fmt.Errorf("default variant %q not declared", ep.DefaultVariant)
		}
	}

	return ce, nil
}

func compileDefinition(def Definition) (*compiledDefinition, error) {
	scope := make(map[string]struct{}, len(constants)+len(def.Params))
	for name := range constants {
		scope[name] = struct{}{}
	}
	declare := func(name string) error {
		if _, dup := scope[name]; dup {
			return fmt.Errorf("name %q declared twice or shadows a constant", name)
		}
		scope[name] = struct{}{}
		return nil
	}

	cd := &compiledDefinition{def: def, labels: make(map[string]label)}

	for _, prm := range def.Params {
		cp := compiledParam{Param: prm}
		if prm.Kind == TextParam {
			// text values never enter expressions
			if prm.Pattern != "" {
				re, err := regexp.Compile(prm.Pattern)
				if err != nil {
					return nil, fmt.Errorf("param %s: %w", prm.Name, err)
				}
				cp.pattern = re
			}
		} else if err := declare(prm.Name); err != nil {
			return nil, err
		}
		cd.params = append(cd.params, cp)
	}

	if def.Lookup != nil {
		if def.Lookup.Fetch == nil {
			return nil, errors.New("lookup without fetch function")
		}
		for _, name := range def.Lookup.Provides {
			if err := declare(name); err != nil {
				return nil, err
			}
		}
	}

	provided := make(map[string]struct{})
	if def.Lookup != nil {
		for _, name := range def.Lookup.Provides {
			provided[name] = struct{}{}
		}
	}
	for _, pre := range def.Preconditions {
		e, err := compile(pre.Expr, scope)
		if err != nil {
			return nil, err
		}
		c := compiledCheck{expr: e, reason: pre.Reason}
		for _, v := range e.Vars() {
			if _, ok := provided[v]; ok {
				c.needsLookup = true
				break
			}
		}
		cd.checks = append(cd.checks, c)
	}

	if len(def.Outputs) == 0 {
		return nil, errors.New("no outputs")
	}
	for _, out := range def.Outputs {
		if out.Decimals < RoundWhole {
			return nil, fmt.Errorf("output %s: invalid rounding rule %d", out.Name, out.Decimals)
		}
		e, err := compile(out.Expr, scope)
		if err != nil {
			return nil, err
		}
		if err := declare(out.Name); err != nil {
			return nil, err
		}
		cd.outputs = append(cd.outputs, compiledOutput{Output: out, expr: e})
		cd.order = append(cd.order, out.Name)
		cd.labels[out.Name] = label{text: out.Label, unit: out.Unit}
	}

	for _, s := range def.Series {
		if s.Points < 2 {
			return nil, fmt.Errorf("series %s: need at least 2 points", s.Name)
		}
		if s.Decimals < RoundWhole {
			return nil, fmt.Errorf("series %s: invalid rounding rule %d", s.Name, s.Decimals)
		}
		from, err := compile(s.From, scope)
		if err != nil {
			return nil, err
		}
		to, err := compile(s.To, scope)
		if err != nil {
			return nil, err
		}

		inner := make(map[string]struct{}, len(scope)+1)
		for k := range scope {
			inner[k] = struct{}{}
		}
		inner[s.Var] = struct{}{}
		e, err := compile(s.Expr, inner)
		if err != nil {
			return nil, err
		}

		if _, dup := cd.labels[s.Name]; dup {
			return nil, fmt.Errorf("series %s clashes with an output", s.Name)
		}
		cd.series = append(cd.series, compiledSeries{Series: s, from: from, to: to, expr: e})
		cd.order = append(cd.order, s.Name)
		cd.labels[s.Name] = label{text: s.Label}
	}

	return cd, nil
}

// Endpoint returns the named endpoint definition.
func (p *Processor) Endpoint(name string) (Endpoint, bool) {
	ce, ok := p.endpoints[name]
	if !ok {
		return Endpoint{}, false
	}
	return ce.Endpoint, true
}

// Endpoints returns all endpoints in registration order.
func (p *Processor) Endpoints() []Endpoint {
	out := make([]Endpoint, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.endpoints[name].Endpoint)
	}
	return out
}

// Evaluate runs the named endpoint on req. Failures are reported in the
// returned Result, never as a panic or a separate error.
func (p *Processor) Evaluate(ctx context.Context, name string, req Request) Result {
	ce, known := p.endpoints[name]
	opName := "unknown"
	if known {
		opName = name
	}

	logger := observability.LoggerWithTrace(ctx)
	ctx, span := tracer.Start(ctx, "formula."+opName,
		trace.WithAttributes(
			attribute.String("formula.endpoint", name),
			attribute.String("formula.selector", req.Selector),
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	defer span.End()

	start := time.Now()
	var res Result
	if known {
		res = ce.evaluate(ctx, req)
	} else {
		res = Result{
			Endpoint: name,
			Err:      invalid(name, "", "unknown endpoint"),
			Message:  DefaultMessage,
		}
	}
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	if res.Err != nil {
		kind := ErrorKind(res.Err)
		observability.RecordFailure(ctx, span, logger, p.metrics.errors, observability.Failure{
			Op:      opName,
			Kind:    kind,
			Message: res.Message,
			Err:     res.Err,
			Level:   logLevel(kind),
		})
		return res
	}

	attrs := metric.WithAttributes(
		attribute.String("operation", name),
		attribute.String("selector", res.Selector),
	)
	p.metrics.evaluations.Add(ctx, 1, attrs)
	p.metrics.duration.Record(ctx, elapsed, attrs)
	for _, out := range res.order {
		if v, ok := res.Values[out]; ok {
			p.metrics.lastResult.Record(ctx, v, metric.WithAttributes(
				attribute.String("operation", name),
				attribute.String("output", out),
			))
		}
	}

	span.AddEvent("evaluation.complete", trace.WithAttributes(
		attribute.Int("outputs", len(res.Values)),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Debug("formula evaluated",
		zap.String("operation", name),
		zap.String("selector", res.Selector),
		zap.Any("values", res.Values),
		zap.Float64("duration_ms", elapsed),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	return res
}

func (ce *compiledEndpoint) evaluate(ctx context.Context, req Request) Result {
	res := Result{Endpoint: ce.Name}

	fail := func(err error) Result {
		res.Err = err
		res.Message = ce.FailureMessage()
		return res
	}

	selector := strings.TrimSpace(req.Selector)
	if ce.HasSelector() {
		if selector == "" {
			selector = ce.DefaultVariant
		}
		res.Selector = selector
		if selector == "" {
			return fail(invalid(ce.Name, ce.SelectorField, "a selection is required"))
		}
	}

	cd, ok := ce.variants[selector]
	if !ok {
		return fail(invalid(ce.Name, ce.SelectorField, "unknown selection %q", selector))
	}

	res.Inputs = echo(cd.params, req.Inputs)

	in, err := cd.parse(ce.Name, req.Inputs)
	if err != nil {
		return fail(err)
	}

	vars := make(map[string]interface{}, len(constants)+len(in.Numbers)+len(cd.outputs))
	for k, v := range constants {
		vars[k] = v
	}
	for k, v := range in.Numbers {
		vars[k] = v
	}

	if err := cd.check(ce.Name, vars, false); err != nil {
		return fail(err)
	}

	if lk := cd.def.Lookup; lk != nil {
		extra, err := lk.Fetch(ctx, in)
		if err != nil {
			return fail(&CollaboratorError{Endpoint: ce.Name, Collaborator: lk.Collaborator, Err: err})
		}
		for _, name := range lk.Provides {
			v, ok := extra[name]
			if !ok || !finite(v) {
				return fail(&CollaboratorError{
					Endpoint:     ce.Name,
					Collaborator: lk.Collaborator,
					Err:          fmt.Errorf("no usable value for %q", name),
				})
			}
			vars[name] = v
		}
	}

	if err := cd.check(ce.Name, vars, true); err != nil {
		return fail(err)
	}

	values := make(map[string]float64, len(cd.outputs))
	for _, out := range cd.outputs {
		v, err := number(out.expr, vars)
		if err != nil {
			return fail(fmt.Errorf("%s: output %s: %w", ce.Name, out.Name, err))
		}
		if !finite(v) {
			return fail(invalid(ce.Name, out.Name, "result is not a finite number"))
		}
		// later outputs see the unrounded value
		vars[out.Name] = v
		values[out.Name] = round(v, out.Decimals)
	}

	var series map[string][]float64
	if len(cd.series) > 0 {
		series = make(map[string][]float64, len(cd.series))
	}
	for _, s := range cd.series {
		points, err := s.sample(ce.Name, vars)
		if err != nil {
			return fail(err)
		}
		series[s.Name] = points
	}

	res.Values = values
	res.Series = series
	res.order = cd.order
	res.labels = cd.labels
	return res
}

// parse coerces the raw inputs of every declared param.
func (cd *compiledDefinition) parse(endpoint string, raw map[string]string) (Inputs, error) {
	in := Inputs{
		Numbers: make(map[string]float64, len(cd.params)),
		Texts:   make(map[string]string),
	}

	for _, prm := range cd.params {
		s := strings.TrimSpace(raw[prm.Name])

		if prm.Kind == TextParam {
			if s == "" {
				return Inputs{}, invalid(endpoint, prm.Name, "is required")
			}
			if prm.pattern != nil && !prm.pattern.MatchString(s) {
				return Inputs{}, invalid(endpoint, prm.Name, "has an invalid format")
			}
			in.Texts[prm.Name] = s
			continue
		}

		if s == "" {
			if !prm.Optional {
				return Inputs{}, invalid(endpoint, prm.Name, "is required")
			}
			in.Numbers[prm.Name] = prm.Default
			continue
		}

		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Inputs{}, invalid(endpoint, prm.Name, "must be a number")
		}
		if !finite(v) {
			return Inputs{}, invalid(endpoint, prm.Name, "must be a finite number")
		}
		in.Numbers[prm.Name] = v
	}

	return in, nil
}

func (s compiledSeries) sample(endpoint string, vars map[string]interface{}) ([]float64, error) {
	from, err := number(s.from, vars)
	if err != nil {
		return nil, fmt.Errorf("%s: series %s: %w", endpoint, s.Name, err)
	}
	to, err := number(s.to, vars)
	if err != nil {
		return nil, fmt.Errorf("%s: series %s: %w", endpoint, s.Name, err)
	}
	if !finite(from) || !finite(to) {
		return nil, invalid(endpoint, s.Name, "series range is not finite")
	}

	local := make(map[string]interface{}, len(vars)+1)
	for k, v := range vars {
		local[k] = v
	}

	step := (to - from) / float64(s.Points-1)
	points := make([]float64, s.Points)
	for i := range points {
		local[s.Var] = from + float64(i)*step
		v, err := number(s.expr, local)
		if err != nil {
			return nil, fmt.Errorf("%s: series %s: %w", endpoint, s.Name, err)
		}
		if !finite(v) {
			return nil, invalid(endpoint, s.Name, "series value is not a finite number")
		}
		points[i] = round(v, s.Decimals)
	}
	return points, nil
}

// echo copies the submitted values of declared params, trimmed.
func echo(params []compiledParam, raw map[string]string) map[string]string {
	out := make(map[string]string, len(params))
	for _, prm := range params {
		if v, ok := raw[prm.Name]; ok {
			out[prm.Name] = strings.TrimSpace(v)
		}
	}
	return out
}

// Describe returns the catalogue in API form, sorted by name.
func (p *Processor) Describe() []EndpointInfo {
	infos := make([]EndpointInfo, 0, len(p.order))
	for _, ep := range p.Endpoints() {
		info := EndpointInfo{
			Name:          ep.Name,
			Title:         ep.Title,
			Category:      ep.Category,
			SelectorField: ep.SelectorField,
			Default:       ep.DefaultVariant,
		}
		for _, v := range ep.Variants {
			vi := VariantInfo{Key: v.Key, Label: v.Label}
			for _, prm := range v.Params {
				pi := ParamInfo{Name: prm.Name, Unit: prm.Unit, Text: prm.Kind == TextParam, Optional: prm.Optional}
				if prm.Optional {
					d := prm.Default
					pi.Default = &d
				}
				vi.Params = append(vi.Params, pi)
			}
			for _, o := range v.Outputs {
				vi.Outputs = append(vi.Outputs, o.Name)
			}
			for _, s := range v.Series {
				vi.Series = append(vi.Series, s.Name)
			}
			info.Variants = append(info.Variants, vi)
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// check runs, in declaration order, the preconditions whose needsLookup
// equals afterLookup.
func (cd *compiledDefinition) check(endpoint string, vars map[string]interface{}, afterLookup bool) error {
	for _, c := range cd.checks {
		if c.needsLookup != afterLookup {
			continue
		}
		ok, err := truth(c.expr, vars)
		if err != nil {
			return fmt.Errorf("%s: precondition %s: %w", endpoint, c.expr.String(), err)
		}
		if !ok {
			return invalid(endpoint, "", "%s", c.reason)
		}
	}
	return nil
}
