package formula

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// Constants available to every expression.
var constants = map[string]float64{
	"pi": math.Pi,
	"g":  9.8,         // m/s²
	"R":  8.314,       // J/(mol·K)
	"G":  6.674e-11,   // N·m²/kg²
	"eV": 1.602e-19,   // J
	"c":  299792458.0, // m/s
}

var functions = map[string]govaluate.ExpressionFunction{
	"sin":     unary(math.Sin),
	"cos":     unary(math.Cos),
	"tan":     unary(math.Tan),
	"asin":    unary(math.Asin),
	"acos":    unary(math.Acos),
	"atan":    unary(math.Atan),
	"radians": unary(func(d float64) float64 { return d * math.Pi / 180 }),
	"degrees": unary(func(r float64) float64 { return r * 180 / math.Pi }),
	"sqrt":    unary(math.Sqrt),
	"ln":      unary(math.Log),
	"log10":   unary(math.Log10),
	"exp":     unary(math.Exp),
	"abs":     unary(math.Abs),
	"pow":     binary(math.Pow),
}

func unary(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("expected number, got %T", args[0])
		}
		return fn(x), nil
	}
}

func binary(fn func(float64, float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("expected 2 arguments, got %d", len(args))
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("expected number, got %T", args[0])
		}
		y, ok := args[1].(float64)
		if !ok {
			return nil, fmt.Errorf("expected number, got %T", args[1])
		}
		return fn(x, y), nil
	}
}

// compile parses expr and checks every variable it uses is in scope.
func compile(expr string, scope map[string]struct{}) (*govaluate.EvaluableExpression, error) {
	e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, functions)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, err)
	}
	for _, v := range e.Vars() {
		if _, ok := scope[v]; !ok {
			return nil, fmt.Errorf("compile %q: unknown variable %q", expr, v)
		}
	}
	return e, nil
}

// number evaluates e and requires a numeric result.
func number(e *govaluate.EvaluableExpression, vars map[string]interface{}) (float64, error) {
	v, err := e.Evaluate(vars)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%s: expected number, got %T", e.String(), v)
	}
	return f, nil
}

// truth evaluates e and requires a boolean result.
func truth(e *govaluate.EvaluableExpression, vars map[string]interface{}) (bool, error) {
	v, err := e.Evaluate(vars)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s: expected boolean, got %T", e.String(), v)
	}
	return b, nil
}

func round(v float64, decimals int) float64 {
	switch {
	case decimals == 0:
		return v
	case decimals == RoundWhole:
		return math.Round(v)
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
