package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"physcalc/internal/formula"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"mass=2", "velocity=3", "note=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"mass": "2", "velocity": "3", "note": "a=b"}, got)

	_, err = parseAssignments([]string{"mass"})
	assert.Error(t, err)
	_, err = parseAssignments([]string{"=2"})
	assert.Error(t, err)
}

func TestRunEval(t *testing.T) {
	proc, err := formula.NewProcessor(formula.Catalog(nil))
	require.NoError(t, err)

	var out bytes.Buffer
	err = runEval(context.Background(), &out, proc, "ohms_law", formula.Request{Inputs: map[string]string{"voltage": "10", "current": "2"}})
	require.NoError(t, err)
	assert.Equal(t, "resistance = 5 Ω\npower = 20 W\n", out.String())

	err = runEval(context.Background(), &out, proc, "ohms_law", formula.Request{Inputs: map[string]string{"voltage": "10", "current": "0"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid input")
	assert.Contains(t, err.Error(), "current must be non-zero")

	err = runEval(context.Background(), &out, proc, "warp_drive", formula.Request{})
	assert.ErrorContains(t, err, "unknown formula")
}

func TestFormulasCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"formulas"})

	require.NoError(t, cmd.Execute())

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "NAME"))
	assert.Contains(t, text, "kinetic_energy")
	assert.Contains(t, text, "solve_for=volume: moles,temperature,pressure")
	assert.Contains(t, text, "gravity?")
}

func TestEvalCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"eval", "ideal_gas_law", "--selector", "temperature", "pressure=249420", "volume=0.01", "moles=1"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "temperature = 300 K\n", out.String())
}
