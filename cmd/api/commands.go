package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"physcalc/internal/config"
	"physcalc/internal/formula"

	"github.com/spf13/cobra"
)

func newFormulasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formulas",
		Short: "List the formula catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, err := formula.NewProcessor(formula.Catalog(nil))
			if err != nil {
				return err
			}
			return printCatalogue(cmd.OutOrStdout(), proc)
		},
	}
}

func printCatalogue(out io.Writer, proc *formula.Processor) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tINPUTS")
	for _, info := range proc.Describe() {
		var inputs []string
		for _, v := range info.Variants {
			var names []string
			for _, prm := range v.Params {
				name := prm.Name
				if prm.Optional {
					name += "?"
				}
				names = append(names, name)
			}
			entry := strings.Join(names, ",")
			if v.Key != "" {
				entry = info.SelectorField + "=" + v.Key + ": " + entry
			}
			inputs = append(inputs, entry)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, info.Category, strings.Join(inputs, " | "))
	}
	return tw.Flush()
}

func newEvalCmd(opts *options) *cobra.Command {
	var selector string

	cmd := &cobra.Command{
		Use:   "eval <formula> [name=value ...]",
		Short: "Evaluate a formula from the command line",
		Example: `  physcalc eval kinetic_energy mass=2 velocity=3
  physcalc eval ideal_gas_law --selector volume moles=1 temperature=300 pressure=101325`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			// the session secret is irrelevant here, so Validate is skipped
			cfg, err := config.Load(opts.configPath, os.Getenv)
			if err != nil {
				return err
			}
			proc, err := newProcessor(cfg)
			if err != nil {
				return err
			}

			return runEval(cmd.Context(), cmd.OutOrStdout(), proc, args[0], formula.Request{Selector: selector, Inputs: inputs})
		},
	}
	cmd.Flags().StringVar(&selector, "selector", "", "variant of a multi-formula endpoint")
	return cmd
}

func parseAssignments(args []string) (map[string]string, error) {
	inputs := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", arg)
		}
		inputs[name] = value
	}
	return inputs, nil
}

func runEval(ctx context.Context, out io.Writer, proc *formula.Processor, name string, req formula.Request) error {
	if _, ok := proc.Endpoint(name); !ok {
		return fmt.Errorf("unknown formula %q (see 'physcalc formulas')", name)
	}

	res := proc.Evaluate(ctx, name, req)
	if !res.OK() {
		return fmt.Errorf("%s: %w", res.Message, res.Err)
	}

	for _, v := range res.Ordered() {
		unit := ""
		if v.Unit != "" {
			unit = " " + v.Unit
		}
		fmt.Fprintf(out, "%s = %v%s\n", v.Name, v.Value, unit)
	}
	for _, s := range res.OrderedSeries() {
		parts := make([]string, len(s.Values))
		for i, v := range s.Values {
			parts[i] = fmt.Sprint(v)
		}
		fmt.Fprintf(out, "%s = [%s]\n", s.Name, strings.Join(parts, " "))
	}
	return nil
}
