package formula

// unit is one member of a linear conversion family: value × toBase gives the
// base unit.
type unit struct {
	key    string
	label  string
	toBase string
}

// linearConversion builds a selector endpoint where the selector names the
// unit of the input value and every unit of the family is an output.
func linearConversion(name, title, description, defaultUnit string, decimals int, units []unit) Endpoint {
	ep := Endpoint{
		Name:           name,
		Title:          title,
		Category:       Conversion,
		Description:    description,
		SelectorField:  "from",
		SelectorLabel:  "Convert from",
		DefaultVariant: defaultUnit,
	}

	for _, from := range units {
		def := Definition{
			Params: []Param{Number("value", "Value", "")},
			Preconditions: []Precondition{
				Require("value >= 0", "value must not be negative"),
			},
			Outputs: []Output{
				{Name: "base", Label: "In base unit", Expr: "value * " + from.toBase},
			},
		}
		for _, to := range units {
			def.Outputs = append(def.Outputs, Output{
				Name:     to.key,
				Label:    to.label,
				Expr:     "base / " + to.toBase,
				Decimals: decimals,
			})
		}
		ep.Variants = append(ep.Variants, Variant{Key: from.key, Label: from.label, Definition: def})
	}

	return ep
}

func conversions() []Endpoint {
	return []Endpoint{
		{
			Name:           "temperature_conversion",
			Title:          "Temperature Conversion",
			Category:       Conversion,
			Description:    "`°F = °C × 9/5 + 32`, `K = °C + 273.15`. Values below absolute zero are rejected.",
			SelectorField:  "from",
			SelectorLabel:  "Convert from",
			DefaultVariant: "celsius",
			Variants: []Variant{
				{
					Key:   "celsius",
					Label: "Celsius",
					Definition: Definition{
						Params:        []Param{Number("value", "Temperature", "°C")},
						Preconditions: []Precondition{Require("value >= -273.15", "temperature is below absolute zero")},
						Outputs: []Output{
							{Name: "celsius", Label: "Celsius", Unit: "°C", Expr: "value", Decimals: 2},
							{Name: "fahrenheit", Label: "Fahrenheit", Unit: "°F", Expr: "value * 9 / 5 + 32", Decimals: 2},
							{Name: "kelvin", Label: "Kelvin", Unit: "K", Expr: "value + 273.15", Decimals: 2},
						},
					},
				},
				{
					Key:   "fahrenheit",
					Label: "Fahrenheit",
					Definition: Definition{
						Params:        []Param{Number("value", "Temperature", "°F")},
						Preconditions: []Precondition{Require("value >= -459.67", "temperature is below absolute zero")},
						Outputs: []Output{
							{Name: "celsius", Label: "Celsius", Unit: "°C", Expr: "(value - 32) * 5 / 9", Decimals: 2},
							{Name: "fahrenheit", Label: "Fahrenheit", Unit: "°F", Expr: "value", Decimals: 2},
							{Name: "kelvin", Label: "Kelvin", Unit: "K", Expr: "celsius + 273.15", Decimals: 2},
						},
					},
				},
				{
					Key:   "kelvin",
					Label: "Kelvin",
					Definition: Definition{
						Params:        []Param{Number("value", "Temperature", "K")},
						Preconditions: []Precondition{Require("value >= 0", "temperature is below absolute zero")},
						Outputs: []Output{
							{Name: "celsius", Label: "Celsius", Unit: "°C", Expr: "value - 273.15", Decimals: 2},
							{Name: "fahrenheit", Label: "Fahrenheit", Unit: "°F", Expr: "celsius * 9 / 5 + 32", Decimals: 2},
							{Name: "kelvin", Label: "Kelvin", Unit: "K", Expr: "value", Decimals: 2},
						},
					},
				},
			},
		},
		linearConversion("speed_conversion", "Speed Conversion",
			"Converts between metres per second, kilometres per hour, miles per hour and knots.",
			"mps", 4, []unit{
				{key: "mps", label: "Metres per second", toBase: "1"},
				{key: "kmh", label: "Kilometres per hour", toBase: "(1 / 3.6)"},
				{key: "mph", label: "Miles per hour", toBase: "0.44704"},
				{key: "knots", label: "Knots", toBase: "(1852 / 3600)"},
			}),
		linearConversion("volume_conversion", "Volume Conversion",
			"Converts between litres, millilitres, cubic metres and US gallons.",
			"litre", 6, []unit{
				{key: "litre", label: "Litres", toBase: "1"},
				{key: "millilitre", label: "Millilitres", toBase: "0.001"},
				{key: "cubic_metre", label: "Cubic metres", toBase: "1000"},
				{key: "us_gallon", label: "US gallons", toBase: "3.785411784"},
			}),
		linearConversion("time_conversion", "Time Conversion",
			"Converts between seconds, minutes, hours and days.",
			"seconds", 6, []unit{
				{key: "seconds", label: "Seconds", toBase: "1"},
				{key: "minutes", label: "Minutes", toBase: "60"},
				{key: "hours", label: "Hours", toBase: "3600"},
				{key: "days", label: "Days", toBase: "86400"},
			}),
	}
}
