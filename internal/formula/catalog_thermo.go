package formula

func waves() []Endpoint {
	return []Endpoint{
		{
			Name:        "ohms_law",
			Title:       "Ohm's Law",
			Category:    Waves,
			Description: "`R = V / I`, `P = V I`",
			Variants: Single(Definition{
				Params: []Param{
					Number("voltage", "Voltage", "V"),
					Number("current", "Current", "A"),
				},
				Preconditions: []Precondition{
					Require("current != 0", "current must be non-zero"),
				},
				Outputs: []Output{
					{Name: "resistance", Label: "Resistance", Unit: "Ω", Expr: "voltage / current"},
					{Name: "power", Label: "Power", Unit: "W", Expr: "voltage * current"},
				},
			}),
		},
		{
			Name:        "frequency_wavelength",
			Title:       "Frequency and Wavelength",
			Category:    Waves,
			Description: "`λ = v / f`",
			Variants: Single(Definition{
				Params: []Param{
					Number("speed", "Wave speed", "m/s"),
					Number("frequency", "Frequency", "Hz"),
				},
				Preconditions: []Precondition{
					Require("frequency != 0", "frequency must be non-zero"),
				},
				Outputs: []Output{
					{Name: "wavelength", Label: "Wavelength", Unit: "m", Expr: "speed / frequency"},
				},
			}),
		},
		{
			Name:        "energy_conversion",
			Title:       "Joules to Electronvolts",
			Category:    Waves,
			Description: "`E(eV) = E(J) / 1.602×10⁻¹⁹`",
			Variants: Single(Definition{
				Params: []Param{
					Number("joules", "Energy", "J"),
				},
				Outputs: []Output{
					{Name: "ev", Label: "Energy", Unit: "eV", Expr: "joules / eV"},
				},
			}),
		},
	}
}

func thermodynamics() []Endpoint {
	return []Endpoint{
		{
			Name:        "specific_heat_capacity",
			Title:       "Specific Heat Capacity",
			Category:    Thermodynamic,
			Description: "`Q = m c ΔT`",
			Variants: Single(Definition{
				Params: []Param{
					Number("mass", "Mass", "kg"),
					Number("specific_heat", "Specific heat", "J/(kg·K)"),
					Number("change_temp", "Temperature change", "K"),
				},
				Outputs: []Output{
					{Name: "heat", Label: "Heat", Unit: "J", Expr: "mass * specific_heat * change_temp"},
				},
			}),
		},
		{
			Name:           "ideal_gas_law",
			Title:          "Ideal Gas Law",
			Category:       Thermodynamic,
			Description:    "`P V = n R T` with R = 8.314 J/(mol·K). Choose the quantity to solve for.",
			SelectorField:  "solve_for",
			SelectorLabel:  "Solve for",
			DefaultVariant: "pressure",
			Variants: []Variant{
				{
					Key:   "pressure",
					Label: "Pressure",
					Definition: Definition{
						Params: []Param{
							Number("moles", "Amount", "mol"),
							Number("temperature", "Temperature", "K"),
							Number("volume", "Volume", "m³"),
						},
						Preconditions: []Precondition{
							Require("temperature > 0", "absolute temperature must be positive"),
							Require("volume > 0", "volume must be positive"),
						},
						Outputs: []Output{
							{Name: "pressure", Label: "Pressure", Unit: "Pa", Expr: "moles * R * temperature / volume", Decimals: 2},
						},
					},
				},
				{
					Key:   "volume",
					Label: "Volume",
					Definition: Definition{
						Params: []Param{
							Number("moles", "Amount", "mol"),
							Number("temperature", "Temperature", "K"),
							Number("pressure", "Pressure", "Pa"),
						},
						Preconditions: []Precondition{
							Require("temperature > 0", "absolute temperature must be positive"),
							Require("pressure > 0", "pressure must be positive"),
						},
						Outputs: []Output{
							{Name: "volume", Label: "Volume", Unit: "m³", Expr: "moles * R * temperature / pressure", Decimals: 6},
						},
					},
				},
				{
					Key:   "temperature",
					Label: "Temperature",
					Definition: Definition{
						Params: []Param{
							Number("pressure", "Pressure", "Pa"),
							Number("volume", "Volume", "m³"),
							Number("moles", "Amount", "mol"),
						},
						Preconditions: []Precondition{
							Require("moles > 0", "amount of substance must be positive"),
							Require("pressure > 0 && volume > 0", "pressure and volume must be positive"),
						},
						Outputs: []Output{
							{Name: "temperature", Label: "Temperature", Unit: "K", Expr: "pressure * volume / (moles * R)", Decimals: 2},
						},
					},
				},
				{
					Key:   "moles",
					Label: "Amount of substance",
					Definition: Definition{
						Params: []Param{
							Number("pressure", "Pressure", "Pa"),
							Number("volume", "Volume", "m³"),
							Number("temperature", "Temperature", "K"),
						},
						Preconditions: []Precondition{
							Require("temperature > 0", "absolute temperature must be positive"),
							Require("pressure > 0 && volume > 0", "pressure and volume must be positive"),
						},
						Outputs: []Output{
							{Name: "moles", Label: "Amount", Unit: "mol", Expr: "pressure * volume / (R * temperature)", Decimals: 4},
						},
					},
				},
			},
		},
		{
			Name:           "thermodynamic_process",
			Title:          "Thermodynamic Processes",
			Category:       Thermodynamic,
			Description:    "Work, heat and internal energy change for an ideal gas. Sign convention: `ΔU = Q − W`, W is work done by the gas.",
			SelectorField:  "process",
			SelectorLabel:  "Process",
			DefaultVariant: "isothermal",
			Variants: []Variant{
				{
					Key:   "isothermal",
					Label: "Isothermal",
					Definition: Definition{
						Params: []Param{
							Number("moles", "Amount", "mol"),
							Number("temperature", "Temperature", "K"),
							Number("initial_volume", "Initial volume", "m³"),
							Number("final_volume", "Final volume", "m³"),
						},
						Preconditions: []Precondition{
							Require("temperature > 0", "absolute temperature must be positive"),
							Require("initial_volume > 0 && final_volume > 0", "volumes must be positive"),
						},
						Outputs: []Output{
							{Name: "work", Label: "Work by gas", Unit: "J", Expr: "moles * R * temperature * ln(final_volume / initial_volume)", Decimals: 4},
							{Name: "heat", Label: "Heat absorbed", Unit: "J", Expr: "work", Decimals: 4},
							{Name: "internal_energy_change", Label: "ΔU", Unit: "J", Expr: "heat - work", Decimals: 4},
						},
					},
				},
				{
					Key:   "adiabatic",
					Label: "Adiabatic",
					Definition: Definition{
						Params: []Param{
							Number("initial_pressure", "Initial pressure", "Pa"),
							Number("initial_volume", "Initial volume", "m³"),
							Number("final_volume", "Final volume", "m³"),
							OptionalNumber("gamma", "Heat capacity ratio γ", "", 1.4),
						},
						Preconditions: []Precondition{
							Require("initial_pressure > 0", "pressure must be positive"),
							Require("initial_volume > 0 && final_volume > 0", "volumes must be positive"),
							Require("gamma > 1", "gamma must be greater than 1"),
						},
						Outputs: []Output{
							{Name: "final_pressure", Label: "Final pressure", Unit: "Pa", Expr: "initial_pressure * (initial_volume / final_volume) ** gamma", Decimals: 4},
							{Name: "work", Label: "Work by gas", Unit: "J", Expr: "(initial_pressure * initial_volume - final_pressure * final_volume) / (gamma - 1)", Decimals: 4},
							{Name: "heat", Label: "Heat absorbed", Unit: "J", Expr: "0"},
							{Name: "internal_energy_change", Label: "ΔU", Unit: "J", Expr: "heat - work", Decimals: 4},
						},
					},
				},
				{
					Key:   "isobaric",
					Label: "Isobaric",
					Definition: Definition{
						Params: []Param{
							Number("pressure", "Pressure", "Pa"),
							Number("initial_volume", "Initial volume", "m³"),
							Number("final_volume", "Final volume", "m³"),
						},
						Preconditions: []Precondition{
							Require("pressure > 0", "pressure must be positive"),
							Require("initial_volume > 0 && final_volume > 0", "volumes must be positive"),
						},
						Outputs: []Output{
							{Name: "work", Label: "Work by gas", Unit: "J", Expr: "pressure * (final_volume - initial_volume)", Decimals: 4},
						},
					},
				},
				{
					Key:   "isochoric",
					Label: "Isochoric",
					Definition: Definition{
						Params: []Param{
							Number("moles", "Amount", "mol"),
							Number("initial_temperature", "Initial temperature", "K"),
							Number("final_temperature", "Final temperature", "K"),
							OptionalNumber("molar_heat_capacity", "Molar heat capacity Cv", "J/(mol·K)", 12.471),
						},
						Preconditions: []Precondition{
							Require("initial_temperature > 0 && final_temperature > 0", "absolute temperatures must be positive"),
						},
						Outputs: []Output{
							{Name: "work", Label: "Work by gas", Unit: "J", Expr: "0"},
							{Name: "heat", Label: "Heat absorbed", Unit: "J", Expr: "moles * molar_heat_capacity * (final_temperature - initial_temperature)", Decimals: 4},
							{Name: "internal_energy_change", Label: "ΔU", Unit: "J", Expr: "heat - work", Decimals: 4},
						},
					},
				},
			},
		},
		{
			Name:           "thermodynamic_cycle",
			Title:          "Thermodynamic Cycles",
			Category:       Thermodynamic,
			Description:    "Ideal cycle efficiencies. Otto: `η = 1 − 1/r^(γ−1)`. Brayton: `η = 1 − 1/rp^((γ−1)/γ)`. Rankine: `η = ((h₁−h₂) − (h₄−h₃)) / (h₁−h₄)`.",
			SelectorField:  "cycle",
			SelectorLabel:  "Cycle",
			DefaultVariant: "otto",
			Variants: []Variant{
				{
					Key:   "brayton",
					Label: "Brayton",
					Definition: Definition{
						Params: []Param{
							Number("pressure_ratio", "Pressure ratio", ""),
							OptionalNumber("gamma", "Heat capacity ratio γ", "", 1.4),
						},
						Preconditions: []Precondition{
							Require("pressure_ratio > 1", "pressure ratio must be greater than 1"),
							Require("gamma > 1", "gamma must be greater than 1"),
						},
						Outputs: []Output{
							{Name: "efficiency", Label: "Thermal efficiency", Expr: "1 - 1 / pressure_ratio ** ((gamma - 1) / gamma)", Decimals: 4},
							{Name: "efficiency_percent", Label: "Thermal efficiency", Unit: "%", Expr: "efficiency * 100", Decimals: 2},
						},
					},
				},
				{
					Key:   "rankine",
					Label: "Rankine",
					Definition: Definition{
						Params: []Param{
							Number("turbine_inlet_enthalpy", "Turbine inlet enthalpy h₁", "kJ/kg"),
							Number("turbine_outlet_enthalpy", "Turbine outlet enthalpy h₂", "kJ/kg"),
							Number("pump_inlet_enthalpy", "Pump inlet enthalpy h₃", "kJ/kg"),
							Number("pump_outlet_enthalpy", "Pump outlet enthalpy h₄", "kJ/kg"),
						},
						Preconditions: []Precondition{
							Require("turbine_inlet_enthalpy > turbine_outlet_enthalpy", "turbine inlet enthalpy must exceed outlet enthalpy"),
							Require("pump_outlet_enthalpy >= pump_inlet_enthalpy", "pump outlet enthalpy must not be below inlet enthalpy"),
							Require("turbine_inlet_enthalpy > pump_outlet_enthalpy", "heat supplied must be positive"),
						},
						Outputs: []Output{
							{Name: "turbine_work", Label: "Turbine work", Unit: "kJ/kg", Expr: "turbine_inlet_enthalpy - turbine_outlet_enthalpy", Decimals: 4},
							{Name: "pump_work", Label: "Pump work", Unit: "kJ/kg", Expr: "pump_outlet_enthalpy - pump_inlet_enthalpy", Decimals: 4},
							{Name: "net_work", Label: "Net work", Unit: "kJ/kg", Expr: "turbine_work - pump_work", Decimals: 4},
							{Name: "heat_supplied", Label: "Heat supplied", Unit: "kJ/kg", Expr: "turbine_inlet_enthalpy - pump_outlet_enthalpy", Decimals: 4},
							{Name: "efficiency", Label: "Thermal efficiency", Expr: "net_work / heat_supplied", Decimals: 4},
							{Name: "efficiency_percent", Label: "Thermal efficiency", Unit: "%", Expr: "efficiency * 100", Decimals: 2},
						},
					},
				},
				{
					Key:   "otto",
					Label: "Otto",
					Definition: Definition{
						Params: []Param{
							Number("compression_ratio", "Compression ratio", ""),
							OptionalNumber("gamma", "Heat capacity ratio γ", "", 1.4),
						},
						Preconditions: []Precondition{
							Require("compression_ratio > 1", "compression ratio must be greater than 1"),
							Require("gamma > 1", "gamma must be greater than 1"),
						},
						Outputs: []Output{
							{Name: "efficiency", Label: "Thermal efficiency", Expr: "1 - 1 / compression_ratio ** (gamma - 1)", Decimals: 4},
							{Name: "efficiency_percent", Label: "Thermal efficiency", Unit: "%", Expr: "efficiency * 100", Decimals: 2},
						},
					},
				},
			},
		},
		{
			Name:        "heat_engine",
			Title:       "Heat Engine Efficiency",
			Category:    Thermodynamic,
			Description: "Heat Q1 absorbed from the hot reservoir and Q2 rejected to the cold one: `W = Q1 − Q2`, `η = 1 − Q2/Q1`.",
			Variants: Single(Definition{
				Params: []Param{
					Number("q1", "Heat absorbed Q1", "J"),
					Number("q2", "Heat rejected Q2", "J"),
				},
				Preconditions: []Precondition{
					Require("q1 > 0", "Q1 must be positive"),
					Require("q2 >= 0", "Q2 must not be negative"),
					Require("q2 < q1", "Q2 must be less than Q1"),
				},
				Outputs: []Output{
					{Name: "work", Label: "Work output", Unit: "J", Expr: "q1 - q2"},
					{Name: "efficiency", Label: "Efficiency", Expr: "1 - q2 / q1", Decimals: 4},
					{Name: "efficiency_percent", Label: "Efficiency", Unit: "%", Expr: "efficiency * 100", Decimals: 2},
				},
			}),
		},
		{
			Name:        "carnot_efficiency",
			Title:       "Carnot Efficiency",
			Category:    Thermodynamic,
			Description: "Reversible engine between absolute temperatures: `η = 1 − Tc/Th`; refrigerator `COP = Tc/(Th − Tc)`; heat pump `COP = Th/(Th − Tc)`.",
			Variants: Single(Definition{
				Params: []Param{
					Number("hot_temperature", "Hot reservoir", "K"),
					Number("cold_temperature", "Cold reservoir", "K"),
				},
				Preconditions: []Precondition{
					Require("cold_temperature > 0", "absolute temperatures must be positive"),
					Require("hot_temperature > cold_temperature", "hot reservoir must be hotter than cold reservoir"),
				},
				Outputs: []Output{
					{Name: "efficiency", Label: "Efficiency", Expr: "1 - cold_temperature / hot_temperature", Decimals: 4},
					{Name: "cop_refrigerator", Label: "COP (refrigerator)", Expr: "cold_temperature / (hot_temperature - cold_temperature)", Decimals: 4},
					{Name: "cop_heat_pump", Label: "COP (heat pump)", Expr: "hot_temperature / (hot_temperature - cold_temperature)", Decimals: 4},
				},
			}),
		},
		{
			Name:        "internal_energy",
			Title:       "First Law of Thermodynamics",
			Category:    Thermodynamic,
			Description: "`ΔU = Q − W + E`, where *E* is any other energy added (defaults to 0).",
			Variants: Single(Definition{
				Params: []Param{
					Number("heat", "Heat added Q", "J"),
					Number("work", "Work done by system W", "J"),
					OptionalNumber("other_energy", "Other energy E", "J", 0),
				},
				Outputs: []Output{
					{Name: "delta_u", Label: "Change in internal energy", Unit: "J", Expr: "heat - work + other_energy"},
				},
			}),
		},
		{
			Name:        "entropy_change",
			Title:       "Entropy Change",
			Category:    Thermodynamic,
			Description: "Reversible heat transfer at constant temperature: `ΔS = Q / T`.",
			Variants: Single(Definition{
				Params: []Param{
					Number("heat", "Heat transferred", "J"),
					Number("temperature", "Absolute temperature", "K"),
				},
				Preconditions: []Precondition{
					Require("temperature > 0", "absolute temperature must be positive"),
				},
				Outputs: []Output{
					{Name: "entropy_change", Label: "Entropy change", Unit: "J/K", Expr: "heat / temperature", Decimals: 6},
				},
			}),
		},
		{
			Name:        "thermal_expansion",
			Title:       "Linear Thermal Expansion",
			Category:    Thermodynamic,
			Description: "`ΔL = α L₀ ΔT`",
			Variants: Single(Definition{
				Params: []Param{
					Number("initial_length", "Initial length", "m"),
					Number("coefficient", "Expansion coefficient α", "1/K"),
					Number("change_temp", "Temperature change", "K"),
				},
				Preconditions: []Precondition{
					Require("initial_length > 0", "initial length must be positive"),
				},
				Outputs: []Output{
					{Name: "change_length", Label: "Change in length", Unit: "m", Expr: "coefficient * initial_length * change_temp"},
					{Name: "final_length", Label: "Final length", Unit: "m", Expr: "initial_length + change_length"},
				},
			}),
		},
		{
			Name:        "heat_conduction",
			Title:       "Heat Conduction",
			Category:    Thermodynamic,
			Description: "Fourier's law through a slab: `Q/t = k A (Th − Tc) / d`.",
			Variants: Single(Definition{
				Params: []Param{
					Number("conductivity", "Thermal conductivity k", "W/(m·K)"),
					Number("area", "Area", "m²"),
					Number("hot_temperature", "Hot side", "K"),
					Number("cold_temperature", "Cold side", "K"),
					Number("thickness", "Thickness", "m"),
				},
				Preconditions: []Precondition{
					Require("conductivity >= 0", "conductivity must not be negative"),
					Require("area > 0", "area must be positive"),
					Require("thickness > 0", "thickness must be positive"),
				},
				Outputs: []Output{
					{Name: "heat_rate", Label: "Heat flow rate", Unit: "W", Expr: "conductivity * area * (hot_temperature - cold_temperature) / thickness", Decimals: 4},
				},
			}),
		},
	}
}
