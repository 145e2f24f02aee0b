package formula

func mechanics() []Endpoint {
	return []Endpoint{
		{
			Name:        "projectile",
			Title:       "Projectile Motion",
			Category:    Mechanics,
			Description: "Launch at speed *u* and angle *θ* on level ground with g = 9.8 m/s²:\n\n`R = u² sin(2θ) / g`, `H = u² sin²θ / 2g`, `T = 2u sinθ / g`.",
			Variants: Single(Definition{
				Params: []Param{
					Number("velocity", "Initial velocity", "m/s"),
					Number("angle", "Launch angle", "°"),
				},
				Preconditions: []Precondition{
					Require("velocity >= 0", "velocity must not be negative"),
					Require("angle >= 0 && angle <= 90", "angle must be between 0 and 90 degrees"),
				},
				Outputs: []Output{
					{Name: "range", Label: "Range", Unit: "m", Expr: "velocity ** 2 * sin(radians(2 * angle)) / g"},
					{Name: "height", Label: "Maximum height", Unit: "m", Expr: "velocity ** 2 * pow(sin(radians(angle)), 2) / (2 * g)"},
					{Name: "time", Label: "Time of flight", Unit: "s", Expr: "2 * velocity * sin(radians(angle)) / g"},
				},
			}),
		},
		{
			Name:        "kinetic_energy",
			Title:       "Kinetic Energy",
			Category:    Mechanics,
			Description: "`KE = ½ m v²`",
			Variants: Single(Definition{
				Params: []Param{
					Number("mass", "Mass", "kg"),
					Number("velocity", "Velocity", "m/s"),
				},
				Preconditions: []Precondition{
					Require("mass >= 0", "mass must not be negative"),
				},
				Outputs: []Output{
					{Name: "ke", Label: "Kinetic energy", Unit: "J", Expr: "0.5 * mass * velocity ** 2"},
				},
			}),
		},
		{
			Name:        "potential_energy",
			Title:       "Gravitational Potential Energy",
			Category:    Mechanics,
			Description: "`PE = m g h`. Gravity defaults to 9.8 m/s².",
			Variants: Single(Definition{
				Params: []Param{
					Number("mass", "Mass", "kg"),
					Number("height", "Height", "m"),
					OptionalNumber("gravity", "Gravity", "m/s²", 9.8),
				},
				Preconditions: []Precondition{
					Require("mass >= 0", "mass must not be negative"),
				},
				Outputs: []Output{
					{Name: "pe", Label: "Potential energy", Unit: "J", Expr: "mass * gravity * height"},
				},
			}),
		},
		{
			Name:        "momentum",
			Title:       "Linear Momentum",
			Category:    Mechanics,
			Description: "`p = m v`",
			Variants: Single(Definition{
				Params: []Param{
					Number("mass", "Mass", "kg"),
					Number("velocity", "Velocity", "m/s"),
				},
				Preconditions: []Precondition{
					Require("mass >= 0", "mass must not be negative"),
				},
				Outputs: []Output{
					{Name: "momentum", Label: "Momentum", Unit: "kg·m/s", Expr: "mass * velocity"},
				},
			}),
		},
		{
			Name:        "force",
			Title:       "Newton's Second Law",
			Category:    Mechanics,
			Description: "`F = m a`",
			Variants: Single(Definition{
				Params: []Param{
					Number("mass", "Mass", "kg"),
					Number("acceleration", "Acceleration", "m/s²"),
				},
				Preconditions: []Precondition{
					Require("mass >= 0", "mass must not be negative"),
				},
				Outputs: []Output{
					{Name: "force", Label: "Force", Unit: "N", Expr: "mass * acceleration"},
				},
			}),
		},
		{
			Name:        "work",
			Title:       "Work Done",
			Category:    Mechanics,
			Description: "`W = F d cos θ`. The angle between force and displacement defaults to 0°.",
			Variants: Single(Definition{
				Params: []Param{
					Number("force", "Force", "N"),
					Number("distance", "Distance", "m"),
					OptionalNumber("angle", "Angle", "°", 0),
				},
				Outputs: []Output{
					{Name: "work", Label: "Work", Unit: "J", Expr: "force * distance * cos(radians(angle))", Decimals: 6},
				},
			}),
		},
		{
			Name:        "power",
			Title:       "Power",
			Category:    Mechanics,
			Description: "`P = W / t`",
			Variants: Single(Definition{
				Params: []Param{
					Number("work", "Work", "J"),
					Number("time", "Time", "s"),
				},
				Preconditions: []Precondition{
					Require("time > 0", "time must be positive"),
				},
				Outputs: []Output{
					{Name: "power", Label: "Power", Unit: "W", Expr: "work / time"},
				},
			}),
		},
		{
			Name:        "centripetal_force",
			Title:       "Centripetal Force",
			Category:    Mechanics,
			Description: "`a = v² / r`, `F = m v² / r`",
			Variants: Single(Definition{
				Params: []Param{
					Number("mass", "Mass", "kg"),
					Number("velocity", "Tangential velocity", "m/s"),
					Number("radius", "Radius", "m"),
				},
				Preconditions: []Precondition{
					Require("mass >= 0", "mass must not be negative"),
					Require("radius > 0", "radius must be positive"),
				},
				Outputs: []Output{
					{Name: "acceleration", Label: "Centripetal acceleration", Unit: "m/s²", Expr: "velocity ** 2 / radius"},
					{Name: "force", Label: "Centripetal force", Unit: "N", Expr: "mass * acceleration"},
				},
			}),
		},
		{
			Name:        "gravitational_force",
			Title:       "Newton's Law of Gravitation",
			Category:    Mechanics,
			Description: "`F = G m₁ m₂ / r²` with G = 6.674×10⁻¹¹ N·m²/kg².",
			Variants: Single(Definition{
				Params: []Param{
					Number("mass1", "First mass", "kg"),
					Number("mass2", "Second mass", "kg"),
					Number("distance", "Distance between centres", "m"),
				},
				Preconditions: []Precondition{
					Require("mass1 >= 0 && mass2 >= 0", "masses must not be negative"),
					Require("distance > 0", "distance must be positive"),
				},
				Outputs: []Output{
					{Name: "force", Label: "Gravitational force", Unit: "N", Expr: "G * mass1 * mass2 / distance ** 2"},
				},
			}),
		},
		{
			Name:        "free_fall",
			Title:       "Free Fall",
			Category:    Mechanics,
			Description: "Drop from rest at height *h*: `t = √(2h / g)`, `v = √(2 g h)`. The plot samples the height over the fall.",
			Variants: Single(Definition{
				Params: []Param{
					Number("height", "Drop height", "m"),
					OptionalNumber("gravity", "Gravity", "m/s²", 9.8),
				},
				Preconditions: []Precondition{
					Require("height > 0", "height must be positive"),
					Require("gravity > 0", "gravity must be positive"),
				},
				Outputs: []Output{
					{Name: "time", Label: "Fall time", Unit: "s", Expr: "sqrt(2 * height / gravity)", Decimals: 4},
					{Name: "final_velocity", Label: "Impact velocity", Unit: "m/s", Expr: "sqrt(2 * gravity * height)", Decimals: 4},
				},
				Series: []Series{
					{
						Name:     "heights",
						Label:    "Height over time (m)",
						Var:      "t",
						From:     "0",
						To:       "time",
						Expr:     "height - 0.5 * gravity * t ** 2",
						Points:   11,
						Decimals: 3,
					},
				},
			}),
		},
		{
			Name:        "simple_harmonic_motion",
			Title:       "Simple Harmonic Motion",
			Category:    Mechanics,
			Description: "`x(t) = A cos(ωt + φ)` with `ω = 2πf`. The plot covers one period.",
			Variants: Single(Definition{
				Params: []Param{
					Number("amplitude", "Amplitude", "m"),
					Number("frequency", "Frequency", "Hz"),
					OptionalNumber("phase", "Phase", "°", 0),
				},
				Preconditions: []Precondition{
					Require("amplitude >= 0", "amplitude must not be negative"),
					Require("frequency > 0", "frequency must be positive"),
				},
				Outputs: []Output{
					{Name: "angular_frequency", Label: "Angular frequency", Unit: "rad/s", Expr: "2 * pi * frequency", Decimals: 4},
					{Name: "period", Label: "Period", Unit: "s", Expr: "1 / frequency", Decimals: 6},
					{Name: "max_velocity", Label: "Maximum velocity", Unit: "m/s", Expr: "amplitude * angular_frequency", Decimals: 4},
					{Name: "max_acceleration", Label: "Maximum acceleration", Unit: "m/s²", Expr: "amplitude * angular_frequency ** 2", Decimals: 4},
				},
				Series: []Series{
					{
						Name:     "displacement",
						Label:    "Displacement over one period (m)",
						Var:      "t",
						From:     "0",
						To:       "period",
						Expr:     "amplitude * cos(angular_frequency * t + radians(phase))",
						Points:   21,
						Decimals: 4,
					},
				},
			}),
		},
	}
}
