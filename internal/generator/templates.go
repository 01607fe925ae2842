package generator

import (
	"fmt"
	"math"
	"sort"
	"text/template"
)

// DefaultTemplates returns the built-in template catalog. Entries are
// value objects constructed once at startup and never mutated.
func DefaultTemplates() []Template {
	return []Template{
		// ─── GATE AE ───────────────────────────────────────────────────
		{
			Pattern:    mustPattern("quadratic", "Solve {{.a}}x² + {{.b}}x + {{.c}} = 0 for x (round to 2 decimal places)."),
			Goal:       "GATE AE",
			Difficulty: "beginner",
			Topic:      "algebra",
			GenerateParams: func(r Rand) Params {
				return Params{"a": randInt(r, 1, 6), "b": randInt(r, -5, 6), "c": randInt(r, -5, 6)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return solveQuadratic(p.Int("a"), p.Int("b"), p.Int("c"))
			},
		},
		{
			Pattern:    mustPattern("thrust", "The thrust of a jet engine with mass flow rate {{.m}} kg/s and exhaust velocity {{.v}} m/s is (in kN, to two decimal places):"),
			Goal:       "GATE AE",
			Difficulty: "beginner",
			Topic:      "propulsion",
			GenerateParams: func(r Rand) Params {
				return Params{"m": randInt(r, 40, 60), "v": randInt(r, 300, 700)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return fmt.Sprintf("%.2f", float64(p.Int("m")*p.Int("v"))/1000), nil
			},
		},
		{
			Pattern:    mustPattern("lift_coefficient", "The lift coefficient of a wing at {{.angle}}° angle of attack is (to two decimal places):"),
			Goal:       "GATE AE",
			Difficulty: "intermediate",
			Topic:      "Aerodynamics",
			GenerateParams: func(r Rand) Params {
				return Params{"angle": randInt(r, 2, 8)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return fmt.Sprintf("B. %.2f", thinAirfoilCl(p.Int("angle"))), nil
			},
			Options: func(p Params) ([]string, error) {
				angle := p.Int("angle")
				return []string{
					fmt.Sprintf("A. %.2f", thinAirfoilCl(angle+1)),
					fmt.Sprintf("B. %.2f", thinAirfoilCl(angle)),
					fmt.Sprintf("C. %.2f", thinAirfoilCl(max(1, angle-1))),
					fmt.Sprintf("D. %.2f", thinAirfoilCl(angle+2)),
				}, nil
			},
		},
		{
			Pattern:    mustPattern("beam_moment", "A simply supported beam (length {{.L}} m, point load {{.P}} kN at center) has maximum bending moment in kNm:"),
			Goal:       "GATE AE",
			Difficulty: "beginner",
			Topic:      "Structures",
			GenerateParams: func(r Rand) Params {
				return Params{"L": randInt(r, 1, 4), "P": randInt(r, 5, 15)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return fmt.Sprintf("%.2f", float64(p.Int("P")*p.Int("L"))/4), nil
			},
		},
		{
			Pattern:    mustPattern("compressor_stage", "A compressor stage has a stagnation pressure ratio of {{.pr}}. If inlet stagnation temperature is {{.T}} K, the outlet stagnation temperature is (in K, γ = 1.4, to two decimal places):"),
			Goal:       "GATE AE",
			Difficulty: "intermediate",
			Topic:      "Propulsion",
			GenerateParams: func(r Rand) Params {
				return Params{"pr": roundTo(1.1+0.2*r.Float64(), 1), "T": randInt(r, 280, 320)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				out := float64(p.Int("T")) * math.Pow(p.Float("pr"), (1.4-1)/1.4)
				return fmt.Sprintf("%.2f", out), nil
			},
		},
		{
			Pattern:    mustPattern("load_factor", "For an aircraft in a steady, level, coordinated turn at a turn radius of {{.R}} m and velocity {{.V}} m/s, the load factor is (to two decimal places):"),
			Goal:       "GATE AE",
			Difficulty: "advanced",
			Topic:      "Flight Mechanics",
			GenerateParams: func(r Rand) Params {
				return Params{"R": randInt(r, 500, 1500), "V": randInt(r, 50, 100)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return fmt.Sprintf("B. %.2f", turnLoadFactor(p.Int("V"), p.Int("R"))), nil
			},
			Options: func(p Params) ([]string, error) {
				n := turnLoadFactor(p.Int("V"), p.Int("R"))
				return []string{
					fmt.Sprintf("A. %.2f", n-0.2),
					fmt.Sprintf("B. %.2f", n),
					fmt.Sprintf("C. %.2f", n+0.2),
					fmt.Sprintf("D. %.2f", n+0.4),
				}, nil
			},
		},
		{
			Pattern:    mustPattern("eigenvalue_sum", "The sum of the eigenvalues of the matrix [[{{.a}}, 0], [0, {{.b}}]] is (to one decimal place):"),
			Goal:       "GATE AE",
			Difficulty: "advanced",
			Topic:      "Engineering Mathematics",
			GenerateParams: func(r Rand) Params {
				return Params{"a": randInt(r, 1, 5), "b": randInt(r, 1, 5)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return fmt.Sprintf("%.1f", float64(p.Int("a")+p.Int("b"))), nil
			},
		},
		{
			Pattern:    mustPattern("shaft_shear", "A solid circular shaft of diameter {{.d}} mm is subjected to a torque of {{.T}} Nm. The maximum shear stress is (in MPa, to two decimal places):"),
			Goal:       "GATE AE",
			Difficulty: "intermediate",
			Topic:      "Mechanics",
			GenerateParams: func(r Rand) Params {
				return Params{"d": randInt(r, 20, 50), "T": randInt(r, 100, 500)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				d := float64(p.Int("d")) / 1000
				stress := (16 * float64(p.Int("T")) * 1000) / (math.Pi * d * d * d) / 1e6
				return fmt.Sprintf("%.2f", stress), nil
			},
		},
		{
			Pattern:    mustPattern("orbital_velocity", "The orbital velocity of a satellite in a circular orbit at {{.h}} km altitude is (in km/s, to two decimal places, R = 6371 km, μ = 398600 km³/s²):"),
			Goal:       "GATE AE",
			Difficulty: "intermediate",
			Topic:      "Space Dynamics",
			GenerateParams: func(r Rand) Params {
				return Params{"h": randInt(r, 300, 600)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return fmt.Sprintf("B. %.2f", orbitalVelocity(p.Int("h"))), nil
			},
			Options: func(p Params) ([]string, error) {
				v := orbitalVelocity(p.Int("h"))
				return []string{
					fmt.Sprintf("A. %.2f", v-0.2),
					fmt.Sprintf("B. %.2f", v),
					fmt.Sprintf("C. %.2f", v+0.2),
					fmt.Sprintf("D. %.2f", v+0.4),
				}, nil
			},
		},
		{
			Pattern:    mustPattern("determinant", "The determinant of the matrix [[{{.a}}, {{.b}}], [{{.c}}, {{.d}}]] is:"),
			Goal:       "GATE AE",
			Difficulty: "advanced",
			Topic:      "Linear Algebra",
			GenerateParams: func(r Rand) Params {
				return Params{
					"a": randInt(r, 1, 5), "b": randInt(r, 1, 5),
					"c": randInt(r, 1, 5), "d": randInt(r, 1, 5),
				}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return fmt.Sprintf("%d", p.Int("a")*p.Int("d")-p.Int("b")*p.Int("c")), nil
			},
		},
		{
			Pattern:    mustPattern("specific_heat", "For an ideal gas with specific heat at constant pressure {{.cp}} J/kg·K and specific heat ratio {{.gamma}}, the specific heat at constant volume is (in J/kg·K, to one decimal place):"),
			Goal:       "GATE AE",
			Difficulty: "beginner",
			Topic:      "Thermodynamics",
			GenerateParams: func(r Rand) Params {
				return Params{"cp": randInt(r, 1000, 1200), "gamma": roundTo(1.3+0.2*r.Float64(), 2)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return fmt.Sprintf("B. %.1f", float64(p.Int("cp"))/p.Float("gamma")), nil
			},
			Options: func(p Params) ([]string, error) {
				cv := float64(p.Int("cp")) / p.Float("gamma")
				return []string{
					fmt.Sprintf("A. %.1f", cv-50),
					fmt.Sprintf("B. %.1f", cv),
					fmt.Sprintf("C. %.1f", cv+50),
					fmt.Sprintf("D. %.1f", cv+100),
				}, nil
			},
		},

		// ─── Amazon SDE ────────────────────────────────────────────────
		{
			Pattern:    mustPattern("bst_complexity", "What is the time complexity of {{.operation}} in a balanced binary search tree?"),
			Goal:       "Amazon SDE",
			Difficulty: "intermediate",
			Topic:      "Data Structures",
			GenerateParams: func(r Rand) Params {
				return Params{"operation": choice(r, "searching", "insertion", "deletion")}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return "B. O(log n)", nil
			},
			Options: staticOptions("A. O(1)", "B. O(log n)", "C. O(n)", "D. O(n log n)"),
		},
		{
			Pattern:    mustPattern("graph_space", "What is the space complexity of an adjacency {{.structure}} representation of a graph with V vertices and E edges?"),
			Goal:       "Amazon SDE",
			Difficulty: "advanced",
			Topic:      "Data Structures",
			GenerateParams: func(r Rand) Params {
				return Params{"structure": choice(r, "list", "matrix")}
			},
			ComputeAnswer: func(p Params) (string, error) {
				if p.Str("structure") == "list" {
					return "B. O(V + E)", nil
				}
				return "C. O(V²)", nil
			},
			Options: staticOptions("A. O(V)", "B. O(V + E)", "C. O(V²)", "D. O(E²)"),
		},
		{
			Pattern:    mustPattern("tree_nodes", "What is the maximum number of nodes in a binary tree of height {{.h}}?"),
			Goal:       "Amazon SDE",
			Difficulty: "intermediate",
			Topic:      "Data Structures",
			GenerateParams: func(r Rand) Params {
				return Params{"h": randInt(r, 2, 6)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return fmt.Sprintf("%d", (1<<p.Int("h"))-1), nil
			},
		},
		{
			Pattern:    mustPattern("aws_service", "Which AWS service provides a {{.service_type}}?"),
			Goal:       "Amazon SDE",
			Difficulty: "beginner",
			Topic:      "AWS",
			GenerateParams: func(r Rand) Params {
				return Params{"service_type": choice(r, "NoSQL database", "managed message queuing service")}
			},
			ComputeAnswer: func(p Params) (string, error) {
				if p.Str("service_type") == "NoSQL database" {
					return "B. DynamoDB", nil
				}
				return "A. SQS", nil
			},
			Options: func(p Params) ([]string, error) {
				if p.Str("service_type") == "NoSQL database" {
					return []string{"A. SQS", "B. DynamoDB", "C. RDS", "D. Lambda"}, nil
				}
				return []string{"A. SQS", "B. SNS", "C. Kinesis", "D. Lambda"}, nil
			},
		},
		{
			Pattern:    mustPattern("sort_complexity", "What is the time complexity of {{.algorithm}} sort in the average case?"),
			Goal:       "Amazon SDE",
			Difficulty: "intermediate",
			Topic:      "Algorithms",
			GenerateParams: func(r Rand) Params {
				return Params{"algorithm": choice(r, "Merge", "Quick")}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return "B. O(n log n)", nil
			},
			Options: staticOptions("A. O(n)", "B. O(n log n)", "C. O(n²)", "D. O(log n)"),
		},
		{
			Pattern:    mustPattern("sql_rows", "A SQL query selects rows from a table with {{.n}} rows where a column value is greater than {{.val}}. How many rows are returned?"),
			Goal:       "Amazon SDE",
			Difficulty: "beginner",
			Topic:      "Databases",
			GenerateParams: func(r Rand) Params {
				return Params{"n": randInt(r, 10, 50), "val": randInt(r, 1, 5)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return fmt.Sprintf("%d", max(0, p.Int("n")-p.Int("val"))), nil
			},
		},
		{
			Pattern:    mustPattern("cap_theorem", "What does the CAP theorem stand for in distributed systems?"),
			Goal:       "Amazon SDE",
			Difficulty: "advanced",
			Topic:      "System Design",
			GenerateParams: func(r Rand) Params {
				return Params{}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return "A. Consistency, Availability, Partition tolerance", nil
			},
			Options: staticOptions(
				"A. Consistency, Availability, Partition tolerance",
				"B. Consistency, Accuracy, Performance",
				"C. Concurrency, Availability, Performance",
				"D. Consistency, Atomicity, Partition tolerance",
			),
		},
		{
			Pattern:    mustPattern("http_status", "The HTTP status code {{.code}} indicates:"),
			Goal:       "Amazon SDE",
			Difficulty: "intermediate",
			Topic:      "Web Development",
			GenerateParams: func(r Rand) Params {
				codes := []int{200, 404, 500}
				return Params{"code": codes[r.Intn(len(codes))]}
			},
			ComputeAnswer: func(p Params) (string, error) {
				switch p.Int("code") {
				case 200:
					return "OK", nil
				case 404:
					return "Not Found", nil
				default:
					return "Internal Server Error", nil
				}
			},
		},

		// ─── CAT ───────────────────────────────────────────────────────
		{
			Pattern:    mustPattern("simple_interest", "What is the simple interest on ${{.P}} at {{.r}}% per annum for {{.t}} years?"),
			Goal:       "CAT",
			Difficulty: "beginner",
			Topic:      "Quantitative Ability - Interest",
			GenerateParams: func(r Rand) Params {
				return Params{"P": randInt(r, 500, 2000), "r": randInt(r, 2, 10), "t": randInt(r, 1, 5)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return fmt.Sprintf("$%.2f", float64(p.Int("P")*p.Int("r")*p.Int("t"))/100), nil
			},
		},
		{
			Pattern:    mustPattern("linear_solve", "Solve for x: {{.a}}x + {{.b}} = {{.c}}."),
			Goal:       "CAT",
			Difficulty: "intermediate",
			Topic:      "Quantitative Ability - Algebra",
			GenerateParams: func(r Rand) Params {
				return Params{"a": randInt(r, 2, 6), "b": randInt(r, 1, 10), "c": randInt(r, 10, 20)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				x := float64(p.Int("c")-p.Int("b")) / float64(p.Int("a"))
				return fmt.Sprintf("B. %.0f", x), nil
			},
			Options: func(p Params) ([]string, error) {
				x := float64(p.Int("c")-p.Int("b")) / float64(p.Int("a"))
				return []string{
					fmt.Sprintf("A. %.0f", x-1),
					fmt.Sprintf("B. %.0f", x),
					fmt.Sprintf("C. %.0f", x+1),
					fmt.Sprintf("D. %.0f", x+2),
				}, nil
			},
		},
		{
			Pattern:    mustPattern("triangle_area", "Find the area of a triangle with base {{.b}} cm and height {{.h}} cm."),
			Goal:       "CAT",
			Difficulty: "intermediate",
			Topic:      "Quantitative Ability - Geometry",
			GenerateParams: func(r Rand) Params {
				return Params{"b": randInt(r, 4, 10), "h": randInt(r, 5, 12)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return fmt.Sprintf("%.2f", 0.5*float64(p.Int("b")*p.Int("h"))), nil
			},
		},
		{
			Pattern:    mustPattern("sales_reading", "The total sales for company X in year {{.year}} is (in thousands):"),
			Goal:       "CAT",
			Difficulty: "beginner",
			Topic:      "Data Interpretation and Logical Reasoning - Data Interpretation",
			GenerateParams: func(r Rand) Params {
				return Params{"year": randInt(r, 1, 5), "sales": randInt(r, 100, 400)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return fmt.Sprintf("B. %d", p.Int("sales")), nil
			},
			Options: func(p Params) ([]string, error) {
				s := p.Int("sales")
				return []string{
					fmt.Sprintf("A. %d", s-50),
					fmt.Sprintf("B. %d", s),
					fmt.Sprintf("C. %d", s+50),
					fmt.Sprintf("D. %d", s+100),
				}, nil
			},
		},
		{
			Pattern:    mustPattern("remainders", "The smallest number that leaves remainders {{.r1}}, {{.r2}} when divided by {{.d1}}, {{.d2}} respectively is:"),
			Goal:       "CAT",
			Difficulty: "intermediate",
			Topic:      "Quantitative Ability - HCF and LCM",
			GenerateParams: func(r Rand) Params {
				return Params{
					"r1": randInt(r, 1, 5), "r2": randInt(r, 1, 5),
					"d1": randInt(r, 5, 10), "d2": randInt(r, 5, 10),
				}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return fmt.Sprintf("B. %d", remainderNumber(p)), nil
			},
			Options: func(p Params) ([]string, error) {
				n := remainderNumber(p)
				return []string{
					fmt.Sprintf("A. %d", n-10),
					fmt.Sprintf("B. %d", n),
					fmt.Sprintf("C. %d", n+10),
					fmt.Sprintf("D. %d", n+20),
				}, nil
			},
		},
		{
			Pattern:    mustPattern("root_sum", "The sum of the roots of the quadratic equation {{.a}}x² + {{.b}}x + {{.c}} = 0 is:"),
			Goal:       "CAT",
			Difficulty: "advanced",
			Topic:      "Quantitative Ability - Quadratic Equations",
			GenerateParams: func(r Rand) Params {
				return Params{"a": randInt(r, 1, 5), "b": randInt(r, -10, 10), "c": randInt(r, -10, 10)}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return fmt.Sprintf("%.2f", -float64(p.Int("b"))/float64(p.Int("a"))), nil
			},
		},
		{
			Pattern:    mustPattern("seating", "In a seating arrangement, if A sits to the left of B and B sits to the right of C, who is in the middle?"),
			Goal:       "CAT",
			Difficulty: "beginner",
			Topic:      "Data Interpretation and Logical Reasoning - Logical Reasoning",
			GenerateParams: func(r Rand) Params {
				return Params{}
			},
			ComputeAnswer: func(p Params) (string, error) {
				return "B. B", nil
			},
			Options: staticOptions("A. A", "B. B", "C. C", "D. Cannot be determined"),
		},
		{
			Pattern:    mustPattern("die_probability", "The probability of getting a {{.event}} when rolling a fair six-sided die is (to two decimal places):"),
			Goal:       "CAT",
			Difficulty: "intermediate",
			Topic:      "Quantitative Ability - Probability",
			GenerateParams: func(r Rand) Params {
				return Params{"event": choice(r, "prime number", "even number")}
			},
			ComputeAnswer: func(p Params) (string, error) {
				// Both events cover 3 of 6 faces.
				return "0.50", nil
			},
		},
	}
}

// ─── Catalog helpers ────────────────────────────────────────────────────────

func mustPattern(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(text))
}

// randInt draws uniformly from [lo, hi).
func randInt(r Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo)
}

func choice(r Rand, items ...string) string {
	return items[r.Intn(len(items))]
}

func roundTo(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}

func staticOptions(opts ...string) func(Params) ([]string, error) {
	return func(Params) ([]string, error) {
		out := make([]string, len(opts))
		copy(out, opts)
		return out, nil
	}
}

// solveQuadratic returns the real roots of ax² + bx + c = 0, sorted
// ascending, rounded to two decimals. A negative discriminant is a
// computation error and aborts the batch.
func solveQuadratic(a, b, c int) (string, error) {
	disc := float64(b*b - 4*a*c)
	if disc < 0 {
		return "", fmt.Errorf("equation %dx²%+dx%+d = 0 has no real roots", a, b, c)
	}

	sq := math.Sqrt(disc)
	roots := []float64{
		(-float64(b) - sq) / (2 * float64(a)),
		(-float64(b) + sq) / (2 * float64(a)),
	}
	sort.Float64s(roots)

	if disc == 0 {
		return fmt.Sprintf("%.2f", roots[0]), nil
	}
	return fmt.Sprintf("%.2f, %.2f", roots[0], roots[1]), nil
}

// thinAirfoilCl is the thin-airfoil lift coefficient 2πα with α in
// degrees.
func thinAirfoilCl(angleDeg int) float64 {
	return 2 * math.Pi * float64(angleDeg) * math.Pi / 180
}

func turnLoadFactor(v, radius int) float64 {
	a := float64(v*v) / (9.81 * float64(radius))
	return math.Sqrt(1 + a*a)
}

func orbitalVelocity(altitudeKm int) float64 {
	return math.Sqrt(398600 / float64(6371+altitudeKm))
}

func remainderNumber(p Params) int {
	return p.Int("r1") + floorDiv(p.Int("d1")*(p.Int("r2")-p.Int("r1")), gcd(p.Int("d1"), p.Int("d2")))
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
