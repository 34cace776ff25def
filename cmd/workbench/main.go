// Command workbench runs the valuation pipeline against a scenario file from
// the terminal: one-shot DCF, validation, sensitivity tables, or a Monte
// Carlo study.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"financeanalyst/pkg/core/assumption"
	"financeanalyst/pkg/core/montecarlo"
	"financeanalyst/pkg/core/pipeline"
	"financeanalyst/pkg/core/scenario"
	"financeanalyst/pkg/core/sensitivity"
	"financeanalyst/pkg/core/validate"
)

func main() {
	godotenv.Load()

	scenarioPath := flag.String("scenario", "", "Scenario file (.yaml or .hjson); defaults when empty")
	mode := flag.String("mode", "dcf", "Mode: dcf, validate, sensitivity, montecarlo")
	iterations := flag.Int("iterations", 5000, "Monte Carlo iterations")
	seed := flag.Uint64("seed", 1, "Monte Carlo seed")
	flag.Parse()

	f := scenario.File{Name: "default", Assumptions: assumption.Default()}
	if *scenarioPath != "" {
		var err error
		f, err = scenario.Load(*scenarioPath)
		if err != nil {
			fmt.Printf("Error loading scenario: %v\n", err)
			os.Exit(1)
		}
	}
	a := f.Assumptions

	switch *mode {
	case "dcf":
		runDCF(f.Name, a)
	case "validate":
		runValidate(a)
	case "sensitivity":
		runSensitivity(a)
	case "montecarlo":
		runMonteCarlo(a, f.Priors, *iterations, *seed)
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}

func runDCF(name string, a assumption.Assumptions) {
	res, rows := pipeline.RunRows(a)
	v := validate.Check(a)

	fmt.Printf("Scenario: %s (%s)\n\n", name, a.Currency)
	fmt.Printf("%-5s %15s %10s %15s %15s\n", "Year", "Revenue", "Margin", "NOPAT", "FCFF")
	for _, r := range rows {
		fmt.Printf("%-5d %15.0f %9.1f%% %15.0f %15.0f\n",
			r.Year+1, r.Revenue, r.EBITMargin*100, r.NOPAT, r.FCFF)
	}

	fmt.Printf("\nWACC:              %8.2f%%\n", res.WACC*100)
	fmt.Printf("PV of FCFF:        %15.0f\n", res.PVFCFF)
	fmt.Printf("PV of Terminal:    %15.0f\n", res.PVTerminal)
	fmt.Printf("Enterprise Value:  %15.0f\n", res.EnterpriseVal)
	fmt.Printf("Equity Value:      %15.0f\n", res.EquityValue)
	fmt.Printf("Per Share:         %15.2f\n", res.PerShare)
	fmt.Printf("Margin of Safety:  %14.1f%%\n", res.MarginOfSafety*100)

	if !v.IsValid {
		fmt.Println("\nBLOCKING ERRORS (result not trustworthy):")
		for _, is := range v.Errors {
			fmt.Printf("  [%s] %s\n", is.Code, is.Message)
		}
	}
	for _, is := range v.Warnings {
		fmt.Printf("\nWarning [%s]: %s\n", is.Code, is.Message)
	}
}

func runValidate(a assumption.Assumptions) {
	v := validate.Check(a)
	if v.IsValid && len(v.Warnings) == 0 {
		fmt.Println("Scenario is clean.")
		return
	}
	for _, is := range v.Errors {
		fmt.Printf("ERROR   [%s] %s\n", is.Code, is.Message)
	}
	for _, is := range v.Warnings {
		fmt.Printf("WARNING [%s] %s\n", is.Code, is.Message)
	}
	if !v.IsValid {
		os.Exit(1)
	}
}

func runSensitivity(a assumption.Assumptions) {
	base := pipeline.Run(a).PerShare

	grids, err := sensitivity.GenerateHeatmaps(a, sensitivity.DefaultConfig(a))
	if err != nil {
		fmt.Printf("Error generating heatmaps: %v\n", err)
		os.Exit(1)
	}
	for _, g := range grids {
		fmt.Printf("\n%s (per share, rows = %s, cols = %s)\n", g.Name, g.YVariable, g.XVariable)
		fmt.Printf("%10s", "")
		for _, x := range g.XValues {
			fmt.Printf(" %9.4f", x)
		}
		fmt.Println()
		for yi, row := range g.Values {
			fmt.Printf("%10.4f", g.YValues[yi])
			for _, v := range row {
				fmt.Printf(" %9.2f", v)
			}
			fmt.Println()
		}
	}

	items, err := sensitivity.GenerateTornado(a, base, sensitivity.DefaultPerturbations())
	if err != nil {
		fmt.Printf("Error generating tornado: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nTornado (base per share %.2f)\n", base)
	fmt.Printf("%-20s %10s %10s %10s\n", "Variable", "Down", "Up", "Impact")
	for _, it := range items {
		fmt.Printf("%-20s %+10.2f %+10.2f %10.2f\n", it.Variable, it.DeltaDown, it.DeltaUp, it.Impact)
	}
}

func runMonteCarlo(a assumption.Assumptions, priors []montecarlo.Prior, iterations int, seed uint64) {
	if len(priors) == 0 {
		priors = montecarlo.GeneratePriors(a)
	}
	res, err := montecarlo.Run(a, priors, iterations, seed)
	if err != nil {
		fmt.Printf("Error running simulation: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Monte Carlo: %d runs, %d valid (%.1f%%)\n",
		res.Requested, res.Valid, float64(res.Valid)/float64(res.Requested)*100)
	fmt.Printf("P5:  %10.2f\n", res.P5)
	fmt.Printf("P50: %10.2f\n", res.P50)
	fmt.Printf("P95: %10.2f\n", res.P95)
}
