// Package scenario loads workbench scenario files: the assumption record plus
// optional Monte Carlo priors. YAML is the primary format; HJSON is accepted
// for hand-edited files with comments. Missing fields keep their defaults so
// a scenario file only states what it changes.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"

	"financeanalyst/pkg/core/assumption"
	"financeanalyst/pkg/core/montecarlo"
)

// File is one parsed scenario.
type File struct {
	Name        string                 `json:"name" yaml:"name"`
	Assumptions assumption.Assumptions `json:"assumptions" yaml:"assumptions"`
	Priors      []montecarlo.Prior     `json:"priors" yaml:"priors"`
}

// Load reads and parses a scenario file, choosing the codec by extension
// (.yaml/.yml or .hjson/.json). Defaults are applied first, then overlaid
// with the file's values, then structurally checked.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes scenario bytes. ext selects the codec, as in Load.
func Parse(data []byte, ext string) (File, error) {
	f := File{Assumptions: assumption.Default()}

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("failed to parse YAML scenario: %w", err)
		}
	case ".hjson", ".json":
		if err := hjson.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("failed to parse HJSON scenario: %w", err)
		}
	default:
		return File{}, fmt.Errorf("unsupported scenario format %q", ext)
	}

	if err := checkEnums(f.Assumptions); err != nil {
		return File{}, err
	}
	for _, p := range f.Priors {
		if err := p.Validate(); err != nil {
			return File{}, err
		}
	}
	return f, nil
}

// checkEnums rejects method strings the engines would silently misread.
func checkEnums(a assumption.Assumptions) error {
	switch a.ReinvestmentMethod {
	case assumption.ReinvestSalesToCapital, assumption.ReinvestPercentOfSales:
	default:
		return fmt.Errorf("unknown reinvestment method %q", a.ReinvestmentMethod)
	}
	switch a.TerminalMethod {
	case assumption.TerminalGordon, assumption.TerminalExitMultiple:
	default:
		return fmt.Errorf("unknown terminal method %q", a.TerminalMethod)
	}
	switch a.CostOfEquityMode {
	case assumption.CostOfEquityCAPM, assumption.CostOfEquityManual:
	default:
		return fmt.Errorf("unknown cost of equity mode %q", a.CostOfEquityMode)
	}
	switch a.ExitMetric {
	case assumption.ExitMetricEBITDA, assumption.ExitMetricEBIT,
		assumption.ExitMetricRevenue, assumption.ExitMetricFCFF:
	default:
		return fmt.Errorf("unknown exit metric %q", a.ExitMetric)
	}
	return nil
}
