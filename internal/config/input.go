package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/microdca/dcasim/internal/domain"
	"github.com/microdca/dcasim/pkg/dateutil"
	"github.com/microdca/dcasim/pkg/money"
)

// File is the top-level scenario file: a daily simulation scenario, a
// cash-only projection scenario, or both.
type File struct {
	Simulation *domain.SimulationConfig `yaml:"simulation"`
	Projection *domain.ProjectionConfig `yaml:"projection"`
}

// InputParser handles parsing of scenario configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario file, applies defaults and clamps, and
// validates it. All failures are reported before any simulation step runs.
func (ip *InputParser) LoadFromFile(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&f)
	if err := ip.Validate(&f); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &f, nil
}

// ApplyDefaults fills in omitted fields and clamps user-supplied percentages
// into their documented ranges.
func (ip *InputParser) ApplyDefaults(f *File) {
	if sim := f.Simulation; sim != nil {
		if !sim.Frequency.Valid() {
			sim.Frequency = domain.FreqMonthly
		}
		if sim.Margin.DayCount != 360 {
			sim.Margin.DayCount = 365
		}
		if !sim.Margin.Policy.Valid() {
			sim.Margin.Policy = domain.PolicyOff
		}
		if !sim.Income.Mode.Valid() {
			sim.Income.Mode = domain.ModeInterestOnly
		}
		if !sim.Income.AdjustFrequency.Valid() {
			sim.Income.AdjustFrequency = domain.FreqMonthly
		}
		if !sim.BillsTax.Handling.Valid() {
			sim.BillsTax.Handling = domain.TaxReserve
		}

		sim.Margin.AnnualRatePct = money.ClampPercent(sim.Margin.AnnualRatePct)
		sim.Margin.MaxLTVPct = money.ClampPercent(sim.Margin.MaxLTVPct)
		sim.Income.SplitPct = money.ClampPercent(sim.Income.SplitPct)
		sim.Income.AnnualYieldPct = money.ClampPercent(sim.Income.AnnualYieldPct)
		sim.Income.TargetRatioPct = money.ClampPercent(sim.Income.TargetRatioPct)
		sim.BillsTax.TaxRatePct = money.ClampPercent(sim.BillsTax.TaxRatePct)

		normalizeTickers(&sim.Core)
		normalizeTickers(&sim.Income.Sleeve)
	}

	if proj := f.Projection; proj != nil {
		if !proj.Compounding.Valid() {
			proj.Compounding = domain.CompoundMonthly
		}
		if proj.ContributionsYear <= 0 {
			proj.ContributionsYear = 12
		}
		proj.TaxRatePct = money.ClampPercent(proj.TaxRatePct)
		proj.CorrectionPct = money.ClampPercent(proj.CorrectionPct)
	}
}

// normalizeTickers uppercases, trims, and drops empty entries.
func normalizeTickers(s *domain.SleeveConfig) {
	out := s.Tickers[:0]
	for _, t := range s.Tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	s.Tickers = out
}

// Validate checks the loaded scenario file.
func (ip *InputParser) Validate(f *File) error {
	if f.Simulation == nil && f.Projection == nil {
		return fmt.Errorf("scenario file must contain a simulation or projection section")
	}
	if f.Simulation != nil {
		if err := ip.validateSimulation(f.Simulation); err != nil {
			return fmt.Errorf("simulation: %w", err)
		}
	}
	if f.Projection != nil {
		if err := ip.validateProjection(f.Projection); err != nil {
			return fmt.Errorf("projection: %w", err)
		}
	}
	return nil
}

func (ip *InputParser) validateSimulation(sim *domain.SimulationConfig) error {
	start, err := dateutil.ParseDay(sim.Start)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	end, err := dateutil.ParseDay(sim.End)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}
	if !end.After(start) {
		return fmt.Errorf("%s..%s: %w", sim.Start, sim.End, domain.ErrInvalidDateRange)
	}
	if len(sim.Core.Tickers) == 0 {
		return fmt.Errorf("core sleeve: %w", domain.ErrEmptyAllocation)
	}
	if sim.Income.Enabled && len(sim.Income.Sleeve.Tickers) == 0 {
		return fmt.Errorf("income sleeve enabled: %w", domain.ErrEmptyAllocation)
	}
	if sim.StartCash < 0 || sim.Contribution < 0 {
		return fmt.Errorf("start_cash and contribution cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateProjection(proj *domain.ProjectionConfig) error {
	if proj.Years <= 0 {
		return fmt.Errorf("years=%d: %w", proj.Years, domain.ErrInvalidYears)
	}
	if len(proj.Assets) == 0 {
		return fmt.Errorf("assets: %w", domain.ErrEmptyAllocation)
	}
	return nil
}

// CreateExampleConfiguration builds a complete scenario file with both a
// daily simulation and a cash-only projection.
func (ip *InputParser) CreateExampleConfiguration() *File {
	return &File{
		Simulation: &domain.SimulationConfig{
			Name:          "Core + income with margin assist",
			Start:         "2022-01-03",
			End:           "2024-12-31",
			StartCash:     10000,
			Contribution:  500,
			Frequency:     domain.FreqMonthly,
			RebalanceBuys: true,
			Core: domain.SleeveConfig{
				Tickers: []string{"VTI", "QQQ"},
				Weights: []float64{60, 40},
			},
			Income: domain.IncomeConfig{
				Enabled:         true,
				Sleeve:          domain.SleeveConfig{Tickers: []string{"JEPI"}, Weights: []float64{100}},
				SplitPct:        25,
				AnnualYieldPct:  7.5,
				Mode:            domain.ModeTargetRatio,
				AdjustFrequency: domain.FreqMonthly,
				TargetRatioPct:  20,
				AllowBorrow:     false,
			},
			Margin: domain.MarginConfig{
				Enabled:       true,
				AnnualRatePct: 6.5,
				DayCount:      365,
				MaxLTVPct:     40,
				Policy:        domain.PolicyAssist,
			},
			BillsTax: domain.BillsTaxConfig{
				Enabled:     true,
				MonthlyBill: 150,
				TaxRatePct:  24,
				Handling:    domain.TaxReserve,
			},
		},
		Projection: &domain.ProjectionConfig{
			StartingBalance:   10000,
			Contribution:      500,
			ContributionsYear: 12,
			Compounding:       domain.CompoundMonthly,
			Years:             10,
			Assets: []domain.ProjectionAsset{
				{Name: "Broad market", Weight: 60, GrowthPct: 8, YieldPct: 1.5, ReinvestPct: 100},
				{Name: "Income fund", Weight: 40, GrowthPct: 3, YieldPct: 7.5, ReinvestPct: 50},
			},
			TaxRatePct:      24,
			CorrectionPct:   15,
			CorrectionEvery: 7,
		},
	}
}

// Marshal renders a scenario file back to YAML (used by the example command).
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
