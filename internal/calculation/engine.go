package calculation

import (
	"fmt"

	"github.com/microdca/dcasim/internal/domain"
	"github.com/microdca/dcasim/internal/market"
)

// Engine orchestrates the projection and simulation runs. It holds no
// per-run state; every run builds and returns an independent result, so a
// rebuild with identical inputs reproduces identical outputs.
type Engine struct {
	Logger Logger
}

// NewEngine creates an engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the engine logger. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// RunComparison runs the cash-only baseline and the margin/income simulation
// over the same aligned calendar and locates the equity crossover, mirroring
// how the two policies are meant to be read side by side.
func (e *Engine) RunComparison(cfg *domain.SimulationConfig, al *market.Aligned) (*domain.ComparisonResult, error) {
	cash, err := e.RunCashOnly(cfg, al)
	if err != nil {
		return nil, fmt.Errorf("cash-only baseline: %w", err)
	}
	margin, err := e.RunSimulation(cfg, al)
	if err != nil {
		return nil, fmt.Errorf("margin simulation: %w", err)
	}

	cross := FindEquityCrossover(cash.EquitySeries(), margin.EquitySeries(), al.Dates)

	e.Logger.Infof("comparison built: %d market days, margin=%v income=%v",
		len(al.Dates), cfg.Margin.Active(), cfg.Income.Enabled)

	return &domain.ComparisonResult{
		Name:      cfg.Name,
		Dates:     al.Dates,
		CashOnly:  cash,
		Margin:    margin,
		Crossover: cross,
		MaxLTV:    cfg.Margin.MaxLTV(),
	}, nil
}
