// Package search finds the smallest attack power at which one faction wins a
// combat without losing a single unit. Each probe is a full, independent
// simulation over a fresh copy of the starting registry.
package search

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mitchelldurbincs/GridCombat/internal/game"
	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
	"github.com/mitchelldurbincs/GridCombat/internal/monitoring"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrSearchBoundExceeded is returned when no power up to the ceiling yields a no-loss win
var ErrSearchBoundExceeded = errors.New("no winning attack power within search bound")

// Strategy selects how candidate powers are probed
type Strategy string

const (
	// StrategyBisect doubles the trial power until it succeeds, then binary
	// searches below it. Assumes success is monotonic in power.
	StrategyBisect Strategy = "bisect"

	// StrategyLinear probes 0, 1, 2, ... and takes the first success
	StrategyLinear Strategy = "linear"
)

// ParseStrategy validates a strategy name
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyBisect, StrategyLinear:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown search strategy %q", s)
	}
}

// DefaultMaxAttackPower is the search ceiling used when Options leaves it unset
const DefaultMaxAttackPower = 1024

// Options configures a Searcher
type Options struct {
	Faction        core.Faction
	Strategy       Strategy
	MaxAttackPower int
	// Workers bounds concurrent probes for StrategyLinear; values below 2 run sequentially
	Workers int
	// AbortOnLoss cuts probes short at the first loss of Faction
	AbortOnLoss bool
	// MaxRounds is passed to every probe
	MaxRounds int
	Logger    zerolog.Logger
}

// Result is the minimal power and the outcome of the full run at that power
type Result struct {
	Power       int          `json:"power" yaml:"power"`
	Outcome     game.Outcome `json:"outcome" yaml:"outcome"`
	Evaluations int          `json:"evaluations" yaml:"evaluations"`
}

// Searcher runs the parameter search over a read-only starting registry
type Searcher struct {
	initial *core.Registry
	opts    Options
	logger  zerolog.Logger
	monitor *monitoring.ProbeMonitor

	mu          sync.Mutex
	evaluations int
}

// NewSearcher creates a searcher; initial is never mutated
func NewSearcher(initial *core.Registry, opts Options) (*Searcher, error) {
	if initial == nil {
		return nil, errors.New("search needs a starting registry")
	}
	if opts.Strategy == "" {
		opts.Strategy = StrategyBisect
	}
	if _, err := ParseStrategy(string(opts.Strategy)); err != nil {
		return nil, err
	}
	if opts.MaxAttackPower <= 0 {
		opts.MaxAttackPower = DefaultMaxAttackPower
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	logger := opts.Logger.With().
		Str("component", "ParameterSearch").
		Str("faction", opts.Faction.String()).
		Logger()
	return &Searcher{
		initial: initial,
		opts:    opts,
		logger:  logger,
		monitor: monitoring.NewProbeMonitor(logger),
	}, nil
}

// Search returns the minimal non-negative attack power for a no-loss win
func (s *Searcher) Search(ctx context.Context) (Result, error) {
	s.logger.Info().
		Str("strategy", string(s.opts.Strategy)).
		Int("max_attack_power", s.opts.MaxAttackPower).
		Int("workers", s.opts.Workers).
		Msg("Starting attack power search")

	var (
		power int
		err   error
	)
	switch s.opts.Strategy {
	case StrategyLinear:
		power, err = s.linear(ctx)
	default:
		power, err = s.bisect(ctx)
	}
	if err != nil {
		return Result{}, err
	}

	// The reported outcome always comes from a complete run
	outcome, err := s.Simulate(ctx, power, false)
	if err != nil {
		return Result{}, fmt.Errorf("final run at power %d: %w", power, err)
	}
	if !outcome.NoLossWin(s.opts.Faction) {
		return Result{}, fmt.Errorf("final run at power %d did not reproduce a no-loss win", power)
	}

	res := Result{Power: power, Outcome: outcome, Evaluations: s.Evaluations()}
	s.logger.Info().
		Int("power", res.Power).
		Int("rounds", outcome.Rounds).
		Int("remaining_hp", outcome.RemainingHP).
		Int("evaluations", res.Evaluations).
		Msg("Attack power search complete")
	s.monitor.GetMetrics().Log(s.logger)
	return res, nil
}

// bisect doubles from 1 until the predicate holds, then narrows the gap
// between the largest failing and smallest succeeding power. Power 0 is only
// probed when 1 already succeeds.
func (s *Searcher) bisect(ctx context.Context) (int, error) {
	lo, hi := -1, 1
	for {
		ok, err := s.wins(ctx, hi)
		if err != nil {
			return 0, err
		}
		if ok {
			break
		}
		lo = hi
		if hi >= s.opts.MaxAttackPower {
			return 0, fmt.Errorf("faction %s up to power %d: %w", s.opts.Faction, s.opts.MaxAttackPower, ErrSearchBoundExceeded)
		}
		hi = min(hi*2, s.opts.MaxAttackPower)
	}

	if lo < 0 {
		ok, err := s.wins(ctx, 0)
		if err != nil {
			return 0, err
		}
		if ok {
			return 0, nil
		}
		lo = 0
	}

	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		ok, err := s.wins(ctx, mid)
		if err != nil {
			return 0, err
		}
		if ok {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi, nil
}

// linear probes powers in ascending batches of Workers; the smallest success
// in the first batch containing one wins.
func (s *Searcher) linear(ctx context.Context) (int, error) {
	for base := 0; base <= s.opts.MaxAttackPower; base += s.opts.Workers {
		batch := min(s.opts.Workers, s.opts.MaxAttackPower-base+1)
		results := make([]bool, batch)

		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < batch; i++ {
			power := base + i
			g.Go(func() error {
				ok, err := s.wins(gctx, power)
				if err != nil {
					return err
				}
				results[i] = ok
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return 0, err
		}

		for i, ok := range results {
			if ok {
				return base + i, nil
			}
		}
	}
	return 0, fmt.Errorf("faction %s up to power %d: %w", s.opts.Faction, s.opts.MaxAttackPower, ErrSearchBoundExceeded)
}

// wins evaluates the predicate at power. A stalemate or round limit counts as
// a failed probe; anything else is returned as an error.
func (s *Searcher) wins(ctx context.Context, power int) (bool, error) {
	outcome, err := s.Simulate(ctx, power, s.opts.AbortOnLoss)
	switch {
	case errors.Is(err, core.ErrStalemate), errors.Is(err, core.ErrRoundLimit):
		s.logger.Debug().Int("power", power).Err(err).Msg("Probe did not finish, counting as failure")
		return false, nil
	case err != nil:
		return false, fmt.Errorf("probe at power %d: %w", power, err)
	}

	ok := outcome.NoLossWin(s.opts.Faction)
	s.logger.Debug().
		Int("power", power).
		Bool("no_loss_win", ok).
		Int("rounds", outcome.Rounds).
		Bool("aborted", outcome.Aborted).
		Msg("Probe evaluated")
	return ok, nil
}

// Simulate runs one full combat on a fresh copy of the starting registry with
// the searched faction's attack power set to power
func (s *Searcher) Simulate(ctx context.Context, power int, abortOnLoss bool) (game.Outcome, error) {
	s.mu.Lock()
	s.evaluations++
	s.mu.Unlock()

	s.monitor.Begin()
	outcome, err := s.simulate(ctx, power, abortOnLoss)
	s.monitor.End(err != nil)
	return outcome, err
}

func (s *Searcher) simulate(ctx context.Context, power int, abortOnLoss bool) (game.Outcome, error) {
	units := s.initial.Clone()
	if err := units.SetAttackPower(s.opts.Faction, power); err != nil {
		return game.Outcome{}, err
	}

	engine, err := game.NewEngine(ctx, game.CombatConfig{
		Units:        units,
		Logger:       s.opts.Logger,
		MaxRounds:    s.opts.MaxRounds,
		AbortOnLoss:  abortOnLoss,
		WatchFaction: s.opts.Faction,
	})
	if err != nil {
		return game.Outcome{}, err
	}
	return engine.Run(ctx)
}

// Metrics returns the probe counters collected so far
func (s *Searcher) Metrics() monitoring.ProbeMetrics {
	return s.monitor.GetMetrics()
}

// Evaluations returns how many simulations have been run so far
func (s *Searcher) Evaluations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evaluations
}
