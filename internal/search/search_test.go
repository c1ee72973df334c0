package search

import (
	"context"
	"testing"

	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
	"github.com/mitchelldurbincs/GridCombat/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSearcher(t *testing.T, reg *core.Registry, opts Options) *Searcher {
	t.Helper()
	opts.Faction = core.Elf
	opts.Logger = testutil.NopLogger()
	s, err := NewSearcher(reg, opts)
	require.NoError(t, err)
	return s
}

func searchSamples() []testutil.Sample {
	var out []testutil.Sample
	for _, s := range testutil.Samples {
		if s.HasSearch() {
			out = append(out, s)
		}
	}
	return out
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input   string
		want    Strategy
		wantErr bool
	}{
		{"bisect", StrategyBisect, false},
		{"linear", StrategyLinear, false},
		{"", "", true},
		{"random", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSearcher(t *testing.T) {
	reg := testutil.MustParse(t, testutil.ArenaMap)

	s := newTestSearcher(t, reg, Options{})
	assert.Equal(t, StrategyBisect, s.opts.Strategy)
	assert.Equal(t, DefaultMaxAttackPower, s.opts.MaxAttackPower)
	assert.Equal(t, 1, s.opts.Workers)
	assert.Equal(t, 0, s.Evaluations())

	_, err := NewSearcher(nil, Options{})
	assert.Error(t, err)

	_, err = NewSearcher(reg, Options{Strategy: "random"})
	assert.Error(t, err)
}

func TestSearch_Linear(t *testing.T) {
	for _, sample := range searchSamples() {
		t.Run(sample.Name, func(t *testing.T) {
			s := newTestSearcher(t, testutil.MustParse(t, sample.Map), Options{
				Strategy:    StrategyLinear,
				AbortOnLoss: true,
			})

			res, err := s.Search(context.Background())
			require.NoError(t, err)
			assert.Equal(t, sample.SearchPower, res.Power, "power")
			assert.Equal(t, sample.SearchRounds, res.Outcome.Rounds, "rounds")
			assert.Equal(t, sample.SearchHP, res.Outcome.RemainingHP, "remaining hit points")
			assert.Equal(t, sample.SearchScore(), res.Outcome.Score())
			assert.Equal(t, core.Elf, res.Outcome.Winner)
			assert.False(t, res.Outcome.Aborted, "the reported outcome is a complete run")
			// Powers 0..SearchPower plus the confirming run
			assert.Equal(t, sample.SearchPower+2, res.Evaluations)
		})
	}
}

func TestSearch_LinearParallelMatchesSequential(t *testing.T) {
	for _, sample := range searchSamples() {
		t.Run(sample.Name, func(t *testing.T) {
			reg := testutil.MustParse(t, sample.Map)

			seq, err := newTestSearcher(t, reg, Options{Strategy: StrategyLinear, AbortOnLoss: true}).Search(context.Background())
			require.NoError(t, err)
			par, err := newTestSearcher(t, reg, Options{Strategy: StrategyLinear, AbortOnLoss: true, Workers: 4}).Search(context.Background())
			require.NoError(t, err)

			assert.Equal(t, seq.Power, par.Power)
			assert.Equal(t, seq.Outcome, par.Outcome)
			assert.GreaterOrEqual(t, par.Evaluations, seq.Evaluations)
		})
	}
}

func TestSearch_Bisect(t *testing.T) {
	// Capping the ceiling at the known minimum makes the probe sequence
	// land on it without relying on powers above it
	for _, sample := range searchSamples() {
		t.Run(sample.Name, func(t *testing.T) {
			s := newTestSearcher(t, testutil.MustParse(t, sample.Map), Options{
				Strategy:       StrategyBisect,
				MaxAttackPower: sample.SearchPower,
				AbortOnLoss:    true,
			})

			res, err := s.Search(context.Background())
			require.NoError(t, err)
			assert.Equal(t, sample.SearchPower, res.Power)
			assert.Equal(t, sample.SearchScore(), res.Outcome.Score())
		})
	}
}

func TestSearch_BisectDefaultCeiling(t *testing.T) {
	for _, sample := range searchSamples() {
		for _, abort := range []bool{true, false} {
			name := sample.Name + "/full_runs"
			if abort {
				name = sample.Name + "/abort_on_loss"
			}
			t.Run(name, func(t *testing.T) {
				s := newTestSearcher(t, testutil.MustParse(t, sample.Map), Options{
					Strategy:    StrategyBisect,
					AbortOnLoss: abort,
				})

				res, err := s.Search(context.Background())
				require.NoError(t, err)
				assert.Equal(t, sample.SearchPower, res.Power)
				assert.Equal(t, sample.SearchRounds, res.Outcome.Rounds)
				assert.Equal(t, sample.SearchHP, res.Outcome.RemainingHP)
				assert.Equal(t, sample.SearchScore(), res.Outcome.Score())
			})
		}
	}
}

func TestSearch_WinsIsMonotonic(t *testing.T) {
	// Every power below the minimum loses an elf and every power from the
	// minimum up to twice it wins cleanly
	for _, sample := range searchSamples() {
		t.Run(sample.Name, func(t *testing.T) {
			s := newTestSearcher(t, testutil.MustParse(t, sample.Map), Options{AbortOnLoss: true})
			ctx := context.Background()

			for v := 0; v <= 2*sample.SearchPower; v++ {
				ok, err := s.wins(ctx, v)
				require.NoError(t, err)
				assert.Equal(t, v >= sample.SearchPower, ok, "power %d", v)
			}
		})
	}
}

func TestSearch_PowerlessOpponents(t *testing.T) {
	// With goblins at power 0 the elves win at power 1; power 0 on both
	// sides stalls and counts as a failure
	for _, strategy := range []Strategy{StrategyBisect, StrategyLinear} {
		t.Run(string(strategy), func(t *testing.T) {
			reg := testutil.MustParseWithStats(t, "#EG#", core.UnitStats{
				HitPoints:   200,
				AttackPower: map[core.Faction]int{core.Elf: 3, core.Goblin: 0},
			})
			s := newTestSearcher(t, reg, Options{Strategy: strategy})

			res, err := s.Search(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, res.Power)
			assert.Equal(t, 200, res.Outcome.Rounds)
			assert.Equal(t, 200, res.Outcome.RemainingHP)
			assert.Equal(t, 3, res.Evaluations)
			assert.Equal(t, 1, s.Metrics().Failed)
		})
	}
}

func TestSearch_BisectProbeCount(t *testing.T) {
	// 1, 2, 4, 8, 15 then 11, 13, 14 and the confirming run
	sample := testutil.Samples[0]
	s := newTestSearcher(t, testutil.MustParse(t, sample.Map), Options{MaxAttackPower: 15})

	res, err := s.Search(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, res.Power)
	assert.Equal(t, 29, res.Outcome.Rounds)
	assert.Equal(t, 172, res.Outcome.RemainingHP)
	assert.Equal(t, 4988, res.Outcome.Score())
	assert.Equal(t, 9, res.Evaluations)
	assert.Equal(t, 9, s.Evaluations())

	m := s.Metrics()
	assert.Equal(t, 9, m.Completed)
	assert.Equal(t, 0, m.InFlight)
	assert.Equal(t, 1, m.PeakInFlight, "bisect probes one at a time")
}

func TestSearch_ZeroPower(t *testing.T) {
	// A lone elf wins at any power, so zero is the answer
	for _, strategy := range []Strategy{StrategyBisect, StrategyLinear} {
		t.Run(string(strategy), func(t *testing.T) {
			s := newTestSearcher(t, testutil.MustParse(t, "#E.#"), Options{Strategy: strategy, Workers: 3})

			res, err := s.Search(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 0, res.Power)
			assert.Equal(t, 0, res.Outcome.Rounds)
			assert.Equal(t, 200, res.Outcome.RemainingHP)
		})
	}
}

func TestSearch_BoundExceeded(t *testing.T) {
	tests := []struct {
		name     string
		board    string
		strategy Strategy
		max      int
	}{
		{"bisect below minimum", testutil.Samples[0].Map, StrategyBisect, 10},
		{"linear below minimum", testutil.Samples[0].Map, StrategyLinear, 10},
		{"stalemate never wins", testutil.WalledOffMap, StrategyBisect, 4},
		{"stalemate linear", testutil.WalledOffMap, StrategyLinear, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSearcher(t, testutil.MustParse(t, tt.board), Options{
				Strategy:       tt.strategy,
				MaxAttackPower: tt.max,
				AbortOnLoss:    true,
				Workers:        2,
			})

			_, err := s.Search(context.Background())
			assert.ErrorIs(t, err, ErrSearchBoundExceeded)
		})
	}
}

func TestSearch_RoundLimitCountsAsFailure(t *testing.T) {
	sample := testutil.Samples[0]
	s := newTestSearcher(t, testutil.MustParse(t, sample.Map), Options{
		Strategy:       StrategyLinear,
		MaxAttackPower: 20,
		MaxRounds:      5,
	})

	_, err := s.Search(context.Background())
	assert.ErrorIs(t, err, ErrSearchBoundExceeded)
}

func TestSearch_LeavesStartingRegistryUntouched(t *testing.T) {
	reg := testutil.MustParse(t, testutil.Samples[0].Map)
	before := core.Render(reg)

	s := newTestSearcher(t, reg, Options{Strategy: StrategyLinear, Workers: 4, AbortOnLoss: true})
	_, err := s.Search(context.Background())
	require.NoError(t, err)

	assert.Equal(t, before, core.Render(reg))
	for _, u := range reg.LivingAll() {
		assert.Equal(t, 3, u.AttackPower)
		assert.Equal(t, 200, u.HitPoints)
	}
}

func TestSearch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestSearcher(t, testutil.MustParse(t, testutil.Samples[0].Map), Options{Strategy: StrategyLinear, Workers: 2})
	_, err := s.Search(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulate(t *testing.T) {
	sample := testutil.Samples[0]
	s := newTestSearcher(t, testutil.MustParse(t, sample.Map), Options{})

	full, err := s.Simulate(context.Background(), 15, false)
	require.NoError(t, err)
	assert.True(t, full.NoLossWin(core.Elf))
	assert.Equal(t, 4988, full.Score())

	baseline, err := s.Simulate(context.Background(), 3, false)
	require.NoError(t, err)
	assert.Equal(t, sample.Score(), baseline.Score())

	aborted, err := s.Simulate(context.Background(), 3, true)
	require.NoError(t, err)
	assert.True(t, aborted.Aborted)
	assert.Equal(t, 3, s.Evaluations())
	assert.Equal(t, 0, s.Metrics().Failed)

	_, err = s.Simulate(context.Background(), -1, false)
	assert.ErrorIs(t, err, core.ErrInvalidPower)
	assert.Equal(t, 1, s.Metrics().Failed)
}
