package game

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
	"github.com/mitchelldurbincs/GridCombat/internal/game/events"
	"github.com/mitchelldurbincs/GridCombat/internal/game/rules"
	"github.com/mitchelldurbincs/GridCombat/internal/game/states"
	"github.com/rs/zerolog"
)

// CombatConfig holds everything needed to start one simulation
type CombatConfig struct {
	// Units is owned by the engine for the lifetime of the simulation.
	// Pass a Clone when the same starting position is run more than once.
	Units *core.Registry

	// CombatID identifies the run in logs and events; generated when empty
	CombatID string

	Logger   zerolog.Logger
	EventBus events.Publisher

	// MaxRounds aborts with core.ErrRoundLimit once exceeded; 0 means no limit
	MaxRounds int

	// AbortOnLoss stops the run as soon as a unit of WatchFaction dies
	AbortOnLoss  bool
	WatchFaction core.Faction
}

// EngineInitializer handles the initialization of a combat engine
type EngineInitializer struct {
	config CombatConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg CombatConfig) *EngineInitializer {
	if cfg.CombatID == "" {
		cfg.CombatID = uuid.New().String()
	}
	return &EngineInitializer{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "CombatEngine").Str("combat_id", cfg.CombatID).Logger(),
	}
}

// NewEngine is shorthand for NewEngineInitializer(cfg).Initialize(ctx)
func NewEngine(ctx context.Context, cfg CombatConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Initialize validates the starting position and creates the engine
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled before start")
		return nil, ctx.Err()
	default:
	}

	reg := ei.config.Units
	if reg == nil {
		return nil, errors.New("combat config has no unit registry")
	}
	if reg.Len() == 0 {
		return nil, core.ErrNoUnits
	}
	if ei.config.MaxRounds < 0 {
		return nil, errors.New("max rounds must be non-negative")
	}

	e := &Engine{
		combatID:    ei.config.CombatID,
		grid:        reg.Grid(),
		units:       reg,
		maxRounds:   ei.config.MaxRounds,
		abortOnLoss: ei.config.AbortOnLoss,
		watch:       ei.config.WatchFaction,
		logger:      ei.logger,
		publisher:   ei.config.EventBus,
	}
	e.winChecker = rules.NewWinConditionChecker(e.logger, reg)
	e.turns = NewTurnProcessor(e)

	combatCtx := states.NewCombatContext(e.combatID, ei.config.Logger)
	e.stateMachine = states.NewStateMachine(combatCtx, e.publisher)
	e.refreshContext()

	counts := make(map[core.Faction]int, len(core.Factions))
	for _, f := range core.Factions {
		counts[f] = reg.Count(f)
	}
	if e.publisher != nil {
		e.publisher.Publish(events.NewCombatStartedEvent(e.combatID, e.grid.W, e.grid.H, counts))
	}

	ei.logger.Debug().
		Int("width", e.grid.W).
		Int("height", e.grid.H).
		Int("elves", counts[core.Elf]).
		Int("goblins", counts[core.Goblin]).
		Msg("Engine created successfully")

	return e, nil
}

// Simulate runs a fresh copy of units to completion with default settings
func Simulate(ctx context.Context, units *core.Registry, logger zerolog.Logger) (Outcome, error) {
	e, err := NewEngine(ctx, CombatConfig{Units: units.Clone(), Logger: logger})
	if err != nil {
		return Outcome{}, err
	}
	return e.Run(ctx)
}
