package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"github.com/mitchelldurbincs/GridCombat/internal/config"
	"github.com/mitchelldurbincs/GridCombat/internal/game"
	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
	"github.com/mitchelldurbincs/GridCombat/internal/game/events"
	"github.com/mitchelldurbincs/GridCombat/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/GridCombat/internal/game/mapgen"
	"github.com/mitchelldurbincs/GridCombat/internal/report"
	"github.com/mitchelldurbincs/GridCombat/internal/search"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	mapPath := flag.String("map", "", "Path to the map file")
	generate := flag.Bool("generate", false, "Play a randomly generated map instead of --map")
	seed := flag.Int64("seed", 0, "Seed for --generate (0 for time-based)")
	width := flag.Int("width", 12, "Width of a generated map")
	height := flag.Int("height", 12, "Height of a generated map")
	elves := flag.Int("elves", 2, "Elves on a generated map")
	goblins := flag.Int("goblins", 4, "Goblins on a generated map")
	runSearch := flag.Bool("search", false, "Search for the minimal attack power giving a no-loss win")
	faction := flag.String("faction", "", "Faction to boost during search (empty to use config default)")
	strategy := flag.String("strategy", "", "Search strategy: bisect or linear (empty to use config default)")
	workers := flag.Int("workers", -1, "Concurrent probes for the linear strategy (-1 to use config default)")
	maxRounds := flag.Int("max-rounds", -1, "Round ceiling, 0 for none (-1 to use config default)")
	output := flag.String("output", "", "Output format: text, json or yaml (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	trace := flag.Bool("trace", false, "Print the map after every round of the baseline run")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}

	// Flags override config values
	overrides := map[string]interface{}{}
	if *faction != "" {
		overrides["search.faction"] = *faction
	}
	if *strategy != "" {
		overrides["search.strategy"] = *strategy
	}
	if *workers != -1 {
		overrides["search.workers"] = *workers
	}
	if *maxRounds != -1 {
		overrides["combat.max_rounds"] = *maxRounds
	}
	if *output != "" {
		overrides["output.format"] = *output
	}
	if *logLevel != "" {
		overrides["logging.level"] = *logLevel
	}
	for key, value := range overrides {
		if err := config.Set(key, value); err != nil {
			log.Fatal().Err(err).Str("key", key).Msg("Invalid flag value")
		}
	}
	cfg := config.Get()

	// Setup logging
	setupLogging(cfg.Logging.Level, cfg.Logging.Format)

	var (
		text    string
		mapName string
		err     error
	)
	switch {
	case *generate && *mapPath != "":
		log.Fatal().Msg("--map and --generate are mutually exclusive")
	case *generate:
		if *seed == 0 {
			*seed = time.Now().UnixNano()
		}
		mc := mapgen.DefaultMapConfig(*width, *height)
		mc.Elves, mc.Goblins = *elves, *goblins
		text, err = mapgen.NewGenerator(mc, rand.New(rand.NewSource(*seed))).GenerateMap()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to generate map")
		}
		mapName = fmt.Sprintf("generated-%d", *seed)
		log.Debug().Int64("seed", *seed).Msg("Generated map")
	case *mapPath != "":
		raw, err := os.ReadFile(*mapPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *mapPath).Msg("Failed to read map")
		}
		text, mapName = string(raw), *mapPath
	default:
		log.Fatal().Msg("A map is required (--map or --generate)")
	}

	_, units, err := core.ParseMap(text, cfg.Combat.UnitStats())
	if err != nil {
		log.Fatal().Err(err).Str("map", mapName).Msg("Failed to parse map")
	}

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid output format")
	}

	// Stop cleanly on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("map", mapName).
		Int("units", units.Len()).
		Int("elves", units.Count(core.Elf)).
		Int("goblins", units.Count(core.Goblin)).
		Msg("Starting combat")

	baseline, err := runBaseline(ctx, units, cfg, *trace)
	if err != nil {
		log.Fatal().Err(err).Msg("Baseline combat failed")
	}
	r := report.New(mapName, baseline)

	if *runSearch {
		f, err := core.ParseFaction(cfg.Search.Faction)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid search faction")
		}
		searcher, err := search.NewSearcher(units, search.Options{
			Faction:        f,
			Strategy:       search.Strategy(cfg.Search.Strategy),
			MaxAttackPower: cfg.Search.MaxAttackPower,
			Workers:        cfg.Search.Workers,
			AbortOnLoss:    cfg.Search.AbortOnLoss,
			MaxRounds:      cfg.Combat.MaxRounds,
			Logger:         log.Logger,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create searcher")
		}
		res, err := searcher.Search(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Attack power search failed")
		}
		r.WithSearch(f, res)
	}

	if err := report.Write(os.Stdout, format, r); err != nil {
		log.Fatal().Err(err).Msg("Failed to write report")
	}
}

// runBaseline plays the map once with the configured stats. Events are logged
// at debug level; with trace set, the map is printed after every round.
func runBaseline(ctx context.Context, units *core.Registry, cfg *config.Config, trace bool) (game.Outcome, error) {
	bus := events.NewEventBus()
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		bus.Subscribe(subscribers.NewLoggerSubscriber("cli_logger", log.Logger, zerolog.DebugLevel))
	}

	engine, err := game.NewEngine(ctx, game.CombatConfig{
		Units:     units.Clone(),
		Logger:    log.Logger,
		EventBus:  bus,
		MaxRounds: cfg.Combat.MaxRounds,
	})
	if err != nil {
		return game.Outcome{}, err
	}

	if trace {
		fmt.Fprintf(os.Stderr, "Initially:\n%s\n", engine.Board(true))
		bus.SubscribeFunc(events.TypeRoundEnded, func(ev events.Event) {
			re := ev.(*events.RoundEndedEvent)
			fmt.Fprintf(os.Stderr, "After %d rounds:\n%s\n", re.Round, engine.Board(true))
		})
	}

	outcome, err := engine.Run(ctx)
	if err != nil {
		return game.Outcome{}, err
	}
	log.Info().
		Str("winner", outcome.WinnerName).
		Int("rounds", outcome.Rounds).
		Int("remaining_hp", outcome.RemainingHP).
		Int("score", outcome.Score()).
		Dur("elapsed", engine.Elapsed()).
		Msg("Combat finished")
	return outcome, nil
}

func setupLogging(level, format string) {
	// Parse log level
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	// Logs go to stderr so stdout carries only the report
	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
