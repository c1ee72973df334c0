package subscribers_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
	"github.com/mitchelldurbincs/GridCombat/internal/game/events"
	"github.com/mitchelldurbincs/GridCombat/internal/game/events/subscribers"
)

func TestLoggerSubscriber(t *testing.T) {
	// Create a buffer to capture log output
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Timestamp().Logger()

	// Create logger subscriber
	logSub := subscribers.NewLoggerSubscriber("test-logger", logger, zerolog.InfoLevel)

	// Test ID
	assert.Equal(t, "test-logger", logSub.ID())

	// Test InterestedIn - should be interested in all events by default
	assert.True(t, logSub.InterestedIn(events.TypeCombatStarted))
	assert.True(t, logSub.InterestedIn(events.TypeRoundStarted))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("event-logger", logger, zerolog.InfoLevel)

	elf := &core.Unit{ID: 1, Faction: core.Elf, HitPoints: 200, AttackPower: 3, Position: core.NewCoordinate(2, 3)}
	goblin := &core.Unit{ID: 4, Faction: core.Goblin, HitPoints: 0, AttackPower: 3, Position: core.NewCoordinate(3, 3)}

	// Create and handle various events
	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name:  "CombatStartedEvent",
			event: events.NewCombatStartedEvent("combat-1", 7, 5, map[core.Faction]int{core.Elf: 2, core.Goblin: 4}),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(7), logLine["map_width"])
				assert.Equal(t, float64(5), logLine["map_height"])
				assert.Equal(t, float64(2), logLine["Elves"])
				assert.Equal(t, float64(4), logLine["Goblins"])
			},
		},
		{
			name:  "CombatEndedEvent",
			event: events.NewCombatEndedEvent("combat-1", core.Goblin, 47, 590, false, 2*time.Millisecond),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "Goblins", logLine["winner"])
				assert.Equal(t, float64(47), logLine["rounds"])
				assert.Equal(t, float64(590), logLine["remaining_hp"])
				assert.Equal(t, false, logLine["aborted"])
			},
		},
		{
			name:  "RoundEndedEvent",
			event: events.NewRoundEndedEvent("combat-1", 3, 4, 5, 1),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(3), logLine["round"])
				assert.Equal(t, float64(4), logLine["moves"])
				assert.Equal(t, float64(5), logLine["attacks"])
				assert.Equal(t, float64(1), logLine["deaths"])
			},
		},
		{
			name:  "UnitMovedEvent",
			event: events.NewUnitMovedEvent("combat-1", elf, core.NewCoordinate(2, 2)),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(1), logLine["unit_id"])
				assert.Equal(t, "Elves", logLine["faction"])
				assert.Equal(t, float64(2), logLine["from_y"])
				assert.Equal(t, float64(3), logLine["to_y"])
			},
		},
		{
			name:  "UnitAttackedEvent",
			event: events.NewUnitAttackedEvent("combat-1", elf, goblin, true),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(1), logLine["attacker_id"])
				assert.Equal(t, float64(4), logLine["defender_id"])
				assert.Equal(t, float64(3), logLine["damage"])
				assert.Equal(t, true, logLine["defender_killed"])
			},
		},
		{
			name:  "UnitDiedEvent",
			event: events.NewUnitDiedEvent("combat-1", goblin, 12),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "Goblins", logLine["faction"])
				assert.Equal(t, float64(12), logLine["round"])
				assert.Equal(t, float64(3), logLine["x"])
			},
		},
		{
			name:  "StateTransitionEvent",
			event: events.NewStateTransitionEvent("combat-1", "Running", "Ended", "combat over"),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "Running", logLine["from_phase"])
				assert.Equal(t, "Ended", logLine["to_phase"])
				assert.Equal(t, "combat over", logLine["reason"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			logSub.HandleEvent(tc.event)

			var logLine map[string]interface{}
			err := json.Unmarshal(buf.Bytes(), &logLine)
			require.NoError(t, err)

			// Common fields
			assert.Equal(t, "Combat event", logLine["message"])
			assert.Equal(t, "info", logLine["level"])
			assert.Equal(t, tc.event.Type(), logLine["event_type"])
			assert.Equal(t, "combat-1", logLine["combat_id"])
			assert.Equal(t, "event_logger", logLine["subscriber"])

			// Event-specific checks
			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriberWithFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	// Create logger with filter
	logSub := subscribers.NewLoggerSubscriber("filtered-logger", logger, zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeCombatStarted, events.TypeCombatEnded})

	// Should be interested only in filtered events
	assert.True(t, logSub.InterestedIn(events.TypeCombatStarted))
	assert.True(t, logSub.InterestedIn(events.TypeCombatEnded))
	assert.False(t, logSub.InterestedIn(events.TypeRoundStarted))
	assert.False(t, logSub.InterestedIn(events.TypeUnitMoved))

	// Wired through a bus, only filtered events reach the log
	bus := events.NewEventBusWithLogger(zerolog.Nop())
	bus.Subscribe(logSub)
	bus.Publish(events.NewCombatStartedEvent("combat-1", 3, 3, nil))
	bus.Publish(events.NewRoundStartedEvent("combat-1", 1, []int{0, 1}))
	bus.Publish(events.NewCombatEndedEvent("combat-1", core.Elf, 10, 200, false, time.Second))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), events.TypeCombatStarted)
	assert.Contains(t, string(lines[1]), events.TypeCombatEnded)

	// An empty filter logs everything again
	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeRoundStarted))
}

func TestLoggerSubscriberLogLevels(t *testing.T) {
	// Test that logger uses the configured log level
	testCases := []struct {
		name     string
		logLevel zerolog.Level
		expected string
	}{
		{"Debug", zerolog.DebugLevel, "debug"},
		{"Info", zerolog.InfoLevel, "info"},
		{"Warn", zerolog.WarnLevel, "warn"},
		{"Error", zerolog.ErrorLevel, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Level(tc.logLevel)

			logSub := subscribers.NewLoggerSubscriber("level-logger", logger, tc.logLevel)
			logSub.HandleEvent(events.NewRoundStartedEvent("combat-1", 1, nil))

			var logLine map[string]interface{}
			err := json.Unmarshal(buf.Bytes(), &logLine)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, logLine["level"])
		})
	}
}

func TestLoggerSubscriberDevelopmentMode(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("dev-logger", logger, zerolog.InfoLevel)
	logSub.SetDevMode(true)

	// In development mode, should log additional details
	u := &core.Unit{ID: 2, Faction: core.Goblin, Position: core.NewCoordinate(6, 5)}
	logSub.HandleEvent(events.NewUnitMovedEvent("dev-combat", u, core.NewCoordinate(5, 5)))

	logOutput := buf.String()
	require.NotEmpty(t, logOutput)

	// In development mode, we expect event_data field
	assert.Contains(t, logOutput, "event_data")

	var logLine map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logLine)
	require.NoError(t, err)

	eventData, ok := logLine["event_data"]
	require.True(t, ok, "event_data should be present")

	eventDataBytes, err := json.Marshal(eventData)
	require.NoError(t, err)
	eventDataStr := string(eventDataBytes)

	assert.Contains(t, eventDataStr, events.TypeUnitMoved)
	assert.Contains(t, eventDataStr, "UnitID")
	assert.Contains(t, eventDataStr, "dev-combat")
}

func TestLoggerSubscriberBenchmark(t *testing.T) {
	// This is not a real benchmark, just a test to ensure performance is reasonable
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.Disabled) // Disable actual logging for speed

	logSub := subscribers.NewLoggerSubscriber("bench-logger", logger, zerolog.InfoLevel)

	start := time.Now()
	numEvents := 10000

	for i := 0; i < numEvents; i++ {
		logSub.HandleEvent(events.NewRoundEndedEvent("bench-combat", i, 1, 1, 0))
	}

	elapsed := time.Since(start)
	eventsPerSecond := float64(numEvents) / elapsed.Seconds()

	// Should be able to process at least 100k events per second with logging disabled
	assert.Greater(t, eventsPerSecond, 100000.0,
		"Logger should process at least 100k events/sec, got %.0f", eventsPerSecond)
}
