// Package report renders combat and search results for the command line
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mitchelldurbincs/GridCombat/internal/game"
	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
	"github.com/mitchelldurbincs/GridCombat/internal/search"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding used by Write
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Summary is an outcome together with its score
type Summary struct {
	game.Outcome `yaml:",inline"`
	Score        int `json:"score" yaml:"score"`
}

// SearchSummary is the outcome of the minimal winning power
type SearchSummary struct {
	Faction     string  `json:"faction" yaml:"faction"`
	Power       int     `json:"power" yaml:"power"`
	Evaluations int     `json:"evaluations" yaml:"evaluations"`
	Result      Summary `json:"result" yaml:"result"`
}

// Report is everything printed for one map
type Report struct {
	Map      string         `json:"map,omitempty" yaml:"map,omitempty"`
	Baseline Summary        `json:"baseline" yaml:"baseline"`
	Search   *SearchSummary `json:"search,omitempty" yaml:"search,omitempty"`
}

// New creates a report for a baseline outcome
func New(mapName string, baseline game.Outcome) *Report {
	return &Report{
		Map:      mapName,
		Baseline: summarize(baseline),
	}
}

// WithSearch attaches a search result for faction f
func (r *Report) WithSearch(f core.Faction, res search.Result) *Report {
	r.Search = &SearchSummary{
		Faction:     f.String(),
		Power:       res.Power,
		Evaluations: res.Evaluations,
		Result:      summarize(res.Outcome),
	}
	return r
}

func summarize(o game.Outcome) Summary {
	return Summary{Outcome: o, Score: o.Score()}
}

// Write encodes r to w. Text mode prints "rounds score" for the baseline and
// "rounds score power" for the search result, one per line.
func Write(w io.Writer, format Format, r *Report) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		if _, err := fmt.Fprintf(w, "%d %d\n", r.Baseline.Rounds, r.Baseline.Score); err != nil {
			return err
		}
		if r.Search != nil {
			_, err := fmt.Fprintf(w, "%d %d %d\n", r.Search.Result.Rounds, r.Search.Result.Score, r.Search.Power)
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
