package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
	"github.com/secmon-lab/fmea/pkg/service/suggest"
	"github.com/urfave/cli/v3"
)

// Gemini holds configuration for the Gemini LLM client
type Gemini struct {
	projectID      string
	location       string
	maxSuggestions int
}

// Flags returns CLI flags for Gemini configuration
func (g *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API (AI suggestions are disabled when empty)",
			Category:    "AI",
			Sources:     cli.EnvVars("FMEA_GEMINI_PROJECT"),
			Destination: &g.projectID,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Value:       "us-central1",
			Category:    "AI",
			Sources:     cli.EnvVars("FMEA_GEMINI_LOCATION"),
			Destination: &g.location,
		},
		&cli.IntFlag{
			Name:        "max-suggestions",
			Usage:       "Number of suggestions returned when a request does not ask for a count",
			Value:       suggest.DefaultMaxSuggestions,
			Category:    "AI",
			Sources:     cli.EnvVars("FMEA_MAX_SUGGESTIONS"),
			Destination: &g.maxSuggestions,
		},
	}
}

// LogAttrs returns log attributes for the Gemini configuration
func (g *Gemini) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("project_id", g.projectID),
		slog.String("location", g.location),
	}
}

// Configure creates a new Gemini LLM client from the configured flags.
// Returns nil if projectID is not configured (AI suggestions will be disabled).
func (g *Gemini) Configure(ctx context.Context) (gollem.LLMClient, error) {
	if g.projectID == "" {
		return nil, nil
	}

	client, err := gemini.New(ctx, g.projectID, g.location)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client")
	}

	return client, nil
}

// Suggester wraps the configured client in the suggestion service, or returns
// nil when Gemini is not configured.
func (g *Gemini) Suggester(ctx context.Context) (interfaces.Suggester, error) {
	client, err := g.Configure(ctx)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return suggest.New(client, suggest.WithMaxSuggestions(g.maxSuggestions))
}
