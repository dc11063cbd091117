package suggest

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

const DefaultMaxSuggestions = 3

// client implements interfaces.Suggester with a gollem LLM client
type client struct {
	llmClient      gollem.LLMClient
	maxSuggestions int
}

var _ interfaces.Suggester = &client{}

// Option is a functional option for client configuration
type Option func(*client)

// WithMaxSuggestions caps the number of suggestions when the request does not set one
func WithMaxSuggestions(n int) Option {
	return func(c *client) {
		if n > 0 {
			c.maxSuggestions = n
		}
	}
}

// New creates a suggestion service with the provided LLM client
func New(llmClient gollem.LLMClient, opts ...Option) (interfaces.Suggester, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &client{
		llmClient:      llmClient,
		maxSuggestions: DefaultMaxSuggestions,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type llmResponse struct {
	Suggestions []llmSuggestion `json:"suggestions"`
}

type llmSuggestion struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	Rating     int     `json:"rating"`
}

// Suggest asks the LLM for candidate values of the field described by sctx
func (c *client) Suggest(ctx context.Context, sctx *model.SuggestionContext) ([]*model.Suggestion, error) {
	if sctx == nil || !sctx.Kind.IsValid() {
		return nil, goerr.New("invalid suggestion kind", goerr.V("context", sctx))
	}

	limit := sctx.MaxSuggestions
	if limit <= 0 {
		limit = c.maxSuggestions
	}
	scale := sctx.RatingScale.Normalize()

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(buildResponseSchema(sctx.Kind, scale)),
		gollem.WithSessionSystemPrompt(buildSystemPrompt(sctx.Kind, scale)),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.Generate(ctx, []gollem.Input{gollem.Text(buildUserPrompt(sctx, limit))})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content from LLM", goerr.V("kind", sctx.Kind))
	}
	if resp == nil || len(resp.Texts) == 0 {
		return nil, goerr.New("empty LLM response", goerr.V("kind", sctx.Kind))
	}

	var llmResp llmResponse
	if err := json.Unmarshal([]byte(resp.Texts[0]), &llmResp); err != nil {
		return nil, goerr.Wrap(err, "failed to parse LLM response", goerr.V("response", resp.Texts[0]))
	}

	return normalize(llmResp.Suggestions, sctx.Kind, scale, limit), nil
}

// normalize drops blank entries, clamps confidence to [0, 1] and clears
// ratings that are out of scale or not expected for kind
func normalize(in []llmSuggestion, kind types.SuggestionKind, scale types.RatingScale, limit int) []*model.Suggestion {
	out := make([]*model.Suggestion, 0, len(in))
	for _, s := range in {
		if s.Text == "" {
			continue
		}

		confidence := min(max(s.Confidence, 0), 1)

		rating := 0
		if kind.HasRating() && scale.Contains(s.Rating) {
			rating = s.Rating
		}

		out = append(out, &model.Suggestion{
			Text:       s.Text,
			Confidence: confidence,
			Reasoning:  s.Reasoning,
			Rating:     rating,
		})
		if len(out) >= limit {
			break
		}
	}
	return out
}
