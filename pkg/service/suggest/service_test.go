package suggest_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
	"github.com/secmon-lab/fmea/pkg/service/suggest"
)

type mockLLMSession struct {
	generateFn func(ctx context.Context, input []gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.generateFn(ctx, input)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return nil, errors.New("not supported")
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	return nil, errors.New("not supported")
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, errors.New("not supported")
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

type mockLLMClient struct {
	session    *mockLLMSession
	newSession error
	config     gollem.SessionConfig
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSession != nil {
		return nil, c.newSession
	}
	c.config = gollem.NewSessionConfig(options...)
	return c.session, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func respondWith(text string, prompts *[]string) *mockLLMClient {
	return &mockLLMClient{
		session: &mockLLMSession{
			generateFn: func(ctx context.Context, input []gollem.Input) (*gollem.Response, error) {
				if prompts != nil {
					for _, in := range input {
						if txt, ok := in.(gollem.Text); ok {
							*prompts = append(*prompts, string(txt))
						}
					}
				}
				return &gollem.Response{Texts: []string{text}}, nil
			},
		},
	}
}

func TestSuggest(t *testing.T) {
	ctx := context.Background()

	t.Run("parses and normalizes suggestions", func(t *testing.T) {
		var prompts []string
		llm := respondWith(`{"suggestions": [
			{"text": "Seal wear", "confidence": 0.8, "reasoning": "common", "rating": 6},
			{"text": "", "confidence": 0.9, "reasoning": "blank"},
			{"text": "Contamination", "confidence": 1.7, "reasoning": "dirty fluid", "rating": 14},
			{"text": "Overpressure", "confidence": -1, "reasoning": "spikes", "rating": 3}
		]}`, &prompts)

		svc, err := suggest.New(llm)
		gt.NoError(t, err).Required()

		got, err := svc.Suggest(ctx, &model.SuggestionContext{
			Kind:           types.SuggestionKindCause,
			ComponentName:  "Pump",
			FailureMode:    "Leaks fluid",
			ExistingCauses: []string{"Loose fitting"},
			RatingScale:    types.RatingScale10,
		})
		gt.NoError(t, err).Required()
		gt.Array(t, got).Length(3).Required()

		gt.Value(t, got[0].Text).Equal("Seal wear")
		gt.Value(t, got[0].Rating).Equal(6)
		gt.Value(t, got[1].Confidence).Equal(1.0)
		gt.Value(t, got[1].Rating).Equal(0)
		gt.Value(t, got[2].Confidence).Equal(0.0)

		gt.Array(t, prompts).Length(1).Required()
		gt.String(t, prompts[0]).Contains("Leaks fluid")
		gt.String(t, prompts[0]).Contains("- Loose fitting")
	})

	t.Run("requests JSON with required fields", func(t *testing.T) {
		llm := respondWith(`{"suggestions": []}`, nil)
		svc, err := suggest.New(llm)
		gt.NoError(t, err).Required()

		_, err = svc.Suggest(ctx, &model.SuggestionContext{Kind: types.SuggestionKindCause})
		gt.NoError(t, err).Required()

		gt.Value(t, llm.config.ContentType()).Equal(gollem.ContentTypeJSON)
		schema := llm.config.ResponseSchema()
		gt.Value(t, schema).NotNil().Required()
		list := schema.Properties["suggestions"]
		gt.Value(t, list).NotNil().Required()
		gt.Bool(t, list.Required).True()
		gt.Value(t, list.Items).NotNil().Required()
		for _, name := range []string{"text", "confidence", "reasoning", "rating"} {
			prop := list.Items.Properties[name]
			gt.Value(t, prop).NotNil().Required()
			gt.Bool(t, prop.Required).True()
		}
		gt.NoError(t, schema.Validate())
	})

	t.Run("action schema has no rating", func(t *testing.T) {
		llm := respondWith(`{"suggestions": []}`, nil)
		svc, err := suggest.New(llm)
		gt.NoError(t, err).Required()

		_, err = svc.Suggest(ctx, &model.SuggestionContext{Kind: types.SuggestionKindAction})
		gt.NoError(t, err).Required()

		items := llm.config.ResponseSchema().Properties["suggestions"].Items
		_, hasRating := items.Properties["rating"]
		gt.Bool(t, hasRating).False()
	})

	t.Run("kinds without rating drop it", func(t *testing.T) {
		llm := respondWith(`{"suggestions": [{"text": "Add filter", "confidence": 0.5, "reasoning": "r", "rating": 4}]}`, nil)
		svc, err := suggest.New(llm)
		gt.NoError(t, err).Required()

		got, err := svc.Suggest(ctx, &model.SuggestionContext{Kind: types.SuggestionKindAction})
		gt.NoError(t, err).Required()
		gt.Array(t, got).Length(1).Required()
		gt.Value(t, got[0].Rating).Equal(0)
	})

	t.Run("truncates to max suggestions", func(t *testing.T) {
		var sb strings.Builder
		sb.WriteString(`{"suggestions": [`)
		for i := 0; i < 6; i++ {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(`{"text": "s", "confidence": 0.5, "reasoning": "r"}`)
		}
		sb.WriteString(`]}`)

		svc, err := suggest.New(respondWith(sb.String(), nil), suggest.WithMaxSuggestions(2))
		gt.NoError(t, err).Required()

		got, err := svc.Suggest(ctx, &model.SuggestionContext{Kind: types.SuggestionKindFunction})
		gt.NoError(t, err).Required()
		gt.Array(t, got).Length(2)

		got, err = svc.Suggest(ctx, &model.SuggestionContext{Kind: types.SuggestionKindFunction, MaxSuggestions: 4})
		gt.NoError(t, err).Required()
		gt.Array(t, got).Length(4)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := suggest.New(nil)
		gt.Error(t, err)

		svc, err := suggest.New(respondWith(`not json`, nil))
		gt.NoError(t, err).Required()
		_, err = svc.Suggest(ctx, &model.SuggestionContext{Kind: types.SuggestionKindEffect})
		gt.Error(t, err)

		_, err = svc.Suggest(ctx, &model.SuggestionContext{Kind: "unknown"})
		gt.Error(t, err)

		failing, err := suggest.New(&mockLLMClient{newSession: errors.New("quota exceeded")})
		gt.NoError(t, err).Required()
		_, err = failing.Suggest(ctx, &model.SuggestionContext{Kind: types.SuggestionKindEffect})
		gt.Error(t, err)
	})
}

func TestSuggest_WithRealGemini(t *testing.T) {
	projectID := os.Getenv("TEST_GEMINI_PROJECT")
	if projectID == "" {
		t.Skip("TEST_GEMINI_PROJECT not set")
	}
	location := os.Getenv("TEST_GEMINI_LOCATION")
	if location == "" {
		t.Skip("TEST_GEMINI_LOCATION not set")
	}

	ctx := context.Background()
	llmClient, err := gemini.New(ctx, projectID, location)
	gt.NoError(t, err).Required()

	svc, err := suggest.New(llmClient)
	gt.NoError(t, err).Required()

	got, err := svc.Suggest(ctx, &model.SuggestionContext{
		Kind:              types.SuggestionKindEffect,
		ComponentName:     "Brake caliper",
		ComponentFunction: "Clamp the disc to stop the wheel",
		FailureMode:       "Piston seizes",
		RatingScale:       types.RatingScale10,
	})
	gt.NoError(t, err).Required()
	gt.Number(t, len(got)).GreaterOrEqual(1)
	for _, s := range got {
		gt.String(t, s.Text).NotEqual("")
		gt.Bool(t, types.RatingScale10.Contains(s.Rating)).True()
	}
}
