package suggest

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

var kindInstructions = map[types.SuggestionKind]string{
	types.SuggestionKindFunction:    "Propose the intended function of the component: what it must do, stated as a verb and a measurable outcome.",
	types.SuggestionKindFailureMode: "Propose ways the component could fail to perform its function (failure modes). Do not repeat failure modes that already exist.",
	types.SuggestionKindCause:       "Propose root causes of the failure mode and rate how often each is likely to occur (occurrence).",
	types.SuggestionKindEffect:      "Propose consequences of the failure mode for the user or the system and rate their severity.",
	types.SuggestionKindControl:     "Propose current controls that prevent the cause or detect the failure and rate how well they detect it (detection; lower is better).",
	types.SuggestionKindAction:      "Propose recommended actions that reduce severity, occurrence or detection of the failure mode.",
}

var ratingNames = map[types.SuggestionKind]string{
	types.SuggestionKindCause:   "occurrence",
	types.SuggestionKindEffect:  "severity",
	types.SuggestionKindControl: "detection",
}

func buildSystemPrompt(kind types.SuggestionKind, scale types.RatingScale) string {
	var sb strings.Builder

	sb.WriteString("You are a reliability engineer assisting with a Failure Mode and Effects Analysis (FMEA).\n\n")
	sb.WriteString("## Task:\n\n")
	sb.WriteString(kindInstructions[kind])
	sb.WriteString("\n\n")
	sb.WriteString("## Rules:\n\n")
	sb.WriteString("1. Each suggestion is one short sentence in the same language as the worksheet.\n")
	sb.WriteString("2. confidence is a number between 0.0 and 1.0.\n")
	sb.WriteString("3. reasoning explains in one sentence why the suggestion applies.\n")
	if name, ok := ratingNames[kind]; ok {
		fmt.Fprintf(&sb, "4. rating is the %s rating, an integer between %d and %d.\n", name, types.MinRating, int(scale))
	}

	return sb.String()
}

func buildUserPrompt(sctx *model.SuggestionContext, limit int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Return at most %d suggestions.\n\n", limit)
	sb.WriteString("## Worksheet context:\n\n")

	writeField := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "**%s:** %s\n", label, value)
		}
	}
	writeList := func(label string, values []string) {
		if len(values) == 0 {
			return
		}
		fmt.Fprintf(&sb, "**%s:**\n", label)
		for _, v := range values {
			fmt.Fprintf(&sb, "- %s\n", v)
		}
	}

	writeField("Project", sctx.ProjectName)
	writeField("Component", sctx.ComponentName)
	writeField("Function", sctx.ComponentFunction)
	writeField("Failure mode", sctx.FailureMode)
	writeField("Process step", sctx.ProcessStep)
	writeList("Existing causes", sctx.ExistingCauses)
	writeList("Existing effects", sctx.ExistingEffects)
	writeList("Existing controls", sctx.ExistingControls)
	writeList("Existing actions", sctx.ExistingActions)

	if sctx.Hint != "" {
		sb.WriteString("\n## Additional instructions from the user:\n\n")
		sb.WriteString(sctx.Hint)
		sb.WriteString("\n")
	}

	return sb.String()
}

func buildResponseSchema(kind types.SuggestionKind, scale types.RatingScale) *gollem.Parameter {
	item := &gollem.Parameter{
		Type: gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"text": {
				Type:        gollem.TypeString,
				Description: "The suggested value for the field",
				Required:    true,
			},
			"confidence": {
				Type:        gollem.TypeNumber,
				Description: "Confidence between 0.0 and 1.0",
				Required:    true,
			},
			"reasoning": {
				Type:        gollem.TypeString,
				Description: "Why the suggestion applies",
				Required:    true,
			},
		},
	}

	if name, ok := ratingNames[kind]; ok {
		item.Properties["rating"] = &gollem.Parameter{
			Type:        gollem.TypeInteger,
			Description: fmt.Sprintf("The %s rating from %d to %d", name, types.MinRating, int(scale)),
			Required:    true,
		}
	}

	return &gollem.Parameter{
		Title:       "FMEASuggestionResponse",
		Description: "Candidate values for an FMEA worksheet field",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"suggestions": {
				Type:        gollem.TypeArray,
				Description: "Suggestions ordered from most to least relevant",
				Items:       item,
				Required:    true,
			},
		},
	}
}
