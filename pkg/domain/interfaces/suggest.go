package interfaces

import (
	"context"

	"github.com/secmon-lab/fmea/pkg/domain/model"
)

// Suggester produces AI suggestions for a worksheet cell
type Suggester interface {
	Suggest(ctx context.Context, sctx *model.SuggestionContext) ([]*model.Suggestion, error)
}
