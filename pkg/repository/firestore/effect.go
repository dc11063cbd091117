package firestore

import (
	"time"

	"cloud.google.com/go/firestore"
	"github.com/secmon-lab/fmea/pkg/domain/model"
)

type effectDocument struct {
	ID                string    `firestore:"id"`
	FailureModeID     string    `firestore:"failure_mode_id"`
	Description       string    `firestore:"description"`
	Severity          int       `firestore:"severity"`
	SeverityPost      *int      `firestore:"severity_post"`
	OccurrencePost    *int      `firestore:"occurrence_post"`
	DetectionPost     *int      `firestore:"detection_post"`
	JustificationPre  string    `firestore:"justification_pre"`
	JustificationPost string    `firestore:"justification_post"`
	ActionTaken       string    `firestore:"action_taken"`
	CreatedAt         time.Time `firestore:"created_at"`
	UpdatedAt         time.Time `firestore:"updated_at"`
}

type effectRepository = childRepository[model.EffectID, model.Effect, effectDocument]

func newEffectRepository(client *firestore.Client, prefix string) *effectRepository {
	return &effectRepository{
		parent: func(e *model.Effect) model.FailureModeID { return e.FailureModeID },
		collection: newCollection(client, prefix, "effects", codec[model.EffectID, model.Effect, effectDocument]{
			name:    "effect",
			newID:   model.NewEffectID,
			id:      func(e *model.Effect) model.EffectID { return e.ID },
			created: func(e *model.Effect) time.Time { return e.CreatedAt },
			toDoc: func(e *model.Effect) *effectDocument {
				c := e.Clone()
				return &effectDocument{
					ID:                string(c.ID),
					FailureModeID:     string(c.FailureModeID),
					Description:       c.Description,
					Severity:          c.Severity,
					SeverityPost:      c.SeverityPost,
					OccurrencePost:    c.OccurrencePost,
					DetectionPost:     c.DetectionPost,
					JustificationPre:  c.JustificationPre,
					JustificationPost: c.JustificationPost,
					ActionTaken:       c.ActionTaken,
					CreatedAt:         c.CreatedAt,
					UpdatedAt:         c.UpdatedAt,
				}
			},
			fromDoc: func(d *effectDocument) *model.Effect {
				e := &model.Effect{
					ID:                model.EffectID(d.ID),
					FailureModeID:     model.FailureModeID(d.FailureModeID),
					Description:       d.Description,
					Severity:          d.Severity,
					SeverityPost:      d.SeverityPost,
					OccurrencePost:    d.OccurrencePost,
					DetectionPost:     d.DetectionPost,
					JustificationPre:  d.JustificationPre,
					JustificationPost: d.JustificationPost,
					ActionTaken:       d.ActionTaken,
					CreatedAt:         d.CreatedAt,
					UpdatedAt:         d.UpdatedAt,
				}
				return e.Clone()
			},
			touch: func(e *model.Effect, id model.EffectID, createdAt, updatedAt time.Time) {
				e.ID, e.CreatedAt, e.UpdatedAt = id, createdAt, updatedAt
			},
			freeze: func(updated, existing *model.Effect) {
				updated.FailureModeID = existing.FailureModeID
			},
		}),
	}
}
