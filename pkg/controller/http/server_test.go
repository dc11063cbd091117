package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/secmon-lab/fmea/pkg/controller/http"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/repository/memory"
	"github.com/secmon-lab/fmea/pkg/usecase"
)

func newServer(t *testing.T, opts ...usecase.Option) *httpctrl.Server {
	t.Helper()
	uc := usecase.New(memory.New(), opts...)
	srv, err := httpctrl.New(uc)
	gt.NoError(t, err).Required()
	return srv
}

func do(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(v)
	default:
		data, err := json.Marshal(v)
		gt.NoError(t, err).Required()
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

type idResponse struct {
	ID string `json:"id"`
}

type errorBody struct {
	Error    string   `json:"error"`
	Messages []string `json:"messages"`
}

// seed builds a project with one failure mode scoring 8x6x3=144
type seeded struct {
	projectID     string
	componentID   string
	failureModeID string
	effectID      string
}

func seed(t *testing.T, srv http.Handler) seeded {
	t.Helper()
	var s seeded

	w := do(t, srv, http.MethodPost, "/api/projects", map[string]any{"name": "Pump"})
	gt.Value(t, w.Code).Equal(http.StatusCreated).Required()
	s.projectID = decode[idResponse](t, w).ID

	w = do(t, srv, http.MethodPost, "/api/projects/"+s.projectID+"/components", map[string]any{"name": "Seal", "function": "Keep fluid inside"})
	gt.Value(t, w.Code).Equal(http.StatusCreated).Required()
	s.componentID = decode[idResponse](t, w).ID

	w = do(t, srv, http.MethodPost, "/api/components/"+s.componentID+"/failure-modes", map[string]any{"description": "Leak", "processStep": "Run"})
	gt.Value(t, w.Code).Equal(http.StatusCreated).Required()
	s.failureModeID = decode[idResponse](t, w).ID

	fmPath := "/api/failure-modes/" + s.failureModeID
	w = do(t, srv, http.MethodPost, fmPath+"/causes", map[string]any{"description": "Wear", "occurrence": 6})
	gt.Value(t, w.Code).Equal(http.StatusCreated).Required()
	w = do(t, srv, http.MethodPost, fmPath+"/effects", map[string]any{
		"description":    "Fluid loss",
		"severity":       8,
		"severityPost":   8,
		"occurrencePost": 2,
		"detectionPost":  2,
	})
	gt.Value(t, w.Code).Equal(http.StatusCreated).Required()
	s.effectID = decode[idResponse](t, w).ID
	w = do(t, srv, http.MethodPost, fmPath+"/controls", map[string]any{"type": "detection", "description": "Pressure test", "detection": 3})
	gt.Value(t, w.Code).Equal(http.StatusCreated).Required()
	w = do(t, srv, http.MethodPost, fmPath+"/actions", map[string]any{"description": "Replace seal", "owner": "bob", "dueDate": "2026-03-01"})
	gt.Value(t, w.Code).Equal(http.StatusCreated).Required()

	return s
}

func TestHealth(t *testing.T) {
	srv := newServer(t)
	w := do(t, srv, http.MethodGet, "/health", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.String(t, w.Body.String()).Contains(`"ok"`)
}

func TestProjectCRUD(t *testing.T) {
	srv := newServer(t)

	w := do(t, srv, http.MethodPost, "/api/projects", map[string]any{"name": "Pump", "description": "Line 3"})
	gt.Value(t, w.Code).Equal(http.StatusCreated).Required()
	created := decode[struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Settings struct {
			RatingScale int `json:"ratingScale"`
			Bands       []struct {
				Label string `json:"label"`
			} `json:"bands"`
		} `json:"settings"`
	}](t, w)
	gt.Value(t, created.Name).Equal("Pump")
	gt.Value(t, created.Settings.RatingScale).Equal(10)
	gt.Array(t, created.Settings.Bands).Length(4)

	path := "/api/projects/" + created.ID

	t.Run("get", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, path, nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.String(t, w.Body.String()).Contains(`"description":"Line 3"`)
	})

	t.Run("list", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/api/projects", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		resp := decode[struct {
			Projects []idResponse `json:"projects"`
		}](t, w)
		gt.Array(t, resp.Projects).Length(1)
	})

	t.Run("patch keeps fields not in the body", func(t *testing.T) {
		w := do(t, srv, http.MethodPatch, path, map[string]any{"name": "Pump v2"})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := w.Body.String()
		gt.String(t, body).Contains(`"name":"Pump v2"`)
		gt.String(t, body).Contains(`"description":"Line 3"`)
	})

	t.Run("patch rejects settings", func(t *testing.T) {
		w := do(t, srv, http.MethodPatch, path, map[string]any{"settings": map[string]any{"ratingScale": 5}})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("delete", func(t *testing.T) {
		w := do(t, srv, http.MethodDelete, path, nil)
		gt.Value(t, w.Code).Equal(http.StatusNoContent)

		w = do(t, srv, http.MethodGet, path, nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})
}

func TestRequestValidation(t *testing.T) {
	srv := newServer(t)
	s := seed(t, srv)

	t.Run("missing name", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/projects", map[string]any{"description": "x"})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		body := decode[errorBody](t, w)
		gt.Value(t, body.Error).Equal("validation failed")
		gt.Array(t, body.Messages).Length(1).Required()
		gt.Value(t, body.Messages[0]).Equal("name is required")
	})

	t.Run("unknown field", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/projects", map[string]any{"name": "x", "owner": "y"})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("empty body", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/projects", "")
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		gt.Value(t, decode[errorBody](t, w).Error).Equal("request body is required")
	})

	t.Run("bad enum", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/failure-modes/"+s.failureModeID+"/controls",
			map[string]any{"type": "magic", "description": "x", "detection": 2})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		gt.String(t, w.Body.String()).Contains("type must be one of")
	})

	t.Run("bad due date", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/failure-modes/"+s.failureModeID+"/actions",
			map[string]any{"description": "x", "dueDate": "tomorrow"})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("rating out of scale", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/failure-modes/"+s.failureModeID+"/causes",
			map[string]any{"description": "Heat", "occurrence": 11})
		gt.Value(t, w.Code).Equal(http.StatusUnprocessableEntity)
		gt.String(t, w.Body.String()).Contains("occurrence must be between 1 and 10")
	})

	t.Run("zero or missing rating", func(t *testing.T) {
		tests := []struct {
			name string
			path string
			body map[string]any
			msg  string
		}{
			{"zero occurrence", "/causes", map[string]any{"description": "Heat", "occurrence": 0}, "occurrence must be between 1 and 10"},
			{"missing severity", "/effects", map[string]any{"description": "Spill"}, "severity must be between 1 and 10"},
			{"zero detection", "/controls", map[string]any{"type": "detection", "description": "Sight glass", "detection": 0}, "detection must be between 1 and 10"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := do(t, srv, http.MethodPost, "/api/failure-modes/"+s.failureModeID+tt.path, tt.body)
				gt.Value(t, w.Code).Equal(http.StatusUnprocessableEntity)
				gt.String(t, w.Body.String()).Contains(tt.msg)
			})
		}
	})

	t.Run("missing parent", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/failure-modes/missing/causes",
			map[string]any{"description": "Heat", "occurrence": 3})
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})
}

func TestSettings(t *testing.T) {
	srv := newServer(t)
	s := seed(t, srv)
	path := "/api/projects/" + s.projectID + "/settings"

	gapped := map[string]any{
		"ratingScale": 10,
		"bands": []map[string]any{
			{"label": "Low", "min": 1, "max": 50},
			{"label": "High", "min": 60, "max": 1000},
		},
	}

	t.Run("get", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, path, nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.String(t, w.Body.String()).Contains(`"critical":300`)
	})

	t.Run("validate reports problems without saving", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, path+"/validate", gapped)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		resp := decode[struct {
			Valid    bool     `json:"valid"`
			Messages []string `json:"messages"`
		}](t, w)
		gt.Bool(t, resp.Valid).False()
		gt.Value(t, len(resp.Messages) > 0).Equal(true)
	})

	t.Run("update rejects invalid bands", func(t *testing.T) {
		w := do(t, srv, http.MethodPut, path, gapped)
		gt.Value(t, w.Code).Equal(http.StatusUnprocessableEntity)
		body := decode[errorBody](t, w)
		gt.Value(t, len(body.Messages) > 0).Equal(true)
	})

	t.Run("update rejects a scale smaller than existing ratings", func(t *testing.T) {
		w := do(t, srv, http.MethodPut, path, map[string]any{
			"ratingScale": 5,
			"bands": []map[string]any{
				{"label": "Low", "min": 1, "max": 100},
				{"label": "High", "min": 101, "max": 250},
			},
		})
		gt.Value(t, w.Code).Equal(http.StatusUnprocessableEntity)
		gt.String(t, w.Body.String()).Contains("existing ratings")
	})

	t.Run("update", func(t *testing.T) {
		w := do(t, srv, http.MethodPut, path, map[string]any{
			"ratingScale": 10,
			"bands": []map[string]any{
				{"label": "Acceptable", "min": 1, "max": 99, "color": "#00FF00"},
				{"label": "Unacceptable", "min": 100, "max": 1000, "color": "#FF0000"},
			},
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)

		w = do(t, srv, http.MethodGet, "/api/projects/"+s.projectID+"/classify?rpn=144", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.String(t, w.Body.String()).Contains(`"label":"Unacceptable"`)
	})
}

type riskBody struct {
	ID    string `json:"id"`
	Score struct {
		RPN        int `json:"rpn"`
		Severity   int `json:"severity"`
		Occurrence int `json:"occurrence"`
		Detection  int `json:"detection"`
	} `json:"score"`
	Band struct {
		Label string `json:"label"`
	} `json:"band"`
	PostRPN int              `json:"postRpn"`
	Causes  []map[string]any `json:"causes"`
	Actions []map[string]any `json:"actions"`
}

func TestAnalysis(t *testing.T) {
	srv := newServer(t)
	s := seed(t, srv)
	projectPath := "/api/projects/" + s.projectID

	t.Run("failure mode detail", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/api/failure-modes/"+s.failureModeID, nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		resp := decode[riskBody](t, w)
		gt.Value(t, resp.Score.RPN).Equal(144)
		gt.Value(t, resp.Score.Severity).Equal(8)
		gt.Value(t, resp.Score.Occurrence).Equal(6)
		gt.Value(t, resp.Score.Detection).Equal(3)
		gt.Value(t, resp.Band.Label).Equal("High")
		gt.Value(t, resp.PostRPN).Equal(32)
		gt.Array(t, resp.Causes).Length(1)
		gt.Array(t, resp.Actions).Length(1).Required()
		gt.Value(t, resp.Actions[0]["dueDate"]).Equal("2026-03-01")
	})

	t.Run("risk list filters", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, projectPath+"/failure-modes?band=High", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Array(t, decode[struct {
			FailureModes []riskBody `json:"failureModes"`
		}](t, w).FailureModes).Length(1)

		w = do(t, srv, http.MethodGet, projectPath+"/failure-modes?band=Low", nil)
		gt.Array(t, decode[struct {
			FailureModes []riskBody `json:"failureModes"`
		}](t, w).FailureModes).Length(0)

		w = do(t, srv, http.MethodGet, projectPath+"/failure-modes?status=broken", nil)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("dashboard", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, projectPath+"/dashboard", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		resp := decode[struct {
			Metrics struct {
				TotalFailureModes int `json:"totalFailureModes"`
				HighRiskModes     int `json:"highRiskModes"`
				AverageRPN        int `json:"averageRPN"`
				OpenActions       int `json:"openActions"`
			} `json:"metrics"`
			ChartData struct {
				RiskDistribution []struct {
					Label string `json:"label"`
					Count int    `json:"count"`
				} `json:"riskDistribution"`
				TopRisks []struct {
					ComponentName string `json:"componentName"`
				} `json:"topRisks"`
			} `json:"chartData"`
		}](t, w)
		gt.Value(t, resp.Metrics.TotalFailureModes).Equal(1)
		gt.Value(t, resp.Metrics.HighRiskModes).Equal(0)
		gt.Value(t, resp.Metrics.AverageRPN).Equal(144)
		gt.Value(t, resp.Metrics.OpenActions).Equal(1)
		gt.Array(t, resp.ChartData.RiskDistribution).Length(4).Required()
		gt.Value(t, resp.ChartData.RiskDistribution[1].Label).Equal("Medium")
		gt.Value(t, resp.ChartData.RiskDistribution[1].Count).Equal(1)
		gt.Array(t, resp.ChartData.TopRisks).Length(1).Required()
		gt.Value(t, resp.ChartData.TopRisks[0].ComponentName).Equal("Seal")

		w = do(t, srv, http.MethodGet, projectPath+"/dashboard?top=x", nil)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("summary", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, projectPath+"/summary?top=1", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		resp := decode[struct {
			Distribution []struct {
				Label      string `json:"label"`
				Count      int    `json:"count"`
				Percentage int    `json:"percentage"`
			} `json:"distribution"`
		}](t, w)
		gt.Array(t, resp.Distribution).Length(4).Required()
		gt.Value(t, resp.Distribution[2].Label).Equal("High")
		gt.Value(t, resp.Distribution[2].Percentage).Equal(100)
	})

	t.Run("tree", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, projectPath+"/tree", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		resp := decode[struct {
			Components []struct {
				Name         string     `json:"name"`
				FailureModes []riskBody `json:"failureModes"`
			} `json:"components"`
		}](t, w)
		gt.Array(t, resp.Components).Length(1).Required()
		gt.Value(t, resp.Components[0].Name).Equal("Seal")
		gt.Array(t, resp.Components[0].FailureModes).Length(1).Required()
		gt.Value(t, resp.Components[0].FailureModes[0].Score.RPN).Equal(144)
	})

	t.Run("classify", func(t *testing.T) {
		testCases := []struct {
			query string
			code  int
			label string
		}{
			{query: "rpn=50", code: http.StatusOK, label: "Low"},
			{query: "rpn=151", code: http.StatusOK, label: "Critical"},
			{query: "rpn=5000", code: http.StatusOK, label: "Critical"},
			{query: "rpn=abc", code: http.StatusBadRequest},
			{query: "rpn=-1", code: http.StatusBadRequest},
			{query: "", code: http.StatusBadRequest},
		}
		for _, tc := range testCases {
			t.Run(tc.query, func(t *testing.T) {
				w := do(t, srv, http.MethodGet, projectPath+"/classify?"+tc.query, nil)
				gt.Value(t, w.Code).Equal(tc.code)
				if tc.label != "" {
					gt.String(t, w.Body.String()).Contains(`"label":"` + tc.label + `"`)
				}
			})
		}
	})
}

func TestChildUpdates(t *testing.T) {
	srv := newServer(t)
	s := seed(t, srv)

	t.Run("null clears a post rating", func(t *testing.T) {
		w := do(t, srv, http.MethodPatch, "/api/effects/"+s.effectID, `{"severityPost": null}`)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		resp := decode[struct {
			Severity     int  `json:"severity"`
			SeverityPost *int `json:"severityPost"`
			PostRPN      int  `json:"postRpn"`
		}](t, w)
		gt.Value(t, resp.Severity).Equal(8)
		gt.Value(t, resp.SeverityPost).Nil()
		gt.Value(t, resp.PostRPN).Equal(0)
	})

	t.Run("severity change moves the score", func(t *testing.T) {
		w := do(t, srv, http.MethodPatch, "/api/effects/"+s.effectID, map[string]any{"severity": 10})
		gt.Value(t, w.Code).Equal(http.StatusOK)

		w = do(t, srv, http.MethodGet, "/api/failure-modes/"+s.failureModeID, nil)
		resp := decode[riskBody](t, w)
		gt.Value(t, resp.Score.RPN).Equal(180)
		gt.Value(t, resp.Band.Label).Equal("Critical")
	})

	t.Run("unknown child", func(t *testing.T) {
		w := do(t, srv, http.MethodPatch, "/api/causes/missing", map[string]any{"occurrence": 2})
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
		w = do(t, srv, http.MethodDelete, "/api/actions/missing", nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})

	t.Run("deleting the component cascades", func(t *testing.T) {
		w := do(t, srv, http.MethodDelete, "/api/components/"+s.componentID, nil)
		gt.Value(t, w.Code).Equal(http.StatusNoContent)

		w = do(t, srv, http.MethodGet, "/api/failure-modes/"+s.failureModeID, nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
		w = do(t, srv, http.MethodPatch, "/api/effects/"+s.effectID, map[string]any{"severity": 2})
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})
}

func TestExportAndImport(t *testing.T) {
	srv := newServer(t)
	s := seed(t, srv)
	exportPath := "/api/projects/" + s.projectID + "/export"

	testCases := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{format: "xlsx", contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", prefix: "PK"},
		{format: "pdf", contentType: "application/pdf", prefix: "%PDF-"},
		{format: "yaml", contentType: "application/yaml", prefix: "version: 1"},
	}
	for _, tc := range testCases {
		t.Run(tc.format, func(t *testing.T) {
			w := do(t, srv, http.MethodGet, exportPath+"?format="+tc.format, nil)
			gt.Value(t, w.Code).Equal(http.StatusOK)
			gt.Value(t, w.Header().Get("Content-Type")).Equal(tc.contentType)
			gt.String(t, w.Header().Get("Content-Disposition")).Contains("attachment; filename=\"fmea-Pump-")
			gt.String(t, w.Header().Get("X-Report-ID")).NotEqual("")
			gt.Value(t, strings.HasPrefix(w.Body.String(), tc.prefix)).Equal(true)
		})
	}

	t.Run("unsupported format", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, exportPath+"?format=docx", nil)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("import round trip", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, exportPath+"?format=yaml", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK).Required()

		w = do(t, srv, http.MethodPost, "/api/projects/import", w.Body.String())
		gt.Value(t, w.Code).Equal(http.StatusCreated).Required()
		imported := decode[idResponse](t, w)
		gt.Value(t, imported.ID).NotEqual(s.projectID)

		w = do(t, srv, http.MethodGet, "/api/projects/"+imported.ID+"/failure-modes", nil)
		resp := decode[struct {
			FailureModes []riskBody `json:"failureModes"`
		}](t, w)
		gt.Array(t, resp.FailureModes).Length(1).Required()
		gt.Value(t, resp.FailureModes[0].Score.RPN).Equal(144)
	})

	t.Run("import rejects broken documents", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/projects/import", "version: 1\nproject:\n  description: no name\n")
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})
}

type stubSuggester struct {
	suggestions []*model.Suggestion
	err         error
}

func (s *stubSuggester) Suggest(ctx context.Context, sctx *model.SuggestionContext) ([]*model.Suggestion, error) {
	return s.suggestions, s.err
}

type suggestBody struct {
	Enabled     bool `json:"enabled"`
	Suggestions []struct {
		Text   string `json:"text"`
		Rating int    `json:"rating"`
	} `json:"suggestions"`
}

func TestSuggestions(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		srv := newServer(t)
		w := do(t, srv, http.MethodPost, "/api/suggestions", map[string]any{"kind": "cause"})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		resp := decode[suggestBody](t, w)
		gt.Bool(t, resp.Enabled).False()
		gt.Array(t, resp.Suggestions).Length(0)
	})

	t.Run("suggester result", func(t *testing.T) {
		srv := newServer(t, usecase.WithSuggester(&stubSuggester{
			suggestions: []*model.Suggestion{{Text: "Corrosion", Confidence: 0.8, Rating: 4}},
		}))
		s := seed(t, srv)
		w := do(t, srv, http.MethodPost, "/api/suggestions", map[string]any{
			"kind":          "cause",
			"projectId":     s.projectID,
			"failureModeId": s.failureModeID,
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		resp := decode[suggestBody](t, w)
		gt.Bool(t, resp.Enabled).True()
		gt.Array(t, resp.Suggestions).Length(1).Required()
		gt.Value(t, resp.Suggestions[0].Text).Equal("Corrosion")
		gt.Value(t, resp.Suggestions[0].Rating).Equal(4)
	})

	t.Run("suggester failure yields an empty list", func(t *testing.T) {
		srv := newServer(t, usecase.WithSuggester(&stubSuggester{err: errors.New("quota exceeded")}))
		w := do(t, srv, http.MethodPost, "/api/suggestions", map[string]any{"kind": "effect"})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Array(t, decode[suggestBody](t, w).Suggestions).Length(0)
	})

	t.Run("invalid kind", func(t *testing.T) {
		srv := newServer(t)
		w := do(t, srv, http.MethodPost, "/api/suggestions", map[string]any{"kind": "poem"})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})
}

func TestMetricsAndStatic(t *testing.T) {
	srv := newServer(t)

	w := do(t, srv, http.MethodGet, "/api/projects", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)

	t.Run("metrics", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/metrics", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.String(t, w.Body.String()).Contains("fmea_http_requests_total")
		gt.String(t, w.Body.String()).Contains(`method="GET"`)
	})

	t.Run("unknown api path", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/api/nothing", nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
		gt.String(t, w.Header().Get("Content-Type")).Contains("application/json")
	})

	t.Run("spa fallback", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/projects/123", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.String(t, w.Body.String()).Contains("<html")
	})
}
