package http

import (
	"time"

	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/risk"
	"github.com/secmon-lab/fmea/pkg/domain/types"
	"github.com/secmon-lab/fmea/pkg/usecase"
)

const dateLayout = "2006-01-02"

type bandDTO struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

type dashboardCutoffsDTO struct {
	Medium   int `json:"medium"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

type settingsDTO struct {
	RatingScale int                  `json:"ratingScale"`
	Bands       []bandDTO            `json:"bands" validate:"dive"`
	Dashboard   *dashboardCutoffsDTO `json:"dashboard,omitempty"`
}

func newSettingsDTO(s model.Settings) settingsDTO {
	dto := settingsDTO{
		RatingScale: int(s.RatingScale),
		Bands:       make([]bandDTO, len(s.Bands)),
		Dashboard: &dashboardCutoffsDTO{
			Medium:   s.Dashboard.Medium,
			High:     s.Dashboard.High,
			Critical: s.Dashboard.Critical,
		},
	}
	for i, b := range s.Bands {
		dto.Bands[i] = bandDTO(b)
	}
	return dto
}

func (d settingsDTO) toModel() model.Settings {
	s := model.Settings{RatingScale: types.RatingScale(d.RatingScale)}
	for _, b := range d.Bands {
		s.Bands = append(s.Bands, model.Band(b))
	}
	if d.Dashboard != nil {
		s.Dashboard = model.DashboardCutoffs(*d.Dashboard)
	}
	return s
}

type projectRequest struct {
	Name        string       `json:"name" validate:"required,max=200"`
	Description string       `json:"description" validate:"max=4000"`
	Settings    *settingsDTO `json:"settings,omitempty"`
}

type projectResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Settings    settingsDTO `json:"settings"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func newProjectResponse(p *model.Project) projectResponse {
	return projectResponse{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Settings:    newSettingsDTO(p.Settings),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func projectInput(r projectRequest) usecase.ProjectInput {
	return usecase.ProjectInput{Name: r.Name, Description: r.Description}
}

type componentRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Function string `json:"function" validate:"max=2000"`
}

type componentResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Name      string    `json:"name"`
	Function  string    `json:"function"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newComponentResponse(c *model.Component) componentResponse {
	return componentResponse{
		ID:        string(c.ID),
		ProjectID: string(c.ProjectID),
		Name:      c.Name,
		Function:  c.Function,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type failureModeRequest struct {
	Description string `json:"description" validate:"required,max=2000"`
	ProcessStep string `json:"processStep" validate:"max=200"`
	Status      string `json:"status" validate:"omitempty,oneof=active closed on-hold"`
}

func (r failureModeRequest) toInput() usecase.FailureModeInput {
	return usecase.FailureModeInput{
		Description: r.Description,
		ProcessStep: r.ProcessStep,
		Status:      types.FailureModeStatus(r.Status),
	}
}

type failureModeResponse struct {
	ID          string    `json:"id"`
	ComponentID string    `json:"componentId"`
	Description string    `json:"description"`
	ProcessStep string    `json:"processStep"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newFailureModeResponse(fm *model.FailureMode) failureModeResponse {
	return failureModeResponse{
		ID:          string(fm.ID),
		ComponentID: string(fm.ComponentID),
		Description: fm.Description,
		ProcessStep: fm.ProcessStep,
		Status:      string(fm.Status),
		CreatedAt:   fm.CreatedAt,
		UpdatedAt:   fm.UpdatedAt,
	}
}

type causeRequest struct {
	Description string `json:"description" validate:"required,max=2000"`
	Occurrence  int    `json:"occurrence"`
}

type causeResponse struct {
	ID            string    `json:"id"`
	FailureModeID string    `json:"failureModeId"`
	Description   string    `json:"description"`
	Occurrence    int       `json:"occurrence"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func newCauseResponse(c *model.Cause) causeResponse {
	return causeResponse{
		ID:            string(c.ID),
		FailureModeID: string(c.FailureModeID),
		Description:   c.Description,
		Occurrence:    c.Occurrence,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

type effectRequest struct {
	Description       string `json:"description" validate:"required,max=2000"`
	Severity          int    `json:"severity"`
	SeverityPost      *int   `json:"severityPost"`
	OccurrencePost    *int   `json:"occurrencePost"`
	DetectionPost     *int   `json:"detectionPost"`
	JustificationPre  string `json:"justificationPre" validate:"max=4000"`
	JustificationPost string `json:"justificationPost" validate:"max=4000"`
	ActionTaken       string `json:"actionTaken" validate:"max=4000"`
}

func (r effectRequest) toInput() usecase.EffectInput {
	return usecase.EffectInput(r)
}

type effectResponse struct {
	ID                string    `json:"id"`
	FailureModeID     string    `json:"failureModeId"`
	Description       string    `json:"description"`
	Severity          int       `json:"severity"`
	SeverityPost      *int      `json:"severityPost"`
	OccurrencePost    *int      `json:"occurrencePost"`
	DetectionPost     *int      `json:"detectionPost"`
	JustificationPre  string    `json:"justificationPre"`
	JustificationPost string    `json:"justificationPost"`
	ActionTaken       string    `json:"actionTaken"`
	PostRPN           int       `json:"postRpn"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func newEffectResponse(e *model.Effect) effectResponse {
	return effectResponse{
		ID:                string(e.ID),
		FailureModeID:     string(e.FailureModeID),
		Description:       e.Description,
		Severity:          e.Severity,
		SeverityPost:      e.SeverityPost,
		OccurrencePost:    e.OccurrencePost,
		DetectionPost:     e.DetectionPost,
		JustificationPre:  e.JustificationPre,
		JustificationPost: e.JustificationPost,
		ActionTaken:       e.ActionTaken,
		PostRPN:           risk.ComputePostMitigationRisk(e),
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

type controlRequest struct {
	Type          string `json:"type" validate:"required,oneof=prevention detection"`
	Description   string `json:"description" validate:"required,max=2000"`
	Detection     int    `json:"detection"`
	Effectiveness int    `json:"effectiveness"`
}

func (r controlRequest) toInput() usecase.ControlInput {
	return usecase.ControlInput{
		Type:          types.ControlType(r.Type),
		Description:   r.Description,
		Detection:     r.Detection,
		Effectiveness: r.Effectiveness,
	}
}

type controlResponse struct {
	ID            string    `json:"id"`
	FailureModeID string    `json:"failureModeId"`
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	Detection     int       `json:"detection"`
	Effectiveness int       `json:"effectiveness"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func newControlResponse(c *model.Control) controlResponse {
	return controlResponse{
		ID:            string(c.ID),
		FailureModeID: string(c.FailureModeID),
		Type:          string(c.Type),
		Description:   c.Description,
		Detection:     c.Detection,
		Effectiveness: c.Effectiveness,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

type actionRequest struct {
	Description string  `json:"description" validate:"required,max=2000"`
	Owner       string  `json:"owner" validate:"max=200"`
	DueDate     *string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Status      string  `json:"status" validate:"omitempty,oneof=open in-progress completed cancelled"`
}

func (r actionRequest) toInput() usecase.ActionInput {
	in := usecase.ActionInput{
		Description: r.Description,
		Owner:       r.Owner,
		Status:      types.ActionStatus(r.Status),
	}
	if r.DueDate != nil && *r.DueDate != "" {
		// format is checked by the validator
		if t, err := time.Parse(dateLayout, *r.DueDate); err == nil {
			in.DueDate = &t
		}
	}
	return in
}

type actionResponse struct {
	ID            string    `json:"id"`
	FailureModeID string    `json:"failureModeId"`
	Description   string    `json:"description"`
	Owner         string    `json:"owner"`
	DueDate       *string   `json:"dueDate"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func newActionResponse(a *model.Action) actionResponse {
	resp := actionResponse{
		ID:            string(a.ID),
		FailureModeID: string(a.FailureModeID),
		Description:   a.Description,
		Owner:         a.Owner,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if a.DueDate != nil {
		d := a.DueDate.Format(dateLayout)
		resp.DueDate = &d
	}
	return resp
}

type scoreDTO struct {
	RPN        int `json:"rpn"`
	Severity   int `json:"severity"`
	Occurrence int `json:"occurrence"`
	Detection  int `json:"detection"`
}

func newScoreDTO(s risk.Score) scoreDTO {
	return scoreDTO(s)
}

type failureModeRiskResponse struct {
	failureModeResponse
	ComponentName string            `json:"componentName"`
	Score         scoreDTO          `json:"score"`
	Band          bandDTO           `json:"band"`
	PostRPN       int               `json:"postRpn"`
	Causes        []causeResponse   `json:"causes"`
	Effects       []effectResponse  `json:"effects"`
	Controls      []controlResponse `json:"controls"`
	Actions       []actionResponse  `json:"actions"`
}

func newFailureModeRiskResponse(r *usecase.FailureModeRisk) failureModeRiskResponse {
	resp := failureModeRiskResponse{
		failureModeResponse: newFailureModeResponse(r.FailureMode),
		ComponentName:       r.Component.Name,
		Score:               newScoreDTO(r.Score),
		Band:                bandDTO(r.Band),
		PostRPN:             r.PostRPN,
		Causes:              make([]causeResponse, 0, len(r.Children.Causes)),
		Effects:             make([]effectResponse, 0, len(r.Children.Effects)),
		Controls:            make([]controlResponse, 0, len(r.Children.Controls)),
		Actions:             make([]actionResponse, 0, len(r.Children.Actions)),
	}
	for _, c := range r.Children.Causes {
		resp.Causes = append(resp.Causes, newCauseResponse(c))
	}
	for _, e := range r.Children.Effects {
		resp.Effects = append(resp.Effects, newEffectResponse(e))
	}
	for _, c := range r.Children.Controls {
		resp.Controls = append(resp.Controls, newControlResponse(c))
	}
	for _, a := range r.Children.Actions {
		resp.Actions = append(resp.Actions, newActionResponse(a))
	}
	return resp
}

type bucketDTO struct {
	Label      string `json:"label"`
	Color      string `json:"color"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

func newBuckets(buckets []risk.Bucket) []bucketDTO {
	out := make([]bucketDTO, len(buckets))
	for i, b := range buckets {
		out[i] = bucketDTO(b)
	}
	return out
}

type topRiskDTO struct {
	FailureModeID string   `json:"failureModeId"`
	Description   string   `json:"description"`
	ComponentID   string   `json:"componentId"`
	ComponentName string   `json:"componentName"`
	Status        string   `json:"status"`
	Score         scoreDTO `json:"score"`
	PostRPN       int      `json:"postRpn"`
}

func newTopRisks(entries []risk.Entry) []topRiskDTO {
	out := make([]topRiskDTO, len(entries))
	for i, e := range entries {
		out[i] = topRiskDTO{
			FailureModeID: string(e.FailureMode.ID),
			Description:   e.FailureMode.Description,
			Status:        string(e.FailureMode.Status),
			Score:         newScoreDTO(e.Score),
			PostRPN:       e.PostRPN,
		}
		if e.Component != nil {
			out[i].ComponentID = string(e.Component.ID)
			out[i].ComponentName = e.Component.Name
		}
	}
	return out
}

type dashboardMetricsDTO struct {
	TotalFailureModes int `json:"totalFailureModes"`
	HighRiskModes     int `json:"highRiskModes"`
	CriticalModes     int `json:"criticalModes"`
	AverageRPN        int `json:"averageRPN"`
	OpenActions       int `json:"openActions"`
	CompletedActions  int `json:"completedActions"`
}

type chartDataDTO struct {
	RiskDistribution []bucketDTO  `json:"riskDistribution"`
	TopRisks         []topRiskDTO `json:"topRisks"`
}

type dashboardResponse struct {
	Metrics   dashboardMetricsDTO `json:"metrics"`
	ChartData chartDataDTO        `json:"chartData"`
}

func newDashboardResponse(d *risk.Dashboard) dashboardResponse {
	return dashboardResponse{
		Metrics: dashboardMetricsDTO{
			TotalFailureModes: d.TotalFailureModes,
			HighRiskModes:     d.HighRiskModes,
			CriticalModes:     d.CriticalModes,
			AverageRPN:        d.AverageRPN,
			OpenActions:       d.OpenActions,
			CompletedActions:  d.CompletedActions,
		},
		ChartData: chartDataDTO{
			RiskDistribution: newBuckets(d.RiskDistribution),
			TopRisks:         newTopRisks(d.TopRisks),
		},
	}
}

type summaryResponse struct {
	TotalFailureModes int          `json:"totalFailureModes"`
	Unscored          int          `json:"unscored"`
	AverageRPN        int          `json:"averageRPN"`
	Distribution      []bucketDTO  `json:"distribution"`
	TopRisks          []topRiskDTO `json:"topRisks"`
}

func newSummaryResponse(s *risk.Summary) summaryResponse {
	return summaryResponse{
		TotalFailureModes: s.TotalFailureModes,
		Unscored:          s.Unscored,
		AverageRPN:        s.AverageRPN,
		Distribution:      newBuckets(s.Distribution),
		TopRisks:          newTopRisks(s.TopRisks),
	}
}

type componentTreeResponse struct {
	componentResponse
	FailureModes []failureModeRiskResponse `json:"failureModes"`
}

type treeResponse struct {
	Project    projectResponse         `json:"project"`
	Components []componentTreeResponse `json:"components"`
}

func newTreeResponse(t *usecase.ProjectTree) treeResponse {
	resp := treeResponse{
		Project:    newProjectResponse(t.Project),
		Components: make([]componentTreeResponse, 0, len(t.Components)),
	}
	for _, c := range t.Components {
		ct := componentTreeResponse{
			componentResponse: newComponentResponse(c.Component),
			FailureModes:      make([]failureModeRiskResponse, 0, len(c.FailureModes)),
		}
		for _, fm := range c.FailureModes {
			ct.FailureModes = append(ct.FailureModes, newFailureModeRiskResponse(fm))
		}
		resp.Components = append(resp.Components, ct)
	}
	return resp
}

type suggestionRequest struct {
	Kind           string `json:"kind" validate:"required"`
	ProjectID      string `json:"projectId"`
	ComponentID    string `json:"componentId"`
	FailureModeID  string `json:"failureModeId"`
	Hint           string `json:"hint" validate:"max=1000"`
	MaxSuggestions int    `json:"maxSuggestions" validate:"omitempty,min=1,max=10"`
}

type suggestionDTO struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	Rating     int     `json:"rating,omitempty"`
}

type suggestionResponse struct {
	Enabled     bool            `json:"enabled"`
	Suggestions []suggestionDTO `json:"suggestions"`
}
