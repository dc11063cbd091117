package usecase

import (
	"time"

	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
	"github.com/secmon-lab/fmea/pkg/domain/model"
)

type UseCases struct {
	repo            interfaces.Repository
	defaultSettings model.Settings
	suggester       interfaces.Suggester
	uploader        interfaces.ReportUploader
	now             func() time.Time

	Project     *ProjectUseCase
	Component   *ComponentUseCase
	FailureMode *FailureModeUseCase
	Analysis    *AnalysisUseCase
	Suggest     *SuggestUseCase
	Export      *ExportUseCase
}

type Option func(*UseCases)

// WithDefaultSettings sets the settings applied to projects created without their own
func WithDefaultSettings(settings model.Settings) Option {
	return func(uc *UseCases) {
		uc.defaultSettings = settings.Normalize()
	}
}

func WithSuggester(suggester interfaces.Suggester) Option {
	return func(uc *UseCases) {
		uc.suggester = suggester
	}
}

// WithUploader enables uploading exported reports
func WithUploader(uploader interfaces.ReportUploader) Option {
	return func(uc *UseCases) {
		uc.uploader = uploader
	}
}

// WithClock replaces the clock used to stamp reports
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:            repo,
		defaultSettings: model.DefaultSettings(),
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Project = NewProjectUseCase(repo, uc.defaultSettings)
	uc.Component = NewComponentUseCase(repo)
	uc.FailureMode = NewFailureModeUseCase(repo)
	uc.Analysis = NewAnalysisUseCase(repo)
	uc.Suggest = NewSuggestUseCase(repo, uc.suggester)
	uc.Export = NewExportUseCase(repo, uc.defaultSettings, uc.uploader, uc.now)

	return uc
}
