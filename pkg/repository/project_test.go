package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

func runProjectRepositoryTest(t *testing.T, newRepo repoFactory) {
	t.Run("Create assigns ID and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Project().Create(ctx, &model.Project{
			Name:     "Brake system",
			Settings: model.DefaultSettings(),
		})
		gt.NoError(t, err).Required()
		gt.String(t, string(created.ID)).NotEqual("")
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Value(t, created.UpdatedAt).Equal(created.CreatedAt)

		got, err := repo.Project().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("Brake system")
		gt.Value(t, got.Settings.RatingScale).Equal(types.RatingScale10)
		gt.Array(t, got.Settings.Bands).Length(4).Required()
		gt.Value(t, got.Settings.Bands[3].Label).Equal("Critical")
		gt.Value(t, got.Settings.Dashboard.High).Equal(200)
	})

	t.Run("Get returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Project().Get(context.Background(), model.NewProjectID())
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("returned values are copies", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Project().Create(ctx, &model.Project{Name: "p", Settings: model.DefaultSettings()})
		gt.NoError(t, err).Required()
		created.Settings.Bands[0].Label = "changed"

		got, err := repo.Project().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Settings.Bands[0].Label).Equal("Low")
	})

	t.Run("List returns projects in creation order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, name := range []string{"first", "second", "third"} {
			_, err := repo.Project().Create(ctx, &model.Project{Name: name})
			gt.NoError(t, err).Required()
		}

		projects, err := repo.Project().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, projects).Length(3).Required()
		gt.Value(t, projects[0].Name).Equal("first")
		gt.Value(t, projects[2].Name).Equal("third")
	})

	t.Run("Update keeps CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Project().Create(ctx, &model.Project{Name: "before"})
		gt.NoError(t, err).Required()

		created.Name = "after"
		created.Settings.RatingScale = types.RatingScale5
		updated, err := repo.Project().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Name).Equal("after")
		gt.Value(t, updated.Settings.RatingScale).Equal(types.RatingScale5)
		gt.Bool(t, updated.CreatedAt.Equal(created.CreatedAt)).True()
		gt.Bool(t, updated.UpdatedAt.Before(created.CreatedAt)).False()
	})

	t.Run("Update and Delete of missing project fail", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Project().Update(ctx, &model.Project{ID: model.NewProjectID(), Name: "ghost"})
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()

		err = repo.Project().Delete(ctx, model.NewProjectID())
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Delete removes project", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Project().Create(ctx, &model.Project{Name: "gone"})
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.Project().Delete(ctx, created.ID)).Required()

		_, err = repo.Project().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestProjectRepository(t *testing.T) {
	runAllBackends(t, runProjectRepositoryTest)
}
