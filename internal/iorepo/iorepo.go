// Package iorepo implements the repo contracts with GORM sessions on
// top of the shared pgx connection pool.
package iorepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/usnistgov/NED/pkg/repo"
	"github.com/usnistgov/NED/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSet opens one GORM session on the pool and returns the six
// repositories sharing it.
func NewSet(pool *pgxpool.Pool) (*repo.Set, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{
			// Row-level noise goes through slog instead.
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}

	return &repo.Set{
		References:      &references{db: gormDB},
		Components:      &components{db: gormDB},
		FragilityModels: &fragilityModels{db: gormDB},
		Experiments:     &experiments{db: gormDB},
		Bridges:         &bridges{db: gormDB},
		FragilityCurves: &fragilityCurves{db: gormDB},
	}, nil
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

type references struct {
	db *gorm.DB
}

func (r *references) ByID(
	ctx context.Context, id string,
) (*schema.Reference, error) {
	var res schema.Reference
	err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error
	if notFound(err) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, QueryError("reference", id, err)
	}
	return &res, nil
}

func (r *references) Create(
	ctx context.Context, ref *schema.Reference,
) error {
	if err := r.db.WithContext(ctx).Create(ref).Error; err != nil {
		return CreateError("reference", ref.ID, err)
	}
	return nil
}

func (r *references) Update(
	ctx context.Context, ref *schema.Reference,
) error {
	if err := r.db.WithContext(ctx).Save(ref).Error; err != nil {
		return UpdateError("reference", ref.ID, err)
	}
	return nil
}

func (r *references) All(
	ctx context.Context,
) ([]schema.Reference, error) {
	var res []schema.Reference
	err := r.db.WithContext(ctx).Order("id").Find(&res).Error
	if err != nil {
		return nil, QueryError("reference", "", err)
	}
	return res, nil
}

type components struct {
	db *gorm.DB
}

func (r *components) ByComponentID(
	ctx context.Context, componentID string,
) (*schema.Component, error) {
	var res schema.Component
	err := r.db.WithContext(ctx).
		First(&res, "component_id = ?", componentID).Error
	if notFound(err) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, QueryError("component", componentID, err)
	}
	return &res, nil
}

func (r *components) Create(
	ctx context.Context, comp *schema.Component,
) error {
	if err := r.db.WithContext(ctx).Create(comp).Error; err != nil {
		return CreateError("component", comp.ComponentID, err)
	}
	return nil
}

func (r *components) Update(
	ctx context.Context, comp *schema.Component,
) error {
	if err := r.db.WithContext(ctx).Save(comp).Error; err != nil {
		return UpdateError("component", comp.ComponentID, err)
	}
	return nil
}

func (r *components) All(
	ctx context.Context,
) ([]schema.Component, error) {
	var res []schema.Component
	err := r.db.WithContext(ctx).Order("component_id").Find(&res).Error
	if err != nil {
		return nil, QueryError("component", "", err)
	}
	return res, nil
}

type fragilityModels struct {
	db *gorm.DB
}

func (r *fragilityModels) ByID(
	ctx context.Context, id string,
) (*schema.FragilityModel, error) {
	var res schema.FragilityModel
	err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error
	if notFound(err) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, QueryError("fragility model", id, err)
	}
	return &res, nil
}

func (r *fragilityModels) Create(
	ctx context.Context, fm *schema.FragilityModel,
) error {
	if err := r.db.WithContext(ctx).Create(fm).Error; err != nil {
		return CreateError("fragility model", fm.ID, err)
	}
	return nil
}

func (r *fragilityModels) Update(
	ctx context.Context, fm *schema.FragilityModel,
) error {
	if err := r.db.WithContext(ctx).Save(fm).Error; err != nil {
		return UpdateError("fragility model", fm.ID, err)
	}
	return nil
}

func (r *fragilityModels) All(
	ctx context.Context,
) ([]schema.FragilityModel, error) {
	var res []schema.FragilityModel
	err := r.db.WithContext(ctx).Order("id").Find(&res).Error
	if err != nil {
		return nil, QueryError("fragility model", "", err)
	}
	return res, nil
}

type experiments struct {
	db *gorm.DB
}

func (r *experiments) ByID(
	ctx context.Context, id string,
) (*schema.Experiment, error) {
	var res schema.Experiment
	err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error
	if notFound(err) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, QueryError("experiment", id, err)
	}
	return &res, nil
}

func (r *experiments) Create(
	ctx context.Context, exp *schema.Experiment,
) error {
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return CreateError("experiment", exp.ID, err)
	}
	return nil
}

func (r *experiments) Update(
	ctx context.Context, exp *schema.Experiment,
) error {
	if err := r.db.WithContext(ctx).Save(exp).Error; err != nil {
		return UpdateError("experiment", exp.ID, err)
	}
	return nil
}

func (r *experiments) All(
	ctx context.Context,
) ([]schema.Experiment, error) {
	var res []schema.Experiment
	err := r.db.WithContext(ctx).Order("id").Find(&res).Error
	if err != nil {
		return nil, QueryError("experiment", "", err)
	}
	return res, nil
}

type bridges struct {
	db *gorm.DB
}

func (r *bridges) ByPair(
	ctx context.Context, experimentID, fragilityModelID string,
) (*schema.ExperimentFragilityModelBridge, error) {
	var res schema.ExperimentFragilityModelBridge
	err := r.db.WithContext(ctx).First(
		&res,
		"experiment_id = ? AND fragility_model_id = ?",
		experimentID, fragilityModelID,
	).Error
	if notFound(err) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		key := experimentID + "/" + fragilityModelID
		return nil, QueryError("bridge", key, err)
	}
	return &res, nil
}

func (r *bridges) Create(
	ctx context.Context, b *schema.ExperimentFragilityModelBridge,
) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		key := b.ExperimentID + "/" + b.FragilityModelID
		return CreateError("bridge", key, err)
	}
	return nil
}

func (r *bridges) All(
	ctx context.Context,
) ([]schema.ExperimentFragilityModelBridge, error) {
	var res []schema.ExperimentFragilityModelBridge
	err := r.db.WithContext(ctx).
		Order("experiment_id, fragility_model_id").Find(&res).Error
	if err != nil {
		return nil, QueryError("bridge", "", err)
	}
	return res, nil
}

type fragilityCurves struct {
	db *gorm.DB
}

func (r *fragilityCurves) ByKey(
	ctx context.Context, fragilityModelID string, dsRank int,
) (*schema.FragilityCurve, error) {
	var res schema.FragilityCurve
	err := r.db.WithContext(ctx).First(
		&res,
		"fragility_model_id = ? AND ds_rank = ?",
		fragilityModelID, dsRank,
	).Error
	if notFound(err) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, QueryError("fragility curve", fragilityModelID, err)
	}
	return &res, nil
}

func (r *fragilityCurves) Create(
	ctx context.Context, c *schema.FragilityCurve,
) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return CreateError("fragility curve", c.FragilityModelID, err)
	}
	return nil
}

func (r *fragilityCurves) Update(
	ctx context.Context, c *schema.FragilityCurve,
) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return UpdateError("fragility curve", c.FragilityModelID, err)
	}
	return nil
}

func (r *fragilityCurves) All(
	ctx context.Context,
) ([]schema.FragilityCurve, error) {
	var res []schema.FragilityCurve
	err := r.db.WithContext(ctx).
		Order("fragility_model_id, ds_rank").Find(&res).Error
	if err != nil {
		return nil, QueryError("fragility curve", "", err)
	}
	return res, nil
}
