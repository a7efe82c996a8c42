// Package memrepo provides an in-memory implementation of the repo
// contracts. Dry-run ingestion uses it to validate canonical files
// without a database; the pipeline and exporter tests run on it too.
package memrepo

import (
	"context"
	"sort"

	"github.com/usnistgov/NED/pkg/repo"
	"github.com/usnistgov/NED/pkg/schema"
)

// NewSet returns empty in-memory repositories.
func NewSet() *repo.Set {
	return &repo.Set{
		References:      &references{data: make(map[string]schema.Reference)},
		Components:      &components{data: make(map[string]schema.Component)},
		FragilityModels: &fragilityModels{data: make(map[string]schema.FragilityModel)},
		Experiments:     &experiments{data: make(map[string]schema.Experiment)},
		Bridges:         &bridges{},
		FragilityCurves: &fragilityCurves{},
	}
}

type references struct {
	data map[string]schema.Reference
}

func (r *references) ByID(
	_ context.Context, id string,
) (*schema.Reference, error) {
	res, ok := r.data[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &res, nil
}

func (r *references) Create(
	_ context.Context, ref *schema.Reference,
) error {
	r.data[ref.ID] = *ref
	return nil
}

func (r *references) Update(
	_ context.Context, ref *schema.Reference,
) error {
	r.data[ref.ID] = *ref
	return nil
}

func (r *references) All(
	_ context.Context,
) ([]schema.Reference, error) {
	res := make([]schema.Reference, 0, len(r.data))
	for _, v := range r.data {
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

type components struct {
	data map[string]schema.Component
}

func (r *components) ByComponentID(
	_ context.Context, componentID string,
) (*schema.Component, error) {
	res, ok := r.data[componentID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &res, nil
}

func (r *components) Create(
	_ context.Context, comp *schema.Component,
) error {
	r.data[comp.ComponentID] = *comp
	return nil
}

func (r *components) Update(
	_ context.Context, comp *schema.Component,
) error {
	r.data[comp.ComponentID] = *comp
	return nil
}

func (r *components) All(
	_ context.Context,
) ([]schema.Component, error) {
	res := make([]schema.Component, 0, len(r.data))
	for _, v := range r.data {
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].ComponentID < res[j].ComponentID
	})
	return res, nil
}

type fragilityModels struct {
	data map[string]schema.FragilityModel
}

func (r *fragilityModels) ByID(
	_ context.Context, id string,
) (*schema.FragilityModel, error) {
	res, ok := r.data[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &res, nil
}

func (r *fragilityModels) Create(
	_ context.Context, fm *schema.FragilityModel,
) error {
	r.data[fm.ID] = *fm
	return nil
}

func (r *fragilityModels) Update(
	_ context.Context, fm *schema.FragilityModel,
) error {
	r.data[fm.ID] = *fm
	return nil
}

func (r *fragilityModels) All(
	_ context.Context,
) ([]schema.FragilityModel, error) {
	res := make([]schema.FragilityModel, 0, len(r.data))
	for _, v := range r.data {
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

type experiments struct {
	data map[string]schema.Experiment
}

func (r *experiments) ByID(
	_ context.Context, id string,
) (*schema.Experiment, error) {
	res, ok := r.data[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &res, nil
}

func (r *experiments) Create(
	_ context.Context, exp *schema.Experiment,
) error {
	r.data[exp.ID] = *exp
	return nil
}

func (r *experiments) Update(
	_ context.Context, exp *schema.Experiment,
) error {
	r.data[exp.ID] = *exp
	return nil
}

func (r *experiments) All(
	_ context.Context,
) ([]schema.Experiment, error) {
	res := make([]schema.Experiment, 0, len(r.data))
	for _, v := range r.data {
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

type bridges struct {
	data []schema.ExperimentFragilityModelBridge
}

func (r *bridges) ByPair(
	_ context.Context, experimentID, fragilityModelID string,
) (*schema.ExperimentFragilityModelBridge, error) {
	for i := range r.data {
		b := r.data[i]
		if b.ExperimentID == experimentID &&
			b.FragilityModelID == fragilityModelID {
			return &b, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *bridges) Create(
	_ context.Context, b *schema.ExperimentFragilityModelBridge,
) error {
	stored := *b
	stored.ID = uint(len(r.data) + 1)
	r.data = append(r.data, stored)
	return nil
}

func (r *bridges) All(
	_ context.Context,
) ([]schema.ExperimentFragilityModelBridge, error) {
	res := make([]schema.ExperimentFragilityModelBridge, len(r.data))
	copy(res, r.data)
	sort.Slice(res, func(i, j int) bool {
		if res[i].ExperimentID != res[j].ExperimentID {
			return res[i].ExperimentID < res[j].ExperimentID
		}
		return res[i].FragilityModelID < res[j].FragilityModelID
	})
	return res, nil
}

type fragilityCurves struct {
	data []schema.FragilityCurve
}

func (r *fragilityCurves) ByKey(
	_ context.Context, fragilityModelID string, dsRank int,
) (*schema.FragilityCurve, error) {
	for i := range r.data {
		c := r.data[i]
		if c.FragilityModelID == fragilityModelID && c.DsRank == dsRank {
			return &c, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fragilityCurves) Create(
	_ context.Context, c *schema.FragilityCurve,
) error {
	stored := *c
	stored.ID = uint(len(r.data) + 1)
	r.data = append(r.data, stored)
	return nil
}

func (r *fragilityCurves) Update(
	_ context.Context, c *schema.FragilityCurve,
) error {
	for i := range r.data {
		if r.data[i].ID == c.ID {
			r.data[i] = *c
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r *fragilityCurves) All(
	_ context.Context,
) ([]schema.FragilityCurve, error) {
	res := make([]schema.FragilityCurve, len(r.data))
	copy(res, r.data)
	sort.Slice(res, func(i, j int) bool {
		if res[i].FragilityModelID != res[j].FragilityModelID {
			return res[i].FragilityModelID < res[j].FragilityModelID
		}
		return res[i].DsRank < res[j].DsRank
	})
	return res, nil
}
