package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightline/internal/database"
	"brightline/internal/repository"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	return NewService(repository.NewServiceRepository(db))
}

func TestCreate_DefaultsAndUniqueSlug(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateServiceRequest{
		Name: "Panel Upgrade", ShortDescription: "200A panels", Description: "Full panel swap", Category: "residential",
		Features: []string{" Permits ", "", "Inspection"},
	})
	require.NoError(t, err)
	assert.Equal(t, "panel-upgrade", first.Slug)
	assert.True(t, first.IsActive)
	assert.Equal(t, "quote", first.PriceType)
	assert.Equal(t, []string{"Permits", "Inspection"}, first.Features)

	second, err := svc.Create(ctx, CreateServiceRequest{
		Name: "Panel Upgrade", ShortDescription: "again", Description: "dup", Category: "commercial",
	})
	require.NoError(t, err)
	assert.Equal(t, "panel-upgrade-1", second.Slug)
}

func TestToggle_HidesFromPublic(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateServiceRequest{
		Name: "EV Charger Install", ShortDescription: "Level 2", Description: "Home charging", Category: "installation",
	})
	require.NoError(t, err)

	toggled, err := svc.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	_, err = svc.Get(ctx, "ev-charger-install", false)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	got, err := svc.Get(ctx, "ev-charger-install", true)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	list, total, err := svc.List(ctx, repository.ServiceFilter{}, repository.ListParams{}, false)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)

	_, total, err = svc.List(ctx, repository.ServiceFilter{}, repository.ListParams{}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestUpdate_RenameAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateServiceRequest{
		Name: "Rewiring", ShortDescription: "Old homes", Description: "Knob and tube", Category: "residential",
	})
	require.NoError(t, err)

	name := "Whole Home Rewiring"
	price := 4500.0
	updated, err := svc.Update(ctx, created.ID, UpdateServiceRequest{Name: &name, BasePrice: &price})
	require.NoError(t, err)
	assert.Equal(t, "whole-home-rewiring", updated.Slug)
	assert.Equal(t, 4500.0, updated.BasePrice)
	assert.Equal(t, "Old homes", updated.ShortDescription)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrServiceNotFound)
	_, err = svc.Toggle(ctx, created.ID)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
