package integration

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dimitrije/signshop-api/internal/catalog"
	"github.com/dimitrije/signshop-api/internal/services"
	"github.com/dimitrije/signshop-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignService_Integration_CreateFromTemplate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewDesignService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	tmpl := catalog.Template{
		ID: "storefront", Name: "Storefront Sign", Category: catalog.Category{Main: "Signs"},
		Width: 48, Height: 24, Document: json.RawMessage(`{"layers":[{"type":"text"}]}`),
	}

	design, err := svc.CreateFromTemplate(ctx, user.ID, tmpl, "")

	require.NoError(t, err)
	assert.Equal(t, "Storefront Sign", design.Name)
	assert.Equal(t, 1, design.Version)
	assert.Equal(t, 48.0, design.Width)
	assert.JSONEq(t, `{"layers":[{"type":"text"}]}`, string(design.Document))
}

func TestDesignService_Integration_Update_VersionConflict(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewDesignService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	design := fixtures.CreateDesign(t, user, "storefront")

	updated, err := svc.Update(ctx, design.ID, user.ID, nil, json.RawMessage(`{"layers":[]}`), design.Version)
	require.NoError(t, err)
	assert.Equal(t, design.Version+1, updated.Version)

	// Second save from a stale editor session
	_, err = svc.Update(ctx, design.ID, user.ID, nil, json.RawMessage(`{"layers":[1]}`), design.Version)
	assert.ErrorIs(t, err, services.ErrVersionConflict)
}

func TestDesignService_Integration_OwnershipEnforced(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewDesignService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	other := fixtures.CreateUser(t)
	design := fixtures.CreateDesign(t, owner, "storefront")

	_, err := svc.GetByID(ctx, design.ID, other.ID)
	assert.ErrorIs(t, err, services.ErrDesignNotFound)

	name := "Hijacked"
	_, err = svc.Update(ctx, design.ID, other.ID, &name, nil, design.Version)
	assert.ErrorIs(t, err, services.ErrDesignNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, design.ID, other.ID), services.ErrDesignNotFound)

	designs, err := svc.ListByUser(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, designs)
}
