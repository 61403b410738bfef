package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentnest-server/internal/models"
)

func propertyViews(t *testing.T, app *testApp, id string) int64 {
	t.Helper()
	var prop models.Property
	require.NoError(t, app.db.First(&prop, "id = ?", id).Error)
	return prop.Views
}

func TestGetProperty_ViewCounting(t *testing.T) {
	app := newTestApp(t)

	owner, ownerToken := app.createUser(t, "owner@example.com", models.RoleOwner)
	_, tenantToken := app.createUser(t, "tenant@example.com", models.RoleTenant)
	prop := app.createProperty(t, owner.ID)
	path := "/api/v1/properties/" + prop.ID

	// First identified view counts, the repeat does not.
	w := app.do(t, http.MethodGet, path, tenantToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = app.do(t, http.MethodGet, path, tenantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, propertyViews(t, app, prop.ID))

	// The owner browsing their own listing never counts.
	w = app.do(t, http.MethodGet, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, propertyViews(t, app, prop.ID))

	// Anonymous views dedup by IP within the window.
	w = app.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = app.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, propertyViews(t, app, prop.ID))
}

func TestGetProperty_ArchivedVisibility(t *testing.T) {
	app := newTestApp(t)

	owner, ownerToken := app.createUser(t, "owner@example.com", models.RoleOwner)
	_, tenantToken := app.createUser(t, "tenant@example.com", models.RoleTenant)
	prop := app.createProperty(t, owner.ID)

	w := app.do(t, http.MethodPatch, "/api/v1/properties/"+prop.ID+"/archive", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Hidden from everyone but the owner.
	w = app.do(t, http.MethodGet, "/api/v1/properties/"+prop.ID, tenantToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = app.do(t, http.MethodGet, "/api/v1/properties/"+prop.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = app.do(t, http.MethodGet, "/api/v1/properties/"+prop.ID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Gone from search until restored.
	w = app.do(t, http.MethodGet, "/api/v1/properties?city=Pune", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Total int64 `json:"total"`
	}
	decodeData(t, w, &page)
	assert.EqualValues(t, 0, page.Total)

	w = app.do(t, http.MethodPatch, "/api/v1/properties/"+prop.ID+"/restore", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/properties?city=Pune", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &page)
	assert.EqualValues(t, 1, page.Total)
}

func TestPropertyOwnership(t *testing.T) {
	app := newTestApp(t)

	owner, _ := app.createUser(t, "owner@example.com", models.RoleOwner)
	_, otherToken := app.createUser(t, "other@example.com", models.RoleOwner)
	_, tenantToken := app.createUser(t, "tenant@example.com", models.RoleTenant)
	prop := app.createProperty(t, owner.ID)

	// A different owner cannot update someone else's listing.
	w := app.do(t, http.MethodPut, "/api/v1/properties/"+prop.ID, otherToken,
		map[string]interface{}{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Tenants cannot create listings at all.
	w = app.do(t, http.MethodPost, "/api/v1/properties", tenantToken, map[string]interface{}{
		"title":       "Tenant flat",
		"city":        "Pune",
		"monthlyRent": 10000,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
