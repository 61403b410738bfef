package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentnest-server/internal/models"
)

func TestFavorites(t *testing.T) {
	app := newTestApp(t)

	owner, _ := app.createUser(t, "owner@example.com", models.RoleOwner)
	_, tenantToken := app.createUser(t, "tenant@example.com", models.RoleTenant)
	prop := app.createProperty(t, owner.ID)
	path := "/api/v1/favorites/" + prop.ID

	w := app.do(t, http.MethodPost, path, tenantToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Saving again is a no-op success, and the counter does not double.
	w = app.do(t, http.MethodPost, path, tenantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Property
	require.NoError(t, app.db.First(&stored, "id = ?", prop.ID).Error)
	assert.EqualValues(t, 1, stored.FavoriteCnt)

	w = app.do(t, http.MethodGet, "/api/v1/favorites", tenantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var favorites []struct {
		PropertyID string `json:"propertyId"`
	}
	decodeData(t, w, &favorites)
	require.Len(t, favorites, 1)
	assert.Equal(t, prop.ID, favorites[0].PropertyID)

	w = app.do(t, http.MethodDelete, path, tenantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, app.db.First(&stored, "id = ?", prop.ID).Error)
	assert.EqualValues(t, 0, stored.FavoriteCnt)

	// Removing a favorite that is not there is a 404.
	w = app.do(t, http.MethodDelete, path, tenantToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
