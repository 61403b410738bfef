package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentnest-server/internal/models"
)

func bookingBody(propertyID string) map[string]interface{} {
	return map[string]interface{}{
		"propertyId": propertyID,
		"moveInDate": time.Now().UTC().AddDate(0, 1, 0).Format(time.RFC3339),
	}
}

func TestCreateBooking(t *testing.T) {
	app := newTestApp(t)

	owner, ownerToken := app.createUser(t, "owner@example.com", models.RoleOwner)
	_, tenantToken := app.createUser(t, "tenant@example.com", models.RoleTenant)
	prop := app.createProperty(t, owner.ID)

	w := app.do(t, http.MethodPost, "/api/v1/bookings", tenantToken, bookingBody(prop.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, app.notifier.has("booking:requested"))

	var booking struct {
		ID          string  `json:"id"`
		TokenAmount float64 `json:"tokenAmount"`
	}
	decodeData(t, w, &booking)
	assert.Equal(t, prop.TokenAmount, booking.TokenAmount)

	// Second live booking on the same property is rejected.
	w = app.do(t, http.MethodPost, "/api/v1/bookings", tenantToken, bookingBody(prop.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Owners do not hold the booking capability.
	w = app.do(t, http.MethodPost, "/api/v1/bookings", ownerToken, bookingBody(prop.ID))
	assert.Equal(t, http.StatusForbidden, w.Code)

	var stored models.Property
	require.NoError(t, app.db.First(&stored, "id = ?", prop.ID).Error)
	assert.EqualValues(t, 1, stored.BookingCnt)
}

func TestUpdateBookingStatus(t *testing.T) {
	app := newTestApp(t)

	owner, ownerToken := app.createUser(t, "owner@example.com", models.RoleOwner)
	tenant, tenantToken := app.createUser(t, "tenant@example.com", models.RoleTenant)
	require.NoError(t, app.db.Model(&models.User{}).
		Where("id = ?", tenant.ID).Update("phone_number", "+911234567890").Error)
	prop := app.createProperty(t, owner.ID)

	w := app.do(t, http.MethodPost, "/api/v1/bookings", tenantToken, bookingBody(prop.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var booking struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &booking)

	// Tenants may only cancel, never confirm.
	w = app.do(t, http.MethodPatch, "/api/v1/bookings/"+booking.ID+"/status", tenantToken,
		map[string]interface{}{"status": "confirmed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The owner confirms; the tenant is notified.
	w = app.do(t, http.MethodPatch, "/api/v1/bookings/"+booking.ID+"/status", ownerToken,
		map[string]interface{}{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, app.notifier.has("booking:confirmed"))

	// The tenant can still cancel a confirmed booking.
	w = app.do(t, http.MethodPatch, "/api/v1/bookings/"+booking.ID+"/status", tenantToken,
		map[string]interface{}{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Booking
	require.NoError(t, app.db.First(&stored, "id = ?", booking.ID).Error)
	assert.Equal(t, models.BookingCancelled, stored.Status)
}

func TestCreateReview_RequiresBooking(t *testing.T) {
	app := newTestApp(t)

	owner, _ := app.createUser(t, "owner@example.com", models.RoleOwner)
	_, tenantToken := app.createUser(t, "tenant@example.com", models.RoleTenant)
	prop := app.createProperty(t, owner.ID)

	review := map[string]interface{}{
		"propertyId": prop.ID,
		"rating":     4,
		"comment":    "Nice place",
	}

	// No booking yet: rejected.
	w := app.do(t, http.MethodPost, "/api/v1/reviews", tenantToken, review)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/bookings", tenantToken, bookingBody(prop.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(t, http.MethodPost, "/api/v1/reviews", tenantToken, review)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// One review per tenant per property.
	w = app.do(t, http.MethodPost, "/api/v1/reviews", tenantToken, review)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The review shows up on the public listing endpoint.
	w = app.do(t, http.MethodGet, "/api/v1/properties/"+prop.ID+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var reviews []struct {
		Rating int `json:"rating"`
	}
	decodeData(t, w, &reviews)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)
}

func TestAnalyticsEndpoint(t *testing.T) {
	app := newTestApp(t)

	owner, ownerToken := app.createUser(t, "owner@example.com", models.RoleOwner)
	_, otherToken := app.createUser(t, "other@example.com", models.RoleOwner)
	_, tenantToken := app.createUser(t, "tenant@example.com", models.RoleTenant)
	prop := app.createProperty(t, owner.ID)

	// Ten identified views and two bookings: 20% conversion.
	for i := 0; i < 10; i++ {
		require.NoError(t, app.db.Create(&models.PropertyView{
			PropertyID: prop.ID,
			UserID:     "viewer-" + string(rune('a'+i)),
		}).Error)
	}
	require.NoError(t, app.db.Model(&models.Property{}).
		Where("id = ?", prop.ID).Update("views", 10).Error)
	for i := 0; i < 2; i++ {
		require.NoError(t, app.db.Create(&models.Booking{
			TenantID:    "tenant-" + string(rune('a'+i)),
			PropertyID:  prop.ID,
			OwnerID:     owner.ID,
			TokenAmount: 5000,
			Status:      models.BookingConfirmed,
		}).Error)
	}

	w := app.do(t, http.MethodGet, "/api/v1/analytics/properties/"+prop.ID, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stats struct {
		Views          int64   `json:"views"`
		Bookings       int64   `json:"bookings"`
		ConversionRate float64 `json:"conversionRate"`
		Revenue        float64 `json:"revenue"`
	}
	decodeData(t, w, &stats)
	assert.EqualValues(t, 10, stats.Views)
	assert.EqualValues(t, 2, stats.Bookings)
	assert.InDelta(t, 20.0, stats.ConversionRate, 0.001)
	assert.InDelta(t, 10000, stats.Revenue, 0.001)

	// Another owner cannot read these numbers; tenants lack the capability.
	w = app.do(t, http.MethodGet, "/api/v1/analytics/properties/"+prop.ID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = app.do(t, http.MethodGet, "/api/v1/analytics/properties/"+prop.ID, tenantToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Portfolio totals for the owner.
	w = app.do(t, http.MethodGet, "/api/v1/analytics/portfolio", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var portfolio struct {
		TotalViews    int64   `json:"totalViews"`
		TotalBookings int64   `json:"totalBookings"`
		TotalRevenue  float64 `json:"totalRevenue"`
	}
	decodeData(t, w, &portfolio)
	assert.EqualValues(t, 10, portfolio.TotalViews)
	assert.EqualValues(t, 2, portfolio.TotalBookings)
	assert.InDelta(t, 10000, portfolio.TotalRevenue, 0.001)
}
