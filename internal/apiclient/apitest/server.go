// Package apitest serves a stand-in for the ReqRes API in tests.
package apitest

import (
	"net/http"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/simplecom/storefront-smoke/internal/apiclient"
	"github.com/simplecom/storefront-smoke/internal/fixture"
)

// PerPage matches the public API's page size.
const PerPage = fixture.PerPage

// Users returns the second page of the demo users listing.
func Users() apiclient.UserList {
	return fixture.ListUsers(2)
}

// Handler answers /api/users with a listing and everything else with 404,
// like the mock server the suite was first run against.
func Handler() http.Handler {
	return httphelpers.HandlerForPath("/api/users",
		httphelpers.HandlerWithJSONResponse(Users(), nil),
		httphelpers.HandlerWithStatus(http.StatusNotFound),
	)
}

// Unauthorized answers every request with 401, like a secured deployment.
func Unauthorized() http.Handler {
	return httphelpers.HandlerWithResponse(http.StatusUnauthorized, nil, []byte(`{"error":"Missing API key"}`))
}
