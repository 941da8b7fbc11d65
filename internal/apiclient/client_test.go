package apiclient_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplecom/storefront-smoke/internal/apiclient"
	"github.com/simplecom/storefront-smoke/internal/apiclient/apitest"
	"github.com/simplecom/storefront-smoke/internal/config"
	"github.com/simplecom/storefront-smoke/internal/logging"
)

func TestHTTPClient_ListUsers(t *testing.T) {
	httphelpers.WithServer(apitest.Handler(), func(server *httptest.Server) {
		// GIVEN
		client := apiclient.NewClient(config.APIConfig{Base: server.URL + "/api/"}, logging.NullLogger())

		// WHEN
		resp, err := client.ListUsers(2)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotNil(t, resp.Body)
		assert.Equal(t, 2, resp.Body.Page)
		assert.Equal(t, apitest.PerPage, resp.Body.PerPage)
		assert.Len(t, resp.Body.Data, apitest.PerPage)
		assert.Equal(t, apitest.Users(), *resp.Body)
	})
}

func TestHTTPClient_GetUnknown(t *testing.T) {
	httphelpers.WithServer(apitest.Handler(), func(server *httptest.Server) {
		client := apiclient.NewClient(config.APIConfig{Base: server.URL + "/api"}, logging.NullLogger())

		resp, err := client.GetUnknown(23)

		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Nil(t, resp.Body)
	})
}

func TestHTTPClient_UnauthorizedIsNotAnError(t *testing.T) {
	httphelpers.WithServer(apitest.Unauthorized(), func(server *httptest.Server) {
		client := apiclient.NewClient(config.APIConfig{Base: server.URL}, logging.NullLogger())

		resp, err := client.ListUsers(2)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Nil(t, resp.Body)
		assert.Contains(t, string(resp.Raw), "Missing API key")
	})
}

func TestHTTPClient_Headers(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.APIConfig
		wantAuth string
		wantKey  string
	}{
		{name: "no credentials", cfg: config.APIConfig{}},
		{name: "bearer token is trimmed and sent", cfg: config.APIConfig{Token: "  Bearer abc  "}, wantAuth: "Bearer abc"},
		{name: "prefix-only token is not sent", cfg: config.APIConfig{Token: "Bearer "}},
		{name: "raw token is not sent", cfg: config.APIConfig{Token: "abc"}},
		{name: "api key", cfg: config.APIConfig{Key: "reqres-free-v1"}, wantKey: "reqres-free-v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(http.StatusNotFound))
			httphelpers.WithServer(handler, func(server *httptest.Server) {
				cfg := tt.cfg
				cfg.Base = server.URL
				client := apiclient.NewClient(cfg, logging.NullLogger())

				_, err := client.GetUnknown(23)
				require.NoError(t, err)

				req := <-requests
				assert.Equal(t, "/unknown/23", req.Request.URL.Path)
				assert.Equal(t, tt.wantAuth, req.Request.Header.Get("Authorization"))
				assert.Equal(t, tt.wantKey, req.Request.Header.Get("x-api-key"))
			})
		})
	}
}

func TestHTTPClient_MalformedBody(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(http.StatusOK, nil, []byte("<html>maintenance</html>"))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := apiclient.NewClient(config.APIConfig{Base: server.URL}, logging.NullLogger())

		_, err := client.ListUsers(2)

		assert.Error(t, err)
	})
}

func TestHTTPClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(http.StatusOK))
	url := server.URL
	server.Close()

	client := apiclient.NewClient(config.APIConfig{Base: url}, logging.NullLogger())
	_, err := client.ListUsers(2)

	assert.Error(t, err)
}
