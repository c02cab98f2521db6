package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-signup/internal/client"
)

func TestAPIClient_EncodesRequests(t *testing.T) {
	var gotMethod, gotRawPath, gotQuery string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotRawPath = r.URL.EscapedPath()
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer ts.Close()

	api := client.NewAPIClient(ts.URL+"/", nil)
	ctx := context.Background()

	msg, err := api.Signup(ctx, "AC/DC Fans", "a+b@x.com")
	require.NoError(t, err)
	assert.Equal(t, "ok", msg)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/activities/AC%2FDC%20Fans/signup", gotRawPath)
	assert.Equal(t, "email=a%2Bb%40x.com", gotQuery)

	_, err = api.Unregister(ctx, "Chess Club", "a b@x.com")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/activities/Chess%20Club/participants/a%20b@x.com", gotRawPath)
}

func TestAPIClient_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{name: "detail string", status: http.StatusBadRequest, body: `{"detail":"Student already signed up for this activity"}`, wantDetail: "Student already signed up for this activity"},
		{name: "no detail", status: http.StatusNotFound, body: `{}`},
		{name: "not json", status: http.StatusBadGateway, body: `<html>bad gateway</html>`},
		{name: "detail not a string", status: http.StatusUnprocessableEntity, body: `{"detail":[{"loc":["query","email"]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := client.NewAPIClient(ts.URL, ts.Client()).Signup(context.Background(), "Chess Club", "a@x.com")

			var apiErr *client.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
		})
	}
}

func TestAPIClient_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := client.NewAPIClient(url, nil).Activities(context.Background())
	require.Error(t, err)

	var apiErr *client.APIError
	assert.False(t, errors.As(err, &apiErr), "transport failure must not look like a server response")
}

func TestAPIClient_ActivitiesUndecodable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer ts.Close()

	_, err := client.NewAPIClient(ts.URL, nil).Activities(context.Background())
	assert.ErrorContains(t, err, "decode activities")
}
