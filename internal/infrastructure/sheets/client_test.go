package sheets_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despachos-api/internal/domain"
	"github.com/jhoicas/despachos-api/internal/domain/repository"
	"github.com/jhoicas/despachos-api/internal/infrastructure/sheets"
)

var pedidos = repository.SourceRef{Name: "pedidos", SpreadsheetID: "sheet-1", Range: "PEDIDOS!A2:B"}

func TestReadRange_Valores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/spreadsheets/sheet-1/values/PEDIDOS!A2:B", r.URL.Path)
		assert.Equal(t, "secreta", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"range":"PEDIDOS!A2:B4","majorDimension":"ROWS","values":[["a","b"],[10,true],[null],[]]}`))
	}))
	defer srv.Close()

	c := sheets.NewClient(srv.URL, "secreta", 2*time.Second)
	rows, err := c.ReadRange(context.Background(), pedidos)

	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"10", "true"}, {""}, {}}, rows)
}

func TestReadRange_SinValores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"range":"PEDIDOS!A2:B","majorDimension":"ROWS"}`))
	}))
	defer srv.Close()

	rows, err := sheets.NewClient(srv.URL, "", time.Second).ReadRange(context.Background(), pedidos)

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestReadRange_HTTPNo2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	_, err := sheets.NewClient(srv.URL, "k", time.Second).ReadRange(context.Background(), pedidos)

	require.Error(t, err)
	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "pedidos", fe.Source)
	assert.Equal(t, http.StatusForbidden, fe.StatusCode)
	assert.Contains(t, err.Error(), "permission")
}

func TestReadRange_FallaDeRed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := sheets.NewClient(url, "k", time.Second).ReadRange(context.Background(), pedidos)

	require.Error(t, err)
	assert.True(t, domain.IsFetchError(err))
}

func TestReadRange_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := sheets.NewClient(srv.URL, "k", 5*time.Second).ReadRange(ctx, pedidos)

	require.Error(t, err)
	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, fe.StatusCode)
}
