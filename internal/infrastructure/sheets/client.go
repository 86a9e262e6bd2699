// Package sheets adaptador de lectura de rangos de Google Sheets (API REST v4).
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/despachos-api/internal/domain"
	"github.com/jhoicas/despachos-api/internal/domain/repository"
)

// Verificar en tiempo de compilación que Client implementa SheetSource.
var _ repository.SheetSource = (*Client)(nil)

const (
	DefaultBaseURL = "https://sheets.googleapis.com"
	maxBodyBytes   = 16 << 20
)

// Client lee rangos con una API key. No reintenta: cada pasada de conciliación
// decide si vuelve a intentarlo.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient construye el adaptador. baseURL vacío = API pública de Google.
// timeout es el límite de red por petición; el caller también pone WithTimeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── Estructuras de la API ─────────────────────────────────────────────────────

type valueRange struct {
	Range  string              `json:"range"`
	Values [][]json.RawMessage `json:"values"`
}

type apiError struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// ReadRange devuelve las celdas del rango como texto. Un rango sin valores
// devuelve una tabla vacía; un HTTP no-2xx o una falla de red, *domain.FetchError.
func (c *Client) ReadRange(ctx context.Context, ref repository.SourceRef) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s",
		c.baseURL, url.PathEscape(ref.SpreadsheetID), url.PathEscape(ref.Range))
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.FetchError{Source: ref.Name, Err: fmt.Errorf("crear request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &domain.FetchError{Source: ref.Name, Err: fmt.Errorf("timeout o cancelación: %w", ctx.Err())}
		}
		return nil, &domain.FetchError{Source: ref.Name, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.FetchError{Source: ref.Name, StatusCode: resp.StatusCode, Err: fmt.Errorf("leer respuesta: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		var apiErr apiError
		if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Error != nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		return nil, &domain.FetchError{Source: ref.Name, StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", msg)}
	}

	var vr valueRange
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, &domain.FetchError{Source: ref.Name, StatusCode: resp.StatusCode, Err: fmt.Errorf("respuesta inválida: %w", err)}
	}

	rows := make([][]string, 0, len(vr.Values))
	for _, raw := range vr.Values {
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = cellText(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cellText convierte una celda JSON en texto: cadenas tal cual, números y
// booleanos en su forma literal, null como "".
func cellText(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || string(v) == "null" {
		return ""
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}
	return string(v)
}
