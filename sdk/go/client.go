package departamentosdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is a minimal HTTP client for the agentes and casos API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// New creates a client with sane defaults. baseURL includes the server base path.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}

type Agente struct {
	ID                 string `json:"id,omitempty"`
	Nome               string `json:"nome"`
	DataDeIncorporacao string `json:"dataDeIncorporacao"`
	Cargo              string `json:"cargo"`
}

type Caso struct {
	ID        string `json:"id,omitempty"`
	Titulo    string `json:"titulo"`
	Descricao string `json:"descricao"`
	Status    string `json:"status"`
	AgenteID  string `json:"agente_id"`
}

// Event represents an entry of the change log.
type Event struct {
	ID         int64  `json:"id"`
	TS         string `json:"ts"`
	Type       string `json:"type"`
	EntityKind string `json:"entity_kind"`
	EntityID   string `json:"entity_id"`
	Payload    string `json:"payload_json"`
}

type AgenteQuery struct {
	Cargo string
	Sort  string
}

type CasoQuery struct {
	AgenteID string
	Status   string
	Q        string
}

type EventQuery struct {
	Limit      int
	EntityKind string
	EntityID   string
}

// APIError wraps non-2xx responses. Message and Errors are decoded from the
// error envelope when the body carries one.
type APIError struct {
	StatusCode int
	Message    string
	Errors     map[string]string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status=%d message=%s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

func (c *Client) ListAgentes(ctx context.Context, q AgenteQuery) ([]Agente, error) {
	var resp []Agente
	err := c.do(ctx, http.MethodGet, withQuery("agentes", url.Values{"cargo": {q.Cargo}, "sort": {q.Sort}}), nil, &resp)
	return resp, err
}

func (c *Client) GetAgente(ctx context.Context, id string) (Agente, error) {
	var resp Agente
	err := c.do(ctx, http.MethodGet, "agentes/"+url.PathEscape(id), nil, &resp)
	return resp, err
}

func (c *Client) CreateAgente(ctx context.Context, a Agente) (Agente, error) {
	var resp Agente
	err := c.do(ctx, http.MethodPost, "agentes", a, &resp)
	return resp, err
}

func (c *Client) UpdateAgente(ctx context.Context, id string, a Agente) (Agente, error) {
	a.ID = ""
	var resp Agente
	err := c.do(ctx, http.MethodPut, "agentes/"+url.PathEscape(id), a, &resp)
	return resp, err
}

// PatchAgente sends only the given fields.
func (c *Client) PatchAgente(ctx context.Context, id string, fields map[string]string) (Agente, error) {
	var resp Agente
	err := c.do(ctx, http.MethodPatch, "agentes/"+url.PathEscape(id), fields, &resp)
	return resp, err
}

func (c *Client) DeleteAgente(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "agentes/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListCasos(ctx context.Context, q CasoQuery) ([]Caso, error) {
	var resp []Caso
	endpoint := withQuery("casos", url.Values{"agente_id": {q.AgenteID}, "status": {q.Status}, "q": {q.Q}})
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp, err
}

func (c *Client) GetCaso(ctx context.Context, id string) (Caso, error) {
	var resp Caso
	err := c.do(ctx, http.MethodGet, "casos/"+url.PathEscape(id), nil, &resp)
	return resp, err
}

func (c *Client) CreateCaso(ctx context.Context, cs Caso) (Caso, error) {
	var resp Caso
	err := c.do(ctx, http.MethodPost, "casos", cs, &resp)
	return resp, err
}

func (c *Client) UpdateCaso(ctx context.Context, id string, cs Caso) (Caso, error) {
	cs.ID = ""
	var resp Caso
	err := c.do(ctx, http.MethodPut, "casos/"+url.PathEscape(id), cs, &resp)
	return resp, err
}

// PatchCaso sends only the given fields.
func (c *Client) PatchCaso(ctx context.Context, id string, fields map[string]string) (Caso, error) {
	var resp Caso
	err := c.do(ctx, http.MethodPatch, "casos/"+url.PathEscape(id), fields, &resp)
	return resp, err
}

func (c *Client) DeleteCaso(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "casos/"+url.PathEscape(id), nil, nil)
}

// Events returns recent events, newest first.
func (c *Client) Events(ctx context.Context, q EventQuery) ([]Event, error) {
	values := url.Values{"entity_kind": {q.EntityKind}, "entity_id": {q.EntityID}}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	var resp []Event
	err := c.do(ctx, http.MethodGet, withQuery("eventos", values), nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	target := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, target, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(b)}
		var env struct {
			Message string            `json:"message"`
			Errors  map[string]string `json:"errors"`
		}
		if json.Unmarshal(b, &env) == nil {
			apiErr.Message = env.Message
			apiErr.Errors = env.Errors
		}
		return apiErr
	}
	if out != nil && resp.StatusCode != http.StatusNoContent {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// withQuery appends the non-empty values to endpoint.
func withQuery(endpoint string, values url.Values) string {
	for k, v := range values {
		if len(v) == 0 || v[0] == "" {
			values.Del(k)
		}
	}
	if len(values) == 0 {
		return endpoint
	}
	return endpoint + "?" + values.Encode()
}

func (c *Client) base() string {
	return strings.TrimRight(c.BaseURL, "/")
}
