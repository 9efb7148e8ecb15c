package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"departamento/internal/engine"
	"departamento/internal/repo"
	"departamento/internal/validation"
)

const (
	msgInvalidParams = "Parâmetros inválidos"
	msgInternal      = "Erro interno do servidor"
	msgInvalidID     = "O campo 'id' deve ser um UUID válido"
	msgBodyTooLarge  = "Corpo da requisição muito grande"

	// maxBodyBytes matches huma's default request body limit.
	maxBodyBytes = 1 << 20
)

// Config for the HTTP API handler.
type Config struct {
	Engine   engine.Engine
	BasePath string
	Logger   *zap.Logger
	// Registry receives the request metrics. A private registry is used when nil.
	Registry *prometheus.Registry
}

// apiError is the error envelope returned by every operation.
type apiError struct {
	Status  int               `json:"status" example:"400"`
	Message string            `json:"message" example:"Parâmetros inválidos"`
	Errors  map[string]string `json:"errors,omitempty" example:"{\"status\":\"O campo 'status' pode ser somente 'aberto' ou 'solucionado'\"}"`
}

func (e *apiError) GetStatus() int { return e.Status }
func (e *apiError) Error() string  { return e.Message }

func newAPIError(status int, message string, fields map[string]string) huma.StatusError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &apiError{Status: status, Message: message, Errors: fields}
}

func invalidID() huma.StatusError {
	return newAPIError(http.StatusBadRequest, msgInvalidParams, map[string]string{"id": msgInvalidID})
}

type handlers struct {
	e   engine.Engine
	log *zap.Logger
}

// New returns an HTTP handler exposing the agentes and casos API.
func New(cfg Config) (http.Handler, error) {
	basePath := strings.TrimRight(cfg.BasePath, "/")
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m, err := newMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	huma.DefaultArrayNullable = false
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		status, msg = clientError(status, msg)
		return newAPIError(status, msg, detailFields(errs))
	}
	huma.NewErrorWithContext = func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		status, msg = clientError(status, msg)
		return newAPIError(status, msg, detailFields(errs))
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(logger, m))
	router.Use(recoverer(logger))
	router.Use(captureBody)

	hcfg := huma.DefaultConfig("API Departamento de Polícia", "1.0.0")
	hcfg.Info.Description = "Gerenciamento de agentes e casos policiais"
	hcfg.OpenAPIPath = ""
	hcfg.DocsPath = ""
	hcfg.CreateHooks = nil
	api := humachi.New(router, hcfg)
	var group huma.API = api
	if basePath != "" {
		group = huma.NewGroup(api, basePath)
	}

	h := handlers{e: cfg.Engine, log: logger}
	registerDocs(router, basePath)
	registerHealth(group)
	h.registerAgentes(group)
	h.registerCasos(group)
	h.registerEventos(group)
	registerOpenAPI(router, api, basePath)
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return router, nil
}

// clientError folds schema validation (422) and malformed input (400) into the
// single "Parâmetros inválidos" 400 envelope.
func clientError(status int, msg string) (int, string) {
	switch status {
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		return http.StatusBadRequest, msgInvalidParams
	}
	return status, msg
}

// detailFields flattens huma validation details into a field -> message map.
func detailFields(errs []error) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	out := map[string]string{}
	for _, err := range errs {
		var d huma.ErrorDetailer
		if !errors.As(err, &d) {
			out["body"] = err.Error()
			continue
		}
		det := d.ErrorDetail()
		field := det.Location
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		if field == "" {
			field = "body"
		}
		if _, ok := out[field]; !ok {
			out[field] = det.Message
		}
	}
	return out
}

func (h handlers) handleError(err error, notFound string) huma.StatusError {
	if err == nil {
		return nil
	}
	var ve repo.ValidationError
	if errors.As(err, &ve) {
		return newAPIError(http.StatusBadRequest, msgInvalidParams, ve.Fields)
	}
	var rie repo.ReferentialIntegrityError
	if errors.As(err, &rie) {
		return newAPIError(http.StatusNotFound, validation.MsgAgenteNotFound, map[string]string{"agente_id": validation.MsgAgenteNotFound})
	}
	if errors.Is(err, repo.ErrNotFound) {
		return newAPIError(http.StatusNotFound, notFound, nil)
	}
	if errors.Is(err, engine.ErrAuditDisabled) {
		return newAPIError(http.StatusNotFound, "Log de eventos desabilitado", nil)
	}
	h.log.Error("unhandled error", zap.Error(err))
	return newAPIError(http.StatusInternalServerError, msgInternal, nil)
}

func registerDocs(r chi.Router, basePath string) {
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, swaggerHTML(basePath))
	})
}

func registerOpenAPI(r chi.Router, api huma.API, basePath string) {
	// Operations are all registered before the first request, so the document
	// is rendered once.
	render := sync.OnceValues(func() ([]byte, error) {
		oas := api.OpenAPI()
		ensureDefaultErrorResponses(oas)
		return json.Marshal(oas)
	})
	r.Get(openAPIPath(basePath), func(w http.ResponseWriter, r *http.Request) {
		doc, err := render()
		if err != nil {
			http.Error(w, msgInternal, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(doc)
	})
}

func openAPIPath(basePath string) string {
	return path.Join("/", basePath, "openapi.json")
}

func ensureDefaultErrorResponses(oas *huma.OpenAPI) {
	if oas == nil || oas.Paths == nil {
		return
	}
	for _, item := range oas.Paths {
		for _, op := range []*huma.Operation{item.Get, item.Put, item.Post, item.Delete, item.Patch} {
			if op == nil {
				continue
			}
			if op.Responses == nil {
				op.Responses = map[string]*huma.Response{}
			}
			if _, ok := op.Responses["default"]; ok {
				continue
			}
			op.Responses["default"] = &huma.Response{
				Description: "Erro",
				Content: map[string]*huma.MediaType{
					"application/json": {Schema: &huma.Schema{Ref: "#/components/schemas/ApiError"}},
				},
			}
		}
	}
}

func swaggerHTML(basePath string) string {
	return fmt.Sprintf(`<!doctype html>
<html lang="pt-BR">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>API Departamento de Polícia</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" crossorigin></script>
    <script>
      window.onload = () => {
        SwaggerUIBundle({
          url: '%s',
          dom_id: '#swagger-ui'
        });
      };
    </script>
  </body>
</html>`, openAPIPath(basePath))
}

type healthOutput struct {
	Body map[string]string
}

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(_ context.Context, _ *struct{}) (*healthOutput, error) {
		return &healthOutput{Body: map[string]string{"status": "ok"}}, nil
	})
}
