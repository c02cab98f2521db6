package http

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"activity-signup/internal/model"
	"activity-signup/internal/service"
)

// ActivityService описывает операции, которые HTTP-слой вызывает у бизнес-слоя.
type ActivityService interface {
	ListActivities(ctx context.Context) (model.Directory, error)
	Signup(ctx context.Context, name, email string) (string, error)
	Unregister(ctx context.Context, name, email string) (string, error)
}

// Metrics принимает исходы операций с записями и отдаёт /metrics.
type Metrics interface {
	ObserveRegistration(operation, outcome string)
	Handler() http.Handler
}

type Handler struct {
	Activities ActivityService
	Metrics    Metrics
	Static     fs.FS
	Log        *slog.Logger
}

func NewHandler(activities ActivityService, metrics Metrics, static fs.FS, log *slog.Logger) *Handler {
	return &Handler{
		Activities: activities,
		Metrics:    metrics,
		Static:     static,
		Log:        log,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", h.handleRoot)
	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", h.Metrics.Handler())
	r.Get("/static/index.html", h.handleIndex)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(h.Static))))

	r.Route("/activities", func(r chi.Router) {
		r.Get("/", h.handleActivitiesList)
		r.Post("/{activityName}/signup", h.handleSignup)
		r.Delete("/{activityName}/participants/{email}", h.handleUnregister)
	})

	return r
}

func (h *Handler) writeError(w http.ResponseWriter, handlerName string, err error) {
	var appErr *service.AppError
	if !errors.As(err, &appErr) {
		appErr = service.ErrInternal("internal error", err)
	}

	h.Log.Error("handler error",
		slog.String("handler", handlerName),
		slog.String("code", appErr.Code),
		slog.String("message", appErr.Message),
		slog.Any("err", appErr.Err),
	)

	writeJSON(w, appErr.Status, errorResponse{Detail: appErr.Message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// pathParam достаёт сегмент пути. chi матчит по RawPath, если он задан,
// и тогда значение остаётся percent-encoded.
func pathParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
}

// handleIndex отдаёт страницу напрямую: http.FileServer перенаправляет */index.html на каталог.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.Static, "index.html")
	if err != nil {
		h.writeError(w, "static_index", service.ErrNotFound("page not found"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
