// =============================================================================
// Graduate Roster - HTTP Server
// =============================================================================
//
// This module serves the roster over HTTP.
//
// ENDPOINTS:
//   GET  /api/graduates?limit=N   First N normalized records, feed order
//   GET  /graduates               Grouped, localized roster view
//   POST /locale                  Persist the visitor's locale in a cookie
//   GET  /metrics                 Prometheus exposition
//
// LOCALE:
//   Per request, from the "locale" cookie, then Accept-Language, using the
//   same detection rules as the CLI.
//
// ERRORS:
//   configuration -> 500, transport and schema -> 502. The response body
//   carries a localized message; the cause goes to the log only.
//
// =============================================================================

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ginjaninja78/graduate-roster/internal/feed"
	"github.com/ginjaninja78/graduate-roster/internal/i18n"
	"github.com/ginjaninja78/graduate-roster/internal/pipeline"
	"github.com/ginjaninja78/graduate-roster/internal/roster"
)

// LocaleCookie is the cookie holding the visitor's chosen locale.
const LocaleCookie = "locale"

// localeCookieMaxAge keeps the choice for a year.
const localeCookieMaxAge = 365 * 24 * 60 * 60

// Runner runs the roster pipeline. *pipeline.Pipeline implements it.
type Runner interface {
	Run(ctx context.Context, titles roster.TitleFormatter) (*pipeline.Result, error)
}

// Options configures a Handler.
type Options struct {
	// APILimit is the default record count of /api/graduates. Default: 10
	APILimit int

	// Detector picks the request locale.
	Detector i18n.Detector

	// Logger receives request and failure logs. Default: no-op.
	Logger *zap.Logger

	// Gatherer backs /metrics. The endpoint is not mounted when nil.
	Gatherer prometheus.Gatherer
}

// Handler serves the roster endpoints.
type Handler struct {
	runner   Runner
	catalog  *i18n.Catalog
	detector i18n.Detector
	apiLimit int
	logger   *zap.Logger
	gatherer prometheus.Gatherer
}

// New constructs a Handler.
func New(runner Runner, catalog *i18n.Catalog, opts Options) *Handler {
	if opts.APILimit <= 0 {
		opts.APILimit = 10
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Detector == (i18n.Detector{}) {
		opts.Detector = i18n.DefaultDetector()
	}
	return &Handler{
		runner:   runner,
		catalog:  catalog,
		detector: opts.Detector,
		apiLimit: opts.APILimit,
		logger:   opts.Logger,
		gatherer: opts.Gatherer,
	}
}

// Routes builds the router with middleware and all endpoints mounted.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)
	h.Register(r)
	return r
}

// Register mounts the endpoints on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/graduates", h.HandleGraduatesAPI)
	r.Get("/graduates", h.HandleGraduatesView)
	r.Post("/locale", h.HandleSetLocale)
	if h.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
}

// =============================================================================
// HANDLERS
// =============================================================================

// HandleGraduatesAPI handles GET /api/graduates.
func (h *Handler) HandleGraduatesAPI(w http.ResponseWriter, r *http.Request) {
	loc := h.localizer(r)

	limit := h.apiLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	res, err := h.runner.Run(r.Context(), nil)
	if err != nil {
		h.writeRunError(w, r, loc, err)
		return
	}

	graduates := res.Graduates
	if len(graduates) > limit {
		graduates = graduates[:limit]
	}

	body := make([]apiGraduate, 0, len(graduates))
	for _, g := range graduates {
		body = append(body, apiGraduate{
			FullNameKa:           g.FullNameSource,
			FullNameLatin:        g.FullNameTransliterated,
			Img:                  g.ImageRaw,
			CertificationDateRaw: g.CertificationDateRaw,
		})
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, body)
}

// apiGraduate is a record as the feed states it: the image column is not
// rewritten and the date is not parsed.
type apiGraduate struct {
	FullNameKa           string `json:"fullNameKa"`
	FullNameLatin        string `json:"fullNameLatin"`
	Img                  string `json:"img"`
	CertificationDateRaw string `json:"certificationDateRaw"`
}

// HandleGraduatesView handles GET /graduates.
func (h *Handler) HandleGraduatesView(w http.ResponseWriter, r *http.Request) {
	loc := h.localizer(r)

	res, err := h.runner.Run(r.Context(), loc)
	if err != nil {
		h.writeRunError(w, r, loc, err)
		return
	}

	writeJSON(w, http.StatusOK, newRosterView(loc, res.Groups))
}

// HandleSetLocale handles POST /locale. The locale comes from the form body
// or the query string.
func (h *Handler) HandleSetLocale(w http.ResponseWriter, r *http.Request) {
	l, ok := i18n.ParseLocale(r.FormValue("locale"))
	if !ok {
		loc := h.localizer(r)
		writeJSON(w, http.StatusBadRequest, errorBody{Error: loc.T("errors.unknownLocale")})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     LocaleCookie,
		Value:    l.String(),
		Path:     "/",
		MaxAge:   localeCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

// requestLocale applies locale detection to the request.
func (h *Handler) requestLocale(r *http.Request) i18n.Locale {
	var persisted string
	if c, err := r.Cookie(LocaleCookie); err == nil {
		persisted = c.Value
	}
	return h.detector.DetectAcceptLanguage(persisted, r.Header.Get("Accept-Language"))
}

func (h *Handler) localizer(r *http.Request) i18n.Localizer {
	return h.catalog.Localizer(h.requestLocale(r))
}

type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps a pipeline error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, feed.ErrConfiguration):
		return http.StatusInternalServerError
	case errors.Is(err, feed.ErrTransport), errors.Is(err, roster.ErrSchema):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeRunError(w http.ResponseWriter, r *http.Request, loc i18n.Localizer, err error) {
	status := statusFor(err)
	h.logger.Error("Roster unavailable",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	)
	writeJSON(w, status, errorBody{Error: loc.T("errors.feedUnavailable")})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// logRequests logs one line per request.
func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("Request served",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
