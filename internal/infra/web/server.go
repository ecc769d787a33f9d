package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/infra/logging"
	"github.com/Abdelmagid1892/translation-office-app/internal/infra/metrics"
	"github.com/Abdelmagid1892/translation-office-app/internal/usecase"
)

const (
	loginAttemptsPerMinute = 10
	uploadsPerHour         = 30
)

// Limiter throttles abusable endpoints (login, uploads). A nil Limiter
// disables throttling, which is fine for tests and single-user setups.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type Server struct {
	userUC     usecase.UserUseCase
	intakeUC   usecase.IntakeUseCase
	jobUC      usecase.JobUseCase
	quoteUC    usecase.QuoteUseCase
	invoiceUC  usecase.InvoiceUseCase
	chatUC     usecase.ChatUseCase
	qaUC       usecase.QAUseCase
	rateUC     usecase.RateUseCase
	glossaryUC usecase.GlossaryUseCase
	statsUC    usecase.StatsUseCase

	auth      *AuthManager
	hub       *Hub
	limiter   Limiter
	maxUpload int64
	log       *zerolog.Logger
}

type ServerDeps struct {
	UserUC     usecase.UserUseCase
	IntakeUC   usecase.IntakeUseCase
	JobUC      usecase.JobUseCase
	QuoteUC    usecase.QuoteUseCase
	InvoiceUC  usecase.InvoiceUseCase
	ChatUC     usecase.ChatUseCase
	QAUC       usecase.QAUseCase
	RateUC     usecase.RateUseCase
	GlossaryUC usecase.GlossaryUseCase
	StatsUC    usecase.StatsUseCase

	Auth      *AuthManager
	Hub       *Hub
	Limiter   Limiter
	MaxUpload int64
	Logger    *zerolog.Logger
}

func NewServer(deps ServerDeps) *Server {
	compLog := deps.Logger.With().Str("component", "WebServer").Logger()
	maxUpload := deps.MaxUpload
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	return &Server{
		userUC:     deps.UserUC,
		intakeUC:   deps.IntakeUC,
		jobUC:      deps.JobUC,
		quoteUC:    deps.QuoteUC,
		invoiceUC:  deps.InvoiceUC,
		chatUC:     deps.ChatUC,
		qaUC:       deps.QAUC,
		rateUC:     deps.RateUC,
		glossaryUC: deps.GlossaryUC,
		statsUC:    deps.StatsUC,
		auth:       deps.Auth,
		hub:        deps.Hub,
		limiter:    deps.Limiter,
		maxUpload:  maxUpload,
		log:        &compLog,
	}
}

// Router assembles the public API. Everything under /api/v1 except the auth
// endpoints requires a session.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.registerHandler)
		r.Post("/auth/login", s.loginHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Post("/auth/logout", s.logoutHandler)

			r.Post("/requests", requireRole(model.RoleClient, s.submitRequestHandler))

			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", s.listJobsHandler)
				r.Get("/{id}", s.getJobHandler)
				r.Post("/{id}/assign", requireRole(model.RoleManager, s.assignJobHandler))
				r.Post("/{id}/start", requireRole(model.RoleTranslator, s.startJobHandler))
				r.Post("/{id}/deliver", requireRole(model.RoleTranslator, s.deliverJobHandler))
				r.Post("/{id}/accept", requireRole(model.RoleManager, s.acceptJobHandler))
				r.Post("/{id}/return", requireRole(model.RoleManager, s.returnJobHandler))

				r.Get("/{id}/quote", s.activeQuoteHandler)
				r.Get("/{id}/quotes", s.quoteHistoryHandler)
				r.Post("/{id}/requote", requireRole(model.RoleManager, s.regenerateQuoteHandler))

				r.Post("/{id}/invoice", requireRole(model.RoleManager, s.issueInvoiceHandler))
				r.Get("/{id}/invoice", s.getInvoiceHandler)
				r.Post("/{id}/invoice/render", requireRole(model.RoleManager, s.renderInvoiceHandler))

				r.Get("/{id}/messages", s.listMessagesHandler)
				r.Post("/{id}/messages", s.postMessageHandler)

				r.Get("/{id}/qa", s.qaReviewHandler)
			})

			r.Post("/quotes/{id}/approve", s.approveQuoteHandler)
			r.Post("/quotes/{id}/reject", s.rejectQuoteHandler)

			r.Route("/rates", func(r chi.Router) {
				r.Get("/", s.listRatesHandler)
				r.Post("/", requireRole(model.RoleManager, s.createRateHandler))
				r.Delete("/{id}", requireRole(model.RoleManager, s.deleteRateHandler))
			})

			r.Route("/glossary", func(r chi.Router) {
				r.Get("/", s.listGlossaryHandler)
				r.Post("/", s.addGlossaryTermHandler)
				r.Delete("/{id}", s.deleteGlossaryTermHandler)
			})

			r.Get("/translators", requireRole(model.RoleManager, s.listTranslatorsHandler))
			r.Get("/stats", requireRole(model.RoleManager, s.statsHandler))

			r.Get("/ws/jobs/{id}", s.wsHandler)
		})
	})

	return r
}

// requestLogger tags each request with an id, logs the outcome and feeds the
// latency histogram. The route pattern, not the raw path, is the metric
// label so job ids do not explode the cardinality.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logging.WithRequestID(r.Context(), uuid.NewString())
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		elapsed := time.Since(start)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(route, r.Method, ww.Status(), int(elapsed.Milliseconds()))

		reqLog := logging.With(ctx, s.log)
		evt := reqLog.Info()
		if ww.Status() >= http.StatusInternalServerError {
			evt = reqLog.Error()
		}
		evt.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", elapsed).
			Msg("http request")
	})
}
