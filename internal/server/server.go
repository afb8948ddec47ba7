package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/PigFarmBot_Go/internal/command"
	"github.com/osse101/PigFarmBot_Go/internal/handler"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
	"github.com/osse101/PigFarmBot_Go/internal/metrics"
)

// Config holds the HTTP settings.
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Version        string
	AdminIDs       []string
}

// Deps are the collaborators routes are bound to.
type Deps struct {
	Services   command.Services
	Dispatcher handler.CommandDispatcher
	Health     handler.HealthChecker
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(cfg Config, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the full route tree. Exposed so tests can drive it
// without a listener.
func NewRouter(cfg Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Health))
	r.Get("/version", handler.HandleVersion(cfg.Version))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	svc := deps.Services
	players := handler.NewPlayerHandler(svc.Players)
	farms := handler.NewFarmHandler(svc.Farm, svc.Piglets)
	mills := handler.NewMillHandler(svc.Mills)
	plants := handler.NewPlantHandler(svc.Plants)
	wallets := handler.NewWalletHandler(svc.Wallets)
	commands := handler.NewCommandHandler(deps.Dispatcher)

	r.Route(APIBasePath, func(r chi.Router) {
		playerPath := "/{" + handler.PathParamPlayerID + "}"

		r.Post("/command", commands.Execute)

		r.Route("/players", func(r chi.Router) {
			r.Post("/start", players.Start)
			r.Get(playerPath+"/referral", players.Referral)
			r.Get(playerPath+"/tasks", players.Tasks)
		})
		r.Post("/tasks/claim", players.ClaimTask)

		r.Route("/farm", func(r chi.Router) {
			r.Post("/buy", farms.Buy)
			r.Post("/feed", farms.Feed)
			r.Post("/breed", farms.Breed)
			r.Post("/checkbreed", farms.CheckBreed)
			r.Get(playerPath, farms.Status)
		})
		r.Route("/piglets", func(r chi.Router) {
			r.Post("/sell", farms.SellPiglet)
			r.Post("/market", farms.Market)
			r.Post("/market/buy", farms.BuyMarket)
		})

		r.Route("/mill", func(r chi.Router) {
			r.Post("/start", mills.Start)
			r.Post("/produce", mills.Produce)
			r.Post("/upgrade", mills.Upgrade)
			r.Post("/rush", mills.Rush)
			r.Get(playerPath, mills.Status)
		})
		r.Route("/feed", func(r chi.Router) {
			r.Post("/sell", mills.SellFeed)
			r.Get("/market", mills.FeedMarket)
			r.Post("/buy", mills.BuyFeed)
			r.Post("/transfer", mills.Transfer)
		})
		r.Route("/brands", func(r chi.Router) {
			r.Get("/top", mills.TopBrands)
			r.Post("/", mills.SetBrand)
			r.Get(playerPath, mills.BrandStats)
		})

		r.Route("/plant", func(r chi.Router) {
			r.Post("/start", plants.Start)
			r.Post("/process", plants.Process)
			r.Post("/upgrade", plants.Upgrade)
			r.Get(playerPath, plants.Status)
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Post("/address", wallets.SetWallet)
			r.Post("/exchange", wallets.Exchange)
			r.Post("/claim", wallets.Claim)
			r.Get(playerPath, wallets.Status)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminMiddleware(cfg.AdminIDs))
			r.Post("/tonlog", wallets.TonLog)
			r.Post("/debit", wallets.Debit)
			r.Post("/cashout", wallets.Cashout)
		})
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// requestID reuses a caller supplied id when it is sane so a chat adapter
// and this service log under the same id.
func requestID(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(HeaderRequestID))
	if id == "" || len(id) > MaxRequestIDLength || strings.ContainsAny(id, " \t\r\n") {
		return logger.GenerateRequestID()
	}
	return id
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		id := requestID(r)
		ctx := logger.WithRequestID(r.Context(), id)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, id)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start serves until Stop is called. A clean shutdown returns nil.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
