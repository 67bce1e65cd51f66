package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/handlers"
	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/bantaybaha/floodwatch/services/api/config"
	"github.com/bantaybaha/floodwatch/services/api/service"
)

const requestTimeout = 10 * time.Second

// Server bundles router and dependencies for the REST API.
type Server struct {
	cfg     config.Config
	svc     *service.Service
	log     *logrus.Logger
	engine  *gin.Engine
	limiter *RateLimiter
	decoder *schema.Decoder
}

// New constructs a server with routes and middleware.
func New(cfg config.Config, svc *service.Service, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	// client addresses come from RemoteAddr, rewritten by ProxyHeaders when enabled
	_ = engine.SetTrustedProxies(nil)
	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())
	engine.Use(requestLogger(log))
	engine.Use(corsMiddleware(cfg.Server.CORSOrigin))

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	server := &Server{cfg: cfg, svc: svc, log: log, engine: engine, decoder: decoder}
	if cfg.Ingest.RateLimitRPS > 0 {
		server.limiter = NewRateLimiter(cfg.Ingest.RateLimitRPS, cfg.Ingest.RateLimitBurst)
	}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Handler returns the engine wrapped with response compression and, when
// configured, proxy header handling.
func (s *Server) Handler() http.Handler {
	var h http.Handler = handlers.CompressHandler(s.engine)
	if s.cfg.Server.BehindProxy {
		h = handlers.ProxyHeaders(h)
	}
	return h
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.ListenAddr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	if s.limiter != nil {
		s.limiter.StartCleanup(ctx, time.Hour)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeout := s.cfg.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		s.log.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
