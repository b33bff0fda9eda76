// Package hostsim simulates a platform operation endpoint for local
// development and tests. It serves the same envelope contract the httpexec
// binding speaks.
package hostsim

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/opwire/internal/observability"
	"github.com/danmuck/opwire/opcall"
)

var (
	ErrOperationExists = errors.New("hostsim: operation already registered")
	ErrNilHandler      = errors.New("hostsim: operation handler is nil")
)

// Handler runs one registered operation against a decoded envelope.
type Handler func(ctx context.Context, req *opcall.Request) (any, error)

// Operation is one server-defined action or function.
type Operation struct {
	Name    string
	Kind    opcall.OperationKind
	Handler Handler
}

// Server hosts registered operations behind the envelope HTTP contract.
type Server struct {
	name     string
	appeared time.Time

	mu  sync.RWMutex
	ops map[string]Operation

	router *gin.Engine
}

func New(name string, corsOrigins []string) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		name:     name,
		appeared: time.Now(),
		ops:      make(map[string]Operation),
		router:   gin.New(),
	}
	s.router.Use(gin.Recovery())
	if len(corsOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = corsOrigins
		s.router.Use(cors.New(cfg))
	}
	s.registerRoutes()
	return s
}

// Register adds one operation. Names are unique per server.
func (s *Server) Register(op Operation) error {
	if op.Handler == nil {
		return ErrNilHandler
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ops[op.Name]; ok {
		return ErrOperationExists
	}
	s.ops[op.Name] = op
	return nil
}

// Router exposes the handler for in-process test servers.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Serve(addr string) error {
	log.Info().Str("host", s.name).Str("addr", addr).Msg("host endpoint listening")
	return s.router.Run(addr)
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"uptime":    time.Since(s.appeared).String(),
			"component": "opwire-host",
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":     true,
			"uptime":    time.Since(s.appeared).String(),
			"component": "opwire-host",
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/operations", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"operations": s.listOperations()})
	})

	s.router.POST("/operations/:name", s.handleExecute)
}

func (s *Server) listOperations() []gin.H {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.ops))
	for name := range s.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]gin.H, 0, len(names))
	for _, name := range names {
		out = append(out, gin.H{"name": name, "kind": s.ops[name].Kind.String()})
	}
	return out
}

func (s *Server) handleExecute(c *gin.Context) {
	start := time.Now()
	name := c.Param("name")

	respond := func(status int, body gin.H, kind string) {
		c.JSON(status, body)
		observability.RecordHostExecution(s.name, name, kind, status, time.Since(start))
	}

	var req opcall.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(http.StatusBadRequest, gin.H{"ok": false, "error": "malformed operation envelope"}, "unknown")
		return
	}

	s.mu.RLock()
	op, ok := s.ops[name]
	s.mu.RUnlock()
	if !ok {
		respond(http.StatusNotFound, gin.H{"ok": false, "error": "operation not found"}, "unknown")
		return
	}

	if req.Metadata.OperationName != name {
		respond(http.StatusBadRequest, gin.H{"ok": false, "error": "operation name mismatch"}, op.Kind.String())
		return
	}
	if opcall.OperationKind(req.Metadata.OperationType) != op.Kind {
		respond(http.StatusBadRequest, gin.H{"ok": false, "error": "operation kind mismatch"}, op.Kind.String())
		return
	}

	out, err := op.Handler(c.Request.Context(), &req)
	if err != nil {
		log.Error().
			Str("host", s.name).
			Str("operation", name).
			Err(err).
			Msg("operation handler failed")
		respond(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()}, op.Kind.String())
		return
	}

	log.Info().
		Str("host", s.name).
		Str("operation", name).
		Str("kind", op.Kind.String()).
		Msg("operation executed")
	respond(http.StatusOK, gin.H{"ok": true, "data": out}, op.Kind.String())
}
