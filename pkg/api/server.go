package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/rowsd/rowsd/pkg/httputil"
	"github.com/rowsd/rowsd/pkg/middleware"
)

// maxBodyBytes caps request bodies; row payloads are small.
const maxBodyBytes = 1 << 20

// Server represents our API server
type Server struct {
	store   RowStore
	router  *mux.Router
	auth    *middleware.TokenAuth
	logger  *logrus.Logger
	handler http.Handler
}

// NewServer creates a new API server. The auth middleware is injected
// rather than built from ambient configuration so tests can run with
// arbitrary tokens.
func NewServer(store RowStore, auth *middleware.TokenAuth, logger *logrus.Logger) (*Server, error) {
	s := &Server{
		store:  store,
		router: mux.NewRouter(),
		auth:   auth,
		logger: logger,
	}

	if err := s.registerRoutes(s.rowRoutes()); err != nil {
		return nil, err
	}

	// Unmatched path and unmatched verb both produce the same uniform
	// 404; the global middleware below still decorates these responses.
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteNotFoundError(w, "Not found")
	})
	s.router.NotFoundHandler = notFound
	s.router.MethodNotAllowedHandler = notFound

	// Global middleware wraps the router itself so CORS headers and
	// panic recovery also cover 404s and preflight requests.
	s.handler = httputil.Chain(
		httputil.RecoveryMiddleware(logger),
		httputil.CORSMiddleware,
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(logger),
		httputil.MaxBytesMiddleware(maxBodyBytes),
	)(s.router)

	return s, nil
}

// Use installs extra global middleware (e.g. metrics) in front of the
// current handler chain.
func (s *Server) Use(mw func(http.Handler) http.Handler) {
	s.handler = mw(s.handler)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
