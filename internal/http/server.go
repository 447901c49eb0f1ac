// Package http serves the JSON API: entity CRUD, login, reports,
// dashboard and insights.
package http

import (
	"container/list"
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/obrienteixeira/tokyo-manicure/internal/insights"
	"github.com/obrienteixeira/tokyo-manicure/internal/log"
	"github.com/obrienteixeira/tokyo-manicure/internal/records"
	"github.com/obrienteixeira/tokyo-manicure/internal/services"
)

// lruCache is a small LRU with TTL used for report responses.
type lruCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type cacheItem[T any] struct {
	key       string
	data      T
	expiresAt time.Time
}

func newLRUCache[T any](maxSize int, ttl time.Duration) *lruCache[T] {
	return &lruCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func (c *lruCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, exists := c.items[key]
	if !exists {
		return zero, false
	}

	item := elem.Value.(*cacheItem[T])
	if time.Now().After(item.expiresAt) {
		c.removeElement(elem)
		return zero, false
	}

	c.lru.MoveToFront(elem)
	return item.data, true
}

func (c *lruCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cacheItem[T]{
		key:       key,
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(item)
	c.items[key] = elem

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *lruCache[T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.lru.Init()
}

func (c *lruCache[T]) removeElement(elem *list.Element) {
	item := elem.Value.(*cacheItem[T])
	delete(c.items, item.key)
	c.lru.Remove(elem)
}

// CleanExpired removes all expired entries
func (c *lruCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var toRemove []*list.Element

	for elem := c.lru.Front(); elem != nil; elem = elem.Next() {
		item := elem.Value.(*cacheItem[T])
		if now.After(item.expiresAt) {
			toRemove = append(toRemove, elem)
		}
	}

	for _, elem := range toRemove {
		c.removeElement(elem)
	}

	return len(toRemove)
}

type Server struct {
	http.Server
	store    records.Store
	reports  *services.ReportService
	insights *insights.Service

	reportCache *lruCache[ReportResponse]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, store records.Store, reports *services.ReportService, insightsSvc *insights.Service) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:            store,
		reports:          reports,
		insights:         insightsSvc,
		reportCache:      newLRUCache[ReportResponse](100, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/login", s.withRequestContext(s.handleLogin))

	mux.HandleFunc("GET /api/clients", s.withRequestContext(s.handleListClients))
	mux.HandleFunc("POST /api/clients", s.withRequestContext(s.handleCreateClient))
	mux.HandleFunc("GET /api/clients/{id}", s.withRequestContext(s.handleGetClient))
	mux.HandleFunc("PUT /api/clients/{id}", s.withRequestContext(s.handleUpdateClient))
	mux.HandleFunc("DELETE /api/clients/{id}", s.withRequestContext(s.handleDeleteClient))

	mux.HandleFunc("GET /api/employees", s.withRequestContext(s.handleListEmployees))
	mux.HandleFunc("POST /api/employees", s.withRequestContext(s.handleCreateEmployee))
	mux.HandleFunc("GET /api/employees/{id}", s.withRequestContext(s.handleGetEmployee))
	mux.HandleFunc("PUT /api/employees/{id}", s.withRequestContext(s.handleUpdateEmployee))
	mux.HandleFunc("DELETE /api/employees/{id}", s.withRequestContext(s.handleDeleteEmployee))

	mux.HandleFunc("GET /api/services", s.withRequestContext(s.handleListServices))
	mux.HandleFunc("POST /api/services", s.withRequestContext(s.handleCreateService))
	mux.HandleFunc("GET /api/services/{id}", s.withRequestContext(s.handleGetService))
	mux.HandleFunc("PUT /api/services/{id}", s.withRequestContext(s.handleUpdateService))
	mux.HandleFunc("DELETE /api/services/{id}", s.withRequestContext(s.handleDeleteService))

	mux.HandleFunc("GET /api/products", s.withRequestContext(s.handleListProducts))
	mux.HandleFunc("POST /api/products", s.withRequestContext(s.handleCreateProduct))
	mux.HandleFunc("GET /api/products/{id}", s.withRequestContext(s.handleGetProduct))
	mux.HandleFunc("PUT /api/products/{id}", s.withRequestContext(s.handleUpdateProduct))
	mux.HandleFunc("DELETE /api/products/{id}", s.withRequestContext(s.handleDeleteProduct))

	mux.HandleFunc("GET /api/appointments", s.withRequestContext(s.handleListAppointments))
	mux.HandleFunc("POST /api/appointments", s.withRequestContext(s.handleCreateAppointment))
	mux.HandleFunc("GET /api/appointments/{id}", s.withRequestContext(s.handleGetAppointment))
	mux.HandleFunc("PUT /api/appointments/{id}", s.withRequestContext(s.handleUpdateAppointment))
	mux.HandleFunc("DELETE /api/appointments/{id}", s.withRequestContext(s.handleDeleteAppointment))

	mux.HandleFunc("GET /api/transactions", s.withRequestContext(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withRequestContext(s.handleCreateTransaction))
	mux.HandleFunc("GET /api/transactions/{id}", s.withRequestContext(s.handleGetTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.withRequestContext(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withRequestContext(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/packages", s.withRequestContext(s.handleListPackages))
	mux.HandleFunc("POST /api/packages", s.withRequestContext(s.handleCreatePackage))
	mux.HandleFunc("GET /api/packages/{id}", s.withRequestContext(s.handleGetPackage))
	mux.HandleFunc("PUT /api/packages/{id}", s.withRequestContext(s.handleUpdatePackage))
	mux.HandleFunc("DELETE /api/packages/{id}", s.withRequestContext(s.handleDeletePackage))

	mux.HandleFunc("GET /api/users", s.withRequestContext(s.handleListUsers))
	mux.HandleFunc("POST /api/users", s.withRequestContext(s.handleCreateUser))
	mux.HandleFunc("GET /api/users/{id}", s.withRequestContext(s.handleGetUser))
	mux.HandleFunc("PUT /api/users/{id}", s.withRequestContext(s.handleUpdateUser))
	mux.HandleFunc("DELETE /api/users/{id}", s.withRequestContext(s.handleDeleteUser))

	mux.HandleFunc("GET /api/reports", s.withRequestContext(s.handleReport))
	mux.HandleFunc("GET /api/dashboard", s.withRequestContext(s.handleDashboard))
	mux.HandleFunc("POST /api/insights", s.withRequestContext(s.handleInsights))

	return s
}

// startCacheCleanup evicts expired report cache entries periodically.
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.reportCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withRequestContext adds security headers, a request id and request
// logging around a handler.
func (s *Server) withRequestContext(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		reqLogger := log.FromContext(ctx).WithComponent(log.ComponentHTTP).With(log.FieldRequestID, requestID)
		ctx = log.NewContext(ctx, reqLogger)
		r = r.WithContext(ctx)

		w.Header().Set("X-Request-ID", requestID)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		reqLogger.InfoContext(ctx, "Request completed",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, duration.Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
