// Package server exposes the browser keypad: it serves the keypad page,
// accepts key presses over HTTP, relays them to the dispatcher, and mirrors
// accepted presses to every connected page over WebSocket.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/calc-sim/fxpad/internal/config"
	"github.com/calc-sim/fxpad/internal/dispatch"
	"github.com/calc-sim/fxpad/internal/keys"
	"github.com/calc-sim/fxpad/internal/logging"
	"github.com/calc-sim/fxpad/internal/validation"
)

// Client represents a WebSocket client
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	server *KeypadServer
}

// KeypadServer serves the keypad UI and forwards presses to the engine.
type KeypadServer struct {
	config       *config.Config
	dispatcher   *dispatch.Dispatcher
	logger       logging.Logger
	httpServer   *http.Server
	serverMutex  sync.RWMutex // Protects httpServer
	clients      map[*websocket.Conn]*Client
	clientsMutex sync.RWMutex
	broadcast    chan []byte
	register     chan *Client
	unregister   chan *websocket.Conn
	shutdownOnce sync.Once
}

// KeyEvent is broadcast to connected keypad pages after a successful send so
// multiple open browsers stay in sync.
type KeyEvent struct {
	Type      string    `json:"type"`
	Key       string    `json:"key"`
	Code      keys.Code `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates a keypad server around an already-constructed dispatcher.
func New(cfg *config.Config, dispatcher *dispatch.Dispatcher, logger logging.Logger) (*KeypadServer, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &KeypadServer{
		config:     cfg,
		dispatcher: dispatcher,
		logger:     logger.WithComponent("server"),
		clients:    make(map[*websocket.Conn]*Client),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *websocket.Conn),
	}, nil
}

// Start runs the HTTP server until it is shut down or fails.
func (s *KeypadServer) Start(ctx context.Context) error {
	go s.runWebSocketHub(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/send_key", s.handleSendKey)
	mux.HandleFunc("/api/keys", s.handleKeys)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWebSocket)

	handler := s.addMiddleware(mux)

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.serverMutex.Lock()
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: handler,
	}
	server := s.httpServer
	s.serverMutex.Unlock()

	if s.config.Server.Open {
		go s.openBrowser(fmt.Sprintf("http://%s", addr))
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server and closes all WebSocket clients.
func (s *KeypadServer) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.logger.Info(ctx, "shutting down server")

		s.clientsMutex.Lock()
		for conn, client := range s.clients {
			close(client.send)
			conn.Close(websocket.StatusNormalClosure, "")
		}
		s.clients = make(map[*websocket.Conn]*Client)
		s.clientsMutex.Unlock()

		s.serverMutex.RLock()
		server := s.httpServer
		s.serverMutex.RUnlock()

		if server != nil {
			shutdownErr = server.Shutdown(ctx)
		}
	})

	return shutdownErr
}

func (s *KeypadServer) addMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CORS headers based on environment
		origin := r.Header.Get("Origin")
		if s.isAllowedOrigin(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else if s.config.Server.Environment == "development" {
			// Only allow wildcard in development
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		start := time.Now()
		handler.ServeHTTP(w, r)
		s.logger.Debug(r.Context(), "request",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start).String())
	})
}

// isAllowedOrigin checks if the origin is in the allowed origins list
func (s *KeypadServer) isAllowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}

	for _, allowed := range s.config.Server.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}

	return false
}

// broadcastKeyEvent fans a successful press out to all connected pages.
func (s *KeypadServer) broadcastKeyEvent(result dispatch.Result) {
	event := KeyEvent{
		Type:      "keypress",
		Key:       result.Key,
		Code:      result.Value,
		Timestamp: time.Now(),
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		s.logger.Error(context.Background(), err, "failed to marshal key event")
		return
	}

	select {
	case s.broadcast <- jsonData:
	default:
		// Hub is backed up; dropping a UI echo is harmless.
	}
}

func (s *KeypadServer) openBrowser(url string) {
	time.Sleep(100 * time.Millisecond) // Give server time to start

	// Validate URL for security before passing to system commands
	if err := validation.ValidateURL(url); err != nil {
		s.logger.Warn(context.Background(), err, "browser open refused")
		return
	}

	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("unsupported platform")
	}

	if err != nil {
		s.logger.Warn(context.Background(), err, "failed to open browser")
	}
}
