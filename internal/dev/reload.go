package dev

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ReloadPath is where browsers connect for reload notifications.
const ReloadPath = "/_frameloop/reload"

// writeWait bounds a single notification write.
const writeWait = 5 * time.Second

// ReloadMessageType represents the type of reload message.
type ReloadMessageType string

const (
	ReloadTypeFull  ReloadMessageType = "reload"
	ReloadTypeCSS   ReloadMessageType = "css"
	ReloadTypeError ReloadMessageType = "error"
	ReloadTypeClear ReloadMessageType = "clear"
)

// ReloadMessage is sent to browsers via WebSocket.
type ReloadMessage struct {
	Type  ReloadMessageType `json:"type"`
	Error string            `json:"error,omitempty"`
	File  string            `json:"file,omitempty"`
}

// reloadClient serializes writes to one connection.
type reloadClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *reloadClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// ReloadServer tells connected browsers to reload after a rebuild. The
// last error sent is replayed to browsers that connect while it is shown.
type ReloadServer struct {
	clients  map[*reloadClient]struct{}
	lastErr  string
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewReloadServer creates a new reload server.
func NewReloadServer(logger *slog.Logger) *ReloadServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReloadServer{
		clients: make(map[*reloadClient]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in dev
			},
		},
		logger: logger,
	}
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (r *ReloadServer) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Debug("reload: upgrade failed", "error", err)
		return
	}
	client := &reloadClient{conn: conn}

	r.mu.Lock()
	r.clients[client] = struct{}{}
	lastErr := r.lastErr
	r.mu.Unlock()

	if lastErr != "" {
		if data, err := json.Marshal(ReloadMessage{Type: ReloadTypeError, Error: lastErr}); err == nil {
			client.write(data)
		}
	}

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	r.remove(client)
}

func (r *ReloadServer) remove(client *reloadClient) {
	r.mu.Lock()
	_, ok := r.clients[client]
	delete(r.clients, client)
	r.mu.Unlock()
	if ok {
		client.conn.Close()
	}
}

// NotifyReload sends a full page reload message to all clients.
func (r *ReloadServer) NotifyReload() int {
	return r.broadcast(ReloadMessage{Type: ReloadTypeFull})
}

// NotifyCSS asks clients to refetch their stylesheets.
func (r *ReloadServer) NotifyCSS(file string) int {
	return r.broadcast(ReloadMessage{Type: ReloadTypeCSS, File: file})
}

// NotifyError shows a build error on all clients.
func (r *ReloadServer) NotifyError(errMsg string) int {
	r.mu.Lock()
	r.lastErr = errMsg
	r.mu.Unlock()
	return r.broadcast(ReloadMessage{Type: ReloadTypeError, Error: errMsg})
}

// ClearError clears the error overlay on all clients.
func (r *ReloadServer) ClearError() int {
	r.mu.Lock()
	r.lastErr = ""
	r.mu.Unlock()
	return r.broadcast(ReloadMessage{Type: ReloadTypeClear})
}

// broadcast sends a message to all connected clients and returns how many
// received it.
func (r *ReloadServer) broadcast(msg ReloadMessage) int {
	data, err := json.Marshal(msg)
	if err != nil {
		return 0
	}

	r.mu.RLock()
	clients := make([]*reloadClient, 0, len(r.clients))
	for client := range r.clients {
		clients = append(clients, client)
	}
	r.mu.RUnlock()

	sent := 0
	for _, client := range clients {
		if err := client.write(data); err != nil {
			r.remove(client)
			continue
		}
		sent++
	}
	return sent
}

// ClientCount returns the number of connected clients.
func (r *ReloadServer) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Close closes all client connections.
func (r *ReloadServer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for client := range r.clients {
		client.conn.Close()
		delete(r.clients, client)
	}
}

// ReloadScript connects the page to ReloadPath. It is added to the index
// page in development.
const ReloadScript = `
(function() {
    'use strict';

    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var overlayID = 'frameloop-error-overlay';

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '` + ReloadPath + `');

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            switch (msg.type) {
            case 'reload':
                location.reload();
                break;
            case 'css':
                reloadCSS();
                break;
            case 'error':
                showError(msg.error);
                break;
            case 'clear':
                clearError();
                break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };
    }

    function reloadCSS() {
        document.querySelectorAll('link[rel="stylesheet"]').forEach(function(link) {
            var url = new URL(link.href);
            url.searchParams.set('_reload', Date.now());
            link.href = url.toString();
        });
    }

    function showError(error) {
        clearError();
        var overlay = document.createElement('pre');
        overlay.id = overlayID;
        overlay.style.cssText = 'position:fixed;inset:0;margin:0;padding:20px;background:rgba(0,0,0,0.9);color:#ff5555;font:14px monospace;white-space:pre-wrap;overflow:auto;z-index:999999;';
        overlay.textContent = 'Build error\n\n' + error;
        document.body.appendChild(overlay);
    }

    function clearError() {
        var overlay = document.getElementById(overlayID);
        if (overlay) {
            overlay.remove();
        }
    }

    connect();
})();
`
