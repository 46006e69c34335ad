package websocket

import (
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/dukerupert/opsdash/internal/middleware"
)

// HandleWebSocket upgrades the request and runs it as a hub client until
// the connection closes. An empty originPatterns list accepts only
// same-origin connections.
func HandleWebSocket(hub *Hub, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			hub.logger.Warn("accept", "remote", middleware.RealIP(r), "error", err)
			return
		}

		NewClient(hub, conn, middleware.RealIP(r)).Run(r.Context())
	}
}
