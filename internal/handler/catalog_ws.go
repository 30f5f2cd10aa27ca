package handler

import (
	"net/http"
	"sync"

	"github.com/Yana3030-web/stroymaster-website/internal/search"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveSearchHandler serves the websocket behind the storefront search
// box. Each connection owns a debounced search controller; view
// snapshots are pushed whenever results change.
type LiveSearchHandler struct {
	fetcher search.Fetcher
	logger  zerolog.Logger
}

// NewLiveSearchHandler creates a new live search handler.
func NewLiveSearchHandler(fetcher search.Fetcher, logger zerolog.Logger) *LiveSearchHandler {
	return &LiveSearchHandler{
		fetcher: fetcher,
		logger:  logger.With().Str("handler", "live_search").Logger(),
	}
}

// searchMessage is what the storefront sends over the socket.
type searchMessage struct {
	Type     string `json:"type"`
	Term     string `json:"term,omitempty"`
	Category string `json:"category,omitempty"`
}

// Serve handles GET /ws/search requests.
func (h *LiveSearchHandler) Serve(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Views arrive from timer goroutines as well as this one, and
	// gorilla connections allow a single concurrent writer.
	var writeMu sync.Mutex
	push := func(view search.View) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(view); err != nil {
			h.logger.Debug().Err(err).Msg("websocket write failed")
		}
	}

	ctrl := search.NewController(h.fetcher, push, search.DefaultDebounce, h.logger)
	defer ctrl.Close()
	ctrl.Start(r.Context())

	for {
		var msg searchMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug().Err(err).Msg("websocket read failed")
			}
			return
		}

		switch msg.Type {
		case "search":
			ctrl.SetSearchTerm(r.Context(), msg.Term)
		case "category":
			ctrl.SetCategory(r.Context(), msg.Category)
		default:
			h.logger.Debug().Str("type", msg.Type).Msg("ignoring unknown message type")
		}
	}
}
