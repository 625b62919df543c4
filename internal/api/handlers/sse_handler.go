package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/ncrm/internal/domain/entities"
	"github.com/zatekoja/ncrm/internal/domain/providers"
)

const sseHeartbeatInterval = 30 * time.Second

// SSEHandler streams directory events as Server-Sent Events
type SSEHandler struct {
	eventBus providers.EventBus
	clients  map[string]int // channel -> connected clients
	mu       sync.RWMutex
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return &SSEHandler{
		eventBus: eventBus,
		clients:  make(map[string]int),
	}
}

// StreamDirectoryUpdates handles GET /api/stream
func (h *SSEHandler) StreamDirectoryUpdates(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, providers.EventChannelDirectoryUpdates, map[string]interface{}{
		"channel": providers.EventChannelDirectoryUpdates,
	})
}

// StreamHospitalUpdates handles GET /api/stream/hospitals/{name}
func (h *SSEHandler) StreamHospitalUpdates(w http.ResponseWriter, r *http.Request) {
	hospital := strings.TrimSpace(r.PathValue("name"))
	if hospital == "" {
		respondWithError(w, http.StatusBadRequest, "hospital name is required")
		return
	}

	channel := providers.GetHospitalChannel(hospital)
	h.stream(w, r, channel, map[string]interface{}{
		"channel":  channel,
		"hospital": hospital,
	})
}

// stream relays events from channel until the client disconnects. The
// optional ?type= query keeps only events of that type.
func (h *SSEHandler) stream(w http.ResponseWriter, r *http.Request, channel string, hello map[string]interface{}) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	eventType := entities.DirectoryEventType(r.URL.Query().Get("type"))

	eventChan, err := h.eventBus.Subscribe(r.Context(), channel)
	if err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("failed to subscribe")
		respondWithError(w, http.StatusServiceUnavailable, "event stream unavailable")
		return
	}

	h.registerClient(channel)
	defer h.unregisterClient(channel)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	hello["timestamp"] = time.Now()
	h.sendEvent(w, "connected", hello)
	flusher.Flush()

	ticker := time.NewTicker(sseHeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Debug().Str("channel", channel).Msg("client disconnected")
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil || (eventType != "" && event.EventType != eventType) {
				continue
			}
			h.sendEvent(w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}

func (h *SSEHandler) registerClient(channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[channel]++
	log.Debug().Str("channel", channel).Int("clients", h.clients[channel]).Msg("client registered")
}

func (h *SSEHandler) unregisterClient(channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[channel]--
	if h.clients[channel] <= 0 {
		delete(h.clients, channel)
	}
}

// sendEvent sends an SSE event to the client
func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event data")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

// GetClientCount returns the number of connected clients
func (h *SSEHandler) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, n := range h.clients {
		count += n
	}
	return count
}
