package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kitabonkesaar/attendance-app-saas/internal/handler/http/response"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/jwt"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/sse"
)

type EventsHandler interface {
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventsHandlerImpl struct {
	jwtService jwt.Service
	hub        *sse.Hub
}

func NewEventsHandler(jwtService jwt.Service, hub *sse.Hub) EventsHandler {
	return &eventsHandlerImpl{
		jwtService: jwtService,
		hub:        hub,
	}
}

var streamTopics = map[string]bool{
	sse.TopicAttendance: true,
	sse.TopicEmployees:  true,
	sse.TopicSettings:   true,
}

// GetSSEToken issues a short-lived token for the EventSource URL.
// EventSource cannot set an Authorization header, so the stream
// endpoint authenticates via query parameter instead.
func (h *eventsHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromClaims(r)
	if userID == "" {
		response.Unauthorized(w, "Invalid token")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"sse_token":  token,
		"expires_in": expiresIn,
	})
}

// Stream implements EventsHandler.
func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.Unauthorized(w, "Missing token")
		return
	}
	if _, err := h.jwtService.ValidateSSEToken(token); err != nil {
		response.Unauthorized(w, "Invalid or expired token")
		return
	}

	topic := r.URL.Query().Get("topic")
	if topic == "" {
		topic = sse.TopicAttendance
	}
	if !streamTopics[topic] {
		response.BadRequest(w, "Unknown topic", nil)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(topic)
	defer cleanup()

	// First frame tells the client which delivery state it is in. In
	// mock mode the connection stays open but no events will follow.
	writeSSEEvent(w, "state", map[string]interface{}{
		"topic": topic,
		"state": h.hub.TopicState(topic),
	})
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case event, open := <-events:
			if !open {
				return
			}
			writeSSEEvent(w, event.Event, event.Data)
			flusher.Flush()
		}
	}
}

func writeSSEEvent(w http.ResponseWriter, event string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
}
