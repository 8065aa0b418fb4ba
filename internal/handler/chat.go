package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"inkwell/internal/handler/sse"
	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// ChatHandler proxies completion requests to the upstream model provider.
type ChatHandler struct {
	service *service.ChatService
	logger  *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(svc *service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		service: svc,
		logger:  logger,
	}
}

// Complete runs one non-streaming completion
// POST /api/chat/completions
func (h *ChatHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req service.ChatRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	content, err := h.service.Complete(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"content": content,
	})
}

// Stream runs a streaming completion over SSE. Deltas arrive as "delta"
// events; the stream ends with [DONE] or an "error" event.
// POST /api/chat/stream
func (h *ChatHandler) Stream(w http.ResponseWriter, r *http.Request) {
	var req service.ChatRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	stream, err := h.service.Stream(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}
	defer stream.Close()

	writer, err := sse.NewWriter(w)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	keepalive := time.NewTicker(15 * time.Second)
	defer keepalive.Stop()

	deltas := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(deltas)
		for {
			resp, err := stream.Recv()
			if err != nil {
				errs <- err
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			select {
			case deltas <- resp.Choices[0].Delta.Content:
			case <-r.Context().Done():
				return
			}
		}
	}()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			if err := writer.WriteKeepAlive(); err != nil {
				return
			}
		case err := <-errs:
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				writer.WriteDone()
				return
			}
			h.logger.Error("chat stream failed", "error", err)
			writer.WriteEvent("error", map[string]string{"message": "upstream stream failed"})
			return
		case delta, ok := <-deltas:
			if !ok {
				// Producer done; the verdict arrives on errs.
				deltas = nil
				continue
			}
			if delta == "" {
				continue
			}
			if err := writer.WriteEvent("delta", map[string]string{"content": delta}); err != nil {
				return
			}
		}
	}
}
