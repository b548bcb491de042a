package httptransport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/app"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/transport/execdto"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/transport/sse"
)

const DefaultMaxBodyBytes = 1 << 20

type Handler struct {
	svc          app.AlgorithmService
	logger       *slog.Logger
	maxBodyBytes int64
}

type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

func NewHandler(svc app.AlgorithmService, opts ...Option) *Handler {
	h := &Handler{svc: svc, logger: slog.Default(), maxBodyBytes: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts every route under prefix ("" for the root).
func (h *Handler) Register(mux *http.ServeMux, prefix string) {
	mux.HandleFunc("GET "+prefix+"/health", h.Health)
	mux.HandleFunc("GET "+prefix+"/algorithms", h.List)
	mux.HandleFunc("GET "+prefix+"/algorithms/{id}", h.Get)
	mux.HandleFunc("GET "+prefix+"/algorithms/{id}/source", h.Source)
	mux.HandleFunc("POST "+prefix+"/algorithms/{id}/execute", h.Execute)
	mux.HandleFunc("POST "+prefix+"/algorithms/{id}/execute/stream", h.ExecuteStream)
}

// Routes serves the API at the root and under /api.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	h.Register(mux, "")
	h.Register(mux, "/api")
	return mux
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, execdto.HealthResponse{Status: "ok"})
}

func (h *Handler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.List())
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	md, err := h.svc.Get(r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, md)
}

func (h *Handler) Source(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	src, err := h.svc.Source(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, execdto.SourceResponse{ID: id, Source: src})
}

func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	in, err := h.decode(w, r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out, err := h.svc.Execute(r.Context(), r.PathValue("id"), in.Input, in.Options())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ExecuteStream answers with text/event-stream: one step event per step, then
// a done event. A failure is reported as an error event; when it happens
// before anything was written the response status reflects it too.
func (h *Handler) ExecuteStream(w http.ResponseWriter, r *http.Request) {
	var out *sse.Writer
	start := func(status int) {
		sse.SetHeaders(w.Header())
		w.WriteHeader(status)
		out = sse.NewWriter(w)
	}
	fail := func(err error) {
		if out == nil {
			start(execdto.Status(err))
		}
		h.logFailure(err)
		_ = out.Event(sse.EventError, execdto.Error(err))
	}

	in, err := h.decode(w, r)
	if err != nil {
		fail(err)
		return
	}

	res, err := h.svc.Stream(r.Context(), r.PathValue("id"), in.Input, in.Options(), func(st step.Step) error {
		if out == nil {
			start(http.StatusOK)
		}
		return out.Event(sse.EventStep, st)
	})
	if errors.Is(err, app.ErrStreamAborted) {
		return
	}
	if err != nil {
		fail(err)
		return
	}
	if out == nil {
		start(http.StatusOK)
	}
	_ = out.Event(sse.EventDone, execdto.DoneFrom(res))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (execdto.ExecuteRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return execdto.ExecuteRequest{}, execdto.ErrBodyTooLarge
		}
		return execdto.ExecuteRequest{}, errors.Join(execdto.ErrInvalidJSON, err)
	}
	return execdto.Decode(body)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	h.logFailure(err)
	writeJSON(w, execdto.Status(err), execdto.Error(err))
}

func (h *Handler) logFailure(err error) {
	if execdto.Status(err) >= http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
