package lambdatransport

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/app"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/transport/execdto"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/transport/sse"
)

type Handler struct {
	svc          app.AlgorithmService
	logger       *slog.Logger
	maxBodyBytes int
}

func NewHandler(svc app.AlgorithmService, logger *slog.Logger, maxBodyBytes int) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger, maxBodyBytes: maxBodyBytes}
}

// Handle routes an API Gateway HTTP event to the same operations the HTTP
// server exposes. Streams are buffered into a single text/event-stream body.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := req.RequestContext.HTTP.Method
	path := req.RawPath
	if path == "" {
		path = req.RequestContext.HTTP.Path
	}
	path = strings.TrimPrefix(strings.TrimSuffix(path, "/"), "/api")
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")

	switch {
	case method == http.MethodGet && len(parts) == 1 && parts[0] == "health":
		return jsonResp(http.StatusOK, execdto.HealthResponse{Status: "ok"}), nil
	case len(parts) == 0 || parts[0] != "algorithms":
		return jsonResp(http.StatusNotFound, execdto.ErrorResponse{Error: "route not found"}), nil
	case method == http.MethodGet && len(parts) == 1:
		return jsonResp(http.StatusOK, h.svc.List()), nil
	case method == http.MethodGet && len(parts) == 2:
		md, err := h.svc.Get(parts[1])
		if err != nil {
			return h.errorResp(err), nil
		}
		return jsonResp(http.StatusOK, md), nil
	case method == http.MethodGet && len(parts) == 3 && parts[2] == "source":
		src, err := h.svc.Source(parts[1])
		if err != nil {
			return h.errorResp(err), nil
		}
		return jsonResp(http.StatusOK, execdto.SourceResponse{ID: parts[1], Source: src}), nil
	case method == http.MethodPost && len(parts) == 3 && parts[2] == "execute":
		return h.execute(ctx, parts[1], req), nil
	case method == http.MethodPost && len(parts) == 4 && parts[2] == "execute" && parts[3] == "stream":
		return h.stream(ctx, parts[1], req), nil
	}
	return jsonResp(http.StatusNotFound, execdto.ErrorResponse{Error: "route not found"}), nil
}

func (h *Handler) execute(ctx context.Context, id string, req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	in, err := h.decode(req)
	if err != nil {
		return h.errorResp(err)
	}
	out, err := h.svc.Execute(ctx, id, in.Input, in.Options())
	if err != nil {
		return h.errorResp(err)
	}
	return jsonResp(http.StatusOK, out)
}

func (h *Handler) stream(ctx context.Context, id string, req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	var buf bytes.Buffer
	w := sse.NewWriter(&buf)
	status := http.StatusOK

	in, err := h.decode(req)
	if err == nil {
		var res *app.StreamResult
		res, err = h.svc.Stream(ctx, id, in.Input, in.Options(), func(st step.Step) error {
			return w.Event(sse.EventStep, st)
		})
		if err == nil {
			_ = w.Event(sse.EventDone, execdto.DoneFrom(res))
		}
	}
	if err != nil {
		if buf.Len() == 0 {
			status = execdto.Status(err)
		}
		h.logFailure(err)
		_ = w.Event(sse.EventError, execdto.Error(err))
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers: map[string]string{
			"content-type":  "text/event-stream",
			"cache-control": "no-cache",
		},
		Body: buf.String(),
	}
}

func (h *Handler) decode(req events.APIGatewayV2HTTPRequest) (execdto.ExecuteRequest, error) {
	body, err := readBody(req)
	if err != nil {
		return execdto.ExecuteRequest{}, execdto.ErrInvalidJSON
	}
	if h.maxBodyBytes > 0 && len(body) > h.maxBodyBytes {
		return execdto.ExecuteRequest{}, execdto.ErrBodyTooLarge
	}
	return execdto.Decode(body)
}

func (h *Handler) errorResp(err error) events.APIGatewayV2HTTPResponse {
	h.logFailure(err)
	return jsonResp(execdto.Status(err), execdto.Error(err))
}

func (h *Handler) logFailure(err error) {
	if execdto.Status(err) >= http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
}

func readBody(req events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if req.IsBase64Encoded {
		return base64.StdEncoding.DecodeString(req.Body)
	}
	return []byte(req.Body), nil
}

func jsonResp(status int, body any) events.APIGatewayV2HTTPResponse {
	b, _ := json.Marshal(body)
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"content-type": "application/json"},
		Body:       string(b),
	}
}
