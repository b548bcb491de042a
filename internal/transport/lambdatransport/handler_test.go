package lambdatransport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/app"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/registry"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

type algorithmSvcStub struct {
	executeFn func(id string, input json.RawMessage) (*app.Execution, error)
}

func (s *algorithmSvcStub) List() []registry.Metadata {
	return []registry.Metadata{{ID: "linear_search", Name: "Linear Search", Category: registry.CategorySearch, VisualizerType: step.Array}}
}

func (s *algorithmSvcStub) Get(id string) (registry.Metadata, error) {
	if id != "linear_search" {
		return registry.Metadata{}, fmt.Errorf("%w: %s", registry.ErrUnknownAlgorithm, id)
	}
	return s.List()[0], nil
}

func (s *algorithmSvcStub) Source(id string) (string, error) {
	return "package search", nil
}

func (s *algorithmSvcStub) Execute(_ context.Context, id string, input json.RawMessage, _ app.ExecuteOptions) (*app.Execution, error) {
	return s.executeFn(id, input)
}

func (s *algorithmSvcStub) Stream(_ context.Context, id string, _ json.RawMessage, _ app.ExecuteOptions, emit func(step.Step) error) (*app.StreamResult, error) {
	if id != "linear_search" {
		return &app.StreamResult{State: app.StreamIdle}, fmt.Errorf("%w: %s", registry.ErrUnknownAlgorithm, id)
	}
	st := step.Step{StepNumber: 1, Operation: step.OpNotFound, State: step.ArrayState([]int{1}), Highlights: []step.Highlight{}, Metadata: step.Metadata{}}
	if err := emit(st); err != nil {
		return nil, err
	}
	return &app.StreamResult{ID: "s1", Algorithm: id, State: app.StreamCompleted, Delivered: 1, Total: 1}, nil
}

func request(method, path, body string) events.APIGatewayV2HTTPRequest {
	req := events.APIGatewayV2HTTPRequest{RawPath: path, Body: body}
	req.RequestContext.HTTP.Method = method
	return req
}

func TestHandler_Routes(t *testing.T) {
	h := NewHandler(&algorithmSvcStub{}, nil, 0)

	cases := []struct {
		method, path string
		want         int
		contains     string
	}{
		{"GET", "/health", 200, `"status":"ok"`},
		{"GET", "/api/algorithms", 200, `"linear_search"`},
		{"GET", "/algorithms/linear_search", 200, `"category":"search"`},
		{"GET", "/algorithms/nope", 404, `algorithm not found`},
		{"GET", "/api/algorithms/linear_search/source", 200, `package search`},
		{"DELETE", "/algorithms/linear_search", 404, `route not found`},
		{"GET", "/elsewhere", 404, `route not found`},
	}

	for _, tc := range cases {
		resp, err := h.Handle(context.Background(), request(tc.method, tc.path, ""))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != tc.want || !strings.Contains(resp.Body, tc.contains) {
			t.Fatalf("%s %s: got %d %s", tc.method, tc.path, resp.StatusCode, resp.Body)
		}
	}
}

func TestHandler_Execute_InvalidJSON(t *testing.T) {
	h := NewHandler(&algorithmSvcStub{}, nil, 0)

	resp, err := h.Handle(context.Background(), request("POST", "/algorithms/linear_search/execute", "{"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestHandler_Execute_Base64Body(t *testing.T) {
	h := NewHandler(&algorithmSvcStub{executeFn: func(id string, input json.RawMessage) (*app.Execution, error) {
		if string(input) != `{"values":[1,2],"target":2}` {
			t.Fatalf("unexpected input %s", input)
		}
		return &app.Execution{ID: "e1", Algorithm: id, Steps: []step.Step{}, Count: 0}, nil
	}}, nil, 0)

	req := request("POST", "/api/algorithms/linear_search/execute",
		base64.StdEncoding.EncodeToString([]byte(`{"input":{"values":[1,2],"target":2}}`)))
	req.IsBase64Encoded = true

	resp, err := h.Handle(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 || !strings.Contains(resp.Body, `"execution_id":"e1"`) {
		t.Fatalf("unexpected response: %d %s", resp.StatusCode, resp.Body)
	}
}

func TestHandler_Execute_BodyTooLarge(t *testing.T) {
	h := NewHandler(&algorithmSvcStub{}, nil, 8)

	resp, _ := h.Handle(context.Background(), request("POST", "/algorithms/linear_search/execute", `{"input":[1,2,3]}`))
	if resp.StatusCode != 413 {
		t.Fatalf("expected status 413, got %d", resp.StatusCode)
	}
}

func TestHandler_Stream(t *testing.T) {
	h := NewHandler(&algorithmSvcStub{}, nil, 0)

	resp, err := h.Handle(context.Background(), request("POST", "/algorithms/linear_search/execute/stream", `{"input":{"values":[1],"target":3}}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 || resp.Headers["content-type"] != "text/event-stream" {
		t.Fatalf("unexpected response: %d %v", resp.StatusCode, resp.Headers)
	}
	if !strings.HasPrefix(resp.Body, "event: step\n") || !strings.Contains(resp.Body, "event: done\n") {
		t.Fatalf("unexpected body %q", resp.Body)
	}

	resp, _ = h.Handle(context.Background(), request("POST", "/algorithms/nope/execute/stream", `{"input":1}`))
	if resp.StatusCode != 404 || !strings.HasPrefix(resp.Body, "event: error\n") {
		t.Fatalf("unexpected error stream: %d %q", resp.StatusCode, resp.Body)
	}
}
