package integration_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/app"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/cache"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/catalog"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/stepfilter"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/transport/httptransport"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	reg, err := catalog.Standard()
	if err != nil {
		t.Fatal(err)
	}
	svc := app.NewService(reg, app.Options{
		MaxSteps: 10_000,
		Filters:  cache.NewInMemory[*stepfilter.Filter](64),
	})
	srv := httptest.NewServer(httptransport.NewHandler(svc).Routes())
	t.Cleanup(srv.Close)
	return srv
}

type executeResponse struct {
	ExecutionID string      `json:"execution_id"`
	Steps       []step.Step `json:"steps"`
	Count       int         `json:"count"`
	Total       int         `json:"total"`
}

func post(t *testing.T, url, body string) (int, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, b
}

func TestHTTP_ListServesEveryAlgorithm(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/api/algorithms")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var list []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != len(catalog.Entries()) {
		t.Fatalf("expected %d algorithms, got %d", len(catalog.Entries()), len(list))
	}
}

func TestHTTP_ExecuteBubbleSort(t *testing.T) {
	srv := newServer(t)

	status, body := post(t, srv.URL+"/algorithms/bubble_sort/execute", `{"input":[5,2,8,1,9]}`)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", status, body)
	}

	var out executeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatal(err)
	}
	if out.ExecutionID == "" || out.Count != len(out.Steps) || out.Count == 0 {
		t.Fatalf("unexpected response header: %+v", out)
	}
	for i, st := range out.Steps {
		if st.StepNumber != i+1 {
			t.Fatalf("step %d numbered %d", i, st.StepNumber)
		}
	}
	first, last := out.Steps[0], out.Steps[len(out.Steps)-1]
	if first.Operation != step.OpInit || last.Operation != step.OpComplete {
		t.Fatalf("unexpected bounds: %s .. %s", first.Operation, last.Operation)
	}
	got, _ := json.Marshal(last.State["values"])
	if string(got) != "[1,2,5,8,9]" {
		t.Fatalf("expected sorted values, got %s", got)
	}
	if last.Metadata["swaps"] != 4.0 {
		t.Fatalf("expected 4 swaps, got %v", last.Metadata["swaps"])
	}
}

func TestHTTP_ExecuteBFSFindsShortestPath(t *testing.T) {
	srv := newServer(t)

	status, body := post(t, srv.URL+"/algorithms/bfs/execute",
		`{"input":{"graph":{"0":[1,2],"1":[3],"2":[3],"3":[]},"start":0,"target":3}}`)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", status, body)
	}

	var out executeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatal(err)
	}
	last := out.Steps[len(out.Steps)-1]
	path, _ := json.Marshal(last.Metadata["path"])
	if last.Operation != step.OpFound || string(path) != `["0","1","3"]` {
		t.Fatalf("unexpected terminal step %s %s", last.Operation, path)
	}
}

func TestHTTP_ExecuteWithFilter(t *testing.T) {
	srv := newServer(t)

	status, body := post(t, srv.URL+"/algorithms/quick_sort/execute",
		`{"input":[3,1,2],"filter":"operation in [\"pivot_placed\", \"complete\"]"}`)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", status, body)
	}
	var out executeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatal(err)
	}
	if out.Count >= out.Total {
		t.Fatalf("expected filter to drop steps: %d of %d", out.Count, out.Total)
	}
	for _, st := range out.Steps {
		if st.Operation != "pivot_placed" && st.Operation != step.OpComplete {
			t.Fatalf("unexpected step %s", st.Operation)
		}
	}
}

func TestHTTP_Errors(t *testing.T) {
	srv := newServer(t)

	cases := []struct {
		path, body string
		want       int
	}{
		{"/algorithms/nope/execute", `{"input":[1]}`, http.StatusNotFound},
		{"/algorithms/bubble_sort/execute", `{}`, http.StatusBadRequest},
		{"/algorithms/bubble_sort/execute", `{"input":"x"}`, http.StatusBadRequest},
		{"/algorithms/bubble_sort/execute", `{"input":[1],"filter":"os.Exit(1)"}`, http.StatusBadRequest},
		{"/algorithms/dijkstra/execute", `{"input":{"graph":{"A":[["B",-1]],"B":[]},"start":"A"}}`, http.StatusBadRequest},
		{"/algorithms/fibonacci/execute", `{"input":93}`, http.StatusBadRequest},
		{"/algorithms/knapsack/execute", `{"input":{"items":[[1,1]],"capacity":4611686018427387903}}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		status, body := post(t, srv.URL+tc.path, tc.body)
		if status != tc.want {
			t.Fatalf("%s %s: expected %d, got %d: %s", tc.path, tc.body, tc.want, status, body)
		}
	}
}

func TestHTTP_StreamMatchesBatch(t *testing.T) {
	srv := newServer(t)
	input := `{"input":{"items":[[1,1],[3,4],[4,5],[5,7]],"capacity":7}}`

	_, body := post(t, srv.URL+"/algorithms/knapsack/execute", input)
	var batch executeResponse
	if err := json.Unmarshal(body, &batch); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Post(srv.URL+"/api/algorithms/knapsack/execute/stream", "application/json", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var (
		streamed []step.Step
		event    string
		done     bool
	)
	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64*1024), 4<<20)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data := strings.TrimPrefix(line, "data: ")
			switch event {
			case "step":
				var st step.Step
				if err := json.Unmarshal([]byte(data), &st); err != nil {
					t.Fatal(err)
				}
				streamed = append(streamed, st)
			case "done":
				done = true
			default:
				t.Fatalf("unexpected event %q: %s", event, data)
			}
		}
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}

	if !done {
		t.Fatal("stream ended without a done event")
	}
	if len(streamed) != len(batch.Steps) {
		t.Fatalf("stream produced %d steps, batch %d", len(streamed), len(batch.Steps))
	}
	for i := range streamed {
		a, _ := json.Marshal(streamed[i])
		b, _ := json.Marshal(batch.Steps[i])
		if !bytes.Equal(a, b) {
			t.Fatalf("step %d differs:\nstream %s\nbatch  %s", i+1, a, b)
		}
	}
	if last := streamed[len(streamed)-1]; last.Metadata["max_value"] != 9.0 {
		t.Fatalf("expected max value 9, got %v", last.Metadata["max_value"])
	}
}

func TestHTTP_ConcurrentExecutionsAreIndependent(t *testing.T) {
	srv := newServer(t)

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			input := `{"input":[4,3,2,1]}`
			want := "[1,2,3,4]"
			if i%2 == 1 {
				input = `{"input":[9,7,8]}`
				want = "[7,8,9]"
			}
			resp, err := http.Post(srv.URL+"/algorithms/insertion_sort/execute", "application/json", strings.NewReader(input))
			if err != nil {
				errs <- err.Error()
				return
			}
			defer resp.Body.Close()
			var out executeResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				errs <- err.Error()
				return
			}
			got, _ := json.Marshal(out.Steps[len(out.Steps)-1].State["values"])
			if string(got) != want {
				errs <- "got " + string(got) + " want " + want
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatal(e)
	}
}

func TestHTTP_SourceEndpoint(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/algorithms/lcs/source")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out struct {
		Source string `json:"source"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.Source, "package dp") {
		t.Fatalf("unexpected source: %.80s", out.Source)
	}
}
