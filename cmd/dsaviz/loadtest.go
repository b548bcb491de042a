package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/awmpietro/golang-algorithm-visualizer/cmd/dsaviz/ui"
)

type loadResult struct {
	latency time.Duration
	status  int
	err     error
}

type loadReport struct {
	Requests    int
	Success2xx  int
	Non2xx      int
	Errors      int
	AchievedRPS float64
	Avg         time.Duration
	P50         time.Duration
	P90         time.Duration
	P99         time.Duration
}

func loadtestCmd() *cobra.Command {
	var (
		baseURL   string
		algorithm string
		input     string
		rps       int
		duration  time.Duration
		workers   int
		timeout   time.Duration
		maxP90    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Drive a running server's execute endpoint at a fixed rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rps <= 0 || duration <= 0 || workers <= 0 {
				return errors.New("rps, duration and workers must be > 0")
			}
			if !json.Valid([]byte(input)) {
				return errors.New("--input is not valid json")
			}
			body, err := json.Marshal(map[string]json.RawMessage{"input": json.RawMessage(input)})
			if err != nil {
				return err
			}
			url := strings.TrimSuffix(baseURL, "/") + "/algorithms/" + algorithm + "/execute"

			rep := runLoad(&http.Client{Timeout: timeout}, url, body, rps, duration, workers)
			if rep.Requests == 0 {
				return errors.New("no requests executed")
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, ui.KeyValues("",
				ui.KV("target", url),
				ui.KV("target_rps", fmt.Sprint(rps)),
				ui.KV("achieved_rps", fmt.Sprintf("%.2f", rep.AchievedRPS)),
				ui.KV("requests", fmt.Sprint(rep.Requests)),
				ui.KV("2xx", fmt.Sprint(rep.Success2xx)),
				ui.KV("non_2xx", fmt.Sprint(rep.Non2xx)),
				ui.KV("errors", fmt.Sprint(rep.Errors)),
				ui.KV("avg_ms", fmt.Sprintf("%.3f", ms(rep.Avg))),
				ui.KV("p50_ms", fmt.Sprintf("%.3f", ms(rep.P50))),
				ui.KV("p90_ms", fmt.Sprintf("%.3f", ms(rep.P90))),
				ui.KV("p99_ms", fmt.Sprintf("%.3f", ms(rep.P99))),
			))

			if rep.AchievedRPS >= float64(rps)*0.98 && rep.P90 < maxP90 && rep.Errors == 0 && rep.Non2xx == 0 {
				fmt.Fprintln(out, ui.Success(fmt.Sprintf("PASS: %d rps with p90 < %s", rps, maxP90)))
				return nil
			}
			return fmt.Errorf("target not met: %d rps with p90 < %s", rps, maxP90)
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Server base URL")
	cmd.Flags().StringVar(&algorithm, "algorithm", "bubble_sort", "Algorithm to execute")
	cmd.Flags().StringVar(&input, "input", "[5,2,8,1,9,3,7,4,6,0]", "Input payload as JSON")
	cmd.Flags().IntVar(&rps, "rps", 50, "Target requests per second")
	cmd.Flags().DurationVar(&duration, "duration", 60*time.Second, "Test duration")
	cmd.Flags().IntVar(&workers, "workers", 50, "Concurrent workers")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	cmd.Flags().DurationVar(&maxP90, "max-p90", 30*time.Millisecond, "P90 latency the run must stay under")
	return cmd
}

func runLoad(client *http.Client, url string, body []byte, rps int, duration time.Duration, workers int) loadReport {
	jobs := make(chan struct{}, workers)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]loadResult, 0, rps*int(duration.Seconds())+1)
	)
	record := func(r loadResult) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				start := time.Now()
				resp, err := client.Post(url, "application/json", bytes.NewReader(body))
				lat := time.Since(start)
				if err != nil {
					record(loadResult{latency: lat, err: err})
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
				record(loadResult{latency: lat, status: resp.StatusCode})
			}
		}()
	}

	ticker := time.NewTicker(time.Second / time.Duration(rps))
	defer ticker.Stop()
	deadline := time.Now().Add(duration)
	for now := range ticker.C {
		if now.After(deadline) {
			break
		}
		jobs <- struct{}{}
	}
	close(jobs)
	wg.Wait()

	return summarize(results, duration)
}

func summarize(results []loadResult, duration time.Duration) loadReport {
	rep := loadReport{Requests: len(results)}
	latencies := make([]time.Duration, 0, len(results))
	for _, r := range results {
		latencies = append(latencies, r.latency)
		switch {
		case r.err != nil:
			rep.Errors++
		case r.status >= 200 && r.status < 300:
			rep.Success2xx++
		default:
			rep.Non2xx++
		}
	}
	if len(latencies) == 0 {
		return rep
	}

	slices.Sort(latencies)
	rep.P50 = percentile(latencies, 50)
	rep.P90 = percentile(latencies, 90)
	rep.P99 = percentile(latencies, 99)
	var total time.Duration
	for _, d := range latencies {
		total += d
	}
	rep.Avg = total / time.Duration(len(latencies))
	rep.AchievedRPS = float64(len(latencies)) / duration.Seconds()
	return rep
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[(len(sorted)-1)*p/100]
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
