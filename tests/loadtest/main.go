// Command loadtest drives a running ratingd daemon with concurrent usage
// traffic and reports per-endpoint latency. Start the daemon with the
// memory or sqlite driver on 127.0.0.1:18090 first.
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type request struct {
	method string
	path   string
	body   string
}

func (r request) name() string { return r.method + " " + r.path }

var (
	use         = request{http.MethodPost, "/use", ""}
	event       = request{http.MethodPost, "/event", ""}
	delayPrompt = request{http.MethodPost, "/prompt", `{"answers":["accept","delay"]}`}
	eligibility = request{http.MethodGet, "/eligibility", ""}
	ledger      = request{http.MethodGet, "/ledger", ""}
	health      = request{http.MethodGet, "/health", ""}
)

type result struct {
	endpoint string
	latency  time.Duration
	failed   bool
}

type endpointStats struct {
	errors    int64
	latencies []time.Duration
}

func (s *endpointStats) add(r result) {
	if r.failed {
		s.errors++
	}
	s.latencies = append(s.latencies, r.latency)
}

// quantile expects sorted latencies.
func (s *endpointStats) quantile(q float64) time.Duration {
	n := len(s.latencies)
	if n == 0 {
		return 0
	}
	return s.latencies[min(int(float64(n)*q), n-1)]
}

func (s *endpointStats) mean() time.Duration {
	if len(s.latencies) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range s.latencies {
		sum += v
	}
	return sum / time.Duration(len(s.latencies))
}

func main() {
	fmt.Println("=== ratingd Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n\n", numWorkers, testDuration)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		if r := do(health); !r.failed {
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Every /use without answers dismisses the gate, so the ledger becomes
	// suppressed quickly and later cycles are cheap counter increments.
	fmt.Println("\n--- Phase 1: Usage writes (POST /use, /event) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.7 {
			return do(use)
		}
		return do(event)
	})

	fmt.Println("\n--- Phase 2: Mixed load (40% writes, 5% forced prompts, 55% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.30:
			return do(use)
		case r < 0.40:
			return do(event)
		case r < 0.45:
			return do(delayPrompt)
		case r < 0.75:
			return do(eligibility)
		default:
			return do(ledger)
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	results := make(chan result, 1024)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()
			for ctx.Err() == nil {
				results <- workFn(rng)
			}
		}(rand.New(rand.NewSource(time.Now().UnixNano() + int64(i))))
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	byEndpoint := make(map[string]*endpointStats)
	for r := range results {
		s, ok := byEndpoint[r.endpoint]
		if !ok {
			s = &endpointStats{}
			byEndpoint[r.endpoint] = s
		}
		s.add(r)
	}

	report(byEndpoint, duration)
}

func report(byEndpoint map[string]*endpointStats, duration time.Duration) {
	endpoints := make([]string, 0, len(byEndpoint))
	for ep := range byEndpoint {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	line := "  " + strings.Repeat("-", 88)
	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n", "Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println(line)

	var total, failed int
	for _, ep := range endpoints {
		s := byEndpoint[ep]
		slices.Sort(s.latencies)
		total += len(s.latencies)
		failed += int(s.errors)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n", ep, len(s.latencies), s.errors,
			fmtDur(s.mean()), fmtDur(s.quantile(0.50)), fmtDur(s.quantile(0.95)), fmtDur(s.quantile(0.99)))
	}

	if total == 0 {
		return
	}
	fmt.Println(line)
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		total, failed, float64(failed)/float64(total)*100, float64(total)/duration.Seconds())
}

func do(r request) result {
	req, err := http.NewRequest(r.method, baseURL+r.path, strings.NewReader(r.body))
	if err != nil {
		return result{endpoint: r.name(), failed: true}
	}
	if r.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{r.name(), lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return result{r.name(), lat, resp.StatusCode != http.StatusOK}
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
