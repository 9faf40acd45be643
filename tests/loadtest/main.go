package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numPuzzles   = 60
	firstPuzzle  = 1400
	numUsers     = 100
)

var (
	games = []string{"wordle", "connections", "mini"}
	rows  = []string{"🟨🟨🟨🟨", "🟩🟩🟩🟩", "🟦🟦🟦🟦", "🟪🟪🟪🟪", "🟨🟩🟨🟨"}
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

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	statuses  map[int]int64
	latencies []time.Duration
}

type latencySummary struct {
	avg, p50, p95, p99 time.Duration
}

func summarize(d []time.Duration) latencySummary {
	if len(d) == 0 {
		return latencySummary{}
	}
	slices.Sort(d)
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	at := func(p float64) time.Duration {
		return d[min(int(float64(len(d))*p), len(d)-1)]
	}
	return latencySummary{avg: sum / time.Duration(len(d)), p50: at(0.50), p95: at(0.95), p99: at(0.99)}
}

func main() {
	fmt.Println("=== PuzzleStats Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Puzzles: %d | Users: %d\n\n", numPuzzles, numUsers)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: Seed data with POST requests
	fmt.Println("\n--- Phase 1: Seeding data (POST /events) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doPostEvent(rng)
	})

	// Let the event bus drain
	fmt.Println("\nWaiting 2s for ingestion...")
	time.Sleep(2 * time.Second)

	// Phase 2: Mixed read/write load
	fmt.Println("\n--- Phase 2: Mixed load (70% POST, 30% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.60:
			return doPostEvent(rng)
		case r < 0.70:
			return doPostMini(rng)
		case r < 0.87:
			return doGetStats(rng)
		default:
			return doGetLeaderboard(rng)
		}
	})

	// Phase 3: Read-heavy load
	fmt.Println("\n--- Phase 3: Read-heavy load (10% POST, 90% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doPostEvent(rng)
		case r < 0.60:
			return doGetStats(rng)
		case r < 0.90:
			return doGetLeaderboard(rng)
		default:
			return doGetHealth()
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{statuses: make(map[int]int64)}
				allResults[r.endpoint] = s
			}
			s.count++
			s.statuses[r.status]++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps, totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	slices.Sort(endpoints)

	line := "  " + strings.Repeat("-", 100)
	fmt.Printf("\n  %-20s %8s %6s %10s %10s %10s %10s  %s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99", "Statuses")
	fmt.Println(line)

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		l := summarize(s.latencies)
		fmt.Printf("  %-20s %8d %6d %10s %10s %10s %10s  %s\n",
			ep, s.count, s.errors, fmtDur(l.avg), fmtDur(l.p50), fmtDur(l.p95), fmtDur(l.p99), fmtStatuses(s.statuses))
	}

	fmt.Println(line)
	if totalOps == 0 {
		fmt.Println("  No requests completed")
		return
	}
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func fmtStatuses(statuses map[int]int64) string {
	codes := make([]int, 0, len(statuses))
	for code := range statuses {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, fmt.Sprintf("%d:%d", code, statuses[code]))
	}
	return strings.Join(parts, " ")
}

func eventText(rng *rand.Rand) string {
	puzzle := firstPuzzle + rng.Intn(numPuzzles)
	if rng.Float64() < 0.5 {
		score := "X"
		if n := rng.Intn(7); n > 0 {
			score = fmt.Sprintf("%d", n)
		}
		return fmt.Sprintf("Wordle %d %s/6\n🟩🟩🟩🟩🟩", puzzle, score)
	}
	text := fmt.Sprintf("Connections\nPuzzle #%d", puzzle-800)
	for i := 0; i < 4+rng.Intn(2); i++ {
		text += "\n" + rows[rng.Intn(len(rows))]
	}
	return text
}

func send(method, endpoint, url string, body []byte, want int) result {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return result{method + " " + endpoint, 0, 0, true}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{method + " " + endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{method + " " + endpoint, resp.StatusCode, lat, resp.StatusCode != want}
}

func doPostEvent(rng *rand.Rand) result {
	user := rng.Intn(numUsers)
	data, _ := json.Marshal(map[string]interface{}{
		"messageId":  uuid.NewString(),
		"authorId":   fmt.Sprintf("u%d", user),
		"authorName": fmt.Sprintf("player%d", user),
		"channelId":  "games",
		"text":       eventText(rng),
	})
	return send(http.MethodPost, "/events", baseURL+"/events", data, http.StatusAccepted)
}

func doPostMini(rng *rand.Rand) result {
	user := rng.Intn(numUsers)
	data, _ := json.Marshal(map[string]string{
		"userId":   fmt.Sprintf("u%d", user),
		"username": fmt.Sprintf("player%d", user),
		"time":     fmt.Sprintf("%d:%02d", rng.Intn(5), rng.Intn(60)),
	})
	return send(http.MethodPost, "/mini", baseURL+"/mini", data, http.StatusCreated)
}

func doGetStats(rng *rand.Rand) result {
	game := games[rng.Intn(len(games))]
	url := fmt.Sprintf("%s/stats?game=%s&user=u%d&window=current", baseURL, game, rng.Intn(numUsers))
	r := send(http.MethodGet, "/stats", url, nil, http.StatusOK)
	// players without results for a game are a valid 404
	if r.status == http.StatusNotFound {
		r.err = false
	}
	return r
}

func doGetLeaderboard(rng *rand.Rand) result {
	game := games[rng.Intn(len(games))]
	url := fmt.Sprintf("%s/leaderboard?game=%s&page=%d", baseURL, game, rng.Intn(5)+1)
	return send(http.MethodGet, "/leaderboard", url, nil, http.StatusOK)
}

func doGetHealth() result {
	return send(http.MethodGet, "/health", baseURL+"/health", nil, http.StatusOK)
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
