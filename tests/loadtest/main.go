package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18080"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numDevices   = 100
)

var statuses = []string{"join", "pass"}

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
	latencies []time.Duration
}

var deviceIDs []string

func main() {
	fmt.Println("=== Futsald Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Devices: %d\n\n", numWorkers, testDuration, numDevices)

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

	// Phase 0: Mint and register devices
	fmt.Printf("\n--- Phase 0: Registering %d devices ---\n", numDevices)
	if err := seedDevices(); err != nil {
		fmt.Printf("FAILED: %v\n", err)
		return
	}
	fmt.Println("OK")

	// Phase 1: Write-heavy intent updates
	fmt.Println("\n--- Phase 1: Intent updates (POST /attendance/status) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doSetStatus(rng)
	})

	// Phase 2: Mixed read/write load
	fmt.Println("\n--- Phase 2: Mixed load (50% write, 50% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.35:
			return doSetStatus(rng)
		case r < 0.50:
			return doPostMessage(rng)
		case r < 0.70:
			return doGetDay()
		case r < 0.85:
			return doGetBoard(rng)
		default:
			return doGetStats()
		}
	})

	// Phase 3: Read-heavy load
	fmt.Println("\n--- Phase 3: Read-heavy load (10% write, 90% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doSetStatus(rng)
		case r < 0.45:
			return doGetDay()
		case r < 0.70:
			return doGetBoard(rng)
		case r < 0.90:
			return doGetStats()
		default:
			return doGetPins()
		}
	})
}

func seedDevices() error {
	deviceIDs = make([]string, 0, numDevices)
	for i := 0; i < numDevices; i++ {
		resp, err := httpClient.Post(baseURL+"/identity/mint", "application/json", nil)
		if err != nil {
			return err
		}
		var minted struct {
			DeviceID string `json:"deviceId"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&minted); err != nil {
			resp.Body.Close()
			return err
		}
		resp.Body.Close()

		body, _ := json.Marshal(map[string]string{
			"deviceId": minted.DeviceID,
			"nickname": fmt.Sprintf("lt%02d", i),
		})
		resp, err = httpClient.Post(baseURL+"/identity/register", "application/json", bytes.NewReader(body))
		if err != nil {
			return err
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if resp.StatusCode != 204 {
			return fmt.Errorf("register %d: status %d", i, resp.StatusCode)
		}
		deviceIDs = append(deviceIDs, minted.DeviceID)
	}
	return nil
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
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
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
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 94))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-28s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 94))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func doSetStatus(rng *rand.Rand) result {
	body, _ := json.Marshal(map[string]string{
		"deviceId": deviceIDs[rng.Intn(len(deviceIDs))],
		"status":   statuses[rng.Intn(len(statuses))],
	})
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/attendance/status", "application/json", bytes.NewReader(body))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /attendance/status", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /attendance/status", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doPostMessage(rng *rand.Rand) result {
	body, _ := json.Marshal(map[string]string{
		"deviceId": deviceIDs[rng.Intn(len(deviceIDs))],
		"text":     fmt.Sprintf("load message %d", rng.Intn(10000)),
	})
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/board/messages", "application/json", bytes.NewReader(body))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /board/messages", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /board/messages", resp.StatusCode, lat, resp.StatusCode != 201}
}

func doGetDay() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/attendance")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /attendance", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /attendance", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetBoard(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/board/messages?device=%s", baseURL, deviceIDs[rng.Intn(len(deviceIDs))])
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /board/messages", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /board/messages", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetStats() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/attendance/stats")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /attendance/stats", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /attendance/stats", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetPins() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/board/pins")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /board/pins", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /board/pins", resp.StatusCode, lat, resp.StatusCode != 200}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
