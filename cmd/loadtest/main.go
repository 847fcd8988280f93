// Command loadtest drives the facade's /rpc endpoints with configurable
// write/read/mixed workloads and reports throughput and status counts. It
// replaces the k6 scripts previously used against the PostgREST deployment.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
)

var (
	targetURL   string
	concurrency int
	duration    time.Duration
	workload    string
	numAccounts int
	replayEvery int
)

// Metrics
var (
	totalRequests uint64
	successWrites uint64
	successReads  uint64
	replayHits    uint64
	fail400       uint64
	failOther     uint64
)

func init() {
	flag.StringVar(&targetURL, "url", "http://localhost:8080", "Facade base URL")
	flag.IntVar(&concurrency, "workers", 10, "Number of concurrent workers")
	flag.DurationVar(&duration, "duration", 30*time.Second, "Test duration")
	flag.StringVar(&workload, "workload", "write", "Workload type: write | read | mixed")
	flag.IntVar(&numAccounts, "accounts", 100, "Number of accounts to seed before the run")
	flag.IntVar(&replayEvery, "replay-every", 10, "Reuse an idempotency key every N writes (0 disables)")
}

func main() {
	flag.Parse()
	if numAccounts < 2 {
		log.Fatalf("-accounts must be at least 2: transfers need distinct debit and credit accounts")
	}
	log.Printf("Starting load test: %s | Workers: %d | Duration: %s | Accounts: %d",
		workload, concurrency, duration, numAccounts)

	accounts, err := seedAccounts(numAccounts)
	if err != nil {
		log.Fatalf("Failed to seed accounts: %v", err)
	}

	pool, err := ants.NewPool(concurrency)
	if err != nil {
		log.Fatalf("Failed to create worker pool: %v", err)
	}
	defer pool.Release()

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			runWorker(accounts, start)
		}); err != nil {
			wg.Done()
			log.Printf("Failed to submit worker: %v", err)
		}
	}

	wg.Wait()
	printResults(time.Since(start))
}

// seedAccounts creates the working set of ASSET accounts the workload
// transfers between.
func seedAccounts(n int) ([]string, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	accounts := make([]string, 0, n)

	for i := 0; i < n; i++ {
		payload := map[string]any{
			"p_account_code": fmt.Sprintf("%d", i+1),
			"p_account_name": fmt.Sprintf("Load test account %d", i+1),
			"p_account_type": "ASSET",
		}
		body, _ := json.Marshal(payload)

		resp, err := client.Post(targetURL+"/rpc/create_account", "application/json", bytes.NewBuffer(body))
		if err != nil {
			return nil, err
		}
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("create_account returned %d: %s", resp.StatusCode, raw)
		}

		// The response body is the identifier as a JSON-quoted string.
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, fmt.Errorf("unexpected create_account body %q: %w", raw, err)
		}
		accounts = append(accounts, id)
	}

	log.Printf("Seeded %d accounts", len(accounts))
	return accounts, nil
}

func runWorker(accounts []string, start time.Time) {
	client := &http.Client{Timeout: 5 * time.Second}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var writes int
	var lastKey string

	for time.Since(start) < duration {
		doWrite := workload == "write" || (workload == "mixed" && rng.Float32() < 0.8)
		if workload == "read" {
			doWrite = false
		}

		if doWrite {
			writes++
			key := fmt.Sprintf("loadtest-%s", uuid.New())
			replay := replayEvery > 0 && lastKey != "" && writes%replayEvery == 0
			if replay {
				key = lastKey
			}
			lastKey = key
			postJournalEntry(client, rng, accounts, key, replay)
		} else {
			postBalanceQuery(client, rng, accounts)
		}
	}
}

func postJournalEntry(client *http.Client, rng *rand.Rand, accounts []string, key string, replay bool) {
	debit, credit := pickAccountPair(rng, accounts)
	amount := rng.Intn(1000) + 1

	payload := map[string]any{
		"p_entry_date":  time.Now().UTC().Format("2006-01-02"),
		"p_description": fmt.Sprintf("Load test transaction %d", amount),
		"p_debit_line": map[string]any{
			"account_id":   debit,
			"debit_amount": amount,
			"description":  fmt.Sprintf("Debit %d", amount),
		},
		"p_credit_line": map[string]any{
			"account_id":    credit,
			"credit_amount": amount,
			"description":   fmt.Sprintf("Credit %d", amount),
		},
		"p_idempotency_key": key,
	}
	body, _ := json.Marshal(payload)

	status := post(client, "/rpc/record_journal_entry", body)
	switch {
	case status == http.StatusOK && replay:
		atomic.AddUint64(&replayHits, 1)
	case status == http.StatusOK:
		atomic.AddUint64(&successWrites, 1)
	case status == http.StatusBadRequest:
		atomic.AddUint64(&fail400, 1)
	default:
		atomic.AddUint64(&failOther, 1)
	}
}

func postBalanceQuery(client *http.Client, rng *rand.Rand, accounts []string) {
	payload := map[string]any{
		"p_account_id": accounts[rng.Intn(len(accounts))],
	}
	body, _ := json.Marshal(payload)

	status := post(client, "/rpc/get_account_balance", body)
	switch status {
	case http.StatusOK:
		atomic.AddUint64(&successReads, 1)
	case http.StatusBadRequest:
		atomic.AddUint64(&fail400, 1)
	default:
		atomic.AddUint64(&failOther, 1)
	}
}

func post(client *http.Client, path string, body []byte) int {
	req, _ := http.NewRequest(http.MethodPost, targetURL+path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		atomic.AddUint64(&totalRequests, 1)
		return 0
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	atomic.AddUint64(&totalRequests, 1)
	return resp.StatusCode
}

// pickAccountPair returns two distinct accounts, falling back to a
// self-pair rather than spinning when only one account exists.
func pickAccountPair(rng *rand.Rand, accounts []string) (string, string) {
	if len(accounts) < 2 {
		return accounts[0], accounts[0]
	}
	a := rng.Intn(len(accounts))
	b := rng.Intn(len(accounts))
	for a == b {
		b = rng.Intn(len(accounts))
	}
	return accounts[a], accounts[b]
}

func printResults(d time.Duration) {
	total := atomic.LoadUint64(&totalRequests)

	results := map[string]any{
		"workload":        workload,
		"duration_sec":    d.Seconds(),
		"total_requests":  total,
		"throughput_tps":  float64(total) / d.Seconds(),
		"success_writes":  atomic.LoadUint64(&successWrites),
		"success_reads":   atomic.LoadUint64(&successReads),
		"idempotent_hits": atomic.LoadUint64(&replayHits),
		"rejected_400":    atomic.LoadUint64(&fail400),
		"errors":          atomic.LoadUint64(&failOther),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(results)
}
