// README: Bench cases: environment, migrations, analyze/history API contract and throughput.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"flightopt/internal/modules/history"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg: cfg,
		// Analyses can take the full advisor timeout when live keys are set.
		httpc: &http.Client{Timeout: 60 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: statusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: statusFail, Note: "db not configured"}
				}
				if err := history.NewStore(r.db).Migrate(ctx); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: analysis_history exists",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				var exists bool
				err := r.db.QueryRow(ctx,
					"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
					"analysis_history",
				).Scan(&exists)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if !exists {
					return Result{Status: statusFail, Note: "missing table: analysis_history"}
				}
				return Result{Status: statusPass}
			},
		},

		httpCaseMethod("API: health", http.MethodGet, base+"/health", nil, http.StatusOK, nil),

		httpCase("Analyze: valid route", base+"/api/analyze", map[string]any{
			"departure": "NRT",
			"arrival":   "ICN",
			"date":      "2026-04-01",
		}, http.StatusOK, checkAnalysis("NRT → ICN (2026-04-01)")),

		httpCase("Analyze: lower-case codes normalized", base+"/api/analyze", map[string]any{
			"departure": " hnd ",
			"arrival":   "cts",
		}, http.StatusOK, checkAnalysis("HND → CTS")),

		httpCase("Analyze: missing arrival -> 400", base+"/api/analyze", map[string]any{
			"departure": "NRT",
		}, http.StatusBadRequest, nil),

		httpCase("Analyze: long-haul NRT->ORD", base+"/api/analyze", map[string]any{
			"departure": "NRT",
			"arrival":   "ORD",
		}, http.StatusOK, checkAnalysis("NRT → ORD")),

		httpCase("Analyze: malformed code -> 400", base+"/api/analyze", map[string]any{
			"departure": "NRT",
			"arrival":   "I1N",
		}, http.StatusBadRequest, nil),

		httpCase("Analyze: same airport -> 400", base+"/api/analyze", map[string]any{
			"departure": "NRT",
			"arrival":   "NRT",
		}, http.StatusBadRequest, nil),

		httpCase("Analyze: malformed date -> 400", base+"/api/analyze", map[string]any{
			"departure": "NRT",
			"arrival":   "ICN",
			"date":      "04/01/2026",
		}, http.StatusBadRequest, nil),

		httpCaseMethod("History: recent", http.MethodGet, base+"/api/history?limit=5", nil, http.StatusOK, nil),

		httpCaseMethod("History: bad limit -> 400", http.MethodGet, base+"/api/history?limit=x", nil, http.StatusBadRequest, nil),

		{
			Name: "Perf: analyze throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/analyze", map[string]any{
					"departure": "KIX",
					"arrival":   "TPE",
				})
			},
		},
	}
}

func checkAnalysis(wantRoute string) func(body []byte) error {
	return func(body []byte) error {
		var resp struct {
			Route         string            `json:"route"`
			HiddenOptions []json.RawMessage `json:"hidden_options"`
			AvoidTips     string            `json:"avoid_tips"`
			RawData       *struct {
				Source string `json:"source"`
			} `json:"raw_data"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return err
		}
		switch {
		case resp.Route != wantRoute:
			return fmt.Errorf("route=%q", resp.Route)
		case resp.AvoidTips == "":
			return fmt.Errorf("empty avoid_tips")
		case resp.HiddenOptions == nil:
			return fmt.Errorf("missing hidden_options")
		case resp.RawData == nil:
			return fmt.Errorf("missing raw_data")
		}
		return nil
	}
}

func httpCase(name, url string, body any, want int, check func([]byte) error) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, want, check)
}

func httpCaseMethod(name, method, url string, body any, want int, check func([]byte) error) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			if body != nil {
				b, _ := json.Marshal(body)
				reader = strings.NewReader(string(b))
			}
			req, _ := http.NewRequestWithContext(ctx, method, url, reader)
			req.Header.Set("Content-Type", "application/json")
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			payload, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			latency := time.Since(start)

			if resp.StatusCode != want {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
			}
			if check != nil {
				if err := check(payload); err != nil {
					return Result{Status: statusFail, Latency: latency, Note: err.Error()}
				}
			}
			return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
		},
	}
}

// perfLoad hammers url for the configured duration. 429s are counted
// separately so a configured rate limit does not read as failure.
func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var ok, limited, errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(b)))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				switch {
				case resp.StatusCode == http.StatusTooManyRequests:
					limited++
				case resp.StatusCode >= 200 && resp.StatusCode < 300:
					ok++
				default:
					errCount++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if ok == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(ok) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f limited=%d errors=%d", rps, limited, errCount)}
}
