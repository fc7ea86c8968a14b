// Command bench runs a synthetic workload against a self-populating cache and
// exposes optional pprof/Prometheus endpoints.
//
// Settings come from POPCACHE_* environment variables (see internal/config)
// and can be overridden by flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/popcache/cache"
	"github.com/IvanBrykalov/popcache/internal/config"
	"github.com/IvanBrykalov/popcache/internal/logging"
	pmet "github.com/IvanBrykalov/popcache/metrics/prom"
	"github.com/IvanBrykalov/popcache/policy/twoq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ---- Flags (defaults from the environment) ----
	var (
		name     = flag.String("name", cfg.Name, "cache name (metrics label)")
		capacity = flag.Int("cap", cfg.Capacity, "cache capacity in entries (0=unbounded)")
		policy   = flag.String("policy", cfg.Policy, "eviction policy: lru | 2q")

		workers  = flag.Int("workers", cfg.Workers, "number of worker goroutines (0=2*GOMAXPROCS)")
		duration = flag.Duration("duration", cfg.Duration, "benchmark duration")
		readPct  = flag.Int("reads", cfg.ReadPct, "percentage of ops that go through the loader path [0..100]")
		loadCost = flag.Duration("load_cost", cfg.LoadCost, "simulated loader latency")

		keys  = flag.Int("keys", cfg.Keys, "keyspace size")
		zipfS = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed  = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		pprofAddr   = flag.String("pprof", cfg.PprofAddr, "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", cfg.MetricsAddr, "serve Prometheus metrics at addr; empty = disabled")
		logLevel    = flag.String("log_level", cfg.LogLevel, "debug | info | warn | error")
		logFormat   = flag.String("log_format", cfg.LogFormat, "text | json")
	)
	flag.Parse()

	override := cfg
	override.Name, override.Capacity, override.Policy = *name, *capacity, *policy
	override.ReadPct, override.Keys = *readPct, *keys
	if err := override.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(logging.Format(*logFormat), *logLevel, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			logger.Info("pprof: serving", "addr", *pprofAddr)
			logger.Error("pprof server stopped", "error", http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Build cache ----
	metrics := pmet.New(nil, "popcache", "bench", *name, nil)
	opt := cache.Options[string, string]{
		Capacity: *capacity,
		Metrics:  metrics,
		Logger:   logger,
	}
	if *policy == "2q" && *capacity > 0 {
		opt.Policy = twoq.New[string, string](*capacity/4, *capacity/2)
	}
	c, err := cache.New[string, string](*name, opt)
	if err != nil {
		log.Fatal(err)
	}

	var loads atomic.Uint64
	cost := *loadCost
	sp, err := cache.NewSelfPopulating(c, func(ctx context.Context, k string) (string, error) {
		loads.Add(1)
		if cost > 0 {
			time.Sleep(cost)
		}
		return "v:" + k, ctx.Err()
	})
	if err != nil {
		log.Fatal(err)
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	if *metricsAddr != "" {
		prometheus.MustRegister(pmet.NewCollector("popcache", sp))
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			logger.Info("metrics: serving", "addr", *metricsAddr)
			logger.Error("metrics server stopped", "error", http.ListenAndServe(*metricsAddr, nil))
		}()
	}

	workersN := *workers
	if workersN <= 0 {
		workersN = 2 * runtime.GOMAXPROCS(0)
	}

	res, err := run(sp, workload{
		workers:  workersN,
		duration: *duration,
		readPct:  *readPct,
		keys:     uint64(*keys),
		zipfS:    *zipfS,
		zipfV:    *zipfV,
		seed:     *seed,
	})
	if err != nil {
		log.Fatal(err)
	}

	// ---- Report ----
	st := sp.Stats()
	fmt.Printf("cache=%s policy=%s cap=%d workers=%d keys=%d dur=%v seed=%d\n",
		st.Name, *policy, *capacity, workersN, *keys, res.elapsed, *seed)
	fmt.Printf("ops=%d (%.0f ops/s)  gets=%d  removes=%d  loads=%d\n",
		res.ops, float64(res.ops)/res.elapsed.Seconds(), res.gets, res.removes, loads.Load())
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%  evictions=%d  Len()=%d\n",
		st.Hits, st.Misses, st.HitRatio()*100, st.Evictions, st.Size)
	logger.Debug("benchmark finished", slog.Any("stats", st))
}

type workload struct {
	workers  int
	duration time.Duration
	readPct  int
	keys     uint64
	zipfS    float64
	zipfV    float64
	seed     int64
}

type result struct {
	ops, gets, removes uint64
	elapsed            time.Duration
}

// run drives Get (through the loader on miss) and Remove from w.workers
// goroutines until w.duration elapses.
func run(sp *cache.SelfPopulating[string, string], w workload) (result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), w.duration)
	defer cancel()

	var ops, gets, removes atomic.Uint64
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for id := 0; id < w.workers; id++ {
		g.Go(func() error {
			// rand.Rand is NOT goroutine-safe: one per worker.
			r := rand.New(rand.NewSource(w.seed + int64(id)*9973))
			zipf := rand.NewZipf(r, w.zipfS, w.zipfV, w.keys-1)

			for ctx.Err() == nil {
				k := "k:" + strconv.FormatUint(zipf.Uint64(), 10)
				ops.Add(1)
				if int(r.Int31n(100)) < w.readPct {
					gets.Add(1)
					if _, err := sp.Get(ctx, k); err != nil && !errors.Is(err, context.DeadlineExceeded) {
						return fmt.Errorf("get %s: %w", k, err)
					}
				} else {
					removes.Add(1)
					sp.Remove(k)
				}
			}
			return nil
		})
	}
	err := g.Wait()

	return result{
		ops:     ops.Load(),
		gets:    gets.Load(),
		removes: removes.Load(),
		elapsed: time.Since(start),
	}, err
}
