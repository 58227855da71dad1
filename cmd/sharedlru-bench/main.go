// Command sharedlru-bench drives one shared cache from many goroutines.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/venkatsvpr/sharedlru/metrics"
)

func main() {
	cfg := Config{}
	flag.IntVar(&cfg.Workers, "workers", 10, "number of concurrent workers")
	flag.IntVar(&cfg.Keys, "keys", 100, "distinct keys inserted per worker")
	flag.IntVar(&cfg.Capacity, "capacity", 100, "cache capacity")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address and wait for a signal")
	flag.Parse()

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics("sharedlru", reg)

	res, err := Run(cfg, m)
	if err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}
	log.Printf("Multi-threaded time: %.2fms", float64(res.Elapsed)/float64(time.Millisecond))
	log.Printf("Entries: %d, hits: %d, misses: %d", res.Len, res.Hits, res.Misses)

	if *metricsAddr == "" {
		return
	}

	server := metrics.NewServer(*metricsAddr, reg)
	server.StartAsync()
	log.Printf("Serving metrics on %s", *metricsAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down metrics server...")
	if err := server.Stop(); err != nil {
		log.Printf("Stop failed: %v", err)
	}
}
