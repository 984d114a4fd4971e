// codedefense-sim 无头批量运行器
//
// 用自动种植策略连续运行若干关卡，输出每关结果，可选地暴露 Prometheus 指标。
//
// 使用方法:
//
//	go run ./cmd/codedefense-sim -world 1 -level 1 -levels 10 -seed 42
//	go run ./cmd/codedefense-sim -levels 50 -metrics :2112
//
// 参数默认值可以写在当前目录的 .env 文件中（CODEDEFENSE_WORLD、CODEDEFENSE_LEVELS、
// CODEDEFENSE_SEED、CODEDEFENSE_DT、CODEDEFENSE_MAX_TICKS、CODEDEFENSE_CONFIG_DIR、
// CODEDEFENSE_METRICS_ADDR、CODEDEFENSE_VERBOSE），命令行参数优先。
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/decker502/codedefense/pkg/config"
	"github.com/decker502/codedefense/pkg/metrics"
	"github.com/decker502/codedefense/pkg/systems"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	opts, err := parseOptions(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	if !opts.verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	tables, err := config.LoadTables(opts.configDir)
	if err != nil {
		return fmt.Errorf("配置加载失败: %w", err)
	}

	recorder, err := metrics.NewRecorder(nil)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	var server *http.Server
	if opts.metricsAddr != "" {
		server = &http.Server{Addr: opts.metricsAddr, Handler: promhttp.Handler()}
		go func() {
			log.Printf("[Sim] Prometheus /metrics on %s", opts.metricsAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("[Sim] Metrics server error: %v", err)
			}
		}()
	}

	sim := systems.NewSimulation(tables, rand.New(rand.NewSource(opts.seed)), nil)
	world, level := tables.Levels.Clamp(opts.world, opts.level)

	start := time.Now()
	results := newRunner(sim, recorder, opts.dt, opts.maxTicks).run(world, level, opts.levels)
	printResults(os.Stdout, results, time.Since(start))

	if server == nil {
		return nil
	}

	// 保持指标端点，直到收到中断信号
	fmt.Fprintf(os.Stdout, "serving metrics on %s, press Ctrl+C to exit\n", opts.metricsAddr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func printResults(w io.Writer, results []levelResult, wall time.Duration) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tOUTCOME\tTICKS\tSIM TIME\tSPAWNED\tPLACED\tREJECTED\tSCORE")

	won := 0
	for _, r := range results {
		if r.Won {
			won++
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1fs\t%d\t%d\t%d\t%d\n",
			r.ID, r.Outcome(), r.Ticks, r.SimTime, r.Spawned, r.Placements, r.Rejected, r.Score)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d/%d levels won in %s\n", won, len(results), wall.Round(time.Millisecond))
}
