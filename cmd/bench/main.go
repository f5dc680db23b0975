// Bench measures sweep throughput across worker counts, together with a
// murmur3 baseline over the same number of keys and peak memory use.
//
// Usage:
//
//	go run ./cmd/bench -hashes 16777216 -variant sha256 -workers 1,2,4,8
//
// Flags:
//
//	-hashes      Hashes per run, divisible by 8*workers (default: 2^24)
//	-variant     ripemd160 or sha256 (default: ripemd160)
//	-workers     Comma-separated worker counts (default: 1,2,4,NumCPU)
//	-cpuprofile  Write a CPU profile of the sweeps
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/metrics"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spaolacci/murmur3"
	"github.com/urfave/cli"

	"github.com/tamirms/keysweep"
	intbits "github.com/tamirms/keysweep/internal/bits"
	"github.com/tamirms/keysweep/internal/lanes"
)

// getMaxRSS returns the maximum resident set size in bytes.
// Uses getrusage(RUSAGE_SELF) which tracks peak RSS since process start.
func getMaxRSS() uint64 {
	var rusage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &rusage); err != nil {
		return 0
	}
	// On macOS, MaxRss is in bytes. On Linux, it's in kilobytes.
	maxRSS := uint64(rusage.Maxrss)
	if runtime.GOOS == "linux" {
		maxRSS *= 1024 // Convert KB to bytes on Linux
	}
	return maxRSS
}

// peakSampler tracks peak heap and RSS on a 10ms ticker. Uses runtime/metrics
// instead of ReadMemStats to avoid stop-the-world pauses.
type peakSampler struct {
	heap atomic.Uint64
	rss  atomic.Uint64
	done chan struct{}
}

func startPeakSampler() *peakSampler {
	p := &peakSampler{done: make(chan struct{})}
	go func() {
		samples := []metrics.Sample{{Name: "/memory/classes/heap/objects:bytes"}}
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-p.done:
				return
			case <-ticker.C:
				metrics.Read(samples)
				storeMax(&p.heap, samples[0].Value.Uint64())
				storeMax(&p.rss, getMaxRSS())
			}
		}
	}()
	return p
}

func (p *peakSampler) stop() { close(p.done) }

func storeMax(v *atomic.Uint64, n uint64) {
	for {
		old := v.Load()
		if n <= old || v.CompareAndSwap(old, n) {
			return
		}
	}
}

func parseWorkers(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("worker count %q: %w", f, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// murmurBaseline hashes the same consecutive keys with murmur3 on one core,
// as a floor for the cost of key enumeration alone.
func murmurBaseline(start []byte, n uint64) time.Duration {
	key := append([]byte(nil), start...)
	seed := uint32(0x1234)
	began := time.Now()
	for range n {
		murmur3.Sum128WithSeed(key, seed)
		intbits.Add(key, 1)
	}
	return time.Since(began)
}

func main() {
	app := cli.NewApp()
	app.Name = "bench"
	app.Usage = "measure keysweep throughput"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.Uint64Flag{Name: "hashes", Value: 1 << 24, Usage: "hashes per run"},
		cli.StringFlag{Name: "variant", Value: "ripemd160", Usage: "ripemd160 or sha256"},
		cli.StringFlag{Name: "workers", Value: fmt.Sprintf("1,2,4,%d", runtime.NumCPU()), Usage: "comma-separated worker counts"},
		cli.StringFlag{Name: "cpuprofile", Usage: "write cpu profile to file (sweeps only)"},
	}
	app.Action = run
	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func run(c *cli.Context) error {
	v, err := keysweep.ParseVariant(c.String("variant"))
	if err != nil {
		return err
	}
	workers, err := parseWorkers(c.String("workers"))
	if err != nil {
		return err
	}
	n := c.Uint64("hashes")
	start := keysweep.DefaultStartKey(v)

	logrus.WithFields(logrus.Fields{
		"variant":      v,
		"hashes":       n,
		"accelerators": strings.Join(lanes.Accelerators(), ","),
	}).Info("starting benchmark")

	if err := keysweep.SelfTest(v); err != nil {
		return err
	}

	fmt.Println("Hashing keys with murmur3 baseline...")
	baseline := murmurBaseline(start, n)

	if path := c.String("cpuprofile"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	runtime.GC()
	baselineRSS := getMaxRSS()
	sampler := startPeakSampler()
	sampler.rss.Store(baselineRSS)

	type row struct {
		workers int
		res     *keysweep.Result
	}
	var rows []row
	for _, w := range workers {
		fmt.Printf("Sweeping with %d workers...\n", w)
		res, err := keysweep.Run(context.Background(), n,
			keysweep.WithVariant(v), keysweep.WithWorkers(w), keysweep.WithStartKey(start))
		if err != nil {
			logrus.WithError(err).WithField("workers", w).Warn("skipping worker count")
			continue
		}
		rows = append(rows, row{w, res})
	}
	sampler.stop()

	fmt.Printf("\n")
	fmt.Printf("╔═════════════════════╦════════════════╦══════════════════╗\n")
	fmt.Printf("║ Variant: %-11s║ Hashes: %-7s║                  ║\n", v, humanCount(n))
	fmt.Printf("╠═════════════════════╬════════════════╬══════════════════╣\n")
	fmt.Printf("║ Workers             ║ Throughput     ║ Latency          ║\n")
	fmt.Printf("╠═════════════════════╬════════════════╬══════════════════╣\n")
	fmt.Printf("║ murmur3 (1 core)    ║ %6.2f M/sec   ║ %6.2f ns/hash   ║\n",
		float64(n)/baseline.Seconds()/1_000_000, float64(baseline.Nanoseconds())/float64(n))
	for _, r := range rows {
		fmt.Printf("║ %-19d ║ %6.2f M/sec   ║ %6.2f ns/hash   ║\n",
			r.workers, r.res.HashesPerSecond()/1_000_000, r.res.NsPerHash())
	}
	fmt.Printf("║ Peak heap memory    ║ %6.1f MB      ║ -                ║\n", float64(sampler.heap.Load())/1_000_000)
	fmt.Printf("║ Peak RSS memory     ║ %6.1f MB      ║ -                ║\n", float64(sampler.rss.Load()-baselineRSS)/1_000_000)
	fmt.Printf("╚═════════════════════╩════════════════╩══════════════════╝\n")
	return nil
}

func humanCount(n uint64) string {
	switch {
	case n >= 1<<30 && n%(1<<30) == 0:
		return fmt.Sprintf("%dGi", n>>30)
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMi", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKi", n>>10)
	}
	return strconv.FormatUint(n, 10)
}
