package keysweep

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cespare/xxhash/v2"
)

func benchmarkRunN(b *testing.B, v VariantID, n uint64, workers int) {
	ctx := context.Background()
	start := DefaultStartKey(v)

	b.ResetTimer()
	b.ReportAllocs()
	for b.Loop() {
		if _, err := Run(ctx, n, WithVariant(v), WithWorkers(workers), WithStartKey(start)); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportMetric(float64(n)*float64(b.N)/b.Elapsed().Seconds(), "hashes/sec")
}

func BenchmarkRunRIPEMD160_64K(b *testing.B) { benchmarkRunN(b, VariantRIPEMD160, 1<<16, 1) }
func BenchmarkRunSHA256_64K(b *testing.B)    { benchmarkRunN(b, VariantSHA256, 1<<16, 1) }

func BenchmarkRunParallel(b *testing.B) {
	for _, v := range []VariantID{VariantRIPEMD160, VariantSHA256} {
		for _, w := range []int{1, 2, 4, runtime.NumCPU()} {
			total := uint64(1 << 18)
			if total%uint64(w*8) != 0 {
				continue
			}
			b.Run(fmt.Sprintf("%s/workers=%d", v, w), func(b *testing.B) {
				benchmarkRunN(b, v, total, w)
			})
		}
	}
}

// ============================================================================
// Micro benchmarks
// ============================================================================

func BenchmarkBatch(b *testing.B) {
	for _, v := range []VariantID{VariantRIPEMD160, VariantSHA256} {
		b.Run(v.String(), func(b *testing.B) {
			h, err := newHasher(v)
			if err != nil {
				b.Fatal(err)
			}
			bt := newBatch(h, v.KeySize())
			running := DefaultStartKey(v)
			sum := xxhash.New()

			b.ReportAllocs()
			for b.Loop() {
				bt.fill(running)
				bt.hash()
				bt.fold(sum)
			}
			b.ReportMetric(8*float64(b.N)/b.Elapsed().Seconds(), "hashes/sec")
		})
	}
}

func BenchmarkPartition(b *testing.B) {
	base := DefaultStartKey(VariantSHA256)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := Partition(base, 1<<30, 64); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWriteReport(b *testing.B) {
	res, err := Run(context.Background(), 1<<12, WithWorkers(16))
	if err != nil {
		b.Fatal(err)
	}
	path := filepath.Join(b.TempDir(), "bench.ksr")

	b.ResetTimer()
	b.ReportAllocs()
	for b.Loop() {
		if err := WriteReport(path, res); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReportVerify(b *testing.B) {
	res, err := Run(context.Background(), 1<<12, WithWorkers(16))
	if err != nil {
		b.Fatal(err)
	}
	path := filepath.Join(b.TempDir(), "bench.ksr")
	if err := WriteReport(path, res); err != nil {
		b.Fatal(err)
	}
	rep, err := OpenReport(path)
	if err != nil {
		b.Fatal(err)
	}
	defer rep.Close()

	b.ResetTimer()
	b.ReportAllocs()
	for b.Loop() {
		if err := rep.Verify(); err != nil {
			b.Fatal(err)
		}
	}
}
