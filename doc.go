// Package keysweep enumerates a contiguous range of fixed-width keys across
// parallel workers and feeds them, eight at a time, into an 8-lane hash
// primitive, reporting the last key and digest of every worker together with
// throughput statistics.
//
// # Basic Usage
//
// Sweeping 2^20 RIPEMD-160 keys on 8 workers:
//
//	start, err := keysweep.ParseKey(keysweep.VariantRIPEMD160, "1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := keysweep.Run(ctx, 1<<20,
//	    keysweep.WithWorkers(8),
//	    keysweep.WithStartKey(start))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%.2f ns/hash\n", res.NsPerHash())
//
// Persisting and re-reading the run summary:
//
//	if err := keysweep.WriteReport("run.ksw", res); err != nil {
//	    log.Fatal(err)
//	}
//	rep, err := keysweep.OpenReport("run.ksw")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rep.Close()
//	if err := rep.Verify(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Key Order
//
// Keys are unsigned integers stored big-endian: byte 0 is the most
// significant. The hex form accepted by ParseKey and printed by FormatKey is
// therefore the numeric value. Consecutive keys differ in the last byte, so
// last keys printed for a range differ from tools that count from byte 0.
//
// # Package Structure
//
//   - Public API: sweep.go (Run), partition.go (Partition, Share)
//   - Configuration: options.go (Option, With* functions), variant.go (VariantID)
//   - Keys: key.go (ParseKey, FormatKey, DefaultStartKey)
//   - Batching: batch.go (8-lane batch assembly)
//   - Results: result.go (Result, WorkerResult), runid.go (RunID)
//   - Self test: selftest.go (KnownAnswers, SelfTest)
//   - Reports: report_header.go, report_writer.go, report.go
//   - Counter arithmetic: internal/bits/
//   - Hash primitives: internal/lanes/
//   - Platform: fallocate_*.go, prefault_*.go, fadvise_*.go (OS-specific optimizations)
package keysweep
