package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/tamirms/keysweep"
	"github.com/tamirms/keysweep/internal/lanes"
)

// sweepFlags are the options that configure a sweep and so conflict with --test.
var sweepFlags = []string{"count", "threads", "save", "initial-key", "out", "report", "cpuprofile"}

var errTestWithSweepFlags = errors.New("--test cannot be combined with sweep options")

func newApp(w io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "keysweep"
	app.Usage = "hash a contiguous key range in parallel and report throughput"
	app.Description = "Keys are big-endian integers: the last hex digit changes fastest.\n" +
		"   Last keys in last_hashes.txt differ from generators that increment from byte 0."
	app.HideVersion = true
	app.Writer = w

	app.Flags = []cli.Flag{
		cli.Uint64Flag{
			Name:   "count, c",
			Usage:  "number of hashes, a positive multiple of 8 divisible by the thread count",
			Value:  128,
			EnvVar: "KEYSWEEP_COUNT",
		},
		cli.IntFlag{
			Name:   "threads, t",
			Usage:  "number of worker threads",
			Value:  runtime.NumCPU(),
			EnvVar: "KEYSWEEP_THREADS",
		},
		cli.BoolFlag{
			Name:   "save, s",
			Usage:  "save each thread's last key and hash to --out",
			EnvVar: "KEYSWEEP_SAVE",
		},
		cli.StringFlag{
			Name:   "initial-key, i",
			Usage:  "initial key in hex, left-padded with zeros",
			EnvVar: "KEYSWEEP_INITIAL_KEY",
		},
		cli.BoolFlag{
			Name:   "test",
			Usage:  "run the known-answer tests and exit",
			EnvVar: "KEYSWEEP_TEST",
		},
		cli.StringFlag{
			Name:   "variant",
			Usage:  "hash variant: ripemd160 or sha256",
			Value:  keysweep.VariantRIPEMD160.String(),
			EnvVar: "KEYSWEEP_VARIANT",
		},
		cli.StringFlag{
			Name:   "out",
			Usage:  "text summary path used by --save",
			Value:  "last_hashes.txt",
			EnvVar: "KEYSWEEP_OUT",
		},
		cli.StringFlag{
			Name:   "report",
			Usage:  "write a binary run report to this path",
			EnvVar: "KEYSWEEP_REPORT",
		},
		cli.StringFlag{
			Name:   "log, l",
			Usage:  "log level: debug,info,warning,error",
			Value:  "info",
			EnvVar: "KEYSWEEP_LOG",
		},
		cli.StringFlag{
			Name:   "cpuprofile",
			Usage:  "write a cpu profile of the sweep to this path",
			EnvVar: "KEYSWEEP_CPUPROFILE",
		},
	}

	app.Before = func(c *cli.Context) error {
		lv, err := logrus.ParseLevel(c.String("log"))
		if err != nil {
			return err
		}
		logrus.SetLevel(lv)
		if c.App.ErrWriter != nil {
			logrus.SetOutput(c.App.ErrWriter)
		}
		return nil
	}

	app.Action = func(c *cli.Context) error {
		if c.Bool("test") {
			for _, name := range sweepFlags {
				if c.IsSet(name) {
					return fmt.Errorf("%w: --%s", errTestWithSweepFlags, name)
				}
			}
			return runSelfTest(c)
		}
		return runSweep(c)
	}
	return app
}

// runSelfTest checks the selected variant, or every variant when none was
// chosen, against its known answers.
func runSelfTest(c *cli.Context) error {
	variants := []keysweep.VariantID{keysweep.VariantRIPEMD160, keysweep.VariantSHA256}
	if c.IsSet("variant") {
		v, err := keysweep.ParseVariant(c.String("variant"))
		if err != nil {
			return err
		}
		variants = []keysweep.VariantID{v}
	}

	failed := 0
	for _, v := range variants {
		for _, ka := range keysweep.KnownAnswers(v) {
			key, err := keysweep.ParseKey(v, ka.Key)
			if err != nil {
				return err
			}
			digest, err := keysweep.HashKey(v, key)
			if err != nil {
				return err
			}
			if got := keysweep.FormatKey(digest); got != ka.Digest {
				failed++
				fmt.Fprintf(c.App.Writer, "Test failed for input: %s\n  Expected: %s\n  Got:      %s\n", ka.Key, ka.Digest, got)
				continue
			}
			fmt.Fprintf(c.App.Writer, "Test passed for input: %s\n", ka.Key)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d known-answer tests failed", failed)
	}
	return nil
}

func runSweep(c *cli.Context) error {
	v, err := keysweep.ParseVariant(c.String("variant"))
	if err != nil {
		return err
	}
	start := keysweep.DefaultStartKey(v)
	if s := c.String("initial-key"); s != "" {
		if start, err = keysweep.ParseKey(v, s); err != nil {
			return err
		}
	}
	threads := c.Int("threads")

	if path := c.String("cpuprofile"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create cpu profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	logrus.WithFields(logrus.Fields{
		"variant":      v,
		"threads":      threads,
		"start":        keysweep.FormatKey(start),
		"accelerators": strings.Join(lanes.Accelerators(), ","),
	}).Info("starting sweep")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(c.App.Writer, "Number of threads                  : %d\n", threads)
	res, err := keysweep.Run(ctx, c.Uint64("count"),
		keysweep.WithVariant(v),
		keysweep.WithWorkers(threads),
		keysweep.WithStartKey(start))
	if err != nil {
		return err
	}

	if c.Bool("save") {
		if err := saveText(c.String("out"), res); err != nil {
			return err
		}
		logrus.WithField("path", c.String("out")).Info("saved last keys and hashes")
	}
	if path := c.String("report"); path != "" {
		if err := keysweep.WriteReport(path, res); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"path":  path,
			"runID": fmt.Sprintf("%016x", res.RunID()),
		}).Info("wrote run report")
	}

	fmt.Fprintf(c.App.Writer, "Total execution time      (seconds): %.2f\n", res.Duration.Seconds())
	fmt.Fprintf(c.App.Writer, "Average time per hash (nanoseconds): %.2f\n", res.NsPerHash())
	return nil
}

func saveText(path string, res *keysweep.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := res.WriteText(f); err != nil {
		return errors.Join(fmt.Errorf("write %s: %w", path, err), f.Close())
	}
	return f.Close()
}
