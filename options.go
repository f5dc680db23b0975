package keysweep

import "runtime"

// Option is a functional option for configuring a sweep.
type Option func(*config)

type config struct {
	workers  int
	variant  VariantID
	startKey []byte // nil selects DefaultStartKey(variant)
}

func defaultConfig() *config {
	return &config{
		workers: runtime.GOMAXPROCS(0),
		variant: VariantRIPEMD160,
	}
}

// WithWorkers sets the number of parallel workers. The hash count must be
// divisible by n, and each share must be a multiple of 8.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithVariant selects the hash variant. Default is VariantRIPEMD160.
func WithVariant(v VariantID) Option {
	return func(c *config) {
		c.variant = v
	}
}

// WithStartKey sets the first key of the range. Its length must equal the
// variant's KeySize. The key is copied, so the caller can reuse the slice.
func WithStartKey(key []byte) Option {
	k := append([]byte(nil), key...)
	return func(c *config) {
		c.startKey = k
	}
}
