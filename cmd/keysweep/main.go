// Keysweep hashes a contiguous range of fixed-width keys in parallel and
// reports each worker's last key and digest along with throughput.
//
// Usage:
//
//	keysweep -c 1048576 -t 8 -s
//	keysweep --variant sha256 -i 0x1 --report run.ksr
//	keysweep --test
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
