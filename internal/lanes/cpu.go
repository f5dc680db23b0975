package lanes

import "golang.org/x/sys/cpu"

// Accelerators lists the SIMD and hashing extensions detected on this CPU.
// Informational only; the command line tools log it next to throughput.
func Accelerators() []string {
	var feats []string
	if cpu.X86.HasSSE41 {
		feats = append(feats, "sse4.1")
	}
	if cpu.X86.HasAVX2 {
		feats = append(feats, "avx2")
	}
	if cpu.X86.HasAVX512F {
		feats = append(feats, "avx512f")
	}
	if cpu.ARM64.HasASIMD {
		feats = append(feats, "asimd")
	}
	if cpu.ARM64.HasSHA2 {
		feats = append(feats, "sha2")
	}
	return feats
}
