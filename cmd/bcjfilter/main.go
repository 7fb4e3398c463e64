// Command bcjfilter runs one BCJ architecture filter over a file, end to
// end, in a single process: read, encode or decode in fixed-size chunks,
// flush, write. It exists to exercise the bcj façade from the command line,
// not as a general compression tool (spec.md §1's "out of scope" I/O
// plumbing lives here, not in package bcj).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Urethramancer/bcj/bcj"
)

var (
	arch      = flag.String("arch", "x86", "Architecture: x86, arm, armt, ppc, sparc, ia64.")
	direction = flag.String("dir", "encode", "Direction: encode or decode.")
	chunkSize = flag.Int("chunk", 8192, "Chunk size in bytes to feed the codec.")
	totalLen  = flag.Int64("total", -1, "Expected decoded output length; required for decode.")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if flag.NArg() != 2 {
		log.Println("Usage: bcjfilter [options] <input> <output>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	inPath, outPath := flag.Arg(0), flag.Arg(1)

	data, err := os.ReadFile(inPath)
	if err != nil {
		log.Fatalf("Couldn't read input file: %v", err)
	}

	out, err := run(*arch, *direction, data, *chunkSize, *totalLen)
	if err != nil {
		log.Fatalf("Filter failed: %v", err)
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		log.Fatalf("Couldn't write output file: %v", err)
	}

	log.Printf("Wrote %d bytes to %s", len(out), outPath)
}

func run(arch_, dir string, data []byte, chunk int, total int64) ([]byte, error) {
	if dir == "encode" {
		enc, err := newEncoder(arch_)
		if err != nil {
			return nil, err
		}
		return encodeAll(enc, data, chunk)
	}

	if total < 0 {
		return nil, fmt.Errorf("decode requires -total (expected output length)")
	}
	dec, err := newDecoder(arch_, total)
	if err != nil {
		return nil, err
	}
	return decodeAll(dec, data, chunk)
}

func newEncoder(arch_ string) (bcj.Encoder, error) {
	switch arch_ {
	case "x86":
		return bcj.BCJEncoder(), nil
	case "arm":
		return bcj.ARMEncoder(), nil
	case "armt":
		return bcj.ARMTEncoder(), nil
	case "ppc":
		return bcj.PPCEncoder(), nil
	case "sparc":
		return bcj.SparcEncoder(), nil
	case "ia64":
		return bcj.IA64Encoder(), nil
	default:
		return nil, fmt.Errorf("unknown architecture %q", arch_)
	}
}

func newDecoder(arch_ string, total int64) (bcj.Decoder, error) {
	switch arch_ {
	case "x86":
		return bcj.BCJDecoder(total)
	case "arm":
		return bcj.ARMDecoder(total)
	case "armt":
		return bcj.ARMTDecoder(total)
	case "ppc":
		return bcj.PPCDecoder(total)
	case "sparc":
		return bcj.SparcDecoder(total)
	case "ia64":
		return bcj.IA64Decoder(total)
	default:
		return nil, fmt.Errorf("unknown architecture %q", arch_)
	}
}

func encodeAll(enc bcj.Encoder, data []byte, chunk int) ([]byte, error) {
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		n := chunk
		if n > len(data) {
			n = len(data)
		}
		piece, err := enc.Encode(data[:n])
		if err != nil {
			return nil, err
		}
		out = append(out, piece...)
		data = data[n:]
	}
	out = append(out, enc.Flush()...)
	return out, nil
}

func decodeAll(dec bcj.Decoder, data []byte, chunk int) ([]byte, error) {
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		n := chunk
		if n > len(data) {
			n = len(data)
		}
		piece, err := dec.Decode(data[:n])
		if err != nil {
			return nil, err
		}
		out = append(out, piece...)
		data = data[n:]
	}
	out = append(out, dec.Flush()...)
	return out, nil
}
