// Command ir-sim generates synthetic wand telemetry, either written
// straight to a capture file for later replay or paced onto stdout.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/banshee-data/irview/internal/ir"
)

func main() {
	output := flag.String("o", "", "output path (default: stdout)")
	count := flag.Int("n", 500, "number of lines")
	rate := flag.Float64("rate", 0, "lines per second, 0 writes without pacing")
	blobs := flag.Int("blobs", ir.NumSlots, "number of lit points, up to 4")
	flag.Parse()

	gen := ir.NewSyntheticGenerator()
	gen.BlobCount = *blobs

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("create %s: %v", *output, err)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	defer w.Flush()

	var interval time.Duration
	if *rate > 0 {
		interval = time.Duration(float64(time.Second) / *rate)
	}

	log.Printf("generating %d lines (%s)", *count, gen)
	for i := 0; i < *count; i++ {
		fmt.Fprintln(w, gen.NextLine())
		if interval > 0 {
			// pacing implies a live consumer, so flush per line
			w.Flush()
			time.Sleep(interval)
		}
		if *output != "" && (i+1)%1000 == 0 {
			log.Printf("%d/%d lines", i+1, *count)
		}
	}
	if *output != "" {
		log.Printf("wrote %d lines to %s", *count, *output)
	}
}
