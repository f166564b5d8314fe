// Package testutil provides shared telemetry fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/banshee-data/irview/internal/ir"
)

// FrameLine builds a wire-format camera line: the IR tag, a timestamp,
// and four (x, y, size) groups in slot order. Slots without a supplied
// point are marked absent.
func FrameLine(ts int64, pts ...ir.Point) string {
	var bySlot [ir.NumSlots]*ir.Point
	for i := range pts {
		p := pts[i]
		if p.Slot >= 0 && p.Slot < ir.NumSlots {
			bySlot[p.Slot] = &p
		}
	}

	fields := make([]string, 0, 14)
	fields = append(fields, "IR", strconv.FormatInt(ts, 10))
	for slot := 0; slot < ir.NumSlots; slot++ {
		p := bySlot[slot]
		if p == nil {
			fields = append(fields, "-1", "-1", "0")
			continue
		}
		fields = append(fields, strconv.Itoa(p.X), strconv.Itoa(p.Y), strconv.Itoa(p.Size))
	}
	return strings.Join(fields, ",")
}

// WriteCapture writes lines to a capture file under a test temp dir and
// returns its path.
func WriteCapture(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("write capture: %v", err)
	}
	return path
}
