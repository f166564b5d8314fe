package serialmux

import (
	"bufio"
	"fmt"
	"io"
	"testing"
	"time"
)

func TestDemoPort_StreamsGeneratedLines(t *testing.T) {
	n := 0
	port := NewDemoPort(func() string {
		n++
		return fmt.Sprintf("line-%d", n)
	}, 1000)
	defer port.Close()

	scan := bufio.NewScanner(port)
	for i := 1; i <= 5; i++ {
		if !scan.Scan() {
			t.Fatalf("scan stopped early: %v", scan.Err())
		}
		want := fmt.Sprintf("line-%d", i)
		if scan.Text() != want {
			t.Errorf("line = %q, want %q", scan.Text(), want)
		}
	}
}

func TestDemoPort_CloseStopsStream(t *testing.T) {
	port := NewDemoPort(func() string { return "tick" }, 1000)

	if err := port.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	buf := make([]byte, 64)
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, err := port.Read(buf); err == io.EOF {
			return
		}
	}
	t.Error("Read did not reach EOF after Close")
}
