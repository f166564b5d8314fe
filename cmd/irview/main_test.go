package main

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/irview/internal/export"
	"github.com/banshee-data/irview/internal/scene"
)

func TestSummaryLines_EmptyScene(t *testing.T) {
	sc := scene.NewScene(1024, 768, 0)
	session := export.NewSession(t.TempDir())

	got := summaryLines(sc, session)
	want := []string{"Lines: 0  frames: 0  rejected: 0  messages: 0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summaryLines mismatch (-want +got):\n%s", diff)
	}
}

func TestSummaryLines_WithTelemetry(t *testing.T) {
	sc := scene.NewScene(1024, 768, 0)
	sc.IngestLine("IR,1,100,200,5,-1,-1,0,-1,-1,0,-1,-1,0")
	sc.IngestLine("IR,2,100,200,5,-1,-1,0,-1,-1,0,-1,-1,0")
	sc.IngestLine("Button pressed")
	session := export.NewSession(t.TempDir())

	got := summaryLines(sc, session)
	want := []string{
		"Lines: 3  frames: 2  rejected: 0  messages: 1",
		"Point 1: 2 samples, mean (100.0, 200.0), jitter 0.00 px",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summaryLines mismatch (-want +got):\n%s", diff)
	}
}

func TestSummaryLines_CountsSnapshots(t *testing.T) {
	sc := scene.NewScene(1024, 768, 0)
	sc.IngestLine("IR,1,10,20,5,-1,-1,0,-1,-1,0,-1,-1,0")
	session := export.NewSession(t.TempDir())
	if _, _, err := session.WriteSnapshot(sc); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	got := summaryLines(sc, session)
	if len(got) != 3 {
		t.Fatalf("expected 3 summary lines, got %d: %v", len(got), got)
	}
	want := fmt.Sprintf("Snapshots: 1 in %s (session %s)", session.Dir, session.Short())
	if got[2] != want {
		t.Errorf("expected %q, got %q", want, got[2])
	}
}

func TestDefaultPort(t *testing.T) {
	if defaultPort() == "" {
		t.Error("expected a platform default port")
	}
}
