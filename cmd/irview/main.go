// Command irview renders live IR wand telemetry from a serial port as a
// terminal display, with capture replay and a synthetic demo mode for
// working without hardware.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"

	"github.com/banshee-data/irview/internal/diag"
	"github.com/banshee-data/irview/internal/export"
	"github.com/banshee-data/irview/internal/ir"
	"github.com/banshee-data/irview/internal/scene"
	"github.com/banshee-data/irview/internal/serialmux"
	"github.com/banshee-data/irview/internal/timeutil"
	"github.com/banshee-data/irview/internal/version"
	"github.com/banshee-data/irview/internal/view"
)

var (
	portFlag    = flag.String("port", defaultPort(), "serial port device")
	baudFlag    = flag.Int("baud", 115200, "serial baud rate")
	widthFlag   = flag.Int("width", 1024, "sensor width in pixels")
	heightFlag  = flag.Int("height", 768, "sensor height in pixels")
	trailFlag   = flag.Int("trail", scene.DefaultTrailLen, "trail length kept per point")
	replayFlag  = flag.String("replay", "", "replay a capture file instead of opening a port")
	rateFlag    = flag.Float64("replay-rate", serialmux.DefaultReplayRate, "replay speed in lines per second")
	loopFlag    = flag.Bool("loop", false, "loop the replay file until quit")
	demoFlag    = flag.Bool("demo", false, "render synthetic wand data, no hardware needed")
	echoFlag    = flag.Bool("echo", false, "copy every raw serial line to the debug log")
	snapshotDir = flag.String("snapshot-dir", "snapshots", "directory for snapshot artefacts")
	logFile     = flag.String("log-file", "", "append debug logs to this file (default: discard)")
	settleFlag  = flag.Duration("settle", serialmux.DefaultSettleWait, "wait after opening the port before reading")
	showVersion = flag.Bool("version", false, "print version and exit")
)

// defaultPort guesses the usual device name for the wand's USB CDC
// interface on each platform.
func defaultPort() string {
	switch runtime.GOOS {
	case "windows":
		return "COM4"
	case "darwin":
		return "/dev/cu.usbmodem01"
	default:
		return "/dev/ttyACM0"
	}
}

// setupLogging routes the standard logger away from the terminal the
// display owns. Without a log file everything is discarded.
func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		diag.SetLogger(nil)
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	diag.SetLogger(log.Printf)
	return f, nil
}

// openInput picks the line source: a live serial port by default, a
// capture replay with -replay, or the synthetic generator with -demo.
// It prints a diagnosis and exits when the source cannot be opened.
func openInput() (serialmux.SerialPorter, string) {
	switch {
	case *demoFlag:
		gen := ir.NewSyntheticGenerator()
		return serialmux.NewDemoPort(gen.NextLine, serialmux.DefaultDemoRate), "demo (synthetic wand)"

	case *replayFlag != "":
		port, err := serialmux.NewReplayPort(*replayFlag, *rateFlag, *loopFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		label := "replay " + filepath.Base(*replayFlag)
		if *loopFlag {
			label += " (loop)"
		}
		return port, label

	default:
		opts := serialmux.PortOptions{BaudRate: *baudFlag}
		fmt.Printf("Connecting to %s at %d baud...\n", *portFlag, *baudFlag)
		port, err := serialmux.NewRealPort(*portFlag, opts)
		if err != nil {
			reportPortFailure(*portFlag, err)
			os.Exit(1)
		}
		fmt.Println("Connected! Waiting for data...")
		if err := serialmux.SettlePort(timeutil.RealClock{}, port, *settleFlag); err != nil {
			diag.Logf("settle: %v", err)
		}
		return port, fmt.Sprintf("%s %s", *portFlag, opts.String())
	}
}

// reportPortFailure lists candidate devices so the user can spot the
// right one without leaving the terminal.
func reportPortFailure(device string, err error) {
	fmt.Printf("Error: Could not open serial port %s\n", device)
	fmt.Printf("Details: %v\n", err)
	fmt.Println("\nAvailable ports:")
	ports, enumErr := serialmux.EnumeratePorts()
	if enumErr != nil || len(ports) == 0 {
		fmt.Println("  (none found)")
		return
	}
	for _, p := range ports {
		fmt.Printf("  %s: %s\n", p.Device, p.Description)
	}
}

// summaryLines builds the end-of-run report printed once the terminal
// is back in normal mode.
func summaryLines(sc *scene.Scene, session *export.Session) []string {
	lines := []string{fmt.Sprintf("Lines: %d  frames: %d  rejected: %d  messages: %d",
		sc.LinesSeen, sc.FramesIngested, sc.FramesRejected, sc.MessagesSeen)}
	for slot := 0; slot < ir.NumSlots; slot++ {
		s := sc.SlotStats(slot)
		if s.Count == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("Point %d: %d samples, mean (%.1f, %.1f), jitter %.2f px",
			slot+1, s.Count, s.MeanX, s.MeanY, s.Jitter))
	}
	if session.Snapshots() > 0 {
		lines = append(lines, fmt.Sprintf("Snapshots: %d in %s (session %s)",
			session.Snapshots(), session.Dir, session.Short()))
	}
	return lines
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *widthFlag <= 0 || *heightFlag <= 0 {
		log.Fatal("sensor dimensions must be positive")
	}
	if *demoFlag && *replayFlag != "" {
		log.Fatal("choose either -demo or -replay, not both")
	}

	logCloser, err := setupLogging(*logFile)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	sc := scene.NewScene(*widthFlag, *heightFlag, *trailFlag)
	session := export.NewSession(*snapshotDir)

	port, label := openInput()

	mux := serialmux.NewLineMux(port)
	defer mux.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// run the monitor routine to manage IO on the serial port
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := mux.Monitor(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			diag.Logf("serial monitor stopped: %v", err)
		}
	}()

	// mirror every raw line into the debug log on a second subscription
	if *echoFlag {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, c := mux.Subscribe()
			defer mux.Unsubscribe(id)
			for {
				select {
				case line, ok := <-c:
					if !ok {
						return
					}
					diag.Logf("serial: %s", line)
				case <-runCtx.Done():
					return
				}
			}
		}()
	}

	id, lines := mux.Subscribe()
	defer mux.Unsubscribe(id)

	screen, err := view.NewTerminalScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not initialise terminal: %v\n", err)
		os.Exit(1)
	}
	app, err := view.NewApp(screen, view.Config{
		Scene:     sc,
		Lines:     lines,
		Session:   session,
		PortLabel: label,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runErr := app.Run(runCtx)
	app.Finish()
	cancel()
	if err := mux.Close(); err != nil {
		diag.Logf("close: %v", err)
	}
	wg.Wait()

	if errors.Is(runErr, context.Canceled) {
		fmt.Println("\nClosing...")
	} else if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
	}

	for _, line := range summaryLines(sc, session) {
		fmt.Println(line)
	}
	fmt.Println("Done!")
}
