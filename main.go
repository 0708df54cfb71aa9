package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"pedalshaper/internal/console"
	"pedalshaper/internal/hub"
	"pedalshaper/internal/pedals"
	"pedalshaper/internal/profile"
	"pedalshaper/internal/server"
	"pedalshaper/internal/tray"
	"pedalshaper/internal/vjoy"
)

// Cross-platform signal handling: use os.Interrupt on all platforms
// On Windows: os.Interrupt is sent when Ctrl+C is pressed
// On Unix: os.Interrupt is equivalent to syscall.SIGINT
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	hasConsole := console.IsRunningFromConsole()

	configPath := pflag.String("config", "pedalshaper.yaml", "profile file path")
	listen := pflag.String("listen", "", "listen address override (e.g. :8090)")
	simulate := pflag.Bool("simulate", false, "run against the in-memory device, no vJoy required")
	rate := pflag.Int("rate", 0, "polling rate override in Hz")
	pflag.Parse()

	store := profile.NewStore(*configPath)
	prof, err := store.Load()
	if err != nil {
		log.Fatalf("Profile load failed: %v", err)
	}
	if pflag.CommandLine.Changed("listen") {
		prof.Listen = *listen
	}
	if pflag.CommandLine.Changed("simulate") {
		prof.Simulate = *simulate
	}
	if pflag.CommandLine.Changed("rate") {
		prof.Rate = *rate
	}

	// Per-pedal calibration models, loaded from the profile.
	curves := pedals.NewCurveSet()
	profile.Apply(prof, curves)

	// Virtual device: acquisition is fail-fast, and the busy/missing
	// distinction matters to the user, so the error is reported verbatim.
	deviceLog := log.Default()
	var device *vjoy.Device
	if prof.Simulate {
		device = vjoy.OpenSimulated(deviceLog)
	} else {
		device, err = vjoy.Open(vjoy.NewDriver(), deviceLog)
		if err != nil {
			log.Fatalf("Virtual device unavailable: %v", err)
		}
	}
	defer device.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	// Native Ctrl+C handler for Windows; SDL replaces console handlers
	// during init, so re-register once the reader is up.
	consoleCh := make(chan struct{})
	reRegister := console.SetupConsoleHandler(consoleCh)

	reader := pedals.NewReader(curves, device, prof.AxisMap(), prof.Rate)

	h := hub.NewHub()
	go h.Run()

	editor := newCalibration(curves, store, prof)
	broadcaster := hub.NewBroadcaster(h, reader.Changes(), editor)
	go broadcaster.Run()

	srv := server.New(h, broadcaster, editor, getFrontendFS(), prof.Listen)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	url := "http://localhost" + prof.Listen
	log.Printf("PedalShaper started: %s", url)

	shutdownRequested := make(chan struct{})
	if runtime.GOOS == "windows" && !hasConsole {
		go func() {
			t := tray.New(url, func() {
				close(shutdownRequested)
			})
			t.Run(tray.GetIcon())
		}()
	} else {
		log.Println("Press Ctrl+C to exit")
	}

	readerDone := make(chan struct{})
	readerErrCh := make(chan error, 1)
	go func() {
		if err := reader.Run(ctx); err != nil {
			readerErrCh <- err
		}
		close(readerDone)
	}()

	go func() {
		// Give SDL time to finish init before re-registering the handler.
		time.Sleep(2 * time.Second)
		reRegister()
	}()

	select {
	case <-sigCh:
		log.Println("Shutting down...")
		cancel()
	case <-consoleCh:
		log.Println("Console close requested")
		cancel()
	case <-shutdownRequested:
		log.Println("Shutdown requested from tray")
		cancel()
	case err := <-serverErrCh:
		log.Printf("HTTP server error: %v", err)
		cancel()
	case err := <-readerErrCh:
		// Fall through to the ordered shutdown so the virtual device is
		// still relinquished.
		log.Printf("Pedal reader failed: %v", err)
		cancel()
	}

	// The reader must stop ticking before the device goes away.
	<-readerDone
	device.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("PedalShaper stopped")
}
