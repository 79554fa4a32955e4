// Command blackhole runs the hand-tracked black hole visual: a webcam
// drives an orbital camera around the event horizon, pinching dives in,
// spawns probes and swells the drone. When the camera path fails the
// visual falls back to mouse input.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sarkar13aditya/black-hole-chill/internal/audio"
	"github.com/sarkar13aditya/black-hole-chill/internal/capture"
	"github.com/sarkar13aditya/black-hole-chill/internal/config"
	"github.com/sarkar13aditya/black-hole-chill/internal/detector"
	"github.com/sarkar13aditya/black-hole-chill/internal/input"
	"github.com/sarkar13aditya/black-hole-chill/internal/log"
	"github.com/sarkar13aditya/black-hole-chill/internal/probe"
	"github.com/sarkar13aditya/black-hole-chill/internal/rig"
	"github.com/sarkar13aditya/black-hole-chill/internal/scene"
	"github.com/sarkar13aditya/black-hole-chill/internal/server"
	"github.com/sarkar13aditya/black-hole-chill/internal/store"
	"github.com/sarkar13aditya/black-hole-chill/internal/tray"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "control server listen address")
		cameraID   = flag.Int("camera", -1, "webcam device index (-1 uses the stored setting)")
		headless   = flag.Bool("headless", false, "run without a window, controlled from the system tray")
		strict     = flag.Bool("strict", false, "treat camera or model failure as fatal instead of falling back to mouse input")
		motionGate = flag.Bool("motion-gate", false, "skip hand inference on frames with no motion")
		logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	log.Init(*logLevel)

	cfg := config.DefaultConfig()
	cfg.Addr = *addr
	cfg.AutoFallback = !*strict
	cfg.MotionGate = *motionGate

	st := openStore()
	if st != nil {
		defer st.Close()
		applyStoredSettings(&cfg, st)
	}
	if *cameraID >= 0 {
		cfg.CameraID = *cameraID
	}

	// Input: webcam plus landmark model. A missing model is a soft failure;
	// the tracker handles it according to the fallback setting.
	camera := capture.NewCamera(cfg.CameraID)

	var det detector.Detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err != nil {
		log.Warn("hand landmark model unavailable", "error", err)
	} else {
		det = mp
	}

	tracker := input.New(input.Config{
		PinchThreshold: cfg.PinchThreshold,
		FrameInterval:  cfg.FrameInterval,
		AutoFallback:   cfg.AutoFallback,
		MotionGate:     cfg.MotionGate,
		MotionThresh:   cfg.MotionThresh,
	}, camera, det)

	if err := tracker.Start(); err != nil {
		log.Error("tracking failed to start", "error", err)
		os.Exit(1)
	}
	defer tracker.Stop()
	log.Info("input ready", "mode", tracker.Status().String())

	// Audio: the drone starts suspended and wakes on the first pinch. A
	// machine without a sound device just runs silent.
	synth := audio.NewSynth(audio.DefaultSampleRate, audio.Targets{
		Gain: cfg.IdleGain, Cutoff: cfg.IdleCutoff, Pitch: cfg.IdlePitch,
	})

	var engine audio.Engine
	player, err := audio.NewPlayer(synth, audio.DefaultSampleRate)
	if err != nil {
		log.Warn("audio unavailable, running silent", "error", err)
	} else {
		engine = player
		defer player.Close()
	}

	audioCtl := audio.NewController(audio.Config{
		Engaged: audio.Targets{Gain: cfg.EngagedGain, Cutoff: cfg.EngagedCutoff, Pitch: cfg.EngagedPitch},
		Idle:    audio.Targets{Gain: cfg.IdleGain, Cutoff: cfg.IdleCutoff, Pitch: cfg.IdlePitch},
	}, synth, engine)

	orbit := rig.New(rig.Config{
		NearRadius:      cfg.NearRadius,
		FarRadius:       cfg.FarRadius,
		RadiusSmoothing: cfg.RadiusSmoothing,
		OrbitSmoothing:  cfg.OrbitSmoothing,
	})

	field := probe.NewField(probe.Config{
		Speed:         cfg.ProbeSpeed,
		HorizonRadius: cfg.HorizonRadius,
		SpinRate:      probe.DefaultConfig().SpinRate,
		SpawnOffset:   probe.DefaultConfig().SpawnOffset,
	})

	// Control server.
	srv := server.New(server.Config{
		Store:   st,
		Tracker: tracker,
		Orbit:   orbit,
		Camera:  camera,
	})
	go func() {
		log.Info("control server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(cfg.Addr); err != nil {
			log.Error("control server stopped", "error", err)
		}
	}()

	// Session bookkeeping.
	sessionID := ""
	if st != nil {
		sess := &store.Session{ID: uuid.New().String()}
		if err := st.Sessions().Create(sess); err != nil {
			log.Warn("failed to record session", "error", err)
		} else {
			sessionID = sess.ID
		}
	}

	var pinches int
	if *headless {
		pinches = runHeadless(tracker, orbit, audioCtl, field)
	} else {
		game := scene.New(tracker, orbit, audioCtl, field)
		if err := game.Run(); err != nil {
			log.Error("scene exited", "error", err)
		}
		pinches = game.PinchCount()
	}

	if st != nil && sessionID != "" {
		if err := st.Sessions().Finish(sessionID, tracker.Status().String(), pinches, field.Spawned()); err != nil {
			log.Warn("failed to finalize session", "error", err)
		}
	}
	log.Info("bye", "pinches", pinches, "probes", field.Spawned())
}

// runHeadless drives the world without a window: the tray controls
// tracking while a fixed-rate loop keeps the rig, probes and drone alive.
// Returns the pinch count once the tray quits.
func runHeadless(tracker *input.Tracker, orbit *rig.Rig, audioCtl *audio.Controller, field *probe.Field) int {
	t := tray.New()

	t.OnToggle(func(enabled bool) {
		if enabled {
			if err := tracker.Start(); err != nil {
				log.Error("failed to restart tracking", "error", err)
			}
		} else {
			tracker.Stop()
		}
	})

	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	t.OnQuit(func() { close(stopCh) })

	var pinches int
	go func() {
		defer close(doneCh)

		ticker := time.NewTicker(time.Second / 60)
		defer ticker.Stop()

		statusEvery := 0
		prevPinched := false
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				sig := tracker.Latest()
				if sig.Pinched && !prevPinched {
					pinches++
				}
				prevPinched = sig.Pinched

				orbit.Update(sig)
				field.Observe(sig.Pinched, orbit.Position())
				field.Update(1.0 / 60)
				audioCtl.Apply(sig.Pinched)

				// Refresh the tray status about once a second.
				statusEvery++
				if statusEvery >= 60 {
					statusEvery = 0
					t.SetStatus(tracker.Status().String())
				}
			}
		}
	}()

	t.Run()
	<-doneCh
	return pinches
}

// openStore opens the settings database under ~/.blackhole-chill.
// Storage problems are logged and tolerated; the visual runs fine on
// defaults.
func openStore() *store.Store {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warn("no home directory, running without settings storage", "error", err)
		return nil
	}

	dataDir := filepath.Join(homeDir, ".blackhole-chill")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Warn("failed to create data directory, running without settings storage", "error", err)
		return nil
	}

	st, err := store.New(filepath.Join(dataDir, "blackhole.db"))
	if err != nil {
		log.Warn("failed to open settings database, running without settings storage", "error", err)
		return nil
	}

	return st
}

// applyStoredSettings overlays the persisted tuning onto the defaults.
func applyStoredSettings(cfg *config.Config, st *store.Store) {
	settings, err := st.Settings().Get()
	if err != nil {
		log.Warn("failed to load stored settings, using defaults", "error", err)
		return
	}

	cfg.CameraID = settings.CameraID
	cfg.PinchThreshold = settings.PinchThreshold
	cfg.NearRadius = settings.NearRadius
	cfg.FarRadius = settings.FarRadius
	cfg.RadiusSmoothing = settings.RadiusSmoothing
	cfg.OrbitSmoothing = settings.OrbitSmoothing
}
