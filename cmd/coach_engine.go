package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/runvoice/coach-engine/internal/ble"
	"github.com/runvoice/coach-engine/internal/config"
	"github.com/runvoice/coach-engine/internal/engine"
	"github.com/runvoice/coach-engine/internal/safego"
	"github.com/runvoice/coach-engine/internal/session"
	"github.com/runvoice/coach-engine/internal/sim"
	"github.com/runvoice/coach-engine/internal/store"
)

func main() {
	var (
		configPath   = pflag.String("config", "", "config file (default "+filepath.Join(config.DefaultDir(), "config.yaml")+")")
		profileName  = pflag.String("profile", "easy", "simulated workout profile")
		listProfiles = pflag.Bool("list-profiles", false, "list simulated profiles and exit")
		live         = pflag.Bool("live", false, "use BLE sensors instead of the simulator")
		scanTimeout  = pflag.Duration("scan-timeout", 30*time.Second, "BLE scan timeout in live mode")
		sessionID    = pflag.String("session", "", "session id (default derived from start time)")
		rate         = pflag.Float64("rate", 1.0, "simulation speed multiplier")
		warmupSecs   = pflag.Float64("warmup", 300, "live mode: warmup length in seconds")
		mainSecs     = pflag.Float64("main", 1200, "live mode: main set length in seconds")
		cooldownSecs = pflag.Float64("cooldown", 300, "live mode: cooldown length in seconds")
	)
	pflag.Parse()

	if *listProfiles {
		for _, name := range sim.Names() {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	must("load config", err)
	engineCfg, err := cfg.EngineConfig()
	must("validate engine config", err)

	must("create log directory", os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755))
	rotator := &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
	}
	defer rotator.Close()

	app := tview.NewApplication()

	logView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetChangedFunc(func() {
			app.Draw()
		})
	logView.SetBorder(true).SetTitle(" Logs ")

	logger := log.New(io.MultiWriter(rotator, logView), "", log.LstdFlags)

	st, err := store.Open(cfg.Store.Path)
	must("open session store", err)
	defer st.Close()

	eng, err := engine.NewEngine(engineCfg, logger)
	must("build engine", err)
	mgr := session.NewManager(eng, st, logger)

	metricsView := tview.NewTextView().SetDynamicColors(true)
	metricsView.SetBorder(true).SetTitle(" Metrics ")

	coachView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	coachView.SetBorder(true).SetTitle(" Coach ")

	leftFlex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(metricsView, 0, 1, false).
		AddItem(coachView, 0, 1, true)
	flex := tview.NewFlex().
		AddItem(leftFlex, 0, 1, true).
		AddItem(logView, 0, 1, false)

	decisions, cancel := mgr.Decisions().Subscribe(64)
	defer cancel()
	go func() {
		for out := range decisions {
			out := out
			app.QueueUpdateDraw(func() {
				metricsView.SetText(formatMetrics(out))
				if out.Decision.ShouldSpeak {
					fmt.Fprintf(coachView, "[%6.0fs] %s\n", out.Input.ElapsedSeconds, out.Decision.CoachText)
				}
			})
		}
	}()

	id := *sessionID
	if id == "" {
		id = "run-" + time.Now().Format("20060102-150405")
	}

	quit := make(chan struct{})
	if *live {
		feed := ble.NewFeed(logger)
		safego.Go(logger, func() {
			if err := feed.Start(*scanTimeout); err != nil {
				logger.Printf("Main: BLE feed failed to start: %v", err)
				return
			}
			defer feed.Stop()
			layout := phaseLayout{warmup: *warmupSecs, main: *mainSecs, cooldown: *cooldownSecs}
			runLive(mgr, feed, cfg, id, layout, logger, quit)
		})
	} else {
		profile, ok := sim.ByName(*profileName)
		if !ok {
			must("select profile", fmt.Errorf("unknown profile %q (see --list-profiles)", *profileName))
		}
		safego.Go(logger, func() {
			runSim(mgr, profile, id, *rate, logger, quit)
		})
	}

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyTab {
			if coachView.HasFocus() {
				app.SetFocus(logView)
			} else {
				app.SetFocus(coachView)
			}
			return nil
		}
		if event.Key() == tcell.KeyEscape {
			close(quit)
			app.Stop()
			return nil
		}
		return event
	})

	logger.Printf("Main: session %s starting (live=%v)", id, *live)
	if err := app.SetRoot(flex, true).SetFocus(coachView).Run(); err != nil {
		panic(err)
	}
}

// runSim replays a scripted profile through the manager, one tick per
// simulated second.
func runSim(mgr *session.Manager, p *sim.Profile, sessionID string, rate float64, logger *log.Logger, quit <-chan struct{}) {
	if rate <= 0 {
		rate = 1
	}
	interval := time.Duration(float64(time.Second) / rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for elapsed := 0.0; elapsed <= p.TotalSeconds(); elapsed++ {
		if _, err := mgr.Tick(p.TickAt(sessionID, elapsed)); err != nil {
			logger.Printf("Main: tick failed: %v", err)
			return
		}
		select {
		case <-quit:
			return
		case <-ticker.C:
		}
	}
	logger.Printf("Main: session %s finished after %.0fs", sessionID, p.TotalSeconds())
}

type phaseLayout struct {
	warmup   float64
	main     float64
	cooldown float64
}

func (l phaseLayout) phaseAt(elapsed float64) engine.Phase {
	switch {
	case elapsed < l.warmup:
		return engine.PhaseWarmup
	case elapsed < l.warmup+l.main:
		return engine.PhaseMain
	case elapsed < l.warmup+l.main+l.cooldown:
		return engine.PhaseCooldown
	default:
		return engine.PhaseFinished
	}
}

// runLive folds BLE samples into one snapshot per second. The engine never
// sees raw notifications, only the freshest reading and its age.
func runLive(mgr *session.Manager, feed *ble.Feed, cfg *config.Config, sessionID string, layout phaseLayout, logger *log.Logger, quit <-chan struct{}) {
	samples, cancel := feed.Samples().Subscribe(64)
	defer cancel()

	var (
		lastHR        float64
		lastHRAt      time.Time
		lastCadence   float64
		lastCadenceAt time.Time
	)

	start := time.Now()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return
		case s, ok := <-samples:
			if !ok {
				return
			}
			switch s.Kind {
			case ble.SampleHeartRate:
				lastHR, lastHRAt = s.Value, s.At
			case ble.SampleCadence:
				lastCadence, lastCadenceAt = s.Value, s.At
			}
		case now := <-ticker.C:
			elapsed := now.Sub(start).Seconds()
			in := engine.NewTickInput(sessionID, engine.WorkoutMode(cfg.Workout.Mode), layout.phaseAt(elapsed), elapsed)
			in.Style = engine.CoachingStyle(cfg.Workout.Style)
			in.IntervalTemplate = cfg.Workout.IntervalTemplate
			in.HRMax = cfg.Athlete.HRMax
			in.RestingHR = cfg.Athlete.RestingHR
			in.Age = cfg.Athlete.Age
			in.MovementSource = "ble"

			if !lastHRAt.IsZero() {
				in.HeartRate = lastHR
				in.HRSampleAgeSeconds = now.Sub(lastHRAt).Seconds()
				in.WatchConnected = true
			}
			if !lastCadenceAt.IsZero() && now.Sub(lastCadenceAt) < 5*time.Second {
				in.CadenceSPM = lastCadence
			}

			if _, err := mgr.Tick(in); err != nil {
				logger.Printf("Main: tick failed: %v", err)
				return
			}
			if in.Phase == engine.PhaseFinished {
				logger.Printf("Main: session %s finished after %.0fs", sessionID, elapsed)
				return
			}
		}
	}
}

func formatMetrics(out session.Outcome) string {
	d := out.Decision
	target := "none"
	if d.TargetEnforced {
		target = fmt.Sprintf("%.0f-%.0f bpm (%s)", d.TargetHRLow, d.TargetHRHigh, d.TargetSource)
	}
	inTarget := "n/a"
	if d.TimeInTargetPct != nil {
		inTarget = fmt.Sprintf("%.0f%%", *d.TimeInTargetPct)
	}
	return fmt.Sprintf(
		"Session    %s\nElapsed    %.0fs (%s)\nHeart rate %.0f bpm\nTarget     %s\nZone       %s\nSensors    %s\nMovement   %s\n\nScore      %d (%s)\nIn target  %s\nOvershoots %d\nRecovery   %.0fs avg",
		out.SessionID,
		out.Input.ElapsedSeconds, out.Input.Phase,
		out.Input.HeartRate,
		target,
		d.ZoneStatus,
		d.SensorMode,
		d.MovementState,
		d.Score, d.ScoreConfidence,
		inTarget,
		d.Overshoots,
		d.RecoveryAvgSeconds,
	)
}

func must(action string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to %s: %v\n", action, err)
		os.Exit(1)
	}
}
