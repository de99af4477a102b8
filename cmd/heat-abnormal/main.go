// Command heat-abnormal plays the Heat Abnormal terminal animation,
// beat-synchronized to its audio track when one is available.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/n3xta/heat-abnormal-terminal-animation/animator"
	"github.com/n3xta/heat-abnormal-terminal-animation/canvas"
	"github.com/n3xta/heat-abnormal-terminal-animation/config"
	"github.com/n3xta/heat-abnormal-terminal-animation/music"
	"github.com/n3xta/heat-abnormal-terminal-animation/scenes"
	"github.com/n3xta/heat-abnormal-terminal-animation/terminal"
)

var (
	configFlag  = flag.String("config", "", "Path to TOML config file")
	audioFlag   = flag.String("audio", "", "Audio track (mp3 or wav), overrides config")
	bpmFlag     = flag.Float64("bpm", 0, "Track BPM, overrides config")
	fpsFlag     = flag.Int("fps", 0, "Frame rate, overrides config")
	offsetFlag  = flag.Float64("offset", -1, "Start offset into the track in seconds")
	colorFlag   = flag.String("color", "", "Color mode: auto, truecolor, 256")
	noAudioFlag = flag.Bool("no-audio", false, "Run on the silent clock only")
	debugFlag   = flag.Bool("debug", false, "Enable the debug overlay and file logging")
)

func main() {
	// Panic recovery: restore the terminal even if the animation crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mHEAT-ABNORMAL CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg)

	logFile := setupLogging(cfg.Display.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	c := canvas.New(cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.Layers, nil)
	switch cfg.Display.ColorMode {
	case "256":
		c.SetColorMode(canvas.ColorMode256)
	case "truecolor":
		c.SetColorMode(canvas.ColorModeTrueColor)
	default:
		c.SetColorMode(terminal.DetectColorMode())
	}

	manager := animator.NewManager(scenes.All(c), scenes.Timeline())

	player := music.NewPlayer(cfg.Music.File, cfg.Music.BPM, cfg.Music.BeatsPerMeasure)
	defer player.Close()
	if player.Silent() {
		log.Printf("running silent: %v", player.Err())
	}
	sync := music.NewSynchronizer(player, cfg.Music.AnimationBPM)
	sync.SetBeatOffset(cfg.Music.BeatOffset)

	session := terminal.NewSession()
	if err := session.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer session.Fini()

	player.Play(cfg.Music.StartOffset)
	run(c, manager, player, sync, session, cfg)
}

// applyFlags layers command-line overrides on top of the loaded config
func applyFlags(cfg *config.Config) {
	if *audioFlag != "" {
		cfg.Music.File = *audioFlag
	}
	if *noAudioFlag {
		cfg.Music.File = ""
	}
	if *bpmFlag > 0 {
		cfg.Music.BPM = *bpmFlag
	}
	if *fpsFlag > 0 {
		cfg.Display.FPS = *fpsFlag
	}
	if *offsetFlag >= 0 {
		cfg.Music.StartOffset = *offsetFlag
	}
	if *colorFlag != "" {
		cfg.Display.ColorMode = *colorFlag
	}
	if *debugFlag {
		cfg.Display.Debug = true
	}
}

// run drives the frame loop until the song ends or the user quits
func run(c *canvas.Canvas, manager *animator.Manager, player *music.Player,
	sync *music.Synchronizer, session *terminal.Session, cfg config.Config) {

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Display.FPS))
	defer ticker.Stop()

	debugOn := cfg.Display.Debug
	if debugOn {
		manager.AddScene("debug", 0)
	}

	var frameTimes []float64
	start := time.Now()

	for {
		select {
		case ev := <-session.Events():
			switch {
			case ev.Type == terminal.EventClosed || ev.Type == terminal.EventError:
				return
			case ev.Key == terminal.KeyCtrlC || ev.Key == terminal.KeyEscape:
				return
			case ev.Key == terminal.KeyRune && ev.Rune == 'q':
				return
			case ev.Key == terminal.KeyRune && ev.Rune == ' ':
				if player.Paused() {
					player.Resume()
				} else {
					player.Pause()
				}
			case ev.Key == terminal.KeyRune && ev.Rune == 'd':
				if debugOn {
					manager.RemoveScene("debug")
				} else {
					manager.AddScene("debug", 0)
				}
				debugOn = !debugOn
			}

		case <-session.ResizeEvents():
			// The canvas is fixed-size; just repaint from scratch
			c.RenderBlank(session)

		case <-ticker.C:
			if !player.Paused() {
				for sync.ShouldAdvance(manager.Beat()) && manager.Beat() < sync.Beat() {
					manager.RequestNext(true)
				}
			}
			player.Update()

			frameTimes = append(frameTimes, time.Since(start).Seconds())
			if len(frameTimes) > 30 {
				frameTimes = frameTimes[len(frameTimes)-30:]
			}
			if debugOn {
				manager.SetGeneratorData("debug", 0, "frames", frameTimes)
			}

			if err := c.Render(session); err != nil {
				log.Printf("render: %v", err)
				return
			}

			if manager.Beat() > scenes.EndBeat+8 {
				return
			}
		}
	}
}
