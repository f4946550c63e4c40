package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/fxvec/physics"
	"github.com/lixenwraith/fxvec/vmath"
)

const (
	hudRows      = 2
	toneMs       = 40
	toneCooldown = 120 * time.Millisecond
)

// errQuit ends the frame loop and cancels the input poller
var errQuit = errors.New("sandbox quit")

func newSandboxCmd(opts *rootOptions) *cobra.Command {
	var (
		configPath string
		seed       uint64
		mute       bool
	)
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Bouncing circles in the terminal, stepped in Q32.32",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scene, err := LoadSceneConfig(configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSandbox(ctx, scene, seed, mute, opts.logger)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "scene YAML file")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "body spawn seed; equal seeds replay identically")
	cmd.Flags().BoolVar(&mute, "mute", false, "disable contact tone")
	return cmd
}

// Sandbox owns the screen and the world; the world is only touched by the frame loop
type Sandbox struct {
	screen tcell.Screen
	world  *physics.World
	scene  SceneConfig
	seed   uint64
	logger *zap.Logger

	width, height int
	dt            vmath.Fixed
	gravity       bool
	paused        bool
	tooSmall      bool
	lastContacts  int

	// Audio
	audioInit  bool
	sampleRate beep.SampleRate
	lastTone   time.Time

	finiOnce sync.Once
}

func runSandbox(ctx context.Context, scene SceneConfig, seed uint64, mute bool, logger *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	s, err := newSandbox(screen, scene, seed, logger)
	if err != nil {
		screen.Fini()
		return err
	}
	defer s.fini()

	if !mute {
		// Non-fatal, sandbox runs without sound
		if err := s.initAudio(); err != nil {
			logger.Warn("audio initialization failed", zap.Error(err))
		}
	}
	defer s.closeAudio()

	logger.Info("sandbox start",
		zap.Uint64("seed", seed),
		zap.Int("bodies", scene.Bodies),
		zap.Int("fps", scene.FPS),
	)
	return s.run(ctx)
}

func newSandbox(screen tcell.Screen, scene SceneConfig, seed uint64, logger *zap.Logger) (*Sandbox, error) {
	s := &Sandbox{
		screen:  screen,
		scene:   scene,
		seed:    seed,
		logger:  logger,
		dt:      vmath.One.Div(vmath.FromInt(scene.FPS)),
		gravity: true,
	}
	s.width, s.height = screen.Size()
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// fini restores the terminal; safe to call from the crash path and normal exit
func (s *Sandbox) fini() {
	s.finiOnce.Do(s.screen.Fini)
}

func (s *Sandbox) reset() error {
	cfg, err := s.scene.World(s.width, s.height-hudRows, s.seed)
	if err != nil {
		return fmt.Errorf("scene for %dx%d: %w", s.width, s.height, err)
	}
	if !s.gravity {
		cfg.Gravity = vmath.Vec2Zero
	}
	w, err := physics.NewWorld(cfg)
	if err != nil {
		return err
	}
	s.world = w
	s.lastContacts = 0
	s.tooSmall = false
	s.logger.Debug("world reset",
		zap.Uint64("seed", s.seed),
		zap.Int("width", s.width),
		zap.Int("height", s.height),
	)
	return nil
}

// rebuild resets the world for the current terminal
// A terminal too small for the scene keeps the previous world until it grows
func (s *Sandbox) rebuild() {
	if err := s.reset(); err != nil {
		s.tooSmall = true
		s.logger.Warn("world kept", zap.Error(err))
	}
}

func (s *Sandbox) initAudio() error {
	s.sampleRate = beep.SampleRate(44100)
	if err := speaker.Init(s.sampleRate, s.sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	s.audioInit = true
	return nil
}

func (s *Sandbox) closeAudio() {
	if s.audioInit {
		speaker.Close()
	}
}

func (s *Sandbox) playHitSound() {
	if !s.audioInit || s.scene.ToneHz == 0 || time.Since(s.lastTone) < toneCooldown {
		return
	}
	sine, err := generators.SineTone(s.sampleRate, s.scene.ToneHz)
	if err != nil {
		s.logger.Warn("tone generator", zap.Error(err))
		return
	}
	speaker.Play(beep.Take(s.sampleRate.N(toneMs*time.Millisecond), sine))
	s.lastTone = time.Now()
}

func (s *Sandbox) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 100)

	// PollEvent returns nil once the screen is finalized
	g.Go(func() error {
		defer close(events)
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer s.fini()
		defer func() {
			// Restore terminal before the panic reaches the user
			if r := recover(); r != nil {
				s.fini()
				panic(r)
			}
		}()
		return s.loop(ctx, events)
	})

	if err := g.Wait(); !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

func (s *Sandbox) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.scene.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return errQuit

		case ev, ok := <-events:
			if !ok {
				return errQuit
			}
			if s.handleInput(ev) {
				s.logger.Info("sandbox quit",
					zap.Uint64("frame", s.world.Frame()),
					zap.String("checksum", fmt.Sprintf("%016x", s.world.Checksum())),
				)
				return errQuit
			}

		case <-ticker.C:
			if !s.paused {
				s.lastContacts = s.world.Step(s.dt)
				if s.lastContacts > 0 {
					s.playHitSound()
				}
			}
			s.draw()
		}
	}
}

// handleInput reports whether the sandbox should quit
func (s *Sandbox) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true
		}
		if ev.Key() != tcell.KeyRune {
			return false
		}
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			s.paused = !s.paused
		case 'r':
			s.rebuild()
		case 'n':
			s.seed++
			s.rebuild()
		case 'k':
			s.world.Kick(s.world.MaxSpeed.Mul(vmath.Half))
		case 'g':
			s.gravity = !s.gravity
			if s.gravity {
				s.world.Gravity = vmath.NewVec2(vmath.FromFloat(s.scene.GravityX), vmath.FromFloat(s.scene.GravityY))
			} else {
				s.world.Gravity = vmath.Vec2Zero
			}
		}

	case *tcell.EventResize:
		w, h := s.screen.Size()
		if w != s.width || h != s.height {
			s.width, s.height = w, h
			s.screen.Sync()
			s.logger.Info("resize", zap.Int("width", w), zap.Int("height", h))
			s.rebuild()
		}
	}
	return false
}

func (s *Sandbox) draw() {
	s.screen.Clear()

	rows := s.height - hudRows
	cellH := vmath.From(2)
	for i := range s.world.Bodies {
		b := &s.world.Bodies[i]
		x, y := b.Cell(cellH)
		if x < 0 || x >= s.width || y < 0 || y >= rows {
			continue
		}
		s.screen.SetContent(x, y, bodyGlyph(b, cellH), nil, bodyStyle(b))
	}

	hud := tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	status := "running"
	switch {
	case s.tooSmall:
		status = "terminal too small"
	case s.paused:
		status = "paused"
	}
	s.drawText(0, rows, hud, fmt.Sprintf(" frame %-8d checksum %016x  contacts %-3d seed %d  %s ",
		s.world.Frame(), s.world.Checksum(), s.lastContacts, s.seed, status))
	s.drawText(0, rows+1, tcell.StyleDefault.Foreground(tcell.ColorGray),
		" space pause  r reset  n next seed  k kick  g gravity  q quit")

	s.screen.Show()
}

func (s *Sandbox) drawText(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		if x >= s.width {
			return
		}
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// bodyGlyph picks the half block for the body's sub-row position, doubling vertical resolution
func bodyGlyph(b *physics.Body, cellH vmath.Fixed) rune {
	y := b.Pos.Y.Div(cellH).Int26_6()
	if y&63 < 32 {
		return '▀'
	}
	return '▄'
}

// bodyStyle shades by speed relative to the world limit
func bodyStyle(b *physics.Body) tcell.Style {
	speed := b.Vel.Len()
	switch {
	case speed < vmath.From(5):
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	case speed < vmath.From(15):
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case speed < vmath.From(25):
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	}
}
