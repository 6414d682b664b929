// Package audio plays the game's sound effects and music tracks on top of
// beep. Clips are WAV files loaded once from a directory and mixed into a
// single beep.Mixer. Every failure is logged and then ignored so that a
// missing speaker or clip never stops the simulation.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/opd-ai/go-lawndefense/pkg/logging"
)

// SampleRate is the rate every clip is resampled to before mixing.
const SampleRate = beep.SampleRate(44100)

// resampleQuality is passed to beep.Resample.
const resampleQuality = 4

// Clip names.
const (
	ClipBackground = "plants_vs_zombies"
	ClipGameOver   = "gameover"
	ClipSelect     = "select"
	ClipPlanting   = "plantingpeashooter"
	ClipHit        = "woodchopping"
)

// ErrClipNotFound is returned when <dir>/<name>.wav does not exist.
var ErrClipNotFound = errors.New("audio clip not found")

// Clips lists every clip the game uses, for Preload.
func Clips() []string {
	return []string{
		ClipBackground, ClipGameOver, ClipSelect, ClipPlanting, ClipHit,
		LevelTrack(1), LevelTrack(2), LevelTrack(3),
	}
}

// LevelTrack returns the music clip of a level.
func LevelTrack(level int) string {
	return fmt.Sprintf("level%d", level)
}

// Player decodes clips into memory buffers and mixes them.
type Player struct {
	mu     sync.Mutex
	dir    string
	logger *logging.Logger
	ctx    context.Context

	mixer    *beep.Mixer
	clips    map[string]*beep.Buffer
	failed   map[string]error
	loops    map[string]*beep.Ctrl
	speaking bool
}

// NewPlayer creates a player reading clips from dir. Nothing is audible
// until Init attaches the mixer to the speaker.
func NewPlayer(dir string, logger *logging.Logger) *Player {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Player{
		dir:    dir,
		logger: logger,
		ctx:    context.Background(),
		mixer:  &beep.Mixer{},
		clips:  make(map[string]*beep.Buffer),
		failed: make(map[string]error),
		loops:  make(map[string]*beep.Ctrl),
	}
}

// SetContext sets the context carried by log lines.
func (p *Player) SetContext(ctx context.Context) {
	p.mu.Lock()
	p.ctx = ctx
	p.mu.Unlock()
}

// Init opens the speaker and starts streaming the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.speaking {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		p.logger.Warn(p.ctx, "speaker unavailable, audio disabled", "error", err.Error())
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.speaking = true
	return nil
}

// Close stops every sound and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.withMixer(func() {
		p.mixer.Clear()
	})
	clear(p.loops)
	if p.speaking {
		speaker.Close()
		p.speaking = false
	}
}

// Mixer exposes the mix so it can be streamed somewhere other than the speaker.
func (p *Player) Mixer() *beep.Mixer { return p.mixer }

// Preload decodes the named clips ahead of time. Failures are logged.
func (p *Player) Preload(names ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, name := range names {
		_, _ = p.buffer(name)
	}
}

// Play starts a one-shot clip.
func (p *Player) Play(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	buf, err := p.buffer(name)
	if err != nil {
		return err
	}
	p.withMixer(func() {
		p.mixer.Add(buf.Streamer(0, buf.Len()))
	})
	return nil
}

// Loop starts a clip that repeats until Stop. Looping a clip that already
// loops does nothing.
func (p *Player) Loop(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.loops[name]; ok {
		return nil
	}
	buf, err := p.buffer(name)
	if err != nil {
		return err
	}
	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len()))}
	p.loops[name] = ctrl
	p.withMixer(func() {
		p.mixer.Add(ctrl)
	})
	return nil
}

// Stop ends a looping clip. The mixer drops it on its next pass.
func (p *Player) Stop(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctrl, ok := p.loops[name]
	if !ok {
		return
	}
	delete(p.loops, name)
	p.withMixer(func() {
		ctrl.Streamer = nil
	})
}

// Looping reports whether name is currently looping.
func (p *Player) Looping(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.loops[name]
	return ok
}

// withMixer runs f while the speaker is not reading the mixer.
func (p *Player) withMixer(f func()) {
	if p.speaking {
		speaker.Lock()
		defer speaker.Unlock()
	}
	f()
}

// buffer returns the decoded clip, loading it on first use. A clip that
// failed once keeps failing without touching the disk or the log again.
func (p *Player) buffer(name string) (*beep.Buffer, error) {
	if buf, ok := p.clips[name]; ok {
		return buf, nil
	}
	if err, ok := p.failed[name]; ok {
		return nil, err
	}

	buf, err := p.load(name)
	if err != nil {
		p.failed[name] = err
		p.logger.Warn(p.ctx, "audio clip unavailable", "clip", name, "error", err.Error())
		return nil, err
	}
	p.clips[name] = buf
	p.logger.Debug(p.ctx, "audio clip loaded", "clip", name, "samples", buf.Len())
	return buf, nil
}

func (p *Player) load(name string) (*beep.Buffer, error) {
	path := filepath.Join(p.dir, name+".wav")
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrClipNotFound, path)
		}
		return nil, fmt.Errorf("open clip: %w", err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2})
	buf.Append(beep.Resample(resampleQuality, format.SampleRate, SampleRate, streamer))
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return buf, nil
}
