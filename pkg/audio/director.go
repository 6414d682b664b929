// pkg/audio/director.go
package audio

import (
	"context"
	"errors"

	"github.com/opd-ai/go-lawndefense/pkg/event"
	"github.com/opd-ai/go-lawndefense/pkg/logging"
)

// Sink is what the Director drives. *Player implements it.
type Sink interface {
	Play(name string) error
	Loop(name string) error
	Stop(name string)
}

// maxLevelTrack is the last level with its own music.
const maxLevelTrack = 3

// Director turns simulation events into sound. Handlers run on the
// publishing goroutine, so every call into the sink must be quick.
type Director struct {
	sink   Sink
	logger *logging.Logger
	ctx    context.Context

	subs  []*event.Subscription
	track string
}

// NewDirector creates a director for sink. A nil logger discards output.
func NewDirector(sink Sink, logger *logging.Logger) *Director {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Director{sink: sink, logger: logger, ctx: context.Background()}
}

// SetContext sets the context carried by log lines.
func (d *Director) SetContext(ctx context.Context) {
	d.ctx = ctx
}

// Attach subscribes the director to bus.
func (d *Director) Attach(bus *event.Bus) {
	effects := map[event.Type]string{
		event.ProjectileHit:     ClipHit,
		event.DefenderPlaced:    ClipPlanting,
		event.CollectiblePicked: ClipSelect,
	}
	for t, clip := range effects {
		d.subs = append(d.subs, bus.Subscribe(t, func(event.Event) { d.play(clip) }))
	}

	d.subs = append(d.subs,
		bus.Subscribe(event.GameStarted, d.onGameStarted),
		bus.Subscribe(event.GameEnded, d.onGameEnded),
		bus.Subscribe(event.LevelChanged, d.onLevelChanged),
		bus.Subscribe(event.MusicCue, d.onMusicCue),
		bus.Subscribe(event.YardBreached, d.onYardBreached),
	)
}

// Detach removes every subscription made by Attach.
func (d *Director) Detach() {
	for _, s := range d.subs {
		s.Cancel()
	}
	d.subs = nil
}

// Track returns the level track currently looping, or "".
func (d *Director) Track() string { return d.track }

func (d *Director) onGameStarted(event.Event) {
	d.stopTrack()
	d.loop(ClipBackground)
}

func (d *Director) onGameEnded(event.Event) {
	d.loop(ClipBackground)
}

func (d *Director) onLevelChanged(e event.Event) {
	se, ok := e.(*event.ScoreEvent)
	if !ok {
		return
	}
	if se.Value >= 1 && se.Value <= maxLevelTrack {
		d.stopTrack()
	}
}

func (d *Director) onMusicCue(e event.Event) {
	me, ok := e.(*event.MusicEvent)
	if !ok || me.Track == "" {
		return
	}
	d.stopTrack()
	d.sink.Stop(ClipBackground)
	if d.loop(me.Track) {
		d.track = me.Track
	}
}

func (d *Director) onYardBreached(event.Event) {
	d.stopTrack()
	d.sink.Stop(ClipBackground)
	d.play(ClipGameOver)
}

func (d *Director) stopTrack() {
	if d.track == "" {
		return
	}
	d.sink.Stop(d.track)
	d.track = ""
}

func (d *Director) play(clip string) {
	if err := d.sink.Play(clip); err != nil {
		d.report(clip, err)
	}
}

func (d *Director) loop(clip string) bool {
	if err := d.sink.Loop(clip); err != nil {
		d.report(clip, err)
		return false
	}
	return true
}

// report logs sink errors at debug level. The player already warned once
// for every clip that cannot be loaded.
func (d *Director) report(clip string, err error) {
	if errors.Is(err, ErrClipNotFound) {
		return
	}
	d.logger.Debug(d.ctx, "audio cue skipped", "clip", clip, "error", err.Error())
}
