// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-lawndefense/pkg/engine"
	"github.com/opd-ai/go-lawndefense/pkg/logging"
)

// NullRenderer draws nothing. It logs a summary of every frame at debug
// level, which is what headless runs use.
type NullRenderer struct {
	logger *logging.Logger
	ctx    context.Context
	frames int
	last   *engine.Snapshot
}

// NewNullRenderer creates a NullRenderer. A nil logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{
		logger: logger,
		ctx:    context.Background(),
	}
}

// SetContext sets the context carried by log lines.
func (d *NullRenderer) SetContext(ctx context.Context) {
	d.ctx = ctx
}

// Render implements engine.Renderer.
func (d *NullRenderer) Render(s *engine.Snapshot) {
	if s == nil {
		d.logger.Debug(d.ctx, "Render called with nil snapshot")
		return
	}
	d.frames++
	d.last = s
	d.logger.Debug(d.ctx, "Render called",
		"frame", s.Frame,
		"tick", s.Tick,
		"state", s.State.String(),
		"paused", s.Paused,
		"entities", s.EntityCount(),
		"credits", s.Credits,
		"score", s.Score,
		"level", s.Level,
	)
}

// Frames returns how many snapshots were rendered.
func (d *NullRenderer) Frames() int { return d.frames }

// Last returns the most recent snapshot, or nil.
func (d *NullRenderer) Last() *engine.Snapshot { return d.last }
