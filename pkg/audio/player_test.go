// pkg/audio/player_test.go
package audio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-lawndefense/pkg/logging"
)

// writeClip writes n samples of silence as <dir>/<name>.wav.
func writeClip(t *testing.T, dir, name string, n int) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name+".wav"))
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: 22050, NumChannels: 1, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Silence(n), format))
}

// drain streams the mixer until finished clips have been dropped.
func drain(m *beep.Mixer) {
	samples := make([][2]float64, 1024)
	for i := 0; i < 4; i++ {
		m.Stream(samples)
	}
}

func TestPlayer_PlayOneShot(t *testing.T) {
	dir := t.TempDir()
	writeClip(t, dir, ClipHit, 100)
	p := NewPlayer(dir, nil)

	require.NoError(t, p.Play(ClipHit))
	require.NoError(t, p.Play(ClipHit))
	assert.Equal(t, 2, p.Mixer().Len())

	drain(p.Mixer())
	assert.Zero(t, p.Mixer().Len())
}

func TestPlayer_ResamplesToMixRate(t *testing.T) {
	dir := t.TempDir()
	writeClip(t, dir, ClipSelect, 2205)
	p := NewPlayer(dir, nil)

	p.Preload(ClipSelect)
	buf, ok := p.clips[ClipSelect]
	require.True(t, ok)
	// 0.1 s at 22050 Hz becomes roughly 4410 samples at 44100 Hz
	assert.InDelta(t, 4410, buf.Len(), 50)
}

func TestPlayer_Loop(t *testing.T) {
	dir := t.TempDir()
	writeClip(t, dir, "level1", 50)
	p := NewPlayer(dir, nil)

	require.NoError(t, p.Loop("level1"))
	require.NoError(t, p.Loop("level1"))
	assert.True(t, p.Looping("level1"))
	assert.Equal(t, 1, p.Mixer().Len())

	drain(p.Mixer())
	assert.Equal(t, 1, p.Mixer().Len(), "loops never finish on their own")

	p.Stop("level1")
	assert.False(t, p.Looping("level1"))
	drain(p.Mixer())
	assert.Zero(t, p.Mixer().Len())

	// stopping twice is harmless
	p.Stop("level1")
}

func TestPlayer_MissingClipLoggedOnce(t *testing.T) {
	var out bytes.Buffer
	p := NewPlayer(t.TempDir(), logging.NewLoggerWithWriter(&out, logging.FormatText))

	for i := 0; i < 3; i++ {
		err := p.Play(ClipGameOver)
		assert.ErrorIs(t, err, ErrClipNotFound)
	}
	assert.ErrorIs(t, p.Loop(ClipGameOver), ErrClipNotFound)
	assert.False(t, p.Looping(ClipGameOver))
	assert.Zero(t, p.Mixer().Len())
	assert.Equal(t, 1, strings.Count(out.String(), "audio clip unavailable"))
}

func TestPlayer_CorruptClip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ClipPlanting+".wav"), []byte("not a wave file"), 0o644))
	p := NewPlayer(dir, nil)

	err := p.Play(ClipPlanting)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrClipNotFound)
}

func TestPlayer_Close(t *testing.T) {
	dir := t.TempDir()
	writeClip(t, dir, ClipBackground, 50)
	p := NewPlayer(dir, nil)

	require.NoError(t, p.Loop(ClipBackground))
	p.Close()
	assert.Zero(t, p.Mixer().Len())
	assert.False(t, p.Looping(ClipBackground))
}

func TestClips(t *testing.T) {
	clips := Clips()
	assert.Len(t, clips, 8)
	assert.Contains(t, clips, "level3")
	assert.Equal(t, "level2", LevelTrack(2))
}
