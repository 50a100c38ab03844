// Package fake provides renderers with no GPU behind them, for simulators
// and tests.
package fake

import (
	"fmt"
	"io"

	"github.com/example/lumenshow/internal/scene"
)

// Recorder captures every frame it is handed.
type Recorder struct {
	Frames []scene.Frame
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Name() string { return "recorder" }

func (r *Recorder) RenderFrame(f scene.Frame) error {
	r.Frames = append(r.Frames, f)
	return nil
}

// Last returns the most recent frame, if any.
func (r *Recorder) Last() (scene.Frame, bool) {
	if len(r.Frames) == 0 {
		return scene.Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// Console writes a one-line summary of each frame to an io.Writer; the
// sequence simulator uses it as its display.
type Console struct {
	W io.Writer
}

func NewConsole(w io.Writer) *Console { return &Console{W: w} }

func (c *Console) Name() string { return "console" }

func (c *Console) RenderFrame(f scene.Frame) error {
	_, err := fmt.Fprintf(c.W, "t=%6.2f seq=%-14s prog=%5.3f lod=%d scale=%.2f particles=%d effects=%d tracks=%v\n",
		f.Time, f.SequenceID, f.Progress, f.LOD, f.RenderScale, f.ParticleBudget, len(f.Effects), trackSummary(f))
	return err
}

func trackSummary(f scene.Frame) map[string]string {
	out := map[string]string{}
	for id, bag := range f.Tracks {
		s := ""
		for k, v := range bag {
			if s != "" {
				s += " "
			}
			s += k + "=" + v.String()
		}
		out[id] = s
	}
	return out
}
