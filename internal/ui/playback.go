// Package ui draws the viewer's overlays and parameter panel. Everything that
// touches ebiten is behind the ebiten build tag; playback pacing and layout
// helpers build everywhere.
package ui

// Ticker paces playback. *core.FixedStep satisfies it.
type Ticker interface {
	ShouldStep() bool
	Reset()
}

// Playback reveals trajectory points one step at a time.
type Playback struct {
	ticker Ticker
	total  int
	shown  int
	paused bool
}

// NewPlayback reveals up to total points, starting with the first.
func NewPlayback(total int, ticker Ticker) *Playback {
	if total < 1 {
		total = 1
	}
	return &Playback{ticker: ticker, total: total, shown: 1}
}

// Advance reveals one more point when the ticker allows it.
func (p *Playback) Advance() {
	if p.paused || p.Done() {
		return
	}
	if p.ticker.ShouldStep() {
		p.shown++
	}
}

// TogglePause freezes or resumes playback.
func (p *Playback) TogglePause() { p.paused = !p.paused }

// Restart rewinds to the first point and resumes.
func (p *Playback) Restart() {
	p.shown = 1
	p.paused = false
	p.ticker.Reset()
}

// Shown is the number of points currently visible per trajectory.
func (p *Playback) Shown() int { return p.shown }

// Total is the length of the longest trajectory.
func (p *Playback) Total() int { return p.total }

// Paused reports whether playback is frozen.
func (p *Playback) Paused() bool { return p.paused }

// Done reports whether every point is visible.
func (p *Playback) Done() bool { return p.shown >= p.total }
