// Package player schedules song progress for the music store. It stands in
// for the UI progress animation: a timer runs for the selected song's
// duration, restarts whenever the selection or playing state changes, and
// auto-advances to the next song on completion.
package player

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pandalove/gopanda/pkg/musicstore"
)

// Option configures a Player.
type Option func(*Player)

// WithUnit overrides the duration unit. Song durations are stored in seconds;
// tests pass a smaller unit to compress time.
func WithUnit(u time.Duration) Option {
	return func(p *Player) { p.unit = u }
}

// Player drives playback progress. It subscribes to the music store and owns
// a single timer; a stale timer is always stopped before a new one starts, so
// an outdated auto-advance can never fire.
type Player struct {
	music *musicstore.Store
	log   *zap.Logger
	unit  time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	songID    string
	playing   bool
	duration  int
	startedAt time.Time
	closed    bool

	cancelSub func()
}

// New attaches a player to the music store. Close detaches it.
func New(music *musicstore.Store, log *zap.Logger, opts ...Option) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Player{
		music: music,
		log:   log,
		unit:  time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.cancelSub = music.Subscribe(p.onChange)
	p.onChange() // align with whatever was restored from the snapshot
	return p
}

// onChange re-reads the playback state and restarts the timer when the
// (song, playing, duration) triple changed. Unrelated mutations, favorite
// toggles for instance, must not reset progress.
func (p *Player) onChange() {
	songID := p.music.CurrentSongID()
	playing := p.music.Playing()
	duration := 0
	if song, ok := p.music.CurrentSong(); ok {
		duration = song.Duration
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	if songID == p.songID && playing == p.playing && duration == p.duration {
		return
	}
	p.songID = songID
	p.playing = playing
	p.duration = duration
	p.restartLocked()
}

// restartLocked stops any running timer and starts a fresh one when a
// resolvable song is selected and playing.
func (p *Player) restartLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.startedAt = time.Time{}

	if !p.playing || p.songID == "" || p.duration <= 0 {
		return
	}
	p.startedAt = time.Now()
	p.timer = time.AfterFunc(time.Duration(p.duration)*p.unit, p.advance)
}

// advance runs when a song completes: move the selection forward and keep
// playing. The explicit restart afterwards covers the single-song self-loop,
// where the selection does not change and the store will not re-notify a
// different state.
func (p *Player) advance() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	next, ok := p.music.NextSong()
	if !ok {
		p.mu.Lock()
		p.startedAt = time.Time{}
		p.mu.Unlock()
		p.log.Debug("song completed with nothing to advance to")
		return
	}
	p.music.SetCurrentSong(next)

	p.mu.Lock()
	if !p.closed {
		p.restartLocked()
	}
	p.mu.Unlock()
}

// Progress reports how far the current song has played, in [0, 1].
// Zero when nothing is playing.
func (p *Player) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.duration <= 0 || p.startedAt.IsZero() {
		return 0
	}
	frac := float64(time.Since(p.startedAt)) / float64(time.Duration(p.duration)*p.unit)
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

// Close detaches from the store and stops the timer.
func (p *Player) Close() {
	p.cancelSub()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.startedAt = time.Time{}
}
