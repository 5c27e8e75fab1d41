package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"go-gem-defense/internal/event"
)

const (
	sampleRate = beep.SampleRate(44100)
	// fireCooldown throttles attack cues so a high fire rate does not saturate the mixer.
	fireCooldown = 60 * time.Millisecond
)

// Player is an event listener that turns simulation events into sound. It is
// a best-effort sink: when the speaker cannot be opened it stays silent.
type Player struct {
	mu       sync.Mutex
	mixer    *beep.Mixer
	volume   float64
	enabled  bool
	lastFire time.Time
	now      func() time.Time
	log      *slog.Logger
}

// NewPlayer creates a silent player. Call Init to open the speaker.
func NewPlayer(volume float64, log *slog.Logger) *Player {
	if log == nil {
		log = slog.Default()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		now:    time.Now,
		log:    log,
	}
}

// Init opens the audio device. Failure leaves the player silent and is not
// returned to the caller.
func (p *Player) Init() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		return
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		p.log.Warn("audio disabled", "err", err)
		return
	}
	speaker.Play(p.mixer)
	p.enabled = true
}

// Enabled reports whether sound is actually being produced.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Subscribe registers the player for every event type it has a cue for.
func (p *Player) Subscribe(d *event.Dispatcher) {
	d.SubscribeAll(p,
		event.AttackFired,
		event.EnemySpawned,
		event.EnemyDestroyed,
		event.WaveStarted,
		event.WaveCleared,
		event.AllWavesCleared,
		event.DefenderDamaged,
		event.DefenderDefeated,
	)
}

// OnEvent implements event.Listener.
func (p *Player) OnEvent(e event.Event) {
	cue := cueFor(e)
	if cue == CueNone {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	if cue == CueFire {
		now := p.now()
		if now.Sub(p.lastFire) < fireCooldown {
			return
		}
		p.lastFire = now
	}
	s := cue.streamer(sampleRate, p.volume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences everything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.enabled = false
}
