package audio

import (
	"time"

	"github.com/gopxl/beep"

	"go-gem-defense/internal/event"
)

// Cue is a short synthesized sound tied to a simulation event.
type Cue int

const (
	CueNone Cue = iota
	CueFire
	CueSpawn
	CueKill
	CueWaveStart
	CueWaveClear
	CueHurt
	CueDefeat
)

// cueFor picks the cue for an event. Events without a sound map to CueNone.
func cueFor(e event.Event) Cue {
	switch e.Type {
	case event.AttackFired:
		return CueFire
	case event.EnemySpawned:
		if d, ok := e.Data.(event.EnemySpawnedData); ok && d.Boss {
			return CueSpawn
		}
		return CueNone
	case event.EnemyDestroyed:
		if d, ok := e.Data.(event.EnemyDestroyedData); ok && d.Killed {
			return CueKill
		}
		return CueHurt
	case event.WaveStarted:
		return CueWaveStart
	case event.WaveCleared, event.AllWavesCleared:
		return CueWaveClear
	case event.DefenderDamaged:
		return CueHurt
	case event.DefenderDefeated:
		return CueDefeat
	default:
		return CueNone
	}
}

// streamer builds the sound for c at the given volume, or nil for CueNone.
func (c Cue) streamer(rate beep.SampleRate, vol float64) beep.Streamer {
	ms := time.Millisecond
	var s beep.Streamer
	switch c {
	case CueFire:
		s = newTone(660, 40*ms, rate)
	case CueSpawn:
		s = beep.Seq(newTone(110, 200*ms, rate), newTone(82.4, 300*ms, rate))
	case CueKill:
		s = newTone(1320, 60*ms, rate)
	case CueWaveStart:
		s = newTone(440, 150*ms, rate)
	case CueWaveClear:
		s = beep.Seq(newTone(523.25, 120*ms, rate), newTone(659.25, 120*ms, rate), newTone(783.99, 200*ms, rate))
	case CueHurt:
		s = newTone(140, 120*ms, rate)
	case CueDefeat:
		s = beep.Seq(newTone(220, 300*ms, rate), newTone(146.8, 600*ms, rate))
	default:
		return nil
	}
	return withVolume(s, vol)
}
