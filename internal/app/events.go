package app

import "go-gem-defense/internal/event"

// sessionListener keeps the session's run statistics in step with the world.
type sessionListener struct {
	session *Session
}

// OnEvent implements event.Listener.
func (l *sessionListener) OnEvent(e event.Event) {
	switch e.Type {
	case event.EnemySpawned:
		l.session.stats.Spawned++
	case event.EnemyDestroyed:
		d, ok := e.Data.(event.EnemyDestroyedData)
		if !ok {
			return
		}
		if d.Killed {
			l.session.stats.Kills++
			l.session.stats.Reward += d.Reward
		} else {
			l.session.stats.Leaks++
		}
	}
}
