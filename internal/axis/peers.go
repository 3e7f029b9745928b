package axis

// Follow relays changes of leader that request peer sync into follower.
// Relayed changes carry SourcePeer and never request sync themselves, so a
// pair of axes following each other does not echo. The returned func stops
// the relay.
func Follow[T, S any](leader, follower *Axis[T, S]) func() {
	return leader.Subscribe(func(ch Change[T]) {
		if !ch.SyncPeers || ch.Source == SourcePeer {
			return
		}
		d := All(SourcePeer)
		d.SyncPeers = false
		follower.SetValue(ch.NewValue, d)
	})
}
