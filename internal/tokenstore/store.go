package tokenstore

// Store persists the session token across process restarts. The durable
// layout is exactly one named key holding the raw token string; nothing else
// in the core survives a restart.
type Store interface {
	Save(token string) error
	Load() (string, bool, error)
	Clear() error
}
