package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building so staging and
// production can share an instance without collisions.
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a key builder with an environment-based prefix.
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" {
		prefix = "staging"
	}
	return &KeyBuilder{prefix: prefix}
}

// BuildKey constructs a Redis key with the environment prefix.
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix.
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyWorkshopByLink is the cache key for a workshop resolved by public link.
func (kb *KeyBuilder) KeyWorkshopByLink(link string) string {
	return kb.BuildKey(fmt.Sprintf(KeyWorkshopByLink, link))
}

// KeySession is the storage key for a feedback session.
func (kb *KeyBuilder) KeySession(sessionID string) string {
	return kb.BuildKey(fmt.Sprintf(KeySession, sessionID))
}

// KeySubmitted is the duplicate-submission lock key for a session.
func (kb *KeyBuilder) KeySubmitted(sessionID string) string {
	return kb.BuildKey(fmt.Sprintf(KeySubmitted, sessionID))
}
