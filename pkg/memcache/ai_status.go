package memcache

import (
	"sync"
	"time"
)

// ServiceStatus is the cached result of a Gemini connectivity probe.
type ServiceStatus struct {
	Status  string
	Message string
}

// AIStatusStore caches the status probe so polling the status endpoint
// does not spend model quota on every request.
type AIStatusStore interface {
	Set(status ServiceStatus, ttl time.Duration)
	Get() (ServiceStatus, bool)
}

type aiStatusCache struct {
	mu        sync.RWMutex
	status    ServiceStatus
	expiresAt time.Time
}

func NewAIStatusStore() AIStatusStore {
	return &aiStatusCache{}
}

func (c *aiStatusCache) Set(status ServiceStatus, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
	c.expiresAt = time.Now().Add(ttl)
}

func (c *aiStatusCache) Get() (ServiceStatus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.expiresAt.IsZero() || time.Now().After(c.expiresAt) {
		return ServiceStatus{}, false
	}
	return c.status, true
}
