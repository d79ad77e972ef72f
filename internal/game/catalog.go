package game

import (
	"errors"
	"sync"
)

// ErrUnavailable is returned when a trigger maps to no enabled game type.
var ErrUnavailable = errors.New("game type unavailable")

// Factory builds a fresh game instance for one session.
type Factory func() Game

// Catalog maps start triggers to game factories. Availability is resolved
// once at startup: a type that is disabled in configuration, or whose
// backing service is not configured, is registered as unavailable so its
// trigger gets an explicit answer instead of silence.
type Catalog struct {
	mu          sync.RWMutex
	factories   map[string]Factory
	unavailable map[string]struct{}
	order       []string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		factories:   make(map[string]Factory),
		unavailable: make(map[string]struct{}),
	}
}

// Register adds a factory under its trigger token. Registering the same
// trigger twice replaces the earlier factory.
func (c *Catalog) Register(trigger string, f Factory) error {
	if f == nil {
		return errors.New("cannot register nil factory")
	}
	if trigger == "" {
		return errors.New("game trigger cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.factories[trigger]; !exists {
		c.order = append(c.order, trigger)
	}
	c.factories[trigger] = f
	delete(c.unavailable, trigger)
	return nil
}

// RegisterUnavailable records a trigger whose game type exists but has no
// enabled implementation, so starting it can be answered with an explicit
// unavailable message.
func (c *Catalog) RegisterUnavailable(trigger string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, enabled := c.factories[trigger]; enabled {
		return
	}
	c.unavailable[trigger] = struct{}{}
}

// Unavailable reports whether trigger is a known game type with no
// enabled implementation.
func (c *Catalog) Unavailable(trigger string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.unavailable[trigger]
	return ok
}

// New builds a fresh instance for trigger, or ErrUnavailable when no
// enabled type matches.
func (c *Catalog) New(trigger string) (Game, error) {
	c.mu.RLock()
	f, ok := c.factories[trigger]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrUnavailable
	}
	return f(), nil
}

// Has reports whether trigger maps to an enabled game type.
func (c *Catalog) Has(trigger string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.factories[trigger]
	return ok
}

// Triggers returns the registered triggers in registration order.
func (c *Catalog) Triggers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Count returns the number of registered game types.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.factories)
}
