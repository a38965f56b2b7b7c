// Package identity maps windows to application identifiers.
package identity

import (
	"time"

	"github.com/mj1618/undecorate/internal/model"
	"github.com/mj1618/undecorate/internal/platform"
	"github.com/sirupsen/logrus"
)

// Resolver finds the application identifier owning a window.
type Resolver struct {
	tracker platform.AppTracker
	cache   *Cache
	log     logrus.FieldLogger
}

// NewResolver returns a resolver backed by the host's window tracker.
// Resolved identifiers are cached per window for ttl; 0 disables caching.
func NewResolver(tracker platform.AppTracker, ttl time.Duration, log logrus.FieldLogger) *Resolver {
	return &Resolver{
		tracker: tracker,
		cache:   NewCache(ttl),
		log:     log,
	}
}

// Resolve returns the identifier of the application owning w, with any
// ".desktop" suffix stripped. ok is false when no application owns the
// window; desktop windows and tracker failures are reported the same way.
func (r *Resolver) Resolve(w platform.Window) (id string, ok bool) {
	if w == nil || w.Type() == platform.WindowDesktop {
		return "", false
	}
	desc := w.Description()
	if id, ok := r.cache.Get(desc); ok {
		return id, id != ""
	}

	appID, err := r.tracker.WindowApp(w)
	if err != nil {
		r.log.WithError(err).WithField("window", desc).Debug("cannot resolve window application")
		return "", false
	}
	id = model.NormalizeAppID(appID)
	r.cache.Put(desc, id)
	return id, id != ""
}

// Forget drops any cached identity for the window description.
func (r *Resolver) Forget(desc string) {
	r.cache.Invalidate(desc)
}
