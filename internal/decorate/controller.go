// Package decorate keeps windows of whitelisted applications undecorated and
// implements the per-window decoration menu actions.
package decorate

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mj1618/undecorate/internal/platform"
	"github.com/sirupsen/logrus"
)

// DefaultDelay is how long a newly created window is left alone before its
// decorations are removed, so the window manager has finished placing its
// initial decorations.
const DefaultDelay = 100 * time.Millisecond

// ErrStopped is returned by actions issued while the controller is not
// running.
var ErrStopped = errors.New("decoration controller is not running")

// Resolver maps a window to its application identifier.
type Resolver interface {
	Resolve(w platform.Window) (string, bool)
}

// Applier requests decorations on or off. It must not fail.
type Applier interface {
	SetDecorated(w platform.Window, decorated bool)
}

// Whitelist is the set of applications whose windows are kept undecorated.
type Whitelist interface {
	Contains(id string) bool
	Add(id string) error
	Remove(id string) error
	OnExternalChange(cb func([]string)) (cancel func())
}

// Notifier is told about whitelist writes that failed during a menu action.
type Notifier interface {
	StorageFailed(action, appID string, err error)
}

// Scheduler runs f once after d. The returned cancel stops it if it has not
// fired yet.
type Scheduler func(d time.Duration, f func()) (cancel func() bool)

func timerScheduler(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Option configures a Controller.
type Option func(*Controller)

// WithDelay sets the delay before a new whitelisted window is undecorated.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithScheduler replaces time.AfterFunc for the creation delay.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.schedule = s }
}

// WithLogger sets the controller's logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = l }
}

// WithOneShot makes Start skip the window-creation watch and the startup
// rescan. For short-lived sessions that only serve menus and actions.
func WithOneShot() Option {
	return func(c *Controller) { c.oneShot = true }
}

// WithNotifier reports failed whitelist writes to n.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

type pendingUndecorate struct {
	gen    uint64
	cancel func() bool
}

// Controller applies the whitelist to windows. All event handling and menu
// actions run on one goroutine, strictly in arrival order.
type Controller struct {
	windows  platform.WindowSystem
	resolver Resolver
	applier  Applier
	list     Whitelist
	delay    time.Duration
	schedule Scheduler
	log      logrus.FieldLogger
	notifier Notifier
	oneShot  bool

	mu      sync.Mutex
	running bool
	loop    *loop
	unsubs  []func()
	pending map[string]pendingUndecorate
	gen     uint64

	// ownWrites holds, in write order, the keys of windows whose menu action
	// changed the whitelist. Each whitelist-change rescan consumes one and
	// skips that window. Only touched on the event loop.
	ownWrites []string
}

// New returns a stopped controller.
func New(windows platform.WindowSystem, resolver Resolver, applier Applier, list Whitelist, opts ...Option) *Controller {
	c := &Controller{
		windows:  windows,
		resolver: resolver,
		applier:  applier,
		list:     list,
		delay:    DefaultDelay,
		schedule: timerScheduler,
		log:      logrus.StandardLogger(),
		pending:  make(map[string]pendingUndecorate),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start subscribes to window creation and whitelist changes, then brings
// every existing window in line with the whitelist.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return errors.New("decoration controller already running")
	}
	c.running = true
	c.ownWrites = nil
	c.loop = newLoop()
	go c.loop.run()
	c.mu.Unlock()

	if !c.oneShot {
		cancelCreated, err := c.windows.WatchCreated(func(w platform.Window) {
			c.post(func() { c.onWindowCreated(w) })
		})
		if err != nil {
			_ = c.Stop()
			return fmt.Errorf("watch window creation: %w", err)
		}
		c.mu.Lock()
		c.unsubs = append(c.unsubs, cancelCreated)
		c.mu.Unlock()
	}
	cancelList := c.list.OnExternalChange(func(ids []string) {
		c.post(func() { c.onWhitelistChanged(ids) })
	})
	c.mu.Lock()
	c.unsubs = append(c.unsubs, cancelList)
	c.mu.Unlock()

	if c.oneShot {
		return nil
	}
	c.post(func() { c.rescan(c.eventLog("startup"), nil) })
	c.log.WithField("delay", c.delay).Info("decoration controller started")
	return nil
}

// Stop releases all subscriptions and cancels pending undecorate timers; a
// cancelled timer never fires afterwards. Stop waits for the event currently
// being handled.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	c.running = false
	unsubs := c.unsubs
	c.unsubs = nil
	for key, p := range c.pending {
		p.cancel()
		delete(c.pending, key)
	}
	l := c.loop
	c.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
	l.stop()
	c.log.Info("decoration controller stopped")
	return nil
}

// Running reports whether the controller is started.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Sync waits until every event posted so far has been handled.
func (c *Controller) Sync() error {
	return c.do(func() {})
}

func (c *Controller) post(fn func()) {
	c.mu.Lock()
	l := c.loop
	running := c.running
	c.mu.Unlock()
	if !running {
		return
	}
	l.post(fn)
}

// do runs fn on the event loop and waits for it. It must not be called from
// the loop itself.
func (c *Controller) do(fn func()) error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return ErrStopped
	}
	l := c.loop
	c.mu.Unlock()

	done := make(chan struct{})
	l.post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-l.done:
		return ErrStopped
	}
}

func (c *Controller) eventLog(kind string) logrus.FieldLogger {
	return c.log.WithFields(logrus.Fields{"event": uuid.NewString(), "kind": kind})
}

func windowKey(w platform.Window) string {
	desc := w.Description()
	if id, err := platform.ParseWindowID(desc); err == nil {
		return platform.FormatWindowID(id)
	}
	return desc
}

// whitelisted resolves w and reports whether its application is on the
// whitelist.
func (c *Controller) whitelisted(w platform.Window) (string, bool) {
	id, ok := c.resolver.Resolve(w)
	if !ok {
		return "", false
	}
	return id, c.list.Contains(id)
}

func (c *Controller) onWindowCreated(w platform.Window) {
	if w == nil || !c.Running() {
		return
	}
	id, ok := c.whitelisted(w)
	if !ok {
		return
	}
	key := windowKey(w)
	log := c.eventLog("window-created").WithFields(logrus.Fields{"window": key, "app": id})

	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	if old, ok := c.pending[key]; ok {
		old.cancel()
	}
	c.gen++
	gen := c.gen
	cancel := c.schedule(c.delay, func() {
		c.post(func() { c.firePending(key, gen, w, log) })
	})
	c.pending[key] = pendingUndecorate{gen: gen, cancel: cancel}
	c.mu.Unlock()

	log.Debug("undecorate scheduled")
}

func (c *Controller) firePending(key string, gen uint64, w platform.Window, log logrus.FieldLogger) {
	c.mu.Lock()
	p, ok := c.pending[key]
	if !ok || p.gen != gen || !c.running {
		c.mu.Unlock()
		return
	}
	delete(c.pending, key)
	c.mu.Unlock()

	c.applier.SetDecorated(w, false)
	log.Info("undecorated new window")
}

func (c *Controller) onWhitelistChanged(ids []string) {
	var skip *string
	if len(c.ownWrites) > 0 {
		key := c.ownWrites[0]
		c.ownWrites = c.ownWrites[1:]
		skip = &key
	}
	if !c.Running() {
		return
	}
	log := c.eventLog("whitelist-changed").WithField("count", len(ids))
	log.Debug("whitelist changed")
	c.rescan(log, skip)
}

// rescan undecorates every open window of a whitelisted application, even
// ones that are already undecorated. The window keyed by skip, if any, is
// left alone.
func (c *Controller) rescan(log logrus.FieldLogger, skip *string) {
	windows, err := c.windows.Windows()
	if err != nil {
		log.WithError(err).Warn("cannot list windows")
		return
	}
	n := 0
	for _, w := range windows {
		if w == nil {
			continue
		}
		if skip != nil && windowKey(w) == *skip {
			continue
		}
		if _, ok := c.whitelisted(w); ok {
			c.applier.SetDecorated(w, false)
			n++
		}
	}
	log.WithField("undecorated", n).Debug("rescan done")
}

func (c *Controller) refocus(w platform.Window) {
	ts := c.windows.CurrentTime()
	var err error
	switch fw := w.(type) {
	case platform.Focuser:
		err = fw.Focus(ts)
	case platform.Activator:
		err = fw.Activate(ts)
	default:
		return
	}
	if err != nil {
		c.log.WithError(err).WithField("window", w.Description()).Warn("refocus failed")
	}
}

// Undecorate removes the decorations of w and gives it focus back.
func (c *Controller) Undecorate(w platform.Window) error {
	return c.do(func() {
		c.applier.SetDecorated(w, false)
		c.refocus(w)
	})
}

// Decorate restores the decorations of w and gives it focus back.
func (c *Controller) Decorate(w platform.Window) error {
	return c.do(func() {
		c.applier.SetDecorated(w, true)
		c.refocus(w)
	})
}

// AlwaysUndecorate whitelists the application owning w, then undecorates w.
// When the whitelist cannot be written nothing else happens and the
// *whitelist.StorageError is returned.
func (c *Controller) AlwaysUndecorate(w platform.Window) error {
	var err error
	if derr := c.do(func() {
		if id, ok := c.resolver.Resolve(w); ok {
			if err = c.writeList(w, id, c.list.Add); err != nil {
				c.storageFailed("always-undecorate", id, err)
				return
			}
		}
		c.applier.SetDecorated(w, false)
		c.refocus(w)
	}); derr != nil {
		return derr
	}
	return err
}

// RemoveFromWhitelist drops the application owning w from the whitelist,
// then restores the decorations of w.
func (c *Controller) RemoveFromWhitelist(w platform.Window) error {
	var err error
	if derr := c.do(func() {
		if id, ok := c.resolver.Resolve(w); ok {
			if err = c.writeList(w, id, c.list.Remove); err != nil {
				c.storageFailed("remove-from-whitelist", id, err)
				return
			}
		}
		c.applier.SetDecorated(w, true)
		c.refocus(w)
	}); derr != nil {
		return derr
	}
	return err
}

// writeList runs op on the event loop. When op changes whether id is
// listed, the store reports the write back through OnExternalChange and the
// rescan that follows skips w.
func (c *Controller) writeList(w platform.Window, id string, op func(string) error) error {
	before := c.list.Contains(id)
	if err := op(id); err != nil {
		return err
	}
	if c.list.Contains(id) != before {
		c.ownWrites = append(c.ownWrites, windowKey(w))
	}
	return nil
}

func (c *Controller) storageFailed(action, id string, err error) {
	c.log.WithError(err).WithFields(logrus.Fields{"action": action, "app": id}).Error("whitelist update failed")
	if c.notifier != nil {
		c.notifier.StorageFailed(action, id, err)
	}
}
