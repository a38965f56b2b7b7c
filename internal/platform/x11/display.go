package x11

import (
	"fmt"
	"sync"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/mj1618/undecorate/internal/identity"
	"github.com/mj1618/undecorate/internal/platform"
	"github.com/sirupsen/logrus"
)

// DesktopIndexTTL is how long the installed desktop entry index is reused
// before it is rebuilt.
var DesktopIndexTTL = 5 * time.Minute

const clientListAtom = "_NET_CLIENT_LIST"

// Display is a connection to an X server. It implements
// platform.WindowSystem, platform.AppTracker and platform.HintSetter.
type Display struct {
	X     *xgbutil.XUtil
	index *identity.DesktopIndex
	log   logrus.FieldLogger

	mu       sync.Mutex
	watching bool
	known    map[xproto.Window]struct{}
	subs     map[int]func(platform.Window)
	next     int
}

var (
	_ platform.WindowSystem = (*Display)(nil)
	_ platform.AppTracker   = (*Display)(nil)
	_ platform.HintSetter   = (*Display)(nil)
)

// Open connects to the given X display ("" uses $DISPLAY). index may be nil,
// in which case applications are identified by their hints alone.
func Open(display string, index *identity.DesktopIndex, log logrus.FieldLogger) (*Display, error) {
	X, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to X server using DISPLAY '%s': %w", display, err)
	}
	return &Display{
		X:     X,
		index: index,
		log:   log,
		subs:  make(map[int]func(platform.Window)),
	}, nil
}

// Windows lists the managed client windows in stacking order.
func (d *Display) Windows() ([]platform.Window, error) {
	ids, err := ewmh.ClientListGet(d.X)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", clientListAtom, err)
	}
	out := make([]platform.Window, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.window(id))
	}
	return out, nil
}

func (d *Display) window(id xproto.Window) *Window {
	title, err := ewmh.WmNameGet(d.X, id)
	if err != nil || title == "" {
		title, _ = icccm.WmNameGet(d.X, id)
	}
	return &Window{d: d, id: id, title: title}
}

// WatchCreated calls fn for every client window that appears after the call.
// The first call starts the X event loop.
func (d *Display) WatchCreated(fn func(platform.Window)) (func(), error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.watching {
		if err := d.watchLocked(); err != nil {
			return nil, err
		}
	}
	id := d.next
	d.next++
	d.subs[id] = fn
	return func() {
		d.mu.Lock()
		delete(d.subs, id)
		d.mu.Unlock()
	}, nil
}

func (d *Display) watchLocked() error {
	ids, err := ewmh.ClientListGet(d.X)
	if err != nil {
		return fmt.Errorf("read %s: %w", clientListAtom, err)
	}
	d.known = clientSet(ids)

	root := xwindow.New(d.X, d.X.RootWin())
	if err := root.Listen(xproto.EventMaskPropertyChange); err != nil {
		return fmt.Errorf("listen on root window: %w", err)
	}
	xevent.PropertyNotifyFun(d.onRootProperty).Connect(d.X, root.Id)
	d.watching = true
	go xevent.Main(d.X)
	return nil
}

func (d *Display) onRootProperty(X *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
	name, err := xprop.AtomName(X, ev.Atom)
	if err != nil || name != clientListAtom {
		return
	}
	ids, err := ewmh.ClientListGet(X)
	if err != nil {
		d.log.WithError(err).Warn("cannot read client list")
		return
	}

	d.mu.Lock()
	added := newClients(d.known, ids)
	d.known = clientSet(ids)
	subs := make([]func(platform.Window), 0, len(d.subs))
	for _, fn := range d.subs {
		subs = append(subs, fn)
	}
	d.mu.Unlock()

	for _, id := range added {
		w := d.window(id)
		d.log.WithField("window", w.Description()).Debug("window created")
		for _, fn := range subs {
			fn(w)
		}
	}
}

// CurrentTime returns the server time of the last event seen.
func (d *Display) CurrentTime() uint32 {
	return uint32(d.X.TimeGet())
}

// WindowApp returns the desktop entry id of the application owning w. When
// no installed entry matches, the GTK application id or WM_CLASS class is
// returned as is.
func (d *Display) WindowApp(w platform.Window) (string, error) {
	id, err := platform.ParseWindowID(w.Description())
	if err != nil {
		return "", err
	}
	win := xproto.Window(id)

	gtkAppID, _ := xprop.PropValStr(xprop.GetProperty(d.X, win, "_GTK_APPLICATION_ID"))
	var class, instance string
	if wc, err := icccm.WmClassGet(d.X, win); err == nil && wc != nil {
		class, instance = wc.Class, wc.Instance
	}

	if d.index != nil {
		if app, ok := d.index.Lookup(gtkAppID, class, instance); ok {
			return app, nil
		}
	}
	switch {
	case gtkAppID != "":
		return gtkAppID, nil
	case class != "":
		return class, nil
	}
	return "", nil
}

// SetMotifHints writes the _MOTIF_WM_HINTS payload directly.
func (d *Display) SetMotifHints(id uint32, payload string) error {
	vals, err := parseMotifPayload(payload)
	if err != nil {
		return err
	}
	if err := xprop.ChangeProp32(d.X, xproto.Window(id), platform.MotifHintsProperty, "CARDINAL", vals...); err != nil {
		return fmt.Errorf("set %s on %s: %w", platform.MotifHintsProperty, platform.FormatWindowID(id), err)
	}
	return nil
}

// Close stops the event loop and disconnects.
func (d *Display) Close() error {
	d.mu.Lock()
	watching := d.watching
	d.watching = false
	d.subs = make(map[int]func(platform.Window))
	d.mu.Unlock()
	if watching {
		xevent.Quit(d.X)
	}
	d.X.Conn().Close()
	return nil
}

func clientSet(ids []xproto.Window) map[xproto.Window]struct{} {
	set := make(map[xproto.Window]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// newClients returns the ids in cur that are not in known, in cur's order.
func newClients(known map[xproto.Window]struct{}, cur []xproto.Window) []xproto.Window {
	var added []xproto.Window
	for _, id := range cur {
		if _, ok := known[id]; !ok {
			added = append(added, id)
		}
	}
	return added
}
