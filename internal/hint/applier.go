// Package hint asks the window manager to show or hide window decorations
// by setting the _MOTIF_WM_HINTS property.
package hint

import (
	"github.com/mj1618/undecorate/internal/platform"
	"github.com/sirupsen/logrus"
)

// Applier sets decoration hints on windows. It is best-effort: the window
// manager may ignore the hint and failures are only logged.
type Applier struct {
	setter platform.HintSetter
	log    logrus.FieldLogger
}

// NewApplier returns an Applier writing hints through setter.
func NewApplier(setter platform.HintSetter, log logrus.FieldLogger) *Applier {
	return &Applier{setter: setter, log: log}
}

// Payload returns the _MOTIF_WM_HINTS value requesting the given state.
func Payload(decorated bool) string {
	if decorated {
		return platform.MotifDecorationsOn
	}
	return platform.MotifDecorationsOff
}

// SetDecorated requests decorations on or off for w. It never fails.
func (a *Applier) SetDecorated(w platform.Window, decorated bool) {
	desc := w.Description()
	log := a.log.WithFields(logrus.Fields{"window": desc, "decorated": decorated})

	id, err := platform.ParseWindowID(desc)
	if err != nil {
		log.WithError(err).Warn("cannot derive window id")
		return
	}
	if err := a.setter.SetMotifHints(id, Payload(decorated)); err != nil {
		log.WithError(err).Warn("setting decoration hint failed")
		return
	}
	log.Debug("decoration hint set")
}
