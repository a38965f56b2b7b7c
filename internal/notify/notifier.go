// Package notify shows desktop notifications for failures the user should
// know about.
package notify

import (
	"fmt"
	"strings"

	"github.com/gen2brain/beeep"
	"github.com/mj1618/undecorate/internal/model"
	"github.com/sirupsen/logrus"
)

const (
	appTitle      = "Undecorate"
	maxMessageLen = 400
)

// Desktop sends notifications through the desktop notification service.
type Desktop struct {
	enabled bool
	log     logrus.FieldLogger
	send    func(title, message string) error
}

// NewDesktop returns a notifier. When enabled is false, failures are only
// logged.
func NewDesktop(enabled bool, log logrus.FieldLogger) *Desktop {
	return &Desktop{enabled: enabled, log: log, send: beeepSend}
}

// StorageFailed reports that a menu action could not update the whitelist.
func (d *Desktop) StorageFailed(action, appID string, err error) {
	title := appTitle
	if appID != "" {
		title = fmt.Sprintf("%s: %s", appTitle, model.DisplayName(appID))
	}
	d.notify(title, fmt.Sprintf("Could not save the whitelist (%s): %v", action, err))
}

func (d *Desktop) notify(title, message string) {
	if !d.enabled {
		return
	}
	message = strings.TrimSpace(message)
	if len(message) > maxMessageLen {
		message = message[:maxMessageLen] + "..."
	}
	if err := d.send(title, message); err != nil {
		d.log.WithError(err).Debug("desktop notification failed")
	}
}

func beeepSend(title, message string) error {
	return beeep.Notify(title, message, "")
}
