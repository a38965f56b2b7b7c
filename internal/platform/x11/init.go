//go:build linux

package x11

import (
	"os"

	"github.com/mj1618/undecorate/internal/identity"
	"github.com/mj1618/undecorate/internal/platform"
	"github.com/sirupsen/logrus"
)

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		log := logrus.StandardLogger().WithField("backend", "x11")
		index := identity.NewDesktopIndex(identity.ApplicationDirs(), DesktopIndexTTL, log)
		d, err := Open(os.Getenv("DISPLAY"), index, log)
		if err != nil {
			return nil, err
		}
		return &platform.Provider{
			Windows:     d,
			Tracker:     d,
			NativeHints: d,
		}, nil
	}
}
