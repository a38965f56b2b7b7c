package cmd

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/mj1618/undecorate/internal/decorate"
	"github.com/mj1618/undecorate/internal/hint"
	"github.com/mj1618/undecorate/internal/identity"
	"github.com/mj1618/undecorate/internal/notify"
	"github.com/mj1618/undecorate/internal/platform"
	"github.com/mj1618/undecorate/internal/settings"
	"github.com/mj1618/undecorate/internal/whitelist"
	"github.com/sirupsen/logrus"
)

// configPath returns the --config flag or the default settings location.
func configPath() string {
	if p, _ := rootCmd.PersistentFlags().GetString("config"); p != "" {
		return p
	}
	return settings.DefaultPath()
}

// applyLogLevel uses the settings file's log level unless --log-level was
// given explicitly.
func applyLogLevel(cfg settings.Config) {
	if rootCmd.PersistentFlags().Changed("log-level") || cfg.LogLevel == "" {
		return
	}
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithError(err).Warn("ignoring invalid log-level setting")
		return
	}
	logrus.SetLevel(lvl)
}

// openStore opens the settings file and loads the whitelist stored in it.
func openStore() (*settings.File, *whitelist.Store, error) {
	log := logrus.StandardLogger()
	file, err := settings.OpenFile(configPath(), log)
	if err != nil {
		return nil, nil, err
	}
	store := whitelist.NewStore(file, log.WithField("component", "whitelist"))
	if _, err := store.Load(); err != nil {
		store.Close()
		_ = file.Close()
		return nil, nil, err
	}
	return file, store, nil
}

// hintSetter picks the hint backend named in the settings.
func hintSetter(cfg settings.Config, provider *platform.Provider) (platform.HintSetter, error) {
	switch cfg.HintBackend {
	case "", settings.HintBackendXprop:
		return hint.NewXpropSetter(), nil
	case settings.HintBackendNative:
		if provider.NativeHints == nil {
			return nil, fmt.Errorf("hint backend %q is not available on this platform", cfg.HintBackend)
		}
		return provider.NativeHints, nil
	default:
		return nil, fmt.Errorf("unsupported hint backend: %s (use %s or %s)", cfg.HintBackend, settings.HintBackendXprop, settings.HintBackendNative)
	}
}

// session is everything a command needs to act on windows: the window
// system, the whitelist and a decoration controller wired to both.
type session struct {
	cfg      settings.Config
	file     *settings.File
	store    *whitelist.Store
	provider *platform.Provider
	resolver *identity.Resolver
	ctrl     *decorate.Controller
}

// openSession builds a session. The controller is not started. With watch
// set, whitelist edits made by other processes are picked up; without it the
// controller is one-shot and leaves windows alone until an action runs.
func openSession(watch bool) (_ *session, err error) {
	log := logrus.StandardLogger()
	s := &session{}
	defer func() {
		if err != nil {
			_ = s.Close()
		}
	}()

	if s.file, s.store, err = openStore(); err != nil {
		return nil, err
	}
	if s.cfg, err = s.file.Config(); err != nil {
		return nil, err
	}
	applyLogLevel(s.cfg)
	if watch {
		if err = s.file.Watch(); err != nil {
			return nil, err
		}
	}

	if s.provider, err = platform.NewProvider(); err != nil {
		return nil, err
	}
	setter, err := hintSetter(s.cfg, s.provider)
	if err != nil {
		return nil, err
	}
	s.resolver = identity.NewResolver(s.provider.Tracker, s.cfg.IdentityCacheTTL, log.WithField("component", "identity"))
	opts := []decorate.Option{
		decorate.WithDelay(s.cfg.UndecorateDelay),
		decorate.WithLogger(log.WithField("component", "controller")),
		decorate.WithNotifier(notify.NewDesktop(s.cfg.NotifyOnError, log)),
	}
	if !watch {
		opts = append(opts, decorate.WithOneShot())
	}
	s.ctrl = decorate.New(
		s.provider.Windows,
		s.resolver,
		hint.NewApplier(setter, log.WithField("component", "hint")),
		s.store,
		opts...,
	)
	return s, nil
}

// findWindow looks up a window by the id given on the command line.
func (s *session) findWindow(desc string) (platform.Window, error) {
	id, err := platform.ParseWindowID(desc)
	if err != nil {
		return nil, err
	}
	return platform.FindWindow(s.provider.Windows, id)
}

// Close stops the controller and releases everything the session opened.
func (s *session) Close() error {
	var result *multierror.Error
	if s.ctrl != nil {
		if err := s.ctrl.Stop(); err != nil {
			result = multierror.Append(result, fmt.Errorf("stop controller: %w", err))
		}
	}
	if s.store != nil {
		s.store.Close()
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close settings: %w", err))
		}
	}
	if err := s.provider.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close window system: %w", err))
	}
	return result.ErrorOrNil()
}
