package cmd

import (
	"errors"
	"fmt"

	"github.com/kardianos/service"
	"github.com/mj1618/undecorate/internal/output"
	"github.com/spf13/cobra"
)

var serviceCmd = &cobra.Command{
	Use:   "service <install|uninstall|start|stop|restart|status>",
	Short: "Manage the daemon as a user service",
	Long: `Install, control or query the per-user service that runs "undecorate run"
at login (a systemd user unit on Linux).

Examples:
  undecorate service install
  undecorate service start
  undecorate service status`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: append([]string{"status"}, service.ControlAction[:]...),
	RunE:      runService,
}

func init() {
	rootCmd.AddCommand(serviceCmd)
}

// serviceStatus is the output of `service status`.
type serviceStatus struct {
	Service string `yaml:"service" json:"service"`
	Status  string `yaml:"status"  json:"status"`
}

// serviceConfig describes the user service. The installed unit runs the
// daemon with the same settings file as the installing command.
func serviceConfig() *service.Config {
	args := []string{"run"}
	if p, _ := rootCmd.PersistentFlags().GetString("config"); p != "" {
		args = append(args, "--config", p)
	}
	return &service.Config{
		Name:        "undecorate",
		DisplayName: "Undecorate",
		Description: "Keeps windows of whitelisted applications undecorated",
		Arguments:   args,
		Option: service.KeyValue{
			"UserService": true,
		},
	}
}

func newService(prg service.Interface) (service.Service, error) {
	s, err := service.New(prg, serviceConfig())
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return s, nil
}

func statusString(st service.Status) string {
	switch st {
	case service.StatusRunning:
		return "running"
	case service.StatusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

func runService(cmd *cobra.Command, args []string) error {
	s, err := newService(&daemon{})
	if err != nil {
		return err
	}

	action := args[0]
	if action == "status" {
		st, err := s.Status()
		if err != nil && !errors.Is(err, service.ErrNotInstalled) {
			return fmt.Errorf("query service: %w", err)
		}
		status := statusString(st)
		if errors.Is(err, service.ErrNotInstalled) {
			status = "not installed"
		}
		return output.Print(serviceStatus{Service: serviceConfig().Name, Status: status})
	}

	if err := service.Control(s, action); err != nil {
		return err
	}
	return output.Print(serviceStatus{Service: serviceConfig().Name, Status: action + " ok"})
}
