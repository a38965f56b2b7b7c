package cmd

import (
	"github.com/kardianos/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the decoration daemon",
	Long: `Run the daemon in the foreground: undecorate every open and every new
window of a whitelisted application, and follow whitelist edits. Stops on
SIGINT or SIGTERM. Also the entry point used by the installed user service.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// daemon is the service program wrapping a started session.
type daemon struct {
	sess *session
}

func (d *daemon) Start(s service.Service) error {
	sess, err := openSession(true)
	if err != nil {
		return err
	}
	if err := sess.ctrl.Start(); err != nil {
		_ = sess.Close()
		return err
	}
	d.sess = sess
	logrus.WithField("settings", sess.file.Path()).Info("undecorate daemon started")
	return nil
}

func (d *daemon) Stop(s service.Service) error {
	if d.sess == nil {
		return nil
	}
	err := d.sess.Close()
	d.sess = nil
	logrus.Info("undecorate daemon stopped")
	return err
}

func runRun(cmd *cobra.Command, args []string) error {
	svc, err := newService(&daemon{})
	if err != nil {
		return err
	}
	return svc.Run()
}
