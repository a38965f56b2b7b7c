package cmd

import (
	"github.com/mj1618/undecorate/internal/identity"
	"github.com/mj1618/undecorate/internal/model"
	"github.com/mj1618/undecorate/internal/prefs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Edit the whitelist interactively",
	Long:  "Open a terminal screen listing the whitelisted applications. Installed applications are offered as completions when adding.",
	Args:  cobra.NoArgs,
	RunE:  runPrefs,
}

func init() {
	rootCmd.AddCommand(prefsCmd)
}

func runPrefs(cmd *cobra.Command, args []string) error {
	file, store, err := openStore()
	if err != nil {
		return err
	}
	defer file.Close()
	defer store.Close()
	if err := file.Watch(); err != nil {
		return err
	}
	return prefs.Run(store, installedApps())
}

// installedApps returns the ids of installed applications.
func installedApps() []string {
	index := identity.NewDesktopIndex(identity.ApplicationDirs(), 0, logrus.StandardLogger())
	ids := index.IDs()
	for i, id := range ids {
		ids[i] = model.NormalizeAppID(id)
	}
	return ids
}
