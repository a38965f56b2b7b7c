package cmd

import (
	"strings"
	"time"

	"github.com/mj1618/undecorate/internal/model"
	"github.com/mj1618/undecorate/internal/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List open windows",
	Long:  "List open windows with their id, type, decoration state, application id and whitelist membership.",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("app", "", "Filter windows by application id substring")
	listCmd.Flags().Bool("whitelisted", false, "Only windows of whitelisted applications")
}

func runList(cmd *cobra.Command, args []string) (err error) {
	app, _ := cmd.Flags().GetString("app")
	onlyListed, _ := cmd.Flags().GetBool("whitelisted")

	sess, err := openSession(false)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	windows, err := sess.provider.Windows.Windows()
	if err != nil {
		return err
	}
	return output.Print(output.WindowList{
		TS:      time.Now().Unix(),
		Windows: filterWindows(model.Snapshot(windows, sess.resolver.Resolve, sess.store.Contains), app, onlyListed),
	})
}

func filterWindows(windows []model.Window, app string, onlyListed bool) []model.Window {
	app = strings.ToLower(app)
	out := []model.Window{}
	for _, w := range windows {
		if app != "" && !strings.Contains(strings.ToLower(w.App), app) {
			continue
		}
		if onlyListed && !w.Whitelisted {
			continue
		}
		out = append(out, w)
	}
	return out
}
