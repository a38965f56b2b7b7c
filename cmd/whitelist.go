package cmd

import (
	"github.com/mj1618/undecorate/internal/model"
	"github.com/mj1618/undecorate/internal/output"
	"github.com/spf13/cobra"
)

var whitelistCmd = &cobra.Command{
	Use:   "whitelist",
	Short: "Show or edit the applications whose windows are always undecorated",
	Long: `Show or edit the whitelist. Entries are application ids such as
"org.gnome.Terminal"; a trailing ".desktop" is dropped. A running daemon
picks up changes immediately.`,
}

var whitelistListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the whitelist",
	Args:  cobra.NoArgs,
	RunE:  runWhitelistList,
}

var whitelistAddCmd = &cobra.Command{
	Use:   "add <app-id>...",
	Short: "Add applications to the whitelist",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWhitelistAdd,
}

var whitelistRemoveCmd = &cobra.Command{
	Use:     "remove <app-id>...",
	Aliases: []string{"rm"},
	Short:   "Remove applications from the whitelist",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runWhitelistRemove,
}

func init() {
	rootCmd.AddCommand(whitelistCmd)
	whitelistCmd.AddCommand(whitelistListCmd, whitelistAddCmd, whitelistRemoveCmd)
}

func runWhitelistList(cmd *cobra.Command, args []string) error {
	file, store, err := openStore()
	if err != nil {
		return err
	}
	defer file.Close()
	defer store.Close()
	return output.Print(output.WhitelistResult{Whitelist: store.List()})
}

func runWhitelistAdd(cmd *cobra.Command, args []string) error {
	return editWhitelist(args, true)
}

func runWhitelistRemove(cmd *cobra.Command, args []string) error {
	return editWhitelist(args, false)
}

func editWhitelist(ids []string, add bool) error {
	file, store, err := openStore()
	if err != nil {
		return err
	}
	defer file.Close()
	defer store.Close()

	changed := false
	for _, raw := range ids {
		id := model.NormalizeAppID(raw)
		if id == "" || store.Contains(id) == add {
			continue
		}
		op := store.Remove
		if add {
			op = store.Add
		}
		if err := op(id); err != nil {
			return err
		}
		changed = true
	}
	return output.Print(output.WhitelistResult{Whitelist: store.List(), Changed: changed})
}
