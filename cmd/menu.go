package cmd

import (
	"fmt"

	"github.com/mj1618/undecorate/internal/decorate"
	"github.com/mj1618/undecorate/internal/model"
	"github.com/mj1618/undecorate/internal/output"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show or run the decoration actions of a window's menu",
	Long: `Show the decoration actions the window menu offers for a window, or run one
of them with --invoke.

Examples:
  undecorate menu --window-id 0x3a00007
  undecorate menu --window-id 0x3a00007 --invoke "Always Undecorate App"`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
	menuCmd.Flags().String("window-id", "", "Window id, e.g. 0x3a00007 (see `undecorate list`)")
	menuCmd.Flags().String("invoke", "", "Run the menu action with this label")
	_ = menuCmd.MarkFlagRequired("window-id")
}

func runMenu(cmd *cobra.Command, args []string) (err error) {
	windowID, _ := cmd.Flags().GetString("window-id")
	invoke, _ := cmd.Flags().GetString("invoke")

	sess, err := openSession(false)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w, err := sess.findWindow(windowID)
	if err != nil {
		return err
	}
	if err := sess.ctrl.Start(); err != nil {
		return err
	}

	menu := &decorate.RecordingMenu{}
	sess.ctrl.AugmentMenu(menu, w)

	if invoke == "" {
		app, ok := sess.resolver.Resolve(w)
		return output.Print(output.MenuResult{
			Window: model.NewWindow(w, app, ok && sess.store.Contains(app)),
			Items:  menu.Actions(),
		})
	}

	if err := menu.Invoke(invoke); err != nil {
		return fmt.Errorf("%s: %w", invoke, err)
	}
	app, ok := sess.resolver.Resolve(w)
	snap := model.NewWindow(w, app, ok && sess.store.Contains(app))
	return output.Print(model.ActionResult{OK: true, Action: invoke, Window: &snap})
}
