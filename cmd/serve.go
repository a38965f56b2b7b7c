package cmd

import (
	"fmt"

	"github.com/mj1618/undecorate/internal/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the daemon with an MCP server exposing window menu and whitelist tools",
	Long: `Run the decoration daemon and a Model Context Protocol (MCP) server that
exposes the window menu actions and the whitelist as tools.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  undecorate serve
  undecorate serve --transport streamable-http --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	sess, err := openSession(true)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := sess.ctrl.Start(); err != nil {
		return fmt.Errorf("failed to start controller: %w", err)
	}

	srv := server.New(sess.provider.Windows, sess.resolver, sess.store, sess.ctrl, logrus.StandardLogger().WithField("component", "mcp"))
	return srv.Serve(server.Config{Transport: transport, Port: port})
}
