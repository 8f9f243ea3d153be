// ABOUTME: MCP serve command
// ABOUTME: Starts the MCP server so AI agents can drive a navigation session

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/vantage/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(nil)
		if err != nil {
			return err
		}
		defer sess.Close()

		server, err := mcp.NewServer(sess, db, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
