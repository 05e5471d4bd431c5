package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an SSH server for remote play",
	Long: `Start an SSH server. Every connection plays its own game; all players
share the server's scoreboard.

The mode is taken from the SSH command and defaults to "snake":
  ssh -t localhost -p 23234
  ssh -t localhost -p 23234 snake_wrap

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

Examples:
  snake serve
  snake serve --ssh :2222
  snake serve --host-key ./host_key --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.FPS = flagFPS

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("snake-ssh"))
	if err != nil {
		return err
	}
	return server.ListenAndServe()
}
