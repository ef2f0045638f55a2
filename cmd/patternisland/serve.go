package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pattern-island/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets players connect and play.

Each SSH connection gets its own session. The SSH user name is the
profile, so progress follows the login.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses the configured path (auto-generated when missing)

Examples:
  patternisland serve                           # Listen on the configured address
  patternisland serve --ssh :2222               # Listen on port 2222
  patternisland serve --host-key ./my_host_key  # Use specific host key

Players can connect with:
  ssh ada@localhost -p 2222`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runServe(); err != nil {
			fatal(err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe() error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := tui.DefaultSSHConfig()
	cfg.Addr = fmt.Sprintf("%s:%d", a.cfg.Server.SSHHost, a.cfg.Server.SSHPort)
	if flagSSHAddr != "" {
		cfg.Addr = flagSSHAddr
	}
	cfg.HostKeyPath = a.cfg.Server.HostKeyPath
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	server, err := tui.NewSSHServer(cfg, a.svc, a.log)
	if err != nil {
		return err
	}

	fmt.Printf("Starting Pattern Island SSH server on %s\n", cfg.Addr)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx)
}
