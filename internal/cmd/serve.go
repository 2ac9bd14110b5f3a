package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/xdg/connectproxy/internal/audit"
	"github.com/xdg/connectproxy/internal/clog"
	"github.com/xdg/connectproxy/internal/config"
	"github.com/xdg/connectproxy/internal/resultlog"
	"github.com/xdg/connectproxy/internal/term"
	"github.com/xdg/connectproxy/internal/tunnel"
)

var listenFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the CONNECT tunneling proxy",
	Long: `Run the proxy's Accept Loop until interrupted.

Accepts TCP connections, decodes HTTP/1.1 CONNECT requests, checks the
requested target against the configured policy, dials the target, and
relays bytes bidirectionally under the configured timeouts. Reads runtime
settings from the config file (see "connectproxy config show"); --listen
overrides the configured listen address.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenFlag, "listen", "", "address to listen on, overrides config")
}

func runServe(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadFileConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	listen := fileCfg.Listen
	if listenFlag != "" {
		listen = listenFlag
	}
	if listen == "" {
		listen = ":3128"
	}

	tunnelCfg, err := config.Build(fileCfg)
	if err != nil {
		return fmt.Errorf("build config: %w", err)
	}

	resultSink, closeSink, err := newResultSink(fileCfg.Log)
	if err != nil {
		return fmt.Errorf("open result log: %w", err)
	}
	defer closeSink()

	pipelineLog := audit.NewLogger(os.Stderr)

	ln, err := net.Listen("tcp", listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listen, err)
	}
	defer ln.Close()

	srv := tunnel.NewServer(tunnelCfg, tunnel.TCPDialer{}, tunnel.UUIDGenerator{}, resultSink, pipelineLog)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	term.Printf("connectproxy listening on %s (max_open_connections=%d)", listen, tunnelCfg.MaxOpenConnections)
	clog.Info("serve: listening on %s", listen)

	err = srv.Serve(ctx, ln)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// newResultSink builds the structured per-request result sink described by
// cfg, returning a cleanup func that closes any file it opened.
func newResultSink(cfg config.LogConfig) (*resultlog.Sink, func(), error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.ResultFile == "" {
		return resultlog.New(os.Stdout, level), func() {}, nil
	}

	f, err := clog.OpenLogFile(cfg.ResultFile)
	if err != nil {
		return nil, nil, err
	}
	return resultlog.New(f, level), func() { _ = f.Close() }, nil
}
