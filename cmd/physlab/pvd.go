package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-physlab/internal/pvd"
)

var flagPVDAddr string

var pvdCmd = &cobra.Command{
	Use:   "pvd",
	Short: "Start the remote visual debugger viewer",
	Long: `Listen for engines with the debugger enabled and log what they send:
the hello, a line per frame and the goodbye.

Enable the link in the config:

  debugger:
    enabled: true
    host: localhost
    port: 5425

Examples:
  physlab pvd
  physlab pvd --listen :6000`,
	Run: runPVD,
}

func init() {
	pvdCmd.Flags().StringVar(&flagPVDAddr, "listen", "", "Listen address (default: the configured debugger port)")
}

func runPVD(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	logger := newLogger(os.Stderr, cfg.Log, "pvd")

	addr := flagPVDAddr
	if addr == "" {
		addr = net.JoinHostPort("", strconv.Itoa(cfg.Debugger.Port))
	}

	viewer := pvd.NewServer(logEnvelope(logger), logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           viewer.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("viewer listening", "address", addr, "path", pvd.Path)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// logEnvelope returns a handler logging each message from an engine.
func logEnvelope(logger *log.Logger) pvd.Handler {
	return func(remote string, env pvd.Envelope) {
		switch env.T {
		case pvd.MsgHello:
			h, err := pvd.DecodePayload[pvd.Hello](env)
			if err != nil {
				logger.Warn("bad hello", "remote", remote, "error", err)
				return
			}
			logger.Info("hello", "remote", remote, "version", h.Version, "sim", h.SimType)

		case pvd.MsgFrame:
			f, err := pvd.DecodePayload[pvd.Frame](env)
			if err != nil {
				logger.Warn("bad frame", "remote", remote, "error", err)
				return
			}
			for _, a := range f.Actors {
				if !a.Dynamic {
					continue
				}
				logger.Debug("actor", "frame", f.Frame, "name", a.Name,
					"pos", fmtVec(a.Position), "vel", fmtVec(a.Velocity))
			}
			logger.Info("frame", "frame", f.Frame, "time", fmt.Sprintf("%.3f", f.Time), "actors", len(f.Actors))

		case pvd.MsgBye:
			b, _ := pvd.DecodePayload[pvd.Bye](env)
			logger.Info("bye", "remote", remote, "reason", b.Reason)

		default:
			logger.Warn("unknown message", "remote", remote, "type", env.T)
		}
	}
}

func fmtVec(v pvd.Vec3) string {
	return fmt.Sprintf("%.2f %.2f %.2f", v[0], v[1], v[2])
}
