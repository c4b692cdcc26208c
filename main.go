package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/viper"

	"github.com/kepler-games/aurora/battle-core/ipc"
	"github.com/kepler-games/aurora/battle-core/session"
	"github.com/kepler-games/aurora/battle-core/stream"
)

const banner = `
 █████╗ ██╗   ██╗██████╗  ██████╗ ██████╗  █████╗
██╔══██╗██║   ██║██╔══██╗██╔═══██╗██╔══██╗██╔══██╗
███████║██║   ██║██████╔╝██║   ██║██████╔╝███████║
██╔══██║██║   ██║██╔══██╗██║   ██║██╔══██╗██╔══██║
██║  ██║╚██████╔╝██║  ██║╚██████╔╝██║  ██║██║  ██║
╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝

Deterministic Battle Resolution`

func main() {
	viper.SetDefault("socket_path", "/tmp/aurora-battle.sock")
	viper.SetDefault("ws_addr", ":8077")
	viper.SetDefault("log_level", "info")
	viper.SetEnvPrefix("AURORA")
	viper.AutomaticEnv()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(viper.GetString("log_level")),
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	slog.Info("starting battle core")

	socketPath := viper.GetString("socket_path")

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(socketPath); err != nil {
		slog.Error("failed to clean up socket", "path", socketPath, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		slog.Error("failed to listen on socket", "path", socketPath, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	defer os.Remove(socketPath)

	slog.Info("listening on domain socket", "path", socketPath)

	hub := stream.NewHub()
	wsAddr := viper.GetString("ws_addr")
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/battles/live", hub)
		slog.Info("spectator stream listening", "addr", wsAddr)
		if err := http.ListenAndServe(wsAddr, mux); err != nil {
			slog.Error("spectator stream failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go handleConn(conn, hub)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
}

func handleConn(conn net.Conn, hub *stream.Hub) {
	c := ipc.NewConnection(conn, nil)
	s := session.New(c, hub)
	c.RegisterHandler(ipc.TypeHello, s.HandleHello)
	c.RegisterHandler(ipc.TypeStartBattle, s.HandleStartBattle)
	c.RegisterHandler(ipc.TypeIssueOrder, s.HandleIssueOrder)
	c.RegisterHandler(ipc.TypeAdvance, s.HandleAdvance)
	c.RegisterHandler(ipc.TypeRun, s.HandleRun)
	c.ReadLoop()
}

func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
