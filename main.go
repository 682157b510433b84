package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// ipRateLimiter tracks last connection time per IP to prevent abuse.
type ipRateLimiter struct {
	mu    sync.Mutex
	times map[string]time.Time
}

func newIPRateLimiter() *ipRateLimiter {
	rl := &ipRateLimiter{times: make(map[string]time.Time)}
	// Cleanup stale entries every 60s
	go func() {
		for range time.Tick(60 * time.Second) {
			rl.mu.Lock()
			cutoff := time.Now().Add(-time.Duration(IPCooldownSec) * time.Second)
			for ip, t := range rl.times {
				if t.Before(cutoff) {
					delete(rl.times, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
	return rl
}

// allow returns true if this IP can connect, and records the attempt.
func (rl *ipRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if last, ok := rl.times[ip]; ok {
		if time.Since(last) < time.Duration(IPCooldownSec)*time.Second {
			return false
		}
	}
	rl.times[ip] = time.Now()
	return true
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development; tighten in production
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// sendErrorAndClose rejects a freshly upgraded connection with a reason.
func sendErrorAndClose(ws *websocket.Conn, log *slog.Logger, msg string) {
	c := &Conn{ws: ws}
	if err := c.Send(ErrorMsg{Type: EvtError, Message: msg}); err != nil {
		log.Warn("reject send failed", "err", err)
	}
	ws.Close()
}

func main() {
	cfg := ConfigFromEnv()
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	world := NewWorld(cfg)
	conns := NewConnManager(log)
	game := NewGame(cfg, world, conns, log)
	bcast := NewBroadcaster(cfg, world, conns, log)
	bots := NewBotManager(cfg, game, world, log)
	bots.Spawn(BotCount)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return bcast.Run(ctx) })
	g.Go(func() error { return bots.Run(ctx) })

	rateLimiter := newIPRateLimiter()
	mux := http.NewServeMux()
	mux.HandleFunc(WebSocketPath, func(w http.ResponseWriter, r *http.Request) {
		// Handle X-Forwarded-For for reverse proxies
		ip := r.Header.Get("X-Forwarded-For")
		if ip == "" {
			ip, _, _ = net.SplitHostPort(r.RemoteAddr)
		}

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("ws upgrade failed", "err", err)
			return
		}

		// Check limits after upgrade so the client can receive the reason
		if conns.Count() >= MaxPlayers {
			sendErrorAndClose(ws, log, "Server full. Please try again later.")
			return
		}
		if !rateLimiter.allow(ip) {
			sendErrorAndClose(ws, log, "Too many connections. Please wait and retry.")
			return
		}

		conn := NewConn(ws)
		conns.Add(conn)
		log.Info("connection opened", "conn", conn.ID, "ip", ip)

		// Blocks until the client goes away
		conn.ReadLoop(conns, game, log)
		log.Info("connection closed", "conn", conn.ID)
	})
	mux.Handle("/", http.FileServer(http.Dir(envString("LADD_STATIC_DIR", StaticDir))))

	srv := &http.Server{Addr: envString("LADD_ADDR", ServerPort), Handler: mux}
	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr, "tickRate", cfg.TickRate)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "err", err)
		os.Exit(1)
	}
	log.Info("server shutdown complete")
}
