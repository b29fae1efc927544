package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	. "EvasiveDelete/internal/game"
	"EvasiveDelete/internal/physics"

	"golang.org/x/sync/errgroup"
)

type AppConfig struct {
	ConfigPath string
	Overrides  ButtonParamOverrides
	FrameHz    float64
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		ConfigPath: "configs/page.json",
		FrameHz:    FrameHz,
	}
}

func resolveButtonParams(cfg AppConfig) ButtonParams {
	params := DefaultButtonParams()
	loaded, err := loadButtonParamsFromFile(cfg.ConfigPath, params)
	if err != nil {
		log.Printf("page config: %v (using defaults)", err)
	} else {
		params = loaded
	}
	params = applyButtonOverrides(params, cfg.Overrides)
	return SanitizeButtonParams(params)
}

// NewApp builds the hub and its scheduler from cfg.
func NewApp(cfg AppConfig) *Hub {
	params := resolveButtonParams(cfg)
	hz := cfg.FrameHz
	if !(hz > 0) {
		hz = FrameHz
	}
	frames := physics.NewTimerFrames(hz, physics.SystemClock)
	sched := physics.NewScheduler(physics.SystemClock, frames)
	log.Printf("button params: mass %.2f friction %.2f impulse x%.2f [%.0f, %.0f] range (%.0f, %.0f), %.0f Hz",
		params.Mass, params.Friction, params.ImpulseScale, params.MinImpulse, params.MaxImpulse,
		params.RangeX, params.RangeY, hz)
	return NewHub(params, sched)
}

// StartApp serves the page until SIGINT or SIGTERM.
func StartApp(addr string, cfg AppConfig) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := Run(ctx, addr, NewApp(cfg)); err != nil {
		log.Fatal(err)
	}
}

// Run serves hub on addr until ctx is cancelled, then shuts the server down.
func Run(ctx context.Context, addr string, hub *Hub) error {
	srv := &http.Server{Addr: addr, Handler: newMux(hub)}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("starting web server on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Periodic cleanup of empty rooms
	g.Go(func() error {
		ticker := time.NewTicker(time.Duration(RoomIdleSeconds) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if n := hub.CleanupEmptyRooms(time.Duration(RoomIdleSeconds) * time.Second); n > 0 {
					log.Printf("removed %d idle rooms", n)
				}
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("shutting down web server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
