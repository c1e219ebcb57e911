package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/moodtrail/moodtrail/internal/api"
	"github.com/moodtrail/moodtrail/internal/app/engagement"
	"github.com/moodtrail/moodtrail/internal/app/journal"
	"github.com/moodtrail/moodtrail/internal/health"
	"github.com/moodtrail/moodtrail/internal/infra/sqlite"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 15 * time.Second

// Daemon is the moodtrail runtime. It wires together all services.
type Daemon struct {
	Config  Config
	Log     *zap.Logger
	DB      *sqlite.DB
	Engine  *engagement.Engine
	Journal *journal.Service
	Health  *health.Checker
	Server  *api.Server
}

// New creates a Daemon from $MOODTRAIL_HOME/config.toml.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	log, err := NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	catalog, err := engagement.LoadCatalogFile(cfg.Engagement.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	loc := engagement.ParseTimezone(cfg.Calendar.Timezone)
	if tz := cfg.Calendar.Timezone; loc == time.UTC && tz != "" && !strings.EqualFold(tz, "UTC") {
		log.Warn("unknown timezone, using UTC", zap.String("timezone", tz))
	}

	db, err := sqlite.Open(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	engine := engagement.NewEngine(catalog, engagement.NewCalendar(loc), engagement.RecommendOptions{
		Limit:       cfg.Engagement.RecommendLimit,
		MinProgress: cfg.Engagement.MinRecommendProgress,
	})
	svc := journal.NewService(db, engine, journal.Options{
		Policy: cfg.Policy(),
		Logger: log,
	})

	checker := health.NewChecker(db, cfg.Storage.Dir, catalog.Len(), log)

	srv := api.NewServer(svc, log)
	srv.SetHealth(checker)
	srv.SetCORSOrigins(cfg.API.CORSOrigins)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	log.Debug("daemon initialized",
		zap.String("storage", cfg.Storage.Dir),
		zap.String("timezone", loc.String()),
		zap.Int("achievements", catalog.Len()),
	)

	return &Daemon{
		Config:  cfg,
		Log:     log,
		DB:      db,
		Engine:  engine,
		Journal: svc,
		Health:  checker,
		Server:  srv,
	}, nil
}

// Addr is the configured listen address.
func (d *Daemon) Addr() string {
	return net.JoinHostPort(d.Config.API.Host, strconv.Itoa(d.Config.API.Port))
}

// Serve runs the HTTP server and the health checker until ctx is done or
// SIGINT/SIGTERM arrives, then shuts down gracefully.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              d.Addr(),
		Handler:           d.Server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		d.Log.Info("serving", zap.String("addr", "http://"+d.Addr()))
		if d.Config.Telemetry.Prometheus {
			d.Log.Info("metrics enabled", zap.String("addr", "http://"+d.Addr()+"/metrics"))
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return d.Health.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		d.Log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close releases all daemon resources.
func (d *Daemon) Close() error {
	var err error
	if d.DB != nil {
		err = d.DB.Close()
	}
	if d.Log != nil {
		_ = d.Log.Sync()
	}
	return err
}
