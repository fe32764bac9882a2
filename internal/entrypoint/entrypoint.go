package entrypoint

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/audit"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/config"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/embedded"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/scheduler"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store/switcher"
)

// Run brings the storage core up and keeps it running until SIGINT/SIGTERM.
// Startup never aborts on a down durable tier; the switcher falls back to the
// volatile store and the process stays serviceable.
func Run(cfg *config.Config, version string) {
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(level)
	}
	log := logrus.WithField("component", "entrypoint")
	log.WithField("version", version).Info("starting MehguViewer core")

	sw := switcher.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := sw.Startup(ctx, switcher.StartupOptions{
		Embedded:     embedded.LocalFile(cfg.Database.EmbeddedPath),
		EmbeddedWait: cfg.Database.StartupWait,
		ExternalDSN:  cfg.Database.ExternalDSN,
	})
	if err != nil {
		log.WithError(err).Fatal("storage startup interrupted")
	}
	log.WithField("mode", sw.Mode()).Info("storage ready")

	if cfg.Demo.Enabled {
		if err := sw.SeedSampleData(); err != nil {
			log.WithError(err).Error("seeding sample data")
		}
	}

	if pruned, err := sw.SyncPermissions(); err != nil {
		log.WithError(err).Error("syncing edit permissions")
	} else if pruned > 0 {
		log.WithField("targets", pruned).Info("permission ledger synced")
	}

	recorder := audit.NewRecorder(cfg.Audit.Dir)
	sweep := scheduler.NewPermissionSyncScheduler(sw, recorder, cfg.Maintenance.SyncSchedule)
	if err := sweep.Start(ctx); err != nil {
		log.WithError(err).Error("starting permission sweep scheduler")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	log.WithField("timeout", timeout).Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()
	done := make(chan struct{})
	go func() {
		sweep.Stop()
		if err := sw.Close(); err != nil {
			log.WithError(err).Error("closing storage")
		}
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warn("shutdown timeout exceeded")
	}
	log.Info("core exiting")
}
