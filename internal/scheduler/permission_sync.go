// Package scheduler runs the periodic maintenance jobs of the storage core.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/audit"
)

// PermissionSyncer prunes orphaned edit grants; the switcher implements it.
type PermissionSyncer interface {
	SyncPermissions() (int, error)
}

// PermissionSyncScheduler sweeps the permission ledger on a cron schedule,
// deleting grants whose target no longer exists.
type PermissionSyncScheduler struct {
	syncer   PermissionSyncer
	recorder *audit.Recorder
	schedule string
	log      *logrus.Entry

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewPermissionSyncScheduler(syncer PermissionSyncer, recorder *audit.Recorder, schedule string) *PermissionSyncScheduler {
	return &PermissionSyncScheduler{
		syncer:   syncer,
		recorder: recorder,
		schedule: schedule,
		log:      logrus.WithField("component", "permission-sync"),
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the schedule. An empty schedule leaves the scheduler idle;
// sweeps can still be triggered with RunNow.
func (s *PermissionSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.schedule == "" {
		s.log.Info("no schedule configured, periodic sweeps disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runSweep)
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true
	s.log.WithField("schedule", s.schedule).Info("started")

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *PermissionSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil
	s.log.Info("stopped")
}

// RunNow triggers an immediate sweep.
func (s *PermissionSyncScheduler) RunNow() {
	go s.runSweep()
}

func (s *PermissionSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next sweep fires, nil while stopped.
func (s *PermissionSyncScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *PermissionSyncScheduler) runSweep() {
	start := time.Now()
	pruned, err := s.syncer.SyncPermissions()
	if err != nil {
		s.log.WithError(err).Error("sweep failed")
		s.record(audit.Event{Action: "permission_sync", Error: err.Error()})
		return
	}
	if pruned > 0 {
		s.log.WithFields(logrus.Fields{
			"targets":  pruned,
			"duration": time.Since(start).Round(time.Millisecond),
		}).Info("pruned orphaned grants")
		s.record(audit.Event{
			Action: "permission_sync",
			Detail: fmt.Sprintf("pruned grants for %d orphaned targets", pruned),
		})
	}
}

func (s *PermissionSyncScheduler) record(e audit.Event) {
	if s.recorder == nil {
		return
	}
	if _, err := s.recorder.Record(e); err != nil {
		s.log.WithError(err).Warn("recording audit event")
	}
}
