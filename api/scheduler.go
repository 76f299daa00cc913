/*
scheduler.go - Background risk snapshot refresh

PURPOSE:
  Periodically recomputes the risk score for every client and persists the
  result as a snapshot. The engine stays pure; this is the one place that
  materializes its output on a clock, so dashboards can show per-client risk
  without recomputing it on every page load.

SCHEDULE:
  Driven by a cron spec from configuration (default hourly). A run walks all
  profiles, derives, checks, scores, and writes one snapshot per client.
  Failures on one client are logged and do not abort the run.

SEE ALSO:
  - store/sqlite/sqlite.go: Snapshot persistence
  - engine/risk.go: Check and Score
*/
package api

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/warp/compliance-engine/engine"
	"github.com/warp/compliance-engine/store/sqlite"
)

// SnapshotWriter persists computed risk snapshots.
type SnapshotWriter interface {
	SaveRiskSnapshot(ctx context.Context, snap sqlite.RiskSnapshot) error
}

// Scheduler refreshes risk snapshots on a cron schedule.
type Scheduler struct {
	profiles  engine.ProfileStore
	snapshots SnapshotWriter
	log       *logrus.Logger
	cron      *cron.Cron
}

// NewScheduler creates a scheduler; call Start to begin running.
func NewScheduler(profiles engine.ProfileStore, snapshots SnapshotWriter, log *logrus.Logger) *Scheduler {
	if log == nil {
		log = logrus.New()
	}
	return &Scheduler{
		profiles:  profiles,
		snapshots: snapshots,
		log:       log,
		cron:      cron.New(),
	}
}

// Start registers the refresh job under the given cron spec and starts the
// cron loop. An invalid spec is returned as an error without starting.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() {
		s.RefreshAll(context.Background())
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.log.WithField("spec", spec).Info("risk snapshot scheduler started")
	return nil
}

// Stop halts the cron loop and waits for any in-flight run to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("risk snapshot scheduler stopped")
}

// RefreshAll recomputes and persists a risk snapshot for every client.
// Per-client failures are logged and skipped.
func (s *Scheduler) RefreshAll(ctx context.Context) {
	started := time.Now()

	clients, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		s.log.WithError(err).Error("snapshot run failed to list profiles")
		return
	}

	refreshed := 0
	for _, profile := range clients {
		derived := engine.Derive(profile)
		findings := engine.Check(profile, derived)
		score := engine.Score(findings)

		snap := sqlite.RiskSnapshot{
			ClientID:   profile.ClientID,
			Score:      score,
			Findings:   findings,
			ComputedAt: time.Now().UTC(),
		}
		if err := s.snapshots.SaveRiskSnapshot(ctx, snap); err != nil {
			s.log.WithError(err).WithField("client", profile.ClientID).
				Error("failed to save risk snapshot")
			continue
		}
		refreshed++
	}

	snapshotRuns.Inc()
	s.log.WithFields(logrus.Fields{
		"clients":  refreshed,
		"duration": time.Since(started).Round(time.Millisecond),
	}).Info("risk snapshot run complete")
}
