package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"codesync/internal/metrics"
	"codesync/internal/session"
	"codesync/internal/ws"
)

// StatsReporter periodically logs hub occupancy and refreshes the room and
// connection gauges.
type StatsReporter struct {
	cron     *cron.Cron
	coord    *session.Coordinator
	groups   *ws.Groups
	log      *zap.Logger
	schedule string
}

func NewStatsReporter(coord *session.Coordinator, groups *ws.Groups, schedule string, log *zap.Logger) *StatsReporter {
	return &StatsReporter{coord: coord, groups: groups, schedule: schedule, log: log}
}

func (s *StatsReporter) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, s.Collect); err != nil {
		return fmt.Errorf("schedule stats reporter: %w", err)
	}
	s.cron.Start()
	return nil
}

func (s *StatsReporter) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Collect takes one stats sample.
func (s *StatsReporter) Collect() {
	connections, rooms := s.groups.Counts()
	registered, documents := s.coord.Stats()

	metrics.ActiveConnections.Set(float64(connections))
	metrics.ActiveRooms.Set(float64(rooms))
	metrics.TrackedDocuments.Set(float64(documents))

	s.log.Info("hub stats",
		zap.Int("connections", connections),
		zap.Int("rooms", rooms),
		zap.Int("registeredUsers", registered),
		zap.Int("trackedDocuments", documents),
	)
}
