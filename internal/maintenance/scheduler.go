package maintenance

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"futsald/internal/maintenance/interfaces"
	"futsald/internal/providers"
	"futsald/internal/services"
	"futsald/internal/store"
	"futsald/internal/structures"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	store       *store.Store
	attendance  services.AttendanceServiceInterface
	board       services.BoardServiceInterface
	fileManager *FileManager
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
		s.logger.Infof(providers.TypeApp, "Persisted data to file %s", s.config.Persistence.FilePath)
	})

	s.cron.AddFunc(gron.Every(s.config.Attendance.TickInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()
		s.rolloverTick(time.Now())
	})

	s.cron.AddFunc(gron.Every(s.config.Board.ExpireInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		removed := s.board.Expire(time.Now())
		if removed > 0 {
			s.logger.Infof(providers.TypeApp, "Expired %d board messages", removed)
		}
	})

	s.cron.Start()
}

// rolloverTick fires the day boundary reset at most once per day key. The
// persisted marker is advanced first; losing the race to another ticker means
// the reset already happened and this tick does nothing.
func (s *Scheduler) rolloverTick(now time.Time) {
	key := s.attendance.ActiveDay(now)
	prev := s.store.LastRolloverDate()
	if prev == key {
		return
	}
	if !s.store.AdvanceRollover(prev, key) {
		return
	}

	s.attendance.ResetDay(key, true)
	s.metrics.IncRollovers()
	s.logger.Infof(providers.TypeApp, "Day rolled over to %s", key)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
	if err != nil {
		return err
	}
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting store to file...")
	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, st *store.Store, attendance services.AttendanceServiceInterface, board services.BoardServiceInterface, fileManager *FileManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		metrics:     metrics,
		store:       st,
		attendance:  attendance,
		board:       board,
		fileManager: fileManager,
	}
}
