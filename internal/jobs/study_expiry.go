package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prosn/api/internal/service"
)

// StudyExpirySweeper periodically removes study groups whose expiry
// date has passed, with the same cascade as an owner delete.
type StudyExpirySweeper struct {
	studyService *service.StudyService
	interval     time.Duration
	stopCh       chan struct{}
	wg           sync.WaitGroup
	running      bool
	mu           sync.Mutex
}

// NewStudyExpirySweeper creates a new study expiry sweeper job
func NewStudyExpirySweeper(studyService *service.StudyService, interval time.Duration) *StudyExpirySweeper {
	if interval == 0 {
		interval = time.Hour
	}
	return &StudyExpirySweeper{
		studyService: studyService,
		interval:     interval,
		stopCh:       make(chan struct{}),
	}
}

// Start begins the sweeper job
func (s *StudyExpirySweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()
	slog.Info("study expiry sweeper started", slog.Duration("interval", s.interval))
}

// Stop gracefully stops the sweeper job
func (s *StudyExpirySweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	slog.Info("study expiry sweeper stopped")
}

func (s *StudyExpirySweeper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *StudyExpirySweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	removed, err := s.studyService.SweepExpired(ctx)
	if err != nil {
		slog.Error("study expiry sweep failed", slog.Any("error", err))
		return
	}
	if removed > 0 {
		slog.Info("expired study groups removed", slog.Int("count", removed))
	}
}

// RunOnce runs one sweep immediately (for testing or manual trigger)
func (s *StudyExpirySweeper) RunOnce(ctx context.Context) (int, error) {
	return s.studyService.SweepExpired(ctx)
}

// IsRunning returns whether the sweeper is running
func (s *StudyExpirySweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
