package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/fcvenelles/club-results/internal/platform/logging"
)

type RefreshInput struct {
	ClubIDs    []string
	MaxWorkers int
}

type RefreshResult struct {
	ClubCount    int                 `json:"club_count"`
	TaskCount    int                 `json:"task_count"`
	SuccessCount int                 `json:"success_count"`
	FailedCount  int                 `json:"failed_count"`
	WorkerCount  int                 `json:"worker_count"`
	Tasks        []RefreshTaskResult `json:"tasks"`
}

type RefreshTaskResult struct {
	ClubID     string `json:"club_id"`
	Feed       string `json:"feed"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

const (
	refreshStatusSuccess = "success"
	refreshStatusFailed  = "failed"

	refreshFeedInfo     = "info"
	refreshFeedResults  = "results"
	refreshFeedCalendar = "calendar"
	refreshFeedTeams    = "teams"
)

var refreshFeeds = []string{refreshFeedInfo, refreshFeedResults, refreshFeedCalendar, refreshFeedTeams}

type refreshTask struct {
	clubID string
	feed   string
}

// RefreshService warms the upstream payload cache by walking every feed of
// the requested clubs through the gateway. Fetched data is discarded here;
// the value is the primed cache the user-facing lookups then hit.
type RefreshService struct {
	gateway        FederationGateway
	logger         *logging.Logger
	defaultClubID  string
	defaultWorkers int
}

func NewRefreshService(gateway FederationGateway, logger *logging.Logger, defaultClubID string) *RefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RefreshService{
		gateway:        gateway,
		logger:         logger,
		defaultClubID:  defaultClubID,
		defaultWorkers: 2,
	}
}

// WithDefaultWorkers overrides the worker count used when a refresh request
// does not name one.
func (s *RefreshService) WithDefaultWorkers(n int) *RefreshService {
	if n >= 1 {
		s.defaultWorkers = n
	}
	return s
}

func (s *RefreshService) Refresh(ctx context.Context, input RefreshInput) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.Refresh")
	defer span.End()

	clubIDs := normalizeRefreshClubIDs(input.ClubIDs, s.defaultClubID)
	if len(clubIDs) == 0 {
		return RefreshResult{}, fmt.Errorf("%w: at least one club id is required", ErrInvalidInput)
	}

	tasks := make([]refreshTask, 0, len(clubIDs)*len(refreshFeeds))
	for _, clubID := range clubIDs {
		for _, feed := range refreshFeeds {
			tasks = append(tasks, refreshTask{clubID: clubID, feed: feed})
		}
	}

	workerCount := normalizeRefreshWorkerCount(input.MaxWorkers, s.defaultWorkers, len(tasks))
	result := RefreshResult{
		ClubCount:   len(clubIDs),
		TaskCount:   len(tasks),
		WorkerCount: workerCount,
		Tasks:       make([]RefreshTaskResult, 0, len(tasks)),
	}

	results := make(chan RefreshTaskResult, len(tasks))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RefreshTaskResult{
				ClubID: task.clubID,
				Feed:   task.feed,
				Status: refreshStatusSuccess,
			}
			if err := s.warmFeed(ctx, task.clubID, task.feed); err != nil {
				row.Status = refreshStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			results <- row
		}); err != nil {
			workers.Done()
			return RefreshResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}

	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].ClubID != result.Tasks[j].ClubID {
			return result.Tasks[i].ClubID < result.Tasks[j].ClubID
		}
		return result.Tasks[i].Feed < result.Tasks[j].Feed
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}

func (s *RefreshService) warmFeed(ctx context.Context, clubID, feed string) error {
	switch feed {
	case refreshFeedInfo:
		_, err := s.gateway.ClubInfo(ctx, clubID)
		return err
	case refreshFeedResults:
		_, err := s.gateway.ClubResults(ctx, clubID)
		return err
	case refreshFeedCalendar:
		_, err := s.gateway.ClubCalendar(ctx, clubID)
		return err
	case refreshFeedTeams:
		_, err := s.gateway.ClubTeams(ctx, clubID)
		return err
	default:
		return fmt.Errorf("unsupported feed %q", feed)
	}
}

func normalizeRefreshClubIDs(raw []string, defaultClubID string) []string {
	if len(raw) == 0 {
		raw = []string{defaultClubID}
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, exists := seen[item]; exists {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func normalizeRefreshWorkerCount(value, fallback, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = fallback
	}
	if value <= 0 {
		value = 2
	}
	if value > 4 {
		value = 4
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
