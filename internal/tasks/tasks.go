package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/orillasdelcoilaco/staymanager-sub002/internal/config"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/services"
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// TaskType defines the type of a background task.
const (
	TypeProposalExpiry = "reservation:proposal:expire"
)

// ProposalExpiryPayload carries the parameters of one expiry sweep. An empty
// TenantID sweeps all tenants; a zero ThresholdHours falls back to the
// configured proposal expiry.
type ProposalExpiryPayload struct {
	TenantID       string `json:"tenant_id,omitempty"`
	ThresholdHours int    `json:"threshold_hours,omitempty"`
}

// NewProposalExpiryTask builds the asynq task for one sweep run.
func NewProposalExpiryTask(payload ProposalExpiryPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal proposal expiry payload: %w", err)
	}
	return asynq.NewTask(TypeProposalExpiry, data), nil
}

func redisOpt(rdb *redis.Client) asynq.RedisClientOpt {
	opts := rdb.Options()
	return asynq.RedisClientOpt{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}
}

// --- Task Client (Enqueuing tasks) ---

func NewClient(rdb *redis.Client) *asynq.Client {
	return asynq.NewClient(redisOpt(rdb))
}

// --- Task Server (Processing tasks) ---

// TaskProcessor handles the processing of tasks.
// It holds dependencies needed by task handlers.
type TaskProcessor struct {
	cfg              *config.Config
	analyticsService services.IAnalyticsService
}

func NewTaskProcessor(cfg *config.Config, analyticsService services.IAnalyticsService) *TaskProcessor {
	return &TaskProcessor{
		cfg:              cfg,
		analyticsService: analyticsService,
	}
}

// SetupServer configures an Asynq server and the handler mux for the
// background worker. The caller runs the server.
func SetupServer(rdb *redis.Client, processor *TaskProcessor) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		redisOpt(rdb),
		asynq.Config{
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq Error] Task Type: %s, Payload: %s, Error: %v", task.Type(), string(task.Payload()), err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeProposalExpiry, processor.HandleProposalExpiryTask)

	return srv, mux
}

// SetupScheduler configures the periodic enqueue of the expiry sweep. The
// caller runs the scheduler alongside the task server.
func SetupScheduler(rdb *redis.Client, cfg *config.Config) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt(rdb), &asynq.SchedulerOpts{
		Location: time.UTC,
	})

	task, err := NewProposalExpiryTask(ProposalExpiryPayload{})
	if err != nil {
		return nil, err
	}

	spec := fmt.Sprintf("@every %s", cfg.SweepInterval)
	entryID, err := scheduler.Register(spec, task, asynq.Queue("default"))
	if err != nil {
		return nil, fmt.Errorf("failed to register proposal expiry schedule: %w", err)
	}
	log.Printf("Registered proposal expiry sweep %s (%s)", entryID, spec)

	return scheduler, nil
}

// --- Task Handlers ---

// HandleProposalExpiryTask runs one expiry sweep over stale payment-pending
// proposals. Sweep-internal group failures are logged and counted by the
// service; only a failure to read the pending set bubbles up for retry.
func (p *TaskProcessor) HandleProposalExpiryTask(ctx context.Context, t *asynq.Task) error {
	var payload ProposalExpiryPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal proposal expiry payload: %v: %w", err, asynq.SkipRetry)
	}

	var tenantID utils.SixID
	if payload.TenantID != "" {
		var err error
		tenantID, err = utils.ParseSixID(payload.TenantID)
		if err != nil {
			log.Printf("Invalid TenantID in proposal expiry payload: %s", payload.TenantID)
			return fmt.Errorf("invalid tenant ID in payload: %w", asynq.SkipRetry)
		}
	}

	threshold := p.cfg.ProposalExpiry
	if payload.ThresholdHours > 0 {
		threshold = time.Duration(payload.ThresholdHours) * time.Hour
	}

	summary, err := p.analyticsService.SweepExpiredProposals(ctx, tenantID, threshold)
	if err != nil {
		log.Printf("Proposal expiry sweep failed: %v", err)
		return err
	}

	log.Printf("Proposal expiry sweep %s done: %d groups expired (%d rows), %d groups failed",
		summary.RunID, summary.GroupsExpired, summary.RowsExpired, summary.GroupsFailed)
	return nil
}
