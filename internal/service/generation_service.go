package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/tunestory/api/internal/config"
	"github.com/tunestory/api/internal/model"
	"github.com/tunestory/api/internal/prompt"
	"github.com/tunestory/api/internal/storage"
)

const (
	TaskTypeGenerate = "generate:process"
	QueueGenerate    = "generate"

	minTemperature  = 0.1
	maxTemperature  = 2.0
	temperatureStep = 0.1
)

var (
	ErrJobNotFound     = storage.ErrJobNotFound
	ErrJobNotCompleted = errors.New("job not completed")
	ErrJobFinished     = errors.New("job already finished")
	ErrEmptyPrompt     = errors.New("prompt is empty")
	ErrJobCanceled     = errors.New("job was canceled")
)

// Enqueuer is the part of *asynq.Client the service needs
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskPayload is the asynq envelope shared with the worker
type TaskPayload struct {
	JobID   string          `json:"jobId"`
	Payload json.RawMessage `json:"payload"`
}

// GenerationService manages music generation jobs
type GenerationService struct {
	jobs     *storage.JobStore
	enqueuer Enqueuer
	defaults config.GenerationConfig
	now      func() time.Time
}

func NewGenerationService(jobs *storage.JobStore, enqueuer Enqueuer, defaults config.GenerationConfig) *GenerationService {
	return &GenerationService{
		jobs:     jobs,
		enqueuer: enqueuer,
		defaults: defaults,
		now:      time.Now,
	}
}

// Start queues a new generation job
func (s *GenerationService) Start(ctx context.Context, userID string, req *model.GenerateRequest) (*model.GenerateStartResponse, error) {
	payload, err := s.buildPayload(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	now := s.now()
	job := &model.Job{
		ID:        uuid.New().String(),
		Type:      model.JobTypeGenerate,
		UserID:    userID,
		Status:    model.JobStatusQueued,
		Payload:   payloadBytes,
		CreatedAt: now,
	}

	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	task, err := NewGenerateTask(job.ID, payloadBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	_, err = s.enqueuer.EnqueueContext(ctx, task,
		asynq.Queue(QueueGenerate),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
		asynq.Retention(s.jobTTL()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue task: %w", err)
	}

	return &model.GenerateStartResponse{
		JobID:             job.ID,
		Status:            model.JobStatusQueued,
		Prompt:            payload.Prompt,
		EstimatedDuration: EstimateSeconds(payload.Duration, payload.ModelSize),
		CreatedAt:         now,
	}, nil
}

func (s *GenerationService) buildPayload(ctx context.Context, userID string, req *model.GenerateRequest) (*model.GenerationJobPayload, error) {
	payload := &model.GenerationJobPayload{
		UserID:      userID,
		Prompt:      strings.TrimSpace(req.Prompt),
		Duration:    req.Duration,
		Temperature: req.Temperature,
		ModelSize:   req.ModelSize,
		Variation:   req.Variation,
	}
	if payload.Prompt == "" && req.Refined != nil {
		payload.Prompt = prompt.Build(prompt.FromRefined(*req.Refined, req.StyleLevel, req.VocalType))
	}

	if req.ParentJobID != "" {
		parent, err := s.ownedJob(ctx, userID, req.ParentJobID)
		if err != nil {
			return nil, fmt.Errorf("parent job: %w", err)
		}
		var prev model.GenerationJobPayload
		if err := json.Unmarshal(parent.Payload, &prev); err != nil {
			return nil, fmt.Errorf("failed to read parent payload: %w", err)
		}
		payload.ParentJobID = parent.ID
		if payload.Prompt == "" {
			payload.Prompt = prev.Prompt
		}
		if payload.Duration == 0 {
			payload.Duration = prev.Duration
		}
		if payload.ModelSize == "" {
			payload.ModelSize = prev.ModelSize
		}
		if payload.Temperature == 0 {
			payload.Temperature = prev.Temperature
		}
		if payload.Variation == "" {
			payload.Variation = model.VariationSeed
		}
	}

	if payload.Prompt == "" {
		return nil, ErrEmptyPrompt
	}
	if payload.Duration == 0 {
		payload.Duration = s.defaults.DefaultDuration
	}
	if payload.Temperature == 0 {
		payload.Temperature = s.defaults.DefaultTemperature
	}
	if payload.ModelSize == "" {
		payload.ModelSize = model.ModelSize(s.defaults.DefaultModelSize)
	}
	if payload.Variation == model.VariationParams || payload.Variation == model.VariationBoth {
		payload.Temperature = NudgeTemperature(payload.Temperature)
	}
	return payload, nil
}

// NudgeTemperature moves t by one step, upward unless that leaves the valid range
func NudgeTemperature(t float64) float64 {
	next := t + temperatureStep
	if next > maxTemperature+1e-9 {
		next = t - temperatureStep
	}
	next = math.Max(minTemperature, math.Min(maxTemperature, next))
	return math.Round(next*100) / 100
}

// EstimateSeconds is a rough wall-clock guess for a MusicGen run
func EstimateSeconds(duration int, size model.ModelSize) int {
	factor := 1
	switch size {
	case model.ModelMedium, model.ModelMelody:
		factor = 2
	case model.ModelLarge:
		factor = 4
	}
	return 10 + duration*factor
}

func (s *GenerationService) Status(ctx context.Context, userID, jobID string) (*model.GenerateStatusResponse, error) {
	job, err := s.ownedJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	return &model.GenerateStatusResponse{
		JobID:       job.ID,
		Status:      job.Status,
		Progress:    job.Progress,
		CurrentStep: job.CurrentStep,
		Error:       job.Error,
		CreatedAt:   job.CreatedAt,
		StartedAt:   job.StartedAt,
		CompletedAt: job.CompletedAt,
		RetryCount:  job.RetryCount,
	}, nil
}

// Result returns the finished track of a succeeded job
func (s *GenerationService) Result(ctx context.Context, userID, jobID string) (*model.GenerationResult, error) {
	job, err := s.ownedJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status != model.JobStatusSucceeded {
		return nil, ErrJobNotCompleted
	}

	var result model.GenerationResult
	if err := json.Unmarshal(job.Result, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &result, nil
}

func (s *GenerationService) Cancel(ctx context.Context, userID, jobID string) (*model.GenerateCancelResponse, error) {
	job, err := s.ownedJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	switch job.Status {
	case model.JobStatusSucceeded, model.JobStatusFailed, model.JobStatusCanceled:
		return nil, ErrJobFinished
	}

	job.Status = model.JobStatusCanceled
	now := s.now()
	job.CompletedAt = &now
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, err
	}

	return &model.GenerateCancelResponse{
		Success: true,
		JobID:   jobID,
		Status:  model.JobStatusCanceled,
	}, nil
}

// UpdateJobProgress updates job progress (called by worker)
func (s *GenerationService) UpdateJobProgress(ctx context.Context, jobID string, progress int, step string) error {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return err
	}

	job.Progress = progress
	job.CurrentStep = step

	switch job.Status {
	case model.JobStatusQueued:
		job.Status = model.JobStatusRunning
		now := s.now()
		job.StartedAt = &now
	case model.JobStatusFailed:
		// asynq retry of a failed attempt
		job.Status = model.JobStatusRunning
		job.Error = nil
		job.CompletedAt = nil
		job.RetryCount++
	}

	return s.jobs.Save(ctx, job)
}

// CompleteJob marks job as succeeded (called by worker). A canceled job is
// left canceled and ErrJobCanceled is returned.
func (s *GenerationService) CompleteJob(ctx context.Context, jobID string, result *model.GenerationResult) error {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status == model.JobStatusCanceled {
		return ErrJobCanceled
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		return err
	}

	job.Status = model.JobStatusSucceeded
	job.Progress = 100
	job.CurrentStep = ""
	job.Result = resultBytes
	now := s.now()
	job.CompletedAt = &now

	return s.jobs.Save(ctx, job)
}

// FailJob marks job as failed (called by worker)
func (s *GenerationService) FailJob(ctx context.Context, jobID string, errMsg string) error {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status == model.JobStatusCanceled {
		return ErrJobCanceled
	}

	job.Status = model.JobStatusFailed
	job.Error = &errMsg
	now := s.now()
	job.CompletedAt = &now

	return s.jobs.Save(ctx, job)
}

// IsCanceled reports whether the user canceled the job
func (s *GenerationService) IsCanceled(ctx context.Context, jobID string) bool {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return false
	}
	return job.Status == model.JobStatusCanceled
}

func (s *GenerationService) ownedJob(ctx context.Context, userID, jobID string) (*model.Job, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != "" && job.UserID != userID {
		return nil, ErrJobNotFound
	}
	return job, nil
}

func (s *GenerationService) jobTTL() time.Duration {
	if s.defaults.JobTTL > 0 {
		return s.defaults.JobTTL
	}
	return storage.DefaultJobTTL
}

// NewGenerateTask wraps a job payload in the asynq envelope
func NewGenerateTask(jobID string, payload []byte) (*asynq.Task, error) {
	data, err := json.Marshal(TaskPayload{JobID: jobID, Payload: payload})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeGenerate, data), nil
}

// Progress returns the job's current state as a websocket progress message
func (s *GenerationService) Progress(ctx context.Context, jobID string) (*model.WSProgressMessage, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &model.WSProgressMessage{
		Type:        model.WSMessageTypeProgress,
		JobID:       job.ID,
		Progress:    job.Progress,
		Status:      job.Status,
		CurrentStep: job.CurrentStep,
	}, nil
}
