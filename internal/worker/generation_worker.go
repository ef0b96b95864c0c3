package worker

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tunestory/api/internal/client"
	"github.com/tunestory/api/internal/model"
	"github.com/tunestory/api/internal/service"
)

const (
	codeGenerationFailed = "GENERATION_FAILED"

	mockSampleRate = 8000
	wavContentType = "audio/wav"
)

// Broadcaster pushes job events to websocket subscribers
type Broadcaster interface {
	BroadcastProgress(jobID string, progress int, status model.JobStatus, step string)
	BroadcastComplete(jobID string, result *model.GenerationResult)
	BroadcastError(jobID, code, message string)
}

// GenerationWorker processes generate:process tasks
type GenerationWorker struct {
	jobs      *service.GenerationService
	musicgen  client.MusicGenerator
	storage   client.StorageClient
	hub       Broadcaster
	stepDelay time.Duration
}

// NewGenerationWorker creates a worker. A nil or unconfigured musicgen client
// selects the mock pipeline; a nil storage client returns audio as a data URL.
func NewGenerationWorker(jobs *service.GenerationService, musicgen client.MusicGenerator, storage client.StorageClient, hub Broadcaster) *GenerationWorker {
	return &GenerationWorker{
		jobs:      jobs,
		musicgen:  musicgen,
		storage:   storage,
		hub:       hub,
		stepDelay: time.Second,
	}
}

// WithStepDelay sets the pause between mock pipeline steps
func (w *GenerationWorker) WithStepDelay(d time.Duration) *GenerationWorker {
	w.stepDelay = d
	return w
}

// ProcessTask handles a generation task
func (w *GenerationWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var envelope service.TaskPayload
	if err := json.Unmarshal(t.Payload(), &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %v: %w", err, asynq.SkipRetry)
	}

	jobID := envelope.JobID
	logger := log.With().Str("jobId", jobID).Logger()
	ctx = logger.WithContext(ctx)

	var payload model.GenerationJobPayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
		w.failJob(ctx, jobID, "Invalid payload")
		return fmt.Errorf("failed to unmarshal generation payload: %v: %w", err, asynq.SkipRetry)
	}

	if w.jobs.IsCanceled(ctx, jobID) {
		logger.Info().Msg("generation job canceled before start")
		return nil
	}

	logger.Info().Str("modelSize", string(payload.ModelSize)).Int("duration", payload.Duration).Msg("starting generation job")

	if w.musicgen == nil || !w.musicgen.IsConfigured() {
		return w.processWithMock(ctx, jobID, &payload)
	}
	return w.processWithMusicGen(ctx, jobID, &payload)
}

func (w *GenerationWorker) processWithMusicGen(ctx context.Context, jobID string, payload *model.GenerationJobPayload) error {
	logger := zerolog.Ctx(ctx)
	started := time.Now()

	w.updateProgress(ctx, jobID, 10, "Generating audio with MusicGen...")
	resp, err := w.musicgen.Generate(ctx, &client.MusicGenRequest{
		Prompt:      payload.Prompt,
		Duration:    payload.Duration,
		Temperature: payload.Temperature,
		ModelSize:   string(payload.ModelSize),
	})
	if err != nil {
		w.failJob(ctx, jobID, fmt.Sprintf("Music generation failed: %v", err))
		return err
	}

	if w.jobs.IsCanceled(ctx, jobID) {
		logger.Info().Msg("generation job canceled, discarding audio")
		return nil
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioBase64)
	if err != nil {
		w.failJob(ctx, jobID, "Invalid audio data received")
		return fmt.Errorf("failed to decode audio: %v: %w", err, asynq.SkipRetry)
	}

	w.updateProgress(ctx, jobID, 80, "Uploading audio...")
	audioURL, err := w.storeAudio(ctx, payload.UserID, jobID, audio)
	if err != nil {
		w.failJob(ctx, jobID, fmt.Sprintf("Audio upload failed: %v", err))
		return err
	}

	w.updateProgress(ctx, jobID, 95, "Finalizing...")
	meta := resp.Metadata
	generationTime := meta.GenerationTimeSeconds
	if generationTime == 0 {
		generationTime = time.Since(started).Seconds()
	}
	result := w.newResult(jobID, payload, audioURL, model.GenerationMetadata{
		Model:                 meta.Model,
		ModelSize:             model.ModelSize(meta.ModelSize),
		Duration:              meta.Duration,
		SampleRate:            meta.SampleRate,
		SizeBytes:             len(audio),
		GenerationTimeSeconds: generationTime,
		Framework:             meta.Framework,
		Device:                meta.Device,
	})

	return w.complete(ctx, jobID, result)
}

// processWithMock walks the progress steps and returns a silent clip
func (w *GenerationWorker) processWithMock(ctx context.Context, jobID string, payload *model.GenerationJobPayload) error {
	logger := zerolog.Ctx(ctx)
	steps := []struct {
		progress int
		step     string
	}{
		{10, "Loading model..."},
		{30, "Encoding prompt..."},
		{60, "Generating audio..."},
		{85, "Decoding audio..."},
		{95, "Finalizing..."},
	}

	for _, step := range steps {
		select {
		case <-ctx.Done():
			logger.Info().Msg("generation job interrupted")
			return ctx.Err()
		default:
		}
		if w.jobs.IsCanceled(ctx, jobID) {
			logger.Info().Msg("generation job canceled")
			return nil
		}

		w.updateProgress(ctx, jobID, step.progress, step.step)
		if w.stepDelay > 0 {
			time.Sleep(w.stepDelay)
		}
	}

	audio := silentWAV(1, mockSampleRate)
	audioURL, err := w.storeAudio(ctx, payload.UserID, jobID, audio)
	if err != nil {
		w.failJob(ctx, jobID, fmt.Sprintf("Audio upload failed: %v", err))
		return err
	}

	result := w.newResult(jobID, payload, audioURL, model.GenerationMetadata{
		Model:      "musicgen-mock",
		ModelSize:  payload.ModelSize,
		Duration:   float64(payload.Duration),
		SampleRate: mockSampleRate,
		SizeBytes:  len(audio),
		Framework:  "mock",
		Device:     "cpu",
	})

	return w.complete(ctx, jobID, result)
}

func (w *GenerationWorker) storeAudio(ctx context.Context, userID, jobID string, audio []byte) (string, error) {
	if w.storage == nil {
		return "data:" + wavContentType + ";base64," + base64.StdEncoding.EncodeToString(audio), nil
	}
	key := fmt.Sprintf("generations/%s/%s.wav", userID, jobID)
	return w.storage.Upload(ctx, key, bytes.NewReader(audio), wavContentType)
}

func (w *GenerationWorker) newResult(jobID string, payload *model.GenerationJobPayload, audioURL string, meta model.GenerationMetadata) *model.GenerationResult {
	return &model.GenerationResult{
		ID:          jobID,
		AudioURL:    audioURL,
		Prompt:      payload.Prompt,
		Temperature: payload.Temperature,
		Variation:   payload.Variation,
		ParentJobID: payload.ParentJobID,
		Metadata:    meta,
		CreatedAt:   time.Now(),
	}
}

func (w *GenerationWorker) complete(ctx context.Context, jobID string, result *model.GenerationResult) error {
	if err := w.jobs.CompleteJob(ctx, jobID, result); err != nil {
		if errors.Is(err, service.ErrJobCanceled) {
			zerolog.Ctx(ctx).Info().Msg("job canceled before completion, result discarded")
			return nil
		}
		w.failJob(ctx, jobID, "Failed to save result")
		return err
	}
	w.hub.BroadcastComplete(jobID, result)
	zerolog.Ctx(ctx).Info().Msg("generation job completed")
	return nil
}

func (w *GenerationWorker) updateProgress(ctx context.Context, jobID string, progress int, step string) {
	if err := w.jobs.UpdateJobProgress(ctx, jobID, progress, step); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to update progress")
	}
	w.hub.BroadcastProgress(jobID, progress, model.JobStatusRunning, step)
}

func (w *GenerationWorker) failJob(ctx context.Context, jobID, errMsg string) {
	if err := w.jobs.FailJob(ctx, jobID, errMsg); err != nil {
		if errors.Is(err, service.ErrJobCanceled) {
			return
		}
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to mark job as failed")
	}
	w.hub.BroadcastError(jobID, codeGenerationFailed, errMsg)
}

// silentWAV encodes seconds of 16-bit mono silence
func silentWAV(seconds, sampleRate int) []byte {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	dataSize := seconds * sampleRate * channels * bitsPerSample / 8

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate*channels*bitsPerSample/8))
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels*bitsPerSample/8))
	_ = binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}
