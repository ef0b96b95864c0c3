package model

import "time"

// GenerateRequest starts a generation job from a prompt or a refined analysis
type GenerateRequest struct {
	Prompt      string            `json:"prompt" validate:"required_without=Refined,max=1000"`
	Refined     *RefinedAnalysis  `json:"refined" validate:"required_without=Prompt"`
	StyleLevel  *int              `json:"styleLevel" validate:"omitempty,min=0,max=10"`
	VocalType   VocalType         `json:"vocalType" validate:"omitempty,oneof=instrumental minimal-vocals vocal-focused"`
	Duration    int               `json:"duration" validate:"omitempty,min=1,max=30"`
	Temperature float64           `json:"temperature" validate:"omitempty,min=0.1,max=2"`
	ModelSize   ModelSize         `json:"modelSize" validate:"omitempty,oneof=small medium large melody"`
	Variation   VariationStrategy `json:"variation" validate:"omitempty,oneof=seed params both"`
	ParentJobID string            `json:"parentJobId" validate:"omitempty,uuid"`
}

// GenerationJobPayload is what the worker needs to render a track
type GenerationJobPayload struct {
	UserID      string            `json:"userId"`
	Prompt      string            `json:"prompt"`
	Duration    int               `json:"duration"`
	Temperature float64           `json:"temperature"`
	ModelSize   ModelSize         `json:"modelSize"`
	Variation   VariationStrategy `json:"variation,omitempty"`
	ParentJobID string            `json:"parentJobId,omitempty"`
}

type GenerateStartResponse struct {
	JobID             string    `json:"jobId"`
	Status            JobStatus `json:"status"`
	Prompt            string    `json:"prompt"`
	EstimatedDuration int       `json:"estimatedDuration"`
	CreatedAt         time.Time `json:"createdAt"`
}

type GenerateStatusResponse struct {
	JobID       string     `json:"jobId"`
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"`
	CurrentStep string     `json:"currentStep,omitempty"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	RetryCount  int        `json:"retryCount"`
}

// GenerationMetadata mirrors what the MusicGen backend reports
type GenerationMetadata struct {
	Model                 string    `json:"model"`
	ModelSize             ModelSize `json:"modelSize"`
	Duration              float64   `json:"duration"`
	SampleRate            int       `json:"sampleRate"`
	SizeBytes             int       `json:"sizeBytes"`
	GenerationTimeSeconds float64   `json:"generationTimeSeconds"`
	Framework             string    `json:"framework,omitempty"`
	Device                string    `json:"device,omitempty"`
}

// GenerationResult is a finished track
type GenerationResult struct {
	ID          string             `json:"id"`
	AudioURL    string             `json:"audioUrl"`
	Prompt      string             `json:"prompt"`
	Temperature float64            `json:"temperature"`
	Variation   VariationStrategy  `json:"variation,omitempty"`
	ParentJobID string             `json:"parentJobId,omitempty"`
	Metadata    GenerationMetadata `json:"metadata"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type GenerateCancelResponse struct {
	Success bool      `json:"success"`
	JobID   string    `json:"jobId"`
	Status  JobStatus `json:"status"`
}
