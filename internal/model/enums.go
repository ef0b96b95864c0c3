package model

// Job status
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCanceled  JobStatus = "canceled"
)

// Vocal types understood by the prompt builder
type VocalType string

const (
	VocalInstrumental VocalType = "instrumental"
	VocalMinimal      VocalType = "minimal-vocals"
	VocalFocused      VocalType = "vocal-focused"
)

// MusicGen model sizes
type ModelSize string

const (
	ModelSmall  ModelSize = "small"
	ModelMedium ModelSize = "medium"
	ModelLarge  ModelSize = "large"
	ModelMelody ModelSize = "melody"
)

// Variation strategies for regenerating a track
type VariationStrategy string

const (
	VariationSeed   VariationStrategy = "seed"
	VariationParams VariationStrategy = "params"
	VariationBoth   VariationStrategy = "both"
)

// Music sources for listening-history analysis
type MusicSource string

const (
	MusicSourceLiked    MusicSource = "liked"
	MusicSourcePlaylist MusicSource = "playlist"
)
