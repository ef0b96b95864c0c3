package service

import (
	"context"
	"errors"
	"sync"

	"github.com/hibiken/asynq"

	"github.com/tunestory/api/internal/client"
)

type fakeVision struct {
	configured bool
	reply      string
	err        error

	lastSystem string
	lastUser   string
	lastImage  string
}

func (f *fakeVision) AnalyzeImage(_ context.Context, system, text, imageURL string) (string, error) {
	f.lastSystem, f.lastUser, f.lastImage = system, text, imageURL
	return f.reply, f.err
}

func (f *fakeVision) ChatCompletion(_ context.Context, system, user string, _ float64, _ int) (string, error) {
	f.lastSystem, f.lastUser = system, user
	return f.reply, f.err
}

func (f *fakeVision) IsConfigured() bool { return f.configured }

type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]client.SpotifyTrack
	fail    map[string]bool
	queries []string
}

func (f *fakeSearcher) SearchTracks(_ context.Context, query string, _ int) ([]client.SpotifyTrack, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if f.fail[query] {
		return nil, errors.New("spotify search failed: 500")
	}
	return f.results[query], nil
}

type fakeLibrary struct {
	liked    []client.SpotifyTrack
	playlist []client.SpotifyTrack
	features []client.AudioFeatures
	err      error

	gotPlaylist string
	gotIDs      []string
}

func (f *fakeLibrary) LikedTracks(context.Context, string, int) ([]client.SpotifyTrack, error) {
	return f.liked, f.err
}

func (f *fakeLibrary) PlaylistTracks(_ context.Context, _ string, id string, _ int) ([]client.SpotifyTrack, error) {
	f.gotPlaylist = id
	return f.playlist, f.err
}

func (f *fakeLibrary) AudioFeatures(_ context.Context, _ string, ids []string) ([]client.AudioFeatures, error) {
	f.gotIDs = ids
	return f.features, nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func track(id, name string) client.SpotifyTrack {
	t := client.SpotifyTrack{ID: id, Name: name}
	t.Artists = append(t.Artists, struct {
		Name string `json:"name"`
	}{Name: "Artist " + id})
	return t
}
