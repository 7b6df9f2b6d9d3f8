package archiver

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldEphraim/polymarket-market-finder/utils/clients"
)

type memorySink struct {
	objects map[string][]byte
}

func newMemorySink() *memorySink {
	return &memorySink{objects: make(map[string][]byte)}
}

func (m *memorySink) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.objects[key]
	return ok, nil
}

func (m *memorySink) Put(_ context.Context, key, _, _ string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memorySink) PutEmpty(_ context.Context, key string) error {
	m.objects[key] = nil
	return nil
}

type stubLister struct {
	events []clients.GammaEvent
	calls  int
}

func (s *stubLister) ListOpenEvents(int) ([]clients.GammaEvent, error) {
	s.calls++
	return s.events, nil
}

func newRunner(lister Lister, sink Sink) *Runner {
	return &Runner{
		Gamma:      lister,
		Sink:       sink,
		Prefix:     "snapshots/",
		BatchLimit: 200,
		Log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRunOnceWritesSnapshotAndMarker(t *testing.T) {
	sink := newMemorySink()
	lister := &stubLister{events: []clients.GammaEvent{
		{Slug: "super-bowl-winner", Title: "Super Bowl Winner"},
		{Slug: "nba-champion", Title: "NBA Champion"},
	}}

	at := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	didWork, err := newRunner(lister, sink).RunOnce(context.Background(), at)
	require.NoError(t, err)
	assert.True(t, didWork)

	data, ok := sink.objects["snapshots/dt=2025-06-01/hour=14/part-00000.json.gz"]
	require.True(t, ok, "snapshot object missing: %v", sink.objects)
	_, ok = sink.objects["snapshots/dt=2025-06-01/hour=14/_SUCCESS"]
	assert.True(t, ok, "marker missing")

	gz, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	dec := json.NewDecoder(gz)

	var slugs []string
	for {
		var event clients.GammaEvent
		if err := dec.Decode(&event); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		slugs = append(slugs, event.Slug)
	}
	assert.Equal(t, []string{"super-bowl-winner", "nba-champion"}, slugs)
}

func TestRunOnceSkipsArchivedHour(t *testing.T) {
	sink := newMemorySink()
	sink.objects["snapshots/dt=2025-06-01/hour=14/_SUCCESS"] = nil
	lister := &stubLister{}

	at := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	didWork, err := newRunner(lister, sink).RunOnce(context.Background(), at)
	require.NoError(t, err)
	assert.False(t, didWork)
	assert.Zero(t, lister.calls, "should not fetch when hour already archived")
}

func TestRunOnceEmptyCatalog(t *testing.T) {
	sink := newMemorySink()
	lister := &stubLister{}

	at := time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)
	didWork, err := newRunner(lister, sink).RunOnce(context.Background(), at)
	require.NoError(t, err)
	assert.True(t, didWork)

	data := sink.objects["snapshots/dt=2025-06-01/hour=03/part-00000.json.gz"]
	gz, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	rest, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Empty(t, rest)
}
