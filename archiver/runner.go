package archiver

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/OldEphraim/polymarket-market-finder/utils/clients"
)

// Lister supplies the catalog to snapshot
type Lister interface {
	ListOpenEvents(limit int) ([]clients.GammaEvent, error)
}

// Runner archives one hourly snapshot per invocation of RunOnce
type Runner struct {
	Gamma      Lister
	Sink       Sink
	Prefix     string
	BatchLimit int
	Log        *slog.Logger
}

// RunOnce snapshots the open-event catalog for the hour containing at.
// Returns true if it wrote a snapshot, false if the hour was already
// archived.
func (r *Runner) RunOnce(ctx context.Context, at time.Time) (bool, error) {
	at = at.UTC()
	dir := fmt.Sprintf("%s/dt=%s/hour=%02d",
		strings.TrimSuffix(r.Prefix, "/"), at.Format("2006-01-02"), at.Hour())
	key := path.Join(dir, "part-00000.json.gz")
	marker := path.Join(dir, "_SUCCESS")

	done, err := r.Sink.Exists(ctx, marker)
	if err != nil {
		return false, fmt.Errorf("failed to check marker %s: %w", marker, err)
	}
	if done {
		r.Log.Debug("hour already archived", "key", key)
		return false, nil
	}

	events, err := r.Gamma.ListOpenEvents(r.BatchLimit)
	if err != nil {
		return false, fmt.Errorf("failed to list events: %w", err)
	}

	pr, pw := io.Pipe()
	go func() {
		gz := gzip.NewWriter(pw)
		enc := json.NewEncoder(gz)
		for i := range events {
			if err := enc.Encode(&events[i]); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		if err := gz.Close(); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.Close()
	}()

	if err := r.Sink.Put(ctx, key, "application/json", "gzip", pr); err != nil {
		pr.CloseWithError(err)
		return false, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if err := r.Sink.PutEmpty(ctx, marker); err != nil {
		return false, fmt.Errorf("failed to write marker %s: %w", marker, err)
	}

	r.Log.Info("archived snapshot", "key", key, "events", len(events))
	return true, nil
}
