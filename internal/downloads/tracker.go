package downloads

import (
	"context"
	"sync"
	"time"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"
)

// StatusStore persists download records and their status updates.
type StatusStore interface {
	AddDownload(ctx context.Context, rec *models.DownloadRecord) error
	UpdateDownloadStatus(ctx context.Context, update models.StatusUpdate) error
}

// DownloadTracker is the model holding data related to download tracking.
//
// A nil tracker is valid and records nothing.
type DownloadTracker struct {
	store   StatusStore
	updates chan models.StatusUpdate
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// NewDownloadTracker returns the model used for tracking downloads.
func NewDownloadTracker(store StatusStore) *DownloadTracker {
	return &DownloadTracker{
		store:   store,
		updates: make(chan models.StatusUpdate, 100),
		done:    make(chan struct{}),
	}
}

// Start starts download tracking.
func (t *DownloadTracker) Start(ctx context.Context) {
	if t == nil {
		return
	}
	t.wg.Add(1)
	go t.processUpdates(ctx)
}

// Stop stops download tracking after flushing queued updates.
func (t *DownloadTracker) Stop() {
	if t == nil {
		return
	}
	t.once.Do(func() { close(t.done) })
	t.wg.Wait()
}

// begin inserts a pending record for a request and returns its ID.
func (t *DownloadTracker) begin(ctx context.Context, req models.DownloadRequest) string {
	if t == nil {
		return ""
	}

	rec := &models.DownloadRecord{
		VideoID: req.VideoID,
		Type:    req.Type,
		Status:  consts.DLStatusPending,
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), consts.DatabaseTimeout)
	defer cancel()

	if err := t.store.AddDownload(ctx, rec); err != nil {
		logging.E("Failed to record download of %q: %v", req.Key(), err)
		return ""
	}
	return rec.ID
}

// sendUpdate sends the update into the processing channel.
func (t *DownloadTracker) sendUpdate(update models.StatusUpdate) {
	if t == nil || update.RecordID == "" {
		return
	}

	select {
	case t.updates <- update:
	case <-t.done:
		logging.D(2, "Tracker stopped, dropping update for record %q", update.RecordID)
	}
}

// processUpdates processes download status updates.
func (t *DownloadTracker) processUpdates(ctx context.Context) {
	defer t.wg.Done()

	last := make(map[string]models.StatusUpdate)
	handle := func(update models.StatusUpdate) {
		if prev, ok := last[update.RecordID]; ok && prev == update {
			return
		}
		last[update.RecordID] = update

		switch update.Status {
		case consts.DLStatusCompleted, consts.DLStatusFailed:
			delete(last, update.RecordID)
			logging.I("Status update for record %q: Status: %s, Percentage: %.1f, Error: %v",
				update.RecordID, update.Status, update.Percent, update.Error)
		}
		t.flushUpdate(ctx, update)
	}

	for {
		select {
		case <-t.done:
			for {
				select {
				case update := <-t.updates:
					handle(update)
				default:
					return
				}
			}

		case update := <-t.updates:
			handle(update)
		}
	}
}

// flushUpdate writes a status update to the store, retrying transient failures.
func (t *DownloadTracker) flushUpdate(ctx context.Context, update models.StatusUpdate) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), consts.DatabaseTimeout)
	defer cancel()

	backoff := consts.RetryBackoff
	maxRetries := consts.DefaultMaxRetries

	for attempt := range maxRetries {
		err := t.store.UpdateDownloadStatus(ctx, update)
		if err == nil {
			logging.D(3, "Flushed status update for record %q", update.RecordID)
			return
		}
		if attempt == maxRetries-1 {
			logging.E("Failed to update download status after %d attempts: %v", maxRetries, err)
			return
		}
		logging.W("Retrying update after failure (attempt %d/%d): %v", attempt+1, maxRetries, err)
		time.Sleep(backoff * time.Duration(attempt+1))
	}
}
