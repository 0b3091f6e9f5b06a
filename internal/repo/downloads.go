// Package repo is used for performing database repository operations.
package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// ErrRecordNotFound is returned when no download record matches an ID.
var ErrRecordNotFound = errors.New("download record not found")

// DownloadStore holds a pointer to the sql.DB.
type DownloadStore struct {
	DB *sql.DB
}

// GetDownloadStore returns a download store instance with injected database.
func GetDownloadStore(db *sql.DB) *DownloadStore {
	return &DownloadStore{
		DB: db,
	}
}

// AddDownload inserts a new download record, assigning an ID if it has none.
func (ds *DownloadStore) AddDownload(ctx context.Context, rec *models.DownloadRecord) error {
	if rec == nil {
		return errors.New("nil download record")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Status == "" {
		rec.Status = consts.DLStatusPending
	}
	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	query := squirrel.
		Insert(consts.DBDownloads).
		Columns(
			consts.QDLID,
			consts.QDLVideoID,
			consts.QDLType,
			consts.QDLStatus,
			consts.QDLPct,
			consts.QDLFilePath,
			consts.QDLErrorMessage,
			consts.QDLCreatedAt,
			consts.QDLUpdatedAt,
		).
		Values(
			rec.ID,
			rec.VideoID,
			rec.Type,
			rec.Status,
			rec.Percent,
			rec.FilePath,
			rec.ErrorMessage,
			rec.CreatedAt,
			rec.UpdatedAt,
		).
		RunWith(ds.DB)

	if _, err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to insert download record for video %q: %w", rec.VideoID, err)
	}
	return nil
}

// UpdateDownloadStatus writes a status update to its download record.
func (ds *DownloadStore) UpdateDownloadStatus(ctx context.Context, update models.StatusUpdate) (err error) {
	tx, err := ds.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Panic rollback failed for update %+v: %v", update, rbErr)
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Failed to rollback transaction for update %+v (original error: %v): %v", update, err, rbErr)
			}
		}
	}()

	normalizeDownloadStatus(&update.Percent, &update.Status)

	query := squirrel.
		Update(consts.DBDownloads).
		Set(consts.QDLStatus, update.Status).
		Set(consts.QDLPct, update.Percent).
		Set(consts.QDLUpdatedAt, time.Now())

	if update.FilePath != "" {
		query = query.Set(consts.QDLFilePath, update.FilePath)
	}
	if update.Error != "" {
		query = query.Set(consts.QDLErrorMessage, update.Error)
	}

	res, err := query.
		Where(squirrel.Eq{consts.QDLID: update.RecordID}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update download status for record %q: %w", update.RecordID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		err = fmt.Errorf("%w: %q", ErrRecordNotFound, update.RecordID)
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit status update: %w", err)
	}
	return nil
}

// GetDownload retrieves one download record by ID.
func (ds *DownloadStore) GetDownload(ctx context.Context, id string) (*models.DownloadRecord, error) {
	row := selectDownloads().
		Where(squirrel.Eq{consts.QDLID: id}).
		RunWith(ds.DB).
		QueryRowContext(ctx)

	rec, err := scanDownload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrRecordNotFound, id)
	}
	return rec, err
}

// LatestDownloads returns up to limit records, newest first.
func (ds *DownloadStore) LatestDownloads(ctx context.Context, limit int) ([]models.DownloadRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := selectDownloads().
		OrderBy(consts.QDLCreatedAt+" DESC", "rowid DESC").
		Limit(uint64(limit)).
		RunWith(ds.DB).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query downloads: %w", err)
	}
	defer rows.Close()

	records := make([]models.DownloadRecord, 0, limit)
	for rows.Next() {
		rec, err := scanDownload(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read downloads: %w", err)
	}
	return records, nil
}

// ******************************** Private ********************************

type scanner interface {
	Scan(dest ...any) error
}

func selectDownloads() squirrel.SelectBuilder {
	return squirrel.Select(
		consts.QDLID,
		consts.QDLVideoID,
		consts.QDLType,
		consts.QDLStatus,
		consts.QDLPct,
		consts.QDLFilePath,
		consts.QDLErrorMessage,
		consts.QDLCreatedAt,
		consts.QDLUpdatedAt,
	).From(consts.DBDownloads)
}

func scanDownload(s scanner) (*models.DownloadRecord, error) {
	var (
		rec      models.DownloadRecord
		filePath sql.NullString
		errMsg   sql.NullString
	)
	if err := s.Scan(
		&rec.ID,
		&rec.VideoID,
		&rec.Type,
		&rec.Status,
		&rec.Percent,
		&filePath,
		&errMsg,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	rec.FilePath = filePath.String
	rec.ErrorMessage = errMsg.String
	return &rec, nil
}

// normalizeDownloadStatus clamps the percentage and completes finished downloads.
func normalizeDownloadStatus(pctPtr *float64, statusPtr *consts.DownloadStatus) {
	if pctPtr == nil || statusPtr == nil {
		return
	}

	switch {
	case *pctPtr >= 100.0:
		*pctPtr = 100.0
	case *pctPtr < 0.0:
		*pctPtr = 0.0
	}

	if *statusPtr == consts.DLStatusCompleted {
		*pctPtr = 100.0
	}
}
