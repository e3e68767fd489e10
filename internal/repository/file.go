package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/blaisecz/sleep-data-service/internal/domain"
	"go.uber.org/zap"
)

const (
	recordExt       = ".json"
	timeSeriesDir   = "time_series"
	timeSeriesFile  = "_time_series.json"
	encodedIDPrefix = "~"
)

// plainName matches identifiers that are safe to use as a path segment as is.
var plainName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.@-]{0,127}$`)

// FileRepository stores one JSON document per record under a directory per
// user, with the time series split into a sibling file:
//
//	<dir>/<user>/<record_id>.json
//	<dir>/<user>/time_series/<record_id>_time_series.json
type FileRepository struct {
	dir string
	mu  sync.RWMutex
	log *zap.Logger
}

type timeSeriesDocument struct {
	TimeSeries []domain.TimeSeriesPoint `json:"time_series"`
}

func NewFileRepository(dir string, log *zap.Logger) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, storageErr("create data dir", err)
	}
	return &FileRepository{dir: dir, log: log}, nil
}

// Ping reports whether the data directory is still usable.
func (r *FileRepository) Ping(ctx context.Context) error {
	info, err := os.Stat(r.dir)
	if err != nil {
		return storageErr("stat data dir", err)
	}
	if !info.IsDir() {
		return storageErr("stat data dir", fmt.Errorf("%s is not a directory", r.dir))
	}
	return nil
}

func (r *FileRepository) Save(ctx context.Context, userID string, records []domain.SleepRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	userDir := r.userDir(userID)
	tsDir := filepath.Join(userDir, timeSeriesDir)
	if err := os.MkdirAll(tsDir, 0o755); err != nil {
		return storageErr("create user dir", err)
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		name, ok := fileName(rec.ID)
		if !ok {
			return fmt.Errorf("%w: record id %q", domain.ErrInvalidInput, rec.ID)
		}

		rec.UserID = userID
		points := rec.TimeSeries
		rec.TimeSeries = nil

		if err := atomicWriteFileJSON(filepath.Join(userDir, name+recordExt), rec); err != nil {
			return storageErr("write record "+rec.ID, err)
		}

		tsPath := filepath.Join(tsDir, name+timeSeriesFile)
		if len(points) == 0 {
			if err := os.Remove(tsPath); err != nil && !errors.Is(err, os.ErrNotExist) {
				return storageErr("remove time series "+rec.ID, err)
			}
			continue
		}
		if err := atomicWriteFileJSON(tsPath, timeSeriesDocument{TimeSeries: points}); err != nil {
			return storageErr("write time series "+rec.ID, err)
		}
	}
	return nil
}

func (r *FileRepository) GetByID(ctx context.Context, userID, recordID string) (*domain.SleepRecord, error) {
	name, ok := fileName(recordID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	userDir := r.userDir(userID)
	var rec domain.SleepRecord
	if err := readJSON(filepath.Join(userDir, name+recordExt), &rec); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("read record "+recordID, err)
	}
	r.attachTimeSeries(userDir, &rec)
	return &rec, nil
}

func (r *FileRepository) List(ctx context.Context, userID string, filter domain.SleepRecordFilter) ([]domain.SleepRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records, err := r.loadUser(ctx, userID, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date == records[j].Date {
			return records[i].SleepStart.After(records[j].SleepStart)
		}
		return records[i].Date > records[j].Date
	})

	records = page(records, filter.Limit, filter.Offset)
	userDir := r.userDir(userID)
	for i := range records {
		r.attachTimeSeries(userDir, &records[i])
	}
	return records, nil
}

func (r *FileRepository) ListByDateRange(ctx context.Context, userID, from, to string) ([]domain.SleepRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records, err := r.loadUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date == records[j].Date {
			return records[i].SleepStart.Before(records[j].SleepStart)
		}
		return records[i].Date < records[j].Date
	})

	userDir := r.userDir(userID)
	for i := range records {
		r.attachTimeSeries(userDir, &records[i])
	}
	return records, nil
}

func (r *FileRepository) Delete(ctx context.Context, userID, recordID string) error {
	name, ok := fileName(recordID)
	if !ok {
		return domain.ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	userDir := r.userDir(userID)
	if err := os.Remove(filepath.Join(userDir, name+recordExt)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ErrNotFound
		}
		return storageErr("delete record "+recordID, err)
	}

	tsPath := filepath.Join(userDir, timeSeriesDir, name+timeSeriesFile)
	if err := os.Remove(tsPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		r.log.Warn("time series file left behind", zap.String("path", tsPath), zap.Error(err))
	}
	return nil
}

// ListUsers returns users with at least one record, most records first.
func (r *FileRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.UserSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, storageErr("read data dir", err)
	}

	users := []domain.UserSummary{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := r.readRecords(filepath.Join(r.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			continue
		}

		summary := domain.UserSummary{UserID: records[0].UserID, RecordCount: int64(len(records))}
		for _, rec := range records {
			if rec.Date > summary.LatestRecordDate {
				summary.LatestRecordDate = rec.Date
			}
		}
		users = append(users, summary)
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].RecordCount == users[j].RecordCount {
			return users[i].UserID < users[j].UserID
		}
		return users[i].RecordCount > users[j].RecordCount
	})
	return page(users, limit, offset), nil
}

func (r *FileRepository) userDir(userID string) string {
	name, ok := fileName(userID)
	if !ok {
		name = encodedIDPrefix + base64.RawURLEncoding.EncodeToString([]byte(userID))
	}
	return filepath.Join(r.dir, name)
}

func (r *FileRepository) loadUser(ctx context.Context, userID, from, to string) ([]domain.SleepRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all, err := r.readRecords(r.userDir(userID))
	if err != nil {
		return nil, err
	}

	records := make([]domain.SleepRecord, 0, len(all))
	for _, rec := range all {
		if rec.UserID != userID {
			continue
		}
		if from != "" && rec.Date < from {
			continue
		}
		if to != "" && rec.Date > to {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// readRecords decodes every record document in dir without time series.
// Unreadable documents are logged and skipped.
func (r *FileRepository) readRecords(dir string) ([]domain.SleepRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, storageErr("read user dir", err)
	}

	var records []domain.SleepRecord
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), recordExt) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		var rec domain.SleepRecord
		if err := readJSON(path, &rec); err != nil {
			r.log.Warn("skipping unreadable sleep record", zap.String("path", path), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *FileRepository) attachTimeSeries(userDir string, rec *domain.SleepRecord) {
	name, ok := fileName(rec.ID)
	if !ok {
		return
	}
	path := filepath.Join(userDir, timeSeriesDir, name+timeSeriesFile)

	var doc timeSeriesDocument
	if err := readJSON(path, &doc); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			r.log.Warn("skipping unreadable time series", zap.String("path", path), zap.Error(err))
		}
		return
	}
	rec.TimeSeries = doc.TimeSeries
}

func fileName(id string) (string, bool) {
	if !plainName.MatchString(id) {
		return "", false
	}
	return id, true
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func atomicWriteFileJSON(filePath string, data any) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	if offset > 0 {
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
