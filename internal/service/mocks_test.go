package service

import (
	"context"
	"io"
	"sort"

	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/blaisecz/sleep-data-service/internal/importer"
)

// MockSleepRecordRepository is an in-memory SleepRecordRepository
type MockSleepRecordRepository struct {
	records   map[string]map[string]domain.SleepRecord // userID -> recordID -> record
	saveCalls int
	lastList  domain.SleepRecordFilter
	err       error
}

func NewMockSleepRecordRepository() *MockSleepRecordRepository {
	return &MockSleepRecordRepository{records: make(map[string]map[string]domain.SleepRecord)}
}

func (m *MockSleepRecordRepository) Save(ctx context.Context, userID string, records []domain.SleepRecord) error {
	m.saveCalls++
	if m.err != nil {
		return m.err
	}
	if m.records[userID] == nil {
		m.records[userID] = make(map[string]domain.SleepRecord)
	}
	for _, r := range records {
		r.UserID = userID
		m.records[userID][r.ID] = r
	}
	return nil
}

func (m *MockSleepRecordRepository) GetByID(ctx context.Context, userID, recordID string) (*domain.SleepRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.records[userID][recordID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (m *MockSleepRecordRepository) List(ctx context.Context, userID string, filter domain.SleepRecordFilter) ([]domain.SleepRecord, error) {
	m.lastList = filter
	if m.err != nil {
		return nil, m.err
	}
	result := m.inRange(userID, filter.StartDate, filter.EndDate)
	sort.Slice(result, func(i, j int) bool { return result[i].Date > result[j].Date })
	if filter.Offset < len(result) {
		result = result[filter.Offset:]
	} else {
		result = nil
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (m *MockSleepRecordRepository) ListByDateRange(ctx context.Context, userID, from, to string) ([]domain.SleepRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := m.inRange(userID, from, to)
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (m *MockSleepRecordRepository) Delete(ctx context.Context, userID, recordID string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.records[userID][recordID]; !ok {
		return domain.ErrNotFound
	}
	delete(m.records[userID], recordID)
	return nil
}

func (m *MockSleepRecordRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.UserSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	var users []domain.UserSummary
	for userID, recs := range m.records {
		users = append(users, domain.UserSummary{UserID: userID, RecordCount: int64(len(recs))})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
	return users, nil
}

func (m *MockSleepRecordRepository) inRange(userID, from, to string) []domain.SleepRecord {
	var result []domain.SleepRecord
	for _, r := range m.records[userID] {
		if from != "" && r.Date < from {
			continue
		}
		if to != "" && r.Date > to {
			continue
		}
		result = append(result, r)
	}
	return result
}

// MockRecommender returns a fixed result
type MockRecommender struct {
	recs  *domain.Recommendations
	err   error
	calls int
}

func (m *MockRecommender) Recommend(ctx context.Context, analytics *domain.SleepAnalyticsResponse) (*domain.Recommendations, error) {
	m.calls++
	return m.recs, m.err
}

// MockImporter returns a canned import result
type MockImporter struct {
	result *importer.Result
	err    error
}

func (m *MockImporter) Import(ctx context.Context, userID string, r io.Reader) (*importer.Result, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func strPtr(s string) *string {
	return &s
}
