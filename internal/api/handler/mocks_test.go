package handler

import (
	"context"
	"io"
	"time"

	"github.com/blaisecz/sleep-data-service/internal/domain"
)

// MockSleepRecordService is a mock implementation of SleepRecordService
type MockSleepRecordService struct {
	createFunc    func(ctx context.Context, req *domain.CreateSleepRecordRequest) (*domain.SleepRecord, error)
	getFunc       func(ctx context.Context, userID, recordID string) (*domain.SleepRecord, error)
	updateFunc    func(ctx context.Context, userID, recordID string, req *domain.UpdateSleepRecordRequest) (*domain.SleepRecord, error)
	deleteFunc    func(ctx context.Context, userID, recordID string) error
	listFunc      func(ctx context.Context, userID string, filter domain.SleepRecordFilter) (*domain.SleepDataResponse, error)
	listUsersFunc func(ctx context.Context, limit, offset int) (*domain.UsersResponse, error)
}

func (m *MockSleepRecordService) Create(ctx context.Context, req *domain.CreateSleepRecordRequest) (*domain.SleepRecord, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &domain.SleepRecord{
		ID:         "rec-1",
		UserID:     req.UserID,
		Date:       req.SleepStart.Format(domain.DateLayout),
		SleepStart: req.SleepStart,
		SleepEnd:   req.SleepEnd,
		MetaData:   domain.MetaData{Source: domain.SourceManual},
	}, nil
}

func (m *MockSleepRecordService) Get(ctx context.Context, userID, recordID string) (*domain.SleepRecord, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, recordID)
	}
	return sampleRecord(userID, recordID), nil
}

func (m *MockSleepRecordService) Update(ctx context.Context, userID, recordID string, req *domain.UpdateSleepRecordRequest) (*domain.SleepRecord, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, userID, recordID, req)
	}
	return sampleRecord(userID, recordID), nil
}

func (m *MockSleepRecordService) Delete(ctx context.Context, userID, recordID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, recordID)
	}
	return nil
}

func (m *MockSleepRecordService) List(ctx context.Context, userID string, filter domain.SleepRecordFilter) (*domain.SleepDataResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.SleepDataResponse{Records: []domain.SleepRecord{}}, nil
}

func (m *MockSleepRecordService) ListUsers(ctx context.Context, limit, offset int) (*domain.UsersResponse, error) {
	if m.listUsersFunc != nil {
		return m.listUsersFunc(ctx, limit, offset)
	}
	return &domain.UsersResponse{Users: []domain.UserSummary{}}, nil
}

// MockGenerationService is a mock implementation of GenerationService
type MockGenerationService struct {
	generateFunc func(ctx context.Context, req *domain.GenerateSleepDataRequest) (*domain.SleepDataResponse, error)
}

func (m *MockGenerationService) Generate(ctx context.Context, req *domain.GenerateSleepDataRequest) (*domain.SleepDataResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	return &domain.SleepDataResponse{Records: []domain.SleepRecord{}}, nil
}

// MockAnalyticsService is a mock implementation of AnalyticsService
type MockAnalyticsService struct {
	analyzeFunc func(ctx context.Context, userID, startDate, endDate string) (*domain.SleepAnalyticsResponse, error)
}

func (m *MockAnalyticsService) Analyze(ctx context.Context, userID, startDate, endDate string) (*domain.SleepAnalyticsResponse, error) {
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, userID, startDate, endDate)
	}
	return &domain.SleepAnalyticsResponse{UserID: userID, StartDate: startDate, EndDate: endDate}, nil
}

// MockImportService is a mock implementation of ImportService
type MockImportService struct {
	importFunc func(ctx context.Context, userID string, r io.Reader) (*domain.ImportResult, error)
}

func (m *MockImportService) ImportAppleHealth(ctx context.Context, userID string, r io.Reader) (*domain.ImportResult, error) {
	if m.importFunc != nil {
		return m.importFunc(ctx, userID, r)
	}
	return &domain.ImportResult{UserID: userID}, nil
}

func sampleRecord(userID, recordID string) *domain.SleepRecord {
	start := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	return &domain.SleepRecord{
		ID:              recordID,
		UserID:          userID,
		Date:            "2024-01-15",
		SleepStart:      start,
		SleepEnd:        start.Add(8 * time.Hour),
		DurationMinutes: 470,
		MetaData:        domain.MetaData{Source: domain.SourceManual},
	}
}
