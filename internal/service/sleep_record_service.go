package service

import (
	"context"
	"fmt"

	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/blaisecz/sleep-data-service/internal/repository"
	"github.com/blaisecz/sleep-data-service/pkg/pagination"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type SleepRecordService interface {
	Create(ctx context.Context, req *domain.CreateSleepRecordRequest) (*domain.SleepRecord, error)
	Get(ctx context.Context, userID, recordID string) (*domain.SleepRecord, error)
	Update(ctx context.Context, userID, recordID string, req *domain.UpdateSleepRecordRequest) (*domain.SleepRecord, error)
	Delete(ctx context.Context, userID, recordID string) error
	List(ctx context.Context, userID string, filter domain.SleepRecordFilter) (*domain.SleepDataResponse, error)
	ListUsers(ctx context.Context, limit, offset int) (*domain.UsersResponse, error)
}

type sleepRecordService struct {
	repo  repository.SleepRecordRepository
	newID func() string
}

func NewSleepRecordService(repo repository.SleepRecordRepository) SleepRecordService {
	return &sleepRecordService{repo: repo, newID: uuid.NewString}
}

var recordsTracer = otel.Tracer("sleep-data-service/records")

// Create stores a manually submitted record. date defaults to the calendar
// day of sleep_start and duration to the span minus awake minutes.
func (s *sleepRecordService) Create(ctx context.Context, req *domain.CreateSleepRecordRequest) (*domain.SleepRecord, error) {
	ctx, span := recordsTracer.Start(ctx, "SleepRecordService.Create",
		trace.WithAttributes(attribute.String("user.id", req.UserID)),
	)
	defer span.End()

	date := req.SleepStart.Format(domain.DateLayout)
	if req.Date != "" {
		normalized, err := domain.NormalizeDate(req.Date)
		if err != nil {
			return nil, err
		}
		date = normalized
	}

	rec := domain.SleepRecord{
		ID:              s.newID(),
		UserID:          req.UserID,
		Date:            date,
		SleepStart:      req.SleepStart,
		SleepEnd:        req.SleepEnd,
		DurationMinutes: req.DurationMinutes,
		SleepPhases:     req.SleepPhases,
		SleepQuality:    req.SleepQuality,
		HeartRate:       req.HeartRate,
		Breathing:       req.Breathing,
		Environment:     req.Environment,
		TimeSeries:      req.TimeSeries,
		Tags:            req.Tags,
		Notes:           req.Notes,
		MetaData:        domain.MetaData{Source: domain.SourceManual},
	}
	if req.MetaData != nil {
		rec.MetaData = *req.MetaData
		if rec.MetaData.Source == "" {
			rec.MetaData.Source = domain.SourceManual
		}
	}
	if err := rec.CheckTimeline(); err != nil {
		return nil, err
	}
	if rec.DurationMinutes == 0 {
		rec.DurationMinutes = asleepMinutes(rec)
	}

	if err := s.repo.Save(ctx, rec.UserID, []domain.SleepRecord{rec}); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("record.id", rec.ID))
	return &rec, nil
}

func (s *sleepRecordService) Get(ctx context.Context, userID, recordID string) (*domain.SleepRecord, error) {
	ctx, span := recordsTracer.Start(ctx, "SleepRecordService.Get",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("record.id", recordID),
		),
	)
	defer span.End()

	return s.repo.GetByID(ctx, userID, recordID)
}

// Update applies the non-nil fields of req to an existing record.
func (s *sleepRecordService) Update(ctx context.Context, userID, recordID string, req *domain.UpdateSleepRecordRequest) (*domain.SleepRecord, error) {
	ctx, span := recordsTracer.Start(ctx, "SleepRecordService.Update",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("record.id", recordID),
		),
	)
	defer span.End()

	rec, err := s.repo.GetByID(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := domain.NormalizeDate(*req.Date)
		if err != nil {
			return nil, err
		}
		rec.Date = date
	}
	if req.SleepStart != nil {
		rec.SleepStart = *req.SleepStart
	}
	if req.SleepEnd != nil {
		rec.SleepEnd = *req.SleepEnd
	}
	if req.DurationMinutes != nil {
		rec.DurationMinutes = *req.DurationMinutes
	}
	if req.SleepPhases != nil {
		rec.SleepPhases = req.SleepPhases
	}
	if req.SleepQuality != nil {
		rec.SleepQuality = req.SleepQuality
	}
	if req.HeartRate != nil {
		rec.HeartRate = req.HeartRate
	}
	if req.Breathing != nil {
		rec.Breathing = req.Breathing
	}
	if req.Environment != nil {
		rec.Environment = req.Environment
	}
	if req.TimeSeries != nil {
		rec.TimeSeries = req.TimeSeries
	}
	if req.Tags != nil {
		rec.Tags = req.Tags
	}
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}

	// a narrower window must still contain the stored timeline
	if err := rec.CheckTimeline(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, userID, []domain.SleepRecord{*rec}); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return rec, nil
}

func (s *sleepRecordService) Delete(ctx context.Context, userID, recordID string) error {
	ctx, span := recordsTracer.Start(ctx, "SleepRecordService.Delete",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("record.id", recordID),
		),
	)
	defer span.End()

	return s.repo.Delete(ctx, userID, recordID)
}

// List returns the user's records newest first. Dates may be given as
// YYYY-MM-DD or RFC3339 and are inclusive.
func (s *sleepRecordService) List(ctx context.Context, userID string, filter domain.SleepRecordFilter) (*domain.SleepDataResponse, error) {
	ctx, span := recordsTracer.Start(ctx, "SleepRecordService.List",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("filter.start_date", filter.StartDate),
			attribute.String("filter.end_date", filter.EndDate),
		),
	)
	defer span.End()

	var err error
	if filter.StartDate, filter.EndDate, err = normalizeBounds(filter.StartDate, filter.EndDate); err != nil {
		return nil, err
	}
	filter.Limit = pagination.NormalizeLimit(filter.Limit)
	filter.Offset = pagination.NormalizeOffset(filter.Offset)

	records, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if records == nil {
		records = []domain.SleepRecord{}
	}

	span.SetAttributes(attribute.Int("records.count", len(records)))
	return &domain.SleepDataResponse{Records: records, Count: len(records)}, nil
}

func (s *sleepRecordService) ListUsers(ctx context.Context, limit, offset int) (*domain.UsersResponse, error) {
	ctx, span := recordsTracer.Start(ctx, "SleepRecordService.ListUsers")
	defer span.End()

	users, err := s.repo.ListUsers(ctx, pagination.NormalizeLimit(limit), pagination.NormalizeOffset(offset))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if users == nil {
		users = []domain.UserSummary{}
	}
	return &domain.UsersResponse{Users: users, Count: len(users)}, nil
}

func asleepMinutes(rec domain.SleepRecord) int {
	minutes := int(rec.SleepEnd.Sub(rec.SleepStart).Minutes())
	if p := rec.SleepPhases; p != nil && p.AwakeMinutes != nil {
		minutes -= *p.AwakeMinutes
	}
	if minutes < 0 {
		return 0
	}
	return minutes
}

// normalizeBounds rewrites optional date bounds to YYYY-MM-DD and rejects
// an inverted range.
func normalizeBounds(start, end string) (string, string, error) {
	var err error
	if start != "" {
		if start, err = domain.NormalizeDate(start); err != nil {
			return "", "", err
		}
	}
	if end != "" {
		if end, err = domain.NormalizeDate(end); err != nil {
			return "", "", err
		}
	}
	if start != "" && end != "" && end < start {
		return "", "", fmt.Errorf("%w: end_date must not be before start_date", domain.ErrInvalidInput)
	}
	return start, end, nil
}
