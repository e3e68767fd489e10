package repository

import (
	"context"
	"errors"

	"github.com/blaisecz/sleep-data-service/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	recordBatchSize = 100
	pointBatchSize  = 1000
)

type postgresRepository struct {
	db *gorm.DB
}

func NewPostgresRepository(db *gorm.DB) SleepRecordRepository {
	return &postgresRepository{db: db}
}

// Migrate creates or updates the sleep tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&sleepRecordRow{}, &timeSeriesRow{})
}

func (r *postgresRepository) Save(ctx context.Context, userID string, records []domain.SleepRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]sleepRecordRow, 0, len(records))
	ids := make([]string, 0, len(records))
	var points []timeSeriesRow
	for _, rec := range records {
		rec.UserID = userID
		row, pts, err := toRow(rec)
		if err != nil {
			return storageErr("encode record "+rec.ID, err)
		}
		rows = append(rows, row)
		ids = append(ids, rec.ID)
		points = append(points, pts...)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).
			CreateInBatches(&rows, recordBatchSize).Error
		if err != nil {
			return err
		}

		if err := tx.Where("record_id IN ?", ids).Delete(&timeSeriesRow{}).Error; err != nil {
			return err
		}
		if len(points) == 0 {
			return nil
		}
		return tx.CreateInBatches(&points, pointBatchSize).Error
	})
	if err != nil {
		return storageErr("save records", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, userID, recordID string) (*domain.SleepRecord, error) {
	var row sleepRecordRow
	err := r.withTimeSeries(ctx).
		Where("id = ? AND user_id = ?", recordID, userID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("get record", err)
	}

	rec, err := fromRow(row)
	if err != nil {
		return nil, storageErr("decode record "+row.ID, err)
	}
	return &rec, nil
}

func (r *postgresRepository) List(ctx context.Context, userID string, filter domain.SleepRecordFilter) ([]domain.SleepRecord, error) {
	query := dateBounds(r.withTimeSeries(ctx).Where("user_id = ?", userID), filter.StartDate, filter.EndDate).
		Order("date DESC").
		Order("sleep_start DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	return r.find(query)
}

func (r *postgresRepository) ListByDateRange(ctx context.Context, userID, from, to string) ([]domain.SleepRecord, error) {
	query := dateBounds(r.withTimeSeries(ctx).Where("user_id = ?", userID), from, to).
		Order("date ASC").
		Order("sleep_start ASC")
	return r.find(query)
}

func (r *postgresRepository) Delete(ctx context.Context, userID, recordID string) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", recordID, userID).Delete(&sleepRecordRow{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		// The FK cascades as well; this covers tables created before the constraint existed.
		return tx.Where("record_id = ?", recordID).Delete(&timeSeriesRow{}).Error
	})
	if err != nil {
		return storageErr("delete record", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.UserSummary, error) {
	query := r.db.WithContext(ctx).
		Model(&sleepRecordRow{}).
		Select("user_id, COUNT(*) AS record_count, MAX(date) AS latest_record_date").
		Group("user_id").
		Order("record_count DESC").
		Order("user_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	users := []domain.UserSummary{}
	if err := query.Scan(&users).Error; err != nil {
		return nil, storageErr("list users", err)
	}
	return users, nil
}

func (r *postgresRepository) withTimeSeries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("TimeSeries", func(db *gorm.DB) *gorm.DB {
		return db.Order("timestamp ASC")
	})
}

func (r *postgresRepository) find(query *gorm.DB) ([]domain.SleepRecord, error) {
	var rows []sleepRecordRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, storageErr("list records", err)
	}

	records := make([]domain.SleepRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := fromRow(row)
		if err != nil {
			return nil, storageErr("decode record "+row.ID, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func dateBounds(query *gorm.DB, from, to string) *gorm.DB {
	if from != "" {
		query = query.Where("date >= ?", from)
	}
	if to != "" {
		query = query.Where("date <= ?", to)
	}
	return query
}
