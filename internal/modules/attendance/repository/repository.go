package repository

import (
	"context"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/modules/attendance/dto"
	"bouncearound.com/daycare/pkg/datetime"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository interface {
	Create(ctx context.Context, attendance *entity.Attendance) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Attendance, error)
	FindByChildAndDate(ctx context.Context, childID uuid.UUID, date datetime.Date) (*entity.Attendance, error)
	List(ctx context.Context, criteria dto.AttendanceCriteria) ([]entity.Attendance, int64, error)
	ListByDate(ctx context.Context, date datetime.Date, onlyCheckedIn bool) ([]entity.Attendance, error)
	ListByChild(ctx context.Context, childID uuid.UUID, start, end datetime.Date) ([]entity.Attendance, error)
	ListLatePickups(ctx context.Context, start, end datetime.Date) ([]entity.Attendance, error)
	CountByDate(ctx context.Context, date datetime.Date) (checkedIn, checkedOut, late int64, err error)
	// WithLock loads the row FOR UPDATE, applies fn and saves the result in one transaction.
	WithLock(ctx context.Context, id uuid.UUID, fn func(attendance *entity.Attendance) error) (*entity.Attendance, error)
	Update(ctx context.Context, attendance *entity.Attendance) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *entity.Attendance) error {
	return r.db.WithContext(ctx).Omit("Child").Create(attendance).Error
}

func (r *attendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Attendance, error) {
	var attendance entity.Attendance
	if err := r.db.WithContext(ctx).First(&attendance, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) FindByChildAndDate(ctx context.Context, childID uuid.UUID, date datetime.Date) (*entity.Attendance, error) {
	var attendance entity.Attendance
	err := r.db.WithContext(ctx).
		Where("child_id = ? AND attendance_date = ?", childID, date).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) List(ctx context.Context, criteria dto.AttendanceCriteria) ([]entity.Attendance, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Attendance{})

	if criteria.Date != nil {
		query = query.Where("attendance_date = ?", *criteria.Date)
	}
	if criteria.ChildID != nil {
		query = query.Where("child_id = ?", *criteria.ChildID)
	}
	if criteria.CheckedOut != nil {
		if *criteria.CheckedOut {
			query = query.Where("check_out_time IS NOT NULL")
		} else {
			query = query.Where("check_out_time IS NULL")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []entity.Attendance
	err := query.
		Order("attendance_date DESC, check_in_time DESC").
		Limit(criteria.PageSize).
		Offset(criteria.Offset()).
		Find(&records).Error
	return records, total, err
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date datetime.Date, onlyCheckedIn bool) ([]entity.Attendance, error) {
	query := r.db.WithContext(ctx).Preload("Child").Where("attendance_date = ?", date)
	if onlyCheckedIn {
		query = query.Where("check_out_time IS NULL")
	}

	var records []entity.Attendance
	err := query.Order("check_in_time ASC").Find(&records).Error
	return records, err
}

func (r *attendanceRepository) ListByChild(ctx context.Context, childID uuid.UUID, start, end datetime.Date) ([]entity.Attendance, error) {
	var records []entity.Attendance
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Where("attendance_date BETWEEN ? AND ?", start, end).
		Order("attendance_date DESC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepository) ListLatePickups(ctx context.Context, start, end datetime.Date) ([]entity.Attendance, error) {
	var records []entity.Attendance
	err := r.db.WithContext(ctx).
		Preload("Child").
		Where("is_late_pickup = ?", true).
		Where("attendance_date BETWEEN ? AND ?", start, end).
		Order("attendance_date DESC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepository) CountByDate(ctx context.Context, date datetime.Date) (int64, int64, int64, error) {
	var row struct {
		CheckedIn  int64
		CheckedOut int64
		Late       int64
	}
	err := r.db.WithContext(ctx).Model(&entity.Attendance{}).
		Select(`COUNT(*) AS checked_in,
			COUNT(check_out_time) AS checked_out,
			COALESCE(SUM(CASE WHEN is_late_pickup THEN 1 ELSE 0 END), 0) AS late`).
		Where("attendance_date = ?", date).
		Scan(&row).Error
	return row.CheckedIn, row.CheckedOut, row.Late, err
}

func (r *attendanceRepository) WithLock(ctx context.Context, id uuid.UUID, fn func(attendance *entity.Attendance) error) (*entity.Attendance, error) {
	var attendance entity.Attendance

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&attendance, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&attendance); err != nil {
			return err
		}
		return tx.Omit("Child").Save(&attendance).Error
	})
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) Update(ctx context.Context, attendance *entity.Attendance) error {
	return r.db.WithContext(ctx).Omit("Child").Save(attendance).Error
}

func (r *attendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Attendance{}, "id = ?", id).Error
}
