package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/dbmetrics"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/psqlbuilder"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/types"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий расписаний персонала: недельные правила
// доступности с перерывами и разовые time-off исключения
//
// Данные принадлежат подсистеме управления персоналом (админка);
// ядро бронирования их только читает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// RulesFor получает правила доступности на день недели
// staffID=nil возвращает правила всех мастеров (fan-out генератора слотов)
// Отсутствие правил - пустой результат, не ошибка
func (r *Repository) RulesFor(ctx context.Context, staffID *int64, weekday time.Weekday) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"staff_id",
		"weekday",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("staff_availability_rules").
		Where(squirrel.Eq{"weekday": int(weekday)}).
		OrderBy("staff_id ASC, start_time ASC")

	if staffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *staffID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: RulesFor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: RulesFor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		var rule domain.AvailabilityRule
		var weekdayInt int
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.StaffID,
			&weekdayInt,
			&rule.StartTime,
			&rule.EndTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: RulesFor - scan rule: %v", ErrScanRow, err)
		}

		rule.Weekday = time.Weekday(weekdayInt)
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: RulesFor - rows error: %v", ErrScanRow, err)
	}

	if err := r.attachBreaks(ctx, rules); err != nil {
		return nil, err
	}

	return rules, nil
}

// attachBreaks загружает перерывы для набора правил одним запросом
func (r *Repository) attachBreaks(ctx context.Context, rules []*domain.AvailabilityRule) error {
	if len(rules) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	ruleIDs := make([]int64, len(rules))
	byID := make(map[int64]*domain.AvailabilityRule, len(rules))
	for i, rule := range rules {
		ruleIDs[i] = rule.ID
		byID[rule.ID] = rule
	}

	query, args, err := psqlbuilder.Select(
		"rule_id",
		"start_time",
		"end_time",
	).
		From("staff_availability_breaks").
		Where(squirrel.Eq{"rule_id": ruleIDs}).
		OrderBy("rule_id ASC, start_time ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachBreaks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachBreaks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ruleID int64
		var br domain.BreakWindow

		if err := rows.Scan(&ruleID, &br.Start, &br.End); err != nil {
			return fmt.Errorf("%w: attachBreaks - scan break: %v", ErrScanRow, err)
		}

		if rule, ok := byID[ruleID]; ok {
			rule.Breaks = append(rule.Breaks, br)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachBreaks - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// TimeOffFor получает time-off исключения мастера на конкретную дату
func (r *Repository) TimeOffFor(ctx context.Context, staffID int64, date time.Time) ([]*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"date",
		"all_day",
		"start_time",
		"end_time",
		"reason",
		"created_at",
	).
		From("staff_time_off").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.GtOrEq{"date": dayStart}).
		Where(squirrel.Lt{"date": dayEnd}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: TimeOffFor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: TimeOffFor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	timeOff := make([]*domain.TimeOff, 0)
	for rows.Next() {
		var off domain.TimeOff
		var startTime, endTime types.TimeString
		var createdAt sql.NullTime

		err := rows.Scan(
			&off.ID,
			&off.StaffID,
			&off.Date,
			&off.AllDay,
			&startTime,
			&endTime,
			&off.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: TimeOffFor - scan time off: %v", ErrScanRow, err)
		}

		// NULL в БД приходит пустой строкой
		if !startTime.IsZero() {
			off.StartTime = &startTime
		}
		if !endTime.IsZero() {
			off.EndTime = &endTime
		}

		off.CreatedAt = createdAt.Time
		timeOff = append(timeOff, &off)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: TimeOffFor - rows error: %v", ErrScanRow, err)
	}

	return timeOff, nil
}
