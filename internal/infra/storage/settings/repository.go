package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

const (
	table = "business_config"
	// Конфигурация салона хранится одной строкой
	singletonID = 1
)

// Repository репозиторий конфигурации салона
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает сохранённую конфигурацию или ErrConfigNotFound
func (r *Repository) Get(ctx context.Context) (*domain.BusinessConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("data", "updated_at").
		From(table).
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		data      []byte
		updatedAt time.Time
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&data, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	// Отсутствующие в документе поля берутся из значений по умолчанию
	cfg := domain.DefaultBusinessConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: Get - decode: %v", ErrEncode, err)
	}
	cfg.UpdatedAt = updatedAt

	return &cfg, nil
}

// Save создаёт или перезаписывает конфигурацию
func (r *Repository) Save(ctx context.Context, cfg *domain.BusinessConfig) (*domain.BusinessConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: Save - encode: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "data").
		Values(singletonID, string(data)).
		Suffix("ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW() RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	saved := *cfg
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&saved.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	return &saved, nil
}
