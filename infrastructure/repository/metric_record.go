// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/marketing-audit-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-audit-api/internal/domain"
)

const (
	metricRecordsTable = "metric_records mr"
)

type MetricRecordRepository interface {
	GetByAccountID(accountID string) ([]*domain.MetricRecordEntry, error)
	SaveOrUpdate(accountID string, records []domain.MetricRecord) error
	DeleteByAccountID(accountID string) (int64, error)
}

type metricRecordRepository struct {
	conn *postgres.Connection
}

func NewMetricRecordRepository(conn *postgres.Connection) MetricRecordRepository {
	return &metricRecordRepository{
		conn: conn,
	}
}

func (r *metricRecordRepository) GetByAccountID(accountID string) ([]*domain.MetricRecordEntry, error) {
	query, args, err := squirrel.
		Select("mr.id, mr.account_id, mr.entity_id, mr.entity_kind, mr.counters, mr.window_start, mr.window_end, mr.created_at, mr.updated_at").
		From(metricRecordsTable).
		Where(squirrel.Eq{"mr.account_id": accountID}).
		OrderBy("mr.entity_id ASC, mr.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.MetricRecordEntry, 0)
	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro de métricas: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

func (r *metricRecordRepository) SaveOrUpdate(accountID string, records []domain.MetricRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("metric_records").
		Columns("account_id", "entity_id", "entity_kind", "counters", "window_start", "window_end").
		PlaceholderFormat(squirrel.Dollar)

	for _, record := range records {
		countersJSON, err := json.Marshal(record.Counters)
		if err != nil {
			return fmt.Errorf("erro ao serializar contadores para JSON: %w", err)
		}

		query = query.Values(
			accountID,
			record.EntityID,
			string(record.Kind),
			countersJSON,
			record.Window.Start,
			record.Window.End,
		)
	}

	// Upsert por (conta, entidade, início de janela): reenvio do mesmo
	// período substitui os contadores em vez de duplicar
	query = query.Suffix(`
		ON CONFLICT (account_id, entity_id, window_start) DO UPDATE SET
			entity_kind = EXCLUDED.entity_kind,
			counters = EXCLUDED.counters,
			window_end = EXCLUDED.window_end,
			updated_at = CURRENT_TIMESTAMP
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}

func (r *metricRecordRepository) DeleteByAccountID(accountID string) (int64, error) {
	query, args, err := squirrel.StatementBuilder.
		Delete("metric_records").
		Where(squirrel.Eq{"account_id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir query de remoção: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar query de remoção: %w", err)
	}

	return result.RowsAffected()
}

func (r *metricRecordRepository) scanEntry(rows *sql.Rows) (*domain.MetricRecordEntry, error) {
	entry := &domain.MetricRecordEntry{}
	var countersJSON []byte

	err := rows.Scan(
		&entry.ID,
		&entry.AccountID,
		&entry.Record.EntityID,
		&entry.Record.Kind,
		&countersJSON,
		&entry.Record.Window.Start,
		&entry.Record.Window.End,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(countersJSON) > 0 {
		if err := json.Unmarshal(countersJSON, &entry.Record.Counters); err != nil {
			return nil, fmt.Errorf("erro ao desserializar contadores: %w", err)
		}
	}

	return entry, nil
}
