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
	auditResultsTable = "audit_results ar"
)

type AuditResultRepository interface {
	GetLatestByAccountID(accountID string) (*domain.AuditResultEntry, error)
	Save(entry *domain.AuditResultEntry) error
}

type auditResultRepository struct {
	conn *postgres.Connection
}

func NewAuditResultRepository(conn *postgres.Connection) AuditResultRepository {
	return &auditResultRepository{
		conn: conn,
	}
}

func (r *auditResultRepository) GetLatestByAccountID(accountID string) (*domain.AuditResultEntry, error) {
	query, args, err := squirrel.
		Select("ar.id, ar.run_id, ar.account_id, ar.result, ar.created_at").
		From(auditResultsTable).
		Where(squirrel.Eq{"ar.account_id": accountID}).
		OrderBy("ar.created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	entry, err := r.scanEntryRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear resultado de auditoria: %w", err)
	}

	return entry, nil
}

func (r *auditResultRepository) Save(entry *domain.AuditResultEntry) error {
	resultJSON, err := json.Marshal(entry.Result)
	if err != nil {
		return fmt.Errorf("erro ao serializar resultado para JSON: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("audit_results").
		Columns("run_id", "account_id", "result").
		Values(entry.RunID, entry.AccountID, resultJSON).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}

func (r *auditResultRepository) scanEntryRow(row *sql.Row) (*domain.AuditResultEntry, error) {
	entry := &domain.AuditResultEntry{}
	var resultJSON []byte

	err := row.Scan(
		&entry.ID,
		&entry.RunID,
		&entry.AccountID,
		&resultJSON,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(resultJSON) > 0 {
		if err := json.Unmarshal(resultJSON, &entry.Result); err != nil {
			return nil, fmt.Errorf("erro ao desserializar resultado: %w", err)
		}
	}

	return entry, nil
}
