package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/marketing-audit-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-audit-api/internal/domain"
	"github.com/vfg2006/marketing-audit-api/pkg/utils"
)

const (
	accountsTable = "accounts a"
)

type AccountRepository interface {
	GetAccountByID(accountID string) (*domain.Account, error)
	ListAccounts(availableStatus []domain.AccountStatus) ([]*domain.Account, error)
	CreateAccount(account *domain.Account) (*domain.Account, error)
	UpdateAccount(account *domain.UpdateAccountRequest) error
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (a *accountRepository) GetAccountByID(accountID string) (*domain.Account, error) {
	query, args, err := squirrel.
		Select("a.id, a.name, a.nickname, a.status, a.assumed_order_value, a.created_at, a.updated_at").
		From(accountsTable).
		Where(squirrel.Eq{"a.id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := a.conn.QueryRow(query, args...)
	account, err := a.scanAccountRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear conta: %w", err)
	}

	return account, nil
}

func (a *accountRepository) ListAccounts(availableStatus []domain.AccountStatus) ([]*domain.Account, error) {
	queryBuilder := squirrel.
		Select("a.id, a.name, a.nickname, a.status, a.assumed_order_value, a.created_at, a.updated_at").
		From(accountsTable).
		OrderBy("a.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(availableStatus) > 0 {
		statuses := make([]string, 0, len(availableStatus))
		for _, s := range availableStatus {
			statuses = append(statuses, string(s))
		}
		queryBuilder = queryBuilder.Where(squirrel.Eq{"a.status": statuses})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := a.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account := &domain.Account{}
		if err := rows.Scan(
			&account.ID,
			&account.Name,
			&account.Nickname,
			&account.Status,
			&account.AssumedOrderValue,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear conta: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}

func (a *accountRepository) CreateAccount(account *domain.Account) (*domain.Account, error) {
	if account.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, errors.Wrap(err, "erro ao gerar id da conta")
		}
		account.ID = id
	}

	if account.Status == "" {
		account.Status = domain.AccountStatusActive
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("accounts").
		Columns("id", "name", "nickname", "status", "assumed_order_value").
		Values(account.ID, account.Name, account.Nickname, account.Status, account.AssumedOrderValue).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err := a.conn.Exec(query, args...); err != nil {
		return nil, fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return account, nil
}

func (a *accountRepository) UpdateAccount(account *domain.UpdateAccountRequest) error {
	queryBuilder := squirrel.StatementBuilder.
		Update("accounts").
		Where(squirrel.Eq{"id": account.ID}).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		PlaceholderFormat(squirrel.Dollar)

	if account.Nickname != nil {
		queryBuilder = queryBuilder.Set("nickname", *account.Nickname)
	}
	if account.Status != nil {
		queryBuilder = queryBuilder.Set("status", *account.Status)
	}
	if account.AssumedOrderValue != nil {
		queryBuilder = queryBuilder.Set("assumed_order_value", *account.AssumedOrderValue)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	result, err := a.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar query de atualização: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("conta não encontrada: %s", account.ID)
	}

	return nil
}

func (a *accountRepository) scanAccountRow(row *sql.Row) (*domain.Account, error) {
	account := &domain.Account{}

	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Nickname,
		&account.Status,
		&account.AssumedOrderValue,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return account, nil
}
