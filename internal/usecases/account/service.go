package account

import (
	"github.com/vfg2006/marketing-audit-api/infrastructure/repository"
	"github.com/vfg2006/marketing-audit-api/internal/config"
	"github.com/vfg2006/marketing-audit-api/internal/domain"
	"github.com/vfg2006/marketing-audit-api/pkg/apiErrors"
)

type AccountService interface {
	CreateAccount(request *domain.Account) (*domain.AccountResponse, error)
	UpdateAccount(request *domain.UpdateAccountRequest) (*domain.AccountResponse, error)
	ListAccounts(availableStatus []domain.AccountStatus) ([]*domain.AccountResponse, error)
}

type Service struct {
	accountRepository repository.AccountRepository
	cfg               *config.Config
}

func NewService(
	accountRepository repository.AccountRepository,
	cfg *config.Config,
) AccountService {
	return &Service{
		accountRepository: accountRepository,
		cfg:               cfg,
	}
}

func (s *Service) ListAccounts(availableStatus []domain.AccountStatus) ([]*domain.AccountResponse, error) {
	accounts, err := s.accountRepository.ListAccounts(availableStatus)
	if err != nil {
		return nil, NewAccountError(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, "Falha ao listar contas no banco de dados")
	}

	// Transforma os accounts para o formato de resposta da API
	response := make([]*domain.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, toResponse(account))
	}

	return response, nil
}

func (s *Service) CreateAccount(request *domain.Account) (*domain.AccountResponse, error) {
	if request.Name == "" {
		return nil, NewAccountError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome da conta é obrigatório")
	}

	account, err := s.accountRepository.CreateAccount(request)
	if err != nil {
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao criar conta no banco de dados")
	}

	return toResponse(account), nil
}

func (s *Service) UpdateAccount(request *domain.UpdateAccountRequest) (*domain.AccountResponse, error) {
	if request.ID == "" {
		return nil, NewAccountError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório")
	}

	existing, err := s.accountRepository.GetAccountByID(request.ID)
	if err != nil {
		return nil, NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, request.ID, "Falha ao buscar conta")
	}
	if existing == nil {
		return nil, NewAccountErrorWithID(ErrAccountNotFound, apiErrors.ErrInvalidRequest, request.ID, "Conta não encontrada")
	}

	if err := s.accountRepository.UpdateAccount(request); err != nil {
		return nil, NewAccountErrorWithID(ErrUpdateAccount, apiErrors.ErrDatabaseOperation, request.ID, "Falha ao atualizar conta")
	}

	updated, err := s.accountRepository.GetAccountByID(request.ID)
	if err != nil {
		return nil, NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, request.ID, "Falha ao recarregar conta")
	}

	return toResponse(updated), nil
}

func toResponse(account *domain.Account) *domain.AccountResponse {
	return &domain.AccountResponse{
		ID:                account.ID,
		Name:              account.Name,
		Nickname:          account.Nickname,
		Status:            account.Status,
		AssumedOrderValue: account.AssumedOrderValue,
	}
}
