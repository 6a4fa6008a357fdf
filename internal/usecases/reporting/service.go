package reporting

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"github.com/vfg2006/marketing-audit-api/infrastructure/repository"
	"github.com/vfg2006/marketing-audit-api/internal/config"
	"github.com/vfg2006/marketing-audit-api/internal/domain"
	"github.com/vfg2006/marketing-audit-api/internal/usecases/auditing"
	"github.com/vfg2006/marketing-audit-api/pkg/log"
	"github.com/vfg2006/marketing-audit-api/pkg/utils"
)

var (
	// ErrAccountNotFound indica conta inexistente ou removida
	ErrAccountNotFound = errors.New("conta não encontrada")

	// ErrNoMetricRecords indica conta sem métricas ingeridas para auditar
	ErrNoMetricRecords = errors.New("nenhum registro de métricas ingerido para a conta")
)

// Service implementa Reporter sobre o motor de auditoria e os repositórios
type Service struct {
	cfg         *config.Config
	auditor     auditing.Auditor
	accountRepo repository.AccountRepository
	metricRepo  repository.MetricRecordRepository
	resultRepo  repository.AuditResultRepository
}

// NewService cria o serviço de relatórios de auditoria
func NewService(
	cfg *config.Config,
	auditor auditing.Auditor,
	accountRepo repository.AccountRepository,
	metricRepo repository.MetricRecordRepository,
	resultRepo repository.AuditResultRepository,
) Reporter {
	return &Service{
		cfg:         cfg,
		auditor:     auditor,
		accountRepo: accountRepo,
		metricRepo:  metricRepo,
		resultRepo:  resultRepo,
	}
}

// IngestRecords valida os registros na fronteira do serviço antes de
// persistir: tipo de entidade conhecido e contadores não negativos.
// O motor em si nunca vê registros inválidos vindos deste caminho.
func (s *Service) IngestRecords(accountID string, records []domain.MetricRecord) error {
	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		return pkgerrors.Wrap(err, "erro ao buscar conta para ingestão")
	}
	if account == nil {
		return ErrAccountNotFound
	}

	for i := range records {
		r := &records[i]
		if r.EntityID == "" {
			return fmt.Errorf("registro %d sem entity_id", i)
		}
		if !r.Kind.Valid() {
			return fmt.Errorf("registro da entidade %q com tipo desconhecido %q", r.EntityID, r.Kind)
		}
		for name, value := range r.Counters {
			if value < 0 {
				return fmt.Errorf("contador %q da entidade %q com valor negativo", name, r.EntityID)
			}
		}
	}

	return s.metricRepo.SaveOrUpdate(accountID, records)
}

// RunForAccount executa e persiste uma auditoria completa da conta
func (s *Service) RunForAccount(accountID string) (*domain.AuditResultEntry, error) {
	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "erro ao buscar conta para auditoria")
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	entries, err := s.metricRepo.GetByAccountID(accountID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "erro ao carregar métricas da conta")
	}
	if len(entries) == 0 {
		return nil, ErrNoMetricRecords
	}

	records := make([]domain.MetricRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, entry.Record)
	}

	auditCfg := s.baseAuditConfig()
	if account.AssumedOrderValue != nil {
		// A conta conhece o próprio valor médio de pedido melhor que o
		// padrão global da configuração
		auditCfg.AssumedOrderValue = *account.AssumedOrderValue
	}

	result, err := s.auditor.Audit(records, auditCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "erro na execução da auditoria")
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "erro ao gerar id da execução")
	}

	entry := &domain.AuditResultEntry{
		RunID:     runID,
		AccountID: accountID,
		Result:    result,
	}

	if err := s.resultRepo.Save(entry); err != nil {
		return nil, pkgerrors.Wrap(err, "erro ao persistir resultado da auditoria")
	}

	log.L.WithFields(log.Fields{
		"account_id": accountID,
		"run_id":     runID,
		"score":      result.Score,
		"findings":   result.RecommendationCount,
	}).Info("audit: run completed for account")

	return entry, nil
}

// LatestForAccount retorna o último resultado persistido da conta
func (s *Service) LatestForAccount(accountID string) (*domain.AuditResultEntry, error) {
	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "erro ao buscar conta")
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	return s.resultRepo.GetLatestByAccountID(accountID)
}

// RunAdHoc executa uma auditoria sobre registros avulsos, sem persistência.
// Erros do motor (entrada vazia, tipo desconhecido) sobem ao chamador.
func (s *Service) RunAdHoc(records []domain.MetricRecord, overrides *AuditOverrides) (*domain.AuditResult, error) {
	auditCfg := s.baseAuditConfig()

	if overrides != nil {
		if overrides.AssumedOrderValue != nil {
			auditCfg.AssumedOrderValue = *overrides.AssumedOrderValue
		}
		auditCfg.DomainFilter = overrides.DomainFilter
		auditCfg.RuleThresholds = overrides.RuleThresholds
	}

	return s.auditor.Audit(records, auditCfg)
}

// baseAuditConfig monta o AuditConfig a partir da configuração da aplicação
func (s *Service) baseAuditConfig() domain.AuditConfig {
	return domain.AuditConfig{
		AssumedOrderValue: s.cfg.Audit.AssumedOrderValue,
		SeverityWeights: domain.SeverityWeights{
			Critical: s.cfg.Audit.WeightCritical,
			High:     s.cfg.Audit.WeightHigh,
			Medium:   s.cfg.Audit.WeightMedium,
			Low:      s.cfg.Audit.WeightLow,
			Info:     s.cfg.Audit.WeightInfo,
		},
	}
}
