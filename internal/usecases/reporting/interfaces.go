package reporting

import (
	"github.com/vfg2006/marketing-audit-api/internal/domain"
)

// AuditOverrides são os ajustes opcionais que o chamador pode aplicar a uma
// auditoria ad-hoc, sem alterar a configuração global
type AuditOverrides struct {
	AssumedOrderValue *float64           `json:"assumed_order_value,omitempty"`
	DomainFilter      domain.RuleDomain  `json:"domain_filter,omitempty"`
	RuleThresholds    map[string]float64 `json:"rule_thresholds,omitempty"`
}

// Reporter orquestra o motor de auditoria com os colaboradores de
// persistência: ingestão de métricas, execução e consulta de auditorias
type Reporter interface {
	// IngestRecords valida e persiste registros de métricas enviados
	// pelos colaboradores de dados de uma conta
	IngestRecords(accountID string, records []domain.MetricRecord) error

	// RunForAccount carrega as métricas persistidas da conta, executa a
	// auditoria e persiste o resultado
	RunForAccount(accountID string) (*domain.AuditResultEntry, error)

	// LatestForAccount retorna o último resultado de auditoria persistido
	LatestForAccount(accountID string) (*domain.AuditResultEntry, error)

	// RunAdHoc executa uma auditoria sobre registros avulsos, sem persistir
	RunAdHoc(records []domain.MetricRecord, overrides *AuditOverrides) (*domain.AuditResult, error)
}
