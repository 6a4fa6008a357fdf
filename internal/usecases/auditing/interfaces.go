package auditing

import (
	"github.com/vfg2006/marketing-audit-api/internal/domain"
)

// Auditor é a interface do motor de auditoria: contadores brutos entram,
// achados ranqueados e score de saúde saem
type Auditor interface {
	// Audit executa uma auditoria completa sobre um lote de registros.
	// Falha com ErrEmptyInput para lote vazio e InvalidRecordError para
	// tipo de entidade desconhecido; todos os demais casos degenerados
	// (nenhum achado, todos os KPIs indefinidos) são resultados válidos.
	Audit(records []domain.MetricRecord, cfg domain.AuditConfig) (*domain.AuditResult, error)

	// Rules expõe o catálogo de regras do registro, na ordem de registro
	Rules() []domain.AuditRule
}
