package auditing

import (
	"github.com/vfg2006/marketing-audit-api/internal/domain"
)

// Service compõe calculador, avaliador e ranqueador sobre um registro de
// regras imutável. Sem estado entre chamadas: invocações concorrentes de
// Audit podem rodar em paralelo sem coordenação.
type Service struct {
	registry  *Registry
	evaluator *Evaluator
}

// NewService cria o motor de auditoria sobre um registro já construído
func NewService(registry *Registry) Auditor {
	return &Service{
		registry:  registry,
		evaluator: NewEvaluator(registry),
	}
}

// Audit agrupa os registros por entidade, deriva um KpiSnapshot por grupo,
// avalia as regras, e ranqueia e pontua o conjunto de achados
func (s *Service) Audit(records []domain.MetricRecord, cfg domain.AuditConfig) (*domain.AuditResult, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	// Agrupar por entidade preservando a ordem da primeira ocorrência,
	// para que o desempate final por entity_id seja o único critério
	// dependente da entrada
	groups := make(map[string][]domain.MetricRecord)
	order := make([]string, 0)
	for _, record := range records {
		if _, ok := groups[record.EntityID]; !ok {
			order = append(order, record.EntityID)
		}
		groups[record.EntityID] = append(groups[record.EntityID], record)
	}

	findings := make([]domain.Finding, 0)
	for _, entityID := range order {
		snapshot, err := ComputeSnapshot(groups[entityID], cfg.AssumedOrderValue)
		if err != nil {
			return nil, err
		}

		findings = append(findings, s.evaluator.Evaluate(snapshot, cfg.DomainFilter, cfg.RuleThresholds)...)
	}

	weights := cfg.SeverityWeights
	if weights == (domain.SeverityWeights{}) {
		weights = domain.DefaultSeverityWeights()
	}

	ranker := NewRanker(s.registry, weights)
	ranked := ranker.Rank(findings)

	issues := 0
	for _, f := range ranked {
		if f.Severity >= domain.SeverityHigh {
			issues++
		}
	}

	return &domain.AuditResult{
		Findings:            ranked,
		Score:               ranker.Score(ranked),
		IssueCount:          issues,
		RecommendationCount: len(ranked),
	}, nil
}

// Rules retorna o catálogo de regras na ordem de registro
func (s *Service) Rules() []domain.AuditRule {
	return s.registry.RulesFor(domain.DomainAll)
}
