package auditing

import (
	"sort"

	"github.com/vfg2006/marketing-audit-api/internal/domain"
)

// Ranker deduplica, prioriza e ordena achados, e calcula o score agregado
// de saúde. Puro sobre as entradas.
type Ranker struct {
	registry *Registry
	weights  domain.SeverityWeights
}

// NewRanker cria um ranqueador com a tabela de pesos configurada
func NewRanker(registry *Registry, weights domain.SeverityWeights) *Ranker {
	return &Ranker{registry: registry, weights: weights}
}

// Rank deduplica por (rule_id, entity_id), mantendo a primeira ocorrência,
// e ordena por severidade decrescente, ordem de registro da regra e, por
// fim, entity_id — determinístico para as mesmas entradas, independente da
// ordem de iteração de quem chamou.
func (r *Ranker) Rank(findings []domain.Finding) []domain.Finding {
	type key struct {
		ruleID   string
		entityID string
	}

	seen := make(map[key]bool, len(findings))
	ranked := make([]domain.Finding, 0, len(findings))
	for _, f := range findings {
		k := key{ruleID: f.RuleID, entityID: f.EntityID}
		if seen[k] {
			continue
		}
		seen[k] = true
		ranked = append(ranked, f)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Severity != ranked[j].Severity {
			return ranked[i].Severity > ranked[j].Severity
		}

		orderI := r.registry.OrderOf(ranked[i].RuleID)
		orderJ := r.registry.OrderOf(ranked[j].RuleID)
		if orderI != orderJ {
			return orderI < orderJ
		}

		return ranked[i].EntityID < ranked[j].EntityID
	})

	return ranked
}

// Score calcula o score de saúde: 100 menos o peso de cada achado,
// com piso em zero. Sem achados, 100.
func (r *Ranker) Score(findings []domain.Finding) int {
	score := 100
	for _, f := range findings {
		score -= r.weights.Weight(f.Severity)
	}
	if score < 0 {
		score = 0
	}
	return score
}
