package auditing

import (
	"strconv"
	"strings"

	"github.com/vfg2006/marketing-audit-api/internal/domain"
	"github.com/vfg2006/marketing-audit-api/pkg/utils"
)

// Evaluator aplica as regras do registro a um KpiSnapshot, coletando os
// achados disparados. Sem estado mutável: seguro para uso concorrente.
type Evaluator struct {
	registry *Registry
}

// NewEvaluator cria um avaliador sobre um registro já construído
func NewEvaluator(registry *Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// Evaluate avalia as regras do domínio filtrado (todas, se o filtro for vazio)
// contra o snapshot. Uma regra cujo KPI está indefinido ou ausente é ignorada,
// nunca disparada nem tratada como erro: é a distinção entre "sem dados
// suficientes" e "passou na verificação". Overrides de limiar por id de regra
// são aplicados sem mutar o registro.
func (e *Evaluator) Evaluate(
	snapshot *domain.KpiSnapshot,
	filter domain.RuleDomain,
	thresholdOverrides map[string]float64,
) []domain.Finding {
	findings := make([]domain.Finding, 0)

	for _, rule := range e.registry.RulesFor(filter) {
		kpi, ok := snapshot.Get(rule.Condition.Kpi)
		if !ok || !kpi.Defined {
			continue
		}

		condition := rule.Condition
		if override, ok := thresholdOverrides[rule.ID]; ok {
			condition = condition.WithThreshold(override)
		}

		if !condition.Eval(kpi.Value) {
			continue
		}

		severity := rule.Severity
		if rule.SeverityFor != nil {
			severity = rule.SeverityFor(kpi.Value)
		}

		findings = append(findings, domain.Finding{
			RuleID:         rule.ID,
			EntityID:       snapshot.EntityID,
			Severity:       severity,
			Message:        renderTemplate(rule.Message, snapshot),
			Action:         renderTemplate(rule.Action, snapshot),
			ImpactEstimate: renderTemplate(rule.Impact, snapshot),
		})
	}

	return findings
}

// renderTemplate substitui os placeholders {kpi} e {kpi%} pelos valores do
// snapshot. KPIs indefinidos não são substituídos — uma regra só chega aqui
// quando o KPI da condição está definido, mas templates podem citar outros.
func renderTemplate(template string, snapshot *domain.KpiSnapshot) string {
	if !strings.Contains(template, "{") {
		return template
	}

	rendered := template
	for name, kpi := range snapshot.Kpis {
		if !kpi.Defined {
			continue
		}
		rendered = strings.ReplaceAll(rendered, "{"+name+"%}", formatPercent(kpi.Value))
		rendered = strings.ReplaceAll(rendered, "{"+name+"}", formatValue(kpi.Value))
	}
	return rendered
}

// formatValue formata o valor bruto de um KPI com até duas casas decimais
func formatValue(v float64) string {
	return strconv.FormatFloat(utils.RoundWithTwoDecimalPlace(v), 'f', -1, 64)
}

// formatPercent formata a forma percentual de uma razão, ex.: 0.015 -> "1.5%"
func formatPercent(v float64) string {
	return strconv.FormatFloat(utils.RoundWithTwoDecimalPlace(v*100), 'f', -1, 64) + "%"
}
