package auditing

import (
	"regexp"
	"strings"

	"github.com/vfg2006/marketing-audit-api/internal/domain"
)

// placeholderPattern reconhece os placeholders {kpi} e {kpi%} dos templates
var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)%?\}`)

// Registry é a coleção ordenada e imutável de regras de auditoria.
// Construído uma única vez na inicialização do processo; depois disso é
// seguro para leituras concorrentes sem sincronização. Registrar regras
// depois do início de auditorias concorrentes não é suportado.
type Registry struct {
	rules []domain.AuditRule
	byID  map[string]int
}

// NewRegistry cria um registro vazio
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]int),
	}
}

// Register adiciona uma regra ao registro, validando o id e as referências
// de KPI da condição e dos templates. Falha com DuplicateRuleError para id
// repetido e RuleConfigError para KPI que o calculador nunca produz —
// erros de configuração detectados cedo, nunca em tempo de avaliação.
func (r *Registry) Register(rule domain.AuditRule) error {
	if _, exists := r.byID[rule.ID]; exists {
		return &DuplicateRuleError{RuleID: rule.ID}
	}

	if !knownKpis[rule.Condition.Kpi] {
		return &RuleConfigError{RuleID: rule.ID, Kpi: rule.Condition.Kpi, Where: "condition"}
	}

	for _, tpl := range []struct{ name, text string }{
		{"message_template", rule.Message},
		{"recommended_action_template", rule.Action},
		{"estimated_impact_template", rule.Impact},
	} {
		for _, match := range placeholderPattern.FindAllStringSubmatch(tpl.text, -1) {
			kpi := strings.TrimSuffix(match[1], "%")
			if !knownKpis[kpi] {
				return &RuleConfigError{RuleID: rule.ID, Kpi: kpi, Where: tpl.name}
			}
		}
	}

	r.byID[rule.ID] = len(r.rules)
	r.rules = append(r.rules, rule)
	return nil
}

// RulesFor retorna as regras de um domínio na ordem de registro.
// Domínio vazio retorna todas as regras.
func (r *Registry) RulesFor(d domain.RuleDomain) []domain.AuditRule {
	if d == domain.DomainAll {
		out := make([]domain.AuditRule, len(r.rules))
		copy(out, r.rules)
		return out
	}

	out := make([]domain.AuditRule, 0)
	for _, rule := range r.rules {
		if rule.Domain == d {
			out = append(out, rule)
		}
	}
	return out
}

// OrderOf retorna a posição de registro de uma regra, usada como critério
// de desempate na ordenação dos achados
func (r *Registry) OrderOf(ruleID string) int {
	if idx, ok := r.byID[ruleID]; ok {
		return idx
	}
	return len(r.rules)
}

// Len retorna o número de regras registradas
func (r *Registry) Len() int {
	return len(r.rules)
}
