package auditing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-audit-api/internal/domain"
)

func validRule(id string) domain.AuditRule {
	return domain.AuditRule{
		ID:       id,
		Domain:   domain.DomainAdvertising,
		Severity: domain.SeverityMedium,
		Condition: domain.Condition{
			Kpi: domain.KpiCTR, Op: domain.OperatorLessThan, Threshold: 0.02,
		},
		Message: "CTR de {ctr%} abaixo do esperado",
		Action:  "Revise os criativos",
		Impact:  "Mais cliques com o mesmo orçamento",
	}
}

func TestRegistry_Register(t *testing.T) {
	t.Run("Regra válida - registrada na ordem", func(t *testing.T) {
		registry := NewRegistry()

		require.NoError(t, registry.Register(validRule("rule_a")))
		require.NoError(t, registry.Register(validRule("rule_b")))

		assert.Equal(t, 2, registry.Len())
		assert.Equal(t, 0, registry.OrderOf("rule_a"))
		assert.Equal(t, 1, registry.OrderOf("rule_b"))
	})

	t.Run("Id duplicado - DuplicateRuleError", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, registry.Register(validRule("rule_a")))

		err := registry.Register(validRule("rule_a"))

		var dupErr *DuplicateRuleError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, "rule_a", dupErr.RuleID)
		assert.Equal(t, 1, registry.Len())
	})

	t.Run("KPI desconhecido na condição - RuleConfigError", func(t *testing.T) {
		registry := NewRegistry()

		rule := validRule("rule_bad")
		rule.Condition.Kpi = "inexistente"

		err := registry.Register(rule)

		var cfgErr *RuleConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "inexistente", cfgErr.Kpi)
		assert.Equal(t, "condition", cfgErr.Where)
	})

	t.Run("Placeholder desconhecido no template - RuleConfigError", func(t *testing.T) {
		registry := NewRegistry()

		rule := validRule("rule_bad_template")
		rule.Message = "Valor de {kpi_inexistente} fora do esperado"

		err := registry.Register(rule)

		var cfgErr *RuleConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "kpi_inexistente", cfgErr.Kpi)
		assert.Equal(t, "message_template", cfgErr.Where)
	})

	t.Run("Placeholder percentual válido - aceito", func(t *testing.T) {
		registry := NewRegistry()

		rule := validRule("rule_pct")
		rule.Action = "Eleve a taxa de conversão acima de {conversion_rate%}"

		assert.NoError(t, registry.Register(rule))
	})
}

func TestRegistry_RulesFor(t *testing.T) {
	registry := NewRegistry()

	advertising := validRule("rule_adv")

	local := validRule("rule_local")
	local.Domain = domain.DomainLocalSearch
	local.Condition.Kpi = domain.KpiCompleteness

	require.NoError(t, registry.Register(advertising))
	require.NoError(t, registry.Register(local))

	t.Run("Domínio vazio - todas as regras na ordem de registro", func(t *testing.T) {
		rules := registry.RulesFor(domain.DomainAll)
		require.Len(t, rules, 2)
		assert.Equal(t, "rule_adv", rules[0].ID)
		assert.Equal(t, "rule_local", rules[1].ID)
	})

	t.Run("Filtro por domínio - apenas as regras do domínio", func(t *testing.T) {
		rules := registry.RulesFor(domain.DomainLocalSearch)
		require.Len(t, rules, 1)
		assert.Equal(t, "rule_local", rules[0].ID)
	})
}

func TestDefaultRegistry(t *testing.T) {
	registry, err := DefaultRegistry(DefaultThresholds())
	require.NoError(t, err)

	// Todas as regras embutidas registradas e resolvendo KPIs conhecidos
	assert.Equal(t, 11, registry.Len())
	assert.Equal(t, 0, registry.OrderOf(RuleAdCTRLow))
}
