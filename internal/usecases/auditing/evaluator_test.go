package auditing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-audit-api/internal/domain"
)

func defaultEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	registry, err := DefaultRegistry(DefaultThresholds())
	require.NoError(t, err)
	return NewEvaluator(registry)
}

func snapshotFor(t *testing.T, record domain.MetricRecord) *domain.KpiSnapshot {
	t.Helper()
	snapshot, err := ComputeSnapshot([]domain.MetricRecord{record}, 150)
	require.NoError(t, err)
	return snapshot
}

func TestEvaluator_Evaluate(t *testing.T) {
	evaluator := defaultEvaluator(t)

	t.Run("Palavra-chave com qualidade baixa e CPC saudável - um achado", func(t *testing.T) {
		snapshot := snapshotFor(t, domain.MetricRecord{
			EntityID: "kw-9",
			Kind:     domain.EntityKindKeyword,
			Counters: map[string]float64{
				domain.CounterQualityScore: 5,
				domain.CounterCPC:          2.0,
			},
		})

		findings := evaluator.Evaluate(snapshot, domain.DomainAll, nil)

		require.Len(t, findings, 1)
		assert.Equal(t, RuleKeywordQualityLow, findings[0].RuleID)
		assert.Equal(t, "kw-9", findings[0].EntityID)
		assert.Equal(t, domain.SeverityMedium, findings[0].Severity)
		assert.Equal(t, "Índice de qualidade 5 abaixo de 7", findings[0].Message)
	})

	t.Run("CTR de 1.5% - mensagem renderizada na forma percentual", func(t *testing.T) {
		snapshot := snapshotFor(t, domain.MetricRecord{
			EntityID: "ad-1",
			Kind:     domain.EntityKindAd,
			Counters: map[string]float64{
				domain.CounterImpressions: 1000,
				domain.CounterClicks:      15,
				domain.CounterConversions: 1,
			},
		})

		findings := evaluator.Evaluate(snapshot, domain.DomainAll, nil)

		require.Len(t, findings, 1)
		assert.Equal(t, RuleAdCTRLow, findings[0].RuleID)
		assert.Equal(t, "CTR de 1.5% abaixo do mínimo recomendado de 2%", findings[0].Message)
	})

	t.Run("KPI indefinido - regra ignorada, nem disparada nem erro", func(t *testing.T) {
		// Sem cliques, taxa de conversão e custo por conversão ficam
		// indefinidos; as regras que dependem deles não podem disparar
		snapshot := snapshotFor(t, domain.MetricRecord{
			EntityID: "camp-7",
			Kind:     domain.EntityKindCampaign,
			Counters: map[string]float64{
				domain.CounterImpressions: 1000,
				domain.CounterClicks:      0,
				domain.CounterCost:        50,
			},
		})

		findings := evaluator.Evaluate(snapshot, domain.DomainAll, nil)

		for _, f := range findings {
			assert.NotEqual(t, RuleCampaignConversionLow, f.RuleID)
		}
	})

	t.Run("Override de limiar por regra - aplicado sem mutar o registro", func(t *testing.T) {
		record := domain.MetricRecord{
			EntityID: "kw-10",
			Kind:     domain.EntityKindKeyword,
			Counters: map[string]float64{
				domain.CounterCPC: 2.0,
			},
		}

		// Com o teto padrão de 4.00 o CPC de 2.00 é saudável
		findings := evaluator.Evaluate(snapshotFor(t, record), domain.DomainAll, nil)
		assert.Empty(t, findings)

		// Com o teto reduzido para 1.50 a mesma entrada dispara a regra
		overrides := map[string]float64{RuleKeywordCPCHigh: 1.5}
		findings = evaluator.Evaluate(snapshotFor(t, record), domain.DomainAll, overrides)
		require.Len(t, findings, 1)
		assert.Equal(t, RuleKeywordCPCHigh, findings[0].RuleID)

		// O registro segue com o limiar original
		findings = evaluator.Evaluate(snapshotFor(t, record), domain.DomainAll, nil)
		assert.Empty(t, findings)
	})

	t.Run("Filtro de domínio - regras de outros domínios não avaliadas", func(t *testing.T) {
		snapshot := snapshotFor(t, domain.MetricRecord{
			EntityID: "ad-2",
			Kind:     domain.EntityKindAd,
			Counters: map[string]float64{
				domain.CounterImpressions: 1000,
				domain.CounterClicks:      5,
			},
		})

		findings := evaluator.Evaluate(snapshot, domain.DomainLocalSearch, nil)
		assert.Empty(t, findings)
	})

	t.Run("Severidade escalada pela lacuna de completude", func(t *testing.T) {
		// 40% completo: lacuna de 0.6 eleva a severidade para alta
		snapshot := snapshotFor(t, domain.MetricRecord{
			EntityID: "profile-2",
			Kind:     domain.EntityKindBusinessProfile,
			Counters: map[string]float64{
				domain.CounterFieldsPresent:  4,
				domain.CounterFieldsRequired: 10,
			},
		})

		findings := evaluator.Evaluate(snapshot, domain.DomainAll, nil)

		require.Len(t, findings, 1)
		assert.Equal(t, RuleProfileIncomplete, findings[0].RuleID)
		assert.Equal(t, domain.SeverityHigh, findings[0].Severity)
		assert.Equal(t, "Perfil do negócio 40% completo", findings[0].Message)
	})
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"Razão com casa decimal", 0.015, "1.5%"},
		{"Razão inteira", 0.4, "40%"},
		{"Arredondamento em duas casas", 0.66666, "66.67%"},
		{"Zero", 0, "0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatPercent(tt.value))
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "5", formatValue(5))
	assert.Equal(t, "2.5", formatValue(2.5))
	assert.Equal(t, "0.67", formatValue(0.66666))
}
