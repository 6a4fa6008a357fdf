package auditing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-audit-api/internal/domain"
)

func auditorForTest(t *testing.T) Auditor {
	t.Helper()
	registry, err := DefaultRegistry(DefaultThresholds())
	require.NoError(t, err)
	return NewService(registry)
}

func TestService_Audit(t *testing.T) {
	auditor := auditorForTest(t)
	cfg := domain.AuditConfig{AssumedOrderValue: 150}

	t.Run("Perfil incompleto e citações não verificadas - score 84", func(t *testing.T) {
		records := []domain.MetricRecord{
			{
				EntityID: "profile-1",
				Kind:     domain.EntityKindBusinessProfile,
				Counters: map[string]float64{
					domain.CounterFieldsPresent:  8,
					domain.CounterFieldsRequired: 12,
				},
			},
			{
				EntityID: "citations-1",
				Kind:     domain.EntityKindCitationSet,
				Counters: map[string]float64{
					domain.CounterVerifiedCount: 3,
					domain.CounterTotalCount:    10,
				},
			},
		}

		result, err := auditor.Audit(records, cfg)
		require.NoError(t, err)

		// Lacuna de completude de 33% escala para severidade média;
		// citações abaixo do mínimo também: 100 - 8 - 8 = 84
		require.Len(t, result.Findings, 2)
		assert.Equal(t, 84, result.Score)
		assert.Equal(t, 0, result.IssueCount)
		assert.Equal(t, 2, result.RecommendationCount)

		for _, f := range result.Findings {
			assert.Equal(t, domain.SeverityMedium, f.Severity)
		}
	})

	t.Run("Entrada vazia - ErrEmptyInput", func(t *testing.T) {
		_, err := auditor.Audit(nil, cfg)
		assert.ErrorIs(t, err, ErrEmptyInput)

		_, err = auditor.Audit([]domain.MetricRecord{}, cfg)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("Registro inválido no meio do lote - falha inteira", func(t *testing.T) {
		records := []domain.MetricRecord{
			{
				EntityID: "camp-1",
				Kind:     domain.EntityKindCampaign,
				Counters: map[string]float64{domain.CounterImpressions: 100},
			},
			{EntityID: "x-1", Kind: "tipo_invalido"},
		}

		_, err := auditor.Audit(records, cfg)

		var invalidErr *InvalidRecordError
		assert.ErrorAs(t, err, &invalidErr)
	})

	t.Run("Entidades saudáveis - sem achados e score 100", func(t *testing.T) {
		records := []domain.MetricRecord{
			{
				EntityID: "camp-ok",
				Kind:     domain.EntityKindCampaign,
				Counters: map[string]float64{
					domain.CounterImpressions: 1000,
					domain.CounterClicks:      50,
					domain.CounterConversions: 5,
					domain.CounterCost:        100,
				},
			},
		}

		result, err := auditor.Audit(records, cfg)
		require.NoError(t, err)

		assert.Empty(t, result.Findings)
		assert.Equal(t, 100, result.Score)
		assert.Equal(t, 0, result.IssueCount)
		assert.Equal(t, 0, result.RecommendationCount)
	})

	t.Run("Mesma entrada duas vezes - resultados idênticos", func(t *testing.T) {
		records := []domain.MetricRecord{
			{
				EntityID: "kw-1",
				Kind:     domain.EntityKindKeyword,
				Counters: map[string]float64{
					domain.CounterQualityScore: 5,
					domain.CounterCPC:          6.0,
				},
			},
			{
				EntityID: "profile-1",
				Kind:     domain.EntityKindBusinessProfile,
				Counters: map[string]float64{
					domain.CounterFieldsPresent:  4,
					domain.CounterFieldsRequired: 10,
				},
			},
		}

		first, err := auditor.Audit(records, cfg)
		require.NoError(t, err)

		second, err := auditor.Audit(records, cfg)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Contagem de problemas - apenas severidade alta ou crítica", func(t *testing.T) {
		records := []domain.MetricRecord{
			{
				// CTR baixo dispara regra de severidade alta
				EntityID: "ad-1",
				Kind:     domain.EntityKindAd,
				Counters: map[string]float64{
					domain.CounterImpressions: 1000,
					domain.CounterClicks:      5,
					domain.CounterConversions: 1,
				},
			},
			{
				// Qualidade baixa dispara regra de severidade média
				EntityID: "kw-1",
				Kind:     domain.EntityKindKeyword,
				Counters: map[string]float64{
					domain.CounterQualityScore: 5,
				},
			},
		}

		result, err := auditor.Audit(records, cfg)
		require.NoError(t, err)

		require.Len(t, result.Findings, 2)
		assert.Equal(t, 1, result.IssueCount)
		assert.Equal(t, 2, result.RecommendationCount)

		// Achado de maior severidade vem primeiro
		assert.Equal(t, RuleAdCTRLow, result.Findings[0].RuleID)
	})

	t.Run("Pesos customizados aplicados ao score", func(t *testing.T) {
		records := []domain.MetricRecord{
			{
				EntityID: "kw-1",
				Kind:     domain.EntityKindKeyword,
				Counters: map[string]float64{
					domain.CounterQualityScore: 5,
				},
			},
		}

		customCfg := domain.AuditConfig{
			AssumedOrderValue: 150,
			SeverityWeights: domain.SeverityWeights{
				Critical: 40, High: 20, Medium: 10, Low: 5, Info: 0,
			},
		}

		result, err := auditor.Audit(records, customCfg)
		require.NoError(t, err)

		require.Len(t, result.Findings, 1)
		assert.Equal(t, 90, result.Score)
	})

	t.Run("Valor médio de pedido muda o disparo da regra de ROAS", func(t *testing.T) {
		records := []domain.MetricRecord{
			{
				EntityID: "camp-roas",
				Kind:     domain.EntityKindCampaign,
				Counters: map[string]float64{
					domain.CounterImpressions: 1000,
					domain.CounterClicks:      100,
					domain.CounterConversions: 2,
					domain.CounterCost:        400,
				},
			},
		}

		// Com valor de pedido de 150: ROAS = 2*150/400 = 0.75 < 1, dispara
		result, err := auditor.Audit(records, domain.AuditConfig{AssumedOrderValue: 150})
		require.NoError(t, err)

		ruleIDs := make([]string, 0, len(result.Findings))
		for _, f := range result.Findings {
			ruleIDs = append(ruleIDs, f.RuleID)
		}
		assert.Contains(t, ruleIDs, RuleCampaignROASLow)

		// Com valor de pedido de 300: ROAS = 2*300/400 = 1.5, saudável
		result, err = auditor.Audit(records, domain.AuditConfig{AssumedOrderValue: 300})
		require.NoError(t, err)

		for _, f := range result.Findings {
			assert.NotEqual(t, RuleCampaignROASLow, f.RuleID)
		}
	})
}

func TestService_Rules(t *testing.T) {
	auditor := auditorForTest(t)

	rules := auditor.Rules()

	require.Len(t, rules, 11)
	assert.Equal(t, RuleAdCTRLow, rules[0].ID)
}
