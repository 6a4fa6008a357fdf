package auditing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-audit-api/internal/domain"
)

func rankerForTest(t *testing.T) *Ranker {
	t.Helper()
	registry, err := DefaultRegistry(DefaultThresholds())
	require.NoError(t, err)
	return NewRanker(registry, domain.DefaultSeverityWeights())
}

func TestRanker_Rank(t *testing.T) {
	ranker := rankerForTest(t)

	t.Run("Ordenação por severidade, ordem de registro e entity_id", func(t *testing.T) {
		findings := []domain.Finding{
			{RuleID: RuleKeywordQualityLow, EntityID: "kw-b", Severity: domain.SeverityMedium},
			{RuleID: RuleCampaignROASLow, EntityID: "camp-1", Severity: domain.SeverityHigh},
			{RuleID: RuleKeywordQualityLow, EntityID: "kw-a", Severity: domain.SeverityMedium},
			{RuleID: RuleAdCTRLow, EntityID: "ad-1", Severity: domain.SeverityHigh},
		}

		ranked := ranker.Rank(findings)

		require.Len(t, ranked, 4)

		// Severidade alta primeiro; entre elas, ad_ctr_low registrada antes
		assert.Equal(t, RuleAdCTRLow, ranked[0].RuleID)
		assert.Equal(t, RuleCampaignROASLow, ranked[1].RuleID)

		// Mesma regra e severidade: desempate por entity_id
		assert.Equal(t, "kw-a", ranked[2].EntityID)
		assert.Equal(t, "kw-b", ranked[3].EntityID)
	})

	t.Run("Deduplicação por (regra, entidade) - primeira ocorrência vence", func(t *testing.T) {
		findings := []domain.Finding{
			{RuleID: RuleAdCTRLow, EntityID: "ad-1", Severity: domain.SeverityHigh, Message: "primeira"},
			{RuleID: RuleAdCTRLow, EntityID: "ad-1", Severity: domain.SeverityHigh, Message: "segunda"},
			{RuleID: RuleAdCTRLow, EntityID: "ad-2", Severity: domain.SeverityHigh},
		}

		ranked := ranker.Rank(findings)

		require.Len(t, ranked, 2)
		assert.Equal(t, "primeira", ranked[0].Message)
	})

	t.Run("Determinístico para as mesmas entradas", func(t *testing.T) {
		findings := []domain.Finding{
			{RuleID: RuleKeywordCPCHigh, EntityID: "kw-2", Severity: domain.SeverityMedium},
			{RuleID: RuleAdCTRLow, EntityID: "ad-3", Severity: domain.SeverityHigh},
			{RuleID: RuleProfileIncomplete, EntityID: "profile-1", Severity: domain.SeverityLow},
		}

		first := ranker.Rank(findings)
		second := ranker.Rank(findings)

		assert.Equal(t, first, second)
	})
}

func TestRanker_Score(t *testing.T) {
	ranker := rankerForTest(t)

	tests := []struct {
		name     string
		findings []domain.Finding
		expected int
	}{
		{
			name:     "Sem achados - score 100",
			findings: nil,
			expected: 100,
		},
		{
			name: "Um achado de severidade alta - 100 menos 15",
			findings: []domain.Finding{
				{Severity: domain.SeverityHigh},
			},
			expected: 85,
		},
		{
			name: "Achados acumulados - pesos somados",
			findings: []domain.Finding{
				{Severity: domain.SeverityCritical},
				{Severity: domain.SeverityHigh},
				{Severity: domain.SeverityMedium},
				{Severity: domain.SeverityLow},
				{Severity: domain.SeverityInfo},
			},
			expected: 49,
		},
		{
			name: "Muitos achados - piso em zero, nunca negativo",
			findings: []domain.Finding{
				{Severity: domain.SeverityCritical},
				{Severity: domain.SeverityCritical},
				{Severity: domain.SeverityCritical},
				{Severity: domain.SeverityCritical},
				{Severity: domain.SeverityCritical},
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ranker.Score(tt.findings))
		})
	}
}

func TestRanker_ScoreCustomWeights(t *testing.T) {
	registry, err := DefaultRegistry(DefaultThresholds())
	require.NoError(t, err)

	weights := domain.SeverityWeights{Critical: 50, High: 10, Medium: 5, Low: 1, Info: 0}
	ranker := NewRanker(registry, weights)

	findings := []domain.Finding{
		{Severity: domain.SeverityCritical},
		{Severity: domain.SeverityLow},
	}

	assert.Equal(t, 49, ranker.Score(findings))
}
