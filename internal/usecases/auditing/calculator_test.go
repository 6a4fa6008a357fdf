package auditing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-audit-api/internal/domain"
)

func TestComputeSnapshot_Advertising(t *testing.T) {
	tests := []struct {
		name     string
		records  []domain.MetricRecord
		validate func(t *testing.T, s *domain.KpiSnapshot)
	}{
		{
			name: "Campanha com contadores completos - deve derivar todas as razões",
			records: []domain.MetricRecord{
				{
					EntityID: "camp-1",
					Kind:     domain.EntityKindCampaign,
					Counters: map[string]float64{
						domain.CounterImpressions: 1000,
						domain.CounterClicks:      50,
						domain.CounterConversions: 5,
						domain.CounterCost:        100,
					},
				},
			},
			validate: func(t *testing.T, s *domain.KpiSnapshot) {
				ctr, _ := s.Get(domain.KpiCTR)
				assert.True(t, ctr.Defined)
				assert.Equal(t, 0.05, ctr.Value)

				conv, _ := s.Get(domain.KpiConversionRate)
				assert.True(t, conv.Defined)
				assert.Equal(t, 0.1, conv.Value)

				cpc, _ := s.Get(domain.KpiCPC)
				assert.True(t, cpc.Defined)
				assert.Equal(t, 2.0, cpc.Value)

				costPerConv, _ := s.Get(domain.KpiCostPerConversion)
				assert.True(t, costPerConv.Defined)
				assert.Equal(t, 20.0, costPerConv.Value)

				// ROAS com valor médio de pedido de 150: 5*150/100 = 7.5
				roas, _ := s.Get(domain.KpiROAS)
				assert.True(t, roas.Defined)
				assert.Equal(t, 7.5, roas.Value)
			},
		},
		{
			name: "Campanha sem cliques - razões por clique indefinidas, nunca zero",
			records: []domain.MetricRecord{
				{
					EntityID: "camp-2",
					Kind:     domain.EntityKindCampaign,
					Counters: map[string]float64{
						domain.CounterImpressions: 1000,
						domain.CounterClicks:      0,
						domain.CounterCost:        50,
					},
				},
			},
			validate: func(t *testing.T, s *domain.KpiSnapshot) {
				ctr, _ := s.Get(domain.KpiCTR)
				assert.True(t, ctr.Defined)
				assert.Equal(t, 0.0, ctr.Value)

				conv, ok := s.Get(domain.KpiConversionRate)
				assert.True(t, ok)
				assert.False(t, conv.Defined)

				costPerConv, _ := s.Get(domain.KpiCostPerConversion)
				assert.False(t, costPerConv.Defined)

				cpc, _ := s.Get(domain.KpiCPC)
				assert.False(t, cpc.Defined)
			},
		},
		{
			name: "Contadores ausentes valem zero - sem impressões o CTR é indefinido",
			records: []domain.MetricRecord{
				{
					EntityID: "camp-3",
					Kind:     domain.EntityKindCampaign,
					Counters: map[string]float64{
						domain.CounterClicks: 10,
					},
				},
			},
			validate: func(t *testing.T, s *domain.KpiSnapshot) {
				ctr, _ := s.Get(domain.KpiCTR)
				assert.False(t, ctr.Defined)
			},
		},
		{
			name: "Índice de qualidade é repasse - ausente fica indefinido",
			records: []domain.MetricRecord{
				{
					EntityID: "kw-1",
					Kind:     domain.EntityKindKeyword,
					Counters: map[string]float64{
						domain.CounterClicks: 10,
					},
				},
			},
			validate: func(t *testing.T, s *domain.KpiSnapshot) {
				quality, _ := s.Get(domain.KpiQualityScore)
				assert.False(t, quality.Defined)
			},
		},
		{
			name: "Índice de qualidade informado - repassado como definido",
			records: []domain.MetricRecord{
				{
					EntityID: "kw-2",
					Kind:     domain.EntityKindKeyword,
					Counters: map[string]float64{
						domain.CounterQualityScore: 5,
					},
				},
			},
			validate: func(t *testing.T, s *domain.KpiSnapshot) {
				quality, _ := s.Get(domain.KpiQualityScore)
				assert.True(t, quality.Defined)
				assert.Equal(t, 5.0, quality.Value)
			},
		},
		{
			name: "CPC consolidado informado como contador - usado quando não derivável",
			records: []domain.MetricRecord{
				{
					EntityID: "kw-3",
					Kind:     domain.EntityKindKeyword,
					Counters: map[string]float64{
						domain.CounterCPC: 2.0,
					},
				},
			},
			validate: func(t *testing.T, s *domain.KpiSnapshot) {
				cpc, _ := s.Get(domain.KpiCPC)
				assert.True(t, cpc.Defined)
				assert.Equal(t, 2.0, cpc.Value)
			},
		},
		{
			name: "Registros da mesma entidade - contadores somados antes da derivação",
			records: []domain.MetricRecord{
				{
					EntityID: "camp-4",
					Kind:     domain.EntityKindCampaign,
					Counters: map[string]float64{
						domain.CounterImpressions: 500,
						domain.CounterClicks:      5,
					},
				},
				{
					EntityID: "camp-4",
					Kind:     domain.EntityKindCampaign,
					Counters: map[string]float64{
						domain.CounterImpressions: 500,
						domain.CounterClicks:      10,
					},
				},
			},
			validate: func(t *testing.T, s *domain.KpiSnapshot) {
				ctr, _ := s.Get(domain.KpiCTR)
				assert.True(t, ctr.Defined)
				assert.Equal(t, 0.015, ctr.Value)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, err := ComputeSnapshot(tt.records, 150)
			require.NoError(t, err)
			tt.validate(t, snapshot)
		})
	}
}

func TestComputeSnapshot_LocalSearch(t *testing.T) {
	records := []domain.MetricRecord{
		{
			EntityID: "profile-1",
			Kind:     domain.EntityKindBusinessProfile,
			Counters: map[string]float64{
				domain.CounterFieldsPresent:  8,
				domain.CounterFieldsRequired: 12,
			},
		},
	}

	snapshot, err := ComputeSnapshot(records, 150)
	require.NoError(t, err)

	completeness, _ := snapshot.Get(domain.KpiCompleteness)
	assert.True(t, completeness.Defined)
	assert.InDelta(t, 0.6667, completeness.Value, 0.0001)

	// Sem avaliações, a média fica indefinida em vez de zero
	rating, _ := snapshot.Get(domain.KpiAverageRating)
	assert.False(t, rating.Defined)
}

func TestComputeSnapshot_LocalSearchCitations(t *testing.T) {
	records := []domain.MetricRecord{
		{
			EntityID: "citations-1",
			Kind:     domain.EntityKindCitationSet,
			Counters: map[string]float64{
				domain.CounterVerifiedCount: 3,
				domain.CounterTotalCount:    10,
			},
		},
	}

	snapshot, err := ComputeSnapshot(records, 150)
	require.NoError(t, err)

	ratio, _ := snapshot.Get(domain.KpiVerifiedCitationRatio)
	assert.True(t, ratio.Defined)
	assert.Equal(t, 0.3, ratio.Value)

	verified, _ := snapshot.Get(domain.KpiVerifiedCitations)
	assert.True(t, verified.Defined)
	assert.Equal(t, 3.0, verified.Value)
}

func TestComputeSnapshot_Pipeline(t *testing.T) {
	records := []domain.MetricRecord{
		{
			EntityID: "pipeline-1",
			Kind:     domain.EntityKindGeneric,
			Counters: map[string]float64{
				domain.CounterCost:           1000,
				domain.CounterValueGenerated: 800,
				domain.CounterCustomersStart: 100,
				domain.CounterCustomersLost:  15,
				domain.CounterCustomersNew:   3,
			},
		},
	}

	snapshot, err := ComputeSnapshot(records, 150)
	require.NoError(t, err)

	roi, _ := snapshot.Get(domain.KpiROI)
	assert.True(t, roi.Defined)
	assert.InDelta(t, -0.2, roi.Value, 0.0001)

	churn, _ := snapshot.Get(domain.KpiChurnRate)
	assert.True(t, churn.Defined)
	assert.Equal(t, 0.15, churn.Value)

	acquisition, _ := snapshot.Get(domain.KpiAcquisitionRate)
	assert.True(t, acquisition.Defined)
	assert.Equal(t, 0.03, acquisition.Value)
}

func TestComputeSnapshot_Errors(t *testing.T) {
	t.Run("Entrada vazia - ErrEmptyInput", func(t *testing.T) {
		_, err := ComputeSnapshot(nil, 150)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("Tipo de entidade desconhecido - InvalidRecordError", func(t *testing.T) {
		records := []domain.MetricRecord{
			{EntityID: "x-1", Kind: "unknown_kind"},
		}

		_, err := ComputeSnapshot(records, 150)

		var invalidErr *InvalidRecordError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, "x-1", invalidErr.EntityID)
		assert.Equal(t, "unknown_kind", invalidErr.Kind)
	})
}
