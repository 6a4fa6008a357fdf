package reporting

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-audit-api/infrastructure/repository/mocks"
	"github.com/vfg2006/marketing-audit-api/internal/config"
	"github.com/vfg2006/marketing-audit-api/internal/domain"
	"github.com/vfg2006/marketing-audit-api/internal/usecases/auditing"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Audit: config.Audit{
			AssumedOrderValue: 150,
			WeightCritical:    25,
			WeightHigh:        15,
			WeightMedium:      8,
			WeightLow:         3,
			WeightInfo:        0,
		},
	}
}

func testAuditor(t *testing.T) auditing.Auditor {
	t.Helper()
	registry, err := auditing.DefaultRegistry(auditing.DefaultThresholds())
	require.NoError(t, err)
	return auditing.NewService(registry)
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestService_RunForAccount(t *testing.T) {
	t.Run("Conta com métricas - auditoria executada e persistida", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		metricRepo := mocks.NewMockMetricRecordRepository(ctrl)
		resultRepo := mocks.NewMockAuditResultRepository(ctrl)

		service := &Service{
			cfg:         testConfig(),
			auditor:     testAuditor(t),
			accountRepo: accountRepo,
			metricRepo:  metricRepo,
			resultRepo:  resultRepo,
		}

		accountRepo.EXPECT().GetAccountByID("acc-1").Return(&domain.Account{
			ID:     "acc-1",
			Name:   "Ótica Vista Clara",
			Status: domain.AccountStatusActive,
		}, nil)

		metricRepo.EXPECT().GetByAccountID("acc-1").Return([]*domain.MetricRecordEntry{
			{
				AccountID: "acc-1",
				Record: domain.MetricRecord{
					EntityID: "kw-1",
					Kind:     domain.EntityKindKeyword,
					Counters: map[string]float64{
						domain.CounterQualityScore: 5,
					},
				},
			},
		}, nil)

		var saved *domain.AuditResultEntry
		resultRepo.EXPECT().Save(gomock.Any()).DoAndReturn(func(entry *domain.AuditResultEntry) error {
			saved = entry
			return nil
		})

		entry, err := service.RunForAccount("acc-1")
		require.NoError(t, err)

		assert.NotEmpty(t, entry.RunID)
		assert.Equal(t, "acc-1", entry.AccountID)
		require.NotNil(t, entry.Result)
		assert.Equal(t, 92, entry.Result.Score)
		assert.Equal(t, 1, entry.Result.RecommendationCount)
		assert.Same(t, saved, entry)
	})

	t.Run("Valor médio de pedido da conta substitui o padrão global", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		metricRepo := mocks.NewMockMetricRecordRepository(ctrl)
		resultRepo := mocks.NewMockAuditResultRepository(ctrl)

		service := &Service{
			cfg:         testConfig(),
			auditor:     testAuditor(t),
			accountRepo: accountRepo,
			metricRepo:  metricRepo,
			resultRepo:  resultRepo,
		}

		// Com o padrão global de 150 o ROAS seria 0.75 e dispararia a
		// regra; com o valor da conta de 300 sobe para 1.5 e fica saudável
		accountRepo.EXPECT().GetAccountByID("acc-2").Return(&domain.Account{
			ID:                "acc-2",
			Status:            domain.AccountStatusActive,
			AssumedOrderValue: floatPtr(300),
		}, nil)

		metricRepo.EXPECT().GetByAccountID("acc-2").Return([]*domain.MetricRecordEntry{
			{
				AccountID: "acc-2",
				Record: domain.MetricRecord{
					EntityID: "camp-1",
					Kind:     domain.EntityKindCampaign,
					Counters: map[string]float64{
						domain.CounterImpressions: 1000,
						domain.CounterClicks:      100,
						domain.CounterConversions: 2,
						domain.CounterCost:        400,
					},
				},
			},
		}, nil)

		resultRepo.EXPECT().Save(gomock.Any()).Return(nil)

		entry, err := service.RunForAccount("acc-2")
		require.NoError(t, err)

		for _, f := range entry.Result.Findings {
			assert.NotEqual(t, auditing.RuleCampaignROASLow, f.RuleID)
		}
	})

	t.Run("Conta inexistente - ErrAccountNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)

		service := &Service{
			cfg:         testConfig(),
			auditor:     testAuditor(t),
			accountRepo: accountRepo,
		}

		accountRepo.EXPECT().GetAccountByID("acc-x").Return(nil, nil)

		_, err := service.RunForAccount("acc-x")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("Conta sem métricas ingeridas - ErrNoMetricRecords", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		metricRepo := mocks.NewMockMetricRecordRepository(ctrl)

		service := &Service{
			cfg:         testConfig(),
			auditor:     testAuditor(t),
			accountRepo: accountRepo,
			metricRepo:  metricRepo,
		}

		accountRepo.EXPECT().GetAccountByID("acc-3").Return(&domain.Account{ID: "acc-3"}, nil)
		metricRepo.EXPECT().GetByAccountID("acc-3").Return([]*domain.MetricRecordEntry{}, nil)

		_, err := service.RunForAccount("acc-3")
		assert.ErrorIs(t, err, ErrNoMetricRecords)
	})

	t.Run("Falha ao persistir o resultado - erro propagado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		metricRepo := mocks.NewMockMetricRecordRepository(ctrl)
		resultRepo := mocks.NewMockAuditResultRepository(ctrl)

		service := &Service{
			cfg:         testConfig(),
			auditor:     testAuditor(t),
			accountRepo: accountRepo,
			metricRepo:  metricRepo,
			resultRepo:  resultRepo,
		}

		accountRepo.EXPECT().GetAccountByID("acc-4").Return(&domain.Account{ID: "acc-4"}, nil)
		metricRepo.EXPECT().GetByAccountID("acc-4").Return([]*domain.MetricRecordEntry{
			{
				AccountID: "acc-4",
				Record: domain.MetricRecord{
					EntityID: "kw-1",
					Kind:     domain.EntityKindKeyword,
					Counters: map[string]float64{domain.CounterClicks: 10},
				},
			},
		}, nil)

		dbErr := errors.New("connection reset")
		resultRepo.EXPECT().Save(gomock.Any()).Return(dbErr)

		_, err := service.RunForAccount("acc-4")
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestService_IngestRecords(t *testing.T) {
	validRecords := []domain.MetricRecord{
		{
			EntityID: "camp-1",
			Kind:     domain.EntityKindCampaign,
			Counters: map[string]float64{
				domain.CounterImpressions: 1000,
				domain.CounterClicks:      50,
			},
		},
	}

	tests := []struct {
		name        string
		records     []domain.MetricRecord
		expectSave  bool
		expectedErr string
	}{
		{
			name:       "Registros válidos - persistidos",
			records:    validRecords,
			expectSave: true,
		},
		{
			name: "Registro sem entity_id - rejeitado",
			records: []domain.MetricRecord{
				{Kind: domain.EntityKindCampaign},
			},
			expectedErr: "sem entity_id",
		},
		{
			name: "Tipo de entidade desconhecido - rejeitado",
			records: []domain.MetricRecord{
				{EntityID: "x-1", Kind: "tipo_invalido"},
			},
			expectedErr: "tipo desconhecido",
		},
		{
			name: "Contador negativo - rejeitado",
			records: []domain.MetricRecord{
				{
					EntityID: "camp-1",
					Kind:     domain.EntityKindCampaign,
					Counters: map[string]float64{domain.CounterClicks: -5},
				},
			},
			expectedErr: "valor negativo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accountRepo := mocks.NewMockAccountRepository(ctrl)
			metricRepo := mocks.NewMockMetricRecordRepository(ctrl)

			service := &Service{
				cfg:         testConfig(),
				auditor:     testAuditor(t),
				accountRepo: accountRepo,
				metricRepo:  metricRepo,
			}

			accountRepo.EXPECT().GetAccountByID("acc-1").Return(&domain.Account{ID: "acc-1"}, nil)
			if tt.expectSave {
				metricRepo.EXPECT().SaveOrUpdate("acc-1", tt.records).Return(nil)
			}

			err := service.IngestRecords("acc-1", tt.records)

			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("Conta inexistente - ErrAccountNotFound sem tocar nos registros", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)

		service := &Service{
			cfg:         testConfig(),
			auditor:     testAuditor(t),
			accountRepo: accountRepo,
		}

		accountRepo.EXPECT().GetAccountByID("acc-x").Return(nil, nil)

		err := service.IngestRecords("acc-x", validRecords)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestService_LatestForAccount(t *testing.T) {
	t.Run("Conta com resultado persistido - retornado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		resultRepo := mocks.NewMockAuditResultRepository(ctrl)

		service := &Service{
			cfg:         testConfig(),
			auditor:     testAuditor(t),
			accountRepo: accountRepo,
			resultRepo:  resultRepo,
		}

		expected := &domain.AuditResultEntry{
			RunID:     "run-abc",
			AccountID: "acc-1",
			Result:    &domain.AuditResult{Score: 84},
		}

		accountRepo.EXPECT().GetAccountByID("acc-1").Return(&domain.Account{ID: "acc-1"}, nil)
		resultRepo.EXPECT().GetLatestByAccountID("acc-1").Return(expected, nil)

		entry, err := service.LatestForAccount("acc-1")
		require.NoError(t, err)
		assert.Same(t, expected, entry)
	})

	t.Run("Conta inexistente - ErrAccountNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)

		service := &Service{
			cfg:         testConfig(),
			auditor:     testAuditor(t),
			accountRepo: accountRepo,
		}

		accountRepo.EXPECT().GetAccountByID("acc-x").Return(nil, nil)

		_, err := service.LatestForAccount("acc-x")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestService_RunAdHoc(t *testing.T) {
	service := &Service{
		cfg:     testConfig(),
		auditor: testAuditor(t),
	}

	records := []domain.MetricRecord{
		{
			EntityID: "kw-1",
			Kind:     domain.EntityKindKeyword,
			Counters: map[string]float64{
				domain.CounterCPC: 2.0,
			},
		},
	}

	t.Run("Sem overrides - configuração global aplicada", func(t *testing.T) {
		result, err := service.RunAdHoc(records, nil)
		require.NoError(t, err)

		assert.Empty(t, result.Findings)
		assert.Equal(t, 100, result.Score)
	})

	t.Run("Override de limiar por regra - aplicado apenas na chamada", func(t *testing.T) {
		overrides := &AuditOverrides{
			RuleThresholds: map[string]float64{auditing.RuleKeywordCPCHigh: 1.5},
		}

		result, err := service.RunAdHoc(records, overrides)
		require.NoError(t, err)

		require.Len(t, result.Findings, 1)
		assert.Equal(t, auditing.RuleKeywordCPCHigh, result.Findings[0].RuleID)

		// A chamada seguinte sem overrides volta aos limiares padrão
		result, err = service.RunAdHoc(records, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Findings)
	})

	t.Run("Filtro de domínio via overrides", func(t *testing.T) {
		mixed := []domain.MetricRecord{
			{
				EntityID: "ad-1",
				Kind:     domain.EntityKindAd,
				Counters: map[string]float64{
					domain.CounterImpressions: 1000,
					domain.CounterClicks:      5,
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

		overrides := &AuditOverrides{DomainFilter: domain.DomainLocalSearch}

		result, err := service.RunAdHoc(mixed, overrides)
		require.NoError(t, err)

		require.Len(t, result.Findings, 1)
		assert.Equal(t, auditing.RuleProfileIncomplete, result.Findings[0].RuleID)
	})

	t.Run("Entrada vazia - erro do motor propagado", func(t *testing.T) {
		_, err := service.RunAdHoc(nil, nil)
		assert.ErrorIs(t, err, auditing.ErrEmptyInput)
	})
}
