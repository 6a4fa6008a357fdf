package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/marketing-audit-api/infrastructure/repository/mocks"
	"github.com/vfg2006/marketing-audit-api/internal/config"
	"github.com/vfg2006/marketing-audit-api/internal/domain"
	"github.com/vfg2006/marketing-audit-api/internal/usecases/reporting"
	reportingmocks "github.com/vfg2006/marketing-audit-api/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

func newTestService(accountRepo *mocks.MockAccountRepository, reporter *reportingmocks.MockReporter) *AuditSyncService {
	return &AuditSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config: AuditSyncConfig{
			CronSchedule:        "0 3 * * *",
			RequestDelaySeconds: 0,
			MaxConcurrentJobs:   2,
			SyncEnabled:         true,
		},
		accountRepo: accountRepo,
		reporter:    reporter,
	}
}

func TestAuditSyncService_AuditAllAccounts(t *testing.T) {
	t.Run("Contas ativas - auditoria executada para cada uma", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		reporter := reportingmocks.NewMockReporter(ctrl)
		service := newTestService(accountRepo, reporter)

		accountRepo.EXPECT().
			ListAccounts([]domain.AccountStatus{domain.AccountStatusActive}).
			Return([]*domain.Account{
				{ID: "acc-1", Name: "Ótica Vista Clara"},
				{ID: "acc-2", Name: "Ótica Bom Olhar"},
			}, nil)

		entry := &domain.AuditResultEntry{
			RunID:  "run-1",
			Result: &domain.AuditResult{Score: 92, RecommendationCount: 1},
		}
		reporter.EXPECT().RunForAccount("acc-1").Return(entry, nil)
		reporter.EXPECT().RunForAccount("acc-2").Return(entry, nil)

		service.auditAllAccounts()

		assert.False(t, service.syncRunning)
		assert.False(t, service.lastSyncStartedAt.IsZero())
		assert.False(t, service.lastSyncCompletedAt.IsZero())
	})

	t.Run("Conta sem métricas ingeridas - pulada sem interromper as demais", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		reporter := reportingmocks.NewMockReporter(ctrl)
		service := newTestService(accountRepo, reporter)

		accountRepo.EXPECT().
			ListAccounts(gomock.Any()).
			Return([]*domain.Account{
				{ID: "acc-vazia"},
				{ID: "acc-cheia"},
			}, nil)

		reporter.EXPECT().RunForAccount("acc-vazia").Return(nil, reporting.ErrNoMetricRecords)
		reporter.EXPECT().RunForAccount("acc-cheia").Return(&domain.AuditResultEntry{
			RunID:  "run-2",
			Result: &domain.AuditResult{Score: 100},
		}, nil)

		service.auditAllAccounts()
	})

	t.Run("Erro em uma conta - demais contas seguem auditadas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		reporter := reportingmocks.NewMockReporter(ctrl)
		service := newTestService(accountRepo, reporter)

		accountRepo.EXPECT().
			ListAccounts(gomock.Any()).
			Return([]*domain.Account{
				{ID: "acc-erro"},
				{ID: "acc-ok"},
			}, nil)

		reporter.EXPECT().RunForAccount("acc-erro").Return(nil, errors.New("connection reset"))
		reporter.EXPECT().RunForAccount("acc-ok").Return(&domain.AuditResultEntry{
			RunID:  "run-3",
			Result: &domain.AuditResult{Score: 84},
		}, nil)

		service.auditAllAccounts()
	})

	t.Run("Erro ao listar contas - nenhuma auditoria disparada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		reporter := reportingmocks.NewMockReporter(ctrl)
		service := newTestService(accountRepo, reporter)

		accountRepo.EXPECT().ListAccounts(gomock.Any()).Return(nil, errors.New("timeout"))

		service.auditAllAccounts()

		assert.False(t, service.syncRunning)
	})

	t.Run("Nenhuma conta ativa - concluída sem auditorias", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		reporter := reportingmocks.NewMockReporter(ctrl)
		service := newTestService(accountRepo, reporter)

		accountRepo.EXPECT().ListAccounts(gomock.Any()).Return([]*domain.Account{}, nil)

		service.auditAllAccounts()
	})
}

func TestAuditSyncService_Start(t *testing.T) {
	t.Run("Sincronização desabilitada - agendador não inicia", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		reporter := reportingmocks.NewMockReporter(ctrl)

		service := newTestService(accountRepo, reporter)
		service.config.SyncEnabled = false

		err := service.Start(context.Background())

		assert.NoError(t, err)
		assert.False(t, service.scheduler.IsRunning())
	})

	t.Run("Expressão cron inválida - erro na inicialização", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		reporter := reportingmocks.NewMockReporter(ctrl)

		service := newTestService(accountRepo, reporter)
		service.config.CronSchedule = "expressao invalida"

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		err := service.Start(ctx)
		assert.Error(t, err)
	})
}

func TestNewAuditSyncService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	reporter := reportingmocks.NewMockReporter(ctrl)

	cfg := &config.Config{
		AuditSync: config.AuditSync{
			CronSchedule:        "0 3 * * *",
			RequestDelaySeconds: 5,
			MaxConcurrentJobs:   3,
			Enabled:             true,
		},
	}

	service := NewAuditSyncService(accountRepo, reporter, cfg)

	assert.Equal(t, "0 3 * * *", service.config.CronSchedule)
	assert.Equal(t, 5, service.config.RequestDelaySeconds)
	assert.Equal(t, 3, service.config.MaxConcurrentJobs)
	assert.True(t, service.config.SyncEnabled)
	assert.False(t, service.syncRunning)
}

func TestAuditSyncService_GetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	reporter := reportingmocks.NewMockReporter(ctrl)
	service := newTestService(accountRepo, reporter)

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 3 * * *", status["sync_cron"])
	assert.Equal(t, 2, status["sync_max_concurrent"])
	assert.Contains(t, status, "last_sync_started_at")
	assert.Contains(t, status, "last_sync_completed_at")
}
