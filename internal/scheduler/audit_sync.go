package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-audit-api/infrastructure/repository"
	"github.com/vfg2006/marketing-audit-api/internal/config"
	"github.com/vfg2006/marketing-audit-api/internal/domain"
	"github.com/vfg2006/marketing-audit-api/internal/usecases/reporting"
)

// AuditSyncConfig representa a configuração do agendador de auditorias
type AuditSyncConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	SyncEnabled         bool
}

// AuditSyncService gerencia o agendamento e a execução da auditoria
// periódica de todas as contas ativas
type AuditSyncService struct {
	scheduler           *gocron.Scheduler
	config              AuditSyncConfig
	appConfig           *config.Config
	accountRepo         repository.AccountRepository
	reporter            reporting.Reporter
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewAuditSyncService cria uma nova instância do serviço de auditoria periódica
func NewAuditSyncService(
	accountRepo repository.AccountRepository,
	reporter reporting.Reporter,
	appConfig *config.Config,
) *AuditSyncService {
	// Criar a configuração com base na config global
	syncConfig := AuditSyncConfig{
		CronSchedule:        appConfig.AuditSync.CronSchedule,
		RequestDelaySeconds: appConfig.AuditSync.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.AuditSync.MaxConcurrentJobs,
		SyncEnabled:         appConfig.AuditSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de auditorias carregada")

	return &AuditSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		appConfig:   appConfig,
		accountRepo: accountRepo,
		reporter:    reporter,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *AuditSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Auditoria periódica desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de auditorias")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.auditAllAccounts()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar auditoria periódica: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de auditorias")
		s.scheduler.Stop()
	}()

	return nil
}

// auditAllAccounts executa a auditoria de todas as contas ativas
func (s *AuditSyncService) auditAllAccounts() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Auditoria periódica já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando auditoria periódica de todas as contas ativas")

	activeAccounts, err := s.getActiveAccounts()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar lista de contas para auditoria periódica")
		return
	}

	if len(activeAccounts) == 0 {
		logrus.Info("Nenhuma conta ativa encontrada para auditoria periódica")
		return
	}

	s.processAccounts(activeAccounts)

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"accounts": len(activeAccounts),
	}).Info("Auditoria periódica concluída")

	s.lastSyncCompletedAt = time.Now()
}

// getActiveAccounts busca e filtra contas ativas
func (s *AuditSyncService) getActiveAccounts() ([]*domain.Account, error) {
	activeAccounts, err := s.accountRepo.ListAccounts([]domain.AccountStatus{domain.AccountStatusActive})
	if err != nil {
		return nil, err
	}

	if len(activeAccounts) == 0 {
		logrus.Info("Nenhuma conta encontrada para auditoria periódica")
		return []*domain.Account{}, nil
	}

	logrus.WithFields(logrus.Fields{
		"active_accounts": len(activeAccounts),
	}).Info("Contas encontradas para auditoria periódica")

	return activeAccounts, nil
}

// processAccounts audita as contas com um número limitado de workers concorrentes
func (s *AuditSyncService) processAccounts(accounts []*domain.Account) {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, account := range accounts {
		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(acc *domain.Account) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			s.auditAccount(acc)

			// Aguardar antes da próxima conta para não saturar o banco
			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}(account)
	}

	wg.Wait()
}

// auditAccount executa e persiste a auditoria de uma conta
func (s *AuditSyncService) auditAccount(acc *domain.Account) {
	logrus.WithFields(logrus.Fields{
		"account_id":   acc.ID,
		"account_name": acc.Name,
	}).Info("Executando auditoria para conta")

	entry, err := s.reporter.RunForAccount(acc.ID)
	if err != nil {
		// Conta sem métricas ingeridas não é falha do agendador
		if errors.Is(err, reporting.ErrNoMetricRecords) {
			logrus.WithField("account_id", acc.ID).Info("Conta sem métricas ingeridas. Pulando.")
			return
		}

		logrus.WithFields(logrus.Fields{
			"account_id": acc.ID,
			"error":      err.Error(),
		}).Error("Erro ao executar auditoria para conta")
		return
	}

	logrus.WithFields(logrus.Fields{
		"account_id": acc.ID,
		"run_id":     entry.RunID,
		"score":      entry.Result.Score,
		"findings":   entry.Result.RecommendationCount,
	}).Info("Auditoria concluída com sucesso para conta")
}

// TriggerManualSync inicia manualmente uma auditoria de todas as contas
func (s *AuditSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Auditoria periódica já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando auditoria manual de todas as contas")
	go s.auditAllAccounts()
}

// GetStatus retorna o status atual do agendador
func (s *AuditSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
