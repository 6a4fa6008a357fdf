package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-audit-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-audit-api/infrastructure/repository"
	"github.com/vfg2006/marketing-audit-api/internal/api"
	"github.com/vfg2006/marketing-audit-api/internal/config"
	"github.com/vfg2006/marketing-audit-api/internal/scheduler"
	"github.com/vfg2006/marketing-audit-api/internal/usecases/account"
	"github.com/vfg2006/marketing-audit-api/internal/usecases/auditing"
	"github.com/vfg2006/marketing-audit-api/internal/usecases/authenticating"
	"github.com/vfg2006/marketing-audit-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	accountRepo := repository.NewAccountRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	metricRecordRepo := repository.NewMetricRecordRepository(pgConn)
	auditResultRepo := repository.NewAuditResultRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	// Monta o registro de regras a partir dos limiares configurados.
	// Erro aqui é erro de configuração de regra e impede a subida da API.
	registry, err := auditing.DefaultRegistry(thresholdsFromConfig(cfg))
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao registrar regras de auditoria")
	}

	auditor := auditing.NewService(registry)

	reporter := reporting.NewService(cfg, auditor, accountRepo, metricRecordRepo, auditResultRepo)

	accountService := account.NewService(accountRepo, cfg)

	// Inicializa o agendador de auditorias periódicas
	auditSyncService := scheduler.NewAuditSyncService(accountRepo, reporter, cfg)

	// Inicia o agendador em background
	if err := auditSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de auditorias")
	} else {
		logrus.Info("Agendador de auditorias iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		auditor,
		reporter,
		accountService,
		authenticator,
		auditSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// thresholdsFromConfig traduz a configuração da aplicação para os limiares das regras
func thresholdsFromConfig(cfg *config.Config) auditing.Thresholds {
	return auditing.Thresholds{
		MinQualityScore:     cfg.Audit.MinQualityScore,
		MaxCPC:              cfg.Audit.MaxCPC,
		MinCTR:              cfg.Audit.MinCTR,
		MinROAS:             cfg.Audit.MinROAS,
		MinConversionRate:   cfg.Audit.MinConversionRate,
		MinCompleteness:     cfg.Audit.MinCompleteness,
		MinAverageRating:    cfg.Audit.MinAverageRating,
		MinVerifiedCitation: cfg.Audit.MinVerifiedCitation,
		MinROI:              cfg.Audit.MinROI,
		MaxChurnRate:        cfg.Audit.MaxChurnRate,
		MinAcquisitionRate:  cfg.Audit.MinAcquisitionRate,
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
