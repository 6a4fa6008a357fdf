package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Auth      Auth      `mapstructure:",squash"`
	Audit     Audit     `mapstructure:",squash"`
	AuditSync AuditSync `mapstructure:",squash"`
	SecretKey string    `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Audit reúne a configuração do motor de auditoria: valor médio de pedido
// assumido no ROAS, pesos de severidade do score e limiares das regras
// embutidas. Tudo ajustável por ambiente, nada embutido no código.
type Audit struct {
	AssumedOrderValue float64 `mapstructure:"audit_assumed_order_value"`

	WeightCritical int `mapstructure:"audit_weight_critical"`
	WeightHigh     int `mapstructure:"audit_weight_high"`
	WeightMedium   int `mapstructure:"audit_weight_medium"`
	WeightLow      int `mapstructure:"audit_weight_low"`
	WeightInfo     int `mapstructure:"audit_weight_info"`

	MinQualityScore     float64 `mapstructure:"audit_min_quality_score"`
	MaxCPC              float64 `mapstructure:"audit_max_cpc"`
	MinCTR              float64 `mapstructure:"audit_min_ctr"`
	MinROAS             float64 `mapstructure:"audit_min_roas"`
	MinConversionRate   float64 `mapstructure:"audit_min_conversion_rate"`
	MinCompleteness     float64 `mapstructure:"audit_min_completeness"`
	MinAverageRating    float64 `mapstructure:"audit_min_average_rating"`
	MinVerifiedCitation float64 `mapstructure:"audit_min_verified_citations"`
	MinROI              float64 `mapstructure:"audit_min_roi"`
	MaxChurnRate        float64 `mapstructure:"audit_max_churn_rate"`
	MinAcquisitionRate  float64 `mapstructure:"audit_min_acquisition_rate"`
}

// AuditSync configura a varredura agendada de auditorias sobre as contas
type AuditSync struct {
	CronSchedule        string `mapstructure:"audit_sync_cron"`
	RequestDelaySeconds int    `mapstructure:"audit_sync_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"audit_sync_max_concurrent_jobs"`
	Enabled             bool   `mapstructure:"audit_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/marketing_audit")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Valor médio de pedido assumido no cálculo de ROAS. Herdado do valor
	// fixo de $150 dos módulos legados, agora ajustável por ambiente e
	// por conta (coluna assumed_order_value em accounts).
	viper.SetDefault("AUDIT_ASSUMED_ORDER_VALUE", 150.0)

	// Pesos de severidade do score de saúde
	viper.SetDefault("AUDIT_WEIGHT_CRITICAL", 25)
	viper.SetDefault("AUDIT_WEIGHT_HIGH", 15)
	viper.SetDefault("AUDIT_WEIGHT_MEDIUM", 8)
	viper.SetDefault("AUDIT_WEIGHT_LOW", 3)
	viper.SetDefault("AUDIT_WEIGHT_INFO", 0)

	// Limiares das regras embutidas
	viper.SetDefault("AUDIT_MIN_QUALITY_SCORE", 7.0)
	viper.SetDefault("AUDIT_MAX_CPC", 4.0)
	viper.SetDefault("AUDIT_MIN_CTR", 0.02)
	viper.SetDefault("AUDIT_MIN_ROAS", 1.0)
	viper.SetDefault("AUDIT_MIN_CONVERSION_RATE", 0.01)
	viper.SetDefault("AUDIT_MIN_COMPLETENESS", 1.0)
	viper.SetDefault("AUDIT_MIN_AVERAGE_RATING", 4.5)
	viper.SetDefault("AUDIT_MIN_VERIFIED_CITATIONS", 4.0)
	viper.SetDefault("AUDIT_MIN_ROI", 0.0)
	viper.SetDefault("AUDIT_MAX_CHURN_RATE", 0.10)
	viper.SetDefault("AUDIT_MIN_ACQUISITION_RATE", 0.05)

	// Defaults da varredura agendada de auditorias
	viper.SetDefault("AUDIT_SYNC_CRON", "0 5 * * *")        // Todos os dias às 5h da manhã
	viper.SetDefault("AUDIT_SYNC_REQUEST_DELAY_SECONDS", 1) // 1 segundo entre contas
	viper.SetDefault("AUDIT_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 contas em paralelo
	viper.SetDefault("AUDIT_SYNC_ENABLED", false)           // Habilitar varredura agendada

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
