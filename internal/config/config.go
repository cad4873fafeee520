package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	Paths        Paths        `mapstructure:",squash"`
	Policy       Policy       `mapstructure:",squash"`
	Segmentation Segmentation `mapstructure:",squash"`
	PipelineSync PipelineSync `mapstructure:",squash"`
	GoldPublish  GoldPublish  `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
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

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Paths são os diretórios de cada camada
type Paths struct {
	BronzeDir        string `mapstructure:"bronze_dir"`
	SilverDir        string `mapstructure:"silver_dir"`
	GoldDir          string `mapstructure:"gold_dir"`
	SalesFilePattern string `mapstructure:"sales_file_pattern"`
}

// Policy controla coerção, integridade referencial e nulos na transformação Silver
type Policy struct {
	Coercion          string   `mapstructure:"coercion_policy"`
	Referential       string   `mapstructure:"referential_policy"`
	NullSentinels     []string `mapstructure:"null_sentinels"`
	MaxConcurrentJobs int      `mapstructure:"pipeline_max_concurrent_jobs"`
}

// Segmentation define as faixas "Nome:gastoMinimo" de clientes
type Segmentation struct {
	Tiers []string `mapstructure:"customer_segments"`
}

type PipelineSync struct {
	CronSchedule string `mapstructure:"pipeline_sync_cron"`
	Layer        string `mapstructure:"pipeline_sync_layer"`
	Enabled      bool   `mapstructure:"pipeline_sync_enabled"`
}

type GoldPublish struct {
	Enabled bool `mapstructure:"gold_publish_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/lakehouse?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("BRONZE_DIR", "data")
	viper.SetDefault("SILVER_DIR", "silver")
	viper.SetDefault("GOLD_DIR", "gold")
	viper.SetDefault("SALES_FILE_PATTERN", "AdventureWorks_Sales_*.csv")

	viper.SetDefault("COERCION_POLICY", string(domain.DropInvalid))
	viper.SetDefault("REFERENTIAL_POLICY", string(domain.ExcludeRow))
	viper.SetDefault("NULL_SENTINELS", []string{"NA", "N/A", "NULL", "null", "NaN", "None"})
	viper.SetDefault("PIPELINE_MAX_CONCURRENT_JOBS", 0) // 0 = uma goroutine por entidade/visão

	viper.SetDefault("CUSTOMER_SEGMENTS", []string{"VIP:5000", "Regular:1000", "Occasional:0"})

	viper.SetDefault("PIPELINE_SYNC_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("PIPELINE_SYNC_LAYER", string(domain.LayerAll))
	viper.SetDefault("PIPELINE_SYNC_ENABLED", false)

	viper.SetDefault("GOLD_PUBLISH_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
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

// Pipeline monta as opções explícitas passadas a cada estágio da pipeline
func (c *Config) Pipeline() (domain.Options, error) {
	tiers, err := domain.ParseSegmentTiers(c.Segmentation.Tiers)
	if err != nil {
		return domain.Options{}, err
	}

	opts := domain.Options{
		Coercion:          domain.CoercionPolicy(c.Policy.Coercion),
		Referential:       domain.ReferentialPolicy(c.Policy.Referential),
		NullSentinels:     append([]string{""}, c.Policy.NullSentinels...),
		Segments:          tiers,
		MaxConcurrentJobs: c.Policy.MaxConcurrentJobs,
	}

	if err := opts.Validate(); err != nil {
		return domain.Options{}, err
	}

	return opts, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
