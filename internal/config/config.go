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
	App                App                `mapstructure:",squash"`
	Server             Server             `mapstructure:",squash"`
	Database           Database           `mapstructure:",squash"`
	Solver             Solver             `mapstructure:",squash"`
	CalculationHistory CalculationHistory `mapstructure:",squash"`
	Cors               Cors               `mapstructure:",squash"`
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

// Solver define os parâmetros da busca do orçamento máximo
type Solver struct {
	MaxIterations   int     `mapstructure:"solver_max_iterations"`
	Tolerance       float64 `mapstructure:"solver_tolerance"`
	InitialStep     float64 `mapstructure:"solver_initial_step"`
	TraceIterations bool    `mapstructure:"solver_trace_iterations"`
}

type CalculationHistory struct {
	Enabled        bool   `mapstructure:"calculation_history_enabled"`
	ListLimit      int    `mapstructure:"calculation_history_list_limit"`
	RetentionDays  int    `mapstructure:"calculation_history_retention_days"`
	CleanupCron    string `mapstructure:"calculation_history_cleanup_cron"`
	CleanupEnabled bool   `mapstructure:"calculation_history_cleanup_enabled"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 5241)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/media_planning?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SOLVER_MAX_ITERATIONS", 100000)
	viper.SetDefault("SOLVER_TOLERANCE", 0.01)
	viper.SetDefault("SOLVER_INITIAL_STEP", 1.0)
	viper.SetDefault("SOLVER_TRACE_ITERATIONS", false) // Loga cada iteração em debug

	// Histórico de cálculos fica desligado sem banco configurado
	viper.SetDefault("CALCULATION_HISTORY_ENABLED", false)
	viper.SetDefault("CALCULATION_HISTORY_LIST_LIMIT", 50)
	viper.SetDefault("CALCULATION_HISTORY_RETENTION_DAYS", 90)
	viper.SetDefault("CALCULATION_HISTORY_CLEANUP_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("CALCULATION_HISTORY_CLEANUP_ENABLED", false)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:4001")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// O .env é opcional, as variáveis de ambiente já bastam
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

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejeita combinações que impediriam o servidor de funcionar
func (c *Config) Validate() error {
	if c.Solver.MaxIterations <= 0 {
		return fmt.Errorf("config: SOLVER_MAX_ITERATIONS deve ser positivo, recebido %d", c.Solver.MaxIterations)
	}
	if c.Solver.Tolerance <= 0 {
		return fmt.Errorf("config: SOLVER_TOLERANCE deve ser positivo, recebido %v", c.Solver.Tolerance)
	}
	if c.Solver.InitialStep <= 0 {
		return fmt.Errorf("config: SOLVER_INITIAL_STEP deve ser positivo, recebido %v", c.Solver.InitialStep)
	}
	if c.CalculationHistory.Enabled && c.CalculationHistory.ListLimit <= 0 {
		return fmt.Errorf("config: CALCULATION_HISTORY_LIST_LIMIT deve ser positivo com o histórico habilitado, recebido %d", c.CalculationHistory.ListLimit)
	}
	if c.CalculationHistory.CleanupEnabled && c.CalculationHistory.RetentionDays <= 0 {
		return fmt.Errorf("config: CALCULATION_HISTORY_RETENTION_DAYS deve ser positivo com a limpeza habilitada")
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
