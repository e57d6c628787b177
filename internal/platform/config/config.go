package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/paperledger/paper_ledger_app/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	JWTSecret     string
	ReportTimeout time.Duration

	// CashFlowRulesPath points at the YAML file holding the cash flow
	// classification rules.
	CashFlowRulesPath string

	// Rate limiting, e.g. "100-M" for 100 requests per minute.
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("REPORT_TIMEOUT", "30s")
	viper.SetDefault("CASHFLOW_RULES_PATH", "configs/cashflow_rules.yaml")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	reportTimeoutStr := viper.GetString("REPORT_TIMEOUT")
	reportTimeout, err := time.ParseDuration(reportTimeoutStr)
	if err != nil || reportTimeout <= 0 {
		reportTimeout = 30 * time.Second
		if reportTimeoutStr != "" {
			log.Printf("Warning: Invalid value for REPORT_TIMEOUT ('%s'). Defaulting to %s.\n", reportTimeoutStr, reportTimeout.String())
		}
	}
	cfg.ReportTimeout = reportTimeout

	cfg.CashFlowRulesPath = viper.GetString("CASHFLOW_RULES_PATH")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

// LoadCashFlowRules reads the cash flow classification rules from the YAML
// file at path. The rules are data, not code: operating/investing/financing
// assignment must be editable without a deploy.
func LoadCashFlowRules(path string) (domain.CashFlowRules, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return domain.CashFlowRules{}, fmt.Errorf("failed to read cash flow rules from %s: %w", path, err)
	}

	var rules domain.CashFlowRules
	if err := v.Unmarshal(&rules); err != nil {
		return domain.CashFlowRules{}, fmt.Errorf("failed to parse cash flow rules from %s: %w", path, err)
	}

	if len(rules.CashCategories) == 0 {
		return domain.CashFlowRules{}, fmt.Errorf("cash flow rules at %s define no cash categories", path)
	}
	return rules, nil
}
