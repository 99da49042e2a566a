package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Traveloka endpoints.
	TravelokaBaseURL    string `mapstructure:"TRAVELOKA_BASE_URL"`
	TravelokaBaseAPIURL string `mapstructure:"TRAVELOKA_BASE_API_URL"`
	TravelokaRoutePfx   string `mapstructure:"TRAVELOKA_ROUTE_PREFIX"`

	// Tiket.com endpoints.
	TiketBaseURL    string `mapstructure:"TIKET_BASE_URL"`
	TiketBaseAPIURL string `mapstructure:"TIKET_BASE_API_URL"`

	// Browser impersonation.
	UserAgent  string `mapstructure:"USER_AGENT"`
	SecChUA    string `mapstructure:"SEC_CH_UA"`
	SecChUAOS  string `mapstructure:"SEC_CH_UA_PLATFORM"`
	AcceptLang string `mapstructure:"ACCEPT_LANGUAGE"`

	// Booking parameters. SERVICE_FEE is the fixed per-booking fee in IDR
	// added on top of the fare when creating a booking.
	ServiceFee int64 `mapstructure:"SERVICE_FEE"`

	// Pacing between remote calls, in milliseconds. CANDIDATE_DELAY_MS is
	// applied before each candidate attempt, STEP_DELAY_MS between the
	// steps of one attempt. Zero disables pacing.
	CandidateDelayMs int `mapstructure:"CANDIDATE_DELAY_MS"`
	StepDelayMs      int `mapstructure:"STEP_DELAY_MS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("TRAVELOKA_BASE_URL", "https://www.traveloka.com")
	viper.SetDefault("TRAVELOKA_BASE_API_URL", "https://www.traveloka.com/api/v2")
	viper.SetDefault("TRAVELOKA_ROUTE_PREFIX", "en-id")
	viper.SetDefault("TIKET_BASE_URL", "https://www.tiket.com")
	viper.SetDefault("TIKET_BASE_API_URL", "https://www.tiket.com/ms-gateway")
	viper.SetDefault("USER_AGENT",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/132.0.0.0 Safari/537.36")
	viper.SetDefault("SEC_CH_UA",
		`"Not A(Brand";v="8", "Chromium";v="132", "Google Chrome";v="132"`)
	viper.SetDefault("SEC_CH_UA_PLATFORM", `"Windows"`)
	viper.SetDefault("ACCEPT_LANGUAGE", "en-US,en;q=0.9")
	viper.SetDefault("SERVICE_FEE", 7500)
	viper.SetDefault("CANDIDATE_DELAY_MS", 1000)
	viper.SetDefault("STEP_DELAY_MS", 500)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// IsProduction reports whether the app runs with a production profile.
func IsProduction() bool {
	return AppConfig.Env == "production"
}
