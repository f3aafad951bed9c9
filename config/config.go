package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

const (
	GeminiAPIKeyEnv = "GOOGLE_GEMINI_API_KEY"
	MapsAPIKeyEnv   = "GOOGLE_MAPS_API_KEY"
)

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		ExternalAPI struct {
			Port      string `mapstructure:"port"`
			CertFile  string `mapstructure:"certFile"`
			KeyFile   string `mapstructure:"keyFile"`
			EnableTLS bool   `mapstructure:"enableTLS"`
		} `mapstructure:"externalAPI"`
		Prometheus struct {
			Port      string `mapstructure:"port"`
			CertFile  string `mapstructure:"certFile"`
			KeyFile   string `mapstructure:"keyFile"`
			EnableTLS bool   `mapstructure:"enableTLS"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
		Redis struct {
			Addr     string `mapstructure:"addr"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort          string        `mapstructure:"HTTPPort"`
		Timeout           time.Duration `mapstructure:"HTTPTimeout"`
		AllowedOrigins    []string      `mapstructure:"allowedOrigins"`
		PlanRequestsLimit int           `mapstructure:"planRequestsPerMinute"`
	} `mapstructure:"server"`
	AI struct {
		APIKey      string  `mapstructure:"apiKey"`
		Model       string  `mapstructure:"model"`
		Temperature float32 `mapstructure:"temperature"`
	} `mapstructure:"ai"`
	Maps struct {
		APIKey   string `mapstructure:"apiKey"`
		Language string `mapstructure:"language"`
		Region   string `mapstructure:"region"`
	} `mapstructure:"maps"`
	Geocoding struct {
		Concurrency   int           `mapstructure:"concurrency"`
		RatePerSecond float64       `mapstructure:"ratePerSecond"`
		Burst         int           `mapstructure:"burst"`
		CacheTTL      time.Duration `mapstructure:"cacheTTL"`
	} `mapstructure:"geocoding"`
	Storage struct {
		Backend       string `mapstructure:"backend"`
		MaxValueBytes int    `mapstructure:"maxValueBytes"`
	} `mapstructure:"storage"`
	Planner struct {
		MaxDays              int           `mapstructure:"maxDays"`
		SessionTTL           time.Duration `mapstructure:"sessionTTL"`
		NotificationDuration time.Duration `mapstructure:"notificationDuration"`
		ErrorDuration        time.Duration `mapstructure:"errorNotificationDuration"`
	} `mapstructure:"planner"`
	Session struct {
		Secret string        `mapstructure:"secret"`
		TTL    time.Duration `mapstructure:"ttl"`
		Secure bool          `mapstructure:"secure"`
	} `mapstructure:"session"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix("STP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Credentials come from the process environment, never from the file.
	config.AI.APIKey = os.Getenv(GeminiAPIKeyEnv)
	config.Maps.APIKey = os.Getenv(MapsAPIKeyEnv)

	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
