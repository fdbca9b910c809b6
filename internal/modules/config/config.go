package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	databaseDSN       = "DATABASE_DSN"
	serviceKeyENV     = "SERVICE_KEY"
)

// Config ...
type Config struct {
	DB         string `yaml:"db_dsn"`
	ServiceKey string `yaml:"service_key"`

	Service struct {
		Name string `yaml:"name"`
		Port int    `yaml:"port"`
	} `yaml:"service"`

	// адрес продюсера боксов, пустой = consumer не стартует
	BoxesWSURL string `yaml:"boxes_ws_url"`
	// базовый URL бродкастера, пустой = только лог
	ForwardURL string `yaml:"forward_url"`

	ReconnectDelay time.Duration `yaml:"-"`

	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`
}

func NewConfig() (*Config, error) {
	configFileName := os.Getenv(configFilePathENV)
	explicit := configFileName != ""
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}

	config := Config{
		ReconnectDelay: durationFromEnv("RECONNECT_DELAY", "5s"),
	}
	config.Service.Name = "signal_scanner"
	config.Service.Port = 3003

	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		if explicit {
			log.Fatalf("Failed to open config file: %v", err)
		}
	} else {
		defer func() {
			_ = file.Close()
		}()
		decoder := yaml.NewDecoder(file)
		if err = decoder.Decode(&config); err != nil {
			log.Fatalf("Failed to decode config file: %v", err)
		}
	}

	if dsn := os.Getenv(databaseDSN); dsn != "" {
		config.DB = dsn
	}
	if key := os.Getenv(serviceKeyENV); key != "" {
		config.ServiceKey = key
	}
	config.Service.Port = intFromEnv("PORT", config.Service.Port)
	config.BoxesWSURL = getenvDefault("BOXES_WS_URL", config.BoxesWSURL)
	config.ForwardURL = getenvDefault("FORWARD_URL", config.ForwardURL)
	if token := os.Getenv("TELEGRAM_TOKEN"); token != "" {
		config.Telegram.Token = token
	}
	config.Telegram.ChatID = int64FromEnv("TELEGRAM_CHAT_ID", config.Telegram.ChatID)
	config.Jaeger.Host = getenvDefault("JAEGER_HOST", config.Jaeger.Host)
	config.Jaeger.Port = intFromEnv("JAEGER_PORT", config.Jaeger.Port)

	if config.DB == "" {
		return nil, fmt.Errorf("env %s is required", databaseDSN)
	}
	if config.ServiceKey == "" {
		return nil, fmt.Errorf("env %s is required", serviceKeyENV)
	}

	return &config, nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func int64FromEnv(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
