package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	HTTP   HTTPConfig   `yaml:"http"`
	DB     DBConfig     `yaml:"db"`
	Kafka  KafkaConfig  `yaml:"kafka"`
	Ingest IngestConfig `yaml:"ingest"`
}

type HTTPConfig struct {
	Address string        `yaml:"address"`
	Timeout time.Duration `yaml:"timeout"`
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"` //nolint:gosec // config struct, not hardcoded cred
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type IngestConfig struct {
	CacheRoot        string `yaml:"cache_root"`
	Workers          int    `yaml:"workers"`
	MaxUnpackedBytes int64  `yaml:"max_unpacked_bytes"`
	MaxRatio         int64  `yaml:"max_ratio"`
	IDPattern        string `yaml:"id_pattern"`
	SidecarFilename  string `yaml:"sidecar_filename"`
}

func Load() (*Config, error) {
	configPath := getConfigPath()
	data, err := os.ReadFile(configPath) //nolint:gosec // config path from env/flag
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	setDefaults(&cfg)
	overrideFromEnv(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func getConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}

	possiblePaths := []string{
		"config/config.yaml",
		"/etc/grading-hub/config.yaml",
		"./config.yaml",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "config.yaml"
}

func setDefaults(cfg *Config) {
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = "127.0.0.1:8085"
	}

	if cfg.HTTP.Timeout == 0 {
		cfg.HTTP.Timeout = 30 * time.Second
	}

	if cfg.Ingest.Workers == 0 {
		cfg.Ingest.Workers = 4
	}

	if cfg.Ingest.MaxUnpackedBytes == 0 {
		cfg.Ingest.MaxUnpackedBytes = 1 << 30 // 1 GiB
	}

	if cfg.Ingest.MaxRatio == 0 {
		cfg.Ingest.MaxRatio = 100
	}

	if cfg.Ingest.IDPattern == "" {
		cfg.Ingest.IDPattern = `[0-9]{8}`
	}

	if cfg.Ingest.SidecarFilename == "" {
		cfg.Ingest.SidecarFilename = "student_id.txt"
	}

	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "grading-events"
	}
}

func overrideFromEnv(cfg *Config) {
	if val := os.Getenv("HTTP_ADDRESS"); val != "" {
		cfg.HTTP.Address = val
	}
	if val := os.Getenv("HTTP_TIMEOUT"); val != "" {
		if timeout, err := strconv.Atoi(val); err == nil {
			cfg.HTTP.Timeout = time.Duration(timeout) * time.Second
		}
	}

	if val := os.Getenv("DB_HOST"); val != "" {
		cfg.DB.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.DB.Port = port
		}
	}
	if val := os.Getenv("DB_USER"); val != "" {
		cfg.DB.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		cfg.DB.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		cfg.DB.DBName = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		cfg.DB.SSLMode = val
	}

	if val := os.Getenv("KAFKA_ENABLED"); val != "" {
		cfg.Kafka.Enabled = val == "true" || val == "1"
	}
	if val := os.Getenv("KAFKA_BROKERS"); val != "" {
		cfg.Kafka.Brokers = strings.Split(val, ",")
	}
	if val := os.Getenv("KAFKA_TOPIC"); val != "" {
		cfg.Kafka.Topic = val
	}

	if val := os.Getenv("INGEST_CACHE_ROOT"); val != "" {
		cfg.Ingest.CacheRoot = val
	}
	if val := os.Getenv("INGEST_WORKERS"); val != "" {
		if workers, err := strconv.Atoi(val); err == nil {
			cfg.Ingest.Workers = workers
		}
	}
	if val := os.Getenv("INGEST_MAX_UNPACKED_BYTES"); val != "" {
		if max, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Ingest.MaxUnpackedBytes = max
		}
	}
	if val := os.Getenv("INGEST_MAX_RATIO"); val != "" {
		if ratio, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Ingest.MaxRatio = ratio
		}
	}
	if val := os.Getenv("INGEST_ID_PATTERN"); val != "" {
		cfg.Ingest.IDPattern = val
	}
	if val := os.Getenv("INGEST_SIDECAR_FILENAME"); val != "" {
		cfg.Ingest.SidecarFilename = val
	}
}

func validateConfig(cfg *Config) error {
	if cfg.HTTP.Address == "" {
		return fmt.Errorf("HTTP address must be set")
	}

	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.DBName == "" {
		return fmt.Errorf("database configuration is incomplete")
	}

	if cfg.Ingest.CacheRoot == "" {
		return fmt.Errorf("ingest cache root must be set")
	}

	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("at least one Kafka broker must be specified when events are enabled")
	}

	return nil
}

func (c *Config) GetDBConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}
