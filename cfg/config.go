package cfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/UndeadDemidov/shortlink/internal/app/utils"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress   = ":3000"
	defaultBaseURL         = "http://localhost:3000/"
	defaultFileStoragePath = "data/links.json"
	defaultMaxBodyBytes    = 1 << 20
	defaultLogLevel        = "info"
)

var (
	ErrInvalidBaseURL      = errors.New("base URL must be an absolute URL")
	ErrInvalidMaxBodyBytes = errors.New("max body bytes must be positive")
)

// Config - настройки сервиса.
// Порядок применения: значения по умолчанию, JSON файл конфигурации, переменные окружения и флаги.
type Config struct {
	ServerAddress   string `json:"server_address"`
	BaseURL         string `json:"base_url"`
	FileStoragePath string `json:"file_storage_path"`
	StaticDir       string `json:"static_dir"`
	MetricsAddress  string `json:"metrics_address"`
	MaxBodyBytes    int64  `json:"max_body_bytes"`
	LogLevel        string `json:"log_level"`
	LogPretty       bool   `json:"log_pretty"`
}

// GetConfig собирает конфигурацию из аргументов командной строки процесса.
// Перед этим подгружает .env из рабочего каталога, если он есть.
func GetConfig() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("can't load .env file")
	}

	cfg, err := Load(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("can't build configuration")
		return nil
	}
	return cfg
}

// Load разбирает переданные аргументы и окружение в Config.
func Load(args []string) (*Config, error) {
	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("can't bind argument flags: %w", err)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	cfg := defaultConfig()
	if cfgPath := v.GetString("config"); len(cfgPath) != 0 {
		if err := cfg.loadConfigFromFile(cfgPath); err != nil {
			return nil, err
		}
	}
	cfg.expandConfigFromFlags(v)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("shortener", pflag.ContinueOnError)
	flags.StringP("config", "c", "", "sets path to config file")
	flags.StringP("base-url", "b", defaultBaseURL, "sets base URL for shortened link")
	flags.StringP("server-address", "a", defaultServerAddress, "sets address of service server")
	flags.StringP("file-storage-path", "f", defaultFileStoragePath, "sets path for JSON file storage, links are kept in memory if empty")
	flags.StringP("static-dir", "w", "", "sets directory with index.html and style.css, embedded assets are used if empty")
	flags.StringP("metrics-address", "m", "", "sets address of metrics and pprof server, disabled if empty")
	flags.Int64("max-body-bytes", defaultMaxBodyBytes, "sets max size of request body")
	flags.String("log-level", defaultLogLevel, "sets log level")
	flags.Bool("log-pretty", false, "enable human friendly console log")
	return flags
}

func defaultConfig() *Config {
	return &Config{
		ServerAddress:   defaultServerAddress,
		BaseURL:         defaultBaseURL,
		FileStoragePath: defaultFileStoragePath,
		MaxBodyBytes:    defaultMaxBodyBytes,
		LogLevel:        defaultLogLevel,
	}
}

func (c *Config) loadConfigFromFile(filepath string) error {
	log.Info().Msgf("trying to load config from file %s", filepath)
	file, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("can't open given config file %s: %w", filepath, err)
	}
	defer func(file *os.File) {
		err = file.Close()
		if err != nil {
			log.Err(err).Msgf("can't close config file %s", filepath)
		}
	}(file)

	if err = json.NewDecoder(file).Decode(c); err != nil {
		return fmt.Errorf("can't read config from given file %s: %w", filepath, err)
	}
	return nil
}

// expandConfigFromFlags перекрывает значения только явно заданными флагами или переменными окружения,
// иначе дефолты флагов затерли бы значения из файла.
func (c *Config) expandConfigFromFlags(v *viper.Viper) {
	if v.IsSet("base-url") {
		c.BaseURL = v.GetString("base-url")
	}
	if v.IsSet("server-address") {
		c.ServerAddress = v.GetString("server-address")
	}
	if v.IsSet("file-storage-path") {
		c.FileStoragePath = v.GetString("file-storage-path")
	}
	if v.IsSet("static-dir") {
		c.StaticDir = v.GetString("static-dir")
	}
	if v.IsSet("metrics-address") {
		c.MetricsAddress = v.GetString("metrics-address")
	}
	if v.IsSet("max-body-bytes") {
		c.MaxBodyBytes = v.GetInt64("max-body-bytes")
	}
	if v.IsSet("log-level") {
		c.LogLevel = v.GetString("log-level")
	}
	if v.IsSet("log-pretty") {
		c.LogPretty = v.GetBool("log-pretty")
	}
}

func (c *Config) validate() error {
	if !utils.IsURL(c.BaseURL) {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}
	c.BaseURL = fmt.Sprintf("%s/", strings.TrimRight(c.BaseURL, "/"))
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxBodyBytes, c.MaxBodyBytes)
	}
	return nil
}
