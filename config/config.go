package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	Database  DatabaseConfigs  `toml:"database"`
	ApiServer APIServerConfigs `toml:"api_server"`
	Auth      AuthConfigs      `toml:"auth"`
	Redis     RedisConfigs     `toml:"redis"`
	Kafka     KafkaConfigs     `toml:"kafka"`
	Reaction  ReactionConfigs  `toml:"reaction"`
	Log       LogConfigs       `toml:"log"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`

	MaxOpenConns int `toml:"max_open_conns"`
	MaxIdleConns int `toml:"max_idle_conns"`
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&multiStatements=true",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type APIServerConfigs struct {
	ServerConfigs

	MaxLimit       int      `toml:"max_limit"`
	DefaultLimit   int      `toml:"default_limit"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type RedisConfigs struct {
	Addr         string        `toml:"addr"`
	UserCacheTTL time.Duration `toml:"user_cache_ttl"`
}

type KafkaConfigs struct {
	Addr    string `toml:"addr"`
	GroupID string `toml:"group_id"`
}

func (k KafkaConfigs) Brokers() []string {
	if k.Addr == "" {
		return nil
	}

	return strings.Split(k.Addr, ",")
}

type ReactionConfigs struct {
	// CommitTimeout bounds every attempt of a reaction transaction.
	CommitTimeout time.Duration `toml:"commit_timeout"`
	MaxRetries    uint          `toml:"max_retries"`
	RetryBackoff  time.Duration `toml:"retry_backoff"`
}

type LogConfigs struct {
	Level string `toml:"level"`
}

func Default() Configs {
	return Configs{
		Env: "local",
		Database: DatabaseConfigs{
			Host:         "localhost",
			Port:         "3306",
			Database:     "forum",
			User:         "root",
			MaxOpenConns: 32,
			MaxIdleConns: 8,
		},
		ApiServer: APIServerConfigs{
			ServerConfigs: ServerConfigs{Port: "8080"},
			MaxLimit:      50,
			DefaultLimit:  10,
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 7 * 24 * time.Hour,
			},
		},
		Redis: RedisConfigs{
			Addr:         "localhost:6379",
			UserCacheTTL: 5 * time.Minute,
		},
		Kafka: KafkaConfigs{
			GroupID: "forum-subscriber",
		},
		Reaction: ReactionConfigs{
			CommitTimeout: 3 * time.Second,
			MaxRetries:    3,
			RetryBackoff:  20 * time.Millisecond,
		},
		Log: LogConfigs{Level: "info"},
	}
}

// Load decodes the toml file at path over the default configuration.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if _, err := toml.Decode(string(b), &cfg); err != nil {
		return cfg, fmt.Errorf("cannot decode %s: %w", path, err)
	}

	return cfg, nil
}
