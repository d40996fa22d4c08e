package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Neo4jSettings struct {
	URI      string `mapstructure:"uri"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

type Config struct {
	Port      string        `mapstructure:"port"`
	Neo4j     Neo4jSettings `mapstructure:"neo4j"`
	ReposPath string        `mapstructure:"repos_path"`
}

// Load resolves settings from environment variables with fallback defaults.
// Priority: environment > .env file > defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "3001")
	v.SetDefault("neo4j.uri", "bolt://localhost:7687")
	v.SetDefault("neo4j.user", "neo4j")
	v.SetDefault("neo4j.password", "codescope_password")
	v.SetDefault("repos_path", "./repos")

	v.SetEnvPrefix("CODESCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // .env is optional

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
