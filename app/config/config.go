package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AhoCorasickConfig mirrors spec §6's aho_corasick_* knobs.
type AhoCorasickConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	RoleTitleMaxWords int  `mapstructure:"role_title_max_words"`
	MinLength       int  `mapstructure:"word_combinations_min_length"`
	MaxLength       int  `mapstructure:"word_combinations_max_length"`
}

// W2VConfig mirrors spec §6's w2v_* knobs.
type W2VConfig struct {
	Enabled             bool    `mapstructure:"enabled"`
	WordCombinationsMin int     `mapstructure:"word_combinations_min_length"`
	MinRoleSimilarity   float64 `mapstructure:"min_role_similarity"`
}

// MemoConfig sizes the two LRU memoization layers (C3's normalize cache
// and C6's match cache).
type MemoConfig struct {
	NormalizeCapacity int `mapstructure:"normalize_capacity"`
	MatchCapacity     int `mapstructure:"match_capacity"`
}

// RedisConfig, when Enabled, connects cmd/server to a shared Redis
// match-result cache; the matching path itself does not consult it.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// MongoConfig, when Enabled, backs cmd/server's MongoDB match-result cache
// tier.
type MongoConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// MeiliConfig configures the out-of-matching-path catalog browsing tool.
type MeiliConfig struct {
	Host   string `mapstructure:"host"`
	APIKey string `mapstructure:"api_key"`
	Index  string `mapstructure:"index"`
}

// ServerConfig is cmd/server's HTTP listener config.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Config is the full set of externally tunable knobs. Defaults match spec
// §6; every field can be overridden by an environment variable of the form
// ROLEMATCH_<SECTION>_<FIELD> (viper's AutomaticEnv with "." -> "_").
type Config struct {
	AppEnv       string            `mapstructure:"app_env"`
	ArtifactDir  string            `mapstructure:"artifact_dir"`
	AhoCorasick  AhoCorasickConfig `mapstructure:"aho_corasick"`
	W2V          W2VConfig         `mapstructure:"w2v"`
	Memo         MemoConfig        `mapstructure:"memo"`
	Redis        RedisConfig       `mapstructure:"redis"`
	Mongo        MongoConfig       `mapstructure:"mongo"`
	Meili        MeiliConfig       `mapstructure:"meili"`
	Server       ServerConfig      `mapstructure:"server"`
}

// Load builds a viper instance seeded with spec-accurate defaults, reads an
// optional config file at path (missing file is not an error), and applies
// ROLEMATCH_-prefixed environment overrides.
func Load(path string) (Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetEnvPrefix("rolematch")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("config: read %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("artifact_dir", "./data/artifacts")

	v.SetDefault("aho_corasick.enabled", true)
	v.SetDefault("aho_corasick.role_title_max_words", 50)
	v.SetDefault("aho_corasick.word_combinations_min_length", 1)
	v.SetDefault("aho_corasick.word_combinations_max_length", 10)

	v.SetDefault("w2v.enabled", false)
	v.SetDefault("w2v.word_combinations_min_length", 1)
	v.SetDefault("w2v.min_role_similarity", 0.90)

	v.SetDefault("memo.normalize_capacity", 8192)
	v.SetDefault("memo.match_capacity", 8192)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 15*time.Minute)

	v.SetDefault("mongo.enabled", false)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "rolematch")

	v.SetDefault("meili.host", "http://localhost:7700")
	v.SetDefault("meili.api_key", "")
	v.SetDefault("meili.index", "catalog_roles")

	v.SetDefault("server.addr", ":8080")
}
