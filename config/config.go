package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Data     DataConfig     `mapstructure:"data"`
	Game     GameConfig     `mapstructure:"game"`
	Security SecurityConfig `mapstructure:"security"`
}

type ServerConfig struct {
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`
}

type DatabaseConfig struct {
	Mode         string        `mapstructure:"mode"` // sqlite | memory | mysql
	SQLitePath   string        `mapstructure:"sqlite_path"`
	MySQLDSN     string        `mapstructure:"mysql_dsn"`
	MySQLMaxOpen int           `mapstructure:"mysql_max_open"`
	MySQLMaxIdle int           `mapstructure:"mysql_max_idle"`
	MySQLMaxLife time.Duration `mapstructure:"mysql_max_life"`
}

type DataConfig struct {
	GoodsPath  string `mapstructure:"goods_path"`
	EventsPath string `mapstructure:"events_path"`
	// MapPath may be empty; the overworld is then generated from noise.
	MapPath string `mapstructure:"map_path"`
}

type GameConfig struct {
	StartingGold int   `mapstructure:"starting_gold"`
	Seed         int64 `mapstructure:"seed"` // 0 = time-seeded
	MapWidth     int   `mapstructure:"map_width"`
	MapHeight    int   `mapstructure:"map_height"`
	MapCities    int   `mapstructure:"map_cities"`
}

type SecurityConfig struct {
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Load reads config from the given YAML file path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.debug", false)
	v.SetDefault("database.mode", "sqlite")
	v.SetDefault("database.sqlite_path", "./data/game.db")
	v.SetDefault("database.mysql_max_open", 10)
	v.SetDefault("database.mysql_max_idle", 5)
	v.SetDefault("database.mysql_max_life", "1h")
	v.SetDefault("data.goods_path", "./data/goods.json")
	v.SetDefault("data.events_path", "./data/events.json")
	v.SetDefault("data.map_path", "./data/map.json")
	v.SetDefault("game.starting_gold", 100)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.map_width", 24)
	v.SetDefault("game.map_height", 16)
	v.SetDefault("game.map_cities", 4)
	v.SetDefault("security.rate_limit_rps", 50)
	v.SetDefault("security.rate_limit_burst", 100)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
