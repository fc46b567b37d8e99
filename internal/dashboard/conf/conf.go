package conf

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/impactlab/aiboard/pkg/cache"
	"github.com/impactlab/aiboard/pkg/database"
	"github.com/impactlab/aiboard/pkg/http"
	"github.com/impactlab/aiboard/pkg/log"
	"github.com/impactlab/aiboard/pkg/storage"
)

type AppConfig struct {
	Log      log.Conf
	Http     http.Http
	Database database.Database
	Redis    cache.Redis
	Storage  storage.Conf
	Stats    StatsConf
}

// StatsConf controls the team-stats cache warm job.
type StatsConf struct {
	WarmSpec string        `mapstructure:"warmSpec"`
	CacheTTL time.Duration `mapstructure:"cacheTTL"`
}

var (
	cfg  AppConfig
	once sync.Once
)

func NewConf(confDir string) AppConfig {
	once.Do(func() {
		var err error
		cfg, err = LoadConfigFile(confDir)
		if err != nil {
			panic(fmt.Sprintf("load conf file error: %s", err))
		}
	})
	return cfg
}

// LoadConfigFile load conf file
func LoadConfigFile(confDir string) (AppConfig, error) {

	config := viper.New()
	config.SetConfigFile(confDir)
	config.AddConfigPath("./conf.d")
	config.SetConfigName("config")
	config.SetConfigType("toml")
	if err := config.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("failed to read configuration file: %v", err)
	}

	config.WatchConfig()
	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("configuration changed, re-reading config file: %s", e.Name)
		if err := config.Unmarshal(&cfg); err != nil {
			log.Errorf("failed to unmarshal configuration file: %v", err)
		}
	})
	if err := config.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal configuration file: %v", err)
	}

	if cfg.Stats.WarmSpec == "" {
		cfg.Stats.WarmSpec = "@every 5m"
	}
	if cfg.Stats.CacheTTL <= 0 {
		cfg.Stats.CacheTTL = 5 * time.Minute
	}

	return cfg, nil
}
