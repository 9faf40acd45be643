package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"puzzlestats/internal/structures"
	"strings"
	"time"
)

const AppName = "PuzzleStats"

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)
	v.SetDefault("persistence.filePath", "/var/lib/puzzlestats/puzzlestats.db")
	v.SetDefault("persistence.saveInterval", 30*time.Second)
	v.SetDefault("persistence.saveOnWrite", true)
	v.SetDefault("persistence.compress", true)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "/var/log/puzzlestats")
	v.SetDefault("logger.maxSizeMB", 50)
	v.SetDefault("logger.maxBackups", 5)
	v.SetDefault("logger.maxAgeDays", 30)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 8)
	v.SetDefault("cache.ttl", 30*time.Second)
	v.SetDefault("game.windowSize", 14)
	v.SetDefault("game.pageSize", 10)
	v.SetDefault("backfill.historyDir", "/var/lib/puzzlestats/history")
}

func bindEnv(v *viper.Viper) {
	v.BindEnv("logger.level", "PUZZLESTATS_LOG_LEVEL")
	v.BindEnv("logger.dir", "PUZZLESTATS_LOG_DIR")
	v.BindEnv("webServer.port", "PUZZLESTATS_PORT")
	v.BindEnv("persistence.filePath", "PUZZLESTATS_DATA_FILE")
	v.BindEnv("persistence.saveInterval", "PUZZLESTATS_SAVE_INTERVAL")
	v.BindEnv("persistence.saveOnWrite", "PUZZLESTATS_SAVE_ON_WRITE")
	v.BindEnv("cache.enabled", "PUZZLESTATS_CACHE_ENABLED")
	v.BindEnv("cache.size", "PUZZLESTATS_CACHE_SIZE")
	v.BindEnv("metrics.enabled", "PUZZLESTATS_METRICS_ENABLED")
	v.BindEnv("backfill.token", "PUZZLESTATS_BACKFILL_TOKEN")
	v.BindEnv("backfill.historyDir", "PUZZLESTATS_HISTORY_DIR")
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config
	v := viper.New()

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	setDefaults(v)
	bindEnv(v)

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
