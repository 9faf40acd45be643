package structures

import "time"

type Server struct {
	Host string `yaml:"host" mapstructure:"host" validate:"required"`
	Port int    `yaml:"port" mapstructure:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" mapstructure:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" mapstructure:"saveInterval" validate:"required|min:1"`
	// SaveOnWrite persists the whole document after every accepted record.
	SaveOnWrite bool `yaml:"saveOnWrite" mapstructure:"saveOnWrite"`
	Compress    bool `yaml:"compress" mapstructure:"compress"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode       uint32 `yaml:"mode" mapstructure:"mode" validate:"required|uint"`
	Dir        string `yaml:"dir" mapstructure:"dir" validate:"required|unixPath"`
	MaxSizeMB  int    `yaml:"maxSizeMB" mapstructure:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups" mapstructure:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays" mapstructure:"maxAgeDays"`
	Console    bool   `yaml:"console" mapstructure:"console"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Size    int           `yaml:"size" mapstructure:"size"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// ReactionConfig holds the platform glyphs that are not plain unicode,
// usually custom server emoji in "<:name:id>" form.
type ReactionConfig struct {
	Wordle      string `yaml:"wordle" mapstructure:"wordle"`
	Connections string `yaml:"connections" mapstructure:"connections"`
	Mini        string `yaml:"mini" mapstructure:"mini"`
	Fifty       string `yaml:"fifty" mapstructure:"fifty"`
	Sixty       string `yaml:"sixty" mapstructure:"sixty"`
	Seventy     string `yaml:"seventy" mapstructure:"seventy"`
	Eighty      string `yaml:"eighty" mapstructure:"eighty"`
	Ninety      string `yaml:"ninety" mapstructure:"ninety"`
}

type GameConfig struct {
	// Channels limits ingestion to these channel ids. Empty accepts every channel.
	Channels   []string       `yaml:"channels" mapstructure:"channels"`
	WindowSize int            `yaml:"windowSize" mapstructure:"windowSize" validate:"required|min:1"`
	PageSize   int            `yaml:"pageSize" mapstructure:"pageSize" validate:"required|min:1"`
	Reactions  ReactionConfig `yaml:"reactions" mapstructure:"reactions"`
}

type BackfillConfig struct {
	Token      string `yaml:"token" mapstructure:"token"`
	HistoryDir string `yaml:"historyDir" mapstructure:"historyDir"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server         `yaml:"webServer" mapstructure:"webServer"`
	Persistence Persistence    `yaml:"persistence" mapstructure:"persistence"`
	Logger      LoggerConfig   `yaml:"logger" mapstructure:"logger"`
	Cache       CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics" mapstructure:"metrics"`
	Game        GameConfig     `yaml:"game" mapstructure:"game"`
	Backfill    BackfillConfig `yaml:"backfill" mapstructure:"backfill"`
}
