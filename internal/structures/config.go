package structures

import (
	"net/http"
	"time"
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type AttendanceConfig struct {
	RolloverHour      int           `yaml:"rolloverHour" validate:"int|min:0|max:23"`
	TickInterval      time.Duration `yaml:"tickInterval" validate:"required|min:1"`
	MatchThreshold    int           `yaml:"matchThreshold"`
	PracticeThreshold int           `yaml:"practiceThreshold"`
	LunchStart        string        `yaml:"lunchStart"`
	LunchEnd          string        `yaml:"lunchEnd"`
}

type BoardConfig struct {
	MessageTTL         time.Duration `yaml:"messageTTL" validate:"required|min:1"`
	MaxMessageLength   int           `yaml:"maxMessageLength"`
	MaxNicknameLength  int           `yaml:"maxNicknameLength"`
	MaxPinned          int           `yaml:"maxPinned"`
	MaxPinnedPerAuthor int           `yaml:"maxPinnedPerAuthor"`
	ExpireInterval     time.Duration `yaml:"expireInterval" validate:"required|min:1"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Attendance  AttendanceConfig `yaml:"attendance"`
	Board       BoardConfig      `yaml:"board"`
	WebServer   Server           `yaml:"webServer"`
	Persistence Persistence      `yaml:"persistence"`
	Logger      LoggerConfig     `yaml:"logger"`
	Cache       CacheConfig      `yaml:"cache"`
	Metrics     MetricsConfig    `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}
