package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"futsald/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "FUTSALD_LOG_LEVEL")
	viper.BindEnv("attendance.rolloverHour", "FUTSALD_ROLLOVER_HOUR")
	viper.BindEnv("persistence.saveInterval", "FUTSALD_SAVE_INTERVAL")
	viper.BindEnv("board.expireInterval", "FUTSALD_EXPIRE_INTERVAL")
	viper.BindEnv("cache.enabled", "FUTSALD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "FUTSALD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	applyDefaults(&conf)

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "FutsalAttendanceDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func applyDefaults(conf *structures.Config) {
	if conf.Attendance.MatchThreshold == 0 {
		conf.Attendance.MatchThreshold = 4
	}
	if conf.Attendance.PracticeThreshold == 0 {
		conf.Attendance.PracticeThreshold = 2
	}
	if conf.Attendance.LunchStart == "" {
		conf.Attendance.LunchStart = "11:50"
	}
	if conf.Attendance.LunchEnd == "" {
		conf.Attendance.LunchEnd = "12:55"
	}
	if conf.Board.MaxMessageLength == 0 {
		conf.Board.MaxMessageLength = 200
	}
	if conf.Board.MaxNicknameLength == 0 {
		conf.Board.MaxNicknameLength = 10
	}
	if conf.Board.MaxPinned == 0 {
		conf.Board.MaxPinned = 5
	}
	if conf.Board.MaxPinnedPerAuthor == 0 {
		conf.Board.MaxPinnedPerAuthor = 3
	}
}
