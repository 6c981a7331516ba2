// Package config loads command line configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	envPrefix = "STEAMGUARD"

	keyAppEnv            = "app_env"
	keyLogLevel          = "log_level"
	keyMaFile            = "mafile"
	keyTimeOffset        = "time_offset"
	keyTimeOffsetSeconds = "time_offset_seconds"
)

// Config captures the settings shared by the command line tools.
type Config struct {
	AppEnv     string
	LogLevel   string
	MaFile     string
	TimeOffset time.Duration
}

// Load reads configuration values from the environment. APP_ENV and
// LOG_LEVEL are read unprefixed; the remaining keys use the STEAMGUARD_
// prefix (STEAMGUARD_MAFILE, STEAMGUARD_TIME_OFFSET_SECONDS and
// STEAMGUARD_TIME_OFFSET). The seconds form wins when both offsets are set.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(keyAppEnv, "APP_ENV"); err != nil {
		return Config{}, fmt.Errorf("bind APP_ENV: %w", err)
	}
	if err := v.BindEnv(keyLogLevel, "LOG_LEVEL"); err != nil {
		return Config{}, fmt.Errorf("bind LOG_LEVEL: %w", err)
	}

	cfg := Config{
		AppEnv:   v.GetString(keyAppEnv),
		LogLevel: strings.ToLower(v.GetString(keyLogLevel)),
		MaFile:   v.GetString(keyMaFile),
	}

	if raw := v.GetString(keyTimeOffsetSeconds); raw != "" {
		seconds, err := cast.ToIntE(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s_%s: %w", envPrefix, strings.ToUpper(keyTimeOffsetSeconds), err)
		}
		cfg.TimeOffset = time.Duration(seconds) * time.Second
	} else if raw := v.GetString(keyTimeOffset); raw != "" {
		if _, err := time.ParseDuration(raw); err != nil {
			return Config{}, fmt.Errorf("invalid %s_%s: %w", envPrefix, strings.ToUpper(keyTimeOffset), err)
		}
		cfg.TimeOffset = v.GetDuration(keyTimeOffset)
	}

	return cfg, nil
}

// setDefaults registers fallback values for every key.
func setDefaults(v *viper.Viper) {
	v.SetDefault(keyAppEnv, "development")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyMaFile, "")
	v.SetDefault(keyTimeOffset, "")
	v.SetDefault(keyTimeOffsetSeconds, "")
}
