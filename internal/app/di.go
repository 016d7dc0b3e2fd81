package app

import (
	"fmt"
	"log/slog"

	"tq-datafeed/internal/provider/tqsdk"
	"tq-datafeed/internal/saver"
	"tq-datafeed/internal/setting"
	"tq-datafeed/internal/slogx"
	"tq-datafeed/internal/tq"
	"tq-datafeed/internal/tq/replay"
)

// ProvideConfig loads config from environment (for Wire).
func ProvideConfig() *Config {
	return LoadConfig()
}

// ProvideLogger builds the process logger from config and installs it as slog default (for Wire).
func ProvideLogger(cfg *Config) *slog.Logger {
	l := slogx.New(cfg.LogLevel, cfg.LogFile)
	slog.SetDefault(l)
	return l
}

// ProvideSettings loads the settings store named by SETTINGS_FILE (for Wire).
func ProvideSettings(cfg *Config) (setting.Store, error) {
	return setting.Load(cfg.SettingsFile)
}

// ProvideSaver creates Saver from config (for Wire).
// Returns error if SaveFormat is not supported.
func ProvideSaver(cfg *Config) (saver.Saver, error) {
	s := saver.NewSaver(cfg.SaveFormat)
	if s == nil {
		return nil, fmt.Errorf("unsupported SAVE_FORMAT %q (use: csv, parquet, json)", cfg.SaveFormat)
	}
	return s, nil
}

// ProvideDialer returns the vendor dialer. Sessions replay exported tables from REPLAY_DIR.
func ProvideDialer(cfg *Config) tq.Dialer {
	return replay.NewDialer(cfg.ReplayDir)
}

// ProvideDatafeed creates the TQ datafeed with credentials from settings (for Wire).
func ProvideDatafeed(settings setting.Settings, dial tq.Dialer, logger *slog.Logger) (*tqsdk.Datafeed, error) {
	if name := settings.String(setting.KeyDatafeedName); name != "" && name != "tqsdk" {
		return nil, fmt.Errorf("unsupported datafeed.name %q. Options: tqsdk", name)
	}
	return tqsdk.New(settings, dial, tqsdk.WithLogger(logger)), nil
}
