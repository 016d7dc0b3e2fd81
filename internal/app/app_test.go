package app

import (
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tq-datafeed/internal/model"
	"tq-datafeed/internal/provider/tqsdk"
	"tq-datafeed/internal/saver"
	"tq-datafeed/internal/setting"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"SETTINGS_FILE", "REPLAY_DIR", "DATA_DIR", "SAVE_FORMAT", "PROFILE", "LOG_LEVEL", "LOG_FILE", "WORKERS"} {
		t.Setenv(k, "")
	}
	chdir(t, t.TempDir())

	cfg := LoadConfig()
	assert.Equal(t, "vt_setting.json", cfg.SettingsFile)
	assert.Equal(t, filepath.Join("data", "tq"), cfg.ReplayDir)
	assert.Equal(t, "parquet", cfg.SaveFormat)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, filepath.Join("data", "TQ"), cfg.SaveBaseDir())
}

func TestLoadConfigEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SAVE_FORMAT", "")
	t.Setenv("PROFILE", "dev")
	t.Setenv("WORKERS", "3")
	t.Setenv("DATA_DIR", "/tmp/out")

	cfg := LoadConfig()
	assert.Equal(t, "csv", cfg.SaveFormat)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, filepath.Join("/tmp/out", "TQ"), cfg.SaveBaseDir())
}

func TestProvideSaverRejectsUnknownFormat(t *testing.T) {
	_, err := ProvideSaver(&Config{SaveFormat: "xlsx"})
	assert.Error(t, err)
}

func TestProvideDatafeedRejectsOtherName(t *testing.T) {
	_, err := ProvideDatafeed(setting.Store{setting.KeyDatafeedName: "rqdata"}, ProvideDialer(&Config{}), slog.Default())
	assert.Error(t, err)
}

func TestRunReplayToCSV(t *testing.T) {
	root := t.TempDir()
	replayDir := filepath.Join(root, "replay")
	symbolDir := filepath.Join(replayDir, "SHFE.rb2405")
	require.NoError(t, os.MkdirAll(symbolDir, 0755))
	// 2024-01-02 01:00 UTC and 2024-01-05 07:00 UTC; the second is only inside the padded end date.
	require.NoError(t, os.WriteFile(filepath.Join(symbolDir, "kline_86400.csv"), []byte(
		"datetime,open,high,low,close,volume,open_oi,close_oi\n"+
			"1704157200000000000,3900,3910,3890,3905,120,1000,1010\n"+
			"1704438000000000000,3950,3960,3940,3955,60,1020,1030\n"), 0644))

	cfg := &Config{ReplayDir: replayDir, DataDir: filepath.Join(root, "data"), SaveFormat: "csv", Workers: 1}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	settings := setting.Store{setting.KeyUsername: "alice", setting.KeyPassword: "secret"}
	var out bytes.Buffer
	feed := tqsdk.New(settings, ProvideDialer(cfg), tqsdk.WithLogger(logger), tqsdk.WithOutput(&out))

	req := model.HistoryRequest{
		Symbol: "rb2405", Exchange: model.SHFE, Interval: model.Daily,
		Start: time.Date(2024, 1, 2, 0, 0, 0, 0, model.ChinaTZ),
		End:   time.Date(2024, 1, 5, 0, 0, 0, 0, model.ChinaTZ),
	}
	summary, err := Run(cfg, feed, saver.CSVSaver{}, []model.HistoryRequest{req})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Success)
	assert.Equal(t, 2, summary.Rows)
	assert.Empty(t, out.String())

	f, err := os.Open(filepath.Join(cfg.SaveBaseDir(), "rb2405.SHFE", saver.FileName(req, "csv")))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2024-01-02T09:00:00+08:00", records[1][3])
	assert.Equal(t, "2024-01-05T15:00:00+08:00", records[2][3])
}

func TestRunFailsWithoutCredentials(t *testing.T) {
	cfg := &Config{ReplayDir: t.TempDir(), DataDir: t.TempDir(), Workers: 1}
	var out bytes.Buffer
	feed := tqsdk.New(setting.Store{}, ProvideDialer(cfg), tqsdk.WithOutput(&out),
		tqsdk.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	_, err := Run(cfg, feed, saver.JSONSaver{}, nil)
	assert.ErrorIs(t, err, tqsdk.ErrSessionSetup)
	assert.Contains(t, out.String(), "authentication failed")
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
