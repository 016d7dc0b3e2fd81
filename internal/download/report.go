package download

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type failedEntry struct {
	VtSymbol  string `json:"vt_symbol"`
	Interval  string `json:"interval"`
	DateRange string `json:"date_range"`
	Reason    string `json:"reason"`
}

type successReport struct {
	RunID   string   `json:"run_id"`
	Symbols []string `json:"symbols"`
}

type failedReport struct {
	RunID  string        `json:"run_id"`
	Failed []failedEntry `json:"failed"`
}

func writeRunReport(saveDir, runID string, successList []string, failedList []failedEntry) error {
	if err := os.MkdirAll(saveDir, 0755); err != nil {
		return err
	}
	if len(successList) > 0 {
		p := filepath.Join(saveDir, ".lastrun.success.json")
		if err := writeJSONFile(p, successReport{RunID: runID, Symbols: successList}); err != nil {
			return err
		}
		slog.Info("report wrote success", "path", p, "symbols", len(successList))
	}
	if len(failedList) > 0 {
		p := filepath.Join(saveDir, ".lastrun.failed.json")
		if err := writeJSONFile(p, failedReport{RunID: runID, Failed: failedList}); err != nil {
			return err
		}
		slog.Info("report wrote failed", "path", p, "count", len(failedList))
	}
	return nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func appendSuccess(list []string, vtSymbol string) []string {
	for _, s := range list {
		if s == vtSymbol {
			return list
		}
	}
	return append(list, vtSymbol)
}

func joinFailedReasons(failedList []failedEntry) string {
	if len(failedList) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range failedList {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.VtSymbol)
		b.WriteString(": ")
		b.WriteString(f.Reason)
		if i >= 4 && len(failedList) > 6 {
			b.WriteString(fmt.Sprintf(" (+%d more)", len(failedList)-5))
			break
		}
	}
	return b.String()
}
