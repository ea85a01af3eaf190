package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write("info", msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write("error", msg, fields)
}

// Debug writes a debug-level log line. Debug output is suppressed unless
// LOG_DEBUG is set, so hot paths (line classification, archive probing) can
// log freely.
func Debug(msg string, fields map[string]any) {
	if !debugEnabled() {
		return
	}
	write("debug", msg, fields)
}

func debugEnabled() bool {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_DEBUG")))
	return raw == "1" || raw == "true" || raw == "yes"
}

func write(level, msg string, fields map[string]any) {
	entry := make(map[string]any, len(fields)+3)
	entry["ts"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level
	entry["msg"] = msg
	for k, v := range fields {
		entry[k] = v
	}
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stdout, `{"ts":"%s","level":"error","msg":"logger marshal failed","err":%q}`+"\n", time.Now().UTC().Format(time.RFC3339), err.Error())
		return
	}
	fmt.Fprintln(os.Stdout, string(data))
}
