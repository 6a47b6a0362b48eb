package logger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ReadLogsOptions options for reading logs
type ReadLogsOptions struct {
	Category Category // empty = all
	Level    Level    // empty = all
	Lines    int      // default 100, max 1000
	Search   string   // matched against message, action and error
	Day      string   // YYYY-MM-DD, default today
}

// StoredEntry is one line of a daily log file as written by the JSON formatter.
type StoredEntry struct {
	Time     time.Time              `json:"time"`
	Level    string                 `json:"level"`
	Category string                 `json:"category"`
	Action   string                 `json:"action"`
	Message  string                 `json:"msg"`
	Error    string                 `json:"error,omitempty"`
	Fields   map[string]interface{} `json:"fields,omitempty"`
}

var reservedKeys = map[string]bool{
	"time": true, "level": true, "category": true, "action": true, "msg": true, "error": true,
}

// ReadLogs reads entries from the default logger's directory.
func ReadLogs(opts ReadLogsOptions) ([]StoredEntry, error) {
	return Default().ReadLogs(opts)
}

// ReadLogs returns the newest entries of one day's file matching opts.
func (l *Logger) ReadLogs(opts ReadLogsOptions) ([]StoredEntry, error) {
	if l.logDir == "" {
		return nil, fmt.Errorf("file logging is disabled")
	}
	if opts.Lines <= 0 {
		opts.Lines = 100
	}
	if opts.Lines > 1000 {
		opts.Lines = 1000
	}
	day := opts.Day
	if day == "" {
		day = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, fmt.Errorf("invalid day %q", day)
	}

	file, err := os.Open(filepath.Join(l.logDir, fmt.Sprintf("app_%s.log", day)))
	if err != nil {
		if os.IsNotExist(err) {
			return []StoredEntry{}, nil
		}
		return nil, err
	}
	defer file.Close()

	wantLevel := ""
	if opts.Level != "" {
		wantLevel = toLogrus(opts.Level).String()
	}
	search := strings.ToLower(opts.Search)

	entries := make([]StoredEntry, 0)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		entry, ok := parseLine(scanner.Bytes())
		if !ok {
			continue
		}
		if wantLevel != "" && entry.Level != wantLevel {
			continue
		}
		if opts.Category != "" && entry.Category != string(opts.Category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(entry.Message), search) &&
			!strings.Contains(strings.ToLower(entry.Action), search) &&
			!strings.Contains(strings.ToLower(entry.Error), search) {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time.After(entries[j].Time)
	})
	if len(entries) > opts.Lines {
		entries = entries[:opts.Lines]
	}
	return entries, nil
}

func parseLine(line []byte) (StoredEntry, bool) {
	var raw map[string]interface{}
	if err := json.Unmarshal(line, &raw); err != nil {
		return StoredEntry{}, false
	}

	entry := StoredEntry{
		Level:    stringField(raw, "level"),
		Category: stringField(raw, "category"),
		Action:   stringField(raw, "action"),
		Message:  stringField(raw, "msg"),
		Error:    stringField(raw, "error"),
	}
	if ts, err := time.Parse(time.RFC3339Nano, stringField(raw, "time")); err == nil {
		entry.Time = ts
	}
	for k, v := range raw {
		if reservedKeys[k] {
			continue
		}
		if entry.Fields == nil {
			entry.Fields = make(map[string]interface{})
		}
		entry.Fields[k] = v
	}
	return entry, true
}

func stringField(raw map[string]interface{}, key string) string {
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}

// GetLogDir returns the log directory path
func GetLogDir() string {
	return Default().logDir
}

// ListLogFiles returns the daily log files, newest first.
func ListLogFiles() ([]string, error) {
	return Default().ListLogFiles()
}

func (l *Logger) ListLogFiles() ([]string, error) {
	if l.logDir == "" {
		return []string{}, nil
	}
	dirEntries, err := os.ReadDir(l.logDir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(dirEntries))
	for _, e := range dirEntries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".log" {
			files = append(files, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files, nil
}
