package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Entry is one parsed line of the JSON log file.
type Entry struct {
	Time    string
	Level   string
	Logger  string
	Message string
	Error   string
	Raw     string
}

// Tail returns at most maxLines entries from the end of the file at path,
// oldest first. A missing file yields no entries.
func Tail(path string, maxLines int) ([]Entry, error) {
	lines, err := tailLines(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, parseEntry(line))
	}
	return entries, nil
}

// String renders the entry as a single display line.
func (e Entry) String() string {
	if e.Message == "" {
		return e.Raw
	}
	var b strings.Builder
	if e.Time != "" {
		b.WriteString(e.Time)
		b.WriteByte(' ')
	}
	b.WriteString(strings.ToUpper(e.Level))
	b.WriteByte(' ')
	if e.Logger != "" {
		b.WriteString(e.Logger)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Error != "" {
		b.WriteString(" (")
		b.WriteString(e.Error)
		b.WriteByte(')')
	}
	return b.String()
}

func parseEntry(line string) Entry {
	var raw struct {
		Timestamp string `json:"timestamp"`
		Level     string `json:"level"`
		Logger    string `json:"logger"`
		Msg       string `json:"msg"`
		Error     string `json:"error"`
	}
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{Raw: line}
	}
	return Entry{
		Time:    raw.Timestamp,
		Level:   raw.Level,
		Logger:  raw.Logger,
		Message: raw.Msg,
		Error:   raw.Error,
		Raw:     line,
	}
}

func tailLines(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}
