// Package conversation persists chat exchanges, one JSON document per turn.
package conversation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	filePrefix = "conversation_"
	fileSuffix = ".json"

	fileTimeLayout  = "20060102_150405"
	entryTimeLayout = "2006-01-02 15:04:05"
)

// Entry is the persisted form of one exchange
type Entry struct {
	Timestamp   string `json:"timestamp"`
	UserInput   string `json:"user_input"`
	BotResponse string `json:"bot_response"`
}

// FileLogger writes entries to a directory. Every call produces its own file,
// named after the local time plus a random suffix, so concurrent calls never
// overwrite each other.
type FileLogger struct {
	dir string
	now func() time.Time
}

// NewFileLogger returns a logger writing under dir. The directory is created
// on first write.
func NewFileLogger(dir string) *FileLogger {
	return &FileLogger{dir: dir, now: time.Now}
}

// Dir returns the directory entries are written to
func (l *FileLogger) Dir() string {
	return l.dir
}

// Log writes one exchange. Readers never observe a partially written file:
// the payload goes to a temp file first and is renamed into place.
func (l *FileLogger) Log(userInput, botResponse string) error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create conversation log directory %s: %w", l.dir, err)
	}

	now := l.now()
	entry := Entry{
		Timestamp:   now.Format(entryTimeLayout),
		UserInput:   userInput,
		BotResponse: botResponse,
	}

	payload, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode conversation entry: %w", err)
	}

	name := fmt.Sprintf("%s%s_%s%s", filePrefix, now.Format(fileTimeLayout), uuid.NewString(), fileSuffix)

	tmp, err := os.CreateTemp(l.dir, ".tmp-"+filePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write conversation entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, filepath.Join(l.dir, name)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move conversation entry into place: %w", err)
	}

	return nil
}

// Prune removes conversation files last modified before now-olderThan and
// returns how many were deleted. A missing directory is not an error.
func (l *FileLogger) Prune(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read conversation log directory: %w", err)
	}

	cutoff := l.now().Add(-olderThan)
	deleted := 0

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isConversationFile(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(l.dir, name)); err == nil {
			deleted++
		}
	}

	return deleted, nil
}

func isConversationFile(name string) bool {
	return strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileSuffix)
}
