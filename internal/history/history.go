// Package history stores generated quizzes as JSON files in a directory.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/csatquiz/internal/quiz"
)

// DefaultDir is used when neither a flag nor CSATQUIZ_HISTORY_DIR is set.
const DefaultDir = "history"

const (
	fileExt         = ".json"
	timestampLayout = "20060102_150405"
	untitled        = "Untitled"
)

// unsafeTopicChars matches everything except ASCII letters, digits and
// Hangul syllables.
var unsafeTopicChars = regexp.MustCompile(`[^a-zA-Z0-9가-힣]`)

// FileIOError reports a failed history file operation.
type FileIOError struct {
	Op   string // "list", "save", "load" or "delete"
	Name string
	Err  error
}

func (e *FileIOError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("history %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("history %s %s: %v", e.Op, e.Name, e.Err)
}

func (e *FileIOError) Unwrap() error { return e.Err }

// ErrInvalidName is returned for names that would leave the directory.
var ErrInvalidName = errors.New("invalid history file name")

// Store is a directory of saved quizzes.
type Store struct {
	dir string
}

// New returns a Store rooted at dir. The directory is created on first save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// ResolveDir returns flagDir when set, then CSATQUIZ_HISTORY_DIR, then
// DefaultDir.
func ResolveDir(flagDir string) string {
	if flagDir != "" {
		return flagDir
	}
	if d := os.Getenv("CSATQUIZ_HISTORY_DIR"); d != "" {
		return d
	}
	return DefaultDir
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

// List returns the .json file names in the directory, newest first. A
// missing directory yields an empty list.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, &FileIOError{Op: "list", Err: err}
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Save writes q under a timestamped name derived from topic and returns the
// file name. A file with the same name is overwritten.
func (s *Store) Save(q *quiz.Quiz, topic string, now time.Time) (string, error) {
	name := FileName(topic, now)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(q); err != nil {
		return "", &FileIOError{Op: "save", Name: name, Err: err}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &FileIOError{Op: "save", Name: name, Err: err}
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), buf.Bytes(), 0o644); err != nil {
		return "", &FileIOError{Op: "save", Name: name, Err: err}
	}
	return name, nil
}

// Load reads a saved quiz by file name.
func (s *Store) Load(name string) (*quiz.Quiz, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, &FileIOError{Op: "load", Name: name, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileIOError{Op: "load", Name: name, Err: err}
	}

	var q quiz.Quiz
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, &FileIOError{Op: "load", Name: name, Err: fmt.Errorf("decode: %w", err)}
	}
	return &q, nil
}

// Delete removes a saved quiz. Deleting a missing file is not an error.
func (s *Store) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return &FileIOError{Op: "delete", Name: name, Err: err}
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &FileIOError{Op: "delete", Name: name, Err: err}
	}
	return nil
}

// path confines name to the store directory.
func (s *Store) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", ErrInvalidName
	}
	return filepath.Join(s.dir, name), nil
}

// FileName builds "YYYYMMDD_HHMMSS_<topic>.json" for topic at now. An empty
// topic is saved as "Untitled".
func FileName(topic string, now time.Time) string {
	return now.Format(timestampLayout) + "_" + SanitizeTopic(topic) + fileExt
}

// SanitizeTopic replaces every character other than ASCII letters, digits
// and Hangul syllables with '_'.
func SanitizeTopic(topic string) string {
	if topic == "" {
		topic = untitled
	}
	return unsafeTopicChars.ReplaceAllString(topic, "_")
}

// TopicFromName recovers the sanitized topic from a saved file name, so a
// reloaded quiz saves again under the same topic. Names without the
// timestamp prefix yield the whole base name; "Untitled" yields "".
func TopicFromName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), fileExt)
	prefix := len(timestampLayout) + 1
	if len(base) > prefix && base[prefix-1] == '_' {
		if _, err := time.Parse(timestampLayout, base[:prefix-1]); err == nil {
			base = base[prefix:]
		}
	}
	if base == untitled {
		return ""
	}
	return base
}
