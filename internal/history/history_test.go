package history

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/csatquiz/internal/quiz"
)

func sampleQuiz() *quiz.Quiz {
	return &quiz.Quiz{
		Title:   "Bees & <Cities>",
		Passage: "Bees are **thriving** in cities.",
		Questions: []quiz.Question{{
			Type:        "대의파악",
			Question:    "What is the main idea?",
			Options:     []string{"1. a", "2. b", "3. c", "4. d", "5. e"},
			Answer:      "2",
			Explanation: "정답은 2번입니다.",
		}},
		Vocabulary: []quiz.VocabEntry{{Word: "thrive", Meaning: "번성하다"}},
	}
}

var fixedTime = time.Date(2024, 3, 5, 14, 7, 9, 0, time.Local)

func TestSanitizeTopic(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"K-Pop", "K_Pop"},
		{"우주 여행", "우주_여행"},
		{"Environmental Science (환경 과학)", "Environmental_Science__환경_과학_"},
		{"../etc/passwd", "___etc_passwd"},
		{"café", "caf_"},
		{"", "Untitled"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeTopic(tt.in), "input %q", tt.in)
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "20240305_140709_K_Pop.json", FileName("K-Pop", fixedTime))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "history"))

	name, err := s.Save(sampleQuiz(), "기후 변화", fixedTime)
	require.NoError(t, err)
	assert.Equal(t, "20240305_140709_기후_변화.json", name)

	got, err := s.Load(name)
	require.NoError(t, err)
	assert.Equal(t, sampleQuiz(), got)
}

func TestSave_Format(t *testing.T) {
	s := New(t.TempDir())

	name, err := s.Save(sampleQuiz(), "Bees", fixedTime)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(s.Dir(), name))
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "{\n    \"title\""), "4-space indentation")
	assert.Contains(t, text, "Bees & <Cities>", "no HTML escaping")
	assert.Contains(t, text, "번성하다", "non-ASCII written as UTF-8")
}

func TestList_NewestFirstJSONOnly(t *testing.T) {
	s := New(t.TempDir())

	_, err := s.Save(sampleQuiz(), "older", fixedTime)
	require.NoError(t, err)
	_, err = s.Save(sampleQuiz(), "newer", fixedTime.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), "sub.json"), 0o755))

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"20240305_150709_newer.json", "20240305_140709_older.json"}, names)
}

func TestList_MissingDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "absent"))

	names, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDelete(t *testing.T) {
	s := New(t.TempDir())
	name, err := s.Save(sampleQuiz(), "bees", fixedTime)
	require.NoError(t, err)

	require.NoError(t, s.Delete(name))
	names, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	assert.NoError(t, s.Delete(name), "missing file is a no-op")
}

func TestLoad_Errors(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "bad.json"), []byte("{"), 0o644))

	tests := []struct {
		name string
		file string
	}{
		{"missing", "nope.json"},
		{"corrupt", "bad.json"},
		{"traversal", "../secret.json"},
		{"separator", `a\b.json`},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Load(tt.file)
			var ferr *FileIOError
			require.True(t, errors.As(err, &ferr))
			assert.Equal(t, "load", ferr.Op)
			assert.Equal(t, tt.file, ferr.Name)
		})
	}
}

func TestDelete_RejectsTraversal(t *testing.T) {
	s := New(t.TempDir())
	err := s.Delete("../x.json")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestLoad_NumericAnswer(t *testing.T) {
	s := New(t.TempDir())
	doc := `{"title":"t","passage":"p","questions":[{"type":"x","question":"q","options":["1. a"],"answer":1,"explanation":"e"}],"vocabulary":[]}`
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "n.json"), []byte(doc), 0o644))

	q, err := s.Load("n.json")
	require.NoError(t, err)
	assert.Equal(t, "1", q.Questions[0].Answer)
}

func TestResolveDir(t *testing.T) {
	t.Setenv("CSATQUIZ_HISTORY_DIR", "")
	assert.Equal(t, DefaultDir, ResolveDir(""))

	t.Setenv("CSATQUIZ_HISTORY_DIR", "/tmp/h")
	assert.Equal(t, "/tmp/h", ResolveDir(""))
	assert.Equal(t, "flag", ResolveDir("flag"))
}

func TestTopicFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"20240305_140709_인공지능의_윤리.json", "인공지능의_윤리"},
		{"20240305_140709_bees.json", "bees"},
		{"20240305_140709_Untitled.json", ""},
		{"notes.json", "notes"},
		{"2024_not_a_stamp_x.json", "2024_not_a_stamp_x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopicFromName(tt.name))
		})
	}
}

func TestResaveKeepsTopic(t *testing.T) {
	s := New(t.TempDir())
	first, err := s.Save(sampleQuiz(), "Urban bees", time.Date(2024, 3, 5, 14, 7, 9, 0, time.Local))
	require.NoError(t, err)

	again, err := s.Save(sampleQuiz(), TopicFromName(first), time.Date(2024, 3, 6, 9, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, "20240306_090000_Urban_bees.json", again)
}
