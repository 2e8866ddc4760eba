package histdata

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/yanun0323/errors"
)

// FileStore appends audit records to one text file per flow under a
// directory. Files are created lazily on first append.
type FileStore struct {
	dir string

	mu      sync.Mutex
	files   map[Kind]*os.File
	writers map[Kind]*bufio.Writer
	now     func() time.Time
}

// NewFileStore creates a file-backed audit store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating audit directory")
	}
	return &FileStore{
		dir:     dir,
		files:   make(map[Kind]*os.File),
		writers: make(map[Kind]*bufio.Writer),
		now:     time.Now,
	}, nil
}

// Append writes one record as a comma-separated line prefixed with a
// millisecond timestamp.
func (s *FileStore) Append(kind Kind, key string, fields []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.writer(kind)
	if err != nil {
		return err
	}

	line := s.now().Format("2006-01-02 15:04:05.000") + "," + strings.Join(fields, ",") + "\n"
	if _, err := w.WriteString(line); err != nil {
		return errors.Wrap(err, "appending "+string(kind)+" record "+key)
	}
	return nil
}

func (s *FileStore) writer(kind Kind) (*bufio.Writer, error) {
	if w, ok := s.writers[kind]; ok {
		return w, nil
	}
	f, err := os.OpenFile(
		filepath.Join(s.dir, string(kind)+".txt"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0o644,
	)
	if err != nil {
		return nil, errors.Wrap(err, "opening "+string(kind)+" audit file")
	}
	s.files[kind] = f
	w := bufio.NewWriter(f)
	s.writers[kind] = w
	return w, nil
}

// Close flushes and closes every open audit file.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for kind, w := range s.writers {
		if err := w.Flush(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "flushing "+string(kind)+" audit file")
		}
	}
	for kind, f := range s.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "closing "+string(kind)+" audit file")
		}
	}
	s.files = make(map[Kind]*os.File)
	s.writers = make(map[Kind]*bufio.Writer)
	return firstErr
}
