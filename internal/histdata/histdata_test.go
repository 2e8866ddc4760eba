package histdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type auditRecord struct {
	key    string
	fields []string
}

func (r auditRecord) Key() string     { return r.key }
func (r auditRecord) Audit() []string { return r.fields }

type memStore struct {
	appends []string
	failing bool
}

func (s *memStore) Append(kind Kind, key string, fields []string) error {
	if s.failing {
		return os.ErrClosed
	}
	s.appends = append(s.appends, string(kind)+"/"+key+"/"+strings.Join(fields, ","))
	return nil
}

func (s *memStore) Close() error { return nil }

func TestPersistDataStoresAndAppends(t *testing.T) {
	store := &memStore{}
	svc := NewService[auditRecord](Positions, store)

	svc.PersistData(auditRecord{key: "91282CJJ1", fields: []string{"91282CJJ1", "100"}})

	rec, err := svc.Get("91282CJJ1")
	require.NoError(t, err)
	assert.Equal(t, "91282CJJ1", rec.key)
	require.Len(t, store.appends, 1)
	assert.Equal(t, "positions/91282CJJ1/91282CJJ1,100", store.appends[0])
}

func TestPersistDataKeepsRecordOnStoreFailure(t *testing.T) {
	svc := NewService[auditRecord](Risk, &memStore{failing: true})

	svc.PersistData(auditRecord{key: "91282CJJ1", fields: []string{"x"}})

	_, err := svc.Get("91282CJJ1")
	require.NoError(t, err)
}

func TestListenerPersists(t *testing.T) {
	store := &memStore{}
	svc := NewService[auditRecord](Executions, store)

	svc.Listener().OnAdd(auditRecord{key: "O1", fields: []string{"O1"}})

	assert.Len(t, store.appends, 1)
}

func TestFileStoreAppendsTimestampedLines(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	store.now = func() time.Time {
		return time.Date(2024, 11, 15, 9, 30, 0, 0, time.UTC)
	}

	require.NoError(t, store.Append(Positions, "91282CJJ1", []string{"91282CJJ1", "TRSY1", "100"}))
	require.NoError(t, store.Append(Positions, "912810TV0", []string{"912810TV0", "TRSY2", "200"}))
	require.NoError(t, store.Append(Risk, "91282CJJ1", []string{"91282CJJ1", "8"}))
	require.NoError(t, store.Close())

	positions, err := os.ReadFile(filepath.Join(dir, "positions.txt"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(positions)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2024-11-15 09:30:00.000,91282CJJ1,TRSY1,100", lines[0])

	risk, err := os.ReadFile(filepath.Join(dir, "risk.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(risk), "91282CJJ1,8")
}

func TestFileStoreCloseIsIdempotent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Append(Streaming, "x", []string{"x"}))
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
