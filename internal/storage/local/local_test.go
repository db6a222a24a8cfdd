package local

import (
	"context"
	"io"
	"strings"
	"testing"

	"openupload/internal/storage"

	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestSaveOpenDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	n, err := store.Save(ctx, "proj/123_report.pdf", strings.NewReader("hello world"))
	assert.NoError(t, err)
	assert.Equal(t, int64(11), n)

	rc, err := store.Open(ctx, "proj/123_report.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	assert.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	assert.NoError(t, store.Delete(ctx, "proj/123_report.pdf"))

	_, err = store.Open(ctx, "proj/123_report.pdf")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOpenMissingBlob(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Open(context.Background(), "proj/nope.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.Delete(context.Background(), "proj/never-existed.bin"))
}

func TestRejectsKeyEscapingRoot(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	assert.Error(t, err)
}
