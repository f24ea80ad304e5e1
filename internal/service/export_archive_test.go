package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadsync/timetable-api/pkg/storage"
)

func newTestArchive(t *testing.T) *ExportArchive {
	t.Helper()

	store, err := storage.NewArchive(t.TempDir())
	require.NoError(t, err)

	signer := storage.NewTokenSigner("test-secret", time.Hour)
	archive := NewExportArchive(store, signer, time.Hour, zap.NewNop())
	archive.Start(context.Background())
	t.Cleanup(archive.Stop)
	return archive
}

func TestExportArchiveRoundTrip(t *testing.T) {
	archive := newTestArchive(t)

	token, err := archive.Keep("timetable.csv", []byte("Day,Slot\n"))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.Eventually(t, func() bool {
		_, _, err := archive.Fetch(token)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	data, filename, err := archive.Fetch(token)
	require.NoError(t, err)
	assert.Equal(t, []byte("Day,Slot\n"), data)
	assert.Contains(t, filename, "timetable.csv")
}

func TestExportArchiveRejectsForgedToken(t *testing.T) {
	archive := newTestArchive(t)

	_, _, err := archive.Fetch("not.a.valid.token")
	require.Error(t, err)
}

func TestExportArchiveRejectsForeignSignature(t *testing.T) {
	archive := newTestArchive(t)

	other := storage.NewTokenSigner("other-secret", time.Hour)
	token, _, err := other.Mint("2026-08-28/job-1-timetable.csv")
	require.NoError(t, err)

	_, _, err = archive.Fetch(token)
	require.Error(t, err)
}
