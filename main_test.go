package main

import (
	"context"
	"errors"
	"flag"
	"path/filepath"
	"testing"
	"time"

	"github.com/joeblew999/carto-fonts/internal/errorx"
	"github.com/joeblew999/carto-fonts/internal/journal"
	"github.com/joeblew999/carto-fonts/internal/provision"
	"github.com/joeblew999/carto-fonts/pkg/font"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCommonFlags(t *testing.T, args ...string) commonFlags {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	common := addCommonFlags(fs)
	require.NoError(t, fs.Parse(args))
	return common
}

func TestExecute(t *testing.T) {
	tmp := t.TempDir()
	journalPath := filepath.Join(tmp, "runs.db")
	common := parseCommonFlags(t, "-dir", filepath.Join(tmp, "fonts"), "-journal", journalPath)

	regular := font.FileInfo{Name: "NotoSans-Regular.ttf", Path: filepath.Join(tmp, "fonts", "NotoSans-Regular.ttf"), URL: "https://a.example/NotoSans-Regular.ttf", Size: 42}

	failed := execute(common, "config", func(ctx context.Context) (*provision.Result, error) {
		return &provision.Result{Files: []font.FileInfo{regular}}, &font.DownloadError{
			Destination: "NotoSans-Bold.ttf",
			URLs:        []string{"https://a.example/NotoSans-Bold.ttf"},
			Err:         errors.New("unexpected status: 404 Not Found"),
		}
	})
	assert.Equal(t, 1, failed)

	succeeded := execute(common, "manifest", func(ctx context.Context) (*provision.Result, error) {
		return &provision.Result{}, nil
	})
	assert.Equal(t, 0, succeeded)

	j, err := journal.Open(journalPath)
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	runs, err := j.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "manifest", runs[0].Variant)
	assert.Equal(t, journal.StatusSucceeded, runs[0].Status)
	assert.False(t, runs[0].Reason.Valid)

	assert.Equal(t, "config", runs[1].Variant)
	assert.Equal(t, journal.StatusFailed, runs[1].Status)
	assert.Equal(t, errorx.ReasonDownloadExhausted, runs[1].Reason.String)
	assert.Contains(t, runs[1].Error.String, "NotoSans-Bold.ttf")

	files, err := j.Files(ctx, runs[1].ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "NotoSans-Regular.ttf", files[0].Name)
	assert.Equal(t, int64(42), files[0].Size)
}

func TestExecuteWithoutJournal(t *testing.T) {
	common := parseCommonFlags(t)
	code := execute(common, "manifest", func(ctx context.Context) (*provision.Result, error) {
		return nil, context.Canceled
	})
	assert.Equal(t, 1, code)
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.in))
	}
}

func TestRunContext(t *testing.T) {
	t.Run("NoTimeout", func(t *testing.T) {
		ctx, cancel := runContext(0)
		defer cancel()
		_, ok := ctx.Deadline()
		assert.False(t, ok)
	})

	t.Run("Timeout", func(t *testing.T) {
		ctx, cancel := runContext(time.Minute)
		defer cancel()
		_, ok := ctx.Deadline()
		assert.True(t, ok)
	})

	t.Run("CancelStops", func(t *testing.T) {
		ctx, cancel := runContext(time.Minute)
		cancel()
		<-ctx.Done()
		assert.Error(t, ctx.Err())
	})
}
