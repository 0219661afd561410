package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rtable/pkg/page"
	"rtable/pkg/text"
)

const fixture = `<style>body { margin: 0; } table { border-spacing: 0; } td, th { padding: 0; font-size: 10px; }</style>
<table data-responsive><thead><tr><th>Alpha</th><th>Bravo</th><th>Charlie</th></tr></thead>
<tbody><tr><td>aaaa</td><td>bbbb</td><td>cccc</td></tr></tbody></table>`

func TestSummary(t *testing.T) {
	p, err := page.Load(fixture, 70, page.WithMeasurer(text.Fixed{Ratio: 0.5}))
	require.NoError(t, err)
	assert.Equal(t, "viewport 70px  |  table 0: 1 of 3 collapsed", summary(p))
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.html")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	log, _ := test.NewNullLogger()
	reloads := make(chan struct{}, 16)
	watcher, err := watch(path, log, func() { reloads <- struct{}{} })
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.html"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(fixture+"<p>changed</p>"), 0o644))

	select {
	case <-reloads:
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after the file was written")
	}
}
