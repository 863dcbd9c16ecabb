// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const blogYAML = `base: /blog
site: https://ishanbagchi.com
`

const notesYAML = `base: /notes
site: https://ishanbagchi.com
integrations:
  - mdx
`

func newTestHolder(t *testing.T, data string) (*Holder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	writeConfig(t, path, data)

	loader := NewLoader(path)
	initial, err := loader.Load()
	require.NoError(t, err)

	h := NewHolder(initial, loader)
	h.debounce = 20 * time.Millisecond
	return h, path
}

func TestHolder_Reload(t *testing.T) {
	h, path := newTestHolder(t, blogYAML)
	first := h.Get()
	assert.Equal(t, "/blog", first.Base())

	updates := make(chan *Descriptor, 1)
	h.RegisterListener(updates)

	writeConfig(t, path, notesYAML)
	require.NoError(t, h.Reload(context.Background()))

	got := h.Get()
	assert.Equal(t, "/notes", got.Base())
	assert.Equal(t, []string{"mdx"}, got.IntegrationNames())

	select {
	case d := <-updates:
		assert.Same(t, got, d)
	default:
		t.Fatal("listener was not notified")
	}
}

func TestHolder_ReloadKeepsOldOnFailure(t *testing.T) {
	h, path := newTestHolder(t, blogYAML)
	before := h.Get()

	updates := make(chan *Descriptor, 1)
	h.RegisterListener(updates)

	writeConfig(t, path, "base: /blog\nmarkdown:\n  shikiConfig:\n    theme: no-such-theme\n")
	err := h.Reload(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)

	assert.Same(t, before, h.Get())
	assert.Empty(t, updates)
}

func TestHolder_ReloadUnchangedDoesNotNotify(t *testing.T) {
	h, _ := newTestHolder(t, blogYAML)

	updates := make(chan *Descriptor, 1)
	h.RegisterListener(updates)

	require.NoError(t, h.Reload(context.Background()))
	assert.Empty(t, updates)
}

func TestHolder_ListenerNeverBlocks(t *testing.T) {
	h, path := newTestHolder(t, blogYAML)

	full := make(chan *Descriptor) // unbuffered, nobody reading
	h.RegisterListener(full)

	writeConfig(t, path, notesYAML)
	done := make(chan error, 1)
	go func() { done <- h.Reload(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("reload blocked on listener")
	}
}

func TestHolder_ReloadWithoutLoader(t *testing.T) {
	d, err := Define(FileConfig{Site: "https://ishanbagchi.com"})
	require.NoError(t, err)

	h := NewHolder(d, nil)
	assert.Error(t, h.Reload(context.Background()))
	assert.NoError(t, h.StartWatcher(context.Background()))
	h.Stop()
	assert.Same(t, d, h.Get())
}

func TestHolder_Watcher(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	h, path := newTestHolder(t, blogYAML)
	updates := make(chan *Descriptor, 4)
	h.RegisterListener(updates)

	require.NoError(t, h.StartWatcher(context.Background()))
	assert.Error(t, h.StartWatcher(context.Background()), "second start must fail")

	writeConfig(t, path, notesYAML)

	select {
	case d := <-updates:
		assert.Equal(t, "/notes", d.Base())
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload the changed file")
	}

	h.Stop()
	assert.Equal(t, "/notes", h.Get().Base())
}

func TestHolder_WatcherStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	h, path := newTestHolder(t, blogYAML)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, h.StartWatcher(ctx))
	writeConfig(t, path, notesYAML)
	cancel()

	// Stop after cancel still waits for the loop and any pending timer.
	h.Stop()
}
