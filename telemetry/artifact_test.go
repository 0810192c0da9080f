// Copyright 2026 The LogModule Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build !integration

package telemetry

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBundle builds an in-memory zip with the given entries.
func buildBundle(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// newRegistry serves the bundle at the registry path and counts requests.
func newRegistry(t *testing.T, bundle []byte) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		expected := fmt.Sprintf("/%s/%s", DefaultSDKPackageID, DefaultSDKVersion)
		if r.URL.Path != expected {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(bundle)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newArtifactClient(t *testing.T, registryURL, cacheRoot string) *Client {
	t.Helper()
	return MustNew(
		WithRegistryBaseURL(registryURL),
		WithCacheRoot(cacheRoot),
		WithArtifactRelPath("lib/sdk.dll"),
	)
}

func TestEnsureArtifact_FetchesAndUnpacks(t *testing.T) {
	t.Parallel()

	bundle := buildBundle(t, map[string]string{
		"lib/sdk.dll": "sdk-bytes",
		"README.md":   "docs",
	})
	srv, hits := newRegistry(t, bundle)
	root := t.TempDir()
	c := newArtifactClient(t, srv.URL, root)

	cacheDir, artifact, err := c.ensureArtifact(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, DefaultCacheFolderName), cacheDir)
	got, err := os.ReadFile(artifact)
	require.NoError(t, err)
	assert.Equal(t, "sdk-bytes", string(got))
	assert.Equal(t, int64(1), hits.Load())

	// The transient archive is discarded after unpacking.
	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".zip")
	}
}

func TestEnsureArtifact_ReusesCache(t *testing.T) {
	t.Parallel()

	bundle := buildBundle(t, map[string]string{"lib/sdk.dll": "sdk-bytes"})
	srv, hits := newRegistry(t, bundle)
	root := t.TempDir()
	c := newArtifactClient(t, srv.URL, root)

	_, _, err := c.ensureArtifact(context.Background())
	require.NoError(t, err)
	_, _, err = c.ensureArtifact(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), hits.Load(), "acquisition happens at most once per cache directory")
}

func TestEnsureArtifact_MissingArtifactInBundle(t *testing.T) {
	t.Parallel()

	bundle := buildBundle(t, map[string]string{"README.md": "no sdk here"})
	srv, _ := newRegistry(t, bundle)
	c := newArtifactClient(t, srv.URL, t.TempDir())

	_, _, err := c.ensureArtifact(context.Background())
	require.ErrorIs(t, err, ErrArtifactUnavailable)
}

func TestEnsureArtifact_RegistryError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c := newArtifactClient(t, srv.URL, t.TempDir())

	_, _, err := c.ensureArtifact(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestEnsureArtifact_StalledRegistryTimesOut(t *testing.T) {
	t.Parallel()

	stall := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		<-stall
	}))
	t.Cleanup(func() {
		close(stall)
		srv.Close()
	})

	c := MustNew(
		WithRegistryBaseURL(srv.URL),
		WithCacheRoot(t.TempDir()),
		WithArtifactRelPath("lib/sdk.dll"),
		WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}),
	)

	start := time.Now()
	_, _, err := c.ensureArtifact(context.Background())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second, "a hung registry must not stall acquisition")
}

func TestUnpackArchive_RejectsEscapingEntries(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("../escape.txt")
	require.NoError(t, err)
	_, err = f.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	require.NoError(t, os.WriteFile(archive, buf.Bytes(), 0o644))

	err = unpackArchive(archive, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes")
}
