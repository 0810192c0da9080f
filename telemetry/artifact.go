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

package telemetry

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ensureArtifact makes sure the versioned SDK bundle is unpacked in the
// cache directory and returns the artifact path inside it.
//
// When the expected artifact is already present the cache is reused and
// no network access happens; otherwise the bundle is fetched from the
// registry as <base>/<id>/<version>, unpacked into the cache directory,
// and the transient archive removed. Acquisition therefore happens at
// most once per cache directory.
func (c *Client) ensureArtifact(ctx context.Context) (cacheDir, artifact string, err error) {
	root := c.cacheRoot
	if root == "" {
		root, err = os.UserCacheDir()
		if err != nil {
			return "", "", fmt.Errorf("resolving cache root: %w", err)
		}
	}
	cacheDir = filepath.Join(root, c.cacheFolderName)
	artifact = filepath.Join(cacheDir, filepath.FromSlash(c.artifactRelPath))

	if _, statErr := os.Stat(artifact); statErr == nil {
		c.emitDebug("sdk artifact cache hit", "artifact", artifact)
		return cacheDir, artifact, nil
	}

	if err = os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating cache directory %q: %w", cacheDir, err)
	}

	archive := filepath.Join(cacheDir, fmt.Sprintf("%s.%s.zip", c.sdkPackageID, c.sdkVersion))
	if err = c.downloadBundle(ctx, archive); err != nil {
		return "", "", err
	}
	defer os.Remove(archive)

	if err = unpackArchive(archive, cacheDir); err != nil {
		return "", "", fmt.Errorf("unpacking sdk bundle: %w", err)
	}

	if _, statErr := os.Stat(artifact); statErr != nil {
		return "", "", fmt.Errorf("%w: %q missing after unpack", ErrArtifactUnavailable, artifact)
	}
	c.emitInfo("sdk artifact acquired", "artifact", artifact, "version", c.sdkVersion)
	return cacheDir, artifact, nil
}

// downloadBundle fetches the versioned bundle over HTTPS into dest. The
// client's timeout bounds the whole transfer; the context can cancel it
// earlier.
func (c *Client) downloadBundle(ctx context.Context, dest string) error {
	url := fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.registryBaseURL, "/"), c.sdkPackageID, c.sdkVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building registry request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching sdk bundle from %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching sdk bundle from %q: unexpected status %s", url, resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating bundle archive %q: %w", dest, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("writing bundle archive %q: %w", dest, err)
	}
	return nil
}

// unpackArchive extracts a zip archive into dir, rejecting entries that
// would escape it.
func unpackArchive(archive, dir string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("opening archive %q: %w", archive, err)
	}
	defer r.Close()

	for _, entry := range r.File {
		rel := filepath.FromSlash(entry.Name)
		dest := filepath.Join(dir, rel)
		if !strings.HasPrefix(dest, filepath.Clean(dir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes %q", entry.Name, dir)
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := extractEntry(entry, dest); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(entry *zip.File, dest string) error {
	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("opening archive entry %q: %w", entry.Name, err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %q: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("extracting %q: %w", entry.Name, err)
	}
	return nil
}
