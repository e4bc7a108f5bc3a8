// Package update replaces the running diary binary with the latest GitHub release.
package update

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/cavaliergopher/grab/v3"
	"github.com/inconshreveable/go-update"
	"github.com/perpetuallyhorni/diary/tools/diary/internal/cli"
)

const (
	repoOwner  = "perpetuallyhorni"
	repoName   = "diary"
	binaryName = "diary"
)

var latestReleaseURL = fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", repoOwner, repoName)

// httpClient is shared by the release lookup and the asset download.
var httpClient = &http.Client{
	Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
	Timeout:   5 * time.Minute,
}

type githubRelease struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name        string `json:"name"`
		DownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// version is a dotted numeric version such as v1.4 or v1.4.2.
type version []int

func parseVersion(s string) (version, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if s == "" {
		return nil, errors.New("empty version")
	}
	parts := strings.Split(s, ".")
	v := make(version, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid version component %q in %q", p, s)
		}
		v[i] = n
	}
	return v, nil
}

// lessThan compares component by component; missing components count as zero.
func (v version) lessThan(other version) bool {
	for i := 0; i < max(len(v), len(other)); i++ {
		var a, b int
		if i < len(v) {
			a = v[i]
		}
		if i < len(other) {
			b = other[i]
		}
		if a != b {
			return a < b
		}
	}
	return false
}

func getLatestRelease() (*githubRelease, error) {
	req, err := http.NewRequest(http.MethodGet, latestReleaseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release info: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status from GitHub API: %s", resp.Status)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode release info: %w", err)
	}
	return &release, nil
}

// newer returns the latest release when it is newer than currentVersion, or nil.
func newer(currentVersion string) (*githubRelease, error) {
	current, err := parseVersion(currentVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to parse current version: %w", err)
	}
	release, err := getLatestRelease()
	if err != nil {
		return nil, err
	}
	latest, err := parseVersion(release.TagName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse latest version tag: %w", err)
	}
	if current.lessThan(latest) {
		return release, nil
	}
	return nil, nil
}

// CheckForUpdate returns the latest release tag when it is newer than
// currentVersion, and "" otherwise. Development builds never update.
func CheckForUpdate(currentVersion string) (string, error) {
	if isDevBuild(currentVersion) {
		return "", nil
	}
	release, err := newer(currentVersion)
	if err != nil || release == nil {
		return "", err
	}
	return release.TagName, nil
}

func isDevBuild(v string) bool {
	return v == "" || v == "dev"
}

// assetName is the goreleaser archive name for this platform.
func assetName(goos, goarch string) string {
	if goarch == "amd64" {
		goarch = "x86_64"
	}
	ext := "tar.gz"
	if goos == "windows" {
		ext = "zip"
	}
	return fmt.Sprintf("%s_%s_%s.%s", repoName, goos, goarch, ext)
}

// download fetches url into dir with grab, showing progress on the console,
// and returns the local path.
func download(console *cli.Console, url, dir string) (string, error) {
	req, err := grab.NewRequest(dir, url)
	if err != nil {
		return "", err
	}
	client := &grab.Client{HTTPClient: httpClient, UserAgent: binaryName + "-updater"}
	resp := client.Do(req)

	console.StartProgress("Downloading...")
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-ticker.C:
			console.UpdateProgress(fmt.Sprintf("Downloading... %.0f%%", 100*resp.Progress()))
		case <-resp.Done:
			break loop
		}
	}
	console.StopProgress()

	if err := resp.Err(); err != nil {
		return "", err
	}
	return resp.Filename, nil
}

// extractBinary returns the diary executable stored in the archive at path.
func extractBinary(path string) ([]byte, error) {
	name := binaryName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	if strings.HasSuffix(path, ".zip") {
		r, err := zip.OpenReader(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open zip: %w", err)
		}
		defer r.Close()
		for _, f := range r.File {
			if f.FileInfo().IsDir() || filepath.Base(f.Name) != name {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("failed to open file in zip: %w", err)
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
		return nil, fmt.Errorf("executable '%s' not found in archive", name)
	}

	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, err
	}
	defer f.Close()
	gzr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzr.Close()
	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tar reading error: %w", err)
		}
		if header.Typeflag == tar.TypeReg && filepath.Base(header.Name) == name {
			return io.ReadAll(tr)
		}
	}
	return nil, fmt.Errorf("executable '%s' not found in archive", name)
}

// ApplyUpdate installs the latest release over the running executable.
func ApplyUpdate(console *cli.Console, currentVersion string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}
	if strings.Contains(exe, "go-build") {
		console.Error("Update command cannot be used with `go run`.")
		console.Info("Build or install the binary first, then run the update on the compiled executable.")
		return nil
	}
	if isDevBuild(currentVersion) {
		console.Warn("Cannot update a development build.")
		return nil
	}

	console.Info("Checking for latest version...")
	release, err := newer(currentVersion)
	if err != nil {
		return err
	}
	if release == nil {
		console.Success("You are already using the latest version of diary (%s).", currentVersion)
		return nil
	}
	console.Info("Updating from %s to %s...", currentVersion, release.TagName)

	want := assetName(runtime.GOOS, runtime.GOARCH)
	var assetURL string
	for _, asset := range release.Assets {
		if asset.Name == want {
			assetURL = asset.DownloadURL
			break
		}
	}
	if assetURL == "" {
		return fmt.Errorf("could not find update asset '%s' for this platform", want)
	}

	tmp, err := os.MkdirTemp("", "diary-update-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	console.Info("Downloading: %s", want)
	archive, err := download(console, assetURL, tmp)
	if err != nil {
		return fmt.Errorf("failed to download asset: %w", err)
	}
	bin, err := extractBinary(archive)
	if err != nil {
		return fmt.Errorf("failed to extract binary: %w", err)
	}

	console.Info("Applying update...")
	if err := update.Apply(bytes.NewReader(bin), update.Options{}); err != nil {
		return fmt.Errorf("update apply failed: %w", err)
	}
	console.Success("Successfully updated to version %s", release.TagName)
	return nil
}
