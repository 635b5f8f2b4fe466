// Package downloader fetches remote wordlists into the local wordlist cache.
package downloader

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/duke-git/lancet/v2/cryptor"
	"github.com/duke-git/lancet/v2/fileutil"
	"github.com/duke-git/lancet/v2/strutil"
	"github.com/hashicorp/go-getter"

	"github.com/unclesp1d3r/swsfsearch/lib/display"
	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
	"github.com/unclesp1d3r/swsfsearch/runstate"
)

const (
	defaultUmask = 0o022 // Default umask for file permissions
	cacheDirMode = 0o750 // Permissions for the wordlist cache directory
)

// ErrChecksumMismatch is returned when a downloaded file does not match the expected MD5.
var ErrChecksumMismatch = errors.New("downloaded file checksum does not match")

// httpClient is used for every download. Its nil Transport means http.DefaultTransport.
var httpClient = &http.Client{} //nolint:gochecknoglobals // swapped in tests

// showProgress controls whether downloads draw a progress bar on stderr.
var showProgress = true //nolint:gochecknoglobals // disabled in tests

// IsRemote reports whether location is an http or https URL rather than a local path.
func IsRemote(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// CachePath returns where fileURL is stored inside cacheDir. The file name is
// the last URL path segment; URLs without one are named by the MD5 of the URL.
func CachePath(cacheDir, fileURL string) string {
	name := ""
	if u, err := url.Parse(fileURL); err == nil {
		name = path.Base(u.Path)
	}

	if name == "" || name == "." || name == "/" {
		name = cryptor.Md5String(fileURL) + ".txt"
	}

	return filepath.Join(cacheDir, name)
}

// DownloadFile downloads fileURL to filePath with optional MD5 checksum verification.
// If the file already exists and the checksum matches, the download is skipped.
func DownloadFile(ctx context.Context, fileURL, filePath, checksum string) error {
	if !IsRemote(fileURL) {
		return searcherr.Configf("invalid wordlist URL %q", fileURL)
	}

	checksum = strings.ToLower(strings.TrimSpace(checksum))

	if FileExistsAndValid(filePath, checksum) {
		runstate.Logger.Info("Download already exists", "path", filePath)

		return nil
	}

	if err := os.MkdirAll(filepath.Dir(filePath), cacheDirMode); err != nil {
		return searcherr.IO("create wordlist cache", filepath.Dir(filePath), err)
	}

	runstate.State.SetActivity(runstate.ActivityDownloading)
	display.Downloading(fileURL, filePath)

	return downloadAndVerifyFile(ctx, fileURL, filePath, checksum)
}

// FileExistsAndValid checks if a file exists at the given path and, if a checksum is provided, verifies its validity.
// A file whose checksum does not match is removed so the next download starts clean.
func FileExistsAndValid(filePath, checksum string) bool {
	if !fileutil.IsExist(filePath) {
		return false
	}

	if strutil.IsBlank(checksum) {
		return true
	}

	fileChecksum, err := cryptor.Md5File(filePath)
	if err != nil {
		runstate.Logger.Error("Error calculating file checksum", "path", filePath, "error", err)

		return false
	}

	if strings.EqualFold(fileChecksum, checksum) {
		return true
	}

	runstate.Logger.Warn("Checksums do not match", "path", filePath,
		"expected_checksum", checksum, "file_checksum", fileChecksum)

	if err := os.Remove(filePath); err != nil {
		runstate.Logger.Error("Error removing file with mismatched checksum", "path", filePath, "error", err)
	}

	return false
}

// downloadAndVerifyFile fetches the file with go-getter. Archive auto-extraction
// is disabled so compressed wordlists arrive byte for byte.
func downloadAndVerifyFile(ctx context.Context, fileURL, filePath, checksum string) error {
	src := fileURL

	if strutil.IsNotBlank(checksum) {
		var err error

		src, err = appendChecksumToURL(fileURL, checksum)
		if err != nil {
			return searcherr.Config("add checksum to wordlist URL", err)
		}
	}

	httpGetter := &getter.HttpGetter{Client: httpClient}

	client := &getter.Client{
		Ctx:           ctx,
		Dst:           filePath,
		Src:           src,
		Mode:          getter.ClientModeFile,
		Getters:       map[string]getter.Getter{"http": httpGetter, "https": httpGetter},
		Decompressors: map[string]getter.Decompressor{},
	}

	opts := []getter.ClientOption{getter.WithUmask(os.FileMode(defaultUmask))}
	if showProgress {
		opts = append(opts, getter.WithProgress(DefaultProgressBar))
	}

	_ = client.Configure(opts...) //nolint:errcheck // Client configuration errors are not critical

	if err := client.Get(); err != nil {
		runstate.Logger.Debug("Error downloading file", "error", err)

		if ctx.Err() != nil {
			return ctx.Err()
		}

		return searcherr.NotFound(fileURL, err)
	}

	if strutil.IsNotBlank(checksum) && !FileExistsAndValid(filePath, checksum) {
		return searcherr.NotFound(fileURL, ErrChecksumMismatch)
	}

	return nil
}

// appendChecksumToURL appends a checksum to the URL query string.
// It returns the modified URL or an error if the URL is invalid.
func appendChecksumToURL(rawURL, checksum string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("checksum", "md5:"+checksum)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
