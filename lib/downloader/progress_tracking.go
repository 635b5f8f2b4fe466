package downloader

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/hashicorp/go-getter"
)

// DefaultProgressBar is the default download progress tracker.
var DefaultProgressBar getter.ProgressTracker = &progressBar{w: os.Stderr} //nolint:gochecknoglobals // shared tracker

// progressBar draws one cheggaaa/pb bar per active download.
type progressBar struct {
	// lock everything below
	lock sync.Mutex

	w      io.Writer
	active int
}

// TrackProgress instantiates a new progress bar that will display the
// progress of stream until closed. totalSize can be 0.
func (cpb *progressBar) TrackProgress(src string, currentSize, totalSize int64, stream io.ReadCloser) io.ReadCloser {
	cpb.lock.Lock()
	defer cpb.lock.Unlock()

	bar := pb.Full.New(0).
		SetTotal(totalSize).
		SetCurrent(currentSize).
		Set(pb.Bytes, true).
		Set("prefix", filepath.Base(src)+" ").
		SetWriter(cpb.w).
		Start()

	cpb.active++

	return &readCloser{
		Reader: bar.NewProxyReader(stream),
		close: func() error {
			cpb.lock.Lock()
			defer cpb.lock.Unlock()

			bar.Finish()
			cpb.active--

			return stream.Close()
		},
	}
}

type readCloser struct {
	io.Reader
	close func() error
}

func (c *readCloser) Close() error { return c.close() }
