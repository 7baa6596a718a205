package drive

import (
	"fmt"
	"io"
	"io/ioutil"
	"time"
)

const MaxDrawInterval = time.Second * 1
const MaxRateInterval = time.Second * 3

func getProgressReader(r io.Reader, w io.Writer, size int64) io.Reader {
	// Don't wrap reader if output is discarded or size is too small
	if w == ioutil.Discard || (size > 0 && size < 1024*1024) {
		return r
	}

	return &Progress{
		Reader: r,
		Writer: w,
		Size:   size,
	}
}

// Progress reports transfer progress after each chunk read. When the total
// size is known the fraction transferred is shown as a percentage.
type Progress struct {
	Writer       io.Writer
	Reader       io.Reader
	Size         int64
	progress     int64
	rate         int64
	rateProgress int64
	rateUpdated  time.Time
	updated      time.Time
	done         bool
}

func (pr *Progress) Read(p []byte) (int, error) {
	n, err := pr.Reader.Read(p)

	now := time.Now()
	isLast := err != nil

	pr.progress += int64(n)

	// Initialize rate state
	if pr.rateUpdated.IsZero() {
		pr.rateUpdated = now
		pr.rateProgress = pr.progress
	}

	// Update rate every x seconds
	if pr.rateUpdated.Add(MaxRateInterval).Before(now) {
		pr.rate = calcRate(pr.progress-pr.rateProgress, pr.rateUpdated, now)
		pr.rateUpdated = now
		pr.rateProgress = pr.progress
	}

	// Draw progress every x seconds
	if pr.updated.Add(MaxDrawInterval).Before(now) || isLast {
		pr.draw(isLast)
		pr.updated = now
	}

	pr.done = isLast

	return n, err
}

// percent returns the fraction transferred scaled to 0-100, or -1 when the
// total size is unknown.
func (pr *Progress) percent() int {
	if pr.Size <= 0 {
		return -1
	}
	return int(float64(pr.progress) / float64(pr.Size) * 100)
}

func (pr *Progress) draw(isLast bool) {
	if pr.done {
		return
	}

	pr.clear()

	_, _ = fmt.Fprintf(pr.Writer, "%s", formatSize(pr.progress, false))

	if pr.Size > 0 {
		_, _ = fmt.Fprintf(pr.Writer, "/%s (%d%%)", formatSize(pr.Size, false), pr.percent())
	}

	if pr.rate > 0 {
		_, _ = fmt.Fprintf(pr.Writer, ", Rate: %s/s", formatSize(pr.rate, false))
	}

	if isLast {
		pr.clear()
	}
}

func (pr *Progress) clear() {
	_, _ = fmt.Fprintf(pr.Writer, "\r%50s\r", "")
}
