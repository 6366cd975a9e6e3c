package pipeline

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/go-playground/colors.v1"
)

type progress struct {
	w    io.Writer
	run  *colors.RGBColor
	ok   *colors.RGBColor
	fail *colors.RGBColor
}

func newProgress(w io.Writer) (*progress, error) {
	run, err := colors.RGB(38, 139, 210)
	if err != nil {
		return nil, err
	}
	ok, err := colors.RGB(133, 153, 0)
	if err != nil {
		return nil, err
	}
	fail, err := colors.RGB(220, 50, 47)
	if err != nil {
		return nil, err
	}

	return &progress{w: w, run: run, ok: ok, fail: fail}, nil
}

func (pr *progress) printf(c *colors.RGBColor, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(pr.w, "\x1b[38;2;%d;%d;%dm%s\x1b[0m\n", c.R, c.G, c.B, msg)
}

// The progress feature is optional, all entry points tolerate a nil receiver.

func (pr *progress) running(name string) {
	if pr == nil {
		return
	}
	pr.printf(pr.run, "running stage %s", name)
}

func (pr *progress) finished(name string, elapsed time.Duration) {
	if pr == nil {
		return
	}
	pr.printf(pr.ok, "stage %s finished in %s", name, round(elapsed))
}

func (pr *progress) failed(name string) {
	if pr == nil {
		return
	}
	pr.printf(pr.fail, "stage %s failed", name)
}
