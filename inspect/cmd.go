package inspect

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"bootimg/bmp"
	"bootimg/parallel"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Scan string `help:"Source folder to scan" default:"."`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var okCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() || !strings.EqualFold(filepath.Ext(file.Name()), ".bmp") {
			continue
		}

		worker(func(filePath string) func() {
			return func() {
				logger := slog.Default().With("file", filePath)

				h, err := describe(filePath)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not read header", "error", err)
					return
				}
				okCount.Add(1)
				logger.Info("bitmap", headerAttrs(h)...)
			}
		}(filepath.Join(c.Scan, file.Name())))
	}

	wait(true)

	ok := okCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "read", ok, "errors", errors, "total", ok+errors)

	if errors > 0 {
		return fmt.Errorf("error reading %d files", errors)
	}
	return nil
}

func describe(filePath string) (h bmp.Header, err error) {
	f, err := os.Open(filePath)
	if err != nil {
		return h, fmt.Errorf("could not open %q: %w", filePath, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close file", "name", filePath, "error", closeErr)
		}
	}()

	return bmp.ReadHeader(f)
}

func headerAttrs(h bmp.Header) []any {
	return []any{
		"width", h.Width,
		"height", h.Height,
		"depth", h.Depth,
		"offset", h.Offset,
		"stride", h.Stride(),
		"bitfields", h.Compression == 3,
		"masks", fmt.Sprintf("r=%08x g=%08x b=%08x a=%08x", h.RedMask, h.GreenMask, h.BlueMask, h.AlphaMask),
	}
}
