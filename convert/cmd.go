package convert

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"bootimg/bmp"
	"bootimg/parallel"
	"bootimg/render"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Scan       string `help:"Source folder to scan" default:"."`
	Dest       string `help:"Destination folder for converted pictures. Relative to scan dir if not absolute." default:"converted"`
	X          uint32 `help:"Left edge of the region to keep" default:"0" group:"crop"`
	Y          uint32 `help:"Top edge of the region to keep" default:"0" group:"crop"`
	CropWidth  uint32 `help:"Width of the region to keep, 0 for the rest of the row" default:"0" group:"crop"`
	CropHeight uint32 `help:"Height of the region to keep, 0 for the rest of the image" default:"0" group:"crop"`
	Width      int    `help:"Max width, 0 to keep" default:"0" group:"resize"`
	Height     int    `help:"Max height, 0 to keep" default:"0" group:"resize"`
	Opaque     bool   `help:"Make 24 bit images opaque, their decoded alpha is zero" default:"true" negatable:""`
	Format     string `help:"Output format" enum:"png,bmp,tiff" default:"png"`
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

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}
	if c.Dest == c.Scan {
		return fmt.Errorf("destination must differ from scan folder: %q", c.Dest)
	}

	switch {
	case c.Width < 0:
		return fmt.Errorf("invalid resize width: %d", c.Width)
	case c.Height < 0:
		return fmt.Errorf("invalid resize height: %d", c.Height)
	}

	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() || !strings.EqualFold(filepath.Ext(file.Name()), ".bmp") {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(c.Scan, fileName)
				logger := slog.Default().With("file", filePath)

				data, err := os.ReadFile(filePath)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not read image", "error", err)
					return
				}

				img, err := c.process(logger, data)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not convert image", "error", err)
					return
				}

				if err = save(img, c.Format, c.Dest, fileName); err != nil {
					errCount.Add(1)
					logger.Error("could not save image", "dir", c.Dest, "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

// process decodes a BMP file, cuts out the requested region and scales it.
func (c *CLICmd) process(logger *slog.Logger, data []byte) (image.Image, error) {
	h, err := bmp.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	buf, err := bmp.Parse(data)
	if err != nil {
		return nil, err
	}
	logger.Info("decoded", "width", buf.Width(), "height", buf.Height(), "depth", h.Depth)

	if c.Opaque && h.BytesPerPixel() == 3 {
		pix := buf.PixelsMut()
		for i := range pix {
			pix[i].A = math.MaxUint8
		}
	}

	cropWidth, cropHeight := c.CropWidth, c.CropHeight
	if cropWidth == 0 {
		cropWidth = math.MaxUint32
	}
	if cropHeight == 0 {
		cropHeight = math.MaxUint32
	}
	region := buf.Region(c.X, c.Y, cropWidth, cropHeight)
	if region.Width() == 0 || region.Height() == 0 {
		return nil, fmt.Errorf("region at %d,%d is outside the %dx%d image", c.X, c.Y, buf.Width(), buf.Height())
	}

	canvas := render.NewCanvas(int(region.Width()), int(region.Height()))
	region.Draw(canvas, 0, 0)

	return scale(logger, canvas.RGBA(), c.Width, c.Height), nil
}
