package convert

import (
	"image"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// scale shrinks or grows img to fit inside width x height, keeping its
// aspect ratio. A zero limit leaves that dimension free.
func scale(logger *slog.Logger, img image.Image, width, height int) image.Image {
	srcBounds := img.Bounds()
	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())
	if (width == 0 && height == 0) || srcWidth == 0 || srcHeight == 0 {
		return img
	}

	factor := math.Inf(1)
	if width > 0 {
		factor = float64(width) / srcWidth
	}
	if height > 0 {
		factor = math.Min(factor, float64(height)/srcHeight)
	}

	destWidth := max(1, int(math.Round(srcWidth*factor)))
	destHeight := max(1, int(math.Round(srcHeight*factor)))
	if destWidth == srcBounds.Dx() && destHeight == srcBounds.Dy() {
		return img
	}

	logger.Info("resizing", "width", destWidth, "height", destHeight)
	dest := image.NewRGBA(image.Rect(0, 0, destWidth, destHeight))
	draw.CatmullRom.Scale(dest, dest.Bounds(), img, srcBounds, draw.Src, nil)

	return dest
}
