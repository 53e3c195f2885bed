package scrollstage

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

// ImageFormat selects the encoding of captured screenshots.
type ImageFormat uint8

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatWebP
)

// ParseImageFormat parses "png" or "webp".
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(s) {
	case "", "png":
		return ImageFormatPNG, nil
	case "webp":
		return ImageFormatWebP, nil
	}
	return 0, fmt.Errorf("unknown image format %q (want png or webp)", s)
}

func (f ImageFormat) ext() string {
	if f == ImageFormatWebP {
		return "webp"
	}
	return "png"
}

// Screenshot queues a labeled screenshot to be captured at the end of the
// current frame's Draw call. The file is written to ScreenshotDir with a
// timestamped name. Safe to call from Update or Draw.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots captures the rendered frame for every queued label.
// Called at the end of Scene.Draw.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[scrollstage] screenshot: mkdir %s: %v\n", s.ScreenshotDir, err)
		return
	}

	bounds := screen.Bounds()
	premul := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	screen.ReadPixels(premul.Pix)
	img := unpremultiply(downscale(premul, s.ScreenshotScale))

	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.screenshotQueue {
		name := fmt.Sprintf("%s_%s.%s", stamp, sanitizeLabel(label), s.ScreenshotFormat.ext())
		if err := writeImage(filepath.Join(s.ScreenshotDir, name), img, s.ScreenshotFormat); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[scrollstage] screenshot: %v\n", err)
		}
	}
}

// downscale resizes a premultiplied image by scale with CatmullRom. Scales
// outside (0, 1) return src unchanged.
func downscale(src *image.RGBA, scale float64) *image.RGBA {
	if scale <= 0 || scale >= 1 {
		return src
	}
	b := src.Bounds()
	w := max(int(float64(b.Dx())*scale+0.5), 1)
	h := max(int(float64(b.Dy())*scale+0.5), 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// unpremultiply converts premultiplied RGBA to straight-alpha NRGBA.
func unpremultiply(src *image.RGBA) *image.NRGBA {
	img := image.NewNRGBA(src.Bounds())
	pixels := src.Pix
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writeImage encodes img to path in the given format.
func writeImage(path string, img image.Image, format ImageFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	switch format {
	case ImageFormatWebP:
		err = nativewebp.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
