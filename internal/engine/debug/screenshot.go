package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/midgard-view/internal/logger"
)

// Format is a screenshot image format.
type Format string

const (
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// ParseFormat maps a config value to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatBMP:
		return FormatBMP, nil
	default:
		return "", fmt.Errorf("unsupported screenshot format %q", s)
	}
}

func (f Format) encode(w io.Writer, img image.Image) error {
	if f == FormatBMP {
		return bmp.Encode(w, img)
	}
	return png.Encode(w, img)
}

// ScreenshotCapture writes frames to timestamped image files. Encoding for
// CaptureAsync runs on a small worker pool.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    Format

	pool    *ants.Pool
	pending sync.WaitGroup
	seq     atomic.Uint32
	now     func() time.Time

	log *zap.Logger
}

// NewScreenshotCapture creates a capture handler with workers encoding goroutines.
func NewScreenshotCapture(outputDir, prefix string, format Format, workers int) (*ScreenshotCapture, error) {
	if workers < 1 {
		workers = 1
	}
	sc := &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
		log:       logger.Named("screenshot"),
	}

	pool, err := ants.NewPool(
		workers,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(p interface{}) {
			sc.log.Error("screenshot worker panic", zap.Any("panic", p))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("creating screenshot pool: %w", err)
	}
	sc.pool = pool
	return sc, nil
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// Format returns the image format written.
func (sc *ScreenshotCapture) Format() Format {
	return sc.format
}

// CaptureFromPixels writes a screenshot from raw pixel data.
// pixels should be in RGBA format with width*height*4 bytes.
// The image is flipped vertically since OpenGL has origin at bottom-left.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return sc.CaptureFromImage(img)
}

// CaptureAsync encodes pixels on the worker pool. pixels must not be modified
// until done runs; done is optional. Returns an error without calling done
// when every worker is busy.
func (sc *ScreenshotCapture) CaptureAsync(pixels []byte, width, height int, done func(path string, err error)) error {
	if len(pixels) != width*height*4 {
		return fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	sc.pending.Add(1)
	err := sc.pool.Submit(func() {
		defer sc.pending.Done()
		path, err := sc.CaptureFromPixels(pixels, width, height)
		if err != nil {
			sc.log.Warn("screenshot failed", zap.Error(err))
		} else {
			sc.log.Info("screenshot saved", zap.String("path", path))
		}
		if done != nil {
			done(path, err)
		}
	})
	if err != nil {
		sc.pending.Done()
		return fmt.Errorf("submitting screenshot: %w", err)
	}
	return nil
}

// CaptureFromImage writes an existing image.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := sc.format.encode(file, img); err != nil {
		file.Close()
		os.Remove(filename)
		return "", fmt.Errorf("encoding %s: %w", strings.ToUpper(string(sc.format)), err)
	}
	if err := file.Close(); err != nil {
		os.Remove(filename)
		return "", fmt.Errorf("closing file: %w", err)
	}

	return filename, nil
}

// GenerateFilename returns the next screenshot path without saving.
// A sequence number keeps captures within the same second apart.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s_%03d.%s", sc.prefix, timestamp, sc.seq.Add(1), sc.format)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

// Wait blocks until all submitted captures are written.
func (sc *ScreenshotCapture) Wait() {
	sc.pending.Wait()
}

// Close waits for pending captures and stops the workers.
func (sc *ScreenshotCapture) Close() {
	sc.Wait()
	sc.pool.Release()
}

// FlipPixels converts bottom-up RGBA rows into an image.
func FlipPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}
	return img, nil
}
