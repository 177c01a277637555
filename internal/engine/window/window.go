// Package window presents rendered frames in an SDL2 window.
package window

import (
	"encoding/binary"
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
)

func init() {
	// SDL video calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title  string
	Width  int // frame width in pixels
	Height int // frame height in pixels
	Scale  int // window pixels per frame pixel
}

// Window wraps an SDL2 window and the software surface frames are copied to.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	frame     *sdl.Surface
	log       *zap.Logger
}

// New creates a window sized Scale times the frame.
func New(cfg Config, log *zap.Logger) (*Window, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Scale < 1 {
		cfg.Scale = 1
	}
	w := &Window{
		config: cfg,
		log:    log,
	}

	log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width*cfg.Scale),
		int32(cfg.Height*cfg.Scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	if err := w.allocFrame(); err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, err
	}

	log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("scale", cfg.Scale),
	)

	return w, nil
}

// BGR888 stores red in the low byte of each native uint32, which is the
// tracer's packing.
func (w *Window) allocFrame() error {
	frame, err := sdl.CreateRGBSurfaceWithFormat(0, int32(w.config.Width), int32(w.config.Height), 32, uint32(sdl.PIXELFORMAT_BGR888))
	if err != nil {
		return fmt.Errorf("creating frame surface: %w", err)
	}
	w.frame = frame
	return nil
}

// Present copies a packed frame into the window. Frame row 0 is the bottom
// of the image.
func (w *Window) Present(pixels []uint32) error {
	if len(pixels) != w.config.Width*w.config.Height {
		return fmt.Errorf("frame holds %d pixels, window expects %dx%d", len(pixels), w.config.Width, w.config.Height)
	}

	if err := w.frame.Lock(); err != nil {
		return fmt.Errorf("locking frame surface: %w", err)
	}
	copyFlipped(w.frame.Pixels(), int(w.frame.Pitch), pixels, w.config.Width, w.config.Height)
	w.frame.Unlock()

	dst, err := w.sdlWindow.GetSurface()
	if err != nil {
		return fmt.Errorf("getting window surface: %w", err)
	}
	width, height := w.sdlWindow.GetSize()
	if err := w.frame.BlitScaled(nil, dst, &sdl.Rect{W: width, H: height}); err != nil {
		return fmt.Errorf("blitting frame: %w", err)
	}
	return w.sdlWindow.UpdateSurface()
}

// copyFlipped writes pixels into a surface buffer with the given pitch,
// turning bottom-up rows into top-down ones.
func copyFlipped(dst []byte, pitch int, pixels []uint32, width, height int) {
	for y := 0; y < height; y++ {
		src := pixels[(height-1-y)*width:][:width]
		row := dst[y*pitch:]
		for x, p := range src {
			binary.NativeEndian.PutUint32(row[x*4:], p)
		}
	}
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.frame != nil {
		w.frame.Free()
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// GetSize returns the current frame size.
func (w *Window) GetSize() (int, int) {
	return w.config.Width, w.config.Height
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
