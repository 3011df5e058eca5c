// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Renderer   RendererConfig   `yaml:"renderer"`
	Controls   ControlsConfig   `yaml:"controls"`
	Debug      DebugConfig      `yaml:"debug"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds host window settings.
type WindowConfig struct {
	Title       string `yaml:"title"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Fullscreen  bool   `yaml:"fullscreen"`
	VSync       bool   `yaml:"vsync"`
	ErrorDialog bool   `yaml:"error_dialog"` // Show fatal startup errors in a native dialog
}

// RendererConfig is passed through to the renderer backend.
type RendererConfig struct {
	Backend    string     `yaml:"backend"`
	Antialias  bool       `yaml:"antialias"`
	Samples    int        `yaml:"samples"`
	PixelRatio float32    `yaml:"pixel_ratio"`
	ClearColor [3]float32 `yaml:"clear_color"`
}

// CameraConfig holds perspective camera settings.
type CameraConfig struct {
	FOV      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
}

// ControlsConfig overrides the first-person controller preset.
// Zero values keep the built-in preset.
type ControlsConfig struct {
	Camera        CameraConfig `yaml:"camera"`
	MovementSpeed float32      `yaml:"movement_speed"`
	LookSpeed     float32      `yaml:"look_speed"`
	StartEnabled  bool         `yaml:"start_enabled"`
}

// DebugConfig toggles the visual-aid collections.
type DebugConfig struct {
	Helpers   bool    `yaml:"helpers"`
	Markers   bool    `yaml:"markers"`
	GridSize  float32 `yaml:"grid_size"`
	GridDivs  int     `yaml:"grid_divisions"`
	AxesSize  float32 `yaml:"axes_size"`
}

// ScreenshotConfig holds screenshot capture settings.
type ScreenshotConfig struct {
	Dir     string `yaml:"dir"`
	Prefix  string `yaml:"prefix"`
	Format  string `yaml:"format"` // png or bmp
	Workers int    `yaml:"workers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:       "Midgard View",
			Width:       1280,
			Height:      720,
			Fullscreen:  false,
			VSync:       true,
			ErrorDialog: true,
		},
		Renderer: RendererConfig{
			Backend:    "gl",
			Antialias:  true,
			Samples:    4,
			PixelRatio: 1.0,
			ClearColor: [3]float32{0.1, 0.1, 0.15},
		},
		Controls: ControlsConfig{
			Camera: CameraConfig{
				FOV:      45,
				Near:     1,
				Far:      10000,
				Position: [3]float32{0, 300, 300},
			},
		},
		Debug: DebugConfig{
			Helpers:  false,
			Markers:  false,
			GridSize: 1000,
			GridDivs: 20,
			AxesSize: 100,
		},
		Screenshot: ScreenshotConfig{
			Dir:     "screenshots",
			Prefix:  "view",
			Format:  "png",
			Workers: 2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
