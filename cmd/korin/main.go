// Command korin runs the game client.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gogpu/korin"
	"github.com/gogpu/korin/config"
	"github.com/gogpu/korin/gpu"
	"github.com/gogpu/korin/gpu/headless"
	"github.com/gogpu/korin/gpu/wgpu"
	"github.com/gogpu/korin/graphics"
)

var (
	configPath   string
	headlessMode bool
	frameCount   int
	logLevel     string
	screenWidth  uint32
	screenHeight uint32
	vsync        bool
)

var rootCmd = &cobra.Command{
	Use:   "korin",
	Short: "3D game client",
	RunE:  run,

	SilenceUsage: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "korin.yaml", "configuration file path")
	flags.BoolVar(&headlessMode, "headless", false, "render without a GPU adapter")
	flags.IntVar(&frameCount, "frames", 0, "exit after rendering this many frames, 0 runs forever")
	flags.StringVar(&logLevel, "log-level", "info", "log verbosity (debug, info, warn, error)")
	flags.Uint32Var(&screenWidth, "width", 0, "override the configured screen width")
	flags.Uint32Var(&screenHeight, "height", 0, "override the configured screen height")
	flags.BoolVar(&vsync, "vsync", true, "override the configured vsync setting")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	logger := logrus.New()
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)
	korin.SetLogger(slog.New(newLogrusHandler(logger)))

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("width") {
		cfg.Graphics.ScreenWidth = screenWidth
	}
	if cmd.Flags().Changed("height") {
		cfg.Graphics.ScreenHeight = screenHeight
	}
	if cmd.Flags().Changed("vsync") {
		cfg.Graphics.VSync = vsync
	}

	device, cleanup, err := openDevice()
	if err != nil {
		return err
	}
	defer cleanup()

	engine := graphics.NewGraphicsEngine(device, cfg.Graphics.EngineOptions())
	defer engine.Close()
	if err := engine.OnResume(nil); err != nil {
		return fmt.Errorf("create surface: %w", err)
	}

	scene, err := newScene(cfg)
	if err != nil {
		return err
	}

	for frame := 0; frameCount == 0 || frame < frameCount; frame++ {
		surfaceFrame, err := engine.WaitForNextFrame()
		if err != nil {
			return fmt.Errorf("acquire frame %d: %w", frame, err)
		}

		instruction := scene.Advance(engine.PickerValue())
		engine.RenderNextFrame(surfaceFrame, instruction)
	}

	logger.WithFields(logrus.Fields{
		"frames":     frameCount,
		"frame_time": engine.CPUFrameTime(),
	}).Info("render loop finished")
	return nil
}

// openDevice creates the GPU device, falling back on nothing: in
// headless mode the in-memory device is used directly, otherwise a
// real adapter is required.
func openDevice() (gpu.Device, func(), error) {
	if headlessMode {
		device := headless.New()
		return device, device.Destroy, nil
	}

	backend := wgpu.NewBackend()
	if err := backend.Init(); err != nil {
		return nil, nil, fmt.Errorf("initialize gpu backend: %w", err)
	}
	device, err := wgpu.NewDevice(backend)
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("create gpu device: %w", err)
	}
	return device, func() {
		device.Destroy()
		backend.Close()
	}, nil
}
