package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ThatOtherAndrew/Snowfall/internal/animate"
	"github.com/ThatOtherAndrew/Snowfall/internal/config"
	"github.com/ThatOtherAndrew/Snowfall/internal/draw"
	"github.com/ThatOtherAndrew/Snowfall/internal/logging"
	"github.com/ThatOtherAndrew/Snowfall/internal/opengl"
	"github.com/ThatOtherAndrew/Snowfall/internal/shaders"
	"github.com/ThatOtherAndrew/Snowfall/pkg/window"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the snowfall",
	RunE:  Run,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runtime.LockOSThread()
}

// applyFlags overrides settings with the flags given on the command line.
func applyFlags(cmd *cobra.Command, settings *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		settings.Seed = runFlags.seed
	}
	if flags.Changed("spacing") && runFlags.spacing > 0 {
		settings.FlakeSpacing = runFlags.spacing
	}
	if flags.Changed("width") && runFlags.width > 0 {
		settings.WindowWidth = runFlags.width
	}
	if flags.Changed("height") && runFlags.height > 0 {
		settings.WindowHeight = runFlags.height
	}
	if flags.Changed("paused") {
		settings.StartPaused = runFlags.paused
	}
	if flags.Changed("debug") {
		settings.Debug = runFlags.debug
	}
}

func loadSettings(cmd *cobra.Command) (*config.Settings, *slog.Logger, error) {
	settings, err := config.LoadSettings(logging.New(runFlags.debug))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}
	applyFlags(cmd, settings)
	return settings, logging.New(settings.Debug), nil
}

func Run(cmd *cobra.Command, args []string) error {
	settings, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	sources, err := shaders.LoadSources(settings.VertexShader, settings.FragmentShader)
	if err != nil {
		return err
	}

	win, err := window.New(window.Options{
		Width:       settings.WindowWidth,
		Height:      settings.WindowHeight,
		VSync:       settings.VSync,
		Transparent: settings.Transparent,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Destroy()

	gpu, err := opengl.Init()
	if err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL ready", "version", gpu.Version())

	pipeline, err := draw.New(gpu, sources, logger)
	if err != nil {
		return err
	}

	width, height := win.GetSize()
	snow, err := animate.New(pipeline, win, width, height, animate.Options{
		Spacing:            settings.FlakeSpacing,
		Seed:               settings.Seed,
		RepopulateOnResize: settings.RepopulateOnResize,
		Logger:             logger,
	})
	if err != nil {
		return err
	}
	defer snow.Close()

	win.OnResize(snow.OnResize)
	win.OnKey(func(key glfw.Key) {
		switch key {
		case glfw.KeySpace:
			snow.Toggle()
		case glfw.KeyEscape:
			win.Close()
		}
	})

	if !settings.StartPaused {
		snow.Play()
	}
	logger.Info("snowfall started", "flakes", snow.Field().Len(), "state", snow.State().String())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	win.Run(ctx)

	if err := snow.Err(); err != nil {
		return fmt.Errorf("rendering stopped: %w", err)
	}
	return nil
}
