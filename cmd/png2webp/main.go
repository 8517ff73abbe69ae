package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/eurekaffeine/PokedexImages/internal/config"
	"github.com/eurekaffeine/PokedexImages/internal/converter"
	"github.com/eurekaffeine/PokedexImages/internal/logger"
	"github.com/eurekaffeine/PokedexImages/internal/statistics"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	sourceDir string
	quality   int
	lossless  bool
	maxWidth  int
	verbose   bool
	quiet     bool
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "png2webp",
	Short: "Convert PNG images to WebP format",
	Long: `png2webp converts every PNG file in a directory to WebP format,
skipping files that already have a WebP counterpart so re-runs are cheap.

Features:
- Idempotent: existing .webp files are never overwritten
- Keeps the alpha channel only when transparency is actually used
- Lossy quality control or lossless encoding for transparent images
- Optional downscaling of oversized images
- Per-file progress output and an aggregate summary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args, false)
	},
}

// scanCmd reports what a conversion run would do without writing anything.
var scanCmd = &cobra.Command{
	Use:   "scan [directory]",
	Short: "Show what would be converted without writing any files",
	Long: `Scan the specified directory (or the configured one) and report which
PNG files would be converted, which would be skipped, and which fail to
decode, without writing any WebP output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args, true)
	},
}

// inspectCmd decodes one file and prints its color mode and alpha range.
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Inspect a PNG file's color mode and alpha usage",
	Long: `Decodes a single file and prints its color model, alpha sample range,
and the WebP encode mode that would be chosen for it. Useful for debugging
unexpected transparency handling.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0])
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-error output")

	rootCmd.Flags().StringVarP(&sourceDir, "directory", "d", "", "directory containing PNG files (default: ./official-artwork)")
	rootCmd.Flags().IntVarP(&quality, "quality", "q", 85, "WebP quality (0-100)")
	rootCmd.Flags().BoolVarP(&lossless, "lossless", "l", false, "use lossless compression for transparent images")
	rootCmd.Flags().IntVar(&maxWidth, "max-width", 0, "downscale images wider than this many pixels (0 = off)")

	scanCmd.Flags().StringVarP(&sourceDir, "directory", "d", "", "directory containing PNG files (default: ./official-artwork)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(inspectCmd)
}

// initConfig loads configuration file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.png2webp")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// runConvert executes the conversion (or a dry-run scan) and prints the
// summary.
func runConvert(cmd *cobra.Command, args []string, dryRun bool) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg)

	if !quiet {
		printHeader(cfg, dryRun)
	}

	conv := converter.NewDefaultConverter(log)
	opts := converter.Options{
		Quality:  cfg.Conversion.Quality,
		Lossless: cfg.Conversion.Lossless,
		MaxWidth: cfg.Conversion.MaxWidth,
		DryRun:   dryRun,
	}

	results, err := conv.Convert(context.Background(), cfg.SourceDirectory, opts)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	summary := statistics.Summarize(results)
	if !quiet {
		fmt.Println("\n" + summary.Format())
		if summary.Errors > 0 {
			fmt.Println(summary.FormatErrors())
		}
	}

	return nil
}

// runInspect decodes a single file and prints its alpha diagnostics.
func runInspect(filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil || info.IsDir() {
		return fmt.Errorf("file does not exist: %s", filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", filePath, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		fmt.Printf("Error decoding %s: %v\n", filePath, err)
		return nil
	}

	min, max := converter.AlphaRange(img)
	mode := converter.DecideMode(img)

	fmt.Printf("File: %s\n", filePath)
	fmt.Printf("Format: %s\n", format)
	fmt.Printf("Size: %dx%d\n", img.Bounds().Dx(), img.Bounds().Dy())
	fmt.Printf("Alpha channel: %v\n", converter.HasAlphaChannel(img))
	fmt.Printf("Alpha range: [%d, %d]\n", min, max)
	fmt.Printf("Encode mode: %s\n", mode)

	return nil
}

// loadConfig loads configuration and applies CLI overrides.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	if sourceDir != "" {
		cfg.SourceDirectory = sourceDir
	}
	if len(args) > 0 {
		cfg.SourceDirectory = args[0]
	}

	if cmd.Flags().Changed("quality") {
		cfg.Conversion.Quality = quality
	}
	if cmd.Flags().Changed("lossless") {
		cfg.Conversion.Lossless = lossless
	}
	if cmd.Flags().Changed("max-width") {
		cfg.Conversion.MaxWidth = maxWidth
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateSourceDirectory(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setupLogger configures and returns a logger.
func setupLogger(cfg *config.Config) *logrus.Logger {
	loggerCfg := logger.DefaultConfig()
	loggerCfg.Level = cfg.Logging.Level
	loggerCfg.FilePath = cfg.Logging.FilePath
	loggerCfg.MaxSize = cfg.Logging.MaxSize
	loggerCfg.MaxBackups = cfg.Logging.MaxBackups
	loggerCfg.MaxAge = cfg.Logging.MaxAge
	loggerCfg.Compress = cfg.Logging.Compress
	loggerCfg.Console = !quiet

	if verbose {
		loggerCfg.Level = "debug"
	}
	if quiet {
		loggerCfg.Level = "error"
	}

	log, err := logger.NewLogger(loggerCfg)
	if err != nil {
		log = logrus.New()
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// printHeader prints the run banner with the effective settings.
func printHeader(cfg *config.Config, dryRun bool) {
	line := strings.Repeat("=", 30)
	fmt.Println("PNG to WebP Converter")
	fmt.Println(line)
	fmt.Printf("Directory: %s\n", cfg.SourceDirectory)
	if cfg.Conversion.Lossless {
		fmt.Println("Quality: Lossless")
	} else {
		fmt.Printf("Quality: %d\n", cfg.Conversion.Quality)
	}
	if cfg.Conversion.MaxWidth > 0 {
		fmt.Printf("Max width: %d\n", cfg.Conversion.MaxWidth)
	}
	if dryRun {
		fmt.Println("Mode: scan (no files will be written)")
	}
	fmt.Println(line)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
