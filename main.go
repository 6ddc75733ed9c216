// get-fonts - font provisioning tool for the map style
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joeblew999/carto-fonts/internal/config"
	"github.com/joeblew999/carto-fonts/internal/errorx"
	"github.com/joeblew999/carto-fonts/internal/journal"
	"github.com/joeblew999/carto-fonts/internal/provision"
	paths "github.com/joeblew999/carto-fonts/pkg/config"
	"github.com/joeblew999/carto-fonts/pkg/font"
	"github.com/joeblew999/carto-fonts/pkg/log"
	"github.com/zeromicro/go-zero/core/logx"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "config":
		os.Exit(configCmd(os.Args[2:]))
	case "manifest":
		os.Exit(manifestCmd(os.Args[2:]))
	case "patch":
		os.Exit(patchCmd(os.Args[2:]))
	case "history":
		os.Exit(historyCmd(os.Args[2:]))
	case "version":
		fmt.Println("get-fonts " + version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`get-fonts - Font provisioning for the map style

Usage:
  get-fonts <command> [options]

Commands:
  config     Download the fonts of the YAML mapping and patch the stylesheet
  manifest   Download the fonts listed in the remote Noto manifest
  patch      Patch the stylesheet font lists without downloading
  history    Show recent runs from the journal
  version    Show version
  help       Show this help

Examples:
  get-fonts config -config=scripts/fonts.yaml -mss=style/fonts.mss
  get-fonts manifest -dir=./fonts -extras
  get-fonts history -journal=.data/get-fonts.db

Environment Variables:
  FONTDIR           Font output directory (default: ./fonts)
  FONTS_CONFIG      YAML mapping of scripts (default: scripts/fonts.yaml)
  FONTS_STYLESHEET  Stylesheet fragment (default: style/fonts.mss)`)
}

// commonFlags are shared by the commands that download fonts.
type commonFlags struct {
	dir       *string
	journal   *string
	rate      *float64
	timeout   *time.Duration
	userAgent *string
	verbose   *bool
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		dir:       fs.String("dir", paths.GetFontDir(), "Font output directory"),
		journal:   fs.String("journal", "", "SQLite run journal (disabled when empty)"),
		rate:      fs.Float64("rate", 0, "Maximum requests per second (0: unlimited)"),
		timeout:   fs.Duration("timeout", 0, "Abort the run after this duration (0: no limit)"),
		userAgent: fs.String("user-agent", font.DefaultUserAgent, "User-Agent sent to font sources"),
		verbose:   fs.Bool("v", false, "Verbose logging"),
	}
}

func (c commonFlags) downloader() *font.Downloader {
	return font.NewDownloader(
		font.WithUserAgent(*c.userAgent),
		font.WithRateLimit(*c.rate),
	)
}

func setupLogging(verbose bool) {
	logx.DisableStat()

	conf := logx.LogConf{
		ServiceName: "get-fonts",
		Mode:        "console",
		Encoding:    "plain",
		Level:       "info",
	}
	level := slog.LevelInfo
	if verbose {
		conf.Level = "debug"
		level = slog.LevelDebug
	}
	logx.MustSetup(conf)
	log.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func runContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

// execute runs one provisioning variant, records it in the journal and
// returns the process exit code.
func execute(common commonFlags, variant string, run func(context.Context) (*provision.Result, error)) int {
	setupLogging(*common.verbose)
	defer logx.Close()

	ctx, cancel := runContext(*common.timeout)
	defer cancel()

	runID := uuid.New().String()
	var j *journal.Journal
	if *common.journal != "" {
		var err error
		if j, err = journal.Open(*common.journal); err != nil {
			logx.Errorf("Error opening journal: %v", err)
			return 1
		}
		defer j.Close()

		if runID, err = j.StartRun(ctx, variant); err != nil {
			logx.Errorf("Error starting run: %v", err)
			return 1
		}
	}

	ctx = logx.ContextWithFields(ctx,
		logx.Field("run_id", runID),
		logx.Field("variant", variant),
	)

	start := time.Now()
	res, err := run(ctx)
	if res == nil {
		res = &provision.Result{}
	}
	reason := errorx.Reason(err)

	if j != nil {
		if jerr := j.FinishRun(context.WithoutCancel(ctx), runID, res.Files, reason, err); jerr != nil {
			logx.WithContext(ctx).Errorf("Error recording run: %v", jerr)
		}
	}

	if err != nil {
		logx.WithContext(ctx).Errorw("Provisioning failed",
			logx.Field("reason", reason),
			logx.Field("files", len(res.Files)),
			logx.Field("error", err.Error()))
		return errorx.ExitCode(err)
	}

	logx.WithContext(ctx).Infow("Provisioning finished",
		logx.Field("files", len(res.Files)),
		logx.Field("regular", len(res.RegularFonts)),
		logx.Field("bold", len(res.BoldFonts)),
		logx.Field("duration", time.Since(start).String()))
	return 0
}

func configCmd(args []string) int {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	common := addCommonFlags(fs)
	configFile := fs.String("config", paths.GetFontsConfigPath(), "YAML mapping of scripts to sources")
	stylesheet := fs.String("mss", paths.GetStylesheetPath(), "Stylesheet fragment to patch (empty: skip)")
	skipExtras := fs.Bool("skip-extras", false, "Skip the CJK, emoji and archive fonts")
	fs.Parse(args)

	c, err := config.Load(*configFile)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return 1
	}

	opts := provision.Options{
		FontDir:    *common.dir,
		Stylesheet: *stylesheet,
	}
	if !*skipExtras {
		opts.Extras = provision.DefaultExtras()
	}
	p := provision.New(common.downloader(), opts)

	return execute(common, "config", func(ctx context.Context) (*provision.Result, error) {
		return p.RunConfig(ctx, c)
	})
}

func manifestCmd(args []string) int {
	fs := flag.NewFlagSet("manifest", flag.ExitOnError)
	common := addCommonFlags(fs)
	manifestURL := fs.String("manifest-url", font.DefaultManifestURL, "Font manifest URL")
	manifestBase := fs.String("manifest-base", font.DefaultManifestBase, "Prefix of manifest file paths")
	extras := fs.Bool("extras", false, "Also fetch the CJK, emoji and archive fonts")
	fs.Parse(args)

	opts := provision.Options{
		FontDir:      *common.dir,
		ManifestURL:  *manifestURL,
		ManifestBase: *manifestBase,
	}
	if *extras {
		opts.Extras = provision.DefaultExtras()
	}
	p := provision.New(common.downloader(), opts)

	return execute(common, "manifest", p.RunManifest)
}

func patchCmd(args []string) int {
	fs := flag.NewFlagSet("patch", flag.ExitOnError)
	configFile := fs.String("config", paths.GetFontsConfigPath(), "YAML mapping of scripts to sources")
	stylesheet := fs.String("mss", paths.GetStylesheetPath(), "Stylesheet fragment to patch")
	fs.Parse(args)

	c, err := config.Load(*configFile)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return 1
	}

	p := provision.New(nil, provision.Options{Stylesheet: *stylesheet})
	res, err := p.PatchOnly(context.Background(), c)
	if err != nil {
		fmt.Printf("Error patching stylesheet: %v\n", err)
		return 1
	}

	fmt.Printf("✓ %s - %d regular, %d bold fonts\n", *stylesheet, len(res.RegularFonts), len(res.BoldFonts))
	return 0
}

func historyCmd(args []string) int {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	journalPath := fs.String("journal", "", "SQLite run journal")
	limit := fs.Int("n", 10, "Number of runs to show")
	fs.Parse(args)

	if *journalPath == "" {
		fmt.Println("Error: -journal is required")
		return 1
	}

	j, err := journal.Open(*journalPath)
	if err != nil {
		fmt.Printf("Error opening journal: %v\n", err)
		return 1
	}
	defer j.Close()

	ctx := context.Background()
	runs, err := j.RecentRuns(ctx, *limit)
	if err != nil {
		fmt.Printf("Error reading journal: %v\n", err)
		return 1
	}

	fmt.Printf("Runs in %s:\n", *journalPath)
	for _, run := range runs {
		files, err := j.Files(ctx, run.ID)
		if err != nil {
			fmt.Printf("Error reading files of %s: %v\n", run.ID, err)
			return 1
		}
		var size int64
		for _, f := range files {
			size += f.Size
		}

		line := fmt.Sprintf("  • %s %-8s %-9s %3d files (%s)", run.StartedAt, run.Variant, run.Status, len(files), formatBytes(size))
		if run.Reason.Valid {
			line += " " + run.Reason.String
		}
		fmt.Println(line)
	}
	return 0
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
