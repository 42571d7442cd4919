package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/gui"
	"github.com/san-kum/physlab/internal/lab"
	"github.com/san-kum/physlab/internal/logging"
	"github.com/san-kum/physlab/internal/params"
	"github.com/san-kum/physlab/internal/storage"
	"github.com/san-kum/physlab/internal/tui"
	"github.com/san-kum/physlab/internal/tutor"
	"github.com/san-kum/physlab/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logFile    string
	startLab   string
	preset     string
	sets       map[string]string
	dt         float64
	duration   float64
	at         float64
	width      int
	height     int
	cellsW     int
	cellsH     int
	column     string
	xColumn    string
	yColumn    string
	output     string
	grade      int
	grids      []string
	noSave     bool
)

// main registers the physlab commands. With no subcommand it opens the
// terminal UI.
func main() {
	rootCmd := &cobra.Command{
		Use:           "physlab",
		Short:         "interactive physics labs for FSc students",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory for saved runs (default from config)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.Flags().StringVar(&startLab, "lab", "", "open this lab straight away")

	labFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&preset, "preset", "", "use preset parameters")
		c.Flags().StringToStringVar(&sets, "set", nil, "parameter overrides, e.g. --set speed=40,angle=30")
	}
	sampleFlags := func(c *cobra.Command) {
		c.Flags().Float64Var(&dt, "dt", config.DefaultDt, "sample interval (s)")
		c.Flags().Float64Var(&duration, "time", config.DefaultDuration, "sample duration (s)")
	}

	labsCmd := &cobra.Command{
		Use:   "labs",
		Short: "list labs and their parameters",
		RunE:  listLabs,
	}

	evalCmd := &cobra.Command{
		Use:   "eval [lab]",
		Short: "print the state and derived quantities of a lab",
		Args:  cobra.ExactArgs(1),
		RunE:  evalLab,
	}
	labFlags(evalCmd)
	evalCmd.Flags().Float64Var(&at, "at", 0, "simulated time (s)")

	runCmd := &cobra.Command{
		Use:   "run [lab]",
		Short: "sample a lab over time and save the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runLab,
	}
	labFlags(runCmd)
	sampleFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	renderCmd := &cobra.Command{
		Use:   "render [lab]",
		Short: "draw a lab to an SVG file",
		Args:  cobra.ExactArgs(1),
		RunE:  renderLab,
	}
	labFlags(renderCmd)
	renderCmd.Flags().Float64Var(&at, "at", 0, "simulated time (s)")
	renderCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <lab>.svg)")
	renderCmd.Flags().IntVar(&width, "width", 700, "image width")
	renderCmd.Flags().IntVar(&height, "height", 400, "image height")

	watchCmd := &cobra.Command{
		Use:   "watch [lab]",
		Short: "animate a lab in the terminal without the full UI",
		Args:  cobra.ExactArgs(1),
		RunE:  watchLab,
	}
	labFlags(watchCmd)
	watchCmd.Flags().Float64Var(&duration, "time", 10, "wall-clock seconds to run")
	watchCmd.Flags().IntVar(&cellsW, "width", 80, "canvas width in cells")
	watchCmd.Flags().IntVar(&cellsH, "height", 24, "canvas height in cells")

	sweepCmd := &cobra.Command{
		Use:   "sweep [lab] [param] [quantity]",
		Short: "step a parameter across its range and tabulate a derived quantity",
		Args:  cobra.ExactArgs(3),
		RunE:  sweepLab,
	}
	labFlags(sweepCmd)
	sweepCmd.Flags().Float64("min", 0, "first value (default parameter minimum)")
	sweepCmd.Flags().Float64("max", 0, "last value (default parameter maximum)")
	sweepCmd.Flags().Int("steps", 10, "number of values")

	searchCmd := &cobra.Command{
		Use:   "search [lab] [quantity] [target]",
		Short: "grid search parameters for a derived quantity closest to target",
		Args:  cobra.ExactArgs(3),
		RunE:  searchLab,
	}
	labFlags(searchCmd)
	searchCmd.Flags().StringArrayVar(&grids, "grid", nil, "parameter range name=min:max:step (repeatable)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot saved run columns",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "", "plot only this column")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return storage.New(cfg.DataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis and phase portrait of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&xColumn, "x", "", "phase portrait x column (default first state column)")
	analyzeCmd.Flags().StringVar(&yColumn, "y", "", "phase portrait y column (default second state column)")

	presetsCmd := &cobra.Command{
		Use:   "presets [lab]",
		Short: "list available presets for a lab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for lab: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, name := range presets {
				p := config.GetPreset(args[0], name)
				fmt.Printf("  %-14s %s\n", name, formatValues(p.Params))
			}
			return nil
		},
	}

	syllabusCmd := &cobra.Command{
		Use:   "syllabus [chapter]",
		Short: "list syllabus chapters, or show one by number or title",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showSyllabus,
	}
	syllabusCmd.Flags().IntVar(&grade, "grade", 0, "only chapters for this grade (11 or 12)")

	tutorCmd := &cobra.Command{
		Use:   "tutor [chapter]",
		Short: "chat with the AI tutor; a chapter opens with an explanation of it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTutor,
	}

	quizCmd := &cobra.Command{
		Use:   "quiz [topic]",
		Short: "take a generated multiple choice quiz",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runQuiz,
	}

	guiCmd := &cobra.Command{
		Use:   "gui [lab]",
		Short: "open the labs in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			host := lab.NewHost(lab.NewRegistry(), log)
			return gui.Run(host, cfg, name, log)
		},
	}

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "run a scripted lab scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	rootCmd.AddCommand(labsCmd, evalCmd, runCmd, renderCmd, watchCmd, sweepCmd, searchCmd, listCmd, plotCmd,
		exportJSONCmd, analyzeCmd, presetsCmd, syllabusCmd, tutorCmd, quizCmd, guiCmd, scriptCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// the terminal belongs to bubbletea, so logs only go to a file
	log, closeLog, err := newLogger(nil)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	name := startLab
	if name == "" && configFile != "" {
		name = cfg.Lab
	}
	deps := tui.Deps{
		Host:   lab.NewHost(lab.NewRegistry(), log),
		Tutor:  newTutor(ctx, cfg, log),
		Store:  storage.New(cfg.DataDir),
		Config: cfg,
		Log:    log,
	}
	return tui.Run(ctx, deps, name)
}

// loadConfig reads --config over the defaults and lays changed flags on
// top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Lookup("dt") != nil && flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Lookup("time") != nil && flags.Changed("time") {
		cfg.Duration = duration
	}
	viz.SetTheme(cfg.Theme)
	return cfg, nil
}

// newLogger writes JSON logs to --log-file when given, otherwise to w. A
// nil w discards.
func newLogger(w io.Writer) (*slog.Logger, func(), error) {
	level := logging.LevelFromEnv(logLevel)
	if logFile == "" {
		if w == nil {
			return logging.Discard(), func() {}, nil
		}
		return logging.New(w, level), func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(f, level), func() { f.Close() }, nil
}

// newTutor builds the tutor service. Without an API key it still works and
// answers with the unavailable message.
func newTutor(ctx context.Context, cfg *config.Config, log *slog.Logger) *tutor.Service {
	opts := tutor.Options{
		Timeout:     cfg.AI.Timeout,
		QuizSize:    cfg.AI.QuizSize,
		MaxFailures: cfg.AI.MaxFailures,
		Cooldown:    cfg.AI.Cooldown,
	}
	backend, err := tutor.NewGemini(ctx, cfg.APIKey(), cfg.AI.Model)
	if err != nil {
		log.Warn("tutor backend unavailable", "env", cfg.AI.APIKeyEnv, "error", err)
		return tutor.NewService(nil, opts, log)
	}
	return tutor.NewService(backend, opts, log)
}

// buildLab makes a standalone lab with parameters applied in order: config
// file (when it names this lab), preset, then --set.
func buildLab(cmd *cobra.Command, cfg *config.Config, name string, log *slog.Logger) (*lab.Lab, error) {
	def, err := lab.NewRegistry().Get(name)
	if err != nil {
		return nil, err
	}
	l := lab.New(def, log)
	if err := applyParams(cmd, l, cfg); err != nil {
		return nil, err
	}
	return l, nil
}

func applyParams(cmd *cobra.Command, l *lab.Lab, cfg *config.Config) error {
	if cfg.Lab == l.Name() {
		if err := l.Apply(cfg.Params); err != nil {
			return err
		}
	}
	if preset != "" {
		p := config.GetPreset(l.Name(), preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(l.Name()))
		}
		if err := l.Apply(p.Params); err != nil {
			return err
		}
		if p.Duration > 0 && !cmd.Flags().Changed("time") {
			cfg.Duration = p.Duration
		}
	}
	overrides, err := parseSets(sets)
	if err != nil {
		return err
	}
	return l.Apply(overrides)
}

func parseSets(in map[string]string) (params.Values, error) {
	out := make(params.Values, len(in))
	for k, v := range in {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("--set %s: %w", k, err)
		}
		out[k] = f
	}
	return out, nil
}
