// Package main provides the CLI entrypoint for vocabquest.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/vocabquest/internal/auth"
	"github.com/verte-zerg/vocabquest/internal/config"
	"github.com/verte-zerg/vocabquest/internal/game"
	"github.com/verte-zerg/vocabquest/internal/generator"
	"github.com/verte-zerg/vocabquest/internal/model"
	"github.com/verte-zerg/vocabquest/internal/report"
	"github.com/verte-zerg/vocabquest/internal/store"
	"github.com/verte-zerg/vocabquest/internal/tui"
	"github.com/verte-zerg/vocabquest/internal/vocab"
)

const defaultWeakFactor = 2.0

var (
	playLesson        string
	playLessonsPath   string
	playSpellingCount int
	playSingleCount   int
	playDualCount     int
	playDiceMax       int
	playWeakFactor    float64
	playLogFile       string
	playSeed          int64
	playDebug         bool

	dbPath string

	cardsLesson string
	cardsCount  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vocabquest",
		Short:         "Classroom vocabulary game: spelling and EN-CN matching",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "lesson catalogue database")
	rootCmd.PersistentFlags().StringVar(&playLessonsPath, "lessons", "", "TOML lesson catalogue (overrides the database)")

	rootCmd.Flags().StringVar(&playLesson, "lesson", "", "lesson key to preselect, e.g. B3-L1")
	rootCmd.Flags().IntVar(&playSpellingCount, "spelling-count", game.DefaultSpellingCount, "questions per spelling session")
	rootCmd.Flags().IntVar(&playSingleCount, "single-count", game.DefaultSingleCount, "pairs per single-player round")
	rootCmd.Flags().IntVar(&playDualCount, "dual-count", game.DefaultDualCount, "pairs per duel")
	rootCmd.Flags().IntVar(&playDiceMax, "dice-max", game.DefaultDiceMax, "highest dice value in duel setup")
	rootCmd.Flags().Float64Var(&playWeakFactor, "weak-factor", defaultWeakFactor, "extra weight for misspelled words")
	rootCmd.Flags().StringVar(&playLogFile, "log-file", config.DefaultLogPath(), "log file path")
	rootCmd.Flags().Int64Var(&playSeed, "seed", 0, "random seed (0 picks one)")
	rootCmd.Flags().BoolVar(&playDebug, "debug", false, "log screen transitions")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLessonsCmd())
	rootCmd.AddCommand(newCardsCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newHashPasswordCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadEnv(config.DefaultEnvPath(), ".env")
	if err != nil {
		return err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lesson", &playLesson, fileCfg.Game.Lesson)
	applyStringConfig(cmd, "lessons", &playLessonsPath, fileCfg.Game.Lessons)
	applyIntConfig(cmd, "spelling-count", &playSpellingCount, fileCfg.Game.SpellingCount)
	applyIntConfig(cmd, "single-count", &playSingleCount, fileCfg.Game.SingleCount)
	applyIntConfig(cmd, "dual-count", &playDualCount, fileCfg.Game.DualCount)
	applyIntConfig(cmd, "dice-max", &playDiceMax, fileCfg.Game.DiceMax)
	applyFloatConfig(cmd, "weak-factor", &playWeakFactor, fileCfg.Game.WeakFactor)
	applyStringConfig(cmd, "log-file", &playLogFile, fileCfg.Game.LogFile)
	applyInt64Config(cmd, "seed", &playSeed, fileCfg.Game.Seed)
	var passwordHash string
	if fileCfg.Game.PasswordHash != nil {
		passwordHash = strings.TrimSpace(*fileCfg.Game.PasswordHash)
	}
	if env.LogFile != "" && !cmd.Flags().Changed("log-file") {
		playLogFile = env.LogFile
	}

	settings := model.Settings{
		Lesson:        strings.TrimSpace(playLesson),
		LessonsPath:   playLessonsPath,
		SpellingCount: playSpellingCount,
		SingleCount:   playSingleCount,
		DualCount:     playDualCount,
		DiceMax:       playDiceMax,
		WeakFactor:    playWeakFactor,
		PasswordHash:  passwordHash,
		LogFile:       playLogFile,
		Seed:          playSeed,
	}
	if err := validateSettings(settings); err != nil {
		return err
	}

	logger, err := newLogger(settings.LogFile, playDebug)
	if err != nil {
		return err
	}
	defer func() {
		if serr := logger.Sync(); serr != nil {
			// Best-effort flush of the log file.
			_ = serr
		}
	}()

	lessons, source, err := loadLessons(cmd.Context(), settings.LessonsPath, dbPath)
	if err != nil {
		return err
	}
	if settings.Lesson != "" {
		if _, ok := vocab.Find(lessons, settings.Lesson); !ok {
			return fmt.Errorf("unknown lesson %q (run: vocabquest lessons)", settings.Lesson)
		}
	}

	gate, err := buildGate(settings.PasswordHash, env.Password)
	if err != nil {
		return err
	}

	gen := generator.New()
	if settings.Seed != 0 {
		gen = generator.NewWithSeed(settings.Seed)
	}
	engine := game.New(game.Config{
		Lesson:        settings.Lesson,
		SpellingCount: settings.SpellingCount,
		SingleCount:   settings.SingleCount,
		DualCount:     settings.DualCount,
		DiceMax:       settings.DiceMax,
		WeakFactor:    settings.WeakFactor,
	}, lessons, gen, logger)

	logger.Info("game started",
		zap.String("source", source),
		zap.Int("lessons", len(lessons)),
		zap.Bool("password", gate.Enabled()),
	)
	program := tea.NewProgram(tui.NewModel(engine, gate, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	logger.Info("game closed", zap.Stringer("screen", engine.Kind()))
	return printSummary(cmd, engine)
}

// printSummary writes the results that would otherwise vanish with the alt screen.
func printSummary(cmd *cobra.Command, engine *game.Engine) error {
	out := cmd.OutOrStdout()
	if entries := engine.Leaderboard(); len(entries) > 0 {
		if err := report.RenderLeaderboard(out, entries); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if review, ok := engine.State().(*game.SpellingReviewScreen); ok {
		if err := report.RenderReview(out, review.Wrong); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func buildGate(hash, password string) (*auth.Gate, error) {
	if hash != "" {
		gate, err := auth.NewGate(hash)
		if err != nil {
			return nil, fmt.Errorf("invalid password-hash in config: %w", err)
		}
		return gate, nil
	}
	return auth.NewGateFromPassword(password)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLessonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lessons",
		Short: "List available lessons",
		Args:  cobra.NoArgs,
		RunE:  runLessonsCmd,
	}
}

func runLessonsCmd(cmd *cobra.Command, _ []string) error {
	if err := applyCatalogueConfig(cmd); err != nil {
		return err
	}
	lessons, source, err := loadLessons(cmd.Context(), playLessonsPath, dbPath)
	if err != nil {
		return err
	}
	logErrf("Lessons from %s\n", source)
	if err := report.RenderLessons(cmd.OutOrStdout(), lessons, report.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newCardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Deal a matching card set without playing",
		Args:  cobra.NoArgs,
		RunE:  runCardsCmd,
	}
	cmd.Flags().StringVar(&cardsLesson, "lesson", "", "lesson key (required)")
	cmd.Flags().IntVar(&cardsCount, "count", game.DefaultSingleCount, "number of pairs")
	cmd.Flags().Int64Var(&playSeed, "seed", 0, "random seed (0 picks one)")
	return cmd
}

func runCardsCmd(cmd *cobra.Command, _ []string) error {
	if cardsLesson == "" {
		return fmt.Errorf("--lesson is required")
	}
	if cardsCount < game.MinCount || cardsCount > game.MaxCount {
		return fmt.Errorf("--count must be between %d and %d", game.MinCount, game.MaxCount)
	}
	if err := applyCatalogueConfig(cmd); err != nil {
		return err
	}
	lessons, _, err := loadLessons(cmd.Context(), playLessonsPath, dbPath)
	if err != nil {
		return err
	}
	lesson, ok := vocab.Find(lessons, cardsLesson)
	if !ok {
		return fmt.Errorf("unknown lesson %q (run: vocabquest lessons)", cardsLesson)
	}
	gen := generator.New()
	if playSeed != 0 {
		gen = generator.NewWithSeed(playSeed)
	}
	cards := gen.MatchingCards(cardsCount, lesson.Vocab)
	if len(cards)/2 < cardsCount {
		logErrf("Lesson %s has only %d distinct pairs\n", lesson.Key, len(cards)/2)
	}
	if err := report.RenderCards(cmd.OutOrStdout(), cards, report.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a TOML lesson catalogue into the database",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	lessons, err := vocab.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load lessons: %w", err)
	}
	logPath, err := resolveLogFile()
	if err != nil {
		return err
	}
	logger, err := newLogger(logPath, playDebug)
	if err != nil {
		return err
	}
	defer func() {
		if serr := logger.Sync(); serr != nil {
			// Best-effort flush of the log file.
			_ = serr
		}
	}()
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if err := st.ImportLessons(cmd.Context(), lessons, time.Now()); err != nil {
		logger.Error("import failed", zap.String("file", args[0]), zap.Error(err))
		return fmt.Errorf("failed to import lessons: %w", err)
	}
	logger.Info("lessons imported", zap.String("file", args[0]), zap.Int("lessons", len(lessons)), zap.String("db", dbPath))
	logErrf("Imported %d lessons into %s\n", len(lessons), dbPath)
	return nil
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove KEY...",
		Short: "Remove imported lessons from the database",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRemoveCmd,
	}
}

func runRemoveCmd(cmd *cobra.Command, args []string) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	n, err := st.DeleteLessons(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("failed to remove lessons: %w", err)
	}
	logErrf("Removed %d of %d lessons\n", n, len(args))
	return nil
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [PASSWORD]",
		Short: "Print a bcrypt hash for the password-hash config value",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHashPasswordCmd,
	}
}

func runHashPasswordCmd(cmd *cobra.Command, args []string) error {
	var password string
	switch {
	case len(args) == 1:
		password = args[0]
	case term.IsTerminal(int(os.Stdin.Fd())):
		logErrf("Password: ")
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		logErrln()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(b)
	default:
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), hash); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# vocabquest configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# lesson = "B3-L1"        # Lesson preselected on the home screen
# lessons = "lessons.toml" # Catalogue file used instead of the database
# spelling-count = %d      # Questions per spelling session (1-50)
# single-count = %d        # Pairs per single-player round (1-50)
# dual-count = %d           # Pairs per duel (1-50)
# dice-max = %d            # Highest dice value in duel setup (1-%d)
# weak-factor = %.1f       # Extra weight for misspelled words
# password-hash = ""       # bcrypt hash from: vocabquest hash-password
# log-file = %q
# seed = 0                 # Random seed (0 picks one)
`,
		game.DefaultSpellingCount,
		game.DefaultSingleCount,
		game.DefaultDualCount,
		game.DefaultDiceMax,
		game.MaxDice,
		defaultWeakFactor,
		config.DefaultLogPath(),
	)
}

func validateSettings(s model.Settings) error {
	counts := []struct {
		flag  string
		value int
	}{
		{"--spelling-count", s.SpellingCount},
		{"--single-count", s.SingleCount},
		{"--dual-count", s.DualCount},
	}
	for _, c := range counts {
		if c.value < game.MinCount || c.value > game.MaxCount {
			return fmt.Errorf("%s must be between %d and %d", c.flag, game.MinCount, game.MaxCount)
		}
	}
	if s.DiceMax < 1 || s.DiceMax > game.MaxDice {
		return fmt.Errorf("--dice-max must be between 1 and %d", game.MaxDice)
	}
	if s.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if s.LogFile == "" {
		return fmt.Errorf("--log-file must not be empty")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
