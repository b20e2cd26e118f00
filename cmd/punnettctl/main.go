package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"punnettlab/internal/config"
	"punnettlab/internal/exam"
	"punnettlab/internal/logger"
	"punnettlab/internal/narration"
	"punnettlab/internal/render"
	"punnettlab/pkg/punnett"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cleanup, err := logger.Setup(logger.Config{Dir: cfg.LogDir, Debug: cfg.Debug})
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() {
		_ = cleanup()
	}()
	if cfg.Debug && logger.Path() != "" {
		fmt.Fprintf(os.Stderr, "logging to %s\n", logger.Path())
	}

	switch args[0] {
	case "traits":
		return runTraits(ctx, cfg, args[1:], stdout)
	case "cross":
		return runCross(ctx, cfg, args[1:], stdout)
	case "history":
		return runHistory(ctx, cfg, args[1:], stdout)
	case "show":
		return runShow(ctx, cfg, args[1:], stdout)
	case "export":
		return runExport(ctx, cfg, args[1:], stdout)
	case "teach":
		return runTeach(ctx, cfg, args[1:], stdout)
	case "exam":
		return runExam(ctx, cfg, args[1:], stdout)
	case "practice":
		return runPractice(ctx, cfg, args[1:], stdout)
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

type clientFlags struct {
	storeKind    *string
	dbPath       *string
	artifactsDir *string
	exportsDir   *string
	traitsFile   *string
	locale       *string
	policy       *string
}

func registerClientFlags(fs *flag.FlagSet, cfg config.Config) clientFlags {
	return clientFlags{
		storeKind:    fs.String("store", cfg.StoreKind, "store backend: memory|sqlite"),
		dbPath:       fs.String("db-path", cfg.DBPath, "sqlite database path"),
		artifactsDir: fs.String("artifacts-dir", cfg.ArtifactsDir, "cross artifacts directory"),
		exportsDir:   fs.String("exports-dir", cfg.ExportsDir, "default export directory"),
		traitsFile:   fs.String("traits-file", cfg.TraitsFile, "optional YAML trait catalog"),
		locale:       fs.String("locale", cfg.Locale, "narration locale, e.g. en or es"),
		policy:       fs.String("policy", cfg.Policy, "phenotype policy: permissive|strict"),
	}
}

func (f clientFlags) open() (*punnett.Client, error) {
	return punnett.New(punnett.Options{
		StoreKind:    *f.storeKind,
		DBPath:       *f.dbPath,
		ArtifactsDir: *f.artifactsDir,
		ExportsDir:   *f.exportsDir,
		TraitsFile:   *f.traitsFile,
		Locale:       *f.locale,
		Policy:       *f.policy,
		Logger:       logger.L(),
	})
}

func runTraits(_ context.Context, cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("traits", flag.ContinueOnError)
	cf := registerClientFlags(fs, cfg)
	jsonOut := fs.Bool("json", false, "emit traits as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := cf.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if *jsonOut {
		return writeJSON(stdout, client.Traits())
	}
	for _, t := range client.Traits() {
		fmt.Fprintf(stdout, "name=%q dominant=%c(%s) recessive=%c(%s)\n", t.Name, t.DominantAllele, t.DominantLabel, t.RecessiveAllele, t.RecessiveLabel)
	}
	return nil
}

func runCross(ctx context.Context, cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("cross", flag.ContinueOnError)
	cf := registerClientFlags(fs, cfg)
	traitName := fs.String("trait", "Height", "trait name")
	p1 := fs.String("p1", "", "parent 1 (male) genotype; defaults to the trait heterozygote")
	p2 := fs.String("p2", "", "parent 2 (female) genotype; defaults to the trait heterozygote")
	jsonOut := fs.Bool("json", false, "emit the cross record as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := cf.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	result, err := client.Cross(ctx, punnett.CrossRequest{Trait: *traitName, Parent1: *p1, Parent2: *p2})
	if err != nil {
		return err
	}
	if *jsonOut {
		return writeJSON(stdout, result.Record)
	}

	fmt.Fprintln(stdout, render.Square(result.Record.Square, result.Record.Trait))
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, render.Stats(result.Record.Stats))
	fmt.Fprintf(stdout, "\nsaved cross_id=%s artifacts=%s\n", result.Record.ID, result.ArtifactsDir)
	return nil
}

func runHistory(ctx context.Context, cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	cf := registerClientFlags(fs, cfg)
	limit := fs.Int("limit", 20, "max crosses to list")
	jsonOut := fs.Bool("json", false, "emit history as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := cf.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	items, err := client.History(ctx, *limit)
	if err != nil {
		return err
	}
	if *jsonOut {
		return writeJSON(stdout, items)
	}
	if len(items) == 0 {
		fmt.Fprintln(stdout, "no crosses found")
		return nil
	}
	for _, item := range items {
		fmt.Fprintf(stdout, "cross_id=%s created_at=%s trait=%q parents=%sx%s genotypes=%s phenotypes=%s\n",
			item.ID, item.CreatedAtUTC, item.TraitName, item.Parent1, item.Parent2, item.GenotypeRatio, item.PhenotypeRatio)
	}
	return nil
}

func runShow(ctx context.Context, cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	cf := registerClientFlags(fs, cfg)
	crossID := fs.String("id", "", "cross id; defaults to the most recent cross")
	jsonOut := fs.Bool("json", false, "emit the cross record as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := cf.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	record, err := client.Show(ctx, *crossID)
	if err != nil {
		return err
	}
	if *jsonOut {
		return writeJSON(stdout, record)
	}
	fmt.Fprintf(stdout, "cross_id=%s created_at=%s policy=%s\n\n", record.ID, record.CreatedAtUTC, record.Policy)
	fmt.Fprintln(stdout, render.Square(record.Square, record.Trait))
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, render.Stats(record.Stats))
	return nil
}

func runExport(ctx context.Context, cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	cf := registerClientFlags(fs, cfg)
	crossID := fs.String("id", "", "cross id")
	latest := fs.Bool("latest", false, "export the most recent cross")
	outDir := fs.String("out", "", "export output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *crossID != "" && *latest {
		return errors.New("use either --id or --latest, not both")
	}
	if *crossID == "" && !*latest {
		return errors.New("export requires --id or --latest")
	}

	client, err := cf.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Export(ctx, punnett.ExportRequest{CrossID: *crossID, Latest: *latest, OutDir: *outDir})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "exported cross_id=%s to=%s\n", summary.CrossID, summary.Directory)
	return nil
}

func runTeach(ctx context.Context, cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("teach", flag.ContinueOnError)
	cf := registerClientFlags(fs, cfg)
	traitName := fs.String("trait", "Height", "trait name")
	p1 := fs.String("p1", "", "parent 1 (male) genotype")
	p2 := fs.String("p2", "", "parent 2 (female) genotype")
	speed := fs.Float64("speed", cfg.Speed, "playback speed multiplier")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *speed <= 0 {
		return errors.New("speed must be > 0")
	}

	client, err := cf.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	_, err = client.Teach(ctx, punnett.LessonRequest{
		Trait:   *traitName,
		Parent1: *p1,
		Parent2: *p2,
		Speed:   *speed,
	}, narration.WriterSpeaker{W: stdout})
	if errors.Is(err, context.Canceled) || errors.Is(err, narration.ErrStopped) {
		fmt.Fprintln(stdout, "lesson stopped")
		return nil
	}
	return err
}

func runExam(_ context.Context, cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("exam", flag.ContinueOnError)
	cf := registerClientFlags(fs, cfg)
	answersFlag := fs.String("answers", "", "answers to grade as id=option pairs, e.g. 1=2,2=1,3=0")
	jsonOut := fs.Bool("json", false, "emit questions or grading result as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := cf.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if *answersFlag == "" {
		questions := client.ExamQuestions()
		if *jsonOut {
			return writeJSON(stdout, questions)
		}
		printQuestions(stdout, questions)
		return nil
	}

	answers, err := parseAnswers(*answersFlag)
	if err != nil {
		return err
	}
	result := client.Grade(answers)
	if *jsonOut {
		return writeJSON(stdout, result)
	}
	for _, o := range result.Outcomes {
		verdict := "wrong"
		switch {
		case !o.Answered:
			verdict = "unanswered"
		case o.Correct:
			verdict = "correct"
		}
		fmt.Fprintf(stdout, "question=%d %s awarded=%d\n  %s\n", o.QuestionID, verdict, o.Awarded, o.Explanation)
	}
	fmt.Fprintf(stdout, "score=%d/%d (%.1f%%)\n", result.Score, result.MaxScore, result.Percent())
	return nil
}

func runPractice(_ context.Context, cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("practice", flag.ContinueOnError)
	cf := registerClientFlags(fs, cfg)
	trait := fs.String("trait", "", "trait name (default Height)")
	answer := fs.String("answer", "", "offspring genotype to check; omit to see the question")
	skip := fs.Bool("skip", false, "skip the question and show the expected genotypes")
	jsonOut := fs.Bool("json", false, "emit the question or feedback as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *skip && *answer != "" {
		return errors.New("use either --answer or --skip")
	}

	client, err := cf.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if *answer == "" && !*skip {
		quiz, err := client.Practice(*trait)
		if err != nil {
			return err
		}
		if *jsonOut {
			return writeJSON(stdout, quiz)
		}
		fmt.Fprintln(stdout, quiz.Prompt())
		fmt.Fprintf(stdout, "options: %s\n", strings.Join(quiz.Options, " "))
		return nil
	}

	_, feedback, err := client.AnswerPractice(*trait, *answer)
	if err != nil {
		return err
	}
	if *jsonOut {
		return writeJSON(stdout, feedback)
	}
	fmt.Fprintln(stdout, feedback.Message)
	if feedback.Skipped {
		fmt.Fprintf(stdout, "expected: %s\n", strings.Join(feedback.Expected, " "))
	}
	return nil
}

func printQuestions(w io.Writer, questions []exam.Question) {
	for _, q := range questions {
		fmt.Fprintf(w, "%d. %s [%d marks]\n", q.ID, q.Text, q.Marks)
		for i, option := range q.Options {
			fmt.Fprintf(w, "   %d) %s\n", i, option)
		}
	}
	fmt.Fprintln(w, "\nviva:")
	for _, prompt := range exam.VivaPrompts() {
		fmt.Fprintf(w, " - %s\n", prompt)
	}
}

func parseAnswers(raw string) (map[int]int, error) {
	answers := make(map[int]int)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idText, optionText, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid answer %q: expected id=option", pair)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idText))
		if err != nil {
			return nil, fmt.Errorf("invalid question id %q: %w", idText, err)
		}
		option, err := strconv.Atoi(strings.TrimSpace(optionText))
		if err != nil {
			return nil, fmt.Errorf("invalid option %q: %w", optionText, err)
		}
		answers[id] = option
	}
	return answers, nil
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: punnettctl <traits|cross|history|show|export|teach|exam|practice> [flags]", msg)
}
