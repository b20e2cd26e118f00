// Package punnett is the public entry point for running, persisting, narrating and
// grading monohybrid crosses.
package punnett

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"punnettlab/internal/exam"
	"punnettlab/internal/genetics"
	"punnettlab/internal/model"
	"punnettlab/internal/narration"
	"punnettlab/internal/stats"
	"punnettlab/internal/storage"
	"punnettlab/internal/traits"
)

const (
	defaultArtifactsDir = "crosses"
	defaultExportsDir   = "exports"
	defaultDBPath       = "punnettlab.db"
	defaultHistoryLimit = 20

	// Fixed-width so timestamps sort lexically.
	createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

var (
	ErrCrossNotFound      = errors.New("cross not found")
	ErrTraitsFileNotFound = errors.New("traits file not found")
)

type Options struct {
	StoreKind    string
	DBPath       string
	ArtifactsDir string
	ExportsDir   string
	// TraitsFile is an optional YAML catalog merged over the built-in traits.
	TraitsFile string
	Locale     string
	// Policy is "permissive" or "strict"; see genetics.Policy.
	Policy string
	Logger *slog.Logger
}

type Client struct {
	store    storage.Store
	catalog  *traits.Catalog
	resolver genetics.Resolver
	locale   language.Tag
	log      *slog.Logger

	artifactsDir string
	exportsDir   string
	initialized  bool

	now   func() time.Time
	newID func() string
}

type CrossRequest struct {
	// Trait defaults to Height.
	Trait string
	// Parent1 and Parent2 default to the trait's heterozygote.
	Parent1 string
	Parent2 string
}

type CrossResult struct {
	Record       model.CrossRecord
	ArtifactsDir string
}

type ExportRequest struct {
	CrossID string
	Latest  bool
	OutDir  string
}

type ExportSummary struct {
	CrossID   string
	Directory string
}

type LessonRequest struct {
	Trait   string
	Parent1 string
	Parent2 string
	Speed   float64
	OnStep  func(index int, step narration.Step)
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	artifactsDir := opts.ArtifactsDir
	if artifactsDir == "" {
		artifactsDir = defaultArtifactsDir
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	policy, err := genetics.ParsePolicy(opts.Policy)
	if err != nil {
		return nil, err
	}
	locale, err := narration.ParseLocale(opts.Locale)
	if err != nil {
		return nil, err
	}

	catalog := traits.Default()
	if opts.TraitsFile != "" {
		loaded, err := traits.LoadFile(opts.TraitsFile)
		if traits.IsKind(err, traits.KindNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTraitsFileNotFound, opts.TraitsFile)
		}
		if err != nil {
			return nil, err
		}
		catalog.Merge(loaded)
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:        store,
		catalog:      catalog,
		resolver:     genetics.Resolver{Policy: policy},
		locale:       locale,
		log:          log,
		artifactsDir: artifactsDir,
		exportsDir:   exportsDir,
		now:          time.Now,
		newID:        uuid.NewString,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	c.initialized = true
	return nil
}

func (c *Client) Traits() []genetics.TraitConfig {
	return c.catalog.List()
}

// Cross runs, analyzes and persists one cross.
func (c *Client) Cross(ctx context.Context, req CrossRequest) (CrossResult, error) {
	if err := c.Init(ctx); err != nil {
		return CrossResult{}, err
	}

	trait, p1, p2, err := c.resolveParents(req.Trait, req.Parent1, req.Parent2)
	if err != nil {
		return CrossResult{}, err
	}

	square := genetics.Cross(p1, p2)
	offspring, err := c.resolver.Analyze(square.Grid, trait)
	if err != nil {
		return CrossResult{}, err
	}

	record := storage.Stamp(model.CrossRecord{
		ID:           c.newID(),
		Trait:        trait,
		Parent1:      p1.String(),
		Parent2:      p2.String(),
		Policy:       c.resolver.Policy.String(),
		Square:       square,
		Stats:        offspring,
		CreatedAtUTC: c.now().UTC().Format(createdAtLayout),
	})
	// Artifacts first, then the store, then the index: a failure leaves no listed cross.
	dir, err := stats.WriteCrossArtifacts(c.artifactsDir, record)
	if err != nil {
		return CrossResult{}, fmt.Errorf("write artifacts: %w", err)
	}
	if err := c.store.SaveCross(ctx, record); err != nil {
		c.discardArtifacts(dir)
		return CrossResult{}, fmt.Errorf("save cross: %w", err)
	}
	if err := stats.AppendIndex(c.artifactsDir, record.Summary()); err != nil {
		if derr := c.store.DeleteCross(ctx, record.ID); derr != nil {
			c.log.Error("cross.rollback_failed", "id", record.ID, "err", derr)
		}
		c.discardArtifacts(dir)
		return CrossResult{}, fmt.Errorf("append cross index: %w", err)
	}

	c.log.Info("cross.completed",
		"id", record.ID,
		"trait", trait.Name,
		"parent1", record.Parent1,
		"parent2", record.Parent2,
		"phenotype_ratio", offspring.Phenotypes.Ratio(),
	)
	return CrossResult{Record: record, ArtifactsDir: filepath.Clean(dir)}, nil
}

func (c *Client) discardArtifacts(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		c.log.Error("cross.artifacts_cleanup_failed", "dir", dir, "err", err)
	}
}

// History lists persisted crosses newest first.
func (c *Client) History(ctx context.Context, limit int) ([]model.CrossSummary, error) {
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	records, err := c.store.ListCrosses(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]model.CrossSummary, 0, len(records))
	for _, record := range records {
		out = append(out, record.Summary())
	}
	return out, nil
}

// Show returns one persisted cross. An empty id selects the most recent cross.
func (c *Client) Show(ctx context.Context, id string) (model.CrossRecord, error) {
	if err := c.Init(ctx); err != nil {
		return model.CrossRecord{}, err
	}
	if id == "" {
		records, err := c.store.ListCrosses(ctx, 1)
		if err != nil {
			return model.CrossRecord{}, err
		}
		if len(records) == 0 {
			return model.CrossRecord{}, ErrCrossNotFound
		}
		return records[0], nil
	}

	record, ok, err := c.store.GetCross(ctx, id)
	if err != nil {
		return model.CrossRecord{}, err
	}
	if !ok {
		return model.CrossRecord{}, fmt.Errorf("%w: %s", ErrCrossNotFound, id)
	}
	return record, nil
}

func (c *Client) Export(_ context.Context, req ExportRequest) (ExportSummary, error) {
	if req.CrossID != "" && req.Latest {
		return ExportSummary{}, errors.New("use either cross id or latest")
	}
	if req.CrossID == "" && !req.Latest {
		return ExportSummary{}, errors.New("export requires cross id or latest")
	}
	if req.OutDir == "" {
		req.OutDir = c.exportsDir
	}

	crossID := req.CrossID
	if crossID != "" {
		if err := stats.ValidateCrossID(crossID); err != nil {
			return ExportSummary{}, err
		}
	}
	if req.Latest {
		entries, err := stats.ListIndex(c.artifactsDir)
		if err != nil {
			return ExportSummary{}, err
		}
		if len(entries) == 0 {
			return ExportSummary{}, errors.New("no crosses available to export")
		}
		crossID = entries[0].ID
	}

	if _, ok, err := stats.ReadCrossArtifacts(c.artifactsDir, crossID); err != nil {
		return ExportSummary{}, fmt.Errorf("check cross %s: %w", crossID, err)
	} else if !ok {
		return ExportSummary{}, fmt.Errorf("%w: %s", ErrCrossNotFound, crossID)
	}

	exportedDir, err := stats.ExportCross(c.artifactsDir, crossID, req.OutDir)
	if err != nil {
		return ExportSummary{}, err
	}
	c.log.Info("cross.exported", "id", crossID, "dir", exportedDir)
	return ExportSummary{CrossID: crossID, Directory: filepath.Clean(exportedDir)}, nil
}

// BuildLesson prepares the narrated walkthrough of a cross without playing it.
func (c *Client) BuildLesson(req LessonRequest) (narration.Lesson, error) {
	trait, p1, p2, err := c.resolveParents(req.Trait, req.Parent1, req.Parent2)
	if err != nil {
		return narration.Lesson{}, err
	}
	return narration.LessonScript(trait, p1, p2, c.locale), nil
}

// Teach builds the lesson and plays it through speaker until it ends or ctx is done.
func (c *Client) Teach(ctx context.Context, req LessonRequest, speaker narration.Speaker) (narration.Lesson, error) {
	lesson, err := c.BuildLesson(req)
	if err != nil {
		return narration.Lesson{}, err
	}

	player := narration.NewPlayer(lesson.Steps)
	c.log.Info("lesson.started", "trait", lesson.Trait.Name, "steps", player.Len())
	err = narration.Run(ctx, player, speaker, narration.RunOptions{Speed: req.Speed, OnStep: req.OnStep})
	if err != nil {
		c.log.Info("lesson.interrupted", "step", player.Index(), "err", err)
		return lesson, err
	}
	c.log.Info("lesson.finished", "trait", lesson.Trait.Name)
	return lesson, nil
}

func (c *Client) ExamQuestions() []exam.Question {
	return exam.Questions()
}

func (c *Client) Grade(answers map[int]int) exam.Result {
	result := exam.Grade(exam.Questions(), answers)
	c.log.Info("exam.graded", "score", result.Score, "max_score", result.MaxScore)
	return result
}

// Practice returns the quick quiz for a trait: its homozygous dominant parent crossed
// with its homozygous recessive parent. An empty trait selects Height.
func (c *Client) Practice(traitName string) (exam.Practice, error) {
	if traitName == "" {
		traitName = genetics.HeightTrait.Name
	}
	trait, err := c.catalog.Get(traitName)
	if err != nil {
		return exam.Practice{}, err
	}
	return exam.QuickQuiz(trait)
}

// AnswerPractice checks one quick quiz answer. An empty answer skips the question.
func (c *Client) AnswerPractice(traitName, answer string) (exam.Practice, exam.Feedback, error) {
	quiz, err := c.Practice(traitName)
	if err != nil {
		return exam.Practice{}, exam.Feedback{}, err
	}
	feedback, err := quiz.Check(answer)
	if err != nil {
		return quiz, exam.Feedback{}, err
	}
	c.log.Info("practice.answered",
		"trait", quiz.Trait.Name,
		"answer", feedback.Answer,
		"correct", feedback.Correct,
		"skipped", feedback.Skipped,
	)
	return quiz, feedback, nil
}

func (c *Client) resolveParents(traitName, parent1, parent2 string) (genetics.TraitConfig, genetics.DiploidGenotype, genetics.DiploidGenotype, error) {
	if traitName == "" {
		traitName = genetics.HeightTrait.Name
	}
	trait, err := c.catalog.Get(traitName)
	if err != nil {
		return genetics.TraitConfig{}, genetics.DiploidGenotype{}, genetics.DiploidGenotype{}, err
	}

	defaultP1, defaultP2 := traits.DefaultParents(trait)
	if parent1 == "" {
		parent1 = defaultP1
	}
	if parent2 == "" {
		parent2 = defaultP2
	}

	p1, err := c.parseGenotype(parent1, trait)
	if err != nil {
		return genetics.TraitConfig{}, genetics.DiploidGenotype{}, genetics.DiploidGenotype{}, fmt.Errorf("parent 1: %w", err)
	}
	p2, err := c.parseGenotype(parent2, trait)
	if err != nil {
		return genetics.TraitConfig{}, genetics.DiploidGenotype{}, genetics.DiploidGenotype{}, fmt.Errorf("parent 2: %w", err)
	}
	return trait, p1, p2, nil
}

func (c *Client) parseGenotype(s string, trait genetics.TraitConfig) (genetics.DiploidGenotype, error) {
	if c.resolver.Policy == genetics.PolicyStrict {
		return genetics.ParseGenotypeFor(s, trait)
	}
	return genetics.ParseGenotype(s)
}
