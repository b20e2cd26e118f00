package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"punnettlab/internal/exam"
	"punnettlab/internal/model"
)

func storeArgs(t *testing.T, base string) []string {
	t.Helper()
	return []string{
		"--store", "sqlite",
		"--db-path", filepath.Join(base, "punnett.db"),
		"--artifacts-dir", filepath.Join(base, "crosses"),
		"--exports-dir", filepath.Join(base, "exports"),
	}
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	if err := run(context.Background(), args, &out); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	return out.String()
}

func TestRunRequiresCommand(t *testing.T) {
	if err := run(context.Background(), nil, &bytes.Buffer{}); err == nil || !strings.Contains(err.Error(), "usage: punnettctl") {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := run(context.Background(), []string{"breed"}, &bytes.Buffer{}); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestTraitsCommand(t *testing.T) {
	out := runCommand(t, "traits")
	if !strings.Contains(out, `name="Height" dominant=T(Tall) recessive=t(Dwarf)`) {
		t.Fatalf("unexpected traits output:\n%s", out)
	}
	if !strings.Contains(out, `name="Seed Color"`) {
		t.Fatalf("missing seed color:\n%s", out)
	}
}

func TestCrossHistoryShowExportFlow(t *testing.T) {
	base := t.TempDir()
	t.Setenv("PUNNETT_LOG_DIR", filepath.Join(base, "logs"))
	common := storeArgs(t, base)

	out := runCommand(t, append([]string{"cross", "--p1", "Tt", "--p2", "Tt"}, common...)...)
	for _, want := range []string{"Genotypes (1:2:1)", "Phenotypes (3:1)", "saved cross_id="} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in cross output:\n%s", want, out)
		}
	}

	out = runCommand(t, append([]string{"cross", "--trait", "Seed Color", "--p1", "YY", "--p2", "Yy", "--json"}, common...)...)
	var record model.CrossRecord
	if err := json.Unmarshal([]byte(out), &record); err != nil {
		t.Fatalf("decode cross json: %v\n%s", err, out)
	}
	if record.Stats.Genotypes.Ratio() != "2:2" || record.Trait.Name != "Seed Color" {
		t.Fatalf("unexpected record: %+v", record)
	}

	out = runCommand(t, append([]string{"history"}, common...)...)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "cross_id="+record.ID) {
		t.Fatalf("unexpected history:\n%s", out)
	}

	out = runCommand(t, append([]string{"show"}, common...)...)
	if !strings.Contains(out, "cross_id="+record.ID) || !strings.Contains(out, "Yellow") {
		t.Fatalf("unexpected show output:\n%s", out)
	}

	out = runCommand(t, append([]string{"export", "--latest"}, common...)...)
	if !strings.Contains(out, "exported cross_id="+record.ID) {
		t.Fatalf("unexpected export output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(base, "exports", record.ID, "genotypes.csv")); err != nil {
		t.Fatalf("expected exported csv: %v", err)
	}

	if _, err := os.Stat(filepath.Join(base, "logs", "punnettlab.log")); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}

func TestCrossRejectsMalformedGenotype(t *testing.T) {
	base := t.TempDir()
	err := run(context.Background(), append([]string{"cross", "--p1", "TTT"}, storeArgs(t, base)...), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "invalid genotype") {
		t.Fatalf("expected invalid genotype error, got %v", err)
	}
}

func TestExportFlagValidation(t *testing.T) {
	base := t.TempDir()
	common := storeArgs(t, base)
	if err := run(context.Background(), append([]string{"export"}, common...), &bytes.Buffer{}); err == nil {
		t.Fatal("expected missing target error")
	}
	if err := run(context.Background(), append([]string{"export", "--id", "x", "--latest"}, common...), &bytes.Buffer{}); err == nil {
		t.Fatal("expected conflicting flags error")
	}
}

func TestTeachCommand(t *testing.T) {
	out := runCommand(t, "teach", "--store", "memory", "--trait", "seed color", "--p1", "YY", "--p2", "yy", "--speed", "1000")
	if !strings.HasPrefix(out, "[dna] Welcome to the Virtual Genetics Lab.") {
		t.Fatalf("unexpected teach output:\n%s", out)
	}
	if !strings.Contains(out, "[offspring] Phenotypically, the offspring ratio is: 4 Yellow.") {
		t.Fatalf("missing phenotype narration:\n%s", out)
	}
	if strings.Count(out, "\n") != 12 {
		t.Fatalf("expected 12 narrated steps:\n%s", out)
	}
}

func TestTeachCommandStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	if err := run(ctx, []string{"teach", "--store", "memory"}, &out); err != nil {
		t.Fatalf("teach: %v", err)
	}
	if !strings.Contains(out.String(), "lesson stopped") {
		t.Fatalf("unexpected output: %s", out.String())
	}
}

func TestExamCommand(t *testing.T) {
	out := runCommand(t, "exam", "--store", "memory")
	if !strings.Contains(out, "Law of Segregation") || !strings.Contains(out, "viva:") {
		t.Fatalf("unexpected questions:\n%s", out)
	}

	out = runCommand(t, "exam", "--store", "memory", "--answers", "1=2, 2=0", "--json")
	var result exam.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Score != 1 || result.MaxScore != 7 {
		t.Fatalf("unexpected result: %+v", result)
	}

	if err := run(context.Background(), []string{"exam", "--store", "memory", "--answers", "1:2"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected answer parse error")
	}
}

func TestPracticeCommand(t *testing.T) {
	out := runCommand(t, "practice", "--store", "memory")
	if !strings.Contains(out, "Cross: TT x tt") || !strings.Contains(out, "options: TT Tt tt") {
		t.Fatalf("unexpected question:\n%s", out)
	}

	out = runCommand(t, "practice", "--store", "memory", "--answer", "Tt")
	if strings.TrimSpace(out) != "Correct! Heterozygous (Tt) is the only outcome." {
		t.Fatalf("unexpected feedback:\n%s", out)
	}

	out = runCommand(t, "practice", "--store", "memory", "--answer", "tt", "--json")
	var feedback exam.Feedback
	if err := json.Unmarshal([]byte(out), &feedback); err != nil {
		t.Fatalf("decode feedback: %v", err)
	}
	if feedback.Correct || feedback.Message != "Try again! Hint: P1 gives T, P2 gives t." {
		t.Fatalf("unexpected feedback: %+v", feedback)
	}

	out = runCommand(t, "practice", "--store", "memory", "--trait", "seed color", "--skip")
	if !strings.Contains(out, "Skipped.") || !strings.Contains(out, "expected: Yy") {
		t.Fatalf("unexpected skip output:\n%s", out)
	}

	if err := run(context.Background(), []string{"practice", "--store", "memory", "--answer", "Tx"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected unknown allele error")
	}
	if err := run(context.Background(), []string{"practice", "--store", "memory", "--answer", "Tt", "--skip"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected conflicting flags error")
	}
}

func TestParseAnswers(t *testing.T) {
	answers, err := parseAnswers("1=2,3=0,")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(answers) != 2 || answers[1] != 2 || answers[3] != 0 {
		t.Fatalf("unexpected answers: %v", answers)
	}
	if _, err := parseAnswers("x=1"); err == nil {
		t.Fatal("expected id error")
	}
}
