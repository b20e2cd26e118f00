package exam

import (
	"errors"
	"strings"
	"testing"

	"punnettlab/internal/genetics"
)

func TestQuickQuizHeight(t *testing.T) {
	quiz, err := QuickQuiz(genetics.HeightTrait)
	if err != nil {
		t.Fatalf("quick quiz: %v", err)
	}
	if quiz.Parent1 != "TT" || quiz.Parent2 != "tt" {
		t.Fatalf("unexpected parents: %s x %s", quiz.Parent1, quiz.Parent2)
	}
	if strings.Join(quiz.Options, ",") != "TT,Tt,tt" {
		t.Fatalf("unexpected options: %v", quiz.Options)
	}
	if !strings.Contains(quiz.Prompt(), "TT x tt") {
		t.Fatalf("unexpected prompt: %q", quiz.Prompt())
	}

	tests := []struct {
		answer  string
		correct bool
		skipped bool
		message string
	}{
		{answer: "Tt", correct: true, message: "Correct! Heterozygous (Tt) is the only outcome."},
		{answer: "tT", correct: true, message: "Correct! Heterozygous (Tt) is the only outcome."},
		{answer: "TT", message: "Try again! Hint: P1 gives T, P2 gives t."},
		{answer: "tt", message: "Try again! Hint: P1 gives T, P2 gives t."},
		{answer: " ", skipped: true, message: "Skipped."},
	}
	for _, tc := range tests {
		fb, err := quiz.Check(tc.answer)
		if err != nil {
			t.Fatalf("check %q: %v", tc.answer, err)
		}
		if fb.Correct != tc.correct || fb.Skipped != tc.skipped || fb.Message != tc.message {
			t.Fatalf("check %q: unexpected feedback %+v", tc.answer, fb)
		}
		if len(fb.Expected) != 1 || fb.Expected[0] != "Tt" {
			t.Fatalf("check %q: unexpected expected genotypes %v", tc.answer, fb.Expected)
		}
	}
}

func TestPracticeFollowsTheCross(t *testing.T) {
	quiz, err := NewPractice(genetics.HeightTrait, "Tt", "Tt")
	if err != nil {
		t.Fatalf("new practice: %v", err)
	}
	fb, err := quiz.Check("tt")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !fb.Correct || fb.Message != "Correct! Homozygous Recessive (tt) appears in 1 of 4 offspring." {
		t.Fatalf("unexpected feedback: %+v", fb)
	}
	if strings.Join(fb.Expected, ",") != "TT,Tt,tt" {
		t.Fatalf("unexpected expected genotypes: %v", fb.Expected)
	}

	quiz, err = NewPractice(genetics.HeightTrait, "Tt", "tt")
	if err != nil {
		t.Fatalf("new practice: %v", err)
	}
	fb, err = quiz.Check("TT")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if fb.Correct || fb.Message != "Try again! Hint: P1 gives T or t, P2 gives t." {
		t.Fatalf("unexpected feedback: %+v", fb)
	}
}

func TestPracticeRejectsForeignGenotypes(t *testing.T) {
	if _, err := NewPractice(genetics.HeightTrait, "Yy", "tt"); !errors.Is(err, genetics.ErrUnknownAllele) {
		t.Fatalf("expected unknown allele, got %v", err)
	}
	quiz, err := QuickQuiz(genetics.SeedColorTrait)
	if err != nil {
		t.Fatalf("quick quiz: %v", err)
	}
	if _, err := quiz.Check("Tt"); !errors.Is(err, genetics.ErrUnknownAllele) {
		t.Fatalf("expected unknown allele, got %v", err)
	}
	if _, err := quiz.Check("Yyy"); !errors.Is(err, genetics.ErrInvalidGenotype) {
		t.Fatalf("expected invalid genotype, got %v", err)
	}
}
