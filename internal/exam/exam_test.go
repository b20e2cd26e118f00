package exam

import "testing"

func TestBuiltInQuestionsAreValid(t *testing.T) {
	questions := Questions()
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			t.Fatalf("invalid question: %v", err)
		}
	}
	if len(VivaPrompts()) != 4 {
		t.Fatalf("expected 4 viva prompts")
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name    string
		answers map[int]int
		score   int
		correct []bool
	}{
		{name: "all correct", answers: map[int]int{1: 2, 2: 1, 3: 0}, score: 7, correct: []bool{true, true, true}},
		{name: "unanswered", answers: nil, score: 0, correct: []bool{false, false, false}},
		{name: "mixed", answers: map[int]int{1: 0, 3: 0}, score: 5, correct: []bool{false, false, true}},
		{name: "out of range", answers: map[int]int{1: 9, 2: -1}, score: 0, correct: []bool{false, false, false}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Grade(Questions(), tc.answers)
			if result.MaxScore != 7 {
				t.Fatalf("unexpected max score: %d", result.MaxScore)
			}
			if result.Score != tc.score {
				t.Fatalf("score=%d want %d", result.Score, tc.score)
			}
			for i, want := range tc.correct {
				if result.Outcomes[i].Correct != want {
					t.Fatalf("question %d correct=%t want %t", i+1, result.Outcomes[i].Correct, want)
				}
			}
		})
	}
}

func TestGradeMarksUnanswered(t *testing.T) {
	result := Grade(Questions(), map[int]int{2: 1})
	if result.Outcomes[0].Answered || result.Outcomes[0].Selected != -1 {
		t.Fatalf("expected unanswered outcome, got %+v", result.Outcomes[0])
	}
	if !result.Outcomes[1].Answered || result.Outcomes[1].Awarded != 1 {
		t.Fatalf("unexpected outcome: %+v", result.Outcomes[1])
	}
	if got := result.Percent(); got < 14.28 || got > 14.29 {
		t.Fatalf("unexpected percent: %v", got)
	}
}

func TestQuestionValidate(t *testing.T) {
	bad := Question{ID: 9, Options: []string{"a", "b"}, CorrectIndex: 2, Marks: 1}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected out of range error")
	}
	bad = Question{ID: 9, Options: []string{"a"}, Marks: 1}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected option count error")
	}
}
