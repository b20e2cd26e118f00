// Package exam grades the multiple-choice assessment that follows a lesson.
package exam

import "fmt"

type Question struct {
	ID           int      `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Marks        int      `json:"marks"`
}

func (q Question) Validate() error {
	if len(q.Options) < 2 {
		return fmt.Errorf("question %d needs at least two options", q.ID)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("question %d correct index %d out of range", q.ID, q.CorrectIndex)
	}
	if q.Marks <= 0 {
		return fmt.Errorf("question %d must carry positive marks", q.ID)
	}
	return nil
}

// Questions returns the built-in exam.
func Questions() []Question {
	return []Question{
		{
			ID:           1,
			Text:         "In a monohybrid cross between a homozygous dominant (TT) and a homozygous recessive (tt) pea plant, what is the phenotype ratio of the F1 generation?",
			Options:      []string{"3 Tall : 1 Dwarf", "1 Tall : 1 Dwarf", "All Tall", "All Dwarf"},
			CorrectIndex: 2,
			Explanation:  "All offspring in F1 will be heterozygous (Tt), which expresses the dominant Tall phenotype.",
			Marks:        1,
		},
		{
			ID:           2,
			Text:         "Which law explains the separation of alleles during gamete formation?",
			Options:      []string{"Law of Dominance", "Law of Segregation", "Law of Independent Assortment", "Law of Linkage"},
			CorrectIndex: 1,
			Explanation:  "Mendel's Law of Segregation states that allele pairs separate or segregate during gamete formation.",
			Marks:        1,
		},
		{
			ID:           3,
			Text:         "If you cross two heterozygous tall plants (Tt x Tt), what is the probability of getting a Dwarf plant?",
			Options:      []string{"25%", "50%", "75%", "0%"},
			CorrectIndex: 0,
			Explanation:  "The Punnett square yields: TT, Tt, Tt, tt. Only 'tt' is dwarf, which is 1 out of 4 (25%).",
			Marks:        5,
		},
	}
}

// VivaPrompts returns open oral-examination prompts. They are not graded.
func VivaPrompts() []string {
	return []string{
		"Define an Allele with a simple example.",
		"What is the difference between Genotype and Phenotype?",
		"Why did Mendel choose the Pea Plant (Pisum sativum)?",
		"Explain the 'Law of Independent Assortment'.",
	}
}

type Outcome struct {
	QuestionID  int    `json:"question_id"`
	Answered    bool   `json:"answered"`
	Selected    int    `json:"selected"`
	Correct     bool   `json:"correct"`
	Awarded     int    `json:"awarded"`
	Explanation string `json:"explanation"`
}

type Result struct {
	Outcomes []Outcome `json:"outcomes"`
	Score    int       `json:"score"`
	MaxScore int       `json:"max_score"`
}

func (r Result) Percent() float64 {
	if r.MaxScore == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.MaxScore) * 100
}

// Grade scores answers keyed by question id. Unanswered and out-of-range answers
// earn nothing.
func Grade(questions []Question, answers map[int]int) Result {
	result := Result{Outcomes: make([]Outcome, 0, len(questions))}
	for _, q := range questions {
		result.MaxScore += q.Marks

		selected, answered := answers[q.ID]
		outcome := Outcome{QuestionID: q.ID, Answered: answered, Selected: -1, Explanation: q.Explanation}
		if answered {
			outcome.Selected = selected
			outcome.Correct = selected == q.CorrectIndex
		}
		if outcome.Correct {
			outcome.Awarded = q.Marks
			result.Score += q.Marks
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}
	return result
}
