package domain

import (
	"errors"
	"strconv"
	"testing"
)

func optionQuestions(n int) []Question {
	qs := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, Question{
			ID:      "q" + strconv.Itoa(i+1),
			Text:    "Question " + strconv.Itoa(i+1),
			Options: []string{"A", "B", "C"},
		})
	}
	return qs
}

func TestQuiz_FullWalk(t *testing.T) {
	const n = 5
	quiz, err := NewQuiz(optionQuestions(n))
	if err != nil {
		t.Fatalf("new quiz: %v", err)
	}

	for i := 0; i < n; i++ {
		if quiz.State() != QuizPresenting {
			t.Fatalf("step %d: state %q, want presenting", i, quiz.State())
		}
		if quiz.Step() != i {
			t.Fatalf("step: got %d, want %d", quiz.Step(), i)
		}
		if err := quiz.Select("B"); err != nil {
			t.Fatalf("select at step %d: %v", i, err)
		}
	}

	if quiz.State() != QuizComplete {
		t.Fatalf("state after walk: %q, want complete", quiz.State())
	}

	answers, err := quiz.Answers()
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	if answers.Len() != n {
		t.Fatalf("answer count: got %d, want %d", answers.Len(), n)
	}

	ordered := answers.Ordered()
	for i, a := range ordered {
		wantID := "q" + strconv.Itoa(i+1)
		if a.QuestionID != wantID {
			t.Errorf("answer %d keyed by %q, want %q", i, a.QuestionID, wantID)
		}
		if a.Value != "B" {
			t.Errorf("answer %d value %q, want B", i, a.Value)
		}
	}
}

func TestQuiz_InvalidSelectionIsNoOp(t *testing.T) {
	quiz, err := NewQuiz(optionQuestions(2))
	if err != nil {
		t.Fatalf("new quiz: %v", err)
	}

	if err := quiz.Select("Z"); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer, got %v", err)
	}
	if quiz.Step() != 0 {
		t.Fatalf("step moved to %d after invalid selection", quiz.Step())
	}
	if quiz.State() != QuizPresenting {
		t.Fatalf("state changed to %q after invalid selection", quiz.State())
	}
	if _, err := quiz.Answers(); !errors.Is(err, ErrQuizNotComplete) {
		t.Fatalf("expected ErrQuizNotComplete, got %v", err)
	}
}

func TestQuiz_ScaleQuestion(t *testing.T) {
	qs := []Question{{ID: "energy", Text: "Energy?", Min: 1, Max: 10}}
	quiz, err := NewQuiz(qs)
	if err != nil {
		t.Fatalf("new quiz: %v", err)
	}

	if err := quiz.Select("11"); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("out-of-range value accepted: %v", err)
	}
	if err := quiz.Select("nope"); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("non-numeric value accepted: %v", err)
	}
	if err := quiz.Select("7"); err != nil {
		t.Fatalf("in-range value rejected: %v", err)
	}

	answers, err := quiz.Answers()
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	if v, _ := answers.Get("energy"); v != "7" {
		t.Fatalf("stored value %q, want 7", v)
	}
}

func TestQuiz_SelectAfterComplete(t *testing.T) {
	quiz, err := NewQuiz(optionQuestions(1))
	if err != nil {
		t.Fatalf("new quiz: %v", err)
	}
	if err := quiz.Select("A"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := quiz.Select("A"); !errors.Is(err, ErrQuizComplete) {
		t.Fatalf("expected ErrQuizComplete, got %v", err)
	}
}

func TestValidateQuestions(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
		wantErr   bool
	}{
		{
			name:      "valid mixed list",
			questions: []Question{{ID: "a", Options: []string{"x"}}, {ID: "b", Min: 1, Max: 5}},
			wantErr:   false,
		},
		{
			name:      "empty list",
			questions: nil,
			wantErr:   true,
		},
		{
			name:      "duplicate identifier",
			questions: []Question{{ID: "a", Options: []string{"x"}}, {ID: "a", Options: []string{"y"}}},
			wantErr:   true,
		},
		{
			name:      "no options and no range",
			questions: []Question{{ID: "a"}},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestions(tt.questions)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateQuestions: err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}
