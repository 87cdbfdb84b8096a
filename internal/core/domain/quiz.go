package domain

import "fmt"

// QuizState identifies where the machine is in its walk over the questions.
// The question-fetch phase ends before construction (NewQuiz takes the
// fetched list), so a quiz is presenting from birth.
type QuizState string

const (
	QuizPresenting QuizState = "presenting"
	QuizComplete   QuizState = "complete"
)

// Answer is one recorded response, kept in question order.
type Answer struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
}

// AnswerSet is the finalized mapping from question identifier to the
// selected value, preserving insertion (= question) order.
type AnswerSet struct {
	ordered []Answer
	index   map[string]string
}

// Len returns the number of recorded answers.
func (s AnswerSet) Len() int { return len(s.ordered) }

// Get returns the answer recorded for a question identifier.
func (s AnswerSet) Get(questionID string) (string, bool) {
	v, ok := s.index[questionID]
	return v, ok
}

// Ordered returns the answers in question order. The returned slice is a
// copy; mutating it does not affect the set.
func (s AnswerSet) Ordered() []Answer {
	out := make([]Answer, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Map returns the answers as a plain map for serialization.
func (s AnswerSet) Map() map[string]string {
	out := make(map[string]string, len(s.ordered))
	for _, a := range s.ordered {
		out[a.QuestionID] = a.Value
	}
	return out
}

// Quiz walks an ordered list of questions, recording exactly one answer
// per step. It is driven by a single external event per step (Select);
// there are no timers and no backward transitions.
type Quiz struct {
	questions []Question
	answers   AnswerSet
	current   int
	complete  bool
}

// NewQuiz builds a quiz over a validated question list.
func NewQuiz(questions []Question) (*Quiz, error) {
	if err := ValidateQuestions(questions); err != nil {
		return nil, err
	}
	qs := make([]Question, len(questions))
	copy(qs, questions)
	return &Quiz{
		questions: qs,
		answers: AnswerSet{
			ordered: make([]Answer, 0, len(qs)),
			index:   make(map[string]string, len(qs)),
		},
	}, nil
}

// State reports the current machine state.
func (z *Quiz) State() QuizState {
	if z.complete {
		return QuizComplete
	}
	return QuizPresenting
}

// Step returns the zero-based index of the question being presented.
func (z *Quiz) Step() int { return z.current }

// Total returns the number of questions in the walk.
func (z *Quiz) Total() int { return len(z.questions) }

// Current returns the question being presented. The second return is
// false once the machine is complete.
func (z *Quiz) Current() (Question, bool) {
	if z.complete {
		return Question{}, false
	}
	return z.questions[z.current], true
}

// Select records value for the current question and advances the machine.
// A value the current question does not declare is rejected with
// ErrInvalidAnswer and causes no state transition.
func (z *Quiz) Select(value string) error {
	if z.complete {
		return ErrQuizComplete
	}
	q := z.questions[z.current]
	if !q.Accepts(value) {
		return fmt.Errorf("%w: %q for question %s", ErrInvalidAnswer, value, q.ID)
	}

	z.answers.ordered = append(z.answers.ordered, Answer{QuestionID: q.ID, Value: value})
	z.answers.index[q.ID] = value

	if z.current < len(z.questions)-1 {
		z.current++
		return nil
	}
	z.complete = true
	return nil
}

// Answers returns the finalized answer set. It is only available once the
// machine has entered its terminal state.
func (z *Quiz) Answers() (AnswerSet, error) {
	if !z.complete {
		return AnswerSet{}, ErrQuizNotComplete
	}
	return z.answers, nil
}
