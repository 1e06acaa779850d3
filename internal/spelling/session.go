// Package spelling implements the letter-by-letter spelling round.
package spelling

import (
	"sort"
	"strings"
	"unicode"

	"github.com/verte-zerg/vocabquest/internal/model"
	"github.com/verte-zerg/vocabquest/internal/vocab"
)

// Status is the state of the current question.
type Status int

const (
	Typing Status = iota
	Correct
	Wrong
)

// String returns a lowercase label for the status.
func (s Status) String() string {
	switch s {
	case Correct:
		return "correct"
	case Wrong:
		return "wrong"
	default:
		return "typing"
	}
}

// SlotKind describes how one letter position is shown.
type SlotKind int

const (
	SlotBlank SlotKind = iota
	SlotTyped
	SlotHint
)

// Slot is one rendered position of the target word.
type Slot struct {
	Letter rune
	Kind   SlotKind
}

// Session holds the state of one spelling session.
type Session struct {
	questions []model.VocabularyItem
	index     int

	input            []rune
	status           Status
	questionMistakes int
	purchased        int
	defRevealed      bool
	exampleOpen      bool
	exampleViewed    bool

	mistakes int
	wrong    []model.WrongAnswer
}

// NewSession starts a session over questions.
func NewSession(questions []model.VocabularyItem) *Session {
	qs := make([]model.VocabularyItem, len(questions))
	copy(qs, questions)
	return &Session{questions: qs}
}

// Current returns the question being asked.
func (s *Session) Current() (model.VocabularyItem, bool) {
	if s.index >= len(s.questions) {
		return model.VocabularyItem{}, false
	}
	return s.questions[s.index], true
}

func (s *Session) target() []rune {
	q, ok := s.Current()
	if !ok {
		return nil
	}
	return []rune(strings.ToLower(q.Word))
}

// Type appends one letter. It returns false when the keystroke is rejected.
// Completing the word moves the question to Correct or Wrong.
func (s *Session) Type(r rune) bool {
	r = unicode.ToLower(r)
	target := s.target()
	if s.status != Typing || !vocab.IsLetter(r) || len(s.input) >= len(target) {
		return false
	}
	s.input = append(s.input, r)
	if len(s.input) < len(target) {
		return true
	}
	if string(s.input) == string(target) {
		s.status = Correct
		return true
	}
	s.status = Wrong
	s.mistakes++
	s.questionMistakes++
	s.recordWrong()
	return true
}

// recordWrong replaces the entry for the current word with one more mistake,
// moving it to the end, or appends a new entry.
func (s *Session) recordWrong() {
	q, _ := s.Current()
	count := 0
	kept := s.wrong[:0]
	for _, w := range s.wrong {
		if w.Word == q.Word {
			count = w.Mistakes
			continue
		}
		kept = append(kept, w)
	}
	s.wrong = append(kept, model.WrongAnswer{Word: q.Word, Definition: q.Definition, Mistakes: count + 1})
}

// Backspace removes the last typed letter while typing.
func (s *Session) Backspace() bool {
	if s.status != Typing || len(s.input) == 0 {
		return false
	}
	s.input = s.input[:len(s.input)-1]
	return true
}

// ClearWrong dismisses the wrong-answer indicator and empties the input.
func (s *Session) ClearWrong() bool {
	if s.status != Wrong {
		return false
	}
	s.status = Typing
	s.input = s.input[:0]
	return true
}

// BuyHint reveals one more letter for the current question.
func (s *Session) BuyHint() bool {
	if s.status != Typing || s.Hints() >= len(s.target()) {
		return false
	}
	s.purchased++
	return true
}

// Hints returns the number of letters pre-filled for the current question.
func (s *Session) Hints() int {
	n := 1 + s.questionMistakes + s.purchased
	if l := len(s.target()); n > l {
		n = l
	}
	return n
}

// Slots returns the rendering of each position of the target word: typed
// letters first, then hint letters, then blanks.
func (s *Session) Slots() []Slot {
	target := s.target()
	hints := s.Hints()
	slots := make([]Slot, len(target))
	for i, r := range target {
		switch {
		case i < len(s.input):
			slots[i] = Slot{Letter: s.input[i], Kind: SlotTyped}
		case i < hints:
			slots[i] = Slot{Letter: r, Kind: SlotHint}
		default:
			slots[i] = Slot{Letter: '_', Kind: SlotBlank}
		}
	}
	return slots
}

// RevealDefinition shows the English definition. It reports whether anything changed.
func (s *Session) RevealDefinition() bool {
	if s.defRevealed {
		return false
	}
	s.defRevealed = true
	return true
}

// DefinitionRevealed reports whether the English definition is visible.
func (s *Session) DefinitionRevealed() bool {
	return s.defRevealed
}

// ShowExample opens the example panel of a correctly spelled word.
func (s *Session) ShowExample() bool {
	q, ok := s.Current()
	if !ok || s.status != Correct || q.Example == nil {
		return false
	}
	s.exampleOpen = true
	s.exampleViewed = true
	return true
}

// CloseExample returns to the correct panel.
func (s *Session) CloseExample() bool {
	if !s.exampleOpen {
		return false
	}
	s.exampleOpen = false
	return true
}

// ExampleOpen reports whether the example panel is shown.
func (s *Session) ExampleOpen() bool {
	return s.exampleOpen
}

// ExampleViewed reports whether the example was opened for this question.
func (s *Session) ExampleViewed() bool {
	return s.exampleViewed
}

// Next advances past a correctly spelled question. It returns false once
// the list is exhausted.
func (s *Session) Next() bool {
	if s.status != Correct {
		return !s.Done()
	}
	s.index++
	s.input = s.input[:0]
	s.status = Typing
	s.questionMistakes = 0
	s.purchased = 0
	s.defRevealed = false
	s.exampleOpen = false
	s.exampleViewed = false
	return s.index < len(s.questions)
}

// Status returns the state of the current question.
func (s *Session) Status() Status {
	return s.status
}

// Input returns the typed letters.
func (s *Session) Input() string {
	return string(s.input)
}

// Mistakes returns the session-wide mistake count.
func (s *Session) Mistakes() int {
	return s.mistakes
}

// QuestionMistakes returns the mistakes made on the current question.
func (s *Session) QuestionMistakes() int {
	return s.questionMistakes
}

// Progress returns the 1-based question number and the total.
func (s *Session) Progress() (int, int) {
	n := s.index + 1
	if n > len(s.questions) {
		n = len(s.questions)
	}
	return n, len(s.questions)
}

// Done reports whether every question has been answered.
func (s *Session) Done() bool {
	return s.index >= len(s.questions)
}

// Review returns the wrong answers, most mistakes first.
func (s *Session) Review() []model.WrongAnswer {
	out := make([]model.WrongAnswer, len(s.wrong))
	copy(out, s.wrong)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Mistakes > out[j].Mistakes
	})
	return out
}
