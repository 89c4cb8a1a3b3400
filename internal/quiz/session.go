// Package quiz runs a single shuffled pass over a snapshot of words.
package quiz

import (
	"errors"
	"math"
	"math/rand/v2"

	"wordfolder/internal/domain"
)

// ErrInvalidTransition is returned when an operation does not apply to the
// current state. The session is left unchanged.
var ErrInvalidTransition = errors.New("quiz: invalid state transition")

// State of a quiz session
type State int

const (
	StateAwaitingReveal State = iota
	StateRevealed
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateAwaitingReveal:
		return "awaiting_reveal"
	case StateRevealed:
		return "revealed"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// Session is one drill run. It never touches the folder it was built from.
type Session struct {
	snapshot []domain.Word
	items    []domain.Word
	rng      *rand.Rand

	position  int
	revealed  bool
	correct   int
	incorrect int
}

// Option configures a Session
type Option func(*Session)

// WithRand makes shuffling use r instead of the global generator
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		s.rng = r
	}
}

// NewSession snapshots words and starts a shuffled run
func NewSession(words []domain.Word, opts ...Option) *Session {
	s := &Session{snapshot: make([]domain.Word, len(words))}
	copy(s.snapshot, words)
	for _, opt := range opts {
		opt(s)
	}
	s.Restart()
	return s
}

// Restart reshuffles the snapshot taken at start and zeroes all counters
func (s *Session) Restart() {
	s.items = make([]domain.Word, len(s.snapshot))
	copy(s.items, s.snapshot)
	s.shuffle()

	s.position = 0
	s.revealed = false
	s.correct = 0
	s.incorrect = 0
}

// Fisher-Yates in both cases
func (s *Session) shuffle() {
	swap := func(i, j int) { s.items[i], s.items[j] = s.items[j], s.items[i] }
	if s.rng != nil {
		s.rng.Shuffle(len(s.items), swap)
		return
	}
	rand.Shuffle(len(s.items), swap)
}

// State returns the current state
func (s *Session) State() State {
	switch {
	case s.position >= len(s.items):
		return StateComplete
	case s.revealed:
		return StateRevealed
	default:
		return StateAwaitingReveal
	}
}

// Reveal shows the translation of the current item
func (s *Session) Reveal() error {
	if s.State() != StateAwaitingReveal {
		return ErrInvalidTransition
	}
	s.revealed = true
	return nil
}

// MarkCorrect records a correct answer and advances
func (s *Session) MarkCorrect() error {
	return s.judge(&s.correct)
}

// MarkIncorrect records an incorrect answer and advances
func (s *Session) MarkIncorrect() error {
	return s.judge(&s.incorrect)
}

func (s *Session) judge(counter *int) error {
	if s.State() != StateRevealed {
		return ErrInvalidTransition
	}
	*counter++
	s.position++
	s.revealed = false
	return nil
}

// Current returns the item being asked, false once complete
func (s *Session) Current() (domain.Word, bool) {
	if s.State() == StateComplete {
		return domain.Word{}, false
	}
	return s.items[s.position], true
}

// Position is the 0-based index of the current item. It equals Len once the
// session is complete.
func (s *Session) Position() int { return s.position }

// Len is the number of items in the run
func (s *Session) Len() int { return len(s.items) }

func (s *Session) Revealed() bool      { return s.revealed }
func (s *Session) CorrectCount() int   { return s.correct }
func (s *Session) IncorrectCount() int { return s.incorrect }
func (s *Session) IsComplete() bool    { return s.State() == StateComplete }

// Items returns the run order
func (s *Session) Items() []domain.Word {
	items := make([]domain.Word, len(s.items))
	copy(items, s.items)
	return items
}

// Progress returns the answered fraction in [0,1], 0 for an empty run
func (s *Session) Progress() float64 {
	if len(s.items) == 0 {
		return 0
	}
	done := s.position
	if s.revealed {
		done++
	}
	return math.Min(1, math.Max(0, float64(done)/float64(len(s.items))))
}

// Accuracy returns the rounded percentage of correct answers over all items
func (s *Session) Accuracy() int {
	if len(s.items) == 0 {
		return 0
	}
	return int(math.Round(float64(s.correct) / float64(len(s.items)) * 100))
}

// View renders the session state for the presentation layer
func (s *Session) View() domain.QuizView {
	current, _ := s.Current()
	return domain.QuizView{
		Current:   current,
		Position:  s.position,
		Total:     len(s.items),
		Revealed:  s.revealed,
		Correct:   s.correct,
		Incorrect: s.incorrect,
		Complete:  s.IsComplete(),
		Progress:  s.Progress(),
		Accuracy:  s.Accuracy(),
	}
}
