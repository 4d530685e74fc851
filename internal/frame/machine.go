package frame

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/farguessr/internal/daily"
	"github.com/robalobadob/farguessr/internal/game"
)

// Player-facing copy.
const (
	MsgInvalidInput   = "Invalid input. Guess again!"
	MsgPickDirection  = "Pick a direction button. Guess again!"
	MsgInvalidRequest = "Invalid request :/"
	PromptDistance    = "Enter distance in km"

	labelDaily     = "Daily"
	labelRandom    = "🎲 Random"
	labelPlayAgain = "Play again"
	labelShare     = "Share"
)

// 1-based button positions on the landing and result frames.
const (
	buttonDaily = 1
	buttonShare = 2
)

// Input is what the transport delivers for one interaction. ButtonIndex is
// 1-based; 0 means no button was pressed.
type Input struct {
	ButtonIndex int
	InputText   string
}

// ButtonAction tells the client what pressing a button does.
type ButtonAction string

const (
	ActionPost         ButtonAction = "post"
	ActionPostRedirect ButtonAction = "post_redirect"
)

// Button is one selectable action. Build sets Target for redirect buttons.
type Button struct {
	Label  string       `json:"label"`
	Action ButtonAction `json:"action"`
	Target string       `json:"target,omitempty"`
}

// Directive describes what the next frame shows.
type Directive struct {
	Buttons     []Button
	InputPrompt string
	Message     string
	Pair        *game.Pair
	Rating      *game.Rating
}

// Machine is the round state machine. It holds only read-only collaborators,
// so one Machine serves all requests concurrently.
type Machine struct {
	gen     *game.Generator
	now     func() time.Time
	newSeed func() string
}

// Option customises a Machine.
type Option func(*Machine)

// WithClock overrides the clock used to pick the daily seed.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithSeedSource overrides how random-round seeds are minted.
func WithSeedSource(f func() string) Option {
	return func(m *Machine) { m.newSeed = f }
}

// NewMachine builds a Machine over gen.
func NewMachine(gen *game.Generator, opts ...Option) *Machine {
	m := &Machine{
		gen:     gen,
		now:     time.Now,
		newSeed: uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Transition computes the next State and what to show for it.
//
//	INITIAL  --Daily/Random-->  STARTED
//	STARTED  --bad input-->     INVALID  --bad input--> INVALID
//	STARTED  --valid guess-->   GUESSED  <--valid guess-- INVALID
//	GUESSED  --Share-->         GUESSED
//	GUESSED  --Play again-->    INITIAL
func (m *Machine) Transition(prev State, in Input) (State, Directive) {
	switch prev.Status {
	case StatusInitial:
		return m.start(in)
	case StatusStarted, StatusInvalid:
		return m.guess(prev, in)
	case StatusGuessed:
		if in.ButtonIndex == buttonShare {
			return m.result(prev)
		}
		return m.Initial("")
	default:
		return m.Initial("")
	}
}

// Initial is the landing frame. message, if set, is overlaid on it.
func (m *Machine) Initial(message string) (State, Directive) {
	return State{Status: StatusInitial}, Directive{
		Message: message,
		Buttons: []Button{
			{Label: labelDaily, Action: ActionPost},
			{Label: labelRandom, Action: ActionPost},
		},
	}
}

// Replay rebuilds the Pair for s and, when s is GUESSED, its Rating. Nothing is
// cached: the same State always yields the same result.
func (m *Machine) Replay(s State) (game.Pair, *game.Rating, error) {
	if s.SeedKey == "" {
		return game.Pair{}, nil, fmt.Errorf("%w: no seed", ErrMalformedState)
	}
	pair := m.gen.Pair(s.SeedKey)
	if s.Status != StatusGuessed {
		return pair, nil, nil
	}
	r, err := game.RateGuess(pair, game.Directions(pair), s.GuessKm, s.GuessDir)
	if err != nil {
		return pair, nil, fmt.Errorf("%w: %v", game.ErrDataIntegrity, err)
	}
	return pair, &r, nil
}

func (m *Machine) start(in Input) (State, Directive) {
	switch in.ButtonIndex {
	case 0:
		return m.Initial("")
	case buttonDaily:
		now := m.now()
		next := State{Status: StatusStarted, Mode: ModeDaily, SeedKey: daily.DateKey(now)}
		return next, m.prompt(m.gen.PairForToday(now), "")
	default:
		next := State{Status: StatusStarted, Mode: ModeRandom, SeedKey: m.newSeed()}
		return next, m.prompt(m.gen.Pair(next.SeedKey), "")
	}
}

func (m *Machine) guess(prev State, in Input) (State, Directive) {
	pair := m.gen.Pair(prev.SeedKey)
	dirs := game.Directions(pair)
	invalid := State{Status: StatusInvalid, Mode: prev.Mode, SeedKey: prev.SeedKey}

	km, err := game.ParseDistance(in.InputText)
	if err != nil {
		return invalid, m.prompt(pair, MsgInvalidInput)
	}
	if in.ButtonIndex < 1 || in.ButtonIndex > len(dirs) {
		return invalid, m.prompt(pair, MsgPickDirection)
	}
	dir := dirs[in.ButtonIndex-1]

	r, err := game.RateGuess(pair, dirs, km, dir)
	if err != nil {
		return invalid, m.prompt(pair, MsgInvalidInput)
	}
	next := State{Status: StatusGuessed, Mode: prev.Mode, SeedKey: prev.SeedKey, GuessKm: km, GuessDir: dir}
	return next, resultDirective(pair, r)
}

func (m *Machine) result(s State) (State, Directive) {
	pair, r, err := m.Replay(s)
	if err != nil || r == nil {
		return m.Initial(MsgInvalidRequest)
	}
	return s, resultDirective(pair, *r)
}

func (m *Machine) prompt(pair game.Pair, message string) Directive {
	dirs := game.Directions(pair)
	buttons := make([]Button, 0, len(dirs))
	for _, d := range dirs {
		buttons = append(buttons, Button{Label: d.Key() + " " + d.Emoji(), Action: ActionPost})
	}
	return Directive{
		Buttons:     buttons,
		InputPrompt: PromptDistance,
		Message:     message,
		Pair:        &pair,
	}
}

func resultDirective(pair game.Pair, r game.Rating) Directive {
	return Directive{
		Pair:   &pair,
		Rating: &r,
		Buttons: []Button{
			{Label: labelPlayAgain, Action: ActionPost},
			{Label: labelShare, Action: ActionPostRedirect},
		},
	}
}
