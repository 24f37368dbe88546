package game

import (
	"fmt"
	rand "math/rand/v2"
	"sync"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/pokertrainer/internal/ai"
	"github.com/lox/pokertrainer/internal/gameid"
	"github.com/lox/pokertrainer/internal/history"
	"github.com/lox/pokertrainer/internal/randutil"
	"github.com/lox/pokertrainer/poker"
)

// Session runs consecutive hands for a fixed set of seats. Every exported
// method takes the session lock, so a Session may be shared between
// goroutines, but hands within it are strictly sequential.
type Session struct {
	mu sync.Mutex

	id       string
	logger   zerolog.Logger
	clock    quartz.Clock
	rng      *rand.Rand
	deck     *poker.Deck
	ai       *ai.Engine
	recorder Recorder
	ledger   *Ledger
	blinds   BlindSchedule
	tableMin int

	players []*Player
	hands   int
	button  int // seat before the first dealer

	inHand     bool
	street     Street
	board      []poker.Card // in deal order
	pot        int
	currentBet int
	lastRaise  int // 0 until someone makes a full raise this round
	lastRaiser int
	level      BlindLevel
	dealer     int
	smallBlind int
	bigBlind   int
	turn       int // -1 when nobody is to act
	bbOption   bool
	checkpoint []int
	showdown   *ShowdownResult
	record     *history.HandRecord

	// set by an invariant violation; the session refuses further play
	failed error
}

// NewSession seats the players. At least two seats are required and every
// stack must be non-negative. The session's chip total is fixed here.
func NewSession(seats []SeatConfig, opts ...Option) (*Session, error) {
	cfg := sessionConfig{
		logger:       zerolog.Nop(),
		blinds:       DefaultBlinds,
		tableMinimum: 1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(seats) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 seats, got %d", ErrNotEnoughPlayers, len(seats))
	}
	if err := cfg.blinds.Validate(); err != nil {
		return nil, err
	}
	if cfg.button < 0 || cfg.button >= len(seats) {
		return nil, fmt.Errorf("button seat %d out of range", cfg.button)
	}
	if cfg.tableMinimum < 1 {
		cfg.tableMinimum = 1
	}

	total := 0
	players := make([]*Player, len(seats))
	for i, sc := range seats {
		if sc.Stack < 0 {
			return nil, fmt.Errorf("seat %d: stack must not be negative, got %d", i, sc.Stack)
		}
		if sc.AI && !sc.Personality.Valid() {
			return nil, fmt.Errorf("seat %d: invalid personality %d", i, sc.Personality)
		}
		name := sc.Name
		if name == "" {
			name = fmt.Sprintf("Seat %d", i+1)
		}
		players[i] = &Player{
			Seat:        i,
			Name:        name,
			Stack:       sc.Stack,
			AI:          sc.AI,
			Personality: sc.Personality,
		}
		total += sc.Stack
	}

	id := cfg.id
	if id == "" {
		id = gameid.New()
	}
	logger := cfg.logger.With().Str("component", "session").Str("session", id).Logger()

	rng := cfg.rng
	if rng == nil {
		if cfg.seeded {
			rng = randutil.New(cfg.seed)
		} else {
			var seed int64
			rng, seed = randutil.NewTimeSeeded()
			logger.Debug().Int64("seed", seed).Msg("Seeded session from clock")
		}
	}
	deck := cfg.deck
	if deck == nil {
		deck = poker.NewDeck(randutil.Derive(rng))
	}
	clock := cfg.clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	aiOpts := []ai.Option{ai.WithLogger(cfg.logger)}
	if cfg.aiSamples > 0 {
		aiOpts = append(aiOpts, ai.WithSamples(cfg.aiSamples))
	}

	s := &Session{
		id:         id,
		logger:     logger,
		clock:      clock,
		rng:        rng,
		deck:       deck,
		ai:         ai.NewEngine(randutil.Derive(rng), aiOpts...),
		recorder:   cfg.recorder,
		ledger:     NewLedger(total),
		blinds:     cfg.blinds,
		tableMin:   cfg.tableMinimum,
		players:    players,
		button:     cfg.button,
		dealer:     -1,
		smallBlind: -1,
		bigBlind:   -1,
		turn:       -1,
		lastRaiser: -1,
	}

	logger.Info().
		Int("seats", len(players)).
		Int("chips", total).
		Int("small_blind", cfg.blinds.Small).
		Int("big_blind", cfg.blinds.Big).
		Msg("Session created")
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// HandCount returns the number of hands started, including the current one.
func (s *Session) HandCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hands
}

// TotalChips returns the chips in play, which never changes.
func (s *Session) TotalChips() int {
	return s.ledger.Total()
}

// InProgress reports whether a hand is being played.
func (s *Session) InProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inHand
}

// Err returns the invariant violation that stopped the session, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Movements returns the chip movements of the current or last hand.
func (s *Session) Movements() []Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Movements()
}

// Stacks returns every seat's stack in seat order.
func (s *Session) Stacks() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.players))
	for i, p := range s.players {
		out[i] = p.Stack
	}
	return out
}

// StartNewHand rotates the button, posts blinds and deals hole cards. Players
// below the table minimum sit the hand out. The returned snapshot is the
// table as the first player to act sees it.
func (s *Session) StartNewHand() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failed != nil {
		return Snapshot{}, s.failed
	}
	if s.inHand {
		return Snapshot{}, ErrHandInProgress
	}

	dealtIn := 0
	for _, p := range s.players {
		p.resetForHand(s.tableMin)
		if p.Active {
			dealtIn++
		}
	}
	if dealtIn < 2 {
		return Snapshot{}, fmt.Errorf("%w: %d of %d seats can play", ErrNotEnoughPlayers, dealtIn, len(s.players))
	}

	s.hands++
	s.level = s.blinds.At(s.hands)
	s.street = PreFlop
	s.board = s.board[:0]
	s.pot = 0
	s.currentBet = 0
	s.lastRaise = 0
	s.lastRaiser = -1
	s.showdown = nil
	s.checkpoint = s.checkpoint[:0]
	for _, p := range s.players {
		s.checkpoint = append(s.checkpoint, p.Stack)
	}
	s.ledger.BeginHand()
	s.deck.Reset()

	if s.dealer < 0 {
		s.dealer = s.nextSeat((s.button-1+len(s.players))%len(s.players), dealtInSeat)
	} else {
		s.dealer = s.nextSeat(s.dealer, dealtInSeat)
	}
	if dealtIn == 2 {
		// heads-up: the button posts the small blind
		s.smallBlind = s.dealer
	} else {
		s.smallBlind = s.nextSeat(s.dealer, dealtInSeat)
	}
	s.bigBlind = s.nextSeat(s.smallBlind, dealtInSeat)

	s.inHand = true
	s.beginRecord()

	sb := s.players[s.smallBlind]
	bb := s.players[s.bigBlind]
	s.logAction(sb, history.ActionSmallBlind, s.commit(sb, s.level.Small, MoveBlind))
	s.logAction(bb, history.ActionBigBlind, s.commit(bb, s.level.Big, MoveBlind))
	// a short big blind still sets the full amount to call
	s.currentBet = s.level.Big

	if err := s.dealHoleCards(); err != nil {
		return Snapshot{}, s.abort(err)
	}

	s.logger.Debug().
		Int("hand", s.hands).
		Int("dealer", s.dealer).
		Int("small_blind", s.smallBlind).
		Int("big_blind", s.bigBlind).
		Int("blinds", s.level.Big).
		Msg("Hand started")

	s.bbOption = bb.CanAct()
	s.turn = s.bigBlind
	if err := s.checkChips("hand start"); err != nil {
		return Snapshot{}, err
	}
	if err := s.progress(); err != nil {
		return Snapshot{}, err
	}

	return s.snapshot(s.turn), nil
}

func (s *Session) dealHoleCards() error {
	for range 2 {
		seat := s.dealer
		for range len(s.players) {
			seat = (seat + 1) % len(s.players)
			p := s.players[seat]
			if !p.Active {
				continue
			}
			cards, err := s.deck.Deal(1)
			if err != nil {
				return fmt.Errorf("dealing hole cards: %w", err)
			}
			p.Hole.AddCard(cards[0])
		}
	}
	return nil
}

// commit moves up to amount chips from the player's stack into the pot and
// returns how many moved. Emptying the stack puts the player all-in.
func (s *Session) commit(p *Player, amount int, kind MovementKind) int {
	amount = max(0, min(amount, p.Stack))
	p.Stack -= amount
	p.Bet += amount
	p.Invested += amount
	s.pot += amount
	if p.Stack == 0 && p.Active {
		p.AllIn = true
	}
	if amount > 0 {
		s.ledger.Record(Movement{Hand: s.hands, Street: s.street, Seat: p.Seat, Kind: kind, Amount: amount})
	}
	return amount
}

// abort cancels the hand and restores every stack to its value at hand
// start.
func (s *Session) abort(cause error) error {
	for i, p := range s.players {
		if refund := s.checkpoint[i] - p.Stack; refund > 0 {
			s.ledger.Record(Movement{Hand: s.hands, Street: s.street, Seat: p.Seat, Kind: MoveRefund, Amount: refund})
		}
		p.Stack = s.checkpoint[i]
		p.Bet = 0
		p.Invested = 0
		p.AllIn = false
		p.raiseLocked = false
	}
	s.pot = 0
	s.inHand = false
	s.turn = -1
	s.record = nil

	s.logger.Warn().Err(cause).Int("hand", s.hands).Msg("Hand aborted, stacks restored")
	if err := s.checkInvariants("abort"); err != nil {
		return err
	}
	return fmt.Errorf("hand %d aborted: %w", s.hands, cause)
}

// nextSeat returns the first seat after from, wrapping around and ending at
// from itself, that satisfies ok. It returns -1 when none does.
func (s *Session) nextSeat(from int, ok func(*Player) bool) int {
	n := len(s.players)
	for i := 1; i <= n; i++ {
		seat := (from + i + n) % n
		if ok(s.players[seat]) {
			return seat
		}
	}
	return -1
}

func dealtInSeat(p *Player) bool {
	return !p.Eliminated
}

// payoutOrder lists seats clockwise from the seat left of the button.
func (s *Session) payoutOrder() []int {
	n := len(s.players)
	order := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		order = append(order, (s.dealer+i)%n)
	}
	return order
}

func (s *Session) minIncrement() int {
	if s.lastRaise > 0 {
		return s.lastRaise
	}
	return max(s.level.Big, 1)
}

func (s *Session) boardHand() poker.Hand {
	return poker.NewHand(s.board...)
}
