// Package game implements the Texas Hold'em hand state machine used for
// training sessions.
//
// The main type is Session, which seats a fixed set of human and AI players
// and plays hands one after another: it rotates the button, posts blinds,
// deals, validates betting actions, splits the pot into side pots and awards
// them at showdown.
//
// # Basic Usage
//
//	s, err := game.NewSession([]game.SeatConfig{
//	    {Name: "you", Stack: 1000},
//	    {Name: "bot", Stack: 1000, AI: true, Personality: ai.Calculating},
//	}, game.WithSeed(42))
//	snap, err := s.StartNewHand()
//	res, err := s.ApplyAction(snap.Turn, game.Call, 0)
//	n, err := s.RunAI() // let the bots act until a human is to act
//
// # Errors
//
// An illegal action is not an error: ApplyAction returns a result with
// Success false and Err set to one of the ErrInvalidAction family, and the
// session is unchanged. The error return carries engine defects. After
// every state change the session checks that stacks plus pot equal the
// chips it started with, that no balance is negative and that the all-in
// flags agree with the stacks. A failed check stops the session and every
// later call returns the same error.
//
// # Deterministic Testing
//
// WithSeed fixes every shuffle and AI decision. WithDeck supplies a stacked
// deck built with poker.NewDeckFromCards, which deals the same cards every
// hand, and WithClock takes a quartz mock for stable timestamps.
package game
