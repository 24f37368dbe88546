package ai

import (
	"fmt"
	"strings"
)

// Personality selects the strategy an AI seat plays. The set is closed; each
// value maps to exactly one strategy in the strategies table.
type Personality uint8

const (
	Disciplined Personality = iota
	Aggressive
	Calculating
	CallingStation
)

var personalityNames = [...]string{
	Disciplined:    "disciplined",
	Aggressive:     "aggressive",
	Calculating:    "calculating",
	CallingStation: "calling_station",
}

func (p Personality) String() string {
	if int(p) < len(personalityNames) {
		return personalityNames[p]
	}
	return fmt.Sprintf("personality(%d)", uint8(p))
}

// Valid reports whether p names a known strategy.
func (p Personality) Valid() bool {
	return int(p) < len(personalityNames)
}

// Personalities lists every personality in declaration order.
func Personalities() []Personality {
	out := make([]Personality, len(personalityNames))
	for i := range out {
		out[i] = Personality(i)
	}
	return out
}

// ParsePersonality accepts the names produced by String, case-insensitively,
// with "-" or " " in place of "_".
func ParsePersonality(s string) (Personality, error) {
	norm := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
	for i, name := range personalityNames {
		if name == norm {
			return Personality(i), nil
		}
	}
	return 0, fmt.Errorf("unknown personality %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Personality) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("unknown personality %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Personality) UnmarshalText(text []byte) error {
	parsed, err := ParsePersonality(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
