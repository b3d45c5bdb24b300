package types

import (
	"time"

	"github.com/holiman/uint256"
)

const secondsMask = ^uint64(0)

// Clock is a chess-clock value: the accumulated think-time a party has
// spent, plus the wall-clock timestamp their turn last stopped. On chain
// it is packed into a single 128-bit word (high 64 bits duration in
// seconds, low 64 bits a UNIX timestamp); this type carries the unpacked,
// idiomatic Go representation and knows how to round-trip the packed form.
type Clock struct {
	duration  time.Duration
	timestamp time.Time
}

// NewClock constructs a Clock from a duration and a timestamp.
func NewClock(duration time.Duration, timestamp time.Time) Clock {
	return Clock{duration: duration, timestamp: timestamp}
}

// Duration returns the accumulated think-time for this clock.
func (c Clock) Duration() time.Duration {
	return c.duration
}

// Timestamp returns the wall-clock time the clock was last stopped.
func (c Clock) Timestamp() time.Time {
	return c.timestamp
}

// Encode packs the clock into the 128-bit on-chain representation:
// duration (seconds) in the high 64 bits, UNIX timestamp in the low 64.
func (c Clock) Encode() *uint256.Int {
	durationSeconds := uint64(c.duration / time.Second)
	timestampSeconds := uint64(c.timestamp.Unix())
	packed := new(uint256.Int).Lsh(uint256.NewInt(durationSeconds), 64)
	packed.Or(packed, uint256.NewInt(timestampSeconds))
	return packed
}

// DecodeClock unpacks a 128-bit chess-clock value as read from the game
// state into its duration and timestamp components.
func DecodeClock(packed *uint256.Int) Clock {
	durationSeconds := new(uint256.Int).Rsh(packed, 64).Uint64()
	timestampSeconds := new(uint256.Int).And(packed, uint256.NewInt(secondsMask)).Uint64()
	return Clock{
		duration:  time.Duration(durationSeconds) * time.Second,
		timestamp: time.Unix(int64(timestampSeconds), 0).UTC(),
	}
}

// Elapsed returns how long, including time accrued before this clock was
// last stopped, this party's clock has now run given the wall-clock time
// now.
func (c Clock) Elapsed(now time.Time) time.Duration {
	return c.duration + now.Sub(c.timestamp)
}
