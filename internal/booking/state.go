package booking

import (
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

// State is a query-time filter over bookings. It is computed relative to a
// reference instant and is never persisted.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// States lists every State in declaration order.
var States = []State{StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected}

// ParseState parses a state name case-insensitively. An empty string means ALL.
func ParseState(raw string) (State, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if name == "" {
		return StateAll, nil
	}
	for _, st := range States {
		if State(name) == st {
			return st, nil
		}
	}
	return "", apperror.Wrap(ErrUnknownState, http.StatusBadRequest, "Unknown state: "+raw)
}

// Matches reports whether b falls into s at instant now.
// A booking with start == now or end == now is CURRENT, never PAST or FUTURE.
func (s State) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return !b.Start.After(now) && !b.End.Before(now)
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	}
	return false
}

// Condition returns the SQL form of Matches over the bookings table aliased as b.
// ALL yields nil.
func (s State) Condition(now time.Time) squirrel.Sqlizer {
	switch s {
	case StateCurrent:
		return squirrel.And{
			squirrel.LtOrEq{"b.start_time": now},
			squirrel.GtOrEq{"b.end_time": now},
		}
	case StatePast:
		return squirrel.Lt{"b.end_time": now}
	case StateFuture:
		return squirrel.Gt{"b.start_time": now}
	case StateWaiting:
		return squirrel.Eq{"b.status": string(StatusWaiting)}
	case StateRejected:
		return squirrel.Eq{"b.status": string(StatusRejected)}
	}
	return nil
}

// Classify buckets bookings into every state whose predicate holds at now.
// Each bucket keeps the input order.
func Classify(bookings []*Booking, now time.Time) map[State][]*Booking {
	buckets := make(map[State][]*Booking, len(States))
	for _, st := range States {
		for _, b := range bookings {
			if st.Matches(b, now) {
				buckets[st] = append(buckets[st], b)
			}
		}
	}
	return buckets
}
