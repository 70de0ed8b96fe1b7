package quote

import (
	"errors"
	"strings"
)

const (
	MaxSpecificationsLength = 2000
	MaxMessageLength        = 1000

	DefaultExpiryDays = 7
	MinExpiryDays     = 1
	MaxExpiryDays     = 30
)

var (
	ErrNonPositivePrice      = errors.New("price must be positive")
	ErrSpecificationsTooLong = errors.New("specifications exceed maximum length")
	ErrEmptyMessage          = errors.New("message is empty")
	ErrMessageTooLong        = errors.New("message exceeds maximum length")
	ErrInvalidExpiryDays     = errors.New("expiry days out of bounds")
)

// Money is a positive monetary amount in cents.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents <= 0 {
		return Money{}, ErrNonPositivePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Dollars() float64 {
	return float64(m.cents) / 100.0
}

// MeetsFloor reports whether the amount is at least half of the product's
// effective price. Exactly 50% passes.
func (m Money) MeetsFloor(effectivePriceCents int64) bool {
	return m.cents*2 >= effectivePriceCents
}

type Specifications struct {
	value string
}

func NewSpecifications(value string) (Specifications, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > MaxSpecificationsLength {
		return Specifications{}, ErrSpecificationsTooLong
	}
	return Specifications{value: trimmed}, nil
}

func (s Specifications) String() string {
	return s.value
}

func (s Specifications) IsEmpty() bool {
	return s.value == ""
}

type Message struct {
	value string
}

func NewMessage(value string) (Message, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Message{}, ErrEmptyMessage
	}
	if len(trimmed) > MaxMessageLength {
		return Message{}, ErrMessageTooLong
	}
	return Message{value: trimmed}, nil
}

func (m Message) String() string {
	return m.value
}

// ExpiryDays is how long a new quote stays open, bounded 1-30 days.
type ExpiryDays int

func NewExpiryDays(days *int) (ExpiryDays, error) {
	if days == nil {
		return ExpiryDays(DefaultExpiryDays), nil
	}
	if *days < MinExpiryDays || *days > MaxExpiryDays {
		return 0, ErrInvalidExpiryDays
	}
	return ExpiryDays(*days), nil
}

func (d ExpiryDays) Int() int {
	return int(d)
}
