package domain

import "strconv"

// ID is a positive numeric entity identifier assigned from a persisted counter.
type ID int64

func ParseID(s string) (ID, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return ID(n), true
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Amount is a monetary value in the currency's smallest unit.
type Amount int64

func NewAmountFromCents(cents int64) Amount {
	return Amount(cents)
}

func (a Amount) Add(b Amount) Amount {
	return a + b
}

func (a Amount) Multiply(b int) Amount {
	return a * Amount(b)
}

type Event interface {
	GetName() string
	GetEntityName() string
}
