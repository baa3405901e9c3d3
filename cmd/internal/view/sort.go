package view

import (
	"sort"
	"strings"

	"github.com/facette/natsort"
)

type Order string

const (
	Asc     Order = "asc"
	Desc    Order = "desc"
	Natural Order = "natural"
)

// ParseOrder falls back to Asc for anything it does not recognise.
func ParseOrder(s string) Order {
	switch Order(strings.ToLower(s)) {
	case Desc:
		return Desc
	case Natural:
		return Natural
	default:
		return Asc
	}
}

// Label is the caption of the sort control option.
func (o Order) Label() string {
	switch o {
	case Desc:
		return "Sort Z-A"
	case Natural:
		return "Natural order"
	default:
		return "Sort A-Z"
	}
}

// Sorted returns a sorted copy of items, comparing key case-insensitively.
// Items with equal keys keep their relative order.
func Sorted[T any](items []T, key func(T) string, order Order) []T {
	type keyed struct {
		key  string
		item T
	}

	pairs := make([]keyed, len(items))
	for i, item := range items {
		pairs[i] = keyed{key: strings.ToLower(key(item)), item: item}
	}

	var less func(a, b string) bool
	switch order {
	case Desc:
		less = func(a, b string) bool { return b < a }
	case Natural:
		less = func(a, b string) bool { return a != b && natsort.Compare(a, b) }
	default:
		less = func(a, b string) bool { return a < b }
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return less(pairs[i].key, pairs[j].key)
	})

	out := make([]T, len(pairs))
	for i, p := range pairs {
		out[i] = p.item
	}
	return out
}
