package problemgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/mathdrill/internal/answer"
)

// Shared word lists for template slots.
var (
	learnerNames = []string{"Ava", "Ben", "Carlos", "Dana", "Eli", "Fatima", "Grace", "Hiro", "Isla", "Jamal"}

	// shopItems read naturally after "a".
	shopItems = []string{"notebook", "sandwich", "toy car", "ruler", "book", "juice box", "kite", "puzzle"}

	// pluralItems are bought in quantity.
	pluralItems = []string{"pencils", "stickers", "markers", "cookies", "erasers"}

	setItems  = []string{"apples", "balloons", "marbles", "stickers"}
	setColors = []string{"red", "blue", "green", "yellow"}
)

// hoursMinutes are the units of every time composite answer.
var hoursMinutes = []string{"h", "min"}

func money(cents int64) string { return answer.FormatCents(cents) }

func hm(h, m int64) string { return fmt.Sprintf("%d h %d min", h, m) }

// fracText writes n/d, adding the reduced form when it differs.
func fracText(n, d int64) string {
	s := fmt.Sprintf("%d/%d", n, d)
	if r := answer.Frac(n, d).Reduced(); r.Den != d {
		s += " = " + r.String()
	}
	return s
}

// joinInts renders 2, 4 and 6.
func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}

func ceilDiv(a, b int64) int64 { return (a + b - 1) / b }
