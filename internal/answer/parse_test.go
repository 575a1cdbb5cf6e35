package answer

import (
	"errors"
	"testing"
)

func TestParse_Int(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"42", 42},
		{" 42 ", 42},
		{"042", 42},
		{"-15", -15},
		{"1,200", 1200},
	}

	for _, tc := range tests {
		got, err := Parse(Int(0), tc.input)
		if err != nil {
			t.Errorf("Parse(int, %q) error: %v", tc.input, err)
			continue
		}
		if got.Value != tc.want {
			t.Errorf("Parse(int, %q) = %d, want %d", tc.input, got.Value, tc.want)
		}
	}
}

func TestParse_Fraction(t *testing.T) {
	half := Frac(1, 2)
	tests := []struct {
		input string
		want  bool
	}{
		{"1/2", true},
		{"2/4", true},
		{"3/6", true},
		{" 1 / 2 ", true},
		{"0.5", true},
		{".5", true},
		{"50%", true},
		{"50 %", true},
		{"1/3", false},
		{"0.49", false},
	}

	for _, tc := range tests {
		got, err := Parse(half, tc.input)
		if err != nil {
			t.Errorf("Parse(fraction, %q) error: %v", tc.input, err)
			continue
		}
		if Equal(got, half) != tc.want {
			t.Errorf("Parse(fraction, %q) = %v, equal to 1/2 = %v, want %v", tc.input, got, !tc.want, tc.want)
		}
	}
}

func TestParse_MixedNumber(t *testing.T) {
	got, err := Parse(Frac(3, 2), "1 1/2")
	if err != nil {
		t.Fatalf("Parse(1 1/2): %v", err)
	}
	if !Equal(got, Frac(3, 2)) {
		t.Errorf("Parse(1 1/2) = %v, want 3/2", got)
	}

	got, err = Parse(Frac(-3, 2), "-1 1/2")
	if err != nil {
		t.Fatalf("Parse(-1 1/2): %v", err)
	}
	if !Equal(got, Frac(-3, 2)) {
		t.Errorf("Parse(-1 1/2) = %v, want -3/2", got)
	}
}

func TestParse_Money(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"11.50", 1150},
		{"11.5", 1150},
		{"$11.50", 1150},
		{"$ 11.50", 1150},
		{"11", 1100},
		{"11.05", 1105},
		{"0.99", 99},
		{".75", 75},
		{"11.505", 1151},
		{"11.504", 1150},
		{"-$1.25", -125},
		{"$1,200.00", 120000},
		{"92233720368547758.07", 9223372036854775807},
	}

	for _, tc := range tests {
		got, err := Parse(Money(0), tc.input)
		if err != nil {
			t.Errorf("Parse(money, %q) error: %v", tc.input, err)
			continue
		}
		if got.Value != tc.want {
			t.Errorf("Parse(money, %q) = %d cents, want %d", tc.input, got.Value, tc.want)
		}
	}
}

func TestParse_Composite(t *testing.T) {
	expected := Composite([]string{"h", "min"}, 2, 35)
	inputs := []string{
		"2 35",
		"2:35",
		"2, 35",
		"2|35",
		"2h 35m",
		"2h35min",
		"2 hours 35 minutes",
		"2 hours and 35 minutes",
	}

	for _, in := range inputs {
		got, err := Parse(expected, in)
		if err != nil {
			t.Errorf("Parse(composite, %q) error: %v", in, err)
			continue
		}
		if !Equal(got, expected) {
			t.Errorf("Parse(composite, %q) = %v, want 2 35", in, got)
		}
	}
}

func TestParse_Choice(t *testing.T) {
	expected := Choice("3/4", "3/4", "2/3")
	tests := []struct {
		input string
		want  string
	}{
		{"3/4", "3/4"},
		{"1", "3/4"},
		{"2", "2/3"},
		{" 2/3 ", "2/3"},
	}

	for _, tc := range tests {
		got, err := Parse(expected, tc.input)
		if err != nil {
			t.Errorf("Parse(choice, %q) error: %v", tc.input, err)
			continue
		}
		if got.Text != tc.want {
			t.Errorf("Parse(choice, %q) = %q, want %q", tc.input, got.Text, tc.want)
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		expected Answer
		input    string
	}{
		{Frac(1, 2), ""},
		{Frac(1, 2), "abc"},
		{Frac(1, 2), "1/0"},
		{Frac(1, 2), "1/2/3"},
		{Frac(1, 2), "."},
		{Int(3), ""},
		{Int(3), "three"},
		{Int(3), "3.5"},
		{Money(100), "abc"},
		{Money(100), "$"},
		{Money(100), "1.2.3"},
		{Money(100), "92233720368547758.08"},
		{Money(100), "-$92233720368547759"},
		{Frac(1, 2), "9223372036854775807 1/2"},
		{Frac(1, 2), "-4611686018427387904 1/2"},
		{Composite(nil, 2, 35), "2"},
		{Composite(nil, 2, 35), "2 35 10"},
		{Composite(nil, 2, 35), "2 apples 35"},
		{Composite(nil, 2, 35), "2.5 35"},
		{Choice("Ava", "Ava", "Ben"), "Cal"},
		{Choice("Ava", "Ava", "Ben"), "3"},
	}

	for _, tc := range tests {
		_, err := Parse(tc.expected, tc.input)
		if err == nil {
			t.Errorf("Parse(%s, %q) succeeded, want error", tc.expected.Kind, tc.input)
			continue
		}
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("Parse(%s, %q) error %v does not match ErrInvalidFormat", tc.expected.Kind, tc.input, err)
		}
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Kind != tc.expected.Kind {
			t.Errorf("Parse(%s, %q) error %v is not a *ParseError for the kind", tc.expected.Kind, tc.input, err)
		}
	}
}
