package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		base string
		str  string
	}{
		{"1000", "1000000000000000000000", "1000"},
		{"0.1", "100000000000000000", "0.1"},
		{".5", "500000000000000000", "0.5"},
		{"2000.25", "2000250000000000000000", "2000.25"},
		{"0", "0", "0"},
		{"007", "7000000000000000000", "7"},
		{"0.000000000000000001", "1", "0.000000000000000001"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a, err := ParseAmount(tt.in)
			if err != nil {
				t.Fatalf("parse %q: %v", tt.in, err)
			}
			if got := a.BaseUnits(); got != tt.base {
				t.Errorf("BaseUnits: got %s, want %s", got, tt.base)
			}
			if got := a.String(); got != tt.str {
				t.Errorf("String: got %s, want %s", got, tt.str)
			}
		})
	}
}

func TestParseAmountRejects(t *testing.T) {
	for _, in := range []string{"", "-1", "+1", "1.2.3", "abc", "1e18", "0.0000000000000000001"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseAmount(in); !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("expected ErrInvalidAmount for %q, got %v", in, err)
			}
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() (Amount, error)
		expected Amount
	}{
		{"Add", func() (Amount, error) { return Units(100).Add(Units(200)) }, Units(300)},
		{"Sub", func() (Amount, error) { return Units(500).Sub(Units(200)) }, Units(300)},
		{"Mul ratio", func() (Amount, error) { return Units(2000).Mul(MustParseAmount("0.1")) }, Units(200)},
		{"Div price", func() (Amount, error) { return Units(20000).Div(Units(10)) }, Units(2000)},
		{"MulDiv", func() (Amount, error) { return Units(2000).MulDiv(Units(30), Units(60)) }, Units(1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op()
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAmountOverflowChecks(t *testing.T) {
	maxAmount, err := ParseBaseUnits("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := maxAmount.Add(BaseUnits(1)); !errors.Is(err, ErrOverflow) {
		t.Errorf("Add: expected ErrOverflow, got %v", err)
	}
	if _, err := maxAmount.Mul(Units(2)); !errors.Is(err, ErrOverflow) {
		t.Errorf("Mul: expected ErrOverflow, got %v", err)
	}
	if _, err := Units(1).Sub(Units(2)); !errors.Is(err, ErrUnderflow) {
		t.Errorf("Sub: expected ErrUnderflow, got %v", err)
	}
	if _, err := Units(1).Div(Zero()); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Div: expected ErrDivisionByZero, got %v", err)
	}
	if got := Units(1).SaturatingSub(Units(2)); !got.IsZero() {
		t.Errorf("SaturatingSub: expected zero, got %v", got)
	}
}

func TestAmountComparison(t *testing.T) {
	a, b := Units(100), Units(200)

	if !a.LessThan(b) || a.GreaterThan(b) {
		t.Error("expected 100 < 200")
	}
	if a.Cmp(b) != -1 || b.Cmp(a) != 1 || a.Cmp(a) != 0 {
		t.Error("unexpected Cmp result")
	}
	if !a.Min(b).Equal(a) {
		t.Error("Min should return the smaller value")
	}
	if !Zero().IsZero() || Zero().IsPositive() || !a.IsPositive() {
		t.Error("unexpected zero checks")
	}
}

func TestAmountJSON(t *testing.T) {
	in := struct {
		Amount Amount `json:"amount"`
	}{Amount: MustParseAmount("1234.5")}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"amount":"1234.5"}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var out struct {
		Amount Amount `json:"amount"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !out.Amount.Equal(in.Amount) {
		t.Errorf("got %v, want %v", out.Amount, in.Amount)
	}
}
