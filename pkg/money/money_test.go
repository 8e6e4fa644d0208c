package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSplit_RoundsToCents(t *testing.T) {
	per := Split(MustFromString("100.00"), 3)
	if per.String() != "33.33" {
		t.Fatalf("per=%s", per)
	}
	// remainder goes to the last part by caller convention
	last := MustFromString("100.00").Sub(Times(per, 2))
	if last.String() != "33.34" {
		t.Fatalf("last=%s", last)
	}
}

func TestPercent(t *testing.T) {
	got := Percent(MustFromString("1500.00"), MustFromString("8"))
	if got.String() != "120" && got.String() != "120.00" {
		t.Fatalf("got=%s", got)
	}
	if !got.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("got=%s", got)
	}
}

func TestMin(t *testing.T) {
	a, b := MustFromString("10.00"), MustFromString("7.50")
	if !Min(a, b).Equal(b) {
		t.Fatalf("min=%s", Min(a, b))
	}
	if !Min(b, a).Equal(b) {
		t.Fatalf("min=%s", Min(b, a))
	}
}

func TestFromString_Invalid(t *testing.T) {
	if _, err := FromString("not-a-number"); err == nil {
		t.Fatal("want error")
	}
}
