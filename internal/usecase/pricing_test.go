package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var (
	testGSTRate = decimal.RequireFromString("0.10")
	testFeeRate = decimal.RequireFromString("0.15")
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysInclusive(t *testing.T) {
	cases := []struct {
		start, end time.Time
		want       int
	}{
		{day(2026, 10, 1), day(2026, 10, 1), 1},
		{day(2026, 10, 1), day(2026, 10, 7), 7},
		{day(2026, 10, 1), day(2026, 10, 31), 31},
		// Time-of-day components are irrelevant.
		{time.Date(2026, 10, 1, 23, 0, 0, 0, time.UTC), time.Date(2026, 10, 2, 1, 0, 0, 0, time.UTC), 2},
	}
	for _, c := range cases {
		if got := DaysInclusive(c.start, c.end); got != c.want {
			t.Fatalf("DaysInclusive(%v, %v): expected %d, got %d", c.start, c.end, c.want, got)
		}
	}
}

func TestComputeBookingAmounts_FullWeek(t *testing.T) {
	amounts := ComputeBookingAmounts(decimal.NewFromInt(700), day(2026, 10, 1), day(2026, 10, 7), testGSTRate, testFeeRate)

	if !amounts.Total.Equal(decimal.RequireFromString("700.00")) {
		t.Fatalf("expected total 700.00, got %s", amounts.Total)
	}
	if !amounts.GST.Equal(decimal.RequireFromString("63.64")) {
		t.Fatalf("expected GST 63.64, got %s", amounts.GST)
	}
	if !amounts.PlatformFee.Equal(decimal.RequireFromString("105.00")) {
		t.Fatalf("expected fee 105.00, got %s", amounts.PlatformFee)
	}
	if !amounts.OwnerAmount.Equal(decimal.RequireFromString("595.00")) {
		t.Fatalf("expected owner amount 595.00, got %s", amounts.OwnerAmount)
	}
}

func TestComputeBookingAmounts_SingleDay(t *testing.T) {
	amounts := ComputeBookingAmounts(decimal.NewFromInt(700), day(2026, 10, 1), day(2026, 10, 1), testGSTRate, testFeeRate)

	if !amounts.Total.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected total 100.00, got %s", amounts.Total)
	}
}

// The split must reconstruct the total exactly even when the fee rounds.
func TestComputeBookingAmounts_SplitSumsToTotal(t *testing.T) {
	rates := []string{"350.55", "499.99", "1234.56", "87.01"}
	for _, raw := range rates {
		weekly := decimal.RequireFromString(raw)
		amounts := ComputeBookingAmounts(weekly, day(2026, 10, 3), day(2026, 10, 19), testGSTRate, testFeeRate)

		if !amounts.PlatformFee.Add(amounts.OwnerAmount).Equal(amounts.Total) {
			t.Fatalf("weekly=%s: fee %s + owner %s != total %s",
				raw, amounts.PlatformFee, amounts.OwnerAmount, amounts.Total)
		}
		if amounts.GST.GreaterThanOrEqual(amounts.Total) {
			t.Fatalf("weekly=%s: GST %s not below total %s", raw, amounts.GST, amounts.Total)
		}
	}
}
