package usecase

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingAmounts is the monetary breakdown stored on a booking. Total is
// GST-inclusive; OwnerAmount = Total - PlatformFee exactly, so the split
// always sums back to the total.
type BookingAmounts struct {
	Total       decimal.Decimal
	GST         decimal.Decimal
	PlatformFee decimal.Decimal
	OwnerAmount decimal.Decimal
}

var decimalSeven = decimal.NewFromInt(7)

// ComputeBookingAmounts prices an inclusive calendar-day range off the site's
// weekly rate. A single-day booking (start == end) counts one day.
func ComputeBookingAmounts(weeklyRate decimal.Decimal, startDate, endDate time.Time, gstRate, platformFeeRate decimal.Decimal) BookingAmounts {
	days := DaysInclusive(startDate, endDate)

	dailyRate := weeklyRate.Div(decimalSeven)
	total := dailyRate.Mul(decimal.NewFromInt(int64(days))).Round(2)

	// GST component of the GST-inclusive total: total - total/(1+rate).
	exGST := total.Div(decimal.NewFromInt(1).Add(gstRate)).Round(2)
	gst := total.Sub(exGST)

	platformFee := total.Mul(platformFeeRate).Round(2)
	ownerAmount := total.Sub(platformFee)

	return BookingAmounts{
		Total:       total,
		GST:         gst,
		PlatformFee: platformFee,
		OwnerAmount: ownerAmount,
	}
}

// DaysInclusive counts calendar days in the closed interval [start, end].
func DaysInclusive(startDate, endDate time.Time) int {
	start := truncateToDay(startDate)
	end := truncateToDay(endDate)
	return int(end.Sub(start).Hours()/24) + 1
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
