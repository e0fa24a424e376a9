package reasonability

// interval is a closed or half-open range used by the band tables.
type interval struct {
	lo, hi         float64
	loOpen, hiOpen bool
}

func (r interval) contains(v float64) bool {
	if r.loOpen {
		if v <= r.lo {
			return false
		}
	} else if v < r.lo {
		return false
	}
	if r.hiOpen {
		return v < r.hi
	}
	return v <= r.hi
}

func closed(lo, hi float64) interval { return interval{lo: lo, hi: hi} }
func openHi(lo, hi float64) interval { return interval{lo: lo, hi: hi, hiOpen: true} }
func openLo(lo, hi float64) interval { return interval{lo: lo, hi: hi, loOpen: true} }

// band is a green interval flanked by yellow intervals; anything outside is red.
type band struct {
	green  interval
	yellow []interval
}

func (b band) classify(v float64) Color {
	if b.green.contains(v) {
		return Green
	}
	for _, y := range b.yellow {
		if y.contains(v) {
			return Yellow
		}
	}
	return Red
}

var (
	mauEarly = band{
		green:  closed(50_000, 500_000),
		yellow: []interval{openHi(10_000, 50_000), openLo(500_000, 1_000_000)},
	}
	mauGrowth = band{
		green:  closed(300_000, 2_000_000),
		yellow: []interval{openHi(200_000, 300_000), openLo(2_000_000, 4_000_000)},
	}
	mauMature = band{
		green:  closed(1_000_000, 3_000_000),
		yellow: []interval{openHi(600_000, 1_000_000), openLo(3_000_000, 5_000_000)},
	}

	cacBand = band{
		green:  closed(5, 25),
		yellow: []interval{openLo(25, 50)},
	}

	staffRatioBand = band{
		green:  closed(20_000, 50_000),
		yellow: []interval{openHi(10_000, 20_000), openLo(50_000, 80_000)},
	}
)

// revenueDropThreshold is the share of last year's revenue below which a
// positive revenue turns yellow.
const revenueDropThreshold = 0.8

// MAUColor classifies monthly active users for year number y (1-based).
func MAUColor(y int, mau float64) Color {
	switch {
	case y <= 3:
		return mauEarly.classify(mau)
	case y <= 6:
		return mauGrowth.classify(mau)
	default:
		return mauMature.classify(mau)
	}
}

// CACColor classifies the acquisition cost per paying customer.
func CACColor(cac float64) Color {
	if cac <= 0 {
		return Red
	}
	return cacBand.classify(cac)
}

// ROASColor classifies return on advertising spend.
func ROASColor(roas float64) Color {
	switch {
	case roas >= 1.5:
		return Green
	case roas >= 1.0:
		return Yellow
	default:
		return Red
	}
}

// RevenueColor classifies revenue against the previous year's revenue.
// hasPrior is false for year 1.
func RevenueColor(revenue, prior float64, hasPrior bool) Color {
	if !(revenue > 0) {
		return Red
	}
	if hasPrior && prior > 0 && revenue < revenueDropThreshold*prior {
		return Yellow
	}
	return Green
}

// StaffColor classifies the number of monthly active users per employee.
func StaffColor(mau, staff float64) Color {
	if !(staff > 0) {
		return Red
	}
	return staffRatioBand.classify(mau / staff)
}
