package animator

// Always matches every beat
func Always() Condition {
	return func(int) bool { return true }
}

// EveryN matches every n-th beat. Intervals below 1 behave as 1.
func EveryN(n int) Condition {
	if n < 1 {
		n = 1
	}
	return func(b int) bool { return b%n == 0 }
}

// EveryOnOff matches for on beats, then skips off beats, repeating
func EveryOnOff(on, off int) Condition {
	return func(b int) bool { return b%(on+off) < on }
}

// EveryOffOn skips off beats, then matches for on beats, repeating
func EveryOffOn(off, on int) Condition {
	return func(b int) bool { return b%(on+off) >= off }
}

// BeforeN matches beats strictly before n
func BeforeN(n int) Condition {
	return func(b int) bool { return b < n }
}

// AfterN matches beats at or after n
func AfterN(n int) Condition {
	return func(b int) bool { return b >= n }
}

// AtBeat matches exactly one beat
func AtBeat(n int) Condition {
	return func(b int) bool { return b == n }
}

// BetweenBeats matches beats in [start, end]
func BetweenBeats(start, end int) Condition {
	return func(b int) bool { return b >= start && b <= end }
}

// Combine matches when every given condition matches
func Combine(conds ...Condition) Condition {
	return func(b int) bool {
		for _, c := range conds {
			if !c(b) {
				return false
			}
		}
		return true
	}
}

// NoCreate is a no-op creation hook
func NoCreate() Hook {
	return func(*Generator) {}
}

// NoRequest is a no-op request
func NoRequest() Request {
	return func(*Generator, int) {}
}
