package mealplan

// usageHistory tracks how often and how recently each dish has been used
// within one generation run. It is created per call and discarded with it;
// nothing here is persisted or shared between runs.
type usageHistory struct {
	counts      map[string]int
	lastUsedDay map[string]int
}

func newUsageHistory() *usageHistory {
	return &usageHistory{
		counts:      make(map[string]int),
		lastUsedDay: make(map[string]int),
	}
}

func (u *usageHistory) use(dishID string, day int) {
	u.counts[dishID]++
	if last, ok := u.lastUsedDay[dishID]; !ok || day > last {
		u.lastUsedDay[dishID] = day
	}
}

// release undoes one use of a dish after a swap removed it from the plan.
func (u *usageHistory) release(dishID string) {
	if u.counts[dishID] <= 1 {
		delete(u.counts, dishID)
		delete(u.lastUsedDay, dishID)
		return
	}
	u.counts[dishID]--
}

func (u *usageHistory) count(dishID string) int {
	return u.counts[dishID]
}

// gapSatisfied reports whether enough days have passed since the dish was
// last used. A dish that was never used always satisfies the gap.
func (u *usageHistory) gapSatisfied(dishID string, day, minGap int) bool {
	last, ok := u.lastUsedDay[dishID]
	if !ok {
		return true
	}
	return day-last >= minGap
}
