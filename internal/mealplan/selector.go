package mealplan

import (
	"sort"
)

// selectCandidate picks a dish from a scored pool while honoring the
// repetition constraints, relaxing them progressively when they cannot be
// satisfied:
//
//  1. not used today, under the weekly repeat cap, and far enough from its
//     last use: uniform pick among the top candidates by score
//  2. drop the min-gap requirement, keep the repeat cap
//  3. drop the repeat cap too: order by (fewest uses, best score), pick
//     among a small window
//  4. last resort: the single best-scoring candidate regardless of
//     constraints, so a slot is never left empty while any dish exists
//
// On success the usage history is updated for the chosen dish.
func (g *Generator) selectCandidate(pool Pool, day int, usedToday map[string]bool, hist *usageHistory) (Candidate, bool) {
	if len(pool.Candidates) == 0 {
		return Candidate{}, false
	}

	strict := filterCandidates(pool.Candidates, func(c Candidate) bool {
		return !usedToday[c.Dish.ID] &&
			hist.count(c.Dish.ID) < g.cfg.MaxRepeatsPerWeek &&
			hist.gapSatisfied(c.Dish.ID, day, g.cfg.MinDaysBetweenSameDish)
	})
	if len(strict) > 0 {
		return g.recordPick(g.pickTopN(strict, g.cfg.TopPickWindow), day, hist), true
	}

	capped := filterCandidates(pool.Candidates, func(c Candidate) bool {
		return !usedToday[c.Dish.ID] && hist.count(c.Dish.ID) < g.cfg.MaxRepeatsPerWeek
	})
	if len(capped) > 0 {
		return g.recordPick(g.pickTopN(capped, g.cfg.TopPickWindow), day, hist), true
	}

	relaxed := filterCandidates(pool.Candidates, func(c Candidate) bool {
		return !usedToday[c.Dish.ID]
	})
	if len(relaxed) > 0 {
		sort.SliceStable(relaxed, func(i, j int) bool {
			ci, cj := hist.count(relaxed[i].Dish.ID), hist.count(relaxed[j].Dish.ID)
			if ci != cj {
				return ci < cj
			}
			return relaxed[i].Score > relaxed[j].Score
		})
		return g.recordPick(g.pickTopN(relaxed, g.cfg.RelaxedPickWindow), day, hist), true
	}

	// Every candidate is already on today's menu; take the best anyway.
	return g.recordPick(pool.Candidates[0], day, hist), true
}

func (g *Generator) recordPick(c Candidate, day int, hist *usageHistory) Candidate {
	hist.use(c.Dish.ID, day)
	return c
}

func (g *Generator) pickTopN(candidates []Candidate, n int) Candidate {
	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[g.rng.Intn(n)]
}

func filterCandidates(candidates []Candidate, keep func(Candidate) bool) []Candidate {
	var out []Candidate
	for _, c := range candidates {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
