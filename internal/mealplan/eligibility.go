package mealplan

import (
	"strings"

	"nutriplan/internal/catalog"
	"nutriplan/internal/profile"
)

// allergenCategories expands a category-level exclusion to the specific
// foods it covers, so a user who excluded "meat" is still protected from a
// dish tagged only with "chicken".
var allergenCategories = map[string][]string{
	"meat":      {"beef", "pork", "chicken", "turkey", "lamb", "bacon", "ham"},
	"seafood":   {"shrimp", "prawn", "fish", "salmon", "tuna", "crab", "lobster"},
	"shellfish": {"shrimp", "prawn", "crab", "lobster", "clam", "mussel", "oyster"},
	"dairy":     {"milk", "cheese", "butter", "yogurt", "cream", "whey"},
	"nuts":      {"peanut", "almond", "walnut", "cashew", "pecan", "hazelnut", "pistachio"},
	"gluten":    {"wheat", "barley", "rye", "bread", "pasta", "flour"},
}

func expandAllergens(allergens []string) []string {
	var expanded []string
	seen := make(map[string]bool)
	add := func(name string) {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		expanded = append(expanded, name)
	}
	for _, a := range allergens {
		add(a)
		for _, member := range allergenCategories[strings.ToLower(strings.TrimSpace(a))] {
			add(member)
		}
	}
	return expanded
}

// matchTerm matches a normalized allergen term against free text. Single
// words match on whole-word boundaries; multi-word terms fall back to a
// substring match.
func matchTerm(text, term string) bool {
	if text == "" || term == "" {
		return false
	}
	if strings.ContainsRune(term, ' ') {
		return strings.Contains(strings.ToLower(text), term)
	}
	return catalog.ContainsWholeWord(text, term)
}

// IsDishSafe reports whether a dish is safe for the profile. Only allergens
// and health conditions are hard exclusions; eating style and goal tags are
// soft signals used in ranking, not here.
func IsDishSafe(p profile.Profile, d catalog.Dish) bool {
	for _, allergen := range expandAllergens(p.Allergens) {
		for _, ing := range d.Ingredients {
			if matchTerm(ing.Allergen, allergen) || matchTerm(ing.Name, allergen) {
				return false
			}
		}
		if strings.Contains(strings.ToLower(d.Name), allergen) ||
			strings.Contains(strings.ToLower(d.Description), allergen) {
			return false
		}
	}

	if len(p.HealthConditions) > 0 {
		// The health-condition field arrives in several shapes (plain
		// string, JSON array, malformed "{a,b}"); LooseList normalizes
		// all of them without ever failing the filter.
		dishConditions := catalog.LooseList(d.HealthCondition)
		for _, cond := range p.HealthConditions {
			cond = strings.ToLower(strings.TrimSpace(cond))
			if cond == "" {
				continue
			}
			for _, dc := range dishConditions {
				if dc == cond {
					return false
				}
			}
		}
	}

	return true
}
