package catalog

import (
	"reflect"
	"testing"
)

func TestTokensSplitsOnNonAlphanumerics(t *testing.T) {
	cases := map[string][]string{
		"Breakfast Lunch":  {"breakfast", "lunch"},
		"breakfast/lunch":  {"breakfast", "lunch"},
		"Dinner,  Snack!":  {"dinner", "snack"},
		"":                 nil,
		"high-protein mix": {"high", "protein", "mix"},
	}
	for input, want := range cases {
		got := Tokens(input)
		if len(got) == 0 && len(want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Tokens(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestLooseListHandlesAllShapes(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"plain string", "Diabetes", []string{"diabetes"}},
		{"json array", `["Diabetes", "Hypertension"]`, []string{"diabetes", "hypertension"}},
		{"malformed braces", `{Diabetes,Hypertension}`, []string{"diabetes", "hypertension"}},
		{"malformed quoted", `{"Diabetes","High Cholesterol"}`, []string{"diabetes", "high cholesterol"}},
		{"garbage degrades to literal", "not:json:at-all", []string{"not:json:at-all"}},
	}
	for _, tc := range cases {
		got := LooseList(tc.input)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: LooseList(%q) = %v, want %v", tc.name, tc.input, got, tc.want)
		}
	}
}

func TestContainsWholeWord(t *testing.T) {
	if !ContainsWholeWord("Grilled Shrimp Skewers", "shrimp") {
		t.Error("expected whole-word match for shrimp")
	}
	if ContainsWholeWord("Shrimply Delicious", "shrimp") {
		t.Error("did not expect partial word to match")
	}
}
