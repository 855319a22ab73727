package strategy

import "testing"

func TestEnabledCount(t *testing.T) {
	strat := Strategy{
		ID: "s1",
		Factors: []SelectionFactor{
			{ID: "f1", Category: CategoryTechnical, Enabled: true},
			{ID: "f2", Category: CategoryTechnical, Enabled: false},
			{ID: "f3", Category: CategoryFundamental, Enabled: true},
			{ID: "f4", Category: CategorySentiment, Enabled: true},
			{ID: "f5", Category: CategoryCustom, Enabled: true},
		},
	}

	tests := []struct {
		category FactorCategory
		want     int
	}{
		{CategoryTechnical, 1},
		{CategoryFundamental, 1},
		{CategorySentiment, 1},
		{CategoryCustom, 1},
	}
	for _, tt := range tests {
		if got := strat.EnabledCount(tt.category); got != tt.want {
			t.Errorf("EnabledCount(%s) = %d, want %d", tt.category, got, tt.want)
		}
	}

	if got := (Strategy{}).EnabledCount(CategoryTechnical); got != 0 {
		t.Errorf("empty strategy should count 0, got %d", got)
	}
}

func TestFactorValueConstructors(t *testing.T) {
	if v := CheckboxValue(true); v.Kind != ValueCheckbox || !v.Checked {
		t.Errorf("unexpected checkbox value %+v", v)
	}
	if v := RangeValue(10, 25); v.Kind != ValueRange || v.Min != 10 || v.Max != 25 {
		t.Errorf("unexpected range value %+v", v)
	}
	if v := SelectValue("positive"); v.Kind != ValueSelect || v.Choice != "positive" {
		t.Errorf("unexpected select value %+v", v)
	}
	if v := TextValue("note"); v.Kind != ValueText || v.Text != "note" {
		t.Errorf("unexpected text value %+v", v)
	}
}
