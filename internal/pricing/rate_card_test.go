package pricing

import (
	"testing"
	"time"

	"workx.com/workx/internal/constants"
)

func TestMaterialCost(t *testing.T) {
	cases := []struct {
		workType string
		option   constants.MaterialOption
		want     float64
	}{
		{"Blue Book", constants.MaterialBuy, 20},
		{"Blue Book", constants.MaterialProvide, 0},
		{"Record-Ruled", constants.MaterialBuy, 90},
		{"Record-Unruled", constants.MaterialBuy, 90},
		{"Record-Ruled", constants.MaterialProvide, 0},
		{"PPT", constants.MaterialBuy, 0},
		{"Report", constants.MaterialBuy, 0},
	}

	for _, c := range cases {
		got := MaterialCost(c.workType, c.option)
		if got != c.want {
			t.Errorf("MaterialCost(%s, %s) = %v, want %v", c.workType, c.option, got, c.want)
		}
	}
}

func TestSameDay(t *testing.T) {
	today := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	isSame, surcharge := SameDay("2024-03-15", today)
	if !isSame || surcharge != 0.25 {
		t.Errorf("expected same-day with 0.25 surcharge, got %v %v", isSame, surcharge)
	}

	isSame, surcharge = SameDay("2024-03-16", today)
	if isSame || surcharge != 0 {
		t.Errorf("expected no surcharge for a later deadline, got %v %v", isSame, surcharge)
	}
}

func TestRateCardIsACopy(t *testing.T) {
	card := RateCard()
	if len(card) != 7 {
		t.Fatalf("expected 7 work types, got %d", len(card))
	}
	if card["Blue Book"].Base != 15 || card["Report"].Fee != 12 {
		t.Error("unexpected rate card values")
	}

	card["Blue Book"] = Rate{Base: 1}
	if RateCard()["Blue Book"].Base != 15 {
		t.Error("mutating the returned card leaked into the table")
	}
}

func TestValidWorkType(t *testing.T) {
	if !ValidWorkType("PPT") {
		t.Error("PPT should be a valid work type")
	}
	if ValidWorkType("Essay") {
		t.Error("Essay should not be a valid work type")
	}
}
