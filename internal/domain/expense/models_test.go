package expense

import "testing"

func fixtures() []*FixedExpense {
	return []*FixedExpense{
		{ID: "1", Name: "Aluguel", Amount: 1500, Category: "moradia", DueDay: 5, Active: true},
		{ID: "2", Name: "Internet", Amount: 100, Category: "moradia", DueDay: 12, Active: true},
		{ID: "3", Name: "Academia", Amount: 90, Category: "saude", DueDay: 10, Active: false},
		{ID: "4", Name: "Streaming", Amount: 40, Category: "lazer", DueDay: 8, Active: true},
	}
}

func TestTotalActive(t *testing.T) {
	if got := TotalActive(fixtures()); got != 1640 {
		t.Errorf("TotalActive = %v, want 1640 (inactive excluded)", got)
	}
}

func TestTotalsByCategory(t *testing.T) {
	got := TotalsByCategory(fixtures())
	if got["moradia"] != 1600 {
		t.Errorf("moradia = %v, want 1600", got["moradia"])
	}
	if got["lazer"] != 40 {
		t.Errorf("lazer = %v, want 40", got["lazer"])
	}
	if _, ok := got["saude"]; ok {
		t.Error("inactive category bucketed")
	}
}

func TestUpcomingWithin(t *testing.T) {
	got := UpcomingWithin(fixtures(), 5, 7)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// sorted by due day; inactive Academia (day 10) excluded
	if got[0].Name != "Aluguel" || got[1].Name != "Streaming" || got[2].Name != "Internet" {
		t.Errorf("order = %s, %s, %s", got[0].Name, got[1].Name, got[2].Name)
	}

	if got := UpcomingWithin(fixtures(), 20, 7); len(got) != 0 {
		t.Errorf("window past all due days returned %d items", len(got))
	}
}

func TestCalendarOrder(t *testing.T) {
	got := CalendarOrder(fixtures())
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 active", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].DueDay > got[i].DueDay {
			t.Errorf("not sorted by due day: %v", got)
		}
	}
}

func TestCreateParams_NormalizeAndValidate(t *testing.T) {
	p := CreateParams{Name: " Luz ", Amount: -5, DueDay: 0}
	p.Normalize()
	if p.Name != "Luz" || p.Amount != 0 || p.DueDay != 1 || p.Category != DefaultCategory {
		t.Errorf("Normalize() = %+v", p)
	}

	if err := (CreateParams{Name: ""}).Validate(); err == nil {
		t.Error("blank name accepted")
	}
}
