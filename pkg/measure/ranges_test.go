package measure

import "testing"

func TestRanges(t *testing.T) {
	rs := Ranges()
	if len(rs) != 16 {
		t.Fatalf("len(Ranges()) = %d, want 16", len(rs))
	}
	if rs[0].Name != "bust" || rs[0].Min != 70 || rs[0].Max != 130 || rs[0].Default != 103 {
		t.Errorf("Ranges()[0] = %+v", rs[0])
	}
	for _, r := range rs {
		if r.Default < r.Min || r.Default > r.Max {
			t.Errorf("%s default %v outside [%v, %v]", r.Name, r.Default, r.Min, r.Max)
		}
	}
}

func TestRangeOf(t *testing.T) {
	r, ok := RangeOf("bust_offset")
	if !ok {
		t.Fatal("RangeOf(bust_offset) not found")
	}
	if r.Min != 7 || r.Max != 13 {
		t.Errorf("RangeOf(bust_offset) = %+v", r)
	}
	if _, ok := RangeOf("neck"); ok {
		t.Error("RangeOf(neck) should not exist")
	}
}
