package pathcode

import "testing"

func TestComposeParentRoundTrip(t *testing.T) {
	cases := []struct {
		parent  string
		localID int
		want    string
	}{
		{"", 2, "2"},
		{"2", 1, "2_1"},
		{"2_1", 1, "2_1_1"},
		{"2_1_1", 2, "2_1_1_2"},
		{"10_3", 42, "10_3_42"},
	}
	for _, c := range cases {
		code := Compose(c.parent, c.localID)
		if code != c.want {
			t.Errorf("Compose(%q, %d) = %q, want %q", c.parent, c.localID, code, c.want)
		}
		// Parent(Compose(p, n)) == p
		if got := Parent(code); got != c.parent {
			t.Errorf("Parent(%q) = %q, want %q", code, got, c.parent)
		}
		// LastSegment(Compose(p, n)) == n
		last, err := LastSegment(code)
		if err != nil {
			t.Fatalf("LastSegment(%q) 出错: %v", code, err)
		}
		if last != c.localID {
			t.Errorf("LastSegment(%q) = %d, want %d", code, last, c.localID)
		}
	}
}

func TestDepth(t *testing.T) {
	cases := map[string]int{
		"":        0,
		"2":       1,
		"2_1":     2,
		"2_1_1":   3,
		"2_1_1_2": 4,
	}
	for code, want := range cases {
		if got := Depth(code); got != want {
			t.Errorf("Depth(%q) = %d, want %d", code, got, want)
		}
	}
}

func TestSegments(t *testing.T) {
	segs, err := Segments("2_1_1_2")
	if err != nil {
		t.Fatalf("Segments 出错: %v", err)
	}
	want := []int{2, 1, 1, 2}
	if len(segs) != len(want) {
		t.Fatalf("段数 = %d, want %d", len(segs), len(want))
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segs[%d] = %d, want %d", i, segs[i], want[i])
		}
	}

	if _, err := Segments("2_x_1"); err == nil {
		t.Error("非整数段应当报错")
	}
}

func TestLastSegmentInvalid(t *testing.T) {
	if _, err := LastSegment("2_1_abc"); err == nil {
		t.Error("非整数尾段应当报错")
	}
	if _, err := LastSegment("2_0"); err == nil {
		t.Error("非正整数尾段应当报错")
	}
}

func TestAncestors(t *testing.T) {
	got := Ancestors("2_1_1")
	want := []string{"2_1_1", "2_1", "2"}
	if len(got) != len(want) {
		t.Fatalf("Ancestors 长度 = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ancestors[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestValid(t *testing.T) {
	valid := []string{"1", "2_1", "2_1_1_2"}
	invalid := []string{"", "_", "2_", "_1", "2__1", "a_b", "0", "2_0"}
	for _, c := range valid {
		if !Valid(c) {
			t.Errorf("Valid(%q) = false, want true", c)
		}
	}
	for _, c := range invalid {
		if Valid(c) {
			t.Errorf("Valid(%q) = true, want false", c)
		}
	}
}
