package num

import "testing"

func TestToFloat64(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"  ", 0},
		{"12.5", 12.5},
		{" 42 ", 42},
		{"1,500,000", 1500000},
		{"-3.25", -3.25},
		{"abc", 0},
		{"12abc", 0},
	}
	for _, c := range cases {
		if got := ToFloat64(c.in); got != c.want {
			t.Errorf("ToFloat64(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestToInt(t *testing.T) {
	if got := ToInt("7.6"); got != 8 {
		t.Errorf("ToInt(7.6) = %d, want 8", got)
	}
	if got := ToInt("nope"); got != 0 {
		t.Errorf("ToInt(nope) = %d, want 0", got)
	}
}
