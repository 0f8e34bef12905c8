package proj4

import (
	"math"
	"testing"
)

func TestToGYSRewritesProj4String(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"+proj=utm +zone=32 +ellps=GRS80", "utm zone:32 ellps:GRS80"},
		{"+proj=noop", "noop"},
	}
	for _, c := range cases {
		if got := toGYS(c.in); got != c.want {
			t.Errorf("toGYS(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestConvertUTMRoundTrip(t *testing.T) {
	c, err := NewConverter("+proj=utm +zone=32 +ellps=GRS80")
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}

	input := []float64{12, 55}
	xy, err := c.Convert(input)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(xy) != 2 {
		t.Fatalf("got %d outputs, want 2", len(xy))
	}

	back, err := c.Inverse(xy)
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if math.Abs(back[0]-12) > 1e-6 || math.Abs(back[1]-55) > 1e-6 {
		t.Errorf("round trip = %v, want ~[12, 55]", back)
	}
}

func TestConvertRejectsOddLengthInput(t *testing.T) {
	c, err := NewConverter("+proj=utm +zone=32 +ellps=GRS80")
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	if _, err := c.Convert([]float64{1, 2, 3}); err == nil {
		t.Fatal("expected an error for an odd-length input array")
	}
}

func TestOneShotConvertHelper(t *testing.T) {
	xy, err := Convert("+proj=cart +ellps=GRS80", []float64{0, 0})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(xy) != 2 {
		t.Fatalf("got %d outputs, want 2", len(xy))
	}
}
