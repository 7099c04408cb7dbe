package dice

import "testing"

func TestIntn_上界不越界(t *testing.T) {
	if got := Intn(Fixed(0.9999999), 5); got != 4 {
		t.Fatalf("期望 4, got=%d", got)
	}
	if got := Intn(Fixed(0), 5); got != 0 {
		t.Fatalf("期望 0, got=%d", got)
	}
	if got := Intn(Fixed(0.5), 0); got != 0 {
		t.Fatalf("期望 n<=0 时为 0, got=%d", got)
	}
}

func TestSequence_循环(t *testing.T) {
	s := NewSequence(0.1, 0.2)
	got := []float64{s.Float64(), s.Float64(), s.Float64()}
	if got[0] != 0.1 || got[1] != 0.2 || got[2] != 0.1 {
		t.Fatalf("期望按序循环, got=%v", got)
	}
}

func TestNewRand_同种子同序列(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("期望同种子结果一致")
		}
	}
}
