package tensor

import "testing"

func TestInt64Matrix(t *testing.T) {
	var m = NewInt64([]int64{1, 2, 3, 4, 5, 6}, 2, 3)
	if m.Rows() != 2 || m.Cols() != 3 {
		t.Fatalf("bad dims %d x %d", m.Rows(), m.Cols())
	}
	if m.At(1, 2) != 6 {
		t.Errorf("At(1, 2) = %d", m.At(1, 2))
	}
	if r := m.Row(1); len(r) != 3 || r[0] != 4 {
		t.Errorf("Row(1) = %v", r)
	}
}

func TestFilled(t *testing.T) {
	var v = Filled(7, 4)
	if v.Cols() != 1 || v.Rows() != 4 {
		t.Fatalf("bad vector dims %v", v.Shape)
	}
	for _, x := range v.Data {
		if x != 7 {
			t.Fatalf("unexpected value %d", x)
		}
	}
	if got := v.Ints(); len(got) != 4 || got[3] != 7 {
		t.Errorf("Ints() = %v", got)
	}
}

func TestNewInt64ShapeMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on shape mismatch")
		}
	}()
	NewInt64([]int64{1, 2, 3}, 2, 2)
}
