package algo

import "testing"

func TestExaggerateValue(t *testing.T) {
	cases := []struct {
		z, factor, want float64
	}{
		{95, 1, 95},
		{95, 2, 190},
		{-4, 2.5, -10},
		{0, 30, 0},
	}
	for _, c := range cases {
		if got := ExaggerateValue(c.z, c.factor); got != c.want {
			t.Errorf("ExaggerateValue(%v, %v) = %v, 期望 %v", c.z, c.factor, got, c.want)
		}
	}
}

func TestExaggerateCompose(t *testing.T) {
	// 先 k1 再 k2 等价于一次 k1*k2
	for _, z := range []float64{95, -4, 0.5, 0} {
		twice := ExaggerateValue(ExaggerateValue(z, 2), 3)
		once := ExaggerateValue(z, 6)
		if twice != once {
			t.Errorf("z=%v: 两步 = %v, 一步 = %v", z, twice, once)
		}
	}
}

func TestExaggerateSliceKeepsInput(t *testing.T) {
	in := []float64{1, 2, 3}
	out := ExaggerateSlice(in, 3)

	diff(t, []float64{3, 6, 9}, out)
	// 输入保持原样
	diff(t, []float64{1, 2, 3}, in)
}

func TestExaggerateGrid(t *testing.T) {
	in := [][]float64{{1, 2}, {3, 4}}
	out := ExaggerateGrid(in, 2)

	diff(t, [][]float64{{2, 4}, {6, 8}}, out)
	diff(t, [][]float64{{1, 2}, {3, 4}}, in)

	// 系数 1 是恒等变换
	diff(t, in, ExaggerateGrid(in, 1))
}
