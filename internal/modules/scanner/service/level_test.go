package service

import "testing"

func TestLevel(t *testing.T) {
	cases := []struct {
		name string
		path []int
		want int
	}{
		{"empty", nil, 1},
		{"single element", []int{2000}, 1},
		{"one reversal", []int{2000, 1732, -1500}, 1},
		{"short orientation", []int{-2000, -1732, 1500}, 1},
		{"absent key", []int{999, 123}, 1},
		{"unmatched tail", []int{2000, 1299}, 1},
		{"two reversals", []int{2000, -1732, 1299, 1125, -974, 843}, 2},
		{"six reversals", []int{2000, -1732, 1299, 1125, -974, 843, 730, -632, 474, 411, -356, 267, 231, -200, 130, 112, -97, 54}, 6},
		{"six reversals short", []int{-2000, 1732, -1299, -1125, 974, -843, -730, 632, -474, -411, 356, -267, -231, 200, -130, -112, 97, -54}, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Level(tc.path); got != tc.want {
				t.Fatalf("Level(%v) = %d, want %d", tc.path, got, tc.want)
			}
		})
	}
}
