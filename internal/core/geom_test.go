package core

import "testing"

func TestVecAdd(t *testing.T) {
	got := Vec{X: 6, Y: 9}.Add(Vec{X: 0, Y: -1})
	if got != (Vec{X: 6, Y: 8}) {
		t.Errorf("Add() = %v, expected (6, 8)", got)
	}
	if (Vec{X: 1, Y: 0}).Neg() != (Vec{X: -1, Y: 0}) {
		t.Error("Neg() should flip both components")
	}
}

func TestRectContains(t *testing.T) {
	r := Square(25)

	tests := []struct {
		name     string
		c        Vec
		expected bool
	}{
		{"origin", Vec{0, 0}, true},
		{"inside", Vec{12, 7}, true},
		{"last cell", Vec{24, 24}, true},
		{"right edge (exclusive)", Vec{25, 9}, false},
		{"bottom edge (exclusive)", Vec{9, 25}, false},
		{"outside left", Vec{-1, 9}, false},
		{"outside top", Vec{9, -1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.c)
			if result != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.c, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
	if r.Area() != 300 {
		t.Errorf("Area() = %d, expected 300", r.Area())
	}
	if NewRect(0, 0, -1, 4).Area() != 0 {
		t.Error("Area() of an empty rect should be 0")
	}
}

func TestRectWrap(t *testing.T) {
	r := Square(25)

	tests := []struct {
		in, expected Vec
	}{
		{Vec{25, 9}, Vec{0, 9}},
		{Vec{-1, 9}, Vec{24, 9}},
		{Vec{9, -1}, Vec{9, 24}},
		{Vec{9, 25}, Vec{9, 0}},
		{Vec{3, 4}, Vec{3, 4}},
	}

	for _, tc := range tests {
		if got := r.Wrap(tc.in); got != tc.expected {
			t.Errorf("Wrap(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestMod(t *testing.T) {
	tests := []struct {
		a, n, expected int
	}{
		{5, 3, 2},
		{-1, 25, 24},
		{-26, 25, 24},
		{0, 7, 0},
	}

	for _, tc := range tests {
		if got := Mod(tc.a, tc.n); got != tc.expected {
			t.Errorf("Mod(%d, %d) = %d, expected %d", tc.a, tc.n, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestUnitStep(t *testing.T) {
	tests := []struct {
		name     string
		expected Vec
		ok       bool
	}{
		{"up", Vec{X: 0, Y: -1}, true},
		{"down", Vec{X: 0, Y: 1}, true},
		{"left", Vec{X: -1, Y: 0}, true},
		{"right", Vec{X: 1, Y: 0}, true},
		{"north", Vec{}, false},
	}

	for _, tc := range tests {
		got, ok := UnitStep(tc.name)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("UnitStep(%q) = %v, %v, expected %v, %v", tc.name, got, ok, tc.expected, tc.ok)
		}
	}
}
