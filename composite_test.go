package koi_test

import (
	"errors"
	"testing"

	koi "github.com/koilang/koi"
)

func TestListRemoveShifts(t *testing.T) {
	l := koi.NewList("l", koi.IntValue(0), koi.IntValue(1), koi.IntValue(2), koi.IntValue(3))
	if err := l.Remove(1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if l.Len() != 3 {
		t.Fatalf("got len %d", l.Len())
	}
	want := []int64{0, 2, 3}
	for i, w := range want {
		v, err := l.At(i)
		if err != nil || v.Int != w {
			t.Errorf("index %d: got %d, %v", i, v.Int, err)
		}
	}
	if err := l.Remove(9); !errors.Is(err, koi.ErrIndexRange) {
		t.Errorf("got %v", err)
	}
}

func TestListSetAndClear(t *testing.T) {
	l := koi.NewList("l", koi.IntValue(1))
	if err := l.Set(0, koi.StringValue("x")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if l.KindAt(0) != koi.KindString {
		t.Errorf("got kind %v", l.KindAt(0))
	}
	l.Clear()
	if l.Len() != 0 {
		t.Errorf("got len %d", l.Len())
	}
}

func TestDictSetGetRemove(t *testing.T) {
	d := koi.NewDict("d")
	d.Set("a", koi.IntValue(1))
	d.Set("b", koi.IntValue(2))

	if v, err := d.Get("a"); err != nil || v.Int != 1 {
		t.Fatalf("Get: %d, %v", v.Int, err)
	}
	// Overwrite keeps the position.
	d.Set("a", koi.IntValue(10))
	if v, _ := d.Get("a"); v.Int != 10 {
		t.Errorf("got %d", v.Int)
	}
	if k, _ := d.KeyAt(0); k != "a" {
		t.Errorf("got key %q", k)
	}

	before := d.Len()
	if err := d.Remove("a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if d.Len() != before-1 {
		t.Errorf("got len %d", d.Len())
	}
	if _, err := d.Get("a"); !errors.Is(err, koi.ErrKeyNotFound) {
		t.Errorf("got %v", err)
	}
	if err := d.Remove("a"); !errors.Is(err, koi.ErrKeyNotFound) {
		t.Errorf("got %v", err)
	}
}

func TestDictInsertionOrder(t *testing.T) {
	d := koi.NewDict("d")
	d.Set("x", koi.IntValue(1))
	d.Set("y", koi.IntValue(2))
	d.Set("z", koi.IntValue(3))

	keys := func() []string {
		var out []string
		for i := 0; i < d.Len(); i++ {
			k, _ := d.KeyAt(i)
			out = append(out, k)
		}
		return out
	}

	got := keys()
	want := []string{"x", "y", "z"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got order %v", got)
		}
	}

	// Removing and re-inserting moves the key to the end.
	d.Remove("x")
	d.Set("x", koi.IntValue(9))
	got = keys()
	want = []string{"y", "z", "x"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got order %v", got)
		}
	}
}

func TestDictKindAndIndexAccess(t *testing.T) {
	d := koi.NewDict("d")
	d.Set("f", koi.FloatValue(1.5))
	if d.Kind("f") != koi.KindFloat {
		t.Errorf("got kind %v", d.Kind("f"))
	}
	if d.Kind("missing") != koi.KindInvalid {
		t.Errorf("got kind %v", d.Kind("missing"))
	}
	if v, err := d.At(0); err != nil || v.Float != 1.5 {
		t.Errorf("At: %g, %v", v.Float, err)
	}
	if _, err := d.At(5); !errors.Is(err, koi.ErrIndexRange) {
		t.Errorf("got %v", err)
	}
}

func TestSingle(t *testing.T) {
	s := koi.NewSingle("w", koi.IntValue(80))
	if s.Name() != "w" || s.Value().Int != 80 {
		t.Fatalf("got %v", s)
	}
	s.SetValue(koi.IntValue(90))
	if s.Value().Int != 90 {
		t.Fatalf("got %d", s.Value().Int)
	}
	if !s.Equal(koi.NewSingle("w", koi.IntValue(90))) {
		t.Error("Equal")
	}
	if s.Equal(koi.NewSingle("v", koi.IntValue(90))) {
		t.Error("Equal ignored name")
	}
}

func TestCompositeClone(t *testing.T) {
	l := koi.NewList("l", koi.IntValue(1))
	lc := l.Clone()
	lc.Append(koi.IntValue(2))
	if l.Len() != 1 {
		t.Errorf("original list grew")
	}

	d := koi.NewDict("d")
	d.Set("k", koi.IntValue(1))
	dc := d.Clone()
	dc.Set("k", koi.IntValue(2))
	if v, _ := d.Get("k"); v.Int != 1 {
		t.Errorf("original dict changed")
	}
}

func TestCompositeStrings(t *testing.T) {
	l := koi.NewList("pos", koi.IntValue(10), koi.IntValue(20))
	if got := l.String(); got != "pos(10, 20)" {
		t.Errorf("got %q", got)
	}
	s := koi.NewSingle("w", koi.IntValue(3))
	if got := s.String(); got != "w(3)" {
		t.Errorf("got %q", got)
	}
	d := koi.NewDict("style")
	d.Set("color", koi.StringValue("red"))
	d.Set("size", koi.IntValue(12))
	if got := d.String(); got != "style{color: red, size: 12}" {
		t.Errorf("got %q", got)
	}
}
