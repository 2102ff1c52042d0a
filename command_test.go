package koi_test

import (
	"errors"
	"testing"

	koi "github.com/koilang/koi"
)

func TestCloneIndependence(t *testing.T) {
	c := koi.NewCommand("draw")
	c.AddInt(10)
	c.AddString("label")
	c.AddList(koi.NewList("pos", koi.IntValue(1), koi.IntValue(2)))
	d := koi.NewDict("style")
	d.Set("color", koi.StringValue("red"))
	c.AddDict(d)

	cl := c.Clone()
	if !cl.Equal(c) {
		t.Fatal("clone differs from original")
	}

	// Mutating the clone must not reach the original.
	if err := cl.SetIntAt(0, 99); err != nil {
		t.Fatalf("SetIntAt: %v", err)
	}
	list, _ := cl.ListAt(2)
	list.Append(koi.IntValue(3))
	dict, _ := cl.DictAt(3)
	dict.Set("color", koi.StringValue("blue"))

	if n, _ := c.IntAt(0); n != 10 {
		t.Errorf("original int changed to %d", n)
	}
	if l, _ := c.ListAt(2); l.Len() != 2 {
		t.Errorf("original list grew to %d", l.Len())
	}
	if od, _ := c.DictAt(3); func() bool { v, _ := od.Get("color"); return v.Str != "red" }() {
		t.Error("original dict changed")
	}
	if cl.Equal(c) {
		t.Error("clone still equal after mutation")
	}
}

func TestEqualSemantics(t *testing.T) {
	a := koi.NewCommand("x")
	a.AddInt(1)
	b := koi.NewCommand("x")
	b.AddInt(1)
	if !a.Equal(b) {
		t.Error("equal commands compared unequal")
	}
	b.AddInt(2)
	if a.Equal(b) {
		t.Error("different arity compared equal")
	}
	c := koi.NewCommand("y")
	c.AddInt(1)
	if a.Equal(c) {
		t.Error("different names compared equal")
	}
}

func TestTypedAccessors(t *testing.T) {
	c := koi.NewCommand("c")
	c.AddInt(7)
	c.AddFloat(2.5)
	c.AddBool(true)
	c.AddString("s")
	c.AddLiteral("lit")

	if n, err := c.IntAt(0); err != nil || n != 7 {
		t.Errorf("IntAt: %d, %v", n, err)
	}
	if f, err := c.FloatAt(1); err != nil || f != 2.5 {
		t.Errorf("FloatAt: %g, %v", f, err)
	}
	if b, err := c.BoolAt(2); err != nil || !b {
		t.Errorf("BoolAt: %v, %v", b, err)
	}
	if s, err := c.StringAt(3); err != nil || s != "s" {
		t.Errorf("StringAt: %q, %v", s, err)
	}
	// Literals are readable through the string accessor.
	if s, err := c.StringAt(4); err != nil || s != "lit" {
		t.Errorf("StringAt literal: %q, %v", s, err)
	}
}

func TestAccessorErrorsAreLocal(t *testing.T) {
	c := koi.NewCommand("c")
	c.AddInt(7)

	if _, err := c.FloatAt(0); !errors.Is(err, koi.ErrTypeMismatch) {
		t.Errorf("got %v", err)
	}
	if _, err := c.IntAt(5); !errors.Is(err, koi.ErrIndexRange) {
		t.Errorf("got %v", err)
	}
	// The failed calls left the data unchanged.
	if n, err := c.IntAt(0); err != nil || n != 7 {
		t.Errorf("got %d, %v", n, err)
	}
	if c.KindAt(0) != koi.KindInt {
		t.Errorf("got kind %v", c.KindAt(0))
	}
	if c.KindAt(9) != koi.KindInvalid {
		t.Errorf("got kind %v", c.KindAt(9))
	}
}

func TestRemoveParamRenumbers(t *testing.T) {
	c := koi.NewCommand("c")
	c.AddInt(0)
	c.AddInt(1)
	c.AddInt(2)
	if err := c.RemoveParam(1); err != nil {
		t.Fatalf("RemoveParam: %v", err)
	}
	if c.NumParams() != 2 {
		t.Fatalf("got %d params", c.NumParams())
	}
	if n, _ := c.IntAt(0); n != 0 {
		t.Errorf("index 0: got %d", n)
	}
	if n, _ := c.IntAt(1); n != 2 {
		t.Errorf("index 1: got %d", n)
	}
	if err := c.RemoveParam(7); !errors.Is(err, koi.ErrIndexRange) {
		t.Errorf("got %v", err)
	}
}

func TestSetAtKeepsKind(t *testing.T) {
	c := koi.NewCommand("c")
	c.AddInt(1)
	if err := c.SetStringAt(0, "x"); !errors.Is(err, koi.ErrTypeMismatch) {
		t.Errorf("got %v", err)
	}
	if err := c.SetIntAt(0, 2); err != nil {
		t.Errorf("got %v", err)
	}
	if n, _ := c.IntAt(0); n != 2 {
		t.Errorf("got %d", n)
	}
}

func TestReservedCommandPredicates(t *testing.T) {
	if !koi.NewTextCommand("x").IsText() {
		t.Error("IsText")
	}
	if !koi.NewAnnotationCommand("x").IsAnnotation() {
		t.Error("IsAnnotation")
	}
	n := koi.NewNumberCommand(3)
	if !n.IsNumber() {
		t.Error("IsNumber")
	}
	if v, _ := n.IntAt(0); v != 3 {
		t.Errorf("got %d", v)
	}
}

func TestCompositeNameAt(t *testing.T) {
	c := koi.NewCommand("c")
	c.AddInt(1)
	c.AddSingle(koi.NewSingle("w", koi.IntValue(2)))
	if _, err := c.CompositeNameAt(0); !errors.Is(err, koi.ErrTypeMismatch) {
		t.Errorf("got %v", err)
	}
	if name, err := c.CompositeNameAt(1); err != nil || name != "w" {
		t.Errorf("got %q, %v", name, err)
	}
}
