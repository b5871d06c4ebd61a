package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/MikeConroy67/hydrology-tools/pkg/hydraulics"
)

func TestPositiveFloatRetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	p := NewWithIO(strings.NewReader("abc\n-2\n0\n0.5\n"), &out)

	v, err := p.PositiveFloat("diameter: ")
	if err != nil {
		t.Fatalf("PositiveFloat: %v", err)
	}
	if v != 0.5 {
		t.Errorf("value = %v, want 0.5", v)
	}
	if !strings.Contains(out.String(), "numeric value") || !strings.Contains(out.String(), "positive number") {
		t.Errorf("missing retry notices in output: %q", out.String())
	}
}

func TestFloatAcceptsNegative(t *testing.T) {
	var out bytes.Buffer
	p := NewWithIO(strings.NewReader("steep\n-0.02\n"), &out)

	v, err := p.Float("slope: ")
	if err != nil {
		t.Fatalf("Float: %v", err)
	}
	if v != -0.02 {
		t.Errorf("value = %v, want -0.02", v)
	}
	if !strings.Contains(out.String(), "numeric value") {
		t.Errorf("missing retry notice in output: %q", out.String())
	}
}

func TestNonNegativeFloatAcceptsZero(t *testing.T) {
	p := NewWithIO(strings.NewReader("0\n"), &bytes.Buffer{})
	v, err := p.NonNegativeFloat("age: ")
	if err != nil || v != 0 {
		t.Errorf("NonNegativeFloat = (%v, %v), want (0, nil)", v, err)
	}
}

func TestCount(t *testing.T) {
	p := NewWithIO(strings.NewReader("2.5\n-1\n3\n"), &bytes.Buffer{})
	n, err := p.Count("segments: ")
	if err != nil || n != 3 {
		t.Errorf("Count = (%v, %v), want (3, nil)", n, err)
	}
}

func TestMaterialDefaultsUnknown(t *testing.T) {
	var out bytes.Buffer
	p := NewWithIO(strings.NewReader("Bronze\n"), &out)
	m, err := p.Material()
	if err != nil {
		t.Fatalf("Material: %v", err)
	}
	if m != hydraulics.CastIron {
		t.Errorf("material = %q, want Cast Iron default", m)
	}
	if !strings.Contains(out.String(), "Defaulting") {
		t.Error("expected a substitution notice")
	}
}

func TestPositiveFloatEOF(t *testing.T) {
	p := NewWithIO(strings.NewReader(""), &bytes.Buffer{})
	if _, err := p.PositiveFloat("x: "); err == nil {
		t.Error("expected error at EOF")
	}
}
