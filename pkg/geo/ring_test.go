package geo

import (
	"errors"
	"testing"
)

func square(lat, lng, d float64) Ring {
	return Ring{
		{Latitude: lat, Longitude: lng},
		{Latitude: lat, Longitude: lng + d},
		{Latitude: lat + d, Longitude: lng + d},
		{Latitude: lat + d, Longitude: lng},
	}
}

func TestNormalizeRingClosesAndDedups(t *testing.T) {
	in := square(10, 20, 0.01)
	in = append(Ring{in[0]}, in...) // duplicate first point
	out, err := NormalizeRing(in)
	if err != nil {
		t.Fatalf("NormalizeRing: %v", err)
	}
	if !out.IsClosed() {
		t.Error("expected closed ring")
	}
	if len(out) != 5 {
		t.Errorf("expected 5 entries, got %d", len(out))
	}
}

func TestNormalizeRingIdempotent(t *testing.T) {
	once, err := NormalizeRing(square(-1, -1, 0.005))
	if err != nil {
		t.Fatalf("NormalizeRing: %v", err)
	}
	twice, err := NormalizeRing(once)
	if err != nil {
		t.Fatalf("NormalizeRing (second): %v", err)
	}
	if len(once) != len(twice) {
		t.Fatalf("length changed: %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("entry %d changed: %s -> %s", i, once[i], twice[i])
		}
	}
}

func TestNormalizeRingErrors(t *testing.T) {
	tests := []struct {
		name string
		ring Ring
		want error
	}{
		{"two points", Ring{{1, 1}, {1, 2}, {1, 1}}, ErrTooFewPoints},
		{"repeated point", Ring{{1, 1}, {1, 1}, {1, 1}, {1, 1}}, ErrTooFewPoints},
		{"latitude", Ring{{91, 0}, {0, 1}, {1, 1}}, ErrOutOfRange},
		{"longitude", Ring{{0, 0}, {0, 181}, {1, 1}}, ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeRing(tt.ring)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSelfIntersections(t *testing.T) {
	bowtie := []Point2D{Pt(0, 0), Pt(10, 10), Pt(10, 0), Pt(0, 10)}
	if IsSimple(bowtie) {
		t.Error("expected bowtie to self-intersect")
	}
	sq := []Point2D{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	if !IsSimple(sq) {
		t.Errorf("expected square to be simple, got %v", SelfIntersections(sq))
	}
}

func TestCheckRingBowtie(t *testing.T) {
	bowtie := Ring{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0.01, Longitude: 0.01},
		{Latitude: 0, Longitude: 0.01},
		{Latitude: 0.01, Longitude: 0},
		{Latitude: 0, Longitude: 0},
	}
	if err := CheckRing(bowtie); !errors.Is(err, ErrSelfIntersecting) {
		t.Errorf("expected ErrSelfIntersecting, got %v", err)
	}
}

func TestRepairRingBowtie(t *testing.T) {
	bowtie := Ring{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0.01, Longitude: 0.01},
		{Latitude: 0, Longitude: 0.01},
		{Latitude: 0.01, Longitude: 0},
	}
	fixed, err := RepairRing(bowtie)
	if err != nil {
		t.Fatalf("RepairRing: %v", err)
	}
	if err := CheckRing(fixed); err != nil {
		t.Errorf("repaired ring still invalid: %v", err)
	}
}

func TestRepairRingSimpleUnchanged(t *testing.T) {
	in, _ := NormalizeRing(square(5, 5, 0.01))
	out, err := RepairRing(in)
	if err != nil {
		t.Fatalf("RepairRing: %v", err)
	}
	if len(out) != len(in) {
		t.Errorf("expected unchanged ring, got %d entries", len(out))
	}
}
