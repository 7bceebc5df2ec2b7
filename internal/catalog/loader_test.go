// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package catalog

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	l, err := NewLoader()
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

const mobileCSV = `operator,price,validity_days,data_per_day,plan_class,price_per_GB
Jio,199,28,1.5,Budget,4.74
Airtel,299,28,2.0,Standard,5.34
Vi,2999,365,2.5,Premium,3.29
BSNL,107,35,,Budget,
`

func TestLoadMobile(t *testing.T) {
	l := newTestLoader(t)
	path := writeCSV(t, "mobile.csv", mobileCSV)

	m, err := l.LoadMobile(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadMobile() error = %v", err)
	}

	if m.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", m.Len())
	}

	plans := m.Plans()
	first := plans[0]
	if first.Price != 199 || first.ValidityDays != 28 || first.DataPerDay != 1.5 || first.PlanClass != "Budget" {
		t.Errorf("first plan = %+v", first)
	}
	if first.Fields["operator"] != "Jio" {
		t.Errorf("extra column operator = %v, want Jio", first.Fields["operator"])
	}
	if plans[2].PlanClass != "Premium" {
		t.Errorf("catalog order not preserved: third class = %q", plans[2].PlanClass)
	}

	last := plans[3]
	if !math.IsNaN(last.DataPerDay) || !math.IsNaN(last.PricePerGB) {
		t.Errorf("empty cells should be NaN, got data=%v ppg=%v", last.DataPerDay, last.PricePerGB)
	}
	if last.Fields[ColPricePerGB] != nil {
		t.Errorf("empty cell field = %v, want nil", last.Fields[ColPricePerGB])
	}

	cols := m.Columns()
	if len(cols) != 6 || cols[0] != "operator" {
		t.Errorf("Columns() = %v", cols)
	}
}

func TestLoadMobileMissingColumns(t *testing.T) {
	l := newTestLoader(t)
	path := writeCSV(t, "mobile.csv", "price,validity_days\n199,28\n")

	_, err := l.LoadMobile(context.Background(), path)
	if !errors.Is(err, ErrCatalog) {
		t.Fatalf("LoadMobile() error = %v, want ErrCatalog", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	l := newTestLoader(t)

	_, err := l.LoadBroadband(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	if !errors.Is(err, ErrCatalog) {
		t.Fatalf("LoadBroadband() error = %v, want ErrCatalog", err)
	}
}

func TestLoadBroadband(t *testing.T) {
	l := newTestLoader(t)
	content := "Provider,Price (₹),Validity (days),Speed (Mbps),Region\n" +
		"ACT,799,30,150,Bangalore\n" +
		"Airtel,999,30,200,Delhi\n" +
		"JioFiber,699,30,100,Mumbai\n" +
		"Hathway,599,30,75,Delhi\n"
	path := writeCSV(t, "broadband.csv", content)

	b, err := l.LoadBroadband(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadBroadband() error = %v", err)
	}

	if b.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", b.Len())
	}
	p, _ := b.At(1)
	if p.Price != 999 || p.SpeedMbps != 200 || p.Region != "Delhi" {
		t.Errorf("At(1) = %+v", p)
	}
	regions := b.Regions()
	if len(regions) != 3 || regions[0] != "Bangalore" || regions[2] != "Mumbai" {
		t.Errorf("Regions() = %v", regions)
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{int64(28), 28},
		{int32(7), 7},
		{float32(1.5), 1.5},
		{" 2.5 ", 2.5},
		{uint8(3), 3},
	}
	for _, tt := range tests {
		if got := toFloat(tt.in); got != tt.want {
			t.Errorf("toFloat(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if !math.IsNaN(toFloat(nil)) || !math.IsNaN(toFloat("n/a")) {
		t.Error("toFloat should return NaN for nil and non-numeric strings")
	}
}
