// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package catalog

import (
	"math"
	"sort"
)

// Mobile catalog column names.
const (
	ColPrice        = "price"
	ColValidityDays = "validity_days"
	ColDataPerDay   = "data_per_day"
	ColPlanClass    = "plan_class"
	ColPricePerGB   = "price_per_GB"
)

// Broadband catalog column names.
const (
	ColBroadbandPrice    = "Price (₹)"
	ColBroadbandValidity = "Validity (days)"
	ColBroadbandSpeed    = "Speed (Mbps)"
	ColBroadbandRegion   = "Region"
)

// RegionFeaturePrefix prefixes one-hot region feature names (Region_Delhi).
const RegionFeaturePrefix = ColBroadbandRegion + "_"

// MobilePlan is one row of the mobile catalog.
// Missing numeric cells are NaN and never match a range.
type MobilePlan struct {
	Price        float64
	ValidityDays float64
	DataPerDay   float64
	PlanClass    string
	PricePerGB   float64

	// Fields holds every CSV column of the row, including the ones above.
	Fields map[string]any
}

// BroadbandPlan is one row of the broadband catalog.
type BroadbandPlan struct {
	Price        float64
	ValidityDays float64
	SpeedMbps    float64
	Region       string

	Fields map[string]any
}

// Record is a plan as column name to value, used by renderers.
type Record map[string]any

// Range is an inclusive numeric interval.
type Range struct {
	Min float64
	Max float64
}

// Around returns the inclusive interval [v*(1-tol), v*(1+tol)].
func Around(v, tol float64) *Range {
	lo, hi := v*(1-tol), v*(1+tol)
	if lo > hi {
		lo, hi = hi, lo
	}
	return &Range{Min: lo, Max: hi}
}

// Contains reports whether x lies within the interval. NaN is never contained.
func (r *Range) Contains(x float64) bool {
	return x >= r.Min && x <= r.Max
}

// MobileCriteria selects mobile plans. Nil ranges and an empty PlanClass place no constraint.
type MobileCriteria struct {
	Price      *Range
	Validity   *Range
	DataPerDay *Range
	PlanClass  string
}

// Mobile is the immutable mobile plan catalog.
type Mobile struct {
	columns []string
	plans   []MobilePlan
}

// NewMobile builds a catalog from already parsed plans, in order.
func NewMobile(columns []string, plans []MobilePlan) *Mobile {
	return &Mobile{columns: columns, plans: plans}
}

// Len returns the number of plans.
func (m *Mobile) Len() int { return len(m.plans) }

// Columns returns the CSV column order.
func (m *Mobile) Columns() []string { return append([]string(nil), m.columns...) }

// Plans returns a copy of all plans in catalog order.
func (m *Mobile) Plans() []MobilePlan { return append([]MobilePlan(nil), m.plans...) }

// Filter returns the plans that satisfy every present criterion, in catalog order.
func (m *Mobile) Filter(c MobileCriteria) []MobilePlan {
	out := make([]MobilePlan, 0, len(m.plans))
	for _, p := range m.plans {
		if c.PlanClass != "" && p.PlanClass != c.PlanClass {
			continue
		}
		if c.Price != nil && !c.Price.Contains(p.Price) {
			continue
		}
		if c.Validity != nil && !c.Validity.Contains(p.ValidityDays) {
			continue
		}
		if c.DataPerDay != nil && !c.DataPerDay.Contains(p.DataPerDay) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Classes returns the distinct plan classes in first-seen order.
func (m *Mobile) Classes() []string {
	seen := make(map[string]bool)
	var classes []string
	for _, p := range m.plans {
		if p.PlanClass != "" && !seen[p.PlanClass] {
			seen[p.PlanClass] = true
			classes = append(classes, p.PlanClass)
		}
	}
	return classes
}

// SortByPricePerGB orders plans by ascending price per GB.
// The sort is stable so equal prices keep catalog order; NaN sorts last.
func SortByPricePerGB(plans []MobilePlan) {
	sort.SliceStable(plans, func(i, j int) bool {
		a, b := plans[i].PricePerGB, plans[j].PricePerGB
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		return a < b
	})
}

// Head returns at most n leading plans.
func Head(plans []MobilePlan, n int) []MobilePlan {
	if n < len(plans) {
		return plans[:n]
	}
	return plans
}

// MobileRecords converts plans to renderer records.
func MobileRecords(plans []MobilePlan) []Record {
	out := make([]Record, len(plans))
	for i, p := range plans {
		out[i] = Record(p.Fields)
	}
	return out
}

// Broadband is the immutable broadband plan catalog.
type Broadband struct {
	columns []string
	plans   []BroadbandPlan
	regions []string
}

// NewBroadband builds a catalog from already parsed plans, in order.
func NewBroadband(columns []string, plans []BroadbandPlan) *Broadband {
	seen := make(map[string]bool)
	regions := make([]string, 0)
	for _, p := range plans {
		if !seen[p.Region] {
			seen[p.Region] = true
			regions = append(regions, p.Region)
		}
	}
	sort.Strings(regions)
	return &Broadband{columns: columns, plans: plans, regions: regions}
}

// Len returns the number of plans.
func (b *Broadband) Len() int { return len(b.plans) }

// Columns returns the CSV column order.
func (b *Broadband) Columns() []string { return append([]string(nil), b.columns...) }

// Plans returns a copy of all plans in catalog order.
func (b *Broadband) Plans() []BroadbandPlan { return append([]BroadbandPlan(nil), b.plans...) }

// At returns the plan at catalog position i.
func (b *Broadband) At(i int) (BroadbandPlan, bool) {
	if i < 0 || i >= len(b.plans) {
		return BroadbandPlan{}, false
	}
	return b.plans[i], true
}

// Regions returns the sorted, de-duplicated region names.
func (b *Broadband) Regions() []string { return append([]string(nil), b.regions...) }

// HasRegion reports whether any plan is in region.
func (b *Broadband) HasRegion(region string) bool {
	i := sort.SearchStrings(b.regions, region)
	return i < len(b.regions) && b.regions[i] == region
}

// BroadbandRecords converts plans to renderer records.
func BroadbandRecords(plans []BroadbandPlan) []Record {
	out := make([]Record, len(plans))
	for i, p := range plans {
		out[i] = Record(p.Fields)
	}
	return out
}
