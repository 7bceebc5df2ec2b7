// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

// Package isp holds the reference table of internet service provider speeds
// and the speed-test comparison built on it.
package isp

import "fmt"

// Speed is an advertised speed pair in Mbps.
type Speed struct {
	Download int `json:"download"`
	Upload   int `json:"upload"`
}

// Provider is one row of the directory.
type Provider struct {
	Name string `json:"name"`
	Speed
}

// Directory is an ordered, read-only ISP table.
type Directory struct {
	providers []Provider
	index     map[string]int
	best      int
}

// Default returns the built-in directory.
func Default() *Directory {
	return New([]Provider{
		{Name: "Airtel", Speed: Speed{Download: 25, Upload: 10}},
		{Name: "Jio", Speed: Speed{Download: 20, Upload: 8}},
		{Name: "BSNL", Speed: Speed{Download: 15, Upload: 5}},
		{Name: "Vodafone", Speed: Speed{Download: 18, Upload: 6}},
	})
}

// New builds a directory. The first provider with the highest download speed is best.
// Duplicate names keep their first entry.
func New(providers []Provider) *Directory {
	d := &Directory{index: make(map[string]int, len(providers)), best: -1}
	for _, p := range providers {
		if _, dup := d.index[p.Name]; dup {
			continue
		}
		d.index[p.Name] = len(d.providers)
		d.providers = append(d.providers, p)
		if d.best == -1 || p.Download > d.providers[d.best].Download {
			d.best = len(d.providers) - 1
		}
	}
	return d
}

// Providers returns the table in directory order.
func (d *Directory) Providers() []Provider {
	return append([]Provider(nil), d.providers...)
}

// Names returns provider names in directory order.
func (d *Directory) Names() []string {
	names := make([]string, len(d.providers))
	for i, p := range d.providers {
		names[i] = p.Name
	}
	return names
}

// Best returns the provider with the highest download speed.
func (d *Directory) Best() (Provider, bool) {
	if d.best == -1 {
		return Provider{}, false
	}
	return d.providers[d.best], true
}

// Lookup finds a provider by exact, case-sensitive name.
func (d *Directory) Lookup(name string) (Provider, bool) {
	i, ok := d.index[name]
	if !ok {
		return Provider{}, false
	}
	return d.providers[i], true
}

// Status classifies a comparison.
type Status string

const (
	StatusBest    Status = "best"
	StatusSlower  Status = "slower"
	StatusUnknown Status = "unknown"
)

// Comparison is the outcome of checking one ISP against the best in the area.
type Comparison struct {
	Status       Status `json:"status"`
	ISP          string `json:"isp"`
	Download     int    `json:"download,omitempty"`
	Best         string `json:"best_isp"`
	BestDownload int    `json:"best_isp_speed"`
	Message      string `json:"message"`
}

// Compare checks name against the best provider.
func (d *Directory) Compare(name string) Comparison {
	best, _ := d.Best()
	c := Comparison{
		ISP:          name,
		Best:         best.Name,
		BestDownload: best.Download,
	}

	p, ok := d.Lookup(name)
	switch {
	case !ok:
		c.Status = StatusUnknown
		c.Message = "Invalid ISP selection. Please choose a valid ISP."
	case p.Name == best.Name:
		c.Status = StatusBest
		c.Download = p.Download
		c.Message = fmt.Sprintf("Congratulations! Your ISP, %s, is the best in your area with %d Mbps download speed.",
			p.Name, p.Download)
	default:
		c.Status = StatusSlower
		c.Download = p.Download
		c.Message = fmt.Sprintf("Your ISP, %s, has %d Mbps download speed. However, the best ISP is %s with %d Mbps. Consider switching.",
			p.Name, p.Download, best.Name, best.Download)
	}
	return c
}
