package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item is a physical object registered in the ownership ledger.
// ExchangeID is the item tag: a non-nil value commits the item to that
// exchange and blocks deletion, re-tagging, and inclusion in new proposals.
type Item struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Name       string
	Size       Dimensions
	ExchangeID *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Tagged reports whether the item is committed to some exchange.
func (i *Item) Tagged() bool { return i.ExchangeID != nil }

// TaggedTo reports whether the item is committed to the given exchange.
func (i *Item) TaggedTo(exchangeID uuid.UUID) bool {
	return i.ExchangeID != nil && *i.ExchangeID == exchangeID
}

// Dimensions are the declared measurements of an item in centimeters.
type Dimensions struct {
	LengthCM float64
	WidthCM  float64
	HeightCM float64
}

// Volume returns the bounding-box volume in cubic centimeters.
func (d Dimensions) Volume() float64 {
	return d.LengthCM * d.WidthCM * d.HeightCM
}

// Longest returns the largest single dimension.
func (d Dimensions) Longest() float64 {
	m := d.LengthCM
	if d.WidthCM > m {
		m = d.WidthCM
	}
	if d.HeightCM > m {
		m = d.HeightCM
	}
	return m
}

// Capacity-class thresholds. A bundle needs the smallest class whose limits
// accommodate both its longest single dimension and its total volume.
var capacityLimits = []struct {
	class     CapacityClass
	longestCM float64
	volumeCM3 float64
}{
	{CapacityS, 35, 20_000},
	{CapacityM, 60, 75_000},
	{CapacityL, 90, 200_000},
	{CapacityXL, 120, 450_000},
}

// RequiredCapacity computes the capacity class a bundle of item dimensions
// needs: the longest dimension of any item and the summed volume must both
// fit the class limits. Returns false when the bundle exceeds every class
// (no box in the network can hold it) or when dims is empty.
func RequiredCapacity(dims []Dimensions) (CapacityClass, bool) {
	if len(dims) == 0 {
		return "", false
	}

	var longest, volume float64
	for _, d := range dims {
		if l := d.Longest(); l > longest {
			longest = l
		}
		volume += d.Volume()
	}

	for _, lim := range capacityLimits {
		if longest <= lim.longestCM && volume <= lim.volumeCM3 {
			return lim.class, true
		}
	}
	return "", false
}
