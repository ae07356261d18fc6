// Package training holds the pure training-math utilities shared by the API:
// power and heart-rate zones, training-load metrics, and display formatting.
package training

import "math"

// ZoneRange is an inclusive min/max band, in percent of the reference value
// or in absolute units depending on context.
type ZoneRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Standard Coggan power zones, in percent of FTP.
var PowerZonePercentages = map[string]ZoneRange{
	"Z1": {Min: 0, Max: 55},    // Active Recovery
	"Z2": {Min: 56, Max: 75},   // Endurance
	"Z3": {Min: 76, Max: 90},   // Tempo
	"Z4": {Min: 91, Max: 105},  // Lactate Threshold
	"Z5": {Min: 106, Max: 120}, // VO2 Max
	"Z6": {Min: 121, Max: 150}, // Anaerobic Capacity
}

// Heart-rate zones, in percent of max HR.
var HeartRateZonePercentages = map[string]ZoneRange{
	"Z1": {Min: 0, Max: 68},
	"Z2": {Min: 69, Max: 83},
	"Z3": {Min: 84, Max: 94},
	"Z4": {Min: 95, Max: 105},
	"Z5": {Min: 106, Max: 120},
}

func scaleZone(r ZoneRange, reference float64) ZoneRange {
	return ZoneRange{
		Min: int(math.Round(reference * float64(r.Min) / 100)),
		Max: int(math.Round(reference * float64(r.Max) / 100)),
	}
}

// PowerZonesFromFTP converts the percentage bands into watt bands for a
// given FTP.
func PowerZonesFromFTP(ftp float64) map[string]ZoneRange {
	zones := make(map[string]ZoneRange, len(PowerZonePercentages))
	for name, r := range PowerZonePercentages {
		zones[name] = scaleZone(r, ftp)
	}
	return zones
}

// HeartRateZonesFromMax converts the percentage bands into bpm bands for a
// given maximum heart rate.
func HeartRateZonesFromMax(maxHR float64) map[string]ZoneRange {
	zones := make(map[string]ZoneRange, len(HeartRateZonePercentages))
	for name, r := range HeartRateZonePercentages {
		zones[name] = scaleZone(r, maxHR)
	}
	return zones
}

// zoneColors is the intensity scale the frontend paints the segment bar
// with, keyed by the upper bound of each band in percent of FTP.
var zoneColors = []struct {
	maxPercent float64
	color      string
}{
	{55, "#93c5fd"},
	{75, "#4ade80"},
	{87, "#facc15"},
	{95, "#fb923c"},
	{105, "#ea580c"},
	{120, "#ef4444"},
}

// ZoneColorForPercent returns the display color for a power percent of FTP.
func ZoneColorForPercent(percent float64) string {
	for _, band := range zoneColors {
		if percent <= band.maxPercent {
			return band.color
		}
	}
	return "#9333ea"
}
