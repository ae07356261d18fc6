package training

import (
	"fmt"
	"math"
)

// FormatPower renders watts for display, e.g. "250W".
func FormatPower(watts float64) string {
	return fmt.Sprintf("%dW", int(math.Round(watts)))
}

// FormatPowerWithFTP renders watts with the FTP percentage, e.g.
// "250W (89% FTP)".
func FormatPowerWithFTP(watts, ftp float64) string {
	percent := int(math.Round(watts / ftp * 100))
	return fmt.Sprintf("%dW (%d%% FTP)", int(math.Round(watts)), percent)
}

// PowerFromFTP converts a percent-of-FTP target into watts.
func PowerFromFTP(ftpWatts, percentage float64) int {
	return int(math.Round(ftpWatts * percentage / 100))
}

// WattsPerKg is power-to-weight rounded to one decimal.
func WattsPerKg(watts, weightKg float64) float64 {
	return math.Round(watts/weightKg*10) / 10
}

// FormatWattsPerKg renders power-to-weight, e.g. "3.5 W/kg".
func FormatWattsPerKg(watts, weightKg float64) string {
	return fmt.Sprintf("%g W/kg", WattsPerKg(watts, weightKg))
}
