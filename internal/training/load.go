package training

import "math"

// TSS computes the Training Stress Score for a workout from its normalized
// power, duration and the athlete's FTP.
func TSS(normalizedPower float64, durationSeconds int, ftp float64) int {
	hours := float64(durationSeconds) / 3600
	intensity := normalizedPower / ftp
	return int(math.Round(hours * intensity * intensity * 100))
}

// IntensityFactor is normalized power relative to FTP, rounded to two
// decimals.
func IntensityFactor(normalizedPower, ftp float64) float64 {
	return math.Round(normalizedPower/ftp*100) / 100
}

// EstimateNormalizedPower approximates NP from average power. A variability
// factor of 1.0 means perfectly steady effort; 1.1 and above is variable.
func EstimateNormalizedPower(avgPower, variability float64) int {
	return int(math.Round(avgPower * variability))
}

// WeeklyLoad sums the daily TSS values of a week.
func WeeklyLoad(dailyTSS []int) int {
	total := 0
	for _, tss := range dailyTSS {
		total += tss
	}
	return total
}

// rollingAverage averages the trailing window of daily TSS values. The
// divisor is the window size, not the sample count, so sparse history yields
// a proportionally lower load.
func rollingAverage(dailyTSS []int, days int) int {
	if len(dailyTSS) == 0 {
		return 0
	}
	recent := dailyTSS
	if len(recent) > days {
		recent = recent[len(recent)-days:]
	}
	sum := 0
	for _, tss := range recent {
		sum += tss
	}
	return int(math.Round(float64(sum) / float64(days)))
}

// CTL (chronic training load, "fitness") averages TSS over the last 42 days.
func CTL(dailyTSS []int) int {
	return rollingAverage(dailyTSS, 42)
}

// ATL (acute training load, "fatigue") averages TSS over the last 7 days.
func ATL(dailyTSS []int) int {
	return rollingAverage(dailyTSS, 7)
}

// TSB (training stress balance, "form") is fitness minus fatigue.
func TSB(ctl, atl int) int {
	return ctl - atl
}

// Approximate conversion from mechanical work to calories burned.
const caloriesPerWattHour = 3.6

// EstimateCalories approximates energy expenditure from average power and
// duration.
func EstimateCalories(avgWatts float64, durationMinutes int) int {
	hours := float64(durationMinutes) / 60
	return int(math.Round(avgWatts * hours * caloriesPerWattHour))
}
