// Package risk implements the stroke-risk scoring model.
//
// The score is an additive sum of independent factor contributions, each
// capped, with the total clamped to [0, 100] and rounded to one decimal
// place. Absent optional measurements contribute nothing.
package risk

import (
	"math"
	"time"
)

// Level is the ordinal risk bucket derived from a score.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelVeryHigh Level = "very high"
)

// Sex values used by the scorer.
const (
	SexMale   = "M"
	SexFemale = "F"
)

// Smoking history classifications.
const (
	Smoker     = "SMOKER"
	PastSmoker = "PAST_SMOKER"
	NonSmoker  = "NON_SMOKER"
)

// Profile holds a patient's static attributes.
type Profile struct {
	Sex            string
	BirthDate      time.Time
	HeightCm       *int
	StrokeHistory  bool
	Hypertension   bool
	HeartDisease   bool
	Diabetes       bool
	SmokingHistory string
}

// Vitals is a single measurement snapshot. Nil fields are treated as
// not measured, never as zero readings.
type Vitals struct {
	WeightKg         *float64
	SystolicBP       *int
	DiastolicBP      *int
	GlucoseLevel     *int
	CigarettesPerDay *int
}

// Assess computes the risk score and level for a profile and measurement
// snapshot as of now. It is deterministic for identical inputs.
func Assess(p Profile, v Vitals, now time.Time) (float64, Level) {
	score := Score(p, v, now)
	return score, LevelFor(score)
}

// Score returns the stroke-risk score in [0, 100] with one decimal place.
func Score(p Profile, v Vitals, now time.Time) float64 {
	var score float64

	score += agePoints(Age(p.BirthDate, now))

	if p.Sex == SexMale {
		score += 5
	}
	if p.StrokeHistory {
		score += 30
	}
	if p.Hypertension {
		score += 15
	}
	if p.HeartDisease {
		score += 15
	}
	if p.Diabetes {
		score += 10
	}

	score += smokingPoints(p.SmokingHistory, v.CigarettesPerDay)
	score += bloodPressurePoints(v.SystolicBP, v.DiastolicBP)
	score += bmiPoints(v.WeightKg, p.HeightCm)
	score += glucosePoints(v.GlucoseLevel)

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return math.Round(score*10) / 10
}

// LevelFor maps a score to its ordinal bucket.
func LevelFor(score float64) Level {
	switch {
	case score < 20:
		return LevelLow
	case score < 40:
		return LevelModerate
	case score < 60:
		return LevelHigh
	default:
		return LevelVeryHigh
	}
}

// Age returns the calendar-exact age at now: year difference, minus one if
// the birthday has not yet occurred this year.
func Age(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return age
}

func agePoints(age int) float64 {
	switch {
	case age < 40:
		return 0
	case age < 50:
		return 5
	case age < 60:
		return 10
	case age < 70:
		return 15
	default:
		return 20
	}
}

func smokingPoints(history string, cigarettesPerDay *int) float64 {
	smoking := cigarettesPerDay != nil && *cigarettesPerDay > 0
	switch {
	case history == Smoker || smoking:
		if !smoking {
			// Declared smoker with no current count reported.
			return 10
		}
		switch {
		case *cigarettesPerDay >= 20:
			return 15
		case *cigarettesPerDay >= 10:
			return 12
		default:
			return 8
		}
	case history == PastSmoker:
		return 5
	default:
		return 0
	}
}

// bloodPressurePoints scores hypertension stages, highest tier first. Both
// readings must be present; a lone systolic or diastolic value scores 0.
func bloodPressurePoints(systolic, diastolic *int) float64 {
	if systolic == nil || diastolic == nil {
		return 0
	}
	switch {
	case *systolic >= 180 || *diastolic >= 120:
		return 20
	case *systolic >= 160 || *diastolic >= 100:
		return 15
	case *systolic >= 140 || *diastolic >= 90:
		return 10
	case *systolic >= 130 || *diastolic >= 85:
		return 5
	default:
		return 0
	}
}

func bmiPoints(weightKg *float64, heightCm *int) float64 {
	if weightKg == nil || heightCm == nil || *heightCm <= 0 {
		return 0
	}
	heightM := float64(*heightCm) / 100
	bmi := *weightKg / (heightM * heightM)
	switch {
	case bmi >= 30:
		return 10
	case bmi >= 25:
		return 5
	case bmi < 18.5:
		return 3
	default:
		return 0
	}
}

func glucosePoints(glucose *int) float64 {
	if glucose == nil {
		return 0
	}
	switch {
	case *glucose >= 200:
		return 10
	case *glucose >= 140:
		return 7
	case *glucose >= 100:
		return 4
	default:
		return 0
	}
}
