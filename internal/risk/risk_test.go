package risk_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strokewatch-server/internal/risk"
)

var testNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func birthYearsAgo(years int) time.Time {
	return time.Date(testNow.Year()-years, time.January, 10, 0, 0, 0, 0, time.UTC)
}

func TestScoreWorkedExample(t *testing.T) {
	// 65-year-old male, stroke history, hypertension, BP 150/95,
	// BMI 80kg/170cm ~= 27.7, glucose 150.
	profile := risk.Profile{
		Sex:            risk.SexMale,
		BirthDate:      birthYearsAgo(65),
		HeightCm:       intPtr(170),
		StrokeHistory:  true,
		Hypertension:   true,
		SmokingHistory: risk.NonSmoker,
	}
	vitals := risk.Vitals{
		WeightKg:     floatPtr(80),
		SystolicBP:   intPtr(150),
		DiastolicBP:  intPtr(95),
		GlucoseLevel: intPtr(150),
	}

	score, level := risk.Assess(profile, vitals, testNow)
	// 20 (age) + 5 (sex) + 30 (stroke) + 15 (hypertension) + 10 (BP)
	// + 5 (BMI) + 7 (glucose)
	assert.Equal(t, 92.0, score)
	assert.Equal(t, risk.LevelVeryHigh, level)
}

func TestScoreClampedAt100(t *testing.T) {
	profile := risk.Profile{
		Sex:            risk.SexMale,
		BirthDate:      birthYearsAgo(75),
		HeightCm:       intPtr(160),
		StrokeHistory:  true,
		Hypertension:   true,
		HeartDisease:   true,
		Diabetes:       true,
		SmokingHistory: risk.Smoker,
	}
	vitals := risk.Vitals{
		WeightKg:         floatPtr(120),
		SystolicBP:       intPtr(185),
		DiastolicBP:      intPtr(125),
		GlucoseLevel:     intPtr(220),
		CigarettesPerDay: intPtr(25),
	}

	// Raw factor sum is 150; output must clamp to 100.
	score, level := risk.Assess(profile, vitals, testNow)
	assert.Equal(t, 100.0, score)
	assert.Equal(t, risk.LevelVeryHigh, level)
}

func TestScoreAbsentVitalsAreNotErrors(t *testing.T) {
	profile := risk.Profile{
		Sex:            risk.SexMale,
		BirthDate:      birthYearsAgo(65),
		StrokeHistory:  true,
		SmokingHistory: risk.NonSmoker,
	}

	// No BP, no weight/height, no glucose, no cigarette count.
	score, level := risk.Assess(profile, risk.Vitals{}, testNow)
	assert.Equal(t, 55.0, score) // 20 age + 5 sex + 30 stroke history
	assert.Equal(t, risk.LevelHigh, level)
}

func TestScoreHasAtMostOneDecimal(t *testing.T) {
	profiles := []risk.Profile{
		{Sex: risk.SexFemale, BirthDate: birthYearsAgo(30), SmokingHistory: risk.NonSmoker},
		{Sex: risk.SexMale, BirthDate: birthYearsAgo(55), SmokingHistory: risk.PastSmoker, Hypertension: true},
		{Sex: risk.SexMale, BirthDate: birthYearsAgo(80), SmokingHistory: risk.Smoker, StrokeHistory: true},
	}
	for _, p := range profiles {
		score := risk.Score(p, risk.Vitals{}, testNow)
		require.GreaterOrEqual(t, score, 0.0)
		require.LessOrEqual(t, score, 100.0)
		scaled := score * 10
		assert.Equal(t, math.Trunc(scaled), scaled, "score %v has more than one decimal", score)
	}
}

func TestLevelBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  risk.Level
	}{
		{0, risk.LevelLow},
		{19.9, risk.LevelLow},
		{20.0, risk.LevelModerate},
		{39.9, risk.LevelModerate},
		{40.0, risk.LevelHigh},
		{59.9, risk.LevelHigh},
		{60.0, risk.LevelVeryHigh},
		{100, risk.LevelVeryHigh},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, risk.LevelFor(tc.score), "score %v", tc.score)
	}
}

func TestAgeTiers(t *testing.T) {
	cases := []struct {
		years int
		want  float64
	}{
		{39, 0}, {40, 5}, {49, 5}, {50, 10}, {59, 10}, {60, 15}, {69, 15}, {70, 20},
	}
	for _, tc := range cases {
		p := risk.Profile{Sex: risk.SexFemale, BirthDate: birthYearsAgo(tc.years), SmokingHistory: risk.NonSmoker}
		assert.Equal(t, tc.want, risk.Score(p, risk.Vitals{}, testNow), "age %d", tc.years)
	}
}

func TestAgeIsCalendarExact(t *testing.T) {
	birth := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 25, risk.Age(birth, time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 26, risk.Age(birth, time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 26, risk.Age(birth, time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func TestSmokingTiers(t *testing.T) {
	base := risk.Profile{Sex: risk.SexFemale, BirthDate: birthYearsAgo(30)}

	cases := []struct {
		name    string
		history string
		count   *int
		want    float64
	}{
		{"non-smoker", risk.NonSmoker, nil, 0},
		{"past smoker", risk.PastSmoker, nil, 5},
		{"smoker without count", risk.Smoker, nil, 10},
		{"smoker zero count", risk.Smoker, intPtr(0), 10},
		{"light smoker", risk.Smoker, intPtr(5), 8},
		{"half pack", risk.Smoker, intPtr(10), 12},
		{"pack a day", risk.Smoker, intPtr(20), 15},
		{"heavy smoker", risk.Smoker, intPtr(40), 15},
		// A reported count overrides a non-smoker history.
		{"declared non-smoker but smoking", risk.NonSmoker, intPtr(5), 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := base
			p.SmokingHistory = tc.history
			got := risk.Score(p, risk.Vitals{CigarettesPerDay: tc.count}, testNow)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBloodPressureTiers(t *testing.T) {
	base := risk.Profile{Sex: risk.SexFemale, BirthDate: birthYearsAgo(30), SmokingHistory: risk.NonSmoker}

	cases := []struct {
		name                string
		systolic, diastolic int
		want                float64
	}{
		{"normal", 120, 80, 0},
		{"elevated", 130, 80, 5},
		{"stage 1 systolic", 140, 80, 10},
		{"stage 1 diastolic", 120, 90, 10},
		{"stage 2 systolic", 160, 80, 15},
		{"stage 2 diastolic", 120, 100, 15},
		{"crisis systolic", 180, 80, 20},
		{"crisis diastolic", 120, 120, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := risk.Score(base, risk.Vitals{
				SystolicBP:  intPtr(tc.systolic),
				DiastolicBP: intPtr(tc.diastolic),
			}, testNow)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("lone reading scores nothing", func(t *testing.T) {
		got := risk.Score(base, risk.Vitals{SystolicBP: intPtr(190)}, testNow)
		assert.Equal(t, 0.0, got)
	})
}

func TestBloodPressureMonotonicAcrossTiers(t *testing.T) {
	base := risk.Profile{Sex: risk.SexFemale, BirthDate: birthYearsAgo(30), SmokingHistory: risk.NonSmoker}
	prev := -1.0
	for systolic := 100; systolic <= 200; systolic += 5 {
		got := risk.Score(base, risk.Vitals{
			SystolicBP:  intPtr(systolic),
			DiastolicBP: intPtr(80),
		}, testNow)
		require.GreaterOrEqual(t, got, prev, "systolic %d", systolic)
		prev = got
	}
}

func TestBMITiers(t *testing.T) {
	base := risk.Profile{
		Sex:            risk.SexFemale,
		BirthDate:      birthYearsAgo(30),
		HeightCm:       intPtr(170),
		SmokingHistory: risk.NonSmoker,
	}

	cases := []struct {
		name   string
		weight float64
		want   float64
	}{
		{"underweight", 50, 3}, // BMI 17.3
		{"normal", 65, 0},      // BMI 22.5
		{"overweight", 75, 5},  // BMI 26.0
		{"obese", 90, 10},      // BMI 31.1
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := risk.Score(base, risk.Vitals{WeightKg: floatPtr(tc.weight)}, testNow)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("no height means no BMI factor", func(t *testing.T) {
		p := base
		p.HeightCm = nil
		got := risk.Score(p, risk.Vitals{WeightKg: floatPtr(120)}, testNow)
		assert.Equal(t, 0.0, got)
	})
}

func TestGlucoseTiers(t *testing.T) {
	base := risk.Profile{Sex: risk.SexFemale, BirthDate: birthYearsAgo(30), SmokingHistory: risk.NonSmoker}

	cases := []struct {
		glucose int
		want    float64
	}{
		{90, 0}, {99, 0}, {100, 4}, {139, 4}, {140, 7}, {199, 7}, {200, 10}, {300, 10},
	}
	for _, tc := range cases {
		got := risk.Score(base, risk.Vitals{GlucoseLevel: intPtr(tc.glucose)}, testNow)
		assert.Equal(t, tc.want, got, "glucose %d", tc.glucose)
	}
}
