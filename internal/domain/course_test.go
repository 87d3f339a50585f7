package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFacilities(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"empty", "", []string{}},
		{"single", "Pro shop", []string{"Pro shop"}},
		{"trims and skips blanks", " Pro shop, ,Driving range ,", []string{"Pro shop", "Driving range"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitFacilities(tt.raw))
		})
	}

	assert.Equal(t, "Pro shop,Driving range", JoinFacilities([]string{" Pro shop", "", "Driving range"}))
}

func TestAttachTomorrowTimes(t *testing.T) {
	rows := []CourseAvailability{{CourseID: 1}, {CourseID: 2}, {CourseID: 3}}
	AttachTomorrowTimes(rows, []CourseSlot{
		{CourseID: 1, Time: "07:00"},
		{CourseID: 3, Time: "06:30"},
		{CourseID: 1, Time: "07:30"},
	})

	assert.Equal(t, []string{"07:00", "07:30"}, rows[0].TomorrowTimes)
	assert.Empty(t, rows[1].TomorrowTimes)
	assert.Equal(t, []string{"06:30"}, rows[2].TomorrowTimes)
}
