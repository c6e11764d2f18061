package candidates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		score int
		want  Band
	}{
		{100, BandHigh},
		{85, BandHigh},
		{80, BandHigh},
		{79, BandMediumHigh},
		{75, BandMediumHigh},
		{70, BandMediumHigh},
		{69, BandMedium},
		{65, BandMedium},
		{60, BandMedium},
		{59, BandLow},
		{50, BandLow},
		{0, BandLow},
		{-5, BandLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score), "score %d", tt.score)
	}
}

func TestBandClass(t *testing.T) {
	assert.Equal(t, "text-success-500", BandHigh.Class())
	assert.Equal(t, "text-orange-500", BandMediumHigh.Class())
	assert.Equal(t, "text-yellow-500", BandMedium.Class())
	assert.Equal(t, "text-red-500", BandLow.Class())
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-10))
	assert.Equal(t, 42, ClampScore(42))
	assert.Equal(t, 100, ClampScore(130))
}

func TestBreakdownItems(t *testing.T) {
	b := Breakdown{Technical: 91, Communication: 72, Leadership: 64, Cultural: 88, Experience: 55}
	items := b.Items()
	if assert.Len(t, items, 5) {
		assert.Equal(t, "Technical Skills", items[0].Label)
		assert.Equal(t, 91, items[0].Value)
		assert.Equal(t, "Cultural Fit", items[3].Label)
		assert.Equal(t, "Experience Relevance", items[4].Label)
		assert.Equal(t, 55, items[4].Value)
	}
}
