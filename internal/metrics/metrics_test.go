package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentOfZeroDenominator(t *testing.T) {
	assert.Equal(t, 0.0, PercentOf(350, 0))
	assert.Equal(t, 0.0, PercentOf(0, 0))
	assert.Equal(t, 0.0, PercentOf(100, -5))
}

func TestPercentOfRounding(t *testing.T) {
	assert.Equal(t, 35.0, PercentOf(350, 1000))
	assert.Equal(t, 33.3, PercentOf(1, 3))
	assert.Equal(t, 66.7, PercentOf(2, 3))
	assert.Equal(t, 12.5, PercentOf(125, 1000))
}

func TestMarginPercent(t *testing.T) {
	assert.Equal(t, 80.0, MarginPercent(5.50, 1.10))
	assert.Equal(t, 0.0, MarginPercent(0, 1.10))
	assert.Equal(t, 0.0, MarginPercent(-1, 1.10))
	// (18.00-10.60)/18.00*100 = 41.111... -> 41.1
	assert.Equal(t, 41.1, MarginPercent(18.00, 10.60))
	// Negative margin is reported, not clamped.
	assert.Equal(t, -10.0, MarginPercent(10, 11))
}

func TestPeriodDelta(t *testing.T) {
	assert.Equal(t, 10.0, PeriodDelta(1100, 1000))
	assert.Equal(t, -10.0, PeriodDelta(900, 1000))
	assert.Equal(t, 0.0, PeriodDelta(500, 0))
	// (1234-1000)/1000*100 = 23.4 exactly.
	assert.Equal(t, 23.4, PeriodDelta(1234, 1000))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 1630.14, Round2(85000.0/365*7))
	assert.Equal(t, 2.35, Round2(2.346))
	assert.Equal(t, -2.35, Round2(-2.346))
	assert.Equal(t, 35.1, Round1(35.06))
}
