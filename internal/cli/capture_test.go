package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akv004/grab/internal/model"
)

func TestParseRegion_SlurpGeometry(t *testing.T) {
	region, err := parseRegion("100,80 640x480")
	require.NoError(t, err)
	assert.Equal(t, model.RegionBounds{X: 100, Y: 80, Width: 640, Height: 480}, region)
}

func TestParseRegion_CommaForm(t *testing.T) {
	region, err := parseRegion("0,0,1920x1080")
	require.NoError(t, err)
	assert.Equal(t, model.RegionBounds{X: 0, Y: 0, Width: 1920, Height: 1080}, region)
}

func TestParseRegion_NegativeOrigin(t *testing.T) {
	region, err := parseRegion("-10,-5 64x48")
	require.NoError(t, err)
	assert.Equal(t, -10, region.X)
	assert.Equal(t, -5, region.Y)
}

func TestParseRegion_UppercaseSeparator(t *testing.T) {
	region, err := parseRegion("1,2 30X40")
	require.NoError(t, err)
	assert.Equal(t, uint(30), region.Width)
	assert.Equal(t, uint(40), region.Height)
}

func TestParseRegion_Rejects(t *testing.T) {
	cases := []string{
		"",
		"1,2",
		"1,2,3,4",
		"a,b 10x10",
		"1,2 10by10",
		"1,2 -10x10",
		"1,2 10x",
	}
	for _, in := range cases {
		_, err := parseRegion(in)
		assert.Error(t, err, "input %q", in)
	}
}
