package location

import (
	"testing"

	"github.com/tj/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		input string
		kind  Kind
	}{
		{"us zip", "10001", KindPostalCode},
		{"zip plus four", "10001-1234", KindPostalCode},
		{"canadian postal", "K1A 0B1", KindPostalCode},
		{"canadian postal lowercase no space", "k1a0b1", KindPostalCode},
		{"landmark keyword", "Eiffel Tower", KindLandmark},
		{"landmark keyword case-insensitive", "CENTRAL PARK", KindLandmark},
		{"british spelling", "Sydney Harbour", KindLandmark},
		{"address with digits", "221B Baker Street", KindLandmark},
		{"city", "Paris", KindCity},
		{"keyword inside a word is not a landmark", "Parkville", KindCity},
		{"coordinates", "40.7128,-74.0060", KindCoordinates},
		{"coordinates with spaces", "40.7128 -74.0060", KindCoordinates},
		{"out of range coordinates fall through to landmark", "140.0, 200.0", KindLandmark},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.input)
			assert.NotNil(t, got)
			assert.Equal(t, tc.kind, got.Kind)
			if tc.kind == KindCoordinates {
				assert.NotNil(t, got.Coordinates)
			} else {
				assert.Nil(t, got.Coordinates)
			}
		})
	}
}

func TestClassifyBlank(t *testing.T) {
	assert.Nil(t, Classify(""))
	assert.Nil(t, Classify("   \t"))
}

func TestClassifyCoordinatesKeepsParsedValues(t *testing.T) {
	got := Classify("40.7128,-74.0060")
	assert.NotNil(t, got)
	assert.Equal(t, Point{Lat: 40.7128, Lon: -74.006}, *got.Coordinates)
}

func TestInterpretation(t *testing.T) {
	assert.Equal(t, "Interpreted as Postal or ZIP code", Classified{Kind: KindPostalCode}.Interpretation())
	assert.Equal(t, "Interpreted as City or town", Classified{Kind: KindCity}.Interpretation())
}
