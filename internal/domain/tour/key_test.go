package tour

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name", "Corvin Castle", "corvin castle"},
		{"trailing tour suffix", "Corvin Castle Tour", "corvin castle"},
		{"suffix case insensitive", "Corvin Castle TOUR", "corvin castle"},
		{"apostrophe stripped", "Dracula's Castle", "draculas castle"},
		{"typographic apostrophe stripped", "Dracula’s Castle Tour", "draculas castle"},
		{"whitespace collapsed", "  Peles   Castle \t Tour ", "peles castle"},
		{"doubled suffix", "Castle Tour Tour", "castle"},
		{"suffix only", "Tour", ""},
		{"empty input", "", ""},
		{"no suffix to strip", "Transfagarasan Drive", "transfagarasan drive"},
		{"embedded tour word kept", "Tourist Office Visit", "tourist office visit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeKey(tt.input))
		})
	}
}

func TestNormalizeKeyIdempotent(t *testing.T) {
	inputs := []string{
		"Corvin Castle Tour",
		"Castle Tour Tour",
		"  Bran   Castle ",
		"Dracula's Castle TOUR",
		"",
		"tour",
		"Peles",
	}

	for _, input := range inputs {
		once := NormalizeKey(input)
		assert.Equal(t, once, NormalizeKey(once), "input %q", input)
	}
}

func TestNormalizeKeyJoinsAcrossSources(t *testing.T) {
	// An ad platform reports "Corvin Castle" while orders say
	// "Corvin Castle Tour"; both must land on the same key.
	assert.Equal(t, NormalizeKey("Corvin Castle"), NormalizeKey("Corvin Castle Tour"))
}

func TestMarginTable(t *testing.T) {
	table := NewMarginTable(map[string]float64{
		"Corvin Castle Tour": 0.30,
	})

	t.Run("configured tour matched by any spelling", func(t *testing.T) {
		expected := decimal.NewFromFloat(0.30)
		assert.True(t, expected.Equal(table.MarginFor("Corvin Castle")))
		assert.True(t, expected.Equal(table.MarginFor("corvin castle tour")))
	})

	t.Run("unknown tour falls back to default", func(t *testing.T) {
		assert.True(t, DefaultMargin.Equal(table.MarginFor("Peles Castle Tour")))
	})

	t.Run("empty table is usable", func(t *testing.T) {
		var empty MarginTable
		assert.True(t, DefaultMargin.Equal(empty.MarginFor("anything")))
	})
}
