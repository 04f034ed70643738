package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "Bonjour", "Bonjour"},
		{"newlines", "a\nb\n\nc", "a<br>b<br><br>c"},
		{"bold", "**Sol sablonneux**", "<strong>Sol sablonneux</strong>"},
		{"bold and newline", "**Région Centre** : Mai\n  → semer tôt", "<strong>Région Centre</strong> : Mai<br>  → semer tôt"},
		{"two bold spans", "**a** et **b**", "<strong>a</strong> et <strong>b</strong>"},
		{"unpaired marker", "3 ** 2", "3 ** 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatResponse(tt.input))
		})
	}
}

func TestFormatResponse_Idempotent(t *testing.T) {
	inputs := []string{
		"🌱 **Sol sablonneux**\n\nSols légers.\n\n✅ Cultures adaptées : Mil, Oignon.",
		"Texte sans marqueur",
		"**a**\n**b**",
	}
	for _, in := range inputs {
		once := FormatResponse(in)
		assert.Equal(t, once, FormatResponse(once), in)
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Mai", TitleCase("mai"))
	assert.Equal(t, "Bobo-Dioulasso", TitleCase("bobo-dioulasso"))
	assert.Equal(t, "Février", TitleCase("février"))
}
