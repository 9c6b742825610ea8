package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		label string
		want  Intent
	}{
		{"greeting", IntentGreeting},
		{"goodbye", IntentGoodbye},
		{"thanks", IntentThanks},
		{"casual", IntentCasual},
		{"topic", IntentTopic},
		{"  Topic \n", IntentTopic},
		{"GREETING", IntentGreeting},
		{"sarcastic", IntentUnknown},
		{"", IntentUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseIntent(tt.label), "label %q", tt.label)
	}
}

func TestIntentString(t *testing.T) {
	assert.Equal(t, "topic", IntentTopic.String())
	assert.Equal(t, "unknown", IntentUnknown.String())
	assert.Equal(t, "unknown", Intent(99).String())
}
