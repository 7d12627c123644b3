package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecisionToken_RoundTrip(t *testing.T) {
	for _, kind := range []DecisionKind{DecisionConfirm, DecisionReject, DecisionCancel, DecisionInfo} {
		dec, ok := parseDecision(decisionToken(kind, "12345678"))
		assert.True(t, ok)
		assert.Equal(t, Decision{Kind: kind, BookingID: "12345678"}, dec)
	}
}

func TestParseDecision_Invalid(t *testing.T) {
	for _, data := range []string{"", "confirm", "confirm_", "delete_123", "просто текст"} {
		_, ok := parseDecision(data)
		assert.False(t, ok, "data %q", data)
	}
}
