package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/risk"
)

// stubDispatcher records the last dispatched message.
type stubDispatcher struct {
	err       error
	calls     int
	recipient string
	subject   string
	body      string
}

func (d *stubDispatcher) Send(_ context.Context, recipient, subject, htmlBody string) error {
	d.calls++
	d.recipient = recipient
	d.subject = subject
	d.body = htmlBody
	return d.err
}

func TestDecideBelowThreshold(t *testing.T) {
	dispatcher := &stubDispatcher{}
	gate := NewGate(dispatcher)

	tests := []struct {
		name  string
		level risk.Level
	}{
		{name: "low risk is suppressed", level: risk.LevelLow},
		{name: "medium risk is suppressed", level: risk.LevelMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := gate.Decide(context.Background(), tt.level, "pm@example.com", "Bridge", 50, nil)

			assert.False(t, decision.Sent)
			assert.Contains(t, decision.Reason, tt.level.String())
			assert.Contains(t, decision.Reason, "notification threshold not met")
			assert.Zero(t, dispatcher.calls)
		})
	}
}

func TestDecideMissingRecipient(t *testing.T) {
	dispatcher := &stubDispatcher{}
	gate := NewGate(dispatcher)

	decision := gate.Decide(context.Background(), risk.LevelHigh, "", "Bridge", 80, nil)

	assert.False(t, decision.Sent)
	assert.Equal(t, "Project manager email not provided", decision.Reason)
	assert.Zero(t, dispatcher.calls)
}

func TestDecideDispatchesHighRisk(t *testing.T) {
	dispatcher := &stubDispatcher{}
	gate := NewGate(dispatcher)

	factors := []risk.Factor{
		{Name: "Project Location", Description: "Project Location (Syria) - High Risk", Score: 85},
		{Name: "News Risk", Description: "tariff exposure", Score: 80},
	}

	decision := gate.Decide(context.Background(), risk.LevelHigh, "pm@example.com", "Solar Plant", 82.5, factors)

	require.True(t, decision.Sent)
	assert.Equal(t, "pm@example.com", decision.Recipient)
	assert.Equal(t, "Solar Plant", decision.Project)
	assert.NotEmpty(t, decision.Timestamp)
	assert.Empty(t, decision.Reason)
	require.Len(t, decision.Factors, 2)

	assert.Equal(t, 1, dispatcher.calls)
	assert.Equal(t, "HIGH RISK ALERT: Project Solar Plant", dispatcher.subject)
	assert.Contains(t, dispatcher.body, "Solar Plant")
	assert.Contains(t, dispatcher.body, "82.50")
	assert.Contains(t, dispatcher.body, "Project Location (Syria) - High Risk")
}

func TestDecideCapsPayloadAtFiveFactors(t *testing.T) {
	dispatcher := &stubDispatcher{}
	gate := NewGate(dispatcher)

	var factors []risk.Factor
	for i := 0; i < 8; i++ {
		factors = append(factors, risk.Factor{Name: "Factor", Description: "d", Score: float64(90 - i)})
	}

	decision := gate.Decide(context.Background(), risk.LevelHigh, "pm@example.com", "Bridge", 85, factors)

	require.True(t, decision.Sent)
	assert.Len(t, decision.Factors, 5)
}

func TestDecideDispatchFailure(t *testing.T) {
	dispatcher := &stubDispatcher{err: errors.New("smtp down")}
	gate := NewGate(dispatcher)

	factors := []risk.Factor{{Name: "Project Location", Description: "d", Score: 85}}
	decision := gate.Decide(context.Background(), risk.LevelHigh, "pm@example.com", "Bridge", 85, factors)

	assert.False(t, decision.Sent)
	assert.Equal(t, "Failed to send email notification", decision.Reason)
	assert.Empty(t, decision.Factors)
	// One attempt only; no retries at this layer.
	assert.Equal(t, 1, dispatcher.calls)
}
