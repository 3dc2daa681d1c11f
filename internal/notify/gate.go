package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/risk"
)

// maxPayloadFactors bounds how many factors go into a notification.
const maxPayloadFactors = 5

// Dispatcher is the external mail collaborator. A single attempt per
// decision; retry policy, if any, lives behind this interface.
type Dispatcher interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) error
}

// PayloadFactor is one factor reduced to what the notification shows.
type PayloadFactor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Decision is the terminal outcome of the notification gate.
type Decision struct {
	Sent      bool            `json:"notification_sent"`
	Reason    string          `json:"reason,omitempty"`
	Recipient string          `json:"recipient,omitempty"`
	Project   string          `json:"project,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
	Factors   []PayloadFactor `json:"risk_factors,omitempty"`
}

// Gate decides whether a finished assessment warrants a notification
// and dispatches it.
type Gate struct {
	dispatcher Dispatcher
	now        func() time.Time
}

// NewGate builds a gate around the given dispatcher.
func NewGate(dispatcher Dispatcher) *Gate {
	return &Gate{dispatcher: dispatcher, now: time.Now}
}

// Decide applies the gate: anything below High is suppressed, a
// missing recipient is a business outcome rather than an error, and a
// dispatch failure is reported in the reason. Exactly one dispatch
// attempt is made.
func (g *Gate) Decide(ctx context.Context, level risk.Level, recipient, projectName string, score float64, topFactors []risk.Factor) Decision {
	if level != risk.LevelHigh {
		return Decision{
			Sent:   false,
			Reason: fmt.Sprintf("Risk level is %s, notification threshold not met", level),
		}
	}

	if recipient == "" {
		return Decision{
			Sent:   false,
			Reason: "Project manager email not provided",
		}
	}

	factors := make([]PayloadFactor, 0, maxPayloadFactors)
	for _, f := range risk.TopFactors(topFactors, maxPayloadFactors) {
		factors = append(factors, PayloadFactor{Name: f.Name, Description: f.Description})
	}

	subject := fmt.Sprintf("HIGH RISK ALERT: Project %s", projectName)
	body := buildAlertBody(projectName, score, factors)

	if err := g.dispatcher.Send(ctx, recipient, subject, body); err != nil {
		return Decision{
			Sent:   false,
			Reason: "Failed to send email notification",
		}
	}

	// The factor payload accompanies sent notifications only.
	return Decision{
		Sent:      true,
		Recipient: recipient,
		Project:   projectName,
		Timestamp: g.now().Format(time.RFC3339),
		Factors:   factors,
	}
}

func buildAlertBody(projectName string, score float64, factors []PayloadFactor) string {
	var b strings.Builder

	b.WriteString("<html>\n<body>\n")
	b.WriteString("<h2>Project Risk Alert</h2>\n")
	fmt.Fprintf(&b, "<p>The risk analysis system has identified <strong>HIGH RISK</strong> for project: <strong>%s</strong>.</p>\n", projectName)
	fmt.Fprintf(&b, "<p>Current risk score: <strong>%.2f</strong></p>\n", score)
	b.WriteString("<h3>Risk Factors:</h3>\n<ul>\n")
	for _, f := range factors {
		fmt.Fprintf(&b, "<li><strong>%s:</strong> %s</li>\n", f.Name, f.Description)
	}
	b.WriteString("</ul>\n")
	b.WriteString("<p>Please review the project status and take appropriate action.</p>\n")
	b.WriteString("<p>This is an automated message from the Risk Management System.</p>\n")
	b.WriteString("</body>\n</html>\n")

	return b.String()
}
