package telegram

import (
	"fmt"
	"strings"
	"time"
)

// FormatTriggeredAlert renders a triggered price alert as a Markdown message.
func FormatTriggeredAlert(symbol, condition string, targetPrice, observedPrice float64, triggeredAt time.Time) string {
	var sb strings.Builder
	sb.WriteString("🔔 *Price Alert Triggered*\n\n")
	sb.WriteString(fmt.Sprintf("*Symbol:* %s\n", symbol))
	sb.WriteString(fmt.Sprintf("*Condition:* %s %.2f\n", condition, targetPrice))
	sb.WriteString(fmt.Sprintf("*Price:* %.2f\n", observedPrice))
	sb.WriteString(fmt.Sprintf("*Time:* %s\n", triggeredAt.Format("2006-01-02 15:04:05")))
	return sb.String()
}

// FormatAnalysisSummary renders an analysis verdict as a Markdown message.
func FormatAnalysisSummary(symbol, recommendation string, confidence float64, riskLevel, opportunityLevel string, reasons []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *Analysis %s*\n\n", symbol))
	sb.WriteString(fmt.Sprintf("*Recommendation:* %s (%.0f%%)\n", recommendation, confidence))
	sb.WriteString(fmt.Sprintf("*Risk:* %s\n", riskLevel))
	sb.WriteString(fmt.Sprintf("*Opportunity:* %s\n", opportunityLevel))
	if len(reasons) > 0 {
		sb.WriteString("\n*Signals:*\n")
		for _, r := range reasons {
			sb.WriteString(fmt.Sprintf("- %s\n", r))
		}
	}
	return sb.String()
}
