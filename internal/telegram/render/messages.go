package render

import (
	"fmt"
	"strings"

	"github.com/oselik/nutriplan-backend/internal/entity"
)

const (
	// Welcome messages
	MsgWelcome = `👋 Hi! I'm your nutrition assistant.

Answer a few questions about yourself and I'll put together a personalized weekly meal plan and a nutrition report.`

	MsgHelp = `🤖 Bot commands:

/start - Start a new intake
/restart - Start the questions over
/cancel - Drop the current session
/help - Show this message

How it works:
1. Answer the intake questions
2. Press Generate
3. Download your plan as PDF, DOCX or Markdown`

	MsgNoSession = "No active session. Use /start"

	MsgGenerating = "⏳ Preparing your plan, this can take a minute..."

	MsgSessionFinished = "✅ Session closed. Use /start whenever you want a new plan."

	MsgRestarted = "🔄 Starting over."

	// Errors
	ErrGeneric       = "❌ Something went wrong. Try again or press /start"
	ErrInvalidState  = "❌ I wasn't expecting that here. Use the buttons or press /start"
	ErrTimeout       = "⏳ The operation timed out. Please try again."
	ErrNetworkIssue  = "📡 Connection trouble. Please try again in a moment."
	ErrPickAnOption  = "Please pick one of the options below."
	ErrNumberNeeded  = "Please reply with a positive number."
	ErrAnswerMissing = "Please type an answer."
)

// FailureMessage maps a generation failure to user-facing text.
func FailureMessage(kind entity.FailureKind) string {
	switch kind {
	case entity.FailureServiceUnavailable:
		return "📡 The nutrition service is unreachable right now. Your answers are saved, press Try again in a moment."
	case entity.FailureMalformedResponse, entity.FailureSchemaViolation:
		return "⚠️ I received an unusable reply from the nutrition service. Your answers are saved, press Try again."
	default:
		return ErrGeneric
	}
}

// DocumentSummary renders a short chat preview of the finished document.
func DocumentSummary(doc *entity.GuideDocument) string {
	var sb strings.Builder

	sb.WriteString("🎉 Your personalized nutrition guide is ready!\n\n")
	fmt.Fprintf(&sb, "📅 Meal plan: %d days\n", len(doc.WeekPlan.Days))

	sb.WriteString("\n📋 Summary:\n")
	sb.WriteString(doc.Report.Summary)

	if len(doc.Report.Findings) > 0 {
		sb.WriteString("\n\n🔎 Key findings:\n")
		for _, finding := range doc.Report.Findings {
			fmt.Fprintf(&sb, "• %s\n", finding)
		}
	}

	sb.WriteString("\nDownload the full guide below.")
	return sb.String()
}
