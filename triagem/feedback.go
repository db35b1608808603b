package triagem

import (
	"log"

	"github.com/lewtec/triagem/internal/domain"
)

// LogFeedback is the fire-and-forget decision hook: it only logs. The
// engine tolerates it being slow or useless, so logging is enough here.
type LogFeedback struct{}

func (LogFeedback) DecisionCommitted(img domain.Image, decision domain.Decision) {
	log.Printf("feedback: %s %s", decision, img.SHA256)
}

func (LogFeedback) DecisionReverted(img domain.Image, decision domain.Decision) {
	log.Printf("feedback: undo %s %s", decision, img.SHA256)
}

// Verify that LogFeedback implements domain.Feedback
var _ domain.Feedback = LogFeedback{}
