package storage

import (
	"fmt"
	"strings"
	"time"

	"ai-mock-interview/internal/interview"
)

// TranscriptData is everything a transcript needs: the recorded turns
// plus the opening question and closing evaluation, which the engine
// does not keep in history.
type TranscriptData struct {
	InterviewType string // Korean display name
	StartedAt     time.Time
	Opening       string
	Turns         []interview.Turn
	Closing       string
	ClosedAt      time.Time
}

// ExportTranscript renders an interview as a plain-text document with a
// metadata header and timestamped interviewer/applicant lines.
func ExportTranscript(data TranscriptData) string {
	var b strings.Builder

	b.WriteString("AI 모의 면접 기록\n")
	fmt.Fprintf(&b, "면접 유형: %s\n", data.InterviewType)
	fmt.Fprintf(&b, "일시: %s\n", data.StartedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	if data.Opening != "" {
		writeEntry(&b, data.StartedAt, "면접관", data.Opening)
	}

	for _, turn := range data.Turns {
		writeEntry(&b, turn.AskedAt, "면접관", turn.Question)
		if turn.Answered {
			writeEntry(&b, turn.AnsweredAt, "지원자", turn.Answer)
		}
	}

	if data.Closing != "" {
		writeEntry(&b, data.ClosedAt, "면접관", data.Closing)
	}

	return b.String()
}

func writeEntry(b *strings.Builder, at time.Time, role, text string) {
	fmt.Fprintf(b, "[%s] %s:\n%s\n\n", at.Format("15:04:05"), role, text)
}
