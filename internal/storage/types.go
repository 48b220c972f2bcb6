package storage

import (
	"time"

	"ai-mock-interview/internal/interview"
)

// InterviewResult is the persisted record of one finished interview.
type InterviewResult struct {
	InterviewID       string       `json:"interview_id"`
	InterviewType     string       `json:"interview_type"`
	Timestamp         string       `json:"timestamp"`
	Turns             []TurnRecord `json:"turns"`
	ClosingEvaluation string       `json:"closing_evaluation,omitempty"`
}

// TurnRecord is one question/answer round with its timestamps.
type TurnRecord struct {
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	AskedAt    time.Time `json:"asked_at"`
	AnsweredAt time.Time `json:"answered_at,omitempty"`
}

// ResultFromSession converts a session's history into a persistable result.
func ResultFromSession(s *interview.Session, closing string) *InterviewResult {
	history := s.History()
	turns := make([]TurnRecord, 0, len(history))
	for _, turn := range history {
		record := TurnRecord{
			Question: turn.Question,
			AskedAt:  turn.AskedAt,
		}
		if turn.Answered {
			record.Answer = turn.Answer
			record.AnsweredAt = turn.AnsweredAt
		}
		turns = append(turns, record)
	}

	return &InterviewResult{
		InterviewID:       s.ID(),
		InterviewType:     s.InterviewType().Korean(),
		Timestamp:         s.CreatedAt().Format("2006-01-02 15:04:05"),
		Turns:             turns,
		ClosingEvaluation: closing,
	}
}
