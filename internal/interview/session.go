// Package interview implements the turn-based mock interview engine: it
// owns the session state, decides when to ask and when to conclude, and
// turns model failures into displayable fallback text.
package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-mock-interview/internal/ollama"
	"ai-mock-interview/internal/portfolio"
	"ai-mock-interview/internal/prompts"
)

// DefaultMaxTurns is the number of interviewer questions per session.
const DefaultMaxTurns = 8

// SkipAnswer is the placeholder an applicant submits to pass on a
// question. Skipping is not a separate engine operation.
const SkipAnswer = "죄송하지만 이 질문은 건너뛰겠습니다."

// User-facing fallback text returned in-band when the model server fails
// mid-interview. Start and Submit always return something displayable.
const (
	timeoutFallback = "응답 시간이 초과되었습니다. 다시 시도해주세요."
	errorFallback   = "죄송합니다. 일시적인 오류가 발생했습니다."
)

// ErrGatewayUnreachable means the model server failed the availability
// probe; the interview must not start.
var ErrGatewayUnreachable = errors.New("model server unreachable")

// Generator is the model gateway the engine drives. *ollama.Client
// satisfies it; tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	CheckConnection() bool
}

// Turn is one question/answer round. The answer is attached when the
// applicant responds; at most the most recent turn is unanswered while
// the engine waits for input.
type Turn struct {
	Question   string
	Answer     string
	Answered   bool
	AskedAt    time.Time
	AnsweredAt time.Time
}

// Session is one applicant's interview. It is exclusively owned by its
// caller: no locking, one blocking gateway call per operation.
type Session struct {
	id            string
	gateway       Generator
	interviewType prompts.InterviewType
	turnIndex     int
	maxTurns      int
	history       []Turn
	profile       *portfolio.Profile
	createdAt     time.Time
}

// New creates an idle session. maxTurns values below 1 fall back to
// DefaultMaxTurns.
func New(gateway Generator, maxTurns int) *Session {
	if maxTurns < 1 {
		maxTurns = DefaultMaxTurns
	}
	return &Session{
		id:        uuid.New().String(),
		gateway:   gateway,
		maxTurns:  maxTurns,
		createdAt: time.Now(),
	}
}

// AttachProfile supplies portfolio personalization. It must be called
// before Start to take effect for the whole session.
func (s *Session) AttachProfile(profile *portfolio.Profile) {
	s.profile = profile
}

// Start begins the interview: it validates the type, probes the model
// server, and asks for the opening greeting and first question. History
// is cleared and the turn counter set to 1. The opening question itself
// is not recorded in history; the transcript context therefore only ever
// covers rounds after the first.
func (s *Session) Start(ctx context.Context, interviewType prompts.InterviewType) (string, error) {
	prompt, err := prompts.Compose(prompts.Request{
		Type:      interviewType,
		TurnIndex: 0,
		MaxTurns:  s.maxTurns,
		First:     true,
		Profile:   s.profile,
	})
	if err != nil {
		return "", fmt.Errorf("composing opening prompt: %w", err)
	}

	if !s.gateway.CheckConnection() {
		return "", ErrGatewayUnreachable
	}

	s.interviewType = interviewType
	s.history = nil
	s.turnIndex = 0

	response := s.generate(ctx, prompt)
	s.turnIndex = 1

	return response, nil
}

// Submit processes the applicant's answer. In a regular round it attaches
// the answer to the pending turn, asks the model for feedback plus the
// next question, records that question as a new unanswered turn and
// advances the counter. Once the turn counter reaches the maximum it
// builds the closing evaluation instead and reports final=true; session
// state is left unchanged in that branch, so another Submit runs the
// closing round again.
func (s *Session) Submit(ctx context.Context, answer string) (string, bool, error) {
	if s.turnIndex >= s.maxTurns {
		response := s.generate(ctx, prompts.ComposeClosing(answer, s.HasPersonalization()))
		return response, true, nil
	}

	prompt, err := prompts.Compose(prompts.Request{
		Type:         s.interviewType,
		TurnIndex:    s.turnIndex,
		MaxTurns:     s.maxTurns,
		Recent:       s.recentExchanges(answer),
		LatestAnswer: answer,
		Profile:      s.profile,
	})
	if err != nil {
		return "", false, fmt.Errorf("composing prompt: %w", err)
	}

	response, err := s.gateway.Generate(ctx, prompt)
	if err != nil {
		// State stays untouched so the applicant can simply resubmit.
		return fallbackFor(err), false, nil
	}
	response = strings.TrimSpace(response)

	now := time.Now()
	if len(s.history) > 0 {
		last := &s.history[len(s.history)-1]
		last.Answer = answer
		last.Answered = true
		last.AnsweredAt = now
	}
	s.history = append(s.history, Turn{Question: response, AskedAt: now})
	s.turnIndex++

	return response, false, nil
}

// recentExchanges renders the transcript context for the next prompt: the
// answer being submitted is counted as attached, then the last up to two
// answered turns are returned.
func (s *Session) recentExchanges(latestAnswer string) []prompts.Exchange {
	exchanges := make([]prompts.Exchange, 0, len(s.history))
	for i, turn := range s.history {
		answer := turn.Answer
		if !turn.Answered {
			if i != len(s.history)-1 {
				continue
			}
			answer = latestAnswer
		}
		exchanges = append(exchanges, prompts.Exchange{Question: turn.Question, Answer: answer})
	}
	if len(exchanges) > 2 {
		exchanges = exchanges[len(exchanges)-2:]
	}
	return exchanges
}

// generate maps gateway failures onto in-band fallback text so the
// interview surface always has something to display.
func (s *Session) generate(ctx context.Context, prompt string) string {
	response, err := s.gateway.Generate(ctx, prompt)
	if err != nil {
		return fallbackFor(err)
	}
	return strings.TrimSpace(response)
}

func fallbackFor(err error) string {
	if errors.Is(err, ollama.ErrTimeout) {
		return timeoutFallback
	}
	return errorFallback
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// InterviewType returns the type chosen at Start.
func (s *Session) InterviewType() prompts.InterviewType { return s.interviewType }

// TurnIndex returns the number of questions asked so far.
func (s *Session) TurnIndex() int { return s.turnIndex }

// MaxTurns returns the session's question limit.
func (s *Session) MaxTurns() int { return s.maxTurns }

// HasPersonalization reports whether a portfolio profile with content is
// attached.
func (s *Session) HasPersonalization() bool {
	return s.profile != nil && s.profile.HasContent()
}

// Concluding reports whether the next Submit runs the closing evaluation.
func (s *Session) Concluding() bool { return s.turnIndex >= s.maxTurns }

// CreatedAt returns the session creation time.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// History returns a copy of the recorded turns.
func (s *Session) History() []Turn {
	history := make([]Turn, len(s.history))
	copy(history, s.history)
	return history
}
