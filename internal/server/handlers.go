package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"ai-mock-interview/internal/interview"
	"ai-mock-interview/internal/portfolio"
	"ai-mock-interview/internal/prompts"
	"ai-mock-interview/internal/storage"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	connected := s.gateway.CheckConnection()

	response := healthResponse{
		Status:          "ok",
		OllamaConnected: connected,
	}
	if !connected {
		response.Status = "degraded"
	} else if models, err := s.gateway.ListModels(); err == nil {
		response.Models = models
	}

	return c.JSON(response)
}

func (s *Server) handleModels(c *fiber.Ctx) error {
	models, err := s.gateway.ListModels()
	if err != nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "model server unavailable")
	}
	return c.JSON(fiber.Map{"models": models})
}

func (s *Server) handleCreateSession(c *fiber.Ctx) error {
	var req createSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	session := interview.New(s.gateway, s.cfg.Interview.MaxTurns)
	if req.PortfolioText != "" {
		session.AttachProfile(portfolio.FromDocument(req.PortfolioText))
		s.metrics.IncrementPortfoliosClassified()
	}

	entry := &sessionEntry{session: session}
	s.sessions.SetDefault(session.ID(), entry)

	s.logger.Info("session created",
		zap.String("session_id", session.ID()),
		zap.Bool("has_personalization", session.HasPersonalization()))

	return c.Status(fiber.StatusCreated).JSON(createSessionResponse{
		SessionID:          session.ID(),
		HasPersonalization: session.HasPersonalization(),
		MaxTurns:           session.MaxTurns(),
	})
}

func (s *Server) handleStart(c *fiber.Ctx) error {
	entry, ok := s.entry(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "session not found")
	}

	var req startRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "interview_type is required")
	}

	interviewType, err := prompts.ParseInterviewType(req.InterviewType)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	opening, err := entry.session.Start(c.UserContext(), interviewType)
	if err != nil {
		if errors.Is(err, interview.ErrGatewayUnreachable) {
			return errorJSON(c, fiber.StatusServiceUnavailable, "model server unreachable, interview cannot start")
		}
		s.logger.Error("start failed", zap.String("session_id", entry.session.ID()), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "failed to start interview")
	}

	entry.opening = opening
	entry.finished = false
	s.metrics.IncrementInterviewsStarted()
	s.metrics.IncrementQuestionsAsked()

	return c.JSON(interviewResponse{
		Reply:     opening,
		TurnIndex: entry.session.TurnIndex(),
		MaxTurns:  entry.session.MaxTurns(),
	})
}

func (s *Server) handleAnswer(c *fiber.Ctx) error {
	var req answerRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "answer is required")
	}

	return s.submit(c, req.Answer)
}

// handleSkip submits the fixed placeholder answer; skipping is not a
// distinct engine operation.
func (s *Server) handleSkip(c *fiber.Ctx) error {
	return s.submit(c, interview.SkipAnswer)
}

func (s *Server) submit(c *fiber.Ctx, answer string) error {
	entry, ok := s.entry(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "session not found")
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.session.TurnIndex() == 0 {
		return errorJSON(c, fiber.StatusConflict, "interview has not started")
	}
	if entry.finished {
		return errorJSON(c, fiber.StatusConflict, "interview already finished")
	}

	reply, final, err := entry.session.Submit(c.UserContext(), answer)
	if err != nil {
		s.logger.Error("submit failed", zap.String("session_id", entry.session.ID()), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "failed to process answer")
	}

	if final {
		entry.finished = true
		entry.closing = reply
		entry.closedAt = time.Now()
		s.metrics.IncrementInterviewsCompleted()
		s.persistResult(entry)
	} else {
		s.metrics.IncrementQuestionsAsked()
	}

	return c.JSON(interviewResponse{
		Reply:     reply,
		TurnIndex: entry.session.TurnIndex(),
		MaxTurns:  entry.session.MaxTurns(),
		Finished:  final,
	})
}

func (s *Server) handleProgress(c *fiber.Ctx) error {
	entry, ok := s.entry(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "session not found")
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	session := entry.session
	return c.JSON(progressResponse{
		SessionID:          session.ID(),
		InterviewType:      string(session.InterviewType()),
		TurnIndex:          session.TurnIndex(),
		MaxTurns:           session.MaxTurns(),
		Started:            session.TurnIndex() > 0,
		Finished:           entry.finished,
		HasPersonalization: session.HasPersonalization(),
	})
}

func (s *Server) handleTranscript(c *fiber.Ctx) error {
	entry, ok := s.entry(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "session not found")
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	session := entry.session
	transcript := storage.ExportTranscript(storage.TranscriptData{
		InterviewType: session.InterviewType().Korean(),
		StartedAt:     session.CreatedAt(),
		Opening:       entry.opening,
		Turns:         session.History(),
		Closing:       entry.closing,
		ClosedAt:      entry.closedAt,
	})

	filename := fmt.Sprintf("interview_%s.txt", session.CreatedAt().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.SendString(transcript)
}

func (s *Server) persistResult(entry *sessionEntry) {
	if s.store == nil {
		return
	}
	result := storage.ResultFromSession(entry.session, entry.closing)
	if err := s.store.Save(result); err != nil {
		s.logger.Error("saving interview result",
			zap.String("session_id", entry.session.ID()), zap.Error(err))
	}
}
