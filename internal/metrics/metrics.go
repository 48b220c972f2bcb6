package metrics

import (
	"sync"
	"time"
)

// Metrics counts interview and gateway activity across all sessions.
type Metrics struct {
	mu                     sync.RWMutex
	InterviewsStarted      int64
	InterviewsCompleted    int64
	QuestionsAsked         int64
	PortfoliosClassified   int64
	GatewayCallsTotal      int64
	GatewayCallsSuccessful int64
	LastUpdateTime         time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		LastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementInterviewsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InterviewsStarted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementInterviewsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InterviewsCompleted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementQuestionsAsked() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuestionsAsked++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementPortfoliosClassified() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PortfoliosClassified++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementGatewayCall(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GatewayCallsTotal++
	if success {
		m.GatewayCallsSuccessful++
	}
	m.LastUpdateTime = time.Now()
}

// Snapshot is a point-in-time copy of the counters, safe to hand out.
type Snapshot struct {
	InterviewsStarted      int64     `json:"interviews_started"`
	InterviewsCompleted    int64     `json:"interviews_completed"`
	QuestionsAsked         int64     `json:"questions_asked"`
	PortfoliosClassified   int64     `json:"portfolios_classified"`
	GatewayCallsTotal      int64     `json:"gateway_calls_total"`
	GatewayCallsSuccessful int64     `json:"gateway_calls_successful"`
	LastUpdateTime         time.Time `json:"last_update_time"`
}

func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		InterviewsStarted:      m.InterviewsStarted,
		InterviewsCompleted:    m.InterviewsCompleted,
		QuestionsAsked:         m.QuestionsAsked,
		PortfoliosClassified:   m.PortfoliosClassified,
		GatewayCallsTotal:      m.GatewayCallsTotal,
		GatewayCallsSuccessful: m.GatewayCallsSuccessful,
		LastUpdateTime:         m.LastUpdateTime,
	}
}
