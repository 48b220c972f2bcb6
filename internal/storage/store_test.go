package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-mock-interview/internal/interview"
)

func TestStoreSaveLoadList(t *testing.T) {
	store := NewStore(t.TempDir())

	result := &InterviewResult{
		InterviewID:   "abc-123",
		InterviewType: "IT",
		Timestamp:     "2025-03-01 14:00:00",
		Turns: []TurnRecord{
			{Question: "자기소개를 해주세요", Answer: "안녕하세요"},
		},
		ClosingEvaluation: "수고하셨습니다",
	}

	require.NoError(t, store.Save(result))

	loaded, err := store.Load("abc-123")
	require.NoError(t, err)
	assert.Equal(t, result, loaded)

	ids, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"abc-123"}, ids)
}

func TestStoreListEmptyWhenDirMissing(t *testing.T) {
	store := NewStore(t.TempDir() + "/missing")

	ids, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStoreLoadMissingResult(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Load("nope")
	assert.Error(t, err)
}

func TestExportTranscript(t *testing.T) {
	started := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)

	transcript := ExportTranscript(TranscriptData{
		InterviewType: "공무원",
		StartedAt:     started,
		Opening:       "안녕하세요, 면접을 시작하겠습니다.",
		Turns: []interview.Turn{
			{
				Question:   "지원동기가 무엇인가요?",
				Answer:     "공공 서비스에 기여하고 싶습니다.",
				Answered:   true,
				AskedAt:    started.Add(2 * time.Minute),
				AnsweredAt: started.Add(4 * time.Minute),
			},
			{
				Question: "아직 답변하지 않은 질문",
				AskedAt:  started.Add(5 * time.Minute),
			},
		},
		Closing:  "전반적으로 좋은 면접이었습니다.",
		ClosedAt: started.Add(10 * time.Minute),
	})

	assert.Contains(t, transcript, "AI 모의 면접 기록")
	assert.Contains(t, transcript, "면접 유형: 공무원")
	assert.Contains(t, transcript, "일시: 2025-03-01 14:00:00")
	assert.Contains(t, transcript, "[14:00:00] 면접관:\n안녕하세요, 면접을 시작하겠습니다.")
	assert.Contains(t, transcript, "[14:02:00] 면접관:\n지원동기가 무엇인가요?")
	assert.Contains(t, transcript, "[14:04:00] 지원자:\n공공 서비스에 기여하고 싶습니다.")
	assert.Contains(t, transcript, "[14:05:00] 면접관:\n아직 답변하지 않은 질문")
	assert.NotContains(t, transcript, "[14:05:00] 지원자")
	assert.Contains(t, transcript, "[14:10:00] 면접관:\n전반적으로 좋은 면접이었습니다.")
}
