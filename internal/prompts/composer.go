package prompts

import (
	"fmt"
	"strings"

	"ai-mock-interview/internal/portfolio"
)

// Character budgets applied to portfolio summaries inside a prompt, so a
// large source document cannot grow the prompt without bound.
const (
	summaryBudget       = 200
	certificationBudget = 100
)

// Exchange is one completed question/answer pair rendered into the
// prompt's transcript context.
type Exchange struct {
	Question string
	Answer   string
}

// Request carries everything a prompt composition depends on. Compose is
// a pure function of this value: identical requests yield byte-identical
// prompts.
type Request struct {
	Type      InterviewType
	TurnIndex int // completed rounds; the prompt announces TurnIndex+1
	MaxTurns  int
	First     bool
	// Recent holds the most recent completed exchanges; at most the last
	// two are rendered, and exchanges without an answer are skipped.
	Recent       []Exchange
	LatestAnswer string
	Profile      *portfolio.Profile
}

// section is one named block of the composed prompt, assembled in order.
type section struct {
	name string
	body string
}

// Compose builds the instruction text for a regular interview round.
func Compose(req Request) (string, error) {
	role, err := rolePrompt(req.Type)
	if err != nil {
		return "", err
	}

	sections := []section{
		{name: "role", body: role},
		{name: "personalization", body: personalizationBlock(req.Profile)},
		{name: "instructions", body: instructionBlock},
		{name: "progress", body: progressLine(req.TurnIndex, req.MaxTurns)},
	}

	if req.First {
		sections = append(sections, section{name: "opening", body: openingBlock(req.Type)})
	} else {
		sections = append(sections,
			section{name: "transcript", body: transcriptBlock(req.Recent)},
			section{name: "followup", body: followupBlock(req.LatestAnswer)},
		)
	}

	return join(sections), nil
}

// ComposeClosing builds the final-round evaluation prompt. It replaces
// the regular composition entirely: no role block, no transcript, just
// the wrap-up instruction around the applicant's last answer.
func ComposeClosing(finalAnswer string, hasPortfolio bool) string {
	var b strings.Builder

	b.WriteString("면접이 모두 완료되었습니다.\n")
	fmt.Fprintf(&b, "지원자의 마지막 답변: %s\n", finalAnswer)
	if hasPortfolio {
		b.WriteString("지원자의 포트폴리오 내용도 종합적으로 고려하여 평가해주세요.\n")
	}
	b.WriteString(`
한국의 면접관답게 전체적인 면접에 대한 종합 피드백을 정중하고 따뜻하게 제공해주세요.
다음 내용을 포함해주세요:
1. 전반적인 면접 태도와 인상
2. 주요 강점 2-3가지
3. 개선이 필요한 부분 1-2가지
4. 앞으로의 발전을 위한 조언
5. 격려와 응원의 마무리 인사

반드시 완벽한 한국어로만 답변하고 격려의 말씀으로 마무리해주세요.`)

	return b.String()
}

const instructionBlock = `중요한 면접 진행 지침:
- 반드시 표준 한국어로만 대화하세요 (절대 일본어, 중국어, 영어 금지)
- 정중하고 전문적인 한국어 존댓말 사용
- 한 번에 하나의 명확한 질문만 제시
- 실무 중심의 구체적인 질문 위주
- 지원자 답변에 대한 간단하고 건설적인 피드백 제공
- 한국의 면접 문화에 맞는 자연스러운 대화`

func progressLine(turnIndex, maxTurns int) string {
	return fmt.Sprintf("현재 면접 진행 상황: %d번째 질문 (총 %d개 예정)", turnIndex+1, maxTurns)
}

func openingBlock(t InterviewType) string {
	return fmt.Sprintf(`지금 %s 면접을 시작합니다.
한국의 면접관답게 정중한 인사말과 함께 첫 번째 질문을 해주세요.
반드시 완벽한 한국어로만 답변하세요. 절대 외국어를 사용하지 마세요.`, t.Korean())
}

func followupBlock(latestAnswer string) string {
	var b strings.Builder
	b.WriteString(`지원자의 답변에 대해 간단한 피드백을 주고, 다음 질문을 해주세요.
반드시 완벽한 한국어로만 답변하세요. 절대 외국어를 섞지 마세요.
답변이 구체적이고 좋다면 격려하고, 부족하다면 더 자세한 설명을 정중하게 요청하세요.`)
	fmt.Fprintf(&b, "\n\n지원자의 최근 답변: %s\n\n", latestAnswer)
	b.WriteString("이 답변에 대한 간단한 피드백과 함께 다음 질문을 해주세요. 반드시 한국어로만 답변하세요.")
	return b.String()
}

// transcriptBlock renders the last up to two completed exchanges as
// alternating interviewer/applicant lines.
func transcriptBlock(recent []Exchange) string {
	answered := make([]Exchange, 0, len(recent))
	for _, exchange := range recent {
		if exchange.Answer != "" {
			answered = append(answered, exchange)
		}
	}
	if len(answered) > 2 {
		answered = answered[len(answered)-2:]
	}
	if len(answered) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("최근 대화 내용:\n")
	for _, exchange := range answered {
		fmt.Fprintf(&b, "면접관: %s\n지원자: %s\n\n", exchange.Question, exchange.Answer)
	}
	return strings.TrimRight(b.String(), "\n")
}

// personalizationBlock summarizes the applicant's portfolio, one line per
// non-empty section, each truncated to its character budget.
func personalizationBlock(profile *portfolio.Profile) string {
	if profile == nil || !profile.HasContent() {
		return ""
	}

	entries := []struct {
		label   string
		section portfolio.Section
		budget  int
	}{
		{"교육배경", portfolio.SectionEducation, summaryBudget},
		{"경력사항", portfolio.SectionExperience, summaryBudget},
		{"기술/스킬", portfolio.SectionSkills, summaryBudget},
		{"프로젝트", portfolio.SectionProjects, summaryBudget},
		{"자격증", portfolio.SectionCertifications, certificationBudget},
	}

	var b strings.Builder
	b.WriteString("지원자 포트폴리오 요약:\n")
	for _, entry := range entries {
		text := strings.TrimSpace(profile.Get(entry.section))
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", entry.label, truncate(text, entry.budget))
	}
	b.WriteString(`
포트폴리오 내용을 바탕으로 구체적이고 개인화된 질문을 하세요.
지원자의 경험과 스킬에 대해 심화 질문을 진행하세요.`)

	return b.String()
}

// truncate cuts a summary to at most budget characters. Budgets count
// characters, not bytes, so Hangul text truncates correctly.
func truncate(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget])
}

func join(sections []section) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if s.body != "" {
			parts = append(parts, s.body)
		}
	}
	return strings.Join(parts, "\n\n")
}
