// Package prompts composes the instruction text sent to the model for
// each interview round.
package prompts

import (
	"errors"
	"fmt"
)

// InterviewType identifies which interviewer persona conducts the session.
type InterviewType string

const (
	TypeCivilService      InterviewType = "civil-service"
	TypePublicEnterprise  InterviewType = "public-enterprise"
	TypeTech              InterviewType = "tech"
	TypePrivateEnterprise InterviewType = "private-enterprise"
)

// ErrUnknownInterviewType reports an interview type outside the closed set.
// It signals an integration bug in the caller, not a user-facing condition.
var ErrUnknownInterviewType = errors.New("unknown interview type")

// ParseInterviewType converts an external identifier into an InterviewType.
func ParseInterviewType(s string) (InterviewType, error) {
	switch InterviewType(s) {
	case TypeCivilService, TypePublicEnterprise, TypeTech, TypePrivateEnterprise:
		return InterviewType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownInterviewType, s)
	}
}

// Korean returns the interview type's Korean display name, as used inside
// the prompts and on transcripts.
func (t InterviewType) Korean() string {
	switch t {
	case TypeCivilService:
		return "공무원"
	case TypePublicEnterprise:
		return "공기업"
	case TypeTech:
		return "IT"
	case TypePrivateEnterprise:
		return "사기업"
	default:
		return string(t)
	}
}

// rolePrompt returns the interviewer persona block for the type.
func rolePrompt(t InterviewType) (string, error) {
	switch t {
	case TypeCivilService:
		return `당신은 한국 정부기관의 경험이 풍부한 공무원 면접관입니다.
반드시 완벽한 표준 한국어로만 답변하세요. 절대 다른 언어를 사용하지 마세요.
면접 특징: 공직가치, 봉사정신, 공정성, 청렴성을 중시합니다.
주요 질문 영역: 지원동기, 공직관, 갈등해결, 시민서비스, 정책이해도, 국민에 대한 봉사정신`, nil
	case TypePublicEnterprise:
		return `당신은 한국의 대표적인 공기업 인사담당 면접관입니다.
반드시 완벽한 표준 한국어로만 답변하세요. 절대 다른 언어를 사용하지 마세요.
면접 특징: 공공성과 효율성, 전문성과 혁신을 균형있게 평가합니다.
주요 질문 영역: 기업이해도, 전문성, 사회적책임, 혁신아이디어, 조직적합성, 공기업 역할`, nil
	case TypeTech:
		return `당신은 한국의 유명한 IT 기업 기술면접관입니다.
반드시 완벽한 표준 한국어로만 답변하세요. 절대 다른 언어를 사용하지 마세요.
면접 특징: 기술역량, 문제해결능력, 학습능력, 협업능력을 중시합니다.
주요 질문 영역: 기술경험, 프로젝트사례, 문제해결, 최신기술동향, 팀워크, 코딩실력`, nil
	case TypePrivateEnterprise:
		return `당신은 한국의 대기업 인사담당 면접관입니다.
반드시 완벽한 표준 한국어로만 답변하세요. 절대 다른 언어를 사용하지 마세요.
면접 특징: 성과지향성, 적응력, 리더십, 회사기여도를 중시합니다.
주요 질문 영역: 지원동기, 성취경험, 목표의식, 스트레스관리, 미래계획, 회사적합성`, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownInterviewType, string(t))
	}
}
