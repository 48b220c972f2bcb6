// Package portfolio segments an applicant's document text into
// resume-style sections used to personalize interview prompts.
package portfolio

import (
	"strings"

	"ai-mock-interview/internal/textproc"
)

// Section is one of the resume categories a document line can belong to.
type Section int

const (
	SectionOther Section = iota
	SectionEducation
	SectionExperience
	SectionSkills
	SectionProjects
	SectionCertifications
)

// String returns the section's stable identifier.
func (s Section) String() string {
	switch s {
	case SectionEducation:
		return "education"
	case SectionExperience:
		return "experience"
	case SectionSkills:
		return "skills"
	case SectionProjects:
		return "projects"
	case SectionCertifications:
		return "certifications"
	default:
		return "other"
	}
}

// Keyword tables for the Korean source documents this system targets.
var (
	educationKeywords     = []string{"학력", "교육", "대학", "학과", "전공", "졸업"}
	experienceKeywords    = []string{"경력", "경험", "근무", "회사", "업무", "담당"}
	skillsKeywords        = []string{"기술", "스킬", "언어", "도구", "프로그래밍"}
	projectKeywords       = []string{"프로젝트", "개발", "제작", "구현", "설계"}
	certificationKeywords = []string{"자격증", "인증", "수료", "취득"}
)

// classifyOrder is the tie-break priority when a line matches keywords
// from more than one section.
var classifyOrder = []struct {
	section  Section
	keywords []string
}{
	{SectionEducation, educationKeywords},
	{SectionExperience, experienceKeywords},
	{SectionSkills, skillsKeywords},
	{SectionProjects, projectKeywords},
	{SectionCertifications, certificationKeywords},
}

// Profile holds the accumulated text of each section. It is immutable
// after classification.
type Profile struct {
	sections map[Section]string
}

// Get returns the accumulated text for a section.
func (p *Profile) Get(section Section) string {
	return p.sections[section]
}

// HasContent reports whether any section other than SectionOther
// accumulated text.
func (p *Profile) HasContent() bool {
	for section, text := range p.sections {
		if section != SectionOther && text != "" {
			return true
		}
	}
	return false
}

// Classify partitions normalized text into sections. A sticky cursor
// starts at SectionOther; each line containing a section keyword moves
// the cursor, and lines without a match accumulate under the current
// cursor. Classification never fails — keyword-free text simply ends up
// under SectionOther.
func Classify(text string) *Profile {
	profile := &Profile{sections: make(map[Section]string)}
	current := SectionOther

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		for _, entry := range classifyOrder {
			if containsAny(line, entry.keywords) {
				current = entry.section
				break
			}
		}

		profile.sections[current] += line + " "
	}

	return profile
}

// FromDocument normalizes raw extracted text and classifies it.
func FromDocument(raw string) *Profile {
	return Classify(textproc.Normalize(raw))
}

func containsAny(line string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(line, keyword) {
			return true
		}
	}
	return false
}
