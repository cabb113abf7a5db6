package bot

import "strings"

// Templated answers for free-text application fields, keyed by detected
// field semantics.
const (
	responseCoverLetter = `I am excited about this opportunity and believe my skills and enthusiasm make me a strong candidate for this role. I have experience with the technologies mentioned in the job description and am eager to apply these skills in a real-world setting. I am a quick learner, detail-oriented, and passionate about contributing to innovative projects. I look forward to the possibility of joining your team and growing professionally through this experience.`

	responseMotivation = `I am particularly interested in this role because it aligns perfectly with my skills and career aspirations. I'm impressed by the company's work and culture, and I believe my background in the required technologies would allow me to contribute effectively from day one. I'm enthusiastic about learning and growing in this position, and I'm confident I can bring a unique perspective and strong work ethic to your team.`

	responseAvailability = `I am available to start immediately and can commit to the full duration of the internship. I have arranged my schedule to dedicate the required hours to this opportunity, ensuring I can give my complete focus and attention to the role.`

	responseExperience = `I have hands-on experience with relevant technologies through both academic projects and self-directed learning. I've completed several projects that developed my technical skills and problem-solving abilities. I focus on writing clean, maintainable code and continuously expanding my knowledge. I'm eager to apply these skills in a professional environment where I can both contribute and grow.`

	responseDefault = `Thank you for considering my application. I believe my skills and enthusiasm make me well-suited for this opportunity. I am committed to delivering high-quality work and am excited about the prospect of joining your team. I look forward to discussing how my background aligns with your needs.`
)

var (
	motivationKeywords   = []string{"why", "interested", "select", "hire", "ideal"}
	availabilityKeywords = []string{"availability", "available", "start", "join", "duration"}
	experienceKeywords   = []string{"experience", "skill", "project", "work"}
)

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// GenerateResponse maps a field label to a templated paragraph. Categories
// are checked in priority order: cover letter/general, motivation,
// availability, experience, then a default fallback. Pure; no side effects.
func GenerateResponse(label string) string {
	q := strings.ToLower(label)

	switch {
	case strings.Contains(q, "cover") || strings.Contains(q, "letter") || q == "general":
		return responseCoverLetter
	case containsAny(q, motivationKeywords):
		return responseMotivation
	case containsAny(q, availabilityKeywords):
		return responseAvailability
	case containsAny(q, experienceKeywords):
		return responseExperience
	default:
		return responseDefault
	}
}
