package job

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/alumni-labs/bolsa/pkg/cv"
)

// maxRecommendations caps the number of recommended jobs returned.
const maxRecommendations = 6

// Recommend ranks jobs against the CV's declared skill set and an optional
// free-text query. Each skill whose lowercased name appears as a substring
// of the job's searchable text (title, description, area, company name)
// adds 2 to the score; a matching query adds 1 more. The sort is stable by
// descending score: ties keep their original relative order. At most the
// top 6 jobs are returned.
//
// A nil CV falls back to the first 6 jobs in their given order, unscored.
// The input slice is never mutated.
func Recommend(jobs []Job, doc *cv.CV, companyNames map[uuid.UUID]string, query string) []Job {
	if doc == nil {
		n := len(jobs)
		if n > maxRecommendations {
			n = maxRecommendations
		}
		out := make([]Job, n)
		copy(out, jobs[:n])
		return out
	}

	skills := make([]string, 0)
	for _, name := range doc.SkillNames() {
		if s := strings.ToLower(strings.TrimSpace(name)); s != "" {
			skills = append(skills, s)
		}
	}
	query = strings.ToLower(strings.TrimSpace(query))

	type scored struct {
		job   Job
		score int
	}
	ranked := make([]scored, 0, len(jobs))
	for _, j := range jobs {
		haystack := strings.ToLower(j.Title + " " + j.Description + " " + j.Area + " " + companyNames[j.CompanyID])
		score := 0
		for _, s := range skills {
			if strings.Contains(haystack, s) {
				score += 2
			}
		}
		if query != "" && strings.Contains(haystack, query) {
			score++
		}
		ranked = append(ranked, scored{job: j, score: score})
	}

	sort.SliceStable(ranked, func(i, k int) bool { return ranked[i].score > ranked[k].score })

	n := len(ranked)
	if n > maxRecommendations {
		n = maxRecommendations
	}
	out := make([]Job, 0, n)
	for _, r := range ranked[:n] {
		out = append(out, r.job)
	}
	return out
}
