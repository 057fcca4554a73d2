package cv

import "strings"

// Complete reports whether the CV clears the job-board gate. Three blocks
// must all hold:
//
//   - personal: first name, last name, email and phone are non-empty;
//   - content: a PDF is attached, or there is at least one education entry,
//     or at least one experience entry;
//   - skills: at least one declared skill entry exists.
//
// Deterministic and side-effect free. A missing CV is incomplete by
// definition; callers holding no CV should not call this at all, but the
// zero value evaluates to false anyway.
func Complete(c CV) bool {
	p := c.Personal
	personalOk := strings.TrimSpace(p.FirstName) != "" &&
		strings.TrimSpace(p.LastName) != "" &&
		strings.TrimSpace(p.Email) != "" &&
		strings.TrimSpace(p.Phone) != ""

	pdfAttached := len(c.PDFData) > 0 || c.PDFURL != ""
	contentOk := pdfAttached || len(c.Education) > 0 || len(c.Experience) > 0

	skillsOk := len(c.SkillNames()) > 0

	return personalOk && contentOk && skillsOk
}
