package profile

// Update is a partial profile payload. Field presence, not value,
// decides whether a stored field is touched: a nil section is left
// alone, a present-but-empty one follows the per-section policy below.
type Update struct {
	Personal    *PersonalPatch    `json:"personal"`
	Education   *[]Education      `json:"education"`
	Experience  []Experience      `json:"experience"`
	Internships []InternshipEntry `json:"internships"`
	Skills      *SkillsPatch      `json:"skills"`
	Projects    *[]Project        `json:"projects"`
}

// PersonalPatch shallow-merges into the stored personal record: only
// fields present in the payload overwrite, everything else is kept.
// An explicit empty string is a present value and does overwrite.
type PersonalPatch struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Avatar       *string `json:"avatar"`
	Headline     *string `json:"headline"`
	Phone        *string `json:"phone"`
	Location     *string `json:"location"`
	GithubURL    *string `json:"githubUrl"`
	LinkedinURL  *string `json:"linkedinUrl"`
	PortfolioURL *string `json:"portfolioUrl"`
	About        *string `json:"about"`
}

// InternshipEntry is the shape internship builders submit. The client
// sends a title; the merge turns it into an experience entry whose
// role is that title and whose type is "Internship".
type InternshipEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// SkillsPatch carries the bucket asymmetry the clients rely on: when a
// skills payload is present, the four primary buckets are always
// written (a bucket missing from the payload becomes an empty list),
// while the three secondary buckets are written only when present.
type SkillsPatch struct {
	Programming []string  `json:"programming"`
	Frameworks  []string  `json:"frameworks"`
	Databases   []string  `json:"databases"`
	Tools       []string  `json:"tools"`
	Technical   *[]string `json:"technical"`
	Languages   *[]string `json:"languages"`
	Soft        *[]string `json:"soft"`
}

// Apply merges the update into the profile.
//
// Education and projects are full replacements whenever their key is
// present, including a present-but-empty list. Experience is rebuilt
// purely from the payload: payload experience entries plus payload
// internships (tagged and role-mapped) form one combined list which
// replaces the stored list in full, but only when non-empty, so a
// payload without either section leaves stored experience untouched.
// A payload that carries internships and omits experience therefore
// drops previously stored non-internship entries. The stored
// Internships list itself is never written here.
func (p *Profile) Apply(u Update) {
	if u.Personal != nil {
		u.Personal.mergeInto(&p.Personal)
	}

	if u.Education != nil {
		p.Education = *u.Education
	}

	combined := make([]Experience, 0, len(u.Experience)+len(u.Internships))
	combined = append(combined, u.Experience...)
	for _, entry := range u.Internships {
		combined = append(combined, entry.toExperience())
	}
	if len(combined) > 0 {
		p.Experience = combined
	}

	if u.Skills != nil {
		u.Skills.applyTo(&p.Skills)
	}

	if u.Projects != nil {
		p.Projects = *u.Projects
	}
}

func (e InternshipEntry) toExperience() Experience {
	return Experience{
		Company:     e.Company,
		Role:        e.Title,
		Type:        TypeInternship,
		Location:    e.Location,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Description: e.Description,
	}
}

func (patch *PersonalPatch) mergeInto(p *Personal) {
	setIfPresent(&p.FirstName, patch.FirstName)
	setIfPresent(&p.LastName, patch.LastName)
	setIfPresent(&p.Avatar, patch.Avatar)
	setIfPresent(&p.Headline, patch.Headline)
	setIfPresent(&p.Phone, patch.Phone)
	setIfPresent(&p.Location, patch.Location)
	setIfPresent(&p.GithubURL, patch.GithubURL)
	setIfPresent(&p.LinkedinURL, patch.LinkedinURL)
	setIfPresent(&p.PortfolioURL, patch.PortfolioURL)
	setIfPresent(&p.About, patch.About)
}

func (patch *SkillsPatch) applyTo(s *SkillSet) {
	s.Programming = orEmpty(patch.Programming)
	s.Frameworks = orEmpty(patch.Frameworks)
	s.Databases = orEmpty(patch.Databases)
	s.Tools = orEmpty(patch.Tools)

	if patch.Technical != nil {
		s.Technical = *patch.Technical
	}
	if patch.Languages != nil {
		s.Languages = *patch.Languages
	}
	if patch.Soft != nil {
		s.Soft = *patch.Soft
	}
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
