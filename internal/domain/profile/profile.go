package profile

// Personal is the flat identity card of a profile. Every field is
// optional; absent values stay empty strings so clients never see null.
type Personal struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Avatar       string `json:"avatar"`
	Headline     string `json:"headline"`
	Phone        string `json:"phone"`
	Location     string `json:"location"`
	GithubURL    string `json:"githubUrl"`
	LinkedinURL  string `json:"linkedinUrl"`
	PortfolioURL string `json:"portfolioUrl"`
	About        string `json:"about"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Location    string `json:"location"`
	GPA         string `json:"gpa"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// TypeInternship is the experience type tag the clients treat as
// special. It is a free-form tag, not an enum: internship-like records
// live both as tagged experience entries and in the separate
// Internships list, and the two are kept as-is rather than collapsed.
const TypeInternship = "Internship"

type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Type        string `json:"type"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// SkillSet holds independent named buckets. No cross-bucket dedup.
type SkillSet struct {
	Programming []string `json:"programming"`
	Frameworks  []string `json:"frameworks"`
	Databases   []string `json:"databases"`
	Tools       []string `json:"tools"`
	Technical   []string `json:"technical"`
	Languages   []string `json:"languages"`
	Soft        []string `json:"soft"`
}

type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
	Link        string   `json:"link"`
	GithubLink  string   `json:"githubLink"`
}

type Internship struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url"`
}

// Profile is the nested career document owned by a single user. It has
// no lifecycle of its own: it is created empty with the user and
// mutated in place by profile updates.
type Profile struct {
	Personal       Personal        `json:"personal"`
	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	Skills         SkillSet        `json:"skills"`
	Projects       []Project       `json:"projects"`
	Internships    []Internship    `json:"internships"`
	Achievements   []string        `json:"achievements"`
	Certifications []Certification `json:"certifications"`
}

// New returns an empty profile with every list initialized, so the
// document serializes with [] instead of null from the first read.
func New() Profile {
	return Profile{
		Education:  []Education{},
		Experience: []Experience{},
		Skills: SkillSet{
			Programming: []string{},
			Frameworks:  []string{},
			Databases:   []string{},
			Tools:       []string{},
			Technical:   []string{},
			Languages:   []string{},
			Soft:        []string{},
		},
		Projects:       []Project{},
		Internships:    []Internship{},
		Achievements:   []string{},
		Certifications: []Certification{},
	}
}
