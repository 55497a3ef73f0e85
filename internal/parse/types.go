package parse

// ContactInfo holds contact details extracted from a resume.
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Education is one entry in a resume's education history.
type Education struct {
	Institution  string `json:"institution,omitempty"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Experience is one entry in a resume's work history.
type Experience struct {
	Company     string `json:"company,omitempty"`
	Title       string `json:"title,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Skill is a named skill with an optional category.
type Skill struct {
	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
}

// Project is one entry in a resume's project list.
type Project struct {
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// ParsedResume is the structured form of a raw resume text.
type ParsedResume struct {
	ContactInfo ContactInfo  `json:"contact_info"`
	Summary     string       `json:"summary,omitempty"`
	Education   []Education  `json:"education,omitempty"`
	Experience  []Experience `json:"experience,omitempty"`
	Skills      []Skill      `json:"skills,omitempty"`
	Projects    []Project    `json:"projects,omitempty"`
}

// ParsedJob is the structured form of a raw job description.
type ParsedJob struct {
	RequiredSkills      []string `json:"required_skills,omitempty"`
	PreferredSkills     []string `json:"preferred_skills,omitempty"`
	RequiredExperience  string   `json:"required_experience,omitempty"`
	RequiredEducation   string   `json:"required_education,omitempty"`
	Responsibilities    []string `json:"responsibilities,omitempty"`
	Benefits            []string `json:"benefits,omitempty"`
	ApplicationDeadline string   `json:"application_deadline,omitempty"`
}
