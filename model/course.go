package model

// Language is a supported interface language code
type Language string

const (
	LangEnglish Language = "en"
	LangFrench  Language = "fr"
	LangArabic  Language = "ar"
)

// IsValid checks whether the language is one of the supported codes
func (l Language) IsValid() bool {
	switch l {
	case LangEnglish, LangFrench, LangArabic:
		return true
	}
	return false
}

// Region groups courses by cultural applicability
type Region string

const (
	RegionWest Region = "west"
	RegionArab Region = "arab"
)

// CourseCategory classifies catalog courses
type CourseCategory string

const (
	CategoryScience    CourseCategory = "science"
	CategoryHumanities CourseCategory = "humanities"
	CategoryValues     CourseCategory = "values"
	CategoryTech       CourseCategory = "tech"
)

// Difficulty is the course difficulty level
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Course is an immutable catalog entry. The core treats the catalog as
// read-only reference data; enrollments point at it by id.
type Course struct {
	ID          string              `json:"id"`
	Title       map[Language]string `json:"title"`
	Description map[Language]string `json:"description"`
	Category    CourseCategory      `json:"category"`
	Regions     []Region            `json:"regions"`
	Thumbnail   string              `json:"thumbnail,omitempty"`
	Difficulty  Difficulty          `json:"difficulty"`
	Duration    string              `json:"duration"`
}

// HasRegion reports whether the course applies to the given region
func (c *Course) HasRegion(region Region) bool {
	for _, r := range c.Regions {
		if r == region {
			return true
		}
	}
	return false
}

// TitleIn returns the course title for a language, falling back to English
func (c *Course) TitleIn(lang Language) string {
	if t, ok := c.Title[lang]; ok && t != "" {
		return t
	}
	return c.Title[LangEnglish]
}

// DescriptionIn returns the course description for a language, falling back to English
func (c *Course) DescriptionIn(lang Language) string {
	if d, ok := c.Description[lang]; ok && d != "" {
		return d
	}
	return c.Description[LangEnglish]
}

// ServiceHealth is the reported status of a backing service
type ServiceHealth string

const (
	HealthOnline   ServiceHealth = "online"
	HealthDegraded ServiceHealth = "degraded"
	HealthOffline  ServiceHealth = "offline"
)

// ServiceStatus is a gateway health record for one backing service
type ServiceStatus struct {
	Name    string        `json:"name"`
	Status  ServiceHealth `json:"status"`
	Latency int           `json:"latency"` // milliseconds
}
