package services

import (
	"strings"

	"github.com/CHYou2Sef/BridgeEd/model"
)

// CatalogService serves the immutable course catalog and pure filter
// projections over it. It never mutates the catalog or a user's ledger.
type CatalogService struct {
	courses []model.Course
	index   map[string]*model.Course
}

// CatalogFilter selects a view over the catalog for display
type CatalogFilter struct {
	Region       model.Region
	EnrolledOnly bool
	Enrolled     []model.Enrollment
	Query        string
	Lang         model.Language
}

// NewCatalogService creates a catalog service with the default course seed
func NewCatalogService() *CatalogService {
	return NewCatalogServiceWith(defaultCatalog())
}

// NewCatalogServiceWith creates a catalog service over the given courses
func NewCatalogServiceWith(courses []model.Course) *CatalogService {
	index := make(map[string]*model.Course, len(courses))
	for i := range courses {
		index[courses[i].ID] = &courses[i]
	}
	return &CatalogService{
		courses: courses,
		index:   index,
	}
}

// Course looks up a catalog entry by id
func (s *CatalogService) Course(id string) (*model.Course, bool) {
	course, ok := s.index[id]
	return course, ok
}

// List returns all catalog entries
func (s *CatalogService) List() []model.Course {
	out := make([]model.Course, len(s.courses))
	copy(out, s.courses)
	return out
}

// Filter returns the courses matching the filter. The projection is pure:
// neither the catalog nor the ledger is modified.
func (s *CatalogService) Filter(filter CatalogFilter) []model.Course {
	lang := filter.Lang
	if !lang.IsValid() {
		lang = model.LangEnglish
	}

	enrolledSet := make(map[string]struct{}, len(filter.Enrolled))
	for _, e := range filter.Enrolled {
		enrolledSet[e.CourseID] = struct{}{}
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]model.Course, 0, len(s.courses))
	for _, course := range s.courses {
		if filter.EnrolledOnly {
			if _, ok := enrolledSet[course.ID]; !ok {
				continue
			}
		} else if filter.Region != "" && !course.HasRegion(filter.Region) {
			continue
		}

		if query != "" {
			title := strings.ToLower(course.TitleIn(lang))
			desc := strings.ToLower(course.DescriptionIn(lang))
			if !strings.Contains(title, query) && !strings.Contains(desc, query) {
				continue
			}
		}

		out = append(out, course)
	}
	return out
}

func defaultCatalog() []model.Course {
	return []model.Course{
		{
			ID: "algebra-foundations",
			Title: map[model.Language]string{
				model.LangEnglish: "Foundations of Algebra",
				model.LangFrench:  "Fondements de l'algèbre",
				model.LangArabic:  "أسس الجبر",
			},
			Description: map[model.Language]string{
				model.LangEnglish: "From Al-Jabr to modern equations: the language of structure.",
				model.LangFrench:  "D'Al-Jabr aux équations modernes : le langage de la structure.",
				model.LangArabic:  "من الجبر إلى المعادلات الحديثة: لغة البنية.",
			},
			Category:   model.CategoryScience,
			Regions:    []model.Region{model.RegionWest, model.RegionArab},
			Thumbnail:  "https://picsum.photos/seed/algebra/640/360",
			Difficulty: model.DifficultyBeginner,
			Duration:   "6h",
		},
		{
			ID: "critical-thinking",
			Title: map[model.Language]string{
				model.LangEnglish: "Critical Thinking",
				model.LangFrench:  "Pensée critique",
				model.LangArabic:  "التفكير النقدي",
			},
			Description: map[model.Language]string{
				model.LangEnglish: "Evaluate arguments, spot fallacies, and reason under uncertainty.",
				model.LangFrench:  "Évaluer les arguments, repérer les sophismes et raisonner dans l'incertitude.",
				model.LangArabic:  "تقييم الحجج واكتشاف المغالطات والتفكير في ظل عدم اليقين.",
			},
			Category:   model.CategoryHumanities,
			Regions:    []model.Region{model.RegionWest},
			Thumbnail:  "https://picsum.photos/seed/thinking/640/360",
			Difficulty: model.DifficultyIntermediate,
			Duration:   "4h",
		},
		{
			ID: "community-values",
			Title: map[model.Language]string{
				model.LangEnglish: "Ethics and Community Values",
				model.LangFrench:  "Éthique et valeurs communautaires",
				model.LangArabic:  "الأخلاق وقيم المجتمع",
			},
			Description: map[model.Language]string{
				model.LangEnglish: "Scientific rigor within cultural values: a practical framework.",
				model.LangFrench:  "La rigueur scientifique au sein des valeurs culturelles : un cadre pratique.",
				model.LangArabic:  "الدقة العلمية ضمن القيم الثقافية: إطار عملي.",
			},
			Category:   model.CategoryValues,
			Regions:    []model.Region{model.RegionArab},
			Thumbnail:  "https://picsum.photos/seed/values/640/360",
			Difficulty: model.DifficultyBeginner,
			Duration:   "3h",
		},
		{
			ID: "intro-algorithms",
			Title: map[model.Language]string{
				model.LangEnglish: "Introduction to Algorithms",
				model.LangFrench:  "Introduction aux algorithmes",
				model.LangArabic:  "مقدمة في الخوارزميات",
			},
			Description: map[model.Language]string{
				model.LangEnglish: "Sorting, searching, and the complexity of everyday computation.",
				model.LangFrench:  "Tri, recherche et complexité du calcul quotidien.",
				model.LangArabic:  "الترتيب والبحث وتعقيد الحساب اليومي.",
			},
			Category:   model.CategoryTech,
			Regions:    []model.Region{model.RegionWest, model.RegionArab},
			Thumbnail:  "https://picsum.photos/seed/algorithms/640/360",
			Difficulty: model.DifficultyAdvanced,
			Duration:   "8h",
		},
		{
			ID: "golden-age-astronomy",
			Title: map[model.Language]string{
				model.LangEnglish: "Golden Age Astronomy",
				model.LangFrench:  "Astronomie de l'âge d'or",
				model.LangArabic:  "فلك العصر الذهبي",
			},
			Description: map[model.Language]string{
				model.LangEnglish: "Observatories, astrolabes, and the scholars who mapped the sky.",
				model.LangFrench:  "Observatoires, astrolabes et les savants qui ont cartographié le ciel.",
				model.LangArabic:  "المراصد والأسطرلابات والعلماء الذين رسموا خريطة السماء.",
			},
			Category:   model.CategoryScience,
			Regions:    []model.Region{model.RegionArab},
			Thumbnail:  "https://picsum.photos/seed/astronomy/640/360",
			Difficulty: model.DifficultyIntermediate,
			Duration:   "5h",
		},
		{
			ID: "project-collaboration",
			Title: map[model.Language]string{
				model.LangEnglish: "Project Collaboration",
				model.LangFrench:  "Collaboration de projet",
				model.LangArabic:  "التعاون في المشاريع",
			},
			Description: map[model.Language]string{
				model.LangEnglish: "Interdisciplinary teamwork from kickoff to retrospective.",
				model.LangFrench:  "Travail d'équipe interdisciplinaire du lancement à la rétrospective.",
				model.LangArabic:  "العمل الجماعي متعدد التخصصات من البداية إلى المراجعة.",
			},
			Category:   model.CategoryHumanities,
			Regions:    []model.Region{model.RegionWest},
			Thumbnail:  "https://picsum.photos/seed/collab/640/360",
			Difficulty: model.DifficultyBeginner,
			Duration:   "4h",
		},
	}
}
