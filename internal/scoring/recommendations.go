package scoring

type SalaryRange struct {
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Currency string `json:"currency"`
}

type Career struct {
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	EducationPath []string    `json:"educationPath"`
	SalaryRange   SalaryRange `json:"salaryRange"`
}

type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

type Recommendation struct {
	Careers   []Career   `json:"careers"`
	NextSteps []string   `json:"nextSteps"`
	Resources []Resource `json:"resources"`
}

// RecommendationsFor looks up the bundle for a stream. Unknown keys get an
// empty bundle rather than an error. The returned value is a copy.
func RecommendationsFor(stream string) Recommendation {
	rec, ok := recommendationTable[Stream(stream)]
	if !ok {
		return Recommendation{
			Careers:   []Career{},
			NextSteps: []string{},
			Resources: []Resource{},
		}
	}
	return rec.clone()
}

func (r Recommendation) clone() Recommendation {
	out := Recommendation{
		Careers:   make([]Career, len(r.Careers)),
		NextSteps: append([]string{}, r.NextSteps...),
		Resources: append([]Resource{}, r.Resources...),
	}
	for i, c := range r.Careers {
		c.EducationPath = append([]string{}, c.EducationPath...)
		out.Careers[i] = c
	}
	return out
}

func inr(lo, hi int64) SalaryRange {
	return SalaryRange{Min: lo, Max: hi, Currency: "INR"}
}

var recommendationTable = map[Stream]Recommendation{
	Science: {
		Careers: []Career{
			{
				Title:         "Engineer",
				Description:   "Design and build complex systems and structures",
				EducationPath: []string{"10+2 with PCM", "JEE Main/Advanced", "B.Tech/B.E. in chosen field"},
				SalaryRange:   inr(500000, 2000000),
			},
			{
				Title:         "Doctor",
				Description:   "Diagnose and treat medical conditions",
				EducationPath: []string{"10+2 with PCB", "NEET", "MBBS", "PG (MD/MS)"},
				SalaryRange:   inr(800000, 3000000),
			},
			{
				Title:         "Data Scientist",
				Description:   "Analyze and interpret complex data",
				EducationPath: []string{"10+2 with PCM", "B.Tech/B.Sc. in CS/IT/Mathematics", "M.Tech/MS in Data Science"},
				SalaryRange:   inr(600000, 2500000),
			},
		},
		NextSteps: []string{
			"Focus on PCM subjects",
			"Prepare for JEE/NEET",
			"Join a coaching institute if needed",
			"Participate in science fairs and Olympiads",
		},
		Resources: []Resource{
			{Title: "NCERT Science Books", URL: "https://ncert.nic.in/textbook.php", Type: "book"},
			{Title: "Khan Academy - Science", URL: "https://www.khanacademy.org/science", Type: "website"},
		},
	},
	Commerce: {
		Careers: []Career{
			{
				Title:         "Chartered Accountant",
				Description:   "Manage financial accounts and provide financial advice",
				EducationPath: []string{"10+2 with Commerce", "CA Foundation", "CA Intermediate", "CA Final"},
				SalaryRange:   inr(600000, 2500000),
			},
			{
				Title:         "Company Secretary",
				Description:   "Ensure company compliance with legal requirements",
				EducationPath: []string{"10+2 with Commerce", "CS Foundation", "CS Executive", "CS Professional"},
				SalaryRange:   inr(500000, 2000000),
			},
			{
				Title:         "Financial Analyst",
				Description:   "Analyze financial data and help with investment decisions",
				EducationPath: []string{"10+2 with Commerce/Mathematics", "B.Com/BBA", "MBA in Finance"},
				SalaryRange:   inr(500000, 2200000),
			},
		},
		NextSteps: []string{
			"Focus on Accountancy and Economics",
			"Start preparing for CA/CS/CMA foundation",
			"Improve mathematical and analytical skills",
			"Stay updated with current business news",
		},
		Resources: []Resource{
			{Title: "ICAI Study Material", URL: "https://www.icai.org/", Type: "website"},
			{Title: "Khan Academy - Economics", URL: "https://www.khanacademy.org/economics-finance-domain", Type: "website"},
		},
	},
	Arts: {
		Careers: []Career{
			{
				Title:         "Lawyer",
				Description:   "Practice law and represent clients in legal matters",
				EducationPath: []string{"10+2 with any stream", "CLAT/AILET", "LLB (5 years)"},
				SalaryRange:   inr(400000, 2000000),
			},
			{
				Title:         "Journalist",
				Description:   "Research and report news stories",
				EducationPath: []string{"10+2 with any stream", "BA in Journalism/Mass Communication", "MA/Diploma in Journalism"},
				SalaryRange:   inr(300000, 1500000),
			},
			{
				Title:         "Psychologist",
				Description:   "Study human behavior and mental processes",
				EducationPath: []string{"10+2 with any stream", "BA/BSc in Psychology", "MA/MSc in Psychology", "M.Phil/PhD"},
				SalaryRange:   inr(400000, 1800000),
			},
		},
		NextSteps: []string{
			"Focus on developing communication skills",
			"Read extensively on various subjects",
			"Participate in debates and public speaking events",
			"Consider learning a foreign language",
		},
		Resources: []Resource{
			{Title: "CLAT Official Website", URL: "https://consortiumofnlus.ac.in/", Type: "website"},
			{Title: "Coursera - Arts & Humanities", URL: "https://www.coursera.org/browse/arts-and-humanities", Type: "website"},
		},
	},
	Vocational: {
		Careers: []Career{
			{
				Title:         "Chef",
				Description:   "Prepare and cook food in restaurants and other eating places",
				EducationPath: []string{"10th/12th", "Diploma in Culinary Arts", "Certificate courses in specific cuisines"},
				SalaryRange:   inr(300000, 1500000),
			},
			{
				Title:         "Graphic Designer",
				Description:   "Create visual concepts using computer software",
				EducationPath: []string{"10+2 with any stream", "Diploma/Degree in Graphic Design", "Certification in design tools"},
				SalaryRange:   inr(250000, 1200000),
			},
			{
				Title:         "Electrician",
				Description:   "Install, maintain, and repair electrical systems",
				EducationPath: []string{"10th pass", "ITI in Electrician", "NCVT certification"},
				SalaryRange:   inr(200000, 800000),
			},
		},
		NextSteps: []string{
			"Identify your area of interest and aptitude",
			"Research vocational training institutes",
			"Look for apprenticeship opportunities",
			"Build a portfolio of your work",
		},
		Resources: []Resource{
			{Title: "National Skill Development Corporation", URL: "https://www.nsdcindia.org/", Type: "website"},
			{Title: "Skill India", URL: "https://www.skillindia.gov.in/", Type: "website"},
		},
	},
}
