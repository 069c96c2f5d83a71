package portfolio

// Copy for the bundled document. It ships inside the binary so a page can
// always render even when the store is unreachable or empty.
var (
	AboutMe = `B.Tech Computer Science student at SASTRA University who enjoys turning
	ideas into working products, from AI-assisted web apps to satellite data analysis.`

	StressAnalyzer = `AI-powered stress analysis platform using facial recognition.`

	WellnessPlatform = `AI-driven mental wellness support system.`

	GlacierAnalysis = `GLOF analysis using Landsat satellite data.`
)

// Default returns a fresh copy of the bundled portfolio document.
func Default() *Document {
	return &Document{
		PersonalInfo: PersonalInfo{
			"name":         "Pratheesh Krishnan",
			"title":        "B.Tech Computer Science Student at SASTRA University",
			"about":        AboutMe,
			"email":        "",
			"github":       "https://github.com/Pratheesh-555",
			"linkedin":     "https://www.linkedin.com/in/pratheesh-krishnan-30b08a282",
			"profileImage": "/profile.jpg",
			"resumeFile":   "/resume.pdf",
		},
		Skills: []SkillCategory{
			{Title: "Programming", Items: items("C", "C++", "Java")},
			{Title: "Web Development", Items: items("HTML", "CSS", "JavaScript", "React.js", "Express.js", "Node.js")},
			{Title: "Tools", Items: items("Git", "GitHub", "APIs")},
			{Title: "Languages", Items: items("Tamil", "English", "Telugu", "Hindi", "German")},
		},
		Projects: []Project{
			{ID: 1, Title: "Stress Analyzer", Description: StressAnalyzer, Tech: "React · Node.js · Express.js · AI", Link: "#"},
			{ID: 2, Title: "Mental Wellness Platform", Description: WellnessPlatform, Tech: "React · Node.js · AI APIs", Link: "#"},
			{ID: 3, Title: "Glacier Analysis", Description: GlacierAnalysis, Tech: "Python · GIS · NDWI", Link: "#"},
		},
		Achievements: []Achievement{
			{ID: 1, Title: "DAKSH AI Hackathon 2nd Place", Year: "2025"},
			{ID: 2, Title: "Smart India Hackathon College-Level Selection", Year: "2024"},
			{ID: 3, Title: "PayPal Career Academy Student"},
			{ID: 4, Title: "Best Student Award (Twice)"},
		},
	}
}

func items(names ...string) []SkillItem {
	out := make([]SkillItem, len(names))
	for i, n := range names {
		out[i] = SkillItem{Name: n}
	}
	return out
}
