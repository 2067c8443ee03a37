package scoring

// Band is a qualitative reading of a final score
type Band struct {
	Key     string `json:"key"`
	Range   string `json:"range"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

var bands = []struct {
	min  int
	band Band
}{
	{80, Band{
		Key:     "excellent",
		Range:   "80-100%",
		Title:   "Excellent Cyber Resilience",
		Message: "Excellent! Your organization demonstrates strong cyber resilience.",
	}},
	{60, Band{
		Key:     "good",
		Range:   "60-79%",
		Title:   "Good Cyber Resilience",
		Message: "Good progress, but there are areas for improvement.",
	}},
	{40, Band{
		Key:     "moderate",
		Range:   "40-59%",
		Title:   "Moderate Cyber Resilience",
		Message: "Significant gaps identified. Immediate action recommended.",
	}},
	{0, Band{
		Key:     "critical",
		Range:   "0-39%",
		Title:   "Critical Vulnerabilities",
		Message: "Critical vulnerabilities detected. Urgent improvements needed.",
	}},
}

// BandFor returns the band a final score falls into
func BandFor(score int) Band {
	for _, b := range bands {
		if score >= b.min {
			return b.band
		}
	}
	return bands[len(bands)-1].band
}
