package gemini

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

// Response fields are pointers so a missing key can be told apart from an empty value.
type responsePart struct {
	Text *string `json:"text"`
}

type responseContent struct {
	Parts []responsePart `json:"parts"`
}

type candidate struct {
	Content *responseContent `json:"content"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

// firstText returns the text of the first part of the first candidate.
// Later candidates and parts are ignored.
func (r generateContentResponse) firstText() (string, bool) {
	if len(r.Candidates) == 0 {
		return "", false
	}
	c := r.Candidates[0].Content
	if c == nil || len(c.Parts) == 0 || c.Parts[0].Text == nil {
		return "", false
	}
	return *c.Parts[0].Text, true
}
