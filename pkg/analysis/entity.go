package analysis

// PatientInfo is descriptive metadata about the animal. Empty fields are treated as absent.
type PatientInfo struct {
	PatientID string `json:"patientId,omitempty"`
	Name      string `json:"name,omitempty"`
	Species   string `json:"species,omitempty"`
}

// Turn is one earlier exchange re-supplied by the client.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request is what the route layer hands to the use case.
// PatientInfo is a pointer because a present-but-empty object still renders the patient block.
type Request struct {
	Transcription    string       `json:"transcription,omitempty"`
	PatientInfo      *PatientInfo `json:"patientInfo,omitempty"`
	ConsultID        string       `json:"consultId,omitempty"`
	FollowUpQuestion string       `json:"followUpQuestion,omitempty"`
	PreviousMessages []Turn       `json:"previousMessages,omitempty"`
}

// Result is the model reply, returned verbatim.
type Result struct {
	Analysis string `json:"analysis"`
}

// Prompt is the pair sent to the model.
type Prompt struct {
	System string
	User   string
}
