package models

// Consultation modes supported by lawyers.
const (
	ModeVideo    = "video"
	ModeCall     = "call"
	ModeChat     = "chat"
	ModeInPerson = "in-person"
)

// Lawyer represents a lawyer profile. Fetched, never mutated locally except to
// attach the derived avatar URL.
type Lawyer struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Specializations []string `json:"specializations"`
	ConsultationFee float64  `json:"consultationFee"`
	Modes           []string `json:"modes"` // subset of video/call/chat/in-person
	Location        string   `json:"location"`
	Rating          float64  `json:"rating,omitempty"`
	AvatarID        string   `json:"avatarId,omitempty"`
	AvatarURL       string   `json:"avatarUrl,omitempty"` // derived client-side from AvatarID
}

// SupportsMode reports whether the lawyer offers the given consultation mode.
func (l *Lawyer) SupportsMode(mode string) bool {
	for _, m := range l.Modes {
		if m == mode {
			return true
		}
	}
	return false
}
