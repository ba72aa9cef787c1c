package models

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Kind    string `json:"kind"` // success | error | info
	Message string `json:"message"`
}

// VisitorState is the per-browser client state, keyed by the visitor cookie.
type VisitorState struct {
	Email           string  `json:"email,omitempty"`
	CartOwner       string  `json:"cartOwner,omitempty"`
	CartCount       int     `json:"cartCount"`
	PendingCartItem string  `json:"pendingCartItem,omitempty"`
	ResetEmail      string  `json:"resetEmail,omitempty"`
	ResetVerified   bool    `json:"resetVerified,omitempty"`
	Flashes         []Flash `json:"flashes,omitempty"`
}

// SetCartCount stores n, never below zero.
func (s *VisitorState) SetCartCount(n int) {
	if n < 0 {
		n = 0
	}
	s.CartCount = n
}

func (s *VisitorState) AddFlash(kind, message string) {
	s.Flashes = append(s.Flashes, Flash{Kind: kind, Message: message})
}

// PopFlashes returns and clears pending flashes.
func (s *VisitorState) PopFlashes() []Flash {
	f := s.Flashes
	s.Flashes = nil
	return f
}

// ResetStep is the forgot-password step the visitor is on: email, code or password.
func (s *VisitorState) ResetStep() string {
	switch {
	case s.ResetEmail == "":
		return "email"
	case !s.ResetVerified:
		return "code"
	default:
		return "password"
	}
}

// ClearReset forgets a finished or abandoned password reset.
func (s *VisitorState) ClearReset() {
	s.ResetEmail = ""
	s.ResetVerified = false
}

// Clone returns a deep copy for change detection.
func (s *VisitorState) Clone() *VisitorState {
	c := *s
	if s.Flashes != nil {
		c.Flashes = append([]Flash(nil), s.Flashes...)
	}
	return &c
}
