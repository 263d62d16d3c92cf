package entity

import (
	"sync"
	"time"
)

// Phase is the top-level dialogue state.
type Phase string

const (
	PhaseInit              Phase = "init"
	PhaseProductInfo       Phase = "product_info"
	PhaseOrderConfirmation Phase = "order_confirmation"
	PhaseDeliverySelection Phase = "delivery_selection"
	PhaseOfficeClosed      Phase = "office_closed"
	PhaseOrderForm         Phase = "order_form"
	PhaseComplete          Phase = "complete"
)

// OrderStep is the active sub-step while Phase == PhaseOrderForm.
type OrderStep string

const (
	StepNone              OrderStep = ""
	StepFullName          OrderStep = "full_name"
	StepContact           OrderStep = "contact"
	StepModel             OrderStep = "model"
	StepModelConfirmation OrderStep = "model_confirmation"
	StepOutOfStock        OrderStep = "out_of_stock"
	StepStorage           OrderStep = "storage"
	StepColor             OrderStep = "color"
	StepCharger           OrderStep = "charger"
	StepConfirmation      OrderStep = "confirmation"
)

// Role of a history entry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of the per-session conversation history.
type Message struct {
	Role string
	Text string
}

// Session holds everything one visitor's conversation owns: the dialogue
// phase, the accumulating order draft and the message history. A session is
// exclusively owned by the turn currently processing it; concurrent turns
// for the same id must serialize through Lock/Unlock.
type Session struct {
	mu sync.Mutex

	ID             string
	Phase          Phase
	Step           OrderStep
	Draft          OrderDraft
	DeliveryMethod string

	AskedForDetails bool
	PurchaseIntent  bool
	OrderConfirmed  bool
	ContextCut      bool
	ResetContext    bool

	// SuggestedStorage remembers the "nearest available" storage offered on
	// the previous turn, so an affirmative answer can accept it.
	SuggestedStorage string

	History    []Message
	LastActive time.Time
}

// NewSession returns a fresh session in the initial phase.
func NewSession(id string) *Session {
	return &Session{
		ID:         id,
		Phase:      PhaseInit,
		LastActive: time.Now(),
	}
}

// Lock serializes turn processing for this session.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session to the next turn.
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch updates the idle-expiry clock.
func (s *Session) Touch() {
	s.LastActive = time.Now()
}

// Append adds one message to the history.
func (s *Session) Append(role, text string) {
	s.History = append(s.History, Message{Role: role, Text: text})
}

// LastAssistant returns the most recent assistant message, if any.
func (s *Session) LastAssistant() (Message, bool) {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == RoleAssistant {
			return s.History[i], true
		}
	}
	return Message{}, false
}

// ResetOrder returns the session to the initial phase with an empty draft.
func (s *Session) ResetOrder() {
	s.Phase = PhaseInit
	s.Step = StepNone
	s.Draft.Reset()
	s.DeliveryMethod = ""
	s.PurchaseIntent = false
	s.OrderConfirmed = false
	s.ContextCut = false
	s.SuggestedStorage = ""
}
