package types

import "strings"

// Intent is the coarse category assigned to a user question before deciding
// whether to invoke full generation.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentGreeting
	IntentGoodbye
	IntentThanks
	IntentCasual
	IntentTopic
)

func (i Intent) String() string {
	switch i {
	case IntentGreeting:
		return "greeting"
	case IntentGoodbye:
		return "goodbye"
	case IntentThanks:
		return "thanks"
	case IntentCasual:
		return "casual"
	case IntentTopic:
		return "topic"
	default:
		return "unknown"
	}
}

// ParseIntent maps a classifier label to an Intent. The label is untrusted
// free text; anything outside the five known labels becomes IntentUnknown.
func ParseIntent(label string) Intent {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "greeting":
		return IntentGreeting
	case "goodbye":
		return IntentGoodbye
	case "thanks":
		return IntentThanks
	case "casual":
		return IntentCasual
	case "topic":
		return IntentTopic
	default:
		return IntentUnknown
	}
}
