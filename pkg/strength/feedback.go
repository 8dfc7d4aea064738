package strength

import "fmt"

// FeedbackKind classifies a feedback message.
type FeedbackKind string

const (
	KindSuccess FeedbackKind = "success"
	KindWarning FeedbackKind = "warning"
	KindError   FeedbackKind = "error"
)

// FeedbackItem is one message of an analysis.
type FeedbackItem struct {
	Kind    FeedbackKind `json:"type"`
	Message string       `json:"message"`
}

// evaluation carries every signal the feedback rules read. It is built once
// per analysis and never modified by the rules.
type evaluation struct {
	password     string
	length       int
	policy       Policy
	classes      charClasses
	breached     bool
	personal     bool
	multilingual bool
	passphrase   bool
	estimate     Estimate
	score        int
}

// A feedbackRule inspects an evaluation and returns the items it contributes.
type feedbackRule func(e *evaluation) []FeedbackItem

// feedbackRules run in this order; the order is part of the output contract.
var feedbackRules = []feedbackRule{
	lengthRule,
	classRule("uppercase letters", func(p Policy) bool { return p.RequiresUppercase }, func(c charClasses) bool { return c.upper }),
	classRule("lowercase letters", func(p Policy) bool { return p.RequiresLowercase }, func(c charClasses) bool { return c.lower }),
	classRule("numbers", func(p Policy) bool { return p.RequiresNumbers }, func(c charClasses) bool { return c.digit }),
	classRule("special characters", func(p Policy) bool { return p.RequiresSymbols }, func(c charClasses) bool { return c.symbol }),
	flagRule(func(e *evaluation) bool { return e.breached }, KindError,
		"This password appears in known data breaches and should not be used"),
	flagRule(func(e *evaluation) bool { return e.personal }, KindError,
		"Password contains common personal information patterns"),
	flagRule(func(e *evaluation) bool { return e.multilingual }, KindWarning,
		"Password contains common words found in various languages"),
	flagRule(func(e *evaluation) bool { return e.passphrase }, KindSuccess,
		"Using a passphrase is a good security practice"),
	estimatorWarningRule,
	estimatorSuggestionsRule,
	flagRule(func(e *evaluation) bool { return e.score >= 70 }, KindSuccess, "Password has good strength"),
	flagRule(func(e *evaluation) bool { return e.score >= 90 }, KindSuccess, "Excellent password strength!"),
}

func buildFeedback(e *evaluation) []FeedbackItem {
	items := make([]FeedbackItem, 0, 8)
	for _, rule := range feedbackRules {
		items = append(items, rule(e)...)
	}
	return items
}

func lengthRule(e *evaluation) []FeedbackItem {
	switch {
	case e.length < e.policy.MinLength:
		return []FeedbackItem{{
			Kind: KindError,
			Message: fmt.Sprintf("Password is too short (min. %d characters required for %s accounts)",
				e.policy.MinLength, e.policy.Name),
		}}
	case e.length >= e.policy.MinLength+4:
		return []FeedbackItem{{Kind: KindSuccess, Message: "Good password length"}}
	}
	return nil
}

func classRule(what string, required func(Policy) bool, present func(charClasses) bool) feedbackRule {
	return func(e *evaluation) []FeedbackItem {
		if present(e.classes) {
			return nil
		}
		if required(e.policy) {
			return []FeedbackItem{{
				Kind:    KindError,
				Message: fmt.Sprintf("Add %s (required for %s accounts)", what, e.policy.Name),
			}}
		}
		return []FeedbackItem{{Kind: KindWarning, Message: fmt.Sprintf("Add %s for stronger password", what)}}
	}
}

func flagRule(cond func(e *evaluation) bool, kind FeedbackKind, message string) feedbackRule {
	return func(e *evaluation) []FeedbackItem {
		if !cond(e) {
			return nil
		}
		return []FeedbackItem{{Kind: kind, Message: message}}
	}
}

func estimatorWarningRule(e *evaluation) []FeedbackItem {
	if e.estimate.Warning == "" {
		return nil
	}
	return []FeedbackItem{{Kind: KindError, Message: e.estimate.Warning}}
}

func estimatorSuggestionsRule(e *evaluation) []FeedbackItem {
	items := make([]FeedbackItem, 0, len(e.estimate.Suggestions))
	for _, s := range e.estimate.Suggestions {
		items = append(items, FeedbackItem{Kind: KindWarning, Message: s})
	}
	return items
}

// meetsRequirements reports whether every policy clause holds and the
// password is not breached.
func meetsRequirements(e *evaluation) bool {
	p := e.policy
	return e.length >= p.MinLength &&
		(!p.RequiresUppercase || e.classes.upper) &&
		(!p.RequiresLowercase || e.classes.lower) &&
		(!p.RequiresNumbers || e.classes.digit) &&
		(!p.RequiresSymbols || e.classes.symbol) &&
		e.score >= p.MinScore &&
		!e.breached
}

// Advice strings, one per branch.
const (
	AdviceEmpty      = "Start typing to get password feedback"
	AdviceLonger     = "Make your password longer for better security"
	AdviceUpperDigit = "Try adding uppercase letters and numbers"
	AdviceSymbol     = "Consider adding a special character like ! or @ for extra security"
	AdviceStrengthen = "Your password could be stronger. Try making it longer or more complex"
	AdvicePassphrase = "Good password! For even better security, consider a longer passphrase"
	AdviceExcellent  = "Excellent password! It would be very difficult to crack"
)

func advice(e *evaluation) string {
	switch {
	case e.length < 8:
		return AdviceLonger
	case !e.classes.upper && !e.classes.digit:
		return AdviceUpperDigit
	case !e.classes.symbol:
		return AdviceSymbol
	case e.score < 60:
		return AdviceStrengthen
	case e.score < 80:
		return AdvicePassphrase
	default:
		return AdviceExcellent
	}
}
