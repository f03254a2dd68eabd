package workspace

// DeletePrompt is the question asked before a candidate is removed.
const DeletePrompt = "Are you sure you want to remove this candidate?"

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(message string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(message string) bool {
	return f(message)
}

// Confirmed answers yes to every question. Used when confirmation was
// collected out of band (a --yes flag or ?confirm=true).
var Confirmed Confirmer = ConfirmFunc(func(string) bool { return true })

// Declined answers no to every question.
var Declined Confirmer = ConfirmFunc(func(string) bool { return false })
