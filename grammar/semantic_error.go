package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	SemErrDuplicateToken        = newSemanticError("duplicate token")
	SemErrUndeclaredToken       = newSemanticError("undeclared token")
	SemErrNoStartRule           = newSemanticError("a grammar needs at least one production for the start rule")
	SemErrMisplacedEpsilon      = newSemanticError("an epsilon must be the only token of an alternative")
	SemErrAmbiguousGrammar      = newSemanticError("the grammar is ambiguous even after transformation")
	SemErrIndirectLeftRecursion = newSemanticError("indirect left recursion is not supported")
)
