package compile

import "fmt"

// Tag identifies the kind of a Diagnostic, matching the taxonomy the module
// spec requires test suites to be able to check for by name.
type Tag string

const (
	TagStrayClose                     Tag = "stray_close"
	TagScopeNotClosed                 Tag = "scope_not_closed"
	TagIllegalInNoScope                Tag = "illegal_in_no_scope"
	TagIllegalInLprScope               Tag = "illegal_in_lpr_scope"
	TagIllegalInPprScope               Tag = "illegal_in_ppr_scope"
	TagIllegalInSingleTerminalScope     Tag = "illegal_in_single_terminal_scope"
	TagIllegalInNoAlternationScope      Tag = "illegal_in_no_alternation_scope"
	TagIllegalInSingleSubexprScope      Tag = "illegal_in_single_subexpr_scope"
	TagIllegalInNoEndSubexprScope       Tag = "illegal_in_no_end_subexpr_scope"
	TagRuleNameConflict                Tag = "rule_name_conflict"
	TagRuleNeverDeclared               Tag = "rule_never_declared"
	TagRuleNeverDefined                Tag = "rule_never_defined"
	TagRuleAlreadyDefined              Tag = "rule_already_defined"
	TagRuleNotFound                    Tag = "rule_not_found"
	TagRuleMayNotBePpr                 Tag = "rule_may_not_be_ppr"
	TagIllegalRuleDeclare              Tag = "illegal_rule_declare"
	TagIllegalQualifier                Tag = "illegal_qualifier"
	TagIllegalRightAssoc               Tag = "illegal_right_assoc"
	TagIllegalStringLiteral            Tag = "illegal_string_literal"
	TagIllegalCharsetLiteral           Tag = "illegal_charset_literal"
	TagIllegalAmbiguity                Tag = "illegal_ambiguity"
	TagInternalError                   Tag = "internal_error"
)

// Diagnostic is one compile-time error, tagged and positioned so tests can
// assert on exactly what went wrong and where.
type Diagnostic struct {
	Tag     Tag
	Pos     int
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s at %d: %s", d.Tag, d.Pos, d.Message)
}

// Diagnostics accumulates Diagnostic values during a compile call. A
// non-empty Diagnostics means Compile returns no grammar object.
type Diagnostics []Diagnostic

func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return "no diagnostics"
	}
	s := fmt.Sprintf("%d diagnostic(s):", len(ds))
	for _, d := range ds {
		s += "\n  " + d.Error()
	}
	return s
}

// HasErrors reports whether any diagnostics were raised.
func (ds Diagnostics) HasErrors() bool { return len(ds) > 0 }

// Has reports whether any diagnostic carries the given tag.
func (ds Diagnostics) Has(tag Tag) bool {
	for _, d := range ds {
		if d.Tag == tag {
			return true
		}
	}
	return false
}

type diagSink struct {
	diags Diagnostics
}

func (s *diagSink) raise(tag Tag, pos int, format string, args ...any) {
	s.diags = append(s.diags, Diagnostic{Tag: tag, Pos: pos, Message: fmt.Sprintf(format, args...)})
}
