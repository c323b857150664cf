// Package template parses and renders anek command templates.
//
// Grammar:
//
//	{name}            substitute variable name, error when undefined
//	{a?b?c}           first alternative defined wins
//	{a?"literal"}     quoted alternative is a literal fallback
//	{a?}              trailing empty alternative: render "" when nothing resolves
//	$(cmd {x})        run cmd (itself a template) and substitute its output
//	\{ \} \$          literal braces and dollar
//
// Variable names use letters, digits, underscore and hyphen.
package template
