package engine

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Evaluator ties a Workbook and a function Registry together and carries
// the in-flight visit set used for cycle detection. An Evaluator is not
// safe for concurrent use — spec.md's engine is single-threaded and
// synchronous by design (no background recalculation, no dependency graph).
type Evaluator struct {
	id       string
	workbook *Workbook
	registry *Registry
	visiting map[string]bool
	log      zerolog.Logger
}

// NewEvaluator builds an Evaluator over wb, with the built-in function set
// registered by default. Each instance gets its own correlation ID so a
// host running many engine instances (one per open document) can tell
// their log lines apart.
func NewEvaluator(wb *Workbook) *Evaluator {
	ev := &Evaluator{
		id:       uuid.NewString(),
		workbook: wb,
		registry: NewRegistry(),
		visiting: make(map[string]bool),
		log:      zerolog.Nop(),
	}
	RegisterBuiltins(ev.registry)
	return ev
}

// ID returns this evaluator's correlation ID.
func (ev *Evaluator) ID() string {
	return ev.id
}

// SetLogger installs a logger used for diagnostic events (parse failures,
// cycle detections). The zero value logs nothing.
func (ev *Evaluator) SetLogger(l zerolog.Logger) {
	ev.log = l
}

// Registry exposes the function registry so callers can register
// additional or replacement functions before evaluating.
func (ev *Evaluator) Registry() *Registry {
	return ev.registry
}

// Workbook exposes the underlying workbook.
func (ev *Evaluator) Workbook() *Workbook {
	return ev.workbook
}

// funcContext builds the second argument passed to every registered
// function call evaluated against the given default sheet.
func (ev *Evaluator) funcContext(sheet string) FuncContext {
	return FuncContext{Sheet: sheet, Eval: ev}
}

// EvaluateCell is the public entry point: it evaluates the cell at address
// on sheet, starting a fresh visit set for this call (any cycle the
// evaluation discovers is local to this call, not remembered across
// calls — per spec.md §4.5 there is no persistent dependency graph).
func (ev *Evaluator) EvaluateCell(sheet, address string) Value {
	ev.visiting = make(map[string]bool)
	return ev.evaluateEntry(sheet, address)
}

// evaluateEntry is the recursive evaluation step every cell reference and
// range member goes through. It normalizes the address, guards against
// cycles via the visit set, reads the raw cell content, and — for formula
// cells — parses (on demand, never cached) and evaluates the AST.
func (ev *Evaluator) evaluateEntry(sheet, address string) Value {
	normSheet, canonical, err := NormalizeAddress(address, sheet)
	if err != nil {
		return NewError(ErrRef, "invalid cell reference: "+address)
	}

	key := normSheet + "!" + canonical
	if ev.visiting[key] {
		ev.log.Debug().Str("evaluator", ev.id).Str("cell", key).Msg("circular reference detected")
		return NewError(ErrCycle, "circular reference detected at "+key)
	}
	ev.visiting[key] = true
	defer delete(ev.visiting, key)

	content, ok := ev.workbook.rawCell(normSheet, canonical)
	if !ok {
		return nil
	}

	if !content.IsFormula() {
		return content.Raw
	}

	ast, perr := ParseFormula(content.FormulaText())
	if perr != nil {
		ev.log.Debug().Str("evaluator", ev.id).Str("cell", key).Err(perr).Msg("formula parse failed")
		return NewError(ErrValue, perr.Error())
	}

	return ast.Eval(&evalContext{ev: ev, sheet: normSheet})
}

// EvaluateAST evaluates a previously parsed ASTNode against sheet on ev,
// starting a fresh visit set exactly as EvaluateCell does. This is the
// other half of spec.md §5's allowed "parse once, evaluate repeatedly"
// optimization: ParseFormula produces the tree, EvaluateAST runs it,
// without the engine imposing its own parse cache — a caller that wants
// one (a script editor re-running the same formula against different
// inputs, say) builds it out of these two calls.
func (ev *Evaluator) EvaluateAST(ast ASTNode, sheet string) Value {
	ev.visiting = make(map[string]bool)
	return ast.Eval(&evalContext{ev: ev, sheet: sheet})
}
