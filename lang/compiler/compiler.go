// Package compiler takes a parsed AST and compiles it to the flat
// instruction lists the signature checker interprets. It has only one
// consumer, package checker, and checker never branches or loops: every
// modifier's control effect (switch, repeat, if) is expressed as a single
// opaque instruction carrying its operand functions, not as a jump target.
// So there is no block linearization, no stack-depth bookkeeping, and no
// bytecode encoding; CompileFiles walks the AST once and emits a
// []checker.Instruction per binding directly.
package compiler

import (
	"context"
	"fmt"
	"strings"

	"koru/lang/ast"
	"koru/lang/checker"
	"koru/lang/primitive"
	"koru/lang/token"
)

// Program is everything compiled from one source chunk.
type Program struct {
	Name string

	// Bindings holds every top-level binding, keyed by name, compiled and
	// signature-checked. Forward references and direct recursion within the
	// same chunk resolve correctly: every name is registered with its
	// *checker.UserFunction before any binding's body is compiled, so a
	// self- or mutually-recursive Ident resolves to the same pointer whose
	// Sig field is only filled in once its own body has been checked.
	Bindings map[string]*checker.UserFunction

	// TopLevel holds each bare (unbound) words expression found at the top
	// of the chunk, in source order, already signature-checked.
	TopLevel []TopLevelWords

	// Tests holds each `---`-delimited test scope, compiled the same way as
	// a nested chunk, with access to the enclosing Bindings.
	Tests []*Program
}

// TopLevelWords is one bare words expression's compiled form.
type TopLevelWords struct {
	Instrs []checker.Instruction
	Sig    checker.Signature
}

// CompileFiles compiles every chunk independently, given the file set for
// error positions. Compilation fails on a reference to an undefined
// binding or modifier, a modifier missing operands, a signature mismatch or
// any other checker error, or cancellation of ctx; no IO or execution
// happens here.
func CompileFiles(ctx context.Context, fset *token.FileSet, chunks []*ast.Chunk) ([]*Program, error) {
	progs := make([]*Program, 0, len(chunks))
	for _, ch := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := compileChunk(ch)
		if err != nil {
			name := ch.Name
			if start, _ := ch.Span(); fset != nil {
				if f := fset.File(start); f != nil {
					name = f.Name()
				}
			}
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		progs = append(progs, p)
	}
	return progs, nil
}

// compiler holds the state shared across every binding compiled from one
// chunk: the name→function table that makes forward and recursive
// references resolve.
type compiler struct {
	bindings map[string]*checker.UserFunction
}

func compileChunk(ch *ast.Chunk) (*Program, error) {
	c := &compiler{bindings: make(map[string]*checker.UserFunction)}
	return c.compileItems(ch.Name, ch.Items)
}

func (c *compiler) compileItems(name string, items []ast.Item) (*Program, error) {
	prog := &Program{Name: name, Bindings: c.bindings}

	// Pass 1: seed every binding name so recursive references resolve.
	for _, it := range items {
		if b, ok := it.(*ast.Binding); ok {
			if _, exists := c.bindings[b.Name]; !exists {
				c.bindings[b.Name] = &checker.UserFunction{Name: b.Name}
			}
		}
	}

	// Pass 2: compile bodies.
	for _, it := range items {
		switch n := it.(type) {
		case *ast.Binding:
			if err := c.compileBinding(n); err != nil {
				return nil, fmt.Errorf("binding %s: %w", n.Name, err)
			}
		case *ast.WordsItem:
			instrs, err := c.compileWords(n.Words)
			if err != nil {
				return nil, err
			}
			sig, err := checker.Check(instrs)
			if err != nil {
				return nil, err
			}
			prog.TopLevel = append(prog.TopLevel, TopLevelWords{Instrs: instrs, Sig: sig})
		case *ast.TestScope:
			sub, err := c.compileItems(name+" (test)", n.Items)
			if err != nil {
				return nil, err
			}
			prog.Tests = append(prog.Tests, sub)
		case *ast.BlankLines:
			// no code
		default:
			return nil, fmt.Errorf("unhandled item %T", it)
		}
	}
	return prog, nil
}

func (c *compiler) compileBinding(b *ast.Binding) error {
	uf := c.bindings[b.Name]
	instrs, err := c.compileWords(b.Words)
	if err != nil {
		return err
	}
	sig, err := checker.Check(instrs)
	if err != nil {
		return err
	}
	if b.Signature != nil {
		declared := astSignature(b.Signature)
		if declared != sig {
			return fmt.Errorf("declared signature %v does not match inferred %v", declared, sig)
		}
	}
	uf.Sig = sig
	uf.Body = instrs
	return nil
}

func astSignature(s *ast.Signature) checker.Signature {
	outputs := 1
	if s.HasOutputs {
		outputs = s.Outputs
	}
	return checker.Signature{Args: s.Args, Outputs: outputs}
}

// compileWords flattens a word sequence into the instruction list the
// checker consumes.
func (c *compiler) compileWords(words []ast.Word) ([]checker.Instruction, error) {
	var instrs []checker.Instruction
	for _, w := range words {
		out, err := c.compileWord(w)
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, out...)
	}
	return instrs, nil
}

func (c *compiler) compileWord(w ast.Word) ([]checker.Instruction, error) {
	switch n := w.(type) {
	case *ast.Comment, *ast.Spaces:
		return nil, nil

	case *ast.Primitive:
		if p, ok := primitive.ByName(n.Name); ok && p.IsModifier {
			return nil, fmt.Errorf("%s: modifier used without operands", n.Name)
		}
		return []checker.Instruction{{Op: checker.Prim, Name: n.Name}}, nil

	case *ast.Ident:
		fn, ok := c.bindings[n.Name]
		if !ok {
			return nil, fmt.Errorf("undefined binding %q", n.Name)
		}
		return []checker.Instruction{
			{Op: checker.PushFunc, Fn: fn},
			{Op: checker.Call},
		}, nil

	case *ast.Number:
		return []checker.Instruction{{Op: checker.Push, Value: checker.Const{Rank: 0, Scalar: n.Value}}}, nil

	case *ast.Char:
		return []checker.Instruction{{Op: checker.Push, Value: checker.Const{Rank: 0, Scalar: float64(n.Value)}}}, nil

	case *ast.String, *ast.FormatString, *ast.MultilineString:
		// Content doesn't affect arity; collapse to Other (rank ≥ 2 sentinel).
		return []checker.Instruction{{Op: checker.Push, Value: checker.Const{Rank: 2}}}, nil

	case *ast.Strand:
		return c.compileBuilder(func() ([]checker.Instruction, error) {
			var instrs []checker.Instruction
			for _, item := range n.Items {
				out, err := c.compileWord(item)
				if err != nil {
					return nil, err
				}
				instrs = append(instrs, out...)
			}
			return instrs, nil
		})

	case *ast.Array:
		return c.compileBuilder(func() ([]checker.Instruction, error) {
			var instrs []checker.Instruction
			for _, row := range n.Rows {
				for _, w := range row {
					out, err := c.compileWord(w)
					if err != nil {
						return nil, err
					}
					instrs = append(instrs, out...)
				}
			}
			return instrs, nil
		})

	case *ast.Func:
		fn, err := c.compileFuncLiteral(n.Body)
		if err != nil {
			return nil, err
		}
		return []checker.Instruction{{Op: checker.PushFunc, Fn: fn}}, nil

	case *ast.Switch:
		fn, err := c.compileSwitchLiteral(n.Branches)
		if err != nil {
			return nil, err
		}
		// A bare switch word (not a modifier operand) dispatches immediately:
		// pop the index already on the stack and apply the chosen branch.
		return []checker.Instruction{{Op: checker.Switch, N: len(fn.branches), Branches: fn.branches}}, nil

	case *ast.Modifier:
		return c.compileModifier(n)

	case *ast.Ocean:
		head, err := c.compileWord(n.Head)
		if err != nil {
			return nil, err
		}
		instrs := head
		for _, t := range n.Tail {
			out, err := c.compileWord(t)
			if err != nil {
				return nil, err
			}
			instrs = append(instrs, out...)
			instrs = append(instrs, checker.Instruction{Op: checker.Prim, Name: "ocean"})
		}
		return instrs, nil

	case *ast.Placeholder:
		sig := checker.Signature{Args: 0, Outputs: 1}
		if n.Signature != nil {
			sig = astSignature(n.Signature)
		}
		return []checker.Instruction{{Op: checker.Dynamic, Fn: checker.Declared{Sig: sig}}}, nil

	default:
		return nil, fmt.Errorf("unhandled word %T", w)
	}
}

// compileBuilder wraps body's instructions (which push the array's
// elements in source order) in BeginArray/EndArray markers.
func (c *compiler) compileBuilder(body func() ([]checker.Instruction, error)) ([]checker.Instruction, error) {
	inner, err := body()
	if err != nil {
		return nil, err
	}
	instrs := make([]checker.Instruction, 0, len(inner)+2)
	instrs = append(instrs, checker.Instruction{Op: checker.BeginArray})
	instrs = append(instrs, inner...)
	instrs = append(instrs, checker.Instruction{Op: checker.EndArray})
	return instrs, nil
}

// compileFuncLiteral compiles an unchecked function body into a
// UserFunction with its own signature and, for a single invertible
// primitive, an inverse (see attachInverse). No under-form is attached.
func (c *compiler) compileFuncLiteral(body []ast.Word) (*checker.UserFunction, error) {
	instrs, err := c.compileWords(body)
	if err != nil {
		return nil, err
	}
	sig, err := checker.Check(instrs)
	if err != nil {
		return nil, err
	}
	uf := &checker.UserFunction{Body: instrs, Sig: sig}
	attachInverse(uf, instrs)
	return uf, nil
}

// attachInverse recognizes the single-primitive-body case and wires up the
// small invertible-primitive registry; anything else is left without an
// inverse/under-form, which the checker treats as a silent no-op.
func attachInverse(uf *checker.UserFunction, instrs []checker.Instruction) {
	if len(instrs) != 1 || instrs[0].Op != checker.Prim {
		return
	}
	name := instrs[0].Name
	if invName, sig, ok := checker.PrimitiveInverse(name); ok {
		uf.Inv = &checker.UserFunction{
			Name: invName,
			Sig:  sig,
			Body: []checker.Instruction{{Op: checker.Prim, Name: invName}},
		}
	}
}

// switchLiteral is the Function wrapper for a bracketed switch used as a
// modifier operand, where the checker needs a single Signature() rather
// than the eager dispatch a bare switch word performs.
type switchLiteral struct {
	sig      checker.Signature
	branches []checker.Function
}

func (s *switchLiteral) Signature() checker.Signature                 { return s.sig }
func (s *switchLiteral) Instrs() []checker.Instruction                { return []checker.Instruction{{Op: checker.Switch, N: len(s.branches), Branches: s.branches}} }
func (s *switchLiteral) Inverse() (checker.Function, bool)            { return nil, false }
func (s *switchLiteral) Under(checker.Signature) (checker.Function, checker.Function, bool) {
	return nil, nil, false
}

func (c *compiler) compileSwitchLiteral(branches [][]ast.Word) (*switchLiteral, error) {
	fns := make([]checker.Function, len(branches))
	for i, b := range branches {
		fn, err := c.compileFuncLiteral(b)
		if err != nil {
			return nil, err
		}
		fns[i] = fn
	}
	sig, err := combineSignatures(fns)
	if err != nil {
		return nil, err
	}
	return &switchLiteral{sig: sig, branches: fns}, nil
}

// combineSignatures merges N branch signatures the way checker.doSwitch
// does for an unknown index: all branches must be pairwise compatible,
// combined via the element-wise max.
func combineSignatures(fns []checker.Function) (checker.Signature, error) {
	if len(fns) == 0 {
		return checker.Signature{}, fmt.Errorf("switch: no branches")
	}
	sig := fns[0].Signature()
	for _, f := range fns[1:] {
		fs := f.Signature()
		if !sig.CompatibleWith(fs) {
			return checker.Signature{}, fmt.Errorf("switch: branch signatures incompatible")
		}
		sig = sig.MaxWith(fs)
	}
	return sig, nil
}

// operandFunction turns a single modifier operand word into a Function: a
// Func or Switch literal is compiled as such, and any other word (a bare
// primitive, ident, or placeholder) is wrapped around its compiled
// instructions, so every modifier operand — whatever surface form it took —
// is pushed to the function stack uniformly.
func (c *compiler) operandFunction(w ast.Word) (checker.Function, error) {
	switch n := w.(type) {
	case *ast.Func:
		return c.compileFuncLiteral(n.Body)
	case *ast.Switch:
		return c.compileSwitchLiteral(n.Branches)
	default:
		instrs, err := c.compileWord(w)
		if err != nil {
			return nil, err
		}
		sig, err := checker.Check(instrs)
		if err != nil {
			return nil, err
		}
		uf := &checker.UserFunction{Body: instrs, Sig: sig}
		attachInverse(uf, instrs)
		return uf, nil
	}
}

// compileModifier emits, in order, a PushFunc for each operand (reversed
// so the checker's popFn() sequence yields them in the operand's written
// order — see checker.go's doBind/doForkBracket/etc., which all pop in
// that order) followed by the modifier's own Prim instruction, or — for a
// user-defined `name!` modifier — a PushFunc for the named binding and a
// Call, so the binding's own checked signature governs the combined
// effect.
func (c *compiler) compileModifier(n *ast.Modifier) ([]checker.Instruction, error) {
	var instrs []checker.Instruction
	operandFns := make([]checker.Function, len(n.Operands))
	for i, o := range n.Operands {
		fn, err := c.operandFunction(o)
		if err != nil {
			return nil, err
		}
		operandFns[i] = fn
	}
	for i := len(operandFns) - 1; i >= 0; i-- {
		instrs = append(instrs, checker.Instruction{Op: checker.PushFunc, Fn: operandFns[i]})
	}

	if _, ok := primitive.ByName(n.Name); ok {
		instrs = append(instrs, checker.Instruction{Op: checker.Prim, Name: n.Name})
		return instrs, nil
	}

	base := strings.TrimRight(n.Name, "!")
	fn, ok := c.bindings[base]
	if !ok {
		return nil, fmt.Errorf("undefined modifier %q", n.Name)
	}
	instrs = append(instrs, checker.Instruction{Op: checker.PushFunc, Fn: fn}, checker.Instruction{Op: checker.Call})
	return instrs, nil
}
