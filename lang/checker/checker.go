package checker

import (
	"fmt"

	"koru/lang/primitive"
)

// DefaultStartHeight is the symbolic stack's initial size, large enough
// that realistic functions never need to address below it. A hosting
// program can override it via config.Config.StartHeight and CheckStart.
const DefaultStartHeight = 16

// Check computes the signature of instrs using DefaultStartHeight.
func Check(instrs []Instruction) (Signature, error) {
	return CheckStart(instrs, DefaultStartHeight)
}

// CheckStart is Check with an explicit START_HEIGHT, the hook
// config.Config.StartHeight is wired into.
func CheckStart(instrs []Instruction, startHeight int) (Signature, error) {
	c := &checker{startHeight: startHeight, height: startHeight, min: startHeight}
	if err := c.run(instrs); err != nil {
		return Signature{}, err
	}
	return Signature{
		Args:    max(0, c.startHeight-c.min),
		Outputs: c.height - c.min,
	}, nil
}

// checker holds one run's mutable abstract-interpretation state.
type checker struct {
	startHeight int
	height      int
	min         int
	vals        []sym // tracked values above the initial START_HEIGHT window
	fns         []Function
	arrayStack  []int // heights recorded by BeginArray
}

func (c *checker) push(s sym) {
	c.vals = append(c.vals, s)
	c.height++
}

func (c *checker) pop() sym {
	var s sym
	if n := len(c.vals); n > 0 {
		s = c.vals[n-1]
		c.vals = c.vals[:n-1]
	} else {
		s = unknown()
	}
	c.height--
	if c.height < c.min {
		c.min = c.height
	}
	return s
}

func (c *checker) pushFn(f Function) { c.fns = append(c.fns, f) }

func (c *checker) popFn() (Function, error) {
	n := len(c.fns)
	if n == 0 {
		return nil, errUnderflow()
	}
	f := c.fns[n-1]
	c.fns = c.fns[:n-1]
	return f, nil
}

func errUnderflow() error { return fmt.Errorf("function is too complex") }

// apply pops sig.Args generic values and pushes sig.Outputs generic
// values, the effect every bare Signature has on the symbolic stack once
// its internal structure (if any) no longer matters.
func (c *checker) apply(sig Signature) {
	for i := 0; i < sig.Args; i++ {
		c.pop()
	}
	for i := 0; i < sig.Outputs; i++ {
		c.push(other())
	}
}

func (c *checker) run(instrs []Instruction) error {
	for _, in := range instrs {
		if err := c.step(in); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) step(in Instruction) error {
	switch in.Op {
	case Push:
		c.push(fromConst(in.Value))
	case BeginArray:
		c.arrayStack = append(c.arrayStack, c.height)
	case EndArray:
		if len(c.arrayStack) == 0 {
			return fmt.Errorf("EndArray without BeginArray")
		}
		begin := c.arrayStack[len(c.arrayStack)-1]
		c.arrayStack = c.arrayStack[:len(c.arrayStack)-1]
		var collected []sym
		for c.height > begin {
			collected = append(collected, c.pop())
		}
		for i, j := 0, len(collected)-1; i < j; i, j = i+1, j-1 {
			collected[i], collected[j] = collected[j], collected[i]
		}
		c.push(arr(collected))
	case Call:
		f, err := c.popFn()
		if err != nil {
			return err
		}
		c.apply(f.Signature())
	case PushFunc:
		c.pushFn(in.Fn)
	case PushTemp:
		c.apply(Signature{Args: in.N, Outputs: 0})
	case PopTemp:
		c.apply(Signature{Args: 0, Outputs: in.N})
	case CopyTemp:
		c.apply(Signature{Args: 0, Outputs: in.N})
	case DropTemp:
		// (0, 0): no effect.
	case Switch:
		if len(in.Branches) != in.N {
			return fmt.Errorf("switch: expected %d branches, got %d", in.N, len(in.Branches))
		}
		return c.doSwitch(in.Branches)
	case Dynamic:
		c.apply(in.Fn.Signature())
	case Prim, ImplPrim:
		return c.doPrim(in.Name)
	default:
		return fmt.Errorf("unknown opcode %v", in.Op)
	}
	return nil
}

func (c *checker) doSwitch(branches []Function) error {
	idx := c.pop()
	if n, ok := idx.asNatural(); ok && n < len(branches) {
		c.apply(branches[n].Signature())
		return nil
	}
	if len(branches) == 0 {
		return fmt.Errorf("switch: no branches")
	}
	sig := branches[0].Signature()
	for _, b := range branches[1:] {
		bs := b.Signature()
		if !sig.CompatibleWith(bs) {
			return fmt.Errorf("switch: branch signatures incompatible")
		}
		sig = sig.MaxWith(bs)
	}
	c.apply(sig)
	return nil
}

// compose composes the stack effect of a, applied first, then b: net
// composed signature is (a1+max(0,a2-o1), o2+max(0,o1-a2)).
func compose(a, b Signature) Signature {
	return Signature{
		Args:    a.Args + max(0, b.Args-a.Outputs),
		Outputs: b.Outputs + max(0, a.Outputs-b.Args),
	}
}

func (c *checker) doPrim(name string) error {
	switch name {
	case "dup":
		s := c.pop()
		c.push(s)
		c.push(s)
		return nil
	case "flip":
		a := c.pop()
		b := c.pop()
		c.push(a)
		c.push(b)
		return nil
	case "over":
		a := c.pop()
		b := c.pop()
		c.push(b)
		c.push(a)
		c.push(b)
		return nil
	case "join":
		a := c.pop()
		b := c.pop()
		c.push(joinSym(b, a))
		return nil
	case "reduce", "scan":
		return c.doReduce()
	case "each", "rows", "distribute", "tribute":
		return c.doVerbatim()
	case "table", "cross":
		return c.doFixed(Signature{Args: 2, Outputs: 1}, Signature{Args: 2, Outputs: 1})
	case "group", "partition":
		return c.doGroup()
	case "spawn":
		return c.doSpawn()
	case "repeat":
		return c.doRepeat()
	case "bind":
		return c.doBind()
	case "both":
		return c.doBoth()
	case "fork":
		return c.doForkBracket(true)
	case "bracket":
		return c.doForkBracket(false)
	case "if":
		return c.doIf()
	case "level", "fold", "combinate":
		return c.doLevel()
	case "try":
		return c.doTry()
	case "invert":
		return c.doInvert()
	case "under":
		return c.doUnder()
	case "fill":
		return c.doFill()
	case "dip":
		return c.wrapOne(1, 1)
	case "gap":
		return c.wrapOne(1, 0)
	case "oust":
		f, err := c.popFn()
		if err != nil {
			return err
		}
		top := c.pop()
		c.pop()
		c.push(top)
		c.apply(f.Signature())
		return nil
	case "dump":
		_, err := c.popFn()
		return err
	default:
		return c.doGeneric(name)
	}
}

func (c *checker) doReduce() error {
	f, err := c.popFn()
	if err != nil {
		return err
	}
	fs := f.Signature()
	switch {
	case fs.Args == 2 && fs.Outputs == 1:
		c.apply(Signature{Args: 1, Outputs: 1})
	case fs.Args == 1 && fs.Outputs == 0:
		c.apply(Signature{Args: 1, Outputs: 0})
	case fs.Args == 1:
		c.apply(Signature{Args: 1, Outputs: fs.Outputs})
	default:
		return fmt.Errorf("reduce/scan: inner must be (2,1) or (1,0), got %v", fs)
	}
	return nil
}

func (c *checker) doVerbatim() error {
	f, err := c.popFn()
	if err != nil {
		return err
	}
	fs := f.Signature()
	if fs.Outputs != 1 {
		return fmt.Errorf("each/rows/distribute/tribute: inner must have 1 output, got %v", fs)
	}
	c.apply(fs)
	return nil
}

func (c *checker) doFixed(want, outer Signature) error {
	f, err := c.popFn()
	if err != nil {
		return err
	}
	if f.Signature() != want {
		return fmt.Errorf("table/cross: inner must be %v, got %v", want, f.Signature())
	}
	c.apply(outer)
	return nil
}

func (c *checker) doGroup() error {
	f, err := c.popFn()
	if err != nil {
		return err
	}
	fs := f.Signature()
	outputs := fs.Outputs
	if fs.Args == 0 {
		outputs = 1
	}
	c.apply(Signature{Args: fs.Args + 1, Outputs: outputs})
	return nil
}

func (c *checker) doSpawn() error {
	f, err := c.popFn()
	if err != nil {
		return err
	}
	c.apply(Signature{Args: f.Signature().Args, Outputs: 1})
	return nil
}

func (c *checker) doRepeat() error {
	f, err := c.popFn()
	if err != nil {
		return err
	}
	if containsBreak(f.Instrs()) {
		return fmt.Errorf("repeat: function body contains break")
	}
	countSym := c.pop()
	fs := f.Signature()

	if n, ok := countSym.asNatural(); ok {
		if n > 0 {
			switch {
			case fs.Args == fs.Outputs:
				c.apply(fs)
			case fs.Args < fs.Outputs:
				c.apply(Signature{Args: fs.Args, Outputs: n*(fs.Outputs-fs.Args) + fs.Args})
			default:
				c.apply(Signature{Args: (n-1)*(fs.Args-fs.Outputs) + fs.Args, Outputs: fs.Outputs})
			}
		}
		return nil
	}

	if fs.CompatibleWith(Signature{Args: 1, Outputs: 1}) {
		c.apply(fs)
		return nil
	}
	if len(c.arrayStack) > 0 && fs.Args < fs.Outputs {
		c.apply(fs)
		return nil
	}
	return fmt.Errorf("repeat: count is not a known natural and function is not compatible with (1,1)")
}

func (c *checker) doBind() error {
	f, err := c.popFn()
	if err != nil {
		return err
	}
	g, err := c.popFn()
	if err != nil {
		return err
	}
	c.apply(compose(g.Signature(), f.Signature()))
	return nil
}

func (c *checker) doBoth() error {
	f, err := c.popFn()
	if err != nil {
		return err
	}
	fs := f.Signature()
	c.apply(Signature{Args: 2 * fs.Args, Outputs: 2 * fs.Outputs})
	return nil
}

func (c *checker) doForkBracket(fork bool) error {
	f, err := c.popFn()
	if err != nil {
		return err
	}
	g, err := c.popFn()
	if err != nil {
		return err
	}
	fs, gs := f.Signature(), g.Signature()
	if fork {
		c.apply(Signature{Args: max(fs.Args, gs.Args), Outputs: fs.Outputs + gs.Outputs})
	} else {
		c.apply(Signature{Args: fs.Args + gs.Args, Outputs: fs.Outputs + gs.Outputs})
	}
	return nil
}

func (c *checker) doIf() error {
	f, err := c.popFn()
	if err != nil {
		return err
	}
	g, err := c.popFn()
	if err != nil {
		return err
	}
	fs, gs := f.Signature(), g.Signature()
	var branch Signature
	if fs.Outputs == gs.Outputs {
		branch = Signature{Args: max(fs.Args, gs.Args), Outputs: fs.Outputs}
	} else {
		if !fs.CompatibleWith(gs) {
			return fmt.Errorf("if: branch signatures incompatible: %v vs %v", fs, gs)
		}
		branch = fs.MaxWith(gs)
	}
	c.apply(Signature{Args: branch.Args + 1, Outputs: branch.Outputs})
	return nil
}

func (c *checker) doLevel() error {
	f, err := c.popFn()
	if err != nil {
		return err
	}
	fs := f.Signature()
	if fs.Outputs != 1 || fs.Args > 1 {
		return fmt.Errorf("level/fold/combinate: inner must have 1 output and ≤ 1 arg, got %v", fs)
	}
	c.apply(fs)
	return nil
}

func (c *checker) doTry() error {
	f, err := c.popFn()
	if err != nil {
		return err
	}
	handler, err := c.popFn()
	if err != nil {
		return err
	}
	fs := f.Signature()
	target := Signature{Args: fs.Args + 1, Outputs: fs.Outputs}
	if !handler.Signature().IsSubsetOf(target) {
		return fmt.Errorf("try: handler signature %v is not a subset of %v", handler.Signature(), target)
	}
	c.apply(fs)
	return nil
}

func (c *checker) doInvert() error {
	f, err := c.popFn()
	if err != nil {
		return err
	}
	if inv, ok := f.Inverse(); ok {
		c.apply(inv.Signature())
	}
	// No inverse: silently leave the stack unchanged.
	return nil
}

func (c *checker) doUnder() error {
	f, err := c.popFn()
	if err != nil {
		return err
	}
	g, err := c.popFn()
	if err != nil {
		return err
	}
	before, after, ok := f.Under(g.Signature())
	if !ok {
		// : opaque to the checker, silently no-op.
		return nil
	}
	c.apply(before.Signature())
	c.apply(g.Signature())
	c.apply(after.Signature())
	return nil
}

func (c *checker) doFill() error {
	producer, err := c.popFn()
	if err != nil {
		return err
	}
	f, err := c.popFn()
	if err != nil {
		return err
	}
	c.apply(producer.Signature())
	c.pop() // the produced fill value
	c.apply(f.Signature())
	return nil
}

// wrapOne implements dip/gap: pop one function, extend its signature
// by extraArgs/extraOutputs to account for the saved/discarded top-of-
// stack item.
func (c *checker) wrapOne(extraArgs, extraOutputs int) error {
	f, err := c.popFn()
	if err != nil {
		return err
	}
	fs := f.Signature()
	c.apply(Signature{Args: fs.Args + extraArgs, Outputs: fs.Outputs + extraOutputs})
	return nil
}

func (c *checker) doGeneric(name string) error {
	p, ok := primitive.ByName(name)
	if !ok {
		return fmt.Errorf("unknown primitive %q", name)
	}
	if p.IsModifier {
		return fmt.Errorf("indeterminate primitive %q: no checker rule for this modifier", name)
	}
	for i := 0; i < p.Args; i++ {
		c.pop()
	}
	for i := 0; i < p.Outputs; i++ {
		c.push(other())
	}
	return nil
}

// containsBreak reports whether instrs, or any Switch branch reachable
// inline from it, invokes a primitive named "break" — the condition under
// which repeat's checker rule rejects the body outright. It does not
// recurse into separately pushed function bodies, since break only escapes
// its immediately enclosing loop.
func containsBreak(instrs []Instruction) bool {
	for _, in := range instrs {
		if (in.Op == Prim || in.Op == ImplPrim) && in.Name == "break" {
			return true
		}
		if in.Op == Switch {
			for _, b := range in.Branches {
				if containsBreak(b.Instrs()) {
					return true
				}
			}
		}
	}
	return false
}
