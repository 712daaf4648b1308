// Package primitive is the shared registry of koru's built-in words: plain
// primitives (fixed stack signature) and modifiers (consume one or more
// function operands). The scanner uses it to classify identifiers and
// symbols as PRIMITIVE tokens, the parser uses it to know how many operand
// terms a modifier consumes, and the checker uses it as the source of
// truth for a primitive's default signature under the generic-primitive
// fallback rule.
package primitive

// Primitive describes one built-in word of the language.
type Primitive struct {
	Name string
	// Symbol is the single-rune ASCII spelling of the primitive, or 0 if it
	// has none (e.g. the array-algorithm primitives are multi-letter only).
	Symbol rune
	// IsModifier reports whether this primitive consumes function operands
	// rather than data.
	IsModifier bool
	// ModifierArgs is the number of function operands a modifier consumes.
	// Meaningless when IsModifier is false.
	ModifierArgs int
	// Args and Outputs are the fixed data signature of a non-modifier
	// primitive. Meaningless when IsModifier is true.
	Args, Outputs int
}

// table is the full registry, indexed by name.
var table = map[string]Primitive{
	// arithmetic / comparison, fixed (2,1) or (1,1) signatures
	"add":      {Name: "add", Symbol: '+', Args: 2, Outputs: 1},
	"sub":      {Name: "sub", Symbol: '-', Args: 2, Outputs: 1},
	"mul":      {Name: "mul", Symbol: '*', Args: 2, Outputs: 1},
	"div":      {Name: "div", Symbol: '/', Args: 2, Outputs: 1},
	"pow":      {Name: "pow", Args: 2, Outputs: 1},
	"identity": {Name: "identity", Args: 1, Outputs: 1},
	"not":      {Name: "not", Args: 1, Outputs: 1},
	"neg":      {Name: "neg", Args: 1, Outputs: 1},
	"eq":       {Name: "eq", Args: 2, Outputs: 1},
	"ne":       {Name: "ne", Args: 2, Outputs: 1},
	"lt":       {Name: "lt", Args: 2, Outputs: 1},
	"le":       {Name: "le", Args: 2, Outputs: 1},
	"gt":       {Name: "gt", Args: 2, Outputs: 1},
	"ge":       {Name: "ge", Args: 2, Outputs: 1},

	// array algorithms, all (1,1) except ocean (2,1)
	"deshape":       {Name: "deshape", Args: 1, Outputs: 1},
	"range":         {Name: "range", Args: 1, Outputs: 1},
	"first":         {Name: "first", Args: 1, Outputs: 1},
	"last":          {Name: "last", Args: 1, Outputs: 1},
	"reverse":       {Name: "reverse", Args: 1, Outputs: 1},
	"transpose":     {Name: "transpose", Args: 1, Outputs: 1},
	"invtranspose":  {Name: "invtranspose", Args: 1, Outputs: 1},
	"rise":          {Name: "rise", Args: 1, Outputs: 1},
	"fall":          {Name: "fall", Args: 1, Outputs: 1},
	"classify":      {Name: "classify", Args: 1, Outputs: 1},
	"deduplicate":   {Name: "deduplicate", Args: 1, Outputs: 1},
	"bits":          {Name: "bits", Args: 1, Outputs: 1},
	"inversebits":   {Name: "inversebits", Args: 1, Outputs: 1},
	"where":         {Name: "where", Args: 1, Outputs: 1},
	"firstwhere":    {Name: "firstwhere", Args: 1, Outputs: 1},
	"inversewhere":  {Name: "inversewhere", Args: 1, Outputs: 1},
	"utf8":          {Name: "utf8", Args: 1, Outputs: 1},
	"invutf8":       {Name: "invutf8", Args: 1, Outputs: 1},
	"ocean":         {Name: "ocean", Args: 2, Outputs: 1},
	"firstminindex": {Name: "firstminindex", Args: 1, Outputs: 1},
	"firstmaxindex": {Name: "firstmaxindex", Args: 1, Outputs: 1},
	"lastminindex":  {Name: "lastminindex", Args: 1, Outputs: 1},
	"lastmaxindex":  {Name: "lastmaxindex", Args: 1, Outputs: 1},

	// modifiers (modifier zoo)
	"reduce":      {Name: "reduce", IsModifier: true, ModifierArgs: 1},
	"scan":        {Name: "scan", IsModifier: true, ModifierArgs: 1},
	"each":        {Name: "each", IsModifier: true, ModifierArgs: 1},
	"rows":        {Name: "rows", IsModifier: true, ModifierArgs: 1},
	"distribute":  {Name: "distribute", IsModifier: true, ModifierArgs: 1},
	"tribute":     {Name: "tribute", IsModifier: true, ModifierArgs: 1},
	"table":       {Name: "table", IsModifier: true, ModifierArgs: 1},
	"cross":       {Name: "cross", IsModifier: true, ModifierArgs: 1},
	"group":       {Name: "group", IsModifier: true, ModifierArgs: 1},
	"partition":   {Name: "partition", IsModifier: true, ModifierArgs: 1},
	"spawn":       {Name: "spawn", IsModifier: true, ModifierArgs: 1},
	"repeat":      {Name: "repeat", IsModifier: true, ModifierArgs: 1},
	"bind":        {Name: "bind", IsModifier: true, ModifierArgs: 2},
	"both":        {Name: "both", IsModifier: true, ModifierArgs: 1},
	"fork":        {Name: "fork", IsModifier: true, ModifierArgs: 2},
	"bracket":     {Name: "bracket", IsModifier: true, ModifierArgs: 2},
	"if":          {Name: "if", IsModifier: true, ModifierArgs: 2},
	"level":       {Name: "level", IsModifier: true, ModifierArgs: 1},
	"fold":        {Name: "fold", IsModifier: true, ModifierArgs: 1},
	"combinate":   {Name: "combinate", IsModifier: true, ModifierArgs: 1},
	"try":         {Name: "try", IsModifier: true, ModifierArgs: 2},
	"invert":      {Name: "invert", IsModifier: true, ModifierArgs: 1},
	"under":       {Name: "under", IsModifier: true, ModifierArgs: 2},
	"fill":        {Name: "fill", IsModifier: true, ModifierArgs: 2},
	"dip":         {Name: "dip", IsModifier: true, ModifierArgs: 1},
	"gap":         {Name: "gap", IsModifier: true, ModifierArgs: 1},
	"oust":        {Name: "oust", IsModifier: true, ModifierArgs: 1},
	"dump":        {Name: "dump", IsModifier: true, ModifierArgs: 1},

	// plain stack shufflers, not modifiers
	"dup":  {Name: "dup", Args: 1, Outputs: 2},
	"flip": {Name: "flip", Args: 2, Outputs: 2},
	"pop":  {Name: "pop", Args: 1, Outputs: 0},
	"over": {Name: "over", Args: 2, Outputs: 3},
	"join": {Name: "join", Args: 2, Outputs: 1},
}

var bySymbol = func() map[rune]Primitive {
	m := make(map[rune]Primitive)
	for _, p := range table {
		if p.Symbol != 0 {
			m[p.Symbol] = p
		}
	}
	return m
}()

// ByName looks up a primitive by its ASCII name.
func ByName(name string) (Primitive, bool) {
	p, ok := table[name]
	return p, ok
}

// BySymbol looks up a primitive by its single-rune symbol.
func BySymbol(r rune) (Primitive, bool) {
	p, ok := bySymbol[r]
	return p, ok
}

// IsName reports whether name is a registered primitive name.
func IsName(name string) bool {
	_, ok := table[name]
	return ok
}

// IsSymbol reports whether r is a registered primitive symbol.
func IsSymbol(r rune) bool {
	_, ok := bySymbol[r]
	return ok
}

// ModifierArity returns the number of trailing '!' characters in a
// user-defined modifier identifier, saturating at 255.
func ModifierArity(ident string) int {
	n := 0
	for i := len(ident) - 1; i >= 0 && ident[i] == '!'; i-- {
		n++
		if n == 255 {
			break
		}
	}
	return n
}
