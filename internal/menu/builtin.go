package menu

import "github.com/quillmath/quill/internal/engine/tree"

// Builtins returns the default symbol palette.
func Builtins() []Entry {
	entries := []Entry{
		{Name: "Fraction", Code: "frac", Aliases: []string{"fraction", "over"}, Action: NodeAction(tree.NewFraction)},
		{Name: "Square root", Code: "sqrt", Aliases: []string{"root", "radical"}, Action: NodeAction(tree.NewSqrt)},
		{Name: "Brackets", Code: "paren", Aliases: []string{"parentheses", "fence"}, Action: NodeAction(tree.NewBracket)},
		{Name: "Subscript", Code: "sub", Aliases: []string{"index"}, Action: NodeAction(tree.NewSubscript)},
		{Name: "Superscript", Code: "sup", Aliases: []string{"power", "exponent"}, Action: NodeAction(tree.NewSuperscript)},
		{Name: "Limit", Code: "lim", Aliases: []string{"limit"}, Action: NodeAction(tree.NewLimit)},
		{Name: "Sum", Code: "sum", Aliases: []string{"sigma"}, Action: NodeAction(func() *tree.Node { return tree.NewBigOp("∑") })},
		{Name: "Product", Code: "prod", Aliases: []string{"pi product"}, Action: NodeAction(func() *tree.Node { return tree.NewBigOp("∏") })},
		{Name: "Integral", Code: "int", Aliases: []string{"integral"}, Action: NodeAction(func() *tree.Node { return tree.NewBigOp("∫") })},
	}

	symbols := []struct {
		name    string
		code    string
		glyph   string
		aliases []string
	}{
		{"Greek small alpha", "alpha", "α", nil},
		{"Greek small beta", "beta", "β", nil},
		{"Greek small gamma", "gamma", "γ", nil},
		{"Greek small delta", "delta", "δ", nil},
		{"Greek small epsilon", "epsilon", "ε", nil},
		{"Greek small theta", "theta", "θ", nil},
		{"Greek small lambda", "lambda", "λ", nil},
		{"Greek small mu", "mu", "μ", nil},
		{"Greek small pi", "pi", "π", nil},
		{"Greek small sigma", "sigma", "σ", nil},
		{"Greek small phi", "phi", "φ", nil},
		{"Greek small omega", "omega", "ω", nil},
		{"Greek capital delta", "Delta", "Δ", []string{"difference"}},
		{"Greek capital omega", "Omega", "Ω", nil},
		{"Infinity", "infty", "∞", []string{"infinity"}},
		{"Plus or minus", "pm", "±", []string{"plusminus"}},
		{"Multiplication sign", "times", "×", []string{"multiply"}},
		{"Middle dot", "cdot", "·", []string{"dot"}},
		{"Not equal", "neq", "≠", []string{"unequal"}},
		{"Less than or equal", "leq", "≤", nil},
		{"Greater than or equal", "geq", "≥", nil},
		{"Approximately equal", "approx", "≈", nil},
		{"Right arrow", "to", "→", []string{"arrow"}},
		{"Element of", "in", "∈", []string{"member"}},
		{"For all", "forall", "∀", nil},
		{"There exists", "exists", "∃", nil},
		{"Partial differential", "partial", "∂", nil},
		{"Nabla", "nabla", "∇", []string{"gradient"}},
	}
	for _, s := range symbols {
		entries = append(entries, Entry{
			Name:    s.name,
			Code:    s.code,
			Aliases: s.aliases,
			Action:  SymbolAction(s.glyph),
		})
	}
	return entries
}

// RegisterBuiltins registers the default palette into the registry.
func RegisterBuiltins(r *Registry) error {
	for _, e := range Builtins() {
		if err := r.Register(e); err != nil {
			return err
		}
	}
	return nil
}
