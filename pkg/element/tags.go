package element

// Intrinsic tag factories. Each is shorthand for H(tag, props, children...).

func tag(name string, props Props, children []any) Element {
	return node(name, props, children)
}

// Content sectioning

func Header(props Props, children ...any) Element  { return tag("header", props, children) }
func Footer(props Props, children ...any) Element  { return tag("footer", props, children) }
func Main(props Props, children ...any) Element    { return tag("main", props, children) }
func Nav(props Props, children ...any) Element     { return tag("nav", props, children) }
func Section(props Props, children ...any) Element { return tag("section", props, children) }
func H1(props Props, children ...any) Element      { return tag("h1", props, children) }
func H2(props Props, children ...any) Element      { return tag("h2", props, children) }

// Text content

func Div(props Props, children ...any) Element  { return tag("div", props, children) }
func P(props Props, children ...any) Element    { return tag("p", props, children) }
func Span(props Props, children ...any) Element { return tag("span", props, children) }
func Ul(props Props, children ...any) Element   { return tag("ul", props, children) }
func Ol(props Props, children ...any) Element   { return tag("ol", props, children) }
func Li(props Props, children ...any) Element   { return tag("li", props, children) }
func Pre(props Props, children ...any) Element  { return tag("pre", props, children) }

// Inline text

func A(props Props, children ...any) Element      { return tag("a", props, children) }
func Strong(props Props, children ...any) Element { return tag("strong", props, children) }
func Em(props Props, children ...any) Element     { return tag("em", props, children) }
func Code(props Props, children ...any) Element   { return tag("code", props, children) }

// Forms

func Form(props Props, children ...any) Element   { return tag("form", props, children) }
func Input(props Props, children ...any) Element  { return tag("input", props, children) }
func Button(props Props, children ...any) Element { return tag("button", props, children) }
func Label(props Props, children ...any) Element  { return tag("label", props, children) }
