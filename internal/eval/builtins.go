package eval

import (
	"strconv"

	"github.com/sentra-lang/typeset/internal/content"
	"github.com/sentra-lang/typeset/internal/scope"
	"github.com/sentra-lang/typeset/internal/value"
)

func parseInt(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

// StandardLibrary builds the top-level binding tier: element constructors
// and a handful of core free functions. Grounded on
// internal/vm/vm.go's OpCall-time native-function dispatch (the "is it a
// built-in name" branch ahead of user-defined function lookup), reworked
// here into ordinary Closure values a Library binds up front instead of a
// special opcode path.
func StandardLibrary() *scope.Library {
	lib := scope.NewLibrary()
	for _, ctor := range elementConstructors() {
		lib.Define(ctor.Name, ctor)
	}
	for _, fn := range freeFunctions() {
		lib.Define(fn.Name, fn)
	}
	return lib
}

func elementConstructors() []*Closure {
	leaf := func(name string, kind content.ElementKind, bodyParam string) *Closure {
		return &Closure{
			Name: name,
			Native: func(ev *Evaluator, args value.Args) (value.Value, error) {
				el := content.New(kind)
				if bodyParam != "" {
					if len(args.Positional) > 0 {
						if body, ok := args.Positional[0].(content.Element); ok {
							el = el.PushChild(body)
						} else {
							el = el.PushChild(content.Text(args.Positional[0].Repr()))
						}
					}
				}
				for _, k := range args.Named.Keys() {
					v, _ := args.Named.Get(k)
					el = el.WithField(k, v)
				}
				return el, nil
			},
		}
	}
	return []*Closure{
		leaf("strong", content.KindStrong, "body"),
		leaf("emph", content.KindEmph, "body"),
		leaf("par", content.KindParagraph, "body"),
		leaf("raw", content.KindRaw, "text"),
		leaf("link", content.KindLink, "body"),
		leaf("ref", content.KindRef, ""),
		leaf("image", content.KindImage, ""),
		headingConstructor(),
		linebreakConstructor(),
		parbreakConstructor(),
	}
}

func headingConstructor() *Closure {
	return &Closure{
		Name: "heading",
		Native: func(ev *Evaluator, args value.Args) (value.Value, error) {
			el := content.New(content.KindHeading)
			if len(args.Positional) > 0 {
				if body, ok := args.Positional[0].(content.Element); ok {
					el = el.PushChild(body)
				}
			}
			if lvl, ok := args.Named.Get("level"); ok {
				el = el.WithField("level", lvl)
			} else {
				el = el.WithField("level", value.Int(1))
			}
			return el, nil
		},
	}
}

func linebreakConstructor() *Closure {
	return &Closure{Name: "linebreak", Native: func(*Evaluator, value.Args) (value.Value, error) {
		return content.New(content.KindLinebreak), nil
	}}
}

func parbreakConstructor() *Closure {
	return &Closure{Name: "parbreak", Native: func(*Evaluator, value.Args) (value.Value, error) {
		return content.New(content.KindParbreak), nil
	}}
}

func freeFunctions() []*Closure {
	return []*Closure{
		{Name: "int", Native: func(ev *Evaluator, args value.Args) (value.Value, error) {
			v, ok := args.Pop()
			if !ok {
				return nil, &TypeError{Message: "int() requires one argument"}
			}
			switch n := v.(type) {
			case value.Int:
				return n, nil
			case value.Float:
				return value.Int(int64(n)), nil
			case value.String:
				return parseIntValue(string(n))
			default:
				return nil, &TypeError{Message: "cannot convert " + v.Kind().String() + " to int"}
			}
		}},
		{Name: "str", Native: func(ev *Evaluator, args value.Args) (value.Value, error) {
			v, ok := args.Pop()
			if !ok {
				return nil, &TypeError{Message: "str() requires one argument"}
			}
			if s, ok := v.(value.String); ok {
				return s, nil
			}
			return value.String(v.Repr()), nil
		}},
		{Name: "type", Native: func(ev *Evaluator, args value.Args) (value.Value, error) {
			v, ok := args.Pop()
			if !ok {
				return nil, &TypeError{Message: "type() requires one argument"}
			}
			return value.String(v.Kind().String()), nil
		}},
		{Name: "len", Native: func(ev *Evaluator, args value.Args) (value.Value, error) {
			v, ok := args.Pop()
			if !ok {
				return nil, &TypeError{Message: "len() requires one argument"}
			}
			switch n := v.(type) {
			case value.Array:
				return value.Int(n.Len()), nil
			case value.Dict:
				return value.Int(n.Len()), nil
			case value.String:
				return value.Int(len(splitGraphemes(string(n)))), nil
			default:
				return nil, &TypeError{Message: v.Kind().String() + " has no length"}
			}
		}},
	}
}

func parseIntValue(s string) (value.Value, error) {
	n, err := parseInt(s)
	if err != nil {
		return nil, &TypeError{Message: "not a valid integer: " + s}
	}
	return value.Int(n), nil
}
