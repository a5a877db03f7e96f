package kind

import "github.com/oo-lang/oofront/ast"

// OoType is the canonical, resolved type representation materialised after
// kind checking succeeds: a coarse type. It mirrors ast.TypeData's shape
// rather than introducing a second vocabulary, since a coarse type is just
// a structural translation of its syntactic type — the later
// (out-of-scope) type-checking passes are the ones expected to refine this
// into something that also resolves Named down to a fully-applied
// definition.
type OoType struct {
	Data OoTypeData
}

type OoTypeData interface{ isOoType() }

// OoNamed is an unresolved reference to whatever Sid names — a ground type,
// or (before application) a type-level function. Resolving it further is
// the job of the type-checker this front-end stops short of.
type OoNamed struct{ Sid string }

type OoPtr struct{ Elem *OoType }
type OoPtrMut struct{ Elem *OoType }
type OoArray struct{ Elem *OoType }
type OoProductAnon struct{ Elems []*OoType }
type OoProductNamed struct{ Fields []OoField }
type OoFun struct {
	Args []*OoType
	Ret  *OoType
}
type OoFunNamed struct {
	Args []OoField
	Ret  *OoType
}

// OoApplied is a type-level function applied to ground arguments — arity
// of Fn already checked equal to len(Args) by Check.
type OoApplied struct {
	Fn   *OoType
	Args []*OoType
}

type OoSum struct{ Summands []OoSummand }

type OoSummand struct {
	Sid   string
	Anon  []*OoType
	Named []OoField
}

type OoField struct {
	Sid  string
	Type *OoType
}

func (*OoNamed) isOoType()        {}
func (*OoPtr) isOoType()          {}
func (*OoPtrMut) isOoType()       {}
func (*OoArray) isOoType()        {}
func (*OoProductAnon) isOoType()  {}
func (*OoProductNamed) isOoType() {}
func (*OoFun) isOoType()          {}
func (*OoFunNamed) isOoType()     {}
func (*OoApplied) isOoType()      {}
func (*OoSum) isOoType()          {}

// Resolve translates a syntactic, kind-checked ast.Type into its coarse
// OoType. Callers must run Check successfully first; Resolve does not
// re-validate application arity.
func Resolve(t *ast.Type) *OoType {
	if t == nil {
		return nil
	}
	switch d := t.Data.(type) {
	case *ast.TypeID:
		sid := ""
		if n := len(d.Id.Segments); n > 0 {
			sid = d.Id.Segments[n-1]
		}
		return &OoType{Data: &OoNamed{Sid: sid}}
	case *ast.TypeMacro:
		// Macro expansion is out of scope; a macro-shaped type resolves to
		// an opaque reference by its invoked name, the same way an
		// unresolved named reference does.
		sid := ""
		if n := len(d.Id.Segments); n > 0 {
			sid = d.Id.Segments[n-1]
		}
		return &OoType{Data: &OoNamed{Sid: sid}}
	case *ast.TypePtr:
		return &OoType{Data: &OoPtr{Elem: Resolve(d.Elem)}}
	case *ast.TypePtrMut:
		return &OoType{Data: &OoPtrMut{Elem: Resolve(d.Elem)}}
	case *ast.TypeArray:
		return &OoType{Data: &OoArray{Elem: Resolve(d.Elem)}}
	case *ast.TypeProductRepeated:
		return &OoType{Data: &OoArray{Elem: Resolve(d.Elem)}}
	case *ast.TypeProductAnon:
		elems := make([]*OoType, len(d.Elems))
		for i, e := range d.Elems {
			elems[i] = Resolve(e)
		}
		return &OoType{Data: &OoProductAnon{Elems: elems}}
	case *ast.TypeProductNamed:
		return &OoType{Data: &OoProductNamed{Fields: resolveFields(d.Fields)}}
	case *ast.TypeFunAnon:
		args := make([]*OoType, len(d.Args))
		for i, a := range d.Args {
			args[i] = Resolve(a)
		}
		return &OoType{Data: &OoFun{Args: args, Ret: Resolve(d.Ret)}}
	case *ast.TypeFunNamed:
		return &OoType{Data: &OoFunNamed{Args: resolveFields(d.Args), Ret: Resolve(d.Ret)}}
	case *ast.TypeAppAnon:
		args := make([]*OoType, len(d.Args))
		for i, a := range d.Args {
			args[i] = Resolve(a)
		}
		return &OoType{Data: &OoApplied{Fn: Resolve(d.Fn), Args: args}}
	case *ast.TypeAppNamed:
		args := make([]*OoType, len(d.Args))
		for i, fld := range d.Args {
			args[i] = Resolve(fld.Type)
		}
		return &OoType{Data: &OoApplied{Fn: Resolve(d.Fn), Args: args}}
	case *ast.TypeGeneric:
		// A bare, un-applied Generic has no coarse representation of its
		// own: coarse types are defined over *items*, and a Generic's body
		// only has ground coarse types at each application site, which
		// OoApplied already captures. Resolve its body so a caller
		// inspecting e.g. an item's own `type Pair = <a, b> => (a, b)`
		// definition still gets something, understanding that `a`/`b`
		// resolve to OoNamed placeholders rather than ground types.
		return Resolve(d.Body)
	case *ast.TypeSum:
		summands := make([]OoSummand, len(d.Summands))
		for i, s := range d.Summands {
			anon := make([]*OoType, len(s.Anon))
			for j, a := range s.Anon {
				anon[j] = Resolve(a)
			}
			summands[i] = OoSummand{Sid: s.Sid, Anon: anon, Named: resolveFields(s.Named)}
		}
		return &OoType{Data: &OoSum{Summands: summands}}
	}
	return nil
}

func resolveFields(fields []ast.Field) []OoField {
	out := make([]OoField, len(fields))
	for i, f := range fields {
		out[i] = OoField{Sid: f.Sid, Type: Resolve(f.Type)}
	}
	return out
}

// ResolveItem assembles the coarse type for an item: for a function, a
// named function type built from its argument sids and return type. Items
// other than Fun already carry a single *ast.Type field that Resolve
// handles directly.
func ResolveItem(it *ast.Item) *OoType {
	switch d := it.Data.(type) {
	case *ast.ItemType:
		return Resolve(d.Type)
	case *ast.ItemFfiVal:
		return Resolve(d.Type)
	case *ast.ItemFun:
		args := make([]OoField, len(d.Args))
		for i, a := range d.Args {
			args[i] = OoField{Sid: a.Sid, Type: Resolve(a.Type)}
		}
		return &OoType{Data: &OoFunNamed{Args: args, Ret: Resolve(d.Ret)}}
	default:
		return nil
	}
}
