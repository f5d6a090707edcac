package resolve

import (
	"strconv"
	"strings"
)

// renderQuery builds the human-readable signature used by not-found and
// ambiguity messages. Parts the query did not constrain are omitted: generic
// arity renders as `<T>` or `<T0, T1, …>`, parameter lists as
// `(Type, Type, …)`.
func renderQuery(q Query) string {
	var sb strings.Builder
	sb.WriteString(q.Name)
	if q.GenericArity == 1 {
		sb.WriteString("<T>")
	} else if q.GenericArity > 1 {
		sb.WriteByte('<')
		for i := 0; i < q.GenericArity; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("T" + strconv.Itoa(i))
		}
		sb.WriteByte('>')
	}
	if q.Params != nil {
		sb.WriteByte('(')
		for i, p := range q.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.String())
		}
		sb.WriteByte(')')
	}
	if q.Kind == KindConversion && q.ConvOther != nil {
		switch q.ConvDir {
		case ConvFrom:
			sb.WriteString("(" + q.ConvOther.String() + ")")
		case ConvTo:
			sb.WriteString(" -> " + q.ConvOther.String())
		}
	}
	if q.Return != nil {
		sb.WriteString(": " + q.Return.String())
	}
	return sb.String()
}
