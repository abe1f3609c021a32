package schema

import (
	"fmt"
	"strings"
)

// Render produces the schema contract block embedded in oracle prompts.
// Fields are rendered one per line in declaration order as
// `"name": type`, with enum unions joined by `|`, arrays as `["type"]`,
// inclusive numeric ranges as `number (min-max)`, and nullable fields
// suffixed with `| null`. The whole block is wrapped in braces so the
// oracle sees the exact object shape it must produce.
func (s Schema) Render() string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, f := range s.Fields {
		b.WriteString("    ")
		b.WriteString(fmt.Sprintf("%q: %s", f.Name, renderType(f)))
		if i < len(s.Fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func renderType(f FieldSpec) string {
	t := renderBaseType(f)
	if f.Nullable {
		t += " | null"
	}
	return t
}

func renderBaseType(f FieldSpec) string {
	switch f.Kind {
	case KindString:
		return "string"
	case KindNumber:
		if f.Minimum != nil && f.Maximum != nil {
			return fmt.Sprintf("number (%s-%s)", formatBound(*f.Minimum), formatBound(*f.Maximum))
		}
		return "number"
	case KindBool:
		return "true | false"
	case KindEnum:
		quoted := make([]string, len(f.Enum))
		for i, v := range f.Enum {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		return strings.Join(quoted, " | ")
	case KindArray:
		if f.Items != nil {
			return fmt.Sprintf("[%s]", renderBaseType(*f.Items))
		}
		return "[]"
	default:
		return string(f.Kind)
	}
}

func formatBound(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), ".")
}
