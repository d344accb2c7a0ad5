package forms

import "strings"

// FieldKind is the explicit control kind of a form field. The original pages
// sniffed DOM control types at runtime; the schema makes that declarative.
type FieldKind string

const (
	KindText   FieldKind = "text"
	KindDate   FieldKind = "date"
	KindSelect FieldKind = "select"
	KindMulti  FieldKind = "multi"
)

type Field struct {
	Name    string    `json:"name"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Options []string  `json:"options,omitempty"`
}

type Schema struct {
	Fields []Field `json:"fields"`
}

// Default is the safety-incident report form. Field names double as the
// sheet's column identity, so dashboard records populate the form directly.
func Default() Schema {
	return Schema{Fields: []Field{
		{Name: "reportNumber", Label: "Report Number", Kind: KindText},
		{Name: "eventDate", Label: "Event Date", Kind: KindDate},
		{Name: "eventType", Label: "Event Type", Kind: KindSelect, Options: []string{"Near Miss", "Incident", "First Aid", "Property Damage", "Environmental"}},
		{Name: "location", Label: "Location", Kind: KindText},
		{Name: "project", Label: "Project/Client", Kind: KindText},
		{Name: "severity", Label: "Severity", Kind: KindSelect, Options: []string{"Low", "Medium", "High", "Critical"}},
		{Name: "status", Label: "Status", Kind: KindSelect, Options: []string{"Open", "Pending Review", "Under Investigation", "Closed"}},
		{Name: "description", Label: "What Happened", Kind: KindText},
		{Name: "immediateActions", Label: "Immediate Actions Taken", Kind: KindText},
		{Name: "contributingFactors", Label: "Contributing Factors", Kind: KindMulti, Options: []string{"Procedure", "Training", "Equipment", "Environment", "Communication", "Other"}},
		{Name: "correctiveActions", Label: "Corrective Actions", Kind: KindText},
		{Name: "reportedBy", Label: "Reported By", Kind: KindText},
		{Name: "witnesses", Label: "Witnesses", Kind: KindMulti},
	}}
}

func (s Schema) Field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// SplitMulti splits a stored multi-value on "|", trimming each segment and
// dropping empties.
func SplitMulti(value string) []string {
	var out []string
	for _, part := range strings.Split(value, "|") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// JoinMulti serializes selections the way drafts and submissions store them.
func JoinMulti(values []string) string {
	var clean []string
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, " | ")
}

// Populate writes incoming values onto the current form values. Empty or
// missing incoming values are no-ops so existing field content survives.
// Multi values are re-split and re-joined so segment spacing normalizes.
func (s Schema) Populate(current, incoming map[string]string) map[string]string {
	out := make(map[string]string, len(current)+len(incoming))
	for k, v := range current {
		out[k] = v
	}
	for _, f := range s.Fields {
		v, ok := incoming[f.Name]
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		if f.Kind == KindMulti {
			out[f.Name] = JoinMulti(SplitMulti(v))
			continue
		}
		out[f.Name] = strings.TrimSpace(v)
	}
	return out
}
