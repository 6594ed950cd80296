// Package schema maps source column headers onto the canonical order fields
package schema

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"ordertrack/internal/core/normalize"
)

// Canonical field names
const (
	Status       = "ESTADO"
	CreatedAt    = "FECHA DE CREACION"
	Responsible  = "RESPONSABLE"
	Customer     = "NOMBRE DEL CLIENTE"
	Offer        = "OFERTA"
	Subscription = "SUSCRIPCION"
	Interaction  = "INTERACCION"
	Category     = "CATEGORIA"
	Model        = "MODELO COMERCIAL"
	Executive    = "EJECUTIVO"
	ActivatedAt  = "FECHA DE ACTIVACION"
	DaysOpen     = "DIAS ABIERTA"
)

//go:embed schema.yaml
var defaultYAML []byte

// Field is a canonical name and its aliases in priority order
type Field struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

type document struct {
	Fields []Field `yaml:"fields"`
}

// Schema is read-only once built
type Schema struct {
	fields []Field
	keys   [][]string // folded aliases per field
}

// Load parses a schema document
func Load(b []byte) (Schema, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Schema{}, fmt.Errorf("schema: decode: %w", err)
	}
	if len(doc.Fields) == 0 {
		return Schema{}, fmt.Errorf("schema: no fields")
	}
	s := Schema{
		fields: make([]Field, 0, len(doc.Fields)),
		keys:   make([][]string, 0, len(doc.Fields)),
	}
	seen := map[string]bool{}
	for i, f := range doc.Fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return Schema{}, fmt.Errorf("schema: field %d has no name", i)
		}
		if seen[name] {
			return Schema{}, fmt.Errorf("schema: duplicate field %q", name)
		}
		seen[name] = true

		aliases := append([]string(nil), f.Aliases...)
		if len(aliases) == 0 {
			aliases = []string{name}
		}
		keys := make([]string, 0, len(aliases))
		for _, a := range aliases {
			if k := normalize.Key(a); k != "" {
				keys = append(keys, k)
			}
		}
		s.fields = append(s.fields, Field{Name: name, Aliases: aliases})
		s.keys = append(s.keys, keys)
	}
	return s, nil
}

var defaultSchema = sync.OnceValue(func() Schema {
	s, err := Load(defaultYAML)
	if err != nil {
		panic(err)
	}
	return s
})

// Default is the built-in schema, parsed on first use
func Default() Schema { return defaultSchema() }

// Fields returns a copy of the field list
func (s Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		out[i] = Field{Name: f.Name, Aliases: append([]string(nil), f.Aliases...)}
	}
	return out
}

// Names lists the canonical names in schema order
func (s Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Canonicalize returns a rename plan from actual column name to canonical name
//
// Matching ignores case and surrounding or repeated whitespace. Fields are
// visited in schema order and each scans its aliases in priority order; the
// first alias with an unbound column binds it. When several columns fold to the
// same key the leftmost wins. Fields with no match are left out.
func Canonicalize(columns []string, s Schema) map[string]string {
	byKey := make(map[string][]string, len(columns))
	for _, c := range columns {
		k := normalize.Key(c)
		if k == "" {
			continue
		}
		byKey[k] = append(byKey[k], c)
	}

	plan := make(map[string]string, len(s.fields))
	bound := make(map[string]bool, len(columns))
	for i, f := range s.fields {
	aliases:
		for _, k := range s.keys[i] {
			for _, c := range byKey[k] {
				if bound[c] {
					continue
				}
				bound[c] = true
				plan[c] = f.Name
				break aliases
			}
		}
	}
	return plan
}

// Apply renames headers through plan into a new slice
func Apply(headers []string, plan map[string]string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		if c, ok := plan[h]; ok {
			out[i] = c
		} else {
			out[i] = h
		}
	}
	return out
}

// Missing lists canonical fields the plan does not bind
func Missing(plan map[string]string, s Schema) []string {
	have := make(map[string]bool, len(plan))
	for _, c := range plan {
		have[c] = true
	}
	var out []string
	for _, f := range s.fields {
		if !have[f.Name] {
			out = append(out, f.Name)
		}
	}
	return out
}
