package decision

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hugo-ops/hugo/internal/prompt"
	"github.com/hugo-ops/hugo/internal/schema"
	"github.com/hugo-ops/hugo/internal/types"
)

// Variant selects between the full and simplified prompt of a decision type.
type Variant string

const (
	VariantFull       Variant = "full"
	VariantSimplified Variant = "simplified"
)

// PromptVariant holds the task text and guideline blocks of one prompt
// variant. Both variants of a decision type share the same schema; only the
// framing shrinks on fallback.
type PromptVariant struct {
	Task       string
	Guidelines []string
}

// Definition binds a decision type to its schema, its prompt variants, and
// its conservative default provider. The provider must be a pure function
// of the context that cannot fail.
type Definition struct {
	Type         string
	Schema       schema.Schema
	Full         PromptVariant
	Simplified   PromptVariant
	Conservative func(Context) Parsed
}

// Prompt renders the prompt for the given context and variant.
func (d Definition) Prompt(c Context, v Variant) string {
	pv := d.Full
	sections := c.Sections()
	if v == VariantSimplified {
		pv = d.Simplified
		sections = c.SimplifiedSections()
	}

	return prompt.Build(prompt.Input{
		Schema:     d.Schema,
		Sections:   sections,
		Task:       pv.Task,
		Guidelines: pv.Guidelines,
	})
}

// Registry holds decision type definitions. A missing registration for a
// requested type is a configuration error, surfaced as a typed error from
// Get rather than a pipeline failure.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// DefaultRegistry creates a registry with the three built-in decision types
// registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Built-in definitions cannot collide in an empty registry.
	_ = r.Register(AlertDefinition())
	_ = r.Register(RiskDefinition())
	_ = r.Register(InventoryDefinition())
	return r
}

// Register adds a definition to the registry.
// Returns DECISION_TYPE_ALREADY_EXISTS if the type is already registered.
func (r *Registry) Register(def Definition) error {
	if def.Type == "" {
		return types.NewError(types.DECISION_TYPE_NOT_REGISTERED, "definition type cannot be empty")
	}
	if def.Conservative == nil {
		return types.NewError(types.DECISION_TYPE_NOT_REGISTERED,
			"definition "+def.Type+" has no conservative default provider")
	}
	if len(def.Schema.Fields) == 0 {
		return types.NewError(types.DECISION_TYPE_NOT_REGISTERED,
			"definition "+def.Type+" has an empty schema")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.Type]; exists {
		return types.NewError(types.DECISION_TYPE_ALREADY_EXISTS,
			"decision type already registered: "+def.Type)
	}
	r.defs[def.Type] = def
	return nil
}

// Get retrieves a definition by decision type.
func (r *Registry) Get(decisionType string) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[decisionType]
	if !ok {
		return Definition{}, types.NewError(types.DECISION_TYPE_NOT_REGISTERED,
			"decision type not registered: "+decisionType)
	}
	return def, nil
}

// Types returns the sorted names of all registered decision types.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// guidelineOverride is one decision type's guideline replacement in an
// override file.
type guidelineOverride struct {
	Full       []string `yaml:"full"`
	Simplified []string `yaml:"simplified"`
}

// LoadGuidelineOverrides replaces the guideline blocks of registered
// decision types from a YAML file keyed by decision type:
//
//	alert_decision:
//	  full:
//	    - Base decision on operational impact
//	  simplified:
//	    - Err on the side of alerting
//
// Unknown decision types in the file are rejected so typos do not silently
// no-op. Empty lists leave the registered guidelines untouched.
func (r *Registry) LoadGuidelineOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.WrapError(types.CONFIG_LOAD_FAILED,
			"cannot read guideline overrides file "+path, err)
	}

	var overrides map[string]guidelineOverride
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return types.WrapError(types.CONFIG_PARSE_FAILED,
			"cannot parse guideline overrides file "+path, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for name, ov := range overrides {
		def, ok := r.defs[name]
		if !ok {
			return types.NewError(types.DECISION_TYPE_NOT_REGISTERED,
				fmt.Sprintf("guideline override references unknown decision type %q", name))
		}
		if len(ov.Full) > 0 {
			def.Full.Guidelines = ov.Full
		}
		if len(ov.Simplified) > 0 {
			def.Simplified.Guidelines = ov.Simplified
		}
		r.defs[name] = def
	}

	return nil
}
