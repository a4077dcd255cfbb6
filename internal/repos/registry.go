package repos

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/venturedeck/venturedeck-backend/internal/types"
)

// Registry maps the entity names used by the dashboard's generic query
// endpoint to their GORM models. The typed repos above are the primary
// access path; the registry exists so the old {entity_name, operation}
// call shape keeps working against the same tables.
type Registry struct {
	models map[string]func() interface{}
}

func NewRegistry() *Registry {
	return &Registry{
		models: map[string]func() interface{}{
			"Venture":           func() interface{} { return &types.Venture{} },
			"VentureKPI":        func() interface{} { return &types.VentureKPI{} },
			"FinancialRecord":   func() interface{} { return &types.FinancialRecord{} },
			"Talent":            func() interface{} { return &types.Talent{} },
			"Skill":             func() interface{} { return &types.Skill{} },
			"VenturePermission": func() interface{} { return &types.VenturePermission{} },
			"VentureDocument":   func() interface{} { return &types.VentureDocument{} },
			"ChatThread":        func() interface{} { return &types.ChatThread{} },
			"ChatMessage":       func() interface{} { return &types.ChatMessage{} },
			"VentureComment":    func() interface{} { return &types.VentureComment{} },
			"ResourceListing":   func() interface{} { return &types.ResourceListing{} },
			"ResourceRequest":   func() interface{} { return &types.ResourceRequest{} },
			"VentureTask":       func() interface{} { return &types.VentureTask{} },
			"ActivityLog":       func() interface{} { return &types.ActivityLog{} },
			"VentureScore":      func() interface{} { return &types.VentureScore{} },
		},
	}
}

func (r *Registry) Model(entityName string) (interface{}, error) {
	factory, ok := r.models[entityName]
	if !ok {
		return nil, fmt.Errorf("unknown entity %q", entityName)
	}
	return factory(), nil
}

func (r *Registry) EntityNames() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var columnNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidColumnName guards the query/sort keys the generic endpoint forwards
// into SQL fragments.
func ValidColumnName(name string) bool {
	return columnNamePattern.MatchString(name)
}
