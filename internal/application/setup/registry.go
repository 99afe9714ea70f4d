package setup

import (
	"fmt"
	"strings"

	"github.com/erp/storesetup/internal/domain/setup"
	"github.com/erp/storesetup/internal/domain/shared"
)

// Registry holds the data patches known to the upgrade pipeline
type Registry struct {
	patches []setup.DataPatch
	byName  map[string]setup.DataPatch
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]setup.DataPatch)}
}

// Register adds patches in order; a name already registered is rejected
func (r *Registry) Register(patches ...setup.DataPatch) error {
	for _, p := range patches {
		name := p.Name()
		if strings.TrimSpace(name) == "" {
			return shared.NewDomainError(shared.ErrInvalidInput.Code, "Patch name cannot be empty")
		}
		if _, ok := r.byName[name]; ok {
			return shared.NewDomainError(shared.ErrAlreadyExists.Code,
				fmt.Sprintf("Patch %s is already registered", name))
		}
		r.byName[name] = p
		r.patches = append(r.patches, p)
	}
	return nil
}

// Patches returns the patches in registration order
func (r *Registry) Patches() []setup.DataPatch {
	return append([]setup.DataPatch(nil), r.patches...)
}

// Ordered returns the patches with every dependency before its dependents.
// Independent patches keep their registration order.
func (r *Registry) Ordered() ([]setup.DataPatch, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(r.patches))
	ordered := make([]setup.DataPatch, 0, len(r.patches))

	var visit func(p setup.DataPatch, path []string) error
	visit = func(p setup.DataPatch, path []string) error {
		name := p.Name()
		switch state[name] {
		case done:
			return nil
		case visiting:
			return shared.NewDomainError("PATCH_DEPENDENCY_CYCLE",
				fmt.Sprintf("Patch dependency cycle: %s -> %s", strings.Join(path, " -> "), name))
		}

		state[name] = visiting
		for _, dep := range p.Dependencies() {
			d, ok := r.byName[dep]
			if !ok {
				return shared.NewDomainError("UNKNOWN_PATCH_DEPENDENCY",
					fmt.Sprintf("Patch %s depends on unregistered patch %s", name, dep))
			}
			if err := visit(d, append(path, name)); err != nil {
				return err
			}
		}
		state[name] = done
		ordered = append(ordered, p)
		return nil
	}

	for _, p := range r.patches {
		if err := visit(p, nil); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}
