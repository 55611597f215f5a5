package seeder

import (
	"fmt"
	"sort"

	"github.com/Lumos-Labs-HQ/insight/internal/models"
)

type DependencyGraph struct {
	tables map[string]models.Entity
	order  []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		tables: make(map[string]models.Entity),
	}
}

func (g *DependencyGraph) AddTable(entity models.Entity) {
	g.tables[entity.Name] = entity
}

func (g *DependencyGraph) BuildInsertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(tableName string) error {
		if temp[tableName] {
			return fmt.Errorf("circular dependency detected involving table: %s", tableName)
		}
		if visited[tableName] {
			return nil
		}

		temp[tableName] = true
		if entity, ok := g.tables[tableName]; ok {
			for _, dep := range entity.Dependencies() {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		temp[tableName] = false
		visited[tableName] = true
		order = append(order, tableName)
		return nil
	}

	// Visit in name order so independent tables come out the same way every run.
	names := make([]string, 0, len(g.tables))
	for name := range g.tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, tableName := range names {
		if !visited[tableName] {
			if err := visit(tableName); err != nil {
				return nil, err
			}
		}
	}

	g.order = order
	return order, nil
}

func (g *DependencyGraph) GetOrder() []string {
	return g.order
}

// LoadOrder returns the built-in entities sorted so that referenced tables
// come before the tables that reference them.
func LoadOrder() ([]models.Entity, error) {
	g := NewDependencyGraph()
	for _, e := range models.Entities() {
		g.AddTable(e)
	}

	order, err := g.BuildInsertionOrder()
	if err != nil {
		return nil, err
	}

	entities := make([]models.Entity, 0, len(order))
	for _, name := range order {
		if e, ok := g.tables[name]; ok {
			entities = append(entities, e)
		}
	}
	return entities, nil
}
