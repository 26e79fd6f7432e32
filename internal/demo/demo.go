package demo

import (
	"sort"
	"strings"

	"github.com/vango-dev/incr/internal/errors"
	"github.com/vango-dev/incr/pkg/engine"
)

// Demo is a runnable template.
type Demo struct {
	// Name is the demo name.
	Name string

	// Description describes the demo.
	Description string

	// Template is the root template.
	Template engine.Template

	// NewState returns the root context for a fresh root.
	NewState func() any

	// Step advances state by one scripted interaction.
	Step func(state any)
}

// Available demos.
var demos = map[string]*Demo{
	"hello":       helloDemo(),
	"counter":     counterDemo(),
	"todos":       todosDemo(),
	"conditional": conditionalDemo(),
	"card":        cardDemo(),
	"tabs":        tabsDemo(),
	"tooltip":     tooltipDemo(),
}

// Get returns a demo by name.
func Get(name string) (*Demo, error) {
	d, ok := demos[name]
	if !ok {
		return nil, errors.New("E021").
			WithDetail("Demo '" + name + "' not found").
			WithSuggestion("Available demos: " + strings.Join(List(), ", "))
	}
	return d, nil
}

// List returns all demo names in sorted order.
func List() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
