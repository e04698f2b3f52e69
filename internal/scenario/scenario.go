// Package scenario loads a small YAML description of a class/mixin universe
// and drives it through the cha package's open-world interface, standing in
// for the resolver a real compiler would supply. It exists only to give
// cmd/chaquery something to dump and query; the rest of the compiler
// pipeline (lexer, parser, semantic analysis) is out of scope for the
// hierarchy analyzer itself.
package scenario

import (
	"fmt"
	"os"

	"github.com/cwbudde/cha-engine/cha"
	"github.com/goccy/go-yaml"
)

// File is the top-level YAML shape accepted by chaquery.
type File struct {
	Classes      []ClassSpec `yaml:"classes"`
	Instantiated []string    `yaml:"instantiated"`
	FunctionCls  string      `yaml:"function_class"`
	Options      Options     `yaml:"options"`

	// built holds the classes registered by the last Build, so ClassByName
	// hands out the same handles the World was populated with.
	built map[string]*scenarioClass
}

// ClassSpec describes one class declaration.
type ClassSpec struct {
	Name       string   `yaml:"name"`
	Super      string   `yaml:"super"`
	Implements []string `yaml:"implements"`
	Mixin      string   `yaml:"mixin"`
	CallType   bool     `yaml:"call_type"`
}

// Options mirrors cha.CompilerOptions.
type Options struct {
	Incremental bool `yaml:"incremental"`
	InvokeOn    bool `yaml:"invoke_on"`
}

func (o Options) HasIncrementalSupport() bool { return o.Incremental }
func (o Options) EnabledInvokeOn() bool       { return o.InvokeOn }

// Load reads and parses a scenario file from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return &f, nil
}

// stderrReporter forwards internal-error reports to standard error, the way
// cmd/dwscript's own commands log (fmt.Fprintln(os.Stderr, ...), never a
// structured logging library).
type stderrReporter struct{}

func (stderrReporter) InternalError(cls cha.Class, msg string) {
	name := "<nil>"
	if cls != nil {
		name = cls.Name()
	}
	fmt.Fprintf(os.Stderr, "cha: internal error (%s): %s\n", name, msg)
}

// Build resolves every ClassSpec into a scenarioClass, registers the whole
// universe with a fresh cha.World, marks the named instantiated classes, and
// closes the world. The returned World is ready for dump/query commands.
func (f *File) Build() (*cha.World, error) {
	byName, order, err := resolveClasses(f.Classes)
	if err != nil {
		return nil, err
	}

	var object, function *scenarioClass
	if obj, ok := byName["Object"]; ok {
		object = obj
	}
	if f.FunctionCls != "" {
		fn, ok := byName[f.FunctionCls]
		if !ok {
			return nil, fmt.Errorf("function_class %q is not a declared class", f.FunctionCls)
		}
		function = fn
	}

	var instantiated []cha.Class
	for _, name := range f.Instantiated {
		c, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("instantiated class %q is not declared", name)
		}
		instantiated = append(instantiated, c)
	}

	w := cha.NewWorld(
		cha.WithCoreClasses(coreClasses{object: object, function: function}),
		cha.WithBackend(nopBackend{}),
		cha.WithResolverWorld(&staticResolver{directlyInstantiated: instantiated}),
		cha.WithCompilerOptions(f.Options),
		cha.WithReporter(stderrReporter{}),
	)

	for _, c := range order {
		w.RegisterClass(c)
		if c.mixinName != "" {
			mixinDecl, ok := byName[c.mixinName]
			if !ok {
				return nil, fmt.Errorf("class %q uses undeclared mixin %q", c.name, c.mixinName)
			}
			w.RegisterMixinUse(c, mixinDecl)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing world: %w", err)
	}
	f.built = byName
	return w, nil
}

// ClassByName looks up a declared class by name, for CLI commands that take
// a class name argument.
func (f *File) ClassByName(w *cha.World, name string) (cha.Class, error) {
	byName := f.built
	if byName == nil {
		var err error
		byName, _, err = resolveClasses(f.Classes)
		if err != nil {
			return nil, err
		}
	}
	c, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("no such class %q", name)
	}
	return c, nil
}

type coreClasses struct {
	object, function *scenarioClass
}

func (c coreClasses) Object() cha.Class {
	if c.object == nil {
		return nil
	}
	return c.object
}

func (c coreClasses) Function() cha.Class {
	if c.function == nil {
		return nil
	}
	return c.function
}

// nopBackend treats nothing as native, foreign, or JS-interop — the
// scenario format has no concept of a host runtime.
type nopBackend struct{}

func (nopBackend) IsNative(cha.Element) bool { return false }
func (nopBackend) IsJsInterop(cha.Class) bool { return false }
func (nopBackend) IsForeign(cha.Element) bool { return false }
func (nopBackend) JsInteropLub() cha.Class     { return nil }

// staticResolver is the scenario format's whole "resolver": a fixed set of
// directly-instantiated classes decided up front by the YAML file rather
// than discovered by analyzing program text.
type staticResolver struct {
	directlyInstantiated []cha.Class
}

func (r *staticResolver) DirectlyInstantiatedClasses() []cha.Class { return r.directlyInstantiated }
func (r *staticResolver) IsImplemented(cha.Class) bool              { return true }
func (r *staticResolver) HasInvokedSetter(cha.Element, *cha.World) bool { return false }
func (r *staticResolver) FieldSetters(cha.Element) bool             { return false }
