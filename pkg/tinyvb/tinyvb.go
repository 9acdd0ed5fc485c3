package tinyvb

import (
	"os"

	"github.com/dinikifo/VB6.tiny.clone/internal/forms"
	"github.com/dinikifo/VB6.tiny.clone/internal/interp"
	"github.com/dinikifo/VB6.tiny.clone/internal/ledger"
	"github.com/dinikifo/VB6.tiny.clone/internal/script"
	"github.com/dinikifo/VB6.tiny.clone/internal/stats"
	"github.com/dinikifo/VB6.tiny.clone/internal/store"
	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

// Runtime is the embeddable scripting runtime: an interpreter wired to the
// builtin tables, the accounting and stats builtins, and optional
// persistence for the AppData tree.
type Runtime struct {
	in          *interp.Interp
	store       store.Store
	notify      func(text string)
	diag        func(msg string)
	dispatchers []interp.Dispatcher
	saveOnClose bool
}

// Value is a dynamic tree value.
type Value = value.Value

// Format renders a value the way the engine prints it.
func Format(v Value) string { return value.Format(v) }

// Heal repairs a loaded tree into the application's expected shape. It is
// the store healer the runtime installs by default.
func Heal(root value.Value) value.Value {
	return ledger.EnsureDefaults(root)
}

// New creates a runtime with the given options. The Root and Customer
// schemas are registered, the accounting and stats builtins are wired in,
// and when a store is configured the persisted tree is loaded and bound to
// AppData in the Context.
func New(opts ...Option) (*Runtime, error) {
	registerSchemas()

	r := &Runtime{}
	for _, opt := range opts {
		opt(r)
	}

	// Embedder dispatchers outrank the bundled ones so they can override.
	iopts := []interp.Option{}
	for _, d := range r.dispatchers {
		iopts = append(iopts, interp.WithDispatcher(d))
	}
	iopts = append(iopts,
		interp.WithDispatcher(stats.Dispatcher{}),
		interp.WithDispatcher(ledger.Dispatcher{}),
	)
	if r.notify != nil {
		iopts = append(iopts, interp.WithNotify(r.notify))
	}
	if r.diag != nil {
		iopts = append(iopts, interp.WithDiagnostics(r.diag))
	}
	r.in = interp.New(iopts...)

	appData := value.Value(nil)
	if r.store != nil {
		loaded, err := r.store.Load()
		if err != nil {
			return nil, err
		}
		appData = loaded
		r.saveOnClose = true
	} else {
		appData = Heal(nil)
	}
	r.in.Context().Set("AppData", appData)

	return r, nil
}

func registerSchemas() {
	value.RegisterSchema(ledger.SchemaName, ledger.RootSchema())

	customer := value.NewObject()
	customer.Set("name", "")
	customer.Set("age", int64(0))
	value.RegisterSchema("Customer", customer)
}

// Interp exposes the underlying interpreter for advanced embedding.
func (r *Runtime) Interp() *interp.Interp { return r.in }

// Context exposes the variable context.
func (r *Runtime) Context() *interp.Context { return r.in.Context() }

// AppData returns the tree bound to AppData.
func (r *Runtime) AppData() value.Value {
	return r.in.Context().Get("AppData")
}

// LoadSource parses Sub and Function definitions from source, merging them
// into the loaded program.
func (r *Runtime) LoadSource(source string) {
	r.in.LoadSource(source)
}

// LoadFile loads definitions from a script file.
func (r *Runtime) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	r.in.LoadSource(string(data))
	return nil
}

// CallSub runs a named Sub. Unknown names are a no-op.
func (r *Runtime) CallSub(name string) {
	r.in.CallSub(name)
}

// CallFunction runs a named Function and returns its result variable.
func (r *Runtime) CallFunction(name string) value.Value {
	return r.in.CallFunction(name)
}

// Exec runs loose statements outside any Sub: the text is normalized into
// logical lines and executed as one block.
func (r *Runtime) Exec(source string) {
	r.in.Run(script.Normalize(source))
}

// Eval evaluates a single expression and returns its value.
func (r *Runtime) Eval(expr string) value.Value {
	return r.in.EvalExpr(expr)
}

// OpenForm parses a form definition, builds its widgets, binds them into
// the Context, and runs the form's Load handler plus data bindings.
func (r *Runtime) OpenForm(defJSON string, factory forms.WidgetFactory) (*forms.Form, error) {
	def, err := forms.ParseDef(defJSON)
	if err != nil {
		return nil, err
	}
	f := forms.New(def, r.in, factory)
	f.Show()
	return f, nil
}

// Save persists the AppData tree to the configured store. Without a store
// it is a no-op.
func (r *Runtime) Save() error {
	if r.store == nil {
		return nil
	}
	return r.store.Save(r.AppData())
}

// Close saves the AppData tree when a store is configured, then releases
// resources.
func (r *Runtime) Close() error {
	if r.store == nil {
		return nil
	}
	if r.saveOnClose {
		if err := r.store.Save(r.AppData()); err != nil {
			r.store.Close()
			return err
		}
	}
	return r.store.Close()
}
