package slb

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/serializer"
	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
	"github.com/TheLegendOfMataNui/SAGESharp-sub001/tree"
)

var (
	// ErrAlreadyRegistered is returned if a different schema is already registered for a type.
	ErrAlreadyRegistered = errors.New("already registered")

	// ErrNotRegistered is returned if a type has no registered schema.
	ErrNotRegistered = errors.New("not registered")
)

// NewRegistry returns a new, empty Registry.
func NewRegistry(config *Config) *Registry {
	r := &Registry{
		config: config.copyAndFill(),
		types:  make(map[reflect.Type]*tree.Type),
		nodes:  make(map[reflect.Type]*tree.Composite),
	}
	r.factory = serializer.NewFactory(r)
	return r
}

// Registry holds the schemas of record types, and the node graphs and serializers built from them.
// Node graphs are built the first time they are needed, and shared afterwards.
// It is safe for concurrent use; the streams given to it are not.
type Registry struct {
	config  *Config
	factory *serializer.Factory

	mutex sync.Mutex
	types map[reflect.Type]*tree.Type
	nodes map[reflect.Type]*tree.Composite
}

// Register registers the schemas of record types.
// Registering the same schema twice is not an error.
func (r *Registry) Register(types ...*tree.Type) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, t := range types {
		if t == nil {
			return slbio.NullArgument("type")
		}
		if t.Go == nil || t.Go.Kind() != reflect.Ptr {
			return slbio.NewError(slbio.ErrMalformedSchema, t.String(), "schema must describe a pointer to a record")
		}

		if existing, ok := r.types[t.Go]; ok {
			if existing != t {
				return fmt.Errorf("%w: %v", ErrAlreadyRegistered, tree.Name(t.Go))
			}
			continue
		}

		r.types[t.Go] = t
	}
	return nil
}

// Describe implements serializer.Lookup.
func (r *Registry) Describe(t reflect.Type) (*tree.Type, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	desc, ok := r.types[t]
	return desc, ok
}

// Node returns the node graph of the record type t.
func (r *Registry) Node(t reflect.Type) (*tree.Composite, error) {
	if t == nil {
		return nil, slbio.NullArgument("type")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if n, ok := r.nodes[t]; ok {
		return n, nil
	}

	desc, ok := r.types[t]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotRegistered, tree.Name(t))
	}

	n, err := tree.Build(desc)
	if err != nil {
		return nil, err
	}

	r.config.Logger.Debug("built node graph",
		slog.String("type", desc.String()),
		slog.Int("edges", len(n.Edges)),
	)

	r.nodes[t] = n
	return n, nil
}

// Serializers returns the serializer factory resolving records through r.
func (r *Registry) Serializers() *serializer.Factory {
	return r.factory
}

// Write writes the record v to out, followed by its out of line content and the relocation footer.
func (r *Registry) Write(out io.WriteSeeker, v any) error {
	if out == nil {
		return slbio.NullArgument("out")
	}
	if v == nil {
		return slbio.NullArgument("value")
	}

	n, err := r.Node(reflect.TypeOf(v))
	if err != nil {
		return err
	}

	w := slbio.NewWriter(out)
	slots, err := tree.Write(w, v, n)
	if err != nil {
		return err
	}

	r.config.Logger.Debug("wrote record",
		slog.String("type", n.Name()),
		slog.Int("offsets", len(slots)),
	)

	return tree.WriteFooter(w, slots)
}

// Read reads a record of type t from the current position of in.
func (r *Registry) Read(in io.ReadSeeker, t reflect.Type) (any, error) {
	if in == nil {
		return nil, slbio.NullArgument("in")
	}

	n, err := r.Node(t)
	if err != nil {
		return nil, err
	}

	return tree.Read(slbio.NewReader(in), n)
}
