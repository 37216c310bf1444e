package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"ProductCatalog/pkg/kit"
)

var ErrUnknownOperation = errors.New("unknown operation")

const (
	outcomeOK       = "ok"
	outcomeGuidance = "guidance"
	outcomeError    = "error"
)

// Param is a named string argument of an Operation. Every param is required;
// an absent value is treated as empty and produces guidance text.
type Param struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Operation is a named, self-describing query. The description is what a
// calling agent reads to choose between operations.
type Operation struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []Param `json:"params"`

	run func(s *Store, args Args) (Result, error)
}

// Args holds the named arguments of one call.
type Args map[string]any

func (a Args) String(name string) string {
	return cast.ToString(a[name])
}

// Result is either a serialized found-result or guidance text for a soft failure.
type Result struct {
	CallID    string `json:"call_id"`
	Operation string `json:"operation"`
	Text      string `json:"result"`
	Guidance  bool   `json:"guidance"`
}

func found(v any) (Result, error) {
	b, err := encodeJSON(v)
	if err != nil {
		return Result{}, fmt.Errorf("encode result: %w", err)
	}
	return Result{Text: string(b)}, nil
}

func guidance(format string, a ...any) (Result, error) {
	return Result{Text: fmt.Sprintf(format, a...), Guidance: true}, nil
}

type Dispatcher struct {
	store   *Store
	log     *zap.Logger
	metrics *kit.CallMetrics

	ops    []Operation
	byName map[string]int
}

type Option func(*Dispatcher)

func WithLogger(log *zap.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

func WithMetrics(m *kit.CallMetrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

func NewDispatcher(store *Store, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store: store,
		log:   zap.NewNop(),
		ops:   operations(),
	}
	for _, o := range opts {
		o(d)
	}
	if d.log == nil {
		d.log = zap.NewNop()
	}

	d.byName = make(map[string]int, len(d.ops))
	for i, op := range d.ops {
		d.byName[op.Name] = i
	}
	return d
}

func (d *Dispatcher) Store() *Store { return d.store }

// Operations lists the registered operations in their fixed order.
func (d *Dispatcher) Operations() []Operation {
	out := make([]Operation, len(d.ops))
	for i, op := range d.ops {
		op.Params = append([]Param(nil), op.Params...)
		out[i] = op
	}
	return out
}

func (d *Dispatcher) Names() []string {
	names := make([]string, len(d.ops))
	for i, op := range d.ops {
		names[i] = op.Name
	}
	return names
}

// Call runs one operation. Not-found and no-match outcomes are returned as a
// Result with Guidance set, never as an error. Errors are reserved for unknown
// operations and internal faults.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	i, ok := d.byName[name]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	op := d.ops[i]

	callID := uuid.NewString()
	start := time.Now()

	res, err := op.run(d.store, Args(args))
	elapsed := time.Since(start)

	if err != nil {
		d.metrics.Observe(op.Name, outcomeError, elapsed)
		d.log.Error("operation failed",
			zap.String("operation", op.Name),
			zap.String("call_id", callID),
			zap.Error(err),
		)
		return Result{}, err
	}

	outcome := outcomeOK
	if res.Guidance {
		outcome = outcomeGuidance
	}
	d.metrics.Observe(op.Name, outcome, elapsed)
	d.log.Debug("operation",
		zap.String("operation", op.Name),
		zap.String("call_id", callID),
		zap.String("outcome", outcome),
		zap.Duration("duration", elapsed),
	)

	res.CallID = callID
	res.Operation = op.Name
	return res, nil
}
