package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	pumlerr "github.com/matzehuels/pumlgen/pkg/errors"
	"github.com/matzehuels/pumlgen/pkg/model"
	"github.com/matzehuels/pumlgen/pkg/observability"
	"github.com/matzehuels/pumlgen/pkg/sink"
)

const shopModel = `
top_level_namespace: Acme
classes:
  - namespace: Acme.Shop.Orders
    name: Order
    associations:
      - {name: customer, type: Acme.Shop.Customers.Customer}
      - {name: status, type: Acme.Shop.Orders.Status}
  - namespace: Acme.Shop.Customers
    name: Customer
  - namespace: Acme
    name: Settings
enumerations:
  - namespace: Acme.Shop.Orders
    name: Status
    values: [Open, Paid]
`

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Input: "model.yaml"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Workers != DefaultWorkers() {
		t.Errorf("Workers = %d, want %d", opts.Workers, DefaultWorkers())
	}
	if opts.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", opts.Output, DefaultOutput)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}

	// Idempotent: a validated struct is not re-checked.
	opts.Workers = -1
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second ValidateAndSetDefaults() error = %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code pumlerr.Code
	}{
		{"missing input", Options{}, pumlerr.ErrCodeInvalidInput},
		{"bad top level", Options{Input: "m.yaml", TopLevelNamespace: "A/B"}, pumlerr.ErrCodeInvalidInput},
		{"bad hide", Options{Input: "m.yaml", Hide: []string{"A..B"}}, pumlerr.ErrCodeInvalidInput},
		{"negative workers", Options{Input: "m.yaml", Workers: -2}, pumlerr.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("ValidateAndSetDefaults() error = nil")
			}
			if !pumlerr.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() code = %q, want %q", pumlerr.GetCode(err), tt.code)
			}
		})
	}
}

func TestWorkersCapped(t *testing.T) {
	opts := Options{Input: "m.yaml", Workers: MaxWorkers * 2}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Workers != MaxWorkers {
		t.Errorf("Workers = %d, want %d", opts.Workers, MaxWorkers)
	}
}

func TestGenerateMemory(t *testing.T) {
	p := model.NewProject("")
	order, _ := p.AddClass(model.NewClass("Shop.Orders", "Order"))
	_ = order.AddAssociation(model.NewAssociation("customer", model.NewTypeSymbol("Customer", "Shop.Customers"), false, false))
	_, _ = p.AddClass(model.NewClass("Shop.Customers", "Customer"))
	_ = p.AddEnumeration(model.NewEnumeration("", "Color", "Red"))

	out := sink.NewMemory()
	res, err := NewRunner(nil).Generate(context.Background(), p, out, Options{Workers: 2})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := []string{
		"Color.puml",
		"Shop/Customers/Customer.puml",
		"Shop/Customers/_.puml",
		"Shop/Orders/Order.puml",
		"Shop/Orders/_.puml",
		"Shop/_.puml",
		"_.puml",
		"_namespaces.puml",
	}
	if !slices.Equal(res.Files, want) {
		t.Errorf("Files = %v, want %v", res.Files, want)
	}
	if !slices.Equal(out.Paths(), want) {
		t.Errorf("sink paths = %v, want %v", out.Paths(), want)
	}
	if res.Stats.TypeFiles != 3 || res.Stats.Manifests != 4 {
		t.Errorf("Stats = %+v, want 3 type files and 4 manifests", res.Stats)
	}
	if res.Link.Resolved != 1 {
		t.Errorf("Link.Resolved = %d, want 1", res.Link.Resolved)
	}
	if !res.ConfigUpdated {
		t.Error("ConfigUpdated = false on first run")
	}

	cfg, _ := out.ReadFile(context.Background(), "_namespaces.puml")
	for _, id := range []string{"Shop", "Shop.Customers", "Shop.Orders"} {
		if !strings.Contains(string(cfg), "@startuml(id="+id+")") {
			t.Errorf("namespace configuration missing section %s", id)
		}
	}

	root, _ := out.ReadFile(context.Background(), "_.puml")
	if !strings.Contains(string(root), "!includesub Shop/_.puml!FILES") ||
		!strings.Contains(string(root), "!includesub Color.puml!TYPE") {
		t.Errorf("root manifest incomplete:\n%s", root)
	}
}

func TestExecuteDir(t *testing.T) {
	ctx := context.Background()
	input := writeModel(t, shopModel)
	output := filepath.Join(t.TempDir(), "uml")
	runner := NewRunner(nil)

	res, err := runner.Execute(ctx, Options{Input: input, Output: output})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Stats.Classes != 3 || res.Stats.Enumerations != 1 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	for _, f := range []string{"Shop/Orders/Order.puml", "Settings.puml", "_.puml", "_namespaces.puml"} {
		if _, err := os.Stat(filepath.Join(output, filepath.FromSlash(f))); err != nil {
			t.Errorf("missing %s: %v", f, err)
		}
	}

	// A second run without clear refuses to touch the output.
	_, err = runner.Execute(ctx, Options{Input: input, Output: output})
	if !pumlerr.Is(err, pumlerr.ErrCodeOutputNotEmpty) {
		t.Fatalf("Execute() error = %v, want OUTPUT_NOT_EMPTY", err)
	}
	if !strings.Contains(pumlerr.UserMessage(err), output) {
		t.Errorf("UserMessage() = %q, want it to name %s", pumlerr.UserMessage(err), output)
	}

	// Hand edits to the namespace configuration survive a clearing run.
	cfgPath := filepath.Join(output, "_namespaces.puml")
	edited := []byte("@startuml\nskinparam shadowing false\n@enduml\n\n@startuml(id=Shop)\n@enduml\n\n@startuml(id=Shop.Customers)\n@enduml\n\n@startuml(id=Shop.Orders)\n@enduml\n")
	if err := os.WriteFile(cfgPath, edited, 0644); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(output, "Stale.puml")
	if err := os.WriteFile(stale, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err = runner.Execute(ctx, Options{Input: input, Output: output, Clear: true})
	if err != nil {
		t.Fatalf("Execute(clear) error = %v", err)
	}
	if res.ConfigUpdated {
		t.Error("ConfigUpdated = true, want false when all sections exist")
	}
	got, _ := os.ReadFile(cfgPath)
	if string(got) != string(edited) {
		t.Errorf("namespace configuration rewritten:\n%s", got)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale file survived clear: %v", err)
	}
}

func TestGenerateRejectsReservedPaths(t *testing.T) {
	tests := []struct {
		name string
		add  func(p *model.Project) error
		want string
	}{
		{
			name: "class named like a folder manifest",
			add: func(p *model.Project) error {
				_, err := p.AddClass(model.NewClass("A", "_"))
				return err
			},
			want: "A._",
		},
		{
			name: "root class named like the namespace configuration",
			add: func(p *model.Project) error {
				_, err := p.AddClass(model.NewClass("", "_namespaces"))
				return err
			},
			want: "_namespaces",
		},
		{
			name: "root enumeration named like the root manifest",
			add: func(p *model.Project) error {
				return p.AddEnumeration(model.NewEnumeration("", "_", "X"))
			},
			want: "_",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.NewProject("")
			if _, err := p.AddClass(model.NewClass("A", "Order")); err != nil {
				t.Fatal(err)
			}
			if err := tt.add(p); err != nil {
				t.Fatal(err)
			}

			out := sink.NewMemory()
			_, err := NewRunner(nil).Generate(context.Background(), p, out, Options{})
			if !pumlerr.Is(err, pumlerr.ErrCodeInvalidModel) {
				t.Fatalf("Generate() error = %v, want INVALID_MODEL", err)
			}
			if !strings.Contains(pumlerr.UserMessage(err), tt.want) {
				t.Errorf("UserMessage() = %q, want it to name %s", pumlerr.UserMessage(err), tt.want)
			}
			if out.Len() != 0 {
				t.Errorf("Generate() wrote %v before failing", out.Paths())
			}
		})
	}
}

func TestPlanningFailureKeepsOutput(t *testing.T) {
	input := writeModel(t, "classes:\n  - {namespace: A, name: _}\n")
	output := t.TempDir()
	previous := filepath.Join(output, "Previous.puml")
	if err := os.WriteFile(previous, []byte("@startuml\n@enduml\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewRunner(nil).Execute(context.Background(), Options{Input: input, Output: output, Clear: true})
	if !pumlerr.Is(err, pumlerr.ErrCodeInvalidModel) {
		t.Fatalf("Execute() error = %v, want INVALID_MODEL", err)
	}
	if _, err := os.Stat(previous); err != nil {
		t.Errorf("clearing run removed previous output after failing to plan: %v", err)
	}
}

func TestExecuteDryRun(t *testing.T) {
	input := writeModel(t, shopModel)
	output := filepath.Join(t.TempDir(), "never")

	res, err := NewRunner(nil).Execute(context.Background(), Options{Input: input, Output: output, DryRun: true})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(res.Files) == 0 {
		t.Error("dry run produced no files")
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Errorf("dry run touched %s: %v", output, err)
	}
}

func TestExecuteErrors(t *testing.T) {
	dup := `
classes:
  - {namespace: N, name: A}
  - {namespace: N, name: A}
`
	tests := []struct {
		name  string
		input string
		code  pumlerr.Code
	}{
		{"duplicate", writeModel(t, dup), pumlerr.ErrCodeDuplicateEntity},
		{"missing file", filepath.Join(t.TempDir(), "missing.yaml"), pumlerr.ErrCodeFileNotFound},
		{"malformed", writeModel(t, "classes: [unterminated"), pumlerr.ErrCodeInvalidModel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(nil).Execute(context.Background(), Options{Input: tt.input, DryRun: true})
			if !pumlerr.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	mu      sync.Mutex
	reads   int
	links   int
	renders int
}

func (h *countingHooks) OnReadComplete(context.Context, string, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reads++
}

func (h *countingHooks) OnLinkComplete(context.Context, int, int, time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.links++
}

func (h *countingHooks) OnRenderComplete(context.Context, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders++
}

func TestHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	input := writeModel(t, shopModel)
	if _, err := NewRunner(nil).Execute(context.Background(), Options{Input: input, DryRun: true}); err != nil {
		t.Fatal(err)
	}
	if hooks.reads != 1 || hooks.links != 1 || hooks.renders != 1 {
		t.Errorf("hook calls = read %d link %d render %d, want 1 each", hooks.reads, hooks.links, hooks.renders)
	}
}
