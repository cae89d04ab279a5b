package interpreter

import (
	"context"
	"strings"
	"testing"

	"github.com/hyperjump/tansu/internal/models"
	"github.com/hyperjump/tansu/internal/storage"
)

// fakeInventory is an in-memory Inventory for driving the interpreter
// without a database or search index.
type fakeInventory struct {
	nextID int64
	shirts map[int64]*models.Shirt
	order  []int64

	failWith error
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{nextID: 1, shirts: make(map[int64]*models.Shirt)}
}

func (f *fakeInventory) CreateShirt(_ context.Context, input models.ShirtInput) (*models.Shirt, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	name := input.Name
	if name == "" {
		name = input.Color + " " + input.Size
	}
	s := &models.Shirt{
		ID:     f.nextID,
		Name:   name,
		Color:  input.Color,
		Size:   input.Size,
		Status: input.Status,
	}
	f.shirts[s.ID] = s
	f.order = append(f.order, s.ID)
	f.nextID++
	return s, nil
}

func (f *fakeInventory) GetShirt(_ context.Context, id int64) (*models.Shirt, error) {
	s, ok := f.shirts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s, nil
}

func (f *fakeInventory) ListShirts(_ context.Context) ([]*models.Shirt, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]*models.Shirt, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.shirts[id])
	}
	return out, nil
}

func (f *fakeInventory) FindByReference(_ context.Context, ref string) ([]*models.Shirt, error) {
	ref = strings.ToLower(ref)
	var matches []*models.Shirt
	for _, id := range f.order {
		s := f.shirts[id]
		if strings.ToLower(s.Name) == ref {
			matches = append(matches, s)
		}
	}
	if len(matches) > 0 {
		return matches, nil
	}
	fields := strings.Fields(ref)
	if len(fields) < 2 {
		return nil, nil
	}
	for _, id := range f.order {
		s := f.shirts[id]
		if strings.EqualFold(s.Color, fields[0]) && strings.EqualFold(s.Size, fields[1]) {
			matches = append(matches, s)
		}
	}
	return matches, nil
}

func (f *fakeInventory) UpdateStatus(_ context.Context, id int64, status string) (*models.Shirt, error) {
	s, ok := f.shirts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	s.Status = status
	return s, nil
}

func (f *fakeInventory) DeleteShirt(_ context.Context, id int64) error {
	if _, ok := f.shirts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.shirts, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeInventory) SearchShirts(_ context.Context, query string, limit int) ([]*models.Shirt, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []*models.Shirt
	for _, id := range f.order {
		s := f.shirts[id]
		hay := strings.ToLower(s.Name + " " + s.Color + " " + s.Size + " " + s.Status)
		for _, term := range strings.Fields(strings.ToLower(query)) {
			if strings.Contains(hay, term) {
				out = append(out, s)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeInventory) Statistics(_ context.Context) (*models.Statistics, error) {
	stats := &models.Statistics{
		ByStatus: make(map[string]int),
		ByColor:  make(map[string]int),
		BySize:   make(map[string]int),
	}
	for _, st := range models.Statuses {
		stats.ByStatus[st] = 0
	}
	for _, id := range f.order {
		s := f.shirts[id]
		stats.Total++
		stats.ByStatus[s.Status]++
		stats.ByColor[strings.ToLower(s.Color)]++
		stats.BySize[strings.ToLower(s.Size)]++
		if s.HasImage() {
			stats.WithImages++
		}
	}
	return stats, nil
}

func newTestInterpreter(t *testing.T, inv Inventory) *Interpreter {
	t.Helper()
	knowledge := NewKnowledgeIndex(writeKnowledge(t, knowledgeFixture), nil)
	return New(inv, knowledge, Options{}, nil)
}

func TestInterpreter_Conversation(t *testing.T) {
	inv := newFakeInventory()
	in := newTestInterpreter(t, inv)
	ctx := context.Background()

	steps := []struct {
		message string
		want    []string
	}{
		{"add red large shirt to drawer", []string{"✅", "red large", "In Drawer", "#1"}},
		{"add a blue small shirt", []string{"✅", "blue small", "In Drawer", "#2"}},
		{"find red shirts", []string{"🔍", "red large"}},
		{"how many shirts do i have", []string{"📊", "2 shirts", "By color: blue: 1, red: 1", "By size: large: 1, small: 1"}},
		{"move red large to laundry", []string{"✅", "red large", "In Drawer", "Laundry"}},
		{"move red large to laundry", []string{"ℹ️", "already in Laundry"}},
		{"show inventory", []string{"📦", "red large", "blue small", "- None -"}},
		{"delete blue small", []string{"🗑️", "blue small"}},
		{"how do i add a shirt", []string{"💡"}},
		{"help", []string{"👕"}},
		{"exit", []string{"👋"}},
	}

	for _, step := range steps {
		got := in.Process(ctx, step.message)
		if got == "" {
			t.Fatalf("Process(%q) returned an empty response", step.message)
		}
		for _, want := range step.want {
			if !strings.Contains(got, want) {
				t.Errorf("Process(%q) = %q, missing %q", step.message, got, want)
			}
		}
	}
}

func TestInterpreter_ErrorResponses(t *testing.T) {
	ctx := context.Background()

	t.Run("missing color", func(t *testing.T) {
		in := newTestInterpreter(t, newFakeInventory())
		got := in.Process(ctx, "add a large shirt")
		if !strings.Contains(got, "❌") || !strings.Contains(got, "color") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		inv := newFakeInventory()
		mustAdd(t, inv, "blue", "large", "In Drawer")
		in := newTestInterpreter(t, inv)
		got := in.Process(ctx, "move blue large to narnia")
		if !strings.Contains(got, "❌") || !strings.Contains(got, "narnia") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("unknown reference", func(t *testing.T) {
		in := newTestInterpreter(t, newFakeInventory())
		got := in.Process(ctx, "delete green medium")
		if !strings.Contains(got, "❌") || !strings.Contains(got, "green medium") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("ambiguous reference lists candidates", func(t *testing.T) {
		inv := newFakeInventory()
		mustAdd(t, inv, "blue", "large", "In Drawer")
		mustAdd(t, inv, "blue", "large", "Worn")
		in := newTestInterpreter(t, inv)
		got := in.Process(ctx, "move blue large to laundry")
		if !strings.Contains(got, "ℹ️") || !strings.Contains(got, "#1") || !strings.Contains(got, "#2") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("ambiguous delete lists candidates and removes nothing", func(t *testing.T) {
		inv := newFakeInventory()
		for _, size := range []string{"large", "small"} {
			if _, err := inv.CreateShirt(ctx, models.ShirtInput{
				Name: "blue tee", Color: "blue", Size: size, Status: "In Drawer",
			}); err != nil {
				t.Fatal(err)
			}
		}
		in := newTestInterpreter(t, inv)
		got := in.Process(ctx, "delete blue tee")
		if !strings.Contains(got, "ℹ️") || !strings.Contains(got, "#1") || !strings.Contains(got, "#2") {
			t.Errorf("got %q", got)
		}
		if len(inv.shirts) != 2 {
			t.Errorf("ambiguous delete removed a record, %d left", len(inv.shirts))
		}
	})

	t.Run("collaborator failure stays conversational", func(t *testing.T) {
		inv := newFakeInventory()
		inv.failWith = context.DeadlineExceeded
		in := newTestInterpreter(t, inv)
		got := in.Process(ctx, "show inventory")
		if !strings.Contains(got, "❌") {
			t.Errorf("got %q", got)
		}
		if strings.Contains(got, "deadline") {
			t.Errorf("internal error leaked to the user: %q", got)
		}
	})
}

func TestInterpreter_FallbackResponses(t *testing.T) {
	in := newTestInterpreter(t, newFakeInventory())
	ctx := context.Background()

	t.Run("empty message yields help", func(t *testing.T) {
		if got := in.Process(ctx, "   "); got != helpText {
			t.Errorf("got %q", got)
		}
	})

	t.Run("gibberish yields the unknown hint", func(t *testing.T) {
		if got := in.Process(ctx, "xyzzy blorp"); got != unknownText {
			t.Errorf("got %q", got)
		}
	})

	t.Run("question below action threshold hits knowledge", func(t *testing.T) {
		got := in.Process(ctx, "statuses shirts can be in")
		if !strings.Contains(got, "💡") {
			t.Errorf("got %q", got)
		}
	})
}

func TestInterpreter_EmptyInventoryViews(t *testing.T) {
	in := newTestInterpreter(t, newFakeInventory())
	ctx := context.Background()

	if got := in.Process(ctx, "show inventory"); !strings.Contains(got, "empty") {
		t.Errorf("got %q", got)
	}
	if got := in.Process(ctx, "find blue shirts"); !strings.Contains(got, "No shirts matching") {
		t.Errorf("got %q", got)
	}
	if got := in.Process(ctx, "how many shirts do i have"); !strings.Contains(got, "no shirts") {
		t.Errorf("got %q", got)
	}
}

func mustAdd(t *testing.T, inv *fakeInventory, color, size, status string) *models.Shirt {
	t.Helper()
	s, err := inv.CreateShirt(context.Background(), models.ShirtInput{
		Color: color, Size: size, Status: status,
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}
