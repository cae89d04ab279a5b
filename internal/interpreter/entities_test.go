package interpreter

import "testing"

func extract(t *testing.T, message string, intent Intent) EntitySlots {
	t.Helper()
	return ExtractEntities(Normalize(message), intent)
}

func TestExtractEntities_Add(t *testing.T) {
	t.Run("color size and status", func(t *testing.T) {
		slots := extract(t, "add red large shirt to drawer", IntentAdd)
		if slots.Color != "red" || slots.Size != "large" {
			t.Errorf("got color=%q size=%q, want red/large", slots.Color, slots.Size)
		}
		if !slots.HasStatus || slots.Status != "In Drawer" {
			t.Errorf("got status=%q (has=%v), want In Drawer", slots.Status, slots.HasStatus)
		}
	})

	t.Run("status defaults to absent", func(t *testing.T) {
		slots := extract(t, "add a blue small shirt", IntentAdd)
		if slots.HasStatus || slots.StatusRaw != "" {
			t.Errorf("expected no status, got %q raw=%q", slots.Status, slots.StatusRaw)
		}
	})

	t.Run("misspelled status still resolves", func(t *testing.T) {
		slots := extract(t, "add blue small shirt to laundri", IntentAdd)
		if !slots.HasStatus || slots.Status != "Laundry" {
			t.Errorf("got status=%q (has=%v), want Laundry", slots.Status, slots.HasStatus)
		}
	})

	t.Run("unknown status is kept raw", func(t *testing.T) {
		slots := extract(t, "add blue small shirt to narnia", IntentAdd)
		if slots.HasStatus {
			t.Errorf("unexpected status %q", slots.Status)
		}
		if slots.StatusRaw != "narnia" {
			t.Errorf("StatusRaw = %q, want narnia", slots.StatusRaw)
		}
	})

	t.Run("two word status", func(t *testing.T) {
		slots := extract(t, "add a green medium shirt to in drawer", IntentAdd)
		if !slots.HasStatus || slots.Status != "In Drawer" {
			t.Errorf("got status=%q (has=%v), want In Drawer", slots.Status, slots.HasStatus)
		}
	})

	t.Run("compound size", func(t *testing.T) {
		slots := extract(t, "add a black x-large shirt", IntentAdd)
		if slots.Size != "x-large" {
			t.Errorf("size = %q, want x-large", slots.Size)
		}
	})
}

func TestExtractEntities_Move(t *testing.T) {
	t.Run("text reference", func(t *testing.T) {
		slots := extract(t, "move blue large to laundry", IntentMove)
		if slots.Reference != "blue large" {
			t.Errorf("Reference = %q, want %q", slots.Reference, "blue large")
		}
		if !slots.HasStatus || slots.Status != "Laundry" {
			t.Errorf("got status=%q (has=%v), want Laundry", slots.Status, slots.HasStatus)
		}
	})

	t.Run("numeric reference", func(t *testing.T) {
		slots := extract(t, "move 3 to worn", IntentMove)
		if !slots.HasRefID || slots.RefID != 3 {
			t.Errorf("got RefID=%d (has=%v), want 3", slots.RefID, slots.HasRefID)
		}
		if slots.Status != "Worn" {
			t.Errorf("Status = %q, want Worn", slots.Status)
		}
	})

	t.Run("filler never joins the reference", func(t *testing.T) {
		slots := extract(t, "please move my blue large shirt to laundry", IntentMove)
		if slots.Reference != "blue large" {
			t.Errorf("Reference = %q, want %q", slots.Reference, "blue large")
		}
	})

	t.Run("missing destination", func(t *testing.T) {
		slots := extract(t, "move blue large", IntentMove)
		if slots.HasStatus || slots.StatusRaw != "" {
			t.Errorf("expected no status, got %q raw=%q", slots.Status, slots.StatusRaw)
		}
	})
}

func TestExtractEntities_Delete(t *testing.T) {
	slots := extract(t, "delete blue tee", IntentDelete)
	if slots.Reference != "blue tee" {
		t.Errorf("Reference = %q, want %q", slots.Reference, "blue tee")
	}
}

func TestExtractEntities_Search(t *testing.T) {
	t.Run("query drops intent and filler words", func(t *testing.T) {
		slots := extract(t, "find blue shirts", IntentSearch)
		if slots.Query != "blue" {
			t.Errorf("Query = %q, want %q", slots.Query, "blue")
		}
	})

	t.Run("multi word query", func(t *testing.T) {
		slots := extract(t, "look for red medium", IntentSearch)
		if slots.Query != "red medium" {
			t.Errorf("Query = %q, want %q", slots.Query, "red medium")
		}
	})
}

func TestExtractEntities_Empty(t *testing.T) {
	slots := ExtractEntities(nil, IntentAdd)
	if slots != (EntitySlots{}) {
		t.Errorf("expected zero slots, got %+v", slots)
	}
}
