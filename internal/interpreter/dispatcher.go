package interpreter

import (
	"context"
	"errors"
	"strconv"

	"github.com/hyperjump/tansu/internal/models"
	"github.com/hyperjump/tansu/internal/storage"
)

// Inventory is the collaborator the dispatcher drives. The inventory
// service implements it over the record store and the search index; tests
// substitute a fake.
type Inventory interface {
	CreateShirt(ctx context.Context, input models.ShirtInput) (*models.Shirt, error)
	GetShirt(ctx context.Context, id int64) (*models.Shirt, error)
	ListShirts(ctx context.Context) ([]*models.Shirt, error)
	FindByReference(ctx context.Context, ref string) ([]*models.Shirt, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Shirt, error)
	DeleteShirt(ctx context.Context, id int64) error
	SearchShirts(ctx context.Context, query string, limit int) ([]*models.Shirt, error)
	Statistics(ctx context.Context) (*models.Statistics, error)
}

// searchLimit caps the number of hits a conversational search reports.
const searchLimit = 25

// Outcome is the dispatcher's successful result for one command. Only the
// fields relevant to the intent are populated.
type Outcome struct {
	Intent Intent

	// Created/Moved/Deleted record.
	Shirt *models.Shirt
	// PreviousStatus is the status before a move; SameStatus is set when
	// the record was already in the requested status and nothing changed.
	PreviousStatus string
	SameStatus     bool

	// Search query and hits.
	Query   string
	Results []*models.Shirt

	// Full listing for the view intent.
	Shirts []*models.Shirt

	// Aggregates for the stats intent.
	Stats *models.Statistics
}

// Dispatcher executes classified commands against the inventory.
type Dispatcher struct {
	inventory Inventory
}

// NewDispatcher returns a dispatcher bound to the given inventory.
func NewDispatcher(inventory Inventory) *Dispatcher {
	return &Dispatcher{inventory: inventory}
}

// Dispatch runs one command. Contract failures (missing slots, unresolvable
// references, invalid statuses) and collaborator failures all come back as
// *CommandError so the formatter can render them uniformly.
func (d *Dispatcher) Dispatch(ctx context.Context, intent Intent, slots EntitySlots) (*Outcome, error) {
	switch intent {
	case IntentAdd:
		return d.addShirt(ctx, slots)
	case IntentMove:
		return d.moveShirt(ctx, slots)
	case IntentDelete:
		return d.deleteShirt(ctx, slots)
	case IntentSearch:
		return d.searchShirts(ctx, slots)
	case IntentView:
		return d.viewShirts(ctx)
	case IntentStats:
		return d.stats(ctx)
	}
	return nil, collaboratorFailure(errors.New("intent is not dispatchable: " + string(intent)))
}

// addShirt requires color and size; the status defaults when the message
// named none. A "to <something unrecognizable>" clause is an error rather
// than a silent default.
func (d *Dispatcher) addShirt(ctx context.Context, slots EntitySlots) (*Outcome, error) {
	if slots.Color == "" {
		return nil, missingField("color")
	}
	if slots.Size == "" {
		return nil, missingField("size")
	}
	if slots.StatusRaw != "" {
		return nil, invalidStatus(slots.StatusRaw)
	}
	status := models.DefaultStatus()
	if slots.HasStatus {
		status = slots.Status
	}

	shirt, err := d.inventory.CreateShirt(ctx, models.ShirtInput{
		Color:  slots.Color,
		Size:   slots.Size,
		Status: status,
	})
	if err != nil {
		return nil, collaboratorFailure(err)
	}
	return &Outcome{Intent: IntentAdd, Shirt: shirt}, nil
}

func (d *Dispatcher) moveShirt(ctx context.Context, slots EntitySlots) (*Outcome, error) {
	if !slots.HasStatus {
		if slots.StatusRaw != "" {
			return nil, invalidStatus(slots.StatusRaw)
		}
		return nil, missingField("status")
	}
	shirt, err := d.resolveReference(ctx, slots)
	if err != nil {
		return nil, err
	}

	previous := shirt.Status
	if previous == slots.Status {
		return &Outcome{
			Intent:         IntentMove,
			Shirt:          shirt,
			PreviousStatus: previous,
			SameStatus:     true,
		}, nil
	}
	updated, err := d.inventory.UpdateStatus(ctx, shirt.ID, slots.Status)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound(slots.Reference)
		}
		return nil, collaboratorFailure(err)
	}
	return &Outcome{
		Intent:         IntentMove,
		Shirt:          updated,
		PreviousStatus: previous,
	}, nil
}

func (d *Dispatcher) deleteShirt(ctx context.Context, slots EntitySlots) (*Outcome, error) {
	shirt, err := d.resolveReference(ctx, slots)
	if err != nil {
		return nil, err
	}
	if err := d.inventory.DeleteShirt(ctx, shirt.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound(slots.Reference)
		}
		return nil, collaboratorFailure(err)
	}
	return &Outcome{Intent: IntentDelete, Shirt: shirt}, nil
}

func (d *Dispatcher) searchShirts(ctx context.Context, slots EntitySlots) (*Outcome, error) {
	if slots.Query == "" {
		return nil, missingField("query")
	}
	results, err := d.inventory.SearchShirts(ctx, slots.Query, searchLimit)
	if err != nil {
		return nil, collaboratorFailure(err)
	}
	return &Outcome{Intent: IntentSearch, Query: slots.Query, Results: results}, nil
}

func (d *Dispatcher) viewShirts(ctx context.Context) (*Outcome, error) {
	shirts, err := d.inventory.ListShirts(ctx)
	if err != nil {
		return nil, collaboratorFailure(err)
	}
	return &Outcome{Intent: IntentView, Shirts: shirts}, nil
}

func (d *Dispatcher) stats(ctx context.Context) (*Outcome, error) {
	stats, err := d.inventory.Statistics(ctx)
	if err != nil {
		return nil, collaboratorFailure(err)
	}
	return &Outcome{Intent: IntentStats, Stats: stats}, nil
}

// resolveReference turns the extracted reference into exactly one record.
// A numeric id is looked up directly; a text reference must match exactly
// one record or the caller gets a not-found/ambiguous error with the
// candidates attached.
func (d *Dispatcher) resolveReference(ctx context.Context, slots EntitySlots) (*models.Shirt, error) {
	if slots.HasRefID {
		shirt, err := d.inventory.GetShirt(ctx, slots.RefID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, notFound(refText(slots))
			}
			return nil, collaboratorFailure(err)
		}
		return shirt, nil
	}

	if slots.Reference == "" {
		return nil, missingField("reference")
	}
	matches, err := d.inventory.FindByReference(ctx, slots.Reference)
	if err != nil {
		return nil, collaboratorFailure(err)
	}
	switch len(matches) {
	case 0:
		return nil, notFound(slots.Reference)
	case 1:
		return matches[0], nil
	}
	return nil, ambiguous(slots.Reference, matches)
}

func refText(slots EntitySlots) string {
	if slots.Reference != "" {
		return slots.Reference
	}
	return "#" + strconv.FormatInt(slots.RefID, 10)
}
