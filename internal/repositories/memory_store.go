package repositories

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"tsehay_admin/internal/models"
	"tsehay_admin/pkg/utils"
)

type storeAction int

const (
	actionListMenu storeAction = iota
	actionUpdateMenu
	actionAddMenu
	actionListTables
	actionUpdateTable
)

// storeCommand models every operation executed against the in-memory store.
type storeCommand struct {
	action    storeAction
	item      models.MenuItem
	tableID   string
	available bool
	reply     chan storeResult
}

// storeResult transfers either a record, a record list, or an error.
type storeResult struct {
	item   models.MenuItem
	items  []models.MenuItem
	tables []models.TableAvailability
	err    error
}

// MemoryStore is the mock data service. One goroutine owns the records and
// every call reaches it through the commands channel.
type MemoryStore struct {
	commands chan storeCommand
	closed   chan struct{}
	done     chan struct{}
	latency  time.Duration

	menu        []models.MenuItem
	tables      []models.TableAvailability
	menuCounter int64
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithLatency delays every call, imitating a remote service.
func WithLatency(d time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) { s.latency = d }
}

// WithMenu replaces the seeded menu.
func WithMenu(items []models.MenuItem) MemoryStoreOption {
	return func(s *MemoryStore) { s.menu = cloneMenu(items) }
}

// WithTables replaces the seeded tables.
func WithTables(tables []models.TableAvailability) MemoryStoreOption {
	return func(s *MemoryStore) { s.tables = cloneTables(tables) }
}

// NewMemoryStore creates a store seeded with the restaurant's default data
// and starts its goroutine. Call Close to stop it.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		commands: make(chan storeCommand, 32),
		closed:   make(chan struct{}),
		done:     make(chan struct{}),
		menu:     SeedMenuItems(),
		tables:   SeedTables(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.menuCounter = highestMenuID(s.menu)
	go s.loop()
	return s
}

// Close stops the store goroutine. Pending and later calls get ErrStoreClosed.
func (s *MemoryStore) Close() {
	select {
	case <-s.closed:
	default:
		close(s.closed)
	}
	<-s.done
}

func (s *MemoryStore) loop() {
	defer close(s.done)
	for {
		select {
		case cmd := <-s.commands:
			cmd.reply <- s.apply(cmd)
		case <-s.closed:
			return
		}
	}
}

func (s *MemoryStore) apply(cmd storeCommand) storeResult {
	switch cmd.action {
	case actionListMenu:
		return storeResult{items: cloneMenu(s.menu)}
	case actionUpdateMenu:
		for i := range s.menu {
			if s.menu[i].ID == cmd.item.ID {
				s.menu[i] = cmd.item
				return storeResult{item: cmd.item}
			}
		}
		return storeResult{err: fmt.Errorf("%w: menu item %s", ErrNotFound, cmd.item.ID)}
	case actionAddMenu:
		s.menuCounter++
		cmd.item.ID = "m" + strconv.FormatInt(s.menuCounter, 10)
		s.menu = append(s.menu, cmd.item)
		return storeResult{item: cmd.item}
	case actionListTables:
		return storeResult{tables: cloneTables(s.tables)}
	case actionUpdateTable:
		for i := range s.tables {
			if s.tables[i].ID == cmd.tableID {
				s.tables[i].IsAvailable = cmd.available
				return storeResult{}
			}
		}
		return storeResult{err: fmt.Errorf("%w: table %s", ErrNotFound, cmd.tableID)}
	default:
		return storeResult{err: fmt.Errorf("unknown store action %d", cmd.action)}
	}
}

// do waits out the configured latency and hands cmd to the store goroutine.
func (s *MemoryStore) do(ctx context.Context, cmd storeCommand) (storeResult, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return storeResult{}, ctx.Err()
		}
	}

	cmd.reply = make(chan storeResult, 1)
	select {
	case s.commands <- cmd:
	case <-s.closed:
		return storeResult{}, ErrStoreClosed
	case <-ctx.Done():
		return storeResult{}, ctx.Err()
	}

	select {
	case res := <-cmd.reply:
		return res, res.err
	case <-s.closed:
		return storeResult{}, ErrStoreClosed
	case <-ctx.Done():
		return storeResult{}, ctx.Err()
	}
}

// GetMenuItems returns every menu item in insertion order.
func (s *MemoryStore) GetMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	res, err := s.do(ctx, storeCommand{action: actionListMenu})
	if err != nil {
		return nil, err
	}
	return res.items, nil
}

// UpdateMenuItem replaces the stored item with the same ID.
func (s *MemoryStore) UpdateMenuItem(ctx context.Context, item models.MenuItem) error {
	if err := validatePrice(item.Price); err != nil {
		return err
	}
	_, err := s.do(ctx, storeCommand{action: actionUpdateMenu, item: item})
	if err != nil {
		utils.LogDebug("mock data service rejected menu update", map[string]interface{}{"item_id": item.ID, "error": err.Error()})
	}
	return err
}

// AddMenuItem stores the draft and returns it with its assigned ID.
func (s *MemoryStore) AddMenuItem(ctx context.Context, draft models.MenuItemDraft) (*models.MenuItem, error) {
	if err := validatePrice(draft.Price); err != nil {
		return nil, err
	}
	res, err := s.do(ctx, storeCommand{action: actionAddMenu, item: draft.WithID("")})
	if err != nil {
		return nil, err
	}
	item := res.item
	return &item, nil
}

// GetAvailableTables returns the tables as of isoTimestamp.
func (s *MemoryStore) GetAvailableTables(ctx context.Context, isoTimestamp string) ([]models.TableAvailability, error) {
	if _, err := time.Parse(time.RFC3339, isoTimestamp); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimestamp, isoTimestamp)
	}
	res, err := s.do(ctx, storeCommand{action: actionListTables})
	if err != nil {
		return nil, err
	}
	return res.tables, nil
}

// UpdateTableAvailability sets the availability flag of one table.
func (s *MemoryStore) UpdateTableAvailability(ctx context.Context, tableID string, available bool) error {
	_, err := s.do(ctx, storeCommand{action: actionUpdateTable, tableID: tableID, available: available})
	return err
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return fmt.Errorf("%w: price %v", ErrInvalidRecord, price)
	}
	return nil
}

// highestMenuID finds the largest numeric suffix among "m<n>" IDs so new IDs never collide.
func highestMenuID(items []models.MenuItem) int64 {
	var highest int64
	for _, item := range items {
		if len(item.ID) < 2 || item.ID[0] != 'm' {
			continue
		}
		n, err := strconv.ParseInt(item.ID[1:], 10, 64)
		if err == nil && n > highest {
			highest = n
		}
	}
	return highest
}

func cloneMenu(items []models.MenuItem) []models.MenuItem {
	out := make([]models.MenuItem, len(items))
	copy(out, items)
	return out
}

func cloneTables(tables []models.TableAvailability) []models.TableAvailability {
	out := make([]models.TableAvailability, len(tables))
	copy(out, tables)
	return out
}
