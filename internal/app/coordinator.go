package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vrcorp/videohive/internal/domain"
)

// Coordinator reacts to role changes and runs the one-time guest→user merge
// sequence when an anonymous session is promoted. It is thin: the containers
// do the real work, the coordinator only orders it.
type Coordinator struct {
	roles     *RoleStore
	identity  *Identity
	cart      *Cart
	wishlist  *Wishlist
	validator domain.TransitionValidator
	logger    *slog.Logger

	mu     sync.Mutex
	state  domain.SessionState
	cancel func()
}

// NewCoordinator creates the promotion coordinator. Call Start to bind it
// to the role store's change channel.
func NewCoordinator(roles *RoleStore, identity *Identity, cart *Cart, wishlist *Wishlist, validator domain.TransitionValidator, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		roles:     roles,
		identity:  identity,
		cart:      cart,
		wishlist:  wishlist,
		validator: validator,
		logger:    logger,
		state:     domain.SessionAnonymous,
	}
}

// Start derives the initial session state from the persisted role and
// subscribes to role changes. A session restored as authenticated starts
// identified, so a redundant merge never fires on process restart.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	if c.roles.Get(ctx).IsAuthenticated() {
		c.state = domain.SessionIdentified
	} else {
		c.state = domain.SessionAnonymous
	}
	c.mu.Unlock()

	c.cancel = c.roles.Subscribe(c.handle)
}

// Stop unsubscribes from the change channel.
func (c *Coordinator) Stop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// State returns the current session state.
func (c *Coordinator) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) handle(ctx context.Context, change domain.RoleChange) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !change.Role.IsAuthenticated() {
		// Re-entering anonymous starts a fresh identity later; there is
		// no reverse merge.
		c.state = domain.SessionAnonymous
		return
	}
	if c.state == domain.SessionIdentified {
		return
	}

	next, err := c.validator.Apply(ctx, c.state, domain.EventLogin)
	if err != nil {
		c.logger.Error("session promotion rejected", "state", c.state, "error", err)
		return
	}

	// Order matters: both transfers before either merge, guest id cleared
	// only after everything landed.
	if err := c.cart.TransferGuestToUser(ctx); err != nil {
		c.logger.Error("cart transfer failed", "error", err)
	}
	if err := c.wishlist.TransferGuestToUser(ctx); err != nil {
		c.logger.Error("wishlist transfer failed", "error", err)
	}
	if err := c.cart.MergeUser(ctx); err != nil {
		c.logger.Error("cart merge failed", "error", err)
	}
	if err := c.wishlist.MergeUser(ctx); err != nil {
		c.logger.Error("wishlist merge failed", "error", err)
	}
	c.identity.Clear(ctx)

	c.state = next
	c.logger.Info("session promoted", "event", domain.EventLogin, "role", change.Role)
}
