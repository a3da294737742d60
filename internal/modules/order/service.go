package order

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wearlyshop/wearly-backend/internal/modules/cart"
	"github.com/wearlyshop/wearly-backend/internal/modules/notify"
)

// ValidationErrors maps checkout form fields to their error messages.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	return "invalid checkout form: " + strings.Join(fields, ", ")
}

// Service defines the order business logic.
type Service interface {
	// Checkout validates the form, snapshots the cart into a persisted
	// order, notifies staff best-effort and clears the cart on success.
	// A ValidationErrors return means field-level problems and no side
	// effects.
	Checkout(ctx context.Context, session *cart.Session, form CheckoutForm) (*Order, error)

	GetOrder(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context, status string) ([]*Order, error)
	ListUserOrders(ctx context.Context, userID int64) ([]*Order, error)

	// UpdateStatus moves an order forward through its lifecycle.
	// Cancellation is allowed from any non-terminal state.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)
	UpdateNotes(ctx context.Context, id string, notes string) (*Order, error)

	// SalesStats aggregates orders created in [from, to).
	SalesStats(ctx context.Context, from, to time.Time) (*Stats, error)
}

type service struct {
	repo     Repository
	notifier notify.Notifier
	now      func() time.Time
}

// NewService creates a new order service.
func NewService(repo Repository, notifier notify.Notifier) Service {
	return &service{repo: repo, notifier: notifier, now: time.Now}
}

// phonePattern accepts an optional leading +, then digits, spaces, hyphens
// and parentheses, at least ten characters of it.
var phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{10,}$`)

// validTransitions is the forward-only order status state machine.
var validTransitions = map[Status][]Status{
	StatusNew:       {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

func validateForm(form CheckoutForm) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(form.CustomerName) == "" {
		errs["customer_name"] = "name is required"
	}
	phone := strings.TrimSpace(form.CustomerPhone)
	if phone == "" {
		errs["customer_phone"] = "phone is required"
	} else if !phonePattern.MatchString(phone) {
		errs["customer_phone"] = "enter a valid phone number"
	}
	if strings.TrimSpace(form.DeliveryAddress) == "" {
		errs["delivery_address"] = "delivery address is required"
	}
	if !form.DeliveryMethod.Valid() {
		errs["delivery_method"] = "unknown delivery method"
	}
	if form.PaymentMethod != PaymentBankTransfer {
		errs["payment_method"] = "unsupported payment method"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (s *service) Checkout(ctx context.Context, session *cart.Session, form CheckoutForm) (*Order, error) {
	// All checks run before any side effect.
	if errs := validateForm(form); errs != nil {
		return nil, errs
	}
	state := session.State()
	if len(state.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	// ── Snapshot cart lines at their current effective price ─────────────
	items := make([]Item, 0, len(state.Items))
	for _, ci := range state.Items {
		price := ci.Product.EffectivePrice()
		items = append(items, Item{
			ProductID:    ci.Product.ID.String(),
			ProductName:  ci.Product.Name,
			ProductImage: ci.Product.ImageURL,
			Size:         ci.Size,
			Quantity:     ci.Quantity,
			Price:        price,
			Total:        price * float64(ci.Quantity),
		})
	}

	o := &Order{
		ID:              uuid.New(),
		UserID:          session.UserID,
		Items:           items,
		TotalAmount:     state.Total,
		CustomerName:    strings.TrimSpace(form.CustomerName),
		CustomerPhone:   strings.TrimSpace(form.CustomerPhone),
		CustomerEmail:   strings.TrimSpace(form.CustomerEmail),
		DeliveryAddress: strings.TrimSpace(form.DeliveryAddress),
		DeliveryMethod:  form.DeliveryMethod,
		PaymentMethod:   form.PaymentMethod,
		Status:          StatusNew,
	}

	// ── Persist: the authoritative step. On failure the cart stays
	// untouched so nothing is lost. ───────────────────────────────────────
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	// ── Notify staff. Best effort: the order already exists, a delivery
	// failure is logged and swallowed. ────────────────────────────────────
	if err := s.notifier.Send(ctx, FormatNotification(o, s.now()), o.ID.String()); err != nil {
		log.Printf("order %s: staff notification failed: %v", o.ID, err)
	}

	session.Dispatch(cart.Clear{})
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListOrders(ctx context.Context, status string) ([]*Order, error) {
	return s.repo.List(ctx, status)
}

func (s *service) ListUserOrders(ctx context.Context, userID int64) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	next := Status(strings.ToLower(req.Status))
	allowed := false
	for _, candidate := range validTransitions[o.Status] {
		if candidate == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("cannot transition order from %s to %s", o.Status, next)
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	o.Status = next
	return o, nil
}

func (s *service) UpdateNotes(ctx context.Context, id string, notes string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if err := s.repo.UpdateNotes(ctx, id, notes); err != nil {
		return nil, err
	}
	o.AdminNotes = notes
	return o, nil
}

func (s *service) SalesStats(ctx context.Context, from, to time.Time) (*Stats, error) {
	return s.repo.Stats(ctx, from, to)
}
