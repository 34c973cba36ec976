package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/amaclone/storefront/internal/localization"
	"github.com/amaclone/storefront/internal/notifications"
	"github.com/amaclone/storefront/pkg/db"
	"github.com/amaclone/storefront/pkg/db/models"
	"github.com/amaclone/storefront/pkg/enums"
	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service exposes order placement and history.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (*OrderDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error)
}

// ServiceParams bundles the order service collaborators.
type ServiceParams struct {
	Repo    *Repository
	Tx      txRunner
	Users   userLookup
	Mailer  notifications.Mailer
	Tables  localization.Tables
	Logger  *logger.Logger
	AdminTo string
}

type service struct {
	repo     *Repository
	tx       txRunner
	users    userLookup
	mailer   notifications.Mailer
	tables   localization.Tables
	logg     *logger.Logger
	adminTo  string
	validate *validator.Validate
}

// NewService wires the orders dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user lookup required")
	}
	mailer := params.Mailer
	if mailer == nil {
		mailer = notifications.NoopMailer{}
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:     params.Repo,
		tx:       params.Tx,
		users:    params.Users,
		mailer:   mailer,
		tables:   params.Tables,
		logg:     logg,
		adminTo:  strings.TrimSpace(params.AdminTo),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*OrderDTO, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid payment method %q", input.PaymentMethod)
	}
	if err := s.validate.Struct(input.Shipping); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping details")
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		if line.ID == "" || line.Quantity < 1 || line.Price < 0 {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid cart item %q", line.ID)
		}
		price := decimal.NewFromFloat(line.Price).Round(2)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, models.OrderItem{
			ProductID: line.ID,
			Name:      line.Name,
			Image:     line.Image,
			Quantity:  line.Quantity,
			Price:     price,
		})
	}

	var notes *string
	if input.Notes != nil {
		if trimmed := strings.TrimSpace(*input.Notes); trimmed != "" {
			notes = &trimmed
		}
	}

	order := &models.Order{
		UserID:        input.UserID,
		Total:         total,
		Status:        enums.OrderStatusPending,
		PaymentMethod: input.PaymentMethod,
		Shipping:      input.Shipping.toModel(),
		Notes:         notes,
		Items:         items,
	}

	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout")
	}

	s.sendConfirmation(ctx, input.Locale, order, user)

	dto := FromModel(*order)
	return &dto, nil
}

// sendConfirmation never fails the checkout; delivery problems are logged.
func (s *service) sendConfirmation(ctx context.Context, locale string, order *models.Order, user *models.User) {
	if s.tables == nil {
		return
	}
	msg, err := notifications.RenderOrderConfirmation(s.tables, locale, order, user)
	if err != nil {
		s.logg.Error(ctx, "render order confirmation", err)
		return
	}
	if s.adminTo != "" {
		msg.To = append(msg.To, s.adminTo)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		ctx = s.logg.WithField(ctx, "order_id", order.ID.String())
		s.logg.WarnErr(ctx, "order confirmation email not sent", err)
	}
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return FromModels(rows), nil
}

// Get returns the order only when it belongs to userID.
func (s *service) Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	dto := FromModel(*order)
	return &dto, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid order status %q", status)
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, pkgerrors.Newf(pkgerrors.CodeStateConflict, "cannot move order from %s to %s", order.Status, status)
	}
	updated, err := s.repo.UpdateStatus(ctx, orderID, order.Status, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order status changed concurrently")
	}
	order.Status = status
	dto := FromModel(*order)
	return &dto, nil
}
