package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/graniteware/storefront/internal/config"
	"github.com/graniteware/storefront/internal/domain"
	"github.com/graniteware/storefront/internal/mail"
	"github.com/graniteware/storefront/internal/repository"
	"github.com/graniteware/storefront/internal/session"
	"github.com/graniteware/storefront/pkg/errors"
)

type InquiryService struct {
	store    session.Store
	users    repository.UserRepository
	resolver CartResolver
	notifier mail.Notifier
	cfg      config.InquiryConfig
	template templateCache
	logger   *zap.Logger
}

// NewInquiryService creates a new inquiry service
func NewInquiryService(
	store session.Store,
	users repository.UserRepository,
	resolver CartResolver,
	notifier mail.Notifier,
	cfg config.InquiryConfig,
	logger *zap.Logger,
) *InquiryService {
	return &InquiryService{
		store:    store,
		users:    users,
		resolver: resolver,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// BuildSummary resolves the user's profile and the session's cart into an
// inquiry request. A user that cannot be resolved is a hard precondition
// failure; no mail is sent.
func (s *InquiryService) BuildSummary(ctx context.Context, token string, userID uuid.UUID) (domain.InquiryRequest, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); ok {
			return domain.InquiryRequest{}, &errors.ErrUserNotFound{UserID: userID.String()}
		}
		return domain.InquiryRequest{}, err
	}

	lines, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		return domain.InquiryRequest{}, err
	}

	return domain.InquiryRequest{
		User:  user.Profile(),
		Lines: lines,
	}, nil
}

// Render substitutes the four positional template slots: full name,
// email, phone, and the product listing. There is no fallback body; a
// missing template aborts the submission rather than sending a malformed
// inquiry.
func (s *InquiryService) Render(req domain.InquiryRequest) (string, error) {
	tmpl, err := s.template.load(s.cfg.TemplatePath)
	if err != nil {
		return "", err
	}

	var productList strings.Builder
	for _, line := range req.Lines {
		productList.WriteString(fmt.Sprintf(
			" - Name: %s <span style='font-size: 14px;'> (ID: %d) </span> <br/> ",
			line.Product.Name, line.Product.ID,
		))
	}

	return fmt.Sprintf(tmpl,
		req.User.FullName,
		req.User.Email,
		req.User.Phone,
		productList.String(),
	), nil
}

// Submit renders the inquiry and dispatches it to the staff address. The
// cart is left untouched on every failure path so the user can retry; on
// success it moves to Submitted but is not cleared until Confirm.
func (s *InquiryService) Submit(ctx context.Context, token string, req domain.InquiryRequest) error {
	cart, err := s.store.LoadCart(ctx, token)
	if err != nil {
		return err
	}

	if !cart.State.CanTransitionTo(domain.CartStateSubmitted) {
		return &errors.ErrInvalidStateTransition{
			From: cart.State,
			To:   domain.CartStateSubmitted,
		}
	}

	body, err := s.Render(req)
	if err != nil {
		return err
	}

	if err := s.notifier.Send(ctx, s.cfg.StaffEmail, s.cfg.Subject, body); err != nil {
		s.logger.Error("Inquiry dispatch failed", zap.Error(err))
		return &errors.ErrNotifierFailure{Err: err}
	}

	cart.State = domain.CartStateSubmitted
	if err := s.store.SaveCart(ctx, token, cart); err != nil {
		return err
	}

	s.logger.Info("Inquiry submitted",
		zap.String("user_email", req.User.Email),
		zap.Int("line_count", len(req.Lines)),
	)

	return nil
}

// Confirm clears the session once the user acknowledges the submitted
// inquiry. This is the only transition that empties the cart; abandoning
// the flow after Submit keeps it intact.
func (s *InquiryService) Confirm(ctx context.Context, token string) error {
	cart, err := s.store.LoadCart(ctx, token)
	if err != nil {
		return err
	}

	if !cart.State.CanTransitionTo(domain.CartStateCleared) {
		return &errors.ErrInvalidStateTransition{
			From: cart.State,
			To:   domain.CartStateCleared,
		}
	}

	return s.store.Clear(ctx, token)
}
