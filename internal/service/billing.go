package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"taglayer/internal/apperror"
	"taglayer/internal/auth"
	"taglayer/internal/config"
	"taglayer/internal/logging"
	"taglayer/internal/model"
	"taglayer/internal/permission"
	"taglayer/internal/repository"
	"taglayer/pkg/timer"
	"taglayer/pkg/util"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"github.com/stripe/stripe-go/v78/webhook"
	"go.mongodb.org/mongo-driver/bson"
)

// BillingService drives the hosted checkout flow and applies
// subscription state onto the organization's embedded plan.
type BillingService struct {
	orgs   repository.IOrganizationRepository
	users  repository.IUserRepository
	cfg    *config.Config
	mailer Mailer
}

// NewBillingService creates a new billing service and configures the
// Stripe client key.
func NewBillingService(cfg *config.Config, orgs repository.IOrganizationRepository, users repository.IUserRepository, mailer Mailer) *BillingService {
	stripe.Key = cfg.Stripe.SecretKey
	return &BillingService{orgs: orgs, users: users, cfg: cfg, mailer: mailer}
}

// CreateCheckoutSession starts a hosted checkout for a plan upgrade and
// returns the redirect URL.
func (s *BillingService) CreateCheckoutSession(ctx context.Context, sess auth.Session, body *model.CheckoutBody) (string, error) {
	if err := permission.Require(sess.Roles, permission.BillingManage); err != nil {
		return "", err
	}
	if body == nil {
		return "", apperror.Validation("checkout data is required")
	}

	priceID, err := s.priceFor(body.PlanType)
	if err != nil {
		return "", err
	}

	org, err := s.orgs.FindByID(ctx, sess.OrganizationID)
	if err != nil {
		return "", fmt.Errorf("failed to load organization: %w", err)
	}
	if org == nil {
		return "", apperror.OrganizationNotFound(sess.OrganizationID.Hex())
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		ClientReferenceID: stripe.String(org.ID.Hex()),
		SuccessURL:        stripe.String(s.cfg.Stripe.SuccessURL),
		CancelURL:         stripe.String(s.cfg.Stripe.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
	}
	params.AddMetadata("planType", body.PlanType)
	if body.Period != "" {
		params.AddMetadata("period", body.Period)
	}

	checkout, err := session.New(params)
	if err != nil {
		return "", apperror.SubscriptionError("failed to create checkout session", err)
	}
	return checkout.URL, nil
}

// HandleWebhook verifies and applies a billing provider event. Unknown
// event types are acknowledged and ignored.
func (s *BillingService) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	sw := timer.NewStopwatch()
	defer sw.Total("Billing Webhook")

	event, err := webhook.ConstructEvent(payload, sigHeader, s.cfg.Stripe.WebhookSecret)
	if err != nil {
		return apperror.Validation("invalid webhook signature")
	}
	sw.Lap("Verify Signature")

	switch event.Type {
	case "checkout.session.completed":
		var checkout stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &checkout); err != nil {
			return apperror.Validation("malformed checkout event")
		}
		sw.Lap("Decode Event")
		return s.applyCheckout(ctx, &checkout)

	case "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return apperror.Validation("malformed subscription event")
		}
		sw.Lap("Decode Event")
		return s.applySubscription(ctx, &sub, planFieldsFromSubscription(&sub))

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return apperror.Validation("malformed subscription event")
		}
		sw.Lap("Decode Event")
		return s.applySubscription(ctx, &sub, bson.M{
			"type":   model.PlanFree,
			"status": model.PlanStatusCanceled,
		})

	default:
		logging.Logger.WithField("type", event.Type).Info("ignoring unhandled billing event")
		return nil
	}
}

func (s *BillingService) applyCheckout(ctx context.Context, checkout *stripe.CheckoutSession) error {
	orgID, err := util.ParseObjectID(checkout.ClientReferenceID)
	if err != nil {
		return apperror.Validation("checkout event has no organization reference")
	}

	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return fmt.Errorf("failed to load organization: %w", err)
	}
	if org == nil {
		return apperror.OrganizationNotFound(checkout.ClientReferenceID)
	}

	if err := s.orgs.MergePlan(ctx, org.ID, planFieldsFromCheckout(checkout)); err != nil {
		return fmt.Errorf("failed to merge plan: %w", err)
	}

	planType := checkout.Metadata["planType"]
	logging.Logger.WithFields(map[string]any{
		"organizationId": org.ID.Hex(),
		"planType":       planType,
	}).Info("plan upgraded via checkout")

	s.notifyPlanChange(ctx, org, planType)
	return nil
}

// notifyPlanChange emails the organization creator. Billing state is
// already persisted, so lookup failures only cost the notification.
func (s *BillingService) notifyPlanChange(ctx context.Context, org *model.Organization, planType string) {
	creator, err := s.users.FindByID(ctx, org.CreatorID)
	if err != nil || creator == nil {
		logging.Logger.WithField("organizationId", org.ID.Hex()).Warn("could not resolve creator for plan change email")
		return
	}
	s.mailer.SendAsync(creator.Email, "Your Taglayer plan has changed", "plan_changed", creator.Locale, map[string]any{
		"Name":     creator.Name,
		"OrgName":  org.Name,
		"PlanType": planType,
	})
}

func (s *BillingService) applySubscription(ctx context.Context, sub *stripe.Subscription, fields bson.M) error {
	org, err := s.orgs.FindBySubscription(ctx, sub.ID)
	if err != nil {
		return fmt.Errorf("failed to load organization: %w", err)
	}
	if org == nil {
		// Subscription we never provisioned; acknowledge and move on.
		logging.Logger.WithField("subscriptionId", sub.ID).Warn("subscription event for unknown organization")
		return nil
	}

	if err := s.orgs.MergePlan(ctx, org.ID, fields); err != nil {
		return fmt.Errorf("failed to merge plan: %w", err)
	}
	return nil
}

func (s *BillingService) priceFor(planType string) (string, error) {
	switch planType {
	case model.PlanStarter:
		return s.cfg.Stripe.PriceStarter, nil
	case model.PlanPro:
		return s.cfg.Stripe.PricePro, nil
	default:
		return "", apperror.Validation("plan type is not purchasable")
	}
}

// planFieldsFromCheckout computes the plan fields to merge after a
// completed checkout.
func planFieldsFromCheckout(checkout *stripe.CheckoutSession) bson.M {
	fields := bson.M{
		"status": model.PlanStatusActive,
	}
	if planType := checkout.Metadata["planType"]; planType != "" {
		fields["type"] = planType
	}
	if period := checkout.Metadata["period"]; period != "" {
		fields["period"] = period
	}
	if checkout.Customer != nil {
		fields["customerId"] = checkout.Customer.ID
	}
	if checkout.Subscription != nil {
		fields["subscriptionId"] = checkout.Subscription.ID
	}
	return fields
}

// planFieldsFromSubscription computes the plan fields to merge from a
// subscription update.
func planFieldsFromSubscription(sub *stripe.Subscription) bson.M {
	fields := bson.M{
		"status": string(sub.Status),
	}
	if sub.CurrentPeriodEnd > 0 {
		fields["currentPeriodEnd"] = time.Unix(sub.CurrentPeriodEnd, 0)
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		if price := sub.Items.Data[0].Price; price != nil && price.Recurring != nil {
			switch price.Recurring.Interval {
			case stripe.PriceRecurringIntervalMonth:
				fields["period"] = model.PlanPeriodMonthly
			case stripe.PriceRecurringIntervalYear:
				fields["period"] = model.PlanPeriodYearly
			}
		}
	}
	return fields
}
