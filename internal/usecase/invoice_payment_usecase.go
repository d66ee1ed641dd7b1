package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"poolpro/internal/domain/clock"
	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrPaymentNotFound                = errors.New("payment not found")
	ErrInvalidPaymentID               = errors.New("invalid payment id")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrInvoiceNotPayable              = errors.New("invoice not payable")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
	ErrPaymentRejected                = errors.New("payment rejected by provider")
	ErrPaymentInProgress              = errors.New("a payment for this invoice is already in progress")
)

const cardPaymentMethod = "credit-card"

// paymentClaimTTL bounds how long a card charge blocks other payments on the
// same invoice when its outcome was never recorded.
const paymentClaimTTL = 10 * time.Minute

// PaymentSettings tunes how card payments reach the provider.
type PaymentSettings struct {
	// Mock approves payments locally without calling the provider.
	Mock bool
	// Sandbox marks a TEST- access token; payer defaults are filled for it.
	Sandbox         bool
	TestPayerEmail  string
	TestPayerUserID string
}

// IInvoicePaymentUseCase collects card payments for sent invoices.
type IInvoicePaymentUseCase interface {
	Pay(ctx context.Context, invoiceID string, mpPayload json.RawMessage) (entities.InvoicePayment, error)
	GetByID(ctx context.Context, id string) (entities.InvoicePayment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.InvoicePayment, error)
}

type InvoicePaymentUseCase struct {
	repo     interfaces.IInvoicePaymentRepository
	invoices interfaces.IInvoiceRepository
	gateway  interfaces.IPaymentGateway
	settings PaymentSettings
	clock    clock.Clock
	logger   *zap.Logger
}

var _ IInvoicePaymentUseCase = (*InvoicePaymentUseCase)(nil)

func NewInvoicePaymentUseCase(
	repo interfaces.IInvoicePaymentRepository,
	invoices interfaces.IInvoiceRepository,
	gateway interfaces.IPaymentGateway,
	settings PaymentSettings,
	clk clock.Clock,
	logger *zap.Logger,
) *InvoicePaymentUseCase {
	return &InvoicePaymentUseCase{
		repo:     repo,
		invoices: invoices,
		gateway:  gateway,
		settings: settings,
		clock:    clk,
		logger:   named(logger, "payment.usecase"),
	}
}

// Pay charges the invoice balance through the gateway and, once the provider
// approves, records the payment against the invoice. The amount always comes
// from the stored invoice, never from the payload.
//
// Before calling the provider the invoice is claimed with a versioned
// update, so two concurrent payments cannot both reach the gateway. The
// claim is released when the charge does not go through.
func (u *InvoicePaymentUseCase) Pay(ctx context.Context, invoiceID string, mpPayload json.RawMessage) (entities.InvoicePayment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	log := u.logger.With(zap.String("invoice_id", invoiceID))
	log.Info("pay start", zap.Int("payload_len", len(mpPayload)))
	if invoiceID == "" {
		return entities.InvoicePayment{}, ErrInvalidInvoiceID
	}
	mock := u.settings.Mock
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !mock {
			log.Warn("invalid payload")
			return entities.InvoicePayment{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil && !mock {
		return entities.InvoicePayment{}, ErrPaymentGatewayNotConfigured
	}

	inv, err := u.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		log.Error("failed loading invoice", zap.Error(err))
		return entities.InvoicePayment{}, err
	}
	if inv.ID == "" {
		return entities.InvoicePayment{}, ErrInvoiceNotFound
	}
	if inv.Status != entities.InvoiceStatusSent || !inv.BalanceDue.IsPositive() {
		log.Warn("invoice not payable", zap.String("status", string(inv.Status)))
		return entities.InvoicePayment{}, ErrInvoiceNotPayable
	}

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		if !mock {
			return entities.InvoicePayment{}, ErrInvalidMPPayload
		}
		reqMap = map[string]any{}
	}
	if !mock {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			log.Warn("missing payment_method_id")
			return entities.InvoicePayment{}, ErrInvalidMPPayload
		}
		u.normalizeSandboxPayer(reqMap)
		u.ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			log.Warn("missing or invalid payer")
			return entities.InvoicePayment{}, ErrInvalidMPPayload
		}
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = inv.ID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Invoice %s", inv.ID)
	}

	now := u.clock.Now()
	inv, err = u.claim(ctx, inv, now)
	if err != nil {
		log.Warn("invoice claim failed", zap.Error(err))
		return entities.InvoicePayment{}, err
	}

	charge := inv.BalanceDue
	amount, _ := charge.Float64()
	reqMap["transaction_amount"] = amount
	payload, err := json.Marshal(reqMap)
	if err != nil {
		u.release(ctx, inv)
		return entities.InvoicePayment{}, err
	}

	var (
		providerID     string
		providerStatus string
		providerResp   json.RawMessage
	)
	if mock {
		log.Info("mock mode; skipping payment provider")
		providerID = strconv.FormatInt(now.UnixNano(), 10)
		providerStatus = string(entities.PaymentStatusApproved)
		reqMap["id"] = providerID
		reqMap["status"] = providerStatus
		reqMap["status_detail"] = "accredited"
		reqMap["date_created"] = now.Format(time.RFC3339Nano)
		reqMap["date_approved"] = now.Format(time.RFC3339Nano)
		if providerResp, err = json.Marshal(reqMap); err != nil {
			u.release(ctx, inv)
			return entities.InvoicePayment{}, err
		}
	} else {
		providerID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, payload)
		if err != nil {
			log.Error("payment gateway failed", zap.Error(err))
			u.release(ctx, inv)
			return entities.InvoicePayment{}, classifyGatewayError(err)
		}
	}
	log.Info("payment gateway answered", zap.String("provider_payment_id", providerID), zap.String("provider_status", providerStatus))

	var parsed map[string]any
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Warn("provider response unmarshal failed", zap.Error(err))
	}
	p := entities.InvoicePayment{
		ID:                 providerID,
		InvoiceID:          inv.ID,
		CustomerID:         inv.CustomerID,
		Amount:             charge,
		Date:               now,
		Status:             paymentStatus(providerStatus),
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Error("payment repository create failed", zap.String("payment_id", p.ID), zap.Error(err))
		u.release(ctx, inv)
		return entities.InvoicePayment{}, err
	}
	if created.Status != entities.PaymentStatusApproved {
		log.Warn("payment not approved", zap.String("payment_id", created.ID), zap.String("status", string(created.Status)))
		u.release(ctx, inv)
		if created.Status == entities.PaymentStatusRejected {
			return created, ErrPaymentRejected
		}
		return created, nil
	}

	inv.PendingPayment = nil
	if err := inv.RecordPayment(now, charge, cardPaymentMethod, created.ID); err != nil {
		return entities.InvoicePayment{}, err
	}
	if _, err := u.invoices.Update(ctx, inv); err != nil {
		log.Error("invoice update failed", zap.String("payment_id", created.ID), zap.Error(err))
		return entities.InvoicePayment{}, err
	}
	log.Info("pay success", zap.String("payment_id", created.ID), zap.Stringer("amount", charge))
	return created, nil
}

// claim marks the invoice as being charged. Losing the version check, or an
// unexpired claim already on the invoice, means another payment is running.
func (u *InvoicePaymentUseCase) claim(ctx context.Context, inv entities.Invoice, now time.Time) (entities.Invoice, error) {
	if inv.PaymentInFlight(now, paymentClaimTTL) {
		return entities.Invoice{}, ErrPaymentInProgress
	}
	inv.PendingPayment = &entities.PendingPayment{Since: now}
	claimed, err := u.invoices.Update(ctx, inv)
	if errors.Is(err, ErrConcurrentUpdate) {
		return entities.Invoice{}, ErrPaymentInProgress
	}
	if err != nil {
		return entities.Invoice{}, err
	}
	if claimed.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return claimed, nil
}

// release drops the claim after a charge that did not go through. A failure
// only delays the next attempt until the claim expires.
func (u *InvoicePaymentUseCase) release(ctx context.Context, inv entities.Invoice) {
	inv.PendingPayment = nil
	if _, err := u.invoices.Update(ctx, inv); err != nil {
		u.logger.Warn("payment claim not released", zap.String("invoice_id", inv.ID), zap.Error(err))
	}
}

func paymentStatus(provider string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "approved", "authorized":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusRejected
	}
	return entities.PaymentStatusPending
}

func (u *InvoicePaymentUseCase) GetByID(ctx context.Context, id string) (entities.InvoicePayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.InvoicePayment{}, ErrInvalidPaymentID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.InvoicePayment{}, err
	}
	if p.ID == "" {
		return entities.InvoicePayment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *InvoicePaymentUseCase) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.InvoicePayment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, ErrInvalidInvoiceID
	}
	return u.repo.ListByInvoiceID(ctx, invoiceID)
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func (u *InvoicePaymentUseCase) ensurePayerDefaults(m map[string]any) {
	if v, ok := m["payer"]; !ok || v == nil {
		m["payer"] = map[string]any{}
	}
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	// In sandbox either payer.id or payer.email may be used; fill email only
	// when both are missing.
	if hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if u.settings.TestPayerEmail != "" {
		payer["email"] = u.settings.TestPayerEmail
	} else if u.settings.Sandbox {
		payer["email"] = "test_user_br@testuser.com"
	}
}

// normalizeSandboxPayer swaps the configured sandbox test user id for its
// email, which is what the provider accepts for test payers.
func (u *InvoicePaymentUseCase) normalizeSandboxPayer(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok || !u.settings.Sandbox {
		return
	}
	if !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if u.settings.TestPayerUserID == "" || u.settings.TestPayerEmail == "" {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != u.settings.TestPayerUserID {
		return
	}
	payer["email"] = u.settings.TestPayerEmail
	delete(payer, "id")
	u.logger.Info("mapped sandbox payer user_id to payer.email")
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found"), strings.Contains(msg, `"code":2002`):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved"), strings.Contains(msg, `"code":2034`):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, `"error":"unauthorized"`), strings.Contains(msg, `"status":401`):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, `"error":"bad_request"`), strings.Contains(msg, `"status":400`):
		return ErrPaymentGatewayBadRequest
	}
	return err
}
