package checkout

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"go.uber.org/zap"

	"tigerlife/internal/database"
	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
	"tigerlife/internal/pkg/apperr"
	"tigerlife/internal/pkg/logger"
	"tigerlife/internal/workflow"
)

const (
	currency        = "usd"
	intentSucceeded = "succeeded"
)

// Service runs a marketplace purchase. The card itself is confirmed by the
// client against the payments provider between StartPurchase and
// ConfirmPurchase.
type Service struct {
	items  ItemRepository
	fn     gateway.FunctionInvoker
	notify Notifier
	log    *zap.Logger
}

func NewService(items ItemRepository, fn gateway.FunctionInvoker, notify Notifier, log *zap.Logger) *Service {
	return &Service{items: items, fn: fn, notify: notify, log: logger.OrNop(log)}
}

// StartPurchase creates a payment intent for an available item.
func (s *Service) StartPurchase(ctx context.Context, buyerID, itemID int64) (*PaymentIntent, error) {
	item, err := s.availableItem(ctx, buyerID, itemID)
	if err != nil {
		return nil, err
	}

	amount := toCents(item.Price)
	var res paymentIntentResult
	err = s.fn.Invoke(ctx, gateway.FnCreatePaymentIntent, paymentIntentPayload{
		Amount:   amount,
		Currency: currency,
		ItemID:   item.ID,
		BuyerID:  buyerID,
		SellerID: item.SellerID,
	}, &res)
	if err != nil {
		return nil, apperr.Remote(err, "failed to create payment intent")
	}
	if res.ClientSecret == "" {
		return nil, ErrEmptyClientSecret
	}
	return &PaymentIntent{ID: res.ID, ClientSecret: res.ClientSecret, Amount: amount, Currency: currency}, nil
}

// ConfirmPurchase marks the item sold once the payment went through. The
// intent is looked up with the provider first and must have succeeded for
// this buyer, item and amount. Only one buyer can win: the update is
// conditional on the item still being available. Notifications and the
// seller payout are best effort.
func (s *Service) ConfirmPurchase(ctx context.Context, buyerID, itemID int64, paymentIntentID string) (*workflow.Outcome[*domain.MarketplaceItem], error) {
	paymentIntentID = strings.TrimSpace(paymentIntentID)
	if paymentIntentID == "" {
		return nil, ErrMissingPaymentID
	}
	item, err := s.availableItem(ctx, buyerID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.verifyPayment(ctx, buyerID, item, paymentIntentID); err != nil {
		return nil, err
	}

	ok, err := s.items.MarkSold(ctx, item.ID, buyerID)
	if err != nil {
		return nil, apperr.Remote(err, "failed to complete purchase")
	}
	if !ok {
		return nil, ErrAlreadySold
	}
	item.Sold = true
	item.BuyerID = &buyerID

	out := workflow.New(item, s.log)
	fields := []zap.Field{zap.Int64("user_id", buyerID), zap.Int64("item_id", item.ID)}

	out.Attempt(ctx, "notify_purchase", func(ctx context.Context) error {
		return s.notify.NotifyPurchase(ctx, buyerID, item.SellerID, item.ID, item.Title)
	}, fields...)

	out.Attempt(ctx, "seller_payout", func(ctx context.Context) error {
		var raw json.RawMessage
		err := s.fn.Invoke(ctx, gateway.FnProcessSellerPayout, payoutPayload{
			SellerID:        item.SellerID,
			ItemID:          item.ID,
			Amount:          toCents(item.Price),
			PaymentIntentID: paymentIntentID,
		}, &raw)
		if err != nil {
			return err
		}
		if len(raw) == 0 {
			return nil
		}
		payout, err := gateway.DecodeInsertResult(raw)
		if err != nil {
			return err
		}
		s.log.Info("seller payout recorded",
			zap.Int64("item_id", item.ID),
			zap.Int64("payout_id", payout.ID),
		)
		return nil
	}, fields...)

	return out, nil
}

func (s *Service) verifyPayment(ctx context.Context, buyerID int64, item *domain.MarketplaceItem, paymentIntentID string) error {
	var intent intentStatus
	err := s.fn.Invoke(ctx, gateway.FnRetrievePaymentIntent, retrieveIntentPayload{PaymentIntentID: paymentIntentID}, &intent)
	if err != nil {
		if gateway.IsRejected(err) {
			return ErrPaymentNotFound
		}
		return apperr.Remote(err, "failed to verify payment")
	}
	if intent.ID != paymentIntentID {
		return ErrPaymentNotFound
	}
	if intent.Status != intentSucceeded {
		return ErrPaymentIncomplete
	}
	if intent.ItemID != item.ID || intent.BuyerID != buyerID ||
		intent.Amount != toCents(item.Price) || !strings.EqualFold(intent.Currency, currency) {
		s.log.Warn("payment intent does not match purchase",
			zap.String("payment_intent_id", paymentIntentID),
			zap.Int64("user_id", buyerID),
			zap.Int64("item_id", item.ID),
		)
		return ErrPaymentMismatch
	}
	return nil
}

func (s *Service) availableItem(ctx context.Context, buyerID, itemID int64) (*domain.MarketplaceItem, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrItemNotFound
		}
		return nil, apperr.Remote(err, "failed to load item")
	}
	if item.Sold {
		return nil, ErrAlreadySold
	}
	if item.SellerID == buyerID {
		return nil, ErrBuyOwnItem
	}
	return item, nil
}

func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}
