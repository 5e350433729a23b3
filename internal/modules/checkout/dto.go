package checkout

type StartPurchaseRequest struct {
	ItemID int64 `json:"item_id" validate:"required,gt=0"`
}

type ConfirmPurchaseRequest struct {
	ItemID          int64  `json:"item_id" validate:"required,gt=0"`
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

// PaymentIntent is what the client needs to confirm the card payment with
// the payments provider.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type paymentIntentPayload struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	ItemID   int64  `json:"item_id"`
	BuyerID  int64  `json:"buyer_id"`
	SellerID int64  `json:"seller_id"`
}

type paymentIntentResult struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
}

type retrieveIntentPayload struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

// intentStatus is the provider's view of a payment intent. ItemID and
// BuyerID echo the metadata attached by create-payment-intent.
type intentStatus struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	ItemID   int64  `json:"item_id"`
	BuyerID  int64  `json:"buyer_id"`
}

type payoutPayload struct {
	SellerID        int64  `json:"seller_id"`
	ItemID          int64  `json:"item_id"`
	Amount          int64  `json:"amount"`
	PaymentIntentID string `json:"payment_intent_id"`
}
