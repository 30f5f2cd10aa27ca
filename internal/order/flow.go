package order

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Yana3030-web/stroymaster-website/internal/cart"
	"github.com/Yana3030-web/stroymaster-website/internal/config"
	"github.com/Yana3030-web/stroymaster-website/internal/model"
	"github.com/Yana3030-web/stroymaster-website/internal/relay"

	"github.com/rs/zerolog"
)

const (
	// relayTimeout bounds the relay call; on expiry the submission degrades
	// to the mailto path.
	relayTimeout = 15 * time.Second

	// successWindow is how long the success indicator is shown before the
	// checkout resets.
	defaultSuccessWindow = 5 * time.Second
)

// warningRelayFailed is surfaced alongside the fallback after a failed relay
// attempt. Non-blocking: the submission still succeeds via mailto.
const warningRelayFailed = "Произошла ошибка при отправке заказа. Письмо было отправлено через ваш почтовый клиент."

// State is the per-session checkout state exposed to the UI.
type State struct {
	Busy      bool `json:"busy"`
	Submitted bool `json:"submitted"`
}

type sessionState struct {
	busy      bool
	submitted bool
	reset     *time.Timer
}

// Flow runs order submissions: validate, assemble the payload from the
// session's cart, try the relay, degrade to a mailto handoff, clear the cart
// on every successful path. One submission per session at a time.
type Flow struct {
	store  cart.Store
	sender relay.Sender
	cfg    config.RelayConfig
	logger zerolog.Logger

	now           func() time.Time
	successWindow time.Duration

	mu       sync.Mutex
	sessions map[string]*sessionState
}

// NewFlow creates a submission flow. sender may be nil when the relay is
// unconfigured; the flow then goes straight to the mailto path.
func NewFlow(store cart.Store, sender relay.Sender, cfg config.RelayConfig, logger zerolog.Logger) *Flow {
	return &Flow{
		store:         store,
		sender:        sender,
		cfg:           cfg,
		logger:        logger.With().Str("component", "order_flow").Logger(),
		now:           time.Now,
		successWindow: defaultSuccessWindow,
		sessions:      make(map[string]*sessionState),
	}
}

// Submit runs one submission attempt for the session. It returns
// model.ErrSubmissionInFlight when a previous submission for the same
// session has not finished.
func (f *Flow) Submit(ctx context.Context, sessionID string, form *model.OrderForm) (*model.SubmissionResult, error) {
	if err := f.acquire(sessionID); err != nil {
		return nil, err
	}
	defer f.release(sessionID)

	// All fields are checked together so the user sees every problem at
	// once; nothing goes over the network on validation failure.
	if errs := ValidateForm(form); len(errs) > 0 {
		return &model.SubmissionResult{
			Status:      model.StatusRejected,
			FieldErrors: errs,
		}, nil
	}

	current, err := f.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return &model.SubmissionResult{
			Status:      model.StatusRejected,
			FieldErrors: map[string]string{"cart": "Добавьте товары в корзину, чтобы оформить заказ"},
		}, nil
	}

	payload := &model.OrderPayload{
		Name:       form.Name,
		Phone:      form.Phone,
		Email:      form.Email,
		Address:    form.Address,
		Message:    form.Message,
		Items:      current.OrderItems(),
		TotalPrice: current.TotalPrice(),
		OrderDate:  f.now(),
	}
	orderID := relay.OrderID(payload)

	result := &model.SubmissionResult{OrderID: orderID}

	if !f.cfg.Configured || f.sender == nil {
		// Expected condition, not an error: hand off to the mail client
		// without attempting the relay.
		f.logger.Info().Str("order_id", orderID).Msg("relay unconfigured, using mailto handoff")
		result.Status = model.StatusDeliveredViaFallback
		result.MailtoURI = BuildMailto(f.cfg.Recipient, f.cfg.SiteName, payload)
	} else {
		relayCtx, cancel := context.WithTimeout(ctx, relayTimeout)
		err := f.sender.Send(relayCtx, payload)
		cancel()

		if err == nil {
			f.logger.Info().Str("order_id", orderID).Msg("order relayed")
			result.Status = model.StatusDelivered
		} else {
			if errors.Is(err, context.DeadlineExceeded) {
				f.logger.Warn().Str("order_id", orderID).Msg("relay timed out, using mailto handoff")
			} else {
				f.logger.Error().Err(err).Str("order_id", orderID).Msg("relay failed, using mailto handoff")
			}
			result.Status = model.StatusDeliveredViaFallback
			result.MailtoURI = BuildMailto(f.cfg.Recipient, f.cfg.SiteName, payload)
			result.Warning = warningRelayFailed
		}
	}

	// Both delivery paths are a success from the user's perspective.
	if err := f.store.Clear(ctx, sessionID); err != nil {
		f.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to clear cart after order")
	}
	f.markSubmitted(sessionID)

	return result, nil
}

// State returns the session's checkout state.
func (f *Flow) State(sessionID string) State {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, ok := f.sessions[sessionID]
	if !ok {
		return State{}
	}
	return State{Busy: st.busy, Submitted: st.submitted}
}

func (f *Flow) acquire(sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := f.session(sessionID)
	if st.busy {
		return model.ErrSubmissionInFlight
	}
	st.busy = true
	return nil
}

func (f *Flow) release(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if st, ok := f.sessions[sessionID]; ok {
		st.busy = false
	}
}

// markSubmitted raises the success indicator and schedules its reset.
func (f *Flow) markSubmitted(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := f.session(sessionID)
	st.submitted = true
	if st.reset != nil {
		st.reset.Stop()
	}
	st.reset = time.AfterFunc(f.successWindow, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if st, ok := f.sessions[sessionID]; ok {
			st.submitted = false
			st.reset = nil
		}
	})
}

func (f *Flow) session(sessionID string) *sessionState {
	st, ok := f.sessions[sessionID]
	if !ok {
		st = &sessionState{}
		f.sessions[sessionID] = st
	}
	return st
}
