package pacttest

import "github.com/iov-one/pact"

// Handler is a pact.Handler that counts calls and returns the configured
// results.
type Handler struct {
	checkCall   int
	CheckResult pact.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult pact.DeliverResult
	DeliverErr    error
}

var _ pact.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
