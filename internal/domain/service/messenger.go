package service

import (
	"context"

	"atelier/internal/domain/entity"
)

// Messenger drafts client-facing texts with a generative model. Every method
// degrades to a canned message when the backing API is unavailable, so
// callers always receive usable text.
type Messenger interface {
	// DraftClientMessage writes a short, warm re-engagement DM for the client.
	DraftClientMessage(ctx context.Context, client *entity.Client) (string, error)

	// AnalyzeRevenue summarizes recent ledger entries into a short
	// observation for the operator.
	AnalyzeRevenue(ctx context.Context, transactions []entity.Transaction) (string, error)
}
