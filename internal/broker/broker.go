// Package broker fetches portfolio data from the brokerage.
// The only integration is Trading 212, whose "pies" are weighted
// baskets of equities.
package broker

import (
	"context"

	"github.com/seenimoa/piemail/pkg/models"
)

// PieSource defines what the digest needs from a brokerage.
type PieSource interface {
	// Name returns the broker provider name ("trading212").
	Name() string

	// GetPie returns the pie with the given identifier: its settings and
	// its instruments in the order the broker lists them.
	GetPie(ctx context.Context, id int64) (*models.Pie, error)
}
