// Package tracking shapes raw fulfillment records into order tracking
// projections, filters them, aggregates order statistics and paginates the
// result for display.
//
// Everything in this package is a pure function of its inputs except Board,
// which holds the presentation state of a single tracking view.
package tracking
