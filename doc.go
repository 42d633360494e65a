// Package rentability computes the return over time of a personal stock
// portfolio from its order ledger and the daily prices of its symbols.
//
// The core functionalities include:
//   - Ledger Index: replaying the orders of a symbol to know the quantity held
//     at a given instant, and listing the orders executed on a given day.
//   - History bounds: finding the earliest order of the portfolio, used to
//     clamp requested windows to the history that actually exists.
//   - Valuation: for every trading day of a window, the worth of the held
//     positions, the net capital contributed through orders, their ratio and
//     the monetary profit or loss.
//   - Monthly aggregation: collapsing the daily profit or loss into one value
//     per calendar month.
//
// Orders and valuations are both stamped at the daily market close
// (MarketClose). An order is part of the holdings of a day only if it was
// executed on a previous day.
//
// Loading ledgers, fetching prices and drawing charts are done by the
// subpackages and the `rentab` command line tool.
package rentability
