// Package fintrack provides the ledger of a local-first personal finance
// tracker: wallets, categorized incomes and expenses, recurring
// transactions, transfers between wallets and the settlement of planned
// transactions.
//
// The core functionalities include:
//   - Ledger: a state machine owning every record, whose operations either
//     fully succeed or leave it unchanged.
//   - Recurrence expansion: a recurring template becomes a group of dated
//     instances sharing a group id, see [Expand].
//   - Balance adjustment: a wallet balance always equals its opening balance
//     plus the signed values of its settled transactions, see [EffectOf] and
//     [Reconcile].
//   - Reports: totals per period, category and wallet, and goal simulations.
//   - Data persistence: the whole state is a single [Snapshot], saved after
//     each change through [OnChange] hooks, and exchanged as JSON backups.
//
// This package serves as the foundational logic for the `fin` command-line
// tool.
package fintrack
