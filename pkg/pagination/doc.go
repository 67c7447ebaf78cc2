// Package pagination implements lazy iteration over ballchasing listing
// endpoints.
//
// Listing responses carry a "list" array, an optional "next" URL pointing at
// the following page and an optional reported total "count". The iterator
// follows the next pointer until the caller's requested item count is
// satisfied or a terminal page (no next) is reached. Pages are capped at 200
// items by the server; follow-up requests ask for min(remaining, 200).
//
// Example usage:
//
//	it := pagination.New(client, baseURL+"/replays", query, 500)
//	for {
//		item, ok, err := it.Next(ctx)
//		if err != nil {
//			return err
//		}
//		if !ok {
//			break
//		}
//		// process item
//	}
//
// The iterator:
//   - Defers every page fetch until its items are about to be consumed
//   - Yields items in the server's order, never more than requested
//   - Propagates a failed page fetch from Next, aborting the sequence
//   - Is single-use; it owns its cursor state exclusively
package pagination
