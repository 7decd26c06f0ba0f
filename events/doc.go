// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package events provides the in-process notification dispatcher.

Every successful mutating election operation appends one row to the
election_event table inside its own transaction; that table is the durable,
ordered notification feed. After a transaction commits, the engine also
pushes the event through a Notifier so in-process observers see it without
polling:

	notifier := events.NewNotifier()
	notifier.Subscribe(models.EventVoted, func(e models.Event) {
		// react to a cast vote
	})

Dispatch is synchronous and in subscription order, so a subscriber observes
events in exactly the order they were committed. Handlers must not block.

Failed operations never reach Notify - the event row rolls back with the
rest of the transaction, keeping the feed one-to-one with successful calls.
*/
package events
