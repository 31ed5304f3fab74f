// Package notifications polls the "articles from follows" event collection of a user
// and publishes the result on an events bus.
//
// A [Poller] is idle until [Poller.Start], which polls once straight away and then on
// every tick of its [Scheduler]. [Poller.Stop] only prevents future ticks; a poll that
// is already in flight completes.
//
// Scheduled polls never report errors to the caller. They are logged, throttled, and
// passed to the hook installed with [WithErrorHook], and the loop keeps running.
package notifications
