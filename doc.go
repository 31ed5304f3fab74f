// The [myft] package is a client for the myFT personalisation API.
//
// # Client
//
// Construct a [Client] with [New] from an explicit [Config]. Headers derived from the
// configuration are resolved once at construction and never re-read from the environment
// while a request is in flight. Use [ConfigFromEnv] or [LoadConfig] to build a [Config] the
// way the FT services do.
//
// # FetchJSON
//
// [Client.FetchJSON] is the single primitive every operation goes through. Actor, relationship,
// purge and reading history calls only differ in the method and path they pass to it.
//
// For GET requests the data argument becomes the query string. Pass [Params] when the order of
// parameters matters. For every other method the data argument is the JSON body.
//
// # Errors
//
// A 404 from the service is reported as a [*NotFoundError]. Transport failures and bodies that
// are not JSON are reported as [*TransportError] and [*MalformedResponseError]. Every error type
// matches its sentinel with [errors.Is].
//
// # Notifications and user preferences
//
// The [github.com/financial-times/myft.go/pkg/notifications] package polls the
// "articles from follows" event collection of a user, and
// [github.com/financial-times/myft.go/pkg/userprefs] loads, adds and removes the relationships
// of the signed in user. Both publish their results on a
// [github.com/financial-times/myft.go/pkg/events] bus.
package myft
