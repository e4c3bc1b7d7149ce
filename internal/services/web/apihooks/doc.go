// Package apihooks is the facade web handlers use to read from and write to
// the backend API.
//
// Reads go through Query, which serves cached results from the shared
// apiclient.QueryClient. Writes go through Mutate, which runs the action once,
// reports the outcome through callbacks, and invalidates dependent queries.
// Failures and successes surface to the user as toasts through a Notifier.
package apihooks
