// Package todoclient keeps a list view in step with a remote todo store.
//
// The store is authoritative. A TodoClient never edits its view locally: every
// successful mutation is followed by a full reload, and the view shows
// whatever the most recently completed reload returned. Failures never stop
// the client; they are logged, and for task creation also reported to the
// user through an Alerter.
package todoclient
