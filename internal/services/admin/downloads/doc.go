// Package downloads implements the downloads admin view: the held record set
// per session, date and expression filtering, CSV export, deletion and the
// detail lookup.
//
// The held set lives only in process memory. It is loaded on the first visit
// of a session and on explicit refresh, and it shrinks when a delete succeeds.
package downloads
