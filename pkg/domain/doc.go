// Package domain holds the response payloads served by the demo application.
//
// Every payload is built fresh per request from literal values and, for the
// info payload, the runtime environment passed in by the caller.
package domain
