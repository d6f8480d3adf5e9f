// Package clock provides time sources for identifier generation: a manually driven clock
// for tests and a clock corrected by an offset obtained from an NTP server.
package clock
