// Package httphost serves flow diagrams to a browser and plays the host role
// for them over HTTP.
//
// Each browser session owns one [interact.Controller]. The browser posts
// snapshots and pointer events; every response lists the host requests the
// controller issued (mark, clear marking, show or hide tooltip, show or hide
// errors, render complete) so the page can apply them.
//
// # Routes
//
//	GET    /healthz                              liveness
//	GET    /metrics                              Prometheus metrics (when a gatherer is set)
//	POST   /snapshot                             new session, render the posted snapshot
//	POST   /sessions/{session}/snapshot          re-render with a new snapshot
//	DELETE /sessions/{session}                   drop the session
//	GET    /sessions/{session}/frame.svg         committed frame as SVG
//	GET    /sessions/{session}/frame.json        committed frame geometry
//	GET    /sessions/{session}/scene             draw commands of the canvas
//	GET    /sessions/{session}/marking           marked row ids
//	POST   /sessions/{session}/events/hover      {"x", "y"} or {"tag"}
//	POST   /sessions/{session}/events/leave
//	POST   /sessions/{session}/events/click      {"x", "y", "shift"} or {"tag", "shift"}
//	POST   /sessions/{session}/events/background
//
// Snapshots use the JSON format of package io. Session and render ids are
// random UUIDs. Rendered artifacts go through the pipeline runner, so a
// shared Redis cache serves them across hosts.
package httphost
