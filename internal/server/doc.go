// Package server implements a multi-room WebSocket chat relay.
//
// The core is the room registry, the per-room membership set, and the
// per-connection session state machine that turns inbound JSON frames into
// joins, chat broadcasts, jokes, member listings, private messages, and
// renames. Around the core, the package provides the WebSocket transport
// (client pumps and the hub that supervises them), HTTP wiring, and
// configuration; each concern lives in its own file to keep the codebase
// maintainable and testable as the project grows.
package server
