// Package crossmint is the megaverse challenge API boundary.
//
// Ownership boundary:
// - candidate authentication on every mutating request
// - request pacing and rate-limit retry
// - translating transport failures into the client error taxonomy
// - wire decoding into the megaverse domain model
package crossmint
