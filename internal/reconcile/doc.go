// Package reconcile owns convergence of the remote megaverse to its goal map.
//
// Ownership boundary:
// - grid diffing into an ordered mutation plan
// - sequential plan application against the remote client
// - report production
//
// Reconcile does not speak HTTP; the remote client boundary does.
package reconcile
