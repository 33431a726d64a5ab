// Package syncer implements the incremental sync engine.
//
// # Overview
//
// A sync pass reads the durable checkpoint, walks each configured user's
// channel history from that lower bound in parallel, merges every successful
// walk into the counter store as one atomic batch, and finally advances the
// checkpoint. One user's failure never disturbs another's merge: the pass
// completes with a summary naming who succeeded and who failed.
//
// # Checkpoint policy
//
// Whether the checkpoint advances when some users failed is an explicit
// configuration choice (AdvanceOnFailure). Advancing keeps healthy users from
// being re-walked at the cost of a permanent gap for the failed user;
// holding the checkpoint re-walks everyone from the old bound next pass.
//
// Key Types
//
//   - type MessageSource — the external chat-platform capability
//   - type Walker        — one user's paginated history traversal
//   - type Controller    — orchestrates a full pass over all users
package syncer
