// Package wizard is the two-state cycle that drives a live point.
//
// Each point starts in SelectPlayers. Committing exactly playersPerPoint players
// moves to LogActions, where actions are recorded and undone. A scoring action
// unlocks Advance to the next point; Back undoes the last transition when nothing
// would be lost.
package wizard
