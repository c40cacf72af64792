// Package scoring implements the badminton rules engines: serve rotation,
// per-team court position (left/right switch) and win detection. Everything
// here is pure; the service layer composes these into persisted updates.
package scoring

// Player identities are the four court slots "a1", "a2", "b1", "b2"
// (singles uses only "a1" and "b1"). Teams are the prefixes "a" and "b".

const (
	TeamA = "a"
	TeamB = "b"
)

// TeamOf returns the team prefix of a player id, or "" for an empty id.
func TeamOf(player string) string {
	if player == "" {
		return ""
	}
	return player[:1]
}

// Partner maps a player to their doubles partner ("a1" <-> "a2", "b1" <-> "b2").
func Partner(player string) string {
	switch player {
	case "a1":
		return "a2"
	case "a2":
		return "a1"
	case "b1":
		return "b2"
	case "b2":
		return "b1"
	}
	return ""
}

// ValidPlayer reports whether the id names a court slot that exists for the
// given discipline.
func ValidPlayer(player string, doubles bool) bool {
	switch player {
	case "a1", "b1":
		return true
	case "a2", "b2":
		return doubles
	}
	return false
}

// ValidTeam reports whether the id is one of the two team prefixes.
func ValidTeam(team string) bool {
	return team == TeamA || team == TeamB
}
