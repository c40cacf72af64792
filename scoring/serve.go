package scoring

// NextServe computes the next_serve slot for a freshly scored round: the
// player who will take over service once the scoring side loses a rally.
//
// prevNextServe and prevToServe come from the round preceding the one being
// recorded (the placeholder row before the first point). The scorer always
// becomes to_serve of the new round; this function only decides who is queued
// behind them:
//
//   - no previous server: service selection has not happened, result is empty
//     (callers must resolve the initial server/receiver flow first);
//   - the rally changed hands (scorer's team differs from the serving team):
//     in doubles the serve queues back to the previous serving pair with
//     partners swapped, in singles to the previous server themselves;
//   - the serving team scored again: the queued slot carries forward.
func NextServe(prevNextServe, scorer, prevToServe string, doubles bool) string {
	if prevToServe == "" {
		return ""
	}
	if TeamOf(scorer) != TeamOf(prevToServe) {
		if doubles {
			return Partner(prevToServe)
		}
		return prevToServe
	}
	return prevNextServe
}
