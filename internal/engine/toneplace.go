package engine

// findTonePosition chooses the cell index that should carry the tone
// mark, per spec.md §4.5:
//
//  1. A cell already carrying a vowel mark (ă â ê ô ơ ư) always wins.
//     The nucleus can hold two marked vowels (e.g. "người", "được" ->
//     ư, ơ); the one furthest from the onset is the correct target, so
//     the scan runs coda-side-first, with or without a coda. The
//     teacher's original algorithm always scanned onset-side-first,
//     which misplaces this case (see DESIGN.md).
//  2. Otherwise, with a written coda, the tone goes on the last vowel
//     of the nucleus.
//  3. Otherwise (no coda): the modern/classical toggle only matters
//     when the nucleus opens with the glide o/u (hoà/hòa, thuỷ/thủy);
//     the tone then goes on the second vowel (modern) or stays on the
//     glide (classical). Any nucleus whose first letter is a plain o
//     or u takes this path, so ua, oi and ui follow the toggle too.
//     Every other two-vowel nucleus (ai, ao, au, eo, ia, ay, ...)
//     keeps the tone on its first, main vowel regardless of the
//     toggle — "chào" and "nghĩa" are never ambiguous the way
//     "hoà"/"hòa" is.
//  4. A single-vowel nucleus always takes the tone on that vowel.
//
// The medial u that follows onset "q" is excluded from the nucleus
// window before any of the above rules run, since qu- is always a
// spelling convention and that u never bears the tone. An onset ending
// in "h" (bare "h", or a cluster like "th") is NOT excluded the same
// way: "hoa"/"thuy" are exactly the genuine open-diphthong ambiguity
// rule 3's toggle exists to resolve, so the glide there must stay
// eligible.
func findTonePosition(cells []Cell, modern bool) int {
	n := len(cells)
	if n == 0 {
		return 0
	}

	onsetEnd, nucleusEnd := split(cells)
	nucleus := cells[onsetEnd:nucleusEnd]
	m := len(nucleus)
	if m == 0 {
		return 0
	}
	if m == 1 {
		return onsetEnd
	}

	start := 0
	if onsetEnd > 0 {
		lastOnset := cells[onsetEnd-1].Base
		head := nucleus[0].Base
		if lastOnset == 'q' && head == 'u' {
			start = 1
		}
	}
	eligible := nucleus[start:]
	if len(eligible) == 0 {
		eligible = nucleus
		start = 0
	}
	em := len(eligible)

	hasCoda := nucleusEnd < n

	if hasCoda {
		for i := em - 1; i >= 0; i-- {
			if isMarkedVowel(eligible[i]) {
				return onsetEnd + start + i
			}
		}
		return onsetEnd + start + em - 1
	}

	for i := em - 1; i >= 0; i-- {
		if isMarkedVowel(eligible[i]) {
			return onsetEnd + start + i
		}
	}

	if em >= 2 {
		head := eligible[0].Base
		if head == 'o' || head == 'u' {
			if modern {
				return onsetEnd + start + 1
			}
			return onsetEnd + start
		}
		return onsetEnd + start
	}
	return onsetEnd + start
}
