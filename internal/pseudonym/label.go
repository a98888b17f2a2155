package pseudonym

// candidateLabelPrefix is the gender-inclusive German "candidate" prefix
const candidateLabelPrefix = "Kandidat:in "

// CandidateLetter maps an index to 'A'..'Z', wrapping every 26.
func CandidateLetter(index int) string {
	i := index % 26
	if i < 0 {
		i += 26
	}
	return string(rune('A' + i))
}

// CandidateLabel returns the sequential display name for a candidate index
func CandidateLabel(index int) string {
	return candidateLabelPrefix + CandidateLetter(index)
}
