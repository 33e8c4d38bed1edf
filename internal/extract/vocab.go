package extract

import "regexp"

// issueTerm pairs a canonical issue label with the pattern that detects it.
// The vocabulary is fixed: issues outside it are not reported, because free
// text from the ISSUES heading of older documents is too inconsistent to
// surface verbatim.
type issueTerm struct {
	label   string
	pattern *regexp.Regexp
}

var issueVocab = []issueTerm{
	{"PTSD", regexp.MustCompile(`(?i)\bPTSD\b|post-?traumatic stress`)},
	{"TBI", regexp.MustCompile(`(?i)\bTBI\b|traumatic brain injury`)},
	{"TDIU", regexp.MustCompile(`(?i)\bTDIU\b|total disability.{0,30}individual unemployability`)},
	{"tinnitus", regexp.MustCompile(`(?i)\btinnitus\b`)},
	{"hearing loss", regexp.MustCompile(`(?i)\bhearing loss\b`)},
	{"sleep apnea", regexp.MustCompile(`(?i)\bsleep apnea\b`)},
	{"depression", regexp.MustCompile(`(?i)\bdepressi(?:on|ve)\b`)},
	{"anxiety", regexp.MustCompile(`(?i)\banxiety\b`)},
	{"back disability", regexp.MustCompile(`(?i)\b(?:lumbar|thoracolumbar|low back|back disability|back condition)\b`)},
	{"knee disability", regexp.MustCompile(`(?i)\bknee\b`)},
	{"service connection", regexp.MustCompile(`(?i)\bservice[- ]connect(?:ion|ed)\b`)},
	{"increased rating", regexp.MustCompile(`(?i)\bincreased (?:rating|evaluation)\b`)},
	{"effective date", regexp.MustCompile(`(?i)\bearlier effective date\b|\beffective date\b`)},
	{"CUE", regexp.MustCompile(`(?i)clear and unmistakable error\b|\bCUE\b`)},
}
