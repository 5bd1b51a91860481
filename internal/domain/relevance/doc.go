// Package relevance scores resumes against free-text queries and job
// postings.
//
// Everything here is a pure function of its inputs: token sets are
// recomputed on every call and nothing is cached between requests.
// Scores are always in [0,1] and evidence lists are bounded.
package relevance
