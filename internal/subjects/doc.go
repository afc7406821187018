// Package subjects answers department-wide questions: every rated instructor
// for a subject code, and better-rated alternatives to a given instructor.
// Queries bypass the per-name cache because they back exploratory views that
// must reflect current search results.
package subjects
