package rmp

// GraphQL documents ported from the upstream web client. The exact field
// selection is an external contract outside our control and may change
// without notice; callers must degrade gracefully when it does.

const searchTeachersQuery = `
  query NewSearchTeachers($text: String!, $schoolID: ID) {
    newSearch {
      teachers(query: { text: $text, schoolID: $schoolID }) {
        edges {
          node {
            id
            legacyId
            firstName
            lastName
            department
            school { id name }
            avgRating
            numRatings
            avgDifficulty
            wouldTakeAgainPercent
          }
        }
      }
    }
  }
`

const teacherSummaryQuery = `
  query TeacherSummary($id: ID!) {
    node(id: $id) {
      ... on Teacher {
        id
        legacyId
        firstName
        lastName
        department
        school { id name }
        avgRating
        numRatings
        avgDifficulty
        wouldTakeAgainPercent
      }
    }
  }
`

type searchTeachersData struct {
	NewSearch struct {
		Teachers struct {
			Edges []struct {
				Node Teacher `json:"node"`
			} `json:"edges"`
		} `json:"teachers"`
	} `json:"newSearch"`
}

type teacherSummaryData struct {
	Node *Teacher `json:"node"`
}
