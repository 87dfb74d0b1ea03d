package domain

// RetrievedItem is one nearest-neighbor hit from the combined corpus
// search. It flattens the post and submission shapes into the columns the
// two sources share; fields that only one source has are pointers and nil
// for the other.
type RetrievedItem struct {
	ID             int64   `db:"id"`
	ItemID         string  `db:"item_id"`
	Title          string  `db:"title"`
	Text           string  `db:"text"`
	Source         string  `db:"source"`
	Date           string  `db:"date"`
	URL            *string `db:"url"`
	Score          *int    `db:"score"`
	NumComments    *int    `db:"num_comments"`
	ExperienceType *string `db:"experience_type"`
	SourceType     string  `db:"source_type"`
}

// Kind reports which corpus the hit came from.
func (r *RetrievedItem) Kind() SourceKind {
	if r.SourceType == string(SourceSubmission) {
		return SourceSubmission
	}
	return SourcePost
}

// Key returns the stable identifier of the underlying item.
func (r *RetrievedItem) Key() string { return r.ItemID }

// Body returns the raw text of the underlying item.
func (r *RetrievedItem) Body() string { return r.Text }
