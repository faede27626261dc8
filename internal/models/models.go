package models

// Video is a short video's metadata and engagement state as held by the catalog.
type Video struct {
	ID           string    `json:"id"`
	VideoURL     string    `json:"videoUrl" validate:"required,url"`
	Title        string    `json:"title" validate:"required,min=1,max=100"`
	Description  string    `json:"description" validate:"max=500"`
	Tags         []string  `json:"tags" validate:"min=1"`
	Duration     int       `json:"duration" validate:"min=0"`
	Likes        int       `json:"likes" validate:"min=0"`
	Quality      string    `json:"quality,omitempty"`
	Comments     []Comment `json:"comments" validate:"dive"`
	Rating       float64   `json:"rating" validate:"min=0,max=5"`
	TotalRatings int       `json:"totalRatings" validate:"min=0"`
}

// Comment is a viewer comment attached to a video. Comments are append-only.
type Comment struct {
	ID        string `json:"id"`
	Author    string `json:"author" validate:"required,min=1"`
	Text      string `json:"text" validate:"required,min=1,max=500"`
	Timestamp int64  `json:"timestamp"`
	Likes     int    `json:"likes" validate:"min=0"`
}

const (
	// DefaultQuality is the label given to videos created through the API.
	DefaultQuality = "Auto"
	// AnonymousAuthor is used when a comment is submitted without an author.
	AnonymousAuthor = "Anonymous"
)

// Clone returns a deep copy so callers cannot alias the catalog's slices.
func (v Video) Clone() Video {
	out := v
	out.Tags = append([]string(nil), v.Tags...)
	out.Comments = append([]Comment{}, v.Comments...)
	return out
}

// HasTag reports whether the video carries tag, compared exactly.
func (v Video) HasTag(tag string) bool {
	for _, t := range v.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
