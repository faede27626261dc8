package videos

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shortflix/backend/internal/models"
)

// Action names accepted on the wire.
const (
	ActionLike           = "like"
	ActionUnlike         = "unlike"
	ActionComment        = "comment"
	ActionRate           = "rate"
	ActionUpdateDuration = "updateDuration"
)

// Action is one of the mutations that can be applied to a video. The set is
// closed: only the types in this file implement it.
type Action interface {
	Name() string
	isAction()
}

// Like increments the like counter.
type Like struct{}

// Unlike decrements the like counter, never below zero.
type Unlike struct{}

// AddComment appends a comment. An empty Author is replaced by models.AnonymousAuthor.
type AddComment struct {
	Author string `json:"author"`
	Text   string `json:"text" validate:"required,max=500"`
}

// Rate folds a new rating into the running average.
type Rate struct {
	Value float64 `json:"rating" validate:"min=0,max=5"`
}

// UpdateDuration overwrites the duration with a client-measured value.
// The value is not verified against the media.
type UpdateDuration struct {
	Seconds int `json:"duration" validate:"min=0"`
}

func (Like) Name() string           { return ActionLike }
func (Unlike) Name() string         { return ActionUnlike }
func (AddComment) Name() string     { return ActionComment }
func (Rate) Name() string           { return ActionRate }
func (UpdateDuration) Name() string { return ActionUpdateDuration }

func (Like) isAction()           {}
func (Unlike) isAction()         {}
func (AddComment) isAction()     {}
func (Rate) isAction()           {}
func (UpdateDuration) isAction() {}

// PatchRequest is the wire shape of a mutation: {id, action, ...payload}.
type PatchRequest struct {
	ID       string        `json:"id"`
	Action   string        `json:"action"`
	Comment  *CommentInput `json:"comment,omitempty"`
	Rating   *float64      `json:"rating,omitempty"`
	Duration *int          `json:"duration,omitempty"`
}

// CommentInput is the payload of the comment action.
type CommentInput struct {
	Author *string `json:"author,omitempty"`
	Text   string  `json:"text"`
}

// ParseAction converts the request into its typed action and validates the payload.
func (r PatchRequest) ParseAction() (Action, error) {
	var action Action
	switch r.Action {
	case ActionLike:
		action = Like{}
	case ActionUnlike:
		action = Unlike{}
	case ActionComment:
		if r.Comment == nil {
			return nil, invalidInput("comment", "is required")
		}
		c := AddComment{Text: r.Comment.Text}
		if r.Comment.Author != nil {
			c.Author = *r.Comment.Author
		}
		action = c
	case ActionRate:
		if r.Rating == nil {
			return nil, invalidInput("rating", "is required")
		}
		action = Rate{Value: *r.Rating}
	case ActionUpdateDuration:
		if r.Duration == nil {
			return nil, invalidInput("duration", "is required")
		}
		action = UpdateDuration{Seconds: *r.Duration}
	case "":
		return nil, &ValidationError{Kind: ErrUnsupportedAction, Fields: map[string]string{"action": "is required"}}
	default:
		return nil, &ValidationError{Kind: ErrUnsupportedAction, Fields: map[string]string{"action": fmt.Sprintf("unknown action %q", r.Action)}}
	}

	action = normalizeAction(action)
	if err := ValidateAction(action); err != nil {
		return nil, err
	}
	return action, nil
}

// ValidateAction checks the action's payload contract.
func ValidateAction(action Action) error {
	switch a := action.(type) {
	case Like, Unlike:
		return nil
	case AddComment:
		return prefixFields(validateStruct(a, ErrInvalidInput), "comment.")
	case Rate:
		return validateStruct(a, ErrInvalidInput)
	case UpdateDuration:
		return validateStruct(a, ErrInvalidInput)
	case nil:
		return &ValidationError{Kind: ErrUnsupportedAction, Fields: map[string]string{"action": "is required"}}
	default:
		return &ValidationError{Kind: ErrUnsupportedAction, Fields: map[string]string{"action": fmt.Sprintf("unknown action %q", action.Name())}}
	}
}

func normalizeAction(action Action) Action {
	if c, ok := action.(AddComment); ok {
		c.Author = strings.TrimSpace(c.Author)
		c.Text = strings.TrimSpace(c.Text)
		return c
	}
	return action
}

// applyAction mutates video in place. now supplies the comment id and timestamp.
func applyAction(video *models.Video, action Action, now time.Time) error {
	switch a := action.(type) {
	case Like:
		video.Likes++
	case Unlike:
		if video.Likes > 0 {
			video.Likes--
		}
	case AddComment:
		author := a.Author
		if author == "" {
			author = models.AnonymousAuthor
		}
		// Millisecond ids can collide when two comments land in the same millisecond.
		video.Comments = append(video.Comments, models.Comment{
			ID:        strconv.FormatInt(now.UnixMilli(), 10),
			Author:    author,
			Text:      a.Text,
			Timestamp: now.UnixMilli(),
			Likes:     0,
		})
	case Rate:
		video.Rating = RunningMean(video.Rating, video.TotalRatings, a.Value)
		video.TotalRatings++
	case UpdateDuration:
		video.Duration = a.Seconds
	default:
		return ValidateAction(action)
	}
	return nil
}

func prefixFields(err error, prefix string) error {
	verr, ok := err.(*ValidationError)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verr.Fields))
	for k, v := range verr.Fields {
		fields[prefix+k] = v
	}
	return &ValidationError{Kind: verr.Kind, Fields: fields}
}
