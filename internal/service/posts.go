package service

import (
	"context"
	"encoding/json"

	"github.com/rohitp80/CampusVibe-sub000/internal/api"
	"github.com/rohitp80/CampusVibe-sub000/internal/models"
	"github.com/rohitp80/CampusVibe-sub000/internal/notify"
	"github.com/rohitp80/CampusVibe-sub000/internal/security"
	"github.com/rohitp80/CampusVibe-sub000/internal/state"
	"github.com/rohitp80/CampusVibe-sub000/pkg/errors"
	"github.com/rohitp80/CampusVibe-sub000/pkg/logger"
	"github.com/rohitp80/CampusVibe-sub000/pkg/utils"
)

// PostAPI is the slice of the sync façade the post service needs.
type PostAPI interface {
	CreatePost(ctx context.Context, post models.Post) api.Result
	LikePost(ctx context.Context, id string) api.Result
	FetchPosts(ctx context.Context, page, limit int) api.Result
}

type PostService struct {
	store    *state.Store
	remote   PostAPI
	notifier notify.Notifier
}

func NewPostService(store *state.Store, remote PostAPI, notifier notify.Notifier) *PostService {
	return &PostService{
		store:    store,
		remote:   remote,
		notifier: notifier,
	}
}

// CreatePost sanitizes and publishes a post: it enters the feed
// immediately under a placeholder id, then the remote call either
// swaps in the canonical record or removes it again.
func (p *PostService) CreatePost(ctx context.Context, draft models.Post) (models.Post, error) {
	draft.Content = security.SanitizePostContent(draft.Content)
	if draft.CodeSnippet != "" {
		draft.CodeSnippet = security.SanitizeCodeSnippet(draft.CodeSnippet)
	}
	if draft.Content == "" && draft.CodeSnippet == "" && draft.ImageURL == "" {
		return models.Post{}, errors.New(errors.ErrCodeValidation, "post is empty")
	}

	if draft.Type == "" {
		draft.Type = models.PostTypeText
	}
	if draft.ID == "" {
		draft.ID = "local-" + utils.GenerateRandomID(8)
	}
	if draft.IsAnonymous || draft.Type == models.PostTypeAnonymous {
		draft.Anonymize()
	}
	if draft.Type == models.PostTypeTimeCapsule && !draft.UnlockDate.IsZero() {
		draft.IsLocked = true
	}

	p.store.AddPost(draft)

	res := p.remote.CreatePost(ctx, draft)
	if !res.Success {
		p.store.RemovePost(draft.ID)
		p.notifier.Error("Could not publish post: " + res.Error)
		return models.Post{}, errors.New(errors.ErrCodeRemoteRejected, res.Error)
	}

	var created models.Post
	if err := json.Unmarshal(res.Data, &created); err == nil && created.ID != "" {
		p.store.ReplacePost(draft.ID, created)
		draft = created
	} else {
		logger.Debug("Create-post response had no canonical post, keeping placeholder", "id", draft.ID)
	}

	p.notifier.Success("Post published")
	return draft, nil
}

// ToggleLike flips the local like immediately and flips it back when
// the remote call fails. Two rapid toggles can race remotely; the
// next authoritative fetch settles the count.
func (p *PostService) ToggleLike(ctx context.Context, id string) error {
	if _, ok := p.store.ToggleLike(id); !ok {
		return errors.New(errors.ErrCodeNotFound, "post not found")
	}

	res := p.remote.LikePost(ctx, id)
	if !res.Success {
		p.store.ToggleLike(id)
		p.notifier.Error("Could not update like: " + res.Error)
		return errors.New(errors.ErrCodeRemoteRejected, res.Error)
	}

	return nil
}

// RefreshFeed pulls the authoritative posts page and installs it.
func (p *PostService) RefreshFeed(ctx context.Context, page, limit int) error {
	res := p.remote.FetchPosts(ctx, page, limit)
	if !res.Success {
		return errors.New(errors.ErrCodeRemoteRejected, res.Error)
	}

	var posts []models.Post
	if err := json.Unmarshal(res.Data, &posts); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "malformed posts payload")
	}

	p.store.ReplacePosts(posts)
	return nil
}
