// Package service coordinates optimistic local transitions with their
// remote counterparts. The discipline is uniform: mutate the store
// first, issue the remote call, revert the local transition when the
// call fails, and report the outcome as a transient notification. The
// refresh scheduler reconciles whatever this layer got wrong.
package service

import (
	"context"

	"github.com/rohitp80/CampusVibe-sub000/internal/api"
	"github.com/rohitp80/CampusVibe-sub000/internal/models"
	"github.com/rohitp80/CampusVibe-sub000/internal/notify"
	"github.com/rohitp80/CampusVibe-sub000/internal/state"
	"github.com/rohitp80/CampusVibe-sub000/pkg/errors"
	"github.com/rohitp80/CampusVibe-sub000/pkg/logger"
)

// FriendAPI is the slice of the sync façade the social service needs.
type FriendAPI interface {
	SendFriendRequest(ctx context.Context, target string) api.Result
	AcceptRequest(ctx context.Context, id string) api.Result
	RejectRequest(ctx context.Context, id string) api.Result
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) api.Result
}

type SocialService struct {
	store    *state.Store
	remote   FriendAPI
	notifier notify.Notifier
}

func NewSocialService(store *state.Store, remote FriendAPI, notifier notify.Notifier) *SocialService {
	return &SocialService{
		store:    store,
		remote:   remote,
		notifier: notifier,
	}
}

// SendFriendRequest applies the optimistic pending record, then asks
// the remote side to create it. A failed remote call cancels the
// local record again.
func (s *SocialService) SendFriendRequest(ctx context.Context, target string) error {
	req, err := s.store.SendFriendRequest(target)
	if err != nil {
		s.notifier.Error(err.Error())
		return err
	}

	res := s.remote.SendFriendRequest(ctx, target)
	if !res.Success {
		s.store.CancelFriendRequest(target)
		s.notifier.Error("Could not send friend request: " + res.Error)
		return errors.New(errors.ErrCodeRemoteRejected, res.Error)
	}

	logger.Debug("Friend request sent", "id", req.ID, "to", target)
	s.notifier.Success("Friend request sent to " + target)
	return nil
}

// CancelFriendRequest withdraws the pending outgoing request to
// target. The companion API has no cancel endpoint; the record is
// dropped locally and the next authoritative refresh settles the rest.
func (s *SocialService) CancelFriendRequest(target string) {
	s.store.CancelFriendRequest(target)
	s.notifier.Success("Friend request to " + target + " cancelled")
}

// AcceptFriendRequest resolves the pending request locally, then
// confirms with the remote side, restoring the pending record and
// undoing the new friendship when the call fails.
func (s *SocialService) AcceptFriendRequest(ctx context.Context, id string) error {
	res, ok := s.store.AcceptFriendRequest(id)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "friend request not found")
	}

	remote := s.remote.AcceptRequest(ctx, id)
	if !remote.Success {
		s.store.RevertAccept(res)
		s.notifier.Error("Could not accept friend request: " + remote.Error)
		return errors.New(errors.ErrCodeRemoteRejected, remote.Error)
	}

	s.notifier.Success("You are now friends with " + res.FriendName)
	return nil
}

// RejectFriendRequest resolves the pending request locally, then
// confirms with the remote side, reinstating it when the call fails.
func (s *SocialService) RejectFriendRequest(ctx context.Context, id string) error {
	req, ok := s.store.RejectFriendRequest(id)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "friend request not found")
	}

	remote := s.remote.RejectRequest(ctx, id)
	if !remote.Success {
		s.store.ReinstatePending(req)
		s.notifier.Error("Could not reject friend request: " + remote.Error)
		return errors.New(errors.ErrCodeRemoteRejected, remote.Error)
	}

	s.notifier.Success("Friend request rejected")
	return nil
}

// UpdateProfile applies the patch to the cached profile, pushes it
// remotely, and restores the previous profile when the push fails.
func (s *SocialService) UpdateProfile(ctx context.Context, patch models.ProfilePatch) error {
	snap := s.store.Snapshot()
	if snap.CurrentUser == nil {
		return errors.New(errors.ErrCodeNotAuthenticated, "no active session")
	}

	previous := *snap.CurrentUser
	s.store.SetCurrentUser(patch.Apply(previous))

	res := s.remote.UpdateProfile(ctx, patch)
	if !res.Success {
		s.store.SetCurrentUser(previous)
		s.notifier.Error("Could not update profile: " + res.Error)
		return errors.New(errors.ErrCodeRemoteRejected, res.Error)
	}

	s.notifier.Success("Profile updated")
	return nil
}
