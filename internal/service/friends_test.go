package service

import (
	"context"
	"testing"

	"filmmatch/backend/internal/apperr"
	"filmmatch/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	sent []uint
}

func (f *fakeNotifier) Notify(_ context.Context, userID uint, _ string) error {
	f.sent = append(f.sent, userID)
	return nil
}

func (f *fakeNotifier) Close() error { return nil }

func TestSendRequestRejectsSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewFriendService(db, nil)
	alice := createUser(t, db, "alice")

	_, err := svc.SendRequest(ctx(), alice.ID, alice.ID, "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestSendRequestUnknownReceiver(t *testing.T) {
	db := newTestDB(t)
	svc := NewFriendService(db, nil)
	alice := createUser(t, db, "alice")

	_, err := svc.SendRequest(ctx(), alice.ID, 999, "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSendRequestRejectsDuplicatePending(t *testing.T) {
	db := newTestDB(t)
	svc := NewFriendService(db, nil)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.SendRequest(ctx(), alice.ID, bob.ID, "hi")
	require.NoError(t, err)

	_, err = svc.SendRequest(ctx(), alice.ID, bob.ID, "hi again")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	// The reverse direction is blocked too.
	_, err = svc.SendRequest(ctx(), bob.ID, alice.ID, "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestAcceptCreatesSymmetricFriendship(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewFriendService(db, notifier)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := svc.SendRequest(ctx(), alice.ID, bob.ID, "hi")
	require.NoError(t, err)
	require.NoError(t, svc.Accept(ctx(), bob.ID, request.ID))

	var rows []models.UserFriend
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 2)

	friendsOfAlice, err := svc.Friends(ctx(), alice.ID)
	require.NoError(t, err)
	require.Len(t, friendsOfAlice, 1)
	assert.Equal(t, bob.ID, friendsOfAlice[0].ID)

	friendsOfBob, err := svc.Friends(ctx(), bob.ID)
	require.NoError(t, err)
	require.Len(t, friendsOfBob, 1)
	assert.Equal(t, alice.ID, friendsOfBob[0].ID)

	// The request is retired: no longer pending, not acceptable twice.
	pending, err := svc.Requests(ctx(), bob.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.ErrorIs(t, svc.Accept(ctx(), bob.ID, request.ID), apperr.ErrNotFound)

	// Both sides were notified: bob on send, alice on accept.
	assert.Equal(t, []uint{bob.ID, alice.ID}, notifier.sent)
}

func TestAcceptOnlyByReceiver(t *testing.T) {
	db := newTestDB(t)
	svc := NewFriendService(db, nil)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := svc.SendRequest(ctx(), alice.ID, bob.ID, "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Accept(ctx(), alice.ID, request.ID), apperr.ErrNotFound)
}

func TestSendRequestRejectsExistingFriends(t *testing.T) {
	db := newTestDB(t)
	svc := NewFriendService(db, nil)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := svc.SendRequest(ctx(), alice.ID, bob.ID, "")
	require.NoError(t, err)
	require.NoError(t, svc.Accept(ctx(), bob.ID, request.ID))

	_, err = svc.SendRequest(ctx(), alice.ID, bob.ID, "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDeclineLeavesNoFriendship(t *testing.T) {
	db := newTestDB(t)
	svc := NewFriendService(db, nil)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := svc.SendRequest(ctx(), alice.ID, bob.ID, "")
	require.NoError(t, err)
	require.NoError(t, svc.Decline(ctx(), bob.ID, request.ID))

	var n int64
	require.NoError(t, db.Model(&models.UserFriend{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)

	assert.ErrorIs(t, svc.Decline(ctx(), bob.ID, request.ID), apperr.ErrNotFound)

	// A declined request no longer blocks a new one.
	_, err = svc.SendRequest(ctx(), alice.ID, bob.ID, "second try")
	require.NoError(t, err)
}

func TestDeleteFriendRemovesBothRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewFriendService(db, nil)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := svc.SendRequest(ctx(), alice.ID, bob.ID, "")
	require.NoError(t, err)
	require.NoError(t, svc.Accept(ctx(), bob.ID, request.ID))

	require.NoError(t, svc.DeleteFriend(ctx(), alice.ID, bob.ID))

	friendsOfAlice, err := svc.Friends(ctx(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friendsOfAlice)

	friendsOfBob, err := svc.Friends(ctx(), bob.ID)
	require.NoError(t, err)
	assert.Empty(t, friendsOfBob)

	assert.ErrorIs(t, svc.DeleteFriend(ctx(), alice.ID, bob.ID), apperr.ErrNotFound)
}

func TestPossibleFriendsExclusions(t *testing.T) {
	db := newTestDB(t)
	svc := NewFriendService(db, nil)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	dave := createUser(t, db, "dave")

	// alice and bob are friends.
	request, err := svc.SendRequest(ctx(), alice.ID, bob.ID, "")
	require.NoError(t, err)
	require.NoError(t, svc.Accept(ctx(), bob.ID, request.ID))

	// carol has a pending request to alice.
	_, err = svc.SendRequest(ctx(), carol.ID, alice.ID, "")
	require.NoError(t, err)

	possible, err := svc.PossibleFriends(ctx(), alice.ID)
	require.NoError(t, err)
	require.Len(t, possible, 1)
	assert.Equal(t, dave.ID, possible[0].ID)
}

func TestRequestsListsOnlyPendingForReceiver(t *testing.T) {
	db := newTestDB(t)
	svc := NewFriendService(db, nil)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	_, err := svc.SendRequest(ctx(), alice.ID, carol.ID, "from alice")
	require.NoError(t, err)
	_, err = svc.SendRequest(ctx(), bob.ID, carol.ID, "from bob")
	require.NoError(t, err)

	requests, err := svc.Requests(ctx(), carol.ID)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, alice.ID, requests[0].SenderID)
	assert.Equal(t, "alice", requests[0].SenderName)
	assert.Equal(t, bob.ID, requests[1].SenderID)

	requests, err = svc.Requests(ctx(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, requests)
}
